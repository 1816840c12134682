// Package llm holds the prompt and reply format shared by the blessing model
// adapters.
package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/StarfishW/StarWish/internal/domain"
	"github.com/StarfishW/StarWish/internal/ports"
)

const persona = `Act as a mystical, benevolent spirit of the stars.
Provide a short, poetic, and encouraging blessing or interpretation of this wish.`

const replySchema = `{
  "blessing": "<the poetic blessing>",
  "mood": "<the emotional tone of the wish>"
}`

// MaxWords is the length limit given to the model.
const MaxWords = 40

func languageInstruction(lang domain.Language) string {
	if lang == domain.Chinese {
		return "Reply in Chinese (Simplified). The tone should be ancient Chinese poetic, warm, and philosophical (Chengyu or poetic style)."
	}
	return "Reply in English. The tone should be ethereal, warm, and hopeful."
}

// SystemPrompt is the instruction block for chat-style APIs that cannot
// enforce a response schema, so the schema is spelled out in text.
func SystemPrompt(lang domain.Language) string {
	return fmt.Sprintf(`%s
%s
Keep it under %d words.

Respond with ONLY a JSON object (no markdown, no code fences, no extra text) matching this exact schema:
%s`, persona, languageInstruction(lang), MaxWords, replySchema)
}

// UserPrompt carries the wish itself.
func UserPrompt(in ports.BlessInput) string {
	return fmt.Sprintf("User wish: %q", in.Wish)
}

// Prompt is the single-message form used with APIs that take a response
// schema separately.
func Prompt(in ports.BlessInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User wish: %q.\n\n", in.Wish)
	b.WriteString(persona)
	b.WriteString("\n")
	b.WriteString(languageInstruction(in.Lang))
	fmt.Fprintf(&b, "\nKeep it under %d words.", MaxWords)
	return b.String()
}

// RetryPrompt asks the model to fix a reply that was not valid JSON.
func RetryPrompt(badJSON string) string {
	return fmt.Sprintf(`Your previous response was not valid JSON. Here is what you returned:
%s

Return ONLY the corrected JSON object matching this schema (no markdown, no code fences):
%s`, badJSON, replySchema)
}

// DecodeReply parses a model reply. An empty reply decodes to an empty
// output; anything else must be a JSON object.
func DecodeReply(content string) (ports.BlessOutput, error) {
	content = stripFences(strings.TrimSpace(content))
	if content == "" {
		return ports.BlessOutput{}, nil
	}

	var out ports.BlessOutput
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return ports.BlessOutput{}, err
	}
	out.Blessing = strings.TrimSpace(out.Blessing)
	out.Mood = strings.TrimSpace(out.Mood)
	return out, nil
}

// stripFences removes a surrounding ```json ... ``` block, which small models
// add despite being told not to.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
