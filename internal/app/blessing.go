package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/StarfishW/StarWish/internal/domain"
	"github.com/StarfishW/StarWish/internal/ports"
)

// Blessing is a generated blessing plus the mood the model read in the wish.
// Mood is empty on every fallback path.
type Blessing struct {
	Text string
	Mood string
}

// Blesser produces a displayable blessing for any non-empty wish.
type Blesser interface {
	Bless(ctx context.Context, wish string, lang domain.Language) Blessing
}

// Fallback texts. Each branch of Bless has its own wording so callers and
// tests can tell which one ran.
var (
	missingKeyText = map[domain.Language]string{
		domain.English: "The stars are silent today (Missing API Key). But your wish is heard.",
		domain.Chinese: "星空此刻静默（缺少 API Key）。但你的愿望已被听见。",
	}
	acknowledgmentText = map[domain.Language]string{
		domain.English: "The stars twinkle in acknowledgement.",
		domain.Chinese: "群星闪烁，以此致意。",
	}
	releasedText = map[domain.Language]string{
		domain.English: "Your wish has been released into the galaxy, carrying your hopes with it.",
		domain.Chinese: "你的愿望已融入星河，带着希望远航。",
	}
)

func localized(texts map[domain.Language]string, lang domain.Language) string {
	if s, ok := texts[lang]; ok {
		return s
	}
	return texts[domain.English]
}

// BlessingGenerator wraps a BlessingModel into a total function: every call
// returns a non-empty string and no error ever escapes.
type BlessingGenerator struct {
	model  ports.BlessingModel
	logger *slog.Logger
}

// NewBlessingGenerator returns a generator over model. A nil model means no
// credential is configured and every wish gets the missing-key text.
func NewBlessingGenerator(model ports.BlessingModel, logger *slog.Logger) *BlessingGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &BlessingGenerator{model: model, logger: logger}
}

// Configured reports whether a blessing model is available.
func (g *BlessingGenerator) Configured() bool {
	return g.model != nil
}

// Generate returns only the blessing text.
func (g *BlessingGenerator) Generate(ctx context.Context, wish string, lang domain.Language) string {
	return g.Bless(ctx, wish, lang).Text
}

func (g *BlessingGenerator) Bless(ctx context.Context, wish string, lang domain.Language) Blessing {
	if g.model == nil {
		return Blessing{Text: localized(missingKeyText, lang)}
	}

	out, err := g.model.Bless(ctx, ports.BlessInput{Wish: wish, Lang: lang})
	if err != nil {
		g.logger.WarnContext(ctx, "blessing generation failed", "language", lang, "error", err)
		return Blessing{Text: localized(releasedText, lang)}
	}

	text := strings.TrimSpace(out.Blessing)
	if text == "" {
		g.logger.InfoContext(ctx, "blessing reply had no blessing", "language", lang, "model", out.Model)
		return Blessing{Text: localized(acknowledgmentText, lang)}
	}
	return Blessing{Text: text, Mood: out.Mood}
}
