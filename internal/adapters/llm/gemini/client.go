package gemini

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/StarfishW/StarWish/internal/adapters/llm"
	"github.com/StarfishW/StarWish/internal/domain"
	"github.com/StarfishW/StarWish/internal/ports"
)

// Client implements ports.BlessingModel with the Gemini API. The reply shape
// is enforced server-side through a response schema.
type Client struct {
	client    *genai.Client
	modelName string
}

// NewClient builds a Gemini API client. An empty baseURL uses the public
// endpoint.
func NewClient(ctx context.Context, httpClient *http.Client, apiKey, baseURL, modelName string) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	return &Client{
		client:    client,
		modelName: modelName,
	}, nil
}

var blessingSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"blessing": {
			Type:        genai.TypeString,
			Description: "The poetic blessing response.",
		},
		"mood": {
			Type:        genai.TypeString,
			Description: "The emotional tone of the wish.",
		},
	},
	Required: []string{"blessing"},
}

func (c *Client) Bless(ctx context.Context, in ports.BlessInput) (ports.BlessOutput, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   blessingSchema,
	}

	res, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(llm.Prompt(in)), cfg)
	if err != nil {
		return ports.BlessOutput{}, fmt.Errorf("%w: gemini generate content: %w", domain.ErrUpstreamLLM, err)
	}

	out, err := llm.DecodeReply(res.Text())
	if err != nil {
		return ports.BlessOutput{}, fmt.Errorf("%w: %w", domain.ErrInvalidLLMJSON, err)
	}
	out.Model = c.modelName
	return out, nil
}
