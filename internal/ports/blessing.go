package ports

import (
	"context"

	"github.com/StarfishW/StarWish/internal/domain"
)

// BlessInput holds everything the LLM needs to write a blessing.
type BlessInput struct {
	Wish string
	Lang domain.Language
}

// BlessOutput is the structured reply requested from the LLM. Blessing may be
// empty when the model answered without one.
type BlessOutput struct {
	Blessing string `json:"blessing"`
	Mood     string `json:"mood,omitempty"`
	Model    string `json:"-"`
}

// BlessingModel asks a generative-language service for a blessing. Unlike the
// generator built on top of it, it reports failures.
type BlessingModel interface {
	Bless(ctx context.Context, in BlessInput) (BlessOutput, error)
}
