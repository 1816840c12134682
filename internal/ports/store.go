package ports

import (
	"context"

	"github.com/StarfishW/StarWish/internal/domain"
)

// WishStore is the ordered collection of wishes of one session. Absent ids are
// reported with ok=false, never as errors.
type WishStore interface {
	Append(w domain.Wish) error
	FindByID(id string) (domain.Wish, bool)
	IncrementLikes(id string) (domain.Wish, bool)
	All() []domain.Wish
	Len() int
}

// LikeTracker remembers which wishes the current session has liked.
type LikeTracker interface {
	HasLiked(id string) bool
	MarkLiked(id string)
}

// SeedSource provides the wishes every new session starts with.
type SeedSource interface {
	SeedWishes(ctx context.Context) ([]domain.Wish, error)
}
