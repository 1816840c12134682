package seeds

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/StarfishW/StarWish/internal/domain"
)

//go:embed data/initial_wishes.json
var seedFS embed.FS

const seedFile = "data/initial_wishes.json"

// EmbeddedStore serves the lanterns every new session starts with. The file
// is parsed once; CreatedAt is stamped with the load time.
type EmbeddedStore struct {
	once   sync.Once
	now    func() time.Time
	wishes []domain.Wish
	err    error
}

func NewEmbeddedStore() *EmbeddedStore {
	return &EmbeddedStore{now: time.Now}
}

func (s *EmbeddedStore) init() {
	raw, err := seedFS.ReadFile(seedFile)
	if err != nil {
		s.err = fmt.Errorf("read embedded seed wishes: %w", err)
		return
	}
	var wishes []domain.Wish
	if err := json.Unmarshal(raw, &wishes); err != nil {
		s.err = fmt.Errorf("parse embedded seed wishes: %w", err)
		return
	}
	loadedAt := s.now()
	for i := range wishes {
		wishes[i].CreatedAt = loadedAt
	}
	s.wishes = wishes
}

// SeedWishes returns a fresh copy of the seed wishes in file order.
func (s *EmbeddedStore) SeedWishes(_ context.Context) ([]domain.Wish, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.Wish, len(s.wishes))
	copy(out, s.wishes)
	return out, nil
}
