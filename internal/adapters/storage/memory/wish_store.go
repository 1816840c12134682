package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/StarfishW/StarWish/internal/domain"
)

// WishStore is an in-memory, insertion-ordered implementation of
// ports.WishStore. It is not persistent; a session's wishes live as long as
// the process does.
type WishStore struct {
	mu     sync.RWMutex
	wishes []domain.Wish
	index  map[string]int
}

func NewWishStore() *WishStore {
	return &WishStore{
		index: make(map[string]int),
	}
}

// Append adds w to the end of the collection.
func (s *WishStore) Append(w domain.Wish) error {
	if w.ID == "" || strings.TrimSpace(w.Content) == "" {
		return domain.ErrInvalidWish
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[w.ID]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateWish, w.ID)
	}

	s.index[w.ID] = len(s.wishes)
	s.wishes = append(s.wishes, w)
	return nil
}

func (s *WishStore) FindByID(id string) (domain.Wish, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return domain.Wish{}, false
	}
	return s.wishes[i], true
}

// IncrementLikes adds one like to the wish and returns the updated record.
// Repeated calls keep counting; once-per-session is the caller's policy.
func (s *WishStore) IncrementLikes(id string) (domain.Wish, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return domain.Wish{}, false
	}
	s.wishes[i].LikeCount++
	return s.wishes[i], true
}

// All returns a copy of every wish in insertion order.
func (s *WishStore) All() []domain.Wish {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Wish, len(s.wishes))
	copy(out, s.wishes)
	return out
}

func (s *WishStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.wishes)
}
