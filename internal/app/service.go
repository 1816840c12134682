package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/StarfishW/StarWish/internal/domain"
	"github.com/StarfishW/StarWish/internal/ports"
)

func newWishID() string { return uuid.NewString() }

// StoreFactory creates the per-session wish store and like tracker.
type StoreFactory func() (ports.WishStore, ports.LikeTracker)

// LanternService keeps one Session per visitor. Sessions live until the
// process exits.
type LanternService struct {
	blesser     Blesser
	newStores   StoreFactory
	seeds       ports.SeedSource
	rng         domain.RNG
	defaultLang domain.Language
	logger      *slog.Logger
	opts        []SessionOption

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewLanternService wires the registry. seeds may be nil, in which case new
// sessions start with an empty sky.
func NewLanternService(
	blesser Blesser,
	newStores StoreFactory,
	seeds ports.SeedSource,
	rng domain.RNG,
	defaultLang domain.Language,
	logger *slog.Logger,
	opts ...SessionOption,
) *LanternService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LanternService{
		blesser:     blesser,
		newStores:   newStores,
		seeds:       seeds,
		rng:         rng,
		defaultLang: defaultLang,
		logger:      logger,
		opts:        opts,
		sessions:    make(map[string]*Session),
	}
}

// NewSession starts a session with its own store and like tracker, preloaded
// with the seed wishes.
func (s *LanternService) NewSession(ctx context.Context) (*Session, error) {
	store, likes := s.newStores()

	if s.seeds != nil {
		wishes, err := s.seeds.SeedWishes(ctx)
		if err != nil {
			return nil, fmt.Errorf("load seed wishes: %w", err)
		}
		for _, w := range wishes {
			if err := store.Append(w); err != nil {
				return nil, fmt.Errorf("seed wish %s: %w", w.ID, err)
			}
		}
	}

	sess := NewSession(uuid.NewString(), s.blesser, store, likes, s.rng, s.defaultLang, s.opts...)

	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	total := len(s.sessions)
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "session started", "session_id", sess.ID(), "seed_wishes", store.Len(), "sessions", total)
	return sess, nil
}

// Session returns a running session or domain.ErrSessionNotFound.
func (s *LanternService) Session(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}
