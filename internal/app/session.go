package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/StarfishW/StarWish/internal/domain"
	"github.com/StarfishW/StarWish/internal/ports"
)

// Session is the controller of one visitor's wish lifecycle:
// idle → composing → submitting → idle. The open detail view is tracked next
// to the compose state, not inside it.
//
// The mutex is never held across the blessing call; the submitting state is
// what keeps a second submission out while one is in flight.
type Session struct {
	id      string
	blesser Blesser
	store   ports.WishStore
	likes   ports.LikeTracker
	rng     domain.RNG
	now     func() time.Time
	newID   func() string

	mu        sync.Mutex
	state     domain.SessionState
	lang      domain.Language
	viewingID string
}

// SessionOption customises a Session, mostly for tests.
type SessionOption func(*Session)

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithIDFunc overrides the wish id generator.
func WithIDFunc(newID func() string) SessionOption {
	return func(s *Session) { s.newID = newID }
}

func NewSession(
	id string,
	blesser Blesser,
	store ports.WishStore,
	likes ports.LikeTracker,
	rng domain.RNG,
	lang domain.Language,
	opts ...SessionOption,
) *Session {
	s := &Session{
		id:      id,
		blesser: blesser,
		store:   store,
		likes:   likes,
		rng:     rng,
		now:     time.Now,
		newID:   newWishID,
		state:   domain.StateIdle,
		lang:    lang,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Language() domain.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

// OpenCompose shows the compose form. Opening it twice is harmless.
func (s *Session) OpenCompose() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case domain.StateSubmitting:
		return domain.ErrSubmissionInFlight
	default:
		s.state = domain.StateComposing
		return nil
	}
}

// CancelCompose closes the compose form without submitting.
func (s *Session) CancelCompose() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == domain.StateSubmitting {
		return domain.ErrSubmissionInFlight
	}
	s.state = domain.StateIdle
	return nil
}

// Submit turns text into a new wish. Blank text is rejected before any state
// change. Once accepted, the session always returns to idle and the new wish
// becomes the open detail record, whichever way the blessing was produced.
func (s *Session) Submit(ctx context.Context, text string) (domain.Wish, error) {
	content := strings.TrimSpace(text)
	if content == "" {
		return domain.Wish{}, domain.ErrEmptyWish
	}

	s.mu.Lock()
	switch s.state {
	case domain.StateSubmitting:
		s.mu.Unlock()
		return domain.Wish{}, domain.ErrSubmissionInFlight
	case domain.StateIdle:
		s.mu.Unlock()
		return domain.Wish{}, domain.ErrNotComposing
	}
	s.state = domain.StateSubmitting
	lang := s.lang
	s.mu.Unlock()

	blessing := s.blesser.Bless(ctx, content, lang)

	wish := domain.Wish{
		ID:        s.newID(),
		Content:   content,
		CreatedAt: s.now(),
		Blessing:  blessing.Text,
		Mood:      blessing.Mood,
		LikeCount: 0,
		Seed:      domain.SampleSeed(s.rng),
	}
	err := s.store.Append(wish)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.StateIdle
	if err != nil {
		return domain.Wish{}, fmt.Errorf("append wish: %w", err)
	}
	s.viewingID = wish.ID
	return wish, nil
}

// OpenDetail makes id the open detail record. Unknown ids leave the view as
// it was.
func (s *Session) OpenDetail(id string) (domain.Wish, bool) {
	w, ok := s.store.FindByID(id)
	if !ok {
		return domain.Wish{}, false
	}

	s.mu.Lock()
	s.viewingID = id
	s.mu.Unlock()
	return w, true
}

func (s *Session) CloseDetail() {
	s.mu.Lock()
	s.viewingID = ""
	s.mu.Unlock()
}

// Viewing returns the open detail record, read from the store so it always
// shows the current like count.
func (s *Session) Viewing() (domain.Wish, bool) {
	s.mu.Lock()
	id := s.viewingID
	s.mu.Unlock()

	if id == "" {
		return domain.Wish{}, false
	}
	return s.store.FindByID(id)
}

// Like adds this session's like to a wish. A wish can be liked once per
// session; repeats and unknown ids are ignored. The returned wish is the
// stored record after the call.
func (s *Session) Like(id string) (domain.Wish, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.likes.HasLiked(id) {
		return s.store.FindByID(id)
	}
	w, ok := s.store.IncrementLikes(id)
	if !ok {
		return domain.Wish{}, false
	}
	s.likes.MarkLiked(id)
	return w, true
}

func (s *Session) HasLiked(id string) bool {
	return s.likes.HasLiked(id)
}

// ToggleLanguage switches between English and Chinese. Existing blessings
// keep the language they were written in.
func (s *Session) ToggleLanguage() domain.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lang = s.lang.Toggle()
	return s.lang
}

func (s *Session) SetLanguage(lang domain.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lang = lang
}

// ShareText is the text offered when a visitor shares a wish.
func (s *Session) ShareText(id string) (string, bool) {
	w, ok := s.store.FindByID(id)
	if !ok {
		return "", false
	}
	return w.Content + "\n\n" + w.Blessing, true
}

// WishView is a wish as the renderer sees it.
type WishView struct {
	domain.Wish
	Liked bool
}

// Snapshot is everything the presentation layer renders.
type Snapshot struct {
	SessionID string
	State     domain.SessionState
	Language  domain.Language
	Wishes    []WishView
	Viewing   *WishView
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	snap := Snapshot{
		SessionID: s.id,
		State:     s.state,
		Language:  s.lang,
	}
	viewingID := s.viewingID
	s.mu.Unlock()

	wishes := s.store.All()
	snap.Wishes = make([]WishView, len(wishes))
	for i, w := range wishes {
		view := WishView{Wish: w, Liked: s.likes.HasLiked(w.ID)}
		snap.Wishes[i] = view
		if w.ID == viewingID {
			v := view
			snap.Viewing = &v
		}
	}
	return snap
}
