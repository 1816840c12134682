package memory

import "sync"

// LikeTracker is the set of wish ids liked in one session. There is no way to
// unlike.
type LikeTracker struct {
	mu    sync.RWMutex
	liked map[string]struct{}
}

func NewLikeTracker() *LikeTracker {
	return &LikeTracker{
		liked: make(map[string]struct{}),
	}
}

func (t *LikeTracker) HasLiked(id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.liked[id]
	return ok
}

func (t *LikeTracker) MarkLiked(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.liked[id] = struct{}{}
}
