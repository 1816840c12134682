package http

import (
	"time"

	"github.com/StarfishW/StarWish/internal/app"
	"github.com/StarfishW/StarWish/internal/domain"
)

// SessionResponse is the JSON shape of a session snapshot.
type SessionResponse struct {
	SessionID string         `json:"session_id"`
	State     string         `json:"state"`
	Language  string         `json:"language"`
	Wishes    []WishResponse `json:"wishes"`
	Viewing   *WishResponse  `json:"viewing"`
}

type WishResponse struct {
	ID        string                  `json:"id"`
	Content   string                  `json:"content"`
	CreatedAt time.Time               `json:"created_at"`
	Blessing  string                  `json:"blessing"`
	Mood      string                  `json:"mood,omitempty"`
	LikeCount int                     `json:"like_count"`
	Liked     bool                    `json:"liked"`
	Seed      domain.PresentationSeed `json:"presentation_seed"`
}

// SubmitResponse is returned by POST /v1/sessions/:sid/wishes.
type SubmitResponse struct {
	Wish    WishResponse    `json:"wish"`
	Session SessionResponse `json:"session"`
}

type SubmitRequest struct {
	Text string `json:"text"`
}

type LanguageRequest struct {
	Language string `json:"language"`
}

type ShareResponse struct {
	Text string `json:"text"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func toWishResponse(w domain.Wish, liked bool) WishResponse {
	return WishResponse{
		ID:        w.ID,
		Content:   w.Content,
		CreatedAt: w.CreatedAt,
		Blessing:  w.Blessing,
		Mood:      w.Mood,
		LikeCount: w.LikeCount,
		Liked:     liked,
		Seed:      w.Seed,
	}
}

func toSessionResponse(snap app.Snapshot) SessionResponse {
	wishes := make([]WishResponse, len(snap.Wishes))
	for i, w := range snap.Wishes {
		wishes[i] = toWishResponse(w.Wish, w.Liked)
	}
	resp := SessionResponse{
		SessionID: snap.SessionID,
		State:     string(snap.State),
		Language:  string(snap.Language),
		Wishes:    wishes,
	}
	if snap.Viewing != nil {
		v := toWishResponse(snap.Viewing.Wish, snap.Viewing.Liked)
		resp.Viewing = &v
	}
	return resp
}
