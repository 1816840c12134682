package domain

import (
	"fmt"
	"strings"
	"time"
)

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Float64 returns a random float in [0.0, 1.0).
	Float64() float64
	// IntN returns a non-negative random int in [0, n).
	IntN(n int) int
}

// Language selects the tone and language of generated blessings.
type Language string

const (
	English Language = "en"
	Chinese Language = "zh"
)

// ParseLanguage accepts "en" and "zh", case-insensitively.
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case English:
		return English, nil
	case Chinese:
		return Chinese, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
	}
}

// Toggle returns the other language.
func (l Language) Toggle() Language {
	if l == English {
		return Chinese
	}
	return English
}

// SessionState is the compose flow's current mode. Which wish is open in the
// detail view is tracked separately.
type SessionState string

const (
	StateIdle       SessionState = "idle"
	StateComposing  SessionState = "composing"
	StateSubmitting SessionState = "submitting"
)

// ColorTone is the lantern paper colour.
type ColorTone string

const (
	ToneGold   ColorTone = "gold"
	ToneRed    ColorTone = "red"
	ToneOrange ColorTone = "orange"
)

// Palette lists the tones a new lantern can take.
var Palette = []ColorTone{ToneGold, ToneRed, ToneOrange}

// PresentationSeed holds the cosmetic parameters the renderer uses to place
// and animate a lantern. Nothing in the core reads it.
type PresentationSeed struct {
	X         float64   `json:"x"`
	Duration  float64   `json:"duration"`
	Delay     float64   `json:"delay"`
	Scale     float64   `json:"scale"`
	ColorTone ColorTone `json:"color_tone"`
}

// Wish is a submitted wish together with its blessing.
type Wish struct {
	ID        string           `json:"id"`
	Content   string           `json:"content"`
	CreatedAt time.Time        `json:"created_at"`
	Blessing  string           `json:"blessing"`
	Mood      string           `json:"mood,omitempty"`
	LikeCount int              `json:"like_count"`
	Seed      PresentationSeed `json:"presentation_seed"`
}

// MaxWishLength is the longest wish the compose form accepts, in characters.
const MaxWishLength = 200
