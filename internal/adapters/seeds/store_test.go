package seeds_test

import (
	"context"
	"testing"

	"github.com/StarfishW/StarWish/internal/adapters/seeds"
	"github.com/StarfishW/StarWish/internal/domain"
)

func TestEmbeddedStore_SeedWishes(t *testing.T) {
	s := seeds.NewEmbeddedStore()

	wishes, err := s.SeedWishes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(wishes) != 3 {
		t.Fatalf("expected 3 seed wishes, got %d", len(wishes))
	}

	expected := []struct {
		id    string
		likes int
		tone  domain.ColorTone
	}{
		{"1", 42, domain.ToneGold},
		{"2", 128, domain.ToneRed},
		{"3", 15, domain.ToneOrange},
	}
	for i, want := range expected {
		w := wishes[i]
		if w.ID != want.id {
			t.Errorf("wish %d: expected id %s, got %s", i, want.id, w.ID)
		}
		if w.LikeCount != want.likes {
			t.Errorf("wish %d: expected %d likes, got %d", i, want.likes, w.LikeCount)
		}
		if w.Seed.ColorTone != want.tone {
			t.Errorf("wish %d: expected tone %s, got %s", i, want.tone, w.Seed.ColorTone)
		}
		if w.Content == "" || w.Blessing == "" {
			t.Errorf("wish %d: content and blessing must be set: %+v", i, w)
		}
		if w.CreatedAt.IsZero() {
			t.Errorf("wish %d: expected created_at to be stamped", i)
		}
	}
}

func TestEmbeddedStore_ReturnsIndependentCopies(t *testing.T) {
	s := seeds.NewEmbeddedStore()

	first, _ := s.SeedWishes(context.Background())
	first[0].LikeCount = 1000

	second, _ := s.SeedWishes(context.Background())
	if second[0].LikeCount != 42 {
		t.Errorf("seed data was mutated: got %d likes", second[0].LikeCount)
	}
}
