package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/StarfishW/StarWish/internal/adapters/llm/gemini"
	"github.com/StarfishW/StarWish/internal/domain"
	"github.com/StarfishW/StarWish/internal/ports"
)

func writeCandidate(w http.ResponseWriter, text string) {
	resp := map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": text}},
				},
			},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func newTestClient(t *testing.T, srv *httptest.Server) *gemini.Client {
	t.Helper()
	client, err := gemini.NewClient(context.Background(), srv.Client(), "test-key", srv.URL, "gemini-2.5-flash")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestClient_Bless_Success(t *testing.T) {
	var gotPath, gotKey, gotBody string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		writeCandidate(w, `{"blessing":"Like the moon watching over the tide, health returns.","mood":"caring"}`)
	}))
	defer srv.Close()

	client := newTestClient(t, srv)

	out, err := client.Bless(context.Background(), ports.BlessInput{Wish: "Good health for mom", Lang: domain.English})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Blessing != "Like the moon watching over the tide, health returns." {
		t.Errorf("unexpected blessing: %s", out.Blessing)
	}
	if out.Mood != "caring" {
		t.Errorf("unexpected mood: %s", out.Mood)
	}
	if out.Model != "gemini-2.5-flash" {
		t.Errorf("unexpected model: %s", out.Model)
	}

	if !strings.HasSuffix(gotPath, "models/gemini-2.5-flash:generateContent") {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("unexpected api key header: %q", gotKey)
	}
	if !strings.Contains(gotBody, "Good health for mom") {
		t.Errorf("request body does not carry the wish: %s", gotBody)
	}
	if !strings.Contains(gotBody, "application/json") || !strings.Contains(gotBody, "blessing") {
		t.Errorf("request body does not ask for the JSON schema: %s", gotBody)
	}
}

func TestClient_Bless_EmptyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	out, err := newTestClient(t, srv).Bless(context.Background(), ports.BlessInput{Wish: "x", Lang: domain.Chinese})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Blessing != "" {
		t.Errorf("expected empty blessing, got %q", out.Blessing)
	}
}

func TestClient_Bless_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeCandidate(w, "the stars are shy tonight")
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).Bless(context.Background(), ports.BlessInput{Wish: "x", Lang: domain.English})
	if !errors.Is(err, domain.ErrInvalidLLMJSON) {
		t.Fatalf("expected ErrInvalidLLMJSON, got %v", err)
	}
}

func TestClient_Bless_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).Bless(context.Background(), ports.BlessInput{Wish: "x", Lang: domain.English})
	if !errors.Is(err, domain.ErrUpstreamLLM) {
		t.Fatalf("expected ErrUpstreamLLM, got %v", err)
	}
}
