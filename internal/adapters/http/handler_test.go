package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	httpadapter "github.com/StarfishW/StarWish/internal/adapters/http"
	"github.com/StarfishW/StarWish/internal/adapters/seeds"
	"github.com/StarfishW/StarWish/internal/adapters/storage/memory"
	"github.com/StarfishW/StarWish/internal/app"
	"github.com/StarfishW/StarWish/internal/domain"
	"github.com/StarfishW/StarWish/internal/ports"
)

type fixedRNG struct{}

func (fixedRNG) Float64() float64 { return 0.5 }
func (fixedRNG) IntN(int) int     { return 0 }

const missingKeyEN = "The stars are silent today (Missing API Key). But your wish is heard."

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	stores := func() (ports.WishStore, ports.LikeTracker) {
		return memory.NewWishStore(), memory.NewLikeTracker()
	}
	svc := app.NewLanternService(
		app.NewBlessingGenerator(nil, slog.Default()),
		stores,
		seeds.NewEmbeddedStore(),
		fixedRNG{},
		domain.English,
		slog.Default(),
	)

	e := echo.New()
	e.Use(httpadapter.RequestIDMiddleware())
	httpadapter.NewHandler(svc).Register(e)
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req = req.WithContext(context.Background())
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func createSession(t *testing.T, e *echo.Echo) httpadapter.SessionResponse {
	t.Helper()
	w := do(t, e, http.MethodPost, "/v1/sessions", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d, body=%s", w.Code, w.Body.String())
	}
	return decode[httpadapter.SessionResponse](t, w)
}

func TestHealthz(t *testing.T) {
	e := newTestServer(t)
	w := do(t, e, http.MethodGet, "/healthz", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("X-Request-Id") == "" {
		t.Error("expected X-Request-Id header")
	}
}

func TestCreateSession(t *testing.T) {
	e := newTestServer(t)
	sess := createSession(t, e)

	if sess.SessionID == "" {
		t.Error("expected a session id")
	}
	if sess.State != "idle" || sess.Language != "en" {
		t.Errorf("unexpected session: state=%s language=%s", sess.State, sess.Language)
	}
	if len(sess.Wishes) != 3 {
		t.Errorf("expected 3 seed wishes, got %d", len(sess.Wishes))
	}
	if sess.Viewing != nil {
		t.Errorf("expected no open detail, got %+v", sess.Viewing)
	}
}

func TestWishFlow(t *testing.T) {
	e := newTestServer(t)
	base := "/v1/sessions/" + createSession(t, e).SessionID

	w := do(t, e, http.MethodPost, base+"/compose", "")
	if w.Code != http.StatusOK {
		t.Fatalf("compose: expected 200, got %d", w.Code)
	}
	if s := decode[httpadapter.SessionResponse](t, w); s.State != "composing" {
		t.Fatalf("expected composing, got %s", s.State)
	}

	w = do(t, e, http.MethodPost, base+"/wishes", `{"text":"Good health for mom"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("submit: expected 201, got %d, body=%s", w.Code, w.Body.String())
	}
	submitted := decode[httpadapter.SubmitResponse](t, w)
	if submitted.Wish.Blessing != missingKeyEN {
		t.Errorf("unexpected blessing: %q", submitted.Wish.Blessing)
	}
	if submitted.Session.State != "idle" {
		t.Errorf("expected idle after submit, got %s", submitted.Session.State)
	}
	if submitted.Session.Viewing == nil || submitted.Session.Viewing.ID != submitted.Wish.ID {
		t.Errorf("expected new wish to be open, got %+v", submitted.Session.Viewing)
	}
	if n := len(submitted.Session.Wishes); n != 4 {
		t.Errorf("expected 4 wishes, got %d", n)
	}

	likePath := base + "/wishes/" + submitted.Wish.ID + "/like"
	for i := range 2 {
		w = do(t, e, http.MethodPost, likePath, "")
		if w.Code != http.StatusOK {
			t.Fatalf("like %d: expected 200, got %d", i, w.Code)
		}
		liked := decode[httpadapter.WishResponse](t, w)
		if liked.LikeCount != 1 || !liked.Liked {
			t.Errorf("like %d: expected count 1 and liked, got %d/%v", i, liked.LikeCount, liked.Liked)
		}
	}

	w = do(t, e, http.MethodGet, base, "")
	snap := decode[httpadapter.SessionResponse](t, w)
	if snap.Viewing == nil || snap.Viewing.LikeCount != 1 {
		t.Errorf("open detail out of date: %+v", snap.Viewing)
	}

	w = do(t, e, http.MethodGet, base+"/wishes/"+submitted.Wish.ID+"/share", "")
	share := decode[httpadapter.ShareResponse](t, w)
	if share.Text != "Good health for mom\n\n"+missingKeyEN {
		t.Errorf("unexpected share text: %q", share.Text)
	}

	w = do(t, e, http.MethodDelete, base+"/detail", "")
	if s := decode[httpadapter.SessionResponse](t, w); s.Viewing != nil {
		t.Errorf("expected detail closed, got %+v", s.Viewing)
	}
}

func TestSubmitErrors(t *testing.T) {
	e := newTestServer(t)
	base := "/v1/sessions/" + createSession(t, e).SessionID

	w := do(t, e, http.MethodPost, base+"/wishes", `{"text":"no compose"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("submit without compose: expected 409, got %d", w.Code)
	}

	do(t, e, http.MethodPost, base+"/compose", "")

	w = do(t, e, http.MethodPost, base+"/wishes", `{"text":"   "}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("blank text: expected 400, got %d", w.Code)
	}

	w = do(t, e, http.MethodPost, base+"/wishes", `{"text":"`+strings.Repeat("星", 201)+`"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("long text: expected 400, got %d", w.Code)
	}

	w = do(t, e, http.MethodGet, base, "")
	if s := decode[httpadapter.SessionResponse](t, w); s.State != "composing" || len(s.Wishes) != 3 {
		t.Errorf("rejected submits changed the session: state=%s wishes=%d", s.State, len(s.Wishes))
	}
}

func TestUnknownSessionAndWish(t *testing.T) {
	e := newTestServer(t)

	if w := do(t, e, http.MethodGet, "/v1/sessions/nope", ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown session: expected 404, got %d", w.Code)
	}

	base := "/v1/sessions/" + createSession(t, e).SessionID
	if w := do(t, e, http.MethodPost, base+"/wishes/nope/like", ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown wish like: expected 404, got %d", w.Code)
	}
	if w := do(t, e, http.MethodGet, base+"/wishes/nope", ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown wish detail: expected 404, got %d", w.Code)
	}
}

func TestLanguage(t *testing.T) {
	e := newTestServer(t)
	base := "/v1/sessions/" + createSession(t, e).SessionID

	w := do(t, e, http.MethodPost, base+"/language/toggle", "")
	if s := decode[httpadapter.SessionResponse](t, w); s.Language != "zh" {
		t.Errorf("expected zh after toggle, got %s", s.Language)
	}

	w = do(t, e, http.MethodPut, base+"/language", `{"language":"en"}`)
	if s := decode[httpadapter.SessionResponse](t, w); s.Language != "en" {
		t.Errorf("expected en, got %s", s.Language)
	}

	w = do(t, e, http.MethodPut, base+"/language", `{"language":"fr"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown language: expected 400, got %d", w.Code)
	}
}
