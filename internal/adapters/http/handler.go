package http

import (
	"errors"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"github.com/StarfishW/StarWish/internal/app"
	"github.com/StarfishW/StarWish/internal/domain"
)

type Handler struct {
	svc *app.LanternService
}

func NewHandler(svc *app.LanternService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)

	e.POST("/v1/sessions", h.CreateSession)

	g := e.Group("/v1/sessions/:sid")
	g.GET("", h.GetSession)
	g.POST("/compose", h.OpenCompose)
	g.DELETE("/compose", h.CancelCompose)
	g.POST("/wishes", h.SubmitWish)
	g.GET("/wishes/:id", h.OpenDetail)
	g.DELETE("/detail", h.CloseDetail)
	g.POST("/wishes/:id/like", h.LikeWish)
	g.GET("/wishes/:id/share", h.ShareWish)
	g.POST("/language/toggle", h.ToggleLanguage)
	g.PUT("/language", h.SetLanguage)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) CreateSession(c echo.Context) error {
	sess, err := h.svc.NewSession(c.Request().Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusCreated, toSessionResponse(sess.Snapshot()))
}

func (h *Handler) GetSession(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(sess.Snapshot()))
}

func (h *Handler) OpenCompose(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return mapError(c, err)
	}
	if err := sess.OpenCompose(); err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(sess.Snapshot()))
}

func (h *Handler) CancelCompose(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return mapError(c, err)
	}
	if err := sess.CancelCompose(); err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionResponse(sess.Snapshot()))
}

func (h *Handler) SubmitWish(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return mapError(c, err)
	}

	var req SubmitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if utf8.RuneCountInString(req.Text) > domain.MaxWishLength {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "text must be at most 200 characters"})
	}

	wish, err := sess.Submit(c.Request().Context(), req.Text)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusCreated, SubmitResponse{
		Wish:    toWishResponse(wish, sess.HasLiked(wish.ID)),
		Session: toSessionResponse(sess.Snapshot()),
	})
}

func (h *Handler) OpenDetail(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return mapError(c, err)
	}
	wish, ok := sess.OpenDetail(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "wish not found"})
	}
	return c.JSON(http.StatusOK, toWishResponse(wish, sess.HasLiked(wish.ID)))
}

func (h *Handler) CloseDetail(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return mapError(c, err)
	}
	sess.CloseDetail()
	return c.JSON(http.StatusOK, toSessionResponse(sess.Snapshot()))
}

func (h *Handler) LikeWish(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return mapError(c, err)
	}
	wish, ok := sess.Like(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "wish not found"})
	}
	return c.JSON(http.StatusOK, toWishResponse(wish, sess.HasLiked(wish.ID)))
}

func (h *Handler) ShareWish(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return mapError(c, err)
	}
	text, ok := sess.ShareText(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "wish not found"})
	}
	return c.JSON(http.StatusOK, ShareResponse{Text: text})
}

func (h *Handler) ToggleLanguage(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return mapError(c, err)
	}
	sess.ToggleLanguage()
	return c.JSON(http.StatusOK, toSessionResponse(sess.Snapshot()))
}

func (h *Handler) SetLanguage(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return mapError(c, err)
	}

	var req LanguageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	lang, err := domain.ParseLanguage(req.Language)
	if err != nil {
		return mapError(c, err)
	}
	sess.SetLanguage(lang)
	return c.JSON(http.StatusOK, toSessionResponse(sess.Snapshot()))
}

func (h *Handler) session(c echo.Context) (*app.Session, error) {
	return h.svc.Session(c.Param("sid"))
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, domain.ErrEmptyWish), errors.Is(err, domain.ErrUnknownLanguage):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrSessionNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotComposing), errors.Is(err, domain.ErrSubmissionInFlight):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
