// Package api serves a read-only HTTP view of calendar pages and the
// anniversary store.
package api

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/lunarcal/internal/anniversary"
	"github.com/zapponejosh/lunarcal/internal/calendar"
	"github.com/zapponejosh/lunarcal/internal/database"
	"github.com/zapponejosh/lunarcal/internal/logger"
	"github.com/zapponejosh/lunarcal/internal/render"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db          *database.DB
	gw          calendar.Gateway
	anniversary *anniversary.Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *database.DB, gw calendar.Gateway, log *slog.Logger) *Handlers {
	return &Handlers{
		db:          db,
		gw:          gw,
		anniversary: anniversary.NewService(db, gw, log),
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Check database health
	if err := h.db.Health(ctx); err != nil {
		logger.Warn(ctx, "health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	count, err := h.db.CountAnniversaries(ctx)
	if err != nil {
		logger.Warn(ctx, "health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]any{
		"status":        "healthy",
		"anniversaries": count,
	})
}

// GetYear handles GET /api/v1/calendar/{year}
func (h *Handlers) GetYear(w http.ResponseWriter, r *http.Request) {
	year, ok := pathInt(w, r, "year")
	if !ok {
		return
	}

	rdr, opts, ok := h.renderer(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := rdr.RenderYear(&buf, year); err != nil {
		h.renderFailed(w, r, err)
		return
	}

	WritePage(w, opts.Encoding.String(), buf.Bytes())
}

// GetMonth handles GET /api/v1/calendar/{year}/{month}
func (h *Handlers) GetMonth(w http.ResponseWriter, r *http.Request) {
	year, ok := pathInt(w, r, "year")
	if !ok {
		return
	}
	month, ok := pathInt(w, r, "month")
	if !ok {
		return
	}

	rdr, opts, ok := h.renderer(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if _, err := rdr.RenderMonth(&buf, year, month, nil); err != nil {
		h.renderFailed(w, r, err)
		return
	}

	WritePage(w, opts.Encoding.String(), buf.Bytes())
}

// ListAnniversaries handles GET /api/v1/anniversaries
func (h *Handlers) ListAnniversaries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entries, err := h.anniversary.List(ctx)
	if err != nil {
		logger.Error(ctx, "failed to list anniversaries", err)
		WriteInternalError(w, "Failed to retrieve anniversaries")
		return
	}

	WriteSuccess(w, entries)
}

// GetAnniversary handles GET /api/v1/anniversaries/{id}
func (h *Handlers) GetAnniversary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid id: %s", chi.URLParam(r, "id")))
		return
	}

	entry, err := h.anniversary.Get(ctx, id)
	if database.IsNotFound(err) {
		WriteNotFound(w, fmt.Sprintf("No anniversary with id %d", id))
		return
	}
	if err != nil {
		logger.Error(ctx, "failed to get anniversary", err, slog.Int64("id", id))
		WriteInternalError(w, "Failed to retrieve anniversary")
		return
	}

	WriteSuccess(w, entry)
}

// renderer builds a fresh renderer from the query string. On failure it
// has already written the response.
func (h *Handlers) renderer(w http.ResponseWriter, r *http.Request) (*render.Renderer, render.Options, bool) {
	opts, err := parseOptions(r)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return nil, opts, false
	}

	var index *anniversary.Index
	if opts.ShowDetail {
		index, err = h.anniversary.Index(r.Context())
		if err != nil {
			logger.Error(r.Context(), "failed to load anniversaries", err)
			WriteInternalError(w, "Failed to retrieve anniversaries")
			return nil, opts, false
		}
	}

	logger.Debug(r.Context(), "rendering page",
		slog.String("path", r.URL.Path),
		slog.Bool("detail", opts.ShowDetail),
	)
	return render.New(h.gw, opts, index), opts, true
}

func (h *Handlers) renderFailed(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, render.ErrOutOfRange) {
		WriteBadRequest(w, err.Error())
		return
	}
	logger.Error(r.Context(), "failed to render page", err, slog.String("path", r.URL.Path))
	WriteInternalError(w, "Failed to render calendar")
}

// parseOptions reads locale, detail, rule and encoding query parameters.
func parseOptions(r *http.Request) (render.Options, error) {
	q := r.URL.Query()
	var opts render.Options

	switch q.Get("locale") {
	case "", "latin":
		opts.Locale = render.LocaleLatin
	case "localized":
		opts.Locale = render.LocaleLocalized
	default:
		return opts, fmt.Errorf("invalid locale %q. Use latin or localized", q.Get("locale"))
	}

	if s := q.Get("detail"); s != "" {
		detail, err := strconv.ParseBool(s)
		if err != nil {
			return opts, fmt.Errorf("invalid detail %q. Use true or false", s)
		}
		opts.ShowDetail = detail
	}

	if s := q.Get("rule"); s != "" {
		rule, err := calendar.ParsePhenologyRule(s)
		if err != nil {
			return opts, fmt.Errorf("invalid rule %q. Use shenshujing or bencao", s)
		}
		opts.PhenologyRule = rule
	}

	switch q.Get("encoding") {
	case "", "utf-8", "utf8":
		opts.Encoding = render.EncodingUTF8
	case "gb2312":
		opts.Encoding = render.EncodingGB2312
	default:
		return opts, fmt.Errorf("invalid encoding %q. Use utf-8 or gb2312", q.Get("encoding"))
	}

	return opts, nil
}

// pathInt reads an integer URL parameter, writing 400 when it is not one.
func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	s := chi.URLParam(r, name)
	n, err := strconv.Atoi(s)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid %s: %s", name, s))
		return 0, false
	}
	return n, true
}
