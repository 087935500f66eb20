package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/text/language"

	"salesdash/internal/engine"
	"salesdash/internal/i18n"
	"salesdash/internal/models"
)

// SessionHeader carries the session ID on requests and upload responses.
const SessionHeader = "X-Session-ID"

type Handler struct {
	sessions *Registry
	log      *log.Logger
}

func NewHandler(sessions *Registry, logger *log.Logger) *Handler {
	return &Handler{sessions: sessions, log: logger}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)

	api := e.Group("/api")
	api.POST("/upload", h.Upload)
	api.GET("/filters", h.GetFilters)
	api.POST("/dashboard", h.GetDashboard)
	api.POST("/data", h.GetData)
	api.POST("/export", h.Export)
	api.GET("/labels", h.GetLabels)
}

// --- HELPERS ---

func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func sessionID(c echo.Context) string {
	if id := c.Request().Header.Get(SessionHeader); id != "" {
		return id
	}
	return c.QueryParam("session")
}

// session returns the caller's session and applies a ?lang= override.
func (h *Handler) session(c echo.Context) (*engine.Session, error) {
	s, ok := h.sessions.Get(sessionID(c))
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "unknown session; upload a file first")
	}
	if lang := c.QueryParam("lang"); lang != "" {
		s.SetLanguage(i18n.Resolve(lang))
	}
	return s, nil
}

func bindSelection(c echo.Context) (models.Selection, error) {
	var sel models.Selection
	if err := c.Bind(&sel); err != nil {
		return sel, err
	}
	return sel, nil
}

// httpError maps pipeline errors to HTTP statuses.
func httpError(err error) error {
	var rerr *engine.ReadError
	switch {
	case errors.Is(err, engine.ErrFilterNotOffered), errors.Is(err, engine.ErrInvalidRange):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	case errors.Is(err, engine.ErrNoFile):
		return echo.NewHTTPError(http.StatusConflict, err.Error()).SetInternal(err)
	case errors.As(err, &rerr):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error()).SetInternal(err)
	}
	return err
}

// --- HANDLERS ---

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"sessions":  h.sessions.Len(),
	})
}

// Upload accepts a multipart "file" and makes it the session's active
// upload. An unreadable file still returns 200 with read_error set.
func (h *Handler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file field").SetInternal(err)
	}
	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to open upload").SetInternal(err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read upload").SetInternal(err)
	}

	lang := language.Und
	if l := c.FormValue("lang"); l != "" {
		lang = i18n.Resolve(l)
	}
	s, ok := h.sessions.Get(sessionID(c))
	if !ok {
		s = h.sessions.Create(lang)
	} else if lang != language.Und {
		s.SetLanguage(lang)
	}

	res := models.UploadResult{SessionID: s.ID, FileName: fh.Filename, Columns: []string{}}
	res.Filters, err = s.Upload(fh.Filename, data)

	var rerr *engine.ReadError
	switch {
	case errors.As(err, &rerr):
		h.log.Warnj(log.JSON{"event": "preview_failed", "session": s.ID, "upload": fh.Filename, "error": err.Error()})
		res.ReadError = i18n.For(s.Language()).ReadError
	case err != nil:
		return err
	}

	if t, err := s.Table(); err == nil {
		res.Rows = t.Len()
		res.Columns = t.Names()
	}

	h.log.Infoj(log.JSON{"event": "upload_received", "session": s.ID, "upload": fh.Filename, "bytes": len(data), "rows": res.Rows})
	c.Response().Header().Set(SessionHeader, s.ID)
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) GetFilters(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.Options())
}

func (h *Handler) GetDashboard(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	sel, err := bindSelection(c)
	if err != nil {
		return err
	}
	d, err := s.Render(sel)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, d)
}

// GetData returns one page of the filtered table for raw display.
func (h *Handler) GetData(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	sel, err := bindSelection(c)
	if err != nil {
		return err
	}
	t, err := s.Filtered(sel)
	if err != nil {
		return httpError(err)
	}

	total := t.Len()
	limit, offset := getPaginationParams(c, 100)
	page := models.TablePage{Columns: t.Names(), Rows: [][]string{}, Total: total, Limit: limit, Offset: offset}
	if offset >= total {
		return c.JSON(http.StatusOK, page)
	}

	end := offset + limit
	if end > total {
		end = total
	}
	for i := offset; i < end; i++ {
		page.Rows = append(page.Rows, t.Row(i))
	}
	return c.JSON(http.StatusOK, page)
}

// Export downloads the filtered table as CSV.
func (h *Handler) Export(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	sel, err := bindSelection(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := s.Export(sel, &buf); err != nil {
		return httpError(err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", engine.ExportFileName))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *Handler) GetLabels(c echo.Context) error {
	return c.JSON(http.StatusOK, i18n.For(i18n.Resolve(c.QueryParam("lang"))))
}
