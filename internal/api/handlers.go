package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/youruser/cardsheet/internal/app"
	"github.com/youruser/cardsheet/internal/cards"
	"github.com/youruser/cardsheet/internal/deck"
	imagepkg "github.com/youruser/cardsheet/internal/image"
	"github.com/youruser/cardsheet/internal/layout"
	"github.com/youruser/cardsheet/internal/output"
	"github.com/youruser/cardsheet/internal/pipeline"
	"github.com/youruser/cardsheet/internal/source"
)

// FailedHeader carries the lines that produced no image, comma separated.
const FailedHeader = "X-Cardsheet-Failed"

// Handler serves the API from one configured environment.
type Handler struct {
	env    *app.Env
	logger *zap.Logger
}

// NewHandler wraps env.
func NewHandler(env *app.Env) *Handler {
	logger := env.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{env: env, logger: logger}
}

// health
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type resolveRequest struct {
	Term       string `json:"term"`
	Source     string `json:"source"`
	Exhaustive bool   `json:"exhaustive"`
}

type variantInfo struct {
	Locator string `json:"locator"`
	Size    int    `json:"size"`
}

// resolve lists the art found for one term.
func (h *Handler) resolve(c *gin.Context) {
	var req resolveRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Term) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "term is required"})
		return
	}
	kind := req.Source
	if kind == "" {
		kind = h.env.Config.Source
	}
	mode := source.ModeFirst
	if req.Exhaustive {
		mode = source.ModeExhaustive
	}
	variants, err := h.env.Resolver.Resolve(c.Request.Context(), kind, req.Term, mode)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	out := make([]variantInfo, 0, len(variants))
	for _, v := range variants {
		out = append(out, variantInfo{Locator: v.Locator, Size: len(v.Bytes)})
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "variants": out})
}

type sheetRequest struct {
	Deck   string `json:"deck"`
	Source string `json:"source"`
	Format string `json:"format"`
	// Page is the 1-based page returned for raster formats.
	Page int `json:"page"`
}

// sheet builds A4 sheets for a deck list and returns the PDF, or one page
// as an image.
func (h *Handler) sheet(c *gin.Context) {
	var req sheetRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lines, err := deck.ParseString(req.Deck)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deck is empty"})
		return
	}
	format, err := output.ParseFormat(req.Format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts, err := h.env.PipelineOptions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if req.Source != "" {
		opts.Source = req.Source
	}
	opts.Output = pipeline.ModeSheet
	opts.Format = format
	// nobody is there to choose an art variant
	opts.ChooseArt = false

	grid, err := layout.Plan(opts.Sheet)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	runner := pipeline.New(h.env.Resolver, pipeline.FirstSelector{}, h.logger)
	chosen, report, err := runner.Collect(c.Request.Context(), lines, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if failed := report.Failed(); len(failed) > 0 {
		for i, f := range failed {
			failed[i] = url.QueryEscape(f)
		}
		c.Header(FailedHeader, strings.Join(failed, ","))
	}
	pages := runner.Pages(chosen, lines, grid, opts)
	if len(pages) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no card art found", "failed": report.Failed()})
		return
	}

	title := pipeline.Title(lines)
	enc, err := output.NewEncoder(format, title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if enc.SplitPages() {
		page := req.Page
		if page == 0 {
			page = 1
		}
		if page < 1 || page > len(pages) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("page %d out of range 1-%d", page, len(pages))})
			return
		}
		pages = pages[page-1 : page]
	}
	blobs, err := enc.Encode(pages)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	filename := "A4_" + output.SafeName(title) + enc.Extension()
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType(format), blobs[0])
}

func contentType(f output.Format) string {
	switch f {
	case output.FormatPNG:
		return "image/png"
	case output.FormatJPG:
		return "image/jpeg"
	}
	return "application/pdf"
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, source.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, source.ErrUnsupported):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// filter searches the card catalogue.
func (h *Handler) filter(c *gin.Context) {
	if h.env.Catalog == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "card catalogue not loaded"})
		return
	}
	var opt cards.FilterOptions
	if err := c.BindJSON(&opt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out := h.env.Catalog.Filter(opt)
	c.JSON(http.StatusOK, gin.H{"count": len(out), "cards": out})
}

// qr returns a PNG of a QR for the "text" query param
func (h *Handler) qr(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	size := 400
	if s := c.Query("size"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 && v <= 4096 {
			size = v
		}
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}
