package api

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/cardsheet/internal/app"
	"github.com/youruser/cardsheet/internal/config"
	imagepkg "github.com/youruser/cardsheet/internal/image"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, imaging.New(30, 42, color.NRGBA{R: 200, A: 255}), imaging.PNG))
	return buf.Bytes()
}

// newRouter serves OP01-001 from a local folder and OP02-121 from a fake
// CDN, with a catalogue that maps "Kuzan" to OP02-121.
func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	art := pngBytes(t)

	artDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(artDir, "OP01-001.png"), art, 0o644))

	catalogDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(catalogDir, "cardlist_filtered.csv"), []byte(
		"card_id,card_name,type\nOP02-121,Kuzan,CHARACTER\nST06-003,Borsalino,CHARACTER\n"), 0o644))

	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/OP02-121.webp" {
			_, _ = w.Write(art)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(cdn.Close)

	cfg := config.Default()
	cfg.Source = "local"
	cfg.LocalDir = artDir
	cfg.Catalog.Dir = catalogDir
	cfg.Remote.DotGGBase = cdn.URL + "/"
	cfg.Remote.Retries = 0
	cfg.Sheet.DPI = 72

	env, err := app.New(cfg, nil)
	require.NoError(t, err)
	r := gin.New()
	RegisterRoutes(r, NewHandler(env))
	return r
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var rd *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(newRouter(t), http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestResolve(t *testing.T) {
	r := newRouter(t)
	tests := []struct {
		name string
		req  resolveRequest
		code int
	}{
		{"local code", resolveRequest{Term: "op01-001"}, http.StatusOK},
		{"local miss", resolveRequest{Term: "OP09-999"}, http.StatusNotFound},
		{"name through catalogue", resolveRequest{Term: "Kuzan", Source: "dotgg"}, http.StatusOK},
		{"name without catalogue match", resolveRequest{Term: "Nami", Source: "dotgg"}, http.StatusNotFound},
		{"api without base", resolveRequest{Term: "OP01-001", Source: "api"}, http.StatusBadRequest},
		{"unknown source", resolveRequest{Term: "OP01-001", Source: "nope"}, http.StatusBadRequest},
		{"empty term", resolveRequest{}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/resolve", tt.req)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
}

func TestResolveBody(t *testing.T) {
	w := do(newRouter(t), http.MethodPost, "/api/resolve", resolveRequest{Term: "Kuzan", Source: "dotgg", Exhaustive: true})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count    int           `json:"count"`
		Variants []variantInfo `json:"variants"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.True(t, strings.HasSuffix(resp.Variants[0].Locator, "/OP02-121.webp"))
	assert.Positive(t, resp.Variants[0].Size)
}

func TestSheetPDF(t *testing.T) {
	w := do(newRouter(t), http.MethodPost, "/api/sheet", sheetRequest{Deck: "2xOP01-001\n1xZZZ99-999\nKuzan"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "1xZZZ99-999,1xKuzan", w.Header().Get(FailedHeader), "Kuzan is not on the local source")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "A4_OP01-001.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestSheetPNGPage(t *testing.T) {
	r := newRouter(t)
	w := do(r, http.MethodPost, "/api/sheet", sheetRequest{Deck: "10xKuzan", Source: "dotgg", Format: "png", Page: 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Empty(t, w.Header().Get(FailedHeader))

	img, err := imagepkg.Decode(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, image.Pt(595, 842), img.Bounds().Size())

	w = do(r, http.MethodPost, "/api/sheet", sheetRequest{Deck: "10xKuzan", Source: "dotgg", Format: "png", Page: 3})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSheetErrors(t *testing.T) {
	r := newRouter(t)
	tests := []struct {
		name string
		req  sheetRequest
		code int
	}{
		{"empty deck", sheetRequest{Deck: "\n\n"}, http.StatusBadRequest},
		{"bad quantity", sheetRequest{Deck: "0xOP01-001"}, http.StatusBadRequest},
		{"bad format", sheetRequest{Deck: "OP01-001", Format: "gif"}, http.StatusBadRequest},
		{"nothing found", sheetRequest{Deck: "OP09-999"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/sheet", tt.req)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
}

func TestFilter(t *testing.T) {
	w := do(newRouter(t), http.MethodPost, "/api/cards/filter", map[string]any{"free_words": "kuzan"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Count int `json:"count"`
		Cards []struct {
			CardID string `json:"card_id"`
		} `json:"cards"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "OP02-121", resp.Cards[0].CardID)
}

func TestQR(t *testing.T) {
	r := newRouter(t)
	w := do(r, http.MethodGet, "/api/qr?text=4xOP01-001&size=128", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	img, err := imagepkg.Decode(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())

	w = do(r, http.MethodGet, "/api/qr", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
