package output

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	imagepkg "github.com/youruser/cardsheet/internal/image"
	"github.com/youruser/cardsheet/internal/layout"
)

func pages(t *testing.T, cards int) ([]*imagepkg.Page, layout.Grid) {
	t.Helper()
	g, err := layout.Plan(layout.SheetConfig{
		DPI: 72, CardWMM: 63, CardHMM: 88,
		MarginXMM: 7, MarginYMM: 13, GapXMM: 3, GapYMM: 3,
	})
	require.NoError(t, err)
	imgs := make([]image.Image, cards)
	for i := range imgs {
		imgs[i] = imaging.New(40, 56, color.NRGBA{R: uint8(20 * i), B: 200, A: 255})
	}
	return imagepkg.NewCompositor(g, layout.CropConfig{}, layout.BorderConfig{}, nil).Compose(imgs), g
}

func newWriter(t *testing.T, overwrite bool) *Writer {
	t.Helper()
	w, err := New(filepath.Join(t.TempDir(), "out"), overwrite, nil)
	require.NoError(t, err)
	return w
}

func TestSafeName(t *testing.T) {
	tests := map[string]string{
		"OP05-067":          "OP05-067",
		"Monkey.D.Luffy":    "Monkey_D_Luffy",
		"Kuzan  (alt art)!": "Kuzan_alt_art_",
		"ルフィ":               "_",
		"a_b-c":             "a_b-c",
	}
	for in, want := range tests {
		assert.Equal(t, want, SafeName(in), in)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatPDF, "PDF": FormatPDF, "png": FormatPNG, "JPEG": FormatJPG, "jpg": FormatJPG} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("tiff")
	assert.Error(t, err)
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "card.png")
	assert.Equal(t, p, UniquePath(p))

	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	assert.Equal(t, filepath.Join(dir, "card (1).png"), UniquePath(p))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "card (1).png"), []byte("x"), 0o644))
	assert.Equal(t, filepath.Join(dir, "card (2).png"), UniquePath(p))
}

func TestWriteCard(t *testing.T) {
	w := newWriter(t, false)
	img := imaging.New(10, 14, color.White)

	p1, err := w.WriteCard("OP05-067", 1, 2, img)
	require.NoError(t, err)
	p2, err := w.WriteCard("OP05-067", 2, 2, img)
	require.NoError(t, err)
	p3, err := w.WriteCard("OP05-067", 1, 1, img)
	require.NoError(t, err)
	p4, err := w.WriteCard("OP05-067", 1, 1, img)
	require.NoError(t, err)

	assert.Equal(t, "OP05-067_1.png", filepath.Base(p1))
	assert.Equal(t, "OP05-067_2.png", filepath.Base(p2))
	assert.Equal(t, "OP05-067.png", filepath.Base(p3))
	assert.Equal(t, "OP05-067 (1).png", filepath.Base(p4))

	data, err := os.ReadFile(p1)
	require.NoError(t, err)
	decoded, err := imagepkg.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(10, 14), decoded.Bounds().Size())
}

func TestWriteCardOverwriteAndTruncate(t *testing.T) {
	w := newWriter(t, true)
	img := imaging.New(4, 4, color.White)
	long := strings.Repeat("x", 80)

	p1, err := w.WriteCard(long, 1, 1, img)
	require.NoError(t, err)
	p2, err := w.WriteCard(long, 1, 1, img)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
	assert.Equal(t, strings.Repeat("x", 60)+".png", filepath.Base(p1))
}

func TestWriteSheetsPDF(t *testing.T) {
	w := newWriter(t, true)
	ps, _ := pages(t, 11)
	enc, err := NewEncoder(FormatPDF, "OP05-067")
	require.NoError(t, err)

	files, err := w.WriteSheets("OP05-067", enc, ps)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "A4_OP05-067.pdf", filepath.Base(files[0]))

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Equal(t, 2, bytes.Count(data, []byte("/Type /Page\n")))

	again, err := w.WriteSheets("OP05-067", enc, ps)
	require.NoError(t, err)
	assert.Equal(t, "A4_OP05-067 (1).pdf", filepath.Base(again[0]))
}

func TestWriteSheetsRaster(t *testing.T) {
	for _, f := range []Format{FormatPNG, FormatJPG} {
		t.Run(string(f), func(t *testing.T) {
			w := newWriter(t, false)
			ps, g := pages(t, 10)
			enc, err := NewEncoder(f, "")
			require.NoError(t, err)

			files, err := w.WriteSheets("Kuzan", enc, ps)
			require.NoError(t, err)
			require.Len(t, files, 2)
			assert.Equal(t, "A4_Kuzan_001."+string(f), filepath.Base(files[0]))
			assert.Equal(t, "A4_Kuzan_002."+string(f), filepath.Base(files[1]))

			data, err := os.ReadFile(files[1])
			require.NoError(t, err)
			img, err := imagepkg.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, image.Pt(g.PageW, g.PageH), img.Bounds().Size())
		})
	}
}

func TestWriteSheetsNothing(t *testing.T) {
	w := newWriter(t, false)
	enc, err := NewEncoder(FormatPDF, "")
	require.NoError(t, err)
	files, err := w.WriteSheets("x", enc, nil)
	require.NoError(t, err)
	assert.Empty(t, files)
}
