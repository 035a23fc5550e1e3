// Package output encodes composed pages and single cards and writes them
// to disk under collision-free names.
package output

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"

	imagepkg "github.com/youruser/cardsheet/internal/image"
	"github.com/youruser/cardsheet/internal/layout"
)

// Format names a sheet output format.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
	FormatJPG Format = "jpg"
)

// ParseFormat accepts pdf, png, jpg and jpeg in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pdf":
		return FormatPDF, nil
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPG, nil
	}
	return "", fmt.Errorf("unknown sheet format %q", s)
}

// Encoder turns composed pages into file contents.
type Encoder interface {
	// Extension is the file extension including the dot.
	Extension() string
	// SplitPages reports whether every page becomes its own file.
	SplitPages() bool
	// Encode returns one blob per output file.
	Encode(pages []*imagepkg.Page) ([][]byte, error)
}

// NewEncoder returns the encoder for f. title is stored in PDF metadata.
func NewEncoder(f Format, title string) (Encoder, error) {
	switch f {
	case FormatPDF:
		return &PDFEncoder{Title: title}, nil
	case FormatPNG:
		return &RasterEncoder{format: imaging.PNG, ext: ".png"}, nil
	case FormatJPG:
		return &RasterEncoder{format: imaging.JPEG, ext: ".jpg"}, nil
	}
	return nil, fmt.Errorf("unknown sheet format %q", f)
}

// PDFEncoder writes all pages into one A4 document, each page raster
// stretched to the full sheet.
type PDFEncoder struct {
	Title string
}

func (e *PDFEncoder) Extension() string { return ".pdf" }
func (e *PDFEncoder) SplitPages() bool  { return false }

func (e *PDFEncoder) Encode(pages []*imagepkg.Page) ([][]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	if e.Title != "" {
		pdf.SetTitle(e.Title, true)
	}
	pdf.SetCreator("cardsheet", true)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	for i, p := range pages {
		var buf bytes.Buffer
		if err := encodeRaster(&buf, p.Image(), imaging.PNG); err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		name := fmt.Sprintf("page%03d", i+1)
		pdf.RegisterImageOptionsReader(name, opts, &buf)
		pdf.AddPage()
		pdf.ImageOptions(name, 0, 0, layout.PageWidthMM, layout.PageHeightMM, false, opts, 0, "")
	}
	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return [][]byte{out.Bytes()}, nil
}

// RasterEncoder writes each page as its own PNG or JPEG.
type RasterEncoder struct {
	format imaging.Format
	ext    string
}

func (e *RasterEncoder) Extension() string { return e.ext }
func (e *RasterEncoder) SplitPages() bool  { return true }

func (e *RasterEncoder) Encode(pages []*imagepkg.Page) ([][]byte, error) {
	out := make([][]byte, 0, len(pages))
	for i, p := range pages {
		var buf bytes.Buffer
		if err := encodeRaster(&buf, p.Image(), e.format); err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		out = append(out, buf.Bytes())
	}
	return out, nil
}

func encodeRaster(buf *bytes.Buffer, img image.Image, f imaging.Format) error {
	return imaging.Encode(buf, img, f,
		imaging.JPEGQuality(95),
		imaging.PNGCompressionLevel(png.BestSpeed))
}

// EncodePNG encodes a single card image.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
