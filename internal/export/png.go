package export

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"moodboard/internal/domain"
)

// PNGOptions controls the rendered snapshot.
type PNGOptions struct {
	Padding     float64 // around the bounding box of all items
	FontSize    float64
	ImageWidth  float64 // placeholder frame for image items
	ImageHeight float64
}

// DefaultPNGOptions returns the settings used by the front-ends.
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{
		Padding:     24,
		FontSize:    14,
		ImageWidth:  160,
		ImageHeight: 120,
	}
}

func (o PNGOptions) withDefaults() PNGOptions {
	d := DefaultPNGOptions()
	if o.Padding <= 0 {
		o.Padding = d.Padding
	}
	if o.FontSize <= 0 {
		o.FontSize = d.FontSize
	}
	if o.ImageWidth <= 0 {
		o.ImageWidth = d.ImageWidth
	}
	if o.ImageHeight <= 0 {
		o.ImageHeight = d.ImageHeight
	}
	return o
}

var (
	frameColor = color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}
	fillColor  = color.RGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff}
	labelColor = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
)

type box struct {
	x, y, w, h float64
}

// WritePNG renders items to a PNG file at path. Item positions are kept
// relative to each other; the image is cropped to their bounding box.
func WritePNG(path string, items []domain.Item, opts PNGOptions) error {
	if len(items) == 0 {
		return ErrNothingToExport
	}
	opts = opts.withDefaults()

	face, err := monoFace(opts.FontSize)
	if err != nil {
		return err
	}

	// Measure with a scratch context so text boxes have real widths.
	measure := gg.NewContext(1, 1)
	measure.SetFontFace(face)

	boxes := make([]box, len(items))
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i, it := range items {
		b := box{x: it.Position.Left, y: it.Position.Top}
		switch it.Kind {
		case domain.ItemKindImage:
			b.w, b.h = opts.ImageWidth, opts.ImageHeight
		default:
			b.w, b.h = measureText(measure, it.Content, opts.FontSize)
		}
		boxes[i] = b
		minX = math.Min(minX, b.x)
		minY = math.Min(minY, b.y)
		maxX = math.Max(maxX, b.x+b.w)
		maxY = math.Max(maxY, b.y+b.h)
	}

	width := int(math.Ceil(maxX-minX+2*opts.Padding)) + 1
	height := int(math.Ceil(maxY-minY+2*opts.Padding)) + 1
	offX := opts.Padding - minX
	offY := opts.Padding - minY

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetFontFace(face)

	// Board order is paint order: later items are drawn on top.
	for i, it := range items {
		b := boxes[i]
		x, y := b.x+offX, b.y+offY
		switch it.Kind {
		case domain.ItemKindImage:
			drawImagePlaceholder(dc, it.Content, x, y, b.w, b.h, opts.FontSize)
		default:
			drawText(dc, it.Content, x, y, opts.FontSize)
		}
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("export png: %w", err)
	}
	return nil
}

func monoFace(size float64) (font.Face, error) {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

func lineHeight(fontSize float64) float64 {
	return fontSize * 1.4
}

func measureText(dc *gg.Context, text string, fontSize float64) (w, h float64) {
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		lw, _ := dc.MeasureString(line)
		w = math.Max(w, lw)
	}
	return w, float64(len(lines)) * lineHeight(fontSize)
}

func drawText(dc *gg.Context, text string, x, y, fontSize float64) {
	dc.SetColor(color.Black)
	for i, line := range strings.Split(text, "\n") {
		// DrawString takes the baseline.
		dc.DrawString(line, x, y+fontSize+float64(i)*lineHeight(fontSize))
	}
}

func drawImagePlaceholder(dc *gg.Context, url string, x, y, w, h, fontSize float64) {
	dc.SetColor(fillColor)
	dc.DrawRectangle(x, y, w, h)
	dc.Fill()

	dc.SetColor(frameColor)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x+0.5, y+0.5, w-1, h-1)
	dc.Stroke()
	dc.DrawLine(x, y, x+w, y+h)
	dc.DrawLine(x+w, y, x, y+h)
	dc.Stroke()

	dc.SetColor(labelColor)
	label := fitLabel(dc, url, w-8)
	dc.DrawStringAnchored(label, x+w/2, y+h-fontSize/2, 0.5, 0)
}

// fitLabel shortens s with a trailing ellipsis until it fits in max pixels.
func fitLabel(dc *gg.Context, s string, max float64) string {
	if w, _ := dc.MeasureString(s); w <= max {
		return s
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		candidate := string(r) + "…"
		if w, _ := dc.MeasureString(candidate); w <= max {
			return candidate
		}
	}
	return ""
}
