package canvasrenderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/ByLCY/coverstudio/book"
	"github.com/ByLCY/coverstudio/layout"
	"github.com/ByLCY/coverstudio/renderer"
	"github.com/ByLCY/coverstudio/scene"
	"github.com/ByLCY/coverstudio/style"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func horizontal(family string) style.Descriptor {
	return style.Descriptor{Family: family, Weight: style.WeightRegular, LineHeight: 1.2, Orientation: book.Horizontal}
}

func TestMeasureWrapsHorizontalText(t *testing.T) {
	r := NewRenderer("")
	d := horizontal("serif")

	m, err := r.Measure("hello world again", d, 16, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Lines) < 2 {
		t.Fatalf("expected wrapping into multiple lines, got %d", len(m.Lines))
	}
	for _, ln := range m.Lines {
		if ln.Advance > 60 {
			t.Fatalf("line %q exceeds limit: %g", ln.Content, ln.Advance)
		}
	}
	if !near(m.Height, float64(len(m.Lines))*16*1.2) {
		t.Fatalf("unexpected height %g for %d lines", m.Height, len(m.Lines))
	}
}

func TestMeasureHonorsNewlines(t *testing.T) {
	r := NewRenderer("")
	m, err := r.Measure("foo\n\nbar", horizontal("serif"), 16, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Lines) != 3 {
		t.Fatalf("expected 3 lines including blank, got %d", len(m.Lines))
	}
	if m.Lines[1].Content != "" {
		t.Fatalf("expected middle line to be blank, got %q", m.Lines[1].Content)
	}
}

func TestMeasureVerticalColumns(t *testing.T) {
	r := NewRenderer("")
	d := style.Descriptor{Family: "serif", Weight: style.WeightBold, LineHeight: 1.2, Orientation: book.Vertical}

	m, err := r.Measure("一二三四五六", d, 20, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Lines) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(m.Lines))
	}
	if !near(m.Height, 40) || !near(m.Width, 72) {
		t.Fatalf("unexpected size %gx%g", m.Width, m.Height)
	}
}

func TestMeasureTrackingWidensRuns(t *testing.T) {
	r := NewRenderer("")
	plain := horizontal("serif")
	wide := plain
	wide.TrackingEm = 0.1

	a, err := r.Measure("ab", plain, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := r.Measure("ab", wide, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !near(b.Width-a.Width, 4) {
		t.Fatalf("expected tracking to add 4px, got %g", b.Width-a.Width)
	}
}

func TestMeasureRejectsNonPositiveSize(t *testing.T) {
	if _, err := NewRenderer("").Measure("x", horizontal("serif"), 0, 0); err == nil {
		t.Fatalf("expected error for zero size")
	}
}

func TestInjectedFontMatchesFallback(t *testing.T) {
	r := NewRendererWithOptions(Options{Fonts: map[string]Resource{"Custom": {Bytes: goregular.TTF}}})

	a, err := r.Measure("Injected", horizontal("Custom"), 18, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := r.Measure("Injected", horizontal("missing-family"), 18, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !near(a.Width, b.Width) {
		t.Fatalf("expected identical widths, got %g and %g", a.Width, b.Width)
	}
}

func TestRenderDefaultCoverPNG(t *testing.T) {
	r := NewRenderer("")
	stack, err := scene.Build(book.Default(), nil, nil, scene.Options{
		Canvas:     layout.NewCanvas(400),
		Watermark:  scene.DefaultWatermark(),
		Typesetter: r,
	})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	out, err := r.Render(stack, renderer.FormatPNG)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 640 {
		t.Fatalf("unexpected size %v", b)
	}

	doc, err := r.Render(stack, renderer.FormatPDF)
	if err != nil {
		t.Fatalf("pdf render failed: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Fatalf("expected PDF header")
	}
}

func TestRenderFailedStackIsEmptyColor(t *testing.T) {
	img, err := NewRenderer("").RenderImage(scene.Failed(layout.NewCanvas(400), nil))
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	assertPixel(t, img, 200, 320, color.NRGBA{R: 0x1F, G: 0x29, B: 0x37, A: 255})
}

func TestRenderBackgroundCovers(t *testing.T) {
	bg := image.NewRGBA(image.Rect(0, 0, 10, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 10; x++ {
			bg.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	stack := scene.Compose(layout.NewCanvas(400), bg, scene.Watermark{Hidden: true}, nil)
	img, err := NewRenderer("").RenderImage(stack)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	assertPixel(t, img, 200, 100, color.NRGBA{R: 255, A: 255})
}

func TestRenderRejectsEmptyCanvas(t *testing.T) {
	if _, err := NewRenderer("").Render(scene.Stack{}, renderer.FormatPNG); err == nil {
		t.Fatalf("expected error for empty canvas")
	}
}

func assertPixel(t *testing.T, img image.Image, x, y int, want color.NRGBA) {
	t.Helper()
	got := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	diff := func(a, b uint8) int {
		d := int(a) - int(b)
		if d < 0 {
			return -d
		}
		return d
	}
	if diff(got.R, want.R) > 2 || diff(got.G, want.G) > 2 || diff(got.B, want.B) > 2 {
		t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
	}
}

func TestGreedyWrapSplitsLongWords(t *testing.T) {
	lines := greedyWrapTokens("abcdefgh", 3, func(rune) float64 { return 1 })
	if len(lines) != 3 || lines[0].Content != "abc" || lines[2].Content != "gh" {
		t.Fatalf("unexpected lines %+v", lines)
	}
}
