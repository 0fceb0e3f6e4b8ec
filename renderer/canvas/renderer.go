package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/coverstudio/book"
	"github.com/ByLCY/coverstudio/fonts"
	"github.com/ByLCY/coverstudio/layout"
	"github.com/ByLCY/coverstudio/logging"
	"github.com/ByLCY/coverstudio/renderer"
	"github.com/ByLCY/coverstudio/scene"
	"github.com/ByLCY/coverstudio/style"
)

// Renderer draws scene stacks via github.com/tdewolff/canvas.
// 画布坐标以 1 单位 = 1px 处理，字体接口需要 pt，在边界处换算。
type Renderer struct {
	registry *fonts.Registry

	// injected resources
	fontBlobs map[string][]byte // by family name

	fontMu           sync.Mutex
	fontFamilies     map[string]*fontFamilyEntry
	fallbackFamilies map[bool]*canvas.FontFamily
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ scene.Typesetter  = (*Renderer)(nil)
)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// Options configures the canvas renderer.
type Options struct {
	FontDir string
	Fonts   map[string]Resource // 按字体族名注入，优先于字体目录
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a canvas-based renderer that looks fonts up in fontDir.
func NewRenderer(fontDir string) *Renderer { return NewRendererWithOptions(Options{FontDir: fontDir}) }

// NewRendererWithOptions creates a renderer with injected fonts and optional font dir.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		registry:         fonts.NewRegistry(opts.FontDir),
		fontBlobs:        map[string][]byte{},
		fontFamilies:     map[string]*fontFamilyEntry{},
		fallbackFamilies: map[bool]*canvas.FontFamily{},
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.fontBlobs[name] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, _ := os.ReadFile(res.Path) // 读取失败时按未注入处理，使用时回退
			if len(data) > 0 {
				r.fontBlobs[name] = data
			}
		}
	}
	return r
}

// Render 把绘制栈输出为指定格式。PDF 为矢量输出，其余格式先栅格化。
func (r *Renderer) Render(stack scene.Stack, format renderer.Format) ([]byte, error) {
	c, err := r.draw(stack)
	if err != nil {
		return nil, err
	}
	if !format.Bitmap() {
		var buf bytes.Buffer
		writer := pdf.New(&buf, c.W, c.H, nil)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
		return buf.Bytes(), nil
	}
	return renderer.Encode(rasterizer.Draw(c, canvas.DPMM(1), canvas.DefaultColorSpace), format)
}

// RenderImage 把绘制栈栅格化为位图，每个画布像素对应一个图像像素。
func (r *Renderer) RenderImage(stack scene.Stack) (image.Image, error) {
	c, err := r.draw(stack)
	if err != nil {
		return nil, err
	}
	return rasterizer.Draw(c, canvas.DPMM(1), canvas.DefaultColorSpace), nil
}

// Measure 实现 scene.Typesetter：横排按宽度折行，竖排按高度分列。
func (r *Renderer) Measure(text string, d style.Descriptor, sizePx, limit float64) (scene.Measured, error) {
	if sizePx <= 0 {
		return scene.Measured{}, fmt.Errorf("字号必须为正数: %g", sizePx)
	}
	face, err := r.fontFace(d, sizePx, color.Black)
	if err != nil {
		return scene.Measured{}, err
	}
	track := d.TrackingEm * sizePx
	box := sizePx * d.LineHeight

	var advance func(rune) float64
	if d.Vertical() {
		advance = func(rune) float64 { return sizePx + track }
	} else {
		advance = func(ch rune) float64 { return face.TextWidth(string(ch)) + track }
	}
	lines := greedyWrapTokens(text, limit, advance)

	longest := 0.0
	for _, ln := range lines {
		longest = math.Max(longest, ln.Advance)
	}
	across := float64(len(lines)) * box
	if d.Vertical() {
		return scene.Measured{Lines: lines, Width: across, Height: longest}, nil
	}
	return scene.Measured{Lines: lines, Width: longest, Height: across}, nil
}

func (r *Renderer) draw(stack scene.Stack) (*canvas.Canvas, error) {
	w, h := stack.Canvas.Width, stack.Canvas.Height
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("画布尺寸无效: %gx%g", w, h)
	}
	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	ctx.SetFillColor(hexColor(stack.BackgroundColor, 1))
	ctx.SetStrokeColor(color.RGBA{})
	ctx.DrawPath(0, 0, canvas.Rectangle(w, h))
	if stack.Failed {
		return c, nil
	}

	if stack.Background != nil {
		drawBackground(ctx, stack.Background, w, h)
	}
	scale := stack.Canvas.Scale()
	if !stack.Watermark.Hidden {
		if err := r.drawWatermark(ctx, stack.Watermark, stack.Canvas); err != nil {
			return nil, err
		}
	}

	for _, l := range stack.Layers {
		var err error
		switch l.Kind {
		case scene.KindBand:
			if l.Band != nil {
				ctx.SetFillColor(l.Band.Fill.NRGBA())
				ctx.SetStrokeColor(color.RGBA{})
				ctx.DrawPath(l.Rect.X, l.Rect.Y, canvas.Rectangle(l.Rect.W, l.Rect.H))
				if l.Band.HasBorder() {
					bw := l.Band.BorderWidthPx * scale
					ctx.SetFillColor(l.Band.Border.NRGBA())
					ctx.DrawPath(l.Rect.X, l.Rect.Y, canvas.Rectangle(l.Rect.W, bw))
				}
			}
		case scene.KindBadge:
			err = r.drawBadge(ctx, l, scale)
		default:
			err = r.drawText(ctx, l, l.Rect, scale)
		}
		if err != nil {
			return nil, err
		}
		if l.HandleShown() {
			drawHover(ctx, l)
		}
	}

	if !stack.Watermark.Hidden && stack.Watermark.Credit != "" {
		if err := r.drawCredit(ctx, stack.Watermark, stack.Canvas); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// drawBackground 以 object-cover 方式铺满画布。
func drawBackground(ctx *canvas.Context, img image.Image, w, h float64) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	res := math.Min(float64(b.Dx())/w, float64(b.Dy())/h)
	dw, dh := float64(b.Dx())/res, float64(b.Dy())/res
	ctx.DrawImage((w-dw)/2, (h-dh)/2, img, canvas.DPMM(res))
}

// pass 是一次文字绘制：阴影、描边与填充都以带偏移的整段文字叠加实现。
type pass struct {
	col    color.NRGBA
	dx, dy float64
}

// passes 返回文字的绘制顺序：阴影在最下，其后描边，最后填充，描边不会遮住字形内部。
func passes(d style.Descriptor, scale float64) []pass {
	var out []pass
	for _, s := range d.Shadow.Active() {
		dx, dy := s.DX*scale, s.DY*scale
		if s.Blur == 0 {
			out = append(out, pass{col: s.Color, dx: dx, dy: dy})
			continue
		}
		center := s.Color
		center.A = uint8(float64(s.Color.A) / 2)
		out = append(out, pass{col: center, dx: dx, dy: dy})
		for k := 1; k <= 3; k++ {
			radius := s.Blur * scale / 2 * float64(k) / 3
			ring := s.Color
			ring.A = uint8(float64(s.Color.A) / float64(4*k))
			for _, o := range ringOffsets(radius, 8) {
				out = append(out, pass{col: ring, dx: dx + o[0], dy: dy + o[1]})
			}
		}
	}
	if d.Outline.Enabled && d.Outline.WidthPx > 0 {
		// 描边居中于轮廓，可见部分为宽度的一半。
		radius := d.Outline.WidthPx * scale / 2
		col := d.Outline.Color.NRGBA()
		for _, o := range ringOffsets(radius, 16) {
			out = append(out, pass{col: col, dx: o[0], dy: o[1]})
		}
		if radius > 2 {
			for _, o := range ringOffsets(radius/2, 8) {
				out = append(out, pass{col: col, dx: o[0], dy: o[1]})
			}
		}
	}
	return append(out, pass{col: d.TextColor.NRGBA()})
}

func ringOffsets(radius float64, n int) [][2]float64 {
	out := make([][2]float64, 0, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		out = append(out, [2]float64{radius * math.Cos(a), radius * math.Sin(a)})
	}
	return out
}

// drawText 在 box 内绘制文字图层：横排逐行，竖排自右向左逐列、字形直立。
func (r *Renderer) drawText(ctx *canvas.Context, l scene.Layer, box layout.Rect, scale float64) error {
	d := l.Style
	size := l.SizePx
	if size <= 0 || len(l.Text.Lines) == 0 {
		return nil
	}
	track := d.TrackingEm * size
	lineBox := size * d.LineHeight
	faces := map[color.NRGBA]*canvas.FontFace{}

	for _, p := range passes(d, scale) {
		face, ok := faces[p.col]
		if !ok {
			var err error
			face, err = r.fontFace(d, size, p.col)
			if err != nil {
				return err
			}
			faces[p.col] = face
		}
		m := face.Metrics()
		if d.Vertical() {
			for i, col := range l.Text.Lines {
				cx := box.X + box.W - (float64(i)+0.5)*lineBox + p.dx
				y := box.Y + p.dy
				for _, ch := range col.Content {
					baseline := y + (size-(m.Ascent+m.Descent))/2 + m.Ascent
					ctx.DrawText(cx, baseline, canvas.NewTextLine(face, string(ch), canvas.Center))
					y += size + track
				}
			}
			continue
		}
		for i, line := range l.Text.Lines {
			top := box.Y + float64(i)*lineBox
			baseline := top + (lineBox-(m.Ascent+m.Descent))/2 + m.Ascent + p.dy
			x := box.X + p.dx
			switch l.TextAlign {
			case book.TextCenter:
				x += (box.W - line.Advance) / 2
			case book.TextRight:
				x += box.W - line.Advance
			}
			drawRun(ctx, face, x, baseline, line.Content, track)
		}
	}
	return nil
}

// drawRun 绘制一行文字；有字距时逐字绘制。
func drawRun(ctx *canvas.Context, face *canvas.FontFace, x, baseline float64, s string, track float64) {
	if track == 0 {
		ctx.DrawText(x, baseline, canvas.NewTextLine(face, s, canvas.Left))
		return
	}
	for _, ch := range s {
		glyph := string(ch)
		ctx.DrawText(x, baseline, canvas.NewTextLine(face, glyph, canvas.Left))
		x += face.TextWidth(glyph) + track
	}
}

func (r *Renderer) drawBadge(ctx *canvas.Context, l scene.Layer, scale float64) error {
	cx, cy := l.Rect.Center()
	radius := l.Rect.W / 2
	ctx.Push()
	defer ctx.Pop()
	if l.RotationDeg != 0 {
		ctx.RotateAbout(l.RotationDeg, cx, cy)
	}
	if l.Badge != nil {
		ctx.SetFillColor(l.Badge.Fill.NRGBA())
		ctx.SetStrokeColor(color.RGBA{})
		ctx.DrawPath(cx, cy, canvas.Circle(radius))
		if l.Badge.HasBorder() {
			bw := l.Badge.BorderWidthPx * scale
			ctx.SetFillColor(color.RGBA{})
			ctx.SetStrokeColor(l.Badge.Border.NRGBA())
			ctx.SetStrokeWidth(bw)
			ctx.DrawPath(cx, cy, canvas.Circle(radius-bw/2))
		}
	}
	inner := layout.Rect{X: cx - l.Text.Width/2, Y: cy - l.Text.Height/2, W: l.Text.Width, H: l.Text.Height}
	return r.drawText(ctx, l, inner, scale)
}

const handleColor = "#6366F1"

// drawHover 绘制悬停时的虚线框与缩放手柄。
func drawHover(ctx *canvas.Context, l scene.Layer) {
	ctx.Push()
	defer ctx.Pop()
	if l.RotationDeg != 0 {
		cx, cy := l.Rect.Center()
		ctx.RotateAbout(l.RotationDeg, cx, cy)
	}
	ctx.SetFillColor(color.NRGBA{A: 26})
	ctx.SetStrokeColor(color.NRGBA{R: 255, G: 255, B: 255, A: 128})
	ctx.SetStrokeWidth(1)
	ctx.SetDashes(0, 3, 3)
	ctx.DrawPath(l.Rect.X, l.Rect.Y, canvas.Rectangle(l.Rect.W, l.Rect.H))
	ctx.SetDashes(0)

	h, ok := l.HandleRect()
	if !ok {
		return
	}
	hx, hy := h.Center()
	ctx.SetFillColor(hexColor(handleColor, 1))
	ctx.SetStrokeColor(color.White)
	ctx.SetStrokeWidth(2)
	ctx.DrawPath(hx, hy, canvas.Circle(h.W/2))
}

func (r *Renderer) watermarkStyle(size float64, weight style.Weight) style.Descriptor {
	return style.Descriptor{Family: style.DefaultFamily, Weight: weight, LineHeight: 1, FontSizePx: size}
}

// drawWatermark 在画布中央绘制倾斜的试用版水印及其边框。
func (r *Renderer) drawWatermark(ctx *canvas.Context, wm scene.Watermark, cv layout.Canvas) error {
	if wm.Text == "" {
		return nil
	}
	scale := cv.Scale()
	size := wm.SizePx * scale
	d := r.watermarkStyle(size, style.WeightBlack)
	alpha := uint8(math.Round(wm.Opacity * 255))
	col := color.NRGBA{R: 255, G: 255, B: 255, A: alpha}
	face, err := r.fontFace(d, size, col)
	if err != nil {
		return err
	}

	lines := strings.Split(wm.Text, "\n")
	textW := 0.0
	for _, ln := range lines {
		textW = math.Max(textW, face.TextWidth(ln))
	}
	textH := float64(len(lines)) * size
	padX, padY := 32*scale, 16*scale
	boxW, boxH := textW+2*padX, textH+2*padY
	cx, cy := cv.Width/2, cv.Height/2

	ctx.Push()
	defer ctx.Pop()
	ctx.RotateAbout(wm.RotationDeg, cx, cy)
	ctx.SetFillColor(color.RGBA{})
	ctx.SetStrokeColor(col)
	ctx.SetStrokeWidth(wm.FrameWidthPx * scale)
	ctx.DrawPath(cx-boxW/2, cy-boxH/2, canvas.Rectangle(boxW, boxH))

	m := face.Metrics()
	top := cy - textH/2
	for i, ln := range lines {
		baseline := top + float64(i)*size + (size-(m.Ascent+m.Descent))/2 + m.Ascent
		ctx.DrawText(cx, baseline, canvas.NewTextLine(face, ln, canvas.Center))
	}
	return nil
}

// drawCredit 在右下角绘制署名，位于所有图层之上。
func (r *Renderer) drawCredit(ctx *canvas.Context, wm scene.Watermark, cv layout.Canvas) error {
	scale := cv.Scale()
	size := 12 * scale
	alpha := uint8(math.Round(wm.CreditOpacity * 255))
	face, err := r.fontFace(r.watermarkStyle(size, style.WeightBold), size, color.NRGBA{R: 255, G: 255, B: 255, A: alpha})
	if err != nil {
		return err
	}
	m := face.Metrics()
	inset := 8 * scale
	ctx.DrawText(cv.Width-inset, cv.Height-inset-m.Descent, canvas.NewTextLine(face, wm.Credit, canvas.Right))
	return nil
}

func (r *Renderer) fontFace(d style.Descriptor, sizePx float64, col color.Color) (*canvas.FontFace, error) {
	family, fontStyle, err := r.ensureFontFamily(d.Family, d.Weight)
	if err != nil {
		return nil, err
	}
	return family.Face(toPt(sizePx), col, fontStyle, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(name string, weight style.Weight) (*canvas.FontFamily, canvas.FontStyle, error) {
	key := fontCacheKey(name, weight)
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if entry, ok := r.fontFamilies[key]; ok {
		return entry.family, entry.style, nil
	}

	fontStyle := parseFontStyle(weight)
	family := canvas.NewFontFamily(name)
	if err := r.loadFontIntoFamily(family, name, weight, fontStyle); err != nil {
		logging.L().Debug("字体不可用，使用回退字体", "family", name, "weight", weight.String(), "err", err)
		fallback, fbErr := r.fallback(weight >= style.WeightBold)
		if fbErr != nil {
			return nil, canvas.FontRegular, fmt.Errorf("加载回退字体失败: %w", fbErr)
		}
		r.fontFamilies[key] = &fontFamilyEntry{family: fallback, style: canvas.FontRegular}
		return fallback, canvas.FontRegular, nil
	}

	r.fontFamilies[key] = &fontFamilyEntry{family: family, style: fontStyle}
	return family, fontStyle, nil
}

func (r *Renderer) loadFontIntoFamily(family *canvas.FontFamily, name string, weight style.Weight, fontStyle canvas.FontStyle) error {
	data, ok := r.fontBlobs[name]
	if !ok {
		var err error
		data, _, err = r.registry.Load(name, weightName(weight))
		if err != nil {
			return err
		}
	}
	return family.LoadFont(data, 0, fontStyle)
}

// fallback 返回 Go 字体族；调用方需持有 fontMu。
func (r *Renderer) fallback(bold bool) (*canvas.FontFamily, error) {
	if family, ok := r.fallbackFamilies[bold]; ok {
		return family, nil
	}
	name := "coverstudio-fallback"
	if bold {
		name += "-bold"
	}
	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(fonts.Fallback(bold), 0, canvas.FontRegular); err != nil {
		return nil, err
	}
	r.fallbackFamilies[bold] = family
	return family, nil
}

func parseFontStyle(w style.Weight) canvas.FontStyle {
	switch w {
	case style.WeightBlack:
		return canvas.FontBlack
	case style.WeightExtraBold:
		return canvas.FontExtraBold
	case style.WeightBold:
		return canvas.FontBold
	default:
		return canvas.FontRegular
	}
}

func weightName(w style.Weight) string {
	switch w {
	case style.WeightBlack:
		return "Black"
	case style.WeightExtraBold:
		return "ExtraBold"
	case style.WeightBold:
		return "Bold"
	default:
		return "Regular"
	}
}

func fontCacheKey(name string, weight style.Weight) string {
	return fmt.Sprintf("%s|%s", name, weight)
}

func hexColor(hex string, alpha float64) color.NRGBA {
	c, err := style.ParseHex(hex)
	if err != nil {
		c = color.NRGBA{A: 255}
	}
	c.A = uint8(math.Round(float64(c.A) * alpha))
	return c
}

// toPt 将画布像素转换为字体使用的点(pt)。
func toPt(px float64) float64 { return px * layout.MmToPt }

// greedyWrapTokens 按 advance 给出的逐字宽度折行：优先在空白处分割，单词超过限制时在词内拆分。
// limit<=0 表示不限制，仅按显式换行划分。
func greedyWrapTokens(content string, limit float64, advance func(rune) float64) []scene.Line {
	if limit <= 0 {
		limit = math.MaxFloat64
	}
	measure := func(s string) float64 {
		w := 0.0
		for _, ch := range s {
			w += advance(ch)
		}
		return w
	}

	tokens := tokenizeContent(content)
	var lines []scene.Line
	var builder strings.Builder
	currentWidth := 0.0

	emit := func(force bool) {
		if builder.Len() == 0 {
			if force {
				lines = append(lines, scene.Line{})
			}
			return
		}
		lines = append(lines, scene.Line{Content: builder.String(), Advance: currentWidth})
		builder.Reset()
		currentWidth = 0
	}

	appendToken := func(token string) {
		builder.WriteString(token)
		currentWidth += measure(token)
	}

	for _, token := range tokens {
		if token == "\n" {
			emit(true)
			continue
		}

		tokenWidth := measure(token)
		if currentWidth > 0 && currentWidth+tokenWidth > limit {
			emit(false)
		}
		if tokenWidth <= limit {
			appendToken(token)
			continue
		}

		for _, chunk := range splitTokenByWidth(token, limit, measure) {
			chunkWidth := measure(chunk)
			if currentWidth > 0 && currentWidth+chunkWidth > limit {
				emit(false)
			}
			appendToken(chunk)
		}
	}

	emit(true)
	return lines
}

// tokenizeContent 把文本切成空白段与非空白段，CJK 字符各自成段以便在字间折行。
func tokenizeContent(s string) []string {
	var tokens []string
	var builder strings.Builder
	lastWasSpace := false
	flush := func() {
		if builder.Len() == 0 {
			return
		}
		tokens = append(tokens, builder.String())
		builder.Reset()
	}

	for _, r := range s {
		if r == '\r' {
			continue
		}
		if r == '\n' {
			flush()
			tokens = append(tokens, "\n")
			lastWasSpace = false
			continue
		}
		if isCJK(r) {
			flush()
			tokens = append(tokens, string(r))
			lastWasSpace = false
			continue
		}
		isSpace := unicode.IsSpace(r)
		if builder.Len() == 0 {
			lastWasSpace = isSpace
		} else if lastWasSpace != isSpace {
			flush()
			lastWasSpace = isSpace
		}
		builder.WriteRune(r)
	}
	flush()
	return tokens
}

func isCJK(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana) || (r >= 0x3000 && r <= 0x303F) || (r >= 0xFF00 && r <= 0xFFEF)
}

func splitTokenByWidth(token string, limit float64, measure func(string) float64) []string {
	if limit <= 0 || limit == math.MaxFloat64 {
		return []string{token}
	}
	var parts []string
	var builder strings.Builder
	for _, r := range token {
		builder.WriteRune(r)
		if measure(builder.String()) > limit && builder.Len() > 1 {
			runes := []rune(builder.String())
			parts = append(parts, string(runes[:len(runes)-1]))
			builder.Reset()
			builder.WriteRune(r)
		}
	}
	if builder.Len() > 0 {
		parts = append(parts, builder.String())
	}
	return parts
}
