package scene

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/ByLCY/coverstudio/book"
	"github.com/ByLCY/coverstudio/gesture"
	"github.com/ByLCY/coverstudio/layout"
	"github.com/ByLCY/coverstudio/logging"
	"github.com/ByLCY/coverstudio/style"
)

// 徽章圆内的留白：内边距 4px 加边框 4px。
const badgeInset = 8.0

// Options 配置合成阶段所需的依赖。
type Options struct {
	Canvas     layout.Canvas
	Watermark  Watermark
	Typesetter Typesetter
}

// Build 解析样式与布局、测量文字、套用各图层的变换后合成绘制栈。
// arena 为 nil 时所有图层使用默认变换且不可交互。
func Build(cfg book.Config, arena *gesture.Arena, background image.Image, opts Options) (Stack, error) {
	if opts.Typesetter == nil {
		return Stack{}, errors.New("缺少排版器")
	}
	canvas := opts.Canvas
	if canvas.Width <= 0 {
		canvas = layout.NewCanvas(0)
	}
	b := &builder{
		cfg:    cfg,
		arena:  arena,
		ts:     opts.Typesetter,
		canvas: canvas,
		geo:    layout.Build(cfg, canvas),
	}
	if arena != nil {
		b.active, b.hasActive = arena.Active()
	}

	var layers []Layer
	band, err := b.band()
	if err != nil {
		return Stack{}, err
	}
	layers = append(layers, band...)

	title, err := b.titleBlock()
	if err != nil {
		return Stack{}, err
	}
	layers = append(layers, title...)

	if cfg.Visible(book.RoleBadge) {
		badge, err := b.badge()
		if err != nil {
			return Stack{}, err
		}
		layers = append(layers, badge)
	}

	logging.L().Debug("合成绘制栈", "layers", len(layers), "canvas", canvas.Width)
	return Compose(canvas, background, opts.Watermark, layers), nil
}

type builder struct {
	cfg       book.Config
	arena     *gesture.Arena
	ts        Typesetter
	canvas    layout.Canvas
	geo       layout.Result
	active    book.Role
	hasActive bool
}

func (b *builder) transform(role book.Role) gesture.Transform {
	if b.arena == nil {
		return gesture.DefaultTransform()
	}
	return b.arena.Transform(role)
}

// text 测量一个文字图层，Rect 只含尺寸，位置由容器决定。
func (b *builder) text(role book.Role) (Layer, error) {
	d := style.Resolve(b.cfg, role)
	tr := b.transform(role)
	size := d.FontSizePx * b.canvas.Scale() * tr.Scale
	limit, constrained := tr.Constraint()
	content := b.cfg.Text(role)

	m, err := b.ts.Measure(content, d, size, limit)
	if err != nil {
		return Layer{}, fmt.Errorf("测量图层 %s 失败: %w", role, err)
	}
	w, h := m.Width, m.Height
	if constrained {
		if d.Vertical() {
			h = limit
		} else {
			w = limit
		}
	}

	l := Layer{
		Kind:      KindText,
		Role:      role,
		Rect:      layout.Rect{W: w, H: h},
		Content:   content,
		TextAlign: book.TextLeft,
		Style:     d,
		SizePx:    size,
		Text:      m,
		Transform: tr,
	}
	b.interaction(&l)
	return l, nil
}

func (b *builder) interaction(l *Layer) {
	if b.arena == nil {
		return
	}
	layer, ok := b.arena.Layer(l.Role)
	if !ok || layer.Disabled() {
		return
	}
	l.Interactive = true
	l.Hovered = layer.Hovered()
	l.Active = b.hasActive && b.active == l.Role
}

// titleBlock 排列副标题、标题、作者。竖排时从右向左排列并顶端对齐，横排时自上而下居中。
func (b *builder) titleBlock() ([]Layer, error) {
	var items []Layer
	for _, role := range []book.Role{book.RoleSubtitle, book.RoleTitle, book.RoleAuthor} {
		if !b.cfg.Visible(role) {
			continue
		}
		l, err := b.text(role)
		if err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	if len(items) == 0 {
		return nil, nil
	}

	g := b.geo.Title
	gap := g.Gap * b.canvas.Scale()
	spacing := gap * float64(len(items)-1)

	var blockW, blockH float64
	for _, it := range items {
		if g.FlowDirection == layout.FlowRowReverse {
			blockW += it.Rect.W
			blockH = math.Max(blockH, it.Rect.H)
		} else {
			blockW = math.Max(blockW, it.Rect.W)
			blockH += it.Rect.H
		}
	}
	if g.FlowDirection == layout.FlowRowReverse {
		blockW += spacing
	} else {
		blockH += spacing
	}
	box := g.Place(b.canvas, blockW, blockH)

	if g.FlowDirection == layout.FlowRowReverse {
		x := box.X + box.W
		for i := range items {
			x -= items[i].Rect.W
			items[i].Rect.X = x
			items[i].Rect.Y = box.Y
			x -= gap
		}
	} else {
		y := box.Y
		for i := range items {
			items[i].Rect.X = box.X + (box.W-items[i].Rect.W)/2
			items[i].Rect.Y = y
			y += items[i].Rect.H + gap
		}
	}
	for i := range items {
		items[i].Rect = items[i].Rect.Translate(items[i].Transform.OffsetX, items[i].Transform.OffsetY)
	}
	return items, nil
}

// band 返回腰封底条与其中的文字，文字自顶部起纵向排列。
func (b *builder) band() ([]Layer, error) {
	if !b.cfg.ShowObi {
		return nil, nil
	}
	g := b.geo.Band
	box := g.Place(b.canvas, 0, 0)
	palette := style.Band(b.cfg)
	out := []Layer{{Kind: KindBand, Rect: box, Band: &palette}}

	scale := b.canvas.Scale()
	padX := g.PaddingX * scale
	y := box.Y + g.PaddingY*scale
	for _, role := range []book.Role{book.RoleBandMain, book.RoleBandSub} {
		if !b.cfg.Visible(role) {
			continue
		}
		l, err := b.text(role)
		if err != nil {
			return nil, err
		}
		l.TextAlign = bandTextAlign(b.cfg.ObiTextAlign)
		switch g.CrossAlign {
		case layout.CrossStart:
			l.Rect.X = box.X + padX
		case layout.CrossEnd:
			l.Rect.X = box.X + box.W - padX - l.Rect.W
		default:
			l.Rect.X = box.X + (box.W-l.Rect.W)/2
		}
		l.Rect.Y = y
		y += l.Rect.H + g.Gap*scale
		l.Rect = l.Rect.Translate(l.Transform.OffsetX, l.Transform.OffsetY)
		out = append(out, l)
	}
	return out, nil
}

// badge 返回圆形徽章。直径取最小直径与文字外接正方形中的较大者。
func (b *builder) badge() (Layer, error) {
	l, err := b.text(book.RoleBadge)
	if err != nil {
		return Layer{}, err
	}
	g := b.geo.Badge
	scale := b.canvas.Scale()
	d := math.Max(g.MinDiameter*scale, math.Max(l.Rect.W, l.Rect.H)+2*badgeInset*scale)
	box := g.Place(b.canvas, d, d)

	palette := style.Badge(b.cfg)
	l.Kind = KindBadge
	l.TextAlign = book.TextCenter
	l.Badge = &palette
	l.Rect = box.Translate(l.Transform.OffsetX, l.Transform.OffsetY)
	l.RotationDeg = g.RotationDeg
	return l, nil
}

func bandTextAlign(a book.TextAlign) book.TextAlign {
	switch a {
	case book.TextLeft, book.TextRight:
		return a
	}
	return book.TextCenter
}
