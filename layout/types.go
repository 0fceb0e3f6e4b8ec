package layout

import "math"

// 该文件定义容器几何与画布，供布局计算、合成与调试 JSON 共用。

// DefaultWidth 是参考画布宽度（px），字号与内边距均以此为基准。
const DefaultWidth = 400.0

// AspectRatio 是封面的宽高比（10:16），不可配置。
const AspectRatio = 10.0 / 16.0

// Canvas 描述当前渲染的画布像素尺寸。
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewCanvas 按固定宽高比创建画布；width<=0 时使用参考宽度。
func NewCanvas(width float64) Canvas {
	if width <= 0 {
		width = DefaultWidth
	}
	return Canvas{Width: width, Height: width / AspectRatio}
}

// Scale 返回参考像素到实际像素的倍数。
func (c Canvas) Scale() float64 {
	if c.Width <= 0 {
		return 1
	}
	return c.Width / DefaultWidth
}

// X 把水平方向的长度换算为像素。
func (c Canvas) X(l Length) float64 { return l.Resolve(c.Width, c.Scale()) }

// Y 把垂直方向的长度换算为像素。
func (c Canvas) Y(l Length) float64 { return l.Resolve(c.Height, c.Scale()) }

// Block 标识一个布局容器。
type Block string

const (
	BlockTitle Block = "title"
	BlockBand  Block = "band"
	BlockBadge Block = "badge"
)

// Edge 是容器锚定的画布边。
type Edge string

const (
	EdgeTop    Edge = "top"
	EdgeRight  Edge = "right"
	EdgeBottom Edge = "bottom"
	EdgeLeft   Edge = "left"
)

// Flow 为容器内子元素的排列方向。
type Flow string

const (
	FlowColumn     Flow = "column"
	FlowRow        Flow = "row"
	FlowRowReverse Flow = "row-reverse"
)

// CrossAlign 为交叉轴对齐。
type CrossAlign string

const (
	CrossStart  CrossAlign = "start"
	CrossCenter CrossAlign = "center"
	CrossEnd    CrossAlign = "end"
)

// Anchor 描述容器在一个轴上相对画布边的偏移。
type Anchor struct {
	Edge   Edge   `json:"edge"`
	Offset Length `json:"offset"`
}

// Geometry 是一个容器的布局结果，完全由配置决定。
// ShiftX/ShiftY 以容器自身尺寸为单位（-0.5 即 translate(-50%)）。
type Geometry struct {
	Block           Block      `json:"block"`
	AnchorEdge      Edge       `json:"anchorEdge"`
	AlignmentOffset Length     `json:"alignmentOffset"`
	FlowDirection   Flow       `json:"flowDirection"`
	CrossAlign      CrossAlign `json:"crossAlign"`
	FullWidth       bool       `json:"fullWidth"`

	X Anchor `json:"x"`
	Y Anchor `json:"y"`

	Height Length `json:"height,omitempty"`

	ShiftX      float64 `json:"shiftX,omitempty"`
	ShiftY      float64 `json:"shiftY,omitempty"`
	RotationDeg float64 `json:"rotationDeg,omitempty"`

	PaddingX    float64 `json:"paddingX,omitempty"`
	PaddingY    float64 `json:"paddingY,omitempty"`
	Gap         float64 `json:"gap,omitempty"`
	MinDiameter float64 `json:"minDiameter,omitempty"`
}

// Place 计算内容尺寸为 w×h 时容器在画布上的矩形。
// 满宽容器忽略 w；指定了 Height 的容器忽略 h。徽章的旋转不影响矩形，由绘制阶段绕中心处理。
func (g Geometry) Place(c Canvas, w, h float64) Rect {
	if g.FullWidth {
		w = c.Width
	}
	if !g.Height.IsZero() {
		h = c.Y(g.Height)
	}

	var x, y float64
	switch g.X.Edge {
	case EdgeRight:
		x = c.Width - c.X(g.X.Offset) - w
	default:
		x = c.X(g.X.Offset)
	}
	switch g.Y.Edge {
	case EdgeBottom:
		y = c.Height - c.Y(g.Y.Offset) - h
	default:
		y = c.Y(g.Y.Offset)
	}
	x += g.ShiftX * w
	y += g.ShiftY * h
	return Rect{X: x, Y: y, W: w, H: h}
}

// Rect 是画布像素坐标系（左上角为原点）下的矩形。
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Contains 判断点是否落在矩形内（含边界）。
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Center 返回矩形中心。
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Translate 平移矩形。
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Intersect 返回两个矩形的交集，不相交时宽高为 0。
func (r Rect) Intersect(o Rect) Rect {
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.X+r.W, o.X+o.W)
	y1 := math.Min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// ContainsRotated 判断点是否落在绕中心旋转 deg 度后的矩形内。
func (r Rect) ContainsRotated(x, y, deg float64) bool {
	if deg == 0 {
		return r.Contains(x, y)
	}
	cx, cy := r.Center()
	rad := -deg * math.Pi / 180
	dx, dy := x-cx, y-cy
	rx := dx*math.Cos(rad) - dy*math.Sin(rad)
	ry := dx*math.Sin(rad) + dy*math.Cos(rad)
	return r.Contains(cx+rx, cy+ry)
}
