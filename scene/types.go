// Package scene 把背景、水印与已定位、已着色的图层合成为固定层级的绘制栈。
// 该包不做任何文件或网络 I/O；绘制由 renderer 完成。
package scene

import (
	"image"

	"github.com/ByLCY/coverstudio/book"
	"github.com/ByLCY/coverstudio/gesture"
	"github.com/ByLCY/coverstudio/layout"
	"github.com/ByLCY/coverstudio/style"
)

// 层级，自后向前。
const (
	ZBackground = 0
	ZWatermark  = 1
	ZBand       = 2
	ZTitle      = 3
	ZBadge      = 4
	ZActive     = 10
)

// EmptyColor 是画布底色，背景缺失时可见。
const EmptyColor = "#1F2937"

// HandleSize 是缩放手柄的直径（px）。
const HandleSize = 20.0

// Kind 是绘制元素的类型。
type Kind string

const (
	KindBand  Kind = "band"  // 腰封底条，不可交互
	KindText  Kind = "text"  // 标题块与腰封中的文字图层
	KindBadge Kind = "badge" // 圆形徽章及其文字
)

// Line 是排版后的一行（竖排时为一列）。Advance 为沿书写方向的长度。
type Line struct {
	Content string  `json:"content"`
	Advance float64 `json:"advance"`
}

// Measured 是文字的排版结果，尺寸为像素。
type Measured struct {
	Lines  []Line  `json:"lines"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Typesetter 按样式测量文字。limit 为单轴约束（横排限制宽度、竖排限制高度），0 表示不限制。
type Typesetter interface {
	Measure(text string, d style.Descriptor, sizePx float64, limit float64) (Measured, error)
}

// Layer 是绘制栈中的一个元素。
type Layer struct {
	Kind        Kind              `json:"kind"`
	Role        book.Role         `json:"role,omitempty"`
	Z           int               `json:"z"`
	Rect        layout.Rect       `json:"rect"`
	Clip        layout.Rect       `json:"clip"`
	RotationDeg float64           `json:"rotationDeg,omitempty"`
	Content     string            `json:"content,omitempty"`
	TextAlign   book.TextAlign    `json:"textAlign,omitempty"`
	Style       style.Descriptor  `json:"style"`
	SizePx      float64           `json:"sizePx,omitempty"`
	Text        Measured          `json:"text"`
	Band        *style.BandStyle  `json:"band,omitempty"`
	Badge       *style.BadgeStyle `json:"badge,omitempty"`
	Transform   gesture.Transform `json:"transform"`
	Interactive bool              `json:"interactive"`
	Hovered     bool              `json:"hovered"`
	Active      bool              `json:"active"`
}

// Vertical 判断图层是否竖排。
func (l Layer) Vertical() bool { return l.Style.Vertical() }

// HandleShown 判断是否显示缩放手柄：仅在可交互且悬停时出现。
func (l Layer) HandleShown() bool { return l.Interactive && l.Hovered }

// HandleRect 返回缩放手柄的区域：竖排在底边中点，横排在右边中点。
func (l Layer) HandleRect() (layout.Rect, bool) {
	if !l.HandleShown() {
		return layout.Rect{}, false
	}
	cx, cy := l.Rect.Center()
	if l.Vertical() {
		cy = l.Rect.Y + l.Rect.H
	} else {
		cx = l.Rect.X + l.Rect.W
	}
	return layout.Rect{X: cx - HandleSize/2, Y: cy - HandleSize/2, W: HandleSize, H: HandleSize}, true
}

// Extent 返回图层沿约束轴的渲染尺寸。
func (l Layer) Extent() float64 {
	if l.Vertical() {
		return l.Rect.H
	}
	return l.Rect.W
}

// Watermark 描述试用版水印与右下角署名。
type Watermark struct {
	Text          string  `json:"text"`
	Credit        string  `json:"credit"`
	Opacity       float64 `json:"opacity"`
	CreditOpacity float64 `json:"creditOpacity"`
	RotationDeg   float64 `json:"rotationDeg"`
	SizePx        float64 `json:"sizePx"`
	FrameWidthPx  float64 `json:"frameWidthPx"`
	Hidden        bool    `json:"hidden"`
}

// DefaultWatermark 返回试用版水印。
func DefaultWatermark() Watermark {
	return Watermark{
		Text:          "SAMPLE\nTRIAL",
		Credit:        "E-Book Cover AI (Free Trial)",
		Opacity:       0.2,
		CreditOpacity: 0.5,
		RotationDeg:   -30,
		SizePx:        60,
		FrameWidthPx:  4,
	}
}

// Stack 是合成结果：背景、水印与按层级排好的图层。
type Stack struct {
	Canvas          layout.Canvas `json:"canvas"`
	BackgroundColor string        `json:"backgroundColor"`
	Background      image.Image   `json:"-"`
	HasBackground   bool          `json:"hasBackground"`
	Watermark       Watermark     `json:"watermark"`
	Layers          []Layer       `json:"layers"`
	Failed          bool          `json:"failed"`
	Error           string        `json:"error,omitempty"`
}

// Find 返回角色对应的文字或徽章图层。
func (s Stack) Find(role book.Role) (Layer, bool) {
	for _, l := range s.Layers {
		if l.Role == role && l.Kind != KindBand {
			return l, true
		}
	}
	return Layer{}, false
}
