package scene

import (
	"image"
	"sort"

	"github.com/ByLCY/coverstudio/book"
	"github.com/ByLCY/coverstudio/gesture"
	"github.com/ByLCY/coverstudio/layout"
)

// zOf 返回图层的基础层级。
func zOf(l Layer) int {
	switch {
	case l.Kind == KindBand, l.Role.InBand():
		return ZBand
	case l.Kind == KindBadge, l.Role == book.RoleBadge:
		return ZBadge
	default:
		return ZTitle
	}
}

// Compose 按固定层级合成绘制栈：背景、水印、腰封、标题块、徽章。
// 处于悬停或拖动中的图层在交互期间提升到最上层。图层按画布裁剪，同层级保持传入顺序。
func Compose(canvas layout.Canvas, background image.Image, watermark Watermark, layers []Layer) Stack {
	bounds := layout.Rect{W: canvas.Width, H: canvas.Height}
	out := make([]Layer, 0, len(layers))
	for _, l := range layers {
		l.Z = zOf(l)
		if l.Active {
			l.Z = ZActive
		}
		l.Clip = l.Rect.Intersect(bounds)
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Z < out[j].Z })

	return Stack{
		Canvas:          canvas,
		BackgroundColor: EmptyColor,
		Background:      background,
		HasBackground:   background != nil,
		Watermark:       watermark,
		Layers:          out,
	}
}

// Failed 返回生成失败时的空状态：没有背景，也没有任何图层。
func Failed(canvas layout.Canvas, err error) Stack {
	s := Stack{
		Canvas:          canvas,
		BackgroundColor: EmptyColor,
		Failed:          true,
		Watermark:       Watermark{Hidden: true},
	}
	if err != nil {
		s.Error = err.Error()
	}
	return s
}

// HitTest 返回 (x, y) 处最上层的可交互图层，以及是否命中其缩放手柄。
func (s Stack) HitTest(x, y float64) (gesture.Target, bool) {
	// 画布之外的部分被裁剪，不参与命中。
	if x < 0 || y < 0 || x > s.Canvas.Width || y > s.Canvas.Height {
		return gesture.Target{}, false
	}
	for i := len(s.Layers) - 1; i >= 0; i-- {
		l := s.Layers[i]
		if !l.Interactive || l.Role == "" {
			continue
		}
		if h, ok := l.HandleRect(); ok && h.Contains(x, y) {
			return gesture.Target{Role: l.Role, Handle: true, Extent: l.Extent()}, true
		}
		if l.Rect.ContainsRotated(x, y, l.RotationDeg) {
			return gesture.Target{Role: l.Role, Extent: l.Extent()}, true
		}
	}
	return gesture.Target{}, false
}
