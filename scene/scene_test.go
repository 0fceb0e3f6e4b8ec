package scene

import (
	"errors"
	"image"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ByLCY/coverstudio/book"
	"github.com/ByLCY/coverstudio/gesture"
	"github.com/ByLCY/coverstudio/layout"
	"github.com/ByLCY/coverstudio/style"
)

// stubTypesetter 每个字符占一个字号见方，便于推算尺寸。
type stubTypesetter struct{}

func (stubTypesetter) Measure(text string, d style.Descriptor, size, limit float64) (Measured, error) {
	parts := strings.Split(text, "\n")
	longest := 0
	var lines []Line
	for _, p := range parts {
		n := utf8.RuneCountInString(p)
		if n > longest {
			longest = n
		}
		lines = append(lines, Line{Content: p, Advance: float64(n) * size})
	}
	along := float64(longest) * size
	across := float64(len(parts)) * size * d.LineHeight
	if d.Vertical() {
		return Measured{Lines: lines, Width: across, Height: along}, nil
	}
	return Measured{Lines: lines, Width: along, Height: across}, nil
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

type failingTypesetter struct{}

func (failingTypesetter) Measure(string, style.Descriptor, float64, float64) (Measured, error) {
	return Measured{}, errors.New("boom")
}

func build(t *testing.T, cfg book.Config, arena *gesture.Arena) Stack {
	t.Helper()
	stack, err := Build(cfg, arena, image.NewRGBA(image.Rect(0, 0, 10, 16)), Options{
		Canvas:     layout.NewCanvas(400),
		Watermark:  DefaultWatermark(),
		Typesetter: stubTypesetter{},
	})
	if err != nil {
		t.Fatalf("合成失败: %v", err)
	}
	return stack
}

func TestComposeZOrder(t *testing.T) {
	cfg := book.Default()
	cfg.ObiSub = "第2弾"
	arena := gesture.NewArena()
	arena.Sync(cfg)
	stack := build(t, cfg, arena)

	var order []string
	last := -1
	for _, l := range stack.Layers {
		if l.Z < last {
			t.Fatalf("层级未排序: %d 在 %d 之后", l.Z, last)
		}
		last = l.Z
		name := string(l.Kind)
		if l.Role != "" {
			name = string(l.Role)
		}
		order = append(order, name)
	}
	want := "band,bandMain,bandSub,subtitle,title,author,badge"
	if got := strings.Join(order, ","); got != want {
		t.Fatalf("绘制顺序期望 %s，实际 %s", want, got)
	}
	if !stack.HasBackground || stack.BackgroundColor != EmptyColor {
		t.Fatalf("背景信息错误: %+v", stack)
	}
}

func TestActiveLayerElevated(t *testing.T) {
	cfg := book.Default()
	arena := gesture.NewArena()
	arena.Sync(cfg)
	arena.Route(gesture.Event{Kind: gesture.EventMove}, gesture.Target{Role: book.RoleBandMain}, true)

	stack := build(t, cfg, arena)
	top := stack.Layers[len(stack.Layers)-1]
	if top.Role != book.RoleBandMain || top.Z != ZActive {
		t.Fatalf("悬停图层应位于最上层，实际 %s z=%d", top.Role, top.Z)
	}
	if !top.HandleShown() {
		t.Fatalf("悬停图层应显示手柄")
	}
}

func TestVerticalTitleBlockFlowsRightToLeft(t *testing.T) {
	cfg := book.Default()
	stack := build(t, cfg, nil)

	sub, _ := stack.Find(book.RoleSubtitle)
	title, _ := stack.Find(book.RoleTitle)
	author, _ := stack.Find(book.RoleAuthor)
	if !(sub.Rect.X > title.Rect.X && title.Rect.X > author.Rect.X) {
		t.Fatalf("竖排应自右向左: sub=%g title=%g author=%g", sub.Rect.X, title.Rect.X, author.Rect.X)
	}
	right := sub.Rect.X + sub.Rect.W
	if !near(right, 400-24) {
		t.Fatalf("标题块应距右边 6%%，实际右边界 %g", right)
	}
	if sub.Rect.Y != title.Rect.Y || !near(title.Rect.Y, 38.4) {
		t.Fatalf("竖排顶端对齐于 6%%，实际 %g/%g", sub.Rect.Y, title.Rect.Y)
	}
	if gap := sub.Rect.X - (title.Rect.X + title.Rect.W); !near(gap, 16) {
		t.Fatalf("列间距应为 16，实际 %g", gap)
	}
	if sub.Interactive {
		t.Fatalf("无 arena 时图层不可交互")
	}
}

func TestTransformAppliedToLayer(t *testing.T) {
	cfg := book.Default()
	arena := gesture.NewArena()
	arena.Sync(cfg)
	before, _ := build(t, cfg, arena).Find(book.RoleTitle)

	if err := arena.Replay(gesture.Script{Role: book.RoleTitle, Steps: []gesture.Step{
		{Op: gesture.OpPress, X: 0, Y: 0},
		{Op: gesture.OpMove, X: 10, Y: -40},
		{Op: gesture.OpRelease},
		{Op: gesture.OpWheel, N: 2},
	}}, nil); err != nil {
		t.Fatalf("回放失败: %v", err)
	}
	after, _ := build(t, cfg, arena).Find(book.RoleTitle)

	if after.Rect.Y != before.Rect.Y-40 {
		t.Fatalf("纵向偏移未生效: %g -> %g", before.Rect.Y, after.Rect.Y)
	}
	if after.SizePx != before.SizePx*1.1 {
		t.Fatalf("字号应乘以 1.1，实际 %g -> %g", before.SizePx, after.SizePx)
	}
}

func TestAxisConstraintOverridesExtent(t *testing.T) {
	cfg := book.Default()
	cfg.TitleOrientation = book.Horizontal
	arena := gesture.NewArena()
	arena.Sync(cfg)
	if err := arena.Replay(gesture.Script{Role: book.RoleTitle, Steps: []gesture.Step{
		{Op: gesture.OpGrab, X: 0, Y: 0},
		{Op: gesture.OpMove, X: 30, Y: 0},
		{Op: gesture.OpRelease},
	}}, func(book.Role) float64 { return 100 }); err != nil {
		t.Fatalf("回放失败: %v", err)
	}
	title, _ := build(t, cfg, arena).Find(book.RoleTitle)
	if title.Rect.W != 130 {
		t.Fatalf("横排约束应决定宽度 130，实际 %g", title.Rect.W)
	}
}

func TestBandAndBadgeGeometry(t *testing.T) {
	cfg := book.Default()
	cfg.ObiHeight = book.SizeLarge
	cfg.ObiBadgeAnchorX = book.AnchorRight
	cfg.ObiBadgeAnchorY = book.AnchorMiddle
	stack := build(t, cfg, nil)

	var band Layer
	for _, l := range stack.Layers {
		if l.Kind == KindBand {
			band = l
		}
	}
	if band.Rect != (layout.Rect{X: 0, Y: 480, W: 400, H: 160}) {
		t.Fatalf("腰封应占底部 25%%，实际 %+v", band.Rect)
	}
	badge, ok := stack.Find(book.RoleBadge)
	if !ok || badge.Kind != KindBadge || badge.RotationDeg != 12 {
		t.Fatalf("徽章应右倾 12°，实际 %+v", badge)
	}
	if badge.Rect.W < 110 || badge.Rect.W != badge.Rect.H {
		t.Fatalf("徽章应为不小于 110 的正方形，实际 %+v", badge.Rect)
	}
	if _, cy := badge.Rect.Center(); cy != 560 {
		t.Fatalf("徽章圆心应在腰封一半高度，实际 %g", cy)
	}
}

func TestHitTest(t *testing.T) {
	cfg := book.Default()
	arena := gesture.NewArena()
	arena.Sync(cfg)
	stack := build(t, cfg, arena)

	title, _ := stack.Find(book.RoleTitle)
	cx, cy := title.Rect.Center()
	target, ok := stack.HitTest(cx, cy)
	if !ok || target.Role != book.RoleTitle || target.Handle {
		t.Fatalf("应命中标题主体，实际 %+v %v", target, ok)
	}
	if target.Extent != title.Rect.H {
		t.Fatalf("竖排标题的基准尺寸应为高度，实际 %g", target.Extent)
	}

	// 悬停后手柄出现在底边中点
	arena.Route(gesture.Event{Kind: gesture.EventMove, X: cx, Y: cy}, target, true)
	stack = build(t, cfg, arena)
	title, _ = stack.Find(book.RoleTitle)
	target, ok = stack.HitTest(cx, title.Rect.Y+title.Rect.H+5)
	if !ok || !target.Handle {
		t.Fatalf("应命中缩放手柄，实际 %+v %v", target, ok)
	}

	if _, ok := stack.HitTest(-5, 10); ok {
		t.Fatalf("画布外不应命中")
	}
	if _, ok := stack.HitTest(2, 2); ok {
		t.Fatalf("左上角空白处不应命中")
	}
}

func TestFailedStateIsEmpty(t *testing.T) {
	s := Failed(layout.NewCanvas(400), errors.New("quota"))
	if !s.Failed || s.Error != "quota" {
		t.Fatalf("失败状态错误: %+v", s)
	}
	if s.HasBackground || s.Background != nil || len(s.Layers) != 0 {
		t.Fatalf("失败状态不应包含背景或图层")
	}
}

func TestBuildPropagatesTypesetterError(t *testing.T) {
	_, err := Build(book.Default(), nil, nil, Options{Typesetter: failingTypesetter{}})
	if err == nil {
		t.Fatalf("排版失败应返回错误")
	}
	if _, err := Build(book.Default(), nil, nil, Options{}); err == nil {
		t.Fatalf("缺少排版器应返回错误")
	}
}
