package layout

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ByLCY/coverstudio/book"
)

func TestPlaceTitleVertical(t *testing.T) {
	cfg := book.Default()
	cfg.TitleOrientation = book.Vertical

	cases := []struct {
		align  book.Align
		edge   Edge
		offset Length
		shift  float64
	}{
		{book.AlignTop, EdgeTop, Percent(6), 0},
		{book.AlignCenter, EdgeTop, Percent(50), -0.5},
		{book.AlignBottom, EdgeBottom, Percent(10), 0},
		{"sideways", EdgeTop, Percent(50), -0.5},
	}
	for _, c := range cases {
		cfg.TitleAlign = c.align
		g := PlaceTitle(cfg)
		if g.AnchorEdge != EdgeRight || g.X != (Anchor{Edge: EdgeRight, Offset: Percent(6)}) {
			t.Fatalf("%s: 竖排标题应贴右 6%%，实际 %+v", c.align, g.X)
		}
		if g.FlowDirection != FlowRowReverse || g.CrossAlign != CrossStart || g.Gap != 16 {
			t.Fatalf("%s: 竖排标题应为 row-reverse/start/16，实际 %s/%s/%g", c.align, g.FlowDirection, g.CrossAlign, g.Gap)
		}
		if g.Y.Edge != c.edge || g.Y.Offset != c.offset || g.ShiftY != c.shift {
			t.Fatalf("%s: 纵向锚点错误: %+v shift=%g", c.align, g.Y, g.ShiftY)
		}
	}
}

func TestPlaceTitleHorizontal(t *testing.T) {
	cfg := book.Default()
	cfg.TitleOrientation = book.Horizontal
	cfg.TitleAlign = book.AlignTop

	g := PlaceTitle(cfg)
	if !g.FullWidth || g.FlowDirection != FlowColumn || g.CrossAlign != CrossCenter {
		t.Fatalf("横排标题应满宽纵向居中排列，实际 %+v", g)
	}
	if g.Y.Offset != Percent(8) {
		t.Fatalf("横排顶部偏移应为 8%%，实际 %v", g.Y.Offset)
	}

	rect := g.Place(NewCanvas(400), 120, 200)
	if rect.X != 0 || rect.W != 400 || math.Abs(rect.Y-51.2) > 1e-9 {
		t.Fatalf("横排标题矩形错误: %+v", rect)
	}
}

func TestPlaceBand(t *testing.T) {
	cfg := book.Default()
	cases := map[book.Size]float64{
		book.SizeMedium: 20,
		book.SizeLarge:  25,
		book.SizeXL:     20,
		"enormous":      20,
	}
	for size, want := range cases {
		cfg.ObiHeight = size
		g := PlaceBand(cfg)
		if g.Height != Percent(want) || g.AnchorEdge != EdgeBottom {
			t.Fatalf("%s: 腰封高度期望 %g%%，实际 %v", size, want, g.Height)
		}
	}

	cfg.ObiTextAlign = book.TextRight
	if g := PlaceBand(cfg); g.CrossAlign != CrossEnd || g.PaddingX != 32 {
		t.Fatalf("右对齐腰封应 end/32px，实际 %s/%g", g.CrossAlign, g.PaddingX)
	}
	cfg.ObiTextAlign = "justify"
	if g := PlaceBand(cfg); g.CrossAlign != CrossCenter || g.PaddingX != 16 {
		t.Fatalf("未知对齐应回退居中，实际 %s/%g", g.CrossAlign, g.PaddingX)
	}
}

func TestPlaceBadgeFallsBackToCenterMiddle(t *testing.T) {
	cfg := book.Default()
	cfg.ObiHeight = book.SizeMedium
	cfg.ObiBadgeAnchorX = "north"
	cfg.ObiBadgeAnchorY = "up"
	cfg.ObiBadgeScale = "gigantic"

	g := PlaceBadge(cfg)
	if g.X.Offset != Percent(50) || g.ShiftX != -0.5 || g.RotationDeg != 0 {
		t.Fatalf("未知横向锚点应回退居中无旋转，实际 %+v", g)
	}
	if g.Y.Offset != Percent(10) {
		t.Fatalf("未知纵向锚点应回退为腰封高度一半，实际 %v", g.Y.Offset)
	}
	if g.MinDiameter != 110 {
		t.Fatalf("未知尺寸最小直径应为 110，实际 %g", g.MinDiameter)
	}
}

func TestPlaceBadgeLeftTiltsCounterClockwise(t *testing.T) {
	cfg := book.Default()
	cfg.ObiBadgeAnchorX = book.AnchorLeft
	cfg.ObiBadgeAnchorY = book.AnchorBottom
	cfg.ObiBadgeScale = book.SizeSmall

	g := PlaceBadge(cfg)
	if g.X != (Anchor{Edge: EdgeLeft, Offset: Percent(8)}) || g.RotationDeg != -12 {
		t.Fatalf("左侧徽章应距左 8%% 且 -12°，实际 %+v", g)
	}
	if g.Y.Offset != Percent(2) || g.MinDiameter != 80 {
		t.Fatalf("底部徽章应距底 2%% 直径 80，实际 %+v", g)
	}
}

// 端到端：竖排顶部标题、大号腰封、右侧居中徽章。
func TestEndToEndPlacement(t *testing.T) {
	cfg := book.Default()
	cfg.TitleOrientation = book.Vertical
	cfg.TitleAlign = book.AlignTop
	cfg.ObiHeight = book.SizeLarge
	cfg.ObiBadgeAnchorX = book.AnchorRight
	cfg.ObiBadgeAnchorY = book.AnchorMiddle

	canvas := NewCanvas(400)
	res := Build(cfg, canvas)

	if res.Title.AnchorEdge != EdgeRight || res.Title.FlowDirection != FlowRowReverse {
		t.Fatalf("标题应贴右且反向排列，实际 %+v", res.Title)
	}
	if off := res.Title.Y.Offset.Value; off < 6 || off > 8 {
		t.Fatalf("标题顶部偏移应在 6–8%% 之间，实际 %g", off)
	}
	title := res.Title.Place(canvas, 100, 300)
	if math.Abs(title.X-(400-24-100)) > 1e-9 || math.Abs(title.Y-38.4) > 1e-9 {
		t.Fatalf("标题矩形错误: %+v", title)
	}

	band := res.Band.Place(canvas, 0, 0)
	if band.H != 160 || band.Y != 480 || band.W != 400 {
		t.Fatalf("腰封应占底部 25%%，实际 %+v", band)
	}

	if res.Badge.X != (Anchor{Edge: EdgeRight, Offset: Percent(8)}) || res.Badge.RotationDeg != 12 {
		t.Fatalf("徽章应距右 8%% 且 +12°，实际 %+v", res.Badge)
	}
	if res.Badge.Y.Offset != Percent(12.5) || res.Badge.ShiftY != 0.5 {
		t.Fatalf("徽章应锚在腰封一半高度并平移 50%%，实际 %+v", res.Badge)
	}
	badge := res.Badge.Place(canvas, 110, 110)
	_, cy := badge.Center()
	if math.Abs(cy-(640-80)) > 1e-9 {
		t.Fatalf("徽章圆心应位于腰封高度一半处，实际 cy=%g", cy)
	}
}

func TestRectContainsRotated(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 100, H: 10}
	if !r.ContainsRotated(50, 5, 90) {
		t.Fatalf("中心点总在矩形内")
	}
	if r.ContainsRotated(95, 5, 90) {
		t.Fatalf("旋转 90° 后 (95,5) 不应在矩形内")
	}
	if !r.ContainsRotated(50, 45, 90) {
		t.Fatalf("旋转 90° 后 (50,45) 应在矩形内")
	}
}

func TestWriteDebugJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteDebugJSON(Build(book.Default(), NewCanvas(400)), path); err != nil {
		t.Fatalf("写入调试 JSON 失败: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		t.Fatalf("调试 JSON 为空: %v", err)
	}
}
