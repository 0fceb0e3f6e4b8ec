package layout

import "github.com/ByLCY/coverstudio/book"

// 布局规则：标题块、腰封与徽章各自由配置中的方向与对齐字段决定。
// 所有函数均为全函数，未识别的枚举值回退到居中/中号。

// Result 汇总一次布局得到的三个容器。
type Result struct {
	Canvas Canvas   `json:"canvas"`
	Title  Geometry `json:"title"`
	Band   Geometry `json:"band"`
	Badge  Geometry `json:"badge"`
}

// Build 计算全部容器几何。
func Build(cfg book.Config, canvas Canvas) Result {
	return Result{
		Canvas: canvas,
		Title:  PlaceTitle(cfg),
		Band:   PlaceBand(cfg),
		Badge:  PlaceBadge(cfg),
	}
}

const (
	verticalTitleRight = 6.0
	verticalTitleTop   = 6.0
	horizontalTitleTop = 8.0
	titleBottom        = 10.0

	verticalTitleGap   = 16.0
	horizontalTitleGap = 4.0
)

// PlaceTitle 计算标题块（副标题、标题、作者）的容器。
// 竖排时贴右边，列从右向左排列；横排时满宽居中，自上而下排列。
func PlaceTitle(cfg book.Config) Geometry {
	g := Geometry{Block: BlockTitle}
	top := horizontalTitleTop
	if cfg.OrientationOf(book.RoleTitle) == book.Vertical {
		top = verticalTitleTop
		g.AnchorEdge = EdgeRight
		g.X = Anchor{Edge: EdgeRight, Offset: Percent(verticalTitleRight)}
		g.FlowDirection = FlowRowReverse
		g.CrossAlign = CrossStart
		g.Gap = verticalTitleGap
	} else {
		g.AnchorEdge = EdgeLeft
		g.X = Anchor{Edge: EdgeLeft, Offset: Percent(0)}
		g.FullWidth = true
		g.FlowDirection = FlowColumn
		g.CrossAlign = CrossCenter
		g.Gap = horizontalTitleGap
	}

	switch cfg.TitleAlign {
	case book.AlignTop:
		g.Y = Anchor{Edge: EdgeTop, Offset: Percent(top)}
	case book.AlignBottom:
		g.Y = Anchor{Edge: EdgeBottom, Offset: Percent(titleBottom)}
	default:
		g.Y = Anchor{Edge: EdgeTop, Offset: Percent(50)}
		g.ShiftY = -0.5
	}
	g.AlignmentOffset = g.Y.Offset
	return g
}

// BandHeightPercent 返回腰封高度占画布高度的百分比。
func BandHeightPercent(h book.Size) float64 {
	if h == book.SizeLarge {
		return 25
	}
	return 20
}

// PlaceBand 计算腰封容器：贴底、满宽，高度为画布高度的固定百分比。
func PlaceBand(cfg book.Config) Geometry {
	g := Geometry{
		Block:         BlockBand,
		AnchorEdge:    EdgeBottom,
		X:             Anchor{Edge: EdgeLeft, Offset: Percent(0)},
		Y:             Anchor{Edge: EdgeBottom, Offset: Percent(0)},
		FullWidth:     true,
		Height:        Percent(BandHeightPercent(cfg.ObiHeight)),
		FlowDirection: FlowColumn,
		PaddingY:      8,
		Gap:           8,
	}
	switch cfg.ObiTextAlign {
	case book.TextLeft:
		g.CrossAlign = CrossStart
		g.PaddingX = 32
	case book.TextRight:
		g.CrossAlign = CrossEnd
		g.PaddingX = 32
	default:
		g.CrossAlign = CrossCenter
		g.PaddingX = 16
	}
	return g
}

const (
	badgeSideInset = 8.0
	badgeFloor     = 2.0
	badgeTilt      = 12.0
)

// BadgeMinDiameter 返回徽章的最小直径（px）。
func BadgeMinDiameter(scale book.Size) float64 {
	switch scale {
	case book.SizeSmall:
		return 80
	case book.SizeLarge:
		return 150
	default:
		return 110
	}
}

// PlaceBadge 计算徽章容器。纵向以腰封上沿为参照，横向左右两侧带 ∓12° 的倾斜。
// 向下平移自身高度的一半，使圆心落在锚线上。
func PlaceBadge(cfg book.Config) Geometry {
	band := BandHeightPercent(cfg.ObiHeight)
	g := Geometry{
		Block:         BlockBadge,
		AnchorEdge:    EdgeBottom,
		FlowDirection: FlowColumn,
		CrossAlign:    CrossCenter,
		ShiftY:        0.5,
		MinDiameter:   BadgeMinDiameter(cfg.ObiBadgeScale),
	}

	switch cfg.ObiBadgeAnchorY {
	case book.AnchorTopEdge:
		g.Y = Anchor{Edge: EdgeBottom, Offset: Percent(band)}
	case book.AnchorBottom:
		g.Y = Anchor{Edge: EdgeBottom, Offset: Percent(badgeFloor)}
	default:
		g.Y = Anchor{Edge: EdgeBottom, Offset: Percent(band / 2)}
	}
	g.AlignmentOffset = g.Y.Offset

	switch cfg.ObiBadgeAnchorX {
	case book.AnchorLeft:
		g.X = Anchor{Edge: EdgeLeft, Offset: Percent(badgeSideInset)}
		g.RotationDeg = -badgeTilt
	case book.AnchorRight:
		g.X = Anchor{Edge: EdgeRight, Offset: Percent(badgeSideInset)}
		g.RotationDeg = badgeTilt
	default:
		g.X = Anchor{Edge: EdgeLeft, Offset: Percent(50)}
		g.ShiftX = -0.5
	}
	return g
}
