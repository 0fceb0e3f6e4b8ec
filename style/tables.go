package style

import (
	"image/color"

	"github.com/ByLCY/coverstudio/book"
)

// 每个样式轴一张表；新增枚举值只需修改对应的表。

// fontFamilies: 字体标识 → 渲染字体族。
var fontFamilies = map[book.FontID]string{
	book.FontMincho:    "Noto Serif JP",
	book.FontGothic:    "Noto Sans JP",
	book.FontMaru:      "M PLUS Rounded 1c",
	book.FontKaisei:    "Kaisei Decol",
	book.FontPotta:     "Potta One",
	book.FontDela:      "Dela Gothic One",
	book.FontRampart:   "Rampart One",
	book.FontMochiy:    "Mochiy Pop One",
	book.FontDot:       "DotGothic16",
	book.FontYuji:      "Yuji Syuku",
	book.FontHachi:     "Hachi Maru Pop",
	book.FontBizGothic: "BIZ UDPGothic",
	book.FontBizMincho: "BIZ UDPMincho",
	book.FontIBM:       "IBM Plex Sans JP",
	book.FontZenOld:    "Zen Old Mincho",
	book.FontYomogi:    "Yomogi",
}

// DefaultFamily 是未知字体的回退字体族。
const DefaultFamily = "serif"

// heavyFonts 自身已极粗的字体：不再加粗，并强制加宽字距。
var heavyFonts = map[book.FontID]bool{
	book.FontDela:    true,
	book.FontRampart: true,
	book.FontPotta:   true,
	book.FontDot:     true,
	book.FontMochiy:  true,
}

// trackingEm: 字距关键字 → em。
var trackingEm = map[book.Tracking]float64{
	book.TrackingTighter: -0.05,
	book.TrackingTight:   -0.025,
	book.TrackingNormal:  0,
	book.TrackingWide:    0.025,
	book.TrackingWider:   0.05,
	book.TrackingWidest:  0.1,
}

// heavyTracking 是粗体字强制使用的字距。
const heavyTracking = book.TrackingWider

// textColors: 具名颜色 → 关键字色。金、银不在表中，由 hexOverrides 提供。
var textColors = map[book.ColorName]string{
	book.ColorWhite:  "white",
	book.ColorBlack:  "black",
	book.ColorRed:    "red-600",
	book.ColorBlue:   "blue-500",
	book.ColorPink:   "pink-400",
	book.ColorPurple: "purple-500",
	book.ColorNavy:   "blue-900",
	book.ColorGray:   "gray-500",
	book.ColorBrown:  "amber-800",
}

var hexOverrides = map[book.ColorName]string{
	book.ColorGold:   "#FFD700",
	book.ColorSilver: "#C0C0C0",
}

// outlineColors: 描边颜色 → 关键字色，默认黑色。
var outlineColors = map[book.ColorName]string{
	book.ColorBlack: "black",
	book.ColorWhite: "white",
	book.ColorRed:   "red-600",
	book.ColorBlue:  "blue-600",
	book.ColorGold:  "amber-600",
}

// outlineWidths: 描边粗细 → 像素。
var outlineWidths = map[book.OutlineWidth]float64{
	book.OutlineThin:   2,
	book.OutlineNormal: 4,
	book.OutlineThick:  6,
	book.OutlineHeavy:  8,
}

const defaultOutlineWidth = 4

// shadowLayers: 阴影类型 → 阴影层。
var shadowLayers = map[book.Shadow][]ShadowLayer{
	book.ShadowNone: nil,
	book.ShadowSoft: {{DY: 4, Blur: 10, Color: color.NRGBA{A: 153}}},
	book.ShadowHard: {{DX: 3, DY: 3, Color: color.NRGBA{A: 128}}},
	book.ShadowNeon: {
		{Blur: 10, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 204}},
		{Blur: 20, Color: color.NRGBA{R: 255, G: 255, B: 255, A: 102}},
	},
}

// lineHeights: 行高关键字 → 倍数。
var lineHeights = map[book.LineHeight]float64{
	book.LineTight:   1.2,
	book.LineNormal:  1.5,
	book.LineRelaxed: 1.8,
	book.LineLoose:   2.2,
}

const defaultLineHeight = 1.5

// 以 400px 宽封面为基准的字号（px）。
var (
	titleSizes    = map[book.Size]float64{book.SizeNormal: 60, book.SizeLarge: 72, book.SizeXL: 96, book.SizeHuge: 128}
	subtitleSizes = map[book.Size]float64{book.SizeSmall: 14, book.SizeNormal: 16, book.SizeLarge: 18, book.SizeXL: 20}
	authorSizes   = map[book.Size]float64{book.SizeSmall: 16, book.SizeNormal: 18, book.SizeLarge: 20, book.SizeXL: 24}
	bandMainSizes = map[book.Size]float64{book.SizeSmall: 20, book.SizeMedium: 24, book.SizeLarge: 30}
	bandSubSizes  = map[book.Size]float64{book.SizeSmall: 12, book.SizeMedium: 14, book.SizeLarge: 16}
	badgeSizes    = map[book.Size]float64{book.SizeSmall: 14, book.SizeMedium: 18, book.SizeLarge: 30}
)

var defaultSizes = map[book.Role]float64{
	book.RoleTitle:    96,
	book.RoleSubtitle: 18,
	book.RoleAuthor:   20,
	book.RoleBandMain: 24,
	book.RoleBandSub:  14,
	book.RoleBadge:    18,
}

// 腰封底色：填充色与默认文字色。
var bandFills = map[book.ColorName][2]string{
	book.ColorYellow: {"obi-yellow", "gray-900"},
	book.ColorWhite:  {"white", "gray-900"},
	book.ColorBlack:  {"gray-900", "white"},
	book.ColorRed:    {"red-600", "white"},
	book.ColorBlue:   {"blue-600", "white"},
	book.ColorGreen:  {"green-600", "white"},
	book.ColorPink:   {"pink-400", "gray-900"},
	book.ColorPurple: {"purple-600", "white"},
	book.ColorOrange: {"orange-500", "gray-900"},
	book.ColorNavy:   {"blue-900", "white"},
	book.ColorCyan:   {"cyan-500", "gray-900"},
}

var bandBorders = map[book.ColorName]string{
	book.ColorBlack: "black",
	book.ColorWhite: "white",
	book.ColorRed:   "red-600",
	book.ColorBlue:  "blue-600",
	book.ColorNavy:  "blue-900",
}

// 徽章底色：填充色与默认文字色。
var badgeFills = map[book.ColorName][2]string{
	book.ColorGold:  {"yellow-500", "black"},
	book.ColorRed:   {"red-600", "white"},
	book.ColorBlue:  {"blue-600", "white"},
	book.ColorGreen: {"green-600", "white"},
	book.ColorPink:  {"pink-500", "white"},
	book.ColorWhite: {"white", "black"},
	book.ColorBlack: {"gray-900", "white"},
}

var badgeBorders = map[book.ColorName]string{
	book.ColorWhite: "white",
	book.ColorBlack: "black",
	book.ColorRed:   "red-600",
}

// 金色边框需要覆盖色。
const goldBorder = "#FFD700"

const (
	bandBorderPx  = 4
	badgeBorderPx = 4
)
