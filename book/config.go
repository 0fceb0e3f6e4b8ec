// Package book 定义封面配置记录与图层角色。
package book

// FontID 是配置中的字体标识（mincho、gothic……）。
type FontID string

const (
	FontMincho    FontID = "mincho"
	FontGothic    FontID = "gothic"
	FontMaru      FontID = "maru"
	FontKaisei    FontID = "kaisei"
	FontPotta     FontID = "potta"
	FontDela      FontID = "dela"
	FontRampart   FontID = "rampart"
	FontMochiy    FontID = "mochiy"
	FontDot       FontID = "dot"
	FontYuji      FontID = "yuji"
	FontHachi     FontID = "hachi"
	FontBizGothic FontID = "bizgothic"
	FontBizMincho FontID = "bizmincho"
	FontIBM       FontID = "ibm"
	FontZenOld    FontID = "zenold"
	FontYomogi    FontID = "yomogi"
)

// ColorName 是具名颜色（white、gold、navy……）。"auto" 表示跟随容器的文字颜色。
type ColorName string

const (
	ColorAuto   ColorName = "auto"
	ColorNone   ColorName = "none"
	ColorWhite  ColorName = "white"
	ColorBlack  ColorName = "black"
	ColorGold   ColorName = "gold"
	ColorSilver ColorName = "silver"
	ColorRed    ColorName = "red"
	ColorBlue   ColorName = "blue"
	ColorPink   ColorName = "pink"
	ColorPurple ColorName = "purple"
	ColorYellow ColorName = "yellow"
	ColorGreen  ColorName = "green"
	ColorOrange ColorName = "orange"
	ColorNavy   ColorName = "navy"
	ColorCyan   ColorName = "cyan"
	ColorGray   ColorName = "gray"
	ColorBrown  ColorName = "brown"
)

// Orientation 为文字方向。
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// Align 是标题块的纵向对齐。
type Align string

const (
	AlignTop    Align = "top"
	AlignCenter Align = "center"
	AlignBottom Align = "bottom"
)

// TextAlign 是腰封文字的水平对齐。
type TextAlign string

const (
	TextLeft   TextAlign = "left"
	TextCenter TextAlign = "center"
	TextRight  TextAlign = "right"
)

// Size 是各类字号/尺寸枚举的公共类型（small、normal、xl、huge……）。
type Size string

const (
	SizeXS     Size = "xs"
	SizeSmall  Size = "small"
	SizeNormal Size = "normal"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
	SizeXL     Size = "xl"
	SizeHuge   Size = "huge"
)

// Tracking 为字距。
type Tracking string

const (
	TrackingTighter Tracking = "tighter"
	TrackingTight   Tracking = "tight"
	TrackingNormal  Tracking = "normal"
	TrackingWide    Tracking = "wide"
	TrackingWider   Tracking = "wider"
	TrackingWidest  Tracking = "widest"
)

// LineHeight 为行高关键字。
type LineHeight string

const (
	LineTight   LineHeight = "tight"
	LineNormal  LineHeight = "normal"
	LineRelaxed LineHeight = "relaxed"
	LineLoose   LineHeight = "loose"
)

// OutlineWidth 为描边粗细。
type OutlineWidth string

const (
	OutlineThin   OutlineWidth = "thin"
	OutlineNormal OutlineWidth = "normal"
	OutlineThick  OutlineWidth = "thick"
	OutlineHeavy  OutlineWidth = "heavy"
)

// Shadow 为阴影类型。
type Shadow string

const (
	ShadowNone Shadow = "none"
	ShadowSoft Shadow = "soft"
	ShadowHard Shadow = "hard"
	ShadowNeon Shadow = "neon"
)

// AnchorX / AnchorY 为徽章的两个独立锚点轴。
type (
	AnchorX string
	AnchorY string
)

const (
	AnchorLeft   AnchorX = "left"
	AnchorCenter AnchorX = "center"
	AnchorRight  AnchorX = "right"

	AnchorTopEdge AnchorY = "top-edge"
	AnchorMiddle  AnchorY = "middle"
	AnchorBottom  AnchorY = "bottom"
)

// Config 是一次渲染所用的完整配置。按值传递，核心逻辑只读。
// JSON 字段名与前端表单保持一致。
type Config struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	Author     string `json:"author"`
	Genre      string `json:"genre"`
	Synopsis   string `json:"synopsis"`
	Characters string `json:"characters"`
	Keywords   string `json:"keywords"`

	BookCategory string `json:"bookCategory"`
	DesignLayout string `json:"designLayout"`
	Composition  string `json:"composition"`
	Mood         string `json:"mood"`
	Lighting     string `json:"lighting"`
	CoverTexture string `json:"coverTexture"`
	ArtStyle     string `json:"artStyle"`
	ColorCount   string `json:"colorCount"`
	ColorTone    string `json:"colorTone"`

	ShowObi        bool      `json:"showObi"`
	ObiMain        string    `json:"obiMain"`
	ObiSub         string    `json:"obiSub"`
	ObiColor       ColorName `json:"obiColor"`
	ObiBorderColor ColorName `json:"obiBorderColor"`
	ObiHeight      Size      `json:"obiHeight"`
	ObiEffect      string    `json:"obiEffect"`
	ObiFont        FontID    `json:"obiFont"`
	ObiTextColor   ColorName `json:"obiTextColor"`
	ObiTextSize    Size      `json:"obiTextSize"`
	ObiTextAlign   TextAlign `json:"obiTextAlign"`

	ShowBadge           bool      `json:"showBadge"`
	ObiBadgeText        string    `json:"obiBadgeText"`
	ObiBadgeColor       ColorName `json:"obiBadgeColor"`
	ObiBadgeTextColor   ColorName `json:"obiBadgeTextColor"`
	ObiBadgeBorderColor ColorName `json:"obiBadgeBorderColor"`
	ObiBadgeFont        FontID    `json:"obiBadgeFont"`
	ObiBadgeAnchorX     AnchorX   `json:"obiBadgeAnchorX"`
	ObiBadgeAnchorY     AnchorY   `json:"obiBadgeAnchorY"`
	ObiBadgeScale       Size      `json:"obiBadgeScale"`

	ShowTitle        bool        `json:"showTitle"`
	TitleOrientation Orientation `json:"titleOrientation"`
	TitleAlign       Align       `json:"titleAlign"`

	TitleFont         FontID       `json:"titleFont"`
	TitleColor        ColorName    `json:"titleColor"`
	TitleSize         Size         `json:"titleSize"`
	TitleShadow       Shadow       `json:"titleShadow"`
	TitleOutline      bool         `json:"titleOutline"`
	TitleOutlineColor ColorName    `json:"titleOutlineColor"`
	TitleOutlineWidth OutlineWidth `json:"titleOutlineWidth"`
	TitleTracking     Tracking     `json:"titleTracking"`
	TitleLineHeight   LineHeight   `json:"titleLineHeight"`

	SubtitleFont         FontID      `json:"subtitleFont"`
	SubtitleColor        ColorName   `json:"subtitleColor"`
	SubtitleSize         Size        `json:"subtitleSize"`
	SubtitleOutline      bool        `json:"subtitleOutline"`
	SubtitleOutlineColor ColorName   `json:"subtitleOutlineColor"`
	SubtitleTracking     Tracking    `json:"subtitleTracking"`
	SubtitleOrientation  Orientation `json:"subtitleOrientation"`

	AuthorFont         FontID      `json:"authorFont"`
	AuthorColor        ColorName   `json:"authorColor"`
	AuthorSize         Size        `json:"authorSize"`
	AuthorOutline      bool        `json:"authorOutline"`
	AuthorOutlineColor ColorName   `json:"authorOutlineColor"`
	AuthorTracking     Tracking    `json:"authorTracking"`
	AuthorOrientation  Orientation `json:"authorOrientation"`
}

// Default 返回表单的初始配置。
func Default() Config {
	return Config{
		Title:    "星屑の錬金術師",
		Subtitle: "古代遺跡に眠る秘宝と、\n世界の終焉",
		Author:   "山田 太郎",
		Genre:    "ファンタジー、冒険",
		Synopsis: "若き錬金術師エリオットは、失われた古代文明の遺跡で、時を操るという伝説の秘宝「クロノス・ギア」を発見する。" +
			"しかし、その秘宝は世界を崩壊させる力も秘めていた。",
		Keywords: "遺跡, 秘宝, 錬金術, 時間, 魔法",

		BookCategory: "novel",
		DesignLayout: "full_art",
		Composition:  "center",
		Mood:         "cinematic",
		Lighting:     "none",
		CoverTexture: "none",
		ArtStyle:     "anime",
		ColorCount:   "auto",
		ColorTone:    "auto",

		ShowObi:        true,
		ObiMain:        "時を超える冒険が、\n今始まる。",
		ObiColor:       ColorYellow,
		ObiBorderColor: ColorNone,
		ObiHeight:      SizeMedium,
		ObiEffect:      "none",
		ObiFont:        FontGothic,
		ObiTextColor:   ColorBlack,
		ObiTextSize:    SizeMedium,
		ObiTextAlign:   TextCenter,

		ShowBadge:           true,
		ObiBadgeText:        "アニメ化\n決定！",
		ObiBadgeColor:       ColorRed,
		ObiBadgeTextColor:   ColorWhite,
		ObiBadgeBorderColor: ColorWhite,
		ObiBadgeFont:        FontPotta,
		ObiBadgeAnchorX:     AnchorRight,
		ObiBadgeAnchorY:     AnchorMiddle,
		ObiBadgeScale:       SizeMedium,

		ShowTitle:        true,
		TitleOrientation: Vertical,
		TitleAlign:       AlignTop,

		TitleFont:         FontMincho,
		TitleColor:        ColorWhite,
		TitleSize:         SizeXL,
		TitleShadow:       ShadowHard,
		TitleOutline:      true,
		TitleOutlineColor: ColorBlack,
		TitleOutlineWidth: OutlineNormal,
		TitleTracking:     TrackingNormal,
		TitleLineHeight:   LineNormal,

		SubtitleFont:         FontMincho,
		SubtitleColor:        ColorWhite,
		SubtitleSize:         SizeNormal,
		SubtitleOutline:      true,
		SubtitleOutlineColor: ColorBlack,
		SubtitleTracking:     TrackingNormal,
		SubtitleOrientation:  Vertical,

		AuthorFont:         FontMincho,
		AuthorColor:        ColorWhite,
		AuthorSize:         SizeNormal,
		AuthorOutline:      true,
		AuthorOutlineColor: ColorBlack,
		AuthorTracking:     TrackingWidest,
		AuthorOrientation:  Vertical,
	}
}
