// Package style 把封面配置解析为各图层可直接渲染的样式描述。
// 所有函数均为纯函数：相同输入总是得到相等的输出，未知枚举值回退到默认值。
package style

import (
	"image/color"

	"github.com/ByLCY/coverstudio/book"
)

// Weight 为字重。
type Weight int

const (
	WeightRegular Weight = iota
	WeightBold
	WeightExtraBold
	WeightBlack
)

func (w Weight) String() string {
	switch w {
	case WeightBold:
		return "bold"
	case WeightExtraBold:
		return "extrabold"
	case WeightBlack:
		return "black"
	default:
		return "regular"
	}
}

// Outline 描述文字描边。描边总是画在填充之下，不会遮住字形内部。
type Outline struct {
	Enabled         bool    `json:"enabled"`
	Color           Color   `json:"color"`
	WidthPx         float64 `json:"widthPx"`
	StrokeUnderFill bool    `json:"strokeUnderFill"`
}

// ShadowLayer 是一层阴影，语义同 CSS text-shadow。
type ShadowLayer struct {
	DX    float64     `json:"dx"`
	DY    float64     `json:"dy"`
	Blur  float64     `json:"blur"`
	Color color.NRGBA `json:"color"`
}

// ShadowSpec 最多两层阴影（neon 为双层辉光）。
type ShadowSpec struct {
	Kind   book.Shadow    `json:"kind"`
	Layers [2]ShadowLayer `json:"layers"`
	Count  int            `json:"count"`
}

// Active 返回生效的阴影层。
func (s ShadowSpec) Active() []ShadowLayer {
	return s.Layers[:s.Count]
}

// Descriptor 是一个图层解析后的样式。可以用 == 比较。
type Descriptor struct {
	Role        book.Role        `json:"role"`
	FontID      book.FontID      `json:"fontId"`
	Family      string           `json:"family"`
	Heavy       bool             `json:"heavy"`
	Weight      Weight           `json:"weight"`
	TextColor   Color            `json:"textColor"`
	Tracking    book.Tracking    `json:"tracking"`
	TrackingEm  float64          `json:"trackingEm"`
	Outline     Outline          `json:"outline"`
	Shadow      ShadowSpec       `json:"shadow"`
	Orientation book.Orientation `json:"orientation"`
	LineHeight  float64          `json:"lineHeight"`
	FontSizePx  float64          `json:"fontSizePx"`
}

// TrackingClass 返回字距对应的类名，便于调试输出。
func (d Descriptor) TrackingClass() string { return "tracking-" + string(d.Tracking) }

// Vertical 判断是否竖排。
func (d Descriptor) Vertical() bool { return d.Orientation == book.Vertical }

// roleFields 汇总某个角色在配置中对应的原始字段。
type roleFields struct {
	font         book.FontID
	color        book.ColorName
	size         book.Size
	tracking     book.Tracking
	outline      bool
	outlineColor book.ColorName
	outlineWidth book.OutlineWidth
	shadow       book.Shadow
}

func fieldsFor(cfg book.Config, role book.Role) roleFields {
	switch role {
	case book.RoleTitle:
		return roleFields{cfg.TitleFont, cfg.TitleColor, cfg.TitleSize, cfg.TitleTracking,
			cfg.TitleOutline, cfg.TitleOutlineColor, cfg.TitleOutlineWidth, cfg.TitleShadow}
	case book.RoleSubtitle:
		return roleFields{cfg.SubtitleFont, cfg.SubtitleColor, cfg.SubtitleSize, cfg.SubtitleTracking,
			cfg.SubtitleOutline, cfg.SubtitleOutlineColor, book.OutlineNormal, book.ShadowNone}
	case book.RoleAuthor:
		return roleFields{cfg.AuthorFont, cfg.AuthorColor, cfg.AuthorSize, cfg.AuthorTracking,
			cfg.AuthorOutline, cfg.AuthorOutlineColor, book.OutlineNormal, book.ShadowNone}
	case book.RoleBandMain:
		return roleFields{font: cfg.ObiFont, color: cfg.ObiTextColor, size: cfg.ObiTextSize, tracking: book.TrackingTighter}
	case book.RoleBandSub:
		return roleFields{font: cfg.ObiFont, color: cfg.ObiTextColor, size: cfg.ObiTextSize, tracking: book.TrackingNormal}
	case book.RoleBadge:
		return roleFields{font: cfg.ObiBadgeFont, color: cfg.ObiBadgeTextColor, size: cfg.ObiBadgeScale, tracking: book.TrackingNormal}
	}
	return roleFields{}
}

// Resolve 解析角色的样式描述。该函数是全函数：任何输入都会得到结果。
func Resolve(cfg book.Config, role book.Role) Descriptor {
	f := fieldsFor(cfg, role)
	fontID, family := resolveFont(f.font)

	d := Descriptor{
		Role:        role,
		FontID:      fontID,
		Family:      family,
		Heavy:       IsHeavy(fontID),
		Orientation: cfg.OrientationOf(role),
		FontSizePx:  resolveSize(role, f.size),
	}

	d.Weight = baseWeight(role)
	d.Tracking = resolveTracking(f.tracking)
	// 标题块粗体字体取消加粗；作者行保留配置字距，只有主副标题加宽。
	if d.Heavy && role.InTitleBlock() {
		d.Weight = WeightRegular
		if role != book.RoleAuthor {
			d.Tracking = heavyTracking
		}
	}
	d.TrackingEm = trackingEm[d.Tracking]

	switch {
	case role.InBand():
		d.TextColor = bandText(cfg, f.color)
	case role == book.RoleBadge:
		d.TextColor = badgeText(cfg, f.color)
	default:
		d.TextColor = TextColor(f.color)
	}

	if role.InTitleBlock() {
		d.Outline = resolveOutline(f.outline, f.outlineColor, f.outlineWidth)
		d.Shadow = resolveShadow(f.shadow)
	} else {
		d.Shadow = resolveShadow(book.ShadowNone)
	}

	d.LineHeight = resolveLineHeight(cfg, role)
	return d
}

// ResolveAll 解析全部可见角色。
func ResolveAll(cfg book.Config) map[book.Role]Descriptor {
	out := make(map[book.Role]Descriptor, 6)
	for _, r := range book.Roles() {
		if cfg.Visible(r) {
			out[r] = Resolve(cfg, r)
		}
	}
	return out
}

func resolveFont(id book.FontID) (book.FontID, string) {
	if family, ok := fontFamilies[id]; ok {
		return id, family
	}
	return DefaultFamily, DefaultFamily
}

// FamilyOf 返回字体标识对应的字体族。
func FamilyOf(id book.FontID) string {
	_, family := resolveFont(id)
	return family
}

// IsHeavy 判断字体是否属于粗体子集。
func IsHeavy(id book.FontID) bool { return heavyFonts[id] }

func baseWeight(role book.Role) Weight {
	switch role {
	case book.RoleTitle, book.RoleSubtitle:
		return WeightExtraBold
	case book.RoleBandMain:
		return WeightBlack
	default:
		return WeightBold
	}
}

func resolveTracking(t book.Tracking) book.Tracking {
	if _, ok := trackingEm[t]; ok {
		return t
	}
	return book.TrackingNormal
}

// TextColor 解析文字颜色：先查关键字表（未知为白色），再叠加金/银覆盖色。
func TextColor(name book.ColorName) Color {
	kw, ok := textColors[name]
	if !ok {
		kw = defaultKeyword
	}
	c := keyword(kw)
	if hex, ok := hexOverrides[name]; ok {
		c.Override = hex
	}
	return c
}

func bandText(cfg book.Config, name book.ColorName) Color {
	if name == book.ColorAuto || name == "" {
		return Band(cfg).Ink
	}
	return TextColor(name)
}

func badgeText(cfg book.Config, name book.ColorName) Color {
	if name == book.ColorAuto || name == "" {
		return Badge(cfg).Ink
	}
	return TextColor(name)
}

func resolveOutline(enabled bool, name book.ColorName, width book.OutlineWidth) Outline {
	if !enabled {
		return Outline{}
	}
	kw, ok := outlineColors[name]
	if !ok {
		kw = "black"
	}
	w, ok := outlineWidths[width]
	if !ok {
		w = defaultOutlineWidth
	}
	return Outline{Enabled: true, Color: keyword(kw), WidthPx: w, StrokeUnderFill: true}
}

func resolveShadow(kind book.Shadow) ShadowSpec {
	layers, ok := shadowLayers[kind]
	if !ok {
		kind = book.ShadowNone
		layers = nil
	}
	spec := ShadowSpec{Kind: kind, Count: len(layers)}
	copy(spec.Layers[:], layers)
	return spec
}

// LineHeightOf 把行高关键字换算为倍数，未知值为 1.5。
func LineHeightOf(lh book.LineHeight) float64 {
	if v, ok := lineHeights[lh]; ok {
		return v
	}
	return defaultLineHeight
}

func resolveLineHeight(cfg book.Config, role book.Role) float64 {
	switch role {
	case book.RoleTitle:
		return LineHeightOf(cfg.TitleLineHeight)
	case book.RoleSubtitle, book.RoleAuthor:
		return 1.6
	case book.RoleBandMain, book.RoleBadge:
		return 1.3
	case book.RoleBandSub:
		return 1.5
	}
	return defaultLineHeight
}

func resolveSize(role book.Role, size book.Size) float64 {
	var table map[book.Size]float64
	switch role {
	case book.RoleTitle:
		table = titleSizes
	case book.RoleSubtitle:
		table = subtitleSizes
	case book.RoleAuthor:
		table = authorSizes
	case book.RoleBandMain:
		table = bandMainSizes
	case book.RoleBandSub:
		table = bandSubSizes
	case book.RoleBadge:
		table = badgeSizes
	}
	if v, ok := table[size]; ok {
		return v
	}
	return defaultSizes[role]
}

// BandStyle 是腰封底条的配色。
type BandStyle struct {
	Fill          Color   `json:"fill"`
	Ink           Color   `json:"ink"`
	Border        Color   `json:"border"`
	BorderWidthPx float64 `json:"borderWidthPx"`
}

// HasBorder 判断是否绘制边框。
func (b BandStyle) HasBorder() bool { return b.BorderWidthPx > 0 }

// Band 解析腰封配色，未知颜色回退为黄色、无边框。
func Band(cfg book.Config) BandStyle {
	pair, ok := bandFills[cfg.ObiColor]
	if !ok {
		pair = bandFills[book.ColorYellow]
	}
	b := BandStyle{Fill: keyword(pair[0]), Ink: keyword(pair[1])}
	switch {
	case cfg.ObiBorderColor == book.ColorGold:
		b.Border = Color{Keyword: "amber-600", Override: goldBorder}
		b.BorderWidthPx = bandBorderPx
	default:
		if kw, ok := bandBorders[cfg.ObiBorderColor]; ok {
			b.Border = keyword(kw)
			b.BorderWidthPx = bandBorderPx
		}
	}
	return b
}

// BadgeStyle 是徽章圆形的配色。
type BadgeStyle struct {
	Fill          Color   `json:"fill"`
	Ink           Color   `json:"ink"`
	Border        Color   `json:"border"`
	BorderWidthPx float64 `json:"borderWidthPx"`
}

// HasBorder 判断是否绘制边框。
func (b BadgeStyle) HasBorder() bool { return b.BorderWidthPx > 0 }

// Badge 解析徽章配色，未知颜色回退为 #FFD700 底黑字。
func Badge(cfg book.Config) BadgeStyle {
	pair, ok := badgeFills[cfg.ObiBadgeColor]
	if !ok {
		pair = [2]string{"badge-gold", "black"}
	}
	b := BadgeStyle{Fill: keyword(pair[0]), Ink: keyword(pair[1])}
	switch {
	case cfg.ObiBadgeBorderColor == book.ColorGold:
		b.Border = Color{Keyword: "amber-600", Override: goldBorder}
		b.BorderWidthPx = badgeBorderPx
	default:
		if kw, ok := badgeBorders[cfg.ObiBadgeBorderColor]; ok {
			b.Border = keyword(kw)
			b.BorderWidthPx = badgeBorderPx
		}
	}
	return b
}
