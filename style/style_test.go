package style

import (
	"testing"

	"github.com/ByLCY/coverstudio/book"
)

func TestResolveIsIdempotent(t *testing.T) {
	cfg := book.Default()
	for _, role := range book.Roles() {
		a := Resolve(cfg, role)
		b := Resolve(cfg, role)
		if a != b {
			t.Fatalf("%s 两次解析结果不同: %+v vs %+v", role, a, b)
		}
	}
}

func TestResolveFallsBackOnGarbage(t *testing.T) {
	cfg := book.Default()
	cfg.TitleFont = "comic-sans"
	cfg.TitleColor = "ultraviolet"
	cfg.TitleTracking = "???"
	cfg.TitleSize = "gigantic"
	cfg.TitleShadow = "laser"
	cfg.TitleOutlineWidth = "hairline"
	cfg.TitleOutlineColor = "chartreuse"
	cfg.TitleLineHeight = "double"
	cfg.TitleOrientation = "diagonal"

	d := Resolve(cfg, book.RoleTitle)
	if d.Family != DefaultFamily {
		t.Fatalf("未知字体应回退为 %s，实际 %s", DefaultFamily, d.Family)
	}
	if d.TextColor.Hex() != "#FFFFFF" {
		t.Fatalf("未知颜色应回退为白色，实际 %s", d.TextColor.Hex())
	}
	if d.Tracking != book.TrackingNormal || d.TrackingEm != 0 {
		t.Fatalf("未知字距应回退为 normal，实际 %s", d.Tracking)
	}
	if d.FontSizePx != 96 {
		t.Fatalf("未知字号应回退为 96，实际 %g", d.FontSizePx)
	}
	if d.Shadow.Kind != book.ShadowNone || d.Shadow.Count != 0 {
		t.Fatalf("未知阴影应回退为 none，实际 %+v", d.Shadow)
	}
	if d.Outline.WidthPx != 4 || d.Outline.Color.Hex() != "#000000" {
		t.Fatalf("描边应回退为 4px 黑色，实际 %+v", d.Outline)
	}
	if d.LineHeight != 1.5 {
		t.Fatalf("未知行高应回退为 1.5，实际 %g", d.LineHeight)
	}
	if d.Orientation != book.Horizontal {
		t.Fatalf("未知方向应回退为横排，实际 %s", d.Orientation)
	}
}

func TestGoldAndSilverUseHexOverride(t *testing.T) {
	cfg := book.Default()
	cfg.TitleColor = book.ColorGold
	cfg.AuthorColor = book.ColorSilver
	if got := Resolve(cfg, book.RoleTitle).TextColor; got.Override != "#FFD700" || got.Hex() != "#FFD700" {
		t.Fatalf("金色应使用覆盖色 #FFD700，实际 %+v", got)
	}
	if got := Resolve(cfg, book.RoleAuthor).TextColor; got.Override != "#C0C0C0" {
		t.Fatalf("银色应使用覆盖色 #C0C0C0，实际 %+v", got)
	}
	if got := Resolve(cfg, book.RoleSubtitle).TextColor; got.Override != "" {
		t.Fatalf("普通颜色不应带覆盖色，实际 %+v", got)
	}
}

func TestHeavyFontOverridesWeightAndTracking(t *testing.T) {
	cfg := book.Default()
	cfg.TitleFont = book.FontDela
	cfg.TitleTracking = book.TrackingTighter

	d := Resolve(cfg, book.RoleTitle)
	if !d.Heavy {
		t.Fatalf("dela 应属于粗体字体")
	}
	if d.Weight != WeightRegular {
		t.Fatalf("粗体字体不应再加粗，实际 %s", d.Weight)
	}
	if d.Tracking != book.TrackingWider {
		t.Fatalf("粗体字体应强制加宽字距，实际 %s", d.Tracking)
	}

	cfg.TitleFont = book.FontMincho
	if d := Resolve(cfg, book.RoleTitle); d.Weight != WeightExtraBold || d.Tracking != book.TrackingTighter {
		t.Fatalf("普通字体应保持特粗与配置字距，实际 %s/%s", d.Weight, d.Tracking)
	}

	cfg.SubtitleFont = book.FontDela
	cfg.SubtitleTracking = book.TrackingTight
	if d := Resolve(cfg, book.RoleSubtitle); d.Weight != WeightRegular || d.Tracking != book.TrackingWider {
		t.Fatalf("副标题粗体字体应取消加粗并加宽字距，实际 %s/%s", d.Weight, d.Tracking)
	}
	cfg.AuthorFont = book.FontDela
	cfg.AuthorTracking = book.TrackingTight
	if d := Resolve(cfg, book.RoleAuthor); d.Weight != WeightRegular || d.Tracking != book.TrackingTight {
		t.Fatalf("作者粗体字体只取消加粗，字距保持配置，实际 %s/%s", d.Weight, d.Tracking)
	}
}

func TestOutlineWidths(t *testing.T) {
	cases := map[book.OutlineWidth]float64{
		book.OutlineThin:   2,
		book.OutlineNormal: 4,
		book.OutlineThick:  6,
		book.OutlineHeavy:  8,
	}
	cfg := book.Default()
	for width, want := range cases {
		cfg.TitleOutlineWidth = width
		o := Resolve(cfg, book.RoleTitle).Outline
		if !o.Enabled || o.WidthPx != want {
			t.Fatalf("%s 描边期望 %gpx，实际 %+v", width, want, o)
		}
		if !o.StrokeUnderFill {
			t.Fatalf("描边必须画在填充之下")
		}
	}

	cfg.TitleOutline = false
	if o := Resolve(cfg, book.RoleTitle).Outline; o.Enabled || o.WidthPx != 0 {
		t.Fatalf("关闭描边后不应有描边，实际 %+v", o)
	}
}

func TestOutlineAndShadowCompose(t *testing.T) {
	cfg := book.Default()
	cfg.TitleOutline = true
	cfg.TitleShadow = book.ShadowNeon

	d := Resolve(cfg, book.RoleTitle)
	if !d.Outline.Enabled {
		t.Fatalf("描边不应被阴影抑制")
	}
	if d.Shadow.Count != 2 || len(d.Shadow.Active()) != 2 {
		t.Fatalf("neon 应为双层辉光，实际 %+v", d.Shadow)
	}
	if d.Shadow.Layers[1].Blur != 20 {
		t.Fatalf("第二层辉光模糊半径应为 20，实际 %g", d.Shadow.Layers[1].Blur)
	}
	if sub := Resolve(cfg, book.RoleSubtitle); sub.Shadow.Count != 0 {
		t.Fatalf("副标题不带阴影，实际 %+v", sub.Shadow)
	}
}

func TestLineHeights(t *testing.T) {
	cases := map[book.LineHeight]float64{
		book.LineTight:   1.2,
		book.LineNormal:  1.5,
		book.LineRelaxed: 1.8,
		book.LineLoose:   2.2,
		"weird":          1.5,
	}
	for lh, want := range cases {
		if got := LineHeightOf(lh); got != want {
			t.Fatalf("%s 行高期望 %g，实际 %g", lh, want, got)
		}
	}
	cfg := book.Default()
	if got := Resolve(cfg, book.RoleBandMain).LineHeight; got != 1.3 {
		t.Fatalf("腰封主文案行高应为 1.3，实际 %g", got)
	}
}

func TestBandAndBadgePalettes(t *testing.T) {
	cfg := book.Default()
	cfg.ObiColor = "mauve"
	band := Band(cfg)
	if band.Fill.Hex() != "#FFD900" || band.HasBorder() {
		t.Fatalf("未知腰封颜色应回退为黄色无边框，实际 %+v", band)
	}

	cfg.ObiColor = book.ColorBlack
	cfg.ObiBorderColor = book.ColorGold
	cfg.ObiTextColor = book.ColorAuto
	band = Band(cfg)
	if band.Border.Hex() != "#FFD700" || band.BorderWidthPx != 4 {
		t.Fatalf("金色边框应为 #FFD700 4px，实际 %+v", band)
	}
	if got := Resolve(cfg, book.RoleBandMain).TextColor.Hex(); got != "#FFFFFF" {
		t.Fatalf("auto 文字颜色应跟随腰封墨色（白），实际 %s", got)
	}

	cfg.ObiBadgeColor = "plaid"
	cfg.ObiBadgeTextColor = book.ColorAuto
	badge := Badge(cfg)
	if badge.Fill.Hex() != "#FFD700" || badge.Ink.Hex() != "#000000" {
		t.Fatalf("未知徽章颜色应回退为金底黑字，实际 %+v", badge)
	}
	if got := Resolve(cfg, book.RoleBadge).TextColor.Hex(); got != "#000000" {
		t.Fatalf("auto 徽章文字应为黑色，实际 %s", got)
	}
}

func TestBandAndBadgeAlwaysHorizontal(t *testing.T) {
	cfg := book.Default()
	for _, role := range []book.Role{book.RoleBandMain, book.RoleBandSub, book.RoleBadge} {
		if d := Resolve(cfg, role); d.Vertical() {
			t.Fatalf("%s 应恒为横排", role)
		}
	}
	if d := Resolve(cfg, book.RoleBandMain); d.Tracking != book.TrackingTighter || d.Weight != WeightBlack {
		t.Fatalf("腰封主文案应为 black/tighter，实际 %s/%s", d.Weight, d.Tracking)
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#F00")
	if err != nil || c.R != 255 || c.G != 0 || c.A != 255 {
		t.Fatalf("解析 #F00 失败: %+v %v", c, err)
	}
	if _, err := ParseHex("#12"); err == nil {
		t.Fatalf("非法颜色应报错")
	}
}

func TestResolveAllSkipsHiddenRoles(t *testing.T) {
	cfg := book.Default()
	cfg.ShowBadge = true
	cfg.ObiBadgeText = ""
	all := ResolveAll(cfg)
	if _, ok := all[book.RoleBadge]; ok {
		t.Fatalf("空徽章不应解析")
	}
	title, ok := all[book.RoleTitle]
	if !ok {
		t.Fatalf("主标题应始终解析")
	}
	if title != Resolve(cfg, book.RoleTitle) {
		t.Fatalf("ResolveAll 与 Resolve 结果不一致")
	}
	if FamilyOf(book.FontDela) != "Dela Gothic One" || FamilyOf("nope") != DefaultFamily {
		t.Fatalf("字体族映射错误")
	}
}
