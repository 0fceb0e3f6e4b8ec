package book

import "testing"

func TestApplyOverridesFields(t *testing.T) {
	cfg, unknown, err := Apply(Default(), map[string]string{
		"titleOrientation": "horizontal",
		"showBadge":        "off",
		"obiMain":          "今すぐ読む",
		"nonsense":         "x",
	})
	if err != nil {
		t.Fatalf("应用配置失败: %v", err)
	}
	if cfg.TitleOrientation != Horizontal {
		t.Fatalf("titleOrientation 未生效: %q", cfg.TitleOrientation)
	}
	if cfg.ShowBadge {
		t.Fatalf("showBadge=off 未生效")
	}
	if cfg.ObiMain != "今すぐ読む" {
		t.Fatalf("obiMain 未生效: %q", cfg.ObiMain)
	}
	if len(unknown) != 1 || unknown[0] != "nonsense" {
		t.Fatalf("未识别键报告错误: %v", unknown)
	}
	if cfg.Title != Default().Title {
		t.Fatalf("未覆盖的字段不应改变")
	}
}

func TestApplyRejectsBadBool(t *testing.T) {
	if _, _, err := Apply(Default(), map[string]string{"showObi": "maybe"}); err == nil {
		t.Fatalf("非法布尔值应当报错")
	}
}

func TestVisibility(t *testing.T) {
	cfg := Default()
	cfg.ObiSub = ""
	cases := []struct {
		role Role
		want bool
	}{
		{RoleTitle, true},
		{RoleSubtitle, true},
		{RoleAuthor, true},
		{RoleBandMain, true},
		{RoleBandSub, false},
		{RoleBadge, true},
	}
	for _, c := range cases {
		if got := cfg.Visible(c.role); got != c.want {
			t.Fatalf("%s 可见性期望 %v，实际 %v", c.role, c.want, got)
		}
	}

	cfg.ShowTitle = false
	cfg.ObiBadgeText = ""
	for _, r := range []Role{RoleTitle, RoleSubtitle, RoleAuthor, RoleBadge} {
		if cfg.Visible(r) {
			t.Fatalf("%s 应当隐藏", r)
		}
	}
}

func TestOrientationFallsBackToHorizontal(t *testing.T) {
	cfg := Default()
	cfg.SubtitleOrientation = "diagonal"
	if got := cfg.OrientationOf(RoleSubtitle); got != Horizontal {
		t.Fatalf("未知方向应回退为横排，实际 %q", got)
	}
	if got := cfg.OrientationOf(RoleBadge); got != Horizontal {
		t.Fatalf("徽章恒为横排，实际 %q", got)
	}
}

func TestMountKeyTracksOrientation(t *testing.T) {
	cfg := Default()
	before := cfg.MountKey(RoleTitle)
	cfg.TitleColor = ColorGold
	if cfg.MountKey(RoleTitle) != before {
		t.Fatalf("颜色变化不应导致重新挂载")
	}
	cfg.TitleOrientation = Horizontal
	if cfg.MountKey(RoleTitle) == before {
		t.Fatalf("方向变化必须导致重新挂载")
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("obi-main")
	if err != nil || r != RoleBandMain {
		t.Fatalf("obi-main 解析错误: %v %v", r, err)
	}
	if _, err := ParseRole("footer"); err == nil {
		t.Fatalf("未知角色应当报错")
	}
}
