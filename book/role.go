package book

import "fmt"

// Role 标识封面上的一个文字图层。
type Role string

const (
	RoleTitle    Role = "title"
	RoleSubtitle Role = "subtitle"
	RoleAuthor   Role = "author"
	RoleBandMain Role = "bandMain"
	RoleBandSub  Role = "bandSub"
	RoleBadge    Role = "badge"
)

var allRoles = []Role{RoleSubtitle, RoleTitle, RoleAuthor, RoleBandMain, RoleBandSub, RoleBadge}

// Roles 返回全部角色，顺序即标题块内的绘制顺序（副标题 → 标题 → 作者），其后为腰封与徽章。
func Roles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

// ParseRole 解析角色名，兼容前端使用的 obi-main / obi-sub 写法。
func ParseRole(s string) (Role, error) {
	switch s {
	case "title", "subtitle", "author", "badge":
		return Role(s), nil
	case "bandMain", "obi-main", "obiMain":
		return RoleBandMain, nil
	case "bandSub", "obi-sub", "obiSub":
		return RoleBandSub, nil
	}
	return "", fmt.Errorf("未知的图层角色 %q", s)
}

// InTitleBlock 判断角色是否属于标题块。
func (r Role) InTitleBlock() bool {
	return r == RoleTitle || r == RoleSubtitle || r == RoleAuthor
}

// InBand 判断角色是否属于腰封。
func (r Role) InBand() bool {
	return r == RoleBandMain || r == RoleBandSub
}

// Text 返回角色对应的文字内容。
func (c Config) Text(r Role) string {
	switch r {
	case RoleTitle:
		return c.Title
	case RoleSubtitle:
		return c.Subtitle
	case RoleAuthor:
		return c.Author
	case RoleBandMain:
		return c.ObiMain
	case RoleBandSub:
		return c.ObiSub
	case RoleBadge:
		return c.ObiBadgeText
	}
	return ""
}

// Visible 判断角色在当前配置下是否显示。主标题只受 showTitle 控制，其余图层还要求文字非空。
func (c Config) Visible(r Role) bool {
	switch r {
	case RoleTitle:
		return c.ShowTitle
	case RoleSubtitle:
		return c.ShowTitle && c.Subtitle != ""
	case RoleAuthor:
		return c.ShowTitle && c.Author != ""
	case RoleBandMain:
		return c.ShowObi
	case RoleBandSub:
		return c.ShowObi && c.ObiSub != ""
	case RoleBadge:
		return c.ShowBadge && c.ObiBadgeText != ""
	}
	return false
}

// OrientationOf 返回角色的书写方向；腰封与徽章恒为横排。
// 未识别的方向值按横排处理。
func (c Config) OrientationOf(r Role) Orientation {
	var o Orientation
	switch r {
	case RoleTitle:
		o = c.TitleOrientation
	case RoleSubtitle:
		o = c.SubtitleOrientation
	case RoleAuthor:
		o = c.AuthorOrientation
	default:
		return Horizontal
	}
	if o == Vertical {
		return Vertical
	}
	return Horizontal
}

// MountKey 返回角色的挂载键。键变化时图层需要重新挂载，变换状态回到默认值。
func (c Config) MountKey(r Role) string {
	switch r {
	case RoleTitle:
		return fmt.Sprintf("title-%s-%s-%s", c.TitleSize, c.TitleFont, c.OrientationOf(r))
	case RoleSubtitle:
		return fmt.Sprintf("subtitle-%s-%s-%s", c.SubtitleSize, c.SubtitleFont, c.OrientationOf(r))
	case RoleAuthor:
		return fmt.Sprintf("author-%s-%s-%s", c.AuthorSize, c.AuthorFont, c.OrientationOf(r))
	case RoleBandMain:
		return fmt.Sprintf("obi-main-%s", c.ObiTextSize)
	case RoleBandSub:
		return fmt.Sprintf("obi-sub-%s", c.ObiTextSize)
	case RoleBadge:
		return fmt.Sprintf("badge-%s", c.ObiBadgeScale)
	}
	return string(r)
}
