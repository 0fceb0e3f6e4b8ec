package gesture

import (
	"github.com/ByLCY/coverstudio/book"
	"github.com/ByLCY/coverstudio/logging"
)

// Target 是命中测试的结果：指针下最上层的图层以及是否落在其缩放手柄上。
type Target struct {
	Role   book.Role `json:"role"`
	Handle bool      `json:"handle"`
	Extent float64   `json:"extent"`
}

// Arena 按角色保存图层，每个可见角色恰好一个。
type Arena struct {
	layers   map[book.Role]*Layer
	keys     map[book.Role]string
	hovered  book.Role
	disabled bool
}

// NewArena 创建空的图层集合。
func NewArena() *Arena {
	return &Arena{
		layers: map[book.Role]*Layer{},
		keys:   map[book.Role]string{},
	}
}

// Sync 根据配置挂载、卸载图层。挂载键变化（字号、字体、方向）时重新挂载，变换回到默认值。
func (a *Arena) Sync(cfg book.Config) {
	for _, role := range book.Roles() {
		if !cfg.Visible(role) {
			a.unmount(role)
			continue
		}
		vertical := cfg.OrientationOf(role) == book.Vertical
		key := cfg.MountKey(role)
		layer, ok := a.layers[role]
		if ok && a.keys[role] == key {
			layer.SetVertical(vertical)
			continue
		}
		if ok {
			logging.L().Debug("重新挂载图层", "role", role, "from", a.keys[role], "to", key)
		}
		layer = NewLayer(role, vertical)
		layer.SetDisabled(a.disabled)
		a.layers[role] = layer
		a.keys[role] = key
		if a.hovered == role {
			a.hovered = ""
		}
	}
}

func (a *Arena) unmount(role book.Role) {
	if _, ok := a.layers[role]; !ok {
		return
	}
	delete(a.layers, role)
	delete(a.keys, role)
	if a.hovered == role {
		a.hovered = ""
	}
}

// Reset 丢弃全部图层，用于生成新封面。
func (a *Arena) Reset() {
	a.layers = map[book.Role]*Layer{}
	a.keys = map[book.Role]string{}
	a.hovered = ""
}

// SetDisabled 禁用或启用全部图层。
func (a *Arena) SetDisabled(disabled bool) {
	a.disabled = disabled
	for _, l := range a.layers {
		l.SetDisabled(disabled)
	}
	if disabled {
		a.hovered = ""
	}
}

// Disabled 返回禁用标志。
func (a *Arena) Disabled() bool { return a.disabled }

// Layer 返回角色对应的图层。
func (a *Arena) Layer(role book.Role) (*Layer, bool) {
	l, ok := a.layers[role]
	return l, ok
}

// Transform 返回角色的变换；未挂载的角色返回默认值。
func (a *Arena) Transform(role book.Role) Transform {
	if l, ok := a.layers[role]; ok {
		return l.Transform()
	}
	return DefaultTransform()
}

// Roles 按绘制顺序返回已挂载的角色。
func (a *Arena) Roles() []book.Role {
	var out []book.Role
	for _, r := range book.Roles() {
		if _, ok := a.layers[r]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Active 返回需要提升到最上层的图层：优先正在捕获指针的，其次是悬停的。
func (a *Arena) Active() (book.Role, bool) {
	for _, r := range book.Roles() {
		if l, ok := a.layers[r]; ok && l.Capturing() {
			return r, true
		}
	}
	if l, ok := a.layers[a.hovered]; ok && l.Hovered() {
		return a.hovered, true
	}
	return "", false
}

// Route 把画布级指针事件分发给图层。target 为命中测试结果，ok=false 表示指针下没有图层。
// 移动与释放只广播给正在捕获的图层，按下与滚轮只交给命中的图层。
func (a *Arena) Route(ev Event, target Target, ok bool) bool {
	if a.disabled {
		return false
	}
	changed := false
	switch ev.Kind {
	case EventMove:
		changed = a.hover(target.Role, ok)
		for _, l := range a.layers {
			if l.Capturing() && l.Handle(ev) {
				changed = true
			}
		}
	case EventUp:
		for _, l := range a.layers {
			if l.Capturing() && l.Handle(ev) {
				changed = true
			}
		}
	case EventDown:
		if !ok {
			return false
		}
		changed = a.hover(target.Role, true)
		if l, found := a.layers[target.Role]; found {
			if target.Handle {
				ev.Region = RegionHandle
				ev.Extent = target.Extent
			} else {
				ev.Region = RegionBody
			}
			if l.Handle(ev) {
				changed = true
			}
		}
	case EventWheel:
		if !ok {
			return false
		}
		if l, found := a.layers[target.Role]; found {
			changed = l.Handle(ev)
		}
	case EventLeave:
		changed = a.hover("", false)
	case EventEnter:
		changed = a.hover(target.Role, ok)
	}
	return changed
}

func (a *Arena) hover(role book.Role, ok bool) bool {
	if !ok {
		role = ""
	}
	if role == a.hovered {
		return false
	}
	if prev, found := a.layers[a.hovered]; found {
		prev.Handle(Event{Kind: EventLeave})
	}
	a.hovered = role
	if next, found := a.layers[role]; found {
		next.Handle(Event{Kind: EventEnter})
	}
	return true
}

// Snapshot 是图层状态的只读视图，用于接口输出。
type Snapshot struct {
	Role      book.Role `json:"role"`
	State     State     `json:"state"`
	Hovered   bool      `json:"hovered"`
	Vertical  bool      `json:"vertical"`
	Disabled  bool      `json:"disabled"`
	MountKey  string    `json:"mountKey"`
	Transform Transform `json:"transform"`
}

// Snapshots 按绘制顺序返回全部图层的快照。
func (a *Arena) Snapshots() []Snapshot {
	var out []Snapshot
	for _, r := range a.Roles() {
		l := a.layers[r]
		out = append(out, Snapshot{
			Role:      r,
			State:     l.State(),
			Hovered:   l.Hovered(),
			Vertical:  l.Vertical(),
			Disabled:  l.Disabled(),
			MountKey:  a.keys[r],
			Transform: l.Transform(),
		})
	}
	return out
}
