package gesture

import (
	"fmt"
	"math"

	"github.com/ByLCY/coverstudio/book"
)

// State 是图层手势状态。
type State int

const (
	Idle State = iota
	Dragging
	Resizing
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	default:
		return "idle"
	}
}

// MarshalText 让状态在 JSON 中以名称出现。
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText 解析状态名。
func (s *State) UnmarshalText(b []byte) error {
	switch string(b) {
	case "idle":
		*s = Idle
	case "dragging":
		*s = Dragging
	case "resizing":
		*s = Resizing
	default:
		return fmt.Errorf("未知手势状态 %q", b)
	}
	return nil
}

// Kind 是输入事件类型。
type Kind string

const (
	EventEnter Kind = "enter"
	EventLeave Kind = "leave"
	EventDown  Kind = "down"
	EventMove  Kind = "move"
	EventUp    Kind = "up"
	EventWheel Kind = "wheel"
)

// Region 区分按下的位置：图层主体或缩放手柄。
type Region string

const (
	RegionBody   Region = "body"
	RegionHandle Region = "handle"
)

// PrimaryButton 是主按键编号。
const PrimaryButton = 0

// Event 是一次指针或滚轮输入，坐标为画布像素。
// Extent 仅在按下手柄时使用，为图层当前沿约束轴的渲染尺寸。
type Event struct {
	Kind   Kind    `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Button int     `json:"button"`
	Region Region  `json:"region,omitempty"`
	Extent float64 `json:"extent,omitempty"`
	DeltaY float64 `json:"deltaY,omitempty"`
}

// capture 记录一次进行中的手势；只在按下到释放之间存在。
type capture struct {
	startX, startY float64
	offX, offY     float64
	baseline       float64
}

// Layer 是一个图层的手势状态机。
type Layer struct {
	role     book.Role
	vertical bool
	disabled bool
	hovered  bool
	state    State
	cap      *capture
	t        Transform
}

// NewLayer 创建处于 Idle、变换为默认值的图层。
func NewLayer(role book.Role, vertical bool) *Layer {
	return &Layer{role: role, vertical: vertical, t: DefaultTransform()}
}

func (l *Layer) Role() book.Role { return l.role }
func (l *Layer) State() State { return l.state }
func (l *Layer) Hovered() bool { return l.hovered && !l.disabled }
func (l *Layer) Disabled() bool { return l.disabled }
func (l *Layer) Vertical() bool { return l.vertical }
func (l *Layer) Capturing() bool { return l.cap != nil }
func (l *Layer) HandleShown() bool { return l.Hovered() }

// Transform 返回当前变换；禁用的图层总是返回默认变换。
func (l *Layer) Transform() Transform {
	if l.disabled {
		return DefaultTransform()
	}
	return l.t.clone()
}

// SetDisabled 切换禁用标志。禁用时放弃进行中的手势。
func (l *Layer) SetDisabled(disabled bool) {
	l.disabled = disabled
	if disabled {
		l.release()
		l.hovered = false
	}
}

// SetVertical 更新书写方向。方向变化后变换回到默认值：按旧方向测得的约束已无意义。
func (l *Layer) SetVertical(vertical bool) {
	if l.vertical == vertical {
		return
	}
	l.vertical = vertical
	l.release()
	l.t = DefaultTransform()
}

// Handle 处理一个输入事件，返回变换或状态是否改变。
// 禁用状态或不在约定内的输入被忽略。
func (l *Layer) Handle(ev Event) bool {
	if l.disabled {
		return false
	}
	switch ev.Kind {
	case EventEnter:
		changed := !l.hovered
		l.hovered = true
		return changed
	case EventLeave:
		changed := l.hovered
		l.hovered = false
		return changed
	case EventDown:
		return l.press(ev)
	case EventMove:
		return l.move(ev)
	case EventUp:
		if l.cap == nil {
			return false
		}
		l.release()
		return true
	case EventWheel:
		return l.wheel(ev.DeltaY)
	}
	return false
}

func (l *Layer) press(ev Event) bool {
	if ev.Button != PrimaryButton || l.state != Idle {
		return false
	}
	// 手柄只在悬停时出现，未悬停时的手柄按下视为按在主体上。
	if ev.Region == RegionHandle && l.hovered {
		baseline, ok := l.t.Constraint()
		if !ok {
			baseline = ev.Extent
		}
		l.cap = &capture{startX: ev.X, startY: ev.Y, baseline: baseline}
		l.state = Resizing
		return true
	}
	l.cap = &capture{startX: ev.X, startY: ev.Y, offX: l.t.OffsetX, offY: l.t.OffsetY}
	l.state = Dragging
	return true
}

func (l *Layer) move(ev Event) bool {
	if l.cap == nil {
		return false
	}
	dx := ev.X - l.cap.startX
	dy := ev.Y - l.cap.startY
	switch l.state {
	case Dragging:
		l.t.OffsetX = l.cap.offX + dx
		l.t.OffsetY = l.cap.offY + dy
	case Resizing:
		delta := dx
		if l.vertical {
			delta = dy
		}
		size := math.Max(MinConstraint, l.cap.baseline+delta)
		l.t.AxisConstraint = &size
	default:
		return false
	}
	return true
}

func (l *Layer) wheel(deltaY float64) bool {
	if deltaY == 0 {
		return false
	}
	// 向上滚动（deltaY < 0）放大。
	next := nextScale(l.t.Scale, deltaY < 0)
	if next == l.t.Scale {
		return false
	}
	l.t.Scale = next
	return true
}

func (l *Layer) release() {
	l.cap = nil
	l.state = Idle
}
