package gesture

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ByLCY/coverstudio/book"
	"github.com/ByLCY/coverstudio/dsl"
)

// Op 是脚本步骤的动作。
type Op string

const (
	OpPress   Op = "press"   // 按下图层主体
	OpGrab    Op = "grab"    // 悬停后按下缩放手柄
	OpMove    Op = "move"
	OpRelease Op = "release"
	OpWheel   Op = "wheel"   // N>0 放大 N 步，N<0 缩小
	OpEnter   Op = "enter"
	OpLeave   Op = "leave"
)

// Step 是手势脚本中的一步。
type Step struct {
	Op Op      `json:"op"`
	X  float64 `json:"x,omitempty"`
	Y  float64 `json:"y,omitempty"`
	N  int     `json:"n,omitempty"`
}

// Script 是针对单个图层的一段手势回放。
type Script struct {
	Role  book.Role `json:"role"`
	Steps []Step    `json:"steps"`
}

// maxWheelSteps 是从最小缩放滚到最大缩放所需的步数，超出部分不会再改变缩放。
var maxWheelSteps = int(math.Ceil((MaxScale - MinScale) / ScaleStep))

// Measurer 返回图层当前沿约束轴的渲染尺寸，用于手柄按下时的基准。
type Measurer func(role book.Role) float64

// Replay 把脚本直接作用于目标图层。图层未挂载时返回错误。
// 悬停变化经由 Arena 记录，之后的指针事件可以正常移出。
func (a *Arena) Replay(s Script, measure Measurer) error {
	layer, ok := a.layers[s.Role]
	if !ok {
		return fmt.Errorf("图层 %s 未挂载", s.Role)
	}
	for i, st := range s.Steps {
		switch st.Op {
		case OpPress:
			layer.Handle(Event{Kind: EventDown, X: st.X, Y: st.Y, Region: RegionBody})
		case OpGrab:
			extent := 0.0
			if measure != nil {
				extent = measure(s.Role)
			}
			a.hover(s.Role, true)
			layer.Handle(Event{Kind: EventDown, X: st.X, Y: st.Y, Region: RegionHandle, Extent: extent})
		case OpMove:
			layer.Handle(Event{Kind: EventMove, X: st.X, Y: st.Y})
		case OpRelease:
			layer.Handle(Event{Kind: EventUp})
		case OpWheel:
			n, delta := st.N, -100.0
			if st.N < 0 {
				n, delta = maxWheelSteps, 100
				if st.N > -maxWheelSteps {
					n = -st.N
				}
			}
			n = min(n, maxWheelSteps)
			for j := 0; j < n; j++ {
				layer.Handle(Event{Kind: EventWheel, DeltaY: delta})
			}
		case OpEnter:
			a.hover(s.Role, true)
		case OpLeave:
			if a.hovered == s.Role {
				a.hover("", false)
			}
		default:
			return fmt.Errorf("第 %d 步: 未知动作 %q", i+1, st.Op)
		}
	}
	return nil
}

// ScriptsFromBlock 从 gestures 段落解析脚本：
//
//	layer title { press 100 100; move 130 80; release; wheel up 3 }
func ScriptsFromBlock(b *dsl.Block) ([]Script, error) {
	var scripts []Script
	for _, cmd := range b.Commands() {
		if cmd.Name != "layer" {
			return nil, fmt.Errorf("%s: gestures 中只允许 layer 分组，遇到 %s", cmd.Pos, cmd.Name)
		}
		_, words, err := cmd.Numbers()
		if err != nil {
			return nil, err
		}
		if len(words) != 1 {
			return nil, fmt.Errorf("%s: layer 需要一个角色名", cmd.Pos)
		}
		role, err := book.ParseRole(words[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cmd.Pos, err)
		}
		script := Script{Role: role}
		for _, stepCmd := range cmd.Block.Commands() {
			step, err := parseStep(stepCmd)
			if err != nil {
				return nil, err
			}
			script.Steps = append(script.Steps, step)
		}
		scripts = append(scripts, script)
	}
	return scripts, nil
}

func parseStep(cmd *dsl.Command) (Step, error) {
	nums, words, err := cmd.Numbers()
	if err != nil {
		return Step{}, err
	}
	op := Op(cmd.Name)
	switch op {
	case OpPress, OpGrab, OpMove:
		if len(nums) != 2 || len(words) != 0 {
			return Step{}, fmt.Errorf("%s: %s 需要两个坐标", cmd.Pos, op)
		}
		return Step{Op: op, X: nums[0], Y: nums[1]}, nil
	case OpRelease, OpEnter, OpLeave:
		if len(nums) != 0 || len(words) != 0 {
			return Step{}, fmt.Errorf("%s: %s 不接受参数", cmd.Pos, op)
		}
		return Step{Op: op}, nil
	case OpWheel:
		if len(words) != 1 || len(nums) > 1 {
			return Step{}, fmt.Errorf("%s: 用法为 wheel up|down [次数]", cmd.Pos)
		}
		n := 1
		if len(nums) == 1 {
			v := nums[0]
			if v < 0 || v != math.Trunc(v) {
				return Step{}, fmt.Errorf("%s: 滚轮次数必须为非负整数: %s", cmd.Pos, strconv.FormatFloat(v, 'f', -1, 64))
			}
			n = int(math.Min(v, float64(maxWheelSteps)))
		}
		switch words[0] {
		case "up":
		case "down":
			n = -n
		default:
			return Step{}, fmt.Errorf("%s: 滚轮方向必须为 up 或 down", cmd.Pos)
		}
		return Step{Op: op, N: n}, nil
	}
	return Step{}, fmt.Errorf("%s: 未知手势 %s", cmd.Pos, cmd.Name)
}
