// Package gesture 实现文字图层的拖动、滚轮缩放与单轴约束。
// 每个图层拥有独立的状态机与指针捕获，图层之间从不读写彼此的状态。
package gesture

import "math"

const (
	MinScale      = 0.2
	MaxScale      = 5.0
	ScaleStep     = 0.05
	MinConstraint = 50.0
)

// Transform 是图层在当前预览中的可变变换。
// AxisConstraint 为 nil 表示按内容自然尺寸排版。
type Transform struct {
	OffsetX        float64  `json:"offsetX"`
	OffsetY        float64  `json:"offsetY"`
	RotationDeg    float64  `json:"rotationDeg"`
	Scale          float64  `json:"scale"`
	AxisConstraint *float64 `json:"axisConstraintPx"`
}

// DefaultTransform 返回挂载时的初始变换 {0,0,0,1,nil}。
func DefaultTransform() Transform {
	return Transform{Scale: 1}
}

// Constraint 返回单轴约束及其是否存在。
func (t Transform) Constraint() (float64, bool) {
	if t.AxisConstraint == nil {
		return 0, false
	}
	return *t.AxisConstraint, true
}

// Equal 按值比较两个变换。
func (t Transform) Equal(o Transform) bool {
	if t.OffsetX != o.OffsetX || t.OffsetY != o.OffsetY || t.RotationDeg != o.RotationDeg || t.Scale != o.Scale {
		return false
	}
	a, aok := t.Constraint()
	b, bok := o.Constraint()
	return aok == bok && a == b
}

func (t Transform) clone() Transform {
	if t.AxisConstraint != nil {
		v := *t.AxisConstraint
		t.AxisConstraint = &v
	}
	return t
}

// nextScale 按一次滚轮步进调整倍数。结果取到 1/100，保证夹取边界恰好为 0.2 与 5.0。
func nextScale(cur float64, up bool) float64 {
	step := -ScaleStep
	if up {
		step = ScaleStep
	}
	s := math.Round((cur+step)*100) / 100
	return math.Max(MinScale, math.Min(MaxScale, s))
}
