package layout

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// 该文件定义带单位的长度：像素或画布百分比。

// Unit 表示长度的原始单位。
type Unit int

const (
	UnitPx      Unit = iota // 以 400px 宽封面为基准的参考像素
	UnitPercent             // 画布宽或高的百分比
)

// Conversion constants between pt and mm. 绘制面板以 1 单位 = 1px 处理，字体接口需要 pt。
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitPercent:
		return "%"
	default:
		return "px"
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// Px 构造像素长度。
func Px(v float64) Length { return Length{Value: v, Unit: UnitPx} }

// Percent 构造百分比长度。
func Percent(v float64) Length { return Length{Value: v, Unit: UnitPercent} }

func (l Length) IsZero() bool { return l.Value == 0 }

// Resolve 把长度换算为像素。reference 为百分比的参照尺寸，scale 为参考像素的缩放倍数。
func (l Length) Resolve(reference, scale float64) float64 {
	if l.Unit == UnitPercent {
		return l.Value / 100 * reference
	}
	return l.Value * scale
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + UnitToString(l.Unit)
}

// MarshalJSON 以 "6%"、"16px" 的形式输出，便于阅读调试 JSON。
func (l Length) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON 接受 MarshalJSON 的输出。
func (l *Length) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseLength(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLength 解析 "12"、"12px"、"25%"，无单位视为像素。
func ParseLength(value string) (Length, error) {
	v := strings.TrimSpace(strings.ToLower(value))
	if v == "" {
		return Length{}, nil
	}
	unit := UnitPx
	num := v
	switch {
	case strings.HasSuffix(v, "%"):
		unit = UnitPercent
		num = strings.TrimSuffix(v, "%")
	case strings.HasSuffix(v, "px"):
		num = strings.TrimSuffix(v, "px")
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return Length{}, fmt.Errorf("长度格式无效: %s", value)
	}
	return Length{Value: f, Unit: unit}, nil
}
