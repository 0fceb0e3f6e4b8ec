package style

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color 是解析后的颜色：先按关键字表解析，再叠加可选的十六进制覆盖。
// 金色、银色无法用关键字表达，只能通过 Override 给出。
type Color struct {
	Keyword  string `json:"keyword"`
	Override string `json:"override,omitempty"`
}

// Hex 返回最终生效的十六进制颜色。
func (c Color) Hex() string {
	if c.Override != "" {
		return c.Override
	}
	if hex, ok := keywordHex[c.Keyword]; ok {
		return hex
	}
	return keywordHex[defaultKeyword]
}

// NRGBA 返回不透明的 color.NRGBA。
func (c Color) NRGBA() color.NRGBA {
	col, err := ParseHex(c.Hex())
	if err != nil {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return col
}

// ParseHex 解析 #RGB、#RRGGBB 或 #RRGGBBAA。
func ParseHex(value string) (color.NRGBA, error) {
	v := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(v) == 3 {
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	}
	if len(v) == 6 {
		v += "ff"
	}
	if len(v) != 8 {
		return color.NRGBA{}, fmt.Errorf("颜色格式无效: %s", value)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("颜色格式无效: %s", value)
	}
	return color.NRGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

// 关键字 → 十六进制。关键字沿用前端样式类名的色阶命名。
var keywordHex = map[string]string{
	"white":      "#FFFFFF",
	"black":      "#000000",
	"red-600":    "#DC2626",
	"blue-500":   "#3B82F6",
	"blue-600":   "#2563EB",
	"blue-900":   "#1E3A8A",
	"pink-400":   "#F472B6",
	"pink-500":   "#EC4899",
	"purple-500": "#A855F7",
	"purple-600": "#9333EA",
	"gray-500":   "#6B7280",
	"gray-900":   "#111827",
	"amber-600":  "#D97706",
	"amber-800":  "#92400E",
	"yellow-500": "#EAB308",
	"green-600":  "#16A34A",
	"orange-500": "#F97316",
	"cyan-500":   "#06B6D4",
	"obi-yellow": "#FFD900",
	"badge-gold": "#FFD700",
}

const defaultKeyword = "white"

func keyword(k string) Color { return Color{Keyword: k} }
