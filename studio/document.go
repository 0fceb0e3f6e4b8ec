package studio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ByLCY/coverstudio/binding"
	"github.com/ByLCY/coverstudio/book"
	"github.com/ByLCY/coverstudio/dsl"
	"github.com/ByLCY/coverstudio/gesture"
	"github.com/ByLCY/coverstudio/layout"
	"github.com/ByLCY/coverstudio/logging"
)

// LoadDocument 应用封面描述文件：config 段覆盖配置，canvas 段设置宽度与背景，
// gestures 段在合成后按顺序回放。字符串值中的 ${path} 用 data 插值，背景路径相对 baseDir。
func (s *Studio) LoadDocument(doc *dsl.Document, data any, baseDir string) error {
	if doc == nil {
		return fmt.Errorf("封面文件为空")
	}
	values := map[string]string{}
	var (
		width      float64
		background string
		scripts    []gesture.Script
	)
	for _, sec := range doc.Sections {
		switch {
		case sec.Config != nil:
			for _, a := range sec.Config.Block.Assignments() {
				values[a.Key] = binding.Interpolate(a.Value.Text(), data)
			}
		case sec.Canvas != nil:
			for _, a := range sec.Canvas.Block.Assignments() {
				switch a.Key {
				case "width":
					l, err := layout.ParseLength(a.Value.Text())
					if err != nil {
						return fmt.Errorf("%s: %w", a.Pos, err)
					}
					if l.Unit != layout.UnitPx || l.Value <= 0 {
						return fmt.Errorf("%s: 画布宽度必须为正的像素值: %s", a.Pos, l)
					}
					width = l.Value
				case "background":
					background = binding.Interpolate(a.Value.Text(), data)
				default:
					return fmt.Errorf("%s: canvas 不支持 %s", a.Pos, a.Key)
				}
			}
		case sec.Gestures != nil:
			parsed, err := gesture.ScriptsFromBlock(sec.Gestures.Block)
			if err != nil {
				return err
			}
			scripts = append(scripts, parsed...)
		}
	}

	cfg, unknown, err := book.Apply(s.Config(), values)
	if err != nil {
		return err
	}
	if len(unknown) > 0 {
		logging.L().Warn("忽略未识别的配置项", "keys", unknown)
	}
	if width > 0 {
		s.SetCanvasWidth(width)
	}
	s.SetConfig(cfg)

	if background != "" {
		if !strings.HasPrefix(background, "data:") && !filepath.IsAbs(background) && baseDir != "" {
			background = filepath.Join(baseDir, background)
		}
		img, err := DecodeBackground(background)
		if err != nil {
			return err
		}
		if err := s.SetBackground(img); err != nil {
			return err
		}
	}
	return s.Replay(scripts...)
}
