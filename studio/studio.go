// Package studio 串联配置、背景、手势与渲染，是 CLI、HTTP 服务与预览窗口共用的控制器。
package studio

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/ByLCY/coverstudio/book"
	"github.com/ByLCY/coverstudio/generate"
	"github.com/ByLCY/coverstudio/gesture"
	"github.com/ByLCY/coverstudio/layout"
	"github.com/ByLCY/coverstudio/logging"
	"github.com/ByLCY/coverstudio/renderer"
	"github.com/ByLCY/coverstudio/scene"
)

// ErrNoBackground 表示当前封面还没有背景图。
var ErrNoBackground = errors.New("尚未设置背景图")

// Engine 同时负责测量文字与输出文件。
type Engine interface {
	scene.Typesetter
	renderer.Renderer
}

// Options configures a Studio.
type Options struct {
	Canvas    layout.Canvas
	Watermark *scene.Watermark // nil 时使用默认水印
	Engine    Engine
}

// Studio 持有一张封面的全部可变状态，可并发使用。
type Studio struct {
	mu sync.Mutex

	engine    Engine
	cfg       book.Config
	arena     *gesture.Arena
	canvas    layout.Canvas
	watermark scene.Watermark

	source     image.Image // 原始背景
	background image.Image // 按画布裁切后的背景
	failure    error
	prompt     string

	stack *scene.Stack // 缓存，nil 表示需要重新合成
}

// New 创建控制器并按 cfg 挂载图层。
func New(cfg book.Config, opts Options) (*Studio, error) {
	if opts.Engine == nil {
		return nil, errors.New("缺少渲染引擎")
	}
	canvas := opts.Canvas
	if canvas.Width <= 0 {
		canvas = layout.NewCanvas(0)
	}
	wm := scene.DefaultWatermark()
	if opts.Watermark != nil {
		wm = *opts.Watermark
	}
	s := &Studio{
		engine:    opts.Engine,
		cfg:       cfg,
		arena:     gesture.NewArena(),
		canvas:    canvas,
		watermark: wm,
	}
	s.arena.Sync(cfg)
	return s, nil
}

func (s *Studio) invalidate() { s.stack = nil }

// Config 返回当前配置。
func (s *Studio) Config() book.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// SetConfig 替换配置；挂载键变化的图层会重置变换。
func (s *Studio) SetConfig(cfg book.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.arena.Sync(cfg)
	s.invalidate()
}

// Canvas 返回当前画布。
func (s *Studio) Canvas() layout.Canvas {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas
}

// SetCanvasWidth 按 10:16 调整画布，背景随之重新裁切。
func (s *Studio) SetCanvasWidth(width float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canvas = layout.NewCanvas(width)
	if s.source != nil {
		s.background = CoverFit(s.source, s.canvas)
	}
	s.invalidate()
}

// SetBackground 设置背景图并清除之前的失败状态。
func (s *Studio) SetBackground(img image.Image) error {
	if img == nil {
		return ErrNoBackground
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = img
	s.background = CoverFit(img, s.canvas)
	s.failure = nil
	s.invalidate()
	return nil
}

// Background 返回裁切后的背景图。
func (s *Studio) Background() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.background == nil {
		return nil, ErrNoBackground
	}
	return s.background, nil
}

// Fail 记录生成失败；之后的绘制栈为空状态，直到设置新的背景。
func (s *Studio) Fail(err error) {
	if err == nil {
		err = errors.New("生成失败")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
	s.source, s.background = nil, nil
	s.invalidate()
}

// Failure 返回最近一次生成失败的原因。
func (s *Studio) Failure() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failure
}

// Prompt 返回最近一次生成使用的提示词。
func (s *Studio) Prompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prompt
}

// Generate 调用生成器获取新背景。调用期间不持有锁；失败时进入空状态并返回错误。
// 成功后视为一张新封面，所有图层的变换被重置。
func (s *Studio) Generate(ctx context.Context, gen generate.Generator, refs []generate.Reference) (generate.Result, error) {
	if gen == nil {
		return generate.Result{}, errors.New("缺少生成器")
	}
	cfg := s.Config()
	res, err := gen.Generate(ctx, cfg, refs)
	if err == nil {
		var img image.Image
		img, err = DecodeBackground(res.ImageURL)
		if err == nil {
			s.mu.Lock()
			s.source = img
			s.background = CoverFit(img, s.canvas)
			s.failure = nil
			s.prompt = res.PromptUsed
			s.arena.Reset()
			s.arena.Sync(s.cfg)
			s.invalidate()
			s.mu.Unlock()
			logging.L().Info("封面背景已生成", "bounds", img.Bounds().String())
			return res, nil
		}
	}
	s.Fail(err)
	return generate.Result{}, err
}

// Scene 返回当前绘制栈，配置或手势未变化时复用缓存。
func (s *Studio) Scene() (scene.Stack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sceneLocked()
}

func (s *Studio) sceneLocked() (scene.Stack, error) {
	if s.stack != nil {
		return *s.stack, nil
	}
	var stack scene.Stack
	if s.failure != nil {
		stack = scene.Failed(s.canvas, s.failure)
	} else {
		var err error
		stack, err = scene.Build(s.cfg, s.arena, s.background, scene.Options{
			Canvas:     s.canvas,
			Watermark:  s.watermark,
			Typesetter: s.engine,
		})
		if err != nil {
			return scene.Stack{}, fmt.Errorf("合成封面失败: %w", err)
		}
	}
	s.stack = &stack
	return stack, nil
}

// Pointer 对画布坐标做命中测试后把事件交给手势层，返回画面是否需要重绘。
func (s *Studio) Pointer(ev gesture.Event) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stack, err := s.sceneLocked()
	if err != nil {
		return false, err
	}
	target, ok := stack.HitTest(ev.X, ev.Y)
	changed := s.arena.Route(ev, target, ok)
	if changed {
		s.invalidate()
	}
	return changed, nil
}

// Replay 依次回放手势脚本；每段脚本开始前重新合成，手柄基准取当前渲染尺寸。
func (s *Studio) Replay(scripts ...gesture.Script) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, script := range scripts {
		stack, err := s.sceneLocked()
		if err != nil {
			return err
		}
		measure := func(role book.Role) float64 {
			if l, ok := stack.Find(role); ok {
				return l.Extent()
			}
			return 0
		}
		err = s.arena.Replay(script, measure)
		s.invalidate()
		if err != nil {
			return err
		}
	}
	return nil
}

// Layers 返回各图层的手势状态。
func (s *Studio) Layers() []gesture.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.arena.Snapshots()
}

// SetInteractive 开关全部图层的手势输入。
func (s *Studio) SetInteractive(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arena.SetDisabled(!enabled)
	s.invalidate()
}

// Render 输出当前封面；悬停框与手柄不会出现在导出的文件中。
func (s *Studio) Render(format renderer.Format) ([]byte, error) {
	s.mu.Lock()
	stack, err := s.sceneLocked()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.engine.Render(exportStack(stack), format)
}

func exportStack(stack scene.Stack) scene.Stack {
	if stack.Failed {
		return stack
	}
	layers := make([]scene.Layer, len(stack.Layers))
	for i, l := range stack.Layers {
		l.Hovered, l.Active = false, false
		layers[i] = l
	}
	return scene.Compose(stack.Canvas, stack.Background, stack.Watermark, layers)
}
