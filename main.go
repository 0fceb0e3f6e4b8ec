package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/coverstudio/book"
	"github.com/ByLCY/coverstudio/config"
	"github.com/ByLCY/coverstudio/dsl"
	"github.com/ByLCY/coverstudio/generate"
	"github.com/ByLCY/coverstudio/layout"
	"github.com/ByLCY/coverstudio/logging"
	"github.com/ByLCY/coverstudio/renderer"
	canvasrenderer "github.com/ByLCY/coverstudio/renderer/canvas"
	"github.com/ByLCY/coverstudio/studio"
)

func main() {
	input := flag.String("in", "", "封面描述文件路径")
	settings := flag.String("config", "", "配置文件路径 (JSON)")
	background := flag.String("bg", "", "背景图路径或 data URI")
	output := flag.String("out", "output/cover.png", "输出路径")
	formatName := flag.String("format", "", "输出格式 png/jpeg/webp/pdf，默认取输出文件扩展名")
	debug := flag.String("debug", "", "绘制栈调试 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到封面文件的 JSON 数据")
	width := flag.Float64("width", 0, "画布宽度 (px)")
	fontDir := flag.String("fonts", "", "字体目录")
	gen := flag.Bool("generate", false, "调用 Gemini 生成背景")
	verbose := flag.Bool("v", false, "输出调试日志")
	flag.Parse()

	if *verbose {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var cfg config.Config
	if *settings != "" {
		var err error
		if cfg, err = config.Load(*settings); err != nil {
			log.Fatalf("读取配置失败: %v", err)
		}
	}
	cfg.Resolve(config.Flags{FontDir: *fontDir, Width: *width, Format: *formatName})

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	format, err := outputFormat(*formatName, *output, cfg.Format)
	if err != nil {
		log.Fatalf("%v", err)
	}

	opts := runOptions{
		input:      *input,
		background: *background,
		output:     *output,
		debug:      *debug,
		format:     format,
		data:       inputData,
		width:      cfg.CanvasWidth,
	}
	if *gen {
		g, err := generate.NewGemini(context.Background(), cfg.APIKey, cfg.Model)
		if err != nil {
			log.Fatalf("初始化生成器失败: %v", err)
		}
		g.Attempts = cfg.MaxAttempts
		opts.generator = g
	}

	engine := canvasrenderer.NewRenderer(cfg.FontDir)
	if err := run(context.Background(), opts, engine); err != nil {
		log.Fatalf("生成封面失败: %v", err)
	}
	fmt.Printf("已生成封面：%s\n", *output)
}

type runOptions struct {
	input      string
	background string
	output     string
	debug      string
	format     renderer.Format
	data       any
	width      float64
	generator  generate.Generator
}

// outputFormat 优先使用显式格式，其次是输出文件扩展名，最后是配置中的默认格式。
func outputFormat(explicit, output, fallback string) (renderer.Format, error) {
	if explicit != "" {
		return renderer.ParseFormat(explicit)
	}
	if ext := filepath.Ext(output); ext != "" {
		return renderer.ParseFormat(ext)
	}
	return renderer.ParseFormat(fallback)
}

// run 串联封面文件、背景、合成与渲染。
func run(ctx context.Context, opts runOptions, engine studio.Engine) error {
	if engine == nil {
		return fmt.Errorf("渲染引擎不能为空")
	}
	st, err := studio.New(book.Default(), studio.Options{Canvas: layout.NewCanvas(opts.width), Engine: engine})
	if err != nil {
		return err
	}

	if opts.input != "" {
		file, err := os.Open(opts.input)
		if err != nil {
			return fmt.Errorf("无法打开封面文件 %s: %w", opts.input, err)
		}
		defer file.Close()

		doc, err := dsl.Parse(file)
		if err != nil {
			return fmt.Errorf("解析封面文件失败: %w", err)
		}
		if err := st.LoadDocument(doc, opts.data, filepath.Dir(opts.input)); err != nil {
			return fmt.Errorf("应用封面文件失败: %w", err)
		}
	}

	switch {
	case opts.background != "":
		img, err := studio.DecodeBackground(opts.background)
		if err != nil {
			return err
		}
		if err := st.SetBackground(img); err != nil {
			return err
		}
	case opts.generator != nil:
		// 生成失败时仍输出空状态，便于确认失败画面。
		if _, err := st.Generate(ctx, opts.generator, nil); err != nil {
			log.Printf("生成背景失败: %v", err)
		}
	}

	if opts.debug != "" {
		stack, err := st.Scene()
		if err != nil {
			return err
		}
		if err := writeDebug(stack, opts.debug); err != nil {
			return err
		}
	}

	if dir := filepath.Dir(opts.output); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	data, err := st.Render(opts.format)
	if err != nil {
		return fmt.Errorf("渲染 %s 失败: %w", strings.ToUpper(string(opts.format)), err)
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	return nil
}

func writeDebug(v any, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(v, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
