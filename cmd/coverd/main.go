package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/ByLCY/coverstudio/config"
	"github.com/ByLCY/coverstudio/generate"
	"github.com/ByLCY/coverstudio/logging"
	canvasrenderer "github.com/ByLCY/coverstudio/renderer/canvas"
	"github.com/ByLCY/coverstudio/server"
)

func main() {
	settings := flag.String("config", "", "配置文件路径 (JSON)")
	addr := flag.String("addr", "", "监听地址，默认 :8080")
	fontDir := flag.String("fonts", "", "字体目录")
	width := flag.Float64("width", 0, "画布宽度 (px)")
	flag.Parse()

	logging.SetLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	var cfg config.Config
	if *settings != "" {
		var err error
		if cfg, err = config.Load(*settings); err != nil {
			log.Fatalf("读取配置失败: %v", err)
		}
	}
	if port := os.Getenv("PORT"); port != "" && *addr == "" {
		*addr = ":" + port
	}
	cfg.Resolve(config.Flags{Addr: *addr, FontDir: *fontDir, Width: *width})

	var gen generate.Generator
	if cfg.APIKey != "" {
		g, err := generate.NewGemini(context.Background(), cfg.APIKey, cfg.Model)
		if err != nil {
			log.Fatalf("初始化生成器失败: %v", err)
		}
		g.Attempts = cfg.MaxAttempts
		gen = g
	} else {
		log.Println("未设置 GEMINI_API_KEY，只能上传背景图")
	}

	srv, err := server.New(server.Options{
		Engine:      canvasrenderer.NewRenderer(cfg.FontDir),
		Generator:   gen,
		CanvasWidth: cfg.CanvasWidth,
		TTL:         cfg.TTL(),
	})
	if err != nil {
		log.Fatalf("初始化服务失败: %v", err)
	}

	r := srv.Handler()
	log.Println("starting server on " + cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
