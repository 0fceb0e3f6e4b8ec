// Package config 读取服务与命令行工具共用的配置。
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ByLCY/coverstudio/generate"
)

// DefaultModel 是封面背景生成使用的模型。
const DefaultModel = generate.DefaultModel

// Config holds paths, canvas and generation settings.
type Config struct {
	// Service
	Addr       string `json:"addr"`
	SessionTTL string `json:"session_ttl"`

	// Paths
	BaseDir   string `json:"base_dir"`
	FontDir   string `json:"font_dir"`
	OutputDir string `json:"output_dir"`

	// Render settings
	CanvasWidth float64 `json:"canvas_width"`
	Format      string  `json:"format"`

	// Generation
	Model       string `json:"model"`
	MaxAttempts int    `json:"max_attempts"`
	APIKey      string `json:"-"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("读取配置 %s 失败: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("解析配置 %s 失败: %w", path, err)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Addr      string
	FontDir   string
	OutputDir string
	Width     float64
	Format    string
	Model     string
}

// Resolve 先用命令行参数覆盖文件中的值，再为空字段填默认值。
// 相对路径按 BaseDir 解析；API key 只从环境变量读取。
func (c *Config) Resolve(flags Flags) {
	if flags.Addr != "" {
		c.Addr = flags.Addr
	}
	if flags.FontDir != "" {
		c.FontDir = flags.FontDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Width > 0 {
		c.CanvasWidth = flags.Width
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Model != "" {
		c.Model = flags.Model
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}
	if c.FontDir == "" {
		c.FontDir = filepath.Join(c.BaseDir, "fonts")
	} else if !filepath.IsAbs(c.FontDir) {
		c.FontDir = filepath.Join(c.BaseDir, c.FontDir)
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.BaseDir, "output")
	} else if !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.BaseDir, c.OutputDir)
	}

	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.CanvasWidth <= 0 {
		c.CanvasWidth = 400
	}
	if c.Format == "" {
		c.Format = "png"
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.SessionTTL == "" {
		c.SessionTTL = "1h"
	}
	if c.APIKey == "" {
		c.APIKey = APIKeyFromEnv()
	}
}

// TTL 返回会话过期时间；格式错误时返回一小时。
func (c Config) TTL() time.Duration {
	d, err := time.ParseDuration(c.SessionTTL)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

// APIKeyFromEnv 依次读取 GEMINI_API_KEY 与 API_KEY。
func APIKeyFromEnv() string {
	for _, name := range []string{"GEMINI_API_KEY", "API_KEY"} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
