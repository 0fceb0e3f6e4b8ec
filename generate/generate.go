// Package generate 调用图像模型生成无文字的封面背景。
package generate

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/ByLCY/coverstudio/book"
	"github.com/ByLCY/coverstudio/logging"
)

// ErrNoImage 表示模型返回的内容里没有图像。
var ErrNoImage = errors.New("生成结果中没有有效图像")

// Result 是一次生成的结果。
type Result struct {
	ImageURL   string `json:"imageUrl"` // data URI
	PromptUsed string `json:"promptUsed"`
}

// Reference 是上传的人物参考图原始数据。
type Reference struct {
	Data     []byte `json:"-"`
	MIMEType string `json:"mimeType"`
}

// Generator 根据配置与参考图生成封面背景。
type Generator interface {
	Generate(ctx context.Context, cfg book.Config, refs []Reference) (Result, error)
}

// DataURI 把图像数据编码为 data URI。
func DataURI(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// retry 最多尝试 attempts 次，第 n 次失败后等待 base·2ⁿ，等待期间响应 ctx 取消。
func retry[T any](ctx context.Context, attempts int, base time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		out, err := fn(ctx)
		if err == nil {
			return out, nil
		}
		lastErr = err
		logging.L().Warn("生成失败", "attempt", attempt+1, "err", err)
		if attempt == attempts-1 {
			break
		}
		timer := time.NewTimer(base << attempt)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
	return zero, fmt.Errorf("重试 %d 次后仍然失败: %w", attempts, lastErr)
}
