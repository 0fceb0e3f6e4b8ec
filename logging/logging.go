// Package logging 提供全局可替换的 slog 日志器，默认静默。
package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger 设置所有包共用的日志器；传入 nil 恢复静默。
//
// 级别约定：
//   - Debug：手势状态迁移、布局细节
//   - Info：会话创建、生成成功等生命周期事件
//   - Warn：配置回退、生成重试等非致命问题
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// L 返回当前日志器，可并发调用。
func L() *slog.Logger { return loggerPtr.Load() }
