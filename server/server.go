// Package server 以 HTTP 接口暴露封面会话。会话只保存在内存中。
package server

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ByLCY/coverstudio/book"
	"github.com/ByLCY/coverstudio/generate"
	"github.com/ByLCY/coverstudio/layout"
	"github.com/ByLCY/coverstudio/logging"
	"github.com/ByLCY/coverstudio/studio"
)

// ErrSessionNotFound 表示会话不存在或已过期。
var ErrSessionNotFound = errors.New("会话不存在")

// Options configures a Server.
type Options struct {
	Engine      studio.Engine
	Generator   generate.Generator // 为 nil 时只能上传背景
	CanvasWidth float64
	TTL         time.Duration
}

// Server 管理封面会话。
type Server struct {
	engine    studio.Engine
	generator generate.Generator
	canvas    layout.Canvas
	ttl       time.Duration
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	studio  *studio.Studio
	touched time.Time
}

// New 创建服务。
func New(opts Options) (*Server, error) {
	if opts.Engine == nil {
		return nil, errors.New("缺少渲染引擎")
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Server{
		engine:    opts.Engine,
		generator: opts.Generator,
		canvas:    layout.NewCanvas(opts.CanvasWidth),
		ttl:       ttl,
		now:       time.Now,
		sessions:  map[string]*session{},
	}, nil
}

// Handler 返回挂好全部路由的 gin 引擎。
func (s *Server) Handler() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	s.RegisterRoutes(r)
	return r
}

func (s *Server) create(cfg book.Config) (string, *studio.Studio, error) {
	st, err := studio.New(cfg, studio.Options{Canvas: s.canvas, Engine: s.engine})
	if err != nil {
		return "", nil, err
	}
	id, err := newID()
	if err != nil {
		return "", nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.sessions[id] = &session{studio: st, touched: s.now()}
	logging.L().Info("创建会话", "id", id, "sessions", len(s.sessions))
	return id, st, nil
}

func (s *Server) lookup(id string) (*studio.Studio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	sess.touched = s.now()
	return sess.studio, nil
}

func (s *Server) remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(s.sessions, id)
	return nil
}

// sweepLocked 清除过期会话；调用方需持有 mu。
func (s *Server) sweepLocked() {
	cutoff := s.now().Add(-s.ttl)
	for id, sess := range s.sessions {
		if sess.touched.Before(cutoff) {
			delete(s.sessions, id)
			logging.L().Debug("会话过期", "id", id)
		}
	}
}

func newID() (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("生成会话 ID 失败: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}
