package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ByLCY/coverstudio/book"
	"github.com/ByLCY/coverstudio/generate"
	"github.com/ByLCY/coverstudio/gesture"
	"github.com/ByLCY/coverstudio/logging"
	"github.com/ByLCY/coverstudio/renderer"
	"github.com/ByLCY/coverstudio/studio"
)

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// abort 把错误映射为状态码并以 JSON 返回。
func abort(c *gin.Context, status int, err error) {
	if errors.Is(err, ErrSessionNotFound) {
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) studioFor(c *gin.Context) (*studio.Studio, bool) {
	st, err := s.lookup(c.Param("id"))
	if err != nil {
		abort(c, http.StatusNotFound, err)
		return nil, false
	}
	return st, true
}

type coverView struct {
	ID            string             `json:"id"`
	Config        book.Config        `json:"config"`
	Width         float64            `json:"width"`
	Height        float64            `json:"height"`
	HasBackground bool               `json:"hasBackground"`
	Failed        bool               `json:"failed"`
	Error         string             `json:"error,omitempty"`
	Prompt        string             `json:"promptUsed,omitempty"`
	Layers        []gesture.Snapshot `json:"layers"`
}

func view(id string, st *studio.Studio) coverView {
	v := coverView{
		ID:     id,
		Config: st.Config(),
		Prompt: st.Prompt(),
		Layers: st.Layers(),
	}
	cv := st.Canvas()
	v.Width, v.Height = cv.Width, cv.Height
	if _, err := st.Background(); err == nil {
		v.HasBackground = true
	}
	if err := st.Failure(); err != nil {
		v.Failed, v.Error = true, err.Error()
	}
	return v
}

// createRequest 中 config 按字段覆盖默认配置；background 与 references 为 data URI。
type createRequest struct {
	Config     json.RawMessage `json:"config"`
	Background string          `json:"background"`
	References []string        `json:"references"`
}

func (s *Server) createCover(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	cfg := book.Default()
	if len(req.Config) > 0 {
		if err := json.Unmarshal(req.Config, &cfg); err != nil {
			abort(c, http.StatusBadRequest, err)
			return
		}
	}

	id, st, err := s.create(cfg)
	if err != nil {
		abort(c, http.StatusInternalServerError, err)
		return
	}

	switch {
	case req.Background != "":
		img, err := studio.DecodeBackground(req.Background)
		if err != nil {
			_ = s.remove(id)
			abort(c, http.StatusBadRequest, err)
			return
		}
		_ = st.SetBackground(img)
	case s.generator != nil:
		refs := make([]generate.Reference, 0, len(req.References))
		for _, uri := range req.References {
			data, mime, err := studio.ParseDataURI(uri)
			if err != nil {
				_ = s.remove(id)
				abort(c, http.StatusBadRequest, err)
				return
			}
			refs = append(refs, generate.Reference{Data: data, MIMEType: mime})
		}
		if _, err := st.Generate(c.Request.Context(), s.generator, refs); err != nil {
			logging.L().Warn("生成背景失败", "id", id, "err", err)
			c.JSON(http.StatusBadGateway, view(id, st))
			return
		}
	}
	c.JSON(http.StatusCreated, view(id, st))
}

func (s *Server) getCover(c *gin.Context) {
	st, ok := s.studioFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, view(c.Param("id"), st))
}

func (s *Server) deleteCover(c *gin.Context) {
	if err := s.remove(c.Param("id")); err != nil {
		abort(c, http.StatusNotFound, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// updateConfig 把请求体中的字段覆盖到当前配置上。
func (s *Server) updateConfig(c *gin.Context) {
	st, ok := s.studioFor(c)
	if !ok {
		return
	}
	cfg := st.Config()
	if err := c.ShouldBindJSON(&cfg); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	st.SetConfig(cfg)
	c.JSON(http.StatusOK, view(c.Param("id"), st))
}

type pointerRequest struct {
	Events []gesture.Event `json:"events"`
}

func (s *Server) pointer(c *gin.Context) {
	st, ok := s.studioFor(c)
	if !ok {
		return
	}
	var req pointerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	changed := false
	for _, ev := range req.Events {
		ch, err := st.Pointer(ev)
		if err != nil {
			abort(c, http.StatusInternalServerError, err)
			return
		}
		changed = changed || ch
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed, "layers": st.Layers()})
}

func (s *Server) layers(c *gin.Context) {
	st, ok := s.studioFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"layers": st.Layers()})
}

type scriptRequest struct {
	Steps []gesture.Step `json:"steps"`
}

func (s *Server) script(c *gin.Context) {
	st, ok := s.studioFor(c)
	if !ok {
		return
	}
	role, err := book.ParseRole(c.Param("role"))
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	var req scriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	if err := st.Replay(gesture.Script{Role: role, Steps: req.Steps}); err != nil {
		abort(c, http.StatusUnprocessableEntity, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"layers": st.Layers()})
}

func (s *Server) sceneJSON(c *gin.Context) {
	st, ok := s.studioFor(c)
	if !ok {
		return
	}
	stack, err := st.Scene()
	if err != nil {
		abort(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, stack)
}

func (s *Server) render(c *gin.Context) {
	st, ok := s.studioFor(c)
	if !ok {
		return
	}
	format, err := renderer.ParseFormat(c.Query("format"))
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	data, err := st.Render(format)
	if err != nil {
		abort(c, http.StatusInternalServerError, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", "cover"+format.Ext()))
	c.Data(http.StatusOK, format.ContentType(), data)
}
