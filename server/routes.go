package server

import "github.com/gin-gonic/gin"

// RegisterRoutes 注册健康检查与封面接口。
func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", health)

	api := r.Group("/api/covers")
	{
		api.POST("", s.createCover)
		api.GET("/:id", s.getCover)
		api.DELETE("/:id", s.deleteCover)
		api.PUT("/:id/config", s.updateConfig)
		api.POST("/:id/pointer", s.pointer)
		api.GET("/:id/layers", s.layers)
		api.POST("/:id/layers/:role/script", s.script)
		api.GET("/:id/scene", s.sceneJSON)
		api.GET("/:id/render", s.render)
	}
}
