package server

import (
	"fmt"
	"net/http"

	"github.com/agenthands/smartform/internal/config"
	"github.com/agenthands/smartform/internal/core"
	"github.com/agenthands/smartform/internal/core/model"
	"github.com/agenthands/smartform/internal/llm"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	Service  *core.Service
	Stats    *llm.Stats
	Logger   *zap.Logger
	Provider string
	Model    string
}

func NewServer(cfg *config.Config, svc *core.Service, stats *llm.Stats, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	useJSONFieldNames()
	return &Server{
		Service:  svc,
		Stats:    stats,
		Logger:   logger,
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), RequestLogger(s.Logger), Recovery(s.Logger))

	r.POST("/explain-smartform", s.ExplainSmartForm)
	r.POST("/normalize", s.Normalize)
	r.GET("/health", s.Health)
	r.GET("/stats/llm", s.LLMStats)

	return r
}

// bindForm decodes and validates the request body. On failure it has
// already written the 422 response.
func (s *Server) bindForm(c *gin.Context) (model.SmartForm, bool) {
	var req smartFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		verr := toValidationError(err)
		s.Logger.Info("rejected request", zap.String("request_id", requestID(c)), zap.Error(verr))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": verr.Fields})
		return model.SmartForm{}, false
	}
	return req.toModel(), true
}

func (s *Server) ExplainSmartForm(c *gin.Context) {
	form, ok := s.bindForm(c)
	if !ok {
		return
	}

	resp, err := s.Service.Explain(c.Request.Context(), form)
	if err != nil {
		s.Logger.Error("Failed to explain smartform",
			zap.String("request_id", requestID(c)),
			zap.String("form", form.FormName),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"detail": fmt.Sprintf("LLM call failed: %v", err)})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) Normalize(c *gin.Context) {
	form, ok := s.bindForm(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Service.Normalize(form))
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "provider": s.Provider, "model": s.Model})
}

func (s *Server) LLMStats(c *gin.Context) {
	if s.Stats == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "llm stats unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"model": s.Model, "stats": s.Stats.Snapshot()})
}
