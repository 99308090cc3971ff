package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/response"
	"github.com/fekuna/omnipos-storefront-service/internal/policy"
	"github.com/gin-gonic/gin"
)

type PolicyHandler struct {
	uc     policy.UseCase
	tr     response.Translator
	logger logger.ZapLogger
}

func NewPolicyHandler(uc policy.UseCase, tr response.Translator, log logger.ZapLogger) *PolicyHandler {
	return &PolicyHandler{
		uc:     uc,
		tr:     tr,
		logger: log,
	}
}

func (h *PolicyHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/policies", h.GetPolicy)
}

// GetPolicy serves GET /policies?type=terms%20of%20service.
func (h *PolicyHandler) GetPolicy(c *gin.Context) {
	content, err := h.uc.Resolve(c.Request.Context(), c.Query("type"))
	if err != nil {
		response.Error(c, h.logger, h.tr, err)
		return
	}
	c.JSON(http.StatusOK, content)
}
