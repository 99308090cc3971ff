package handler

import (
	"context"
	"net/http"

	"github.com/fekuna/omnipos-storefront-service/internal/apperror"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/response"
	"github.com/fekuna/omnipos-storefront-service/internal/promotion"
	"github.com/fekuna/omnipos-storefront-service/internal/promotion/dto"
	"github.com/gin-gonic/gin"
)

type PromotionHandler struct {
	uc     promotion.UseCase
	tr     response.Translator
	logger logger.ZapLogger
}

func NewPromotionHandler(uc promotion.UseCase, tr response.Translator, log logger.ZapLogger) *PromotionHandler {
	return &PromotionHandler{
		uc:     uc,
		tr:     tr,
		logger: log,
	}
}

func (h *PromotionHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/flash-deals-products", h.FlashDeals)
	rg.GET("/top-deals-products", h.TopDeals)
	rg.GET("/new-arrivals-products", h.NewArrivals)
}

func (h *PromotionHandler) FlashDeals(c *gin.Context) {
	products, err := h.uc.FlashDeals(c.Request.Context())
	h.render(c, products, err)
}

// TopDeals serves GET /top-deals-products?category=&subCategory=.
func (h *PromotionHandler) TopDeals(c *gin.Context) {
	h.filtered(c, h.uc.TopDeals)
}

func (h *PromotionHandler) NewArrivals(c *gin.Context) {
	h.filtered(c, h.uc.NewArrivals)
}

type filteredListing func(ctx context.Context, filter dto.ListingFilter) ([]model.Product, error)

func (h *PromotionHandler) filtered(c *gin.Context, list filteredListing) {
	var filter dto.ListingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, h.logger, h.tr, apperror.Validation(apperror.MsgInvalidQuery))
		return
	}
	products, err := list(c.Request.Context(), filter)
	h.render(c, products, err)
}

func (h *PromotionHandler) render(c *gin.Context, products []model.Product, err error) {
	if err != nil {
		response.Error(c, h.logger, h.tr, err)
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	c.JSON(http.StatusOK, products)
}
