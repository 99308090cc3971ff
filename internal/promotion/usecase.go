package promotion

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/promotion/dto"
)

type UseCase interface {
	FlashDeals(ctx context.Context) ([]model.Product, error)
	TopDeals(ctx context.Context, filter dto.ListingFilter) ([]model.Product, error)
	NewArrivals(ctx context.Context, filter dto.ListingFilter) ([]model.Product, error)
}
