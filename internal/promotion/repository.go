package promotion

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/promotion/dto"
)

type Repository interface {
	// FindCandidates returns approved products of approved vendors with
	// their vendor, category, subcategory and discount populated.
	FindCandidates(ctx context.Context, filter *dto.CandidateFilter) ([]model.Product, error)
}
