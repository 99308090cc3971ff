package dto

import (
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// ListingFilter carries the optional query narrowing a public listing.
type ListingFilter struct {
	Category    string `form:"category" json:"category,omitempty"`
	SubCategory string `form:"subCategory" json:"subCategory,omitempty"`
}

// CandidateFilter is what the repository turns into SQL predicates.
// Approval of both product and vendor is always required.
type CandidateFilter struct {
	Category        string
	SubCategory     string
	RequireDiscount bool
	DiscountStatus  model.DiscountStatus
	CreatedAfter    *time.Time
}
