package promotion

import (
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// Listing identifies one public product listing.
type Listing string

const (
	FlashDeals  Listing = "flash_deals"
	TopDeals    Listing = "top_deals"
	NewArrivals Listing = "new_arrivals"
)

// IsWithinWindow reports whether now lies in [StartDate, EndDate], both
// bounds inclusive.
func IsWithinWindow(d *model.Discount, now time.Time) bool {
	if d == nil {
		return false
	}
	return !now.Before(d.StartDate) && !now.After(d.EndDate)
}

// HasOngoingLabel trusts the stored status label only.
func HasOngoingLabel(d *model.Discount) bool {
	return d != nil && d.Status == model.DiscountOngoing
}

// IsNewArrival reports whether createdAt is strictly after now-window.
// Unrelated to discount activity.
func IsNewArrival(createdAt, now time.Time, window time.Duration) bool {
	return createdAt.After(now.Add(-window))
}

// IsPubliclyListed requires the product and its vendor to be approved.
func IsPubliclyListed(p *model.Product) bool {
	return p.ApprovalStatus == model.ApprovalApproved &&
		p.Vendor != nil && p.Vendor.ApprovalStatus == model.ApprovalApproved
}

func (l Listing) admits(p *model.Product, now time.Time, newArrivalWindow time.Duration) bool {
	switch l {
	case FlashDeals:
		return IsWithinWindow(p.Discount, now)
	case TopDeals:
		return HasOngoingLabel(p.Discount)
	case NewArrivals:
		return IsNewArrival(p.CreatedAt, now, newArrivalWindow)
	}
	return false
}

func (l Listing) isDeal() bool {
	return l == FlashDeals || l == TopDeals
}
