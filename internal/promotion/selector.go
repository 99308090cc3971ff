package promotion

import (
	"sort"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/metrics"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Criteria configures one Select call.
type Criteria struct {
	Listing     Listing
	Category    string
	SubCategory string
	// Limit caps the result; 0 returns every match.
	Limit            int
	NewArrivalWindow time.Duration
}

// Select filters candidates down to the listing's eligible products,
// ranks them and applies the limit. For deal listings every candidate
// whose Ongoing label disagrees with the live window is logged.
func Select(candidates []model.Product, c Criteria, now time.Time, log logger.ZapLogger) []model.Product {
	selected := make([]model.Product, 0, len(candidates))
	for i := range candidates {
		p := &candidates[i]
		if !IsPubliclyListed(p) || !c.matchesCategory(p) {
			continue
		}
		if c.Listing.isDeal() && p.Discount != nil {
			reportLabelMismatch(c.Listing, p, now, log)
		}
		if !c.Listing.admits(p, now, c.NewArrivalWindow) {
			continue
		}
		selected = append(selected, *p)
	}

	Rank(selected, c.Listing)

	if c.Limit > 0 && len(selected) > c.Limit {
		selected = selected[:c.Limit]
	}
	return selected
}

// Rank orders products in place, descending on each key:
// flash deals by discount value; top deals by discount value then
// popularity; new arrivals by creation time. Ties keep input order.
func Rank(products []model.Product, listing Listing) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := &products[i], &products[j]
		switch listing {
		case NewArrivals:
			return a.CreatedAt.After(b.CreatedAt)
		case TopDeals:
			if cmp := discountValue(a).Cmp(discountValue(b)); cmp != 0 {
				return cmp > 0
			}
			return a.PopularityScore > b.PopularityScore
		default:
			return discountValue(a).GreaterThan(discountValue(b))
		}
	})
}

func discountValue(p *model.Product) decimal.Decimal {
	if p.Discount == nil {
		return decimal.Zero
	}
	return p.Discount.Value
}

func (c Criteria) matchesCategory(p *model.Product) bool {
	if c.Category != "" && (p.Category == nil || p.Category.Slug != c.Category) {
		return false
	}
	if c.SubCategory != "" && (p.SubCategory == nil || p.SubCategory.Slug != c.SubCategory) {
		return false
	}
	return true
}

func reportLabelMismatch(listing Listing, p *model.Product, now time.Time, log logger.ZapLogger) {
	inWindow := IsWithinWindow(p.Discount, now)
	labelled := HasOngoingLabel(p.Discount)
	if inWindow == labelled {
		return
	}
	metrics.RecordLabelMismatch(string(listing))
	log.Warn("discount status label disagrees with its time window",
		zap.String("listing", string(listing)),
		zap.String("product_id", p.ID),
		zap.String("discount_id", p.Discount.ID),
		zap.String("status", string(p.Discount.Status)),
		zap.Time("start_date", p.Discount.StartDate),
		zap.Time("end_date", p.Discount.EndDate),
		zap.Bool("within_window", inWindow),
	)
}
