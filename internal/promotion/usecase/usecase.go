package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-storefront-service/config"
	"github.com/fekuna/omnipos-storefront-service/internal/apperror"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/promotion"
	"github.com/fekuna/omnipos-storefront-service/internal/promotion/dto"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CacheKeyPrefix namespaces listing entries in the shared cache.
const CacheKeyPrefix = "promotions:"

type promotionUseCase struct {
	repo   promotion.Repository
	cache  cache.Store
	ttl    time.Duration
	cfg    config.PromotionConfig
	logger logger.ZapLogger
	now    func() time.Time
	group  singleflight.Group
}

// NewPromotionUseCase wires the listing selector. store may be nil to
// disable caching.
func NewPromotionUseCase(repo promotion.Repository, store cache.Store, ttl time.Duration, cfg config.PromotionConfig, log logger.ZapLogger) promotion.UseCase {
	return &promotionUseCase{
		repo:   repo,
		cache:  store,
		ttl:    ttl,
		cfg:    cfg,
		logger: log,
		now:    time.Now,
	}
}

func (uc *promotionUseCase) FlashDeals(ctx context.Context) ([]model.Product, error) {
	return uc.list(ctx, promotion.Criteria{
		Listing: promotion.FlashDeals,
		Limit:   uc.cfg.FlashDealsLimit,
	}, &dto.CandidateFilter{RequireDiscount: true})
}

func (uc *promotionUseCase) TopDeals(ctx context.Context, filter dto.ListingFilter) ([]model.Product, error) {
	return uc.list(ctx, promotion.Criteria{
		Listing:     promotion.TopDeals,
		Category:    filter.Category,
		SubCategory: filter.SubCategory,
		Limit:       uc.cfg.TopDealsLimit,
	}, &dto.CandidateFilter{
		Category:        filter.Category,
		SubCategory:     filter.SubCategory,
		RequireDiscount: true,
		DiscountStatus:  model.DiscountOngoing,
	})
}

func (uc *promotionUseCase) NewArrivals(ctx context.Context, filter dto.ListingFilter) ([]model.Product, error) {
	cutoff := uc.now().Add(-uc.cfg.NewArrivalWindow)
	return uc.list(ctx, promotion.Criteria{
		Listing:          promotion.NewArrivals,
		Category:         filter.Category,
		SubCategory:      filter.SubCategory,
		Limit:            uc.cfg.NewArrivalsLimit,
		NewArrivalWindow: uc.cfg.NewArrivalWindow,
	}, &dto.CandidateFilter{
		Category:     filter.Category,
		SubCategory:  filter.SubCategory,
		CreatedAfter: &cutoff,
	})
}

// selection is one computed listing. ValidUntil is set for flash deals:
// the earliest instant the result may change because a listed discount
// ends or a pending one starts.
type selection struct {
	Products   []model.Product
	ValidUntil time.Time
}

func (uc *promotionUseCase) list(ctx context.Context, criteria promotion.Criteria, filter *dto.CandidateFilter) ([]model.Product, error) {
	cacheKey := uc.cacheKey(criteria)
	if uc.cache != nil {
		var cached []model.Product
		found, err := uc.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			uc.logger.Warn("listing cache read failed", zap.String("key", cacheKey), zap.Error(err))
		} else if found && uc.stillValid(criteria.Listing, cached) {
			return cached, nil
		}
	}

	// Concurrent misses for the same key share one query. The query must
	// not inherit the first caller's cancellation.
	queryCtx := context.WithoutCancel(ctx)
	val, err, _ := uc.group.Do(cacheKey, func() (interface{}, error) {
		candidates, err := uc.repo.FindCandidates(queryCtx, filter)
		if err != nil {
			return nil, err
		}
		now := uc.now()
		products := promotion.Select(candidates, criteria, now, uc.logger)
		sel := selection{Products: products}
		if criteria.Listing == promotion.FlashDeals {
			sel.ValidUntil = windowBoundary(candidates, products, now)
		}
		return sel, nil
	})
	if err != nil {
		uc.logger.Error("failed to load listing candidates",
			zap.String("listing", string(criteria.Listing)),
			zap.Error(err),
		)
		return nil, apperror.Internal(apperror.MsgProductsFetch, err)
	}
	sel := val.(selection)

	if uc.cache != nil {
		ttl := uc.ttl
		if !sel.ValidUntil.IsZero() {
			if left := sel.ValidUntil.Sub(uc.now()); left < ttl {
				ttl = left
			}
		}
		if ttl > 0 {
			if err := uc.cache.SetJSON(ctx, cacheKey, sel.Products, ttl); err != nil {
				uc.logger.Warn("listing cache write failed", zap.String("key", cacheKey), zap.Error(err))
			}
		}
	}

	return sel.Products, nil
}

// stillValid rejects a cached flash-deal listing once any of its
// discounts has left the live window.
func (uc *promotionUseCase) stillValid(listing promotion.Listing, cached []model.Product) bool {
	if listing != promotion.FlashDeals {
		return true
	}
	now := uc.now()
	for i := range cached {
		if !promotion.IsWithinWindow(cached[i].Discount, now) {
			return false
		}
	}
	return true
}

// windowBoundary returns the earliest end date among the selected deals
// and the earliest future start date among the candidates, whichever
// comes first. Zero means no boundary is known.
func windowBoundary(candidates, selected []model.Product, now time.Time) time.Time {
	var until time.Time
	earlier := func(t time.Time) {
		if until.IsZero() || t.Before(until) {
			until = t
		}
	}
	for i := range selected {
		if d := selected[i].Discount; d != nil {
			// EndDate is inclusive; the listing changes just after it.
			earlier(d.EndDate.Add(time.Nanosecond))
		}
	}
	for i := range candidates {
		if d := candidates[i].Discount; d != nil && d.StartDate.After(now) {
			earlier(d.StartDate)
		}
	}
	return until
}

// cacheKey is stable for equal criteria: promotions:<listing>:<md5>.
func (uc *promotionUseCase) cacheKey(c promotion.Criteria) string {
	data, _ := json.Marshal(c)
	return fmt.Sprintf("%s%s:%x", CacheKeyPrefix, c.Listing, md5.Sum(data))
}
