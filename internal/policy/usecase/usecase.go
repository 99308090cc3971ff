package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/apperror"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/policy"
	"github.com/fekuna/omnipos-storefront-service/internal/policy/dto"
	"go.uber.org/zap"
)

// CacheKeyPrefix namespaces policy entries in the shared cache.
const CacheKeyPrefix = "policies:"

type policyUseCase struct {
	repo   policy.Repository
	cache  cache.Store
	ttl    time.Duration
	logger logger.ZapLogger
}

// NewPolicyUseCase wires the resolver. store may be nil to disable caching.
func NewPolicyUseCase(repo policy.Repository, store cache.Store, ttl time.Duration, log logger.ZapLogger) policy.UseCase {
	return &policyUseCase{
		repo:   repo,
		cache:  store,
		ttl:    ttl,
		logger: log,
	}
}

func (uc *policyUseCase) Resolve(ctx context.Context, policyType string) (*dto.PolicyContent, error) {
	kind, err := policy.ParseKind(policyType)
	if err != nil {
		return nil, err
	}

	cacheKey := CacheKeyPrefix + string(kind)
	if uc.cache != nil {
		var cached dto.PolicyContent
		found, err := uc.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			uc.logger.Warn("policy cache read failed", zap.String("key", cacheKey), zap.Error(err))
		} else if found {
			return &cached, nil
		}
	}

	doc, err := uc.repo.FindDocument(ctx, kind)
	if err != nil {
		uc.logger.Error("failed to load policy document", zap.String("kind", string(kind)), zap.Error(err))
		return nil, apperror.Internal(apperror.MsgInternal, err)
	}
	if doc == nil {
		return nil, apperror.NotFound(apperror.MsgPolicyNotFound)
	}

	content := kind.Content(doc)
	if strings.TrimSpace(content) == "" {
		return nil, apperror.NotFound(apperror.MsgPolicyNotFound)
	}

	result := &dto.PolicyContent{Content: content, UpdatedAt: doc.UpdatedAt}

	if uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, cacheKey, result, uc.ttl); err != nil {
			uc.logger.Warn("policy cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	return result, nil
}
