package policy

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/policy/dto"
)

type UseCase interface {
	Resolve(ctx context.Context, policyType string) (*dto.PolicyContent, error)
}
