package policy

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type Repository interface {
	// FindDocument loads the policy document projected to kind's column
	// and the shared timestamp. Returns nil, nil when no document exists.
	FindDocument(ctx context.Context, kind Kind) (*model.PolicyDocument, error)
}
