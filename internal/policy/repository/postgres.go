package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/policy"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindDocument(ctx context.Context, kind policy.Kind) (*model.PolicyDocument, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown policy kind %q", kind)
	}

	// The column comes from the closed Kind mapping, never from input.
	query := fmt.Sprintf(
		`SELECT id, %s, updated_at FROM policies ORDER BY updated_at DESC LIMIT 1`,
		kind.Column(),
	)

	var doc model.PolicyDocument
	err := r.DB.GetContext(ctx, &doc, query)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}
