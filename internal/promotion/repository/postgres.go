package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/promotion/dto"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const candidateSelect = `
	SELECT
		p.id, p.vendor_id, p.category_id, p.sub_category_id, p.discount_id,
		p.name, p.slug, p.image_url, p.images, p.price, p.approval_status,
		p.popularity_score, p.sold_count, p.created_at, p.updated_at,
		v.name AS vendor_name, v.slug AS vendor_slug, v.approval_status AS vendor_approval_status,
		c.name AS category_name, c.slug AS category_slug,
		sc.name AS sub_category_name, sc.slug AS sub_category_slug,
		d.value AS discount_value, d.type AS discount_type,
		d.start_date AS discount_start_date, d.end_date AS discount_end_date,
		d.status AS discount_status,
		d.created_at AS discount_created_at, d.updated_at AS discount_updated_at
	FROM products p
	JOIN vendors v ON v.id = p.vendor_id
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN categories sc ON sc.id = p.sub_category_id
	LEFT JOIN discounts d ON d.id = p.discount_id`

type candidateRow struct {
	model.Product

	VendorName           string               `db:"vendor_name"`
	VendorSlug           string               `db:"vendor_slug"`
	VendorApprovalStatus model.ApprovalStatus `db:"vendor_approval_status"`

	CategoryName    sql.NullString `db:"category_name"`
	CategorySlug    sql.NullString `db:"category_slug"`
	SubCategoryName sql.NullString `db:"sub_category_name"`
	SubCategorySlug sql.NullString `db:"sub_category_slug"`

	DiscountValue     decimal.NullDecimal `db:"discount_value"`
	DiscountType      sql.NullString      `db:"discount_type"`
	DiscountStartDate sql.NullTime        `db:"discount_start_date"`
	DiscountEndDate   sql.NullTime        `db:"discount_end_date"`
	DiscountStatus    sql.NullString      `db:"discount_status"`
	DiscountCreatedAt sql.NullTime        `db:"discount_created_at"`
	DiscountUpdatedAt sql.NullTime        `db:"discount_updated_at"`
}

func (r *PGRepository) FindCandidates(ctx context.Context, f *dto.CandidateFilter) ([]model.Product, error) {
	conditions := []string{
		"p.approval_status = :approved",
		"v.approval_status = :approved",
	}
	args := map[string]interface{}{
		"approved": model.ApprovalApproved,
	}

	if f.RequireDiscount {
		conditions = append(conditions, "d.id IS NOT NULL")
	}
	if f.DiscountStatus != "" {
		conditions = append(conditions, "d.status = :discount_status")
		args["discount_status"] = f.DiscountStatus
	}
	if f.Category != "" {
		conditions = append(conditions, "c.slug = :category")
		args["category"] = f.Category
	}
	if f.SubCategory != "" {
		conditions = append(conditions, "sc.slug = :sub_category")
		args["sub_category"] = f.SubCategory
	}
	if f.CreatedAfter != nil {
		conditions = append(conditions, "p.created_at > :created_after")
		args["created_after"] = *f.CreatedAfter
	}

	query := candidateSelect +
		" WHERE " + strings.Join(conditions, " AND ") +
		" ORDER BY p.created_at DESC, p.id"

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	var rows []candidateRow
	if err := nstmt.SelectContext(ctx, &rows, args); err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(rows))
	for i := range rows {
		products = append(products, rows[i].toProduct())
	}
	return products, nil
}

func (row *candidateRow) toProduct() model.Product {
	p := row.Product

	p.Vendor = &model.VendorRef{
		ID:             p.VendorID,
		Name:           row.VendorName,
		Slug:           row.VendorSlug,
		ApprovalStatus: row.VendorApprovalStatus,
	}
	if p.CategoryID != nil && row.CategorySlug.Valid {
		p.Category = &model.CategoryRef{ID: *p.CategoryID, Name: row.CategoryName.String, Slug: row.CategorySlug.String}
	}
	if p.SubCategoryID != nil && row.SubCategorySlug.Valid {
		p.SubCategory = &model.CategoryRef{ID: *p.SubCategoryID, Name: row.SubCategoryName.String, Slug: row.SubCategorySlug.String}
	}
	if p.DiscountID != nil && row.DiscountValue.Valid {
		p.Discount = &model.Discount{
			BaseModel: model.BaseModel{
				ID:        *p.DiscountID,
				CreatedAt: row.DiscountCreatedAt.Time,
				UpdatedAt: row.DiscountUpdatedAt.Time,
			},
			Value:     row.DiscountValue.Decimal,
			Type:      model.DiscountType(row.DiscountType.String),
			StartDate: row.DiscountStartDate.Time,
			EndDate:   row.DiscountEndDate.Time,
			Status:    model.DiscountStatus(row.DiscountStatus.String),
		}
	}
	return p
}
