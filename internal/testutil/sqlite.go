// Package testutil provides an in-memory SQLite database carrying the
// storefront schema, plus fixture writers for repository tests.
package testutil

import (
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

const schema = `
CREATE TABLE vendors (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    approval_status TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
CREATE TABLE categories (
    id TEXT PRIMARY KEY,
    parent_id TEXT,
    name TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
CREATE TABLE discounts (
    id TEXT PRIMARY KEY,
    value NUMERIC NOT NULL,
    type TEXT NOT NULL,
    start_date TIMESTAMP NOT NULL,
    end_date TIMESTAMP NOT NULL,
    status TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
CREATE TABLE products (
    id TEXT PRIMARY KEY,
    vendor_id TEXT NOT NULL,
    category_id TEXT,
    sub_category_id TEXT,
    discount_id TEXT,
    name TEXT NOT NULL,
    slug TEXT NOT NULL UNIQUE,
    image_url TEXT,
    images TEXT NOT NULL DEFAULT '[]',
    price NUMERIC NOT NULL,
    approval_status TEXT NOT NULL,
    popularity_score INTEGER NOT NULL DEFAULT 0,
    sold_count INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
CREATE TABLE policies (
    id TEXT PRIMARY KEY,
    terms_of_service TEXT,
    privacy_policy TEXT,
    return_policy TEXT,
    shipping_policy TEXT,
    refund_policy TEXT,
    cookie_policy TEXT,
    updated_at TIMESTAMP NOT NULL
);
`

// NewDB opens a private in-memory database with the schema applied.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite3", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return db
}

func base(now time.Time) model.BaseModel {
	return model.BaseModel{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
}

func InsertVendor(t *testing.T, db *sqlx.DB, slug string, status model.ApprovalStatus) *model.Vendor {
	t.Helper()
	v := &model.Vendor{
		BaseModel:      base(time.Now().UTC()),
		Name:           slug,
		Slug:           slug,
		ApprovalStatus: status,
	}
	mustExec(t, db, `INSERT INTO vendors (id, name, slug, approval_status, created_at, updated_at)
		VALUES (:id, :name, :slug, :approval_status, :created_at, :updated_at)`, v)
	return v
}

func InsertCategory(t *testing.T, db *sqlx.DB, slug string, parent *model.Category) *model.Category {
	t.Helper()
	c := &model.Category{
		BaseModel: base(time.Now().UTC()),
		Name:      slug,
		Slug:      slug,
	}
	if parent != nil {
		c.ParentID = &parent.ID
	}
	mustExec(t, db, `INSERT INTO categories (id, parent_id, name, slug, created_at, updated_at)
		VALUES (:id, :parent_id, :name, :slug, :created_at, :updated_at)`, c)
	return c
}

func InsertDiscount(t *testing.T, db *sqlx.DB, value int64, start, end time.Time, status model.DiscountStatus) *model.Discount {
	t.Helper()
	d := &model.Discount{
		BaseModel: base(time.Now().UTC()),
		Value:     decimal.NewFromInt(value),
		Type:      model.DiscountPercentage,
		StartDate: start.UTC(),
		EndDate:   end.UTC(),
		Status:    status,
	}
	mustExec(t, db, `INSERT INTO discounts (id, value, type, start_date, end_date, status, created_at, updated_at)
		VALUES (:id, :value, :type, :start_date, :end_date, :status, :created_at, :updated_at)`, d)
	return d
}

// ProductFixture describes a product row; zero values get defaults.
type ProductFixture struct {
	Slug        string
	Vendor      *model.Vendor
	Category    *model.Category
	SubCategory *model.Category
	Discount    *model.Discount
	Status      model.ApprovalStatus
	Popularity  int
	CreatedAt   time.Time
}

func InsertProduct(t *testing.T, db *sqlx.DB, f ProductFixture) *model.Product {
	t.Helper()
	created := f.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	status := f.Status
	if status == "" {
		status = model.ApprovalApproved
	}
	img := "https://cdn.example.com/" + f.Slug + ".png"
	p := &model.Product{
		BaseModel:       base(created.UTC()),
		VendorID:        f.Vendor.ID,
		Name:            f.Slug,
		Slug:            f.Slug,
		ImageURL:        &img,
		Images:          model.StringList{img},
		Price:           decimal.RequireFromString("99.90"),
		ApprovalStatus:  status,
		PopularityScore: f.Popularity,
		SoldCount:       f.Popularity * 2,
	}
	if f.Category != nil {
		p.CategoryID = &f.Category.ID
	}
	if f.SubCategory != nil {
		p.SubCategoryID = &f.SubCategory.ID
	}
	if f.Discount != nil {
		p.DiscountID = &f.Discount.ID
	}
	mustExec(t, db, `INSERT INTO products (
			id, vendor_id, category_id, sub_category_id, discount_id, name, slug, image_url, images,
			price, approval_status, popularity_score, sold_count, created_at, updated_at
		) VALUES (
			:id, :vendor_id, :category_id, :sub_category_id, :discount_id, :name, :slug, :image_url, :images,
			:price, :approval_status, :popularity_score, :sold_count, :created_at, :updated_at
		)`, p)
	return p
}

func InsertPolicy(t *testing.T, db *sqlx.DB, doc *model.PolicyDocument) *model.PolicyDocument {
	t.Helper()
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	mustExec(t, db, `INSERT INTO policies (
			id, terms_of_service, privacy_policy, return_policy, shipping_policy, refund_policy, cookie_policy, updated_at
		) VALUES (
			:id, :terms_of_service, :privacy_policy, :return_policy, :shipping_policy, :refund_policy, :cookie_policy, :updated_at
		)`, doc)
	return doc
}

func mustExec(t *testing.T, db *sqlx.DB, query string, arg interface{}) {
	t.Helper()
	if _, err := db.NamedExec(query, arg); err != nil {
		t.Fatalf("fixture insert failed: %v", err)
	}
}
