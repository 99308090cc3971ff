package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	VendorID        string          `db:"vendor_id" json:"-"`
	CategoryID      *string         `db:"category_id" json:"-"`
	SubCategoryID   *string         `db:"sub_category_id" json:"-"`
	DiscountID      *string         `db:"discount_id" json:"-"`
	Name            string          `db:"name" json:"name"`
	Slug            string          `db:"slug" json:"slug"`
	ImageURL        *string         `db:"image_url" json:"imageUrl"`
	Images          StringList      `db:"images" json:"images"`
	Price           decimal.Decimal `db:"price" json:"price"`
	ApprovalStatus  ApprovalStatus  `db:"approval_status" json:"approvalStatus"`
	PopularityScore int             `db:"popularity_score" json:"popularityScore"`
	SoldCount       int             `db:"sold_count" json:"soldCount"`

	Discount    *Discount    `db:"-" json:"discount"`
	Vendor      *VendorRef   `db:"-" json:"vendor"`
	Category    *CategoryRef `db:"-" json:"category"`
	SubCategory *CategoryRef `db:"-" json:"subCategory"`
}

// StringList is stored as a JSON array in a text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("StringList: unsupported source %T", src)
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("StringList: %w", err)
	}
	*l = out
	return nil
}
