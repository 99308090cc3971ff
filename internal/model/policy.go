package model

import (
	"database/sql"
	"time"
)

// PolicyDocument is the single row holding every storefront policy text.
type PolicyDocument struct {
	ID             string         `db:"id"`
	TermsOfService sql.NullString `db:"terms_of_service"`
	PrivacyPolicy  sql.NullString `db:"privacy_policy"`
	ReturnPolicy   sql.NullString `db:"return_policy"`
	ShippingPolicy sql.NullString `db:"shipping_policy"`
	RefundPolicy   sql.NullString `db:"refund_policy"`
	CookiePolicy   sql.NullString `db:"cookie_policy"`
	UpdatedAt      time.Time      `db:"updated_at"`
}
