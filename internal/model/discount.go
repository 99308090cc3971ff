package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountAmount     DiscountType = "amount"
)

// DiscountStatus is a stored label. It is refreshed out of band and can
// lag behind StartDate/EndDate.
type DiscountStatus string

const (
	DiscountUpcoming DiscountStatus = "Upcoming"
	DiscountOngoing  DiscountStatus = "Ongoing"
	DiscountExpired  DiscountStatus = "Expired"
)

type Discount struct {
	BaseModel
	Value     decimal.Decimal `db:"value" json:"value"`
	Type      DiscountType    `db:"type" json:"type"`
	StartDate time.Time       `db:"start_date" json:"startDate"`
	EndDate   time.Time       `db:"end_date" json:"endDate"`
	Status    DiscountStatus  `db:"status" json:"status"`
}
