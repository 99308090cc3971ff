package model

type Vendor struct {
	BaseModel
	Name           string         `db:"name" json:"name"`
	Slug           string         `db:"slug" json:"slug"`
	ApprovalStatus ApprovalStatus `db:"approval_status" json:"approvalStatus"`
}

type VendorRef struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Slug           string         `json:"slug"`
	ApprovalStatus ApprovalStatus `json:"approvalStatus"`
}
