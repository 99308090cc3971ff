package dto

import "time"

type PolicyContent struct {
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt"`
}
