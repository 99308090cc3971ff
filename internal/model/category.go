package model

// Category is either a top level category or, with ParentID set, a
// subcategory.
type Category struct {
	BaseModel
	ParentID *string `db:"parent_id" json:"parentId,omitempty"`
	Name     string  `db:"name" json:"name"`
	Slug     string  `db:"slug" json:"slug"`
}

// CategoryRef is the trimmed category embedded in product listings.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
