package models

// Tag is a recipe label (e.g. breakfast, dinner) used for filtering.
// Tags are managed by fixtures/admin tooling and are read-only over the API.
type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"unique;not null" json:"name"`
	Color string `gorm:"unique;not null;type:varchar(16)" json:"color"`
	Slug  string `gorm:"unique;not null;type:varchar(50)" json:"slug"`
}
