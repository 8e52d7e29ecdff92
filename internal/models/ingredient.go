package models

// Ingredient is a catalog entry shared across recipes.
// The catalog is loaded from fixtures and is read-only over the API.
type Ingredient struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"not null;index" json:"name"`
	MeasurementUnit string `gorm:"not null;type:varchar(16)" json:"measurement_unit"`
}
