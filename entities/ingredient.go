package entities

type Ingredient struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Unit  string `gorm:"size:25" json:"unit,omitempty"` // default unit
	Notes string `gorm:"size:500" json:"notes,omitempty"`

	RecipeIngredients []RecipeIngredient `gorm:"foreignKey:IngredientID" json:"-"`
	Timestamp
}
