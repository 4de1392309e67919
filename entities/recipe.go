package entities

type Recipe struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Title        string `gorm:"size:120;not null" json:"title"`
	Description  string `gorm:"size:4000" json:"description,omitempty"`
	Instructions string `gorm:"type:text;not null" json:"instructions"`
	Servings     int    `json:"servings"`
	PrepTime     int    `json:"prep_time"` // minutes
	CookTime     int    `json:"cook_time"` // minutes
	ImageURL     string `gorm:"size:500" json:"image_url,omitempty"`
	CategoryID   uint   `gorm:"not null;index" json:"category_id"`

	Category    *Category          `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients,omitempty"`
	Reviews     []Review           `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	Timestamp
}

// RecipeIngredient is one quantity line of a recipe. The composite key keeps
// at most one line per ingredient per recipe.
type RecipeIngredient struct {
	RecipeID     uint    `gorm:"primaryKey;autoIncrement:false" json:"recipe_id"`
	IngredientID uint    `gorm:"primaryKey;autoIncrement:false" json:"ingredient_id"`
	Quantity     float64 `gorm:"type:decimal(7,2)" json:"quantity"`
	UnitOverride string  `gorm:"size:25" json:"unit_override,omitempty"`
	Notes        string  `gorm:"size:300" json:"notes,omitempty"`

	Recipe     *Recipe     `gorm:"foreignKey:RecipeID" json:"-"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:RESTRICT" json:"-"`
}
