package entities

import "time"

// Review belongs to a recipe and optionally to a user. UserID stays nil for
// anonymous reviews, which carry only the freeform ReviewerName. The unique
// index on (recipe_id, user_id) allows one review per signed-in user per
// recipe; NULL user ids do not collide, so anonymous reviews are unlimited.
type Review struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RecipeID     uint      `gorm:"not null;uniqueIndex:idx_reviews_recipe_user" json:"recipe_id"`
	UserID       *uint     `gorm:"uniqueIndex:idx_reviews_recipe_user" json:"user_id,omitempty"`
	ReviewerName string    `gorm:"size:80" json:"reviewer_name"`
	Rating       int       `gorm:"not null" json:"rating"`
	Title        string    `gorm:"size:120" json:"title,omitempty"`
	Body         string    `gorm:"size:2000" json:"body,omitempty"`
	CreatedAt    time.Time `gorm:"type:timestamp" json:"created_at"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"-"`
	User   *User   `gorm:"foreignKey:UserID" json:"-"`
}
