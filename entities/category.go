package entities

type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:60;not null;uniqueIndex" json:"name"`
	Description string `gorm:"size:300" json:"description,omitempty"`

	Recipes []Recipe `gorm:"foreignKey:CategoryID" json:"-"`
	Timestamp
}
