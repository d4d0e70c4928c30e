package models

// Category groups events by topic
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

// TableName specifies the table name for Category model
func (Category) TableName() string {
	return "categories"
}

// NewCategoryRequest represents the payload for creating or renaming a category
type NewCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}
