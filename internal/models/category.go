package models

type Category struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Title string `json:"title" gorm:"unique;not null"`
	Items []Item `json:"items,omitempty" gorm:"many2many:category_items"`
}
