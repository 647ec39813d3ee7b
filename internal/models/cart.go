package models

import "time"

// Cart belongs to exactly one owner: a registered user or an anonymous
// session. The partial unique indexes keep one cart per owner key.
type Cart struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	UserID     *uint      `json:"user_id,omitempty" gorm:"uniqueIndex"`
	SessionKey *string    `json:"session_key,omitempty" gorm:"uniqueIndex;size:40"`
	Items      []CartItem `json:"items,omitempty" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
