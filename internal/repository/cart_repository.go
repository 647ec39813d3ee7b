package repository

import (
	"storefront/internal/models"

	"gorm.io/gorm"
)

type CartRepository interface {
	GetOrCreateForUser(userID uint) (*models.Cart, error)
	GetOrCreateForSession(sessionKey string) (*models.Cart, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) GetOrCreateForUser(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Where(models.Cart{UserID: &userID}).FirstOrCreate(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) GetOrCreateForSession(sessionKey string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Where(models.Cart{SessionKey: &sessionKey}).FirstOrCreate(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}
