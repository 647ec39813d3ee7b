package services

import (
	"errors"
	"storefront/internal/models"
	"storefront/internal/repository"

	"gorm.io/gorm"
)

type OrderService interface {
	GetOrderForUser(userID, orderID uint) (*models.Order, error)
	ListOrdersForUser(userID uint) ([]models.Order, error)
	UpdateStatus(orderID uint, status string) error
}

type orderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

// GetOrderForUser fetches one order scoped to its owner; another user's
// order id behaves like a missing one.
func (s *orderService) GetOrderForUser(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrNotFound
	}
	return order, nil
}

func (s *orderService) ListOrdersForUser(userID uint) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}

func (s *orderService) UpdateStatus(orderID uint, status string) error {
	if !models.ValidOrderStatus(status) {
		return ErrInvalidStatus
	}
	updated, err := s.orderRepo.UpdateStatus(orderID, status)
	if err != nil {
		return err
	}
	if !updated {
		return ErrNotFound
	}
	return nil
}
