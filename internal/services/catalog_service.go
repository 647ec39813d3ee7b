package services

import (
	"errors"
	"storefront/internal/models"
	"storefront/internal/repository"

	"gorm.io/gorm"
)

type CatalogService interface {
	ListItems() ([]models.Item, error)
	GetItem(id uint) (*models.Item, error)
	CreateItem(item *models.Item) error
	UpdateItem(item *models.Item) error
	DeleteItem(id uint) error

	ListCategories() ([]models.Category, error)
	GetCategory(id uint) (*models.Category, error)
	CreateCategory(category *models.Category) error
	DeleteCategory(id uint) error
	AssignItems(categoryID uint, itemIDs []uint) error
}

type catalogService struct {
	itemRepo     repository.ItemRepository
	categoryRepo repository.CategoryRepository
}

func NewCatalogService(itemRepo repository.ItemRepository, categoryRepo repository.CategoryRepository) CatalogService {
	return &catalogService{itemRepo: itemRepo, categoryRepo: categoryRepo}
}

func (s *catalogService) ListItems() ([]models.Item, error) {
	return s.itemRepo.GetAll()
}

func (s *catalogService) GetItem(id uint) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *catalogService) CreateItem(item *models.Item) error {
	return s.itemRepo.Create(item)
}

func (s *catalogService) UpdateItem(item *models.Item) error {
	existing, err := s.GetItem(item.ID)
	if err != nil {
		return err
	}
	existing.Name = item.Name
	existing.Description = item.Description
	existing.Price = item.Price
	return s.itemRepo.Update(existing)
}

func (s *catalogService) DeleteItem(id uint) error {
	if _, err := s.GetItem(id); err != nil {
		return err
	}
	return s.itemRepo.Delete(id)
}

func (s *catalogService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

func (s *catalogService) GetCategory(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *catalogService) CreateCategory(category *models.Category) error {
	return s.categoryRepo.Create(category)
}

func (s *catalogService) DeleteCategory(id uint) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(id)
}

// AssignItems replaces the category's item set; every referenced item must
// exist.
func (s *catalogService) AssignItems(categoryID uint, itemIDs []uint) error {
	category, err := s.GetCategory(categoryID)
	if err != nil {
		return err
	}
	items := make([]models.Item, 0, len(itemIDs))
	for _, id := range itemIDs {
		item, err := s.GetItem(id)
		if err != nil {
			return err
		}
		items = append(items, *item)
	}
	return s.categoryRepo.ReplaceItems(category, items)
}
