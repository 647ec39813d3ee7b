package services

import (
	"errors"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repository"
)

func TestGetOrderScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	cartSvc := newCartService(db)
	checkoutSvc := newCheckoutService(db)
	orderSvc := NewOrderService(repository.NewOrderRepository(db))
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	item := seedItem(t, db, "Green Jacket", "59.90")

	if err := cartSvc.AddItem(CartOwner{UserID: alice.ID}, item.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	order, err := checkoutSvc.Checkout(alice.ID)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	got, err := orderSvc.GetOrderForUser(alice.ID, order.ID)
	if err != nil {
		t.Fatalf("get own order: %v", err)
	}
	if len(got.Items) != 1 {
		t.Errorf("expected order items preloaded, got %d", len(got.Items))
	}

	if _, err := orderSvc.GetOrderForUser(bob.ID, order.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for another user's order, got %v", err)
	}
}

func TestUpdateStatusValidatesEnum(t *testing.T) {
	db := setupTestDB(t)
	cartSvc := newCartService(db)
	checkoutSvc := newCheckoutService(db)
	orderSvc := NewOrderService(repository.NewOrderRepository(db))
	user := seedUser(t, db, "alice")
	item := seedItem(t, db, "Green Jacket", "59.90")

	if err := cartSvc.AddItem(CartOwner{UserID: user.ID}, item.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	order, err := checkoutSvc.Checkout(user.ID)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if err := orderSvc.UpdateStatus(order.ID, "exploded"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}

	if err := orderSvc.UpdateStatus(order.ID, string(models.OrderShipped)); err != nil {
		t.Fatalf("update status: %v", err)
	}
	got, err := orderSvc.GetOrderForUser(user.ID, order.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != string(models.OrderShipped) {
		t.Errorf("expected status shipped, got %s", got.Status)
	}

	if err := orderSvc.UpdateStatus(9999, string(models.OrderShipped)); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing order, got %v", err)
	}
}
