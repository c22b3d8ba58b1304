package services

import (
	"errors"
	"fmt"
	"parts_market/internal/models"
	"parts_market/internal/repository"

	"gorm.io/gorm"
)

type OrderService interface {
	ListOrders(actor *models.User) ([]models.VendorOrder, error)
	GetOrder(actor *models.User, id uint) (*models.VendorOrder, error)
	// Confirm: vendor accepts the awarded order (PENDING_PAYMENT -> CONFIRMED).
	Confirm(actor *models.User, id uint) (*models.VendorOrder, error)
	// MarkReady: vendor has the parts ready (CONFIRMED -> READY_FOR_PICKUP).
	MarkReady(actor *models.User, id uint) (*models.VendorOrder, error)
	// ConfirmDelivery: the workshop closes the order (READY_FOR_PICKUP or
	// OUT_FOR_DELIVERY -> COMPLETED).
	ConfirmDelivery(actor *models.User, id uint) (*models.VendorOrder, error)
}

// allowedFrom lists the statuses each transition target may be reached from.
var allowedFrom = map[models.OrderStatus][]models.OrderStatus{
	models.OrderConfirmed:      {models.OrderPendingPayment},
	models.OrderReadyForPickup: {models.OrderConfirmed},
	models.OrderCompleted:      {models.OrderReadyForPickup, models.OrderOutForDelivery},
}

type orderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

func (s *orderService) ListOrders(actor *models.User) ([]models.VendorOrder, error) {
	switch actor.Role {
	case models.RoleVendor:
		return s.orderRepo.GetByVendor(actor.ID)
	case models.RoleWorkshop:
		return s.orderRepo.GetByWorkshop(actor.ID)
	case models.RoleAdmin:
		return nil, models.NewForbiddenError("admins have no order list")
	default:
		return nil, models.NewForbiddenError("unknown role")
	}
}

func (s *orderService) GetOrder(actor *models.User, id uint) (*models.VendorOrder, error) {
	order, err := s.getOrder(id)
	if err != nil {
		return nil, err
	}
	switch actor.Role {
	case models.RoleVendor:
		if order.VendorID != actor.ID {
			return nil, models.NewForbiddenError("not the vendor of this order")
		}
	case models.RoleWorkshop:
		if order.RFQ.WorkshopID != actor.ID {
			return nil, models.NewForbiddenError("not the requester of this order")
		}
	case models.RoleAdmin:
		return nil, models.NewForbiddenError("admins have no order access")
	default:
		return nil, models.NewForbiddenError("unknown role")
	}
	return order, nil
}

func (s *orderService) Confirm(actor *models.User, id uint) (*models.VendorOrder, error) {
	return s.vendorTransition(actor, id, models.OrderConfirmed)
}

func (s *orderService) MarkReady(actor *models.User, id uint) (*models.VendorOrder, error) {
	return s.vendorTransition(actor, id, models.OrderReadyForPickup)
}

func (s *orderService) ConfirmDelivery(actor *models.User, id uint) (*models.VendorOrder, error) {
	order, err := s.getOrder(id)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleWorkshop || order.RFQ.WorkshopID != actor.ID {
		return nil, models.NewForbiddenError("only the requesting workshop can confirm delivery")
	}
	return s.transition(order, models.OrderCompleted)
}

func (s *orderService) vendorTransition(actor *models.User, id uint, target models.OrderStatus) (*models.VendorOrder, error) {
	order, err := s.getOrder(id)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleVendor || order.VendorID != actor.ID {
		return nil, models.NewForbiddenError("only the order's vendor can perform this action")
	}
	return s.transition(order, target)
}

func (s *orderService) transition(order *models.VendorOrder, target models.OrderStatus) (*models.VendorOrder, error) {
	if !containsStatus(allowedFrom[target], order.Status) {
		return nil, models.NewConflictError(
			fmt.Sprintf("invalid transition from %s to %s", order.Status, target))
	}
	if err := s.orderRepo.UpdateStatus(order.ID, target); err != nil {
		return nil, err
	}
	order.Status = target
	return order, nil
}

func (s *orderService) getOrder(id uint) (*models.VendorOrder, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("order not found")
		}
		return nil, err
	}
	return order, nil
}

func containsStatus(statuses []models.OrderStatus, status models.OrderStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
