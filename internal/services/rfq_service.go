package services

import (
	"errors"
	"fmt"
	"parts_market/internal/models"
	"parts_market/internal/repository"
	"strings"

	"gorm.io/gorm"
)

type RFQService interface {
	CreateRFQ(actor *models.User, req *models.RFQCreateRequest) (*models.RFQ, error)
	ListRFQs(actor *models.User) ([]models.RFQ, error)
	OpenFeed(actor *models.User) ([]models.RFQ, error)
	GetRFQ(actor *models.User, id uint) (*models.RFQ, error)
	SubmitRFQ(actor *models.User, id uint) (*models.RFQ, error)
	UpdateRFQ(actor *models.User, id uint, req *models.RFQUpdateRequest) (*models.RFQ, error)
	DeleteRFQ(actor *models.User, id uint) error
	DeleteItem(actor *models.User, itemID uint) error
}

type rfqService struct {
	db                  *gorm.DB
	rfqRepo             repository.RFQRepository
	bidRepo             repository.BidRepository
	notificationService NotificationService
}

func NewRFQService(
	db *gorm.DB,
	rfqRepo repository.RFQRepository,
	bidRepo repository.BidRepository,
	notificationService NotificationService,
) RFQService {
	return &rfqService{
		db:                  db,
		rfqRepo:             rfqRepo,
		bidRepo:             bidRepo,
		notificationService: notificationService,
	}
}

func (s *rfqService) CreateRFQ(actor *models.User, req *models.RFQCreateRequest) (*models.RFQ, error) {
	if err := requireWorkshop(actor); err != nil {
		return nil, err
	}

	rfq := &models.RFQ{
		WorkshopID: actor.ID,
		VIN:        req.VIN,
		Make:       req.Make,
		Model:      req.Model,
		Year:       req.Year,
		Trim:       req.Trim,
		Engine:     req.Engine,
		RegCity:    req.RegCity,
		RegSeries:  req.RegSeries,
		RegNumber1: req.RegNumber1,
		RegNumber2: req.RegNumber2,
		Status:     models.RFQDraft,
	}
	for _, item := range req.Items {
		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}
		category := item.PreferredCategory
		if category == "" {
			category = models.CategoryAny
		}
		rfq.Items = append(rfq.Items, models.RFQItem{
			Name:              item.Name,
			PartNumber:        item.PartNumber,
			Quantity:          quantity,
			PreferredCategory: category,
			Side:              item.Side,
			Color:             item.Color,
			Notes:             item.Notes,
		})
	}

	if err := s.rfqRepo.Create(rfq); err != nil {
		return nil, err
	}
	return rfq, nil
}

func (s *rfqService) ListRFQs(actor *models.User) ([]models.RFQ, error) {
	switch actor.Role {
	case models.RoleWorkshop:
		return s.rfqRepo.GetByWorkshop(actor.ID)
	case models.RoleVendor:
		return s.rfqRepo.GetOpen()
	case models.RoleAdmin:
		return nil, models.NewForbiddenError("admins have no request list")
	default:
		return nil, models.NewForbiddenError("unknown role")
	}
}

// OpenFeed lists RFQs open for bidding, for vendors.
func (s *rfqService) OpenFeed(actor *models.User) ([]models.RFQ, error) {
	if err := requireVendor(actor); err != nil {
		return nil, err
	}
	return s.rfqRepo.GetOpen()
}

func (s *rfqService) GetRFQ(actor *models.User, id uint) (*models.RFQ, error) {
	rfq, err := s.getRFQ(id)
	if err != nil {
		return nil, err
	}
	switch actor.Role {
	case models.RoleWorkshop:
		if rfq.WorkshopID != actor.ID {
			return nil, models.NewForbiddenError("not the owner of this request")
		}
	case models.RoleVendor, models.RoleAdmin:
		// Vendors may inspect any request they can bid on or have bid on.
	default:
		return nil, models.NewForbiddenError("unknown role")
	}
	return rfq, nil
}

func (s *rfqService) SubmitRFQ(actor *models.User, id uint) (*models.RFQ, error) {
	rfq, err := s.getOwnedRFQ(actor, id)
	if err != nil {
		return nil, err
	}
	if rfq.Status != models.RFQDraft {
		return nil, models.NewConflictError("only draft requests can be submitted")
	}
	rfq.Status = models.RFQBiddingOpen
	if err := s.rfqRepo.Update(rfq); err != nil {
		return nil, err
	}
	return rfq, nil
}

func (s *rfqService) UpdateRFQ(actor *models.User, id uint, req *models.RFQUpdateRequest) (*models.RFQ, error) {
	rfq, err := s.getOwnedRFQ(actor, id)
	if err != nil {
		return nil, err
	}

	old := *rfq
	if req.VIN != nil {
		rfq.VIN = *req.VIN
	}
	if req.Make != nil {
		rfq.Make = *req.Make
	}
	if req.Model != nil {
		rfq.Model = *req.Model
	}
	if req.Year != nil {
		rfq.Year = req.Year
	}
	if req.Trim != nil {
		rfq.Trim = *req.Trim
	}
	if req.Engine != nil {
		rfq.Engine = *req.Engine
	}

	if err := s.rfqRepo.Update(rfq); err != nil {
		return nil, err
	}

	if summary := materialChanges(&old, rfq); summary != "" {
		if err := s.notificationService.NotifyVendorsOfUpdate(nil, rfq, summary, NotifyRFQUpdate); err != nil {
			return nil, err
		}
	}
	return rfq, nil
}

// DeleteRFQ notifies affected vendors, then removes the request with its
// items and bids. Notification records and the cascade share one
// transaction.
func (s *rfqService) DeleteRFQ(actor *models.User, id uint) error {
	rfq, err := s.getOwnedRFQ(actor, id)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		summary := "Request has been cancelled/deleted by the workshop"
		if err := s.notificationService.NotifyVendorsOfUpdate(tx, rfq, summary, NotifyRFQCancelled); err != nil {
			return err
		}
		return s.rfqRepo.Delete(tx, rfq)
	})
}

// DeleteItem removes a single line item, notifying vendors first.
func (s *rfqService) DeleteItem(actor *models.User, itemID uint) error {
	item, err := s.rfqRepo.GetItemByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("item not found")
		}
		return err
	}
	rfq, err := s.getOwnedRFQ(actor, item.RFQID)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		summary := fmt.Sprintf("Item '%s' was removed from the request", item.Name)
		if err := s.notificationService.NotifyVendorsOfUpdate(tx, rfq, summary, NotifyItemRemoved); err != nil {
			return err
		}
		return s.rfqRepo.DeleteItem(tx, item)
	})
}

func (s *rfqService) getRFQ(id uint) (*models.RFQ, error) {
	rfq, err := s.rfqRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("request not found")
		}
		return nil, err
	}
	return rfq, nil
}

func (s *rfqService) getOwnedRFQ(actor *models.User, id uint) (*models.RFQ, error) {
	if err := requireWorkshop(actor); err != nil {
		return nil, err
	}
	rfq, err := s.getRFQ(id)
	if err != nil {
		return nil, err
	}
	if rfq.WorkshopID != actor.ID {
		return nil, models.NewForbiddenError("not the owner of this request")
	}
	return rfq, nil
}

// materialChanges describes vehicle edits vendors care about; an empty
// string means nothing notification-worthy changed.
func materialChanges(old, updated *models.RFQ) string {
	var changes []string
	yearLabel := ""
	if updated.Year != nil {
		yearLabel = fmt.Sprintf("%d ", *updated.Year)
	}
	if updated.Make != old.Make || updated.Model != old.Model {
		changes = append(changes, fmt.Sprintf("Vehicle changed to %s%s %s", yearLabel, updated.Make, updated.Model))
	} else if !equalYear(updated.Year, old.Year) {
		changes = append(changes, fmt.Sprintf("Year changed to %s", strings.TrimSpace(yearLabel)))
	} else if updated.Engine != old.Engine {
		changes = append(changes, fmt.Sprintf("Engine changed to %s", updated.Engine))
	} else if updated.VIN != old.VIN {
		changes = append(changes, fmt.Sprintf("VIN changed to %s", updated.VIN))
	}
	return strings.Join(changes, ", ")
}

func equalYear(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func requireWorkshop(actor *models.User) error {
	switch actor.Role {
	case models.RoleWorkshop:
		return nil
	case models.RoleVendor, models.RoleAdmin:
		return models.NewForbiddenError("workshop role required")
	default:
		return models.NewForbiddenError("unknown role")
	}
}

func requireVendor(actor *models.User) error {
	switch actor.Role {
	case models.RoleVendor:
		return nil
	case models.RoleWorkshop, models.RoleAdmin:
		return models.NewForbiddenError("vendor role required")
	default:
		return models.NewForbiddenError("unknown role")
	}
}
