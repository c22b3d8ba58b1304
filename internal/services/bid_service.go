package services

import (
	"context"
	"errors"
	"log"
	"parts_market/internal/broadcast"
	"parts_market/internal/models"
	"parts_market/internal/repository"

	"gorm.io/gorm"
)

// BidPublisher hands a committed bid to the broadcast transport. Publishing
// is decoupled from the write: a failure never rolls the bid back.
type BidPublisher interface {
	PublishBid(ctx context.Context, rfqID uint, payload []byte) error
}

type BidService interface {
	SubmitBid(ctx context.Context, actor *models.User, req *models.BidRequest) (*models.Bid, error)
	// ListBids is role-scoped: vendors see their own bids, workshops see all
	// bids on their requests. rfqID 0 means no filter.
	ListBids(actor *models.User, rfqID uint) ([]models.Bid, error)
}

type bidService struct {
	rfqRepo   repository.RFQRepository
	bidRepo   repository.BidRepository
	publisher BidPublisher
}

func NewBidService(rfqRepo repository.RFQRepository, bidRepo repository.BidRepository, publisher BidPublisher) BidService {
	return &bidService{rfqRepo: rfqRepo, bidRepo: bidRepo, publisher: publisher}
}

func (s *bidService) SubmitBid(ctx context.Context, actor *models.User, req *models.BidRequest) (*models.Bid, error) {
	if err := requireVendor(actor); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, models.NewValidationError("bid amount must be positive")
	}
	switch req.PartCategory {
	case models.CategoryOEM, models.CategoryAftermarketBranded,
		models.CategoryAftermarketUnbranded, models.CategoryUsed:
	default:
		// ANY is for items; vendors must be specific.
		return nil, models.NewValidationError("invalid part category")
	}

	item, err := s.rfqRepo.GetItemByID(req.RFQItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("item not found")
		}
		return nil, err
	}
	rfq, err := s.rfqRepo.GetByID(item.RFQID)
	if err != nil {
		return nil, err
	}
	if rfq.Status != models.RFQBiddingOpen {
		return nil, models.NewConflictError("request is not open for bidding")
	}

	availability := true
	if req.Availability != nil {
		availability = *req.Availability
	}
	bid := &models.Bid{
		RFQItemID:    item.ID,
		VendorID:     actor.ID,
		Amount:       req.Amount,
		PartCategory: req.PartCategory,
		Brand:        req.Brand,
		Availability: availability,
		ETA:          req.ETA,
		Remarks:      req.Remarks,
		Status:       models.BidPending,
	}
	if err := s.bidRepo.Create(bid); err != nil {
		return nil, err
	}

	s.publish(ctx, rfq.ID, bid)
	return bid, nil
}

// publish hands the persisted bid to the broadcast topic. Best-effort only.
func (s *bidService) publish(ctx context.Context, rfqID uint, bid *models.Bid) {
	payload, err := broadcast.BidPlacedPayload(bid)
	if err != nil {
		log.Printf("Failed to serialize bid %d for broadcast: %v", bid.ID, err)
		return
	}
	if err := s.publisher.PublishBid(ctx, rfqID, payload); err != nil {
		log.Printf("Failed to publish bid %d to rfq:%d: %v", bid.ID, rfqID, err)
	}
}

func (s *bidService) ListBids(actor *models.User, rfqID uint) ([]models.Bid, error) {
	switch actor.Role {
	case models.RoleVendor:
		return s.bidRepo.GetByVendor(actor.ID, rfqID)
	case models.RoleWorkshop:
		return s.bidRepo.GetByWorkshop(actor.ID, rfqID)
	case models.RoleAdmin:
		return nil, models.NewForbiddenError("admins have no bid list")
	default:
		return nil, models.NewForbiddenError("unknown role")
	}
}
