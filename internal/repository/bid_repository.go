package repository

import (
	"parts_market/internal/models"

	"gorm.io/gorm"
)

type BidRepository interface {
	Create(bid *models.Bid) error
	GetByID(id uint) (*models.Bid, error)
	// GetByVendor lists a vendor's own bids, newest first; rfqID 0 means no
	// filter.
	GetByVendor(vendorID, rfqID uint) ([]models.Bid, error)
	// GetByWorkshop lists every bid placed on the workshop's RFQs, newest
	// first; rfqID 0 means no filter.
	GetByWorkshop(workshopID, rfqID uint) ([]models.Bid, error)
	DistinctVendorIDs(db *gorm.DB, rfqID uint) ([]uint, error)
}

type bidRepository struct {
	db *gorm.DB
}

func NewBidRepository(db *gorm.DB) BidRepository {
	return &bidRepository{db: db}
}

func (r *bidRepository) Create(bid *models.Bid) error {
	return r.db.Create(bid).Error
}

func (r *bidRepository) GetByID(id uint) (*models.Bid, error) {
	var bid models.Bid
	err := r.db.Preload("RFQItem").First(&bid, id).Error
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

func (r *bidRepository) GetByVendor(vendorID, rfqID uint) ([]models.Bid, error) {
	query := r.db.Select("bids.*").Preload("RFQItem").Where("bids.vendor_id = ?", vendorID)
	if rfqID != 0 {
		query = query.
			Joins("JOIN rfq_items ON rfq_items.id = bids.rfq_item_id").
			Where("rfq_items.rfq_id = ?", rfqID)
	}
	var bids []models.Bid
	err := query.Order("bids.created_at DESC").Find(&bids).Error
	return bids, err
}

func (r *bidRepository) GetByWorkshop(workshopID, rfqID uint) ([]models.Bid, error) {
	query := r.db.Select("bids.*").Preload("RFQItem").
		Joins("JOIN rfq_items ON rfq_items.id = bids.rfq_item_id").
		Joins("JOIN rfqs ON rfqs.id = rfq_items.rfq_id").
		Where("rfqs.workshop_id = ?", workshopID)
	if rfqID != 0 {
		query = query.Where("rfq_items.rfq_id = ?", rfqID)
	}
	var bids []models.Bid
	err := query.Order("bids.created_at DESC").Find(&bids).Error
	return bids, err
}

// DistinctVendorIDs returns the vendors with at least one bid on any item of
// the RFQ. The db argument may be an open transaction.
func (r *bidRepository) DistinctVendorIDs(db *gorm.DB, rfqID uint) ([]uint, error) {
	if db == nil {
		db = r.db
	}
	var vendorIDs []uint
	err := db.Model(&models.Bid{}).
		Joins("JOIN rfq_items ON rfq_items.id = bids.rfq_item_id").
		Where("rfq_items.rfq_id = ?", rfqID).
		Distinct("bids.vendor_id").
		Pluck("bids.vendor_id", &vendorIDs).Error
	return vendorIDs, err
}
