package repository

import (
	"parts_market/internal/models"

	"gorm.io/gorm"
)

type RFQRepository interface {
	Create(rfq *models.RFQ) error
	GetByID(id uint) (*models.RFQ, error)
	GetByWorkshop(workshopID uint) ([]models.RFQ, error)
	GetOpen() ([]models.RFQ, error)
	Update(rfq *models.RFQ) error
	Delete(db *gorm.DB, rfq *models.RFQ) error
	GetItemByID(id uint) (*models.RFQItem, error)
	DeleteItem(db *gorm.DB, item *models.RFQItem) error
	CountItems(rfqID uint) (int64, error)
}

type rfqRepository struct {
	db *gorm.DB
}

func NewRFQRepository(db *gorm.DB) RFQRepository {
	return &rfqRepository{db: db}
}

func (r *rfqRepository) Create(rfq *models.RFQ) error {
	return r.db.Create(rfq).Error
}

func (r *rfqRepository) GetByID(id uint) (*models.RFQ, error) {
	var rfq models.RFQ
	err := r.db.Preload("Items").First(&rfq, id).Error
	if err != nil {
		return nil, err
	}
	return &rfq, nil
}

func (r *rfqRepository) GetByWorkshop(workshopID uint) ([]models.RFQ, error) {
	var rfqs []models.RFQ
	err := r.db.Preload("Items").
		Where("workshop_id = ?", workshopID).
		Order("created_at DESC").
		Find(&rfqs).Error
	return rfqs, err
}

func (r *rfqRepository) GetOpen() ([]models.RFQ, error) {
	var rfqs []models.RFQ
	err := r.db.Preload("Items").
		Where("status = ?", models.RFQBiddingOpen).
		Order("updated_at DESC").
		Find(&rfqs).Error
	return rfqs, err
}

func (r *rfqRepository) Update(rfq *models.RFQ) error {
	return r.db.Save(rfq).Error
}

// Delete removes the RFQ together with its items and their bids. The db
// argument may be an open transaction; the caller decides the atomic scope.
func (r *rfqRepository) Delete(db *gorm.DB, rfq *models.RFQ) error {
	if db == nil {
		db = r.db
	}
	itemIDs := db.Model(&models.RFQItem{}).Select("id").Where("rfq_id = ?", rfq.ID)
	if err := db.Where("rfq_item_id IN (?)", itemIDs).Delete(&models.Bid{}).Error; err != nil {
		return err
	}
	if err := db.Where("rfq_id = ?", rfq.ID).Delete(&models.RFQItem{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.RFQ{}, rfq.ID).Error
}

func (r *rfqRepository) GetItemByID(id uint) (*models.RFQItem, error) {
	var item models.RFQItem
	err := r.db.First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes one item and its bids.
func (r *rfqRepository) DeleteItem(db *gorm.DB, item *models.RFQItem) error {
	if db == nil {
		db = r.db
	}
	if err := db.Where("rfq_item_id = ?", item.ID).Delete(&models.Bid{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.RFQItem{}, item.ID).Error
}

func (r *rfqRepository) CountItems(rfqID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.RFQItem{}).Where("rfq_id = ?", rfqID).Count(&count).Error
	return count, err
}
