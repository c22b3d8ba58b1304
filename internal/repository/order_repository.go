package repository

import (
	"parts_market/internal/models"

	"gorm.io/gorm"
)

type OrderRepository interface {
	GetByID(id uint) (*models.VendorOrder, error)
	GetByVendor(vendorID uint) ([]models.VendorOrder, error)
	GetByWorkshop(workshopID uint) ([]models.VendorOrder, error)
	UpdateStatus(id uint, status models.OrderStatus) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) GetByID(id uint) (*models.VendorOrder, error) {
	var order models.VendorOrder
	err := r.db.Preload("Bids").Preload("RFQ").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByVendor(vendorID uint) ([]models.VendorOrder, error) {
	var orders []models.VendorOrder
	err := r.db.Preload("Bids").
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetByWorkshop(workshopID uint) ([]models.VendorOrder, error) {
	var orders []models.VendorOrder
	err := r.db.Select("vendor_orders.*").Preload("Bids").
		Joins("JOIN rfqs ON rfqs.id = vendor_orders.rfq_id").
		Where("rfqs.workshop_id = ?", workshopID).
		Order("vendor_orders.created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) UpdateStatus(id uint, status models.OrderStatus) error {
	return r.db.Model(&models.VendorOrder{}).
		Where("id = ?", id).
		Update("status", status).Error
}
