package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPendingPayment OrderStatus = "PENDING_PAYMENT"
	OrderConfirmed      OrderStatus = "CONFIRMED"
	OrderReadyForPickup OrderStatus = "READY_FOR_PICKUP"
	OrderOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderCompleted      OrderStatus = "COMPLETED"
	OrderDisputed       OrderStatus = "DISPUTED"
)

// VendorOrder is the commercial commitment created when a vendor's bids are
// awarded. The bid set and total are fixed at creation; only status mutates.
// Invariant: TotalAmount equals the exact sum of the referenced bid amounts,
// and every referenced bid is ACCEPTED and belongs to this vendor and RFQ.
type VendorOrder struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	RFQID       uint            `json:"rfq" gorm:"not null;index"`
	RFQ         RFQ             `json:"-" gorm:"foreignKey:RFQID"`
	VendorID    uint            `json:"vendor_id" gorm:"not null;index"`
	Vendor      User            `json:"-" gorm:"foreignKey:VendorID"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2);not null"`
	Status      OrderStatus     `json:"status" gorm:"type:varchar(30);default:'PENDING_PAYMENT'"`
	Bids        []Bid           `json:"bids" gorm:"many2many:vendor_order_bids"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
