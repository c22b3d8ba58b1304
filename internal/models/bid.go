package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BidStatus string

const (
	BidPending  BidStatus = "PENDING"
	BidAccepted BidStatus = "ACCEPTED"
	BidRejected BidStatus = "REJECTED"
)

// Bid is a vendor's priced offer against one RFQ item. Everything except
// status is immutable after creation; status changes only on the award path.
// Invariant: within one item at most one bid is ACCEPTED at any time.
type Bid struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	RFQItemID    uint            `json:"rfq_item" gorm:"not null;index"`
	RFQItem      RFQItem         `json:"-" gorm:"foreignKey:RFQItemID"`
	VendorID     uint            `json:"vendor_id" gorm:"not null;index"`
	Vendor       User            `json:"-" gorm:"foreignKey:VendorID"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:numeric(10,2);not null"`
	PartCategory PartCategory    `json:"part_category" gorm:"type:varchar(30);not null"`
	Brand        string          `json:"brand" gorm:"size:50"`
	Availability bool            `json:"availability" gorm:"default:true"`
	ETA          string          `json:"eta" gorm:"column:eta;size:50"` // e.g. 2 hours, 1 day
	Remarks      string          `json:"remarks" gorm:"type:text"`
	Status       BidStatus       `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	CreatedAt    time.Time       `json:"created_at"`
}
