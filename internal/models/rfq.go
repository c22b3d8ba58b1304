package models

import (
	"time"
)

type RFQStatus string

const (
	RFQDraft       RFQStatus = "DRAFT"
	RFQBiddingOpen RFQStatus = "BIDDING_OPEN"
	// RFQProcessing is a declared state with no producing transition yet.
	RFQProcessing RFQStatus = "PROCESSING"
	RFQCompleted  RFQStatus = "COMPLETED"
	RFQCancelled  RFQStatus = "CANCELLED"
)

// PartCategory classifies a part source. Items may ask for ANY; bids must be
// specific.
type PartCategory string

const (
	CategoryOEM                  PartCategory = "GENUINE_OEM"
	CategoryAftermarketBranded   PartCategory = "AFTERMARKET_BRANDED"
	CategoryAftermarketUnbranded PartCategory = "AFTERMARKET_UNBRANDED"
	CategoryUsed                 PartCategory = "USED_RECONDITIONED"
	CategoryAny                  PartCategory = "ANY"
)

// RFQ is a parts request posted by a workshop. The workshop owns it for its
// whole lifetime; vehicle fields are all optional.
type RFQ struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	WorkshopID uint      `json:"workshop_id" gorm:"not null;index"`
	Workshop   User      `json:"-" gorm:"foreignKey:WorkshopID"`
	VIN        string    `json:"vin" gorm:"column:vin;size:17"`
	Make       string    `json:"make" gorm:"size:50"`
	Model      string    `json:"model" gorm:"size:50"`
	Year       *int      `json:"year"`
	Trim       string    `json:"trim" gorm:"size:50"` // e.g. XLE, Sport
	Engine     string    `json:"engine" gorm:"size:100"`
	RegCity    string    `json:"reg_city" gorm:"size:50"`
	RegSeries  string    `json:"reg_series" gorm:"size:10"`
	RegNumber1 *int      `json:"reg_number1"`
	RegNumber2 *int      `json:"reg_number2"`
	Status     RFQStatus `json:"status" gorm:"type:varchar(20);default:'DRAFT'"`
	Items      []RFQItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RFQItem is a single part line within an RFQ, the unit vendors bid against.
// Items are cascade-deleted with their RFQ.
type RFQItem struct {
	ID                uint         `json:"id" gorm:"primaryKey"`
	RFQID             uint         `json:"rfq_id" gorm:"not null;index"`
	Name              string       `json:"name" gorm:"size:100;not null"`
	PartNumber        string       `json:"part_number" gorm:"size:100"`
	Quantity          int          `json:"quantity" gorm:"default:1"`
	PreferredCategory PartCategory `json:"preferred_category" gorm:"type:varchar(30);default:'ANY'"`
	Side              string       `json:"side" gorm:"size:20"` // e.g. LH, RH
	Color             string       `json:"color" gorm:"size:30"`
	Notes             string       `json:"notes" gorm:"type:text"`
	Bids              []Bid        `json:"bids,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time    `json:"created_at"`
}
