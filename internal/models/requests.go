package models

import "github.com/shopspring/decimal"

// Request payloads bound by the handlers and consumed by the services.

type RFQItemRequest struct {
	Name              string       `json:"name" binding:"required"`
	PartNumber        string       `json:"part_number"`
	Quantity          int          `json:"quantity"`
	PreferredCategory PartCategory `json:"preferred_category"`
	Side              string       `json:"side"`
	Color             string       `json:"color"`
	Notes             string       `json:"notes"`
}

type RFQCreateRequest struct {
	VIN        string           `json:"vin"`
	Make       string           `json:"make"`
	Model      string           `json:"model"`
	Year       *int             `json:"year"`
	Trim       string           `json:"trim"`
	Engine     string           `json:"engine"`
	RegCity    string           `json:"reg_city"`
	RegSeries  string           `json:"reg_series"`
	RegNumber1 *int             `json:"reg_number1"`
	RegNumber2 *int             `json:"reg_number2"`
	Items      []RFQItemRequest `json:"items"`
}

// RFQUpdateRequest uses pointers so absent fields are left untouched.
type RFQUpdateRequest struct {
	VIN    *string `json:"vin"`
	Make   *string `json:"make"`
	Model  *string `json:"model"`
	Year   *int    `json:"year"`
	Trim   *string `json:"trim"`
	Engine *string `json:"engine"`
}

type BidRequest struct {
	RFQItemID    uint            `json:"rfq_item" binding:"required"`
	Amount       decimal.Decimal `json:"amount"`
	PartCategory PartCategory    `json:"part_category"`
	Brand        string          `json:"brand"`
	Availability *bool           `json:"availability"`
	ETA          string          `json:"eta"`
	Remarks      string          `json:"remarks"`
}

type AwardRequest struct {
	BidIDs []uint `json:"bid_ids"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
