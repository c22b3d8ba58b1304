package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// NotificationData is the opaque navigation payload attached to a
// notification, stored as a JSON column.
type NotificationData struct {
	RFQID uint   `json:"rfq_id"`
	Type  string `json:"type"`
}

func (d NotificationData) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *NotificationData) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	case nil:
		*d = NotificationData{}
		return nil
	}
	return fmt.Errorf("unsupported notification data type %T", value)
}

type Notification struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	RecipientID uint             `json:"recipient" gorm:"not null;index"`
	Recipient   User             `json:"-" gorm:"foreignKey:RecipientID"`
	Title       string           `json:"title" gorm:"size:200;not null"`
	Message     string           `json:"message" gorm:"type:text"`
	Data        NotificationData `json:"data" gorm:"type:text"`
	IsRead      bool             `json:"is_read" gorm:"default:false"`
	CreatedAt   time.Time        `json:"created_at"`
}
