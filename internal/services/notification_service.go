package services

import (
	"fmt"
	"log"
	"parts_market/internal/models"
	"parts_market/internal/repository"
	"strings"

	"gorm.io/gorm"
)

// Notification type tags carried in the navigation payload.
const (
	NotifyRFQUpdate    = "RFQ_UPDATE"
	NotifyRFQCancelled = "RFQ_CANCELLED"
	NotifyItemRemoved  = "ITEM_REMOVED"
)

// PushSender delivers out-of-band pushes. Fire-and-forget: errors are logged
// by the notification service and never surfaced.
type PushSender interface {
	SendPush(phoneNumber, title, message string) error
}

type NotificationService interface {
	// NotifyVendorsOfUpdate writes one durable notification per vendor that
	// has bid on the RFQ, then attempts a push to each. No-op when nobody
	// has bid. The db argument may be an open transaction so the records
	// commit atomically with the triggering change.
	NotifyVendorsOfUpdate(db *gorm.DB, rfq *models.RFQ, changeSummary, typeTag string) error
	GetNotifications(recipientID uint) ([]models.Notification, error)
	MarkRead(id, recipientID uint) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	bidRepo          repository.BidRepository
	userRepo         repository.UserRepository
	pushSender       PushSender
}

func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	bidRepo repository.BidRepository,
	userRepo repository.UserRepository,
	pushSender PushSender,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		bidRepo:          bidRepo,
		userRepo:         userRepo,
		pushSender:       pushSender,
	}
}

func (s *notificationService) NotifyVendorsOfUpdate(db *gorm.DB, rfq *models.RFQ, changeSummary, typeTag string) error {
	vendorIDs, err := s.bidRepo.DistinctVendorIDs(db, rfq.ID)
	if err != nil {
		return fmt.Errorf("failed to resolve recipients: %w", err)
	}
	if len(vendorIDs) == 0 {
		return nil
	}

	vendors, err := s.userRepo.GetByIDs(db, vendorIDs)
	if err != nil {
		return fmt.Errorf("failed to load recipients: %w", err)
	}

	title := fmt.Sprintf("Update on Request #%d", rfq.ID)
	message := fmt.Sprintf("The request for %s has been updated: %s. Please review your bids.",
		vehicleLabel(rfq), changeSummary)

	notifications := make([]models.Notification, 0, len(vendors))
	for _, vendor := range vendors {
		notifications = append(notifications, models.Notification{
			RecipientID: vendor.ID,
			Title:       title,
			Message:     message,
			Data:        models.NotificationData{RFQID: rfq.ID, Type: typeTag},
		})
	}

	if err := s.notificationRepo.CreateBatch(db, notifications); err != nil {
		return fmt.Errorf("failed to store notifications: %w", err)
	}

	// Push delivery is best-effort; a gateway failure never rolls back the
	// stored records.
	for _, vendor := range vendors {
		if err := s.pushSender.SendPush(vendor.PhoneNumber, title, message); err != nil {
			log.Printf("Push to %s failed: %v", vendor.Username, err)
		}
	}
	return nil
}

func (s *notificationService) GetNotifications(recipientID uint) ([]models.Notification, error) {
	return s.notificationRepo.GetByRecipient(recipientID)
}

func (s *notificationService) MarkRead(id, recipientID uint) error {
	if err := s.notificationRepo.MarkRead(id, recipientID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return models.NewNotFoundError("notification not found")
		}
		return err
	}
	return nil
}

func vehicleLabel(rfq *models.RFQ) string {
	parts := []string{}
	if rfq.Year != nil {
		parts = append(parts, fmt.Sprintf("%d", *rfq.Year))
	}
	if rfq.Make != "" {
		parts = append(parts, rfq.Make)
	}
	if rfq.Model != "" {
		parts = append(parts, rfq.Model)
	}
	if len(parts) == 0 {
		return fmt.Sprintf("request #%d", rfq.ID)
	}
	return strings.Join(parts, " ")
}
