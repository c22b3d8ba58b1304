package services

import (
	"context"
	"parts_market/internal/database"
	"parts_market/internal/models"
	"parts_market/internal/repository"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the in-memory database alive and serializes
	// concurrent transactions the way a real server's row locks would.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Role:         role,
		PasswordHash: "x",
		APIToken:     username + "-token",
		PhoneNumber:  "017000" + username,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createOpenRFQ(t *testing.T, db *gorm.DB, workshop *models.User, itemNames ...string) *models.RFQ {
	t.Helper()
	year := 2018
	rfq := &models.RFQ{
		WorkshopID: workshop.ID,
		Make:       "Toyota",
		Model:      "Corolla",
		Year:       &year,
		Status:     models.RFQBiddingOpen,
	}
	for _, name := range itemNames {
		rfq.Items = append(rfq.Items, models.RFQItem{
			Name:              name,
			Quantity:          1,
			PreferredCategory: models.CategoryAny,
		})
	}
	require.NoError(t, db.Create(rfq).Error)
	return rfq
}

func createBid(t *testing.T, db *gorm.DB, item *models.RFQItem, vendor *models.User, amount string) *models.Bid {
	t.Helper()
	bid := &models.Bid{
		RFQItemID:    item.ID,
		VendorID:     vendor.ID,
		Amount:       decimal.RequireFromString(amount),
		PartCategory: models.CategoryOEM,
		Availability: true,
		Status:       models.BidPending,
	}
	require.NoError(t, db.Create(bid).Error)
	return bid
}

// fakePublisher records broadcast payloads instead of hitting Redis.
type fakePublisher struct {
	mu      sync.Mutex
	rfqIDs  []uint
	payload [][]byte
	err     error
}

func (f *fakePublisher) PublishBid(_ context.Context, rfqID uint, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.rfqIDs = append(f.rfqIDs, rfqID)
	f.payload = append(f.payload, payload)
	return nil
}

func (f *fakePublisher) published() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.payload)
}

// fakePush records push attempts.
type fakePush struct {
	sent []string
	err  error
}

func (f *fakePush) SendPush(phoneNumber, title, message string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, phoneNumber)
	return nil
}

func newNotificationService(db *gorm.DB, pushSender PushSender) NotificationService {
	return NewNotificationService(
		repository.NewNotificationRepository(db),
		repository.NewBidRepository(db),
		repository.NewUserRepository(db),
		pushSender,
	)
}

func newRFQService(db *gorm.DB, pushSender PushSender) RFQService {
	return NewRFQService(
		db,
		repository.NewRFQRepository(db),
		repository.NewBidRepository(db),
		newNotificationService(db, pushSender),
	)
}

func newBidService(db *gorm.DB, publisher BidPublisher) BidService {
	return NewBidService(
		repository.NewRFQRepository(db),
		repository.NewBidRepository(db),
		publisher,
	)
}
