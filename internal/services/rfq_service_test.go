package services

import (
	"net/http"
	"parts_market/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateRFQ_DraftWithDefaults(t *testing.T) {
	db := newTestDB(t)
	workshop := createUser(t, db, "workshop", models.RoleWorkshop)
	svc := newRFQService(db, &fakePush{})

	year := 2020
	rfq, err := svc.CreateRFQ(workshop, &models.RFQCreateRequest{
		Make:  "Honda",
		Model: "Civic",
		Year:  &year,
		Items: []models.RFQItemRequest{
			{Name: "front bumper"},
			{Name: "brake pads", Quantity: 2, PreferredCategory: models.CategoryOEM},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.RFQDraft, rfq.Status)
	assert.Equal(t, workshop.ID, rfq.WorkshopID)
	require.Len(t, rfq.Items, 2)
	assert.Equal(t, 1, rfq.Items[0].Quantity)
	assert.Equal(t, models.CategoryAny, rfq.Items[0].PreferredCategory)
	assert.Equal(t, 2, rfq.Items[1].Quantity)
	assert.Equal(t, models.CategoryOEM, rfq.Items[1].PreferredCategory)
}

func TestCreateRFQ_VendorForbidden(t *testing.T) {
	db := newTestDB(t)
	vendor := createUser(t, db, "vendor", models.RoleVendor)
	svc := newRFQService(db, &fakePush{})

	_, err := svc.CreateRFQ(vendor, &models.RFQCreateRequest{})
	requireStatusCode(t, err, http.StatusForbidden)
}

func TestSubmitRFQ_DraftToOpen(t *testing.T) {
	db := newTestDB(t)
	workshop := createUser(t, db, "workshop", models.RoleWorkshop)
	svc := newRFQService(db, &fakePush{})

	rfq, err := svc.CreateRFQ(workshop, &models.RFQCreateRequest{
		Items: []models.RFQItemRequest{{Name: "bumper"}},
	})
	require.NoError(t, err)

	submitted, err := svc.SubmitRFQ(workshop, rfq.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RFQBiddingOpen, submitted.Status)

	_, err = svc.SubmitRFQ(workshop, rfq.ID)
	requireStatusCode(t, err, http.StatusConflict)
}

func TestUpdateRFQ_MaterialChangeNotifiesBiddingVendors(t *testing.T) {
	db := newTestDB(t)
	workshop := createUser(t, db, "workshop", models.RoleWorkshop)
	vendor := createUser(t, db, "vendor", models.RoleVendor)
	bystander := createUser(t, db, "bystander", models.RoleVendor)
	rfq := createOpenRFQ(t, db, workshop, "bumper")
	createBid(t, db, &rfq.Items[0], vendor, "100")

	pushed := &fakePush{}
	svc := newRFQService(db, pushed)

	_, err := svc.UpdateRFQ(workshop, rfq.ID, &models.RFQUpdateRequest{
		Make:  strPtr("Nissan"),
		Model: strPtr("Sunny"),
	})
	require.NoError(t, err)

	var notifications []models.Notification
	require.NoError(t, db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, vendor.ID, notifications[0].RecipientID)
	assert.Equal(t, NotifyRFQUpdate, notifications[0].Data.Type)
	assert.Equal(t, rfq.ID, notifications[0].Data.RFQID)
	assert.Contains(t, notifications[0].Message, "Vehicle changed to")
	assert.False(t, notifications[0].IsRead)

	assert.Len(t, pushed.sent, 1)
	_ = bystander
}

func TestUpdateRFQ_ImmaterialChangeStaysQuiet(t *testing.T) {
	db := newTestDB(t)
	workshop := createUser(t, db, "workshop", models.RoleWorkshop)
	vendor := createUser(t, db, "vendor", models.RoleVendor)
	rfq := createOpenRFQ(t, db, workshop, "bumper")
	createBid(t, db, &rfq.Items[0], vendor, "100")

	svc := newRFQService(db, &fakePush{})
	_, err := svc.UpdateRFQ(workshop, rfq.ID, &models.RFQUpdateRequest{
		Trim: strPtr("Sport"),
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteRFQ_NotifiesThenCascades(t *testing.T) {
	db := newTestDB(t)
	workshop := createUser(t, db, "workshop", models.RoleWorkshop)
	vendorA := createUser(t, db, "vendor_a", models.RoleVendor)
	vendorB := createUser(t, db, "vendor_b", models.RoleVendor)
	rfq := createOpenRFQ(t, db, workshop, "bumper", "headlight")
	createBid(t, db, &rfq.Items[0], vendorA, "100")
	createBid(t, db, &rfq.Items[0], vendorA, "95")
	createBid(t, db, &rfq.Items[1], vendorB, "50")

	svc := newRFQService(db, &fakePush{})
	require.NoError(t, svc.DeleteRFQ(workshop, rfq.ID))

	var rfqCount, itemCount, bidCount int64
	require.NoError(t, db.Model(&models.RFQ{}).Count(&rfqCount).Error)
	require.NoError(t, db.Model(&models.RFQItem{}).Count(&itemCount).Error)
	require.NoError(t, db.Model(&models.Bid{}).Count(&bidCount).Error)
	assert.Zero(t, rfqCount)
	assert.Zero(t, itemCount)
	assert.Zero(t, bidCount)

	// One notification per distinct vendor, written before the rows went.
	var notifications []models.Notification
	require.NoError(t, db.Order("recipient_id").Find(&notifications).Error)
	require.Len(t, notifications, 2)
	assert.Equal(t, vendorA.ID, notifications[0].RecipientID)
	assert.Equal(t, vendorB.ID, notifications[1].RecipientID)
	assert.Equal(t, NotifyRFQCancelled, notifications[0].Data.Type)
}

func TestDeleteRFQ_NoBidsNoNotifications(t *testing.T) {
	db := newTestDB(t)
	workshop := createUser(t, db, "workshop", models.RoleWorkshop)
	rfq := createOpenRFQ(t, db, workshop, "bumper")

	svc := newRFQService(db, &fakePush{})
	require.NoError(t, svc.DeleteRFQ(workshop, rfq.ID))

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteItem_NotifiesAndRemovesItemOnly(t *testing.T) {
	db := newTestDB(t)
	workshop := createUser(t, db, "workshop", models.RoleWorkshop)
	vendor := createUser(t, db, "vendor", models.RoleVendor)
	rfq := createOpenRFQ(t, db, workshop, "bumper", "headlight")
	createBid(t, db, &rfq.Items[0], vendor, "100")

	svc := newRFQService(db, &fakePush{})
	require.NoError(t, svc.DeleteItem(workshop, rfq.Items[0].ID))

	var itemCount, bidCount int64
	require.NoError(t, db.Model(&models.RFQItem{}).Count(&itemCount).Error)
	require.NoError(t, db.Model(&models.Bid{}).Count(&bidCount).Error)
	assert.EqualValues(t, 1, itemCount)
	assert.Zero(t, bidCount)

	var notification models.Notification
	require.NoError(t, db.First(&notification).Error)
	assert.Equal(t, NotifyItemRemoved, notification.Data.Type)
	assert.Contains(t, notification.Message, "bumper")
}

func TestDeleteRFQ_OnlyOwner(t *testing.T) {
	db := newTestDB(t)
	workshop := createUser(t, db, "workshop", models.RoleWorkshop)
	other := createUser(t, db, "other", models.RoleWorkshop)
	rfq := createOpenRFQ(t, db, workshop, "bumper")

	svc := newRFQService(db, &fakePush{})
	err := svc.DeleteRFQ(other, rfq.ID)
	requireStatusCode(t, err, http.StatusForbidden)
}

func TestOpenFeed_ListsOnlyOpenRFQs(t *testing.T) {
	db := newTestDB(t)
	workshop := createUser(t, db, "workshop", models.RoleWorkshop)
	vendor := createUser(t, db, "vendor", models.RoleVendor)
	createOpenRFQ(t, db, workshop, "bumper")

	svc := newRFQService(db, &fakePush{})
	draft, err := svc.CreateRFQ(workshop, &models.RFQCreateRequest{
		Items: []models.RFQItemRequest{{Name: "mirror"}},
	})
	require.NoError(t, err)

	feed, err := svc.OpenFeed(vendor)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.NotEqual(t, draft.ID, feed[0].ID)
	assert.Equal(t, models.RFQBiddingOpen, feed[0].Status)
}
