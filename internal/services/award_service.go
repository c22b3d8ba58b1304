package services

import (
	"context"
	"errors"
	"parts_market/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AwardService interface {
	// AwardOrder turns the selected bids into per-vendor orders: one order
	// per vendor with the exact decimal sum of that vendor's bids, every
	// selected bid transitioned to ACCEPTED, and the RFQ marked COMPLETED
	// once every item has an accepted bid. All of it commits atomically or
	// not at all. Returns the created order ids.
	AwardOrder(ctx context.Context, actor *models.User, rfqID uint, bidIDs []uint) ([]uint, error)
}

type awardService struct {
	db *gorm.DB
}

func NewAwardService(db *gorm.DB) AwardService {
	return &awardService{db: db}
}

func (s *awardService) AwardOrder(ctx context.Context, actor *models.User, rfqID uint, bidIDs []uint) ([]uint, error) {
	if err := requireWorkshop(actor); err != nil {
		return nil, err
	}
	if len(bidIDs) == 0 {
		return nil, models.NewValidationError("no bids selected")
	}

	var orderIDs []uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orderIDs = orderIDs[:0]

		// Lock the RFQ row so concurrent awards against overlapping items
		// serialize. sqlite (tests) has no FOR UPDATE; its single-writer
		// lock serializes the transactions on its own.
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var rfq models.RFQ
		if err := q.First(&rfq, rfqID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("request not found")
			}
			return err
		}
		if rfq.WorkshopID != actor.ID {
			return models.NewForbiddenError("not the owner of this request")
		}

		// Resolve the selection against this RFQ. Ids that do not belong
		// are dropped; only an entirely foreign selection is an error.
		var bids []models.Bid
		if err := tx.Select("bids.*").
			Joins("JOIN rfq_items ON rfq_items.id = bids.rfq_item_id").
			Where("bids.id IN ? AND rfq_items.rfq_id = ?", bidIDs, rfqID).
			Find(&bids).Error; err != nil {
			return err
		}
		if len(bids) == 0 {
			return models.NewNotFoundError("no selected bids belong to this request")
		}

		itemIDs := make([]uint, 0, len(bids))
		seenItems := make(map[uint]bool, len(bids))
		for _, bid := range bids {
			if seenItems[bid.RFQItemID] {
				return models.NewValidationError("multiple bids selected for the same item")
			}
			seenItems[bid.RFQItemID] = true
			itemIDs = append(itemIDs, bid.RFQItemID)
		}

		// Commit-time re-check: an item that already carries an accepted
		// bid must never receive a second one.
		var conflicting int64
		if err := tx.Model(&models.Bid{}).
			Where("rfq_item_id IN ? AND status = ?", itemIDs, models.BidAccepted).
			Count(&conflicting).Error; err != nil {
			return err
		}
		if conflicting > 0 {
			return models.NewConflictError("an item in the selection already has an accepted bid")
		}

		// Partition by vendor, stable in selection order.
		partitions := make(map[uint][]models.Bid)
		var vendorIDs []uint
		for _, bid := range bids {
			if _, ok := partitions[bid.VendorID]; !ok {
				vendorIDs = append(vendorIDs, bid.VendorID)
			}
			partitions[bid.VendorID] = append(partitions[bid.VendorID], bid)
		}

		for _, vendorID := range vendorIDs {
			partition := partitions[vendorID]
			total := decimal.Zero
			partitionIDs := make([]uint, 0, len(partition))
			for _, bid := range partition {
				total = total.Add(bid.Amount)
				partitionIDs = append(partitionIDs, bid.ID)
			}

			order := models.VendorOrder{
				RFQID:       rfq.ID,
				VendorID:    vendorID,
				TotalAmount: total,
				Status:      models.OrderPendingPayment,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			if err := tx.Model(&order).Association("Bids").Append(&partition); err != nil {
				return err
			}

			// Conditional PENDING -> ACCEPTED: a shortfall means another
			// transaction already moved one of these bids.
			result := tx.Model(&models.Bid{}).
				Where("id IN ? AND status = ?", partitionIDs, models.BidPending).
				Update("status", models.BidAccepted)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected != int64(len(partitionIDs)) {
				return models.NewConflictError("bid status changed concurrently, award aborted")
			}

			orderIDs = append(orderIDs, order.ID)
		}

		// Coverage: COMPLETED once every item has an accepted bid,
		// otherwise the request stays open for further bidding.
		var totalItems int64
		if err := tx.Model(&models.RFQItem{}).
			Where("rfq_id = ?", rfq.ID).
			Count(&totalItems).Error; err != nil {
			return err
		}
		var coveredItems int64
		if err := tx.Model(&models.Bid{}).
			Joins("JOIN rfq_items ON rfq_items.id = bids.rfq_item_id").
			Where("rfq_items.rfq_id = ? AND bids.status = ?", rfq.ID, models.BidAccepted).
			Distinct("bids.rfq_item_id").
			Count(&coveredItems).Error; err != nil {
			return err
		}

		status := models.RFQBiddingOpen
		if totalItems > 0 && coveredItems >= totalItems {
			status = models.RFQCompleted
		}
		return tx.Model(&models.RFQ{}).
			Where("id = ?", rfq.ID).
			Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}
	return orderIDs, nil
}
