package handlers

import (
	"net/http"
	"parts_market/internal/models"
	"parts_market/internal/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

type BidHandler struct {
	bidService services.BidService
}

func NewBidHandler(bidService services.BidService) *BidHandler {
	return &BidHandler{bidService: bidService}
}

func (h *BidHandler) Create(c *gin.Context) {
	var req models.BidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	bid, err := h.bidService.SubmitBid(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bid)
}

// List returns bids scoped to the caller's role, optionally filtered by
// ?rfq=<id>.
func (h *BidHandler) List(c *gin.Context) {
	var rfqID uint
	if raw := c.Query("rfq"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rfq filter"})
			return
		}
		rfqID = uint(parsed)
	}

	bids, err := h.bidService.ListBids(currentUser(c), rfqID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bids)
}
