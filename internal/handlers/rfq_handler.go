package handlers

import (
	"net/http"
	"parts_market/internal/models"
	"parts_market/internal/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

type RFQHandler struct {
	rfqService   services.RFQService
	awardService services.AwardService
}

func NewRFQHandler(rfqService services.RFQService, awardService services.AwardService) *RFQHandler {
	return &RFQHandler{rfqService: rfqService, awardService: awardService}
}

func (h *RFQHandler) Create(c *gin.Context) {
	var req models.RFQCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	rfq, err := h.rfqService.CreateRFQ(currentUser(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rfq)
}

func (h *RFQHandler) List(c *gin.Context) {
	rfqs, err := h.rfqService.ListRFQs(currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rfqs)
}

// Feed lists requests open for bidding, for vendors.
func (h *RFQHandler) Feed(c *gin.Context) {
	rfqs, err := h.rfqService.OpenFeed(currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rfqs)
}

func (h *RFQHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rfq, err := h.rfqService.GetRFQ(currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rfq)
}

func (h *RFQHandler) Submit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rfq, err := h.rfqService.SubmitRFQ(currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": rfq.Status})
}

func (h *RFQHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.RFQUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	rfq, err := h.rfqService.UpdateRFQ(currentUser(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rfq)
}

func (h *RFQHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.rfqService.DeleteRFQ(currentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *RFQHandler) DeleteItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.rfqService.DeleteItem(currentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Award creates per-vendor orders from the selected bids.
func (h *RFQHandler) Award(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.AwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	orderIDs, err := h.awardService.AwardOrder(c.Request.Context(), currentUser(c), id, req.BidIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":   "Orders created",
		"order_ids": orderIDs,
	})
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}
