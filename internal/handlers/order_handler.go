package handlers

import (
	"net/http"
	"parts_market/internal/models"
	"parts_market/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.ListOrders(currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := h.orderService.GetOrder(currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Confirm(c *gin.Context) {
	h.respondTransition(c, h.orderService.Confirm)
}

func (h *OrderHandler) MarkReady(c *gin.Context) {
	h.respondTransition(c, h.orderService.MarkReady)
}

func (h *OrderHandler) ConfirmDelivery(c *gin.Context) {
	h.respondTransition(c, h.orderService.ConfirmDelivery)
}

func (h *OrderHandler) respondTransition(c *gin.Context, fn func(*models.User, uint) (*models.VendorOrder, error)) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := fn(currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": order.Status})
}
