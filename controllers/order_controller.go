package controllers

import (
	"strconv"

	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController {
	return &OrderController{Svc: s}
}

// POST /orders (checkout)
func (h *OrderController) Checkout(c *gin.Context) {
	var in services.CheckoutIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := h.Svc.Checkout(utils.CurrentUserID(c), &in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, order)
}

// GET /orders
func (h *OrderController) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	orders, err := h.Svc.ListForUser(utils.CurrentUserID(c), limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, orders)
}

// GET /orders/:id
func (h *OrderController) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid order id")
		return
	}
	order, err := h.Svc.DetailForUser(utils.CurrentUserID(c), uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

// PATCH /orders/:id/cancel
func (h *OrderController) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid order id")
		return
	}
	order, err := h.Svc.CancelByCustomer(utils.CurrentUserID(c), uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}
