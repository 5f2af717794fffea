package controllers

import (
	"strconv"
	"strings"

	"backend/entity"
	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type ProviderOrderController struct{ Svc *services.OrderService }

func NewProviderOrderController(s *services.OrderService) *ProviderOrderController {
	return &ProviderOrderController{Svc: s}
}

// GET /provider/orders?status=
func (h *ProviderOrderController) List(c *gin.Context) {
	var status *entity.OrderStatus
	if s := strings.ToUpper(c.Query("status")); s != "" {
		st := entity.OrderStatus(s)
		if !st.Valid() {
			resp.BadRequest(c, "unknown status filter")
			return
		}
		status = &st
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	orders, err := h.Svc.ListForProvider(utils.CurrentUserID(c), status, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, orders)
}

type transitionIn struct {
	Status string `json:"status" binding:"required"`
}

// PATCH /provider/orders/:id/status
func (h *ProviderOrderController) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid order id")
		return
	}
	var in transitionIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	target := entity.OrderStatus(strings.ToUpper(strings.TrimSpace(in.Status)))

	order, err := h.Svc.TransitionByProvider(utils.CurrentUserID(c), uint(id), target)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}
