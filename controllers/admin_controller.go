package controllers

import (
	"errors"
	"strconv"

	"backend/pkg/apperr"
	"backend/pkg/resp"
	"backend/repository"
	"backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminController: read-only aggregate order visibility plus restaurant
// approval.
type AdminController struct {
	OrderSvc *services.OrderService
	RestRepo *repository.RestaurantRepository
}

func NewAdminController(os *services.OrderService, rr *repository.RestaurantRepository) *AdminController {
	return &AdminController{OrderSvc: os, RestRepo: rr}
}

// GET /admin/orders
func (h *AdminController) Orders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	orders, err := h.OrderSvc.ListAll(limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, orders)
}

// GET /admin/orders/stats
func (h *AdminController) OrderStats(c *gin.Context) {
	stats, err := h.OrderSvc.Stats()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, stats)
}

// GET /admin/restaurants?pending=1
func (h *AdminController) Restaurants(c *gin.Context) {
	if c.Query("pending") != "" {
		out, err := h.RestRepo.ListPendingApproval()
		if err != nil {
			resp.Error(c, err)
			return
		}
		resp.OK(c, out)
		return
	}
	out, err := h.RestRepo.ListApproved(200)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// PATCH /admin/restaurants/:id/approve
func (h *AdminController) ApproveRestaurant(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}
	if _, err := h.RestRepo.Get(uint(id)); errors.Is(err, gorm.ErrRecordNotFound) {
		resp.Error(c, apperr.New(apperr.KindNotFound, "restaurant not found"))
		return
	} else if err != nil {
		resp.Error(c, err)
		return
	}
	if err := h.RestRepo.SetApproved(uint(id), true); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, nil)
}
