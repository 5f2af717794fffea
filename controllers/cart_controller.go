package controllers

import (
	"strconv"

	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController {
	return &CartController{Svc: s}
}

// GET /cart
func (h *CartController) Get(c *gin.Context) {
	cart, err := h.Svc.Get(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cart)
}

// POST /cart/items
func (h *CartController) Add(c *gin.Context) {
	var in services.AddItemIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cart, err := h.Svc.Add(utils.CurrentUserID(c), &in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cart)
}

// PATCH /cart/items
func (h *CartController) UpdateQty(c *gin.Context) {
	var in services.UpdateQtyIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cart, err := h.Svc.UpdateQty(utils.CurrentUserID(c), &in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cart)
}

// DELETE /cart/items/:menuItemId
func (h *CartController) RemoveItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("menuItemId"), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid menu item id")
		return
	}
	cart, err := h.Svc.RemoveItem(utils.CurrentUserID(c), uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cart)
}

// POST /cart/switch-restaurant
// The confirmed second step of a RESTAURANT_CONFLICT: clears the cart and
// adds the parked item fresh.
func (h *CartController) SwitchRestaurant(c *gin.Context) {
	var in services.AddItemIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cart, err := h.Svc.SwitchRestaurant(utils.CurrentUserID(c), &in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cart)
}

// DELETE /cart
func (h *CartController) Clear(c *gin.Context) {
	if err := h.Svc.Clear(utils.CurrentUserID(c)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, nil)
}
