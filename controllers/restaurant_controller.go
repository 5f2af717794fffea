package controllers

import (
	"errors"
	"strconv"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/pkg/resp"
	"backend/repository"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RestaurantController covers the public read surface plus the provider's
// management of their single restaurant and its menu.
type RestaurantController struct {
	RestRepo *repository.RestaurantRepository
	MenuRepo *repository.MenuRepository
}

func NewRestaurantController(rr *repository.RestaurantRepository, mr *repository.MenuRepository) *RestaurantController {
	return &RestaurantController{RestRepo: rr, MenuRepo: mr}
}

// GET /restaurants
func (h *RestaurantController) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	out, err := h.RestRepo.ListApproved(limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /restaurants/:id returns an approved restaurant with its available menu.
func (h *RestaurantController) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}
	rest, err := h.RestRepo.Get(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !rest.IsApproved) {
		resp.Error(c, apperr.New(apperr.KindNotFound, "restaurant not found"))
		return
	}
	if err != nil {
		resp.Error(c, err)
		return
	}
	menu, err := h.MenuRepo.ListForRestaurant(rest.ID, true)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"restaurant": rest, "menu": menu})
}

type restaurantIn struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address" binding:"required"`
	Description string `json:"description"`
}

// POST /provider/restaurant. Providers get exactly one; created unapproved.
func (h *RestaurantController) Create(c *gin.Context) {
	userID := utils.CurrentUserID(c)
	if _, err := h.RestRepo.FindByOwner(userID); err == nil {
		resp.Error(c, apperr.New(apperr.KindValidation, "provider already has a restaurant"))
		return
	}
	var in restaurantIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rest := &entity.Restaurant{
		Name:        in.Name,
		Address:     in.Address,
		Description: in.Description,
		UserID:      userID,
	}
	if err := h.RestRepo.Create(rest); err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, rest)
}

// GET /provider/restaurant
func (h *RestaurantController) Mine(c *gin.Context) {
	rest, err := h.RestRepo.FindByOwner(utils.CurrentUserID(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		resp.Error(c, apperr.New(apperr.KindNotFound, "no restaurant for this provider"))
		return
	}
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rest)
}

type restaurantUpdateIn struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
	IsOpen      *bool   `json:"isOpen"`
}

// PATCH /provider/restaurant
func (h *RestaurantController) Update(c *gin.Context) {
	rest, err := h.RestRepo.FindByOwner(utils.CurrentUserID(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		resp.Error(c, apperr.New(apperr.KindNotFound, "no restaurant for this provider"))
		return
	}
	if err != nil {
		resp.Error(c, err)
		return
	}
	var in restaurantUpdateIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if in.Name != nil {
		rest.Name = *in.Name
	}
	if in.Address != nil {
		rest.Address = *in.Address
	}
	if in.Description != nil {
		rest.Description = *in.Description
	}
	if in.IsOpen != nil {
		rest.IsOpen = *in.IsOpen
	}
	if err := h.RestRepo.Save(rest); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rest)
}

// ----- Menu management -----

type menuItemIn struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required,min=1"`
}

// POST /provider/menu
func (h *RestaurantController) CreateMenuItem(c *gin.Context) {
	rest, err := h.RestRepo.FindByOwner(utils.CurrentUserID(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		resp.Error(c, apperr.New(apperr.KindNotFound, "no restaurant for this provider"))
		return
	}
	if err != nil {
		resp.Error(c, err)
		return
	}
	var in menuItemIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	m := &entity.MenuItem{
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		IsAvailable:  true,
		RestaurantID: rest.ID,
	}
	if err := h.MenuRepo.Create(m); err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, m)
}

// GET /provider/menu
func (h *RestaurantController) ListMenu(c *gin.Context) {
	rest, err := h.RestRepo.FindByOwner(utils.CurrentUserID(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		resp.Error(c, apperr.New(apperr.KindNotFound, "no restaurant for this provider"))
		return
	}
	if err != nil {
		resp.Error(c, err)
		return
	}
	menu, err := h.MenuRepo.ListForRestaurant(rest.ID, false)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, menu)
}

type menuItemUpdateIn struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	IsAvailable *bool   `json:"isAvailable"`
}

// PATCH /provider/menu/:id
func (h *RestaurantController) UpdateMenuItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid menu item id")
		return
	}
	m, err := h.MenuRepo.Get(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		resp.Error(c, apperr.New(apperr.KindNotFound, "menu item not found"))
		return
	}
	if err != nil {
		resp.Error(c, err)
		return
	}
	owned, err := h.RestRepo.IsOwnedBy(m.RestaurantID, utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	if !owned {
		resp.Forbidden(c, "menu item does not belong to your restaurant")
		return
	}
	var in menuItemUpdateIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if in.Name != nil {
		m.Name = *in.Name
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
	if in.Price != nil {
		if *in.Price < 1 {
			resp.BadRequest(c, "price must be positive")
			return
		}
		m.Price = *in.Price
	}
	if in.IsAvailable != nil {
		m.IsAvailable = *in.IsAvailable
	}
	if err := h.MenuRepo.Save(m); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, m)
}
