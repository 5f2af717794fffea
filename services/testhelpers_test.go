package services

import (
	"fmt"
	"strings"
	"testing"

	"backend/entity"
	"backend/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory sqlite database. The name is derived
// from the test so parallel tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&entity.User{},
		&entity.Restaurant{}, &entity.MenuItem{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.Order{}, &entity.OrderItem{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Password: "x", Role: role}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedRestaurant(t *testing.T, db *gorm.DB, owner *entity.User, approved, open bool) *entity.Restaurant {
	t.Helper()
	r := &entity.Restaurant{
		Name: "Test Kitchen", Address: "1 Test St",
		IsApproved: approved, IsOpen: open,
		UserID: owner.ID,
	}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("seed restaurant: %v", err)
	}
	return r
}

func seedMenuItem(t *testing.T, db *gorm.DB, rest *entity.Restaurant, name string, price int64) *entity.MenuItem {
	t.Helper()
	m := &entity.MenuItem{
		Name: name, Price: price, IsAvailable: true,
		RestaurantID: rest.ID,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("seed menu item: %v", err)
	}
	return m
}

// testEnv wires a customer, an approved open restaurant and two menu items.
type testEnv struct {
	db       *gorm.DB
	customer *entity.User
	provider *entity.User
	rest     *entity.Restaurant
	burger   *entity.MenuItem // 1000 minor units
	fries    *entity.MenuItem // 500 minor units
	carts    *CartService
	orders   *OrderService
	notify   *captureNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	customer := seedUser(t, db, "cust@example.com", entity.RoleCustomer)
	provider := seedUser(t, db, "prov@example.com", entity.RoleProvider)
	rest := seedRestaurant(t, db, provider, true, true)

	cartRepo := repository.NewCartRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	restRepo := repository.NewRestaurantRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	notify := &captureNotifier{}

	return &testEnv{
		db:       db,
		customer: customer,
		provider: provider,
		rest:     rest,
		burger:   seedMenuItem(t, db, rest, "Burger", 1000),
		fries:    seedMenuItem(t, db, rest, "Fries", 500),
		carts:    NewCartService(db, cartRepo, menuRepo, restRepo),
		orders:   NewOrderService(db, orderRepo, cartRepo, menuRepo, restRepo, notify),
		notify:   notify,
	}
}

// captureNotifier records emissions instead of broadcasting them.
type captureNotifier struct {
	created       []*entity.Order
	statusChanged []*entity.Order
}

func (n *captureNotifier) OrderCreated(o *entity.Order)       { n.created = append(n.created, o) }
func (n *captureNotifier) OrderStatusChanged(o *entity.Order) { n.statusChanged = append(n.statusChanged, o) }

// cartTotalMatchesItems asserts the stored total equals the sum over lines.
func cartTotalMatchesItems(t *testing.T, c *entity.Cart) {
	t.Helper()
	var sum int64
	for _, it := range c.Items {
		sum += it.Subtotal()
	}
	if c.Total != sum {
		t.Fatalf("cart total %d drifted from item sum %d", c.Total, sum)
	}
}
