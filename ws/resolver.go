package ws

import (
	"errors"
	"log"

	"backend/entity"
	"backend/repository"

	"gorm.io/gorm"
)

// ChannelResolver decides which channels a freshly authenticated connection
// joins. One variant per role; a new role means a new variant registered in
// NewHandler, not another branch in the join logic.
type ChannelResolver interface {
	Channels(userID uint) []string
}

// CustomerResolver joins the customer's private channel.
type CustomerResolver struct{}

func (CustomerResolver) Channels(userID uint) []string {
	return []string{UserChannel(userID)}
}

// AdminResolver joins the shared global channel.
type AdminResolver struct{}

func (AdminResolver) Channels(uint) []string {
	return []string{AdminChannel}
}

// ProviderResolver joins the channel of the provider's owned restaurant,
// resolved once at connect time. A provider with no restaurant (or a failed
// lookup) connects but joins nothing; the failure is logged, not fatal.
type ProviderResolver struct {
	Restaurants *repository.RestaurantRepository
}

func (p ProviderResolver) Channels(userID uint) []string {
	rest, err := p.Restaurants.FindByOwner(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[ws] provider %d has no restaurant, joining no channel", userID)
		return nil
	}
	if err != nil {
		log.Printf("[ws] restaurant lookup for provider %d failed: %v", userID, err)
		return nil
	}
	return []string{RestaurantChannel(rest.ID)}
}

func defaultResolvers(restRepo *repository.RestaurantRepository) map[string]ChannelResolver {
	return map[string]ChannelResolver{
		entity.RoleCustomer: CustomerResolver{},
		entity.RoleProvider: ProviderResolver{Restaurants: restRepo},
		entity.RoleAdmin:    AdminResolver{},
	}
}
