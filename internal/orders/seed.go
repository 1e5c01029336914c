package orders

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/quickmart/storefront-backend/pkg/db"
	"github.com/quickmart/storefront-backend/pkg/db/models"
	"github.com/quickmart/storefront-backend/pkg/logger"
)

//go:embed orders.json
var orderFixture []byte

// SeedOrders loads the bundled demo orders into an empty order table. A
// non-empty table is left untouched so real history is never mixed with
// fixtures.
func SeedOrders(ctx context.Context, client *db.Client, logg *logger.Logger) error {
	var count int64
	if err := client.DB().WithContext(ctx).Model(&models.Order{}).Count(&count).Error; err != nil {
		return fmt.Errorf("counting orders: %w", err)
	}
	if count > 0 {
		return nil
	}

	seeds, err := FixtureOrders()
	if err != nil {
		return err
	}
	if err := client.DB().WithContext(ctx).Create(&seeds).Error; err != nil {
		return fmt.Errorf("inserting seed orders: %w", err)
	}
	if logg != nil {
		logg.Info(logg.WithField(ctx, "count", len(seeds)), "seeded demo orders")
	}
	return nil
}

// FixtureOrders decodes the bundled demo order history.
func FixtureOrders() ([]models.Order, error) {
	var seeds []models.Order
	if err := json.Unmarshal(orderFixture, &seeds); err != nil {
		return nil, fmt.Errorf("decoding order fixture: %w", err)
	}
	for i := range seeds {
		if seeds[i].ClientID == "" {
			seeds[i].ClientID = "default"
		}
	}
	return seeds, nil
}
