package orders

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/quickmart/storefront-backend/pkg/db"
	"github.com/quickmart/storefront-backend/pkg/db/models"
	pkgerrors "github.com/quickmart/storefront-backend/pkg/errors"
)

type repo struct {
	client *db.Client
}

// NewRepo returns the gorm-backed order Storage.
func NewRepo(client *db.Client) (Storage, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "order repo requires a db client")
	}
	return &repo{client: client}, nil
}

func (r *repo) LoadAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.client.DB().WithContext(ctx).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading order history")
	}
	return orders, nil
}

// Save upserts the full order row, replacing the JSON documents on conflict.
func (r *repo) Save(ctx context.Context, order *models.Order) error {
	err := r.client.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(order).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving order")
	}
	return nil
}
