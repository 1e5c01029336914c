package cart

import (
	"context"

	"gorm.io/gorm"

	"github.com/quickmart/storefront-backend/pkg/db"
	"github.com/quickmart/storefront-backend/pkg/db/models"
	pkgerrors "github.com/quickmart/storefront-backend/pkg/errors"
)

type repo struct {
	client *db.Client
}

// NewRepo returns the gorm-backed cart Storage.
func NewRepo(client *db.Client) (Storage, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart repo requires a db client")
	}
	return &repo{client: client}, nil
}

func (r *repo) Load(ctx context.Context, clientID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.client.DB().WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("position ASC").
		Find(&items).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart items")
	}
	return items, nil
}

// Replace swaps the stored cart for the given contents in one transaction.
func (r *repo) Replace(ctx context.Context, clientID string, items []models.CartItem) error {
	err := r.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", clientID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replacing cart items")
	}
	return nil
}
