package repository

import (
	"context"
	"time"

	"mestej/internal/domain/model"
	repo "mestej/internal/repository"

	"gorm.io/gorm"
)

type productPriceGormRepository struct {
	db *gorm.DB
}

func NewProductPriceGormRepository(db *gorm.DB) repo.ProductPriceRepository {
	return &productPriceGormRepository{db: db}
}

func (r *productPriceGormRepository) ListByProductIDs(ctx context.Context, productIDs []string) ([]model.ProductPrice, error) {
	if len(productIDs) == 0 {
		return []model.ProductPrice{}, nil
	}

	var prices []model.ProductPrice
	err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Order("valid_from desc").
		Find(&prices).Error
	if err != nil {
		return []model.ProductPrice{}, err
	}
	return prices, nil
}

// 開いている現在行を閉じる。0件でもエラーにしない（価格未設定の商品がある）。
func (r *productPriceGormRepository) EndCurrent(ctx context.Context, productID string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.ProductPrice{}).
		Where("product_id = ? AND valid_to IS NULL", productID).
		Update("valid_to", at).Error
}

func (r *productPriceGormRepository) Create(ctx context.Context, p model.ProductPrice) error {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return err
	}
	return nil
}
