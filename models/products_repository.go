package models

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductsRepository is the product RecordStore plus filtered listing.
type ProductsRepository struct {
	*Repository[Product]
	db *gorm.DB
}

type ProductFilters struct {
	CategoryID    *uint
	PriceLessThan *decimal.Decimal
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		Repository: NewRepository[Product](db),
		db:         db,
	}
}

// ListFiltered returns the products matching every filter that is set, ordered by id.
func (r *ProductsRepository) ListFiltered(ctx context.Context, filters ProductFilters) ([]Product, error) {
	query := r.db.WithContext(ctx).Model(&Product{})

	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.PriceLessThan != nil {
		query = query.Where("price < ?", *filters.PriceLessThan)
	}

	products := make([]Product, 0)
	if err := query.Order("id").Find(&products).Error; err != nil {
		return nil, translate(err)
	}
	return products, nil
}
