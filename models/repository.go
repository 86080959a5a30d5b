package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotFound is returned when no record matches the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// RecordStore is the id-based CRUD surface every resource handler depends on.
type RecordStore[T any] interface {
	List(ctx context.Context) ([]T, error)
	Find(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, record *T) error
	Update(ctx context.Context, record *T) error
	Delete(ctx context.Context, id uint) error
}

// Repository implements RecordStore on top of gorm for any entity type.
type Repository[T any] struct {
	db *gorm.DB
}

func NewRepository[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

func NewCategoriesRepository(db *gorm.DB) *Repository[Category] {
	return NewRepository[Category](db)
}

func NewUsersRepository(db *gorm.DB) *Repository[User] {
	return NewRepository[User](db)
}

func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	records := make([]T, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, translate(err)
	}
	return records, nil
}

func (r *Repository[T]) Find(ctx context.Context, id uint) (*T, error) {
	var record T
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (r *Repository[T]) Create(ctx context.Context, record *T) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Update writes every column of record, zero values included, matching on its primary key.
func (r *Repository[T]) Update(ctx context.Context, record *T) error {
	res := r.db.WithContext(ctx).Model(record).Select("*").Omit("CreatedAt", clause.Associations).Updates(record)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository[T]) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// translate maps gorm errors onto the package sentinels. The db handle must be
// opened with TranslateError for duplicate keys to be recognised.
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}

// AutoMigrate creates or alters the tables of every entity.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Category{}, &Product{}, &User{})
}
