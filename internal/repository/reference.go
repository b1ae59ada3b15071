package repository

import (
	"context"
	"errors"

	"tourit/internal/cache"
	"tourit/internal/models"

	"gorm.io/gorm"
)

// ReferenceRepository serves the seeded country/category/tag tables.
// List reads go through the Redis cache-aside helper since the data is
// immutable at runtime.
type ReferenceRepository interface {
	ListCountries(ctx context.Context) ([]models.Country, error)
	GetCountryByCode(ctx context.Context, code string) (*models.Country, error)
	CountryExists(ctx context.Context, id uint) (bool, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	GetCategoriesByIDs(ctx context.Context, ids []uint) ([]models.Category, error)
	GetTagsByIDs(ctx context.Context, ids []uint) ([]models.Tag, error)
}

type referenceRepository struct {
	db *gorm.DB
}

// NewReferenceRepository returns a new ReferenceRepository implementation.
func NewReferenceRepository(db *gorm.DB) ReferenceRepository {
	return &referenceRepository{db: db}
}

func (r *referenceRepository) ListCountries(ctx context.Context) ([]models.Country, error) {
	var countries []models.Country
	err := cache.Aside(ctx, cache.CountriesKey, &countries, cache.ReferenceTTL, func() error {
		return r.db.WithContext(ctx).Order("name ASC").Find(&countries).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return countries, nil
}

// GetCountryByCode matches the code case-insensitively; country codes are
// display-normalized reference data.
func (r *referenceRepository) GetCountryByCode(ctx context.Context, code string) (*models.Country, error) {
	var country models.Country
	err := cache.Aside(ctx, cache.CountryCodeKey(code), &country, cache.ReferenceTTL, func() error {
		return r.db.WithContext(ctx).
			Where("LOWER(code) = LOWER(?)", code).
			First(&country).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Country", code)
		}
		return nil, models.NewInternalError(err)
	}
	return &country, nil
}

func (r *referenceRepository) CountryExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Country{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *referenceRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := cache.Aside(ctx, cache.CategoriesKey, &categories, cache.ReferenceTTL, func() error {
		return r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}

func (r *referenceRepository) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := cache.Aside(ctx, cache.TagsKey, &tags, cache.ReferenceTTL, func() error {
		return r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}

// GetCategoriesByIDs returns only the categories that exist; unknown ids
// are silently dropped.
func (r *referenceRepository) GetCategoriesByIDs(ctx context.Context, ids []uint) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var categories []models.Category
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}

// GetTagsByIDs returns only the tags that exist; unknown ids are silently
// dropped.
func (r *referenceRepository) GetTagsByIDs(ctx context.Context, ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}
