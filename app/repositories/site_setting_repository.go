package repositories

import (
	"context"
	"time"

	"github.com/ghecrochet/storefront/app/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SiteSettingRepositoryImpl interface {
	GetByKeys(ctx context.Context, keys []string) (map[string]string, error)
	Upsert(ctx context.Context, key string, value *string) error
}

type siteSettingRepository struct {
	db *gorm.DB
}

func NewSiteSettingRepository(db *gorm.DB) SiteSettingRepositoryImpl {
	return &siteSettingRepository{db: db}
}

// GetByKeys returns the non-null values stored for the given keys.
func (r *siteSettingRepository) GetByKeys(ctx context.Context, keys []string) (map[string]string, error) {
	values := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return values, nil
	}

	var settings []models.SiteSetting
	// "key" is reserved in MySQL, so the condition goes through a quoted column map.
	err := r.db.WithContext(ctx).
		Where(map[string]interface{}{"key": keys}).
		Find(&settings).Error
	if err != nil {
		return nil, errors.Wrap(err, "get site settings")
	}

	for _, s := range settings {
		if s.Value != nil && *s.Value != "" {
			values[s.Key] = *s.Value
		}
	}
	return values, nil
}

// Upsert writes the value for key; a nil value clears it.
func (r *siteSettingRepository) Upsert(ctx context.Context, key string, value *string) error {
	setting := models.SiteSetting{Key: key, Value: value, UpdatedAt: time.Now()}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&setting).Error
	return errors.Wrapf(err, "upsert site setting %s", key)
}
