package repositories

import (
	"context"
	"testing"

	"github.com/ghecrochet/storefront/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteSettingUpsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSiteSettingRepository(db)
	ctx := context.Background()

	values, err := repo.GetByKeys(ctx, models.SiteImageSlots)
	require.NoError(t, err)
	assert.Empty(t, values)

	first := "/uploads/site/home_hero_image-1.jpg"
	second := "/uploads/site/home_hero_image-2.jpg"
	require.NoError(t, repo.Upsert(ctx, models.SettingHomeHeroImage, &first))
	require.NoError(t, repo.Upsert(ctx, models.SettingHomeHeroImage, &second))

	values, err = repo.GetByKeys(ctx, models.SiteImageSlots)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{models.SettingHomeHeroImage: second}, values)

	var rows int64
	require.NoError(t, db.Model(&models.SiteSetting{}).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)

	require.NoError(t, repo.Upsert(ctx, models.SettingHomeHeroImage, nil))
	values, err = repo.GetByKeys(ctx, models.SiteImageSlots)
	require.NoError(t, err)
	assert.Empty(t, values)
}
