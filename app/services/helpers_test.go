package services

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/ghecrochet/storefront/app/models"
	"github.com/ghecrochet/storefront/app/models/migrations"
	"github.com/ghecrochet/storefront/app/repositories"
	"github.com/ghecrochet/storefront/app/storage"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
	textBytes = []byte("definitely not an image")

	errBoom = errors.New("boom")
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

// recordingBucket counts calls and can be told to fail uploads or deletes.
type recordingBucket struct {
	storage.Bucket

	mu         sync.Mutex
	uploads    []string
	deletes    []string
	failUpload bool
	failDelete bool
}

func newRecordingBucket() (*recordingBucket, afero.Fs) {
	fs := afero.NewMemMapFs()
	return &recordingBucket{Bucket: storage.NewFileBucket(fs, "/uploads")}, fs
}

func (b *recordingBucket) Upload(ctx context.Context, name string, body io.Reader, overwrite bool) (string, error) {
	b.mu.Lock()
	b.uploads = append(b.uploads, name)
	fail := b.failUpload
	b.mu.Unlock()
	if fail {
		return "", errBoom
	}
	return b.Bucket.Upload(ctx, name, body, overwrite)
}

func (b *recordingBucket) Delete(ctx context.Context, names ...string) error {
	b.mu.Lock()
	b.deletes = append(b.deletes, names...)
	fail := b.failDelete
	b.mu.Unlock()
	if fail {
		return errBoom
	}
	return b.Bucket.Delete(ctx, names...)
}

// spyProducts counts image writes and can fail Search or UpdateImages.
type spyProducts struct {
	repositories.ProductRepositoryImpl

	imageWrites  int
	failSearch   bool
	failImageSet bool
}

func (s *spyProducts) Search(ctx context.Context, f repositories.ProductFilter) ([]models.Product, int64, error) {
	if s.failSearch {
		return nil, 0, errBoom
	}
	return s.ProductRepositoryImpl.Search(ctx, f)
}

func (s *spyProducts) UpdateImages(ctx context.Context, id string, images []string) error {
	s.imageWrites++
	if s.failImageSet {
		return errBoom
	}
	return s.ProductRepositoryImpl.UpdateImages(ctx, id, images)
}

type fixture struct {
	db         *gorm.DB
	products   *spyProducts
	categories repositories.CategoryRepositoryImpl
	settings   repositories.SiteSettingRepositoryImpl
	bucket     *recordingBucket
	fs         afero.Fs
}

func newFixture(t *testing.T) *fixture {
	db := setupTestDB(t)
	bucket, fs := newRecordingBucket()
	return &fixture{
		db:         db,
		products:   &spyProducts{ProductRepositoryImpl: repositories.NewProductRepository(db)},
		categories: repositories.NewCategoryRepository(db),
		settings:   repositories.NewSiteSettingRepository(db),
		bucket:     bucket,
		fs:         fs,
	}
}

func (f *fixture) category(t *testing.T, name string) models.Category {
	t.Helper()
	c := models.Category{Name: name}
	require.NoError(t, f.categories.Create(context.Background(), &c))
	return c
}

func (f *fixture) product(t *testing.T, name string, createdAt time.Time, images []string, cats ...models.Category) models.Product {
	t.Helper()
	p := models.Product{
		Name:        name,
		Price:       decimal.NewFromInt(100000),
		IsAvailable: true,
		Images:      images,
		CreatedAt:   createdAt,
	}
	ids := make([]string, 0, len(cats))
	for _, c := range cats {
		ids = append(ids, c.ID)
	}
	require.NoError(t, f.products.CreateProduct(context.Background(), &p, ids))
	return p
}

func (f *fixture) reload(t *testing.T, id string) *models.Product {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

// storeObject puts a binary in the bucket and returns its URL.
func (f *fixture) storeObject(t *testing.T, name string) string {
	t.Helper()
	require.NoError(t, afero.WriteFile(f.fs, name, pngBytes, 0o644))
	return "/uploads/" + name
}
