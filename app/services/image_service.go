package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ghecrochet/storefront/app/models"
	"github.com/ghecrochet/storefront/app/repositories"
	"github.com/ghecrochet/storefront/app/storage"
	"github.com/ghecrochet/storefront/app/utils/imageset"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultMaxProductImages = 5
	MaxImageBytes           = 5 << 20
)

type Stage string

const (
	StageValidate Stage = "validate"
	StageUpload   Stage = "upload"
	StageStorage  Stage = "storage"
	StageDatabase Stage = "database"
	StageCleanup  Stage = "cleanup"
)

// ImageError reports where an image operation stopped. Committed is true once
// the new list or setting has been written; Orphans names stored objects that
// may no longer be referenced.
type ImageError struct {
	Op        string
	Stage     Stage
	Committed bool
	Orphans   []string
	Err       error
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("%s failed at %s: %v", e.Op, e.Stage, e.Err)
}

func (e *ImageError) Unwrap() error {
	return e.Err
}

// ImageFile is one uploaded file held in memory.
type ImageFile struct {
	Name string
	Data []byte
}

// ReadImageFile loads a multipart upload, refusing anything above MaxImageBytes.
func ReadImageFile(fh *multipart.FileHeader) (ImageFile, error) {
	if fh.Size > MaxImageBytes {
		return ImageFile{}, errors.Wrap(ErrImageTooLarge, fh.Filename)
	}
	f, err := fh.Open()
	if err != nil {
		return ImageFile{}, errors.Wrapf(err, "open upload %s", fh.Filename)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxImageBytes+1))
	if err != nil {
		return ImageFile{}, errors.Wrapf(err, "read upload %s", fh.Filename)
	}
	if len(data) > MaxImageBytes {
		return ImageFile{}, errors.Wrap(ErrImageTooLarge, fh.Filename)
	}
	return ImageFile{Name: fh.Filename, Data: data}, nil
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// sniffExtension detects the file type from its content, not its name.
func sniffExtension(file ImageFile) (string, error) {
	detected := mimetype.Detect(file.Data)
	for mime, ext := range imageExtensions {
		if detected.Is(mime) {
			return ext, nil
		}
	}
	return "", errors.Wrapf(ErrUnsupportedImageType, "%s is %s", file.Name, detected.String())
}

// objectName builds a collision-free storage name from the original file name.
func objectName(original, ext string) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	prefix := slug.Make(base)
	if len(prefix) > 40 {
		prefix = strings.Trim(prefix[:40], "-")
	}
	if prefix == "" {
		prefix = "image"
	}
	return prefix + "-" + uuid.New().String() + ext
}

type ImageService struct {
	products  repositories.ProductRepositoryImpl
	settings  repositories.SiteSettingRepositoryImpl
	bucket    storage.Bucket
	maxImages int
	now       func() time.Time
}

func NewImageService(
	products repositories.ProductRepositoryImpl,
	settings repositories.SiteSettingRepositoryImpl,
	bucket storage.Bucket,
	maxImages int,
) *ImageService {
	if maxImages <= 0 {
		maxImages = DefaultMaxProductImages
	}
	return &ImageService{products: products, settings: settings, bucket: bucket, maxImages: maxImages, now: time.Now}
}

func (s *ImageService) MaxImages() int {
	return s.maxImages
}

func (s *ImageService) loadProduct(ctx context.Context, op, productID string) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, &ImageError{Op: op, Stage: StageDatabase, Err: err}
	}
	if product == nil {
		return nil, &ImageError{Op: op, Stage: StageValidate, Err: ErrProductNotFound}
	}
	return product, nil
}

// AddProductImages appends as many files as still fit below the image limit.
// Files past the remaining capacity are ignored in submission order.
func (s *ImageService) AddProductImages(ctx context.Context, productID string, files []ImageFile) ([]string, error) {
	const op = "add product images"

	if len(files) == 0 {
		return nil, &ImageError{Op: op, Stage: StageValidate, Err: ErrNoImageFiles}
	}
	product, err := s.loadProduct(ctx, op, productID)
	if err != nil {
		return nil, err
	}

	remaining := imageset.Remaining(product.Images, s.maxImages)
	if remaining == 0 {
		return product.Images, &ImageError{Op: op, Stage: StageValidate, Err: ErrTooManyImages}
	}
	if len(files) > remaining {
		files = files[:remaining]
	}

	exts := make([]string, len(files))
	for i, file := range files {
		ext, err := sniffExtension(file)
		if err != nil {
			return product.Images, &ImageError{Op: op, Stage: StageValidate, Err: err}
		}
		exts[i] = ext
	}

	names := make([]string, len(files))
	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			name := objectName(file.Name, exts[i])
			url, err := s.bucket.Upload(gctx, name, bytes.NewReader(file.Data), false)
			if err != nil {
				return errors.Wrapf(err, "upload %s", file.Name)
			}
			names[i], urls[i] = name, url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return product.Images, &ImageError{Op: op, Stage: StageUpload, Orphans: nonEmpty(names), Err: err}
	}

	next := imageset.Append(product.Images, urls, s.maxImages)
	if err := s.products.UpdateImages(ctx, product.ID, next); err != nil {
		return product.Images, &ImageError{Op: op, Stage: StageDatabase, Orphans: names, Err: err}
	}
	return next, nil
}

// RemoveProductImage deletes the stored binary and drops url from the list.
// An url the product does not hold is a no-op.
func (s *ImageService) RemoveProductImage(ctx context.Context, productID, url string) ([]string, error) {
	const op = "remove product image"

	product, err := s.loadProduct(ctx, op, productID)
	if err != nil {
		return nil, err
	}
	next, found := imageset.Remove(product.Images, url)
	if !found {
		return product.Images, nil
	}

	if err := s.bucket.Delete(ctx, storage.NameFromURL(url)); err != nil {
		return product.Images, &ImageError{Op: op, Stage: StageStorage, Err: err}
	}
	if err := s.products.UpdateImages(ctx, product.ID, next); err != nil {
		return product.Images, &ImageError{Op: op, Stage: StageDatabase, Err: err}
	}
	return next, nil
}

// ReplaceProductImage swaps the image at index for file. The previous binary
// is deleted only after the new list is stored.
func (s *ImageService) ReplaceProductImage(ctx context.Context, productID string, index int, file ImageFile) ([]string, error) {
	const op = "replace product image"

	product, err := s.loadProduct(ctx, op, productID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(product.Images) {
		return product.Images, &ImageError{Op: op, Stage: StageValidate,
			Err: errors.Wrapf(imageset.ErrIndexOutOfRange, "index %d", index)}
	}
	ext, err := sniffExtension(file)
	if err != nil {
		return product.Images, &ImageError{Op: op, Stage: StageValidate, Err: err}
	}

	name := objectName(file.Name, ext)
	url, err := s.bucket.Upload(ctx, name, bytes.NewReader(file.Data), false)
	if err != nil {
		return product.Images, &ImageError{Op: op, Stage: StageUpload, Err: err}
	}

	next, old, err := imageset.ReplaceAt(product.Images, index, url)
	if err != nil {
		return product.Images, &ImageError{Op: op, Stage: StageValidate, Orphans: []string{name}, Err: err}
	}
	if err := s.products.UpdateImages(ctx, product.ID, next); err != nil {
		return product.Images, &ImageError{Op: op, Stage: StageDatabase, Orphans: []string{name}, Err: err}
	}

	oldName := storage.NameFromURL(old)
	if err := s.bucket.Delete(ctx, oldName); err != nil {
		zap.S().Warnf("ReplaceProductImage: replaced binary %s left behind for product %s: %v", oldName, product.ID, err)
		return next, &ImageError{Op: op, Stage: StageCleanup, Committed: true, Orphans: []string{oldName}, Err: err}
	}
	return next, nil
}

// PromoteProductImage makes url the primary image. Nothing is written when it
// already is, or when the product does not hold url.
func (s *ImageService) PromoteProductImage(ctx context.Context, productID, url string) ([]string, error) {
	const op = "promote product image"

	product, err := s.loadProduct(ctx, op, productID)
	if err != nil {
		return nil, err
	}
	next, changed := imageset.Promote(product.Images, url)
	if !changed {
		return product.Images, nil
	}
	if err := s.products.UpdateImages(ctx, product.ID, next); err != nil {
		return product.Images, &ImageError{Op: op, Stage: StageDatabase, Err: err}
	}
	return next, nil
}

// SiteImages returns the configured value of every known site image slot.
func (s *ImageService) SiteImages(ctx context.Context) (map[string]string, error) {
	return s.settings.GetByKeys(ctx, models.SiteImageSlots)
}

// SetSiteImage uploads file for the slot key and points the setting at it.
func (s *ImageService) SetSiteImage(ctx context.Context, key string, file ImageFile) (string, error) {
	const op = "set site image"

	if !models.IsSiteImageSlot(key) {
		return "", &ImageError{Op: op, Stage: StageValidate, Err: errors.Wrap(ErrUnknownSiteImage, key)}
	}
	ext, err := sniffExtension(file)
	if err != nil {
		return "", &ImageError{Op: op, Stage: StageValidate, Err: err}
	}

	name := fmt.Sprintf("site/%s-%d%s", key, s.now().UnixMilli(), ext)
	url, err := s.bucket.Upload(ctx, name, bytes.NewReader(file.Data), true)
	if err != nil {
		return "", &ImageError{Op: op, Stage: StageUpload, Err: err}
	}
	if err := s.settings.Upsert(ctx, key, &url); err != nil {
		return "", &ImageError{Op: op, Stage: StageDatabase, Orphans: []string{name}, Err: err}
	}
	return url, nil
}

// ClearSiteImage empties the slot. The stored binary is kept.
func (s *ImageService) ClearSiteImage(ctx context.Context, key string) error {
	const op = "clear site image"

	if !models.IsSiteImageSlot(key) {
		return &ImageError{Op: op, Stage: StageValidate, Err: errors.Wrap(ErrUnknownSiteImage, key)}
	}
	if err := s.settings.Upsert(ctx, key, nil); err != nil {
		return &ImageError{Op: op, Stage: StageDatabase, Err: err}
	}
	return nil
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
