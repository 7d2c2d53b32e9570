package catalog

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lincyaw/storefront/internal/domain/catalog"
	"github.com/lincyaw/storefront/internal/domain/shared"
)

// ObjectStorageService defines the interface for object storage
// operations. Implemented by the infrastructure layer (S3, local disk).
type ObjectStorageService interface {
	// PutObject uploads an object and returns its public URL
	PutObject(ctx context.Context, storageKey string, body io.Reader, size int64, contentType string) (string, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// ImageUpload is one file in a multi-image upload request
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
	Primary     bool
}

// ImageUploadResult reports the outcome per file. Failures are
// collected alongside successes rather than aborting the request.
type ImageUploadResult struct {
	Filename string `json:"filename"`
	URL      string `json:"url,omitempty"`
	Error    string `json:"error,omitempty"`
}

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageService uploads product images to object storage, falling back
// to the local store when the primary store rejects a write
type ImageService struct {
	productRepo ProductRepositoryForImages
	primary     ObjectStorageService
	fallback    ObjectStorageService
	logger      *zap.Logger
}

// ProductRepositoryForImages is the slice of the product repository the
// image service needs
type ProductRepositoryForImages interface {
	FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
	Save(ctx context.Context, product *catalog.Product) error
}

var _ ImageRemover = (*ImageService)(nil)

// NewImageService creates a new ImageService. fallback may be nil when
// no local fallback is configured.
func NewImageService(productRepo ProductRepositoryForImages, primary, fallback ObjectStorageService, logger *zap.Logger) *ImageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageService{
		productRepo: productRepo,
		primary:     primary,
		fallback:    fallback,
		logger:      logger,
	}
}

// UploadProductImages stores each file and attaches the resulting URLs
// to the product. Per-file failures are reported in the result list;
// the product is saved with whichever images succeeded.
func (s *ImageService) UploadProductImages(ctx context.Context, productID uuid.UUID, uploads []ImageUpload) ([]ImageUploadResult, *ProductResponse, error) {
	if len(uploads) == 0 {
		return nil, nil, shared.NewDomainError("NO_FILES", "No image files provided")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}

	results := make([]ImageUploadResult, 0, len(uploads))
	uploaded := 0
	for _, upload := range uploads {
		result := ImageUploadResult{Filename: upload.Filename}

		ext, ok := allowedImageTypes[upload.ContentType]
		if !ok {
			result.Error = fmt.Sprintf("unsupported content type %q", upload.ContentType)
			results = append(results, result)
			continue
		}

		key := s.storageKey(productID, upload.Filename, ext)
		url, err := s.store(ctx, key, upload)
		if err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}

		if err := product.AddImage(url, strings.TrimSuffix(upload.Filename, path.Ext(upload.Filename)), upload.Primary); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}

		result.URL = url
		results = append(results, result)
		uploaded++
	}

	if uploaded > 0 {
		if err := s.productRepo.Save(ctx, product); err != nil {
			return nil, nil, err
		}
	}

	response := ToProductResponse(product)
	return results, &response, nil
}

// store writes to the primary store and falls back to the local store
// when the primary fails
func (s *ImageService) store(ctx context.Context, key string, upload ImageUpload) (string, error) {
	url, err := s.primary.PutObject(ctx, key, upload.Body, upload.Size, upload.ContentType)
	if err == nil {
		return url, nil
	}
	if s.fallback == nil {
		return "", err
	}

	s.logger.Warn("primary image store failed, using local fallback",
		zap.String("key", key),
		zap.Error(err))

	// The primary may have consumed part of the reader; only seekable
	// bodies can be retried.
	seeker, ok := upload.Body.(io.Seeker)
	if !ok {
		return "", err
	}
	if _, serr := seeker.Seek(0, io.SeekStart); serr != nil {
		return "", err
	}

	return s.fallback.PutObject(ctx, key, upload.Body, upload.Size, upload.ContentType)
}

// DeleteProductImages removes every stored image for a product. Used
// when a product is deleted.
func (s *ImageService) DeleteProductImages(ctx context.Context, product *catalog.Product) {
	for _, img := range product.Images {
		key := storageKeyFromURL(img.URL)
		if key == "" {
			continue
		}
		if err := s.primary.DeleteObject(ctx, key); err != nil {
			s.logger.Warn("failed to delete product image",
				zap.String("key", key),
				zap.Error(err))
		}
	}
}

func (s *ImageService) storageKey(productID uuid.UUID, filename, ext string) string {
	return fmt.Sprintf("products/%s/%s%s", productID, uuid.New(), ext)
}

// storageKeyFromURL extracts the storage key from a stored image URL
func storageKeyFromURL(url string) string {
	idx := strings.Index(url, "/products/")
	if idx < 0 {
		return ""
	}
	return strings.TrimPrefix(url[idx:], "/")
}
