package services

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/favourfurniture/storefront/app/models"
	"github.com/favourfurniture/storefront/app/repositories"
	"github.com/favourfurniture/storefront/pkg/cache"
	"github.com/favourfurniture/storefront/pkg/event"
	"github.com/favourfurniture/storefront/pkg/logger"
	"github.com/favourfurniture/storefront/pkg/orm"
	"github.com/favourfurniture/storefront/pkg/storage"
)

const productListCachePrefix = "products:list:"

// ProductService handles the furniture catalogue.
type ProductService struct {
	products *repositories.ProductRepository
}

func NewProductService() *ProductService {
	s := &ProductService{products: repositories.NewProductRepository()}

	event.Listen(event.ProductChanged, func(interface{}) {
		for _, t := range append([]string{"all"}, models.ProductTypes...) {
			cache.Forget(productListCachePrefix + t)
		}
	})

	return s
}

// ProductInput is the create/update contract for catalogue entries.
// Price is in minor currency units.
type ProductInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Type        string `json:"type" validate:"required"`
	Description string `json:"description" validate:"nullable"`
	Price       int64  `json:"price" validate:"required,gte=0"`
	Image       string `json:"image" validate:"nullable,max=255"`
}

// List returns one page of the catalogue, optionally filtered by
// furniture category. The first page of each category is cached.
func (s *ProductService) List(category string, page, pageSize int) ([]models.Product, orm.Pagination, error) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if category == "" {
		category = "all"
	}
	if category != "all" && !models.ValidType(category) {
		return nil, orm.Pagination{}, ErrInvalidInput
	}

	type cachedPage struct {
		Products   []models.Product `json:"products"`
		Pagination orm.Pagination   `json:"pagination"`
	}

	key := productListCachePrefix + category
	if page == DefaultPage && pageSize == DefaultPageSize {
		var cp cachedPage
		if cache.Get(key, &cp) {
			return cp.Products, cp.Pagination, nil
		}
	}

	products, pagination, err := s.products.All(category, page, pageSize)
	if err != nil {
		logger.Error("products: list failed", "error", err)
		return nil, orm.Pagination{}, ErrUnavailable
	}

	if page == DefaultPage && pageSize == DefaultPageSize {
		cache.Set(key, cachedPage{Products: products, Pagination: pagination}, 5*time.Minute)
	}
	return products, pagination, nil
}

// Get returns a single catalogue entry.
func (s *ProductService) Get(id uint) (models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, ErrUnavailable
	}
	return product, nil
}

// Create adds a catalogue entry.
func (s *ProductService) Create(in ProductInput) (models.Product, error) {
	if !models.ValidType(in.Type) {
		return models.Product{}, ErrInvalidInput
	}

	product := models.Product{
		Name:        strings.TrimSpace(in.Name),
		Type:        in.Type,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
	}
	if product.Image == "" {
		product.Image = models.DefaultProductImage
	}

	if err := s.products.Create(&product); err != nil {
		logger.Error("products: create failed", "error", err)
		return models.Product{}, ErrUnavailable
	}

	event.Fire(event.ProductChanged, &product)
	return product, nil
}

// Update replaces a catalogue entry's fields. Existing orders keep their
// snapshots, so price changes never reach past orders.
func (s *ProductService) Update(id uint, in ProductInput) (models.Product, error) {
	if !models.ValidType(in.Type) {
		return models.Product{}, ErrInvalidInput
	}

	product, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, ErrUnavailable
	}

	product.Name = strings.TrimSpace(in.Name)
	product.Type = in.Type
	product.Description = in.Description
	product.Price = in.Price
	if in.Image != "" {
		product.Image = in.Image
	}

	if err := s.products.Update(&product); err != nil {
		logger.Error("products: update failed", "product_id", id, "error", err)
		return models.Product{}, ErrUnavailable
	}

	event.Fire(event.ProductChanged, &product)
	return product, nil
}

// Delete removes a catalogue entry and its stored image.
func (s *ProductService) Delete(id uint) error {
	product, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return ErrUnavailable
	}

	if err := s.products.Delete(&product); err != nil {
		logger.Error("products: delete failed", "product_id", id, "error", err)
		return ErrUnavailable
	}

	if product.Image != "" && product.Image != models.DefaultProductImage {
		if err := storage.Delete("products/" + product.Image); err != nil {
			logger.Warn("products: image cleanup failed", "image", product.Image, "error", err)
		}
	}

	event.Fire(event.ProductChanged, &product)
	return nil
}

// Like bumps a product's like counter and returns the new value.
func (s *ProductService) Like(id uint) (int, error) {
	if _, err := s.Get(id); err != nil {
		return 0, err
	}

	likes, err := s.products.IncrementLikes(id)
	if err != nil {
		logger.Error("products: like failed", "product_id", id, "error", err)
		return 0, ErrUnavailable
	}
	return likes, nil
}

// UploadImage stores an uploaded product image and attaches it to the
// product. The stored filename is unique per upload; the previous image
// is removed.
func (s *ProductService) UploadImage(id uint, filename string, r io.Reader) (models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, ErrUnavailable
	}

	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return models.Product{}, ErrInvalidInput
	}

	name := fmt.Sprintf("%d-%d%s", product.ID, time.Now().UnixNano(), ext)
	if err := storage.PutStream("products/"+name, r); err != nil {
		logger.Error("products: image upload failed", "product_id", id, "error", err)
		return models.Product{}, ErrUnavailable
	}

	previous := product.Image
	product.Image = name
	if err := s.products.Update(&product); err != nil {
		return models.Product{}, ErrUnavailable
	}

	if previous != "" && previous != models.DefaultProductImage {
		if err := storage.Delete("products/" + previous); err != nil {
			logger.Warn("products: previous image cleanup failed", "image", previous, "error", err)
		}
	}

	event.Fire(event.ProductChanged, &product)
	return product, nil
}

// ImageURL resolves a stored image name to its public URL.
func (s *ProductService) ImageURL(image string) string {
	if image == "" {
		image = models.DefaultProductImage
	}
	return storage.URL("products/" + image)
}
