package repositories

import (
	"gorm.io/gorm"

	"github.com/favourfurniture/storefront/app/models"
	"github.com/favourfurniture/storefront/pkg/orm"
)

// ProductRepository handles database operations for Product.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	err := orm.DB().Model(&models.Product{}).Where("id = ?", id).First(&product)
	return product, err
}

// Create persists a new product.
func (r *ProductRepository) Create(product *models.Product) error {
	return orm.DB().Create(product)
}

// Update persists changes to an existing product.
func (r *ProductRepository) Update(product *models.Product) error {
	return orm.DB().Save(product)
}

// Delete permanently removes a product.
func (r *ProductRepository) Delete(product *models.Product) error {
	return orm.DB().Gorm().Unscoped().Delete(product).Error
}

// All returns products newest first, optionally filtered by furniture
// category, with pagination.
func (r *ProductRepository) All(category string, page, limit int) ([]models.Product, orm.Pagination, error) {
	q := orm.DB().Model(&models.Product{})
	if category != "" && category != "all" {
		q = q.Where("type = ?", category)
	}

	var products []models.Product
	pagination, err := q.Order("created_at desc").GetWithPagination(&products, page, limit)
	return products, pagination, err
}

// IncrementLikes bumps the like counter atomically and returns the new
// value.
func (r *ProductRepository) IncrementLikes(id uint) (int, error) {
	res := orm.DB().Gorm().
		Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + ?", 1))
	if res.Error != nil {
		return 0, res.Error
	}

	var product models.Product
	if err := orm.DB().Model(&models.Product{}).Where("id = ?", id).First(&product); err != nil {
		return 0, err
	}
	return product.Likes, nil
}

// MostLiked returns up to limit products ordered by like count.
func (r *ProductRepository) MostLiked(limit int) ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().
		Model(&models.Product{}).
		Order("likes desc, created_at desc").
		Limit(limit).
		Get(&products)
	return products, err
}

// Count returns the total number of products.
func (r *ProductRepository) Count() (int64, error) {
	var n int64
	err := orm.DB().Model(&models.Product{}).Count(&n)
	return n, err
}
