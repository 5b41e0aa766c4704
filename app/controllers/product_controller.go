package controllers

import (
	"net/http"

	"github.com/favourfurniture/storefront/app/services"
	"github.com/favourfurniture/storefront/pkg/bind"
	"github.com/favourfurniture/storefront/pkg/response"
)

// maxImageUploadBytes caps multipart product image uploads.
const maxImageUploadBytes = 10 << 20 // 10 MB

// ProductController serves the public catalogue and the admin catalogue
// management endpoints.
type ProductController struct {
	service *services.ProductService
}

func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

// List handles GET /api/products?category=&page=&limit=.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	page := intQuery(r, "page", services.DefaultPage)
	limit := intQuery(r, "limit", services.DefaultPageSize)

	products, pagination, err := c.service.List(category, page, limit)
	if err != nil {
		writeServiceError(w, err, "Product not found")
		return
	}
	response.Paginated(w, products, pagination)
}

// Get handles GET /api/products/{id}.
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		response.NotFound(w, "Product not found")
		return
	}

	product, err := c.service.Get(id)
	if err != nil {
		writeServiceError(w, err, "Product not found")
		return
	}
	response.Success(w, product)
}

// Like handles POST /api/products/{id}/like.
func (c *ProductController) Like(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		response.NotFound(w, "Product not found")
		return
	}

	likes, err := c.service.Like(id)
	if err != nil {
		writeServiceError(w, err, "Product not found")
		return
	}
	response.Success(w, map[string]int{"likes": likes})
}

// Create handles POST /api/admin/products.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.service.Create(in)
	if err != nil {
		writeServiceError(w, err, "Product not found")
		return
	}
	response.Created(w, "Product created", product)
}

// Update handles PUT /api/admin/products/{id}.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		response.NotFound(w, "Product not found")
		return
	}

	var in services.ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.service.Update(id, in)
	if err != nil {
		writeServiceError(w, err, "Product not found")
		return
	}
	response.SuccessMessage(w, "Product updated", product)
}

// Delete handles DELETE /api/admin/products/{id}.
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		response.NotFound(w, "Product not found")
		return
	}

	if err := c.service.Delete(id); err != nil {
		writeServiceError(w, err, "Product not found")
		return
	}
	response.SuccessMessage(w, "Product deleted", nil)
}

// UploadImage handles POST /api/admin/products/{id}/image (multipart,
// field "image").
func (c *ProductController) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		response.NotFound(w, "Product not found")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageUploadBytes)
	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid upload")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Missing image file")
		return
	}
	defer file.Close()

	product, err := c.service.UploadImage(id, header.Filename, file)
	if err != nil {
		writeServiceError(w, err, "Product not found")
		return
	}
	response.SuccessMessage(w, "Image uploaded", map[string]interface{}{
		"product":   product,
		"image_url": c.service.ImageURL(product.Image),
	})
}
