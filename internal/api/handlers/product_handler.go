package handlers

import (
	"fmt"
	"net/http"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/catalog"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/domain"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ProductHandler struct {
	service *service.ProductService
}

func NewProductHandler(service *service.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": products,
		"total": len(products),
	})
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var input domain.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	product, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "failed to create product")
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var input domain.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	product, err := h.service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err, "failed to update product")
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "failed to delete product")
		return
	}

	c.Status(http.StatusNoContent)
}

// Upload imports one or more CSV/XLSX catalogue files sent as multipart "files".
func (h *ProductHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return
	}

	var products []domain.Product
	for _, file := range files {
		if !catalog.IsSupported(file.Filename) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type", "details": file.Filename})
			return
		}

		f, err := file.Open()
		if err != nil {
			log.Error().Err(err).Str("filename", file.Filename).Msg("failed to open uploaded file")
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file", "details": file.Filename})
			return
		}
		rows, err := catalog.Read(file.Filename, f)
		f.Close()
		if err == nil {
			var parsed []domain.Product
			parsed, err = catalog.Products(rows)
			products = append(products, parsed...)
		}
		if err != nil {
			respondError(c, fmt.Errorf("%s: %w", file.Filename, err), "failed to parse catalogue")
			return
		}
	}

	count, err := h.service.Import(c.Request.Context(), products)
	if err != nil {
		respondError(c, err, "failed to import products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "products imported",
		"count":   count,
		"files":   len(files),
	})
}
