package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/boldserve/boldserve-api/internal/dto"
	"github.com/boldserve/boldserve-api/internal/service"
	"github.com/boldserve/boldserve-api/internal/taxonomy"
	"github.com/boldserve/boldserve-api/internal/upload"
)

type CatalogHandler struct {
	catalogSvc *service.CatalogService
	maxImages  int
}

func NewCatalogHandler(catalogSvc *service.CatalogService, maxImages int) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc, maxImages: maxImages}
}

// Create accepts a multipart form with service fields plus up to maxImages
// files under the "images" key.
func (h *CatalogHandler) Create(c *gin.Context) {
	var req dto.CreateServiceRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid service data", err)
		return
	}

	form, err := c.MultipartForm()
	var files []upload.File
	if err == nil && form != nil {
		headers := form.File["images"]
		if len(headers) > h.maxImages {
			respondError(c, http.StatusBadRequest,
				fmt.Sprintf("Too many files. Maximum is %d images", h.maxImages), nil)
			return
		}
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				respondError(c, http.StatusBadRequest, "Unreadable image upload", err)
				return
			}
			defer f.Close()
			files = append(files, upload.File{Name: fh.Filename, Reader: f})
		}
	}

	svc, err := h.catalogSvc.Create(c.Request.Context(), req, files)
	if err != nil {
		h.respondCatalogError(c, err, "Error creating service")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": fmt.Sprintf("Product successfully added to %s with %d images", svc.SubCategory, len(svc.Images)),
		"data":    svc,
	})
}

// ListByCategory validates the queried pair against the taxonomy before
// matching records.
func (h *CatalogHandler) ListByCategory(c *gin.Context) {
	services, err := h.catalogSvc.ListByCategory(c.Request.Context(), c.Query("category"), c.Query("subCategory"))
	if err != nil {
		h.respondCatalogError(c, err, "Error fetching products")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": services, "count": len(services)})
}

// List returns all services with optional category/subCategory filters.
func (h *CatalogHandler) List(c *gin.Context) {
	var req dto.ListServicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid query", err)
		return
	}
	services, err := h.catalogSvc.ListAll(c.Request.Context(), req.Category, req.SubCategory)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error fetching services", err)
		return
	}
	respondData(c, http.StatusOK, services)
}

func (h *CatalogHandler) Search(c *gin.Context) {
	services, err := h.catalogSvc.Search(c.Request.Context(), c.Query("term"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error searching services", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": services, "count": len(services)})
}

// Categories returns the whole taxonomy.
func (h *CatalogHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, taxonomy.All())
}

// Subcategories returns the allowed subcategories of one category.
func (h *CatalogHandler) Subcategories(c *gin.Context) {
	category := strings.TrimSpace(c.Param("category"))
	subs := taxonomy.Subcategories(category)
	if subs == nil {
		respondError(c, http.StatusBadRequest, "Invalid category", nil)
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (h *CatalogHandler) GetByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid service ID", err)
		return
	}
	svc, err := h.catalogSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			respondError(c, http.StatusNotFound, "Service not found", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Error fetching service", err)
		return
	}
	respondData(c, http.StatusOK, svc)
}

func (h *CatalogHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid service ID", err)
		return
	}
	var req dto.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid service data", err)
		return
	}
	svc, err := h.catalogSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			respondError(c, http.StatusNotFound, "Service not found", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Error updating service", err)
		return
	}
	respondData(c, http.StatusOK, svc)
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid service ID", err)
		return
	}
	if err := h.catalogSvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			respondError(c, http.StatusNotFound, "Service not found", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Error deleting service", err)
		return
	}
	respondMessage(c, http.StatusOK, "Service deleted successfully")
}

// respondCatalogError maps taxonomy and upload failures, attaching the valid
// value lists the way the API has always done.
func (h *CatalogHandler) respondCatalogError(c *gin.Context, err error, fallback string) {
	var unknownCat *service.UnknownCategoryError
	var unknownSub *service.UnknownSubcategoryError
	switch {
	case errors.As(err, &unknownCat):
		c.JSON(http.StatusBadRequest, gin.H{
			"success":         false,
			"message":         "Invalid category",
			"validCategories": unknownCat.ValidCategories,
		})
	case errors.As(err, &unknownSub):
		c.JSON(http.StatusBadRequest, gin.H{
			"success":            false,
			"message":            "Invalid subcategory for " + unknownSub.Category,
			"validSubcategories": unknownSub.ValidSubcategories,
		})
	case errors.Is(err, service.ErrTooManyImages):
		respondError(c, http.StatusBadRequest,
			fmt.Sprintf("Too many files. Maximum is %d images", h.maxImages), nil)
	default:
		respondError(c, http.StatusInternalServerError, fallback, err)
	}
}
