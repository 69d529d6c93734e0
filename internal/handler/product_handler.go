package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/partnerlab/partner_api/internal/models"
	"github.com/partnerlab/partner_api/internal/repository"
	"github.com/partnerlab/partner_api/internal/service"
	"github.com/partnerlab/partner_api/internal/utils"
)

// CatalogService is the service surface the handler depends on.
type CatalogService interface {
	ListProducts(ctx context.Context, filter repository.ListFilter) (*service.ListResult, error)
	GetProduct(ctx context.Context, asin string) (*models.ProductDetail, error)
	UpdatePrice(ctx context.Context, asin string, rawPrice interface{}) (*models.PriceUpdate, error)
}

// ProductHandler handles the catalog HTTP endpoints.
type ProductHandler struct {
	catalog CatalogService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(catalog CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// GetProducts handles GET /api/:version/products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	filter := repository.ListFilter{
		Category:  c.Query("category"),
		Brand:     c.Query("brand"),
		MinPrice:  parseFloatQuery(c, "min_price"),
		MaxPrice:  parseFloatQuery(c, "max_price"),
		MinRating: parseFloatQuery(c, "min_rating"),
		Page:      parseIntQuery(c, "page", 1),
		Limit:     parseIntQuery(c, "limit", 50),
	}

	start := time.Now()
	result, err := h.catalog.ListProducts(c.Request.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list products")
		utils.Error(c, 500, err.Error(), "")
		return
	}

	c.JSON(200, utils.ListResponse{
		Success: true,
		Data:    result.Items,
		Pagination: utils.Pagination{
			Page:  result.Page,
			Limit: result.Limit,
			Total: result.Total,
		},
		Metadata: utils.ListMetadata{
			ResponseTimeTaken: utils.ResponseSeconds(time.Since(start)),
		},
	})
}

// GetProduct handles GET /api/:version/products/:asin
func (h *ProductHandler) GetProduct(c *gin.Context) {
	asin := c.Param("asin")

	start := time.Now()
	product, err := h.catalog.GetProduct(c.Request.Context(), asin)
	if err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			utils.Error(c, 404, "Product not found", fmt.Sprintf("No product found with ASIN: %s", asin))
			return
		}
		log.Error().Err(err).Str("asin", asin).Msg("failed to fetch product")
		utils.Error(c, 500, err.Error(), "")
		return
	}

	c.JSON(200, utils.DetailResponse{
		Success: true,
		Data:    product,
		Metadata: utils.DetailMetadata{
			CreditsSpent:      1,
			ResponseTimeTaken: utils.ResponseSeconds(time.Since(start)),
		},
	})
}

// updatePriceRequest carries the raw body value so missing and non-numeric
// prices fall through to the same validation path.
type updatePriceRequest struct {
	Price interface{} `json:"price"`
}

// UpdatePrice handles PATCH /api/:version/products/:asin/price
func (h *ProductHandler) UpdatePrice(c *gin.Context) {
	asin := c.Param("asin")

	var req updatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "Invalid price", "Please provide a valid numeric price")
		return
	}

	update, err := h.catalog.UpdatePrice(c.Request.Context(), asin, req.Price)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidPrice) {
			utils.Error(c, 400, "Invalid price", "Please provide a valid numeric price")
			return
		}
		log.Error().Err(err).Str("asin", asin).Msg("failed to update price")
		utils.Error(c, 500, err.Error(), "")
		return
	}

	c.JSON(200, utils.MessageResponse{
		Success: true,
		Message: "Price updated successfully",
		Data:    update,
	})
}

// parseFloatQuery reads an optional numeric query parameter. Values that fail
// to parse are treated as absent, not as errors.
func parseFloatQuery(c *gin.Context, key string) *float64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

// parseIntQuery reads a positive integer query parameter with a default.
func parseIntQuery(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
