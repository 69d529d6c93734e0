package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/partnerlab/partner_api/internal/models"
	"github.com/partnerlab/partner_api/internal/repository"
	"github.com/partnerlab/partner_api/internal/utils"
)

// productURLFormat is the canonical product-page URL template.
const productURLFormat = "https://www.amazon.com/dp/%s"

// CatalogStore is the data access surface the service depends on.
type CatalogStore interface {
	List(ctx context.Context, filter repository.ListFilter) (*repository.ListPage, error)
	GetByASIN(ctx context.Context, asin string) (*models.ProductRow, error)
	UpdatePrice(ctx context.Context, asin string, price float64) error
}

// ListResult is a formatted page of catalog items.
type ListResult struct {
	Items []models.ListItem
	Page  int
	Limit int
	Total int
}

// CatalogService shapes catalog rows into the documented response schema.
type CatalogService struct {
	store CatalogStore
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(store CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

// ListProducts runs the filtered list query and formats each row into the
// list-view shape. An empty result is a valid page, never an error.
func (s *CatalogService) ListProducts(ctx context.Context, filter repository.ListFilter) (*ListResult, error) {
	page, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]models.ListItem, 0, len(page.Rows))
	for i := range page.Rows {
		items = append(items, models.ListItem{Data: formatSummary(&page.Rows[i])})
	}

	return &ListResult{
		Items: items,
		Page:  page.Page,
		Limit: page.Limit,
		Total: page.Total,
	}, nil
}

// GetProduct fetches one product by exact ASIN and formats the full detail
// shape. A missing row maps to ErrProductNotFound.
func (s *CatalogService) GetProduct(ctx context.Context, asin string) (*models.ProductDetail, error) {
	row, err := s.store.GetByASIN(ctx, asin)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	return formatDetail(row), nil
}

// UpdatePrice validates the raw price value and applies the simulated price
// change. Validation failures reject the request before any write.
func (s *CatalogService) UpdatePrice(ctx context.Context, asin string, rawPrice interface{}) (*models.PriceUpdate, error) {
	price, err := parsePrice(rawPrice)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdatePrice(ctx, asin, price); err != nil {
		return nil, err
	}
	return &models.PriceUpdate{
		ASIN:      asin,
		NewPrice:  price,
		UpdatedAt: time.Now().UTC(),
	}, nil
}

// parsePrice coerces a decoded JSON value into a finite price. Numbers and
// numeric strings are accepted; everything else is rejected.
func parsePrice(raw interface{}) (float64, error) {
	var price float64
	switch v := raw.(type) {
	case float64:
		price = v
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, utils.ErrInvalidPrice
		}
		price = f
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, utils.ErrInvalidPrice
		}
		price = f
	default:
		return 0, utils.ErrInvalidPrice
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, utils.ErrInvalidPrice
	}
	return price, nil
}

// formatSummary maps a raw row to the list-view schema. Absent columns pass
// through as null; the flat brand_name column nests into a brand object.
func formatSummary(row *models.ProductRow) models.ProductSummary {
	var brand *models.BrandRef
	if row.BrandName != nil && *row.BrandName != "" {
		brand = &models.BrandRef{Name: *row.BrandName}
	}

	return models.ProductSummary{
		IsValidProduct:         row.IsValidProduct,
		ASIN:                   row.ASIN,
		MarketplaceCountryCode: row.MarketplaceCountryCode,
		MarketplaceCode:        row.MarketplaceCode,
		ParentASIN:             row.ParentASIN,
		Title:                  row.Title,
		Description:            row.Description,
		MainImageURL:           row.MainImageURL,
		Images:                 row.Images,
		Brand:                  brand,
		Price:                  row.Price,
		HasStock:               row.HasStock,
		RatingAverage:          row.RatingAverage,
		ReviewCount:            row.ReviewCount,
		RatingOverview:         row.RatingOverview,
		SalesRanks:             row.SalesRanks,
		Specs:                  row.Specs,
		TopReviews:             row.TopReviews,
		BuyboxOffer:            row.BuyboxOffer,
		Categories:             row.Categories,
		IsPrime:                row.IsPrime,
		IsAmazonChoice:         row.IsAmazonChoice,
		UpdatedAt:              row.UpdatedAt,
	}
}

// formatDetail maps a raw row to the single-product schema and derives the
// synthetic product-page URL from the ASIN.
func formatDetail(row *models.ProductRow) *models.ProductDetail {
	return &models.ProductDetail{
		IsValidProduct:           row.IsValidProduct,
		ASIN:                     row.ASIN,
		MarketplaceCountryCode:   row.MarketplaceCountryCode,
		MarketplaceCode:          row.MarketplaceCode,
		ShippingCountryCode:      row.ShippingCountryCode,
		ShippingLocationCode:     row.ShippingLocationCode,
		PlatformProductID:        row.PlatformProductID,
		MarketplaceProductID:     row.MarketplaceProductID,
		UpdatedAt:                row.UpdatedAt,
		ParentASIN:               row.ParentASIN,
		CurrentASIN:              row.CurrentASIN,
		LandingASIN:              row.LandingASIN,
		UPC:                      row.UPC,
		EAN:                      row.EAN,
		Title:                    row.Title,
		Description:              row.Description,
		MainImageURL:             row.MainImageURL,
		Images:                   row.Images,
		Videos:                   row.Videos,
		URL:                      fmt.Sprintf(productURLFormat, row.ASIN),
		IsClimatePledgeFriendly:  row.IsClimatePledgeFriendly,
		HasProposition65Warning:  row.HasProposition65Warning,
		IsFrequentlyReturnedItem: row.IsFrequentlyReturnedItem,
		IsLimitedTimeDeal:        row.IsLimitedTimeDeal,
		ProductDimensionsText:    row.ProductDimensionsText,
		ProductDimensions:        row.ProductDimensions,
		PackageDimensionsText:    row.PackageDimensionsText,
		PackageDimensions:        row.PackageDimensions,
		Specs:                    row.Specs,
		ReviewCount:              row.ReviewCount,
		RatingAverage:            row.RatingAverage,
		RatingOverview:           row.RatingOverview,
		AnsweredQuestionsCount:   row.AnsweredQuestionsCount,
		ReviewsAISummary:         row.ReviewsAISummary,
		HasAPlusContent:          row.HasAPlusContent,
		HasBrandStory:            row.HasBrandStory,
		IsPrime:                  row.IsPrime,
		IsAmazonChoice:           row.IsAmazonChoice,
		HasBuybox:                row.HasBuybox,
		Brand:                    row.Brand,
		Categories:               row.Categories,
		SalesRanks:               row.SalesRanks,
		BuyboxOffer:              row.BuyboxOffer,
		TopReviews:               row.TopReviews,
	}
}
