package models

import "time"

// ProductRow is the raw row shape returned by catalog queries. Nullable
// columns use pointer types so that absent values survive to the response
// as JSON null instead of zero values. JSON-typed columns and the
// aggregated sub-select results are carried as raw JSON.
type ProductRow struct {
	ASIN                     string     `db:"asin"`
	IsValidProduct           *bool      `db:"is_valid_product"`
	MarketplaceCountryCode   *string    `db:"marketplace_country_code"`
	MarketplaceCode          *string    `db:"marketplace_code"`
	ShippingCountryCode      *string    `db:"shipping_country_code"`
	ShippingLocationCode     *string    `db:"shipping_location_code"`
	PlatformProductID        *string    `db:"platform_product_id"`
	MarketplaceProductID     *string    `db:"marketplace_product_id"`
	ParentASIN               *string    `db:"parent_asin"`
	CurrentASIN              *string    `db:"current_asin"`
	LandingASIN              *string    `db:"landing_asin"`
	UPC                      *string    `db:"upc"`
	EAN                      *string    `db:"ean"`
	Title                    *string    `db:"title"`
	Description              *string    `db:"description"`
	MainImageURL             *string    `db:"main_image_url"`
	Images                   JSONText   `db:"images"`
	Videos                   JSONText   `db:"videos"`
	BrandName                *string    `db:"brand_name"`
	Price                    *float64   `db:"price"`
	HasStock                 *bool      `db:"has_stock"`
	RatingAverage            *float64   `db:"rating_average"`
	ReviewCount              *int       `db:"review_count"`
	RatingOverview           JSONText   `db:"rating_overview"`
	SalesRanks               JSONText   `db:"sales_ranks"`
	Categories               JSONText   `db:"categories"`
	IsPrime                  *bool      `db:"is_prime"`
	IsAmazonChoice           *bool      `db:"is_amazonchoice"`
	IsClimatePledgeFriendly  *bool      `db:"is_climate_pledge_friendly"`
	HasProposition65Warning  *bool      `db:"has_proposition_65_warning"`
	IsFrequentlyReturnedItem *bool      `db:"is_frequently_returned_item"`
	IsLimitedTimeDeal        *bool      `db:"is_limited_time_deal"`
	ProductDimensionsText    *string    `db:"product_dimensions_text"`
	ProductDimensions        JSONText   `db:"product_dimensions"`
	PackageDimensionsText    *string    `db:"package_dimensions_text"`
	PackageDimensions        JSONText   `db:"package_dimensions"`
	AnsweredQuestionsCount   *int       `db:"answered_questions_count"`
	ReviewsAISummary         *string    `db:"reviews_ai_summary"`
	HasAPlusContent          *bool      `db:"has_a_plus_content"`
	HasBrandStory            *bool      `db:"has_brand_story"`
	HasBuybox                *bool      `db:"has_buybox"`
	UpdatedAt                *time.Time `db:"updated_at"`

	// Aggregates computed by correlated sub-selects.
	Specs       JSONText `db:"specs"`
	TopReviews  JSONText `db:"top_reviews"`
	BuyboxOffer JSONText `db:"buybox_offer"`
	Brand       JSONText `db:"brand"`
}

// BrandRef is the reduced brand object used in the list view.
type BrandRef struct {
	Name string `json:"name"`
}

// ProductSummary is the list-view projection of a product.
type ProductSummary struct {
	IsValidProduct         *bool      `json:"is_valid_product"`
	ASIN                   string     `json:"asin"`
	MarketplaceCountryCode *string    `json:"marketplace_country_code"`
	MarketplaceCode        *string    `json:"marketplace_code"`
	ParentASIN             *string    `json:"parent_asin"`
	Title                  *string    `json:"title"`
	Description            *string    `json:"description"`
	MainImageURL           *string    `json:"main_image_url"`
	Images                 JSONText   `json:"images"`
	Brand                  *BrandRef  `json:"brand"`
	Price                  *float64   `json:"price"`
	HasStock               *bool      `json:"has_stock"`
	RatingAverage          *float64   `json:"rating_average"`
	ReviewCount            *int       `json:"review_count"`
	RatingOverview         JSONText   `json:"rating_overview"`
	SalesRanks             JSONText   `json:"sales_ranks"`
	Specs                  JSONText   `json:"specs"`
	TopReviews             JSONText   `json:"top_reviews"`
	BuyboxOffer            JSONText   `json:"buybox_offer"`
	Categories             JSONText   `json:"categories"`
	IsPrime                *bool      `json:"is_prime"`
	IsAmazonChoice         *bool      `json:"is_amazonchoice"`
	UpdatedAt              *time.Time `json:"updated_at"`
}

// ListItem wraps each list-view product under its own data key, matching
// the documented wire contract.
type ListItem struct {
	Data ProductSummary `json:"data"`
}

// ProductDetail is the single-product projection with the full field set.
type ProductDetail struct {
	IsValidProduct           *bool      `json:"is_valid_product"`
	ASIN                     string     `json:"asin"`
	MarketplaceCountryCode   *string    `json:"marketplace_country_code"`
	MarketplaceCode          *string    `json:"marketplace_code"`
	ShippingCountryCode      *string    `json:"shipping_country_code"`
	ShippingLocationCode     *string    `json:"shipping_location_code"`
	PlatformProductID        *string    `json:"platform_product_id"`
	MarketplaceProductID     *string    `json:"marketplace_product_id"`
	UpdatedAt                *time.Time `json:"updated_at"`
	ParentASIN               *string    `json:"parent_asin"`
	CurrentASIN              *string    `json:"current_asin"`
	LandingASIN              *string    `json:"landing_asin"`
	UPC                      *string    `json:"upc"`
	EAN                      *string    `json:"ean"`
	Title                    *string    `json:"title"`
	Description              *string    `json:"description"`
	MainImageURL             *string    `json:"main_image_url"`
	Images                   JSONText   `json:"images"`
	Videos                   JSONText   `json:"videos"`
	URL                      string     `json:"url"`
	IsClimatePledgeFriendly  *bool      `json:"is_climate_pledge_friendly"`
	HasProposition65Warning  *bool      `json:"has_proposition_65_warning"`
	IsFrequentlyReturnedItem *bool      `json:"is_frequently_returned_item"`
	IsLimitedTimeDeal        *bool      `json:"is_limited_time_deal"`
	ProductDimensionsText    *string    `json:"product_dimensions_text"`
	ProductDimensions        JSONText   `json:"product_dimensions"`
	PackageDimensionsText    *string    `json:"package_dimensions_text"`
	PackageDimensions        JSONText   `json:"package_dimensions"`
	Specs                    JSONText   `json:"specs"`
	ReviewCount              *int       `json:"review_count"`
	RatingAverage            *float64   `json:"rating_average"`
	RatingOverview           JSONText   `json:"rating_overview"`
	AnsweredQuestionsCount   *int       `json:"answered_questions_count"`
	ReviewsAISummary         *string    `json:"reviews_ai_summary"`
	HasAPlusContent          *bool      `json:"has_a_plus_content"`
	HasBrandStory            *bool      `json:"has_brand_story"`
	IsPrime                  *bool      `json:"is_prime"`
	IsAmazonChoice           *bool      `json:"is_amazonchoice"`
	HasBuybox                *bool      `json:"has_buybox"`
	Brand                    JSONText   `json:"brand"`
	Categories               JSONText   `json:"categories"`
	SalesRanks               JSONText   `json:"sales_ranks"`
	BuyboxOffer              JSONText   `json:"buybox_offer"`
	TopReviews               JSONText   `json:"top_reviews"`
}

// PriceUpdate is the acknowledgment payload for a simulated price change.
type PriceUpdate struct {
	ASIN      string    `json:"asin"`
	NewPrice  float64   `json:"new_price"`
	UpdatedAt time.Time `json:"updated_at"`
}
