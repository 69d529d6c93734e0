package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/partnerlab/partner_api/internal/models"
	"github.com/partnerlab/partner_api/internal/utils"
)

const (
	defaultPage  = 1
	defaultLimit = 50
)

// ListFilter holds the optional filters for catalog list queries. Nil numeric
// fields mean the filter is absent.
type ListFilter struct {
	Category  string
	Brand     string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	Page      int
	Limit     int
}

// ListPage is a page of catalog rows plus the normalized pagination values
// and the total count over the filtered set.
type ListPage struct {
	Rows  []models.ProductRow
	Page  int
	Limit int
	Total int
}

// CatalogRepository handles data access for the product catalog. Every query
// runs under a bounded context so a saturated pool surfaces as a timeout
// instead of blocking the caller indefinitely.
type CatalogRepository struct {
	db           *sqlx.DB
	queryTimeout time.Duration
}

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(db *sqlx.DB, queryTimeout time.Duration) *CatalogRepository {
	return &CatalogRepository{db: db, queryTimeout: queryTimeout}
}

// listSummaryColumns are the product columns projected for the list view.
const listSummaryColumns = `
        p.asin, p.is_valid_product, p.marketplace_country_code, p.marketplace_code,
        p.parent_asin, p.title, p.description, p.main_image_url, p.images,
        p.brand_name, p.price, p.has_stock, p.rating_average, p.review_count,
        p.rating_overview, p.sales_ranks, p.categories, p.is_prime, p.is_amazonchoice,
        p.updated_at`

// detailColumns is the full product column set for the single-product view.
const detailColumns = `
        p.asin, p.is_valid_product, p.marketplace_country_code, p.marketplace_code,
        p.shipping_country_code, p.shipping_location_code, p.platform_product_id,
        p.marketplace_product_id, p.parent_asin, p.current_asin, p.landing_asin,
        p.upc, p.ean, p.title, p.description, p.main_image_url, p.images, p.videos,
        p.brand_name, p.price, p.has_stock, p.rating_average, p.review_count,
        p.rating_overview, p.sales_ranks, p.categories, p.is_prime, p.is_amazonchoice,
        p.is_climate_pledge_friendly, p.has_proposition_65_warning,
        p.is_frequently_returned_item, p.is_limited_time_deal,
        p.product_dimensions_text, p.product_dimensions,
        p.package_dimensions_text, p.package_dimensions,
        p.answered_questions_count, p.reviews_ai_summary,
        p.has_a_plus_content, p.has_brand_story, p.has_buybox, p.updated_at`

// specsAgg aggregates the spec rows for a product into an ordered JSON array.
const specsAgg = `
        (SELECT json_agg(json_build_object(
            'name', s.spec_name, 'value', s.spec_value, 'category', s.spec_category)
            ORDER BY s.id)
         FROM amazon_product_specs s WHERE s.asin = p.asin) AS specs`

// buildListWhere translates the filter set into a parameterized WHERE clause.
// Predicates are appended in a fixed order so parameter positions stay stable.
// All values are bound, never interpolated.
func buildListWhere(filter ListFilter) (string, []interface{}) {
	where := `WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Category != "" {
		where += fmt.Sprintf(" AND p.primary_category = $%d", argIdx)
		args = append(args, filter.Category)
		argIdx++
	}
	if filter.Brand != "" {
		where += fmt.Sprintf(" AND p.brand_name = $%d", argIdx)
		args = append(args, filter.Brand)
		argIdx++
	}
	if filter.MinPrice != nil {
		where += fmt.Sprintf(" AND p.price >= $%d", argIdx)
		args = append(args, *filter.MinPrice)
		argIdx++
	}
	if filter.MaxPrice != nil {
		where += fmt.Sprintf(" AND p.price <= $%d", argIdx)
		args = append(args, *filter.MaxPrice)
		argIdx++
	}
	if filter.MinRating != nil {
		where += fmt.Sprintf(" AND p.rating_average >= $%d", argIdx)
		args = append(args, *filter.MinRating)
		argIdx++
	}

	return where, args
}

// normalizePaging applies the default page/limit and computes the row offset.
func normalizePaging(filter ListFilter) (page, limit, offset int) {
	page = filter.Page
	limit = filter.Limit
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return page, limit, (page - 1) * limit
}

// List returns a page of products matching the filter, newest update first,
// together with the total count over the filtered set.
func (r *CatalogRepository) List(ctx context.Context, filter ListFilter) (*ListPage, error) {
	page, limit, offset := normalizePaging(filter)
	where, args := buildListWhere(filter)

	ctx, cancel := r.opContext(ctx)
	defer cancel()

	countQuery := `SELECT COUNT(1) FROM amazon_products p ` + where
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, r.classify(err)
	}

	listQuery := fmt.Sprintf(`
        SELECT`+listSummaryColumns+`,`+specsAgg+`,
        (SELECT json_agg(t) FROM (
            SELECT r.user_name, r.title, r.content, r.rating, r.verified_purchase
            FROM amazon_product_reviews r
            WHERE r.asin = p.asin
            ORDER BY r.helpful_count DESC
            LIMIT 5) t) AS top_reviews,
        (SELECT json_build_object(
            'price', o.price, 'shipping_fee_amount', o.shipping_fee_amount,
            'has_stock', o.has_stock, 'seller_name', o.seller_name, 'is_prime', o.is_prime)
         FROM amazon_buybox_offers o
         WHERE o.asin = p.asin AND o.is_buybox = TRUE
         LIMIT 1) AS buybox_offer
        FROM amazon_products p
        %s
        ORDER BY p.updated_at DESC
        LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var rows []models.ProductRow
	if err := r.db.SelectContext(ctx, &rows, listQuery, args...); err != nil {
		return nil, r.classify(err)
	}

	return &ListPage{Rows: rows, Page: page, Limit: limit, Total: total}, nil
}

// GetByASIN returns a single product row with the full aggregate set, or
// sql.ErrNoRows when the ASIN does not exist.
func (r *CatalogRepository) GetByASIN(ctx context.Context, asin string) (*models.ProductRow, error) {
	const q = `
        SELECT` + detailColumns + `,` + specsAgg + `,
        (SELECT json_agg(t) FROM (
            SELECT r.marketplace_review_id, r.user_id, r.user_name, r.title, r.content,
                   r.rating, r.review_meta_text, r.verified_purchase, r.helpful_count
            FROM amazon_product_reviews r
            WHERE r.asin = p.asin
            ORDER BY r.helpful_count DESC
            LIMIT 10) t) AS top_reviews,
        (SELECT json_build_object(
            'marketplace_offer_id', o.marketplace_offer_id,
            'price', o.price,
            'shipping_fee_amount', o.shipping_fee_amount,
            'has_stock', o.has_stock,
            'stock', o.stock,
            'condition', o.offer_condition,
            'min_order_quantity', o.min_order_quantity,
            'max_order_quantity', o.max_order_quantity,
            'primary_delivery_date_text', o.primary_delivery_date_text,
            'secondary_delivery_date_text', o.secondary_delivery_date_text,
            'is_buybox', o.is_buybox,
            'is_prime', o.is_prime,
            'is_fba', o.is_fba,
            'is_sba', o.is_sba,
            'seller', json_build_object('name', o.seller_name, 'marketplace_seller_id', o.seller_id))
         FROM amazon_buybox_offers o
         WHERE o.asin = p.asin AND o.is_buybox = TRUE
         LIMIT 1) AS buybox_offer,
        (SELECT json_build_object(
            'name', b.brand_name,
            'marketplace_country_code', b.marketplace_country_code,
            'marketplace_node_id', b.marketplace_node_id,
            'url', b.brand_url)
         FROM amazon_brand_info b
         WHERE b.brand_name = p.brand_name
         LIMIT 1) AS brand
        FROM amazon_products p
        WHERE p.asin = $1`

	ctx, cancel := r.opContext(ctx)
	defer cancel()

	var row models.ProductRow
	if err := r.db.GetContext(ctx, &row, q, asin); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, r.classify(err)
	}
	return &row, nil
}

// UpdatePrice writes the new price to the product row and its buybox offer
// rows inside one transaction, so the two tables cannot diverge. A missing
// ASIN affects zero rows and is not an error.
func (r *CatalogRepository) UpdatePrice(ctx context.Context, asin string, price float64) error {
	ctx, cancel := r.opContext(ctx)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return r.classify(err)
	}
	defer tx.Rollback()

	const productQ = `UPDATE amazon_products SET price = $1, updated_at = NOW() WHERE asin = $2`
	if _, err := tx.ExecContext(ctx, productQ, price, asin); err != nil {
		return r.classify(err)
	}

	const offerQ = `UPDATE amazon_buybox_offers SET price = $1, updated_at = NOW() WHERE asin = $2`
	if _, err := tx.ExecContext(ctx, offerQ, price, asin); err != nil {
		return r.classify(err)
	}

	if err := tx.Commit(); err != nil {
		return r.classify(err)
	}
	return nil
}

// opContext bounds an operation with the configured query timeout.
func (r *CatalogRepository) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// classify maps a deadline overrun to the pool timeout sentinel so handlers
// can distinguish an exhausted pool from other database failures.
func (r *CatalogRepository) classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", utils.ErrQueryTimeout, err)
	}
	return err
}
