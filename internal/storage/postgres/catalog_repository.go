package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/calatours/backoffice/internal/domain"
)

// CatalogRepository serves both the admin CRUD surface and the read-only
// catalog chain used by pricing dispatch.
type CatalogRepository struct {
	base
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{base{pool: pool}}
}

func (r *CatalogRepository) CreateSupplier(ctx context.Context, s domain.Supplier) error {
	_, err := r.exec(ctx, `INSERT INTO suppliers (id, name, created_at) VALUES ($1, $2, $3)`,
		s.ID, s.Name, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("create supplier: %w", err)
	}
	return nil
}

func (r *CatalogRepository) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	rows, err := r.query(ctx, `SELECT id, name, created_at FROM suppliers ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []domain.Supplier
	for rows.Next() {
		var s domain.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}

func (r *CatalogRepository) CreateResource(ctx context.Context, res domain.Resource) error {
	_, err := r.exec(ctx, `INSERT INTO resources (id, supplier_id, name, type, created_at) VALUES ($1, $2, $3, $4, $5)`,
		res.ID, res.SupplierID, res.Name, res.Type, res.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create resource: %w", err)
	}
	return nil
}

func (r *CatalogRepository) ListResourcesBySupplier(ctx context.Context, supplierID string) ([]domain.Resource, error) {
	rows, err := r.query(ctx, `SELECT id, supplier_id, name, type, created_at FROM resources WHERE supplier_id = $1 ORDER BY created_at`, supplierID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	var resources []domain.Resource
	for rows.Next() {
		var res domain.Resource
		if err := rows.Scan(&res.ID, &res.SupplierID, &res.Name, &res.Type, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		resources = append(resources, res)
	}
	return resources, rows.Err()
}

func (r *CatalogRepository) GetResource(ctx context.Context, id string) (domain.Resource, error) {
	var res domain.Resource
	err := r.queryRow(ctx, `SELECT id, supplier_id, name, type, created_at FROM resources WHERE id = $1`, id).
		Scan(&res.ID, &res.SupplierID, &res.Name, &res.Type, &res.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Resource{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Resource{}, domain.ErrResourceNotFound
		}
		return domain.Resource{}, fmt.Errorf("get resource: %w", err)
	}
	return res, nil
}

func (r *CatalogRepository) CreateProduct(ctx context.Context, p domain.Product) error {
	_, err := r.exec(ctx, `INSERT INTO products (id, resource_id, name, created_at) VALUES ($1, $2, $3, $4)`,
		p.ID, p.ResourceID, p.Name, p.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *CatalogRepository) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	err := r.queryRow(ctx, `SELECT id, resource_id, name, created_at FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.ResourceID, &p.Name, &p.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Product{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *CatalogRepository) CreateOffer(ctx context.Context, o domain.Offer) error {
	_, err := r.exec(ctx, `INSERT INTO offers (id, product_id, contract_id, name, created_at) VALUES ($1, $2, $3, $4, $5)`,
		o.ID, o.ProductID, o.ContractID, o.Name, o.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create offer: %w", err)
	}
	return nil
}

func (r *CatalogRepository) GetOffer(ctx context.Context, id string) (domain.Offer, error) {
	var o domain.Offer
	err := r.queryRow(ctx, `SELECT id, product_id, contract_id, name, created_at FROM offers WHERE id = $1`, id).
		Scan(&o.ID, &o.ProductID, &o.ContractID, &o.Name, &o.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Offer{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Offer{}, domain.ErrOfferNotFound
		}
		return domain.Offer{}, fmt.Errorf("get offer: %w", err)
	}
	return o, nil
}

func (r *CatalogRepository) CreateContract(ctx context.Context, c domain.Contract) error {
	const stmt = `
INSERT INTO contracts (
	id, supplier_id, resource_id, name, currency, base_rate, start_date, end_date,
	pre_shoulder_rates, post_shoulder_rates, tax_rate, city_tax_per_person_night,
	resort_fee_per_night, supplier_commission_rate, board_options, created_at
) VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8, $9::numeric[], $10::numeric[], $11::numeric, $12::numeric, $13::numeric, $14::numeric, $15, $16)`

	boardJSON, err := json.Marshal(c.BoardOptions)
	if err != nil {
		return fmt.Errorf("encode board options: %w", err)
	}

	_, err = r.exec(ctx, stmt,
		c.ID,
		c.SupplierID,
		c.ResourceID,
		c.Name,
		c.Currency,
		c.BaseRate.String(),
		c.Start,
		c.End,
		decimalStrings(c.PreShoulderRates),
		decimalStrings(c.PostShoulderRates),
		c.TaxRate.String(),
		c.CityTaxPerPersonNight.String(),
		c.ResortFeePerNight.String(),
		c.SupplierCommissionRate.String(),
		boardJSON,
		c.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create contract: %w", err)
	}
	return nil
}

func (r *CatalogRepository) GetContract(ctx context.Context, id string) (domain.Contract, error) {
	const query = `
SELECT id, supplier_id, resource_id, name, currency, base_rate::text, start_date, end_date,
	pre_shoulder_rates::text[], post_shoulder_rates::text[], tax_rate::text,
	city_tax_per_person_night::text, resort_fee_per_night::text,
	supplier_commission_rate::text, board_options, created_at
FROM contracts
WHERE id = $1`

	var (
		c         domain.Contract
		baseRate  string
		preRates  []string
		postRates []string
		taxRate   string
		cityTax   string
		resortFee string
		commRate  string
		boardJSON []byte
	)
	err := r.queryRow(ctx, query, id).Scan(
		&c.ID, &c.SupplierID, &c.ResourceID, &c.Name, &c.Currency, &baseRate, &c.Start, &c.End,
		&preRates, &postRates, &taxRate, &cityTax, &resortFee, &commRate, &boardJSON, &c.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Contract{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Contract{}, domain.ErrContractNotFound
		}
		return domain.Contract{}, fmt.Errorf("get contract: %w", err)
	}

	if c.BaseRate, err = decimal.NewFromString(baseRate); err != nil {
		return domain.Contract{}, fmt.Errorf("decode base rate: %w", err)
	}
	if c.PreShoulderRates, err = parseDecimals(preRates); err != nil {
		return domain.Contract{}, fmt.Errorf("decode pre-shoulder rates: %w", err)
	}
	if c.PostShoulderRates, err = parseDecimals(postRates); err != nil {
		return domain.Contract{}, fmt.Errorf("decode post-shoulder rates: %w", err)
	}
	if c.TaxRate, err = decimal.NewFromString(taxRate); err != nil {
		return domain.Contract{}, fmt.Errorf("decode tax rate: %w", err)
	}
	if c.CityTaxPerPersonNight, err = decimal.NewFromString(cityTax); err != nil {
		return domain.Contract{}, fmt.Errorf("decode city tax: %w", err)
	}
	if c.ResortFeePerNight, err = decimal.NewFromString(resortFee); err != nil {
		return domain.Contract{}, fmt.Errorf("decode resort fee: %w", err)
	}
	if c.SupplierCommissionRate, err = decimal.NewFromString(commRate); err != nil {
		return domain.Contract{}, fmt.Errorf("decode commission rate: %w", err)
	}
	if len(boardJSON) > 0 {
		if err := json.Unmarshal(boardJSON, &c.BoardOptions); err != nil {
			return domain.Contract{}, fmt.Errorf("decode board options: %w", err)
		}
	}
	return c, nil
}

func (r *CatalogRepository) CreatePool(ctx context.Context, p domain.AllocationPool) error {
	const stmt = `
INSERT INTO allocation_pools (id, resource_id, name, pool_type, capacity, active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.exec(ctx, stmt, p.ID, p.ResourceID, p.Name, p.PoolType, p.Capacity, p.Active, p.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create pool: %w", err)
	}
	return nil
}

func (r *CatalogRepository) ListPoolsByResource(ctx context.Context, resourceID string) ([]domain.AllocationPool, error) {
	rows, err := r.query(ctx, `SELECT `+poolColumns+` FROM allocation_pools WHERE resource_id = $1 ORDER BY created_at`, resourceID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list pools: %w", err)
	}
	defer rows.Close()

	var pools []domain.AllocationPool
	for rows.Next() {
		p, err := scanPool(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pool: %w", err)
		}
		pools = append(pools, p)
	}
	return pools, rows.Err()
}

func decimalStrings(ds []decimal.Decimal) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.String()
	}
	return out
}

func parseDecimals(ss []string) ([]decimal.Decimal, error) {
	if len(ss) == 0 {
		return nil, nil
	}
	out := make([]decimal.Decimal, len(ss))
	for i, s := range ss {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}
