package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/calatours/backoffice/internal/clock"
	"github.com/calatours/backoffice/internal/domain"
)

type AdminRepository interface {
	CreateSupplier(ctx context.Context, s domain.Supplier) error
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
	CreateResource(ctx context.Context, r domain.Resource) error
	ListResourcesBySupplier(ctx context.Context, supplierID string) ([]domain.Resource, error)
	CreateProduct(ctx context.Context, p domain.Product) error
	CreateOffer(ctx context.Context, o domain.Offer) error
	CreateContract(ctx context.Context, c domain.Contract) error
	GetContract(ctx context.Context, id string) (domain.Contract, error)
	CreatePool(ctx context.Context, p domain.AllocationPool) error
	ListPoolsByResource(ctx context.Context, resourceID string) ([]domain.AllocationPool, error)
}

// AdminService manages the catalog: suppliers, resources, products, offers,
// contracts and allocation pools.
type AdminService struct {
	repo  AdminRepository
	clock clock.Clock
}

func NewAdminService(repo AdminRepository, clk clock.Clock) *AdminService {
	return &AdminService{repo: repo, clock: clk}
}

func (s *AdminService) CreateSupplier(ctx context.Context, name string) (domain.Supplier, error) {
	if name == "" {
		return domain.Supplier{}, domain.ErrNameRequired
	}
	supplier := domain.Supplier{ID: newID(), Name: name, CreatedAt: s.clock.Now()}
	if err := s.repo.CreateSupplier(ctx, supplier); err != nil {
		return domain.Supplier{}, err
	}
	return supplier, nil
}

func (s *AdminService) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	return s.repo.ListSuppliers(ctx)
}

type CreateResourceInput struct {
	SupplierID string
	Name       string
	Type       domain.ResourceType
}

func (s *AdminService) CreateResource(ctx context.Context, in CreateResourceInput) (domain.Resource, error) {
	if in.SupplierID == "" {
		return domain.Resource{}, domain.ErrInvalidID
	}
	if in.Name == "" {
		return domain.Resource{}, domain.ErrNameRequired
	}
	resource := domain.Resource{
		ID:         newID(),
		SupplierID: in.SupplierID,
		Name:       in.Name,
		Type:       in.Type,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.repo.CreateResource(ctx, resource); err != nil {
		return domain.Resource{}, err
	}
	return resource, nil
}

func (s *AdminService) ListResources(ctx context.Context, supplierID string) ([]domain.Resource, error) {
	if supplierID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListResourcesBySupplier(ctx, supplierID)
}

type CreateProductInput struct {
	ResourceID string
	Name       string
}

func (s *AdminService) CreateProduct(ctx context.Context, in CreateProductInput) (domain.Product, error) {
	if in.ResourceID == "" {
		return domain.Product{}, domain.ErrInvalidID
	}
	if in.Name == "" {
		return domain.Product{}, domain.ErrNameRequired
	}
	product := domain.Product{
		ID:         newID(),
		ResourceID: in.ResourceID,
		Name:       in.Name,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

type CreateOfferInput struct {
	ProductID  string
	ContractID string
	Name       string
}

func (s *AdminService) CreateOffer(ctx context.Context, in CreateOfferInput) (domain.Offer, error) {
	if in.ProductID == "" || in.ContractID == "" {
		return domain.Offer{}, domain.ErrInvalidID
	}
	if in.Name == "" {
		return domain.Offer{}, domain.ErrNameRequired
	}
	offer := domain.Offer{
		ID:         newID(),
		ProductID:  in.ProductID,
		ContractID: in.ContractID,
		Name:       in.Name,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.repo.CreateOffer(ctx, offer); err != nil {
		return domain.Offer{}, err
	}
	return offer, nil
}

type CreateContractInput struct {
	SupplierID             string
	ResourceID             string
	Name                   string
	Currency               string
	BaseRate               decimal.Decimal
	Start                  time.Time
	End                    time.Time
	PreShoulderRates       []decimal.Decimal
	PostShoulderRates      []decimal.Decimal
	TaxRate                decimal.Decimal
	CityTaxPerPersonNight  decimal.Decimal
	ResortFeePerNight      decimal.Decimal
	SupplierCommissionRate decimal.Decimal
	BoardOptions           map[string]decimal.Decimal
}

func (s *AdminService) CreateContract(ctx context.Context, in CreateContractInput) (domain.Contract, error) {
	if in.SupplierID == "" || in.ResourceID == "" {
		return domain.Contract{}, domain.ErrInvalidID
	}
	if in.Name == "" {
		return domain.Contract{}, domain.ErrNameRequired
	}
	contract := domain.Contract{
		ID:                     newID(),
		SupplierID:             in.SupplierID,
		ResourceID:             in.ResourceID,
		Name:                   in.Name,
		Currency:               in.Currency,
		BaseRate:               in.BaseRate,
		Start:                  in.Start,
		End:                    in.End,
		PreShoulderRates:       in.PreShoulderRates,
		PostShoulderRates:      in.PostShoulderRates,
		TaxRate:                in.TaxRate,
		CityTaxPerPersonNight:  in.CityTaxPerPersonNight,
		ResortFeePerNight:      in.ResortFeePerNight,
		SupplierCommissionRate: in.SupplierCommissionRate,
		BoardOptions:           in.BoardOptions,
		CreatedAt:              s.clock.Now(),
	}
	if err := s.repo.CreateContract(ctx, contract); err != nil {
		return domain.Contract{}, err
	}
	return contract, nil
}

func (s *AdminService) GetContract(ctx context.Context, id string) (domain.Contract, error) {
	if id == "" {
		return domain.Contract{}, domain.ErrInvalidID
	}
	return s.repo.GetContract(ctx, id)
}

type CreatePoolInput struct {
	ResourceID string
	Name       string
	PoolType   domain.PoolType
}

// CreatePool creates an empty pool. Capacity arrives later through allocation
// entries, never at pool creation.
func (s *AdminService) CreatePool(ctx context.Context, in CreatePoolInput) (domain.AllocationPool, error) {
	if in.ResourceID == "" {
		return domain.AllocationPool{}, domain.ErrInvalidID
	}
	if in.Name == "" {
		return domain.AllocationPool{}, domain.ErrNameRequired
	}
	poolType := in.PoolType
	if poolType == "" {
		poolType = domain.PoolTypeShared
	}
	pool := domain.AllocationPool{
		ID:         newID(),
		ResourceID: in.ResourceID,
		Name:       in.Name,
		PoolType:   poolType,
		Capacity:   0,
		Active:     true,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.repo.CreatePool(ctx, pool); err != nil {
		return domain.AllocationPool{}, err
	}
	return pool, nil
}

func (s *AdminService) ListPools(ctx context.Context, resourceID string) ([]domain.AllocationPool, error) {
	if resourceID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListPoolsByResource(ctx, resourceID)
}
