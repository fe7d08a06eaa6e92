package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calatours/backoffice/internal/domain"
)

type memAdminRepo struct {
	suppliers []domain.Supplier
	resources []domain.Resource
	products  []domain.Product
	offers    []domain.Offer
	contracts map[string]domain.Contract
	pools     []domain.AllocationPool
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{contracts: make(map[string]domain.Contract)}
}

func (r *memAdminRepo) CreateSupplier(_ context.Context, s domain.Supplier) error {
	r.suppliers = append(r.suppliers, s)
	return nil
}

func (r *memAdminRepo) ListSuppliers(context.Context) ([]domain.Supplier, error) {
	return r.suppliers, nil
}

func (r *memAdminRepo) CreateResource(_ context.Context, res domain.Resource) error {
	r.resources = append(r.resources, res)
	return nil
}

func (r *memAdminRepo) ListResourcesBySupplier(_ context.Context, supplierID string) ([]domain.Resource, error) {
	var out []domain.Resource
	for _, res := range r.resources {
		if res.SupplierID == supplierID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *memAdminRepo) CreateProduct(_ context.Context, p domain.Product) error {
	r.products = append(r.products, p)
	return nil
}

func (r *memAdminRepo) CreateOffer(_ context.Context, o domain.Offer) error {
	r.offers = append(r.offers, o)
	return nil
}

func (r *memAdminRepo) CreateContract(_ context.Context, c domain.Contract) error {
	r.contracts[c.ID] = c
	return nil
}

func (r *memAdminRepo) GetContract(_ context.Context, id string) (domain.Contract, error) {
	c, ok := r.contracts[id]
	if !ok {
		return domain.Contract{}, domain.ErrContractNotFound
	}
	return c, nil
}

func (r *memAdminRepo) CreatePool(_ context.Context, p domain.AllocationPool) error {
	r.pools = append(r.pools, p)
	return nil
}

func (r *memAdminRepo) ListPoolsByResource(_ context.Context, resourceID string) ([]domain.AllocationPool, error) {
	var out []domain.AllocationPool
	for _, p := range r.pools {
		if p.ResourceID == resourceID {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestAdminService_CatalogChain(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newMemAdminRepo()
	svc := NewAdminService(repo, newStepClock(testNow))

	supplier, err := svc.CreateSupplier(ctx, "Balearic Stays")
	require.NoError(t, err)
	require.NotEmpty(t, supplier.ID)

	resource, err := svc.CreateResource(ctx, CreateResourceInput{
		SupplierID: supplier.ID,
		Name:       "Hotel Es Vive",
		Type:       domain.ResourceTypeHotel,
	})
	require.NoError(t, err)

	product, err := svc.CreateProduct(ctx, CreateProductInput{ResourceID: resource.ID, Name: "Double Room"})
	require.NoError(t, err)

	contract, err := svc.CreateContract(ctx, CreateContractInput{
		SupplierID: supplier.ID,
		ResourceID: resource.ID,
		Name:       "Summer 2025",
		Currency:   "EUR",
		BaseRate:   mustDec(t, "100"),
		Start:      day(2025, 6, 1),
		End:        day(2025, 6, 10),
	})
	require.NoError(t, err)

	offer, err := svc.CreateOffer(ctx, CreateOfferInput{
		ProductID:  product.ID,
		ContractID: contract.ID,
		Name:       "Double BB",
	})
	require.NoError(t, err)
	require.NotEmpty(t, offer.ID)

	pool, err := svc.CreatePool(ctx, CreatePoolInput{ResourceID: resource.ID, Name: "Main allotment"})
	require.NoError(t, err)
	require.Zero(t, pool.Capacity)
	require.True(t, pool.Active)
	require.Equal(t, domain.PoolTypeShared, pool.PoolType)

	suppliers, err := svc.ListSuppliers(ctx)
	require.NoError(t, err)
	require.Len(t, suppliers, 1)

	resources, err := svc.ListResources(ctx, supplier.ID)
	require.NoError(t, err)
	require.Len(t, resources, 1)

	pools, err := svc.ListPools(ctx, resource.ID)
	require.NoError(t, err)
	require.Len(t, pools, 1)

	got, err := svc.GetContract(ctx, contract.ID)
	require.NoError(t, err)
	require.Equal(t, "Summer 2025", got.Name)
}

func TestAdminService_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewAdminService(newMemAdminRepo(), newStepClock(testNow))

	_, err := svc.CreateSupplier(ctx, "")
	require.ErrorIs(t, err, domain.ErrNameRequired)

	_, err = svc.CreateResource(ctx, CreateResourceInput{Name: "x"})
	require.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.CreateResource(ctx, CreateResourceInput{SupplierID: "s"})
	require.ErrorIs(t, err, domain.ErrNameRequired)

	_, err = svc.CreateProduct(ctx, CreateProductInput{Name: "x"})
	require.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.CreateOffer(ctx, CreateOfferInput{ProductID: "p", Name: "x"})
	require.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.CreateContract(ctx, CreateContractInput{SupplierID: "s", Name: "x"})
	require.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.CreatePool(ctx, CreatePoolInput{ResourceID: "r"})
	require.ErrorIs(t, err, domain.ErrNameRequired)

	_, err = svc.GetContract(ctx, "")
	require.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.ListResources(ctx, "")
	require.ErrorIs(t, err, domain.ErrInvalidID)
}
