package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/calatours/backoffice/internal/app"
	"github.com/calatours/backoffice/internal/domain"
)

// CatalogAdmin is the surface the admin endpoints need from the admin service.
type CatalogAdmin interface {
	CreateSupplier(ctx context.Context, name string) (domain.Supplier, error)
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
	CreateResource(ctx context.Context, in app.CreateResourceInput) (domain.Resource, error)
	ListResources(ctx context.Context, supplierID string) ([]domain.Resource, error)
	CreateProduct(ctx context.Context, in app.CreateProductInput) (domain.Product, error)
	CreateOffer(ctx context.Context, in app.CreateOfferInput) (domain.Offer, error)
	CreateContract(ctx context.Context, in app.CreateContractInput) (domain.Contract, error)
	CreatePool(ctx context.Context, in app.CreatePoolInput) (domain.AllocationPool, error)
	ListPools(ctx context.Context, resourceID string) ([]domain.AllocationPool, error)
}

func HandleCreateSupplier(svc CatalogAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name string `json:"name"`
		}
		if err := decodeBody(w, r, &req); err != nil {
			return
		}
		supplier, err := svc.CreateSupplier(r.Context(), req.Name)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, supplierResponse{ID: supplier.ID, Name: supplier.Name})
	}
}

func HandleListSuppliers(svc CatalogAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		suppliers, err := svc.ListSuppliers(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		out := make([]supplierResponse, 0, len(suppliers))
		for _, s := range suppliers {
			out = append(out, supplierResponse{ID: s.ID, Name: s.Name})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func HandleCreateResource(svc CatalogAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name string `json:"name"`
			Type string `json:"type"`
		}
		if err := decodeBody(w, r, &req); err != nil {
			return
		}
		resource, err := svc.CreateResource(r.Context(), app.CreateResourceInput{
			SupplierID: r.PathValue("id"),
			Name:       req.Name,
			Type:       domain.ResourceType(req.Type),
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, resourceResponse{
			ID:         resource.ID,
			SupplierID: resource.SupplierID,
			Name:       resource.Name,
			Type:       string(resource.Type),
		})
	}
}

func HandleListResources(svc CatalogAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resources, err := svc.ListResources(r.Context(), r.PathValue("id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		out := make([]resourceResponse, 0, len(resources))
		for _, res := range resources {
			out = append(out, resourceResponse{
				ID:         res.ID,
				SupplierID: res.SupplierID,
				Name:       res.Name,
				Type:       string(res.Type),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func HandleCreateProduct(svc CatalogAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ResourceID string `json:"resource_id"`
			Name       string `json:"name"`
		}
		if err := decodeBody(w, r, &req); err != nil {
			return
		}
		product, err := svc.CreateProduct(r.Context(), app.CreateProductInput{
			ResourceID: req.ResourceID,
			Name:       req.Name,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": product.ID, "name": product.Name})
	}
}

func HandleCreateOffer(svc CatalogAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ProductID  string `json:"product_id"`
			ContractID string `json:"contract_id"`
			Name       string `json:"name"`
		}
		if err := decodeBody(w, r, &req); err != nil {
			return
		}
		offer, err := svc.CreateOffer(r.Context(), app.CreateOfferInput{
			ProductID:  req.ProductID,
			ContractID: req.ContractID,
			Name:       req.Name,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": offer.ID, "name": offer.Name})
	}
}

func HandleCreateContract(svc CatalogAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createContractRequest
		if err := decodeBody(w, r, &req); err != nil {
			return
		}

		in := app.CreateContractInput{
			SupplierID:             req.SupplierID,
			ResourceID:             req.ResourceID,
			Name:                   req.Name,
			Currency:               req.Currency,
			BaseRate:               req.BaseRate,
			PreShoulderRates:       req.PreShoulderRates,
			PostShoulderRates:      req.PostShoulderRates,
			TaxRate:                req.TaxRate,
			CityTaxPerPersonNight:  req.CityTaxPerPersonNight,
			ResortFeePerNight:      req.ResortFeePerNight,
			SupplierCommissionRate: req.SupplierCommissionRate,
			BoardOptions:           req.BoardOptions,
		}
		var err error
		if in.Start, err = time.Parse(dateLayout, req.Start); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidDate, "start must be YYYY-MM-DD")
			return
		}
		if in.End, err = time.Parse(dateLayout, req.End); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidDate, "end must be YYYY-MM-DD")
			return
		}

		contract, err := svc.CreateContract(r.Context(), in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": contract.ID, "name": contract.Name})
	}
}

func HandleCreatePool(svc CatalogAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ResourceID string `json:"resource_id"`
			Name       string `json:"name"`
			PoolType   string `json:"pool_type"`
		}
		if err := decodeBody(w, r, &req); err != nil {
			return
		}
		pool, err := svc.CreatePool(r.Context(), app.CreatePoolInput{
			ResourceID: req.ResourceID,
			Name:       req.Name,
			PoolType:   domain.PoolType(req.PoolType),
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, poolResponse{
			ID:       pool.ID,
			Name:     pool.Name,
			PoolType: string(pool.PoolType),
			Capacity: pool.Capacity,
			Active:   pool.Active,
		})
	}
}

func HandleListPools(svc CatalogAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pools, err := svc.ListPools(r.Context(), r.PathValue("id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		out := make([]poolResponse, 0, len(pools))
		for _, p := range pools {
			out = append(out, poolResponse{
				ID:       p.ID,
				Name:     p.Name,
				PoolType: string(p.PoolType),
				Capacity: p.Capacity,
				Active:   p.Active,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return err
	}
	return nil
}

type supplierResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type resourceResponse struct {
	ID         string `json:"id"`
	SupplierID string `json:"supplier_id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
}

type poolResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	PoolType string `json:"pool_type"`
	Capacity int    `json:"capacity"`
	Active   bool   `json:"active"`
}

type createContractRequest struct {
	SupplierID             string                     `json:"supplier_id"`
	ResourceID             string                     `json:"resource_id"`
	Name                   string                     `json:"name"`
	Currency               string                     `json:"currency"`
	BaseRate               decimal.Decimal            `json:"base_rate"`
	Start                  string                     `json:"start"`
	End                    string                     `json:"end"`
	PreShoulderRates       []decimal.Decimal          `json:"pre_shoulder_rates"`
	PostShoulderRates      []decimal.Decimal          `json:"post_shoulder_rates"`
	TaxRate                decimal.Decimal            `json:"tax_rate"`
	CityTaxPerPersonNight  decimal.Decimal            `json:"city_tax_per_person_night"`
	ResortFeePerNight      decimal.Decimal            `json:"resort_fee_per_night"`
	SupplierCommissionRate decimal.Decimal            `json:"supplier_commission_rate"`
	BoardOptions           map[string]decimal.Decimal `json:"board_options"`
}
