package inventory

import (
	"context"
	"fmt"
	"net/url"

	"example.com/backstage/services/console/internal/envelope"
	"example.com/backstage/services/console/internal/restclient"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// API is the inventory client surface the store depends on.
type API interface {
	ListCompanies(ctx context.Context, page, perPage int) envelope.Envelope[[]Company]
	GetCompany(ctx context.Context, id int64) envelope.Envelope[*Company]
	CreateCompany(ctx context.Context, req CompanyRequest) envelope.Envelope[*Company]
	UpdateCompany(ctx context.Context, id int64, req CompanyRequest) envelope.Envelope[*Company]
	DeleteCompany(ctx context.Context, id int64) envelope.Envelope[*Company]

	ListSuppliers(ctx context.Context, page, perPage int) envelope.Envelope[[]Supplier]
	GetSupplier(ctx context.Context, id int64) envelope.Envelope[*Supplier]
	CreateSupplier(ctx context.Context, req SupplierRequest) envelope.Envelope[*Supplier]
	UpdateSupplier(ctx context.Context, id int64, req SupplierRequest) envelope.Envelope[*Supplier]
	DeleteSupplier(ctx context.Context, id int64) envelope.Envelope[*Supplier]

	ListPurchases(ctx context.Context, page, perPage int, status string) envelope.Envelope[[]Purchase]
	GetPurchase(ctx context.Context, id int64) envelope.Envelope[*Purchase]
	CreatePurchase(ctx context.Context, req PurchaseRequest) envelope.Envelope[*Purchase]
	UpdatePurchaseStatus(ctx context.Context, id int64, status string) envelope.Envelope[*Purchase]
	DeletePurchase(ctx context.Context, id int64) envelope.Envelope[*Purchase]

	ListReturns(ctx context.Context, page, perPage int) envelope.Envelope[[]PurchaseReturn]
	GetReturn(ctx context.Context, id int64) envelope.Envelope[*PurchaseReturn]
	CreateReturn(ctx context.Context, req ReturnRequest) envelope.Envelope[*PurchaseReturn]
	UpdateReturnStatus(ctx context.Context, id int64, status string) envelope.Envelope[*PurchaseReturn]
	DeleteReturn(ctx context.Context, id int64) envelope.Envelope[*PurchaseReturn]

	ListBatches(ctx context.Context, page, perPage int) envelope.Envelope[[]Batch]
	GetBatch(ctx context.Context, id int64) envelope.Envelope[*Batch]
	CreateBatch(ctx context.Context, req BatchRequest) envelope.Envelope[*Batch]
	UpdateBatch(ctx context.Context, id int64, req BatchRequest) envelope.Envelope[*Batch]
	DeleteBatch(ctx context.Context, id int64) envelope.Envelope[*Batch]

	ListMovements(ctx context.Context, page, perPage int, movementType string) envelope.Envelope[[]StockMovement]
	MovementsByVariant(ctx context.Context, variantID int64) envelope.Envelope[[]StockMovement]
	GetSummary(ctx context.Context) envelope.Envelope[*StockSummary]
	AdjustStock(ctx context.Context, req AdjustmentRequest) envelope.Envelope[*StockMovement]
}

// Client wraps the inventory endpoints of the backend.
type Client struct {
	rc *restclient.Client
}

// NewClient creates an inventory API client.
func NewClient(rc *restclient.Client) *Client {
	return &Client{rc: rc}
}

// listResource fetches one paged inventory collection.
func listResource[T any](c *Client, ctx context.Context, path, name string, page, perPage int, query url.Values) envelope.Envelope[[]T] {
	failMsg := "Failed to fetch " + name
	if query == nil {
		query = restclient.PageQuery(page, perPage)
	}

	resp, err := c.rc.Get(ctx, path, query)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Inventory list request failed")
		return envelope.FailList[T](envelope.ErrTransport, failMsg)
	}
	return envelope.ExtractList[T](resp.StatusCode, resp.Body, page, perPage, "Fetched "+name, failMsg)
}

// getResource fetches one inventory entity by ID.
func getResource[T any](c *Client, ctx context.Context, path, name string) envelope.Envelope[*T] {
	failMsg := "Failed to fetch " + name

	resp, err := c.rc.Get(ctx, path, nil)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Inventory get request failed")
		return envelope.Transport[*T](failMsg)
	}
	return envelope.Extract[*T](resp.StatusCode, resp.Body, "Fetched "+name, failMsg)
}

// writeResource issues one mutating call with a validated body.
func writeResource[T any](c *Client, ctx context.Context, method, path, okMsg, failMsg string, body interface{}) envelope.Envelope[*T] {
	if body != nil {
		if err := validate.Struct(body); err != nil {
			return envelope.Fail[*T](envelope.ErrValidation, err.Error())
		}
	}

	resp, err := c.rc.Do(ctx, method, path, nil, body)
	if err != nil {
		log.Error().Err(err).Str("path", path).Str("method", method).Msg("Inventory write request failed")
		return envelope.Transport[*T](failMsg)
	}
	return envelope.Extract[*T](resp.StatusCode, resp.Body, okMsg, failMsg)
}

// ListCompanies lists companies.
func (c *Client) ListCompanies(ctx context.Context, page, perPage int) envelope.Envelope[[]Company] {
	return listResource[Company](c, ctx, "/inventory/companies", "companies", page, perPage, nil)
}

// GetCompany fetches one company.
func (c *Client) GetCompany(ctx context.Context, id int64) envelope.Envelope[*Company] {
	return getResource[Company](c, ctx, fmt.Sprintf("/inventory/companies/%d", id), "company")
}

// CreateCompany creates a company.
func (c *Client) CreateCompany(ctx context.Context, req CompanyRequest) envelope.Envelope[*Company] {
	return writeResource[Company](c, ctx, "POST", "/inventory/companies", "Company created", "Failed to create company", req)
}

// UpdateCompany updates a company.
func (c *Client) UpdateCompany(ctx context.Context, id int64, req CompanyRequest) envelope.Envelope[*Company] {
	return writeResource[Company](c, ctx, "PATCH", fmt.Sprintf("/inventory/companies/%d", id), "Company updated", "Failed to update company", req)
}

// DeleteCompany deletes a company.
func (c *Client) DeleteCompany(ctx context.Context, id int64) envelope.Envelope[*Company] {
	return writeResource[Company](c, ctx, "DELETE", fmt.Sprintf("/inventory/companies/%d", id), "Company deleted", "Failed to delete company", nil)
}

// ListSuppliers lists suppliers.
func (c *Client) ListSuppliers(ctx context.Context, page, perPage int) envelope.Envelope[[]Supplier] {
	return listResource[Supplier](c, ctx, "/inventory/suppliers", "suppliers", page, perPage, nil)
}

// GetSupplier fetches one supplier.
func (c *Client) GetSupplier(ctx context.Context, id int64) envelope.Envelope[*Supplier] {
	return getResource[Supplier](c, ctx, fmt.Sprintf("/inventory/suppliers/%d", id), "supplier")
}

// CreateSupplier creates a supplier.
func (c *Client) CreateSupplier(ctx context.Context, req SupplierRequest) envelope.Envelope[*Supplier] {
	return writeResource[Supplier](c, ctx, "POST", "/inventory/suppliers", "Supplier created", "Failed to create supplier", req)
}

// UpdateSupplier updates a supplier.
func (c *Client) UpdateSupplier(ctx context.Context, id int64, req SupplierRequest) envelope.Envelope[*Supplier] {
	return writeResource[Supplier](c, ctx, "PATCH", fmt.Sprintf("/inventory/suppliers/%d", id), "Supplier updated", "Failed to update supplier", req)
}

// DeleteSupplier deletes a supplier.
func (c *Client) DeleteSupplier(ctx context.Context, id int64) envelope.Envelope[*Supplier] {
	return writeResource[Supplier](c, ctx, "DELETE", fmt.Sprintf("/inventory/suppliers/%d", id), "Supplier deleted", "Failed to delete supplier", nil)
}

// ListPurchases lists purchases, optionally filtered by status.
func (c *Client) ListPurchases(ctx context.Context, page, perPage int, status string) envelope.Envelope[[]Purchase] {
	query := restclient.PageQuery(page, perPage)
	if status != "" {
		query.Set("status", status)
	}
	return listResource[Purchase](c, ctx, "/inventory/purchases", "purchases", page, perPage, query)
}

// GetPurchase fetches one purchase with its line items.
func (c *Client) GetPurchase(ctx context.Context, id int64) envelope.Envelope[*Purchase] {
	return getResource[Purchase](c, ctx, fmt.Sprintf("/inventory/purchases/%d", id), "purchase")
}

// CreatePurchase creates a purchase.
func (c *Client) CreatePurchase(ctx context.Context, req PurchaseRequest) envelope.Envelope[*Purchase] {
	return writeResource[Purchase](c, ctx, "POST", "/inventory/purchases", "Purchase created", "Failed to create purchase", req)
}

// UpdatePurchaseStatus updates a purchase's status.
func (c *Client) UpdatePurchaseStatus(ctx context.Context, id int64, status string) envelope.Envelope[*Purchase] {
	return writeResource[Purchase](c, ctx, "PATCH", fmt.Sprintf("/inventory/purchases/%d", id), "Purchase status updated", "Failed to update purchase status", StatusRequest{Status: status})
}

// DeletePurchase deletes a purchase.
func (c *Client) DeletePurchase(ctx context.Context, id int64) envelope.Envelope[*Purchase] {
	return writeResource[Purchase](c, ctx, "DELETE", fmt.Sprintf("/inventory/purchases/%d", id), "Purchase deleted", "Failed to delete purchase", nil)
}

// ListReturns lists purchase returns.
func (c *Client) ListReturns(ctx context.Context, page, perPage int) envelope.Envelope[[]PurchaseReturn] {
	return listResource[PurchaseReturn](c, ctx, "/inventory/returns", "purchase returns", page, perPage, nil)
}

// GetReturn fetches one purchase return.
func (c *Client) GetReturn(ctx context.Context, id int64) envelope.Envelope[*PurchaseReturn] {
	return getResource[PurchaseReturn](c, ctx, fmt.Sprintf("/inventory/returns/%d", id), "purchase return")
}

// CreateReturn creates a purchase return.
func (c *Client) CreateReturn(ctx context.Context, req ReturnRequest) envelope.Envelope[*PurchaseReturn] {
	return writeResource[PurchaseReturn](c, ctx, "POST", "/inventory/returns", "Purchase return created", "Failed to create purchase return", req)
}

// UpdateReturnStatus updates a purchase return's status.
func (c *Client) UpdateReturnStatus(ctx context.Context, id int64, status string) envelope.Envelope[*PurchaseReturn] {
	return writeResource[PurchaseReturn](c, ctx, "PATCH", fmt.Sprintf("/inventory/returns/%d", id), "Return status updated", "Failed to update return status", StatusRequest{Status: status})
}

// DeleteReturn deletes a purchase return.
func (c *Client) DeleteReturn(ctx context.Context, id int64) envelope.Envelope[*PurchaseReturn] {
	return writeResource[PurchaseReturn](c, ctx, "DELETE", fmt.Sprintf("/inventory/returns/%d", id), "Purchase return deleted", "Failed to delete purchase return", nil)
}

// ListBatches lists batches.
func (c *Client) ListBatches(ctx context.Context, page, perPage int) envelope.Envelope[[]Batch] {
	return listResource[Batch](c, ctx, "/inventory/batches", "batches", page, perPage, nil)
}

// GetBatch fetches one batch.
func (c *Client) GetBatch(ctx context.Context, id int64) envelope.Envelope[*Batch] {
	return getResource[Batch](c, ctx, fmt.Sprintf("/inventory/batches/%d", id), "batch")
}

// CreateBatch creates a batch.
func (c *Client) CreateBatch(ctx context.Context, req BatchRequest) envelope.Envelope[*Batch] {
	return writeResource[Batch](c, ctx, "POST", "/inventory/batches", "Batch created", "Failed to create batch", req)
}

// UpdateBatch updates a batch.
func (c *Client) UpdateBatch(ctx context.Context, id int64, req BatchRequest) envelope.Envelope[*Batch] {
	return writeResource[Batch](c, ctx, "PATCH", fmt.Sprintf("/inventory/batches/%d", id), "Batch updated", "Failed to update batch", req)
}

// DeleteBatch deletes a batch.
func (c *Client) DeleteBatch(ctx context.Context, id int64) envelope.Envelope[*Batch] {
	return writeResource[Batch](c, ctx, "DELETE", fmt.Sprintf("/inventory/batches/%d", id), "Batch deleted", "Failed to delete batch", nil)
}

// ListMovements lists stock movements, optionally filtered by type.
func (c *Client) ListMovements(ctx context.Context, page, perPage int, movementType string) envelope.Envelope[[]StockMovement] {
	query := restclient.PageQuery(page, perPage)
	if movementType != "" {
		query.Set("type", movementType)
	}
	return listResource[StockMovement](c, ctx, "/inventory/stock/movements", "stock movements", page, perPage, query)
}

// MovementsByVariant lists all movements of one variant.
func (c *Client) MovementsByVariant(ctx context.Context, variantID int64) envelope.Envelope[[]StockMovement] {
	return listResource[StockMovement](c, ctx, fmt.Sprintf("/inventory/stock/movements/variant/%d", variantID), "variant movements", 0, 0, url.Values{})
}

// GetSummary fetches the aggregated stock position.
func (c *Client) GetSummary(ctx context.Context) envelope.Envelope[*StockSummary] {
	return getResource[StockSummary](c, ctx, "/inventory/stock/summary", "stock summary")
}

// AdjustStock posts a manual stock adjustment.
func (c *Client) AdjustStock(ctx context.Context, req AdjustmentRequest) envelope.Envelope[*StockMovement] {
	return writeResource[StockMovement](c, ctx, "POST", "/inventory/stock/adjust", "Stock adjusted", "Failed to adjust stock", req)
}
