package inventory

import (
	"context"

	"example.com/backstage/services/console/internal/envelope"

	"github.com/stretchr/testify/mock"
)

// mockAPI is a testify mock of the inventory API surface.
type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) ListCompanies(ctx context.Context, page, perPage int) envelope.Envelope[[]Company] {
	args := m.Called(ctx, page, perPage)
	return args.Get(0).(envelope.Envelope[[]Company])
}

func (m *mockAPI) GetCompany(ctx context.Context, id int64) envelope.Envelope[*Company] {
	args := m.Called(ctx, id)
	return args.Get(0).(envelope.Envelope[*Company])
}

func (m *mockAPI) CreateCompany(ctx context.Context, req CompanyRequest) envelope.Envelope[*Company] {
	args := m.Called(ctx, req)
	return args.Get(0).(envelope.Envelope[*Company])
}

func (m *mockAPI) UpdateCompany(ctx context.Context, id int64, req CompanyRequest) envelope.Envelope[*Company] {
	args := m.Called(ctx, id, req)
	return args.Get(0).(envelope.Envelope[*Company])
}

func (m *mockAPI) DeleteCompany(ctx context.Context, id int64) envelope.Envelope[*Company] {
	args := m.Called(ctx, id)
	return args.Get(0).(envelope.Envelope[*Company])
}

func (m *mockAPI) ListSuppliers(ctx context.Context, page, perPage int) envelope.Envelope[[]Supplier] {
	args := m.Called(ctx, page, perPage)
	return args.Get(0).(envelope.Envelope[[]Supplier])
}

func (m *mockAPI) GetSupplier(ctx context.Context, id int64) envelope.Envelope[*Supplier] {
	args := m.Called(ctx, id)
	return args.Get(0).(envelope.Envelope[*Supplier])
}

func (m *mockAPI) CreateSupplier(ctx context.Context, req SupplierRequest) envelope.Envelope[*Supplier] {
	args := m.Called(ctx, req)
	return args.Get(0).(envelope.Envelope[*Supplier])
}

func (m *mockAPI) UpdateSupplier(ctx context.Context, id int64, req SupplierRequest) envelope.Envelope[*Supplier] {
	args := m.Called(ctx, id, req)
	return args.Get(0).(envelope.Envelope[*Supplier])
}

func (m *mockAPI) DeleteSupplier(ctx context.Context, id int64) envelope.Envelope[*Supplier] {
	args := m.Called(ctx, id)
	return args.Get(0).(envelope.Envelope[*Supplier])
}

func (m *mockAPI) ListPurchases(ctx context.Context, page, perPage int, status string) envelope.Envelope[[]Purchase] {
	args := m.Called(ctx, page, perPage, status)
	return args.Get(0).(envelope.Envelope[[]Purchase])
}

func (m *mockAPI) GetPurchase(ctx context.Context, id int64) envelope.Envelope[*Purchase] {
	args := m.Called(ctx, id)
	return args.Get(0).(envelope.Envelope[*Purchase])
}

func (m *mockAPI) CreatePurchase(ctx context.Context, req PurchaseRequest) envelope.Envelope[*Purchase] {
	args := m.Called(ctx, req)
	return args.Get(0).(envelope.Envelope[*Purchase])
}

func (m *mockAPI) UpdatePurchaseStatus(ctx context.Context, id int64, status string) envelope.Envelope[*Purchase] {
	args := m.Called(ctx, id, status)
	return args.Get(0).(envelope.Envelope[*Purchase])
}

func (m *mockAPI) DeletePurchase(ctx context.Context, id int64) envelope.Envelope[*Purchase] {
	args := m.Called(ctx, id)
	return args.Get(0).(envelope.Envelope[*Purchase])
}

func (m *mockAPI) ListReturns(ctx context.Context, page, perPage int) envelope.Envelope[[]PurchaseReturn] {
	args := m.Called(ctx, page, perPage)
	return args.Get(0).(envelope.Envelope[[]PurchaseReturn])
}

func (m *mockAPI) GetReturn(ctx context.Context, id int64) envelope.Envelope[*PurchaseReturn] {
	args := m.Called(ctx, id)
	return args.Get(0).(envelope.Envelope[*PurchaseReturn])
}

func (m *mockAPI) CreateReturn(ctx context.Context, req ReturnRequest) envelope.Envelope[*PurchaseReturn] {
	args := m.Called(ctx, req)
	return args.Get(0).(envelope.Envelope[*PurchaseReturn])
}

func (m *mockAPI) UpdateReturnStatus(ctx context.Context, id int64, status string) envelope.Envelope[*PurchaseReturn] {
	args := m.Called(ctx, id, status)
	return args.Get(0).(envelope.Envelope[*PurchaseReturn])
}

func (m *mockAPI) DeleteReturn(ctx context.Context, id int64) envelope.Envelope[*PurchaseReturn] {
	args := m.Called(ctx, id)
	return args.Get(0).(envelope.Envelope[*PurchaseReturn])
}

func (m *mockAPI) ListBatches(ctx context.Context, page, perPage int) envelope.Envelope[[]Batch] {
	args := m.Called(ctx, page, perPage)
	return args.Get(0).(envelope.Envelope[[]Batch])
}

func (m *mockAPI) GetBatch(ctx context.Context, id int64) envelope.Envelope[*Batch] {
	args := m.Called(ctx, id)
	return args.Get(0).(envelope.Envelope[*Batch])
}

func (m *mockAPI) CreateBatch(ctx context.Context, req BatchRequest) envelope.Envelope[*Batch] {
	args := m.Called(ctx, req)
	return args.Get(0).(envelope.Envelope[*Batch])
}

func (m *mockAPI) UpdateBatch(ctx context.Context, id int64, req BatchRequest) envelope.Envelope[*Batch] {
	args := m.Called(ctx, id, req)
	return args.Get(0).(envelope.Envelope[*Batch])
}

func (m *mockAPI) DeleteBatch(ctx context.Context, id int64) envelope.Envelope[*Batch] {
	args := m.Called(ctx, id)
	return args.Get(0).(envelope.Envelope[*Batch])
}

func (m *mockAPI) ListMovements(ctx context.Context, page, perPage int, movementType string) envelope.Envelope[[]StockMovement] {
	args := m.Called(ctx, page, perPage, movementType)
	return args.Get(0).(envelope.Envelope[[]StockMovement])
}

func (m *mockAPI) MovementsByVariant(ctx context.Context, variantID int64) envelope.Envelope[[]StockMovement] {
	args := m.Called(ctx, variantID)
	return args.Get(0).(envelope.Envelope[[]StockMovement])
}

func (m *mockAPI) GetSummary(ctx context.Context) envelope.Envelope[*StockSummary] {
	args := m.Called(ctx)
	return args.Get(0).(envelope.Envelope[*StockSummary])
}

func (m *mockAPI) AdjustStock(ctx context.Context, req AdjustmentRequest) envelope.Envelope[*StockMovement] {
	args := m.Called(ctx, req)
	return args.Get(0).(envelope.Envelope[*StockMovement])
}
