package inventory

import (
	"context"
	"sync"
	"time"

	"example.com/backstage/services/console/internal/cache"
	"example.com/backstage/services/console/internal/envelope"
	"example.com/backstage/services/console/internal/metrics"
	"example.com/backstage/services/console/internal/store"
	"example.com/backstage/services/console/internal/tracing"

	"github.com/rs/zerolog/log"
)

const snapshotTTL = 24 * time.Hour

// Snapshot is the serializable view of the store's collections.
type Snapshot struct {
	Companies       []Company            `json:"companies"`
	CurrentCompany  *Company             `json:"current_company,omitempty"`
	Suppliers       []Supplier           `json:"suppliers"`
	CurrentSupplier *Supplier            `json:"current_supplier,omitempty"`
	Purchases       []Purchase           `json:"purchases"`
	CurrentPurchase *Purchase            `json:"current_purchase,omitempty"`
	Returns         []PurchaseReturn     `json:"returns"`
	CurrentReturn   *PurchaseReturn      `json:"current_return,omitempty"`
	Batches         []Batch              `json:"batches"`
	CurrentBatch    *Batch               `json:"current_batch,omitempty"`
	Movements       []StockMovement      `json:"movements"`
	Summary         *StockSummary        `json:"summary,omitempty"`
	Pagination      *envelope.Pagination `json:"pagination,omitempty"`
}

// Store is the inventory-domain state store. Same shape and action
// semantics as the delivery store: collections mirror the backend, creates
// append, confirmed updates patch by primary key, deletes remove by
// primary key, and stock adjustments force a re-fetch because they change
// which movements the loaded view contains.
type Store struct {
	api    API
	track  *store.Tracker
	tracer tracing.Tracer
	snaps  *cache.SnapshotCache

	mu              sync.RWMutex
	companies       []Company
	currentCompany  *Company
	suppliers       []Supplier
	currentSupplier *Supplier
	purchases       []Purchase
	currentPurchase *Purchase
	returns         []PurchaseReturn
	currentReturn   *PurchaseReturn
	batches         []Batch
	currentBatch    *Batch
	movements       []StockMovement
	summary         *StockSummary
	pagination      *envelope.Pagination

	lastMovementQuery struct {
		page, perPage int
		movementType  string
	}
}

// NewStore creates the inventory store.
func NewStore(api API, m *metrics.Metrics, tracer tracing.Tracer, snaps *cache.SnapshotCache) *Store {
	return &Store{
		api:    api,
		track:  store.NewTracker("inventory", m),
		tracer: tracer,
		snaps:  snaps,
	}
}

// Loading reports whether any inventory action is in flight.
func (s *Store) Loading() bool { return s.track.Loading() }

// Err returns the last action failure message.
func (s *Store) Err() string { return s.track.Err() }

// ClearError clears the last-error slot.
func (s *Store) ClearError() { s.track.ClearError() }

// Ops returns per-action in-flight state for the ops API.
func (s *Store) Ops() map[string]store.OpState { return s.track.Ops() }

func (s *Store) begin(ctx context.Context, name string) (context.Context, func()) {
	if s.tracer == nil {
		return ctx, func() {}
	}
	txn := s.tracer.StartTransaction("inventory." + name)
	return tracing.ContextWithTransaction(ctx, txn), func() { s.tracer.EndTransaction(txn) }
}

// ---- companies ----

// FetchCompanies replaces the company list.
func (s *Store) FetchCompanies(ctx context.Context, page, perPage int) store.Result {
	ctx, end := s.begin(ctx, "fetch_companies")
	defer end()

	return s.track.Do("fetch_companies", func() (bool, string) {
		env := s.api.ListCompanies(ctx, page, perPage)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		s.companies = env.Data
		s.pagination = env.Pagination
		s.mu.Unlock()

		s.persistSnapshot(ctx)
		return true, env.Message
	})
}

// FetchCompany loads one company into the current-detail slot.
func (s *Store) FetchCompany(ctx context.Context, id int64) store.Result {
	ctx, end := s.begin(ctx, "fetch_company")
	defer end()

	return s.track.Do("fetch_company", func() (bool, string) {
		env := s.api.GetCompany(ctx, id)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		s.currentCompany = env.Data
		s.mu.Unlock()
		return true, env.Message
	})
}

// CreateCompany creates a company and appends the confirmed record.
func (s *Store) CreateCompany(ctx context.Context, req CompanyRequest) store.Result {
	ctx, end := s.begin(ctx, "create_company")
	defer end()

	return s.track.Do("create_company", func() (bool, string) {
		env := s.api.CreateCompany(ctx, req)
		if !env.Success {
			return false, env.Message
		}

		if env.Data != nil {
			s.mu.Lock()
			s.companies = append(s.companies, *env.Data)
			s.mu.Unlock()
		}
		s.persistSnapshot(ctx)
		return true, env.Message
	})
}

// UpdateCompany updates a company and patches it by primary key.
func (s *Store) UpdateCompany(ctx context.Context, id int64, req CompanyRequest) store.Result {
	ctx, end := s.begin(ctx, "update_company")
	defer end()

	return s.track.Do("update_company", func() (bool, string) {
		env := s.api.UpdateCompany(ctx, id, req)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		for i := range s.companies {
			if s.companies[i].ID == id && env.Data != nil {
				s.companies[i] = *env.Data
				break
			}
		}
		if s.currentCompany != nil && s.currentCompany.ID == id && env.Data != nil {
			s.currentCompany = env.Data
		}
		s.mu.Unlock()

		s.persistSnapshot(ctx)
		return true, env.Message
	})
}

// DeleteCompany deletes a company and removes it from the list.
func (s *Store) DeleteCompany(ctx context.Context, id int64) store.Result {
	ctx, end := s.begin(ctx, "delete_company")
	defer end()

	return s.track.Do("delete_company", func() (bool, string) {
		env := s.api.DeleteCompany(ctx, id)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		out := s.companies[:0]
		for _, c := range s.companies {
			if c.ID != id {
				out = append(out, c)
			}
		}
		s.companies = out
		if s.currentCompany != nil && s.currentCompany.ID == id {
			s.currentCompany = nil
		}
		s.mu.Unlock()

		s.persistSnapshot(ctx)
		return true, env.Message
	})
}

// ---- suppliers ----

// FetchSuppliers replaces the supplier list.
func (s *Store) FetchSuppliers(ctx context.Context, page, perPage int) store.Result {
	ctx, end := s.begin(ctx, "fetch_suppliers")
	defer end()

	return s.track.Do("fetch_suppliers", func() (bool, string) {
		env := s.api.ListSuppliers(ctx, page, perPage)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		s.suppliers = env.Data
		s.mu.Unlock()

		s.persistSnapshot(ctx)
		return true, env.Message
	})
}

// FetchSupplier loads one supplier into the current-detail slot.
func (s *Store) FetchSupplier(ctx context.Context, id int64) store.Result {
	ctx, end := s.begin(ctx, "fetch_supplier")
	defer end()

	return s.track.Do("fetch_supplier", func() (bool, string) {
		env := s.api.GetSupplier(ctx, id)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		s.currentSupplier = env.Data
		s.mu.Unlock()
		return true, env.Message
	})
}

// CreateSupplier creates a supplier and appends the confirmed record.
func (s *Store) CreateSupplier(ctx context.Context, req SupplierRequest) store.Result {
	ctx, end := s.begin(ctx, "create_supplier")
	defer end()

	return s.track.Do("create_supplier", func() (bool, string) {
		env := s.api.CreateSupplier(ctx, req)
		if !env.Success {
			return false, env.Message
		}

		if env.Data != nil {
			s.mu.Lock()
			s.suppliers = append(s.suppliers, *env.Data)
			s.mu.Unlock()
		}
		s.persistSnapshot(ctx)
		return true, env.Message
	})
}

// UpdateSupplier updates a supplier and patches it by primary key.
func (s *Store) UpdateSupplier(ctx context.Context, id int64, req SupplierRequest) store.Result {
	ctx, end := s.begin(ctx, "update_supplier")
	defer end()

	return s.track.Do("update_supplier", func() (bool, string) {
		env := s.api.UpdateSupplier(ctx, id, req)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		for i := range s.suppliers {
			if s.suppliers[i].ID == id && env.Data != nil {
				s.suppliers[i] = *env.Data
				break
			}
		}
		if s.currentSupplier != nil && s.currentSupplier.ID == id && env.Data != nil {
			s.currentSupplier = env.Data
		}
		s.mu.Unlock()

		s.persistSnapshot(ctx)
		return true, env.Message
	})
}

// DeleteSupplier deletes a supplier and removes it from the list.
func (s *Store) DeleteSupplier(ctx context.Context, id int64) store.Result {
	ctx, end := s.begin(ctx, "delete_supplier")
	defer end()

	return s.track.Do("delete_supplier", func() (bool, string) {
		env := s.api.DeleteSupplier(ctx, id)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		out := s.suppliers[:0]
		for _, sup := range s.suppliers {
			if sup.ID != id {
				out = append(out, sup)
			}
		}
		s.suppliers = out
		if s.currentSupplier != nil && s.currentSupplier.ID == id {
			s.currentSupplier = nil
		}
		s.mu.Unlock()

		s.persistSnapshot(ctx)
		return true, env.Message
	})
}

// ---- purchases ----

// FetchPurchases replaces the purchase list.
func (s *Store) FetchPurchases(ctx context.Context, page, perPage int, status string) store.Result {
	ctx, end := s.begin(ctx, "fetch_purchases")
	defer end()

	return s.track.Do("fetch_purchases", func() (bool, string) {
		env := s.api.ListPurchases(ctx, page, perPage, status)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		s.purchases = env.Data
		s.mu.Unlock()

		s.persistSnapshot(ctx)
		return true, env.Message
	})
}

// FetchPurchase loads one purchase into the current-detail slot.
func (s *Store) FetchPurchase(ctx context.Context, id int64) store.Result {
	ctx, end := s.begin(ctx, "fetch_purchase")
	defer end()

	return s.track.Do("fetch_purchase", func() (bool, string) {
		env := s.api.GetPurchase(ctx, id)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		s.currentPurchase = env.Data
		s.mu.Unlock()
		return true, env.Message
	})
}

// CreatePurchase creates a purchase and appends the confirmed record.
func (s *Store) CreatePurchase(ctx context.Context, req PurchaseRequest) store.Result {
	ctx, end := s.begin(ctx, "create_purchase")
	defer end()

	return s.track.Do("create_purchase", func() (bool, string) {
		env := s.api.CreatePurchase(ctx, req)
		if !env.Success {
			return false, env.Message
		}

		if env.Data != nil {
			s.mu.Lock()
			s.purchases = append(s.purchases, *env.Data)
			s.mu.Unlock()
		}
		s.persistSnapshot(ctx)
		return true, env.Message
	})
}

// UpdatePurchaseStatus updates a purchase's status and patches it in
// place; receiving a purchase also refreshes the stock view since received
// stock lands in movements and the summary.
func (s *Store) UpdatePurchaseStatus(ctx context.Context, id int64, status string) store.Result {
	ctx, end := s.begin(ctx, "update_purchase_status")
	defer end()

	res := s.track.Do("update_purchase_status", func() (bool, string) {
		env := s.api.UpdatePurchaseStatus(ctx, id, status)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		for i := range s.purchases {
			if s.purchases[i].ID != id {
				continue
			}
			if env.Data != nil {
				s.purchases[i] = *env.Data
			} else {
				s.purchases[i].Status = status
			}
			break
		}
		s.mu.Unlock()

		s.persistSnapshot(ctx)
		return true, env.Message
	})

	if res.Success && status == PurchaseReceived {
		s.refetchStock(ctx)
	}
	return res
}

// DeletePurchase deletes a purchase and removes it from the list.
func (s *Store) DeletePurchase(ctx context.Context, id int64) store.Result {
	ctx, end := s.begin(ctx, "delete_purchase")
	defer end()

	return s.track.Do("delete_purchase", func() (bool, string) {
		env := s.api.DeletePurchase(ctx, id)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		out := s.purchases[:0]
		for _, p := range s.purchases {
			if p.ID != id {
				out = append(out, p)
			}
		}
		s.purchases = out
		if s.currentPurchase != nil && s.currentPurchase.ID == id {
			s.currentPurchase = nil
		}
		s.mu.Unlock()

		s.persistSnapshot(ctx)
		return true, env.Message
	})
}

// ---- returns ----

// FetchReturns replaces the purchase-return list.
func (s *Store) FetchReturns(ctx context.Context, page, perPage int) store.Result {
	ctx, end := s.begin(ctx, "fetch_returns")
	defer end()

	return s.track.Do("fetch_returns", func() (bool, string) {
		env := s.api.ListReturns(ctx, page, perPage)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		s.returns = env.Data
		s.mu.Unlock()
		return true, env.Message
	})
}

// FetchReturn loads one purchase return into the current-detail slot.
func (s *Store) FetchReturn(ctx context.Context, id int64) store.Result {
	ctx, end := s.begin(ctx, "fetch_return")
	defer end()

	return s.track.Do("fetch_return", func() (bool, string) {
		env := s.api.GetReturn(ctx, id)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		s.currentReturn = env.Data
		s.mu.Unlock()
		return true, env.Message
	})
}

// CreateReturn creates a purchase return and appends the confirmed record.
func (s *Store) CreateReturn(ctx context.Context, req ReturnRequest) store.Result {
	ctx, end := s.begin(ctx, "create_return")
	defer end()

	return s.track.Do("create_return", func() (bool, string) {
		env := s.api.CreateReturn(ctx, req)
		if !env.Success {
			return false, env.Message
		}

		if env.Data != nil {
			s.mu.Lock()
			s.returns = append(s.returns, *env.Data)
			s.mu.Unlock()
		}
		return true, env.Message
	})
}

// UpdateReturnStatus updates a return's status and patches it in place.
func (s *Store) UpdateReturnStatus(ctx context.Context, id int64, status string) store.Result {
	ctx, end := s.begin(ctx, "update_return_status")
	defer end()

	return s.track.Do("update_return_status", func() (bool, string) {
		env := s.api.UpdateReturnStatus(ctx, id, status)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		for i := range s.returns {
			if s.returns[i].ID != id {
				continue
			}
			if env.Data != nil {
				s.returns[i] = *env.Data
			} else {
				s.returns[i].Status = status
			}
			break
		}
		if s.currentReturn != nil && s.currentReturn.ID == id {
			if env.Data != nil {
				s.currentReturn = env.Data
			} else {
				s.currentReturn.Status = status
			}
		}
		s.mu.Unlock()
		return true, env.Message
	})
}

// DeleteReturn deletes a purchase return and removes it from the list.
func (s *Store) DeleteReturn(ctx context.Context, id int64) store.Result {
	ctx, end := s.begin(ctx, "delete_return")
	defer end()

	return s.track.Do("delete_return", func() (bool, string) {
		env := s.api.DeleteReturn(ctx, id)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		out := s.returns[:0]
		for _, r := range s.returns {
			if r.ID != id {
				out = append(out, r)
			}
		}
		s.returns = out
		if s.currentReturn != nil && s.currentReturn.ID == id {
			s.currentReturn = nil
		}
		s.mu.Unlock()
		return true, env.Message
	})
}

// ---- batches ----

// FetchBatches replaces the batch list.
func (s *Store) FetchBatches(ctx context.Context, page, perPage int) store.Result {
	ctx, end := s.begin(ctx, "fetch_batches")
	defer end()

	return s.track.Do("fetch_batches", func() (bool, string) {
		env := s.api.ListBatches(ctx, page, perPage)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		s.batches = env.Data
		s.mu.Unlock()
		return true, env.Message
	})
}

// FetchBatch loads one batch into the current-detail slot.
func (s *Store) FetchBatch(ctx context.Context, id int64) store.Result {
	ctx, end := s.begin(ctx, "fetch_batch")
	defer end()

	return s.track.Do("fetch_batch", func() (bool, string) {
		env := s.api.GetBatch(ctx, id)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		s.currentBatch = env.Data
		s.mu.Unlock()
		return true, env.Message
	})
}

// CreateBatch creates a batch and appends the confirmed record.
func (s *Store) CreateBatch(ctx context.Context, req BatchRequest) store.Result {
	ctx, end := s.begin(ctx, "create_batch")
	defer end()

	return s.track.Do("create_batch", func() (bool, string) {
		env := s.api.CreateBatch(ctx, req)
		if !env.Success {
			return false, env.Message
		}

		if env.Data != nil {
			s.mu.Lock()
			s.batches = append(s.batches, *env.Data)
			s.mu.Unlock()
		}
		return true, env.Message
	})
}

// UpdateBatch updates a batch and patches it by primary key.
func (s *Store) UpdateBatch(ctx context.Context, id int64, req BatchRequest) store.Result {
	ctx, end := s.begin(ctx, "update_batch")
	defer end()

	return s.track.Do("update_batch", func() (bool, string) {
		env := s.api.UpdateBatch(ctx, id, req)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		for i := range s.batches {
			if s.batches[i].ID == id && env.Data != nil {
				s.batches[i] = *env.Data
				break
			}
		}
		if s.currentBatch != nil && s.currentBatch.ID == id && env.Data != nil {
			s.currentBatch = env.Data
		}
		s.mu.Unlock()
		return true, env.Message
	})
}

// DeleteBatch deletes a batch and removes it from the list.
func (s *Store) DeleteBatch(ctx context.Context, id int64) store.Result {
	ctx, end := s.begin(ctx, "delete_batch")
	defer end()

	return s.track.Do("delete_batch", func() (bool, string) {
		env := s.api.DeleteBatch(ctx, id)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		out := s.batches[:0]
		for _, b := range s.batches {
			if b.ID != id {
				out = append(out, b)
			}
		}
		s.batches = out
		if s.currentBatch != nil && s.currentBatch.ID == id {
			s.currentBatch = nil
		}
		s.mu.Unlock()
		return true, env.Message
	})
}

// ---- stock ----

// FetchMovements replaces the stock-movement list.
func (s *Store) FetchMovements(ctx context.Context, page, perPage int, movementType string) store.Result {
	ctx, end := s.begin(ctx, "fetch_movements")
	defer end()

	return s.track.Do("fetch_movements", func() (bool, string) {
		env := s.api.ListMovements(ctx, page, perPage, movementType)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		s.movements = env.Data
		s.lastMovementQuery.page = page
		s.lastMovementQuery.perPage = perPage
		s.lastMovementQuery.movementType = movementType
		s.mu.Unlock()
		return true, env.Message
	})
}

// FetchVariantMovements replaces the movement list with one variant's
// history.
func (s *Store) FetchVariantMovements(ctx context.Context, variantID int64) store.Result {
	ctx, end := s.begin(ctx, "fetch_variant_movements")
	defer end()

	return s.track.Do("fetch_variant_movements", func() (bool, string) {
		env := s.api.MovementsByVariant(ctx, variantID)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		s.movements = env.Data
		s.mu.Unlock()
		return true, env.Message
	})
}

// FetchSummary replaces the stock summary.
func (s *Store) FetchSummary(ctx context.Context) store.Result {
	ctx, end := s.begin(ctx, "fetch_summary")
	defer end()

	return s.track.Do("fetch_summary", func() (bool, string) {
		env := s.api.GetSummary(ctx)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		s.summary = env.Data
		s.mu.Unlock()

		s.persistSnapshot(ctx)
		return true, env.Message
	})
}

// AdjustStock posts a manual adjustment, then re-fetches movements and the
// summary: an adjustment adds a movement the loaded page may not contain,
// so a local patch cannot reconcile the view.
func (s *Store) AdjustStock(ctx context.Context, req AdjustmentRequest) store.Result {
	ctx, end := s.begin(ctx, "adjust_stock")
	defer end()

	res := s.track.Do("adjust_stock", func() (bool, string) {
		env := s.api.AdjustStock(ctx, req)
		return env.Success, env.Message
	})
	if res.Success {
		s.refetchStock(ctx)
	}
	return res
}

// LoadOverview fetches the inventory overview screen's collections in one
// concurrent sweep, reporting partial failures together.
func (s *Store) LoadOverview(ctx context.Context, page, perPage int) store.Result {
	return store.RunAll(ctx,
		func(ctx context.Context) store.Result { return s.FetchCompanies(ctx, page, perPage) },
		func(ctx context.Context) store.Result { return s.FetchSuppliers(ctx, page, perPage) },
		func(ctx context.Context) store.Result { return s.FetchPurchases(ctx, page, perPage, "") },
		func(ctx context.Context) store.Result { return s.FetchSummary(ctx) },
	)
}

// Hydrate restores collections from the snapshot cache, if one is there.
func (s *Store) Hydrate(ctx context.Context) {
	if !s.snaps.Enabled() {
		return
	}

	var snap Snapshot
	if err := s.snaps.Get(ctx, cache.InventorySnapshotKey(), &snap); err != nil {
		log.Debug().Err(err).Msg("No inventory snapshot to hydrate from")
		return
	}

	s.mu.Lock()
	s.companies = snap.Companies
	s.suppliers = snap.Suppliers
	s.purchases = snap.Purchases
	s.summary = snap.Summary
	s.mu.Unlock()

	log.Info().
		Int("companies", len(snap.Companies)).
		Int("suppliers", len(snap.Suppliers)).
		Int("purchases", len(snap.Purchases)).
		Msg("Inventory store hydrated from snapshot")
}

// Snapshot returns a copy of the store's current collections.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Companies:       append([]Company(nil), s.companies...),
		CurrentCompany:  s.currentCompany,
		Suppliers:       append([]Supplier(nil), s.suppliers...),
		CurrentSupplier: s.currentSupplier,
		Purchases:       append([]Purchase(nil), s.purchases...),
		CurrentPurchase: s.currentPurchase,
		Returns:         append([]PurchaseReturn(nil), s.returns...),
		CurrentReturn:   s.currentReturn,
		Batches:         append([]Batch(nil), s.batches...),
		CurrentBatch:    s.currentBatch,
		Movements:       append([]StockMovement(nil), s.movements...),
		Summary:         s.summary,
		Pagination:      s.pagination,
	}
}

// Companies returns a copy of the company list.
func (s *Store) Companies() []Company {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Company(nil), s.companies...)
}

// CurrentCompany returns the current-detail company.
func (s *Store) CurrentCompany() *Company {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentCompany
}

// Suppliers returns a copy of the supplier list.
func (s *Store) Suppliers() []Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Supplier(nil), s.suppliers...)
}

// CurrentSupplier returns the current-detail supplier.
func (s *Store) CurrentSupplier() *Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentSupplier
}

// Purchases returns a copy of the purchase list.
func (s *Store) Purchases() []Purchase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Purchase(nil), s.purchases...)
}

// CurrentPurchase returns the current-detail purchase.
func (s *Store) CurrentPurchase() *Purchase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentPurchase
}

// Returns returns a copy of the purchase-return list.
func (s *Store) Returns() []PurchaseReturn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]PurchaseReturn(nil), s.returns...)
}

// CurrentReturn returns the current-detail purchase return.
func (s *Store) CurrentReturn() *PurchaseReturn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentReturn
}

// Batches returns a copy of the batch list.
func (s *Store) Batches() []Batch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Batch(nil), s.batches...)
}

// CurrentBatch returns the current-detail batch.
func (s *Store) CurrentBatch() *Batch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentBatch
}

// Movements returns a copy of the stock-movement list.
func (s *Store) Movements() []StockMovement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]StockMovement(nil), s.movements...)
}

// Summary returns the last fetched stock summary.
func (s *Store) Summary() *StockSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

func (s *Store) refetchStock(ctx context.Context) {
	s.mu.RLock()
	q := s.lastMovementQuery
	s.mu.RUnlock()
	s.FetchMovements(ctx, q.page, q.perPage, q.movementType)
	s.FetchSummary(ctx)
}

func (s *Store) persistSnapshot(ctx context.Context) {
	if !s.snaps.Enabled() {
		return
	}
	if err := s.snaps.Set(ctx, cache.InventorySnapshotKey(), s.Snapshot(), snapshotTTL); err != nil {
		log.Debug().Err(err).Msg("Failed to persist inventory snapshot")
	}
}
