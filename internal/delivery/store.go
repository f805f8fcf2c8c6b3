package delivery

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

// listQuery remembers the parameters of the last list fetch so that
// refresh-after-mutation re-fetches the same view.
type listQuery struct {
	page    int
	perPage int
	status  Status
}

// Snapshot is the serializable view of the store's collections, used for
// cache persistence and the ops API.
type Snapshot struct {
	AdminDeliveries  []Delivery           `json:"admin_deliveries"`
	DeliveryPool     []Delivery           `json:"delivery_pool"`
	AvailablePersons []Person             `json:"available_persons"`
	MyOrders         []Delivery           `json:"my_orders"`
	Timeline         []TimelineEntry      `json:"timeline"`
	Tracking         *TrackingInfo        `json:"tracking,omitempty"`
	Earnings         *EarningsReport      `json:"earnings,omitempty"`
	Performance      *PerformanceReport   `json:"performance,omitempty"`
	Pagination       *envelope.Pagination `json:"pagination,omitempty"`
}

// Store is the delivery-domain state store: a synchronized cache of
// server-owned collections plus one action per backend operation. It is
// never the source of truth; collections are replaced by re-fetch or
// patched by primary key when the backend confirms a mutation.
type Store struct {
	api    API
	track  *store.Tracker
	tracer tracing.Tracer
	snaps  *cache.SnapshotCache

	mu               sync.RWMutex
	adminDeliveries  []Delivery
	deliveryPool     []Delivery
	availablePersons []Person
	myOrders         []Delivery
	timeline         []TimelineEntry
	tracking         *TrackingInfo
	earnings         *EarningsReport
	performance      *PerformanceReport
	pagination       *envelope.Pagination

	lastAdminQuery listQuery
	lastPoolQuery  listQuery
}

// NewStore creates the delivery store. Constructed once at startup and
// passed by reference to consumers.
func NewStore(api API, m *metrics.Metrics, tracer tracing.Tracer, snaps *cache.SnapshotCache) *Store {
	return &Store{
		api:    api,
		track:  store.NewTracker("delivery", m),
		tracer: tracer,
		snaps:  snaps,
	}
}

// Loading reports whether any delivery action is in flight.
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
	txn := s.tracer.StartTransaction("delivery." + name)
	return tracing.ContextWithTransaction(ctx, txn), func() { s.tracer.EndTransaction(txn) }
}

// FetchDeliveryPool replaces the unassigned-deliveries collection.
func (s *Store) FetchDeliveryPool(ctx context.Context, page, perPage int) store.Result {
	ctx, end := s.begin(ctx, "fetch_pool")
	defer end()

	return s.track.Do("fetch_pool", func() (bool, string) {
		env := s.api.ListDeliveryPool(ctx, page, perPage)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		s.deliveryPool = env.Data
		s.lastPoolQuery = listQuery{page: page, perPage: perPage}
		s.mu.Unlock()

		s.persistSnapshot(ctx)
		return true, env.Message
	})
}

// FetchAdminDeliveries replaces the admin delivery list, optionally
// filtered by status.
func (s *Store) FetchAdminDeliveries(ctx context.Context, page, perPage int, status Status) store.Result {
	ctx, end := s.begin(ctx, "fetch_deliveries")
	defer end()

	return s.track.Do("fetch_deliveries", func() (bool, string) {
		env := s.api.ListAdminDeliveries(ctx, page, perPage, status)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		s.adminDeliveries = env.Data
		s.pagination = env.Pagination
		s.lastAdminQuery = listQuery{page: page, perPage: perPage, status: status}
		s.mu.Unlock()

		s.persistSnapshot(ctx)
		return true, env.Message
	})
}

// FetchAvailablePersons replaces the assignable-persons collection.
func (s *Store) FetchAvailablePersons(ctx context.Context) store.Result {
	ctx, end := s.begin(ctx, "fetch_persons")
	defer end()

	return s.track.Do("fetch_persons", func() (bool, string) {
		env := s.api.ListAvailablePersons(ctx)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		s.availablePersons = env.Data
		s.mu.Unlock()

		s.persistSnapshot(ctx)
		return true, env.Message
	})
}

// CreateOrderDelivery registers a new order for delivery and refreshes the
// pool, since the new delivery enters the unassigned view.
func (s *Store) CreateOrderDelivery(ctx context.Context, payload OrderCreatedWebhook) store.Result {
	ctx, end := s.begin(ctx, "create_order")
	defer end()

	res := s.track.Do("create_order", func() (bool, string) {
		env := s.api.CreateOrderWebhook(ctx, payload)
		return env.Success, env.Message
	})
	if res.Success {
		s.refetchPool(ctx)
	}
	return res
}

// Assign assigns a delivery person to an order. Assignment moves the
// delivery out of the pool and into the assigned view, so both lists are
// re-fetched rather than patched.
func (s *Store) Assign(ctx context.Context, req AssignRequest) store.Result {
	ctx, end := s.begin(ctx, "assign")
	defer end()

	res := s.track.Do("assign", func() (bool, string) {
		env := s.api.AssignDelivery(ctx, req)
		return env.Success, env.Message
	})
	if res.Success {
		s.refetchAdmin(ctx)
		s.refetchPool(ctx)
	}
	return res
}

// Reassign moves a delivery to a different person, then re-fetches the
// admin list.
func (s *Store) Reassign(ctx context.Context, req ReassignRequest) store.Result {
	ctx, end := s.begin(ctx, "reassign")
	defer end()

	res := s.track.Do("reassign", func() (bool, string) {
		env := s.api.ReassignDelivery(ctx, req)
		return env.Success, env.Message
	})
	if res.Success {
		s.refetchAdmin(ctx)
	}
	return res
}

// UpdateAdminStatus moves a delivery to a new status through the admin
// endpoint. The transition is validated against the status graph before
// any network call; a confirmed update patches the entry in place since a
// status change cannot move it out of the admin view.
func (s *Store) UpdateAdminStatus(ctx context.Context, id int64, target Status, remark string) store.Result {
	ctx, end := s.begin(ctx, "update_status")
	defer end()

	return s.track.Do("update_status", func() (bool, string) {
		if current, ok := s.lookup(id); ok {
			if err := ValidateTransition(current.Status, target); err != nil {
				return false, err.Error()
			}
		}

		env := s.api.UpdateAdminStatus(ctx, id, StatusUpdateRequest{Status: target, Remark: remark})
		if !env.Success {
			return false, env.Message
		}

		s.patchDelivery(id, env.Data, target)
		s.persistSnapshot(ctx)
		return true, env.Message
	})
}

// UpdateMyStatus moves one of the calling person's own deliveries to a new
// status, validated the same way.
func (s *Store) UpdateMyStatus(ctx context.Context, id int64, target Status, remark string) store.Result {
	ctx, end := s.begin(ctx, "update_my_status")
	defer end()

	return s.track.Do("update_my_status", func() (bool, string) {
		if current, ok := s.lookupMine(id); ok {
			if err := ValidateTransition(current.Status, target); err != nil {
				return false, err.Error()
			}
		}

		env := s.api.UpdateStatus(ctx, id, StatusUpdateRequest{Status: target, Remark: remark})
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		for i := range s.myOrders {
			if s.myOrders[i].ID == id {
				if env.Data != nil {
					s.myOrders[i] = *env.Data
				} else {
					s.myOrders[i].Status = target
				}
				break
			}
		}
		s.mu.Unlock()
		return true, env.Message
	})
}

// Cancel cancels a delivery and removes it from the loaded collections.
func (s *Store) Cancel(ctx context.Context, id int64) store.Result {
	ctx, end := s.begin(ctx, "cancel")
	defer end()

	return s.track.Do("cancel", func() (bool, string) {
		env := s.api.CancelDelivery(ctx, id)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		s.adminDeliveries = removeByID(s.adminDeliveries, id)
		s.deliveryPool = removeByID(s.deliveryPool, id)
		s.mu.Unlock()

		s.persistSnapshot(ctx)
		return true, env.Message
	})
}

// ValidateCompletion marks a delivered order as validated and patches the
// entry with the confirmed record.
func (s *Store) ValidateCompletion(ctx context.Context, id int64) store.Result {
	ctx, end := s.begin(ctx, "validate_completion")
	defer end()

	return s.track.Do("validate_completion", func() (bool, string) {
		env := s.api.ValidateCompletion(ctx, id)
		if !env.Success {
			return false, env.Message
		}
		if env.Data != nil {
			s.patchDelivery(id, env.Data, env.Data.Status)
		}
		return true, env.Message
	})
}

// FetchTimeline loads a delivery's status history. The person-scoped
// endpoint is tried first; a not-found answer falls through to the admin
// endpoint, which covers deliveries outside the caller's own list.
func (s *Store) FetchTimeline(ctx context.Context, id int64) store.Result {
	ctx, end := s.begin(ctx, "fetch_timeline")
	defer end()

	return s.track.Do("fetch_timeline", func() (bool, string) {
		env := s.api.GetTimeline(ctx, id)
		if !env.Success && env.Kind == envelope.ErrNotFound {
			env = s.api.GetAdminTimeline(ctx, id)
		}
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		s.timeline = env.Data
		s.mu.Unlock()
		return true, env.Message
	})
}

// Track loads the customer-facing tracking view of an order.
func (s *Store) Track(ctx context.Context, orderID int64) store.Result {
	ctx, end := s.begin(ctx, "track")
	defer end()

	return s.track.Do("track", func() (bool, string) {
		env := s.api.TrackOrder(ctx, orderID)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		s.tracking = env.Data
		s.mu.Unlock()
		return true, env.Message
	})
}

// FetchMyOrders replaces the calling person's own order list.
func (s *Store) FetchMyOrders(ctx context.Context, page, perPage int) store.Result {
	ctx, end := s.begin(ctx, "fetch_my_orders")
	defer end()

	return s.track.Do("fetch_my_orders", func() (bool, string) {
		env := s.api.ListMyOrders(ctx, page, perPage)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		s.myOrders = env.Data
		s.mu.Unlock()
		return true, env.Message
	})
}

// FetchEarnings loads the calling person's earnings report.
func (s *Store) FetchEarnings(ctx context.Context) store.Result {
	ctx, end := s.begin(ctx, "fetch_earnings")
	defer end()

	return s.track.Do("fetch_earnings", func() (bool, string) {
		env := s.api.GetMyEarnings(ctx)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		s.earnings = env.Data
		s.mu.Unlock()
		return true, env.Message
	})
}

// FetchPerformance loads one delivery person's performance report.
func (s *Store) FetchPerformance(ctx context.Context, personID int64) store.Result {
	ctx, end := s.begin(ctx, "fetch_performance")
	defer end()

	return s.track.Do("fetch_performance", func() (bool, string) {
		env := s.api.GetPersonPerformance(ctx, personID)
		if !env.Success {
			return false, env.Message
		}

		s.mu.Lock()
		s.performance = env.Data
		s.mu.Unlock()
		return true, env.Message
	})
}

// LoadDashboard fetches everything the delivery dashboard needs in one
// concurrent sweep. It succeeds only when every sub-fetch succeeds; a
// partial failure reports the failing messages joined together.
func (s *Store) LoadDashboard(ctx context.Context, page, perPage int) store.Result {
	return store.RunAll(ctx,
		func(ctx context.Context) store.Result { return s.FetchDeliveryPool(ctx, page, perPage) },
		func(ctx context.Context) store.Result { return s.FetchAvailablePersons(ctx) },
		func(ctx context.Context) store.Result { return s.FetchAdminDeliveries(ctx, page, perPage, "") },
	)
}

// Hydrate restores collections from the snapshot cache, if one is there.
// Cache misses and disabled caches are silent.
func (s *Store) Hydrate(ctx context.Context) {
	if !s.snaps.Enabled() {
		return
	}

	var snap Snapshot
	if err := s.snaps.Get(ctx, cache.DeliverySnapshotKey(), &snap); err != nil {
		log.Debug().Err(err).Msg("No delivery snapshot to hydrate from")
		return
	}

	s.mu.Lock()
	s.adminDeliveries = snap.AdminDeliveries
	s.deliveryPool = snap.DeliveryPool
	s.availablePersons = snap.AvailablePersons
	s.mu.Unlock()

	log.Info().
		Int("deliveries", len(snap.AdminDeliveries)).
		Int("pool", len(snap.DeliveryPool)).
		Msg("Delivery store hydrated from snapshot")
}

// Snapshot returns a copy of the store's current collections.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		AdminDeliveries:  append([]Delivery(nil), s.adminDeliveries...),
		DeliveryPool:     append([]Delivery(nil), s.deliveryPool...),
		AvailablePersons: append([]Person(nil), s.availablePersons...),
		MyOrders:         append([]Delivery(nil), s.myOrders...),
		Timeline:         append([]TimelineEntry(nil), s.timeline...),
		Tracking:         s.tracking,
		Earnings:         s.earnings,
		Performance:      s.performance,
		Pagination:       s.pagination,
	}
}

// AdminDeliveries returns a copy of the admin delivery list.
func (s *Store) AdminDeliveries() []Delivery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Delivery(nil), s.adminDeliveries...)
}

// DeliveryPool returns a copy of the unassigned deliveries.
func (s *Store) DeliveryPool() []Delivery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Delivery(nil), s.deliveryPool...)
}

// AvailablePersons returns a copy of the assignable persons.
func (s *Store) AvailablePersons() []Person {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Person(nil), s.availablePersons...)
}

// MyOrders returns a copy of the person-scoped order list.
func (s *Store) MyOrders() []Delivery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Delivery(nil), s.myOrders...)
}

// Timeline returns a copy of the last fetched timeline.
func (s *Store) Timeline() []TimelineEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]TimelineEntry(nil), s.timeline...)
}

// Tracking returns the last fetched tracking view.
func (s *Store) Tracking() *TrackingInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tracking
}

// Earnings returns the last fetched earnings report.
func (s *Store) Earnings() *EarningsReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.earnings
}

// Performance returns the last fetched performance report.
func (s *Store) Performance() *PerformanceReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.performance
}

// lookup finds a delivery by ID across the admin list and the pool.
func (s *Store) lookup(id int64) (Delivery, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.adminDeliveries {
		if d.ID == id {
			return d, true
		}
	}
	for _, d := range s.deliveryPool {
		if d.ID == id {
			return d, true
		}
	}
	return Delivery{}, false
}

func (s *Store) lookupMine(id int64) (Delivery, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.myOrders {
		if d.ID == id {
			return d, true
		}
	}
	return Delivery{}, false
}

// patchDelivery updates one entry in the admin list by primary key,
// preserving order and leaving siblings untouched.
func (s *Store) patchDelivery(id int64, confirmed *Delivery, status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.adminDeliveries {
		if s.adminDeliveries[i].ID != id {
			continue
		}
		if confirmed != nil {
			s.adminDeliveries[i] = *confirmed
		} else {
			s.adminDeliveries[i].Status = status
		}
		return
	}
}

func (s *Store) refetchAdmin(ctx context.Context) {
	s.mu.RLock()
	q := s.lastAdminQuery
	s.mu.RUnlock()
	s.FetchAdminDeliveries(ctx, q.page, q.perPage, q.status)
}

func (s *Store) refetchPool(ctx context.Context) {
	s.mu.RLock()
	q := s.lastPoolQuery
	s.mu.RUnlock()
	s.FetchDeliveryPool(ctx, q.page, q.perPage)
}

func (s *Store) persistSnapshot(ctx context.Context) {
	if !s.snaps.Enabled() {
		return
	}
	if err := s.snaps.Set(ctx, cache.DeliverySnapshotKey(), s.Snapshot(), snapshotTTL); err != nil {
		log.Debug().Err(err).Msg("Failed to persist delivery snapshot")
	}
}

func removeByID(list []Delivery, id int64) []Delivery {
	out := list[:0]
	for _, d := range list {
		if d.ID != id {
			out = append(out, d)
		}
	}
	return out
}
