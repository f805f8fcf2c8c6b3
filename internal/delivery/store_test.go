package delivery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"example.com/backstage/services/console/config"
	"example.com/backstage/services/console/internal/restclient"

	"github.com/stretchr/testify/require"
)

// fakeBackend is a stateful in-memory stand-in for the delivery service.
type fakeBackend struct {
	mu         sync.Mutex
	deliveries []Delivery
	pool       []Delivery
	persons    []Person

	statusCalls int
	failLists   bool
}

func (b *fakeBackend) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case r.URL.Path == "/delivery/admin/deliveries" && r.Method == http.MethodGet:
		if b.failLists {
			b.writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"message": "deliveries unavailable"})
			return
		}
		b.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": b.deliveries})

	case r.URL.Path == "/delivery/admin/delivery-pool" && r.Method == http.MethodGet:
		if b.failLists {
			b.writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"message": "pool unavailable"})
			return
		}
		b.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": b.pool})

	case r.URL.Path == "/delivery/admin/available-delivery-persons" && r.Method == http.MethodGet:
		b.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": b.persons})

	case r.URL.Path == "/delivery/admin/assign" && r.Method == http.MethodPost:
		var req AssignRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		for i, d := range b.pool {
			if d.OrderID == req.OrderID {
				d.Status = StatusAssigned
				d.DeliveryPersonID = &req.DeliveryPersonID
				b.deliveries = append(b.deliveries, d)
				b.pool = append(b.pool[:i], b.pool[i+1:]...)
				b.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Delivery assigned", "data": d})
				return
			}
		}
		b.writeJSON(w, http.StatusNotFound, map[string]interface{}{"detail": "Order not found in pool"})

	case r.URL.Path == "/delivery/admin/reassign" && r.Method == http.MethodPut:
		var req ReassignRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		for i := range b.deliveries {
			if b.deliveries[i].ID == req.DeliveryID {
				b.deliveries[i].DeliveryPersonID = &req.DeliveryPersonID
				b.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Delivery reassigned", "data": b.deliveries[i]})
				return
			}
		}
		b.writeJSON(w, http.StatusNotFound, map[string]interface{}{"detail": "Delivery not found"})

	default:
		if r.Method == http.MethodPatch {
			b.statusCalls++
			var req StatusUpdateRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			for i := range b.deliveries {
				if r.URL.Path == "/delivery/admin/"+strconv.FormatInt(b.deliveries[i].ID, 10)+"/status" {
					b.deliveries[i].Status = req.Status
					b.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Status updated", "data": b.deliveries[i]})
					return
				}
			}
		}
		b.writeJSON(w, http.StatusNotFound, map[string]interface{}{"detail": "not found"})
	}
}

func newStoreWithBackend(t *testing.T, backend http.Handler) *Store {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	rc := restclient.New(config.BackendConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
	return NewStore(NewClient(rc), nil, nil, nil)
}

func seededBackend() *fakeBackend {
	person2 := int64(2)
	return &fakeBackend{
		deliveries: []Delivery{
			{ID: 1, OrderID: 101, Status: StatusAssigned, DeliveryPersonID: &person2},
			{ID: 2, OrderID: 102, Status: StatusPicked, DeliveryPersonID: &person2},
			{ID: 3, OrderID: 103, Status: StatusDelivered, DeliveryPersonID: &person2},
		},
		pool: []Delivery{
			{ID: 4, OrderID: 104, Status: StatusAssigned},
		},
		persons: []Person{
			{ID: 2, Name: "Asha", Status: "AVAILABLE"},
			{ID: 3, Name: "Juma", Status: "AVAILABLE"},
		},
	}
}

func TestFetchReplacesCollections(t *testing.T) {
	s := newStoreWithBackend(t, seededBackend())
	ctx := context.Background()

	res := s.FetchAdminDeliveries(ctx, 1, 20, "")
	require.True(t, res.Success)
	require.Len(t, s.AdminDeliveries(), 3)

	res = s.FetchDeliveryPool(ctx, 1, 20)
	require.True(t, res.Success)
	require.Len(t, s.DeliveryPool(), 1)

	require.False(t, s.Loading())
	require.Empty(t, s.Err())
}

func TestLoadingDuringFetch(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	s := newStoreWithBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.Write([]byte(`{"success": true, "data": []}`))
	}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.FetchDeliveryPool(context.Background(), 1, 20)
	}()

	<-entered
	require.True(t, s.Loading(), "store must report loading while the request is in flight")

	close(release)
	<-done
	require.False(t, s.Loading())
}

func TestFailedFetchKeepsCollection(t *testing.T) {
	backend := seededBackend()
	s := newStoreWithBackend(t, backend)
	ctx := context.Background()

	require.True(t, s.FetchAdminDeliveries(ctx, 1, 20, "").Success)
	require.Len(t, s.AdminDeliveries(), 3)

	backend.mu.Lock()
	backend.failLists = true
	backend.mu.Unlock()

	res := s.FetchAdminDeliveries(ctx, 1, 20, "")
	require.False(t, res.Success)
	require.Equal(t, "deliveries unavailable", res.Message)
	require.Equal(t, "deliveries unavailable", s.Err())
	require.Len(t, s.AdminDeliveries(), 3, "failed fetch must not clear the loaded collection")

	s.ClearError()
	require.Empty(t, s.Err())
}

func TestUpdateStatusPatchesInPlace(t *testing.T) {
	s := newStoreWithBackend(t, seededBackend())
	ctx := context.Background()

	require.True(t, s.FetchAdminDeliveries(ctx, 1, 20, "").Success)

	res := s.UpdateAdminStatus(ctx, 2, StatusOutForDelivery, "on the way")
	require.True(t, res.Success)

	list := s.AdminDeliveries()
	require.Len(t, list, 3)
	require.Equal(t, []int64{1, 2, 3}, []int64{list[0].ID, list[1].ID, list[2].ID}, "order preserved")
	require.Equal(t, StatusAssigned, list[0].Status, "siblings untouched")
	require.Equal(t, StatusOutForDelivery, list[1].Status)
	require.Equal(t, StatusDelivered, list[2].Status)
}

func TestPatchDeliveryIdempotent(t *testing.T) {
	s := &Store{}
	s.adminDeliveries = []Delivery{
		{ID: 1, Status: StatusAssigned},
		{ID: 2, Status: StatusPicked},
		{ID: 3, Status: StatusAssigned},
	}

	confirmed := &Delivery{ID: 2, Status: StatusOutForDelivery}
	s.patchDelivery(2, confirmed, StatusOutForDelivery)
	first := append([]Delivery(nil), s.adminDeliveries...)

	s.patchDelivery(2, confirmed, StatusOutForDelivery)
	require.Equal(t, first, s.adminDeliveries, "re-applying the same patch must not change the collection")

	// Patching an ID that is not loaded is a no-op.
	s.patchDelivery(99, &Delivery{ID: 99, Status: StatusCancelled}, StatusCancelled)
	require.Equal(t, first, s.adminDeliveries)
}

func TestInvalidTransitionNeverReachesBackend(t *testing.T) {
	backend := seededBackend()
	s := newStoreWithBackend(t, backend)
	ctx := context.Background()

	require.True(t, s.FetchAdminDeliveries(ctx, 1, 20, "").Success)

	// Delivery 3 is DELIVERED, a terminal state.
	res := s.UpdateAdminStatus(ctx, 3, StatusPicked, "")
	require.False(t, res.Success)
	require.Contains(t, res.Message, "DELIVERED")
	require.Equal(t, res.Message, s.Err())

	backend.mu.Lock()
	calls := backend.statusCalls
	backend.mu.Unlock()
	require.Zero(t, calls, "rejected transition must not produce a network call")

	require.Equal(t, StatusDelivered, s.AdminDeliveries()[2].Status)
}

func TestCancelRemovesFromCollections(t *testing.T) {
	backend := seededBackend()
	mux := http.NewServeMux()
	mux.Handle("/", backend)
	mux.HandleFunc("/delivery/admin/1", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		backend.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Delivery cancelled"})
	})

	s := newStoreWithBackend(t, mux)
	ctx := context.Background()

	require.True(t, s.FetchAdminDeliveries(ctx, 1, 20, "").Success)
	require.Len(t, s.AdminDeliveries(), 3)

	res := s.Cancel(ctx, 1)
	require.True(t, res.Success)

	list := s.AdminDeliveries()
	require.Len(t, list, 2)
	for _, d := range list {
		require.NotEqual(t, int64(1), d.ID)
	}
}

func TestAssignThenReassign(t *testing.T) {
	backend := seededBackend()
	s := newStoreWithBackend(t, backend)
	ctx := context.Background()

	require.True(t, s.FetchAdminDeliveries(ctx, 1, 20, "").Success)
	require.True(t, s.FetchDeliveryPool(ctx, 1, 20).Success)
	require.Len(t, s.DeliveryPool(), 1)

	res := s.Assign(ctx, AssignRequest{OrderID: 104, DeliveryPersonID: 2})
	require.True(t, res.Success)

	// Assignment moved the delivery out of the pool and into the admin view.
	require.Empty(t, s.DeliveryPool())
	list := s.AdminDeliveries()
	require.Len(t, list, 4)

	var assigned *Delivery
	for i := range list {
		if list[i].OrderID == 104 {
			assigned = &list[i]
		}
	}
	require.NotNil(t, assigned)
	require.NotNil(t, assigned.DeliveryPersonID)
	require.Equal(t, int64(2), *assigned.DeliveryPersonID)

	res = s.Reassign(ctx, ReassignRequest{DeliveryID: assigned.ID, DeliveryPersonID: 3})
	require.True(t, res.Success)

	for _, d := range s.AdminDeliveries() {
		if d.OrderID == 104 {
			require.Equal(t, int64(3), *d.DeliveryPersonID)
		}
	}
}

func TestTimelineFallsBackToAdminEndpoint(t *testing.T) {
	var personCalls, adminCalls int
	s := newStoreWithBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/delivery/7/timeline":
			personCalls++
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail": "Delivery not found"}`))
		case "/delivery/admin/7/timeline":
			adminCalls++
			w.Write([]byte(`{"success": true, "data": [{"status": "ASSIGNED"}, {"status": "PICKED"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	res := s.FetchTimeline(context.Background(), 7)

	require.True(t, res.Success)
	require.Equal(t, 1, personCalls)
	require.Equal(t, 1, adminCalls)
	require.Len(t, s.Timeline(), 2)
}

func TestLoadDashboardAllSucceed(t *testing.T) {
	s := newStoreWithBackend(t, seededBackend())

	res := s.LoadDashboard(context.Background(), 1, 20)

	require.True(t, res.Success)
	require.Equal(t, "all data loaded", res.Message)
	require.Len(t, s.AdminDeliveries(), 3)
	require.Len(t, s.DeliveryPool(), 1)
	require.Len(t, s.AvailablePersons(), 2)
	require.False(t, s.Loading())
}

func TestLoadDashboardPartialFailure(t *testing.T) {
	backend := seededBackend()
	backend.failLists = true
	s := newStoreWithBackend(t, backend)

	res := s.LoadDashboard(context.Background(), 1, 20)

	require.False(t, res.Success)
	require.Contains(t, res.Message, "pool unavailable")
	require.Contains(t, res.Message, "deliveries unavailable")
	// The persons endpoint still succeeded and its collection landed.
	require.Len(t, s.AvailablePersons(), 2)
	require.False(t, s.Loading())
}
