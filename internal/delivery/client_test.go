package delivery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"example.com/backstage/services/console/config"
	"example.com/backstage/services/console/internal/envelope"
	"example.com/backstage/services/console/internal/restclient"

	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	rc := restclient.New(config.BackendConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
	return NewClient(rc)
}

func TestAssignDeliverySuccess(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/delivery/admin/assign", r.URL.Path)
		w.Write([]byte(`{"success": true, "message": "Delivery assigned", "data": {"id": 11, "order_id": 5, "status": "ASSIGNED"}}`))
	})

	env := api.AssignDelivery(context.Background(), AssignRequest{OrderID: 5, DeliveryPersonID: 2})

	require.True(t, env.Success)
	require.NotNil(t, env.Data)
	require.Equal(t, int64(11), env.Data.ID)
	require.Equal(t, StatusAssigned, env.Data.Status)
	require.Equal(t, "Delivery assigned", env.Message)
}

func TestAssignDeliveryStructuredError(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": "Order already has a delivery person"}`))
	})

	env := api.AssignDelivery(context.Background(), AssignRequest{OrderID: 5, DeliveryPersonID: 2})

	require.False(t, env.Success)
	require.Nil(t, env.Data)
	require.Equal(t, "Order already has a delivery person", env.Message)
	require.Equal(t, envelope.ErrServer, env.Kind)
}

func TestAssignDeliveryUnstructuredError(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>Bad Gateway</html>"))
	})

	env := api.AssignDelivery(context.Background(), AssignRequest{OrderID: 5, DeliveryPersonID: 2})

	require.False(t, env.Success)
	require.Nil(t, env.Data)
	require.Equal(t, "Failed to assign delivery person", env.Message)
}

func TestAssignDeliveryNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	rc := restclient.New(config.BackendConfig{BaseURL: srv.URL, Timeout: time.Second})
	api := NewClient(rc)

	env := api.AssignDelivery(context.Background(), AssignRequest{OrderID: 5, DeliveryPersonID: 2})

	require.False(t, env.Success)
	require.Nil(t, env.Data)
	require.Equal(t, envelope.ErrTransport, env.Kind)
	require.Equal(t, "Failed to assign delivery person", env.Message)
}

func TestAssignDeliveryValidationShortCircuits(t *testing.T) {
	called := false
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	env := api.AssignDelivery(context.Background(), AssignRequest{})

	require.False(t, env.Success)
	require.Equal(t, envelope.ErrValidation, env.Kind)
	require.False(t, called, "invalid request must not reach the backend")
}

func TestListAdminDeliveriesSuccess(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/delivery/admin/deliveries", r.URL.Path)
		require.Equal(t, "PICKED", r.URL.Query().Get("status"))
		require.Equal(t, "1", r.URL.Query().Get("page"))
		w.Write([]byte(`{"success": true, "data": [{"id": 1, "status": "PICKED"}, {"id": 2, "status": "PICKED"}], "total": 12}`))
	})

	env := api.ListAdminDeliveries(context.Background(), 1, 10, StatusPicked)

	require.True(t, env.Success)
	require.Len(t, env.Data, 2)
	require.Equal(t, 12, env.Pagination.TotalItems)
	require.Equal(t, 2, env.Pagination.TotalPages)
}

func TestListAdminDeliveriesFailureYieldsEmptyList(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "database unavailable"}`))
	})

	env := api.ListAdminDeliveries(context.Background(), 1, 10, "")

	require.False(t, env.Success)
	require.NotNil(t, env.Data)
	require.Empty(t, env.Data)
	require.Equal(t, "database unavailable", env.Message)
}

func TestTrackOrderNotFound(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/delivery/track/44", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Order not found"}`))
	})

	env := api.TrackOrder(context.Background(), 44)

	require.False(t, env.Success)
	require.Equal(t, envelope.ErrNotFound, env.Kind)
	require.Equal(t, "Order not found", env.Message)
}

func TestGetPersonPerformance(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/delivery/admin/delivery-persons/3/performance", r.URL.Path)
		w.Write([]byte(`{"data": {"person_id": 3, "completed": 40, "on_time_percentage": 92.5}}`))
	})

	env := api.GetPersonPerformance(context.Background(), 3)

	require.True(t, env.Success)
	require.Equal(t, int64(3), env.Data.PersonID)
	require.Equal(t, 40, env.Data.Completed)
}
