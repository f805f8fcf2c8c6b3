package handlers

import (
	"net/http"

	"example.com/backstage/services/console/internal/delivery"
	"example.com/backstage/services/console/internal/inventory"
	"example.com/backstage/services/console/internal/tracing"
	"example.com/backstage/services/console/internal/vehicle"

	"github.com/gin-gonic/gin"
)

// StateHandler exposes the domain store snapshots for the ops/debug view.
type StateHandler struct {
	deliveryStore  *delivery.Store
	inventoryStore *inventory.Store
	vehicleStore   *vehicle.Store
	tracer         tracing.Tracer
}

// NewStateHandler creates a new state handler
func NewStateHandler(ds *delivery.Store, is *inventory.Store, vs *vehicle.Store, tracer tracing.Tracer) *StateHandler {
	return &StateHandler{
		deliveryStore:  ds,
		inventoryStore: is,
		vehicleStore:   vs,
		tracer:         tracer,
	}
}

// RegisterRoutes registers the state routes
func (h *StateHandler) RegisterRoutes(router *gin.Engine) {
	state := router.Group("/state")
	{
		state.GET("/delivery", h.HandleDeliveryState)
		state.GET("/inventory", h.HandleInventoryState)
		state.GET("/vehicle", h.HandleVehicleState)
		state.GET("/vehicle/log", h.HandleVehicleLog)
	}
}

// begin starts a transaction when a tracer is wired; the server must keep
// answering when tracing failed to initialize.
func (h *StateHandler) begin(name string) func() {
	if h.tracer == nil {
		return func() {}
	}
	txn := h.tracer.StartTransaction(name)
	return func() { h.tracer.EndTransaction(txn) }
}

// HandleDeliveryState returns the delivery store snapshot
func (h *StateHandler) HandleDeliveryState(c *gin.Context) {
	defer h.begin("state-delivery")()

	c.JSON(http.StatusOK, gin.H{
		"loading":  h.deliveryStore.Loading(),
		"error":    h.deliveryStore.Err(),
		"ops":      h.deliveryStore.Ops(),
		"snapshot": h.deliveryStore.Snapshot(),
	})
}

// HandleInventoryState returns the inventory store snapshot
func (h *StateHandler) HandleInventoryState(c *gin.Context) {
	defer h.begin("state-inventory")()

	c.JSON(http.StatusOK, gin.H{
		"loading":  h.inventoryStore.Loading(),
		"error":    h.inventoryStore.Err(),
		"ops":      h.inventoryStore.Ops(),
		"snapshot": h.inventoryStore.Snapshot(),
	})
}

// HandleVehicleState returns the vehicle store snapshot
func (h *StateHandler) HandleVehicleState(c *gin.Context) {
	defer h.begin("state-vehicle")()

	c.JSON(http.StatusOK, gin.H{
		"loading":  h.vehicleStore.Loading(),
		"error":    h.vehicleStore.Err(),
		"ops":      h.vehicleStore.Ops(),
		"snapshot": h.vehicleStore.Snapshot(),
	})
}

// HandleVehicleLog returns the vehicle diagnostic log, newest first
func (h *StateHandler) HandleVehicleLog(c *gin.Context) {
	defer h.begin("state-vehicle-log")()

	c.JSON(http.StatusOK, gin.H{"entries": h.vehicleStore.Log()})
}
