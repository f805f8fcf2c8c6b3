package delivery

import "time"

// Delivery represents one delivery assignment as the backend reports it.
// The console never originates identifiers; everything here is server-owned.
type Delivery struct {
	ID               int64      `json:"id"`
	OrderID          int64      `json:"order_id"`
	DeliveryPersonID *int64     `json:"delivery_person_id,omitempty"`
	Status           Status     `json:"status"`
	AssignedAt       *time.Time `json:"assigned_at,omitempty"`
	DeliveredAt      *time.Time `json:"delivered_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Person is a delivery person eligible for assignment. Read-only.
type Person struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Status string  `json:"status"`
	Rating float64 `json:"rating"`
}

// TimelineEntry is one status change in a delivery's history.
type TimelineEntry struct {
	Status    Status    `json:"status"`
	Remark    string    `json:"remark,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TrackingInfo is the customer-facing view of an order's delivery.
type TrackingInfo struct {
	OrderID           int64      `json:"order_id"`
	Status            Status     `json:"status"`
	DeliveryPerson    string     `json:"delivery_person,omitempty"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty"`
}

// EarningsReport summarizes a delivery person's earnings.
type EarningsReport struct {
	TotalDeliveries int     `json:"total_deliveries"`
	TotalEarnings   float64 `json:"total_earnings"`
	PendingPayout   float64 `json:"pending_payout"`
}

// PerformanceReport summarizes a delivery person's delivery record.
type PerformanceReport struct {
	PersonID            int64   `json:"person_id"`
	Completed           int     `json:"completed"`
	Cancelled           int     `json:"cancelled"`
	AverageRating       float64 `json:"average_rating"`
	OnTimePercentage    float64 `json:"on_time_percentage"`
	AverageDeliveryMins float64 `json:"average_delivery_mins"`
}

// OrderCreatedWebhook is the body posted when an order is placed.
type OrderCreatedWebhook struct {
	OrderID int64  `json:"order_id" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// AssignRequest assigns a delivery person to an order.
type AssignRequest struct {
	OrderID          int64 `json:"order_id" validate:"required"`
	DeliveryPersonID int64 `json:"delivery_person_id" validate:"required"`
}

// ReassignRequest moves a delivery to a different person.
type ReassignRequest struct {
	DeliveryID       int64 `json:"delivery_id" validate:"required"`
	DeliveryPersonID int64 `json:"delivery_person_id" validate:"required"`
}

// StatusUpdateRequest is the body of a status transition call.
type StatusUpdateRequest struct {
	Status Status `json:"status" validate:"required"`
	Remark string `json:"remark,omitempty"`
}
