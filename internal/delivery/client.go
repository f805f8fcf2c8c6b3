package delivery

import (
	"context"
	"fmt"

	"example.com/backstage/services/console/internal/envelope"
	"example.com/backstage/services/console/internal/restclient"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// API is the delivery client surface the store depends on. Split out so
// tests can substitute a mock.
type API interface {
	CreateOrderWebhook(ctx context.Context, payload OrderCreatedWebhook) envelope.Envelope[*Delivery]
	ListAvailablePersons(ctx context.Context) envelope.Envelope[[]Person]
	ListDeliveryPool(ctx context.Context, page, perPage int) envelope.Envelope[[]Delivery]
	ListAdminDeliveries(ctx context.Context, page, perPage int, status Status) envelope.Envelope[[]Delivery]
	AssignDelivery(ctx context.Context, req AssignRequest) envelope.Envelope[*Delivery]
	ReassignDelivery(ctx context.Context, req ReassignRequest) envelope.Envelope[*Delivery]
	UpdateAdminStatus(ctx context.Context, id int64, req StatusUpdateRequest) envelope.Envelope[*Delivery]
	UpdateStatus(ctx context.Context, id int64, req StatusUpdateRequest) envelope.Envelope[*Delivery]
	GetAdminTimeline(ctx context.Context, id int64) envelope.Envelope[[]TimelineEntry]
	GetTimeline(ctx context.Context, id int64) envelope.Envelope[[]TimelineEntry]
	CancelDelivery(ctx context.Context, id int64) envelope.Envelope[*Delivery]
	ValidateCompletion(ctx context.Context, id int64) envelope.Envelope[*Delivery]
	TrackOrder(ctx context.Context, orderID int64) envelope.Envelope[*TrackingInfo]
	ListMyOrders(ctx context.Context, page, perPage int) envelope.Envelope[[]Delivery]
	GetMyEarnings(ctx context.Context) envelope.Envelope[*EarningsReport]
	GetPersonPerformance(ctx context.Context, personID int64) envelope.Envelope[*PerformanceReport]
}

// Client wraps the delivery endpoints of the backend. Every method issues
// exactly one request and folds any outcome into an envelope; none of them
// return errors.
type Client struct {
	rc *restclient.Client
}

// NewClient creates a delivery API client.
func NewClient(rc *restclient.Client) *Client {
	return &Client{rc: rc}
}

// CreateOrderWebhook registers a freshly placed order for delivery.
func (c *Client) CreateOrderWebhook(ctx context.Context, payload OrderCreatedWebhook) envelope.Envelope[*Delivery] {
	const failMsg = "Failed to create delivery for order"
	if err := validate.Struct(payload); err != nil {
		return envelope.Fail[*Delivery](envelope.ErrValidation, err.Error())
	}

	resp, err := c.rc.Post(ctx, "/delivery/admin/webhook/order-created", payload)
	if err != nil {
		log.Error().Err(err).Int64("order_id", payload.OrderID).Msg("Order-created webhook failed")
		return envelope.Transport[*Delivery](failMsg)
	}
	return envelope.Extract[*Delivery](resp.StatusCode, resp.Body, "Delivery created", failMsg)
}

// ListAvailablePersons lists delivery persons eligible for assignment.
func (c *Client) ListAvailablePersons(ctx context.Context) envelope.Envelope[[]Person] {
	const failMsg = "Failed to fetch available delivery persons"

	resp, err := c.rc.Get(ctx, "/delivery/admin/available-delivery-persons", nil)
	if err != nil {
		log.Error().Err(err).Msg("Available delivery persons request failed")
		return envelope.FailList[Person](envelope.ErrTransport, failMsg)
	}
	return envelope.ExtractList[Person](resp.StatusCode, resp.Body, 0, 0, "Available delivery persons fetched", failMsg)
}

// ListDeliveryPool lists deliveries waiting for assignment.
func (c *Client) ListDeliveryPool(ctx context.Context, page, perPage int) envelope.Envelope[[]Delivery] {
	const failMsg = "Failed to fetch delivery pool"

	resp, err := c.rc.Get(ctx, "/delivery/admin/delivery-pool", restclient.PageQuery(page, perPage))
	if err != nil {
		log.Error().Err(err).Msg("Delivery pool request failed")
		return envelope.FailList[Delivery](envelope.ErrTransport, failMsg)
	}
	return envelope.ExtractList[Delivery](resp.StatusCode, resp.Body, page, perPage, "Delivery pool fetched", failMsg)
}

// ListAdminDeliveries lists all deliveries, optionally filtered by status.
func (c *Client) ListAdminDeliveries(ctx context.Context, page, perPage int, status Status) envelope.Envelope[[]Delivery] {
	const failMsg = "Failed to fetch deliveries"

	query := restclient.PageQuery(page, perPage)
	if status != "" {
		query.Set("status", string(status))
	}

	resp, err := c.rc.Get(ctx, "/delivery/admin/deliveries", query)
	if err != nil {
		log.Error().Err(err).Msg("Admin deliveries request failed")
		return envelope.FailList[Delivery](envelope.ErrTransport, failMsg)
	}
	return envelope.ExtractList[Delivery](resp.StatusCode, resp.Body, page, perPage, "Deliveries fetched", failMsg)
}

// AssignDelivery assigns a delivery person to an order.
func (c *Client) AssignDelivery(ctx context.Context, req AssignRequest) envelope.Envelope[*Delivery] {
	const failMsg = "Failed to assign delivery person"
	if err := validate.Struct(req); err != nil {
		return envelope.Fail[*Delivery](envelope.ErrValidation, err.Error())
	}

	resp, err := c.rc.Post(ctx, "/delivery/admin/assign", req)
	if err != nil {
		log.Error().Err(err).Int64("order_id", req.OrderID).Msg("Assign request failed")
		return envelope.Transport[*Delivery](failMsg)
	}
	return envelope.Extract[*Delivery](resp.StatusCode, resp.Body, "Delivery person assigned", failMsg)
}

// ReassignDelivery moves a delivery to a different person.
func (c *Client) ReassignDelivery(ctx context.Context, req ReassignRequest) envelope.Envelope[*Delivery] {
	const failMsg = "Failed to reassign delivery person"
	if err := validate.Struct(req); err != nil {
		return envelope.Fail[*Delivery](envelope.ErrValidation, err.Error())
	}

	resp, err := c.rc.Put(ctx, "/delivery/admin/reassign", req)
	if err != nil {
		log.Error().Err(err).Int64("delivery_id", req.DeliveryID).Msg("Reassign request failed")
		return envelope.Transport[*Delivery](failMsg)
	}
	return envelope.Extract[*Delivery](resp.StatusCode, resp.Body, "Delivery person reassigned", failMsg)
}

// UpdateAdminStatus updates a delivery's status through the admin endpoint.
func (c *Client) UpdateAdminStatus(ctx context.Context, id int64, req StatusUpdateRequest) envelope.Envelope[*Delivery] {
	const failMsg = "Failed to update delivery status"
	if err := validate.Struct(req); err != nil {
		return envelope.Fail[*Delivery](envelope.ErrValidation, err.Error())
	}

	resp, err := c.rc.Patch(ctx, fmt.Sprintf("/delivery/admin/%d/status", id), req)
	if err != nil {
		log.Error().Err(err).Int64("delivery_id", id).Msg("Admin status update failed")
		return envelope.Transport[*Delivery](failMsg)
	}
	return envelope.Extract[*Delivery](resp.StatusCode, resp.Body, "Delivery status updated", failMsg)
}

// UpdateStatus updates a delivery's status through the delivery-person
// endpoint.
func (c *Client) UpdateStatus(ctx context.Context, id int64, req StatusUpdateRequest) envelope.Envelope[*Delivery] {
	const failMsg = "Failed to update delivery status"
	if err := validate.Struct(req); err != nil {
		return envelope.Fail[*Delivery](envelope.ErrValidation, err.Error())
	}

	resp, err := c.rc.Patch(ctx, fmt.Sprintf("/delivery/%d/status", id), req)
	if err != nil {
		log.Error().Err(err).Int64("delivery_id", id).Msg("Status update failed")
		return envelope.Transport[*Delivery](failMsg)
	}
	return envelope.Extract[*Delivery](resp.StatusCode, resp.Body, "Delivery status updated", failMsg)
}

// GetAdminTimeline fetches the status history of a delivery (admin view).
func (c *Client) GetAdminTimeline(ctx context.Context, id int64) envelope.Envelope[[]TimelineEntry] {
	const failMsg = "Failed to fetch delivery timeline"

	resp, err := c.rc.Get(ctx, fmt.Sprintf("/delivery/admin/%d/timeline", id), nil)
	if err != nil {
		log.Error().Err(err).Int64("delivery_id", id).Msg("Admin timeline request failed")
		return envelope.FailList[TimelineEntry](envelope.ErrTransport, failMsg)
	}
	return envelope.ExtractList[TimelineEntry](resp.StatusCode, resp.Body, 0, 0, "Delivery timeline fetched", failMsg)
}

// GetTimeline fetches the status history of a delivery.
func (c *Client) GetTimeline(ctx context.Context, id int64) envelope.Envelope[[]TimelineEntry] {
	const failMsg = "Failed to fetch delivery timeline"

	resp, err := c.rc.Get(ctx, fmt.Sprintf("/delivery/%d/timeline", id), nil)
	if err != nil {
		log.Error().Err(err).Int64("delivery_id", id).Msg("Timeline request failed")
		return envelope.FailList[TimelineEntry](envelope.ErrTransport, failMsg)
	}
	return envelope.ExtractList[TimelineEntry](resp.StatusCode, resp.Body, 0, 0, "Delivery timeline fetched", failMsg)
}

// CancelDelivery cancels a delivery through the admin endpoint.
func (c *Client) CancelDelivery(ctx context.Context, id int64) envelope.Envelope[*Delivery] {
	const failMsg = "Failed to cancel delivery"

	resp, err := c.rc.Delete(ctx, fmt.Sprintf("/delivery/admin/%d", id))
	if err != nil {
		log.Error().Err(err).Int64("delivery_id", id).Msg("Cancel request failed")
		return envelope.Transport[*Delivery](failMsg)
	}
	return envelope.Extract[*Delivery](resp.StatusCode, resp.Body, "Delivery cancelled", failMsg)
}

// ValidateCompletion marks a delivered order as validated by an admin.
func (c *Client) ValidateCompletion(ctx context.Context, id int64) envelope.Envelope[*Delivery] {
	const failMsg = "Failed to validate delivery completion"

	resp, err := c.rc.Post(ctx, fmt.Sprintf("/delivery/admin/%d/validate", id), nil)
	if err != nil {
		log.Error().Err(err).Int64("delivery_id", id).Msg("Validate request failed")
		return envelope.Transport[*Delivery](failMsg)
	}
	return envelope.Extract[*Delivery](resp.StatusCode, resp.Body, "Delivery completion validated", failMsg)
}

// TrackOrder fetches the customer-facing tracking view of an order.
func (c *Client) TrackOrder(ctx context.Context, orderID int64) envelope.Envelope[*TrackingInfo] {
	const failMsg = "Failed to track order"

	resp, err := c.rc.Get(ctx, fmt.Sprintf("/delivery/track/%d", orderID), nil)
	if err != nil {
		log.Error().Err(err).Int64("order_id", orderID).Msg("Track request failed")
		return envelope.Transport[*TrackingInfo](failMsg)
	}
	return envelope.Extract[*TrackingInfo](resp.StatusCode, resp.Body, "Order tracking fetched", failMsg)
}

// ListMyOrders lists the calling delivery person's own orders.
func (c *Client) ListMyOrders(ctx context.Context, page, perPage int) envelope.Envelope[[]Delivery] {
	const failMsg = "Failed to fetch your orders"

	resp, err := c.rc.Get(ctx, "/delivery/my-orders", restclient.PageQuery(page, perPage))
	if err != nil {
		log.Error().Err(err).Msg("My-orders request failed")
		return envelope.FailList[Delivery](envelope.ErrTransport, failMsg)
	}
	return envelope.ExtractList[Delivery](resp.StatusCode, resp.Body, page, perPage, "Orders fetched", failMsg)
}

// GetMyEarnings fetches the calling delivery person's earnings report.
func (c *Client) GetMyEarnings(ctx context.Context) envelope.Envelope[*EarningsReport] {
	const failMsg = "Failed to fetch earnings"

	resp, err := c.rc.Get(ctx, "/delivery/my-earnings", nil)
	if err != nil {
		log.Error().Err(err).Msg("My-earnings request failed")
		return envelope.Transport[*EarningsReport](failMsg)
	}
	return envelope.Extract[*EarningsReport](resp.StatusCode, resp.Body, "Earnings fetched", failMsg)
}

// GetPersonPerformance fetches one delivery person's performance report.
func (c *Client) GetPersonPerformance(ctx context.Context, personID int64) envelope.Envelope[*PerformanceReport] {
	const failMsg = "Failed to fetch delivery person performance"

	resp, err := c.rc.Get(ctx, fmt.Sprintf("/delivery/admin/delivery-persons/%d/performance", personID), nil)
	if err != nil {
		log.Error().Err(err).Int64("person_id", personID).Msg("Performance request failed")
		return envelope.Transport[*PerformanceReport](failMsg)
	}
	return envelope.Extract[*PerformanceReport](resp.StatusCode, resp.Body, "Performance fetched", failMsg)
}
