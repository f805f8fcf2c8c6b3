package vehicle

import (
	"context"

	"example.com/backstage/services/console/internal/envelope"
	"example.com/backstage/services/console/internal/restclient"

	"github.com/rs/zerolog/log"
)

// API is the vehicle client surface the store depends on. All endpoints
// are read-only; registration happens elsewhere.
type API interface {
	GetVehicle(ctx context.Context) envelope.Envelope[*Vehicle]
	GetBasic(ctx context.Context) envelope.Envelope[*BasicInfo]
	GetDocuments(ctx context.Context) envelope.Envelope[[]Document]
	GetInsurance(ctx context.Context) envelope.Envelope[*Insurance]
	GetServiceHistory(ctx context.Context) envelope.Envelope[[]ServiceRecord]
	GetInfo(ctx context.Context) envelope.Envelope[*Info]
}

// Client wraps the delivery-panel vehicle endpoints.
type Client struct {
	rc *restclient.Client
}

// NewClient creates a vehicle API client.
func NewClient(rc *restclient.Client) *Client {
	return &Client{rc: rc}
}

func getVehicle[T any](c *Client, ctx context.Context, path, okMsg, failMsg string) envelope.Envelope[*T] {
	resp, err := c.rc.Get(ctx, path, nil)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Vehicle request failed")
		return envelope.Transport[*T](failMsg)
	}
	return envelope.Extract[*T](resp.StatusCode, resp.Body, okMsg, failMsg)
}

func listVehicle[T any](c *Client, ctx context.Context, path, okMsg, failMsg string) envelope.Envelope[[]T] {
	resp, err := c.rc.Get(ctx, path, nil)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Vehicle request failed")
		return envelope.FailList[T](envelope.ErrTransport, failMsg)
	}
	return envelope.ExtractList[T](resp.StatusCode, resp.Body, 0, 0, okMsg, failMsg)
}

// GetVehicle fetches the registered vehicle record.
func (c *Client) GetVehicle(ctx context.Context) envelope.Envelope[*Vehicle] {
	return getVehicle[Vehicle](c, ctx, "/delivery_panel/vehicle", "Vehicle fetched", "Failed to get vehicle")
}

// GetBasic fetches the compact vehicle header.
func (c *Client) GetBasic(ctx context.Context) envelope.Envelope[*BasicInfo] {
	return getVehicle[BasicInfo](c, ctx, "/delivery_panel/vehicle/basic", "Vehicle basics fetched", "Failed to get vehicle basics")
}

// GetDocuments fetches the vehicle's documents.
func (c *Client) GetDocuments(ctx context.Context) envelope.Envelope[[]Document] {
	return listVehicle[Document](c, ctx, "/delivery_panel/vehicle/documents", "Vehicle documents fetched", "Failed to get vehicle documents")
}

// GetInsurance fetches the vehicle's insurance record.
func (c *Client) GetInsurance(ctx context.Context) envelope.Envelope[*Insurance] {
	return getVehicle[Insurance](c, ctx, "/delivery_panel/vehicle/insurance", "Vehicle insurance fetched", "Failed to get vehicle insurance")
}

// GetServiceHistory fetches the vehicle's service history.
func (c *Client) GetServiceHistory(ctx context.Context) envelope.Envelope[[]ServiceRecord] {
	return listVehicle[ServiceRecord](c, ctx, "/delivery_panel/vehicle/service-history", "Vehicle service history fetched", "Failed to get vehicle service history")
}

// GetInfo fetches the composite vehicle view.
func (c *Client) GetInfo(ctx context.Context) envelope.Envelope[*Info] {
	return getVehicle[Info](c, ctx, "/delivery_panel/vehicle/info", "Vehicle info fetched", "Failed to get vehicle info")
}
