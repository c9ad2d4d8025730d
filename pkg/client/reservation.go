package client

import (
	"context"
	"net/url"

	"spacebook/pkg/model"
)

type ReservationClient struct {
	httpClient *HttpClient
}

func NewReservationClient(baseURL string) *ReservationClient {
	return &ReservationClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *ReservationClient) Create(ctx context.Context, req model.ReservationRequest) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/reservations", req)
}

func (c *ReservationClient) CreateWithIdempotencyKey(ctx context.Context, req model.ReservationRequest, key string) (*Response, error) {
	return c.httpClient.POSTWithHeaders(ctx, "/api/v1/reservations", req, map[string]string{
		"Idempotency-Key": key,
	})
}

func (c *ReservationClient) CreateRaw(ctx context.Context, rawBody []byte) (*Response, error) {
	return c.httpClient.POSTRaw(ctx, "/api/v1/reservations", rawBody)
}

// List filters by space when spaceID is set, otherwise by institution.
func (c *ReservationClient) List(ctx context.Context, spaceID, institutionID string) (*Response, error) {
	q := url.Values{}
	if spaceID != "" {
		q.Set("space_id", spaceID)
	}
	if institutionID != "" {
		q.Set("institution_id", institutionID)
	}
	path := "/api/v1/reservations"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return c.httpClient.GET(ctx, path)
}

func (c *ReservationClient) GetByID(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/reservations/id/"+url.PathEscape(id))
}

func (c *ReservationClient) Delete(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.DELETE(ctx, "/api/v1/reservations/id/"+url.PathEscape(id))
}

func (c *ReservationClient) DecodeSummary(resp *Response) (*model.ReservationSummary, error) {
	var summary model.ReservationSummary
	if err := decodeData(resp, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *ReservationClient) DecodeSummaries(resp *Response) ([]*model.ReservationSummary, error) {
	var summaries []*model.ReservationSummary
	if err := decodeData(resp, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}
