package client

import (
	"context"
	"net/url"

	"spacebook/pkg/model"
	"spacebook/pkg/timeslot"
)

type SpaceClient struct {
	httpClient *HttpClient
}

func NewSpaceClient(baseURL string) *SpaceClient {
	return &SpaceClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *SpaceClient) Create(ctx context.Context, input model.SpaceInput) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/spaces", input)
}

func (c *SpaceClient) List(ctx context.Context, institutionID string) (*Response, error) {
	path := "/api/v1/spaces"
	if institutionID != "" {
		q := url.Values{}
		q.Set("institution_id", institutionID)
		path += "?" + q.Encode()
	}
	return c.httpClient.GET(ctx, path)
}

func (c *SpaceClient) GetByID(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/spaces/id/"+url.PathEscape(id))
}

func (c *SpaceClient) Update(ctx context.Context, id string, update model.SpaceUpdate) (*Response, error) {
	return c.httpClient.PATCH(ctx, "/api/v1/spaces/id/"+url.PathEscape(id), update)
}

func (c *SpaceClient) Delete(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.DELETE(ctx, "/api/v1/spaces/id/"+url.PathEscape(id))
}

func (c *SpaceClient) Availability(ctx context.Context, id, date string) (*Response, error) {
	q := url.Values{}
	q.Set("date", date)
	return c.httpClient.GET(ctx, "/api/v1/spaces/id/"+url.PathEscape(id)+"/availability?"+q.Encode())
}

func (c *SpaceClient) DecodeSpace(resp *Response) (*model.Space, error) {
	var space model.Space
	if err := decodeData(resp, &space); err != nil {
		return nil, err
	}
	return &space, nil
}

func (c *SpaceClient) DecodeSpaces(resp *Response) ([]*model.Space, error) {
	var spaces []*model.Space
	if err := decodeData(resp, &spaces); err != nil {
		return nil, err
	}
	return spaces, nil
}

func (c *SpaceClient) DecodeSlots(resp *Response) ([]timeslot.TimeSlot, error) {
	var slots []timeslot.TimeSlot
	if err := decodeData(resp, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}
