package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// The CLI mirrors these resources one-to-one: every subcommand is
// exactly one HTTP call whose JSON response is printed as received.
// Response shapes are opaque here, so everything is json.RawMessage.

func (c *Client) listResource(ctx context.Context, resource string, query url.Values) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/"+resource, query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) getResource(ctx context.Context, resource, id string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/"+resource+"/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) createResource(ctx context.Context, resource string, body json.RawMessage) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/"+resource, nil, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) updateResource(ctx context.Context, resource, id string, body json.RawMessage) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodPut, "/"+resource+"/"+id, nil, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) deleteResource(ctx context.Context, resource, id string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodDelete, "/"+resource+"/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) resourceAction(ctx context.Context, resource, id, action string, body json.RawMessage) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/"+resource+"/"+id+"/"+action, nil, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Templates

func (c *Client) ListTemplates(ctx context.Context, query url.Values) (json.RawMessage, error) {
	return c.listResource(ctx, "templates", query)
}

func (c *Client) GetTemplate(ctx context.Context, id string) (json.RawMessage, error) {
	return c.getResource(ctx, "templates", id)
}

func (c *Client) CreateTemplate(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
	return c.createResource(ctx, "templates", body)
}

func (c *Client) UpdateTemplate(ctx context.Context, id string, body json.RawMessage) (json.RawMessage, error) {
	return c.updateResource(ctx, "templates", id, body)
}

func (c *Client) DeleteTemplate(ctx context.Context, id string) (json.RawMessage, error) {
	return c.deleteResource(ctx, "templates", id)
}

func (c *Client) PreviewTemplate(ctx context.Context, id string, body json.RawMessage) (json.RawMessage, error) {
	return c.resourceAction(ctx, "templates", id, "preview", body)
}

func (c *Client) SendTestTemplate(ctx context.Context, id string, body json.RawMessage) (json.RawMessage, error) {
	return c.resourceAction(ctx, "templates", id, "send-test", body)
}

// Payments

func (c *Client) ListPayments(ctx context.Context, query url.Values) (json.RawMessage, error) {
	return c.listResource(ctx, "payments", query)
}

func (c *Client) GetPayment(ctx context.Context, id string) (json.RawMessage, error) {
	return c.getResource(ctx, "payments", id)
}

func (c *Client) ApprovePayment(ctx context.Context, id string, body json.RawMessage) (json.RawMessage, error) {
	return c.resourceAction(ctx, "payments", id, "approve", body)
}

func (c *Client) UpdatePayment(ctx context.Context, id string, body json.RawMessage) (json.RawMessage, error) {
	return c.updateResource(ctx, "payments", id, body)
}

// Humans

func (c *Client) ListHumans(ctx context.Context, query url.Values) (json.RawMessage, error) {
	return c.listResource(ctx, "humans", query)
}

func (c *Client) GetHuman(ctx context.Context, id string) (json.RawMessage, error) {
	return c.getResource(ctx, "humans", id)
}

func (c *Client) CreateHuman(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
	return c.createResource(ctx, "humans", body)
}

func (c *Client) UpdateHuman(ctx context.Context, id string, body json.RawMessage) (json.RawMessage, error) {
	return c.updateResource(ctx, "humans", id, body)
}

// Tenants

func (c *Client) ListTenants(ctx context.Context, query url.Values) (json.RawMessage, error) {
	return c.listResource(ctx, "tenants", query)
}

func (c *Client) GetTenant(ctx context.Context, id string) (json.RawMessage, error) {
	return c.getResource(ctx, "tenants", id)
}

func (c *Client) CreateTenant(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
	return c.createResource(ctx, "tenants", body)
}

func (c *Client) UpdateTenant(ctx context.Context, id string, body json.RawMessage) (json.RawMessage, error) {
	return c.updateResource(ctx, "tenants", id, body)
}

func (c *Client) DeleteTenant(ctx context.Context, id string) (json.RawMessage, error) {
	return c.deleteResource(ctx, "tenants", id)
}

// Coupons

func (c *Client) ListCoupons(ctx context.Context, query url.Values) (json.RawMessage, error) {
	return c.listResource(ctx, "coupons", query)
}

func (c *Client) GetCoupon(ctx context.Context, id string) (json.RawMessage, error) {
	return c.getResource(ctx, "coupons", id)
}

func (c *Client) CreateCoupon(ctx context.Context, body json.RawMessage) (json.RawMessage, error) {
	return c.createResource(ctx, "coupons", body)
}

func (c *Client) UpdateCoupon(ctx context.Context, id string, body json.RawMessage) (json.RawMessage, error) {
	return c.updateResource(ctx, "coupons", id, body)
}

func (c *Client) DeleteCoupon(ctx context.Context, id string) (json.RawMessage, error) {
	return c.deleteResource(ctx, "coupons", id)
}

func (c *Client) ValidateCoupon(ctx context.Context, code string, body json.RawMessage) (json.RawMessage, error) {
	return c.resourceAction(ctx, "coupons", code, "validate", body)
}
