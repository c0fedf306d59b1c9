// Package shopify is the remote data client for the Admin GraphQL API.
// It issues exactly three query shapes: read the tasting metafield, read a
// customer's email, and upsert the metafield. No call is retried here.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vintry/tastingd/internal/domain/tasting"
)

const accessTokenHeader = "X-Shopify-Access-Token"

const tastingFieldQuery = `query tastingField($id: ID!, $namespace: String!, $key: String!) {
  customer(id: $id) {
    metafield(namespace: $namespace, key: $key) { value }
  }
}`

const customerEmailQuery = `query customerEmail($id: ID!) {
  customer(id: $id) { email }
}`

const setTastingFieldMutation = `mutation setTastingField($metafields: [MetafieldsSetInput!]!) {
  metafieldsSet(metafields: $metafields) {
    metafields { id }
    userErrors { field message }
  }
}`

// Client talks to one shop's Admin API with a fixed access token.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
}

// New creates a client for the given shop domain and API version.
func New(shopDomain, apiVersion, token string, opts ...Option) *Client {
	c := &Client{
		endpoint: fmt.Sprintf("https://%s/admin/api/%s/graphql.json", strings.TrimSpace(shopDomain), apiVersion),
		token:    token,
		http:     &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TastingField reads the raw tasting document for a customer. The second
// return is false when the customer has no such metafield (or no such
// customer exists).
func (c *Client) TastingField(ctx context.Context, customerID string) (string, bool, error) {
	var out struct {
		Customer *struct {
			Metafield *struct {
				Value string `json:"value"`
			} `json:"metafield"`
		} `json:"customer"`
	}
	vars := map[string]any{
		"id":        customerGID(customerID),
		"namespace": tasting.MetafieldNamespace,
		"key":       tasting.MetafieldKey,
	}
	if err := c.do(ctx, tastingFieldQuery, vars, &out); err != nil {
		return "", false, err
	}
	if out.Customer == nil || out.Customer.Metafield == nil {
		return "", false, nil
	}
	return out.Customer.Metafield.Value, true, nil
}

// CustomerEmail returns the on-file email for a customer, or "" when the
// customer is unknown or has none.
func (c *Client) CustomerEmail(ctx context.Context, customerID string) (string, error) {
	var out struct {
		Customer *struct {
			Email string `json:"email"`
		} `json:"customer"`
	}
	if err := c.do(ctx, customerEmailQuery, map[string]any{"id": customerGID(customerID)}, &out); err != nil {
		return "", err
	}
	if out.Customer == nil {
		return "", nil
	}
	return out.Customer.Email, nil
}

// SetTastingField upserts the tasting document metafield on a customer.
// Field-level userErrors fail the call with their messages concatenated.
func (c *Client) SetTastingField(ctx context.Context, customerID string, doc []byte) error {
	var out struct {
		MetafieldsSet struct {
			UserErrors []struct {
				Field   []string `json:"field"`
				Message string   `json:"message"`
			} `json:"userErrors"`
		} `json:"metafieldsSet"`
	}
	vars := map[string]any{
		"metafields": []map[string]any{{
			"ownerId":   customerGID(customerID),
			"namespace": tasting.MetafieldNamespace,
			"key":       tasting.MetafieldKey,
			"type":      "json",
			"value":     string(doc),
		}},
	}
	if err := c.do(ctx, setTastingFieldMutation, vars, &out); err != nil {
		return err
	}
	if len(out.MetafieldsSet.UserErrors) > 0 {
		msgs := make([]string, 0, len(out.MetafieldsSet.UserErrors))
		for _, ue := range out.MetafieldsSet.UserErrors {
			msgs = append(msgs, ue.Message)
		}
		return fmt.Errorf("%w: metafieldsSet: %s", ErrRemote, strings.Join(msgs, "; "))
	}
	return nil
}

// do performs one GraphQL round-trip and decodes data into out. A non-2xx
// status or any reported top-level error fails the call.
func (c *Client) do(ctx context.Context, query string, vars map[string]any, out any) error {
	payload, err := json.Marshal(map[string]any{"query": query, "variables": vars})
	if err != nil {
		return fmt.Errorf("%w: encode request: %v", ErrRemote, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrRemote, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(accessTokenHeader, c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemote, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrRemote, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d: %s", ErrRemote, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrRemote, err)
	}
	if len(envelope.Errors) > 0 {
		msgs := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			msgs = append(msgs, e.Message)
		}
		return fmt.Errorf("%w: %s", ErrRemote, strings.Join(msgs, "; "))
	}
	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("%w: decode data: %v", ErrRemote, err)
		}
	}
	return nil
}

func customerGID(id string) string {
	return "gid://shopify/Customer/" + strings.TrimSpace(id)
}
