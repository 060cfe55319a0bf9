// Package httpstore reads invoice documents from an upstream REST record store.
package httpstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"medibill/internal/domain"
	"medibill/internal/port"
)

const maxBodyBytes = 32 << 20

// errNotFound marks a 404 from the upstream. Only Get treats it as a
// missing invoice; for collections it means the store is misconfigured.
var errNotFound = fmt.Errorf("endpoint returned 404: %w", domain.ErrStoreUnavailable)

// Client is an InvoiceStore and ClinicStore backed by the upstream API.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

var (
	_ port.InvoiceStore = (*Client)(nil)
	_ port.ClinicStore  = (*Client)(nil)
)

// New creates a client for baseURL. A zero timeout means 10 seconds.
func New(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

// envelope covers the response shapes the upstream has used over time:
// {success, invoices}, {success, data: [...]}, {success, data: {invoices}}.
type envelope struct {
	Success  *bool           `json:"success"`
	Message  string          `json:"message"`
	Invoices json.RawMessage `json:"invoices"`
	Invoice  json.RawMessage `json:"invoice"`
	Clinics  json.RawMessage `json:"clinics"`
	Data     json.RawMessage `json:"data"`
}

func (c *Client) List(ctx context.Context, scope port.InvoiceScope) ([]domain.RawInvoice, error) {
	env, err := c.get(ctx, "/invoices", scopeQuery(scope))
	if err != nil {
		return nil, fmt.Errorf("httpstore.List: %w", err)
	}

	body := env.Invoices
	if len(body) == 0 {
		body = env.Data
	}
	if nested := field(body, "invoices"); nested != nil {
		body = nested
	}

	var raws []domain.RawInvoice
	if len(body) > 0 && !isNull(body) {
		if err := decode(body, &raws); err != nil {
			return nil, fmt.Errorf("httpstore.List decode: %w: %w", domain.ErrStoreUnavailable, err)
		}
	}
	if raws == nil {
		raws = []domain.RawInvoice{}
	}
	return raws, nil
}

func (c *Client) Get(ctx context.Context, scope port.InvoiceScope, id string) (domain.RawInvoice, error) {
	env, err := c.get(ctx, "/invoices/"+url.PathEscape(id), scopeQuery(scope))
	if errors.Is(err, errNotFound) {
		return nil, domain.ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("httpstore.Get: %w", err)
	}

	body := env.Invoice
	if len(body) == 0 {
		body = env.Data
	}
	if nested := field(body, "invoice"); nested != nil {
		body = nested
	}
	if len(body) == 0 || isNull(body) {
		return nil, domain.ErrInvoiceNotFound
	}

	var raw domain.RawInvoice
	if err := decode(body, &raw); err != nil {
		return nil, fmt.Errorf("httpstore.Get decode: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return raw, nil
}

func (c *Client) ListClinicNames(ctx context.Context, scope port.InvoiceScope) ([]string, error) {
	env, err := c.get(ctx, "/clinics", scopeQuery(scope))
	if err != nil {
		return nil, fmt.Errorf("httpstore.ListClinicNames: %w", err)
	}

	body := env.Clinics
	if len(body) == 0 {
		body = env.Data
	}
	if nested := field(body, "clinics"); nested != nil {
		body = nested
	}

	var items []any
	if len(body) > 0 && !isNull(body) {
		if err := decode(body, &items); err != nil {
			return nil, fmt.Errorf("httpstore.ListClinicNames decode: %w: %w", domain.ErrStoreUnavailable, err)
		}
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		var name string
		switch v := item.(type) {
		case string:
			name = v
		case map[string]any:
			name, _ = v["name"].(string)
		}
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*envelope, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling record store: %w: %w", domain.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w: %w", domain.ErrStoreUnavailable, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("record store: %w", errNotFound)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		if resp.StatusCode >= 300 {
			return nil, fmt.Errorf("record store error (status %d): %w", resp.StatusCode, domain.ErrStoreUnavailable)
		}
		return nil, fmt.Errorf("unmarshaling response: %w: %w", domain.ErrStoreUnavailable, err)
	}
	if env.Success != nil && !*env.Success {
		return nil, fmt.Errorf("record store rejected request: %s: %w", env.Message, domain.ErrStoreRejected)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("record store error (status %d): %w", resp.StatusCode, domain.ErrStoreUnavailable)
	}
	return &env, nil
}

func scopeQuery(scope port.InvoiceScope) url.Values {
	q := url.Values{}
	if !scope.AllTenants {
		q.Set("tenantId", scope.TenantID.String())
	}
	if scope.PatientID != "" {
		q.Set("patientId", scope.PatientID)
	}
	return q
}

// field returns the named member of a JSON object, or nil when body is not
// an object or lacks it.
func field(body json.RawMessage, name string) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil
	}
	return obj[name]
}

func isNull(body json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(body), []byte("null"))
}

// decode keeps numbers as json.Number so amounts survive unchanged.
func decode(body json.RawMessage, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(v)
}
