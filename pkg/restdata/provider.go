// Package restdata translates abstract data-access operations (list,
// fetch-one, fetch-many, create, update, delete and their bulk variants)
// into REST requests against a JSON API and maps the responses back into
// normalized result envelopes.
package restdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/openadmin-hq/restdata-go/pkg/httpclient"
	"github.com/openadmin-hq/restdata-go/pkg/qs"
)

const defaultTimeout = 30 * time.Second

// Provider dispatches data-access operations against a single JSON API.
// It is stateless and safe for concurrent use; every operation performs
// exactly one round trip through the injected transport.
type Provider struct {
	baseURL string
	client  httpclient.Client
	headers map[string]string
	timeout time.Duration
	log     *zap.SugaredLogger
}

// Option configures a Provider.
type Option func(*Provider)

// WithClient injects a transport. When absent, a resty-backed client with
// the configured timeout is used.
func WithClient(c httpclient.Client) Option {
	return func(p *Provider) { p.client = c }
}

// WithTimeout sets the default transport's request timeout. Ignored when a
// client is injected via WithClient.
func WithTimeout(d time.Duration) Option {
	return func(p *Provider) { p.timeout = d }
}

// WithHeaders sets headers attached to every request.
func WithHeaders(h map[string]string) Option {
	return func(p *Provider) {
		p.headers = make(map[string]string, len(h))
		for k, v := range h {
			p.headers[k] = v
		}
	}
}

// WithLogger sets the logger used for request debug logging.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(p *Provider) {
		if log != nil {
			p.log = log
		}
	}
}

// New builds a Provider for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Provider {
	p := &Provider{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: defaultTimeout,
		log:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if p.client == nil {
		p.client = httpclient.NewRestyClient(p.timeout)
	}
	return p
}

// listPayload is the server's wire shape for paginated listings.
type listPayload struct {
	Items []json.RawMessage `json:"items"`
	Total int64             `json:"total"`
}

// GetList fetches one page of a resource.
func (p *Provider) GetList(ctx context.Context, resource string, params GetListParams) (*ListResult, error) {
	query := buildListQuery(params.Pagination, params.Sort, params.Filter, params.Meta)
	resp, err := p.do(ctx, http.MethodGet, p.resourceURL(resource, nil, query), nil)
	if err != nil {
		return nil, err
	}
	var payload listPayload
	if err := decodeResponse(resp, &payload); err != nil {
		return nil, err
	}
	return &ListResult{Data: payload.Items, Total: payload.Total}, nil
}

// GetOne fetches a single record by identifier.
func (p *Provider) GetOne(ctx context.Context, resource string, params GetOneParams) (*Result, error) {
	query := buildItemQuery(params.Meta)
	resp, err := p.do(ctx, http.MethodGet, p.resourceURL(resource, params.ID, query), nil)
	if err != nil {
		return nil, err
	}
	var body json.RawMessage
	if err := decodeResponse(resp, &body); err != nil {
		return nil, err
	}
	return &Result{Data: body}, nil
}

// GetMany fetches a set of records by identifier.
func (p *Provider) GetMany(ctx context.Context, resource string, params GetManyParams) (*ManyResult, error) {
	query := buildIDListQuery(params.IDs)
	resp, err := p.do(ctx, http.MethodGet, p.resourceURL(resource, nil, query), nil)
	if err != nil {
		return nil, err
	}
	var items []json.RawMessage
	if err := decodeResponse(resp, &items); err != nil {
		return nil, err
	}
	return &ManyResult{Data: items}, nil
}

// GetManyReference fetches the page of records whose Target field references
// the given identifier.
func (p *Provider) GetManyReference(ctx context.Context, resource string, params GetManyReferenceParams) (*ListResult, error) {
	filter := withReference(params.Filter, params.Target, params.ID)
	query := buildListQuery(params.Pagination, params.Sort, filter, params.Meta)
	resp, err := p.do(ctx, http.MethodGet, p.resourceURL(resource, nil, query), nil)
	if err != nil {
		return nil, err
	}
	var payload listPayload
	if err := decodeResponse(resp, &payload); err != nil {
		return nil, err
	}
	return &ListResult{Data: payload.Items, Total: payload.Total}, nil
}

// Create posts a new record.
func (p *Provider) Create(ctx context.Context, resource string, params CreateParams) (*Result, error) {
	resp, err := p.do(ctx, http.MethodPost, p.resourceURL(resource, nil, nil), params.Data)
	if err != nil {
		return nil, err
	}
	var body json.RawMessage
	if err := decodeResponse(resp, &body); err != nil {
		return nil, err
	}
	return &Result{Data: body}, nil
}

// Update replaces a single record.
func (p *Provider) Update(ctx context.Context, resource string, params UpdateParams) (*Result, error) {
	resp, err := p.do(ctx, http.MethodPut, p.resourceURL(resource, params.ID, nil), params.Data)
	if err != nil {
		return nil, err
	}
	var body json.RawMessage
	if err := decodeResponse(resp, &body); err != nil {
		return nil, err
	}
	return &Result{Data: body}, nil
}

// UpdateMany applies the same data to every identified record.
func (p *Provider) UpdateMany(ctx context.Context, resource string, params UpdateManyParams) (*ManyResult, error) {
	query := buildIDListQuery(params.IDs)
	resp, err := p.do(ctx, http.MethodPut, p.resourceURL(resource, nil, query), params.Data)
	if err != nil {
		return nil, err
	}
	var items []json.RawMessage
	if err := decodeResponse(resp, &items); err != nil {
		return nil, err
	}
	return &ManyResult{Data: items}, nil
}

// Delete removes a single record.
func (p *Provider) Delete(ctx context.Context, resource string, params DeleteParams) (*Result, error) {
	resp, err := p.do(ctx, http.MethodDelete, p.resourceURL(resource, params.ID, nil), nil)
	if err != nil {
		return nil, err
	}
	if err := decodeResponse(resp, nil); err != nil {
		return nil, err
	}
	return &Result{Data: json.RawMessage("{}")}, nil
}

// DeleteMany removes every identified record. The result echoes the
// caller's identifiers; the server body is not consulted.
func (p *Provider) DeleteMany(ctx context.Context, resource string, params DeleteManyParams) (*DeleteManyResult, error) {
	query := buildIDListQuery(params.IDs)
	resp, err := p.do(ctx, http.MethodDelete, p.resourceURL(resource, nil, query), nil)
	if err != nil {
		return nil, err
	}
	if err := decodeResponse(resp, nil); err != nil {
		return nil, err
	}
	return &DeleteManyResult{Data: params.IDs}, nil
}

// do issues one request. Transport failures propagate unchanged so callers
// can tell them apart from classified response errors.
func (p *Provider) do(ctx context.Context, method, requestURL string, body any) (httpclient.Response, error) {
	headers := make(map[string]string, len(p.headers)+1)
	for k, v := range p.headers {
		headers[k] = v
	}

	var raw []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		raw = encoded
		headers["Content-Type"] = "application/json"
	}

	p.log.Debugw("rest request", "method", method, "url", requestURL)
	return p.client.Do(ctx, method, requestURL, headers, raw)
}

// resourceURL joins the base URL, resource path, optional identifier, and
// the query string when it encodes to anything.
func (p *Provider) resourceURL(resource string, id any, query *qs.Values) string {
	u := p.baseURL + "/" + resource
	if id != nil {
		u += "/" + url.PathEscape(qs.Scalar(id))
	}
	if query != nil {
		if encoded := query.Encode(); encoded != "" {
			u += "?" + encoded
		}
	}
	return u
}
