// Package client is a resty-backed API client for the cost sheet
// service, used by CLI tooling and integration tests.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"merchtrack/services"
)

// CostSheet mirrors the record shape returned by the API.
type CostSheet struct {
	ID string `json:"id"`
	services.StyleInfo
	CadConsumption   services.TableEnvelope  `json:"cadConsumption"`
	FabricCost       services.FabricEnvelope `json:"fabricCost"`
	TrimsAccessories services.TableEnvelope  `json:"trimsAccessories"`
	Others           services.TableEnvelope  `json:"others"`
	Summary          services.SummaryInputs  `json:"summary"`
	CreatedBy        string                  `json:"createdBy"`
	Created          string                  `json:"created"`
	Updated          string                  `json:"updated"`
}

// Page is one window of the cost sheet list.
type Page struct {
	Sanitized   []CostSheet `json:"sanitized"`
	Page        int         `json:"page"`
	TotalPages  int         `json:"totalPages"`
	HasNextPage bool        `json:"hasNextPage"`
}

// StyleCheck is the check-style response.
type StyleCheck struct {
	Exists      bool   `json:"exists"`
	CreatorName string `json:"creatorName"`
}

// SheetView is the view response: the record plus its derived chain.
type SheetView struct {
	Sheet CostSheet             `json:"sheet"`
	Chain services.SummaryChain `json:"chain"`
}

// apiError is the service's error payload.
type apiError struct {
	Error       string `json:"error"`
	CreatorName string `json:"creatorName"`
}

// StyleExistsError reports a creation or rename blocked by an
// already-registered style.
type StyleExistsError struct {
	Style       string
	CreatorName string
}

func (e *StyleExistsError) Error() string {
	return fmt.Sprintf("style %q already registered by %s", e.Style, e.CreatorName)
}

// Client wraps the REST surface.
type Client struct {
	http *resty.Client
}

// New builds a client for the given base URL.
func New(baseURL string) *Client {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &Client{http: restyClient}
}

// ListCostSheets fetches one page of the list.
func (c *Client) ListCostSheets(ctx context.Context, page, limit int) (*Page, error) {
	result := new(Page)
	apiErr := new(apiError)

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("page", fmt.Sprintf("%d", page)).
		SetQueryParam("limit", fmt.Sprintf("%d", limit)).
		SetResult(result).
		SetError(apiErr).
		Get("/cost-sheets")
	if err != nil {
		return nil, fmt.Errorf("list cost sheets: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("list cost sheets: status=%d, message=%s", resp.StatusCode(), apiErr.Error)
	}
	return result, nil
}

// CheckStyle reports whether a style code is already registered.
func (c *Client) CheckStyle(ctx context.Context, style string) (*StyleCheck, error) {
	result := new(StyleCheck)
	apiErr := new(apiError)

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("style", style).
		SetResult(result).
		SetError(apiErr).
		Get("/cost-sheets/check-style")
	if err != nil {
		return nil, fmt.Errorf("check style: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("check style: status=%d, message=%s", resp.StatusCode(), apiErr.Error)
	}
	return result, nil
}

// CreateCostSheet registers a new cost sheet.
func (c *Client) CreateCostSheet(ctx context.Context, payload services.CostSheetPayload) (*CostSheet, error) {
	result := new(CostSheet)
	apiErr := new(apiError)

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(result).
		SetError(apiErr).
		Post("/cost-sheets")
	if err != nil {
		return nil, fmt.Errorf("create cost sheet: %w", err)
	}
	if resp.StatusCode() == http.StatusConflict {
		return nil, &StyleExistsError{Style: payload.Style, CreatorName: apiErr.CreatorName}
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("create cost sheet: status=%d, message=%s", resp.StatusCode(), apiErr.Error)
	}
	return result, nil
}

// UpdateCostSheet replaces a cost sheet's full payload.
func (c *Client) UpdateCostSheet(ctx context.Context, id string, payload services.CostSheetPayload) (*CostSheet, error) {
	result := new(CostSheet)
	apiErr := new(apiError)

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"data": payload}).
		SetResult(result).
		SetError(apiErr).
		Put("/cost-sheets/" + id)
	if err != nil {
		return nil, fmt.Errorf("update cost sheet: %w", err)
	}
	if resp.StatusCode() == http.StatusConflict {
		return nil, &StyleExistsError{Style: payload.Style, CreatorName: apiErr.CreatorName}
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("update cost sheet: status=%d, message=%s", resp.StatusCode(), apiErr.Error)
	}
	return result, nil
}

// GetCostSheet fetches one sheet with its derived summary chain.
func (c *Client) GetCostSheet(ctx context.Context, id string) (*SheetView, error) {
	result := new(SheetView)
	apiErr := new(apiError)

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(result).
		SetError(apiErr).
		Get("/cost-sheets/" + id)
	if err != nil {
		return nil, fmt.Errorf("get cost sheet: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("get cost sheet: status=%d, message=%s", resp.StatusCode(), apiErr.Error)
	}
	return result, nil
}

// DeleteCostSheet removes a sheet.
func (c *Client) DeleteCostSheet(ctx context.Context, id string) error {
	apiErr := new(apiError)

	resp, err := c.http.R().
		SetContext(ctx).
		SetError(apiErr).
		Delete("/cost-sheets/" + id)
	if err != nil {
		return fmt.Errorf("delete cost sheet: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("delete cost sheet: status=%d, message=%s", resp.StatusCode(), apiErr.Error)
	}
	return nil
}

// ListView holds the most recently requested list page. Page loads may
// overlap; a response is applied only when it answers the newest
// request, so an earlier page arriving late can never overwrite a later
// one.
type ListView struct {
	mu     sync.Mutex
	latest uint64
	page   *Page
}

// begin registers a new request and returns its sequence number.
func (v *ListView) begin() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.latest++
	return v.latest
}

// apply installs a response if it answers the newest request. It
// reports whether the page was installed.
func (v *ListView) apply(seq uint64, page *Page) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if seq != v.latest {
		return false
	}
	v.page = page
	return true
}

// Current returns the installed page, nil before the first load.
func (v *ListView) Current() *Page {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page
}

// LoadPage fetches a list page into the view. It reports whether the
// response was installed; a load superseded by a newer one is fetched
// but discarded.
func (c *Client) LoadPage(ctx context.Context, view *ListView, page, limit int) (bool, error) {
	seq := view.begin()

	result, err := c.ListCostSheets(ctx, page, limit)
	if err != nil {
		return false, err
	}
	return view.apply(seq, result), nil
}
