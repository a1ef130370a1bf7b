package api

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

	"github.com/pluqqy/promptcat/internal/logger"
	"github.com/pluqqy/promptcat/pkg/models"
)

// Client calls the remote catalog service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger every failed call is reported to.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		c.log = l.Component(logger.ComponentAPI)
	}
}

// NewClient creates a client for the service at baseURL. No timeout is set
// on the default http.Client; callers bound requests through the context.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request describes one call to the service.
type Request struct {
	Method  string
	Path    string // relative to the base URL, may carry a query string
	Body    any
	Headers map[string]string
}

// Do performs req and decodes a JSON response body into out (which may be
// nil). Non-2xx responses become *APIError, transport failures become
// *NetworkError. Every error is logged before it is returned.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	err := c.do(ctx, req, out)
	if err != nil {
		fields := map[string]any{"method": req.Method, "path": req.Path}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			fields["status"] = apiErr.Status
		}
		c.log.WithFields(fields).Error(err, "API Error")
	}
	return err
}

func (c *Client) do(ctx context.Context, req Request, out any) error {
	method := req.Method

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+req.Path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return NewNetworkError(method, req.Path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewNetworkError(method, req.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return NewAPIError(resp.StatusCode, method, req.Path, errorDetail(respBody))
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", req.Path, err)
	}
	return nil
}

// errorDetail extracts the server-supplied message from an error body.
// FastAPI sends {"detail": "..."} or, for validation failures,
// {"detail": [{"msg": "..."}]}.
func errorDetail(body []byte) string {
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	if len(payload.Detail) > 0 {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil {
			return s
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(payload.Detail, &items); err == nil {
			var msgs []string
			for _, item := range items {
				if item.Msg != "" {
					msgs = append(msgs, item.Msg)
				}
			}
			return strings.Join(msgs, "; ")
		}
	}
	return payload.Message
}

// Categories lists the category names.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.Do(ctx, Request{Path: PathCategories}, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Search fetches one page of prompts for the given filter.
func (c *Client) Search(ctx context.Context, params models.SearchParams) (*models.SearchResultPage, error) {
	var page models.SearchResultPage
	if err := c.Do(ctx, Request{Path: PathSearch + "?" + params.Encode()}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetPrompt fetches the full detail of one prompt.
func (c *Client) GetPrompt(ctx context.Context, id models.PromptID) (*models.Prompt, error) {
	if id == "" {
		return nil, models.NewValidationError("prompt_id", "prompt ID is required", nil)
	}
	var prompt models.Prompt
	path := fmt.Sprintf(pathPrompt, url.PathEscape(id.String()))
	if err := c.Do(ctx, Request{Path: path}, &prompt); err != nil {
		return nil, err
	}
	return &prompt, nil
}

// LikePrompt records a like for the prompt.
func (c *Client) LikePrompt(ctx context.Context, id models.PromptID) (*models.LikeResponse, error) {
	if id == "" {
		return nil, models.NewValidationError("prompt_id", "prompt ID is required", nil)
	}
	var resp models.LikeResponse
	path := fmt.Sprintf(pathLike, url.PathEscape(id.String()))
	if err := c.Do(ctx, Request{Method: http.MethodPost, Path: path}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Customize asks the service to rewrite a prompt following the
// instruction and returns the new text.
func (c *Client) Customize(ctx context.Context, req models.CustomizationRequest) (string, error) {
	if err := models.ValidateCustomization(req); err != nil {
		return "", err
	}
	req.Message = strings.TrimSpace(req.Message)

	var resp models.CustomizationResponse
	if err := c.Do(ctx, Request{Method: http.MethodPost, Path: PathCustomize, Body: req}, &resp); err != nil {
		return "", err
	}
	if resp.CustomizedPrompt == "" {
		err := errors.New("Invalid response from customization API")
		c.log.Error(err, "Customization error")
		return "", err
	}
	return resp.CustomizedPrompt, nil
}

// CreatePrompt uploads a new prompt.
func (c *Client) CreatePrompt(ctx context.Context, req models.CreatePromptRequest) (*models.CreatePromptResponse, error) {
	if err := models.ValidateCreatePrompt(req); err != nil {
		return nil, err
	}
	var resp models.CreatePromptResponse
	if err := c.Do(ctx, Request{Method: http.MethodPost, Path: PathCreatePrompt, Body: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AuthorPrompts lists the prompts uploaded by one author.
func (c *Client) AuthorPrompts(ctx context.Context, authorID string) (*models.SearchResultPage, error) {
	authorID = strings.TrimSpace(authorID)
	if authorID == "" {
		return nil, models.NewValidationError("author_id", "author ID is required", nil)
	}
	var page models.SearchResultPage
	path := fmt.Sprintf(pathAuthorPrompts, url.PathEscape(authorID))
	if err := c.Do(ctx, Request{Path: path}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

var _ Service = (*Client)(nil)
