// Package rest implements the backend service against the live HTTP API.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/frontend/backend"
	"github.com/fastygo/frontend/domain"
)

// Config carries the knobs the client needs from the application config.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client calls the task-management backend over HTTP. It performs no
// retries, batching, or caching: every page interaction maps to at most a
// handful of independent requests.
type Client struct {
	baseURL   string
	healthURL string
	timeout   time.Duration
	http      *fasthttp.Client
	logger    *zap.Logger
}

// New builds a Client for the given base URL (e.g. http://host:8080/api/v1).
func New(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	base := strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		baseURL:   base,
		healthURL: healthURL(base),
		timeout:   cfg.Timeout,
		http: &fasthttp.Client{
			Name:         "fastygo-frontend",
			ReadTimeout:  cfg.Timeout,
			WriteTimeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// healthURL derives the backend's root health endpoint from the API base
// URL: the API lives under a version prefix, the health check does not.
func healthURL(base string) string {
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return base + "/health"
	}
	return parsed.Scheme + "://" + parsed.Host + "/health"
}

func (c *Client) Login(ctx context.Context, username, password string) (*backend.LoginResult, error) {
	env, status, err := c.do(ctx, http.MethodPost, c.baseURL+"/auth/login", "", loginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return nil, statusError(status, env.errorMessage())
	}

	var data loginData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "malformed login response", err)
	}
	if data.Token == "" {
		return nil, domain.NewError(domain.ErrCodeInternal, "login response missing token")
	}
	return &backend.LoginResult{User: data.User, Token: data.Token}, nil
}

func (c *Client) Register(ctx context.Context, username, email, password string) error {
	env, status, err := c.do(ctx, http.MethodPost, c.baseURL+"/auth/register", "", registerRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return statusError(status, env.errorMessage())
	}
	return nil
}

func (c *Client) List(ctx context.Context, token string, filter backend.TaskFilter) ([]domain.Task, error) {
	query := url.Values{}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.Priority != "" {
		query.Set("priority", string(filter.Priority))
	}
	uri := c.baseURL + "/tasks"
	if encoded := query.Encode(); encoded != "" {
		uri += "?" + encoded
	}

	env, status, err := c.do(ctx, http.MethodGet, uri, token, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, statusError(status, env.errorMessage())
	}

	var tasks []domain.Task
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &tasks); err != nil {
			return nil, domain.WrapError(domain.ErrCodeInternal, "malformed task list response", err)
		}
	}
	return tasks, nil
}

func (c *Client) Create(ctx context.Context, token string, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidInput
	}
	env, status, err := c.do(ctx, http.MethodPost, c.baseURL+"/tasks", token, taskToPayload(task))
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return nil, statusError(status, env.errorMessage())
	}
	return decodeTask(env.Data, task)
}

func (c *Client) Update(ctx context.Context, token string, task *domain.Task) (*domain.Task, error) {
	if task == nil || task.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	env, status, err := c.do(ctx, http.MethodPut, c.baseURL+"/tasks/"+url.PathEscape(task.ID), token, taskToPayload(task))
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, statusError(status, env.errorMessage())
	}
	return decodeTask(env.Data, task)
}

func (c *Client) Delete(ctx context.Context, token, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	env, status, err := c.do(ctx, http.MethodDelete, c.baseURL+"/tasks/"+url.PathEscape(id), token, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return statusError(status, env.errorMessage())
	}
	return nil
}

func (c *Client) Stats(ctx context.Context, token string) (*domain.TaskStats, error) {
	env, status, err := c.do(ctx, http.MethodGet, c.baseURL+"/tasks/stats", token, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, statusError(status, env.errorMessage())
	}

	var stats domain.TaskStats
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "malformed stats response", err)
	}
	return &stats, nil
}

// Ping checks backend reachability for the health monitor.
func (c *Client) Ping(ctx context.Context) error {
	_, status, err := c.do(ctx, http.MethodGet, c.healthURL, "", nil)
	if err != nil {
		return err
	}
	if status >= http.StatusInternalServerError {
		return domain.NewError(domain.ErrCodeUnavailable, fmt.Sprintf("backend health returned %d", status))
	}
	return nil
}

// do issues one request and parses the response envelope. Transport-level
// failures (refused connections, timeouts) come back as UNAVAILABLE so pages
// can show the "cannot reach the backend" message.
func (c *Client) do(ctx context.Context, method, uri, token string, body interface{}) (envelope, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return envelope{}, 0, domain.WrapError(domain.ErrCodeUnavailable, "request cancelled", err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return envelope{}, 0, domain.WrapError(domain.ErrCodeInternal, "encode request", err)
		}
		req.SetBody(payload)
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return envelope{}, 0, domain.WrapError(domain.ErrCodeUnavailable, "request cancelled", context.DeadlineExceeded)
	}

	if err := c.http.DoTimeout(req, resp, timeout); err != nil {
		c.logger.Warn("backend request failed",
			zap.String("method", method),
			zap.String("uri", uri),
			zap.Error(err))
		return envelope{}, 0, domain.WrapError(domain.ErrCodeUnavailable, "cannot reach the backend service", err)
	}

	status := resp.StatusCode()
	var env envelope
	if raw := resp.Body(); len(raw) > 0 {
		// Tolerate empty or non-JSON bodies; the status code still decides.
		_ = json.Unmarshal(raw, &env)
	}
	return env, status, nil
}

// decodeTask returns the backend's echo of the task when present and falls
// back to the submitted value otherwise.
func decodeTask(data json.RawMessage, fallback *domain.Task) (*domain.Task, error) {
	if len(data) == 0 || string(data) == "null" {
		return fallback, nil
	}
	var task domain.Task
	if err := json.Unmarshal(data, &task); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "malformed task response", err)
	}
	return &task, nil
}

var _ backend.Service = (*Client)(nil)
