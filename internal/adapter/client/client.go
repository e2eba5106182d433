// Package client is a typed HTTP client for the /contas API.
package client

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

	"github.com/cenkalti/backoff/v4"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"

	"github.com/E-Mello/controlefin.app/internal/adapter/http/dto"
	"github.com/E-Mello/controlefin.app/internal/domain"
	"github.com/E-Mello/controlefin.app/internal/usecase"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Detail     []dto.ValidationDetail
}

func (e *APIError) Error() string {
	switch {
	case len(e.Detail) > 0:
		msgs := make([]string, 0, len(e.Detail))
		for _, d := range e.Detail {
			field := strings.TrimPrefix(strings.Join(d.Loc, "."), "body.")
			msgs = append(msgs, field+": "+d.Msg)
		}
		return fmt.Sprintf("api: %d: %s", e.StatusCode, strings.Join(msgs, "; "))
	case e.Message != "":
		return fmt.Sprintf("api: %d %s: %s", e.StatusCode, e.Code, e.Message)
	default:
		return fmt.Sprintf("api: %d %s", e.StatusCode, e.Code)
	}
}

// Unwrap maps 404 to domain.ErrContaNotFound.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return domain.ErrContaNotFound
	}
	return nil
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRetries sets the retry budget and backoff intervals.
func WithRetries(maxRetries uint64, initial, maxInterval time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.initialInterval = initial
		c.maxInterval = maxInterval
	}
}

// Client talks to the Livro Caixa API.
type Client struct {
	baseURL         *url.URL
	http            *http.Client
	maxRetries      uint64
	initialInterval time.Duration
	maxInterval     time.Duration
}

// New creates a Client for baseURL, e.g. http://localhost:8080.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("client: invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("client: base URL %q needs scheme and host", baseURL)
	}

	c := &Client{
		baseURL:         u,
		http:            &http.Client{Timeout: 30 * time.Second},
		maxRetries:      3,
		initialInterval: 200 * time.Millisecond,
		maxInterval:     2 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// List returns every conta. It satisfies usecase.ContaSource, so reports can
// be computed on the client side.
func (c *Client) List(ctx context.Context) ([]*domain.Conta, error) {
	var out []dto.ContaResponse
	if err := c.do(ctx, http.MethodGet, "/contas/", nil, "", &out); err != nil {
		return nil, err
	}

	contas := make([]*domain.Conta, 0, len(out))
	for i := range out {
		contas = append(contas, toDomain(&out[i]))
	}

	return contas, nil
}

// Get fetches one conta.
func (c *Client) Get(ctx context.Context, id string) (*domain.Conta, error) {
	var out dto.ContaResponse
	if err := c.do(ctx, http.MethodGet, "/contas/"+url.PathEscape(id), nil, "", &out); err != nil {
		return nil, err
	}
	return toDomain(&out), nil
}

// Create stores a new conta. Each call carries a fresh idempotency key so a
// retried POST cannot create a duplicate.
func (c *Client) Create(ctx context.Context, input usecase.ContaInput) (*domain.Conta, error) {
	var out dto.ContaResponse
	key := ulid.Make().String()
	if err := c.do(ctx, http.MethodPost, "/contas/", toRequest(input), key, &out); err != nil {
		return nil, err
	}
	return toDomain(&out), nil
}

// Update replaces a conta.
func (c *Client) Update(ctx context.Context, id string, input usecase.ContaInput) (*domain.Conta, error) {
	var out dto.ContaResponse
	if err := c.do(ctx, http.MethodPut, "/contas/"+url.PathEscape(id), toRequest(input), "", &out); err != nil {
		return nil, err
	}
	return toDomain(&out), nil
}

// Delete removes a conta.
func (c *Client) Delete(ctx context.Context, id string) error {
	var out dto.DeleteResponse
	return c.do(ctx, http.MethodDelete, "/contas/"+url.PathEscape(id), nil, "", &out)
}

func (c *Client) do(ctx context.Context, method, path string, body any, idempotencyKey string, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
	}

	target := c.baseURL.JoinPath(path)
	if strings.HasSuffix(path, "/") && !strings.HasSuffix(target.Path, "/") {
		target.Path += "/"
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval
	b.MaxInterval = c.maxInterval

	attempt := 0
	return backoff.Retry(func() error {
		attempt++

		req, err := http.NewRequestWithContext(ctx, method, target.String(), bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if idempotencyKey != "" {
			req.Header.Set("Idempotency-Key", idempotencyKey)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			log.Ctx(ctx).Debug().Err(err).Int("attempt", attempt).Str("path", path).Msg("request failed, retrying")
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			apiErr := decodeError(resp)
			if resp.StatusCode >= 500 {
				log.Ctx(ctx).Debug().Err(apiErr).Int("attempt", attempt).Str("path", path).Msg("server error, retrying")
				return apiErr
			}
			return backoff.Permanent(apiErr)
		}

		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("client: decode response: %w", err))
		}
		return nil
	}, backoff.WithContext(backoff.WithMaxRetries(b, c.maxRetries), ctx))
}

func decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, Code: http.StatusText(resp.StatusCode)}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	if resp.StatusCode == http.StatusUnprocessableEntity {
		var v dto.ValidationErrorResponse
		if json.Unmarshal(raw, &v) == nil && len(v.Detail) > 0 {
			apiErr.Detail = v.Detail
			return apiErr
		}
	}

	var e dto.ErrorResponse
	if json.Unmarshal(raw, &e) == nil && e.Error != "" {
		apiErr.Code = e.Error
		apiErr.Message = e.Message
	}

	return apiErr
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrContaNotFound)
}

func toRequest(in usecase.ContaInput) *dto.ContaRequest {
	amount := dto.NewAmount(in.Amount)
	return &dto.ContaRequest{
		Tipo:           in.Kind.String(),
		Descricao:      in.Description,
		Valor:          &amount,
		DataVencimento: in.DueDate.String(),
	}
}

func toDomain(r *dto.ContaResponse) *domain.Conta {
	kind, _ := domain.ParseKind(r.Tipo)
	return &domain.Conta{
		ID:          r.ID,
		Kind:        kind,
		Description: r.Descricao,
		Amount:      r.Valor.Decimal,
		DueDate:     domain.ParseDate(r.DataVencimento),
		IssueDate:   domain.ParseDate(r.DataEmissao),
	}
}
