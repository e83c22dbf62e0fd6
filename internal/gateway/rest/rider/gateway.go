package rider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ridersync/internal/dto"
	"ridersync/internal/entities"
	retrierconfig "ridersync/pkg/retrier"
	"ridersync/pkg/retrier/backoff_adapter"
)

const (
	initialInterval = 200 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 5 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

const maxErrorBody = 4 << 10

// Gateway - клиент REST API сервера заказов.
type Gateway struct {
	baseURL string
	client  httpClient
	tokens  TokenSource
	retrier retrier
}

func New(baseURL string, client httpClient, tokens TokenSource) *Gateway {
	retryConfig := retrierconfig.Config{
		Policy:          retrierconfig.Exponential,
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     IsRetryable,
	}

	return NewWithRetrier(baseURL, client, tokens, backoff_adapter.New(retryConfig))
}

func NewWithRetrier(baseURL string, client httpClient, tokens TokenSource, r retrier) *Gateway {
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		tokens:  tokens,
		retrier: r,
	}
}

func (g *Gateway) FetchOrders(ctx context.Context) ([]entities.Order, error) {
	var resp dto.OrdersResponse
	if err := g.get(ctx, "FetchOrders", "/api/users/orders", &resp); err != nil {
		return nil, fmt.Errorf("gateway rider, fetch orders: %w", err)
	}
	return dto.OrdersToEntities(resp.Orders), nil
}

func (g *Gateway) FetchRiders(ctx context.Context) ([]entities.Rider, error) {
	var resp []dto.Rider
	if err := g.get(ctx, "FetchRiders", "/api/riders/allRiders", &resp); err != nil {
		return nil, fmt.Errorf("gateway rider, fetch riders: %w", err)
	}

	riders := make([]entities.Rider, 0, len(resp))
	for _, r := range resp {
		riders = append(riders, dto.RiderToEntity(r))
	}
	return riders, nil
}

func (g *Gateway) UpdateStatus(ctx context.Context, orderID string, status entities.OrderStatusType) error {
	path := "/api/users/orders/" + url.PathEscape(orderID) + "/updateStatus"
	body := updateStatusRequest{CurrentStatus: status.String()}

	if err := g.send(ctx, "UpdateStatus", http.MethodPut, path, body, nil); err != nil {
		return fmt.Errorf("gateway rider, update status: %s: %w", orderID, err)
	}
	return nil
}

func (g *Gateway) AssignRider(ctx context.Context, orderID, riderID string) error {
	path := "/api/users/orders/" + url.PathEscape(orderID) + "/assign-rider"
	body := assignRiderRequest{Rider: riderID}

	if err := g.send(ctx, "AssignRider", http.MethodPut, path, body, nil); err != nil {
		return fmt.Errorf("gateway rider, assign rider: %s: %w", orderID, err)
	}
	return nil
}

func (g *Gateway) FetchWithdrawals(ctx context.Context) ([]entities.Withdrawal, error) {
	var resp []dto.Withdrawal
	if err := g.get(ctx, "FetchWithdrawals", "/api/riders/withdraw", &resp); err != nil {
		return nil, fmt.Errorf("gateway rider, fetch withdrawals: %w", err)
	}

	withdrawals := make([]entities.Withdrawal, 0, len(resp))
	for _, w := range resp {
		withdrawals = append(withdrawals, dto.WithdrawalToEntity(w))
	}
	return withdrawals, nil
}

func (g *Gateway) RequestWithdrawal(ctx context.Context, req entities.WithdrawalRequest) (*entities.Withdrawal, error) {
	body := withdrawRequest{
		RiderID:   req.RiderID,
		RiderName: req.RiderName,
		Amount:    json.Number(req.Amount.String()),
	}

	var resp dto.Withdrawal
	if err := g.send(ctx, "RequestWithdrawal", http.MethodPost, "/api/riders/withdraw", body, &resp); err != nil {
		return nil, fmt.Errorf("gateway rider, request withdrawal: %w", err)
	}

	withdrawal := dto.WithdrawalToEntity(resp)
	return &withdrawal, nil
}

func (g *Gateway) Login(ctx context.Context, email, password string) (*entities.Session, error) {
	body := loginRequest{Email: email, Password: password}

	var resp loginResponse
	if err := g.send(ctx, "Login", http.MethodPost, "/api/riders/login", body, &resp); err != nil {
		return nil, fmt.Errorf("gateway rider, login: %w", err)
	}
	if resp.Token == "" || resp.Rider.ID == "" {
		return nil, fmt.Errorf("gateway rider, login: %w: token or rider id missing", ErrUnexpected)
	}

	return &entities.Session{
		RiderID:    resp.Rider.ID,
		Token:      resp.Token,
		SignedInAt: time.Now().UTC(),
	}, nil
}

// Signup регистрирует курьера и возвращает его id. Токен сервер не выдает, после регистрации нужен Login.
func (g *Gateway) Signup(ctx context.Context, req entities.Signup) (string, error) {
	body := signupRequest{
		UserName:    req.Name,
		Email:       req.Email,
		PhoneNumber: req.Phone,
		Password:    req.Password,
		University:  req.University,
	}

	var resp signupResponse
	if err := g.send(ctx, "Signup", http.MethodPost, "/api/riders/signup", body, &resp); err != nil {
		return "", fmt.Errorf("gateway rider, signup: %w", err)
	}
	if resp.NewRider.ID == "" {
		return "", fmt.Errorf("gateway rider, signup: %w: rider id missing", ErrUnexpected)
	}
	return resp.NewRider.ID, nil
}

func (g *Gateway) Universities(ctx context.Context) ([]entities.University, error) {
	var resp dto.UniversitiesResponse
	if err := g.get(ctx, "Universities", "/api/universities", &resp); err != nil {
		return nil, fmt.Errorf("gateway rider, universities: %w", err)
	}
	return dto.UniversitiesToEntities(resp.Universities), nil
}

// get - идемпотентный запрос, ретраится по IsRetryable.
func (g *Gateway) get(ctx context.Context, method, path string, out any) error {
	return g.executeWithMetrics(ctx, method, g.retrier, func(ctx context.Context) error {
		return g.do(ctx, http.MethodGet, path, nil, out)
	})
}

// send - изменяющий запрос, не ретраится: повтор PUT/POST может задвоить действие на сервере.
func (g *Gateway) send(ctx context.Context, method, httpMethod, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	return g.executeWithMetrics(ctx, method, nil, func(ctx context.Context) error {
		return g.do(ctx, httpMethod, path, payload, out)
	})
}

func (g *Gateway) do(ctx context.Context, method, path string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.tokens != nil {
		if token := g.tokens.Token(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(req, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %w", ErrUnexpected, method, path, err)
	}
	return nil
}

func newStatusError(req *http.Request, resp *http.Response) *StatusError {
	statusErr := &StatusError{
		Method: req.Method,
		Path:   req.URL.Path,
		Code:   resp.StatusCode,
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil && len(data) > 0 {
		var body errorResponse
		if json.Unmarshal(data, &body) == nil {
			statusErr.Message = body.Message
		}
	}
	return statusErr
}

// IsRetryable - 429/502/503/504 и сетевые ошибки. Остальные ответы сервера окончательны.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Code {
		case http.StatusTooManyRequests,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, ErrUnexpected) {
		return false
	}

	// сетевые ошибки транспорта
	var netErr net.Error
	var urlErr *url.Error
	return errors.As(err, &netErr) || errors.As(err, &urlErr)
}

func (g *Gateway) executeWithMetrics(ctx context.Context, method string, r retrier, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	call := func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	}

	var err error
	if r != nil {
		err = r.ExecuteWithContext(ctx, call)
	} else {
		err = call(ctx)
	}

	code := responseCode(err)
	RequestDuration.WithLabelValues(method, code).Observe(time.Since(start).Seconds())

	if attempt > 1 {
		RetriesTotal.WithLabelValues(method, code).Add(float64(attempt - 1))
	}

	return err
}

func responseCode(err error) string {
	if err == nil {
		return "OK"
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return strconv.Itoa(statusErr.Code)
	}
	return "TRANSPORT"
}
