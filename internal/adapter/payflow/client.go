package payflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"rosca-payflow-bridge/internal/core/domain"
	"rosca-payflow-bridge/internal/core/ports"

	"github.com/rs/zerolog"
)

// APIError is raised for any non-2xx PayFlow response. It carries the HTTP
// status code and the raw response body verbatim; nothing is retried here.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("PayFlow API error (%d): %s", e.Status, e.Body)
}

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenSource supplies a short-lived bearer credential. Get returns the
// cached token or fetches a fresh one; Invalidate discards the cached value
// so the next Get fetches again.
type TokenSource interface {
	Get(ctx context.Context) (string, error)
	Invalidate()
}

// Client is the typed HTTP client for the PayFlow wallet service. It holds
// no state beyond the configured base URL and credentials: every operation
// is a single request/response round trip.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient HTTPClient
	tokens     TokenSource
	log        zerolog.Logger
}

// NewClient creates a PayFlow client authenticating with a static API key.
func NewClient(baseURL, apiKey string, httpClient HTTPClient, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		log:        log,
	}
}

// WithTokenSource switches the client to short-lived bearer tokens. On a
// 401/403 response the source is invalidated before the error surfaces; the
// caller owns any retry.
func (c *Client) WithTokenSource(ts TokenSource) *Client {
	c.tokens = ts
	return c
}

var _ ports.WalletService = (*Client)(nil)

type createWalletRequest struct {
	Name     string            `json:"name"`
	Type     domain.WalletType `json:"type"`
	Currency string            `json:"currency"`
	UserID   string            `json:"userId"`
	Metadata map[string]any    `json:"metadata,omitempty"`
}

type updateWalletRequest struct {
	Name   *string `json:"name,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

type transferRequest struct {
	FromWalletID string         `json:"fromWalletId"`
	ToWalletID   string         `json:"toWalletId"`
	Amount       float64        `json:"amount"`
	Description  string         `json:"description"`
	Reference    string         `json:"reference,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

type amountRequest struct {
	Amount      float64        `json:"amount"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type paymentRequest struct {
	WalletID    string         `json:"walletId"`
	Amount      float64        `json:"amount"`
	Currency    string         `json:"currency"`
	Description string         `json:"description"`
	Reference   string         `json:"reference,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// CreateWallet creates a wallet at the PayFlow service.
func (c *Client) CreateWallet(ctx context.Context, in ports.CreateWalletInput) (*domain.Wallet, error) {
	body := createWalletRequest{
		Name:     in.Name,
		Type:     in.Type,
		Currency: in.Currency,
		UserID:   in.UserID,
		Metadata: in.Metadata,
	}
	var wallet domain.Wallet
	if err := c.do(ctx, http.MethodPost, "/api/wallets", body, &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// GetWallet fetches a wallet by its server-assigned id.
func (c *Client) GetWallet(ctx context.Context, walletID string) (*domain.Wallet, error) {
	var wallet domain.Wallet
	if err := c.do(ctx, http.MethodGet, "/api/wallets/"+url.PathEscape(walletID), nil, &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// GetWalletsByUser lists the wallets owned by a user.
func (c *Client) GetWalletsByUser(ctx context.Context, userID string) ([]domain.Wallet, error) {
	var wallets []domain.Wallet
	path := "/api/wallets?userId=" + url.QueryEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &wallets); err != nil {
		return nil, err
	}
	return wallets, nil
}

// UpdateWallet updates a wallet's name and/or active flag.
func (c *Client) UpdateWallet(ctx context.Context, walletID string, upd ports.UpdateWalletInput) (*domain.Wallet, error) {
	body := updateWalletRequest{Name: upd.Name, Active: upd.Active}
	var wallet domain.Wallet
	if err := c.do(ctx, http.MethodPatch, "/api/wallets/"+url.PathEscape(walletID), body, &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// DeleteWallet deletes a wallet. The service may reject the deletion (e.g.
// non-zero balance); that rejection surfaces as an APIError.
func (c *Client) DeleteWallet(ctx context.Context, walletID string) error {
	return c.do(ctx, http.MethodDelete, "/api/wallets/"+url.PathEscape(walletID), nil, nil)
}

// GetWalletTransactions fetches a page of the wallet's transaction history,
// newest first (service-defined ordering).
func (c *Client) GetWalletTransactions(ctx context.Context, walletID string, q ports.TransactionQuery) ([]domain.Transaction, error) {
	params := url.Values{}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		params.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.Status != "" {
		params.Set("status", string(q.Status))
	}

	path := "/api/wallets/" + url.PathEscape(walletID) + "/transactions"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var txns []domain.Transaction
	if err := c.do(ctx, http.MethodGet, path, nil, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

// GetTransaction fetches a single transaction by id.
func (c *Client) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	var tx domain.Transaction
	if err := c.do(ctx, http.MethodGet, "/api/transactions/"+url.PathEscape(transactionID), nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// Transfer moves funds between two wallets. The returned status reflects
// the service's decision and may still be pending.
func (c *Client) Transfer(ctx context.Context, in ports.TransferInput) (*domain.Transaction, error) {
	body := transferRequest{
		FromWalletID: in.FromWalletID,
		ToWalletID:   in.ToWalletID,
		Amount:       in.Amount,
		Description:  in.Description,
		Reference:    in.Reference,
		Metadata:     in.Metadata,
	}
	var tx domain.Transaction
	if err := c.do(ctx, http.MethodPost, "/api/transfers", body, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// CreditWallet credits an amount directly to a wallet.
func (c *Client) CreditWallet(ctx context.Context, walletID string, amount float64, description string, metadata map[string]any) (*domain.Transaction, error) {
	return c.postAmount(ctx, walletID, "credit", amount, description, metadata)
}

// DebitWallet debits an amount directly from a wallet.
func (c *Client) DebitWallet(ctx context.Context, walletID string, amount float64, description string, metadata map[string]any) (*domain.Transaction, error) {
	return c.postAmount(ctx, walletID, "debit", amount, description, metadata)
}

func (c *Client) postAmount(ctx context.Context, walletID, op string, amount float64, description string, metadata map[string]any) (*domain.Transaction, error) {
	body := amountRequest{Amount: amount, Description: description, Metadata: metadata}
	var tx domain.Transaction
	path := "/api/wallets/" + url.PathEscape(walletID) + "/" + op
	if err := c.do(ctx, http.MethodPost, path, body, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// CreatePayment creates a gateway-backed payment.
func (c *Client) CreatePayment(ctx context.Context, in ports.PaymentInput) (*domain.Payment, error) {
	body := paymentRequest{
		WalletID:    in.WalletID,
		Amount:      in.Amount,
		Currency:    in.Currency,
		Description: in.Description,
		Reference:   in.Reference,
		Metadata:    in.Metadata,
	}
	var p domain.Payment
	if err := c.do(ctx, http.MethodPost, "/api/payments", body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPayment fetches a payment by id.
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	var p domain.Payment
	if err := c.do(ctx, http.MethodGet, "/api/payments/"+url.PathEscape(paymentID), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CancelPayment cancels a pending payment.
func (c *Client) CancelPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	var p domain.Payment
	path := "/api/payments/" + url.PathEscape(paymentID) + "/cancel"
	if err := c.do(ctx, http.MethodPost, path, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePayout creates a disbursement on the payout rail.
func (c *Client) CreatePayout(ctx context.Context, in ports.PayoutInput) (*domain.Transaction, error) {
	body := paymentRequest{
		WalletID:    in.WalletID,
		Amount:      in.Amount,
		Currency:    in.Currency,
		Description: in.Description,
		Reference:   in.Reference,
		Metadata:    in.Metadata,
	}
	var tx domain.Transaction
	if err := c.do(ctx, http.MethodPost, "/api/payouts", body, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetPayout fetches a payout by id.
func (c *Client) GetPayout(ctx context.Context, payoutID string) (*domain.Transaction, error) {
	var tx domain.Transaction
	if err := c.do(ctx, http.MethodGet, "/api/payouts/"+url.PathEscape(payoutID), nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetWalletBalance fetches the wallet and projects its balance field.
func (c *Client) GetWalletBalance(ctx context.Context, walletID string) (float64, error) {
	wallet, err := c.GetWallet(ctx, walletID)
	if err != nil {
		return 0, err
	}
	return wallet.Balance, nil
}

// ValidateWallet reports whether the wallet can currently be fetched. Any
// failure collapses to false: a 404 and a service-down condition are
// indistinguishable here, and the underlying error is never propagated.
func (c *Client) ValidateWallet(ctx context.Context, walletID string) bool {
	_, err := c.GetWallet(ctx, walletID)
	return err == nil
}

// HealthCheck probes PayFlow liveness.
func (c *Client) HealthCheck(ctx context.Context) (*ports.HealthStatus, error) {
	var hs ports.HealthStatus
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &hs); err != nil {
		return nil, err
	}
	return &hs, nil
}

// do performs one authenticated round trip. body is JSON-encoded when
// non-nil; out is decoded from a 2xx response body when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	bearer := c.apiKey
	if c.tokens != nil {
		bearer, err = c.tokens.Get(ctx)
		if err != nil {
			return fmt.Errorf("fetching payflow token: %w", err)
		}
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("payflow request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading payflow response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if c.tokens != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			c.tokens.Invalidate()
		}
		c.log.Warn().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("payflow returned non-2xx")
		return &APIError{Status: resp.StatusCode, Body: string(raw)}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decoding payflow response: %w", err)
		}
	}
	return nil
}
