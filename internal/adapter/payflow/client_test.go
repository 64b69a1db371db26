package payflow

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"rosca-payflow-bridge/internal/core/domain"
	"rosca-payflow-bridge/internal/core/ports"
	"rosca-payflow-bridge/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-api-key", srv.Client(), logger.NewWithWriter("error", discard{}))
}

func TestClient_CreateWallet(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/wallets", r.URL.Path)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Village Savings", body["name"])
		assert.Equal(t, "group", body["type"])
		assert.Equal(t, "KES", body["currency"])
		assert.Equal(t, "user-1", body["userId"])

		md := body["metadata"].(map[string]any)
		assert.Equal(t, "rosca_group", md["type"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.Wallet{
			ID: "w-1", Name: "Village Savings", Type: domain.WalletTypeGroup,
			Currency: "KES", Active: true, UserID: "user-1",
			Metadata: map[string]any{"type": "rosca_group"},
		})
	})

	wallet, err := client.CreateWallet(context.Background(), ports.CreateWalletInput{
		Name:     "Village Savings",
		Type:     domain.WalletTypeGroup,
		Currency: "KES",
		UserID:   "user-1",
		Metadata: map[string]any{"type": "rosca_group"},
	})
	require.NoError(t, err)
	assert.Equal(t, "w-1", wallet.ID)
	assert.Equal(t, domain.WalletTypeGroup, wallet.Type)
	assert.Equal(t, "KES", wallet.Currency)
	assert.Equal(t, "rosca_group", domain.MetaString(wallet.Metadata, "type"))
}

func TestClient_GetWallet_NotFound(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"wallet not found"}`))
	})

	_, err := client.GetWallet(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	// Status and body are surfaced verbatim.
	assert.Equal(t, `{"error":"wallet not found"}`, apiErr.Body)
	assert.Equal(t, `PayFlow API error (404): {"error":"wallet not found"}`, apiErr.Error())
}

func TestClient_GetWalletsByUser(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/wallets", r.URL.Path)
		assert.Equal(t, "user-1", r.URL.Query().Get("userId"))
		json.NewEncoder(w).Encode([]domain.Wallet{{ID: "w-1"}, {ID: "w-2"}})
	})

	wallets, err := client.GetWalletsByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, wallets, 2)
	assert.Equal(t, "w-1", wallets[0].ID)
}

func TestClient_UpdateWallet(t *testing.T) {
	name := "Renamed"
	active := false
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/wallets/w-1", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Renamed", body["name"])
		assert.Equal(t, false, body["active"])

		json.NewEncoder(w).Encode(domain.Wallet{ID: "w-1", Name: "Renamed", Active: false})
	})

	wallet, err := client.UpdateWallet(context.Background(), "w-1", ports.UpdateWalletInput{Name: &name, Active: &active})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", wallet.Name)
	assert.False(t, wallet.Active)
}

func TestClient_DeleteWallet(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/api/wallets/w-1", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		})
		assert.NoError(t, client.DeleteWallet(context.Background(), "w-1"))
	})

	t.Run("rejected by service", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"error":"wallet has non-zero balance"}`))
		})
		err := client.DeleteWallet(context.Background(), "w-1")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusConflict, apiErr.Status)
	})
}

func TestClient_GetWalletTransactions_Query(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/wallets/w-1/transactions", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "25", q.Get("limit"))
		assert.Equal(t, "50", q.Get("offset"))
		assert.Equal(t, "completed", q.Get("status"))
		json.NewEncoder(w).Encode([]domain.Transaction{{ID: "t-1"}})
	})

	txns, err := client.GetWalletTransactions(context.Background(), "w-1", ports.TransactionQuery{
		Limit:  25,
		Offset: 50,
		Status: domain.TransactionStatusCompleted,
	})
	require.NoError(t, err)
	require.Len(t, txns, 1)
}

func TestClient_Transfer(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/transfers", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "w-from", body["fromWalletId"])
		assert.Equal(t, "w-to", body["toWalletId"])
		assert.Equal(t, 100.0, body["amount"])
		assert.Equal(t, "rosca_grp-1_r2", body["reference"])

		from, to := "w-from", "w-to"
		json.NewEncoder(w).Encode(domain.Transaction{
			ID: "t-1", FromWalletID: &from, ToWalletID: &to,
			Amount: 100, Type: domain.TransactionTypeTransfer,
			Status: domain.TransactionStatusPending, Reference: "rosca_grp-1_r2",
		})
	})

	tx, err := client.Transfer(context.Background(), ports.TransferInput{
		FromWalletID: "w-from",
		ToWalletID:   "w-to",
		Amount:       100,
		Description:  "ROSCA contribution - round 2",
		Reference:    "rosca_grp-1_r2",
		Metadata:     map[string]any{"type": "rosca_contribution"},
	})
	require.NoError(t, err)
	assert.Equal(t, "t-1", tx.ID)
	// The service may well still report pending; the status is its call.
	assert.Equal(t, domain.TransactionStatusPending, tx.Status)
}

func TestClient_CreditAndDebit(t *testing.T) {
	var gotPath string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 50.0, body["amount"])
		json.NewEncoder(w).Encode(domain.Transaction{ID: "t-1", Amount: 50})
	})

	_, err := client.CreditWallet(context.Background(), "w-1", 50, "topup", nil)
	require.NoError(t, err)
	assert.Equal(t, "/api/wallets/w-1/credit", gotPath)

	_, err = client.DebitWallet(context.Background(), "w-1", 50, "withdrawal", nil)
	require.NoError(t, err)
	assert.Equal(t, "/api/wallets/w-1/debit", gotPath)
}

func TestClient_PaymentLifecycle(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/payments":
			json.NewEncoder(w).Encode(domain.Payment{ID: "p-1", Status: domain.PaymentStatusPending})
		case r.Method == http.MethodGet && r.URL.Path == "/api/payments/p-1":
			json.NewEncoder(w).Encode(domain.Payment{ID: "p-1", Status: domain.PaymentStatusPending})
		case r.Method == http.MethodPost && r.URL.Path == "/api/payments/p-1/cancel":
			json.NewEncoder(w).Encode(domain.Payment{ID: "p-1", Status: domain.PaymentStatusCancelled})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	ctx := context.Background()
	p, err := client.CreatePayment(ctx, ports.PaymentInput{WalletID: "w-1", Amount: 10, Currency: "USD"})
	require.NoError(t, err)
	assert.Equal(t, "p-1", p.ID)

	p, err = client.GetPayment(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, p.Status)

	p, err = client.CancelPayment(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusCancelled, p.Status)
}

func TestClient_Payouts(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/payouts":
			json.NewEncoder(w).Encode(domain.Transaction{ID: "po-1", Status: domain.TransactionStatusPending})
		case r.Method == http.MethodGet && r.URL.Path == "/api/payouts/po-1":
			json.NewEncoder(w).Encode(domain.Transaction{ID: "po-1", Status: domain.TransactionStatusCompleted})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	ctx := context.Background()
	tx, err := client.CreatePayout(ctx, ports.PayoutInput{WalletID: "w-1", Amount: 100, Currency: "USD"})
	require.NoError(t, err)
	assert.Equal(t, "po-1", tx.ID)

	tx, err = client.GetPayout(ctx, "po-1")
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusCompleted, tx.Status)
}

func TestClient_GetWalletBalance(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/wallets/w-1", r.URL.Path)
		json.NewEncoder(w).Encode(domain.Wallet{ID: "w-1", Balance: 123.45})
	})

	balance, err := client.GetWalletBalance(context.Background(), "w-1")
	require.NoError(t, err)
	assert.Equal(t, 123.45, balance)
}

func TestClient_ValidateWallet(t *testing.T) {
	t.Run("true when wallet exists", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(domain.Wallet{ID: "w-1"})
		})
		assert.True(t, client.ValidateWallet(context.Background(), "w-1"))
	})

	t.Run("false on 404", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		assert.False(t, client.ValidateWallet(context.Background(), "w-1"))
	})

	t.Run("false when service is down", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		client := NewClient(srv.URL, "k", srv.Client(), logger.NewWithWriter("error", discard{}))
		srv.Close()
		assert.False(t, client.ValidateWallet(context.Background(), "w-1"))
	})
}

func TestClient_HealthCheck(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		w.Write([]byte(`{"status":"ok","timestamp":"2026-08-31T12:00:00Z"}`))
	})

	hs, err := client.HealthCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", hs.Status)
	assert.Equal(t, 2026, hs.Timestamp.Year())
}

func TestClient_TransportErrorIsNotAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(srv.URL, "k", srv.Client(), logger.NewWithWriter("error", discard{}))
	srv.Close()

	_, err := client.GetWallet(context.Background(), "w-1")
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

type fakeTokenSource struct {
	token       string
	invalidated int
}

func (f *fakeTokenSource) Get(ctx context.Context) (string, error) { return f.token, nil }
func (f *fakeTokenSource) Invalidate()                             { f.invalidated++ }

func TestClient_TokenSource(t *testing.T) {
	var gotAuth string
	var status = http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(status)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ts := &fakeTokenSource{token: "short-lived"}
	client := NewClient(srv.URL, "unused", srv.Client(), logger.NewWithWriter("error", discard{})).WithTokenSource(ts)

	_, err := client.GetWallet(context.Background(), "w-1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer short-lived", gotAuth)
	assert.Equal(t, 0, ts.invalidated)

	// A 403 invalidates the source before the error surfaces; no retry.
	status = http.StatusForbidden
	_, err = client.GetWallet(context.Background(), "w-1")
	require.Error(t, err)
	assert.Equal(t, 1, ts.invalidated)
}
