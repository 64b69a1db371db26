package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"rosca-payflow-bridge/internal/core/domain"
)

// fakePayFlow is an in-memory stand-in for the remote PayFlow wallet
// service. It keeps balances and a newest-first transaction log, enforces
// bearer auth, and rejects transfers that exceed the source balance with
// the same 402 body the real service uses.
type fakePayFlow struct {
	mu      sync.Mutex
	apiKey  string
	wallets map[string]*domain.Wallet
	txns    []domain.Transaction
	nextID  int
}

func newFakePayFlow(apiKey string) *fakePayFlow {
	return &fakePayFlow{
		apiKey:  apiKey,
		wallets: make(map[string]*domain.Wallet),
	}
}

func (f *fakePayFlow) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/wallets", f.createWallet)
	mux.HandleFunc("GET /api/wallets/{id}", f.getWallet)
	mux.HandleFunc("POST /api/wallets/{id}/credit", f.credit)
	mux.HandleFunc("GET /api/wallets/{id}/transactions", f.walletTransactions)
	mux.HandleFunc("POST /api/transfers", f.transfer)
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "timestamp": time.Now().UTC()})
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+f.apiKey {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}
		mux.ServeHTTP(w, r)
	})
}

// seedBalance credits a wallet outside the HTTP surface, for test setup.
func (f *fakePayFlow) seedBalance(walletID string, amount float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w, ok := f.wallets[walletID]; ok {
		w.Balance += amount
	}
}

func (f *fakePayFlow) balance(walletID string) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w, ok := f.wallets[walletID]; ok {
		return w.Balance
	}
	return 0
}

func (f *fakePayFlow) createWallet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string            `json:"name"`
		Type     domain.WalletType `json:"type"`
		Currency string            `json:"currency"`
		UserID   string            `json:"userId"`
		Metadata map[string]any    `json:"metadata"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}

	f.mu.Lock()
	f.nextID++
	wallet := &domain.Wallet{
		ID:        fmt.Sprintf("w-%d", f.nextID),
		Name:      req.Name,
		Type:      req.Type,
		Currency:  req.Currency,
		Active:    true,
		UserID:    req.UserID,
		Metadata:  req.Metadata,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	f.wallets[wallet.ID] = wallet
	f.mu.Unlock()

	writeJSON(w, http.StatusCreated, wallet)
}

func (f *fakePayFlow) getWallet(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	wallet, ok := f.wallets[r.PathValue("id")]
	f.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Wallet not found"})
		return
	}
	writeJSON(w, http.StatusOK, wallet)
}

func (f *fakePayFlow) credit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount      float64        `json:"amount"`
		Description string         `json:"description"`
		Metadata    map[string]any `json:"metadata"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	wallet, ok := f.wallets[r.PathValue("id")]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Wallet not found"})
		return
	}
	wallet.Balance += req.Amount
	tx := f.record(domain.Transaction{
		ToWalletID:  &wallet.ID,
		Amount:      req.Amount,
		Currency:    wallet.Currency,
		Type:        domain.TransactionTypeCredit,
		Description: req.Description,
		Metadata:    req.Metadata,
	})
	writeJSON(w, http.StatusCreated, tx)
}

func (f *fakePayFlow) transfer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FromWalletID string         `json:"fromWalletId"`
		ToWalletID   string         `json:"toWalletId"`
		Amount       float64        `json:"amount"`
		Description  string         `json:"description"`
		Reference    string         `json:"reference"`
		Metadata     map[string]any `json:"metadata"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	from, ok := f.wallets[req.FromWalletID]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Wallet not found"})
		return
	}
	to, ok := f.wallets[req.ToWalletID]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Wallet not found"})
		return
	}
	if from.Balance < req.Amount {
		writeJSON(w, http.StatusPaymentRequired, map[string]string{"error": "Insufficient funds"})
		return
	}

	from.Balance -= req.Amount
	to.Balance += req.Amount
	tx := f.record(domain.Transaction{
		FromWalletID: &from.ID,
		ToWalletID:   &to.ID,
		Amount:       req.Amount,
		Currency:     from.Currency,
		Type:         domain.TransactionTypeTransfer,
		Description:  req.Description,
		Reference:    req.Reference,
		Metadata:     req.Metadata,
	})
	writeJSON(w, http.StatusCreated, tx)
}

func (f *fakePayFlow) walletTransactions(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.wallets[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Wallet not found"})
		return
	}

	out := make([]domain.Transaction, 0)
	for _, tx := range f.txns {
		if (tx.FromWalletID != nil && *tx.FromWalletID == id) ||
			(tx.ToWalletID != nil && *tx.ToWalletID == id) {
			out = append(out, tx)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// record assigns an id and terminal status and prepends the transaction to
// the log (newest first, matching the real service's ordering).
// Caller holds f.mu.
func (f *fakePayFlow) record(tx domain.Transaction) domain.Transaction {
	f.nextID++
	tx.ID = fmt.Sprintf("txn-%d", f.nextID)
	tx.Status = domain.TransactionStatusCompleted
	tx.CreatedAt = time.Now().UTC()
	f.txns = append([]domain.Transaction{tx}, f.txns...)
	return tx
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
