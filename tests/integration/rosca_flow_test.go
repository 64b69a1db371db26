package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	httpHandler "rosca-payflow-bridge/internal/adapter/http/handler"
	"rosca-payflow-bridge/internal/adapter/payflow"
	redisStorage "rosca-payflow-bridge/internal/adapter/storage/redis"
	"rosca-payflow-bridge/internal/service"
	"rosca-payflow-bridge/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-api-key"

// testApp wires the full stack against a fake PayFlow service and
// miniredis: real HTTP layer, handlers, ROSCA service, typed client.
type testApp struct {
	server  *httptest.Server
	payflow *fakePayFlow
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	fake := newFakePayFlow(testAPIKey)
	upstream := httptest.NewServer(fake.handler())
	t.Cleanup(upstream.Close)

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	log := logger.NewWithWriter("error", discardWriter{})
	pfClient := payflow.NewClient(upstream.URL, testAPIKey, upstream.Client(), log)
	roscaSvc := service.NewRoscaService(pfClient, log)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		RoscaSvc:         roscaSvc,
		GroupRepo:        newInMemoryGroupRepo(),
		MemberRepo:       newInMemoryMemberRepo(),
		IdempotencyCache: redisStorage.NewIdempotencyCache(rdb),
		RateLimitStore:   redisStorage.NewRateLimitStore(rdb),
		Logger:           log,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testApp{server: srv, payflow: fake}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func (a *testApp) request(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, a.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&envelope)
	return resp.StatusCode, envelope.Data
}

func (a *testApp) createGroup(t *testing.T) (groupID, groupWalletID string) {
	t.Helper()
	status, data := a.request(t, http.MethodPost, "/api/v1/groups", map[string]any{
		"name":                "Village Savings",
		"currency":            "USD",
		"contribution_amount": 100,
		"creator_user_id":     "user-admin",
	})
	require.Equal(t, http.StatusCreated, status)
	return data["id"].(string), data["wallet_id"].(string)
}

func (a *testApp) addMember(t *testing.T, groupID, userID, name string, position int) (memberID, walletID string) {
	t.Helper()
	status, data := a.request(t, http.MethodPost, "/api/v1/groups/"+groupID+"/members", map[string]any{
		"user_id":  userID,
		"name":     name,
		"position": position,
	})
	require.Equal(t, http.StatusCreated, status)
	return data["id"].(string), data["wallet_id"].(string)
}

func TestFullRoundFlow(t *testing.T) {
	app := newTestApp(t)

	groupID, groupWalletID := app.createGroup(t)

	names := []string{"Alice", "Bob", "Carol", "Dave"}
	memberIDs := make([]string, 0, len(names))
	walletIDs := make([]string, 0, len(names))
	for i, name := range names {
		mID, wID := app.addMember(t, groupID, fmt.Sprintf("user-%d", i+1), name, i+1)
		memberIDs = append(memberIDs, mID)
		walletIDs = append(walletIDs, wID)
		app.payflow.seedBalance(wID, 150)
	}

	// Collect round 2: every member pays 100 into the pot.
	status, data := app.request(t, http.MethodPost, "/api/v1/groups/"+groupID+"/rounds/2/collect", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(4), data["succeeded"])
	assert.Equal(t, float64(0), data["failed"])
	assert.Equal(t, 400.0, app.payflow.balance(groupWalletID))
	for _, wID := range walletIDs {
		assert.Equal(t, 50.0, app.payflow.balance(wID))
	}

	// Pay the round-2 pot out to Alice (default amount = 100 x 4 members).
	status, data = app.request(t, http.MethodPost, "/api/v1/groups/"+groupID+"/rounds/2/payout", map[string]any{
		"member_id": memberIDs[0],
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, float64(400), data["amount"])
	assert.Equal(t, 0.0, app.payflow.balance(groupWalletID))
	assert.Equal(t, 450.0, app.payflow.balance(walletIDs[0]))

	// The group wallet's history holds all five tagged transactions.
	status, data = app.request(t, http.MethodGet, "/api/v1/groups/"+groupID+"/transactions", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(5), data["count"])

	items := data["items"].([]any)
	references := make(map[string]int)
	for _, raw := range items {
		item := raw.(map[string]any)
		references[item["reference"].(string)]++
	}
	assert.Equal(t, 4, references[fmt.Sprintf("rosca_%s_r2", groupID)])
	assert.Equal(t, 1, references[fmt.Sprintf("rosca_payout_%s_r2", groupID)])

	// Alice's stats: one contribution in, the whole pot out.
	status, data = app.request(t, http.MethodGet,
		"/api/v1/groups/"+groupID+"/members/"+memberIDs[0]+"/stats", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(100), data["contributions_total"])
	assert.Equal(t, float64(1), data["contributions_count"])
	assert.Equal(t, float64(400), data["payouts_total"])
	assert.Equal(t, float64(300), data["net_position"])
}

func TestPartialFailureCollection(t *testing.T) {
	app := newTestApp(t)

	groupID, groupWalletID := app.createGroup(t)

	walletIDs := make([]string, 0, 4)
	for i := 1; i <= 4; i++ {
		_, wID := app.addMember(t, groupID, fmt.Sprintf("user-%d", i), fmt.Sprintf("Member%d", i), i)
		walletIDs = append(walletIDs, wID)
	}

	// Fund everyone except the third member.
	app.payflow.seedBalance(walletIDs[0], 100)
	app.payflow.seedBalance(walletIDs[1], 100)
	app.payflow.seedBalance(walletIDs[3], 100)

	status, data := app.request(t, http.MethodPost, "/api/v1/groups/"+groupID+"/rounds/1/collect", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(3), data["succeeded"])
	assert.Equal(t, float64(1), data["failed"])

	// Succeeded contributions are not rolled back by the failed one.
	assert.Equal(t, 300.0, app.payflow.balance(groupWalletID))

	results := data["results"].([]any)
	require.Len(t, results, 4)
	failed := results[2].(map[string]any)
	assert.Equal(t, walletIDs[2], failed["member_wallet_id"])
	assert.Contains(t, failed["error"].(string), "PayFlow API error (402)")
}

func TestContributionIdempotencyEndToEnd(t *testing.T) {
	app := newTestApp(t)

	groupID, groupWalletID := app.createGroup(t)
	memberID, walletID := app.addMember(t, groupID, "user-1", "Alice", 1)
	app.payflow.seedBalance(walletID, 500)

	path := "/api/v1/groups/" + groupID + "/rounds/1/contributions"

	do := func(memberID, key string) (int, map[string]any) {
		var buf bytes.Buffer
		require.NoError(t, json.NewEncoder(&buf).Encode(map[string]any{"member_id": memberID}))
		req, err := http.NewRequest(http.MethodPost, app.server.URL+path, &buf)
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", key)

		resp, err := app.server.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var envelope struct {
			Data map[string]any `json:"data"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		return resp.StatusCode, envelope.Data
	}

	status, first := do(memberID, "round1-alice")
	require.Equal(t, http.StatusCreated, status)

	status, second := do(memberID, "round1-alice")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, first["id"], second["id"])

	// Money moved exactly once.
	assert.Equal(t, 100.0, app.payflow.balance(groupWalletID))
	assert.Equal(t, 400.0, app.payflow.balance(walletID))
}

func TestIdempotencyKeyScopedPerMember(t *testing.T) {
	app := newTestApp(t)

	groupID, groupWalletID := app.createGroup(t)
	aliceID, aliceWallet := app.addMember(t, groupID, "user-1", "Alice", 1)
	bobID, bobWallet := app.addMember(t, groupID, "user-2", "Bob", 2)
	app.payflow.seedBalance(aliceWallet, 500)
	app.payflow.seedBalance(bobWallet, 500)

	path := "/api/v1/groups/" + groupID + "/rounds/1/contributions"

	do := func(memberID string) (int, map[string]any) {
		var buf bytes.Buffer
		require.NoError(t, json.NewEncoder(&buf).Encode(map[string]any{"member_id": memberID}))
		req, err := http.NewRequest(http.MethodPost, app.server.URL+path, &buf)
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", "shared-key")

		resp, err := app.server.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var envelope struct {
			Data map[string]any `json:"data"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		return resp.StatusCode, envelope.Data
	}

	status, aliceTx := do(aliceID)
	require.Equal(t, http.StatusCreated, status)

	// Bob reusing Alice's key still gets his own contribution processed.
	status, bobTx := do(bobID)
	require.Equal(t, http.StatusCreated, status)
	assert.NotEqual(t, aliceTx["id"], bobTx["id"])

	assert.Equal(t, 200.0, app.payflow.balance(groupWalletID))
	assert.Equal(t, 400.0, app.payflow.balance(aliceWallet))
	assert.Equal(t, 400.0, app.payflow.balance(bobWallet))
}

func TestUnknownGroupReturns404(t *testing.T) {
	app := newTestApp(t)

	status, _ := app.request(t, http.MethodPost,
		"/api/v1/groups/1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed/rounds/1/collect", nil)
	assert.Equal(t, http.StatusNotFound, status)
}
