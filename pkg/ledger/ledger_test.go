package ledger

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const syncID = "99999999-9999-4999-8999-999999999999"

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, "hunter2", syncID, log.New(io.Discard))
	require.NoError(t, err)
	return c
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New("not a url", "pw", syncID, log.New(io.Discard))
	assert.Error(t, err)
}

func TestFetchesSendCredentialAndDecodeEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "hunter2", r.Header.Get("x-api-key"))
		assert.Equal(t, "/budgets/"+syncID+"/payees", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		io.WriteString(w, `{"data":[{"id":"p1","name":"Transfer: Saver","transfer_acct":"a1"},{"id":"p2","name":"Energy Co"}]}`)
	})

	payees, err := c.Payees()
	require.NoError(t, err)
	require.Len(t, payees, 2)
	assert.Equal(t, "a1", payees[0].TransferAccountID)
	assert.Empty(t, payees[1].TransferAccountID)
}

func TestCreateCategory(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/budgets/"+syncID+"/categories", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Interest", body["name"])
		assert.Equal(t, "g1", body["group_id"])

		io.WriteString(w, `{"data":"cat-new"}`)
	})

	id, err := c.CreateCategory("Interest", "g1")
	require.NoError(t, err)
	assert.Equal(t, "cat-new", id)
}

func TestImportTransactions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/budgets/"+syncID+"/accounts/a1/transactions-import", r.URL.Path)

		var body map[string][]Transaction
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body["transactions"], 1)
		assert.Equal(t, "2023-01-15", body["transactions"][0].Date)
		assert.Equal(t, int64(-1111), body["transactions"][0].Amount)

		io.WriteString(w, `{"data":{"added":["t1"],"updated":[],"errors":[]}}`)
	})

	res, err := c.ImportTransactions("a1", []Transaction{{
		Date:     "2023-01-15",
		Amount:   -1111,
		Cleared:  true,
		ImportID: "0123456789",
	}})
	require.NoError(t, err)
	assert.Len(t, res.Added, 1)
	assert.Empty(t, res.Updated)
}

func TestSync(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, "/budgets/"+syncID+"/sync", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})
	require.NoError(t, c.Sync())
	assert.True(t, called)
}

func TestServerErrorsSurface(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "budget file not found", http.StatusNotFound)
	})
	_, err := c.Accounts()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "budget file not found")
}
