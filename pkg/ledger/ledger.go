// Package ledger is a thin client for the budget server's REST API. One
// client is one session: server address, API password, and the sync id of
// the budget being written to.
package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
)

type Client struct {
	baseURL  string
	password string
	syncID   string
	http     *http.Client
	logger   *log.Logger
}

func New(serverURL, password, syncID string, logger *log.Logger) (*Client, error) {
	u, err := url.Parse(serverURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q", serverURL)
	}
	return &Client{
		baseURL:  strings.TrimRight(serverURL, "/"),
		password: password,
		syncID:   syncID,
		http:     &http.Client{},
		logger:   logger,
	}, nil
}

func (c *Client) Accounts() ([]Account, error) {
	var out []Account
	if err := c.get("/accounts", &out); err != nil {
		return nil, fmt.Errorf("fetching accounts: %w", err)
	}
	return out, nil
}

func (c *Client) Payees() ([]Payee, error) {
	var out []Payee
	if err := c.get("/payees", &out); err != nil {
		return nil, fmt.Errorf("fetching payees: %w", err)
	}
	return out, nil
}

func (c *Client) Categories() ([]Category, error) {
	var out []Category
	if err := c.get("/categories", &out); err != nil {
		return nil, fmt.Errorf("fetching categories: %w", err)
	}
	return out, nil
}

func (c *Client) CategoryGroups() ([]CategoryGroup, error) {
	var out []CategoryGroup
	if err := c.get("/categorygroups", &out); err != nil {
		return nil, fmt.Errorf("fetching category groups: %w", err)
	}
	return out, nil
}

// CreateCategory creates a category under the given group and returns its id.
func (c *Client) CreateCategory(name, groupID string) (string, error) {
	body := map[string]string{"name": name, "group_id": groupID}
	var id string
	if err := c.post("/categories", body, &id); err != nil {
		return "", fmt.Errorf("creating category %q: %w", name, err)
	}
	c.logger.Info("created category", "name", name, "id", id)
	return id, nil
}

// ImportTransactions submits one batch for one account. Deduplication by
// ImportID happens server-side.
func (c *Client) ImportTransactions(accountID string, txs []Transaction) (ImportResult, error) {
	body := map[string][]Transaction{"transactions": txs}
	var res ImportResult
	if err := c.post("/accounts/"+accountID+"/transactions-import", body, &res); err != nil {
		return ImportResult{}, fmt.Errorf("importing %d transactions into account %s: %w", len(txs), accountID, err)
	}
	return res, nil
}

// Sync asks the server to push the budget file to its sync backend.
func (c *Client) Sync() error {
	if err := c.post("/sync", nil, nil); err != nil {
		return fmt.Errorf("syncing budget: %w", err)
	}
	return nil
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

func (c *Client) get(path string, out any) error {
	return c.do(http.MethodGet, path, nil, out)
}

func (c *Client) post(path string, body, out any) error {
	return c.do(http.MethodPost, path, body, out)
}

func (c *Client) do(method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(data)
	}

	endpoint := c.baseURL + "/budgets/" + c.syncID + path
	req, err := http.NewRequest(method, endpoint, payload)
	if err != nil {
		return err
	}
	req.Header.Set("x-api-key", c.password)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("ledger request", "method", method, "path", path)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, snippet(raw))
	}
	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%s %s: decoding response: %w", method, path, err)
	}
	return json.Unmarshal(env.Data, out)
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		return s[:200] + "…"
	}
	return s
}
