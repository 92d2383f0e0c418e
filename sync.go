package moneybook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// SyncClient talks to the external persistence service that stores whole
// books per user. The contract is whole-collection replace: every push
// uploads the full {transactions, assets, insights} collection, every
// fetch downloads it. The service owns write serialization; the client
// just shuttles books.
type SyncClient struct {
	BaseURL string
	UserID  string
	Client  *http.Client
}

// NewSyncClient creates a sync client for the given server and user.
func NewSyncClient(baseURL, userID string) *SyncClient {
	return &SyncClient{
		BaseURL: baseURL,
		UserID:  userID,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// syncPayload is the wire form of a whole book.
type syncPayload struct {
	UserID       string         `json:"userId,omitempty"`
	Transactions []*Transaction `json:"transactions"`
	Assets       []*Asset       `json:"assets"`
	Insights     []*Insight     `json:"insights"`
	LastUpdated  string         `json:"lastUpdated,omitempty"`
}

// Fetch downloads the user's whole book from the service.
func (c *SyncClient) Fetch(ctx context.Context) (*Book, error) {
	addr := fmt.Sprintf("%s/api/data?userId=%s", c.BaseURL, url.QueryEscape(c.UserID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not fetch book for %q: %w", c.UserID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sync server returned %s fetching book for %q", resp.Status, c.UserID)
	}

	var payload syncPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("could not decode book for %q: %w", c.UserID, err)
	}
	b := NewBook()
	b.Transactions = payload.Transactions
	b.Assets = payload.Assets
	b.Insights = payload.Insights
	b.sortTransactions()
	return b, nil
}

// Push uploads the whole book to the service, replacing whatever the
// server holds for the user.
func (c *SyncClient) Push(ctx context.Context, b *Book) error {
	payload := syncPayload{
		UserID:       c.UserID,
		Transactions: b.Transactions,
		Assets:       b.Assets,
		Insights:     b.Insights,
		LastUpdated:  time.Now().UTC().Format(time.RFC3339),
	}
	if payload.Transactions == nil {
		payload.Transactions = []*Transaction{}
	}
	if payload.Assets == nil {
		payload.Assets = []*Asset{}
	}
	if payload.Insights == nil {
		payload.Insights = []*Insight{}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("could not encode book for %q: %w", c.UserID, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/data", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("could not push book for %q: %w", c.UserID, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sync server returned %s pushing book for %q", resp.Status, c.UserID)
	}
	return nil
}
