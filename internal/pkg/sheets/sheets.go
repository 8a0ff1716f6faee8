// Package sheets talks to the Google Sheets values API. The remote
// spreadsheet is a three-column key-value table: username, data key, JSON
// payload. It mirrors the local records table.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/oauth2/google"
)

const (
	defaultBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"
	scope          = "https://www.googleapis.com/auth/spreadsheets"
)

type Service interface {
	// ReadRows returns every row of the data sheet.
	ReadRows(ctx context.Context) ([][]string, error)
	// ReplaceUserRows swaps one user's rows for the given set, leaving other
	// users' rows untouched.
	ReplaceUserRows(ctx context.Context, username string, rows [][]string) error
}

type Client struct {
	httpClient    *http.Client
	baseURL       string
	spreadsheetID string
	sheetName     string
}

// NewClient builds a client authenticated as a service account. The JSON key
// is the standard service-account credentials file content. Token refresh and
// caching are handled by the underlying token source.
func NewClient(ctx context.Context, serviceAccountJSON []byte, spreadsheetID string, sheetName string) (*Client, error) {
	conf, err := google.JWTConfigFromJSON(serviceAccountJSON, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}
	return &Client{
		httpClient:    conf.Client(ctx),
		baseURL:       defaultBaseURL,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// NewClientWithHTTP wires an explicit HTTP client and base URL, for tests.
func NewClientWithHTTP(httpClient *http.Client, baseURL string, spreadsheetID string, sheetName string) *Client {
	return &Client{
		httpClient:    httpClient,
		baseURL:       baseURL,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}
}

type valueRange struct {
	Values [][]string `json:"values"`
}

// ReadRows implements Service.
func (c *Client) ReadRows(ctx context.Context) ([][]string, error) {
	endpoint := fmt.Sprintf("%s/%s/values/%s", c.baseURL, c.spreadsheetID, url.PathEscape(c.sheetName))

	var out valueRange
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return out.Values, nil
}

// ReplaceUserRows implements Service. The values API has no row-level
// delete, so the swap is read everything, clear the sheet, write back the
// other users' rows and append the new ones.
func (c *Client) ReplaceUserRows(ctx context.Context, username string, rows [][]string) error {
	existing, err := c.ReadRows(ctx)
	if err != nil {
		return err
	}

	kept := make([][]string, 0, len(existing))
	for _, row := range existing {
		if len(row) > 0 && row[0] == username {
			continue
		}
		kept = append(kept, row)
	}

	if err := c.clear(ctx); err != nil {
		return err
	}
	if len(kept) > 0 {
		if err := c.writeRows(ctx, kept); err != nil {
			return err
		}
	}
	if len(rows) > 0 {
		if err := c.appendRows(ctx, rows); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) clear(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/%s/values/%s:clear", c.baseURL, c.spreadsheetID, url.PathEscape(c.sheetName))
	return c.do(ctx, http.MethodPost, endpoint, nil, nil)
}

func (c *Client) writeRows(ctx context.Context, rows [][]string) error {
	endpoint := fmt.Sprintf("%s/%s/values/%s?valueInputOption=RAW", c.baseURL, c.spreadsheetID, url.PathEscape(c.sheetName))
	return c.do(ctx, http.MethodPut, endpoint, &valueRange{Values: rows}, nil)
}

func (c *Client) appendRows(ctx context.Context, rows [][]string) error {
	endpoint := fmt.Sprintf("%s/%s/values/%s:append?valueInputOption=RAW", c.baseURL, c.spreadsheetID, url.PathEscape(c.sheetName))
	return c.do(ctx, http.MethodPost, endpoint, &valueRange{Values: rows}, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body *valueRange, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sheets request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sheets API returned %d: %s", resp.StatusCode, snippet)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode sheets response: %w", err)
		}
	}
	return nil
}
