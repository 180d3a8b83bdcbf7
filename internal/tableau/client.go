package tableau

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"salesdash/internal/models"
)

const apiVersion = "3.24"

// Credentials for personal-access-token sign-in.
type Credentials struct {
	Server   string
	SiteName string
	PATName  string
	PATValue string
}

// CredentialsFromEnv reads SERVER, SITE_NAME, PAT_NAME and PAT_VALUE.
func CredentialsFromEnv() (Credentials, error) {
	creds := Credentials{
		Server:   strings.TrimRight(os.Getenv("SERVER"), "/"),
		SiteName: os.Getenv("SITE_NAME"),
		PATName:  os.Getenv("PAT_NAME"),
		PATValue: os.Getenv("PAT_VALUE"),
	}
	if creds.Server == "" || creds.PATName == "" || creds.PATValue == "" {
		return Credentials{}, fmt.Errorf("missing SERVER, PAT_NAME or PAT_VALUE in environment")
	}
	return creds, nil
}

// Client is a minimal Tableau REST client: sign in with a PAT, run one
// query-datasource call, sign out.
type Client struct {
	creds  Credentials
	http   *http.Client
	token  string
	siteID string
}

func NewClient(creds Credentials) *Client {
	return &Client{
		creds: creds,
		http:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) SignIn(ctx context.Context) error {
	body := map[string]interface{}{
		"credentials": map[string]interface{}{
			"personalAccessTokenName":   c.creds.PATName,
			"personalAccessTokenSecret": c.creds.PATValue,
			"site":                      map[string]string{"contentUrl": c.creds.SiteName},
		},
	}

	var out struct {
		Credentials struct {
			Token string `json:"token"`
			Site  struct {
				ID string `json:"id"`
			} `json:"site"`
		} `json:"credentials"`
	}
	url := fmt.Sprintf("%s/api/%s/auth/signin", c.creds.Server, apiVersion)
	if err := c.post(ctx, url, body, &out); err != nil {
		return fmt.Errorf("sign in: %w", err)
	}
	if out.Credentials.Token == "" || out.Credentials.Site.ID == "" {
		return fmt.Errorf("sign in: empty token or site id in response")
	}
	c.token = out.Credentials.Token
	c.siteID = out.Credentials.Site.ID
	return nil
}

// SignOut invalidates the session token. Best effort; fetch results are
// already on disk by the time this runs.
func (c *Client) SignOut(ctx context.Context) {
	if c.token == "" {
		return
	}
	url := fmt.Sprintf("%s/api/%s/auth/signout", c.creds.Server, apiVersion)
	_ = c.post(ctx, url, nil, nil)
	c.token = ""
}

type queryRow struct {
	Date      string  `json:"Date"`
	OrderDate string  `json:"Order Date"`
	Category  string  `json:"Category"`
	Segment   string  `json:"Segment"`
	Value     float64 `json:"Value"`
	Sales     float64 `json:"Sales"`
}

// QueryDatasource pulls day-truncated, pre-aggregated order rows for a
// datasource. months > 0 restricts to the last N months; anything else
// fetches the full history.
func (c *Client) QueryDatasource(ctx context.Context, datasourceLUID string, months int) ([]models.Record, error) {
	filters := []interface{}{}
	if months > 0 {
		filters = append(filters, map[string]interface{}{
			"field":         map[string]string{"fieldCaption": "Order Date"},
			"filterType":    "DATE",
			"dateRangeType": "LASTN",
			"periodType":    "MONTHS",
			"rangeN":        months,
		})
	}

	body := map[string]interface{}{
		"datasource": map[string]string{"datasourceLuid": datasourceLUID},
		"query": map[string]interface{}{
			"fields": []interface{}{
				map[string]string{"fieldCaption": "Order Date", "function": "TRUNC_DAY", "fieldAlias": "Date"},
				map[string]string{"fieldCaption": "Category", "fieldAlias": "Category"},
				map[string]string{"fieldCaption": "Segment", "fieldAlias": "Segment"},
				map[string]string{"fieldCaption": "Sales", "function": "SUM", "fieldAlias": "Value"},
			},
			"filters": filters,
		},
		"options": map[string]interface{}{"returnFormat": "OBJECTS", "disaggregate": false, "debug": false},
	}

	var out struct {
		Data []queryRow `json:"data"`
	}
	url := c.creds.Server + "/api/v1/vizql-data-service/query-datasource"
	if err := c.post(ctx, url, body, &out); err != nil {
		return nil, fmt.Errorf("query datasource: %w", err)
	}

	return toRecords(out.Data), nil
}

// toRecords normalizes raw rows into the dashboard schema and drops any row
// missing a required field. This is the producer-side validation the core
// relies on.
func toRecords(rows []queryRow) []models.Record {
	records := make([]models.Record, 0, len(rows))
	for _, row := range rows {
		date := normalizeDate(pick(row.Date, row.OrderDate))
		value := row.Value
		if value == 0 {
			value = row.Sales
		}
		if date == "" || row.Category == "" || row.Segment == "" {
			continue
		}
		records = append(records, models.Record{
			Date:     date,
			Category: row.Category,
			Segment:  row.Segment,
			Value:    value,
		})
	}
	return records
}

func pick(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// normalizeDate coerces upstream timestamps to plain YYYY-MM-DD.
func normalizeDate(input string) string {
	if input == "" {
		return ""
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, input); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

func (c *Client) post(ctx context.Context, url string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("X-Tableau-Auth", c.token)
	}

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
		snippet := string(raw)
		if len(snippet) > 500 {
			snippet = snippet[:500]
		}
		return fmt.Errorf("HTTP %d %s: %s", resp.StatusCode, resp.Status, snippet)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
