// Package transparency fetches daily operational data from the ENTSOG
// transparency platform.
package transparency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
)

// DefaultBaseURL is the public API root.
const DefaultBaseURL = "https://transparency.entsog.eu/api/v1"

// ErrUnexpectedPoint is returned when a response belongs to another point than requested.
var ErrUnexpectedPoint = errors.New("response is for a different point")

// StatusError is returned for non-200 responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("transparency API returned status %d", e.Code)
	}
	return fmt.Sprintf("transparency API returned status %d: %s", e.Code, e.Body)
}

// Query identifies one series request.
type Query struct {
	PointID   string
	Indicator models.Indicator
	From      models.CalendarDate
	To        models.CalendarDate
	Timezone  string
}

// Key returns the cache key of the query.
func (q Query) Key() string {
	return strings.Join([]string{q.PointID, q.Indicator.QueryValue(), q.From.String(), q.To.String(), q.Timezone}, "|")
}

type operationalDataResponse struct {
	OperationalData []operationalDataRow `json:"operationalData"`
	Meta            struct {
		Query struct {
			PointDirection string `json:"pointDirection"`
		} `json:"query"`
	} `json:"meta"`
}

type operationalDataRow struct {
	PeriodFrom string   `json:"periodFrom"`
	Value      *float64 `json:"value"`
}

// Client talks to the transparency API. It never retries; a failed request
// is reported to the caller as is.
type Client struct {
	http    *resty.Client
	baseURL string
}

// New creates a client for baseURL. An empty baseURL uses DefaultBaseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(0)
	client.SetHeader("Accept", "application/json")

	return &Client{
		http:    client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Fetch retrieves one point's daily series. Points are returned in ascending
// date order; a null value becomes NaN.
func (c *Client) Fetch(ctx context.Context, q Query) (models.NamedSeries, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"limit":          "-1",
			"indicator":      q.Indicator.QueryValue(),
			"periodType":     "day",
			"pointDirection": q.PointID,
			"from":           q.From.String(),
			"to":             q.To.String(),
			"timezone":       q.Timezone,
		}).
		Get(c.baseURL + "/operationalData")
	if err != nil {
		return models.NamedSeries{}, fmt.Errorf("failed to fetch %s: %w", q.PointID, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return models.NamedSeries{}, fmt.Errorf("%s: %w", q.PointID, &StatusError{
			Code: resp.StatusCode(),
			Body: truncate(strings.TrimSpace(resp.String()), 200),
		})
	}

	var data operationalDataResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return models.NamedSeries{}, fmt.Errorf("failed to parse %s response: %w", q.PointID, err)
	}

	return toSeries(q.PointID, data)
}

func toSeries(pointID string, data operationalDataResponse) (models.NamedSeries, error) {
	id := data.Meta.Query.PointDirection
	if id == "" {
		id = pointID
	}
	if id != pointID {
		return models.NamedSeries{}, fmt.Errorf("%w: asked for %s, got %s", ErrUnexpectedPoint, pointID, id)
	}

	points := make([]models.Point, 0, len(data.OperationalData))
	for _, row := range data.OperationalData {
		date, err := models.DateFromPeriod(row.PeriodFrom)
		if err != nil {
			return models.NamedSeries{}, fmt.Errorf("%s: %w", pointID, err)
		}
		value := math.NaN()
		if row.Value != nil {
			value = *row.Value
		}
		points = append(points, models.Point{Date: date, Value: value})
	}

	slices.SortStableFunc(points, func(a, b models.Point) int {
		return strings.Compare(string(a.Date), string(b.Date))
	})

	// keep the last row reported for a day
	deduped := points[:0]
	for _, p := range points {
		if n := len(deduped); n > 0 && deduped[n-1].Date == p.Date {
			deduped[n-1] = p
			continue
		}
		deduped = append(deduped, p)
	}

	return models.NamedSeries{Name: id, Points: deduped}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
