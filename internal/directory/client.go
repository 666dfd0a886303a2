package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/airwav/airwav/internal/model"
)

// Timeout and size constants
const (
	DefaultRequestTimeout = 10 * time.Second
	MaxResponseBytes      = 8 * 1024 * 1024
)

// Station ordering accepted by the catalog
const (
	OrderClickCount = "clickcount"
	OrderVotes      = "votes"
	OrderName       = "name"
)

// Query describes one search against the catalog. Empty fields are omitted
// from the request.
type Query struct {
	Name    string
	Country string
	Tag     string
	Order   string
	Limit   int
}

// Client talks to a radio-browser.info compatible API
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a directory client for the given API base URL
func NewClient(baseURL, userAgent string, log zerolog.Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: DefaultRequestTimeout,
		},
		log: log.With().Str("component", "directory").Logger(),
	}
}

// stationRecord mirrors the catalog's JSON station shape; only the fields the
// app consumes are listed
type stationRecord struct {
	StationUUID string `json:"stationuuid"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	URLResolved string `json:"url_resolved"`
	Homepage    string `json:"homepage"`
	Country     string `json:"country"`
	Codec       string `json:"codec"`
	Bitrate     int    `json:"bitrate"`
	Tags        string `json:"tags"`
}

// Search queries the catalog with the given criteria and returns matching
// stations. Failures are always a *LookupError.
func (c *Client) Search(ctx context.Context, query Query) ([]model.Station, error) {
	params := url.Values{}
	if query.Name != "" {
		params.Set("name", query.Name)
	}
	if query.Country != "" {
		params.Set("country", query.Country)
	}
	if query.Tag != "" {
		params.Set("tag", query.Tag)
	}
	order := query.Order
	if order == "" {
		order = OrderClickCount
	}
	params.Set("order", order)
	params.Set("reverse", "true")
	params.Set("hidebroken", "true")
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}

	return c.fetchStations(ctx, "/json/stations/search", params)
}

// Browse lists stations for a single tag, most clicked first
func (c *Client) Browse(ctx context.Context, tag string, limit int) ([]model.Station, error) {
	return c.Search(ctx, Query{Tag: tag, Limit: limit})
}

func (c *Client) fetchStations(ctx context.Context, path string, params url.Values) ([]model.Station, error) {
	requestID := uuid.NewString()
	requestURL := c.baseURL + path + "?" + params.Encode()

	log := c.log.With().Str("request_id", requestID).Logger()
	log.Debug().Str("url", requestURL).Msg("directory lookup")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, newLookupError(ErrBadResponse, fmt.Sprintf("build request: %v", err), err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		lookupErr := classifyTransportError(err)
		log.Warn().Err(err).Str("kind", string(lookupErr.Kind)).Msg("directory lookup failed")
		return nil, lookupErr
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Msg("directory lookup rejected")
		return nil, newLookupError(ErrBadResponse, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes))
	if err != nil {
		return nil, classifyTransportError(err)
	}

	var records []stationRecord
	if err := json.Unmarshal(body, &records); err != nil {
		log.Warn().Err(err).Msg("directory response malformed")
		return nil, newLookupError(ErrBadResponse, "malformed station list", err)
	}

	stations := make([]model.Station, 0, len(records))
	for _, rec := range records {
		station := rec.toStation()
		if station.StreamURL == "" {
			continue
		}
		stations = append(stations, station)
	}

	if len(stations) == 0 {
		return nil, newLookupError(ErrEmpty, "no stations matched", nil)
	}

	log.Debug().
		Int("stations", len(stations)).
		Dur("elapsed", time.Since(started)).
		Msg("directory lookup done")
	return stations, nil
}

func (rec *stationRecord) toStation() model.Station {
	streamURL := rec.URLResolved
	if streamURL == "" {
		streamURL = rec.URL
	}

	var tags []string
	for _, tag := range strings.Split(rec.Tags, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}

	return model.Station{
		UUID:      rec.StationUUID,
		Name:      strings.TrimSpace(rec.Name),
		StreamURL: streamURL,
		Homepage:  rec.Homepage,
		Country:   rec.Country,
		Codec:     rec.Codec,
		Bitrate:   rec.Bitrate,
		Tags:      tags,
	}
}

func classifyTransportError(err error) *LookupError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return newLookupError(ErrTimeout, "directory did not answer in time", err)
	case errors.Is(err, context.Canceled):
		return newLookupError(ErrTimeout, "lookup cancelled", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newLookupError(ErrTimeout, "directory did not answer in time", err)
	}

	return newLookupError(ErrNetworkUnreachable, err.Error(), err)
}
