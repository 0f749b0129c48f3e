package desklineclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"stayprice/internal/offer"
	"stayprice/pkg/logger"
)

const wireDateLayout = "2006-01-02T15:04:05.000"

// Config identifies one accommodation on one Deskline installation.
type Config struct {
	SearchBaseURL   string
	BaseURL         string
	Destination     string
	Prefix          string
	AccommodationID string
	Source          string
	Origin          string
}

// Client talks to the Deskline web API. Every call carries the DW-Source
// and per-request DW-SessionId headers the backend requires.
type Client struct {
	httpClient *http.Client
	cfg        Config
	logger     logger.Client
}

func New(httpClient *http.Client, cfg Config, logger logger.Client) *Client {
	return &Client{
		httpClient: httpClient,
		cfg:        cfg,
		logger:     logger,
	}
}

// accommodationURL is the destination-scoped base every accommodation
// endpoint hangs off.
func (c *Client) accommodationURL() string {
	return fmt.Sprintf("%s/%s/en/accommodations/%s/%s",
		c.cfg.BaseURL, c.cfg.Destination, c.cfg.Prefix, c.cfg.AccommodationID)
}

// CreateSearch opens a backend search for the date range and occupancy and
// returns the search handle scoping all follow-up lookups.
func (c *Client) CreateSearch(ctx context.Context, sessionID string, params offer.SearchParams) (string, error) {
	lines := make([]searchLine, 0, len(params.Lines))
	for _, l := range params.Lines {
		ages := agesList(l.ChildAges)
		lines = append(lines, searchLine{
			Units:        l.Units,
			Adults:       l.Adults,
			Children:     len(ages),
			ChildrenAges: ages,
		})
	}

	payload := searchPayload{
		SearchObject: searchObject{
			SearchGeneral: searchGeneral{
				DateFrom: params.Arrival.Format(wireDateLayout),
				DateTo:   params.Departure.Format(wireDateLayout),
			},
			SearchAccommodation: searchAccommodation{
				SearchLines: lines,
			},
		},
	}

	body, err := c.postJSON(ctx, sessionID, c.cfg.SearchBaseURL+"/searches", payload)
	if err != nil {
		return "", err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode search response: %w", err)
	}
	if resp.ID == "" {
		return "", &offer.BackendError{Status: http.StatusOK, Body: string(body)}
	}
	return resp.ID, nil
}

// ListServices fetches the room/service list scoped by a search handle.
func (c *Client) ListServices(ctx context.Context, sessionID, searchID string) ([]offer.ProductRef, error) {
	query := url.Values{}
	query.Set("fields", "id,name")
	query.Set("currency", offer.Currency)
	query.Set("searchId", searchID)
	query.Set("pageNo", "1")
	query.Set("pageSize", "32767")

	body, err := c.getJSON(ctx, sessionID, c.accommodationURL()+"/services?"+query.Encode())
	if err != nil {
		return nil, err
	}

	items, err := decodeItems(body)
	if err != nil {
		return nil, err
	}
	return flatRefs(items), nil
}

// ListPackages fetches package offerings and flattens their nested product
// lists into the same (id, name) shape the other strategies produce.
func (c *Client) ListPackages(ctx context.Context, sessionID, searchID string) ([]offer.ProductRef, error) {
	query := url.Values{}
	query.Set("fields", "id,name,products{id,name}")
	query.Set("currency", offer.Currency)
	query.Set("searchId", searchID)
	query.Set("pageNo", "1")
	query.Set("pageSize", "32767")

	body, err := c.getJSON(ctx, sessionID, c.accommodationURL()+"/packages?"+query.Encode())
	if err != nil {
		return nil, err
	}

	items, err := decodeItems(body)
	if err != nil {
		return nil, err
	}
	return nestedRefs(items), nil
}

// AccommodationProducts fetches the accommodation detail with its embedded
// products, the discovery of last resort before the configured fallback.
func (c *Client) AccommodationProducts(ctx context.Context, sessionID string) ([]offer.ProductRef, error) {
	query := url.Values{}
	query.Set("fields", "products{id,name}")
	query.Set("currency", offer.Currency)
	query.Set("pageNo", "1")
	query.Set("pageSize", "32767")

	body, err := c.getJSON(ctx, sessionID, c.accommodationURL()+"?"+query.Encode())
	if err != nil {
		return nil, err
	}

	items, err := decodeItems(body)
	if err != nil {
		return nil, err
	}
	return nestedRefs(items), nil
}

// FetchPriceMatrix runs a single price-matrix query. The fallback between
// windowed and exact ranges is the caller's policy, not the client's.
func (c *Client) FetchPriceMatrix(ctx context.Context, sessionID string, q offer.PriceQuery) ([]offer.PriceMatrixRow, error) {
	payload := priceMatrixPayload{
		ProductIDs:   q.ProductIDs,
		FromDate:     q.Arrival.Format(wireDateLayout),
		Nights:       q.Nights,
		Units:        q.Units,
		Adults:       q.Adults,
		ChildrenAges: agesCSV(q.ChildAges),
		MealCode:     "",
		Currency:     offer.Currency,
		NightsRange:  q.NightsRange,
		ArrivalRange: q.ArrivalRange,
	}

	body, err := c.postJSON(ctx, sessionID, c.accommodationURL()+"/pricematrix", payload)
	if err != nil {
		return nil, err
	}

	raw, err := firstArray(body)
	if err != nil {
		return nil, fmt.Errorf("unusable price matrix response: %w", err)
	}
	var wireRows []priceMatrixRow
	if err := json.Unmarshal(raw, &wireRows); err != nil {
		return nil, fmt.Errorf("failed to decode price matrix: %w", err)
	}

	rows := make([]offer.PriceMatrixRow, 0, len(wireRows))
	for _, w := range wireRows {
		row := offer.PriceMatrixRow{
			ProductID: w.ProductID,
			Buckets:   make(map[string][]offer.DayPrice, len(w.Data)),
		}
		for key, entries := range w.Data {
			days := make([]offer.DayPrice, 0, len(entries))
			for _, e := range entries {
				charges := make([]float64, 0, len(e.AdditionalServices))
				for _, s := range e.AdditionalServices {
					charges = append(charges, s.Price)
				}
				days = append(days, offer.DayPrice{
					Date:           e.Date,
					Price:          e.Price,
					ServiceCharges: charges,
				})
			}
			row.Buckets[key] = days
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (c *Client) postJSON(ctx context.Context, sessionID, rawURL string, payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	return c.do(req, sessionID)
}

func (c *Client) getJSON(ctx context.Context, sessionID, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	return c.do(req, sessionID)
}

func (c *Client) do(req *http.Request, sessionID string) ([]byte, error) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("DW-Source", c.cfg.Source)
	req.Header.Set("DW-SessionId", sessionID)
	req.Header.Set("Origin", c.cfg.Origin)
	req.Header.Set("Referer", c.cfg.Origin+"/")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("external api call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("deskline call",
		logger.Field{Key: "url", Value: req.URL.Path},
		logger.Field{Key: "status", Value: resp.StatusCode},
		logger.Field{Key: "duration_ms", Value: time.Since(start).Milliseconds()},
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &offer.BackendError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func flatRefs(items []listedItem) []offer.ProductRef {
	refs := make([]offer.ProductRef, 0, len(items))
	for _, item := range items {
		if item.ID != "" {
			refs = append(refs, offer.ProductRef{ProductID: item.ID, Name: item.Name})
		}
	}
	return refs
}

func nestedRefs(items []listedItem) []offer.ProductRef {
	var refs []offer.ProductRef
	for _, item := range items {
		for _, p := range item.Products {
			if p.ID != "" {
				refs = append(refs, offer.ProductRef{ProductID: p.ID, Name: p.Name})
			}
		}
	}
	return refs
}
