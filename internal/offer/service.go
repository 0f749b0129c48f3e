package offer

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"stayprice/pkg/cache"
	"stayprice/pkg/logger"
)

const dateLayout = "2006-01-02"

// BookingClient is the outbound interface to the booking backend. Every
// call is scoped by the per-request session id.
type BookingClient interface {
	CreateSearch(ctx context.Context, sessionID string, params SearchParams) (string, error)
	ListServices(ctx context.Context, sessionID, searchID string) ([]ProductRef, error)
	ListPackages(ctx context.Context, sessionID, searchID string) ([]ProductRef, error)
	AccommodationProducts(ctx context.Context, sessionID string) ([]ProductRef, error)
	FetchPriceMatrix(ctx context.Context, sessionID string, q PriceQuery) ([]PriceMatrixRow, error)
}

// SessionSource mints the per-request backend session token.
type SessionSource interface {
	SessionID() string
}

type Options struct {
	StaticProductIDs   []string
	FallbackProductIDs []string
	DefaultChildAge    int
	CacheTTLMinutes    int
}

type Service struct {
	client   BookingClient
	cache    cache.Cache
	sessions SessionSource
	opts     Options
	ttl      time.Duration
	logger   logger.Client
}

func NewService(client BookingClient, cache cache.Cache, sessions SessionSource, opts Options, logger logger.Client) *Service {
	return &Service{
		client:   client,
		cache:    cache,
		sessions: sessions,
		opts:     opts,
		ttl:      time.Duration(opts.CacheTTLMinutes) * time.Minute,
		logger:   logger,
	}
}

// GetOffers runs the full pipeline: validate dates, normalize occupancy,
// open a backend search, resolve products, query the price matrix and
// reduce it into one offer per product.
func (s *Service) GetOffers(ctx context.Context, req StayRequest) (*OffersResponse, error) {
	arrival, departure, nights, err := parseStay(req.Arrival, req.Departure)
	if err != nil {
		return nil, err
	}

	lines, occTotals := NormalizeOccupancy(req, s.opts.DefaultChildAge)

	cacheKey := s.cacheKey(req, lines)
	if s.ttl > 0 {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			var response OffersResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				s.logger.Debug("offers served from cache", logger.Field{Key: "cache_key", Value: cacheKey})
				return &response, nil
			}
			s.logger.Error("failed to unmarshal cached offers", logger.Err(err))
		}
	}

	sessionID := req.DWSessionID
	if sessionID == "" {
		sessionID = s.sessions.SessionID()
	}

	searchID, err := s.client.CreateSearch(ctx, sessionID, SearchParams{
		Arrival:   arrival,
		Departure: departure,
		Lines:     lines,
	})
	if err != nil {
		return nil, NewUpstreamError("search", err)
	}

	products := s.resolveProducts(ctx, sessionID, searchID, req.ProductIDs)
	if len(products) == 0 {
		return nil, NewNotFoundError("No products found for given search")
	}

	rows, err := s.fetchPriceMatrix(ctx, sessionID, PriceQuery{
		Arrival:    arrival,
		Nights:     nights,
		Units:      occTotals.Units,
		Adults:     occTotals.Adults,
		ChildAges:  occTotals.ChildAges,
		ProductIDs: productIDs(products),
	}, req.Ranges)
	if err != nil {
		return nil, err
	}

	offers := assembleOffers(products, aggregatePrices(rows, nights), nights)
	response := &OffersResponse{Offers: offers}

	if s.ttl > 0 {
		if body, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(body), s.ttl); err != nil {
				s.logger.Error("failed to cache offers", logger.Err(err))
			}
		}
	}

	return response, nil
}

// fetchPriceMatrix queries with the windowed ranges first, mirroring how the
// booking UI queries, and retries once with exact ranges when the first
// response is unusable. Both attempts failing is fatal for the pipeline.
func (s *Service) fetchPriceMatrix(ctx context.Context, sessionID string, q PriceQuery, ranges *Ranges) ([]PriceMatrixRow, error) {
	q.ArrivalRange, q.NightsRange = 1, 1
	if ranges != nil {
		q.ArrivalRange, q.NightsRange = ranges.ArrivalRange, ranges.NightsRange
	}

	rows, err := s.client.FetchPriceMatrix(ctx, sessionID, q)
	if err == nil && usableRows(rows) {
		return rows, nil
	}

	// retrying would re-issue the identical query when the first attempt
	// already used exact ranges
	if q.ArrivalRange == 0 && q.NightsRange == 0 {
		if err != nil {
			return nil, NewUpstreamError("pricematrix", err)
		}
		return nil, NewUpstreamError("pricematrix", fmt.Errorf("price matrix not available"))
	}
	if err != nil {
		s.logger.Warn("windowed price matrix attempt failed", logger.Err(err))
	}

	q.ArrivalRange, q.NightsRange = 0, 0
	rows, err = s.client.FetchPriceMatrix(ctx, sessionID, q)
	if err != nil {
		return nil, NewUpstreamError("pricematrix", err)
	}
	if !usableRows(rows) {
		return nil, NewUpstreamError("pricematrix", fmt.Errorf("price matrix not available"))
	}
	return rows, nil
}

// usableRows reports whether a price-matrix response carries at least one
// real row: a non-sentinel product id with a non-empty day-bucket map.
func usableRows(rows []PriceMatrixRow) bool {
	for _, row := range rows {
		if !isSentinelID(row.ProductID) && len(row.Buckets) > 0 {
			return true
		}
	}
	return false
}

// parseStay validates the date pair before any backend call is made.
func parseStay(arrivalStr, departureStr string) (time.Time, time.Time, int, error) {
	if arrivalStr == "" || departureStr == "" {
		return time.Time{}, time.Time{}, 0, NewValidationError("Missing arrival or departure date")
	}

	arrival, err := time.Parse(dateLayout, arrivalStr)
	if err != nil {
		return time.Time{}, time.Time{}, 0, NewValidationError("Invalid arrival date, expected YYYY-MM-DD")
	}
	departure, err := time.Parse(dateLayout, departureStr)
	if err != nil {
		return time.Time{}, time.Time{}, 0, NewValidationError("Invalid departure date, expected YYYY-MM-DD")
	}

	nights := int(departure.Sub(arrival) / (24 * time.Hour))
	if nights <= 0 {
		return time.Time{}, time.Time{}, 0, NewValidationError("Departure date must be after arrival date")
	}

	return arrival, departure, nights, nil
}

// cacheKey builds a deterministic key covering every input that affects the
// offer list. The key hashes the normalized lines rather than their
// aggregate totals: distinct line compositions can reduce to equal totals
// yet open different searches upstream.
func (s *Service) cacheKey(req StayRequest, lines []OccupancyLine) string {
	ranges := "1:1"
	if req.Ranges != nil {
		ranges = fmt.Sprintf("%d:%d", req.Ranges.ArrivalRange, req.Ranges.NightsRange)
	}

	var occ strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&occ, "%d:%d:%v|", l.Units, l.Adults, l.ChildAges)
	}

	key := fmt.Sprintf("stay:%s:%s:%s:%s:%s",
		req.Arrival,
		req.Departure,
		occ.String(),
		strings.Join(req.ProductIDs, ","),
		ranges,
	)

	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("offers:%x", hash[:16])
}

func productIDs(products []ProductRef) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ProductID)
	}
	return ids
}
