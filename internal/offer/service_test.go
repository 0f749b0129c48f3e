package offer

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayprice/pkg/logger"
)

type fakeCache struct {
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}}
}

func (f *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.data[key] = value
	return nil
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", errors.New("cache miss")
}

func (f *fakeCache) Del(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

type fakeSessions struct{}

func (fakeSessions) SessionID() string { return "session-1" }

// fakeClient scripts the backend and records every call in order.
type fakeClient struct {
	searchID      string
	searchErr     error
	services      []ProductRef
	servicesErr   error
	packages      []ProductRef
	accommodation []ProductRef

	matrixRows [][]PriceMatrixRow
	matrixErrs []error

	calls    []string
	queries  []PriceQuery
	sessions []string
}

func (f *fakeClient) CreateSearch(_ context.Context, sessionID string, _ SearchParams) (string, error) {
	f.calls = append(f.calls, "search")
	f.sessions = append(f.sessions, sessionID)
	if f.searchErr != nil {
		return "", f.searchErr
	}
	if f.searchID == "" {
		return "search-1", nil
	}
	return f.searchID, nil
}

func (f *fakeClient) ListServices(_ context.Context, _, _ string) ([]ProductRef, error) {
	f.calls = append(f.calls, "services")
	return f.services, f.servicesErr
}

func (f *fakeClient) ListPackages(_ context.Context, _, _ string) ([]ProductRef, error) {
	f.calls = append(f.calls, "packages")
	return f.packages, nil
}

func (f *fakeClient) AccommodationProducts(_ context.Context, _ string) ([]ProductRef, error) {
	f.calls = append(f.calls, "accommodation")
	return f.accommodation, nil
}

func (f *fakeClient) FetchPriceMatrix(_ context.Context, _ string, q PriceQuery) ([]PriceMatrixRow, error) {
	f.calls = append(f.calls, "pricematrix")
	f.queries = append(f.queries, q)

	attempt := len(f.queries) - 1
	var err error
	if attempt < len(f.matrixErrs) {
		err = f.matrixErrs[attempt]
	}
	var rows []PriceMatrixRow
	if attempt < len(f.matrixRows) {
		rows = f.matrixRows[attempt]
	}
	return rows, err
}

func newTestService(client *fakeClient, opts Options) *Service {
	log := logger.NewWithWriter("production", io.Discard)
	return NewService(client, newFakeCache(), fakeSessions{}, opts, log)
}

func stayReq() StayRequest {
	return StayRequest{Arrival: "2025-06-01", Departure: "2025-06-04"}
}

func TestGetOffers_HappyPath(t *testing.T) {
	client := &fakeClient{
		services: []ProductRef{{ProductID: "x", Name: "Twin"}},
		matrixRows: [][]PriceMatrixRow{
			{row("x", "3", 100, 120, 110)},
		},
	}
	svc := newTestService(client, Options{DefaultChildAge: 8, CacheTTLMinutes: 5})

	resp, err := svc.GetOffers(context.Background(), stayReq())

	require.NoError(t, err)
	require.Len(t, resp.Offers, 1)
	got := resp.Offers[0]
	assert.Equal(t, "x", got.ProductID)
	assert.Equal(t, "Twin", got.Name)
	assert.Equal(t, 330.0, got.TotalPrice)
	assert.Equal(t, "EUR", got.Currency)
	assert.True(t, got.Availability)
	assert.Equal(t, 3, got.Nights)
}

func TestGetOffers_ValidationBeforeAnyBackendCall(t *testing.T) {
	client := &fakeClient{}
	svc := newTestService(client, Options{DefaultChildAge: 8})

	cases := []StayRequest{
		{},
		{Arrival: "2025-06-04", Departure: "2025-06-01"},
		{Arrival: "2025-06-01", Departure: "2025-06-01"},
		{Arrival: "junk", Departure: "2025-06-04"},
	}

	for _, req := range cases {
		_, err := svc.GetOffers(context.Background(), req)

		var appErr *AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, ErrorCodeValidation, appErr.Code)
		assert.Empty(t, client.calls, "no backend call may precede validation")
	}
}

func TestGetOffers_OverrideSkipsDiscovery(t *testing.T) {
	client := &fakeClient{
		services: []ProductRef{{ProductID: "ignored"}},
		matrixRows: [][]PriceMatrixRow{
			{row("p1", "3", 100, 100, 100)},
		},
	}
	svc := newTestService(client, Options{DefaultChildAge: 8})

	req := stayReq()
	req.ProductIDs = []string{"p1", "p2"}
	resp, err := svc.GetOffers(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, resp.Offers, 2)
	assert.Equal(t, "p1", resp.Offers[0].ProductID)
	assert.Equal(t, "p2", resp.Offers[1].ProductID)
	assert.Empty(t, resp.Offers[0].Name, "override ids carry no names")
	assert.NotContains(t, client.calls, "services")
	assert.NotContains(t, client.calls, "packages")
	assert.NotContains(t, client.calls, "accommodation")
}

func TestGetOffers_StaticConfigBeforeDiscovery(t *testing.T) {
	client := &fakeClient{
		matrixRows: [][]PriceMatrixRow{
			{row("cfg-1", "3", 90, 90, 90)},
		},
	}
	svc := newTestService(client, Options{
		StaticProductIDs: []string{"cfg-1"},
		DefaultChildAge:  8,
	})

	resp, err := svc.GetOffers(context.Background(), stayReq())

	require.NoError(t, err)
	assert.Equal(t, "cfg-1", resp.Offers[0].ProductID)
	assert.NotContains(t, client.calls, "services")
}

func TestGetOffers_DiscoveryFallbackOrder(t *testing.T) {
	client := &fakeClient{
		servicesErr: errors.New("listing down"),
		packages:    []ProductRef{{ProductID: "pkg-1", Name: "Weekend"}},
		matrixRows: [][]PriceMatrixRow{
			{row("pkg-1", "3", 80, 80, 80)},
		},
	}
	svc := newTestService(client, Options{DefaultChildAge: 8})

	resp, err := svc.GetOffers(context.Background(), stayReq())

	require.NoError(t, err)
	assert.Equal(t, "pkg-1", resp.Offers[0].ProductID)
	assert.Contains(t, client.calls, "services")
	assert.Contains(t, client.calls, "packages")
	assert.NotContains(t, client.calls, "accommodation", "chain stops at first hit")
}

func TestGetOffers_SentinelIDsNeverReachPricing(t *testing.T) {
	client := &fakeClient{
		services: []ProductRef{
			{ProductID: "00000000-0000-0000-0000-000000000000"},
			{ProductID: "real-1"},
		},
		matrixRows: [][]PriceMatrixRow{
			{row("real-1", "3", 70, 70, 70)},
		},
	}
	svc := newTestService(client, Options{DefaultChildAge: 8})

	resp, err := svc.GetOffers(context.Background(), stayReq())

	require.NoError(t, err)
	require.Len(t, resp.Offers, 1)
	require.Len(t, client.queries, 1)
	assert.Equal(t, []string{"real-1"}, client.queries[0].ProductIDs)
}

func TestGetOffers_NoProductsIsNotFound(t *testing.T) {
	client := &fakeClient{}
	svc := newTestService(client, Options{DefaultChildAge: 8})

	_, err := svc.GetOffers(context.Background(), stayReq())

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)
	assert.Equal(t, "No products found for given search", appErr.Message)
}

func TestGetOffers_SearchFailureIsFatal(t *testing.T) {
	client := &fakeClient{
		searchErr: &BackendError{Status: 500, Body: `{"reason":"backend down"}`},
	}
	svc := newTestService(client, Options{DefaultChildAge: 8})

	_, err := svc.GetOffers(context.Background(), stayReq())

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 502, appErr.Status)
	assert.Equal(t, "search", appErr.Stage)
	assert.Equal(t, `{"reason":"backend down"}`, appErr.Details)
	assert.Equal(t, []string{"search"}, client.calls)
}

func TestGetOffers_PriceMatrixRetriesWithExactRanges(t *testing.T) {
	client := &fakeClient{
		services:   []ProductRef{{ProductID: "x"}},
		matrixRows: [][]PriceMatrixRow{nil, {row("x", "3", 100, 100, 100)}},
	}
	svc := newTestService(client, Options{DefaultChildAge: 8})

	resp, err := svc.GetOffers(context.Background(), stayReq())

	require.NoError(t, err)
	require.Len(t, client.queries, 2)
	assert.Equal(t, 1, client.queries[0].ArrivalRange)
	assert.Equal(t, 1, client.queries[0].NightsRange)
	assert.Equal(t, 0, client.queries[1].ArrivalRange)
	assert.Equal(t, 0, client.queries[1].NightsRange)
	assert.True(t, resp.Offers[0].Availability)
}

func TestGetOffers_PriceMatrixExhausted(t *testing.T) {
	client := &fakeClient{
		services:   []ProductRef{{ProductID: "x"}},
		matrixRows: [][]PriceMatrixRow{nil, nil},
	}
	svc := newTestService(client, Options{DefaultChildAge: 8})

	_, err := svc.GetOffers(context.Background(), stayReq())

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 502, appErr.Status)
	assert.Equal(t, "pricematrix", appErr.Stage)
	require.Len(t, client.queries, 2)
}

func TestGetOffers_CallerRangesRespected(t *testing.T) {
	client := &fakeClient{
		services:   []ProductRef{{ProductID: "x"}},
		matrixRows: [][]PriceMatrixRow{{row("x", "3", 100, 100, 100)}},
	}
	svc := newTestService(client, Options{DefaultChildAge: 8})

	req := stayReq()
	req.Ranges = &Ranges{ArrivalRange: 2, NightsRange: 0}
	_, err := svc.GetOffers(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, client.queries, 1)
	assert.Equal(t, 2, client.queries[0].ArrivalRange)
	assert.Equal(t, 0, client.queries[0].NightsRange)
}

func TestGetOffers_Idempotent(t *testing.T) {
	client := &fakeClient{
		services: []ProductRef{{ProductID: "x", Name: "Twin"}},
		matrixRows: [][]PriceMatrixRow{
			{row("x", "3", 100, 120, 110)},
			{row("x", "3", 100, 120, 110)},
		},
	}
	svc := newTestService(client, Options{DefaultChildAge: 8, CacheTTLMinutes: 5})

	first, err := svc.GetOffers(context.Background(), stayReq())
	require.NoError(t, err)
	second, err := svc.GetOffers(context.Background(), stayReq())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGetOffers_CacheKeyedByLineComposition(t *testing.T) {
	// two compositions reducing to equal aggregate totals (3 units, 4
	// adults) must not share a cache entry
	client := &fakeClient{
		services: []ProductRef{{ProductID: "x"}},
		matrixRows: [][]PriceMatrixRow{
			{row("x", "3", 100, 100, 100)},
			{row("x", "3", 200, 200, 200)},
		},
	}
	svc := newTestService(client, Options{DefaultChildAge: 8, CacheTTLMinutes: 5})

	first := stayReq()
	first.Lines = []StayLine{
		{Units: 1, Adults: 2},
		{Units: 2, Adults: 1},
	}
	second := stayReq()
	second.Lines = []StayLine{
		{Units: 2, Adults: 2},
		{Units: 1, Adults: 0},
	}

	firstResp, err := svc.GetOffers(context.Background(), first)
	require.NoError(t, err)
	secondResp, err := svc.GetOffers(context.Background(), second)
	require.NoError(t, err)

	assert.Len(t, client.sessions, 2, "second composition must open its own search")
	assert.Equal(t, 300.0, firstResp.Offers[0].TotalPrice)
	assert.Equal(t, 600.0, secondResp.Offers[0].TotalPrice)
}

func TestGetOffers_ExactRangesNotRetried(t *testing.T) {
	client := &fakeClient{
		services:   []ProductRef{{ProductID: "x"}},
		matrixRows: [][]PriceMatrixRow{nil},
	}
	svc := newTestService(client, Options{DefaultChildAge: 8})

	req := stayReq()
	req.Ranges = &Ranges{ArrivalRange: 0, NightsRange: 0}
	_, err := svc.GetOffers(context.Background(), req)

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "pricematrix", appErr.Stage)
	assert.Len(t, client.queries, 1, "identical exact query must not be re-issued")
}

func TestGetOffers_SessionOverrideUsedVerbatim(t *testing.T) {
	client := &fakeClient{
		services:   []ProductRef{{ProductID: "x"}},
		matrixRows: [][]PriceMatrixRow{{row("x", "3", 100, 100, 100)}},
	}
	svc := newTestService(client, Options{DefaultChildAge: 8})

	req := stayReq()
	req.DWSessionID = "browser-session"
	_, err := svc.GetOffers(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, client.sessions, 1)
	assert.Equal(t, "browser-session", client.sessions[0])
}

func TestGetOffers_GeneratedSessionWhenAbsent(t *testing.T) {
	client := &fakeClient{
		services:   []ProductRef{{ProductID: "x"}},
		matrixRows: [][]PriceMatrixRow{{row("x", "3", 100, 100, 100)}},
	}
	svc := newTestService(client, Options{DefaultChildAge: 8})

	_, err := svc.GetOffers(context.Background(), stayReq())

	require.NoError(t, err)
	require.Len(t, client.sessions, 1)
	assert.Equal(t, "session-1", client.sessions[0])
}
