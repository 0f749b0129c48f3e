package desklineclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayprice/internal/offer"
	"stayprice/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(server.Client(), Config{
		SearchBaseURL:   server.URL,
		BaseURL:         server.URL,
		Destination:     "accbludenz",
		Prefix:          "BLU",
		AccommodationID: "acc-1",
		Source:          "dwapp-accommodation",
		Origin:          "https://direct.example.com",
	}, logger.NewWithWriter("production", io.Discard))
}

func searchParams() offer.SearchParams {
	arrival, _ := time.Parse("2006-01-02", "2025-06-01")
	departure, _ := time.Parse("2006-01-02", "2025-06-04")
	return offer.SearchParams{
		Arrival:   arrival,
		Departure: departure,
		Lines:     []offer.OccupancyLine{{Units: 1, Adults: 2, ChildAges: []int{4, 7}}},
	}
}

func TestCreateSearch(t *testing.T) {
	var gotBody map[string]any
	var gotHeaders http.Header
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/searches", r.URL.Path)
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]string{"id": "search-42"})
	})

	id, err := client.CreateSearch(context.Background(), "sess-1", searchParams())

	require.NoError(t, err)
	assert.Equal(t, "search-42", id)

	assert.Equal(t, "dwapp-accommodation", gotHeaders.Get("DW-Source"))
	assert.Equal(t, "sess-1", gotHeaders.Get("DW-SessionId"))
	assert.Equal(t, "https://direct.example.com", gotHeaders.Get("Origin"))

	search := gotBody["searchObject"].(map[string]any)
	general := search["searchGeneral"].(map[string]any)
	assert.Equal(t, "2025-06-01T00:00:00.000", general["dateFrom"])
	assert.Equal(t, "2025-06-04T00:00:00.000", general["dateTo"])

	lines := search["searchAccommodation"].(map[string]any)["searchLines"].([]any)
	line := lines[0].(map[string]any)
	// search creation sends child ages as a plain integer list
	assert.Equal(t, []any{4.0, 7.0}, line["childrenAges"])
	assert.Equal(t, 2.0, line["children"])
}

func TestCreateSearch_MissingHandle(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	_, err := client.CreateSearch(context.Background(), "sess-1", searchParams())

	require.Error(t, err)
	var backendErr *offer.BackendError
	assert.ErrorAs(t, err, &backendErr)
}

func TestCreateSearch_Non2xx(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"session invalid"}`, http.StatusForbidden)
	})

	_, err := client.CreateSearch(context.Background(), "sess-1", searchParams())

	var backendErr *offer.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, http.StatusForbidden, backendErr.Status)
	assert.Contains(t, backendErr.Body, "session invalid")
}

func TestListServices_UnwrapsObjectShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/accbludenz/en/accommodations/BLU/acc-1/services", r.URL.Path)
		assert.Equal(t, "search-42", r.URL.Query().Get("searchId"))
		assert.Equal(t, "id,name", r.URL.Query().Get("fields"))
		w.Write([]byte(`{"count":2,"items":[{"id":"p1","name":"Twin"},{"name":"no id"}]}`))
	})

	refs, err := client.ListServices(context.Background(), "sess-1", "search-42")

	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, offer.ProductRef{ProductID: "p1", Name: "Twin"}, refs[0])
}

func TestListPackages_FlattensProducts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/accbludenz/en/accommodations/BLU/acc-1/packages", r.URL.Path)
		w.Write([]byte(`[{"id":"pkg","name":"Weekend","products":[{"id":"p1","name":"Twin"},{"id":"p2","name":"Double"}]}]`))
	})

	refs, err := client.ListPackages(context.Background(), "sess-1", "search-42")

	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "p1", refs[0].ProductID)
	assert.Equal(t, "p2", refs[1].ProductID)
}

func TestAccommodationProducts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/accbludenz/en/accommodations/BLU/acc-1", r.URL.Path)
		assert.Equal(t, "products{id,name}", r.URL.Query().Get("fields"))
		w.Write([]byte(`{"items":[{"id":"acc-1","name":"Haus","products":[{"id":"p1","name":"Twin"}]}]}`))
	})

	refs, err := client.AccommodationProducts(context.Background(), "sess-1")

	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "Twin", refs[0].Name)
}

func TestFetchPriceMatrix(t *testing.T) {
	var gotPayload map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/accbludenz/en/accommodations/BLU/acc-1/pricematrix", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.Write([]byte(`[
			{"productId":"p1","data":{"3":[
				{"date":"2025-06-01T00:00:00","price":100,"additionalServices":[{"name":"visitor tax","price":2.5}]},
				{"date":"2025-06-02T00:00:00","price":-1}
			]}}
		]`))
	})

	arrival, _ := time.Parse("2006-01-02", "2025-06-01")
	rows, err := client.FetchPriceMatrix(context.Background(), "sess-1", offer.PriceQuery{
		Arrival:      arrival,
		Nights:       3,
		Units:        1,
		Adults:       2,
		ChildAges:    []int{4, 7},
		ProductIDs:   []string{"p1"},
		ArrivalRange: 1,
		NightsRange:  1,
	})

	require.NoError(t, err)

	// the price matrix gets child ages as a comma-joined string
	assert.Equal(t, "4,7", gotPayload["childrenAges"])
	assert.Equal(t, "2025-06-01T00:00:00.000", gotPayload["fromDate"])
	assert.Equal(t, 1.0, gotPayload["arrivalRange"])
	assert.Equal(t, "EUR", gotPayload["currency"])

	require.Len(t, rows, 1)
	bucket := rows[0].Buckets["3"]
	require.Len(t, bucket, 2)
	assert.Equal(t, 100.0, bucket[0].Price)
	assert.Equal(t, []float64{2.5}, bucket[0].ServiceCharges)
	assert.Equal(t, -1.0, bucket[1].Price)
}
