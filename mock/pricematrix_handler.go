package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

type priceMatrixRequest struct {
	ProductIDs   []string `json:"productIds"`
	FromDate     string   `json:"fromDate"`
	Nights       int      `json:"nights"`
	Units        int      `json:"units"`
	Adults       int      `json:"adults"`
	ChildrenAges string   `json:"childrenAges"`
	NightsRange  int      `json:"nightsRange"`
	ArrivalRange int      `json:"arrivalRange"`
}

type dayEntry struct {
	Date               string           `json:"date"`
	Price              float64          `json:"price"`
	AdditionalServices []map[string]any `json:"additionalServices,omitempty"`
}

// nightly base rates per room; 0 marks a room that is never bookable so the
// unavailable path can be exercised locally.
var nightlyRate = map[string]float64{
	"b4265783-9c09-44e0-9af1-63ad964d64b9": 95,
	"bda33d85-729b-40ca-ba2b-de4ca5e5841b": 140,
	"78f0ede7-ce03-4806-8556-0d627bff27de": 120,
	"bdd9a73d-7429-4610-9347-168b4b2785d8": 0,
}

// PriceMatrixHandler prices the requested products per night, keyed by the
// requested nights count like the real backend.
func PriceMatrixHandler(w http.ResponseWriter, r *http.Request) {
	var req priceMatrixRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid payload"}`, http.StatusBadRequest)
		return
	}
	if req.Nights <= 0 || len(req.ProductIDs) == 0 {
		http.Error(w, `{"error":"nights and productIds required"}`, http.StatusBadRequest)
		return
	}

	from, err := time.Parse("2006-01-02T15:04:05.000", req.FromDate)
	if err != nil {
		http.Error(w, `{"error":"invalid fromDate"}`, http.StatusBadRequest)
		return
	}

	rows := make([]map[string]any, 0, len(req.ProductIDs))
	for _, pid := range req.ProductIDs {
		rate, known := nightlyRate[pid]
		entries := make([]dayEntry, 0, req.Nights)
		for night := 0; night < req.Nights; night++ {
			entry := dayEntry{
				Date:  from.AddDate(0, 0, night).Format("2006-01-02T15:04:05"),
				Price: -1,
			}
			if known && rate > 0 {
				entry.Price = rate * float64(req.Units)
				entry.AdditionalServices = []map[string]any{
					{"name": "visitor tax", "price": 2.5},
				}
			}
			entries = append(entries, entry)
		}

		rows = append(rows, map[string]any{
			"productId": pid,
			"data": map[string][]dayEntry{
				strconv.Itoa(req.Nights): entries,
			},
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}
