package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type searchRequest struct {
	SearchObject struct {
		SearchGeneral struct {
			DateFrom string `json:"dateFrom"`
			DateTo   string `json:"dateTo"`
		} `json:"searchGeneral"`
		SearchAccommodation struct {
			SearchLines []struct {
				Units        int   `json:"units"`
				Adults       int   `json:"adults"`
				Children     int   `json:"children"`
				ChildrenAges []int `json:"childrenAges"`
			} `json:"searchLines"`
		} `json:"searchAccommodation"`
	} `json:"searchObject"`
}

// SearchesHandler issues a search handle. Requests without a session id or
// a date range are rejected the way the real backend rejects them.
func SearchesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("DW-SessionId") == "" {
		http.Error(w, `{"error":"missing DW-SessionId"}`, http.StatusBadRequest)
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid payload"}`, http.StatusBadRequest)
		return
	}
	if req.SearchObject.SearchGeneral.DateFrom == "" || req.SearchObject.SearchGeneral.DateTo == "" {
		http.Error(w, `{"error":"missing date range"}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id": fmt.Sprintf("search-%d", time.Now().UnixNano()),
	})
}
