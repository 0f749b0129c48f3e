package main

import (
	"encoding/json"
	"net/http"
)

// AccommodationHandler returns the accommodation detail with embedded
// products, the last discovery endpoint the service tries.
func AccommodationHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"items": []map[string]any{
			{
				"id":       r.PathValue("accommodationId"),
				"name":     "Haus St. Martin",
				"products": rooms[:4],
			},
		},
	})
}
