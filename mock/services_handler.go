package main

import (
	"encoding/json"
	"net/http"
)

type room struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var rooms = []room{
	{ID: "b4265783-9c09-44e0-9af1-63ad964d64b9", Name: "Twin room, shared shower/shared toilet"},
	{ID: "bda33d85-729b-40ca-ba2b-de4ca5e5841b", Name: "Family room, bath hallway, toilet"},
	{ID: "78f0ede7-ce03-4806-8556-0d627bff27de", Name: "Double room, bath, toilet"},
	{ID: "bdd9a73d-7429-4610-9347-168b4b2785d8", Name: "Double room, bath, toilet"},
	// placeholder row the client must filter out
	{ID: "00000000-0000-0000-0000-000000000000", Name: ""},
}

// ServicesHandler returns the room list wrapped in an object, which is one
// of the shapes the real backend uses.
func ServicesHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("searchId") == "" {
		http.Error(w, `{"error":"missing searchId"}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"count": len(rooms),
		"items": rooms,
	})
}

// PackagesHandler returns package blocks whose nested products carry the
// bookable ids.
func PackagesHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode([]map[string]any{
		{
			"id":       "pkg-weekend",
			"name":     "Weekend Special",
			"products": rooms[:2],
		},
	})
}
