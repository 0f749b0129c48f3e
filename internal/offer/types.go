package offer

import (
	"bytes"
	"encoding/json"
	"time"
)

// Currency is fixed for the Deskline destinations this adapter serves.
const Currency = "EUR"

// sentinelProductID is the backend's placeholder id; rows carrying it must
// never surface as offers.
const sentinelProductID = "00000000-0000-0000-0000-000000000000"

func isSentinelID(id string) bool {
	return id == "" || id == sentinelProductID
}

// StayRequest is the inbound request body.
type StayRequest struct {
	Arrival     string       `json:"arrival"`
	Departure   string       `json:"departure"`
	Adults      *int         `json:"adults,omitempty"`
	Units       *int         `json:"units,omitempty"`
	Children    FlexChildren `json:"children,omitempty"`
	Lines       []StayLine   `json:"lines,omitempty"`
	ProductIDs  []string     `json:"productIds,omitempty"`
	Ranges      *Ranges      `json:"ranges,omitempty"`
	DWSessionID string       `json:"dwSessionId,omitempty"`
}

// StayLine is one occupancy line of a multi-line request.
type StayLine struct {
	Units        int          `json:"units"`
	Adults       int          `json:"adults"`
	ChildrenAges FlexChildren `json:"childrenAges,omitempty"`
}

// Ranges controls how much arrival/nights slack the backend may use when
// answering a price-matrix query.
type Ranges struct {
	ArrivalRange int `json:"arrivalRange"`
	NightsRange  int `json:"nightsRange"`
}

// FlexChildren accepts either an array of ages or a bare child count.
// Clients have been observed sending both shapes.
type FlexChildren struct {
	Ages    []int
	Count   int
	IsCount bool
}

func (f *FlexChildren) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '[' {
		return json.Unmarshal(b, &f.Ages)
	}
	f.IsCount = true
	return json.Unmarshal(b, &f.Count)
}

func (f FlexChildren) MarshalJSON() ([]byte, error) {
	if f.IsCount {
		return json.Marshal(f.Count)
	}
	if f.Ages == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(f.Ages)
}

// OccupancyLine is one canonical unit-occupancy group. Adults and ChildAges
// are per unit.
type OccupancyLine struct {
	Units     int
	Adults    int
	ChildAges []int
}

// Totals aggregates the occupancy lines for the price-matrix query.
// Adults sums adults x units per line; ChildAges is flattened across all
// unit instances.
type Totals struct {
	Units     int
	Adults    int
	ChildAges []int
}

// SearchParams is what the backend's search-creation endpoint needs.
type SearchParams struct {
	Arrival   time.Time
	Departure time.Time
	Lines     []OccupancyLine
}

// ProductRef is a candidate bookable unit resolved for a search.
type ProductRef struct {
	ProductID string
	Name      string
}

// PriceQuery describes a single price-matrix attempt.
type PriceQuery struct {
	Arrival      time.Time
	Nights       int
	Units        int
	Adults       int
	ChildAges    []int
	ProductIDs   []string
	ArrivalRange int
	NightsRange  int
}

// PriceMatrixRow is one product's raw pricing data. Buckets maps the
// backend's bucket key (usually the nights count as a string, sometimes a
// date) to the per-day entries inside it.
type PriceMatrixRow struct {
	ProductID string
	Buckets   map[string][]DayPrice
}

// DayPrice is one priced day. A price <= 0 means the night is not bookable.
type DayPrice struct {
	Date           string
	Price          float64
	ServiceCharges []float64
}

// Offer is the final output unit.
type Offer struct {
	ProductID    string  `json:"productId"`
	Name         string  `json:"name"`
	TotalPrice   float64 `json:"totalPrice"`
	Currency     string  `json:"currency"`
	Availability bool    `json:"availability"`
	Nights       int     `json:"nights"`
}

type OffersResponse struct {
	Offers []Offer `json:"offers"`
}
