package desklineclient

// Wire shapes for the Deskline web API. These mirror the backend's JSON
// exactly and never leave this package.

type searchPayload struct {
	SearchObject searchObject `json:"searchObject"`
}

type searchObject struct {
	SearchGeneral       searchGeneral       `json:"searchGeneral"`
	SearchAccommodation searchAccommodation `json:"searchAccommodation"`
}

type searchGeneral struct {
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
}

type searchAccommodation struct {
	SearchLines []searchLine `json:"searchLines"`
}

type searchLine struct {
	Units        int   `json:"units"`
	Adults       int   `json:"adults"`
	Children     int   `json:"children"`
	ChildrenAges []int `json:"childrenAges"`
}

type searchResponse struct {
	ID string `json:"id"`
}

type listedItem struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Products []listedItem `json:"products,omitempty"`
}

type priceMatrixPayload struct {
	ProductIDs   []string `json:"productIds"`
	FromDate     string   `json:"fromDate"`
	Nights       int      `json:"nights"`
	Units        int      `json:"units"`
	Adults       int      `json:"adults"`
	ChildrenAges string   `json:"childrenAges"`
	MealCode     string   `json:"mealCode"`
	Currency     string   `json:"currency"`
	NightsRange  int      `json:"nightsRange"`
	ArrivalRange int      `json:"arrivalRange"`
}

type priceMatrixRow struct {
	ProductID string                        `json:"productId"`
	Data      map[string][]priceMatrixEntry `json:"data"`
}

type priceMatrixEntry struct {
	Date               string              `json:"date"`
	Price              float64             `json:"price"`
	AdditionalServices []additionalService `json:"additionalServices,omitempty"`
}

type additionalService struct {
	Price float64 `json:"price"`
}
