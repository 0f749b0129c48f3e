package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
)

// Mock Deskline backend for local development. Serves the four endpoints
// the stayprice service calls, with fixed room data.

func main() {
	// Default port
	port := "8091"

	// Check if port is provided as command line argument
	if len(os.Args) > 1 {
		port = os.Args[1]
	}

	http.HandleFunc("POST /searches", SearchesHandler)
	http.HandleFunc("GET /{destination}/en/accommodations/{prefix}/{accommodationId}/services", ServicesHandler)
	http.HandleFunc("GET /{destination}/en/accommodations/{prefix}/{accommodationId}/packages", PackagesHandler)
	http.HandleFunc("GET /{destination}/en/accommodations/{prefix}/{accommodationId}", AccommodationHandler)
	http.HandleFunc("POST /{destination}/en/accommodations/{prefix}/{accommodationId}/pricematrix", PriceMatrixHandler)

	addr := fmt.Sprintf(":%s", port)
	fmt.Printf("Mock Deskline server running on port %s...\n", port)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal(err)
	}
}
