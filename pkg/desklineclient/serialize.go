package desklineclient

import (
	"strconv"
	"strings"
)

// The backend expects child ages in two different shapes depending on the
// endpoint: search creation takes a plain list of integers, the price
// matrix takes a comma-joined string. These serializers are deliberately
// kept separate; sending one endpoint's shape to the other is a known
// failure mode.

// agesList is the search-creation shape. Never nil so the field encodes as
// [] rather than null.
func agesList(ages []int) []int {
	clean := make([]int, 0, len(ages))
	for _, age := range ages {
		if age >= 0 {
			clean = append(clean, age)
		}
	}
	return clean
}

// agesCSV is the price-matrix shape: "4,7", or the empty string when there
// are no children.
func agesCSV(ages []int) string {
	parts := make([]string, 0, len(ages))
	for _, age := range ages {
		if age >= 0 {
			parts = append(parts, strconv.Itoa(age))
		}
	}
	return strings.Join(parts, ",")
}
