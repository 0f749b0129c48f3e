package offer

const (
	maxUnits    = 20
	maxAdults   = 10
	maxChildren = 10
	maxChildAge = 17
)

const (
	defaultUnits  = 1
	defaultAdults = 2
)

// NormalizeOccupancy converts the loosely-shaped request occupancy into
// canonical lines plus aggregate totals. Out-of-range values are clamped or
// dropped rather than rejected: malformed occupancy should degrade, not 400.
//
// When a child count arrives without ages, each missing age is synthesized
// as defaultChildAge.
func NormalizeOccupancy(req StayRequest, defaultChildAge int) ([]OccupancyLine, Totals) {
	var lines []OccupancyLine

	if len(req.Lines) > 0 {
		lines = make([]OccupancyLine, 0, len(req.Lines))
		for _, raw := range req.Lines {
			lines = append(lines, OccupancyLine{
				Units:     clamp(raw.Units, 1, maxUnits),
				Adults:    clamp(raw.Adults, 0, maxAdults),
				ChildAges: childAges(raw.ChildrenAges, defaultChildAge),
			})
		}
	} else {
		units := defaultUnits
		if req.Units != nil {
			units = clamp(*req.Units, 1, maxUnits)
		}
		adults := defaultAdults
		if req.Adults != nil {
			adults = clamp(*req.Adults, 0, maxAdults)
		}
		lines = []OccupancyLine{{
			Units:     units,
			Adults:    adults,
			ChildAges: childAges(req.Children, defaultChildAge),
		}}
	}

	return lines, totals(lines)
}

// totals aggregates lines for the price-matrix query. Adults is summed as
// adults x units because adults is a per-unit figure; child ages are
// repeated once per unit instance.
func totals(lines []OccupancyLine) Totals {
	var t Totals
	for _, l := range lines {
		t.Units += l.Units
		t.Adults += l.Adults * l.Units
		for i := 0; i < l.Units; i++ {
			t.ChildAges = append(t.ChildAges, l.ChildAges...)
		}
	}
	return t
}

// childAges resolves the flexible children input into a clean age list.
// Ages outside 0..17 are dropped.
func childAges(children FlexChildren, defaultChildAge int) []int {
	if children.IsCount {
		count := clamp(children.Count, 0, maxChildren)
		ages := make([]int, count)
		for i := range ages {
			ages[i] = defaultChildAge
		}
		return ages
	}

	ages := make([]int, 0, len(children.Ages))
	for _, age := range children.Ages {
		if age >= 0 && age <= maxChildAge {
			ages = append(ages, age)
		}
	}
	return ages
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
