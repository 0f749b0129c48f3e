package offer

import "strconv"

// productTotal is the per-product reduction of the raw price matrix.
type productTotal struct {
	TotalPrice   float64
	PricedNights int
}

// aggregatePrices reduces raw price-matrix rows into a total price and a
// positively-priced night count per product.
//
// Bucket selection: when a row keys a bucket by the exact requested nights
// count, only that bucket is read; otherwise every bucket is summed (some
// backend variants key buckets by date instead of nights).
//
// A day entry with price <= 0 is an unbookable night: it contributes
// nothing, and its service charges are skipped so callers are never
// charged a surcharge for a night they cannot book.
func aggregatePrices(rows []PriceMatrixRow, nights int) map[string]productTotal {
	totals := make(map[string]productTotal, len(rows))
	nightsKey := strconv.Itoa(nights)

	for _, row := range rows {
		if isSentinelID(row.ProductID) {
			continue
		}

		var entries []DayPrice
		if bucket, ok := row.Buckets[nightsKey]; ok {
			entries = bucket
		} else {
			for _, bucket := range row.Buckets {
				entries = append(entries, bucket...)
			}
		}

		total := totals[row.ProductID]
		for _, e := range entries {
			if e.Price <= 0 {
				continue
			}
			total.TotalPrice += e.Price
			total.PricedNights++
			for _, charge := range e.ServiceCharges {
				if charge > 0 {
					total.TotalPrice += charge
				}
			}
		}
		totals[row.ProductID] = total
	}

	return totals
}

// assembleOffers joins resolved products with aggregated totals. Iteration
// follows resolution order so every resolved product appears exactly once;
// products the matrix never priced come back as zero-priced and unavailable
// instead of being dropped.
func assembleOffers(products []ProductRef, totals map[string]productTotal, nights int) []Offer {
	offers := make([]Offer, 0, len(products))
	for _, p := range products {
		total := totals[p.ProductID]
		offers = append(offers, Offer{
			ProductID:    p.ProductID,
			Name:         p.Name,
			TotalPrice:   total.TotalPrice,
			Currency:     Currency,
			Availability: total.TotalPrice > 0 && total.PricedNights >= nights,
			Nights:       nights,
		})
	}
	return offers
}
