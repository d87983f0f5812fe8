package main

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"retail-bi/database"
)

var (
	segments  = []string{"Consumer", "Corporate", "Home Office"}
	shipModes = []string{"Standard Class", "Second Class", "First Class", "Same Day"}
	discounts = []float64{0, 0, 0, 0.1, 0.15, 0.2, 0.3, 0.4, 0.5, 0.7}

	cities = []database.Location{
		{Country: "United States", City: "New York City", State: "New York", Region: "East"},
		{Country: "United States", City: "Philadelphia", State: "Pennsylvania", Region: "East"},
		{Country: "United States", City: "Los Angeles", State: "California", Region: "West"},
		{Country: "United States", City: "Seattle", State: "Washington", Region: "West"},
		{Country: "United States", City: "Houston", State: "Texas", Region: "Central"},
		{Country: "United States", City: "Chicago", State: "Illinois", Region: "Central"},
		{Country: "United States", City: "Jacksonville", State: "Florida", Region: "South"},
		{Country: "United States", City: "Atlanta", State: "Georgia", Region: "South"},
	}

	// catalog maps category to sub-category to base unit price.
	catalog = map[string]map[string]float64{
		"Furniture":       {"Bookcases": 220, "Chairs": 180, "Tables": 320, "Furnishings": 40},
		"Office Supplies": {"Binders": 15, "Paper": 8, "Storage": 60, "Art": 10},
		"Technology":      {"Phones": 210, "Accessories": 55, "Machines": 450, "Copiers": 900},
	}
	categories = []string{"Furniture", "Office Supplies", "Technology"}

	productAdjectives  = []string{"Classic", "Premium", "Compact", "Deluxe"}
	customerFirstNames = []string{"Claire", "Darrin", "Sean", "Brosina", "Andrew", "Irene", "Harold", "Pete", "Alejandro", "Zuschuss"}
	customerLastNames  = []string{"Gute", "Van Huff", "O'Donnell", "Hoffman", "Allen", "Maddox", "Pawlan", "Kriz", "Grove", "Carroll"}
)

func populateLocations() []database.Location {
	locations := make([]database.Location, len(cities))
	for index, l := range cities {
		l.Key = index + 1
		locations[index] = l
	}
	return locations
}

func populateProducts(rng *rand.Rand) ([]database.Product, map[string]float64) {
	var products []database.Product
	prices := make(map[string]float64)
	for _, category := range categories {
		subs := catalog[category]
		for _, sub := range sortedSubCategories(subs) {
			for index, adjective := range productAdjectives {
				id := fmt.Sprintf("%s-%s-%d", category[:3], sub[:2], index+1)
				products = append(products, database.Product{
					ID:          id,
					Name:        fmt.Sprintf("%s %s", adjective, sub),
					Category:    category,
					SubCategory: sub,
				})
				prices[id] = subs[sub] * (0.6 + rng.Float64())
			}
		}
	}
	return products, prices
}

func sortedSubCategories(subs map[string]float64) []string {
	out := make([]string, 0, len(subs))
	for name := range subs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func populateCustomers(rng *rand.Rand, locations []database.Location) []database.Customer {
	var customers []database.Customer
	for _, firstName := range customerFirstNames {
		for _, lastName := range customerLastNames {
			customers = append(customers, database.Customer{
				ID:          fmt.Sprintf("%c%c-%05d", firstName[0], lastName[0], len(customers)+10000),
				Name:        firstName + " " + lastName,
				Segment:     segments[rng.IntN(len(segments))],
				LocationKey: locations[rng.IntN(len(locations))].Key,
			})
		}
	}
	return customers
}

func populateShipModes() []database.ShipMode {
	modes := make([]database.ShipMode, len(shipModes))
	for index, mode := range shipModes {
		modes[index] = database.ShipMode{Key: index + 1, Mode: mode}
	}
	return modes
}

// populateFacts draws orders of one to four lines spread over the given
// years, with a fourth-quarter bump in volume.
func populateFacts(rng *rand.Rand, orders, years int, customers []database.Customer, products []database.Product, prices map[string]float64) []database.Fact {
	firstYear := time.Now().UTC().Year() - years
	days := int(time.Date(firstYear+years, 1, 1, 0, 0, 0, 0, time.UTC).Sub(time.Date(firstYear, 1, 1, 0, 0, 0, 0, time.UTC)).Hours() / 24)

	var facts []database.Fact
	for index := 0; index < orders; index++ {
		date := time.Date(firstYear, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, rng.IntN(days))
		if date.Month() < time.October && rng.IntN(5) == 0 {
			date = time.Date(date.Year(), time.Month(10+rng.IntN(3)), 1+rng.IntN(28), 0, 0, 0, 0, time.UTC)
		}

		orderID := fmt.Sprintf("CA-%d-%06d", date.Year(), 100000+index)
		customer := customers[rng.IntN(len(customers))]
		shipMode := 1 + rng.IntN(len(shipModes))

		lines := 1 + rng.IntN(4)
		for l := 0; l < lines; l++ {
			product := products[rng.IntN(len(products))]
			quantity := 1 + rng.IntN(9)
			discount := discounts[rng.IntN(len(discounts))]
			sales := round2(prices[product.ID] * float64(quantity) * (1 - discount))
			margin := 0.25 - discount*0.8 + (rng.Float64()-0.5)*0.1

			facts = append(facts, database.Fact{
				OrderID:     orderID,
				CustomerID:  customer.ID,
				ProductID:   product.ID,
				OrderDate:   date,
				ShipModeKey: shipMode,
				Sales:       sales,
				Profit:      round2(sales * margin),
				Quantity:    quantity,
				Discount:    discount,
			})
		}
	}
	return facts
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// generate builds a complete, referentially consistent star data set.
func generate(seed uint64, orders, years int) database.StarData {
	if years < 1 {
		years = 1
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	locations := populateLocations()
	products, prices := populateProducts(rng)
	customers := populateCustomers(rng, locations)

	return database.StarData{
		Locations: locations,
		Customers: customers,
		Products:  products,
		ShipModes: populateShipModes(),
		Facts:     populateFacts(rng, orders, years, customers, products, prices),
	}
}
