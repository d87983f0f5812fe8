package models

import "time"

// ProductMonth is one product's aggregate for one calendar month.
type ProductMonth struct {
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Month       time.Time `json:"month"`
	MonthIndex  int       `json:"month_index"`
	TotalSales  float64   `json:"total_sales"`
	AvgQuantity float64   `json:"avg_quantity"`
}

// ForecastResult is the predicted stock need for a product's next month.
type ForecastResult struct {
	ProductID         string `json:"product_id"`
	ProductName       string `json:"product_name"`
	PredictedQuantity int    `json:"predicted_quantity"`
	Observations      int    `json:"observations"`
	LastMonthIndex    int    `json:"last_month_index"`
}

// BasketNode is a product appearing in at least one order of the set.
type BasketNode struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Orders      int    `json:"orders"`
}

// BasketEdge links two products bought together; Weight counts the orders.
// Source always sorts before Target.
type BasketEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// BasketGraph is the undirected product co-occurrence graph.
type BasketGraph struct {
	Nodes []BasketNode `json:"nodes"`
	Edges []BasketEdge `json:"edges"`
}

// Weight returns the co-occurrence count of a and b, in either order.
func (g BasketGraph) Weight(a, b string) int {
	if a > b {
		a, b = b, a
	}
	for _, e := range g.Edges {
		if e.Source == a && e.Target == b {
			return e.Weight
		}
	}
	return 0
}
