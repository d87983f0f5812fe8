package analytics

import (
	"sort"

	"retail-bi/models"
)

type productPair struct{ a, b string }

// MarketBasket builds the product co-occurrence graph of rows: for every order
// and every unordered pair of distinct products in it, the pair's weight goes
// up by one. A product repeated within an order counts once.
func MarketBasket(rows []models.Transaction) models.BasketGraph {
	orders := make(map[string]map[string]struct{})
	names := make(map[string]string)
	for _, t := range rows {
		key := productKey(t)
		if key == "" {
			continue
		}
		set, ok := orders[t.OrderID]
		if !ok {
			set = make(map[string]struct{})
			orders[t.OrderID] = set
		}
		set[key] = struct{}{}
		if names[key] == "" {
			names[key] = t.ProductName
		}
	}

	nodeOrders := make(map[string]int)
	weights := make(map[productPair]int)
	for _, set := range orders {
		products := make([]string, 0, len(set))
		for p := range set {
			products = append(products, p)
			nodeOrders[p]++
		}
		sort.Strings(products)
		for i := 0; i < len(products); i++ {
			for j := i + 1; j < len(products); j++ {
				weights[productPair{products[i], products[j]}]++
			}
		}
	}

	g := models.BasketGraph{
		Nodes: make([]models.BasketNode, 0, len(nodeOrders)),
		Edges: make([]models.BasketEdge, 0, len(weights)),
	}
	for id, n := range nodeOrders {
		g.Nodes = append(g.Nodes, models.BasketNode{ProductID: id, ProductName: names[id], Orders: n})
	}
	sort.Slice(g.Nodes, func(i, j int) bool { return g.Nodes[i].ProductID < g.Nodes[j].ProductID })

	for pair, w := range weights {
		g.Edges = append(g.Edges, models.BasketEdge{Source: pair.a, Target: pair.b, Weight: w})
	}
	sortEdges(g.Edges)
	return g
}

// PruneBasket drops edges lighter than minWeight and nodes left without edges.
// A minWeight of 1 or less returns g unchanged.
func PruneBasket(g models.BasketGraph, minWeight int) models.BasketGraph {
	if minWeight <= 1 {
		return g
	}
	out := models.BasketGraph{Nodes: []models.BasketNode{}, Edges: []models.BasketEdge{}}
	keep := make(map[string]struct{})
	for _, e := range g.Edges {
		if e.Weight >= minWeight {
			out.Edges = append(out.Edges, e)
			keep[e.Source] = struct{}{}
			keep[e.Target] = struct{}{}
		}
	}
	for _, n := range g.Nodes {
		if _, ok := keep[n.ProductID]; ok {
			out.Nodes = append(out.Nodes, n)
		}
	}
	return out
}

func sortEdges(edges []models.BasketEdge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Weight != edges[j].Weight {
			return edges[i].Weight > edges[j].Weight
		}
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
}
