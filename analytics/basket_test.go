package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retail-bi/models"
)

func basketRows() []models.Transaction {
	return []models.Transaction{
		line("O1", "C1", "A", onDay(0), 1, 1),
		line("O1", "C1", "B", onDay(0), 1, 1),
		line("O1", "C1", "C", onDay(0), 1, 1),
		line("O2", "C2", "A", onDay(1), 1, 1),
		line("O2", "C2", "B", onDay(1), 1, 1),
	}
}

func TestMarketBasketWeights(t *testing.T) {
	g := MarketBasket(basketRows())

	assert.Equal(t, 2, g.Weight("A", "B"))
	assert.Equal(t, 2, g.Weight("B", "A"))
	assert.Equal(t, 1, g.Weight("A", "C"))
	assert.Equal(t, 1, g.Weight("B", "C"))
	assert.Len(t, g.Edges, 3)
	for _, e := range g.Edges {
		assert.NotEqual(t, e.Source, e.Target)
		assert.Less(t, e.Source, e.Target)
	}

	require.Len(t, g.Nodes, 3)
	assert.Equal(t, "A", g.Nodes[0].ProductID)
	assert.Equal(t, 2, g.Nodes[0].Orders)
	assert.Equal(t, "A", g.Edges[0].Source)
	assert.Equal(t, "B", g.Edges[0].Target)
}

func TestMarketBasketCountsRepeatedLinesOnce(t *testing.T) {
	rows := append(basketRows(), line("O2", "C2", "A", onDay(1), 1, 3))
	g := MarketBasket(rows)
	assert.Equal(t, 2, g.Weight("A", "B"))
	assert.Zero(t, g.Weight("A", "A"))
}

func TestMarketBasketSingleProductOrders(t *testing.T) {
	g := MarketBasket([]models.Transaction{line("O1", "C1", "A", onDay(0), 1, 1)})
	assert.Len(t, g.Nodes, 1)
	assert.Empty(t, g.Edges)
}

func TestPruneBasket(t *testing.T) {
	g := PruneBasket(MarketBasket(basketRows()), 2)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, 2, g.Weight("A", "B"))
	assert.Len(t, g.Nodes, 2)

	same := PruneBasket(MarketBasket(basketRows()), 1)
	assert.Len(t, same.Edges, 3)
}
