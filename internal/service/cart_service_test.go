package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/ahiagboo/internal/datamodels/cart"
)

func basket(id int64, price string) cart.Item {
	return cart.Item{ProductID: id, Name: "item", UnitPrice: decimal.RequireFromString(price)}
}

func TestCartServiceIsolatesSessions(t *testing.T) {
	svc := NewCartService(10)

	svc.Add("s1", basket(1, "10.00"), 2)
	svc.Add("s2", basket(1, "10.00"), 5)

	snap1 := svc.Snapshot("s1")
	snap2 := svc.Snapshot("s2")
	require.Len(t, snap1.Items, 1)
	require.Len(t, snap2.Items, 1)
	assert.Equal(t, 2, snap1.Items[0].Quantity)
	assert.Equal(t, 5, snap2.Items[0].Quantity)

	svc.Clear("s1")
	assert.Empty(t, svc.Snapshot("s1").Items)
	assert.Len(t, svc.Snapshot("s2").Items, 1)
}

func TestCartServiceSnapshotConsistency(t *testing.T) {
	svc := NewCartService(10)
	svc.Add("s1", basket(1, "9.90"), 3)
	snap := svc.SetQuantity("s1", 1, 15)

	// 快照内条目与合计必须出自同一时刻
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 10, snap.Items[0].Quantity)
	assert.Equal(t, "99", snap.Total.String())
}

func TestCartServiceDrop(t *testing.T) {
	svc := NewCartService(10)
	svc.Add("s1", basket(1, "10.00"), 2)

	svc.Drop("s1")
	assert.Empty(t, svc.Snapshot("s1").Items)
}
