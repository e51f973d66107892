package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id int64, price string) Item {
	return Item{
		ProductID: id,
		Name:      "item",
		UnitPrice: decimal.RequireFromString(price),
	}
}

func TestAddMergesAndCaps(t *testing.T) {
	c := New(10)

	c.Add(item(1, "10.00"), 7)
	c.Add(item(1, "10.00"), 7)

	// 合并后再截断：一条记录、数量 10，而不是两条或 14
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 10, items[0].Quantity)
	assert.Equal(t, "100", c.Total().String())
}

func TestAddClampsNonPositiveQuantity(t *testing.T) {
	c := New(10)

	c.Add(item(1, "5.00"), 0)
	require.Equal(t, 1, c.Items()[0].Quantity)

	c.Add(item(2, "5.00"), -3)
	assert.Equal(t, 1, c.Items()[1].Quantity)
}

func TestSetQuantityClamps(t *testing.T) {
	c := New(10)
	c.Add(item(1, "10.00"), 2)
	c.Add(item(2, "5.00"), 1)
	require.Equal(t, "25", c.Total().String())

	c.SetQuantity(1, 15)
	assert.Equal(t, 10, c.Items()[0].Quantity)
	assert.Equal(t, "105", c.Total().String())

	c.SetQuantity(1, 0)
	assert.Equal(t, 1, c.Items()[0].Quantity)
}

func TestSetQuantityAbsentIsNoop(t *testing.T) {
	c := New(10)
	c.Add(item(1, "10.00"), 2)

	c.SetQuantity(99, 5)

	require.Len(t, c.Items(), 1)
	assert.Equal(t, "20", c.Total().String())
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	c := New(10)
	c.Add(item(1, "10.00"), 2)

	c.Remove(99)
	require.Len(t, c.Items(), 1)

	c.Remove(1)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, "0", c.Total().String())
}

func TestClear(t *testing.T) {
	c := New(10)
	c.Add(item(1, "10.00"), 2)
	c.Add(item(2, "3.50"), 3)

	c.Clear()

	assert.Empty(t, c.Items())
	assert.True(t, c.Total().IsZero())
}

func TestConfigurableCap(t *testing.T) {
	c := New(3)
	c.Add(item(1, "1.00"), 5)
	assert.Equal(t, 3, c.Items()[0].Quantity)

	// 非法上限回落到默认值
	d := New(0)
	d.Add(item(1, "1.00"), 99)
	assert.Equal(t, DefaultMaxPerItem, d.Items()[0].Quantity)
}

// TestTotalAlwaysDerived 任意操作序列后 total 始终等于 Σ 单价 × 数量
func TestTotalAlwaysDerived(t *testing.T) {
	c := New(10)

	ops := []func(){
		func() { c.Add(item(1, "9.90"), 2) },
		func() { c.Add(item(2, "0.01"), 10) },
		func() { c.Add(item(1, "9.90"), 20) },
		func() { c.SetQuantity(2, 3) },
		func() { c.Remove(1) },
		func() { c.Add(item(3, "150.00"), 1) },
		func() { c.SetQuantity(3, -5) },
	}

	for _, op := range ops {
		op()

		want := decimal.Zero
		for _, it := range c.Items() {
			require.GreaterOrEqual(t, it.Quantity, 1)
			require.LessOrEqual(t, it.Quantity, 10)
			want = want.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
		assert.True(t, c.Total().Equal(want), "total %s != %s", c.Total(), want)
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	c := New(10)
	c.Add(item(1, "10.00"), 2)

	items := c.Items()
	items[0].Quantity = 99

	assert.Equal(t, 2, c.Items()[0].Quantity)
}
