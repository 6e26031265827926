package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fgauto/parts-engine/internal/catalog"
)

func TestClampQty(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 1},
		{-5, 1},
		{1, 1},
		{500, 500},
		{999, 999},
		{1000, 999},
		{5000, 999},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampQty(tt.in), "ClampQty(%d)", tt.in)
	}
}

func TestCart_Add(t *testing.T) {
	var c Cart

	c.Add("pads")
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 1, c.Lines[0].Qty)

	c.Add("pads")
	require.Len(t, c.Lines, 1, "adding an existing part increments its line")
	assert.Equal(t, 2, c.Lines[0].Qty)

	c.Add("battery")
	require.Len(t, c.Lines, 2)
	assert.Equal(t, "battery", c.Lines[1].PartID)
}

func TestCart_AddClampsAtMax(t *testing.T) {
	c := Cart{Lines: []Line{{PartID: "pads", Qty: MaxQty}}}
	c.Add("pads")
	assert.Equal(t, MaxQty, c.Lines[0].Qty)
}

func TestCart_SetQty(t *testing.T) {
	c := Cart{Lines: []Line{{PartID: "pads", Qty: 2}}}

	c.SetQty("pads", 7)
	assert.Equal(t, 7, c.Lines[0].Qty)

	c.SetQty("pads", 0)
	assert.Equal(t, MinQty, c.Lines[0].Qty, "zero clamps up to the minimum")

	c.SetQty("pads", 5000)
	assert.Equal(t, MaxQty, c.Lines[0].Qty)

	c.SetQty("missing", 3)
	require.Len(t, c.Lines, 1, "setting an absent line is a no-op")
}

func TestCart_RemoveAndClear(t *testing.T) {
	c := Cart{Lines: []Line{{PartID: "pads", Qty: 1}, {PartID: "battery", Qty: 2}}}

	c.Remove("pads")
	require.Len(t, c.Lines, 1)
	assert.Equal(t, "battery", c.Lines[0].PartID)

	c.Remove("not-there")
	assert.Len(t, c.Lines, 1)

	c.Clear()
	assert.Empty(t, c.Lines)
	assert.Equal(t, 0, c.Count())
}

func TestCart_Subtotal(t *testing.T) {
	store := catalog.NewStore(&catalog.Dataset{Parts: []catalog.Part{
		{ID: "pads", Name: "Pads", Price: 28000},
		{ID: "battery", Name: "Battery", Price: 95000},
	}})

	c := Cart{Lines: []Line{
		{PartID: "pads", Qty: 2},
		{PartID: "battery", Qty: 1},
		{PartID: "vanished", Qty: 3},
	}}

	assert.Equal(t, 2*28000.0+95000.0, c.Subtotal(store),
		"lines for parts missing from the catalog contribute nothing")
	assert.Equal(t, 6, c.Count())
}
