package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ReplaceParts(t *testing.T) {
	store := NewStore(&Dataset{Parts: testParts()})

	_, ok := store.PartByID("radiator")
	require.True(t, ok)

	store.ReplaceParts([]Part{{ID: "new-part", Name: "New Part", Price: 100}})

	_, ok = store.PartByID("radiator")
	assert.False(t, ok)
	p, ok := store.PartByID("new-part")
	require.True(t, ok)
	assert.Equal(t, "New Part", p.Name)
}

func TestStore_ResolvePartsDropsMissing(t *testing.T) {
	store := NewStore(&Dataset{Parts: testParts()})

	got := store.ResolveParts([]string{"pads", "vanished", "battery"})
	require.Len(t, got, 2)
	assert.Equal(t, "pads", got[0].ID)
	assert.Equal(t, "battery", got[1].ID)
}

func TestStore_SnapshotsAreCopies(t *testing.T) {
	store := NewStore(&Dataset{Parts: testParts()})

	snap := store.Parts()
	snap[0].Name = "mutated"

	p, ok := store.PartByID(snap[0].ID)
	require.True(t, ok)
	assert.NotEqual(t, "mutated", p.Name)
}

func TestParseDataset_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "valid",
			yaml: `
parts:
  - id: a
    name: Part A
    price: 10
symptoms:
  - id: s1
    title: Symptom One
`,
		},
		{
			name: "duplicate part id",
			yaml: `
parts:
  - id: a
    name: Part A
  - id: a
    name: Part A again
`,
			wantErr: "duplicate part id",
		},
		{
			name: "negative price",
			yaml: `
parts:
  - id: a
    name: Part A
    price: -5
`,
			wantErr: "negative price",
		},
		{
			name: "missing part id",
			yaml: `
parts:
  - name: Anonymous
`,
			wantErr: "has no id",
		},
		{
			name: "duplicate symptom id",
			yaml: `
symptoms:
  - id: s1
    title: One
  - id: s1
    title: Two
`,
			wantErr: "duplicate symptom id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDataset([]byte(tt.yaml))
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestParseDataset_InlineFitment(t *testing.T) {
	ds, err := ParseDataset([]byte(`
parts:
  - id: pads
    name: Brake Pads
    price: 28000
fitment:
  "TOYOTA|COROLLA|2015|1.8":
    - pads
oemPartNumbers:
  "TOYOTA|COROLLA|2015|1.8":
    pads: ["45022-TBA-A01"]
currency:
  base: NGN
  rates:
    NGN: 1
  symbols:
    NGN: "₦"
`))
	require.NoError(t, err)

	ids, ok := ds.Fitment.Fitment["TOYOTA|COROLLA|2015|1.8"]
	require.True(t, ok)
	assert.Equal(t, []string{"pads"}, ids)
	assert.Equal(t, "NGN", ds.Currency.Base)
}
