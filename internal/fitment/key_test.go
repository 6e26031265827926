package fitment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name                      string
		mk, model, year, engine   string
		want                      string
	}{
		{"canonical", "Toyota", "Corolla", "2015", "1.8", "TOYOTA|COROLLA|2015|1.8"},
		{"trims and uppercases", " toyota ", " corolla", " 2015 ", " 1.8 ", "TOYOTA|COROLLA|2015|1.8"},
		{"engine case preserved", "Honda", "Civic", "2017", "1.5L Turbo", "HONDA|CIVIC|2017|1.5L Turbo"},
		{"blank components kept positional", "Toyota", "", "2015", "", "TOYOTA||2015|"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.mk, tt.model, tt.year, tt.engine))
		})
	}
}

func TestSplitKey(t *testing.T) {
	mk, model, year, engine := SplitKey("TOYOTA|COROLLA|2015|1.8")
	assert.Equal(t, "TOYOTA", mk)
	assert.Equal(t, "COROLLA", model)
	assert.Equal(t, "2015", year)
	assert.Equal(t, "1.8", engine)

	mk, model, year, engine = SplitKey("TOYOTA|COROLLA")
	assert.Equal(t, "TOYOTA", mk)
	assert.Equal(t, "COROLLA", model)
	assert.Empty(t, year)
	assert.Empty(t, engine)
}

func TestValidKey(t *testing.T) {
	assert.True(t, ValidKey("TOYOTA|COROLLA|2015|1.8"))
	assert.False(t, ValidKey("TOYOTA|COROLLA|2015"))
	assert.False(t, ValidKey("TOYOTA||2015|1.8"))
	assert.False(t, ValidKey("TOYOTA| |2015|1.8"))
	assert.False(t, ValidKey(""))
	assert.False(t, ValidKey("TOYOTA|COROLLA|2015|1.8|EXTRA"))
}

func TestDecodedVehicle_FitmentKey(t *testing.T) {
	d := DecodedVehicle{Make: "Toyota", Model: "Corolla", ModelYear: "2015", DisplacementL: "1.8"}
	assert.Equal(t, "TOYOTA|COROLLA|2015|1.8", d.FitmentKey())

	// Displacement wins over cylinder count; cylinders are the fallback.
	d = DecodedVehicle{Make: "Toyota", Model: "Corolla", ModelYear: "2015", EngineCylinders: "4"}
	assert.Equal(t, "TOYOTA|COROLLA|2015|4", d.FitmentKey())
	assert.Equal(t, "4", d.EngineLabel())
}
