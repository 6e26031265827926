package fitment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fgauto/parts-engine/internal/cache"
)

const vpicFixture = `{
	"Results": [{
		"VIN": "2T1BURHE5FC123456",
		"Make": "TOYOTA",
		"Model": "Corolla",
		"ModelYear": "2015",
		"BodyClass": "Sedan",
		"EngineCylinders": "4",
		"DisplacementL": "1.8",
		"FuelTypePrimary": "Gasoline"
	}]
}`

func TestDecoder_Decode(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Contains(t, r.URL.Path, "/DecodeVinValuesExtended/2T1BURHE5FC123456")
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(vpicFixture))
	}))
	defer srv.Close()

	d := NewDecoder(DecoderConfig{BaseURL: srv.URL}, cache.NewMemoryClient(16))

	decoded, err := d.Decode(context.Background(), "2T1BURHE5FC123456", "")
	require.NoError(t, err)
	assert.Equal(t, "TOYOTA", decoded.Make)
	assert.Equal(t, "Corolla", decoded.Model)
	assert.Equal(t, "2015", decoded.ModelYear)
	assert.Equal(t, "1.8", decoded.EngineLabel())
	assert.Equal(t, "TOYOTA|COROLLA|2015|1.8", decoded.FitmentKey())

	// Second decode for the same VIN is served from cache.
	_, err = d.Decode(context.Background(), "2T1BURHE5FC123456", "")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDecoder_YearHint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2015", r.URL.Query().Get("modelyear"))
		w.Write([]byte(vpicFixture))
	}))
	defer srv.Close()

	d := NewDecoder(DecoderConfig{BaseURL: srv.URL}, nil)
	_, err := d.Decode(context.Background(), "2T1BURHE5FC", "2015")
	require.NoError(t, err)
}

func TestDecoder_RejectsShortVIN(t *testing.T) {
	d := NewDecoder(DecoderConfig{}, nil)

	_, err := d.Decode(context.Background(), "SHORT", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidVIN)

	_, err = d.Decode(context.Background(), "  1234567890  ", "")
	assert.ErrorIs(t, err, ErrInvalidVIN, "whitespace does not count toward length")
}

func TestDecoder_UpstreamErrors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		d := NewDecoder(DecoderConfig{BaseURL: srv.URL}, nil)
		_, err := d.Decode(context.Background(), "2T1BURHE5FC123456", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status")
	})

	t.Run("empty results", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"Results": []}`))
		}))
		defer srv.Close()

		d := NewDecoder(DecoderConfig{BaseURL: srv.URL}, nil)
		_, err := d.Decode(context.Background(), "2T1BURHE5FC123456", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no results")
	})
}
