package fitment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fgauto/parts-engine/internal/cache"
)

// ErrInvalidVIN indicates the VIN is too short to decode.
var ErrInvalidVIN = errors.New("invalid VIN")

// minVINLength is the shortest identifier the decoder accepts; full VINs are
// 17 characters but partial VINs down to 11 still decode.
const minVINLength = 11

// DecodedVehicle is the subset of the vPIC decode result the engine consumes.
type DecodedVehicle struct {
	VIN             string `json:"vin"`
	Make            string `json:"make"`
	Model           string `json:"model"`
	ModelYear       string `json:"modelYear"`
	BodyClass       string `json:"bodyClass,omitempty"`
	VehicleType     string `json:"vehicleType,omitempty"`
	EngineCylinders string `json:"engineCylinders,omitempty"`
	DisplacementL   string `json:"displacementL,omitempty"`
	FuelTypePrimary string `json:"fuelTypePrimary,omitempty"`
	PlantCountry    string `json:"plantCountry,omitempty"`
	Manufacturer    string `json:"manufacturer,omitempty"`
}

// EngineLabel returns the engine component for the fitment key: displacement
// in litres where available, otherwise the raw engine field.
func (d DecodedVehicle) EngineLabel() string {
	if s := strings.TrimSpace(d.DisplacementL); s != "" {
		return s
	}
	return strings.TrimSpace(d.EngineCylinders)
}

// FitmentKey derives the vehicle's fitment key from the decoded record.
func (d DecodedVehicle) FitmentKey() string {
	return Key(d.Make, d.Model, d.ModelYear, d.EngineLabel())
}

// DecoderConfig holds VIN decoder client configuration.
type DecoderConfig struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Decoder decodes vehicle identifiers through the NHTSA vPIC API. Decoded
// records are cached so repeat lookups for the same VIN skip the network.
type Decoder struct {
	httpClient *http.Client
	baseURL    string
	cache      cache.Client
	cacheTTL   time.Duration
}

// NewDecoder creates a VIN decoder client.
func NewDecoder(cfg DecoderConfig, c cache.Client) *Decoder {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://vpic.nhtsa.dot.gov/api/vehicles"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Decoder{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		cache:      c,
		cacheTTL:   ttl,
	}
}

// vpicResponse mirrors the DecodeVinValuesExtended payload.
type vpicResponse struct {
	Results []vpicRow `json:"Results"`
}

type vpicRow struct {
	VIN             string `json:"VIN"`
	Make            string `json:"Make"`
	Model           string `json:"Model"`
	ModelYear       string `json:"ModelYear"`
	BodyClass       string `json:"BodyClass"`
	VehicleType     string `json:"VehicleType"`
	EngineCylinders string `json:"EngineCylinders"`
	DisplacementL   string `json:"DisplacementL"`
	FuelTypePrimary string `json:"FuelTypePrimary"`
	PlantCountry    string `json:"PlantCountry"`
	Manufacturer    string `json:"Manufacturer"`
}

// Decode looks up a VIN, with an optional model-year hint, and returns the
// decoded vehicle record.
func (d *Decoder) Decode(ctx context.Context, vin, yearHint string) (*DecodedVehicle, error) {
	vin = strings.TrimSpace(vin)
	if len(vin) < minVINLength {
		return nil, fmt.Errorf("%w: expected at least %d characters", ErrInvalidVIN, minVINLength)
	}

	cacheKey := "vin:" + strings.ToUpper(vin) + ":" + yearHint
	if d.cache != nil {
		if raw, err := d.cache.Get(ctx, cacheKey); err == nil {
			var cached DecodedVehicle
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	u := fmt.Sprintf("%s/DecodeVinValuesExtended/%s?format=json", d.baseURL, url.PathEscape(vin))
	if yearHint != "" {
		u += "&modelyear=" + url.QueryEscape(yearHint)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build decode request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vin decode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vin decode: unexpected status %d", resp.StatusCode)
	}

	var payload vpicResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("parse decode response: %w", err)
	}
	if len(payload.Results) == 0 {
		return nil, errors.New("vin decode: no results returned")
	}

	row := payload.Results[0]
	decoded := &DecodedVehicle{
		VIN:             row.VIN,
		Make:            row.Make,
		Model:           row.Model,
		ModelYear:       row.ModelYear,
		BodyClass:       row.BodyClass,
		VehicleType:     row.VehicleType,
		EngineCylinders: row.EngineCylinders,
		DisplacementL:   row.DisplacementL,
		FuelTypePrimary: row.FuelTypePrimary,
		PlantCountry:    row.PlantCountry,
		Manufacturer:    row.Manufacturer,
	}
	if decoded.VIN == "" {
		decoded.VIN = vin
	}

	if d.cache != nil {
		if raw, err := json.Marshal(decoded); err == nil {
			_ = d.cache.Set(ctx, cacheKey, raw, d.cacheTTL)
		}
	}
	return decoded, nil
}
