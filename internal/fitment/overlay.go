package fitment

import "sync"

// OverlayData is the serialized form of the fitment overlay: vehicle key to
// eligible part ids, and vehicle key to part id to OEM part numbers. Both maps
// are sparse; a missing key means no fitment data exists for that vehicle,
// which is distinct from an empty eligible list.
type OverlayData struct {
	Fitment        map[string][]string          `yaml:"fitment" json:"fitment"`
	OEMPartNumbers map[string]map[string][]string `yaml:"oemPartNumbers" json:"oemPartNumbers"`
}

// Overlay is the runtime fitment store. Like the catalog it may be replaced
// wholesale by the fitment editor without a restart.
type Overlay struct {
	mu   sync.RWMutex
	data OverlayData
}

// NewOverlay creates an overlay seeded with the given data.
func NewOverlay(data OverlayData) *Overlay {
	o := &Overlay{data: data}
	if o.data.Fitment == nil {
		o.data.Fitment = map[string][]string{}
	}
	if o.data.OEMPartNumbers == nil {
		o.data.OEMPartNumbers = map[string]map[string][]string{}
	}
	return o
}

// EligibleParts returns the eligible part ids for a vehicle key. The second
// return value is false when no fitment data exists for the key.
func (o *Overlay) EligibleParts(key string) ([]string, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	ids, ok := o.data.Fitment[key]
	if !ok {
		return nil, false
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out, true
}

// OEMNumbers returns the OEM part numbers recorded for a part under a vehicle
// key, or nil when none are recorded.
func (o *Overlay) OEMNumbers(key, partID string) []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	m, ok := o.data.OEMPartNumbers[key]
	if !ok {
		return nil
	}
	nums, ok := m[partID]
	if !ok {
		return nil
	}
	out := make([]string, len(nums))
	copy(out, nums)
	return out
}

// Keys returns every vehicle key with fitment data.
func (o *Overlay) Keys() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	keys := make([]string, 0, len(o.data.Fitment))
	for k := range o.data.Fitment {
		keys = append(keys, k)
	}
	return keys
}

// Set records the eligible parts and OEM numbers for a vehicle key,
// overwriting any previous entry.
func (o *Overlay) Set(key string, partIDs []string, oem map[string][]string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	ids := make([]string, len(partIDs))
	copy(ids, partIDs)
	o.data.Fitment[key] = ids
	if oem == nil {
		oem = map[string][]string{}
	}
	o.data.OEMPartNumbers[key] = oem
}

// Delete removes all fitment data for a vehicle key. It reports whether the
// key existed.
func (o *Overlay) Delete(key string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.data.Fitment[key]
	if !ok {
		return false
	}
	delete(o.data.Fitment, key)
	delete(o.data.OEMPartNumbers, key)
	return true
}

// Replace swaps the entire overlay.
func (o *Overlay) Replace(data OverlayData) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if data.Fitment == nil {
		data.Fitment = map[string][]string{}
	}
	if data.OEMPartNumbers == nil {
		data.OEMPartNumbers = map[string]map[string][]string{}
	}
	o.data = data
}

// Snapshot returns a deep copy of the overlay for export.
func (o *Overlay) Snapshot() OverlayData {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := OverlayData{
		Fitment:        make(map[string][]string, len(o.data.Fitment)),
		OEMPartNumbers: make(map[string]map[string][]string, len(o.data.OEMPartNumbers)),
	}
	for k, ids := range o.data.Fitment {
		cp := make([]string, len(ids))
		copy(cp, ids)
		out.Fitment[k] = cp
	}
	for k, m := range o.data.OEMPartNumbers {
		mc := make(map[string][]string, len(m))
		for pid, nums := range m {
			cp := make([]string, len(nums))
			copy(cp, nums)
			mc[pid] = cp
		}
		out.OEMPartNumbers[k] = mc
	}
	return out
}
