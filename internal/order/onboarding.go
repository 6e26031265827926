package order

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fgauto/parts-engine/internal/storage"
)

// Application is a mechanic or parts-shop onboarding request.
type Application struct {
	SubmittedAt time.Time `json:"ts"`
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Phone       string    `json:"phone"`
	Specialty   string    `json:"specialty"`
	Years       string    `json:"years"`
	Notes       string    `json:"notes"`
}

// Text renders the application as the outbound message body.
func (a Application) Text() string {
	return fmt.Sprintf(
		"F&G Onboarding Application\nType: %s\nBusiness: %s\nLocation: %s\nPhone: %s\nSpecialty: %s\nExperience: %s\nNotes: %s",
		a.Type, a.Name, a.Location, a.Phone, a.Specialty, a.Years, a.Notes,
	)
}

// onboardingBlob is the blob-store key for submitted applications.
const onboardingBlob = "onboarding"

// SaveApplication prepends the application to the stored list. A corrupt
// stored list is discarded and restarted.
func SaveApplication(ctx context.Context, store storage.Store, app Application) error {
	var list []Application
	if raw, err := store.Get(ctx, onboardingBlob); err == nil {
		_ = json.Unmarshal([]byte(raw), &list)
	}

	list = append([]Application{app}, list...)
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("marshal applications: %w", err)
	}
	if err := store.Set(ctx, onboardingBlob, string(raw)); err != nil {
		return fmt.Errorf("save applications: %w", err)
	}
	return nil
}

// ListApplications returns the stored applications, newest first. Missing or
// corrupt blobs yield an empty list.
func ListApplications(ctx context.Context, store storage.Store) []Application {
	raw, err := store.Get(ctx, onboardingBlob)
	if err != nil {
		return nil
	}
	var list []Application
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil
	}
	return list
}
