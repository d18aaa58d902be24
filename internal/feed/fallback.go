package feed

import (
	"time"

	"github.com/google/uuid"

	"notifeed/internal/model"
)

// FallbackNotifications returns the built-in dataset seeded into an
// empty store when the backend cannot be reached, so the feed is never
// left blank. Timestamps are relative to now; at least one record is
// unread.
func FallbackNotifications(now time.Time) []model.Notification {
	return []model.Notification{
		{
			ID:          uuid.NewString(),
			Type:        model.TypeFileUpload,
			Title:       "File uploaded",
			Description: `Uploaded "Report_2024.xlsx" to the Documents table`,
			UserName:    "Manager A",
			UserID:      "manager_a",
			Timestamp:   now.Add(-5 * time.Minute),
			Read:        false,
			Details:     []string{"Airtable", "Documents", "Excel"},
		},
		{
			ID:          uuid.NewString(),
			Type:        model.TypeRecordCreate,
			Title:       "Record created",
			Description: `New record "Project Alpha" in the Projects table`,
			UserName:    "Manager B",
			UserID:      "manager_b",
			Timestamp:   now.Add(-30 * time.Minute),
			Read:        false,
			Details:     []string{"Airtable", "Projects"},
		},
		{
			ID:          uuid.NewString(),
			Type:        model.TypeRecordUpdate,
			Title:       "Record updated",
			Description: `Updated "Client XYZ" in the Clients table`,
			UserName:    "Manager A",
			UserID:      "manager_a",
			Timestamp:   now.Add(-time.Hour),
			Read:        true,
			Details:     []string{"Airtable", "Clients"},
		},
		{
			ID:          uuid.NewString(),
			Type:        model.TypeFileUpload,
			Title:       "File uploaded",
			Description: `Uploaded "Presentation.pdf" to the Materials table`,
			UserName:    "Manager C",
			UserID:      "manager_c",
			Timestamp:   now.Add(-2 * time.Hour),
			Read:        false,
			Details:     []string{"Airtable", "Materials", "PDF"},
		},
		{
			ID:          uuid.NewString(),
			Type:        model.TypeUserAction,
			Title:       "User action",
			Description: "Exported data from the Orders table",
			UserName:    "Manager B",
			UserID:      "manager_b",
			Timestamp:   now.Add(-24 * time.Hour),
			Read:        true,
			Details:     []string{"Airtable", "Orders", "Export"},
		},
	}
}
