package models

import "time"

// ExportResult describes a completed spreadsheet export run.
type ExportResult struct {
	ID          string         `json:"id"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Start       *time.Time     `json:"start,omitempty"`
	End         *time.Time     `json:"end,omitempty"`
	Rows        map[string]int `json:"rows"`
}
