package models

import "time"

// ServerInfo is the public description of a running server.
type ServerInfo struct {
	Version      string    `json:"version"`
	StartedAt    time.Time `json:"started_at"`
	Subjects     int       `json:"subjects"`
	CatalogItems int       `json:"catalog_items"`
	Notes        int       `json:"notes"`
}
