// Package models defines the incident-report and account types exchanged
// with the Voz Ativa service, plus client-side submission validation.
package models

import "time"

// Category classifies an incident report. The values are the wire
// identifiers the service stores; use Label for display.
type Category string

const (
	CategoryFallenTree Category = "arvore_caida"
	CategoryAccident   Category = "acidente"
	CategoryUnlitPost  Category = "poste_sem_luz"
)

// DefaultCategory is applied when a draft leaves the category unset.
const DefaultCategory = CategoryFallenTree

// Categories lists the valid categories in display order.
func Categories() []Category {
	return []Category{CategoryFallenTree, CategoryAccident, CategoryUnlitPost}
}

// Valid reports whether c is one of the known category identifiers.
func (c Category) Valid() bool {
	switch c {
	case CategoryFallenTree, CategoryAccident, CategoryUnlitPost:
		return true
	}
	return false
}

// Label returns the human-readable name for a category.
func (c Category) Label() string {
	switch c {
	case CategoryFallenTree:
		return "Fallen tree"
	case CategoryAccident:
		return "Accident"
	case CategoryUnlitPost:
		return "Unlit post"
	default:
		return string(c)
	}
}

// Location is a coordinate pair with a best-effort human-readable address.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// Report is a server-confirmed incident record. Photo is a server-hosted
// URI once the report exists.
type Report struct {
	ID          string    `json:"id"`
	Category    Category  `json:"category"`
	Description string    `json:"description"`
	Location    *Location `json:"location,omitempty"`
	Photo       string    `json:"photo,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UserID      string    `json:"userId"`
}

// ReportDraft is the client-side shape of a report before submission.
// PhotoPath points at a locally accessible image file.
type ReportDraft struct {
	Category    Category
	Description string
	Location    *Location
	PhotoPath   string
}
