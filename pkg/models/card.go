package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CardData holds the contact fields extracted from a single business card.
// Every field is optional; an empty string means the field was not extracted.
// Values are trimmed and contain no repeated internal whitespace.
type CardData struct {
	Name        string `json:"name,omitempty"`         // Person name, possibly bilingual (e.g. "鄭禾珈 Appa")
	Title       string `json:"title,omitempty"`        // Job title/position
	Company     string `json:"company,omitempty"`      // Company or organization name
	Phone       string `json:"phone,omitempty"`        // Primary phone number
	Fax         string `json:"fax,omitempty"`          // Fax number, label prefix stripped
	Email       string `json:"email,omitempty"`        // Email address
	Website     string `json:"website,omitempty"`      // http(s) URL
	SocialMedia string `json:"social_media,omitempty"` // Comma-joined social handles
	Address     string `json:"address,omitempty"`      // Postal address, label prefix stripped
}

// IsEmpty reports whether no field was extracted at all.
func (c CardData) IsEmpty() bool {
	return c == CardData{}
}

// CardPatch carries manual edits for a CardData, field by field.
// A nil pointer means "no edit"; a pointer to the empty string is an
// explicit clear that removes the extracted value.
type CardPatch struct {
	Name        *string `json:"name,omitempty"`
	Title       *string `json:"title,omitempty"`
	Company     *string `json:"company,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Fax         *string `json:"fax,omitempty"`
	Email       *string `json:"email,omitempty"`
	Website     *string `json:"website,omitempty"`
	SocialMedia *string `json:"social_media,omitempty"`
	Address     *string `json:"address,omitempty"`
}

// Merge combines extracted card data with manual edits. Edited fields win
// over extracted values, untouched fields keep the extracted value. Merge is
// a pure function: any two inputs merge deterministically and it never fails.
func Merge(extracted CardData, patch CardPatch) CardData {
	merged := extracted
	apply := func(dst *string, edit *string) {
		if edit != nil {
			*dst = CleanValue(*edit)
		}
	}
	apply(&merged.Name, patch.Name)
	apply(&merged.Title, patch.Title)
	apply(&merged.Company, patch.Company)
	apply(&merged.Phone, patch.Phone)
	apply(&merged.Fax, patch.Fax)
	apply(&merged.Email, patch.Email)
	apply(&merged.Website, patch.Website)
	apply(&merged.SocialMedia, patch.SocialMedia)
	apply(&merged.Address, patch.Address)
	return merged
}

// CleanValue trims a field value and collapses internal whitespace runs to a
// single space.
func CleanValue(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// BusinessCard is the complete record handed to the storage boundary: the
// extracted contact data plus the raw OCR text it came from.
type BusinessCard struct {
	ID           string    `json:"id"`            // UUID
	ScannedAt    time.Time `json:"scanned_at"`    // When the card was scanned
	Data         CardData  `json:"data"`          // Extracted contact information
	RawOCR       string    `json:"raw_ocr"`       // Original OCR text output
	Confidence   float64   `json:"confidence"`    // Engine-reported confidence (0-100)
	LastModified time.Time `json:"last_modified"` // When the record was last edited
}

// NewBusinessCard creates a fresh record for freshly scanned card data.
func NewBusinessCard(data CardData, rawOCR string, confidence float64) BusinessCard {
	now := time.Now()
	return BusinessCard{
		ID:           uuid.NewString(),
		ScannedAt:    now,
		Data:         data,
		RawOCR:       rawOCR,
		Confidence:   confidence,
		LastModified: now,
	}
}
