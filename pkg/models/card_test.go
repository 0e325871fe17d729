package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func TestMergeEmptyPatchKeepsExtracted(t *testing.T) {
	extracted := CardData{
		Name:    "John Doe",
		Title:   "CEO",
		Company: "Acme Corporation",
		Phone:   "+1-555-123-4567",
		Email:   "john.doe@acme.com",
	}

	assert.Equal(t, extracted, Merge(extracted, CardPatch{}))
}

func TestMergeManualValueWins(t *testing.T) {
	extracted := CardData{Name: "Jahn Doe", Company: "Acme Corporation"}
	patch := CardPatch{Name: ptr("John Doe")}

	merged := Merge(extracted, patch)

	assert.Equal(t, "John Doe", merged.Name)
	assert.Equal(t, "Acme Corporation", merged.Company, "untouched fields keep the extracted value")
}

func TestMergeExplicitClear(t *testing.T) {
	extracted := CardData{Fax: "02-8765-4321", Phone: "02-1234-5678"}
	patch := CardPatch{Fax: ptr("")}

	merged := Merge(extracted, patch)

	assert.Empty(t, merged.Fax, "an explicit empty edit clears the extracted value")
	assert.Equal(t, "02-1234-5678", merged.Phone)
}

func TestMergeNormalizesManualValues(t *testing.T) {
	merged := Merge(CardData{}, CardPatch{Name: ptr("  Jane   Smith ")})

	assert.Equal(t, "Jane Smith", merged.Name)
}

func TestMergeIsDeterministic(t *testing.T) {
	extracted := CardData{Name: "王小明", Title: "總經理"}
	patch := CardPatch{Title: ptr("董事長"), Address: ptr("台北市信義區")}

	assert.Equal(t, Merge(extracted, patch), Merge(extracted, patch))
}

func TestCleanValue(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"John Doe", "John Doe"},
		{"  John   Doe  ", "John Doe"},
		{"台北市\t大同區", "台北市 大同區"},
		{"line\nbreak", "line break"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanValue(tt.in), "input %q", tt.in)
	}
}

func TestCardDataIsEmpty(t *testing.T) {
	assert.True(t, CardData{}.IsEmpty())
	assert.False(t, CardData{Phone: "0928-568-881"}.IsEmpty())
}

func TestNewBusinessCard(t *testing.T) {
	data := CardData{Name: "John Doe"}

	card := NewBusinessCard(data, "John Doe\nCEO", 87.5)

	assert.NotEmpty(t, card.ID)
	assert.Equal(t, data, card.Data)
	assert.Equal(t, "John Doe\nCEO", card.RawOCR)
	assert.Equal(t, 87.5, card.Confidence)
	assert.False(t, card.ScannedAt.IsZero())
	assert.Equal(t, card.ScannedAt, card.LastModified)

	other := NewBusinessCard(data, "", 0)
	assert.NotEqual(t, card.ID, other.ID)
}
