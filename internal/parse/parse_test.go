package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardscan/pkg/models"
)

func TestCardFieldsEnglishCard(t *testing.T) {
	text := "John Doe\n" +
		"CEO\n" +
		"Acme Corporation\n" +
		"john.doe@acme.com\n" +
		"+1-555-123-4567\n" +
		"123 Main Street, New York, NY 10001"

	result := CardFields(text)

	assert.Equal(t, "John Doe", result.Name)
	assert.Equal(t, "CEO", result.Title)
	assert.Equal(t, "Acme Corporation", result.Company)
	assert.Equal(t, "john.doe@acme.com", result.Email)
	assert.Equal(t, "+1-555-123-4567", result.Phone)
	assert.Contains(t, result.Address, "123 Main Street")
}

func TestCardFieldsPhoneFormats(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"parentheses", "Phone: (02) 1234-5678"},
		{"mobile", "Mobile: 0912-345-678"},
		{"spaces", "Tel: 02 1234 5678"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, CardFields(tt.text).Phone)
		})
	}
}

func TestCardFieldsWebsite(t *testing.T) {
	text := "Company Inc.\nhttps://www.example.com\ncontact@example.com"

	result := CardFields(text)

	assert.Equal(t, "https://www.example.com", result.Website)
	assert.Equal(t, "contact@example.com", result.Email)
}

func TestCardFieldsSocialMedia(t *testing.T) {
	text := "Jane Smith\nlinkedin.com/in/janesmith\ntwitter.com/janesmith"

	result := CardFields(text)

	assert.Contains(t, result.SocialMedia, "linkedin.com/in/janesmith")
	assert.Contains(t, result.SocialMedia, "twitter.com/janesmith")
}

func TestCardFieldsFaxNeverTransposed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"english labels", "Company Ltd.\nPhone: 02-1234-5678\nFax: 02-8765-4321"},
		{"chinese labels", "公司名稱\n電話: 02-1234-5678\n傳真: 02-8765-4321"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CardFields(tt.text)
			assert.Equal(t, "02-1234-5678", result.Phone)
			assert.Equal(t, "02-8765-4321", result.Fax)
			assert.NotEqual(t, result.Phone, result.Fax)
		})
	}
}

func TestCardFieldsChineseBilingualCard(t *testing.T) {
	text := "鄭禾珈 Appa\n" +
		"董事長\n" +
		"郡暉有限公司\n" +
		"0928-568-881\n" +
		"統編:60681878\n" +
		"地址:台北市大同區承德路一段17號9樓"

	result := CardFields(text)

	assert.Equal(t, "鄭禾珈 Appa", result.Name)
	assert.Equal(t, "董事長", result.Title)
	assert.Equal(t, "郡暉有限公司", result.Company)
	assert.Equal(t, "0928-568-881", result.Phone)
	assert.Equal(t, "台北市大同區承德路一段17號9樓", result.Address)
}

func TestCardFieldsSingleLineCompany(t *testing.T) {
	result := CardFields("台灣科技股份有限公司")

	assert.Equal(t, "台灣科技股份有限公司", result.Company)
	assert.Empty(t, result.Name)
	assert.Empty(t, result.Title)
	assert.Empty(t, result.Phone)
	assert.Empty(t, result.Address)
}

func TestCardFieldsCompanyVocabulary(t *testing.T) {
	for _, line := range []string{
		"台灣科技股份有限公司",
		"北京互聯網有限公司",
		"香港貿易公司",
		"Acme Widgets Inc.",
	} {
		assert.NotEmpty(t, CardFields(line).Company, "line: %s", line)
	}
}

func TestCardFieldsChineseTitles(t *testing.T) {
	assert.Equal(t, "總經理", CardFields("王小明\n總經理\n科技公司").Title)
	assert.Equal(t, "副總裁", CardFields("李華\n副總裁\n貿易公司").Title)
}

func TestCardFieldsTwoLineCompanyAddress(t *testing.T) {
	result := CardFields("公司名稱\n台北市信義區信義路五段7號101樓")

	assert.Equal(t, "公司名稱", result.Company)
	require.NotEmpty(t, result.Address)
	assert.Contains(t, result.Address, "台北市")
	assert.Contains(t, result.Address, "信義路")
	assert.Empty(t, result.Name)
}

func TestCardFieldsEmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\n\n", " \n \t \n "} {
		result := CardFields(text)
		assert.True(t, result.IsEmpty(), "input %q should yield an empty record", text)
	}
}

func TestCardFieldsIdempotent(t *testing.T) {
	text := "John Doe\nCEO\nAcme Corporation\njohn.doe@acme.com\n+1-555-123-4567"

	first := CardFields(text)
	second := CardFields(text)

	assert.Equal(t, first, second)
}

func TestCardFieldsWhitespaceNormalized(t *testing.T) {
	result := CardFields("  John    Doe  \n CEO \nAcme   Corporation Ltd.")

	assert.Equal(t, "John Doe", result.Name)
	assert.Equal(t, "CEO", result.Title)
	assert.Equal(t, "Acme Corporation Ltd.", result.Company)
}

func TestRulePhoneSkipsFaxContext(t *testing.T) {
	st := &state{raw: "Fax: 02-8765-4321"}
	var card models.CardData

	rulePhone(st, &card)

	assert.Empty(t, card.Phone)
}

func TestRuleFaxStripsLabel(t *testing.T) {
	st := &state{raw: "傳真：02-8765-4321"}
	var card models.CardData

	ruleFax(st, &card)

	assert.Equal(t, "02-8765-4321", card.Fax)
}

func TestRuleCompanyRespectsClaims(t *testing.T) {
	st := &state{
		raw:    "",
		lines:  []string{"Acme Company", "Engineer", "Other Company Ltd."},
		claims: []field{fieldName, fieldTitle, fieldNone},
	}
	var card models.CardData

	ruleCompany(st, &card)

	assert.Equal(t, "Other Company Ltd.", card.Company)
}

func TestRuleAddressFallback(t *testing.T) {
	st := &state{
		raw:    "",
		lines:  []string{"Somewhere around the old harbor warehouses"},
		claims: []field{fieldNone},
	}
	var card models.CardData

	ruleAddress(st, &card)

	assert.Equal(t, "Somewhere around the old harbor warehouses", card.Address)
}
