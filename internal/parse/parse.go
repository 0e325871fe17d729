// Package parse converts free-form, newline-delimited OCR text into a
// best-effort contact record.
//
// Business cards carry no markup, so field attribution is heuristic: pattern
// matches for machine-shaped fields (email, phone, fax, URL, social handles)
// and positional rules for human-shaped ones (name, title, company, address),
// tolerant of mixed Latin/CJK text and inconsistent line ordering.
//
// Extraction runs as an ordered list of named rules over a shared line-claim
// state. Once a rule assigns a line to a field, the line is excluded from
// candidacy for every later rule, which makes the precedence policy explicit:
// earlier rules and label-anchored matches always beat generic positional
// fallbacks. The extractor never fails; an absent field is the signal of
// non-extraction.
package parse

import (
	"strings"
	"unicode/utf8"

	"cardscan/pkg/models"
)

// field identifies which rule claimed a line.
type field int

const (
	fieldNone field = iota
	fieldName
	fieldTitle
	fieldCompany
	fieldAddress
)

// faxContextWindow is how many characters before a phone match are searched
// for a fax marker.
const faxContextWindow = 10

// state carries the raw text, its trimmed non-empty lines, and the per-line
// claims accumulated while the rules run.
type state struct {
	raw    string
	lines  []string
	claims []field
}

func (st *state) claimed(i int) bool   { return st.claims[i] != fieldNone }
func (st *state) claim(i int, f field) { st.claims[i] = f }

// rule is a single extraction heuristic. Returning true stops the pipeline.
type rule struct {
	name  string
	apply func(st *state, card *models.CardData) bool
}

// rules run in order. The two shortcut rules may short-circuit everything
// after them; the rest always fall through.
var rules = []rule{
	{"single-line-company", ruleSingleLineCompany},
	{"two-line-company-address", ruleTwoLineCompanyAddress},
	{"email", ruleEmail},
	{"phone", rulePhone},
	{"fax", ruleFax},
	{"website", ruleWebsite},
	{"social-media", ruleSocialMedia},
	{"name", ruleName},
	{"title", ruleTitle},
	{"company", ruleCompany},
	{"address", ruleAddress},
}

// CardFields parses raw OCR text into structured contact fields. It returns
// whatever subset of fields the rules could populate; empty or whitespace-only
// input yields an empty record.
func CardFields(text string) models.CardData {
	st := &state{raw: text, lines: splitLines(text)}
	st.claims = make([]field, len(st.lines))

	var card models.CardData
	for _, r := range rules {
		if r.apply(st, &card) {
			break
		}
	}

	card.Name = models.CleanValue(card.Name)
	card.Title = models.CleanValue(card.Title)
	card.Company = models.CleanValue(card.Company)
	card.Phone = models.CleanValue(card.Phone)
	card.Fax = models.CleanValue(card.Fax)
	card.Email = models.CleanValue(card.Email)
	card.Website = models.CleanValue(card.Website)
	card.SocialMedia = models.CleanValue(card.SocialMedia)
	card.Address = models.CleanValue(card.Address)
	return card
}

// splitLines returns the trimmed, non-empty lines of the input.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// ruleSingleLineCompany handles the one-line card: if the only line carries
// a corporate suffix, the whole line is the company name.
func ruleSingleLineCompany(st *state, card *models.CardData) bool {
	if len(st.lines) != 1 || !companyPattern.MatchString(st.lines[0]) {
		return false
	}
	card.Company = st.lines[0]
	return true
}

// ruleTwoLineCompanyAddress handles the two-line card: corporate suffix on
// the first line, address vocabulary on the second.
func ruleTwoLineCompanyAddress(st *state, card *models.CardData) bool {
	if len(st.lines) != 2 ||
		!companyPattern.MatchString(st.lines[0]) ||
		!addressContentPattern.MatchString(st.lines[1]) {
		return false
	}
	card.Company = st.lines[0]
	card.Address = st.lines[1]
	return true
}

func ruleEmail(st *state, card *models.CardData) bool {
	card.Email = emailPattern.FindString(st.raw)
	return false
}

// rulePhone scans every phone-shaped match in the raw text and takes the
// first one whose preceding context does not carry a fax marker. Fax numbers
// themselves are handled by ruleFax.
func rulePhone(st *state, card *models.CardData) bool {
	for _, loc := range phonePattern.FindAllStringIndex(st.raw, -1) {
		if !faxLabelPattern.MatchString(contextBefore(st.raw, loc[0], faxContextWindow)) {
			card.Phone = st.raw[loc[0]:loc[1]]
			break
		}
	}
	return false
}

// ruleFax matches a label-anchored fax number and strips the label from the
// stored value.
func ruleFax(st *state, card *models.CardData) bool {
	if m := faxPattern.FindString(st.raw); m != "" {
		card.Fax = strings.TrimSpace(faxLabelPattern.ReplaceAllString(m, ""))
	}
	return false
}

func ruleWebsite(st *state, card *models.CardData) bool {
	card.Website = urlPattern.FindString(st.raw)
	return false
}

// ruleSocialMedia collects every known social-platform handle into a single
// comma-joined field.
func ruleSocialMedia(st *state, card *models.CardData) bool {
	var handles []string
	for _, p := range socialPatterns {
		handles = append(handles, p.FindAllString(st.raw, -1)...)
	}
	if len(handles) > 0 {
		card.SocialMedia = strings.Join(handles, ", ")
	}
	return false
}

// ruleName claims the first line as the name. The bound is generous enough
// to admit bilingual native-script plus Latin-script name pairs; beyond that
// there is no content validation, this is purely positional.
func ruleName(st *state, card *models.CardData) bool {
	if len(st.lines) == 0 {
		return false
	}
	first := st.lines[0]
	if utf8.RuneCountInString(first) < 80 &&
		!emailPattern.MatchString(first) &&
		!phonePattern.MatchString(first) {
		card.Name = first
		st.claim(0, fieldName)
	}
	return false
}

// ruleTitle claims the second line as the title when it exactly matches the
// Chinese job-title vocabulary, or failing that, when it is short and not
// email/phone/URL-shaped.
func ruleTitle(st *state, card *models.CardData) bool {
	if len(st.lines) < 2 {
		return false
	}
	second := st.lines[1]
	if _, ok := chineseTitles[second]; ok {
		card.Title = second
		st.claim(1, fieldTitle)
		return false
	}
	if utf8.RuneCountInString(second) < 60 &&
		!emailPattern.MatchString(second) &&
		!phonePattern.MatchString(second) &&
		!urlPattern.MatchString(second) {
		card.Title = second
		st.claim(1, fieldTitle)
	}
	return false
}

// ruleCompany prefers an unclaimed line carrying the corporate suffix
// vocabulary. Many real cards omit the formal suffix, so the fallback scans
// lines 3-6 for a short, early, otherwise-unclassified line.
func ruleCompany(st *state, card *models.CardData) bool {
	for i, line := range st.lines {
		if st.claimed(i) {
			continue
		}
		if companyPattern.MatchString(line) && utf8.RuneCountInString(line) < 100 {
			card.Company = line
			st.claim(i, fieldCompany)
			return false
		}
	}

	for i := 2; i < len(st.lines) && i < 6; i++ {
		line := st.lines[i]
		n := utf8.RuneCountInString(line)
		if st.claimed(i) || n <= 2 || n >= 100 {
			continue
		}
		if emailPattern.MatchString(line) ||
			phonePattern.MatchString(line) ||
			urlPattern.MatchString(line) {
			continue
		}
		if _, isTitle := chineseTitles[line]; isTitle {
			continue
		}
		if companyPattern.MatchString(line) || (n < 50 && i <= 3) {
			card.Company = line
			st.claim(i, fieldCompany)
			return false
		}
	}
	return false
}

// ruleAddress looks for a line with an explicit address label or
// address-shaped content inside a length band wide enough for real addresses
// but short of full paragraphs. The last resort is the first unclaimed line
// over a minimum length.
func ruleAddress(st *state, card *models.CardData) bool {
	for i, line := range st.lines {
		if st.claimed(i) {
			continue
		}
		n := utf8.RuneCountInString(line)
		if n <= 10 || n >= 200 {
			continue
		}
		if !addressLabelPattern.MatchString(line) && !addressContentPattern.MatchString(line) {
			continue
		}
		if emailPattern.MatchString(line) ||
			phonePattern.MatchString(line) ||
			urlPattern.MatchString(line) {
			continue
		}
		card.Address = strings.TrimSpace(addressPrefixPattern.ReplaceAllString(line, ""))
		st.claim(i, fieldAddress)
		return false
	}

	for i, line := range st.lines {
		if st.claimed(i) {
			continue
		}
		n := utf8.RuneCountInString(line)
		if n <= 20 || n >= 200 {
			continue
		}
		if emailPattern.MatchString(line) ||
			phonePattern.MatchString(line) ||
			urlPattern.MatchString(line) {
			continue
		}
		card.Address = line
		st.claim(i, fieldAddress)
		return false
	}
	return false
}

// contextBefore returns up to window runes of text immediately preceding
// byte offset pos.
func contextBefore(text string, pos, window int) string {
	prefix := []rune(text[:pos])
	if len(prefix) > window {
		prefix = prefix[len(prefix)-window:]
	}
	return string(prefix)
}
