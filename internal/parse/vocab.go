package parse

import "regexp"

// Pattern and vocabulary data used by the extraction rules. All of it is
// immutable configuration: adding a language means extending these tables,
// not touching the rules.
var (
	// emailPattern matches most local@domain.tld addresses.
	emailPattern = regexp.MustCompile(`(?i)[\w.+-]+@[\w.-]+\.[a-zA-Z]{2,}`)

	// phonePattern matches grouped digits separated by dashes, dots, spaces
	// or parentheses. Bare digit runs without separators are deliberately
	// not matched; tax IDs and postal codes would otherwise be picked up.
	phonePattern = regexp.MustCompile(`\+?\d{1,3}[-.\s]\(?\d{2,4}\)?[-.\s]\d{3,4}[-.\s]\d{3,4}|\(?\d{2,4}\)?[-.\s]\d{3,4}[-.\s]\d{3,4}|\d{2,4}-\d{3,4}-\d{3,4}`)

	// urlPattern matches http/https URLs.
	urlPattern = regexp.MustCompile(`(?i)https?://[\w.-]+\.\w{2,}(?:/\S*)?`)

	// faxPattern matches a phone-shaped number anchored to an explicit fax
	// label. faxLabelPattern strips that label from the stored value and is
	// also used to classify phone matches preceded by a fax marker.
	faxPattern      = regexp.MustCompile(`(?i)(?:fax|傳真)[:：]?\s*(?:\+?\d{1,3}[-.\s]?)?\(?\d{2,4}\)?[-.\s]?\d{3,4}[-.\s]?\d{3,4}`)
	faxLabelPattern = regexp.MustCompile(`(?i)(?:fax|傳真)[:：]?\s*`)

	// socialPatterns match known social-platform handles. Matches from all
	// platforms are collected into a single comma-joined field.
	socialPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`),
		regexp.MustCompile(`(?i)twitter\.com/\w+`),
		regexp.MustCompile(`(?i)facebook\.com/[\w.]+`),
	}

	// companyPattern matches corporate suffix vocabulary in English and
	// Chinese. \b does not work with CJK text, so plain substring
	// alternation is used instead of word boundaries.
	companyPattern = regexp.MustCompile(`(?i)inc\.|ltd\.|corp\.|limited|company|公司|有限公司|股份|集團|企業`)

	// addressContentPattern matches street/district/floor/number vocabulary,
	// the signal that a line is address-shaped even without a label.
	addressContentPattern = regexp.MustCompile(`(?i)street|road|avenue|floor|市|區|路|街|巷|弄|號|樓`)

	// addressLabelPattern detects an explicit address label with a colon;
	// addressPrefixPattern strips label prefixes from the stored value.
	addressLabelPattern  = regexp.MustCompile(`(?i)(?:地址|址|address|展示館|辦公室|office)[:：]`)
	addressPrefixPattern = regexp.MustCompile(`(?i)(?:地址|址|address|展示館|辦公室|office)[:：]?\s*`)
)

// chineseTitles is the closed set of common Chinese job titles recognized
// by exact match on the second line.
var chineseTitles = map[string]struct{}{
	"董事長":  {},
	"總經理":  {},
	"執行長":  {},
	"副總經理": {},
	"副總裁":  {},
	"總裁":   {},
	"經理":   {},
	"主任":   {},
	"部長":   {},
	"課長":   {},
	"組長":   {},
	"專員":   {},
	"主管":   {},
	"顧問":   {},
	"總監":   {},
}
