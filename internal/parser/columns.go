package parser

import "strings"

// Keyword tables used to recognize statement columns by name. Within a
// role the more specific keywords come first so they win over generic
// substrings when several columns could match.
var (
	dateKeywords        = []string{"txn date", "transaction date", "value date", "posting date", "date"}
	descriptionKeywords = []string{"description", "particulars", "narration", "remark", "details"}
	debitKeywords       = []string{"withdrawal", "debit", "dr"}
	creditKeywords      = []string{"deposit", "credit", "cr"}
	amountKeywords      = []string{"amount", "amt"}
	balanceKeywords     = []string{"balance", "bal"}
	referenceKeywords   = []string{"ref", "cheque", "chq"}
)

// ColumnMap maps semantic roles to column indexes. -1 means unresolved.
type ColumnMap struct {
	Date        int
	Description int
	Debit       int
	Credit      int
	Amount      int
	Balance     int
	Reference   int
}

// Resolve maps a header row to semantic roles. Date and description are
// required; failing to find them is not recoverable by guessing, so the
// error names every column that was found.
func Resolve(headers []string) (ColumnMap, error) {
	cm := ColumnMap{
		Date:        findColumn(headers, dateKeywords),
		Description: findColumn(headers, descriptionKeywords),
		Debit:       findColumn(headers, debitKeywords),
		Credit:      findColumn(headers, creditKeywords),
		Amount:      findColumn(headers, amountKeywords),
		Balance:     findColumn(headers, balanceKeywords),
		Reference:   findColumn(headers, referenceKeywords),
	}
	if cm.Date < 0 || cm.Description < 0 {
		found := make([]string, 0, len(headers))
		for _, h := range headers {
			if h = strings.TrimSpace(h); h != "" {
				found = append(found, h)
			}
		}
		return cm, &ColumnResolutionError{Found: found}
	}
	return cm, nil
}

// HasAmount reports whether any amount-bearing column resolved.
func (cm ColumnMap) HasAmount() bool {
	return cm.Debit >= 0 || cm.Credit >= 0 || cm.Amount >= 0
}

func findColumn(headers, keywords []string) int {
	for _, kw := range keywords {
		for i, h := range headers {
			if matchKeyword(normalizeHeader(h), kw) {
				return i
			}
		}
	}
	return -1
}

func normalizeHeader(h string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(h))), " ")
}

// matchKeyword matches by containment, except abbreviations of up to two
// characters ("dr", "cr") which must appear as a whole token so "dr" does
// not hit "address".
func matchKeyword(header, keyword string) bool {
	if len(keyword) > 2 {
		return strings.Contains(header, keyword)
	}
	for _, tok := range strings.FieldsFunc(header, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		if tok == keyword {
			return true
		}
	}
	return false
}
