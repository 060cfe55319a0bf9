package billing

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"medibill/internal/domain"
)

// SortKeys lists the accepted sort keys in display order.
var SortKeys = []domain.SortKey{
	domain.SortLatest,
	domain.SortOldest,
	domain.SortPatient,
	domain.SortAmountDesc,
	domain.SortAmountAsc,
	domain.SortDueDate,
	domain.SortStatus,
}

// ParseSortKey validates a sort key. The empty string selects latest first.
func ParseSortKey(s string) (domain.SortKey, error) {
	key := domain.SortKey(strings.ToLower(strings.TrimSpace(s)))
	if key == "" {
		return domain.SortLatest, nil
	}
	if slices.Contains(SortKeys, key) {
		return key, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidSortKey, s)
}

// Sort returns a stably sorted copy of invoices. The input is not modified.
// An unknown key returns the copy in input order.
func Sort(invoices []domain.Invoice, key domain.SortKey) []domain.Invoice {
	out := slices.Clone(invoices)
	if out == nil {
		out = []domain.Invoice{}
	}
	if fn := comparator(key); fn != nil {
		slices.SortStableFunc(out, fn)
	}
	return out
}

func comparator(key domain.SortKey) func(a, b domain.Invoice) int {
	switch key {
	case domain.SortLatest:
		return func(a, b domain.Invoice) int { return b.BillDate.Compare(a.BillDate) }
	case domain.SortOldest:
		return func(a, b domain.Invoice) int { return a.BillDate.Compare(b.BillDate) }
	case domain.SortPatient:
		// Collators keep scratch buffers; one per sort call.
		col := collate.New(language.English, collate.IgnoreCase)
		return func(a, b domain.Invoice) int { return col.CompareString(a.PatientName, b.PatientName) }
	case domain.SortAmountDesc:
		return func(a, b domain.Invoice) int { return cmp.Compare(b.Total, a.Total) }
	case domain.SortAmountAsc:
		return func(a, b domain.Invoice) int { return cmp.Compare(a.Total, b.Total) }
	case domain.SortDueDate:
		return func(a, b domain.Invoice) int { return a.DueDate.Compare(b.DueDate) }
	case domain.SortStatus:
		return func(a, b domain.Invoice) int { return strings.Compare(string(a.Status), string(b.Status)) }
	}
	return nil
}
