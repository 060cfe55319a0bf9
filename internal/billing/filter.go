package billing

import (
	"fmt"
	"strings"
	"time"

	"medibill/internal/domain"
)

// ParseAmountRange validates a bracket name. The empty string means no bracket.
func ParseAmountRange(s string) (domain.AmountRange, error) {
	r := domain.AmountRange(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case domain.AmountRangeAny, domain.AmountRangeLow, domain.AmountRangeMedium, domain.AmountRangeHigh:
		return r, nil
	}
	return "", fmt.Errorf("%w: amount_range must be one of low, medium, high", domain.ErrInvalidFilter)
}

// ParseBillDate validates a YYYY-MM-DD day. The empty string means no date clause.
func ParseBillDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if _, err := time.Parse(domain.DateLayout, s); err != nil {
		return "", fmt.Errorf("%w: bill_date must be YYYY-MM-DD", domain.ErrInvalidFilter)
	}
	return s, nil
}

// AmountBracket returns the bracket a total falls in.
func AmountBracket(total float64) domain.AmountRange {
	switch {
	case total < domain.AmountMediumFloor:
		return domain.AmountRangeLow
	case total < domain.AmountHighFloor:
		return domain.AmountRangeMedium
	default:
		return domain.AmountRangeHigh
	}
}

// Filter keeps the invoices matching the quick search query and every
// structured clause. Matching invoices keep their relative input order.
func Filter(invoices []domain.Invoice, query string, fs domain.FilterSet) []domain.Invoice {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Invoice, 0, len(invoices))
	for i := range invoices {
		if matchesQuery(&invoices[i], query) && matchesFilters(&invoices[i], fs) {
			out = append(out, invoices[i])
		}
	}
	return out
}

func matchesQuery(inv *domain.Invoice, query string) bool {
	if query == "" {
		return true
	}
	return containsFold(inv.PatientName, query) ||
		containsFold(inv.ClinicName, query) ||
		containsFold(string(inv.Status), query)
}

func matchesFilters(inv *domain.Invoice, fs domain.FilterSet) bool {
	if fs.PatientName != "" && !containsFold(inv.PatientName, fs.PatientName) {
		return false
	}
	if fs.Clinic != "" && !containsFold(inv.ClinicName, fs.Clinic) {
		return false
	}
	if fs.AmountRange != domain.AmountRangeAny && AmountBracket(inv.Total) != fs.AmountRange {
		return false
	}
	if fs.BillDate != "" && (inv.BillDate.IsZero() || inv.BillDate.Format(domain.DateLayout) != fs.BillDate) {
		return false
	}
	if fs.PaymentMethod != "" && !containsFold(inv.PaymentMethod, fs.PaymentMethod) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(substr)))
}
