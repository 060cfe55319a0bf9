package billing

import "medibill/internal/domain"

// Query bundles the user's search, filter and sort selections.
type Query struct {
	Search  string
	Filters domain.FilterSet
	Sort    domain.SortKey
}

// View is the result of running a Query over a canonical collection.
// Stats always describe the full collection, not the filtered subset.
type View struct {
	Stats    domain.Stats
	Invoices []domain.Invoice
}

// Apply computes stats over invoices, then filters and sorts them.
func Apply(invoices []domain.Invoice, q Query) View {
	return View{
		Stats:    ComputeStats(invoices),
		Invoices: Sort(Filter(invoices, q.Search, q.Filters), q.Sort),
	}
}
