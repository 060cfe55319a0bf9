package billing

import "medibill/internal/domain"

// ComputeStats folds the collection into status counts, collected revenue and
// the number of distinct clinics. Status is counted as recorded, so invoices
// carrying an unknown status contribute to Total only.
func ComputeStats(invoices []domain.Invoice) domain.Stats {
	stats := domain.Stats{Total: len(invoices)}
	clinics := make(map[string]struct{})

	for i := range invoices {
		inv := &invoices[i]
		switch inv.Status {
		case domain.InvoiceStatusPaid:
			stats.Paid++
		case domain.InvoiceStatusPending:
			stats.Pending++
		case domain.InvoiceStatusOverdue:
			stats.Overdue++
		case domain.InvoiceStatusPartiallyPaid:
			stats.PartiallyPaid++
		}
		stats.TotalRevenue += inv.PaidAmount
		clinics[inv.ClinicName] = struct{}{}
	}

	stats.DistinctClinics = len(clinics)
	return stats
}
