package billing

import (
	"time"

	"medibill/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// exampleInvoices is the three-invoice scenario used across the pipeline tests.
func exampleInvoices() []domain.Invoice {
	return []domain.Invoice{
		{ID: "a", InvoiceNumber: "INV-A", PatientName: "Zoe Adams", ClinicName: "City Care Clinic", Total: 500, PaidAmount: 500,
			Status: domain.InvoiceStatusPaid, PaymentMethod: "Cash", BillDate: day(2024, 1, 10), DueDate: day(2024, 1, 17), Services: []string{"Consult"}},
		{ID: "b", InvoiceNumber: "INV-B", PatientName: "adam Brown", ClinicName: "Green Valley", Total: 2000, PaidAmount: 0,
			Status: domain.InvoiceStatusPending, PaymentMethod: "Credit Card", BillDate: day(2024, 2, 1), DueDate: day(2024, 2, 8), Services: []string{"X-Ray"}},
		{ID: "c", InvoiceNumber: "INV-C", PatientName: "Émile Clark", ClinicName: "City Care Clinic", Total: 5000, PaidAmount: 1000,
			Status: domain.InvoiceStatusOverdue, PaymentMethod: "Insurance", BillDate: day(2023, 12, 5), DueDate: day(2023, 12, 12), Services: []string{"MRI"}},
	}
}

func ids(invoices []domain.Invoice) []string {
	out := make([]string, len(invoices))
	for i := range invoices {
		out[i] = invoices[i].ID
	}
	return out
}
