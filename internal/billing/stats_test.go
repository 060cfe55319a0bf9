package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"medibill/internal/domain"
)

func TestComputeStats_Example(t *testing.T) {
	stats := ComputeStats(exampleInvoices())

	assert.Equal(t, domain.Stats{
		Total:           3,
		Paid:            1,
		Pending:         1,
		Overdue:         1,
		PartiallyPaid:   0,
		TotalRevenue:    1500,
		DistinctClinics: 2,
	}, stats)
}

func TestComputeStats_Empty(t *testing.T) {
	assert.Equal(t, domain.Stats{}, ComputeStats(nil))
}

func TestComputeStats_UnknownStatusCountsOnlyInTotal(t *testing.T) {
	invoices := []domain.Invoice{
		{Status: domain.InvoiceStatusPartiallyPaid, PaidAmount: 10, ClinicName: "A"},
		{Status: "refunded", PaidAmount: 5, ClinicName: "A"},
		{Status: domain.InvoiceStatusPaid, PaidAmount: 2.5, ClinicName: "B"},
	}
	stats := ComputeStats(invoices)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.PartiallyPaid)
	assert.Less(t, stats.Paid+stats.Pending+stats.Overdue+stats.PartiallyPaid, stats.Total)
	assert.InDelta(t, 17.5, stats.TotalRevenue, 1e-9)
	assert.Equal(t, 2, stats.DistinctClinics)
}

func TestComputeStats_KnownStatusesSumToTotal(t *testing.T) {
	stats := ComputeStats(SampleInvoices())
	assert.Equal(t, stats.Total, stats.Paid+stats.Pending+stats.Overdue+stats.PartiallyPaid)

	var revenue float64
	for _, inv := range SampleInvoices() {
		revenue += inv.PaidAmount
	}
	assert.Equal(t, revenue, stats.TotalRevenue)
}
