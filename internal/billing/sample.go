package billing

import "medibill/internal/domain"

// FallbackClinics populate the clinic filter when the clinic list cannot be fetched.
var FallbackClinics = []string{
	"City Care Clinic",
	"Green Valley Health Center",
	"Sunrise Medical Clinic",
	"Riverside Family Practice",
}

// sampleRecords is the fixed dataset shown when the invoice store cannot be reached.
// It deliberately mixes field spellings so it exercises the normalizer.
var sampleRecords = []domain.RawInvoice{
	{
		"_id":           "sample-inv-001",
		"invoiceNumber": "INV-2024-001",
		"patientId":     "sample-pat-001",
		"patientName":   "John Smith",
		"clinicName":    "City Care Clinic",
		"totalAmount":   1500.0,
		"paidAmount":    1500.0,
		"billDate":      "2024-01-15",
		"dueDate":       "2024-01-22",
		"paymentMethod": "Credit Card",
		"services":      []any{"General Consultation", "Blood Test"},
		"lineItems": []any{
			map[string]any{"description": "General Consultation", "quantity": 1.0, "unitPrice": 500.0},
			map[string]any{"description": "Blood Test", "quantity": 2.0, "unitPrice": 500.0},
		},
		"status":      "paid",
		"description": "Routine check-up with lab work",
	},
	{
		"_id":           "sample-inv-002",
		"invoiceNo":     "INV-2024-002",
		"patient":       map[string]any{"_id": "sample-pat-002", "name": "Sarah Johnson"},
		"clinic":        map[string]any{"_id": "sample-cli-002", "name": "Green Valley Health Center"},
		"amount":        2800.0,
		"paid":          0.0,
		"invoiceDate":   "2024-01-18",
		"paymentMethod": "Insurance",
		"services":      []any{"X-Ray", "Orthopedic Consultation"},
		"status":        "pending",
	},
	{
		"_id":            "sample-inv-003",
		"invoiceNumber":  "INV-2024-003",
		"patientId":      "sample-pat-003",
		"patientName":    "Michael Brown",
		"clinicName":     "Sunrise Medical Clinic",
		"total":          5200.0,
		"paidAmount":     2000.0,
		"date":           "2024-01-05",
		"paymentDueDate": "2024-01-12",
		"paymentMethod":  "Bank Transfer",
		"services":       []any{"MRI Scan", "Neurology Consultation"},
		"status":         "partially_paid",
	},
	{
		"_id":           "sample-inv-004",
		"invoiceNumber": "INV-2024-004",
		"patientId":     "sample-pat-004",
		"patientName":   "Emily Davis",
		"clinicName":    "Riverside Family Practice",
		"totalAmount":   750.0,
		"paidAmount":    0.0,
		"billDate":      "2023-12-20",
		"dueDate":       "2023-12-27",
		"paymentMethod": "Cash",
		"services":      []any{"Vaccination"},
		"status":        "overdue",
	},
	{
		"_id":           "sample-inv-005",
		"invoiceNumber": "INV-2024-005",
		"patientId":     "sample-pat-001",
		"patientName":   "John Smith",
		"clinicName":    "City Care Clinic",
		"totalAmount":   3400.0,
		"paidAmount":    3400.0,
		"billDate":      "2024-02-02",
		"paymentMethod": "UPI",
		"services":      []any{"Dental Cleaning", "Dental X-Ray"},
		"status":        "paid",
		"createdAt":     "2024-02-02T09:30:00Z",
		"approvedAt":    "2024-02-03T11:00:00Z",
	},
}

// SampleInvoices returns a fresh copy of the normalized sample dataset.
func SampleInvoices() []domain.Invoice {
	return NormalizeAll(sampleRecords)
}

// FindSample returns the sample invoice with the given id.
func FindSample(id string) (domain.Invoice, bool) {
	for _, inv := range SampleInvoices() {
		if inv.ID == id {
			return inv, true
		}
	}
	return domain.Invoice{}, false
}
