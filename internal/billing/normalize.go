// Package billing holds the pure invoice pipeline: normalization, statistics,
// filtering, sorting and presentation. Nothing in this package performs I/O.
package billing

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"medibill/internal/domain"
)

// Defaults substituted for absent or malformed fields.
const (
	DefaultPatientName   = "Unknown Patient"
	DefaultClinicName    = "Unknown Clinic"
	DefaultPaymentMethod = "Not Specified"
	DefaultService       = "General Service"
	DefaultInvoiceNumber = "UNNUMBERED"
	DefaultDueAfter      = 7 * 24 * time.Hour
)

// dateLayouts are tried in order when a date arrives as a string.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	domain.DateLayout,
}

// Normalize maps a raw store record to the canonical invoice. It never fails:
// every absent or malformed field falls back to its documented default.
func Normalize(raw domain.RawInvoice) domain.Invoice {
	id := firstString(raw, "_id", "id")

	inv := domain.Invoice{
		ID:            id,
		InvoiceNumber: firstString(raw, "invoiceNumber", "invoiceNo"),
		PatientID:     firstString(raw, "patientId", "patient._id", "patient.id", "patient"),
		PatientName:   patientName(raw),
		ClinicID:      firstString(raw, "clinicId", "clinic._id", "clinic.id", "clinic"),
		ClinicName:    firstString(raw, "clinicName", "clinic.name"),
		Total:         firstAmount(raw, "totalAmount", "amount", "total"),
		PaidAmount:    firstAmount(raw, "paidAmount", "paid"),
		PaymentMethod: firstString(raw, "paymentMethod", "payment.method"),
		Services:      services(raw),
		LineItems:     lineItems(raw),
		Status:        domain.InvoiceStatus(firstString(raw, "status")),
		Description:   firstString(raw, "description", "notes"),
		CreatedAt:     optionalTime(raw, "createdAt"),
		ApprovedAt:    optionalTime(raw, "approvedAt"),
	}

	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = id
	}
	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = DefaultInvoiceNumber
	}
	if inv.PatientName == "" {
		inv.PatientName = DefaultPatientName
	}
	if inv.ClinicName == "" {
		inv.ClinicName = DefaultClinicName
	}
	if inv.PaymentMethod == "" {
		inv.PaymentMethod = DefaultPaymentMethod
	}
	if inv.Status == "" {
		inv.Status = domain.InvoiceStatusPending
	}

	inv.BillDate, _ = firstTime(raw, "billDate", "invoiceDate", "date", "createdAt")
	if due, ok := firstTime(raw, "dueDate", "paymentDueDate"); ok {
		inv.DueDate = due
	} else if !inv.BillDate.IsZero() {
		inv.DueDate = inv.BillDate.Add(DefaultDueAfter)
	}

	return inv
}

// NormalizeAll maps raw records one to one, preserving input order.
func NormalizeAll(raws []domain.RawInvoice) []domain.Invoice {
	out := make([]domain.Invoice, len(raws))
	for i, raw := range raws {
		out[i] = Normalize(raw)
	}
	return out
}

func patientName(raw domain.RawInvoice) string {
	if name := firstString(raw, "patientName", "patient.name"); name != "" {
		return name
	}
	first := firstString(raw, "patient.firstName")
	last := firstString(raw, "patient.lastName")
	return strings.TrimSpace(first + " " + last)
}

func services(raw domain.RawInvoice) []string {
	var out []string
	if list, ok := lookup(raw, "services").([]any); ok {
		for _, item := range list {
			var s string
			switch v := item.(type) {
			case map[string]any:
				s = firstString(v, "name", "description")
			default:
				s = asString(v)
			}
			if s != "" {
				out = append(out, s)
			}
		}
	}
	if len(out) == 0 {
		return []string{DefaultService}
	}
	return out
}

func lineItems(raw domain.RawInvoice) []domain.LineItem {
	list, ok := lookup(raw, "lineItems").([]any)
	if !ok {
		list, _ = lookup(raw, "items").([]any)
	}
	out := make([]domain.LineItem, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		qty := firstAmount(m, "quantity", "qty")
		if _, present := firstPresent(m, "quantity", "qty"); !present {
			qty = 1
		}
		out = append(out, domain.LineItem{
			Description: firstString(m, "description", "name"),
			Quantity:    qty,
			UnitPrice:   firstAmount(m, "unitPrice", "price", "rate"),
		})
	}
	return out
}

// lookup resolves a dotted path such as "clinic.name" against nested maps.
func lookup(m map[string]any, path string) any {
	var cur any = m
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = obj[part]
		if !ok {
			return nil
		}
	}
	return cur
}

func firstPresent(m map[string]any, paths ...string) (any, bool) {
	for _, p := range paths {
		if v := lookup(m, p); v != nil {
			return v, true
		}
	}
	return nil, false
}

func firstString(m map[string]any, paths ...string) string {
	for _, p := range paths {
		if s := asString(lookup(m, p)); s != "" {
			return s
		}
	}
	return ""
}

// asString renders scalars and Mongo-style {"$oid": "..."} identifiers.
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case map[string]any:
		if oid, ok := t["$oid"].(string); ok {
			return strings.TrimSpace(oid)
		}
	}
	return ""
}

// firstAmount returns the first resolvable non-negative amount, or 0.
func firstAmount(m map[string]any, paths ...string) float64 {
	for _, p := range paths {
		if v, ok := asAmount(lookup(m, p)); ok {
			return v
		}
	}
	return 0
}

func asAmount(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(t, ",", "")), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case map[string]any:
		// Mongo extended JSON decimals.
		if s, ok := t["$numberDecimal"].(string); ok {
			return asAmount(s)
		}
		return 0, false
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return f, true
}

func firstTime(m map[string]any, paths ...string) (time.Time, bool) {
	for _, p := range paths {
		if t, ok := asTime(lookup(m, p)); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func optionalTime(m map[string]any, path string) *time.Time {
	t, ok := asTime(lookup(m, path))
	if !ok {
		return nil
	}
	return &t
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
	case float64:
		if t > 0 {
			return time.UnixMilli(int64(t)).UTC(), true
		}
	case json.Number:
		if ms, err := t.Int64(); err == nil && ms > 0 {
			return time.UnixMilli(ms).UTC(), true
		}
	case map[string]any:
		// Mongo extended JSON: {"$date": "..."} or {"$date": millis}.
		if d, ok := t["$date"]; ok {
			return asTime(d)
		}
	}
	return time.Time{}, false
}
