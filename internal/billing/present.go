package billing

import (
	"math"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"medibill/internal/domain"
)

// DisplayDateLayout is the layout used for every date shown to users.
const DisplayDateLayout = "Jan 02, 2006"

// NotAvailable is shown in place of an absent date.
const NotAvailable = "N/A"

// Presenter renders canonical invoices into display values.
type Presenter struct {
	currencySymbol string
	lang           language.Tag
}

// NewPresenter creates a Presenter that prefixes amounts with currencySymbol.
func NewPresenter(currencySymbol string) *Presenter {
	return &Presenter{currencySymbol: currencySymbol, lang: language.English}
}

// FormatMoney renders an amount with two decimals and digit grouping.
func (p *Presenter) FormatMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = math.Abs(v)
	}
	return sign + p.currencySymbol + message.NewPrinter(p.lang).Sprintf("%.2f", v)
}

// FormatDate renders a calendar date, or N/A for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return NotAvailable
	}
	return t.Format(DisplayDateLayout)
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDate(*t)
}

// HumanizeStatus turns a stored status into its upper-case label,
// e.g. partially_paid and partiallyPaid both become PARTIALLY PAID.
func HumanizeStatus(status domain.InvoiceStatus) string {
	var b strings.Builder
	var prev rune
	for i, r := range string(status) {
		switch {
		case r == '_' || r == '-':
			r = ' '
		case unicode.IsUpper(r) && i > 0 && unicode.IsLower(prev):
			b.WriteRune(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return strings.ToUpper(strings.Join(strings.Fields(b.String()), " "))
}

// ToRows renders one table row per invoice, in input order.
func (p *Presenter) ToRows(invoices []domain.Invoice) []domain.RenderRow {
	rows := make([]domain.RenderRow, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		rows[i] = domain.RenderRow{
			ID:            inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			PatientID:     inv.PatientID,
			PatientName:   inv.PatientName,
			ClinicName:    inv.ClinicName,
			BillDate:      FormatDate(inv.BillDate),
			DueDate:       FormatDate(inv.DueDate),
			Total:         p.FormatMoney(inv.Total),
			PaidAmount:    p.FormatMoney(inv.PaidAmount),
			Balance:       p.FormatMoney(inv.Balance()),
			PaymentMethod: inv.PaymentMethod,
			Services:      inv.Services,
			Status:        inv.Status,
			StatusLabel:   HumanizeStatus(inv.Status),
		}
	}
	return rows
}

// ToDetail renders a single invoice with computed line item totals.
func (p *Presenter) ToDetail(inv domain.Invoice) domain.DetailView {
	items := make([]domain.DetailLineItem, len(inv.LineItems))
	var sum float64
	for i, li := range inv.LineItems {
		total := li.Total()
		sum += total
		items[i] = domain.DetailLineItem{
			Description:   li.Description,
			Quantity:      li.Quantity,
			UnitPrice:     li.UnitPrice,
			Total:         total,
			UnitPriceText: p.FormatMoney(li.UnitPrice),
			TotalText:     p.FormatMoney(total),
		}
	}

	return domain.DetailView{
		Invoice:        inv,
		Balance:        inv.Balance(),
		TotalText:      p.FormatMoney(inv.Total),
		PaidAmountText: p.FormatMoney(inv.PaidAmount),
		BalanceText:    p.FormatMoney(inv.Balance()),
		BillDateText:   FormatDate(inv.BillDate),
		DueDateText:    FormatDate(inv.DueDate),
		CreatedAtText:  formatOptionalDate(inv.CreatedAt),
		ApprovedAtText: formatOptionalDate(inv.ApprovedAt),
		StatusLabel:    HumanizeStatus(inv.Status),
		LineItemRows:   items,
		LineItemsTotal: p.FormatMoney(sum),
	}
}
