package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"medibill/internal/billing"
	"medibill/internal/domain"
	"medibill/internal/service"
)

// BillingHandler handles the billing page endpoints.
type BillingHandler struct {
	billingService service.BillingService
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(billingService service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// parseQuery reads the search, filter and sort parameters.
func parseQuery(c *gin.Context) (billing.Query, error) {
	amountRange, err := billing.ParseAmountRange(c.Query("amount_range"))
	if err != nil {
		return billing.Query{}, err
	}
	billDate, err := billing.ParseBillDate(c.Query("bill_date"))
	if err != nil {
		return billing.Query{}, err
	}
	sortKey, err := billing.ParseSortKey(c.Query("sort"))
	if err != nil {
		return billing.Query{}, err
	}

	return billing.Query{
		Search: c.Query("q"),
		Filters: domain.FilterSet{
			PatientName:   c.Query("patient_name"),
			Clinic:        c.Query("clinic"),
			AmountRange:   amountRange,
			BillDate:      billDate,
			PaymentMethod: c.Query("payment_method"),
		},
		Sort: sortKey,
	}, nil
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

func sendDocument(c *gin.Context, doc *domain.ExportDocument) {
	c.Header("Content-Disposition", doc.ContentDisposition())
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}

// ListInvoices handles GET /api/v1/billing/invoices
// @Summary List invoices
// @Description Fetches the caller's invoices and returns normalized, filtered and sorted rows for the billing table. Stats always cover the full collection. When the invoice store is unreachable the sample dataset is returned with a notice.
// @Tags billing
// @Produce json
// @Param q query string false "Quick search over patient, clinic and status"
// @Param patient_name query string false "Patient name contains"
// @Param clinic query string false "Clinic name contains"
// @Param amount_range query string false "low | medium | high"
// @Param bill_date query string false "Bill date (YYYY-MM-DD)"
// @Param payment_method query string false "Payment method contains"
// @Param sort query string false "latest | oldest | patient | amount_desc | amount_asc | due_date | status"
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit" default(20)
// @Success 200 {object} Response{data=service.InvoiceListing,meta=PagMeta}
// @Failure 400 {object} ErrorResponseBody "Invalid filter or sort key"
// @Failure 403 {object} ErrorResponseBody "Insufficient role"
// @Security BearerAuth
// @Router /billing/invoices [get]
func (h *BillingHandler) ListInvoices(c *gin.Context) {
	p, ok := extractPrincipal(c)
	if !ok {
		return
	}

	q, err := parseQuery(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	offset, limit := parsePagination(c)

	listing, err := h.billingService.ListInvoices(c.Request.Context(), p, service.ListInvoicesInput{
		Query:  q,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, listing, PagMeta{Total: listing.Total, Offset: offset, Limit: limit})
}

// Refresh handles POST /api/v1/billing/invoices/refresh
// @Summary Refetch invoices
// @Description Refetches the caller's invoices from the store. A refresh that finishes after a newer one has been applied is discarded (applied=false).
// @Tags billing
// @Produce json
// @Success 200 {object} Response{data=service.RefreshResult}
// @Security BearerAuth
// @Router /billing/invoices/refresh [post]
func (h *BillingHandler) Refresh(c *gin.Context) {
	p, ok := extractPrincipal(c)
	if !ok {
		return
	}

	res, err := h.billingService.Refresh(c.Request.Context(), p)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, res)
}

// GetInvoice handles GET /api/v1/billing/invoices/:id
// @Summary Get invoice detail
// @Tags billing
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} Response{data=domain.DetailView}
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Security BearerAuth
// @Router /billing/invoices/{id} [get]
func (h *BillingHandler) GetInvoice(c *gin.Context) {
	p, ok := extractPrincipal(c)
	if !ok {
		return
	}

	detail, err := h.billingService.GetInvoice(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, detail)
}

// ExportInvoice handles GET /api/v1/billing/invoices/:id/export
// @Summary Export invoice as xlsx
// @Description Downloads a single invoice as an Excel workbook. When archiving is enabled the X-Archive-URL header carries a presigned link to the archived copy.
// @Tags billing
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Invoice ID"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Failure 500 {object} ErrorResponseBody "Export failed"
// @Security BearerAuth
// @Router /billing/invoices/{id}/export [get]
func (h *BillingHandler) ExportInvoice(c *gin.Context) {
	p, ok := extractPrincipal(c)
	if !ok {
		return
	}

	res, err := h.billingService.ExportInvoice(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	if res.ArchiveURL != "" {
		c.Header("X-Archive-URL", res.ArchiveURL)
	}
	sendDocument(c, res.Document)
}

// ExportCSV handles GET /api/v1/billing/invoices/export.csv
// @Summary Export invoice table as CSV
// @Description Downloads the filtered and sorted invoice table (all pages) as CSV.
// @Tags billing
// @Produce text/csv
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponseBody "Invalid filter or sort key"
// @Security BearerAuth
// @Router /billing/invoices/export.csv [get]
func (h *BillingHandler) ExportCSV(c *gin.Context) {
	p, ok := extractPrincipal(c)
	if !ok {
		return
	}

	q, err := parseQuery(c)
	if err != nil {
		HandleError(c, err)
		return
	}

	doc, err := h.billingService.ExportListingCSV(c.Request.Context(), p, q)
	if err != nil {
		HandleError(c, err)
		return
	}

	sendDocument(c, doc)
}

// GetStats handles GET /api/v1/billing/stats
// @Summary Get billing statistics
// @Tags billing
// @Produce json
// @Success 200 {object} Response{data=service.StatsResult}
// @Security BearerAuth
// @Router /billing/stats [get]
func (h *BillingHandler) GetStats(c *gin.Context) {
	p, ok := extractPrincipal(c)
	if !ok {
		return
	}

	stats, err := h.billingService.GetStats(c.Request.Context(), p)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}

// ListClinics handles GET /api/v1/billing/clinics
// @Summary List clinic names for the clinic filter
// @Tags billing
// @Produce json
// @Success 200 {object} Response{data=service.ClinicList}
// @Security BearerAuth
// @Router /billing/clinics [get]
func (h *BillingHandler) ListClinics(c *gin.Context) {
	p, ok := extractPrincipal(c)
	if !ok {
		return
	}

	clinics, err := h.billingService.ListClinics(c.Request.Context(), p)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, clinics)
}
