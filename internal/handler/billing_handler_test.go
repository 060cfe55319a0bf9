package handler_test

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"medibill/internal/auth"
	"medibill/internal/billing"
	"medibill/internal/domain"
	"medibill/internal/handler"
	"medibill/internal/middleware"
	"medibill/internal/service"
	"medibill/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newBillingHandler() (*handler.BillingHandler, *mocks.MockBillingService) {
	mockSvc := new(mocks.MockBillingService)
	return handler.NewBillingHandler(mockSvc), mockSvc
}

// setSession installs an initialized session for p, as AuthMiddleware would.
func setSession(t *testing.T, c *gin.Context, p domain.Principal) {
	t.Helper()
	validator := new(mocks.MockTokenValidator)
	validator.On("Validate", "test-token").Return(&auth.Claims{
		TenantID:  p.TenantID,
		UserID:    p.UserID,
		Role:      p.Role,
		PatientID: p.PatientID,
	}, nil)
	session := auth.NewSession(validator)
	require.NoError(t, session.Initialize("test-token"))

	c.Set(middleware.ContextKeySession, session)
	c.Set(middleware.ContextKeyTenantID, p.TenantID)
	c.Set(middleware.ContextKeyUserID, p.UserID)
	c.Set(middleware.ContextKeyRole, string(p.Role))
}

func staff() domain.Principal {
	return domain.Principal{TenantID: uuid.New(), UserID: uuid.New(), Role: domain.RoleBillingStaff}
}

func newRequest(method, target string) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(method, target, http.NoBody)
	return w, c
}

func decode(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBillingHandler_ListInvoices_Success(t *testing.T) {
	h, mockSvc := newBillingHandler()
	p := staff()

	listing := &service.InvoiceListing{
		Stats:   domain.Stats{Total: 3, TotalRevenue: 1500, DistinctClinics: 2},
		Rows:    []domain.RenderRow{{ID: "c"}, {ID: "b"}},
		Total:   3,
		Source:  domain.InvoiceSourceStore,
		Notices: []domain.Notice{},
	}
	wantInput := service.ListInvoicesInput{
		Query: billing.Query{
			Search: "care",
			Filters: domain.FilterSet{
				Clinic:        "City",
				AmountRange:   domain.AmountRangeHigh,
				BillDate:      "2024-01-10",
				PaymentMethod: "cash",
			},
			Sort: domain.SortAmountDesc,
		},
		Offset: 0,
		Limit:  2,
	}
	mockSvc.On("ListInvoices", mock.Anything, p, wantInput).Return(listing, nil)

	w, c := newRequest(http.MethodGet,
		"/api/v1/billing/invoices?q=care&clinic=City&amount_range=HIGH&bill_date=2024-01-10&payment_method=cash&sort=amount_desc&limit=2")
	setSession(t, c, p)

	h.ListInvoices(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 3, resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Limit)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "store", data["source"])
	assert.Len(t, data["rows"], 2)
	stats := data["stats"].(map[string]interface{})
	assert.Equal(t, 1500.0, stats["total_revenue"])
	mockSvc.AssertExpectations(t)
}

func TestBillingHandler_ListInvoices_InvalidParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
		code  string
	}{
		{"amount range", "amount_range=huge", "INVALID_FILTER"},
		{"bill date", "bill_date=10/01/2024", "INVALID_FILTER"},
		{"sort key", "sort=random", "INVALID_SORT_KEY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mockSvc := newBillingHandler()
			w, c := newRequest(http.MethodGet, "/api/v1/billing/invoices?"+tt.query)
			setSession(t, c, staff())

			h.ListInvoices(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Error.Code)
			mockSvc.AssertNotCalled(t, "ListInvoices", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestBillingHandler_ListInvoices_NoSession(t *testing.T) {
	h, mockSvc := newBillingHandler()
	w, c := newRequest(http.MethodGet, "/api/v1/billing/invoices")

	h.ListInvoices(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockSvc.AssertNotCalled(t, "ListInvoices", mock.Anything, mock.Anything, mock.Anything)
}

func TestBillingHandler_ListInvoices_ServiceErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrInsufficientRole, http.StatusForbidden, "INSUFFICIENT_ROLE"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			h, mockSvc := newBillingHandler()
			mockSvc.On("ListInvoices", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			w, c := newRequest(http.MethodGet, "/api/v1/billing/invoices")
			setSession(t, c, staff())
			h.ListInvoices(c)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decode(t, w).Error.Code)
		})
	}
}

func TestBillingHandler_Refresh(t *testing.T) {
	h, mockSvc := newBillingHandler()
	p := staff()
	mockSvc.On("Refresh", mock.Anything, p).Return(&service.RefreshResult{
		Source:  domain.InvoiceSourceSample,
		Count:   5,
		Applied: true,
		Notices: []domain.Notice{{Level: domain.NoticeLevelError, Code: service.NoticeFetchFailed, Message: "Failed"}},
	}, nil)

	w, c := newRequest(http.MethodPost, "/api/v1/billing/invoices/refresh")
	setSession(t, c, p)
	h.Refresh(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, "sample", data["source"])
	assert.Len(t, data["notices"], 1)
}

func TestBillingHandler_GetInvoice(t *testing.T) {
	h, mockSvc := newBillingHandler()
	p := staff()
	detail := &domain.DetailView{
		Invoice:     domain.Invoice{ID: "inv-1", InvoiceNumber: "INV-1"},
		BalanceText: "$10.00",
	}
	mockSvc.On("GetInvoice", mock.Anything, p, "inv-1").Return(detail, nil)
	mockSvc.On("GetInvoice", mock.Anything, p, "nope").Return(nil, domain.ErrInvoiceNotFound)

	w, c := newRequest(http.MethodGet, "/api/v1/billing/invoices/inv-1")
	c.Params = gin.Params{{Key: "id", Value: "inv-1"}}
	setSession(t, c, p)
	h.GetInvoice(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, "INV-1", data["invoice_number"])
	assert.Equal(t, "$10.00", data["balance_formatted"])

	w, c = newRequest(http.MethodGet, "/api/v1/billing/invoices/nope")
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	setSession(t, c, p)
	h.GetInvoice(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "INVOICE_NOT_FOUND", decode(t, w).Error.Code)
}

func TestBillingHandler_ExportInvoice(t *testing.T) {
	h, mockSvc := newBillingHandler()
	p := staff()
	doc := &domain.ExportDocument{
		Filename:    "Invoice_INV-042_Jane_Doe.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        []byte("PK\x03\x04"),
	}
	mockSvc.On("ExportInvoice", mock.Anything, p, "inv-42").
		Return(&service.ExportResult{Document: doc, ArchiveURL: "https://s3/presigned"}, nil)

	w, c := newRequest(http.MethodGet, "/api/v1/billing/invoices/inv-42/export")
	c.Params = gin.Params{{Key: "id", Value: "inv-42"}}
	setSession(t, c, p)
	h.ExportInvoice(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, doc.ContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=Invoice_INV-042_Jane_Doe.xlsx`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "https://s3/presigned", w.Header().Get("X-Archive-URL"))
	assert.Equal(t, doc.Data, w.Body.Bytes())
}

func TestBillingHandler_ExportInvoice_EncodesFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		header   string
	}{
		{"quote", `Invoice_INV-7_O"Brien.xlsx`, `attachment; filename="Invoice_INV-7_O\"Brien.xlsx"`},
		{"semicolon", "Invoice_INV-7_A;B.xlsx", `attachment; filename="Invoice_INV-7_A;B.xlsx"`},
		{"non-ascii", `Invoice_INV-7_José_O"Brien.xlsx`, `attachment; filename*=utf-8''Invoice_INV-7_Jos%C3%A9_O%22Brien.xlsx`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mockSvc := newBillingHandler()
			doc := &domain.ExportDocument{Filename: tt.filename, ContentType: "application/xlsx", Data: []byte("PK")}
			mockSvc.On("ExportInvoice", mock.Anything, mock.Anything, "inv-7").Return(&service.ExportResult{Document: doc}, nil)

			w, c := newRequest(http.MethodGet, "/api/v1/billing/invoices/inv-7/export")
			c.Params = gin.Params{{Key: "id", Value: "inv-7"}}
			setSession(t, c, staff())
			h.ExportInvoice(c)

			require.Equal(t, http.StatusOK, w.Code)
			header := w.Header().Get("Content-Disposition")
			assert.Equal(t, tt.header, header)
			assert.Empty(t, w.Header().Get("X-Archive-URL"))

			disposition, params, err := mime.ParseMediaType(header)
			require.NoError(t, err)
			assert.Equal(t, "attachment", disposition)
			assert.Equal(t, tt.filename, params["filename"])
		})
	}
}

func TestBillingHandler_ExportInvoice_Failure(t *testing.T) {
	h, mockSvc := newBillingHandler()
	mockSvc.On("ExportInvoice", mock.Anything, mock.Anything, "inv-42").
		Return(nil, errors.Join(domain.ErrExportFailed, errors.New("zip")))

	w, c := newRequest(http.MethodGet, "/api/v1/billing/invoices/inv-42/export")
	c.Params = gin.Params{{Key: "id", Value: "inv-42"}}
	setSession(t, c, staff())
	h.ExportInvoice(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "EXPORT_FAILED", decode(t, w).Error.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
}

func TestBillingHandler_ExportCSV(t *testing.T) {
	h, mockSvc := newBillingHandler()
	p := staff()
	doc := &domain.ExportDocument{
		Filename:    "Invoices_2024-03-09.csv",
		ContentType: service.CSVContentType,
		Data:        []byte("Invoice Number\n"),
	}
	mockSvc.On("ExportListingCSV", mock.Anything, p, billing.Query{Sort: domain.SortPatient}).Return(doc, nil)

	w, c := newRequest(http.MethodGet, "/api/v1/billing/invoices/export.csv?sort=patient")
	setSession(t, c, p)
	h.ExportCSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Invoices_2024-03-09.csv")
}

func TestBillingHandler_GetStats(t *testing.T) {
	h, mockSvc := newBillingHandler()
	p := staff()
	mockSvc.On("GetStats", mock.Anything, p).Return(&service.StatsResult{
		Stats:  domain.Stats{Total: 3, Paid: 1, Pending: 1, Overdue: 1, TotalRevenue: 1500, DistinctClinics: 2},
		Source: domain.InvoiceSourceStore,
	}, nil)

	w, c := newRequest(http.MethodGet, "/api/v1/billing/stats")
	setSession(t, c, p)
	h.GetStats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	stats := data["stats"].(map[string]interface{})
	assert.Equal(t, 3.0, stats["total"])
	assert.Equal(t, 2.0, stats["distinct_clinics"])
}

func TestBillingHandler_ListClinics(t *testing.T) {
	h, mockSvc := newBillingHandler()
	p := staff()
	mockSvc.On("ListClinics", mock.Anything, p).Return(&service.ClinicList{
		Clinics: billing.FallbackClinics,
		Source:  domain.InvoiceSourceSample,
	}, nil)

	w, c := newRequest(http.MethodGet, "/api/v1/billing/clinics")
	setSession(t, c, p)
	h.ListClinics(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Len(t, data["clinics"], 4)
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrInvoiceNotFound, http.StatusNotFound, "INVOICE_NOT_FOUND"},
		{domain.ErrSessionNotReady, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrStoreRejected, http.StatusBadGateway, "STORE_REJECTED"},
		{domain.ErrStoreUnavailable, http.StatusServiceUnavailable, "STORE_UNAVAILABLE"},
		{errors.Join(domain.ErrInvalidSortKey, errors.New(`"x"`)), http.StatusBadRequest, "INVALID_SORT_KEY"},
	}
	for _, tt := range tests {
		status, code, _ := handler.MapDomainError(tt.err)
		assert.Equal(t, tt.status, status, tt.code)
		assert.Equal(t, tt.code, code)
	}
}
