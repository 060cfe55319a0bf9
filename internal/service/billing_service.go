package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"slices"
	"time"

	"go.uber.org/zap"

	"medibill/internal/billing"
	"medibill/internal/csvexport"
	"medibill/internal/domain"
	"medibill/internal/metrics"
	"medibill/internal/port"
)

// Notice codes emitted by the billing service.
const (
	NoticeFetchFailed   = "INVOICES_FETCH_FAILED"
	NoticeExportFailed  = "INVOICE_EXPORT_FAILED"
	NoticeClinicsFailed = "CLINICS_FETCH_FAILED"
)

// CSVContentType is the media type of listing exports.
const CSVContentType = "text/csv; charset=utf-8"

// BillingConfig holds the service's presentation and archive settings.
type BillingConfig struct {
	CurrencySymbol string
	ArchiveEnabled bool
	ArchiveBucket  string
	ArchivePrefix  string
	LinkTTL        time.Duration
	BoardTTL       time.Duration
}

// ListInvoicesInput is the DTO for listing invoices.
type ListInvoicesInput struct {
	Query  billing.Query
	Offset int
	Limit  int
}

// InvoiceListing is one page of the invoice table.
type InvoiceListing struct {
	Stats     domain.Stats         `json:"stats"`
	Rows      []domain.RenderRow   `json:"rows"`
	Total     int                  `json:"-"`
	Source    domain.InvoiceSource `json:"source"`
	FetchedAt time.Time            `json:"fetched_at"`
	Notices   []domain.Notice      `json:"notices"`
}

// RefreshResult describes the snapshot left on the board after a refresh.
type RefreshResult struct {
	Source    domain.InvoiceSource `json:"source"`
	Count     int                  `json:"count"`
	FetchedAt time.Time            `json:"fetched_at"`
	Applied   bool                 `json:"applied"`
	Notices   []domain.Notice      `json:"notices"`
}

// StatsResult holds stats over the full collection and where it came from.
type StatsResult struct {
	Stats   domain.Stats         `json:"stats"`
	Source  domain.InvoiceSource `json:"source"`
	Notices []domain.Notice      `json:"notices"`
}

// ClinicList holds the names offered by the clinic filter.
type ClinicList struct {
	Clinics []string             `json:"clinics"`
	Source  domain.InvoiceSource `json:"source"`
	Notices []domain.Notice      `json:"notices"`
}

// ExportResult is a single-invoice workbook plus its archive link, if any.
type ExportResult struct {
	Document   *domain.ExportDocument
	ArchiveURL string
}

// BillingService serves the billing page: listings, detail, stats and exports.
type BillingService interface {
	ListInvoices(ctx context.Context, p domain.Principal, input ListInvoicesInput) (*InvoiceListing, error)
	Refresh(ctx context.Context, p domain.Principal) (*RefreshResult, error)
	GetInvoice(ctx context.Context, p domain.Principal, id string) (*domain.DetailView, error)
	ExportInvoice(ctx context.Context, p domain.Principal, id string) (*ExportResult, error)
	ExportListingCSV(ctx context.Context, p domain.Principal, q billing.Query) (*domain.ExportDocument, error)
	GetStats(ctx context.Context, p domain.Principal) (*StatsResult, error)
	ListClinics(ctx context.Context, p domain.Principal) (*ClinicList, error)
}

type billingService struct {
	store     port.InvoiceStore
	clinics   port.ClinicStore
	exporter  port.InvoiceExporter
	archive   port.ExportArchive
	notifier  port.Notifier
	metrics   *metrics.Billing
	presenter *billing.Presenter
	boards    *billing.Boards
	cfg       BillingConfig
	now       func() time.Time
}

// NewBillingService creates a new BillingService. archive may be nil when
// export archiving is disabled; m may be nil.
func NewBillingService(
	store port.InvoiceStore,
	clinics port.ClinicStore,
	exporter port.InvoiceExporter,
	archive port.ExportArchive,
	notifier port.Notifier,
	m *metrics.Billing,
	cfg BillingConfig,
) BillingService {
	if cfg.CurrencySymbol == "" {
		cfg.CurrencySymbol = "$"
	}
	return &billingService{
		store:     store,
		clinics:   clinics,
		exporter:  exporter,
		archive:   archive,
		notifier:  notifier,
		metrics:   m,
		presenter: billing.NewPresenter(cfg.CurrencySymbol),
		boards:    billing.NewBoards(cfg.BoardTTL),
		cfg:       cfg,
		now:       time.Now,
	}
}

// scopeFor maps the caller to the records they may see.
func scopeFor(p domain.Principal) (port.InvoiceScope, error) {
	switch p.Role {
	case domain.RoleSuperAdmin:
		return port.InvoiceScope{AllTenants: true}, nil
	case domain.RoleClinicAdmin, domain.RoleBillingStaff:
		return port.InvoiceScope{TenantID: p.TenantID}, nil
	case domain.RolePatient:
		if p.PatientID == "" {
			return port.InvoiceScope{}, domain.ErrForbidden
		}
		return port.InvoiceScope{TenantID: p.TenantID, PatientID: p.PatientID}, nil
	default:
		return port.InvoiceScope{}, domain.ErrInsufficientRole
	}
}

// staffScope is scopeFor restricted to billing staff; patients are refused.
func staffScope(p domain.Principal) (port.InvoiceScope, error) {
	if p.Role == domain.RolePatient {
		return port.InvoiceScope{}, domain.ErrInsufficientRole
	}
	return scopeFor(p)
}

// fetch loads the scope's collection and offers it to the scope's board. A
// failed fetch yields the sample dataset and exactly one failure notice. When
// a newer fetch has already been applied, the newer snapshot is returned and
// the notices describe it instead.
func (s *billingService) fetch(ctx context.Context, scope port.InvoiceScope) (billing.Snapshot, bool, []domain.Notice) {
	board := s.boards.For(scope.Key())
	gen := board.Begin()

	snap := billing.Snapshot{Source: domain.InvoiceSourceStore}
	var notices []domain.Notice

	raws, err := s.store.List(ctx, scope)
	if err != nil {
		zap.L().Warn("invoice fetch failed, using sample dataset",
			zap.String("scope", scope.Key()),
			zap.Error(err),
		)
		snap.Invoices = billing.SampleInvoices()
		snap.Source = domain.InvoiceSourceSample
		s.metrics.RecordFallback()
		notices = append(notices, s.emit(ctx, domain.Notice{
			Level:   domain.NoticeLevelError,
			Code:    NoticeFetchFailed,
			Message: fetchFailureMessage(err),
		}))
	} else {
		snap.Invoices = billing.NormalizeAll(raws)
	}
	snap.FetchedAt = s.now()

	current, applied := board.Apply(gen, snap)
	if applied {
		s.metrics.RecordFetch(string(current.Source))
	} else {
		s.metrics.RecordStale()
		zap.L().Debug("discarding stale invoice refresh",
			zap.String("scope", scope.Key()),
			zap.Uint64("generation", gen),
			zap.Uint64("current_generation", current.Generation),
		)
		if current.Source != snap.Source {
			notices = nil
			if current.Source == domain.InvoiceSourceSample {
				notices = []domain.Notice{{
					Level:   domain.NoticeLevelError,
					Code:    NoticeFetchFailed,
					Message: fetchFailureMessage(nil),
				}}
			}
		}
	}
	return current, applied, notices
}

func fetchFailureMessage(err error) string {
	if errors.Is(err, domain.ErrStoreRejected) {
		return "The invoice service rejected the request. Showing sample invoices."
	}
	return "Failed to load invoices. Showing sample invoices."
}

// emit sends notice to the notifier and returns it for the response.
func (s *billingService) emit(ctx context.Context, notice domain.Notice) domain.Notice {
	if err := s.notifier.Notify(ctx, notice); err != nil {
		zap.L().Error("failed to deliver billing notice", zap.String("code", notice.Code), zap.Error(err))
	}
	return notice
}

func (s *billingService) ListInvoices(ctx context.Context, p domain.Principal, input ListInvoicesInput) (*InvoiceListing, error) {
	scope, err := scopeFor(p)
	if err != nil {
		return nil, err
	}

	snap, _, notices := s.fetch(ctx, scope)
	view := billing.Apply(snap.Invoices, input.Query)
	page := paginate(view.Invoices, input.Offset, input.Limit)

	if notices == nil {
		notices = []domain.Notice{}
	}
	return &InvoiceListing{
		Stats:     view.Stats,
		Rows:      s.presenter.ToRows(page),
		Total:     len(view.Invoices),
		Source:    snap.Source,
		FetchedAt: snap.FetchedAt,
		Notices:   notices,
	}, nil
}

func paginate(invoices []domain.Invoice, offset, limit int) []domain.Invoice {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(invoices) {
		return []domain.Invoice{}
	}
	end := len(invoices)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return invoices[offset:end]
}

func (s *billingService) Refresh(ctx context.Context, p domain.Principal) (*RefreshResult, error) {
	scope, err := scopeFor(p)
	if err != nil {
		return nil, err
	}

	snap, applied, notices := s.fetch(ctx, scope)
	if notices == nil {
		notices = []domain.Notice{}
	}
	return &RefreshResult{
		Source:    snap.Source,
		Count:     len(snap.Invoices),
		FetchedAt: snap.FetchedAt,
		Applied:   applied,
		Notices:   notices,
	}, nil
}

// lookup finds one invoice: the scope's last store snapshot first, then the
// store, then the sample dataset when the store is unreachable.
func (s *billingService) lookup(ctx context.Context, scope port.InvoiceScope, id string) (domain.Invoice, error) {
	if snap, ok := s.boards.For(scope.Key()).Current(); ok && snap.Source == domain.InvoiceSourceStore {
		for i := range snap.Invoices {
			if snap.Invoices[i].ID == id {
				return snap.Invoices[i], nil
			}
		}
	}

	raw, err := s.store.Get(ctx, scope, id)
	if err == nil {
		return billing.Normalize(raw), nil
	}
	if errors.Is(err, domain.ErrInvoiceNotFound) || errors.Is(err, domain.ErrNotFound) {
		return domain.Invoice{}, domain.ErrInvoiceNotFound
	}
	if inv, ok := billing.FindSample(id); ok {
		zap.L().Warn("invoice lookup failed, serving sample invoice", zap.String("id", id), zap.Error(err))
		return inv, nil
	}
	return domain.Invoice{}, fmt.Errorf("billingService.lookup: %w", err)
}

func (s *billingService) GetInvoice(ctx context.Context, p domain.Principal, id string) (*domain.DetailView, error) {
	scope, err := scopeFor(p)
	if err != nil {
		return nil, err
	}
	inv, err := s.lookup(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	detail := s.presenter.ToDetail(inv)
	return &detail, nil
}

func (s *billingService) ExportInvoice(ctx context.Context, p domain.Principal, id string) (*ExportResult, error) {
	scope, err := scopeFor(p)
	if err != nil {
		return nil, err
	}
	inv, err := s.lookup(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	doc, err := s.exporter.Export(inv)
	s.metrics.RecordExport("xlsx", err)
	if err != nil {
		zap.L().Error("invoice export failed", zap.String("invoice_number", inv.InvoiceNumber), zap.Error(err))
		s.emit(ctx, domain.Notice{
			Level:   domain.NoticeLevelError,
			Code:    NoticeExportFailed,
			Message: fmt.Sprintf("Failed to export invoice %s.", inv.InvoiceNumber),
		})
		return nil, fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}

	result := &ExportResult{Document: doc}
	if s.cfg.ArchiveEnabled && s.archive != nil {
		result.ArchiveURL = s.archiveExport(ctx, scope, doc)
	}
	return result, nil
}

// archiveExport uploads doc and returns a presigned link. Archive failures are
// logged only; the download itself has already succeeded.
func (s *billingService) archiveExport(ctx context.Context, scope port.InvoiceScope, doc *domain.ExportDocument) string {
	tenant := scope.TenantID.String()
	if scope.AllTenants {
		tenant = "all"
	}
	key := path.Join(s.cfg.ArchivePrefix, tenant, s.now().UTC().Format("20060102T150405"), doc.Filename)

	_, err := s.archive.Put(ctx, port.ArchiveObject{
		Bucket:   s.cfg.ArchiveBucket,
		Key:      key,
		Document: doc,
	})
	if err != nil {
		zap.L().Warn("invoice export archive upload failed", zap.String("key", key), zap.Error(err))
		return ""
	}

	url, err := s.archive.SignedURL(ctx, s.cfg.ArchiveBucket, key, s.cfg.LinkTTL)
	if err != nil {
		zap.L().Warn("invoice export presign failed", zap.String("key", key), zap.Error(err))
		return ""
	}
	return url
}

func (s *billingService) ExportListingCSV(ctx context.Context, p domain.Principal, q billing.Query) (*domain.ExportDocument, error) {
	scope, err := staffScope(p)
	if err != nil {
		return nil, err
	}

	snap, _, _ := s.fetch(ctx, scope)
	view := billing.Apply(snap.Invoices, q)

	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		s.metrics.RecordExport("csv", err)
		return nil, fmt.Errorf("%w: writing header: %v", domain.ErrExportFailed, err)
	}
	if err := w.WriteRows(s.presenter.ToRows(view.Invoices)); err != nil {
		s.metrics.RecordExport("csv", err)
		return nil, fmt.Errorf("%w: writing rows: %v", domain.ErrExportFailed, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		s.metrics.RecordExport("csv", err)
		return nil, fmt.Errorf("%w: flushing: %v", domain.ErrExportFailed, err)
	}
	s.metrics.RecordExport("csv", nil)

	label := "Invoices"
	if q.Filters.Clinic != "" {
		label = q.Filters.Clinic + " Invoices"
	}
	return &domain.ExportDocument{
		Filename:    csvexport.BuildFilename(label, s.now()),
		ContentType: CSVContentType,
		Data:        buf.Bytes(),
	}, nil
}

func (s *billingService) GetStats(ctx context.Context, p domain.Principal) (*StatsResult, error) {
	scope, err := staffScope(p)
	if err != nil {
		return nil, err
	}
	snap, _, notices := s.fetch(ctx, scope)
	if notices == nil {
		notices = []domain.Notice{}
	}
	return &StatsResult{
		Stats:   billing.ComputeStats(snap.Invoices),
		Source:  snap.Source,
		Notices: notices,
	}, nil
}

func (s *billingService) ListClinics(ctx context.Context, p domain.Principal) (*ClinicList, error) {
	scope, err := staffScope(p)
	if err != nil {
		return nil, err
	}

	names, err := s.clinics.ListClinicNames(ctx, scope)
	if err != nil {
		zap.L().Warn("clinic list fetch failed, using built-in clinics", zap.Error(err))
		return &ClinicList{
			Clinics: slices.Clone(billing.FallbackClinics),
			Source:  domain.InvoiceSourceSample,
			Notices: []domain.Notice{{
				Level:   domain.NoticeLevelInfo,
				Code:    NoticeClinicsFailed,
				Message: "Clinic list unavailable. Showing default clinics.",
			}},
		}, nil
	}
	if names == nil {
		names = []string{}
	}
	return &ClinicList{Clinics: names, Source: domain.InvoiceSourceStore, Notices: []domain.Notice{}}, nil
}
