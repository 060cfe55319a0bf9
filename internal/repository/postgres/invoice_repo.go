package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"medibill/internal/domain"
	"medibill/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a PostgreSQL-backed InvoiceStore over the
// billing_invoices JSONB documents.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceStore {
	return &invoiceRepo{db: db}
}

// invoiceRow is a stored document plus the columns it is indexed by.
type invoiceRow struct {
	ID       string `db:"id"`
	Document []byte `db:"document"`
}

const scopeClause = `($1 OR tenant_id = $2) AND ($3 = '' OR patient_id = $3)`

func (r *invoiceRepo) List(ctx context.Context, scope port.InvoiceScope) ([]domain.RawInvoice, error) {
	var rows []invoiceRow
	query := `SELECT id, document FROM billing_invoices WHERE ` + scopeClause + ` ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &rows, query, scope.AllTenants, scope.TenantID, scope.PatientID); err != nil {
		return nil, fmt.Errorf("invoiceRepo.List: %w: %w", domain.ErrStoreUnavailable, err)
	}

	out := make([]domain.RawInvoice, 0, len(rows))
	for _, row := range rows {
		out = append(out, decodeDocument(row))
	}
	return out, nil
}

func (r *invoiceRepo) Get(ctx context.Context, scope port.InvoiceScope, id string) (domain.RawInvoice, error) {
	var row invoiceRow
	query := `SELECT id, document FROM billing_invoices WHERE ` + scopeClause + ` AND id = $4`
	err := r.db.GetContext(ctx, &row, query, scope.AllTenants, scope.TenantID, scope.PatientID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.Get: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return decodeDocument(row), nil
}

// decodeDocument unmarshals the JSONB body, filling _id from the row key
// when the document does not carry one. A body that is not a JSON object
// becomes a bare record so the normalizer's defaults apply.
func decodeDocument(row invoiceRow) domain.RawInvoice {
	var raw domain.RawInvoice
	if len(row.Document) > 0 {
		var doc any
		if err := json.Unmarshal(row.Document, &doc); err != nil {
			zap.L().Warn("undecodable invoice document", zap.String("id", row.ID), zap.Error(err))
		} else if obj, ok := doc.(map[string]any); ok {
			raw = obj
		} else {
			zap.L().Warn("invoice document is not an object", zap.String("id", row.ID), zap.String("type", fmt.Sprintf("%T", doc)))
		}
	}
	if raw == nil {
		raw = domain.RawInvoice{}
	}
	if _, ok := raw["_id"]; !ok {
		if _, ok := raw["id"]; !ok {
			raw["_id"] = row.ID
		}
	}
	return raw
}
