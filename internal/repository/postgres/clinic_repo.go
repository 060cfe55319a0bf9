package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"medibill/internal/domain"
	"medibill/internal/port"
)

type clinicRepo struct {
	db *sqlx.DB
}

// NewClinicRepo creates a PostgreSQL-backed ClinicStore.
func NewClinicRepo(db *sqlx.DB) port.ClinicStore {
	return &clinicRepo{db: db}
}

func (r *clinicRepo) ListClinicNames(ctx context.Context, scope port.InvoiceScope) ([]string, error) {
	var names []string
	err := r.db.SelectContext(ctx, &names,
		`SELECT DISTINCT name FROM clinics WHERE is_active AND ($1 OR tenant_id = $2) ORDER BY name`,
		scope.AllTenants, scope.TenantID)
	if err != nil {
		return nil, fmt.Errorf("clinicRepo.ListClinicNames: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return names, nil
}
