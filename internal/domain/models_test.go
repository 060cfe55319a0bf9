package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"medibill/internal/domain"
)

func TestExportDocument_ContentDisposition(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"Invoice_INV-042_Jane_Doe.xlsx", "attachment; filename=Invoice_INV-042_Jane_Doe.xlsx"},
		{"Invoice 1.xlsx", `attachment; filename="Invoice 1.xlsx"`},
		{"Invoice_INV-9_José.xlsx", "attachment; filename*=utf-8''Invoice_INV-9_Jos%C3%A9.xlsx"},
	}
	for _, tt := range tests {
		doc := &domain.ExportDocument{Filename: tt.filename}
		assert.Equal(t, tt.want, doc.ContentDisposition(), tt.filename)
	}
}
