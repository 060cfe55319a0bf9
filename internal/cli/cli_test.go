package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medibill/internal/auth"
	"medibill/internal/cli"
	"medibill/internal/config"
	"medibill/internal/domain"
)

const dump = `[
  {"_id": "a", "invoiceNumber": "INV-A", "patientName": "Alice Stone", "clinicName": "City Care Clinic",
   "totalAmount": 500, "paidAmount": 500, "billDate": "2024-03-01", "status": "paid"},
  {"_id": "b", "invoiceNumber": "INV-B", "patientName": "Bob Reyes", "clinicName": "Riverside Family Practice",
   "totalAmount": 4200, "paidAmount": 0, "billDate": "2024-03-05", "status": "overdue"},
  {"_id": "c", "invoiceNumber": "INV-C", "patientName": "Cara Lin", "clinicName": "City Care Clinic",
   "totalAmount": "1800.50", "paidAmount": 800, "billDate": "2024-02-20", "status": "partially_paid"}
]`

func writeDump(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := cli.NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestStats_SampleDataset(t *testing.T) {
	out, err := run(t, "stats")
	require.NoError(t, err)
	assert.Regexp(t, `Total invoices\s+5`, out)
	assert.Regexp(t, `Clinics\s+\d`, out)
}

func TestList_JSONSortedAndFiltered(t *testing.T) {
	path := writeDump(t, dump)

	out, err := run(t, "list", "--file", path, "--sort", "amount_desc", "--json")
	require.NoError(t, err)

	var rows []domain.RenderRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{rows[0].ID, rows[1].ID, rows[2].ID})
	assert.Equal(t, "$4,200.00", rows[0].Total)

	out, err = run(t, "list", "--file", path, "--clinic", "city care", "--amount-range", "medium", "--json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "INV-C", rows[0].InvoiceNumber)
}

func TestList_Table(t *testing.T) {
	path := writeDump(t, dump)

	out, err := run(t, "list", "--file", path, "-q", "overdue")
	require.NoError(t, err)
	assert.Contains(t, out, "INV-B")
	assert.NotContains(t, out, "INV-A")
	assert.Contains(t, out, "1 of 3 invoices")
}

func TestList_WrappedDump(t *testing.T) {
	path := writeDump(t, `{"invoices": `+dump+`}`)

	out, err := run(t, "list", "--file", path, "--json")
	require.NoError(t, err)
	var rows []domain.RenderRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.Len(t, rows, 3)
}

func TestList_InvalidInput(t *testing.T) {
	_, err := run(t, "list", "--sort", "random")
	assert.ErrorIs(t, err, domain.ErrInvalidSortKey)

	_, err = run(t, "list", "--amount-range", "huge")
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)

	_, err = run(t, "list", "--file", writeDump(t, `{"rows": []}`))
	assert.Error(t, err)

	_, err = run(t, "list", "--file", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestExport_WritesWorkbook(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "export", "sample-inv-001", "-o", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "Invoice_INV-2024-001_John_Smith.xlsx")
	assert.Contains(t, out, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), data[:2])
}

func TestExport_ByInvoiceNumber(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "export", "INV-B", "--file", writeDump(t, dump), "-o", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "Invoice_INV-B_Bob_Reyes.xlsx"))
}

func TestExport_ReplacesPathSeparators(t *testing.T) {
	dir := t.TempDir()
	path := writeDump(t, `[{"_id": "x", "invoiceNumber": "INV/7", "patientName": "Ana/..\\Ruiz", "totalAmount": 10}]`)

	out, err := run(t, "export", "x", "--file", path, "-o", dir)
	require.NoError(t, err)

	want := filepath.Join(dir, "Invoice_INV_7_Ana_.._Ruiz.xlsx")
	assert.Contains(t, out, want)
	assert.FileExists(t, want)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestExport_FailedWriteLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "Invoice_INV-B_Bob_Reyes.xlsx")
	require.NoError(t, os.Mkdir(target, 0o755))

	_, err := run(t, "export", "INV-B", "--file", writeDump(t, dump), "-o", dir)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsDir())
}

func TestExport_NotFound(t *testing.T) {
	_, err := run(t, "export", "nope", "-o", t.TempDir())
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}

func TestCSV_WritesFileWithBOM(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "csv", "--file", writeDump(t, dump), "--clinic", "City Care Clinic", "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 2 rows")

	matches, err := filepath.Glob(filepath.Join(dir, "City_Care_Clinic_Invoices_*.csv"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
	assert.Contains(t, string(data), "INV-C")
}

func TestToken_IssuesValidToken(t *testing.T) {
	t.Setenv("MEDIBILL_JWT_SECRET", "cli-test-secret")
	tenantID := uuid.New()

	out, err := run(t, "token", "--role", "patient", "--tenant", tenantID.String(), "--patient", "pat-17")
	require.NoError(t, err)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	cfg, err := config.Load()
	require.NoError(t, err)
	claims, err := auth.NewTokens(&cfg.JWT).Validate(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, tenantID, claims.TenantID)
	assert.Equal(t, domain.RolePatient, claims.Role)
	assert.Equal(t, "pat-17", claims.PatientID)
}

func TestToken_RejectsBadInput(t *testing.T) {
	tenant := uuid.New().String()

	_, err := run(t, "token", "--role", "janitor", "--tenant", tenant)
	assert.Error(t, err)

	_, err = run(t, "token", "--role", "patient", "--tenant", tenant)
	assert.Error(t, err)

	_, err = run(t, "token", "--tenant", "not-a-uuid")
	assert.Error(t, err)

	_, err = run(t, "token")
	assert.Error(t, err)
}
