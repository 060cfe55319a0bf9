package s3

import (
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medibill/internal/domain"
	"medibill/internal/port"
)

func TestPutInput(t *testing.T) {
	put := putInput(port.ArchiveObject{
		Bucket: "exports",
		Key:    "invoice-exports/t1/20240309T101500/Invoice_INV-042_Jane_Doe.xlsx",
		Document: &domain.ExportDocument{
			Filename:    "Invoice_INV-042_Jane_Doe.xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        []byte("PK\x03\x04"),
		},
	})

	assert.Equal(t, "exports", aws.ToString(put.Bucket))
	assert.Equal(t, int64(4), aws.ToInt64(put.ContentLength))
	assert.Equal(t, "attachment; filename=Invoice_INV-042_Jane_Doe.xlsx", aws.ToString(put.ContentDisposition))
	assert.Contains(t, aws.ToString(put.ContentType), "spreadsheetml")
	body, err := io.ReadAll(put.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("PK\x03\x04"), body)
}

func TestPutInput_NilDocument(t *testing.T) {
	put := putInput(port.ArchiveObject{Bucket: "exports", Key: "k"})

	assert.Equal(t, int64(0), aws.ToInt64(put.ContentLength))
	assert.Nil(t, put.ContentType)
	assert.Nil(t, put.ContentDisposition)
}
