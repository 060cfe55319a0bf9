package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeDocument_FillsIDFromRow(t *testing.T) {
	raw := decodeDocument(invoiceRow{ID: "inv-1", Document: []byte(`{"patientName":"Ana","totalAmount":120}`)})
	assert.Equal(t, "inv-1", raw["_id"])
	assert.Equal(t, "Ana", raw["patientName"])
	assert.Equal(t, 120.0, raw["totalAmount"])
}

func TestDecodeDocument_KeepsDocumentID(t *testing.T) {
	raw := decodeDocument(invoiceRow{ID: "row-key", Document: []byte(`{"id":"doc-key"}`)})
	assert.Equal(t, "doc-key", raw["id"])
	assert.NotContains(t, raw, "_id")
}

func TestDecodeDocument_EmptyDocument(t *testing.T) {
	raw := decodeDocument(invoiceRow{ID: "inv-2"})
	assert.Equal(t, "inv-2", raw["_id"])
}

func TestDecodeDocument_NullDocument(t *testing.T) {
	var raw map[string]any
	assert.NotPanics(t, func() {
		raw = decodeDocument(invoiceRow{ID: "inv-1", Document: []byte(`null`)})
	})
	assert.Equal(t, map[string]any{"_id": "inv-1"}, raw)
}

func TestDecodeDocument_NonObjectDocument(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"string", `"oops"`},
		{"array", `[{"_id":"x"}]`},
		{"number", `42`},
		{"malformed", `{not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := decodeDocument(invoiceRow{ID: "inv-3", Document: []byte(tt.doc)})
			assert.Equal(t, "inv-3", raw["_id"])
			assert.Len(t, raw, 1)
		})
	}
}
