// Package cli implements billingctl, an offline companion to the billing API.
// It runs the same normalize, filter, sort and export pipeline over a JSON
// dump of invoice records, and issues development access tokens.
package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"medibill/internal/billing"
	"medibill/internal/domain"
	"medibill/internal/logger"
)

var version = "1.0.0"

type options struct {
	file     string
	currency string
	logLevel string
}

// NewRootCmd builds the billingctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "billingctl",
		Short: "Inspect and export clinic invoices from the command line",
		Long: `billingctl runs the billing pipeline over a JSON dump of invoice
records (an array, or an object with an "invoices" array). Without --file it
uses the built-in sample dataset.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := logger.New(opts.logLevel, "console")
			return err
		},
	}

	root.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "Invoice dump (JSON); defaults to the sample dataset")
	root.PersistentFlags().StringVar(&opts.currency, "currency", "$", "Currency symbol for formatted amounts")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newListCmd(opts),
		newStatsCmd(opts),
		newCSVCmd(opts),
		newExportCmd(opts),
		newTokenCmd(),
	)
	return root
}

// Execute runs billingctl and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		zap.L().Debug("command failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadInvoices reads and normalizes the dump named by opts.file.
func loadInvoices(opts *options) ([]domain.Invoice, error) {
	if opts.file == "" {
		return billing.SampleInvoices(), nil
	}
	data, err := os.ReadFile(opts.file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", opts.file, err)
	}
	raws, err := decodeDump(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", opts.file, err)
	}
	zap.L().Info("loaded invoice dump", zap.String("file", opts.file), zap.Int("records", len(raws)))
	return billing.NormalizeAll(raws), nil
}

func decodeDump(data []byte) ([]domain.RawInvoice, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var wrapped struct {
			Invoices json.RawMessage `json:"invoices"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, err
		}
		if wrapped.Invoices == nil {
			return nil, fmt.Errorf(`object has no "invoices" field`)
		}
		data = wrapped.Invoices
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raws []domain.RawInvoice
	if err := dec.Decode(&raws); err != nil {
		return nil, err
	}
	return raws, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
