package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"medibill/internal/domain"
	"medibill/internal/xlsxexport"
)

func newExportCmd(opts *options) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:     "export <invoice-id>",
		Short:   "Export a single invoice as an Excel workbook",
		Example: `  billingctl export inv-1001 --file dump.json -o ./exports`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			invoices, err := loadInvoices(opts)
			if err != nil {
				return err
			}

			var inv *domain.Invoice
			for i := range invoices {
				if invoices[i].ID == args[0] || invoices[i].InvoiceNumber == args[0] {
					inv = &invoices[i]
					break
				}
			}
			if inv == nil {
				return fmt.Errorf("%w: %s", domain.ErrInvoiceNotFound, args[0])
			}

			doc, err := xlsxexport.NewExporter().Export(*inv)
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
			}
			path, err := writeOutput(outDir, doc.Filename, doc.Data)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "output-dir", "o", ".", "Directory to write the workbook to")
	return cmd
}
