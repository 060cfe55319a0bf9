package cli

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"medibill/internal/billing"
	"medibill/internal/csvexport"
	"medibill/internal/domain"
)

type queryFlags struct {
	search        string
	patientName   string
	clinic        string
	amountRange   string
	billDate      string
	paymentMethod string
	sort          string
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "query", "q", "", "Quick search over patient, clinic and status")
	cmd.Flags().StringVar(&f.patientName, "patient", "", "Patient name contains")
	cmd.Flags().StringVar(&f.clinic, "clinic", "", "Clinic name contains")
	cmd.Flags().StringVar(&f.amountRange, "amount-range", "", "low | medium | high")
	cmd.Flags().StringVar(&f.billDate, "bill-date", "", "Bill date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.paymentMethod, "payment-method", "", "Payment method contains")
	cmd.Flags().StringVar(&f.sort, "sort", "latest", strings.Join(sortKeyNames(), " | "))
}

func (f *queryFlags) query() (billing.Query, error) {
	amountRange, err := billing.ParseAmountRange(f.amountRange)
	if err != nil {
		return billing.Query{}, err
	}
	billDate, err := billing.ParseBillDate(f.billDate)
	if err != nil {
		return billing.Query{}, err
	}
	sortKey, err := billing.ParseSortKey(f.sort)
	if err != nil {
		return billing.Query{}, err
	}
	return billing.Query{
		Search: f.search,
		Filters: domain.FilterSet{
			PatientName:   f.patientName,
			Clinic:        f.clinic,
			AmountRange:   amountRange,
			BillDate:      billDate,
			PaymentMethod: f.paymentMethod,
		},
		Sort: sortKey,
	}, nil
}

func sortKeyNames() []string {
	names := make([]string, len(billing.SortKeys))
	for i, k := range billing.SortKeys {
		names[i] = string(k)
	}
	return names
}

func newListCmd(opts *options) *cobra.Command {
	var (
		qf     queryFlags
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the filtered and sorted invoice table",
		Example: `  billingctl list --file dump.json --clinic "city care" --sort amount_desc
  billingctl list -q overdue --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := qf.query()
			if err != nil {
				return err
			}
			invoices, err := loadInvoices(opts)
			if err != nil {
				return err
			}
			view := billing.Apply(invoices, q)
			rows := billing.NewPresenter(opts.currency).ToRows(view.Invoices)

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), rows)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "INVOICE\tPATIENT\tCLINIC\tBILL DATE\tDUE DATE\tTOTAL\tBALANCE\tSTATUS")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					r.InvoiceNumber, r.PatientName, r.ClinicName, r.BillDate, r.DueDate, r.Total, r.Balance, r.StatusLabel)
			}
			fmt.Fprintf(tw, "\n%d of %d invoices\n", len(rows), view.Stats.Total)
			return tw.Flush()
		},
	}
	qf.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print rows as JSON")
	return cmd
}

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print summary statistics over every invoice in the dump",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			invoices, err := loadInvoices(opts)
			if err != nil {
				return err
			}
			stats := billing.ComputeStats(invoices)
			p := billing.NewPresenter(opts.currency)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Total invoices\t%d\n", stats.Total)
			fmt.Fprintf(tw, "Paid\t%d\n", stats.Paid)
			fmt.Fprintf(tw, "Pending\t%d\n", stats.Pending)
			fmt.Fprintf(tw, "Overdue\t%d\n", stats.Overdue)
			fmt.Fprintf(tw, "Partially paid\t%d\n", stats.PartiallyPaid)
			fmt.Fprintf(tw, "Revenue collected\t%s\n", p.FormatMoney(stats.TotalRevenue))
			fmt.Fprintf(tw, "Clinics\t%d\n", stats.DistinctClinics)
			return tw.Flush()
		},
	}
}

func newCSVCmd(opts *options) *cobra.Command {
	var (
		qf     queryFlags
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Write the filtered and sorted invoice table as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := qf.query()
			if err != nil {
				return err
			}
			invoices, err := loadInvoices(opts)
			if err != nil {
				return err
			}
			rows := billing.NewPresenter(opts.currency).ToRows(billing.Apply(invoices, q).Invoices)

			label := "Invoices"
			if q.Filters.Clinic != "" {
				label = q.Filters.Clinic + " Invoices"
			}

			var buf bytes.Buffer
			buf.Write(csvexport.BOM)
			w := csvexport.NewWriter(&buf)
			if err := w.WriteHeader(); err != nil {
				return err
			}
			if err := w.WriteRows(rows); err != nil {
				return err
			}
			w.Flush()
			if err := w.Error(); err != nil {
				return err
			}
			path, err := writeOutput(outDir, csvexport.BuildFilename(label, time.Now()), buf.Bytes())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", len(rows), path)
			return nil
		},
	}
	qf.register(cmd)
	cmd.Flags().StringVarP(&outDir, "output-dir", "o", ".", "Directory to write the CSV file to")
	return cmd
}
