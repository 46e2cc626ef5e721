package main

import (
	"Calcform/internal/calc/importer"
	"Calcform/internal/calc/report"
	"Calcform/internal/logging"
	"Calcform/internal/session"
	"Calcform/internal/units"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type runOptions struct {
	in       string
	pdfOut   string
	xlsxOut  string
	meta     report.Meta
	logLevel string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "calccli",
		Short:         "Concrete volume calculator",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newRunCmd(), newConvertCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Import a workbook of rows, print the summary and write reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(opts.logLevel, "console", "calccli")
			if err != nil {
				return err
			}
			defer logger.Sync()
			return run(cmd.OutOrStdout(), opts, logger)
		},
	}
	cmd.Flags().StringVar(&opts.in, "in", "", "workbook with one structure per row (required)")
	cmd.Flags().StringVar(&opts.pdfOut, "pdf", "", "write the PDF report to this path")
	cmd.Flags().StringVar(&opts.xlsxOut, "xlsx", "", "write the XLSX report to this path")
	cmd.Flags().StringVar(&opts.meta.Title, "title", "", "report title")
	cmd.Flags().StringVar(&opts.meta.Project, "project", "", "project name")
	cmd.Flags().StringVar(&opts.meta.Customer, "customer", "", "customer name")
	cmd.Flags().StringVar(&opts.meta.Site, "site", "", "site address")
	cmd.Flags().StringVar(&opts.meta.Author, "author", "", "report author")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "log level")
	cmd.MarkFlagRequired("in")
	return cmd
}

func run(out io.Writer, opts runOptions, logger *zap.Logger) error {
	f, err := os.Open(opts.in)
	if err != nil {
		return err
	}
	defer f.Close()

	s := session.New()
	res, err := importer.Import(f, s)
	if err != nil {
		return err
	}
	for _, e := range res.Errors {
		logger.Warn("row skipped", zap.Int("row", e.Row), zap.String("reason", e.Message))
	}

	entries := s.Entries()
	data := report.Build(entries, opts.meta, time.Now())
	for _, r := range data.Rows {
		if r.Flagged {
			fmt.Fprintf(out, "%3d  %-16s  %-48s  x%-3d  UNRESOLVED: %s\n", r.Index, r.Label, r.Measurements, r.Quantity, r.Remarks)
			continue
		}
		fmt.Fprintf(out, "%3d  %-16s  %-48s  x%-3d  %8s m3  %8s m3\n", r.Index, r.Label, r.Measurements, r.Quantity,
			units.FormatVolume(r.UnitVolume), units.FormatVolume(r.TotalVolume))
	}
	fmt.Fprintf(out, "Total required volume: %s m3 (%d rows, %d unresolved, %d skipped)\n",
		units.FormatVolume(data.Summary.TotalVolume), data.Summary.RowCount, data.Summary.Flagged, len(res.Errors))

	if opts.pdfOut != "" {
		b, err := report.GeneratePDF(data)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.pdfOut, b, 0o644); err != nil {
			return err
		}
		logger.Info("pdf report written", zap.String("path", opts.pdfOut))
	}
	if opts.xlsxOut != "" {
		b, err := report.GenerateExcel(data)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.xlsxOut, b, 0o644); err != nil {
			return err
		}
		logger.Info("xlsx report written", zap.String("path", opts.xlsxOut))
	}
	return nil
}

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert VALUE FROM TO",
		Short: "Convert a length between supported units",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("value: %w", err)
			}
			from, err := units.Parse(args[1])
			if err != nil {
				return err
			}
			to, err := units.Parse(args[2])
			if err != nil {
				return err
			}
			res, err := units.Convert(v, from, to)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", units.FormatLength(res), to.Abbrev())
			return nil
		},
	}
}
