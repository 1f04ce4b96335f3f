package main

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"MediTrack/database"
	"MediTrack/reports"
	"MediTrack/repositories"
	"MediTrack/utils"
)

var reportFlags = []string{"q", "start", "end", "days", "min_sys", "min_dia", "min_glu", "min_hba1c"}

func newReportCmd() *cobra.Command {
	var mailTo []string

	cmd := &cobra.Command{
		Use:       "report <hypertension|glycemia|overdue>",
		Short:     "Export a report as CSV",
		Long:      "Export a report as CSV to stdout, or mail it as an attachment with --mail-to.",
		Args:      cobra.ExactValidArgs(1),
		ValidArgs: []string{"hypertension", "glycemia", "overdue"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.InitDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			// report queries never touch the patient cache
			store := repositories.NewReportStore(
				repositories.NewPatientRepository(db, nil),
				repositories.NewRecordRepository(db),
			)
			engine := reports.NewEngine(store, cfg.ReportConfig())

			values := url.Values{}
			for _, name := range reportFlags {
				if v, _ := cmd.Flags().GetString(name); v != "" {
					values.Set(name, v)
				}
			}
			filter := reports.ParseFilter(values, engine.Config())

			filename, data, err := exportCSV(cmd.Context(), engine, args[0], filter)
			if err != nil {
				return err
			}

			if len(mailTo) == 0 {
				_, err := os.Stdout.Write(data)
				return err
			}

			mailer, err := utils.NewReportMailer(cfg)
			if err != nil {
				return err
			}
			subject := fmt.Sprintf("MediTrack %s report", args[0])
			if err := mailer.SendReport(mailTo, subject, filename, data); err != nil {
				return err
			}
			log.Info().Str("report", args[0]).Strs("to", mailTo).Msg("report mailed")
			return nil
		},
	}

	for _, name := range reportFlags {
		cmd.Flags().String(name, "", strings.ReplaceAll(name, "_", " ")+" filter")
	}
	cmd.Flags().StringSliceVar(&mailTo, "mail-to", nil, "mail the CSV to these addresses instead of printing it")
	return cmd
}

func exportCSV(ctx context.Context, engine *reports.Engine, kind string, f reports.Filter) (string, []byte, error) {
	var buf bytes.Buffer
	switch kind {
	case "hypertension":
		rows, err := engine.Hypertension(ctx, f)
		if err != nil {
			return "", nil, err
		}
		err = reports.WriteHypertensionCSV(&buf, rows)
		return reports.HypertensionFilename, buf.Bytes(), err
	case "glycemia":
		rows, err := engine.Glycemia(ctx, f)
		if err != nil {
			return "", nil, err
		}
		err = reports.WriteGlycemiaCSV(&buf, rows)
		return reports.GlycemiaFilename, buf.Bytes(), err
	case "overdue":
		rows, err := engine.Overdue(ctx, f)
		if err != nil {
			return "", nil, err
		}
		err = reports.WriteOverdueCSV(&buf, rows)
		return reports.OverdueFilename(f.Days), buf.Bytes(), err
	default:
		return "", nil, fmt.Errorf("unknown report %q", kind)
	}
}
