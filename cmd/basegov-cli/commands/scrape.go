package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"basegov/lib/configutil"
	"basegov/lib/restyutil"
	"basegov/lib/telemetry"
	"basegov/services/contracts"

	"github.com/mazen160/go-random"
	"github.com/spf13/cobra"
)

var scrapeOutput *string

func init() {
	scrapeOutput = scrapeCmd.Flags().StringP("output", "o", "", "Output CSV path, overrides the config value.")
	rootCmd.AddCommand(scrapeCmd)
}

func fatal(message string, err error) {
	slog.Error(message, "err", err.Error())
	os.Exit(1)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [-o <path/to/report.csv>]",
	Short: "Runs the contract extraction pipeline and writes the CSV report.",
	Run: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)

		tel, err := telemetry.SetupFromEnv(cmd.Context(), "basegov-cli")
		if err != nil {
			fatal("failed to setup telemetry", err)
		}
		defer tel.Shutdown(context.Background())
		telemetry.InstrumentPerfStats(cmd.Context())

		cfg, err := configutil.ReadConfig[contracts.Config]("config.json5")
		if err != nil {
			fatal("failed to read config", err)
		}
		if *scrapeOutput != "" {
			cfg.Output = *scrapeOutput
		}
		err = cfg.Validate()
		if err != nil {
			fatal("invalid config", err)
		}

		runID, err := random.String(8)
		if err != nil {
			fatal("failed to generate run id", err)
		}
		logger := slog.Default().With("run_id", runID)
		slog.SetDefault(logger)

		slog.Info("starting extraction",
			"keywords", len(cfg.Keywords),
			"districts", len(cfg.Districts),
			"output", cfg.Output)

		client, err := contracts.NewPortalClient(cmd.Context(), &cfg)
		if err != nil {
			fatal("failed to initialize portal client", err)
		}
		if *verbose {
			client.SetRestyInstrumentOutput(
				restyutil.NewFilesystemOutput(".dev/resty/basegov"),
			)
		}

		t1 := time.Now()
		result, err := contracts.Run(cmd.Context(), client, &cfg)
		if err != nil {
			fatal("extraction failed", err)
		}

		err = contracts.ExportCSV(cfg.Output, result.Records)
		if err != nil {
			fatal("failed to write report", err)
		}
		slog.Info("report written",
			"path", cfg.Output,
			"rows", len(result.Records),
			"seconds", time.Since(t1).Seconds())

		if cfg.Notify != nil {
			err = contracts.SendReport(cmd.Context(), *cfg.Notify, cfg.Output, result.Stats)
			if err != nil {
				fatal("failed to send report email", err)
			}
			slog.Info("report emailed", "recipients", fmt.Sprint(cfg.Notify.To))
		}
	},
}
