package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"sheetfetch/internal/components/chrono"
	"sheetfetch/internal/components/telemetry"
	"sheetfetch/internal/errlog"
	"sheetfetch/internal/fetch"
	"sheetfetch/internal/formulas"
	"sheetfetch/internal/serviceutil"
	"sheetfetch/internal/sheet"
	"sheetfetch/internal/table"

	"github.com/spf13/cobra"
)

var (
	configPath   string
	outputFormat string
	verbose      bool
	dumpDir      string
)

// invocation is the state shared by the commands of one run.
type invocation struct {
	config    Config
	tel       telemetry.API
	errs      *errlog.Accumulator
	clock     chrono.API
	transport fetch.Transport
	telemetry telemetry.Telemetry
}

type invocationKey struct{}

// withInvocation attaches inv to the context of cmd, the command and its hooks read it back with
// invocationFrom.
func withInvocation(cmd *cobra.Command, inv *invocation) {
	cmd.SetContext(context.WithValue(cmd.Context(), invocationKey{}, inv))
}

func invocationFrom(ctx context.Context) *invocation {
	inv, ok := ctx.Value(invocationKey{}).(*invocation)
	if !ok {
		panic("command context carries no invocation")
	}
	return inv
}

var rootCmd = &cobra.Command{
	Use:   "sheetfetch",
	Short: "sheetfetch pulls marketing data from third party apis and reshapes it into tables.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)

		config, err := loadConfig(configPath)
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}

		var tel telemetry.API = telemetry.SlogAPI{}
		var otelTelemetry telemetry.Telemetry
		if config.Telemetry.Enabled() {
			otelTelemetry, err = telemetry.Setup(cmd.Context(), "sheetfetch", config.Telemetry)
			if err != nil {
				slog.Warn("failed to setup telemetry, continuing without it", "err", err)
			} else {
				otelApi, err := telemetry.NewOtelAPI(tel)
				if err != nil {
					serviceutil.Fatal("failed to create otel instruments", err)
				}
				tel = otelApi
			}
		}

		clock, err := chrono.NewStandardImpl(config.Timezone)
		if err != nil {
			serviceutil.Fatal("failed to load timezone", err)
		}

		transportOpts := config.Http.TransportOptions()
		if dumpDir != "" {
			transportOpts.DumpDir = dumpDir
		}
		transport, err := fetch.NewRestyTransport(transportOpts, tel)
		if err != nil {
			serviceutil.Fatal("failed to create http client", err)
		}

		withInvocation(cmd, &invocation{
			config:    config,
			tel:       tel,
			errs:      errlog.New(),
			clock:     clock,
			transport: transport,
			telemetry: otelTelemetry,
		})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		err := invocationFrom(cmd.Context()).telemetry.Shutdown(context.Background())
		if err != nil {
			slog.Warn("failed to flush telemetry", "err", err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "sheetfetch.json5", "The json5 config file, a sibling <name>.local.json5 overrides it.")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", string(sheet.OutputPretty), "The output format: pretty, csv, markdown, html or json.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug information.")
	rootCmd.PersistentFlags().StringVar(&dumpDir, "dump", "", "Write every http exchange into this directory, it is emptied first.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (inv *invocation) newSession() *fetch.Session {
	return fetch.NewSession(inv.transport, inv.tel)
}

// guard evaluates fn like a spreadsheet formula: problems become the result instead of an exit.
func (inv *invocation) guard(fn func() (table.Table, error)) table.Table {
	return formulas.Guard(inv.errs, fn)
}

// output renders a table whose first row is the header.
func output(cmd *cobra.Command, t table.Table) {
	err := sheet.Write(cmd.OutOrStdout(), t, sheet.OutputFormat(outputFormat))
	if err != nil {
		serviceutil.Fatal("failed to write output", err)
	}
}

// outputRows renders a table that has no header row.
func outputRows(cmd *cobra.Command, t table.Table) {
	err := sheet.WriteRows(cmd.OutOrStdout(), t, sheet.OutputFormat(outputFormat))
	if err != nil {
		serviceutil.Fatal("failed to write output", err)
	}
}

func outputValue(cmd *cobra.Command, fn func() (table.Cell, error)) {
	inv := invocationFrom(cmd.Context())
	outputRows(cmd, inv.guard(func() (table.Table, error) {
		cell, err := fn()
		if err != nil {
			return nil, err
		}
		return table.Table{table.Row{cell}}, nil
	}))
}
