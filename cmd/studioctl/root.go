package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/studio-api/internal/dashboard"
	"github.com/noah-isme/studio-api/internal/service"
	"github.com/noah-isme/studio-api/pkg/client"
	"github.com/noah-isme/studio-api/pkg/config"
	"github.com/noah-isme/studio-api/pkg/logger"
)

const defaultAPIURL = "http://localhost:3000/api"

type app struct {
	apiURL   string
	timeout  time.Duration
	verbose  bool
	studio   string
	timezone string
	logger   *zap.Logger
	store    *dashboard.Store
	out      io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{out: os.Stdout}

	root := &cobra.Command{
		Use:           "studioctl",
		Short:         "Manage students, classes and finances of the studio",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.out = cmd.OutOrStdout()
			a.logger = logger.NewCLI(a.verbose)
			location, err := (&config.Config{Timezone: a.timezone}).Location()
			if err != nil {
				return err
			}
			api := client.New(a.apiURL, client.WithHTTPClient(newHTTPClient(a.timeout)))
			a.store = dashboard.NewStore(api, service.ExportConfig{StudioName: a.studio, Location: location}, a.logger)
			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout)
			defer cancel()
			a.store.Load(ctx)
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	apiURL := os.Getenv("STUDIO_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	root.PersistentFlags().StringVar(&a.apiURL, "api", apiURL, "API base URL (env STUDIO_API_URL)")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 60*time.Second, "timeout for each action")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output")
	root.PersistentFlags().StringVar(&a.studio, "studio", config.DefaultStudioName, "studio name printed on exports")
	root.PersistentFlags().StringVar(&a.timezone, "timezone", config.DefaultTimezone, "IANA zone for export dates")

	root.AddCommand(
		newStudentsCmd(a),
		newSchedulesCmd(a),
		newTransactionsCmd(a),
		newStatsCmd(a),
		newDraftCmd(a),
		newExportCmd(a),
	)
	return root
}

func (a *app) ctx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.timeout)
}

func (a *app) table(header string) *tabwriter.Writer {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, header)
	return w
}

func (a *app) done(message string) {
	fmt.Fprintln(a.out, message)
}
