package cmd

import (
	"context"

	"mobisync/internal/app/client"

	"github.com/spf13/cobra"
)

var (
	routesParams client.RoutesParams
	statsLimit   int
	airDate      string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Запустить задачу синхронизации",
}

var runRoutesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Синхронизировать маршруты активностей за окно дат",
	Example: `  syncctl run routes --days 30
  syncctl run routes --start 2026-07-01 --end 2026-07-31 --per-page 200`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runJob(cmd, func(ctx context.Context) (*client.Response, error) {
			return api.SyncRoutes(ctx, routesParams)
		})
	},
}

var runStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Синхронизировать глобальную статистику и лидерборд",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runJob(cmd, func(ctx context.Context) (*client.Response, error) {
			return api.SyncStats(ctx, statsLimit)
		})
	},
}

var runCompaniesCmd = &cobra.Command{
	Use:   "companies",
	Short: "Синхронизировать компании и объекты",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runJob(cmd, func(ctx context.Context) (*client.Response, error) {
			return api.SyncCompanies(ctx)
		})
	},
}

var runAirQualityCmd = &cobra.Command{
	Use:   "air-quality",
	Short: "Синхронизировать суточные сводки качества воздуха",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runJob(cmd, func(ctx context.Context) (*client.Response, error) {
			return api.SyncAirQuality(ctx, airDate)
		})
	},
}

func runJob(cmd *cobra.Command, call func(ctx context.Context) (*client.Response, error)) error {
	if err := requireSecret(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	resp, err := call(ctx)
	if resp != nil {
		if perr := printReport(cmd.OutOrStdout(), resp, jsonOutput); perr != nil {
			return perr
		}
	}
	return err
}

func init() {
	runRoutesCmd.Flags().IntVar(&routesParams.Days, "days", 0, "глубина окна в днях (1..365)")
	runRoutesCmd.Flags().StringVar(&routesParams.Start, "start", "", "начало окна YYYY-MM-DD")
	runRoutesCmd.Flags().StringVar(&routesParams.End, "end", "", "конец окна YYYY-MM-DD включительно")
	runRoutesCmd.Flags().IntVar(&routesParams.PerPage, "per-page", 0, "размер страницы upstream (1..500)")
	runRoutesCmd.MarkFlagsRequiredTogether("start", "end")
	runRoutesCmd.MarkFlagsMutuallyExclusive("days", "start")

	runStatsCmd.Flags().IntVar(&statsLimit, "limit", 0, "количество записей лидерборда")

	runAirQualityCmd.Flags().StringVar(&airDate, "date", "", "дата YYYY-MM-DD, по умолчанию вчера (UTC)")

	runCmd.AddCommand(runRoutesCmd, runStatsCmd, runCompaniesCmd, runAirQualityCmd)
}
