package cmd

import (
	"context"
	"fmt"

	"mobisync/internal/app/client"

	"github.com/spf13/cobra"
)

var payloadFile string

var safetyCmd = &cobra.Command{
	Use:   "safety",
	Short: "Статистика аварийности",
}

var safetySubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Загрузить годовую статистику аварийности из файла JSON или YAML",
	Long: `Файл содержит пакет вида:

  city_id: X
  source: nhtsa
  records:
    - year: 2020
      fatalities: 3
      injuries: 10`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		payload, err := client.ReadPayload(payloadFile)
		if err != nil {
			return fmt.Errorf("ошибка чтения пакета: %w", err)
		}

		return runJob(cmd, func(ctx context.Context) (*client.Response, error) {
			return api.SubmitSafety(ctx, payload)
		})
	},
}

func init() {
	safetySubmitCmd.Flags().StringVarP(&payloadFile, "file", "f", "", "файл пакета (.json, .yaml, .yml)")
	_ = safetySubmitCmd.MarkFlagRequired("file")

	safetyCmd.AddCommand(safetySubmitCmd)
}
