package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"mobisync/internal/app/client"
	"mobisync/internal/app/client/config"
	"mobisync/internal/utils/logger"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
	"golang.org/x/term"
)

var (
	cfgFile    string
	cfg        *config.Config
	log        *slog.Logger
	api        *client.Client
	debug      bool
	jsonOutput bool
	serverURL  string
	secret     string
)

var rootCmd = &cobra.Command{
	Use:   "syncctl",
	Short: "syncctl - запуск задач синхронизации mobisync",
	Long: `syncctl вызывает HTTP задачи сервиса синхронизации: маршруты, статистику,
компании, качество воздуха и загрузку статистики аварийности.

Секрет берется из --secret, затем из SYNC_SECRET, иначе запрашивается в терминале.`,
	PersistentPreRunE: setupClient,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupClient(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	if serverURL != "" {
		cfg.Server = strings.TrimRight(serverURL, "/")
	}
	if secret != "" {
		cfg.Secret = secret
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Вывод команды идет в stdout, поэтому логи только в режиме отладки
	if debug {
		log = logger.New(cfg.Env)
	} else {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	api = client.NewHTTPClient(cfg, log)
	return nil
}

// requireSecret запрашивает секрет в терминале, если он не задан флагом или окружением
func requireSecret() error {
	if cfg.Secret != "" {
		return nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("секрет не задан: используйте --secret или SYNC_SECRET")
	}

	fmt.Fprint(os.Stderr, "Секрет синхронизации: ")
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("ошибка чтения секрета: %w", err)
	}

	s := strings.TrimSpace(string(raw))
	if s == "" {
		return fmt.Errorf("секрет не может быть пустым")
	}
	cfg.Secret = s
	api.SetSecret(s)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл (по умолчанию ~/.mobisync/syncctl.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "вывод ответа сервера в формате JSON")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "URL сервера синхронизации")
	rootCmd.PersistentFlags().StringVar(&secret, "secret", "", "общий секрет задач")

	rootCmd.AddCommand(runCmd, safetyCmd, healthCmd)
}
