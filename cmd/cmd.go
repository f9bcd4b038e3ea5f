package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/frahmantamala/crm-console/internal"
	"github.com/frahmantamala/crm-console/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "crm-console",
	Short: "CRM Console",
	Long:  `Terminal console and JSON server for the CRM backend: orders, inventory, dashboard and users.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		logger.Setup(cfg.App.Env, cfg.Logging.Level, cfg.Logging.Format)
		appConfig = cfg
		return nil
	},
	SilenceUsage: true,
}

// appConfig is set by the root command before any subcommand runs.
var appConfig *internal.Config

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, internal.UserMessage(err))
		os.Exit(1)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("api.base_url", "http://localhost:5000")
	v.SetDefault("api.path_prefix", "/api/crm")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.source", "crm-console.db")
	v.SetDefault("store.max_open_conns", 1)
	v.SetDefault("store.max_idle_conns", 1)
	v.SetDefault("store.conn_max_lifetime", time.Hour)
	v.SetDefault("polling.orders_interval", 5*time.Second)
	v.SetDefault("polling.dashboard_interval", 10*time.Second)
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.allowed_origins", "*")
	v.SetDefault("http_server.read_header_timeout", 5*time.Second)
	v.SetDefault("http_server.read_timeout", 15*time.Second)
	v.SetDefault("http_server.write_timeout", 30*time.Second)
	v.SetDefault("http_server.idle_timeout", 60*time.Second)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.session_ttl", 5*time.Minute)
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
}

// loadConfig reads config.yml from path, which may be a directory or a file.
// A missing file is fine; defaults and CRM_* variables still apply. A .env
// file in the working directory is loaded first.
func loadConfig(path string) (*internal.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path == "" {
		path = "."
	}
	if filepath.Ext(path) != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(path)
		v.SetConfigName("config")
		v.SetConfigType("yml")
	}
	v.SetEnvPrefix("CRM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg internal.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}

	return &cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "config file or directory holding config.yml")

	rootCmd.AddCommand(httpServerCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(stockCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(reportCmd)
}
