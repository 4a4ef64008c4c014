package cmd

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/corey/intentd/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "intentd",
	Short: "intentd: entity recognition for analytics queries",
	Long:  "Tags manufacturers, brands, metrics and time periods in query text, with fuzzy matching for typos.",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

var (
	artifactsDir string
	cachePath    string
	refreshSpec  string
)

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recognizeCmd)
	rootCmd.AddCommand(artifactsCmd)
	for _, c := range []*cobra.Command{serveCmd, recognizeCmd, artifactsCmd} {
		c.Flags().StringVar(&artifactsDir, "artifacts", "", "artifacts directory (default $INTENTD_ARTIFACTS_DIR or ./artifacts)")
		c.Flags().StringVar(&cachePath, "cache", "", "bolt cache file (default $INTENTD_CACHE_PATH, empty disables)")
		c.Flags().StringVar(&refreshSpec, "refresh", "", `cron spec for periodic refresh ("-" disables)`)
	}
}

// appConfig builds the app config from flags and INTENTD_ env vars.
// Flags win; a .env file fills in anything unset.
func appConfig() app.Config {
	_ = godotenv.Load()
	cfg := app.Config{
		ArtifactsDir: artifactsDir,
		CachePath:    cachePath,
		RefreshSpec:  refreshSpec,
	}
	if cfg.ArtifactsDir == "" {
		cfg.ArtifactsDir = envOr("INTENTD_ARTIFACTS_DIR", "artifacts")
	}
	if cfg.CachePath == "" {
		cfg.CachePath = os.Getenv("INTENTD_CACHE_PATH")
	}
	if cfg.RefreshSpec == "" {
		cfg.RefreshSpec = os.Getenv("INTENTD_REFRESH_SPEC")
	}
	if v := os.Getenv("INTENTD_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.CacheTTL = d
		}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
