// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the markitdown-gateway CLI.
// The gateway wraps the markitdown engine behind an HTTP API; the CLI
// also offers one-shot local conversion for smoke-testing the engine.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/markitdown-gateway/internal/secrets"
	"github.com/pdiddy/markitdown-gateway/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// defaultToken is the insecure placeholder the service historically
// shipped with. serve warns loudly when it is still in effect.
const defaultToken = "your-secret-token-here"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the markitdown-gateway CLI.
var rootCmd = &cobra.Command{
	Use:   "markitdown-gateway",
	Short: "HTTP gateway around the markitdown document-to-Markdown engine",
	Long: `markitdown-gateway exposes the markitdown conversion engine over HTTP:
clients upload a document with a bearer token and receive its Markdown
rendition as JSON. The engine itself (format detection, OCR,
transcription) is external; the gateway stages uploads, invokes it, and
maps results and failures onto the API.

Run the server with "serve", or convert local files directly with
"convert".`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env overlays the process environment before viper reads it.
		_ = godotenv.Load()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./markitdown-gateway.yaml or ~/.config/markitdown-gateway/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("markitdown-gateway")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "markitdown-gateway"))
		}
	}

	viper.SetEnvPrefix("MARKITDOWN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.listen", "0.0.0.0:8003")
	viper.SetDefault("server.scratch_dir", "")
	viper.SetDefault("server.max_upload_bytes", 0)
	viper.SetDefault("server.shutdown_timeout", 30*time.Second)
	viper.SetDefault("conversion.backend", string(types.BackendCLI))
	viper.SetDefault("conversion.binary_path", "markitdown")
	viper.SetDefault("conversion.image", "markitdown:latest")
	viper.SetDefault("conversion.timeout", 5*time.Minute)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadGatewayConfig assembles the process configuration from viper and
// the secrets directory. Token precedence: MARKITDOWN_API_TOKEN (or the
// api_token config key), then .secrets/api-token, then the insecure
// placeholder.
func loadGatewayConfig() types.GatewayConfig {
	token := viper.GetString("api_token")
	if token == "" {
		token = loadedSecrets[secrets.TokenKey]
	}
	if token == "" {
		token = defaultToken
	}

	return types.GatewayConfig{
		Server: types.ServerConfig{
			Listen:          viper.GetString("server.listen"),
			ScratchDir:      viper.GetString("server.scratch_dir"),
			MaxUploadBytes:  viper.GetInt64("server.max_upload_bytes"),
			ShutdownTimeout: viper.GetDuration("server.shutdown_timeout"),
		},
		Conversion: types.ConversionConfig{
			Backend:    types.ConversionBackend(viper.GetString("conversion.backend")),
			BinaryPath: viper.GetString("conversion.binary_path"),
			Image:      viper.GetString("conversion.image"),
			Timeout:    viper.GetDuration("conversion.timeout"),
		},
		Auth: types.AuthConfig{Token: token},
	}
}

// newLogger builds the process logger, honouring the LOG_LEVEL
// environment variable (default info).
func newLogger(out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if lvl, err := logrus.ParseLevel(strings.TrimSpace(os.Getenv("LOG_LEVEL"))); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
