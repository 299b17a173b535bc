// Command string-mcp-http serves the STRING tool surface over HTTP.
package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"string-mcp/internal/server"
	"string-mcp/internal/stringdb"
)

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Error("load .env", "error", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := server.Config{
		Port:   getEnv("PORT", "3000"),
		Token:  os.Getenv("MCP_TOKEN"),
		String: stringConfigFromEnv(),
	}
	if cfg.Token == "" {
		logger.Warn("MCP_TOKEN not set; endpoints will be open")
	}

	bridge := stringdb.New(cfg.String, nil)
	srv := server.New(cfg, bridge)

	certFile := os.Getenv("TLS_CERT_FILE")
	keyFile := os.Getenv("TLS_KEY_FILE")
	if certFile != "" && keyFile != "" {
		logger.Info("starting HTTPS server", "port", cfg.Port)
		if err := http.ListenAndServeTLS(":"+cfg.Port, certFile, keyFile, srv.Router()); err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}
	logger.Info("starting HTTP server", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, srv.Router()); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func stringConfigFromEnv() stringdb.Config {
	cfg := stringdb.DefaultConfig()
	if v := os.Getenv("STRING_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("STRING_VERSION_URL"); v != "" {
		cfg.VersionURL = v
	}
	if v := os.Getenv("STRING_CALLER_IDENTITY"); v != "" {
		cfg.CallerIdentity = v
	}
	if v := os.Getenv("STRING_REQUEST_DELAY"); v != "" {
		if secs, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RequestDelay = time.Duration(secs * float64(time.Second))
		}
	}
	return cfg
}
