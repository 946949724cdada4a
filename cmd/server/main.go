package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"slices"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/tradeops/pricing-rules-service/internal/system/config"
	"github.com/tradeops/pricing-rules-service/internal/system/log"
	"github.com/tradeops/pricing-rules-service/internal/system/managers"
)

const configFile = "repository/conf/deployment.yaml"

func main() {
	prsHome := getPRSHome()

	envFiles, _ := filepath.Glob("config/*.env")
	_ = godotenv.Load(envFiles...)

	// Load the configuration file.
	prsConfig, err := config.LoadConfig(prsHome, configFile)
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize runtime configurations.
	if err := config.InitializePRSRuntime(prsHome, prsConfig); err != nil {
		stdlog.Fatalf("Failed to initialize runtime configuration: %v", err)
	}

	// Initialize logger.
	if err := log.Init(prsConfig.Log.LogLevel); err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := log.GetLogger()

	validateDataSourceConfig(prsConfig)

	serverAddr := fmt.Sprintf("%s:%d", prsConfig.Addr.Host, prsConfig.Addr.Port)
	mux := enableCORS(initMultiplexer(), prsConfig.Auth.CORSAllowedOrigins)

	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Fatal("Failed to start listener", log.Error(err))
	}
	logger.Info("Pricing rules service started", log.String("address", serverAddr))

	server := &http.Server{Handler: mux}
	if err := server.Serve(ln); err != nil {
		logger.Fatal("Failed to serve requests", log.Error(err))
	}
}

// validateDataSourceConfig fails fast on an incomplete database configuration.
func validateDataSourceConfig(prsConfig *config.Config) {

	ds := prsConfig.DataSource
	if ds.Hostname == "" || ds.Port == 0 || ds.Username == "" || ds.Password == "" || ds.Name == "" {
		stdlog.Fatal("One or more PostgreSQL configuration values are missing")
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer() *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	if err := serviceManager.RegisterServices(); err != nil {
		log.GetLogger().Fatal("Failed to register the services", log.Error(err))
	}

	return mux
}

// enableCORS allows the configured origins, or any origin when none are
// configured.
func enableCORS(next http.Handler, allowedOrigins []string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := "*"
		if len(allowedOrigins) > 0 {
			origin = allowedOrigins[0]
			if requestOrigin := r.Header.Get("Origin"); requestOrigin != "" &&
				slices.Contains(allowedOrigins, requestOrigin) {
				origin = requestOrigin
			}
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getPRSHome() string {

	projectHomeFlag := flag.String("prsHome", "", "Path to the pricing rules service home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		return *projectHomeFlag
	}

	dir, err := os.Getwd()
	if err != nil {
		stdlog.Fatalf("Failed to get current working directory: %v", err)
	}
	return dir
}
