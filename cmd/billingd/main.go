package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Princy-soni14/billing-reminder-system/internal/config"
	"github.com/Princy-soni14/billing-reminder-system/internal/server"
	"github.com/Princy-soni14/billing-reminder-system/internal/store"
)

var (
	port    = flag.Int("port", 0, "server port (overrides config.toml)")
	devMode = flag.Bool("dev", false, "development mode")
	dataDir = flag.String("dataDir", "", "data directory (overrides config.toml)")
)

func main() {
	_ = godotenv.Load()
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if v := os.Getenv("BILLING_LOG_LEVEL"); v != "" {
		if level, err := logrus.ParseLevel(v); err == nil {
			log.SetLevel(level)
		}
	}

	fmt.Println("==========================================")
	fmt.Println("  Billing Reminder System")
	fmt.Println("==========================================")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Warn("failed to load config, using defaults")
		cfg = config.DefaultConfig()
	}

	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	dir, err := config.EnsureDataDir(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to create data directory")
	}
	fmt.Printf("data directory: %s\n", dir)

	st, err := store.New(config.DBPath(cfg, dir))
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer st.Close()

	srv := server.NewServer(cfg, st, log)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		fmt.Printf("listening on http://localhost:%d\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.WithError(err).Fatal("server failed")
		}
	}()

	fmt.Println("\npress Ctrl+C to stop...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nshutting down...")
}
