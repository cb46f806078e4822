package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jklemm/hearthside/internal/database"
	"github.com/jklemm/hearthside/internal/logging"
	"github.com/jklemm/hearthside/internal/push"
	"github.com/jklemm/hearthside/internal/server"

	"github.com/joho/godotenv"
)

func main() {
	genKeys := flag.Bool("generate-vapid-keys", false, "print a fresh VAPID key pair and exit")
	flag.Parse()

	if *genKeys {
		pub, priv, err := push.GenerateVAPIDKeys()
		if err != nil {
			log.Fatalf("generate VAPID keys: %v", err)
		}
		fmt.Printf("HEARTHSIDE_VAPID_PUBLIC_KEY=%s\nHEARTHSIDE_VAPID_PRIVATE_KEY=%s\n", pub, priv)
		return
	}

	// .env is optional; real deployments set the environment directly.
	godotenv.Load()

	logger := logging.Setup(os.Getenv("HEARTHSIDE_LOG_LEVEL"))

	port := os.Getenv("HEARTHSIDE_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("HEARTHSIDE_DB_PATH")
	if dbPath == "" {
		dbPath = "hearthside.db"
	}

	pushCfg := push.Config{
		VAPIDPublicKey:  os.Getenv("HEARTHSIDE_VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: os.Getenv("HEARTHSIDE_VAPID_PRIVATE_KEY"),
		Subscriber:      os.Getenv("HEARTHSIDE_PUSH_CONTACT"),
	}
	if !pushCfg.Valid() {
		log.Fatal("HEARTHSIDE_VAPID_PUBLIC_KEY, HEARTHSIDE_VAPID_PRIVATE_KEY, and HEARTHSIDE_PUSH_CONTACT are required (run with -generate-vapid-keys to create a pair)")
	}

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	srv := server.New(db, pushCfg, logger)

	ctx := context.Background()
	srv.Scheduler().Start(ctx)

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := srv.SessionStore().DeleteExpired(); err != nil {
					logger.Error("cleanup expired sessions", "error", err)
				}
			case <-cleanupCtx.Done():
				return
			}
		}
	}()

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("hearthside running", "addr", "http://localhost:"+port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	srv.Scheduler().Stop()
}
