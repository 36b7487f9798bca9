package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"learnhub/config"
	"learnhub/database"
	"learnhub/routers"
	"learnhub/utils"
)

func main() {
	cfg := config.LoadConfig()
	log := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)
	entry := logrus.NewEntry(log)

	db, err := database.ConnectDb(cfg, entry)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer database.Close()

	server, err := routers.NewServer(cfg, db, log)
	if err != nil {
		log.WithError(err).Fatal("failed to build application")
	}

	digest, err := utils.InitializeCertificateDigest(cfg.DigestCron, cfg.EducatorEmail, server.Certificates, utils.NewMailer(cfg, entry), entry)
	if err != nil {
		log.WithError(err).Fatal("invalid CERTIFICATE_DIGEST_CRON")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := server.App.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Fatal("server stopped")
		}
	}()
	log.Infof("Server is running on port %s", cfg.Port)

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if digest != nil {
		<-digest.Stop().Done()
	}
	if err := server.App.ShutdownWithContext(shutdownCtx); err != nil {
		log.WithError(err).Error("failed to shutdown gracefully")
	}
	log.Info("server stopped")
}
