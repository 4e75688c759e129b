package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/formwork-contracts/internal/ai"
	"github.com/nurpe/formwork-contracts/internal/auth"
	"github.com/nurpe/formwork-contracts/internal/config"
	"github.com/nurpe/formwork-contracts/internal/db"
	"github.com/nurpe/formwork-contracts/internal/excel"
	httphandler "github.com/nurpe/formwork-contracts/internal/http"
	"github.com/nurpe/formwork-contracts/internal/http/middleware"
	"github.com/nurpe/formwork-contracts/internal/logger"
	"github.com/nurpe/formwork-contracts/internal/pdf"
	"github.com/nurpe/formwork-contracts/internal/repository"
	"github.com/nurpe/formwork-contracts/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)
	ctx := context.Background()

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	store := db.NewCollectionStore(database)
	contractRepo, err := repository.NewContractRepository(ctx, store)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load contract collection")
	}
	partyRepo, err := repository.NewPartyRepository(ctx, store)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load party directories")
	}

	pdfGenerator, err := pdf.NewGenerator(cfg.PDF.FontPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init pdf generator")
	}
	excelGenerator := excel.NewGenerator()

	contractService := service.NewContractService(contractRepo, partyRepo, pdfGenerator, excelGenerator)

	drafter, err := ai.NewDrafter(ctx, cfg.GenAI.APIKey, cfg.GenAI.Model)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init clause drafter")
	}
	if !drafter.Enabled() {
		log.Warn().Msg("GENAI_API_KEY is not set, clause drafting is disabled")
	}

	handler := httphandler.NewHandler(contractService, drafter, log)

	var authMiddleware gin.HandlerFunc
	if cfg.Auth.AccessSecret != "" {
		authMiddleware = middleware.Auth(auth.NewParser(cfg.Auth.AccessSecret))
	}
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting contracts service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
