package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/fichador/fichador-backend/internal/config"
	"github.com/fichador/fichador-backend/internal/domain/schedule"
	appHTTP "github.com/fichador/fichador-backend/internal/handler/http"
	"github.com/fichador/fichador-backend/internal/pkg/cron"
	"github.com/fichador/fichador-backend/internal/pkg/database"
	"github.com/fichador/fichador-backend/internal/pkg/jwt"
	"github.com/fichador/fichador-backend/internal/pkg/sheets"
	"github.com/fichador/fichador-backend/internal/repository/postgresql"
	serviceAuth "github.com/fichador/fichador-backend/internal/service/auth"
	historyService "github.com/fichador/fichador-backend/internal/service/history"
	syncService "github.com/fichador/fichador-backend/internal/service/sync"
	workdayService "github.com/fichador/fichador-backend/internal/service/workday"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	workdayRepo := postgresql.NewWorkdayRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	policy := schedule.DefaultPolicy()

	var sheetsClient sheets.Service
	if cfg.Sheets.Enabled {
		credentials, err := os.ReadFile(cfg.Sheets.CredentialsFile)
		if err != nil {
			log.Fatal("Failed to read sheets credentials:", err)
		}
		client, err := sheets.NewClient(context.Background(), credentials, cfg.Sheets.SpreadsheetID, cfg.Sheets.SheetName)
		if err != nil {
			log.Fatal("Failed to initialize sheets client:", err)
		}
		sheetsClient = client
	}

	authSvc := serviceAuth.NewAuthService(userRepo, JWTService)
	workdaySvc := workdayService.NewWorkdayService(workdayRepo, policy, cfg.Workday.PendingTTL)
	historySvc := historyService.NewHistoryService(workdayRepo, policy)
	syncSvc := syncService.NewSyncService(workdayRepo, userRepo, sheetsClient)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc)
	workdayHandler := appHTTP.NewWorkdayHandler(workdaySvc)
	historyHandler := appHTTP.NewHistoryHandler(historySvc)
	syncHandler := appHTTP.NewSyncHandler(syncSvc)
	scheduleHandler := appHTTP.NewScheduleHandler(policy)

	if cfg.Sheets.Enabled {
		scheduler := cron.NewScheduler()
		cron.NewSyncJobs(syncSvc, cfg.Sheets.SyncInterval).RegisterJobs(scheduler)
		scheduler.Start()
		defer scheduler.Stop()
	}

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{Env: cfg.App.Env, AllowedOrigins: cfg.App.AllowedOrigins},
		JWTService,
		authHandler,
		workdayHandler,
		historyHandler,
		syncHandler,
		scheduleHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
