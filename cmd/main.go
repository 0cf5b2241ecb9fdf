package main

import (
  "fmt"
  "os"
  "github.com/yungbote/dealflow-backend/internal/logger"
  "github.com/yungbote/dealflow-backend/internal/utils"
  "github.com/yungbote/dealflow-backend/internal/db"
  "github.com/yungbote/dealflow-backend/internal/repos"
  "github.com/yungbote/dealflow-backend/internal/services"
  "github.com/yungbote/dealflow-backend/internal/handlers"
  "github.com/yungbote/dealflow-backend/internal/middleware"
  "github.com/yungbote/dealflow-backend/internal/server"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  apiKey := utils.GetEnv("API_KEY", "", log)
  if apiKey == "" {
    log.Fatal("API_KEY must be set")
  }

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Fatal("Postgres init failed", "error", err)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  companyRepo := repos.NewCompanyRepo(thePG, log)
  personRepo := repos.NewPersonRepo(thePG, log)
  signalRepo := repos.NewSignalRepo(thePG, log)
  searchRepo := repos.NewSearchRepo(thePG, log)
  listRepo := repos.NewListRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  harmonicClient, err := services.NewHarmonicClient(log)
  if err != nil {
    log.Error("Could not init HarmonicClient", "error", err)
    os.Exit(1)
  }
  companyService := services.NewCompanyService(thePG, log, companyRepo, listRepo, harmonicClient)
  personService := services.NewPersonService(thePG, log, personRepo, listRepo)
  signalService := services.NewSignalService(thePG, log, signalRepo)
  searchService := services.NewSearchService(thePG, log, searchRepo)
  listService := services.NewListService(thePG, log, listRepo, companyRepo, personRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  companyHandler := handlers.NewCompanyHandler(log, companyService)
  personHandler := handlers.NewPersonHandler(log, personService)
  signalHandler := handlers.NewSignalHandler(log, signalService)
  searchHandler := handlers.NewSearchHandler(log, searchService)
  listHandler := handlers.NewListHandler(log, listService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, apiKey)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthMiddleware: authMiddleware,
    CompanyHandler: companyHandler,
    PersonHandler:  personHandler,
    SignalHandler:  signalHandler,
    SearchHandler:  searchHandler,
    ListHandler:    listHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed: %v", err)
  }
}
