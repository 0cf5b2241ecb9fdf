package server

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "github.com/yungbote/dealflow-backend/internal/handlers"
  "github.com/yungbote/dealflow-backend/internal/middleware"
)

type RouterConfig struct {
  AuthMiddleware *middleware.AuthMiddleware
  CompanyHandler *handlers.CompanyHandler
  PersonHandler  *handlers.PersonHandler
  SignalHandler  *handlers.SignalHandler
  SearchHandler  *handlers.SearchHandler
  ListHandler    *handlers.ListHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()
  router.Use(middleware.RequestID())

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins:     []string{"*"},
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-API-Key", "X-Requested-With"},
    AllowCredentials: false,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  router.GET("/", func(c *gin.Context) {
    c.Redirect(http.StatusTemporaryRedirect, "/healthcheck")
  })

// ===============
// || Protected ||
// ===============
  protected := router.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAPIKey())
  // Companies
  protected.GET("/companies", cfg.CompanyHandler.ListCompanies)
  protected.GET("/companies/:company_id", cfg.CompanyHandler.GetCompany)
  protected.POST("/companies/hide", cfg.CompanyHandler.HideCompanies)
  protected.POST("/edit_company_comments", cfg.CompanyHandler.EditComments)
  protected.POST("/edit_company_relevence", cfg.CompanyHandler.EditRelevence)
  // People
  protected.GET("/people", cfg.PersonHandler.ListPeople)
  protected.GET("/peoples/:person_id", cfg.PersonHandler.GetPerson)
  protected.POST("/peoples/hide", cfg.PersonHandler.HidePeople)
  protected.POST("/edit_person_comments", cfg.PersonHandler.EditComments)
  protected.POST("/edit_person_relevence", cfg.PersonHandler.EditRelevence)
  // Signals
  protected.GET("/signals", cfg.SignalHandler.ListSignals)
  protected.GET("/signals/:signal_id", cfg.SignalHandler.GetSignal)
  // Searches
  protected.GET("/searches", cfg.SearchHandler.ListSearches)
  protected.GET("/searches/:search_id", cfg.SearchHandler.GetSearch)
  // Lists
  protected.GET("/lists", cfg.ListHandler.GetAllLists)
  protected.GET("/lists/:list_id/entities", cfg.ListHandler.GetListEntities)
  protected.POST("/lists", cfg.ListHandler.CreateList)
  protected.POST("/delete_lists/:list_id", cfg.ListHandler.DeleteList)
  protected.POST("/lists/:list_id/modify", cfg.ListHandler.ModifyList)

  return router
}
