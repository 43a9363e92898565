package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"scentbase/config"
	"scentbase/database"
	"scentbase/handlers"
	"scentbase/middleware"
	"scentbase/repository"
	"scentbase/scheduler"
	"scentbase/scraper"
	"scentbase/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if err := database.InitDatabase(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDatabase()

	if err := database.CreateTables(); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	cache, err := repository.NewCatalogCache(cfg.CacheTTL)
	if err != nil {
		log.Fatalf("Failed to create catalog cache: %v", err)
	}
	perfumeRepo := repository.NewPerfumeRepository(cache)
	runRepo := repository.NewRunRepository()

	catalogData := config.DefaultCatalogData()
	catalogURL := cfg.BaseURL + cfg.CatalogPath

	fetcher := scraper.NewPageFetcher(&scraper.FetcherOptions{
		Timeout:    cfg.FetchTimeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		UserAgent:  cfg.UserAgent,
	})
	pipeline := scraper.NewPipeline(
		fetcher,
		scraper.NewListingExtractor(cfg.BaseURL, cfg.CatalogPath),
		scraper.NewTitleClassifier(catalogData.KnownBrands),
		scraper.NewDetailExtractor(fetcher),
		scraper.NewNormalizer(catalogData, scraper.NewPriceParser(), cfg.BaseURL),
		perfumeRepo,
		scraper.PipelineOptions{
			CatalogURL: catalogURL,
			MaxWorkers: cfg.MaxWorkers,
			PageDelay:  cfg.PageDelay,
		},
	)

	scoring := services.NewScoringService()
	recommendations := services.NewRecommendationService(perfumeRepo, scoring, services.RecommendationOptions{
		MaxResults:      cfg.MaxResults,
		MinResults:      cfg.MinResults,
		BudgetThreshold: cfg.BudgetThreshold,
	})
	exporter := services.NewExportService(perfumeRepo, perfumeRepo, catalogURL)

	refresher := scheduler.NewCatalogRefresher(pipeline, runRepo, cfg.RefreshSchedule)
	refresher.Start()
	defer refresher.Stop()

	h := handlers.NewHandlers(perfumeRepo, recommendations, exporter, refresher, cfg.ExportPath)

	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.RateLimitMiddleware(cfg.RateLimitRPS))

	r.HandleFunc("/health", h.HealthCheck).Methods("GET")

	apiV1 := r.PathPrefix("/api/v1").Subrouter()
	apiV1.HandleFunc("/catalog", h.GetCatalog).Methods("GET")
	apiV1.HandleFunc("/perfumes/{article}", h.GetPerfumeByArticle).Methods("GET")
	apiV1.HandleFunc("/parse", h.TriggerParse).Methods("POST")
	apiV1.HandleFunc("/parse/status", h.GetParseStatus).Methods("GET")
	apiV1.HandleFunc("/recommendations", h.GetRecommendations).Methods("POST")
	apiV1.HandleFunc("/export", h.ExportCatalog).Methods("POST")
	apiV1.HandleFunc("/import", h.ImportCatalog).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Origins(),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	log.Printf("Server starting on %s:%s", cfg.Host, cfg.Port)
	log.Printf("   GET  /health - Health check")
	log.Printf("   GET  /api/v1/catalog - Full catalog")
	log.Printf("   GET  /api/v1/perfumes/{article} - Perfume lookup")
	log.Printf("   POST /api/v1/parse - Trigger catalog parse")
	log.Printf("   GET  /api/v1/parse/status - Last parse stats")
	log.Printf("   POST /api/v1/recommendations - Quiz-based recommendations")
	log.Printf("   POST /api/v1/export - Write catalog snapshot")
	log.Printf("   POST /api/v1/import - Load catalog snapshot")

	log.Fatal(http.ListenAndServe(cfg.Host+":"+cfg.Port, c.Handler(r)))
}
