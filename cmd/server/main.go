package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoavn/devfolio/adapters/event"
	httpAdapter "github.com/khoavn/devfolio/adapters/http"
	"github.com/khoavn/devfolio/adapters/persistence"
	profileUC "github.com/khoavn/devfolio/internal/application/usecase/profile"
	"github.com/khoavn/devfolio/internal/config"
	"github.com/khoavn/devfolio/internal/domain/profile"
	"github.com/khoavn/devfolio/pkg/logger"
)

func main() {
	fmt.Println("Start Devfolio API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	// Storage backend
	var profileRepo profile.Repository
	switch cfg.Storage.Backend {
	case config.BackendMongo:
		mongoClient, err := persistence.NewMongoClient(cfg, appLogger)
		if err != nil {
			log.Fatalf("FATAL: cannot connect MongoDB: %v", err)
		}
		profileRepo = persistence.NewMongoProfileRepo(mongoClient.Database(cfg.Mongo.Database), appLogger)
	case config.BackendPostgres:
		dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
		if err != nil {
			log.Fatalf("FATAL: cannot connect Postgres: %v", err)
		}
		defer dbPool.Close()
		profileRepo = persistence.NewPostgresProfileRepo(dbPool, appLogger)
	default:
		log.Fatalf("FATAL: unknown storage backend %q", cfg.Storage.Backend)
	}

	// Redis read-through cache, optional
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(cfg, appLogger)
		if err != nil {
			log.Fatalf("FATAL: cannot connect Redis: %v", err)
		}
		defer redisClient.Close()
		profileRepo = persistence.NewCachedProfileRepo(profileRepo, redisClient, cfg.Redis.CacheTTL, appLogger)
	}

	// Kafka producer, optional
	var events profileUC.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg)
		if err != nil {
			log.Fatalf("FATAL: cannot init Kafka: %v", err)
		}
		defer kafkaClient.Close()
		events = kafkaClient
	}

	// Use Cases
	createProfileUseCase := profileUC.NewCreateProfileUseCase(profileRepo, events, appLogger)
	getProfileUseCase := profileUC.NewGetProfileUseCase(profileRepo)
	listProfilesUseCase := profileUC.NewListProfilesUseCase(profileRepo)
	updateProfileUseCase := profileUC.NewUpdateProfileUseCase(profileRepo, events, appLogger)
	deleteProfileUseCase := profileUC.NewDeleteProfileUseCase(profileRepo, events, appLogger)
	manageSkillsUseCase := profileUC.NewManageSkillsUseCase(profileRepo, events, appLogger)
	manageProjectsUseCase := profileUC.NewManageProjectsUseCase(profileRepo, events, appLogger)
	manageExperienceUseCase := profileUC.NewManageExperienceUseCase(profileRepo, events, appLogger)
	searchCatalogUseCase := profileUC.NewSearchCatalogUseCase(profileRepo, appLogger)

	// HTTP Handlers
	profileHandler := httpAdapter.NewProfileHandler(
		createProfileUseCase,
		getProfileUseCase,
		listProfilesUseCase,
		updateProfileUseCase,
		deleteProfileUseCase,
		manageSkillsUseCase,
		appLogger,
	)
	portfolioHandler := httpAdapter.NewPortfolioHandler(manageProjectsUseCase, manageExperienceUseCase, appLogger)
	catalogHandler := httpAdapter.NewCatalogHandler(searchCatalogUseCase, appLogger)

	// Setup Gin router
	router := gin.Default()
	router.Use(httpAdapter.ErrorMiddleware(appLogger))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		profiles := api.Group("/profiles")
		{
			profiles.GET("", catalogHandler.SearchCatalog)
			profiles.GET("/all", profileHandler.ListProfiles)
			profiles.POST("", profileHandler.CreateProfile)
			profiles.GET("/:id", profileHandler.GetProfile)
			profiles.PUT("/:id", profileHandler.UpdateProfile)
			profiles.DELETE("/:id", profileHandler.DeleteProfile)

			profiles.PUT("/:id/skills", profileHandler.ReplaceSkills)
			profiles.POST("/:id/skills", profileHandler.AddSkill)
			profiles.DELETE("/:id/skills/:skill", profileHandler.RemoveSkill)

			profiles.POST("/:id/projects", portfolioHandler.AddProject)
			profiles.PUT("/:id/projects/:projectId", portfolioHandler.UpdateProject)
			profiles.DELETE("/:id/projects/:projectId", portfolioHandler.RemoveProject)

			profiles.POST("/:id/experience", portfolioHandler.AddWorkExperience)
			profiles.PUT("/:id/experience/:experienceId", portfolioHandler.UpdateWorkExperience)
			profiles.DELETE("/:id/experience/:experienceId", portfolioHandler.RemoveWorkExperience)
		}
	}

	log.Printf("Server running on port %s (backend: %s)", cfg.App.Port, cfg.Storage.Backend)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Cannot run server: %v", err)
	}
}
