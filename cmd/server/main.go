package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"osday/internal/api"
	"osday/internal/app/service"
	"osday/internal/common/security"
	"osday/internal/domain/repository"
	"osday/internal/platform/config"
	"osday/internal/platform/database"
	"osday/internal/platform/github"
	"osday/internal/platform/locker"
)

func main() {
	// 1. Load Configuration
	config.Load()
	log.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	database.Migrate()

	// 4. Submit lock: redis when configured, in-process otherwise.
	var locks locker.Locker
	if addr := config.AppConfig.RedisAddr; addr != "" {
		redisLocker := locker.NewRedisLocker(
			addr,
			config.AppConfig.RedisPassword,
			config.AppConfig.RedisDB,
			config.AppConfig.SubmitLockTTL,
			config.AppConfig.SubmitLockWait,
		)
		defer redisLocker.Close()
		locks = redisLocker
	} else {
		log.Println("No REDIS_ADDR configured, using in-process submit lock")
		locks = locker.NewMemoryLocker()
	}

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	submissionRepo := repository.NewPgSubmissionRepository(database.DB)

	// 6. Initialize provider client and services
	githubClient := github.NewClient(config.AppConfig)

	var identity service.IdentityProvider
	if config.AppConfig.EnableTestIdentity {
		identity = service.NewTestIdentityProvider(userRepo)
	} else {
		identity = service.NoIdentityProvider{}
	}

	evaluator := service.NewEvaluator(githubClient, config.AppConfig.PointsPerLevel)
	authService := service.NewAuthService(
		userRepo,
		githubClient,
		config.AppConfig.GitHubClientID,
		config.AppConfig.GitHubAuthorizeURL,
		config.AppConfig.FrontendURL,
	)
	submissionService := service.NewSubmissionService(evaluator, submissionRepo, userRepo, identity, locks)
	leaderboardService := service.NewLeaderboardService(submissionRepo, userRepo, config.AppConfig.LeaderboardLimit)
	userService := service.NewUserService(userRepo, submissionRepo, identity, config.AppConfig.LevelLinks)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, submissionService, leaderboardService, userService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
