package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/paper-insight-api/api"
	"github.com/sahilchouksey/paper-insight-api/config"
	"github.com/sahilchouksey/paper-insight-api/router"
	"github.com/sahilchouksey/paper-insight-api/services"
	"github.com/sahilchouksey/paper-insight-api/services/cron"
	"github.com/sahilchouksey/paper-insight-api/services/llm"
	"github.com/sahilchouksey/paper-insight-api/utils"
	"github.com/sahilchouksey/paper-insight-api/utils/auth"
	"github.com/sahilchouksey/paper-insight-api/utils/cache"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	utils.SetupLogger(getEnv.LOG_LEVEL)

	// Completion backend. Without a key the service still starts and reports itself unavailable.
	var completer services.Completer
	llmClient, err := llm.NewClient(llm.Config{
		APIKey:  getEnv.LLM_API_KEY,
		BaseURL: getEnv.LLM_BASE_URL,
		Model:   getEnv.LLM_MODEL,
		TopP:    getEnv.LLM_TOP_P,
		Timeout: time.Duration(getEnv.LLM_TIMEOUT_SECONDS) * time.Second,
	})
	if err != nil {
		log.Warnf("AI backend disabled: %v", err)
	} else {
		completer = llmClient
		log.Infof("AI backend ready (model %s)", llmClient.Model())
	}

	extractor, err := services.NewTextExtractor(getEnv.PDF_EXTRACTOR)
	if err != nil {
		return err
	}

	// Redis backs token revocation only
	var redisCache *cache.RedisCache
	if getEnv.REDIS_URL != "" {
		redisCache, err = cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			log.Warnf("Failed to connect to Redis: %v. Token revocation will be disabled.", err)
			redisCache = nil
		}
	}

	var cronManager *cron.CronManager
	if getEnv.UPLOAD_SWEEP_ENABLED {
		cronManager = cron.NewCronManager(getEnv.UPLOAD_DIR, time.Duration(getEnv.UPLOAD_MAX_AGE_MINUTES)*time.Minute)
		if err := cronManager.Start(); err != nil {
			// Don't fail the app, just log the warning
			log.Warnf("Failed to start cron jobs: %v", err)
			cronManager = nil
		}
	}

	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		if redisCache != nil {
			redisCache.Close()
		}
	}()

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT), getEnv.MAX_UPLOAD_MB)

	router.SetupRoutes(server.GetEngine(), router.Dependencies{
		PaperService: services.NewPaperService(completer, extractor),
		JWTManager: auth.NewJWTManager(auth.JWTConfig{
			Secret: getEnv.JWT_SECRET,
			Expiry: 24 * time.Hour,
			Issuer: getEnv.JWT_ISSUER,
		}),
		Blacklist:      auth.NewBlacklistService(redisCache),
		ExtractorName:  getEnv.PDF_EXTRACTOR,
		UploadDir:      getEnv.UPLOAD_DIR,
		MaxUploadMB:    getEnv.MAX_UPLOAD_MB,
		AllowedOrigins: getEnv.ALLOWED_ORIGINS,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			log.Errorf("Server shutdown failed: %v", err)
		}
	}()

	return server.Run()
}
