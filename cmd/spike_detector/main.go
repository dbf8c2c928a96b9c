package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spike_detector/internal/app/provider"
	"spike_detector/internal/app/service"
	"spike_detector/internal/client"
	"spike_detector/internal/config"
	clientprovider "spike_detector/internal/infrastructure/network/client"
	networkdefinition "spike_detector/internal/infrastructure/network/definition"
	"spike_detector/internal/infrastructure/restapi"
	"spike_detector/internal/pkg/logger"
	"spike_detector/internal/pkg/metrics"
	"spike_detector/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

func main() {
	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yml")
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		logrus.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()
	logger.InstallSlog(zapLogger)
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New()
	m.Register(registry)

	networks := networkdefinition.NewNetworkDefinitionProvider(zapLogger, cfg.Gas.Networks, cfg.Networks)

	dexScreenerClient := client.NewDEXScreenerClient(
		cfg.DEXScreener.BaseURL,
		time.Duration(cfg.DEXScreener.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
	)
	rugCheckClient := client.NewRugCheckClient(cfg.RugCheck.BaseURL, cfg.Security.SecurityTimeout(), zapLogger)
	goPlusClient := client.NewGoPlusClient(
		cfg.GoPlus.BaseURL,
		cfg.GoPlus.AccessToken,
		cfg.Security.SecurityTimeout(),
		cfg.GoPlus.RequestsPerSecond,
		cfg.GoPlus.Burst,
		zapLogger,
	)
	zapLogger.Info("Upstream clients initialized")

	pairSource := provider.NewDexScreenerPairSource(dexScreenerClient, cfg.Spike.Queries, cfg.Spike.Chains, zapLogger)
	securitySvc := service.NewSecurityService(zapLogger, cfg.Security, rugCheckClient, goPlusClient, networks, m)
	spikeSvc := service.NewSpikeService(
		zapLogger,
		pairSource,
		securitySvc,
		cfg.Spike.Thresholds(),
		cfg.Security.MaxConcurrentChecks,
		time.Now,
		m,
	)
	cleanup := time.Duration(cfg.Cache.CleanupIntervalMinutes) * time.Minute
	spikeFeed := service.NewCachedSpikeFeed(
		zapLogger,
		spikeSvc,
		time.Duration(cfg.Cache.SpikeFeedTTLSeconds)*time.Second,
		cleanup,
		cfg.Spike.RunTimeout(),
		m,
	)

	readers := clientprovider.NewEVMClientProvider(zapLogger, time.Duration(cfg.Gas.DialTimeoutMillis)*time.Millisecond)
	gasSvc := service.NewGasService(
		zapLogger,
		networks,
		readers,
		cfg.Gas,
		time.Duration(cfg.Cache.GasTTLSeconds)*time.Second,
		cleanup,
		time.Now,
		m,
	)
	zapLogger.Info("Services initialized")

	router := restapi.SetupRouter(zapLogger, restapi.NewHandler(zapLogger, spikeFeed, gasSvc, m), registry)

	// Make sure to protect these in a production environment
	pprofRouter := router.Group("/debug/pprof")
	{
		pprofRouter.GET("/", gin.WrapF(pprof.Index))
		pprofRouter.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		pprofRouter.GET("/profile", gin.WrapF(pprof.Profile))
		pprofRouter.POST("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/trace", gin.WrapF(pprof.Trace))
		pprofRouter.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
		pprofRouter.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
		pprofRouter.GET("/heap", gin.WrapH(pprof.Handler("heap")))
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on port %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	zapLogger.Info("Server exiting")
}
