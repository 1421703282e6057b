package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"capitolview/internal/config"
	"capitolview/internal/congress"
	"capitolview/internal/handler"
	"capitolview/internal/service"
	"capitolview/internal/stream"
	"capitolview/internal/uistate"
	"capitolview/internal/utils"
	"capitolview/pkg/logger"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	apiClient := congress.New(cfg.Upstream)
	streamClient := stream.NewClient(cfg.Chat.Endpoint, cfg.Chat.APIKey, utils.NewHTTPClient(0))
	uiStore := uistate.NewMemoryStore(uistate.State{
		Provider: cfg.Chat.DefaultProvider,
		Model:    cfg.Chat.DefaultModel,
	})

	chatService := service.NewChatService(streamClient, uiStore)
	mapService := service.NewMapService(apiClient, cfg.Maps)

	chatHandler := handler.NewChatHandler(chatService, uiStore)
	mapHandler := handler.NewMapHandler(mapService)
	civicHandler := handler.NewCivicHandler(apiClient)

	router := setupRouter(cfg, chatHandler, mapHandler, civicHandler)

	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		logger.Infof("server listening on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	if err := server.Close(); err != nil {
		logger.Errorf("server close failed: %v", err)
	}
	logger.Info("server stopped")
}

func setupRouter(cfg *config.Config, chatHandler *handler.ChatHandler, mapHandler *handler.MapHandler, civicHandler *handler.CivicHandler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
		})
	})

	api := router.Group("/api")
	{
		chat := api.Group("/chat")
		{
			chat.POST("/stream", chatHandler.StreamChat)
			chat.POST("/session", chatHandler.CreateSession)
			chat.POST("/session/list", chatHandler.GetSessionList)
			chat.GET("/session/del/:session_id", chatHandler.DeleteSession)
			chat.POST("/session/clear", chatHandler.ClearAllSessions)
			chat.GET("/session/:session_id", chatHandler.GetSession)
			chat.GET("/messages/:session_id", chatHandler.GetMessages)
			chat.PUT("/session/:session_id", chatHandler.UpdateSessionTitle)

			chat.GET("/state", chatHandler.GetUIState)
			chat.PUT("/state", chatHandler.UpdateUIState)
		}

		maps := api.Group("/maps")
		{
			maps.GET("/hemicycle/:chamber", mapHandler.Hemicycle)
			maps.GET("/states", mapHandler.States)
			maps.GET("/districts", mapHandler.Districts)
		}

		api.GET("/members", civicHandler.ListMembers)
		api.GET("/members/:bioguide_id", civicHandler.GetMember)
		api.GET("/bills", civicHandler.ListBills)
		api.GET("/bills/:bill_id", civicHandler.GetBill)
		api.GET("/votes", civicHandler.ListVotes)
		api.GET("/votes/:vote_id", civicHandler.GetVote)
		api.GET("/committees", civicHandler.ListCommittees)
		api.GET("/committees/:committee_id", civicHandler.GetCommittee)
		api.GET("/calendar", civicHandler.Calendar)
		api.GET("/districts/zip/:zip", civicHandler.DistrictForZip)
	}

	return router
}
