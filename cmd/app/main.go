package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	restful "github.com/emicklei/go-restful/v3"

	"github.com/furnishlab/preview-server/config"
	"github.com/furnishlab/preview-server/internal/common"
	"github.com/furnishlab/preview-server/internal/cron"
	maskApi "github.com/furnishlab/preview-server/internal/mask/api"
	maskService "github.com/furnishlab/preview-server/internal/mask/service"
	miscApi "github.com/furnishlab/preview-server/internal/misc/api"
	miscService "github.com/furnishlab/preview-server/internal/misc/service"
	segmentApi "github.com/furnishlab/preview-server/internal/segment/api"
	segmentService "github.com/furnishlab/preview-server/internal/segment/service"
	"github.com/furnishlab/preview-server/internal/tracker"
	"github.com/furnishlab/preview-server/pkg/format"
	"github.com/furnishlab/preview-server/pkg/logger"
)

func main() {
	log := logger.New()

	defer func() {
		if r := recover(); r != nil {
			log.Error("Panic recovered: %v", r)
			os.Exit(1)
		}
	}()

	// Initialize configuration
	cfg := config.GetInstance()

	log.Info("SAM2 sidecar endpoint: %s (model size %s)", cfg.SAM2.Endpoint, cfg.SAM2.ModelSize)
	log.Info("Mask retention window: %s", common.FormatDurationConcise(cfg.File.Retention()))

	// Initialize access tracker for the retention sweep's grace checks
	accessTracker := tracker.NewInMemoryAccessTracker()

	// Initialize services
	maskSvc, err := maskService.New(cfg.File.TempDir, cfg.File.Retention(), accessTracker)
	if err != nil {
		log.Fatal("Failed to initialize mask service: %v", err)
	}

	segmentSvc := segmentService.New(cfg)
	for _, name := range segmentSvc.Strategies() {
		log.Info("Registered segmentation strategy: %s", format.FormatStrategy(name))
	}

	miscSvc := miscService.New()

	// Initialize cron manager
	cronManager := cron.NewManager(log, maskSvc)
	cronManager.Start()
	defer cronManager.Stop()

	// Initialize API handlers
	segmentHandler := segmentApi.NewSegmentHandler(segmentSvc, maskSvc)
	maskHandler := maskApi.NewMaskHandler(maskSvc)
	miscHandler := miscApi.NewMiscHandler(miscSvc)

	// Create REST API container
	container := restful.NewContainer()

	// Create WebService
	ws := new(restful.WebService)
	ws.Path("/api/v1").
		Produces(restful.MIME_JSON)

	// Register routes
	segmentApi.RegisterRoutes(ws, segmentHandler)
	maskApi.RegisterRoutes(ws, maskHandler)
	miscApi.RegisterRoutes(ws, miscHandler)

	container.Add(ws)

	// Log API endpoints
	endpoints := make([]format.APIEndpoint, 0, len(ws.Routes()))
	for _, route := range ws.Routes() {
		endpoints = append(endpoints, format.APIEndpoint{
			Method:      route.Method,
			Path:        route.Path,
			Description: route.Doc,
		})
	}
	format.LogAPIEndpoints(log, endpoints)

	// Add CORS filter
	cors := restful.CrossOriginResourceSharing{
		AllowedHeaders: []string{"Content-Type", "Accept"},
		AllowedMethods: []string{"GET", "POST", "HEAD"},
		AllowedDomains: []string{"*"},
	}
	container.Filter(cors.Filter)

	// Add request logging filter
	container.Filter(func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		url := req.Request.URL.Path
		if req.Request.URL.RawQuery != "" {
			url += "?" + req.Request.URL.RawQuery
		}
		log.Info("%s %s %s", req.Request.Method, url, req.Request.Proto)

		if log.IsDebugEnabled() && len(req.Request.Header) > 0 {
			headers := make([]string, 0, len(req.Request.Header))
			for name, values := range req.Request.Header {
				headers = append(headers, fmt.Sprintf("%s: %s", name, values[0]))
			}
			log.Debug("Headers: %s", strings.Join(headers, ", "))
		}

		chain.ProcessFilter(req, resp)

		log.Debug("Response status: %d", resp.StatusCode())
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("Starting server on %s", addr)

	// Get all local IPs
	ips := common.GetLocalIPs()
	log.Info("Accessible URLs:")
	for _, ip := range ips {
		log.Info("  http://%s:%d", ip, cfg.Server.Port)
	}

	// Create a channel to receive OS signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	server := &http.Server{
		Addr:    addr,
		Handler: container,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-sigChan
	log.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited properly")
}
