package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	maskservice "github.com/furnishlab/preview-server/internal/mask/service"
	"github.com/furnishlab/preview-server/pkg/logger"
)

// Timeout for one retention sweep
const reclaimTimeout = 5 * time.Minute

// reclaimSchedule runs the sweep often enough that expired files linger at
// most a few minutes past the retention window.
const reclaimSchedule = "*/10 * * * *"

// Manager manages cron jobs
type Manager struct {
	cron    *cron.Cron
	logger  *logger.Logger
	maskSvc *maskservice.MaskService
}

// NewManager creates a new cron manager
func NewManager(logger *logger.Logger, maskSvc *maskservice.MaskService) *Manager {
	return &Manager{
		cron:    cron.New(cron.WithLogger(cron.DefaultLogger)),
		logger:  logger,
		maskSvc: maskSvc,
	}
}

// Start starts the cron manager
func (m *Manager) Start() {
	_, err := m.cron.AddFunc(reclaimSchedule, m.reclaimMasks)
	if err != nil {
		m.logger.Fatal("Failed to add mask reclaim job: %v", err)
	}

	m.cron.Start()
	m.logger.Info("Cron manager started")
}

// Stop stops the cron manager
func (m *Manager) Stop() {
	m.cron.Stop()
	m.logger.Info("Cron manager stopped")
}

// reclaimMasks runs the mask retention sweep
func (m *Manager) reclaimMasks() {
	m.logger.Debug("Running scheduled mask reclamation")
	ctx, cancel := context.WithTimeout(context.Background(), reclaimTimeout)
	defer cancel()

	_, err := m.maskSvc.Reclaim(ctx)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			m.logger.Error("Mask reclamation timed out after %v", reclaimTimeout)
		} else {
			m.logger.Error("Failed to reclaim mask files: %v", err)
		}
	}
}
