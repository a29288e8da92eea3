package worker

import (
	"context"
	"errors"
	"time"

	"github.com/aurelion-pos/internal/config"
	"github.com/aurelion-pos/internal/logger"
	"github.com/aurelion-pos/internal/queue"

	"github.com/hibiken/asynq"
)

const lowStockSweepInterval = time.Hour

// Service 异步队列服务
type Service struct {
	name       string
	server     *asynq.Server
	mux        *asynq.ServeMux
	consumer   *Consumer
	sweepStock bool
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer, sweepStock bool) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:       "worker",
		server:     server,
		mux:        mux,
		consumer:   consumer,
		sweepStock: sweepStock,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.sweepStock && s.consumer != nil && s.consumer.InventoryService != nil {
		go s.runLowStockSweepLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runLowStockSweepLoop 周期性扫描低库存并投递告警任务
func (s *Service) runLowStockSweepLoop(ctx context.Context) {
	runOnce := func() {
		count, err := s.consumer.InventoryService.SweepLowStock()
		if err != nil {
			logger.Warnw("worker_low_stock_sweep_failed", "error", err)
			return
		}
		if count > 0 {
			logger.Infow("worker_low_stock_sweep", "alerted", count)
		}
	}
	runOnce()

	ticker := time.NewTicker(lowStockSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
