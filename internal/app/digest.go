package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/medpoint/reception/internal/notify"
	"github.com/medpoint/reception/internal/service"
)

// Digest управляет фоновой задачей ежедневной сводки для персонала
type Digest struct {
	receptionService *service.ReceptionService
	notifier         *notify.StaffNotifier
	logger           *zap.Logger
	stopChan         chan struct{}
}

// NewDigest создаёт задачу сводки
func NewDigest(receptionService *service.ReceptionService, notifier *notify.StaffNotifier, logger *zap.Logger) *Digest {
	return &Digest{
		receptionService: receptionService,
		notifier:         notifier,
		logger:           logger,
		stopChan:         make(chan struct{}),
	}
}

// Start запускает фоновую задачу
func (d *Digest) Start(ctx context.Context) {
	d.logger.Info("Starting daily digest task")

	go d.run(ctx)
}

// Stop останавливает фоновую задачу
func (d *Digest) Stop() {
	d.logger.Info("Stopping daily digest task")
	close(d.stopChan)
}

func (d *Digest) run(ctx context.Context) {
	// Первый запуск сразу при старте
	d.sendDigest(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.sendDigest(ctx)
		case <-d.stopChan:
			d.logger.Info("Daily digest task stopped")
			return
		case <-ctx.Done():
			d.logger.Info("Daily digest task cancelled")
			return
		}
	}
}

// sendDigest отправляет персоналу список сегодняшних записей
func (d *Digest) sendDigest(ctx context.Context) {
	today := time.Now()

	receptions, err := d.receptionService.ReceptionsForDate(ctx, today)
	if err != nil {
		d.logger.Error("Failed to collect daily digest", zap.Error(err))
		return
	}

	d.notifier.DailyDigest(ctx, today, receptions)

	d.logger.Info("Daily digest sent", zap.Int("receptions", len(receptions)))
}
