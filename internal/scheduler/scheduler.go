// Package scheduler 依 cron 排程自動產生上個月的帳單。
package scheduler

import (
	"context"
	"fmt"
	"time"

	"mess-booking/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// MonthlyBiller 為所有使用者產生上個月帳單；*service.Billing 實作此介面
type MonthlyBiller interface {
	GeneratePreviousMonth(ctx context.Context) (service.BatchResult, error)
}

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// 單次批次的執行上限
var jobTimeout = 10 * time.Minute

type Scheduler struct {
	cron     *cron.Cron
	schedule string
	billing  MonthlyBiller
	log      logrus.FieldLogger
}

// New 驗證排程字串；schedule 為空時回傳 nil，代表停用
func New(schedule string, billing MonthlyBiller, loc *time.Location, log logrus.FieldLogger) (*Scheduler, error) {
	if schedule == "" {
		return nil, nil
	}
	if _, err := parser.Parse(schedule); err != nil {
		return nil, fmt.Errorf("invalid billing schedule %q: %w", schedule, err)
	}
	return &Scheduler{
		cron:     cron.New(cron.WithParser(parser), cron.WithLocation(loc)),
		schedule: schedule,
		billing:  billing,
		log:      log,
	}, nil
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runBilling); err != nil {
		return err
	}
	s.cron.Start()
	s.log.WithField("schedule", s.schedule).Info("billing scheduler started")
	return nil
}

// Stop 等待執行中的批次結束
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("billing scheduler stopped")
}

func (s *Scheduler) runBilling() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	res, err := s.billing.GeneratePreviousMonth(ctx)
	if err != nil {
		s.log.WithError(err).Error("scheduled billing failed")
		return
	}
	s.log.WithFields(logrus.Fields{
		"generated": res.Generated,
		"skipped":   res.Skipped,
		"failed":    res.Failed,
	}).Info("scheduled billing finished")
}
