package usecase

import (
	"context"
	"time"

	"github.com/libreria/sales-service/internal/report"
	"github.com/libreria/sales-service/internal/report/dto"
	"github.com/libreria/sales-service/pkg/logger"
)

const topCustomerLimit = 5

type reportUseCase struct {
	repo   report.Repository
	now    func() time.Time
	logger logger.ZapLogger
}

func NewReportUseCase(repo report.Repository, log logger.ZapLogger) report.UseCase {
	return &reportUseCase{
		repo:   repo,
		now:    time.Now,
		logger: log,
	}
}

func (uc *reportUseCase) Dashboard(ctx context.Context) (*dto.Dashboard, error) {
	now := uc.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := midnight.AddDate(0, 0, -7)

	today, err := uc.repo.TotalSince(ctx, midnight)
	if err != nil {
		return nil, err
	}

	week, err := uc.repo.TotalSince(ctx, weekAgo)
	if err != nil {
		return nil, err
	}

	top, err := uc.repo.TopCustomers(ctx, topCustomerLimit)
	if err != nil {
		return nil, err
	}

	return &dto.Dashboard{
		SalesToday:   today,
		SalesWeek:    week,
		TopCustomers: top,
	}, nil
}
