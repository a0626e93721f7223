package report

import (
	"context"

	"github.com/libreria/sales-service/internal/report/dto"
)

type UseCase interface {
	Dashboard(ctx context.Context) (*dto.Dashboard, error)
}
