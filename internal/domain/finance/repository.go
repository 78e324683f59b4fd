package finance

import (
	"context"

	"github.com/google/uuid"
)

// RecordRepository defines persistence operations for financial records and
// their metrics. CreateWithMetrics must persist the record and all metrics
// atomically; a detection failure upstream means nothing reaches it.
type RecordRepository interface {
	CreateWithMetrics(ctx context.Context, record *FinancialRecord, metrics []*FinancialMetric) error
	FindByID(ctx context.Context, id uuid.UUID) (*FinancialRecord, error)
	FindLatestByOwner(ctx context.Context, ownerID uuid.UUID) (*FinancialRecord, error)
	FindPreviousByOwner(ctx context.Context, ownerID uuid.UUID, before *FinancialRecord) (*FinancialRecord, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]FinancialRecord, error)
}

// MetricRepository defines persistence operations for financial metrics
type MetricRepository interface {
	FindByRecord(ctx context.Context, recordID uuid.UUID) ([]FinancialMetric, error)
	FindByRecordAndName(ctx context.Context, recordID uuid.UUID, name string) (*FinancialMetric, error)
	Update(ctx context.Context, m *FinancialMetric) error
}
