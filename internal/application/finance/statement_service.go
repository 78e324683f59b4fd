package finance

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/strivehq/backend/internal/domain/finance"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GridReader parses an uploaded spreadsheet file into a raw cell grid
type GridReader interface {
	Read(fileName string, data []byte) (finance.Grid, error)
}

// StatementArchive stores the original uploaded file for audit purposes
type StatementArchive interface {
	Store(ctx context.Context, key, contentType string, data []byte) error
}

// StatementService accepts statement uploads: it archives the original
// file, parses it into a grid, and delegates to the ingestion pipeline.
// Archive failures do not block ingestion.
type StatementService struct {
	reader    GridReader
	archive   StatementArchive
	ingestion *IngestionService
	logger    *zap.Logger
}

// NewStatementService creates a new StatementService
func NewStatementService(reader GridReader, archive StatementArchive, ingestion *IngestionService, logger *zap.Logger) *StatementService {
	return &StatementService{
		reader:    reader,
		archive:   archive,
		ingestion: ingestion,
		logger:    logger,
	}
}

// UploadStatementRequest carries an uploaded statement file and its period
type UploadStatementRequest struct {
	FileName    string
	ContentType string
	Data        []byte
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// Upload processes one uploaded statement end to end
func (s *StatementService) Upload(ctx context.Context, ownerID uuid.UUID, req UploadStatementRequest) (*IngestResult, error) {
	if len(req.Data) == 0 {
		return nil, finance.ErrEmptyData
	}

	grid, err := s.reader.Read(req.FileName, req.Data)
	if err != nil {
		return nil, err
	}

	if s.archive != nil {
		key := archiveKey(ownerID, req.FileName)
		if err := s.archive.Store(ctx, key, req.ContentType, req.Data); err != nil {
			s.logger.Warn("statement archive failed",
				zap.String("owner_id", ownerID.String()),
				zap.String("key", key),
				zap.Error(err))
		}
	}

	period := finance.ReportingPeriod{Start: req.PeriodStart, End: req.PeriodEnd}
	return s.ingestion.Ingest(ctx, ownerID, req.FileName, grid, period)
}

func archiveKey(ownerID uuid.UUID, fileName string) string {
	return fmt.Sprintf("statements/%s/%s-%s", ownerID, uuid.NewString()[:8], path.Base(fileName))
}
