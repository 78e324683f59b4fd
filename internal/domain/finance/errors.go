package finance

import "github.com/strivehq/backend/internal/domain/shared"

// Ingestion errors. Both are fatal to the ingestion call; no partial metrics
// are persisted when either is returned.
var (
	ErrEmptyData          = shared.NewDomainError("EMPTY_DATA", "empty or invalid file data")
	ErrColumnsNotDetected = shared.NewDomainError("COLUMNS_NOT_DETECTED", "could not detect column structure")
)
