package http

import (
	"github.com/mrlokans/readingtracker/internal/catalog"
	"github.com/mrlokans/readingtracker/internal/logger"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Static data
	Catalog catalog.Catalog

	// Services
	Content    SegmentReader
	Progress   ProgressTracker
	Words      WordService
	Highlights HighlightService
	Insights   InsightService

	// Health check target (optional)
	Database Pinger

	// Import queue (optional); routes are only registered when set
	Tasks TaskQueue

	// BasePath prefixes every API route, e.g. "/api". Empty mounts at root.
	BasePath string

	// DemoUserID identifies requests without a user header
	DemoUserID string

	Logger  *logger.Logger
	Version string
}
