package entrypoint

// Compile-time checks that the services built in NewApp satisfy the narrow
// interfaces the HTTP controllers declare. Repository-to-service checks live
// next to each repository.

import (
	"github.com/mrlokans/readingtracker/internal/annotations"
	"github.com/mrlokans/readingtracker/internal/content"
	"github.com/mrlokans/readingtracker/internal/database"
	http_controllers "github.com/mrlokans/readingtracker/internal/http"
	"github.com/mrlokans/readingtracker/internal/importer"
	"github.com/mrlokans/readingtracker/internal/progress"
	"github.com/mrlokans/readingtracker/internal/tasks"
)

// =============================================================================
// Services
// =============================================================================

var _ http_controllers.SegmentReader = (*content.Service)(nil)
var _ http_controllers.ProgressTracker = (*progress.Tracker)(nil)

var _ http_controllers.WordService = (*annotations.Service)(nil)
var _ http_controllers.HighlightService = (*annotations.Service)(nil)
var _ http_controllers.InsightService = (*annotations.Service)(nil)

// =============================================================================
// Infrastructure
// =============================================================================

var _ http_controllers.Pinger = (*database.Database)(nil)
var _ http_controllers.TaskQueue = (*tasks.ImportQueue)(nil)
var _ tasks.BookImporter = (*importer.Importer)(nil)
