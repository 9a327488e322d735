package tasks

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/readingtracker/internal/catalog"
	"github.com/mrlokans/readingtracker/internal/importer"
	"github.com/mrlokans/readingtracker/internal/logger"
)

type stubImporter struct {
	sources chan importer.Source
	err     error
}

func (s *stubImporter) ImportBook(_ context.Context, src importer.Source) (importer.Result, error) {
	if s.sources != nil {
		s.sources <- src
	}
	if s.err != nil {
		return importer.Result{}, s.err
	}
	return importer.Result{BookID: src.BookID, Segments: src.TotalSegments}, nil
}

func TestImportBookTaskConfig(t *testing.T) {
	cfg := ImportBookTask{BookID: "little-women"}.Config()

	assert.Equal(t, ImportBookQueue, cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.Backoff)
	assert.Equal(t, 5*time.Minute, cfg.Timeout)
	assert.NotNil(t, cfg.Retention)
}

func TestNewImportBookTask(t *testing.T) {
	book, ok := catalog.Default().Find("anne-of-green-gables")
	require.True(t, ok)

	task := NewImportBookTask(book, "/texts", 12)

	assert.Equal(t, "anne-of-green-gables", task.BookID)
	assert.Equal(t, "Anne of Green Gables", task.Title)
	assert.Equal(t, "Intermediate", task.Level)
	assert.Equal(t, filepath.Join("/texts", "anne-of-green-gables.txt"), task.FilePath)
	assert.Equal(t, 12, task.TotalSegments)
	assert.Equal(t, task.FilePath, task.Source().FilePath)
}

func TestImportBookProcessor(t *testing.T) {
	imp := &stubImporter{sources: make(chan importer.Source, 1)}
	process := ImportBookProcessor(imp, logger.Nop())

	err := process(context.Background(), ImportBookTask{BookID: "little-women", TotalSegments: 30, FilePath: "x.txt"})
	require.NoError(t, err)

	src := <-imp.sources
	assert.Equal(t, "little-women", src.BookID)
	assert.Equal(t, "x.txt", src.FilePath)
}

func TestImportBookProcessor_Error(t *testing.T) {
	process := ImportBookProcessor(&stubImporter{err: errors.New("no such file")}, logger.Nop())

	err := process(context.Background(), ImportBookTask{BookID: "little-women"})
	assert.ErrorContains(t, err, "import book little-women")
	assert.ErrorContains(t, err, "no such file")
}

func TestImportBookProcessor_NilImporter(t *testing.T) {
	process := ImportBookProcessor(nil, logger.Nop())
	assert.Error(t, process(context.Background(), ImportBookTask{}))
}

func TestEnqueueCatalogImport_RunsTasks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 1
	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"), cfg, nil)
	require.NoError(t, err)
	defer client.Close()

	imp := &stubImporter{sources: make(chan importer.Source, 2)}
	client.Register(NewImportBookQueue(imp, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	ids, err := EnqueueCatalogImport(client, catalog.Default(), "/texts", 30, "")
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	seen := map[string]bool{}
	for range 2 {
		select {
		case src := <-imp.sources:
			seen[src.BookID] = true
		case <-time.After(5 * time.Second):
			t.Fatal("import task was not executed within timeout")
		}
	}
	assert.True(t, seen["little-women"])
	assert.True(t, seen["anne-of-green-gables"])
}

func TestEnqueueCatalogImport_SingleAndUnknown(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"), DefaultConfig(), nil)
	require.NoError(t, err)
	defer client.Close()
	client.Register(NewImportBookQueue(&stubImporter{}, nil))

	ids, err := EnqueueCatalogImport(client, catalog.Default(), "/texts", 30, "little-women")
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	_, err = EnqueueCatalogImport(client, catalog.Default(), "/texts", 30, "moby-dick")
	assert.ErrorContains(t, err, "unknown book")
}

func TestImportQueue(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"), DefaultConfig(), nil)
	require.NoError(t, err)
	defer client.Close()
	client.Register(NewImportBookQueue(&stubImporter{}, nil))

	queue := NewImportQueue(client, catalog.Default(), "/texts", 30)

	ids, err := queue.EnqueueImport("anne-of-green-gables")
	require.NoError(t, err)
	require.Len(t, ids, 1)

	status, err := queue.Status(context.Background(), ids[0])
	require.NoError(t, err)
	assert.Equal(t, "pending", StatusName(status))
}
