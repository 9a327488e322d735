package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/readingtracker/internal/logger"
	"github.com/mrlokans/readingtracker/internal/tasks"
)

// TaskQueue enqueues book imports and reports task state.
type TaskQueue interface {
	EnqueueImport(bookID string) ([]string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// TasksController exposes the import queue.
type TasksController struct {
	queue TaskQueue
	log   *logger.Logger
}

func NewTasksController(queue TaskQueue, log *logger.Logger) *TasksController {
	return &TasksController{queue: queue, log: log}
}

// RunImport enqueues a text import for every catalog book, or for one book
// POST /tasks/import
func (tc *TasksController) RunImport(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}

	ids, err := tc.queue.EnqueueImport(body.String("bookId"))
	if err != nil {
		tc.log.Warn("Import enqueue failed", "error", err)
		respondBadRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"ok":      true,
		"message": "Import enqueued.",
		"taskIds": ids,
	})
}

// GetTaskStatus reports the state of a queued task
// GET /tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		tc.log.Error("Task status failed", "task_id", taskID, "error", err)
		respondFail(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	respondOK(c, gin.H{
		"id":     taskID,
		"status": tasks.StatusName(status),
	})
}
