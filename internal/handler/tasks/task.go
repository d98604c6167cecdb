package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"taskdeck/internal/api"
	"taskdeck/internal/cache"
	"taskdeck/internal/database"
	"taskdeck/internal/middleware"
	"taskdeck/internal/model"
	"taskdeck/internal/service"
	"taskdeck/internal/store"
	"taskdeck/internal/worker"

	"github.com/labstack/echo/v4"
)

var (
	createTask        = store.CreateTask
	listTasksByEmail  = store.ListTasksByEmail
	getTaskByID       = store.GetTaskByID
	updateTask        = store.UpdateTask
	deleteTaskByOwner = store.DeleteTaskByOwner
)

// listCacheTTL bounds staleness when an invalidation is lost (e.g. redis
// restart between the write and the Del).
const listCacheTTL = time.Minute

func listCacheKey(email string) string {
	return "tasks:" + email
}

func claimsFrom(c echo.Context) (*service.CustomClaims, bool) {
	claims, ok := c.Get(middleware.ContextUserKey).(*service.CustomClaims)
	if !ok || claims.Email == "" {
		return nil, false
	}
	return claims, true
}

// invalidateList drops the owner's cached task list off the request path.
func invalidateList(wp worker.Pool, rdb cache.Cache, email string) {
	wp.Submit(func() {
		rdb.Del(context.Background(), listCacheKey(email))
	})
}

// CreateTaskHandler inserts a task owned by the authenticated identity.
// @Summary     Create a task
// @Description Create a task with status Pending, owned by the token's email.
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Param       body body api.CreateTaskRequest true "Task payload"
// @Success     201 {object} api.CreateTaskResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /tasks [post]
func CreateTaskHandler(db database.DB, rdb cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := claimsFrom(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}

		var req api.CreateTaskRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		task, err := createTask(c.Request().Context(), db, &model.Task{
			Title:       req.Title,
			Description: req.Description,
			DueDate:     req.DueDate,
			Priority:    req.Priority,
			Email:       claims.Email,
		})
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to create task"})
		}

		invalidateList(wp, rdb, claims.Email)
		return c.JSON(http.StatusCreated, api.CreateTaskResponse{ID: task.ID})
	}
}

// ListTasksHandler returns every task owned by the authenticated identity.
// @Summary     List tasks
// @Description Full unpaginated set of the caller's tasks, store order. Served from cache when warm.
// @Tags        tasks
// @Produce     json
// @Success     200 {array} model.Task
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /tasks [get]
func ListTasksHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := claimsFrom(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}

		ctx := c.Request().Context()
		key := listCacheKey(claims.Email)

		if cached, err := rdb.Get(ctx, key).Bytes(); err == nil && len(cached) > 0 {
			return c.JSONBlob(http.StatusOK, cached)
		}

		tasks, err := listTasksByEmail(ctx, db, claims.Email)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to list tasks"})
		}

		// cache failures degrade to DB reads, never to request failures
		if data, err := json.Marshal(tasks); err == nil {
			rdb.Set(ctx, key, data, listCacheTTL)
		}

		return c.JSON(http.StatusOK, tasks)
	}
}

// UpdateTaskHandler partially merges the body onto a stored task.
// @Summary     Update a task
// @Description Merge the supplied fields onto the task. Only the owner may update; owner email is never reassignable.
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Param       id   path string true "Task id"
// @Param       body body api.UpdateTaskRequest true "Fields to merge"
// @Success     200 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /tasks/{id} [put]
func UpdateTaskHandler(db database.DB, rdb cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := claimsFrom(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		id := c.Param("id")

		var req api.UpdateTaskRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		ctx := c.Request().Context()
		task, err := getTaskByID(ctx, db, id)
		if errors.Is(err, store.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Task not found"})
		}
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to load task"})
		}
		if task.Email != claims.Email {
			return c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "not the task owner"})
		}

		patch := model.TaskPatch{
			Title:       req.Title,
			Description: req.Description,
			DueDate:     req.DueDate,
			Priority:    req.Priority,
			Status:      req.Status,
		}
		if err := updateTask(ctx, db, id, patch); err != nil {
			if errors.Is(err, store.ErrTaskNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Task not found"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to update task"})
		}

		invalidateList(wp, rdb, claims.Email)
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Task updated"})
	}
}

// DeleteTaskHandler deletes the caller's task by id. The delete is scoped
// to the owner and idempotent: an absent or foreign id is a no-op success.
// @Summary     Delete a task
// @Tags        tasks
// @Produce     json
// @Param       id path string true "Task id"
// @Success     200 {object} api.MessageResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /tasks/{id} [delete]
func DeleteTaskHandler(db database.DB, rdb cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := claimsFrom(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}

		if err := deleteTaskByOwner(c.Request().Context(), db, c.Param("id"), claims.Email); err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to delete task"})
		}

		invalidateList(wp, rdb, claims.Email)
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Task deleted"})
	}
}
