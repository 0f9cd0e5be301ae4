package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"focusfit/internal/models"
	"focusfit/internal/schedule"
)

type createUserRequest struct {
	Name string `json:"name" binding:"required"`
}

type routineRequest struct {
	Name     string   `json:"name" binding:"required"`
	Weekdays string   `json:"weekdays" binding:"required"` // e.g. "mon,wed,fri"
	Items    []string `json:"items"`
}

type itemRequest struct {
	Name     string `json:"name" binding:"required"`
	Position int    `json:"position"`
}

type toggleRequest struct {
	// Completed sets the completion flag explicitly; omitted means flip.
	Completed *bool `json:"completed"`
}

func (s *Server) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := s.store.AddUser(req.Name)
	if err != nil {
		s.log.Error("failed to add user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// getStreak is the passive page-load/login trigger. A storage failure
// degrades to the last persisted verdict, flagged stale, rather than an
// error page: the next trigger re-derives it.
func (s *Server) getStreak(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	verdict, err := s.engine.Evaluate(userID, s.engine.Today())
	if err != nil {
		s.log.Error("streak evaluation failed", "user", userID, "error", err)
		c.JSON(http.StatusOK, gin.H{"verdict": verdict, "stale": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{"verdict": verdict})
}

type checklistEntry struct {
	Item      models.RoutineItem `json:"item"`
	Completed bool               `json:"completed"`
}

// getDay renders today's checklist: scheduled items with their completion
// flags. Completion rows are materialized on first view so later toggles hit
// existing records.
func (s *Server) getDay(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	today := s.engine.Today()

	items, err := s.resolver.ItemsScheduledFor(userID, today)
	if err != nil {
		s.log.Error("failed to resolve schedule", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve schedule"})
		return
	}

	recs, err := s.store.GetCompletions(userID, today)
	if err != nil {
		s.log.Error("failed to read completions", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read completions"})
		return
	}
	completed := make(map[string]bool, len(recs))
	recorded := make(map[string]bool, len(recs))
	for _, rec := range recs {
		recorded[rec.ItemID] = true
		completed[rec.ItemID] = rec.Completed
	}

	checklist := make([]checklistEntry, 0, len(items))
	for _, item := range items {
		if !recorded[item.ID] {
			rec := models.CompletionRecord{UserID: userID, ItemID: item.ID, Day: today}
			if err := s.store.UpsertCompletion(rec); err != nil {
				s.log.Error("failed to materialize completion", "user", userID, "item", item.ID, "error", err)
			}
		}
		checklist = append(checklist, checklistEntry{Item: item, Completed: completed[item.ID]})
	}

	verdict, err := s.engine.Evaluate(userID, today)
	stale := err != nil
	if err != nil {
		s.log.Error("streak evaluation failed", "user", userID, "error", err)
	}

	resp := gin.H{"day": today, "items": checklist, "verdict": verdict}
	if stale {
		resp["stale"] = true
	}
	c.JSON(http.StatusOK, resp)
}

// toggleItem mutates today's completion record for an item and forces a
// streak recompute, since the cached evaluation for today is now stale.
func (s *Server) toggleItem(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	itemID := c.Param("itemID")
	today := s.engine.Today()

	var req toggleRequest
	// An empty body means "flip".
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	done := true
	if req.Completed != nil {
		done = *req.Completed
	} else {
		recs, err := s.store.GetCompletions(userID, today)
		if err != nil {
			s.log.Error("failed to read completions", "user", userID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read completions"})
			return
		}
		for _, rec := range recs {
			if rec.ItemID == itemID {
				done = !rec.Completed
				break
			}
		}
	}

	rec := models.CompletionRecord{UserID: userID, ItemID: itemID, Day: today, Completed: done}
	if done {
		now := time.Now().UTC()
		rec.CompletedAt = &now
	}
	if err := s.store.UpsertCompletion(rec); err != nil {
		s.log.Error("failed to upsert completion", "user", userID, "item", itemID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save completion"})
		return
	}

	verdict, err := s.engine.ForceRecompute(userID, today)
	if err != nil {
		s.log.Error("streak recompute failed", "user", userID, "error", err)
		c.JSON(http.StatusOK, gin.H{"completed": done, "verdict": verdict, "stale": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{"completed": done, "verdict": verdict})
}

func (s *Server) createRoutine(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	var req routineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	weekdays, err := schedule.ParseWeekdays(req.Weekdays)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	routine := models.Routine{
		ID:       uuid.NewString(),
		UserID:   userID,
		Name:     req.Name,
		Weekdays: weekdays,
	}
	if err := s.store.AddRoutine(routine); err != nil {
		s.log.Error("failed to add routine", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add routine"})
		return
	}

	for i, name := range req.Items {
		item := models.RoutineItem{
			ID:        uuid.NewString(),
			RoutineID: routine.ID,
			Name:      name,
			Position:  i,
		}
		if err := s.store.AddItem(item); err != nil {
			s.log.Error("failed to add item", "routine", routine.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add item"})
			return
		}
	}

	verdict := s.recompute(userID)
	c.JSON(http.StatusCreated, gin.H{"id": routine.ID, "verdict": verdict})
}

func (s *Server) updateRoutine(c *gin.Context) {
	routine, ok := s.routineParam(c)
	if !ok {
		return
	}

	var req routineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	weekdays, err := schedule.ParseWeekdays(req.Weekdays)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	routine.Name = req.Name
	routine.Weekdays = weekdays
	if err := s.store.UpdateRoutine(routine); err != nil {
		s.log.Error("failed to update routine", "routine", routine.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update routine"})
		return
	}

	verdict := s.recompute(routine.UserID)
	c.JSON(http.StatusOK, gin.H{"verdict": verdict})
}

func (s *Server) deleteRoutine(c *gin.Context) {
	routine, ok := s.routineParam(c)
	if !ok {
		return
	}

	if err := s.store.DeleteRoutine(routine.ID); err != nil {
		s.log.Error("failed to delete routine", "routine", routine.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete routine"})
		return
	}

	verdict := s.recompute(routine.UserID)
	c.JSON(http.StatusOK, gin.H{"verdict": verdict})
}

func (s *Server) addItem(c *gin.Context) {
	routine, ok := s.routineParam(c)
	if !ok {
		return
	}

	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.RoutineItem{
		ID:        uuid.NewString(),
		RoutineID: routine.ID,
		Name:      req.Name,
		Position:  req.Position,
	}
	if err := s.store.AddItem(item); err != nil {
		s.log.Error("failed to add item", "routine", routine.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add item"})
		return
	}

	verdict := s.recompute(routine.UserID)
	c.JSON(http.StatusCreated, gin.H{"id": item.ID, "verdict": verdict})
}

func (s *Server) deleteItem(c *gin.Context) {
	routine, ok := s.routineParam(c)
	if !ok {
		return
	}
	itemID := c.Param("itemID")

	if err := s.store.DeleteItem(itemID); err != nil {
		s.log.Error("failed to delete item", "item", itemID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete item"})
		return
	}

	verdict := s.recompute(routine.UserID)
	c.JSON(http.StatusOK, gin.H{"verdict": verdict})
}

// recompute forces a streak recompute after a routine change, which can flip
// whether today has a schedule at all. Failures degrade to a stale verdict.
func (s *Server) recompute(userID int64) models.StreakVerdict {
	verdict, err := s.engine.ForceRecompute(userID, s.engine.Today())
	if err != nil {
		s.log.Error("streak recompute failed", "user", userID, "error", err)
	}
	return verdict
}

func userIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	return id, true
}

func (s *Server) routineParam(c *gin.Context) (models.Routine, bool) {
	routine, err := s.store.GetRoutine(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "routine not found"})
		return models.Routine{}, false
	}
	return routine, true
}
