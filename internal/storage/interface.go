package storage

import "focusfit/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Users
	AddUser(name string) (int64, error)
	ListUserIDs() ([]int64, error)

	// Routines
	AddRoutine(models.Routine) error
	GetRoutine(id string) (models.Routine, error)
	GetRoutinesForUser(userID int64) ([]models.Routine, error)
	UpdateRoutine(models.Routine) error
	DeleteRoutine(id string) error

	// Routine items
	AddItem(models.RoutineItem) error
	GetItemsForRoutine(routineID string) ([]models.RoutineItem, error)
	DeleteItem(id string) error

	// Completion ledger
	UpsertCompletion(models.CompletionRecord) error
	GetCompletions(userID int64, day string) ([]models.CompletionRecord, error)

	// Streak state
	GetStreakState(userID int64) (models.StreakState, error)
	SaveStreakState(models.StreakState) error

	// Utils
	GetConfigPath() string
}
