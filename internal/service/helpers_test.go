// ABOUTME: Shared test helpers for service tests.
// ABOUTME: Builds a fully wired service graph over an isolated database.
package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/heat/internal/models"
	"github.com/harperreed/heat/internal/storage"
)

type services struct {
	store    *storage.DB
	users    *UserService
	goals    *GoalService
	workouts *WorkoutService
}

func setupServices(t *testing.T) *services {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	users, err := NewUserService(store)
	if err != nil {
		t.Fatalf("failed to build user service: %v", err)
	}
	goals, err := NewGoalService(store, users)
	if err != nil {
		t.Fatalf("failed to build goal service: %v", err)
	}
	users.SetGoalRefresher(goals)
	workouts, err := NewWorkoutService(store, goals, users)
	if err != nil {
		t.Fatalf("failed to build workout service: %v", err)
	}

	return &services{store: store, users: users, goals: goals, workouts: workouts}
}

func (s *services) register(t *testing.T) {
	t.Helper()
	if err := s.users.SaveProfile("Alex", 30, 180, 80, "M"); err != nil {
		t.Fatalf("failed to register profile: %v", err)
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func benchPress(date time.Time, weightKg float64, reps int) *models.Workout {
	return models.NewStrengthWorkout("Bench Press", date, 30, 200, 3, reps, 80, weightKg, 0)
}

func pushUps(date time.Time, extKg float64, reps int) *models.Workout {
	return models.NewStrengthWorkout("Push-up", date, 15, 100, 3, reps, 80, extKg, 1.0)
}

func run(date time.Time, minutes int) *models.Workout {
	return models.NewCardioWorkout("Running", date, minutes, 300)
}
