// ABOUTME: Goal lifecycle engine: creation, refresh on workout and weight
// ABOUTME: events, completion/downgrade transitions and expiry sweeps.
package service

import (
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/harperreed/heat/internal/models"
	"github.com/harperreed/heat/internal/storage"
)

// WeightProvider supplies the user's current body weight for weight goals.
type WeightProvider interface {
	WeightKg() float64
}

// Outcome collects goal changes computed inside a transaction. The store
// rows are written immediately, but the cached goal objects are only
// touched when the caller applies the outcome after commit.
type Outcome struct {
	Completed []*models.Goal
	Revived   []*models.Goal
	values    map[int64]float64
}

// Empty reports whether the refresh changed nothing.
func (o *Outcome) Empty() bool {
	return len(o.Completed) == 0 && len(o.Revived) == 0 && len(o.values) == 0
}

// CompletedIDs returns the ids of goals that transitioned to COMPLETED,
// for batch status persistence.
func (o *Outcome) CompletedIDs() []int64 {
	ids := make([]int64, 0, len(o.Completed))
	for _, g := range o.Completed {
		ids = append(ids, g.ID)
	}
	return ids
}

// GoalService owns the goal caches and every goal state transition.
type GoalService struct {
	store  *storage.DB
	weight WeightProvider

	goals  []*models.Goal
	active []*models.Goal
}

// NewGoalService loads all goals, then expires any active goal whose end
// date has passed before anything else can read the caches.
func NewGoalService(store *storage.DB, weight WeightProvider) (*GoalService, error) {
	s := &GoalService{store: store, weight: weight}

	goals, err := store.ListGoals()
	if err != nil {
		return nil, fmt.Errorf("loading goals: %w", err)
	}
	s.goals = goals
	s.rebuildActive()

	if err := s.expireOverdue(); err != nil {
		return nil, err
	}
	return s, nil
}

// Goals returns every goal, newest first.
func (s *GoalService) Goals() []*models.Goal { return s.goals }

// ActiveGoals returns the goals still in play.
func (s *GoalService) ActiveGoals() []*models.Goal { return s.active }

// CreateGoal validates and persists a new goal. A goal whose target is
// already satisfied by current data is rejected outright.
func (s *GoalService) CreateGoal(g *models.Goal) error {
	if _, ok := models.GoalRules[g.Type]; !ok {
		return fmt.Errorf("unknown goal type: %q", g.Type)
	}
	if g.EndDate != nil && g.EndDate.Before(g.StartDate) {
		return fmt.Errorf("goal end date %s is before start date %s",
			g.EndDate.Format(models.DateLayout), g.StartDate.Format(models.DateLayout))
	}

	current, err := s.currentValue(g)
	if err != nil {
		return err
	}
	g.CurrentValue = current
	if g.IsMet(current) {
		return fmt.Errorf("goal %q is already achieved (current %.1f, target %.1f); set a harder target",
			g.Title, current, g.TargetValue)
	}

	if err := s.store.Begin(); err != nil {
		return err
	}
	if err := s.store.InsertGoal(g); err != nil {
		s.rollback(err)
		return fmt.Errorf("saving goal: %w", err)
	}
	if err := s.store.Commit(); err != nil {
		return fmt.Errorf("committing goal: %w", err)
	}

	s.goals = append([]*models.Goal{g}, s.goals...)
	s.active = append([]*models.Goal{g}, s.active...)
	return nil
}

// UpdateGoal replaces an existing goal's editable fields and rederives its
// status: met goals complete, overdue goals expire, the rest stay active.
func (s *GoalService) UpdateGoal(original, updated *models.Goal) error {
	if original.ID != updated.ID {
		return fmt.Errorf("goal id mismatch: %d vs %d", original.ID, updated.ID)
	}

	switch {
	case updated.IsMet(updated.CurrentValue):
		updated.Status = models.GoalCompleted
	case updated.EndDate != nil && updated.EndDate.Before(today()):
		updated.Status = models.GoalExpired
	default:
		updated.Status = models.GoalActive
	}

	if err := s.store.Begin(); err != nil {
		return err
	}
	if err := s.store.UpdateGoal(updated); err != nil {
		s.rollback(err)
		return fmt.Errorf("updating goal %d: %w", updated.ID, err)
	}
	if err := s.store.Commit(); err != nil {
		return fmt.Errorf("committing goal update: %w", err)
	}

	*original = *updated
	s.rebuildActive()
	return nil
}

// DeleteGoal removes a goal from the store and both caches.
func (s *GoalService) DeleteGoal(id int64) error {
	if err := s.store.Begin(); err != nil {
		return err
	}
	if err := s.store.DeleteGoal(id); err != nil {
		s.rollback(err)
		return fmt.Errorf("deleting goal %d: %w", id, err)
	}
	if err := s.store.Commit(); err != nil {
		return fmt.Errorf("committing goal delete: %w", err)
	}

	s.goals = removeGoal(s.goals, id)
	s.active = removeGoal(s.active, id)
	return nil
}

// RefreshForWorkout re-evaluates every goal the workout is relevant to.
// Must run inside the caller's open transaction: current values are
// recomputed from the store so the just-written workout row is counted.
// Expired goals are never touched. COMPLETED statuses are left for the
// caller to batch-persist; ACTIVE downgrades are persisted here.
func (s *GoalService) RefreshForWorkout(w *models.Workout) (*Outcome, error) {
	out := &Outcome{values: make(map[int64]float64)}

	for _, g := range s.goals {
		if !s.relevant(g, w) {
			continue
		}

		current, err := s.currentValue(g)
		if err != nil {
			return nil, err
		}
		if err := s.store.UpdateGoalCurrentValue(g.ID, current); err != nil {
			return nil, fmt.Errorf("updating goal %d progress: %w", g.ID, err)
		}
		out.values[g.ID] = current

		met := g.IsMet(current)
		switch {
		case g.Status == models.GoalActive && met:
			out.Completed = append(out.Completed, g)
		case g.Status == models.GoalCompleted && !met:
			if err := s.store.UpdateGoalStatus(g.ID, models.GoalActive); err != nil {
				return nil, fmt.Errorf("reactivating goal %d: %w", g.ID, err)
			}
			out.Revived = append(out.Revived, g)
		}
	}

	return out, nil
}

// EvaluateWeightGoals re-evaluates active and completed weight goals
// against a new body weight. Same transactional contract as
// RefreshForWorkout.
func (s *GoalService) EvaluateWeightGoals(weightKg float64) (*Outcome, error) {
	out := &Outcome{values: make(map[int64]float64)}

	for _, g := range s.goals {
		if g.Status == models.GoalExpired || !g.IsBodyWeight() {
			continue
		}

		if err := s.store.UpdateGoalCurrentValue(g.ID, weightKg); err != nil {
			return nil, fmt.Errorf("updating goal %d progress: %w", g.ID, err)
		}
		out.values[g.ID] = weightKg

		met := g.IsMet(weightKg)
		switch {
		case g.Status == models.GoalActive && met:
			out.Completed = append(out.Completed, g)
		case g.Status == models.GoalCompleted && !met:
			if err := s.store.UpdateGoalStatus(g.ID, models.GoalActive); err != nil {
				return nil, fmt.Errorf("reactivating goal %d: %w", g.ID, err)
			}
			out.Revived = append(out.Revived, g)
		}
	}

	return out, nil
}

// Apply folds a committed outcome into the caches and announces the
// transitions. Call only after the surrounding transaction committed.
func (s *GoalService) Apply(out *Outcome) {
	if out == nil || out.Empty() {
		return
	}

	for id, v := range out.values {
		for _, g := range s.goals {
			if g.ID == id {
				g.CurrentValue = v
				break
			}
		}
	}
	for _, g := range out.Completed {
		g.Status = models.GoalCompleted
		color.Green("Goal achieved: %s (%.1f / %.1f)", g.Title, g.CurrentValue, g.TargetValue)
	}
	for _, g := range out.Revived {
		g.Status = models.GoalActive
		color.Yellow("Goal %q is back in play: progress fell to %.1f of %.1f",
			g.Title, g.CurrentValue, g.TargetValue)
	}
	s.rebuildActive()
}

// relevant reports whether a workout event can move this goal's progress.
func (s *GoalService) relevant(g *models.Goal, w *models.Workout) bool {
	if g.Status == models.GoalExpired {
		return false
	}
	if g.IsBodyWeight() {
		return false
	}
	if !g.InWindow(w.Date) {
		return false
	}
	if !g.Matches(w.Exercise) {
		return false
	}
	if models.GoalRules[g.Type].StrengthOnly && w.Kind != models.Strength {
		return false
	}
	return true
}

// currentValue derives a goal's progress from its rule's source.
func (s *GoalService) currentValue(g *models.Goal) (float64, error) {
	switch models.GoalRules[g.Type].Source {
	case models.AggBodyWeight:
		return s.weight.WeightKg(), nil
	case models.AggMaxReps:
		reps, err := s.store.MaxReps(g.Exercise, g.StartDate)
		return float64(reps), err
	case models.AggMaxWeight:
		return s.store.MaxWeightLifted(g.Exercise, g.StartDate)
	case models.AggTotalMinutes:
		mins, err := s.store.TotalMinutes(g.Exercise, g.StartDate)
		return float64(mins), err
	case models.AggFrequency:
		n, err := s.store.WorkoutFrequency(g.Exercise, g.StartDate)
		return float64(n), err
	}
	return 0, fmt.Errorf("goal type %q has no value source", g.Type)
}

// expireOverdue marks active goals whose end date has passed as EXPIRED.
// Expiry is terminal: these goals never complete or reactivate again.
func (s *GoalService) expireOverdue() error {
	var overdue []int64
	now := today()
	for _, g := range s.active {
		if g.EndDate != nil && g.EndDate.Before(now) {
			overdue = append(overdue, g.ID)
		}
	}
	if len(overdue) == 0 {
		return nil
	}

	if err := s.store.Begin(); err != nil {
		return err
	}
	if err := s.store.UpdateGoalStatusBatch(overdue, models.GoalExpired); err != nil {
		s.rollback(err)
		return fmt.Errorf("expiring goals: %w", err)
	}
	if err := s.store.Commit(); err != nil {
		return fmt.Errorf("committing goal expiry: %w", err)
	}

	for _, g := range s.active {
		if g.EndDate != nil && g.EndDate.Before(now) {
			g.Status = models.GoalExpired
			color.Yellow("Goal %q expired on %s", g.Title, g.EndDate.Format(models.DateLayout))
		}
	}
	s.rebuildActive()
	return nil
}

func (s *GoalService) rebuildActive() {
	active := s.active[:0:0]
	for _, g := range s.goals {
		if g.Status == models.GoalActive {
			active = append(active, g)
		}
	}
	s.active = active
}

func (s *GoalService) rollback(cause error) {
	if err := s.store.Rollback(); err != nil {
		fmt.Printf("rollback after %v also failed: %v\n", cause, err)
	}
}

func removeGoal(goals []*models.Goal, id int64) []*models.Goal {
	out := goals[:0:0]
	for _, g := range goals {
		if g.ID != id {
			out = append(out, g)
		}
	}
	return out
}

func today() time.Time {
	return time.Now().Truncate(24 * time.Hour)
}
