// ABOUTME: Workout coordinator: every log/edit/delete runs as one
// ABOUTME: transaction over history, PRs, goals and streak, caches after.
package service

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/harperreed/heat/internal/models"
	"github.com/harperreed/heat/internal/storage"
)

// goalEngine is the slice of the goal service the workout side needs.
type goalEngine interface {
	RefreshForWorkout(w *models.Workout) (*Outcome, error)
	Apply(out *Outcome)
}

// streakKeeper recomputes and persists the streak after workout mutations.
type streakKeeper interface {
	RefreshStreak(dates []time.Time) error
}

// WorkoutService coordinates workout mutations and the derived state that
// hangs off them. Caches (history slice, record map) mirror the store and
// are only touched after a successful commit.
type WorkoutService struct {
	store  *storage.DB
	goals  goalEngine
	streak streakKeeper

	workouts   []*models.Workout
	records    map[string]*models.PersonalRecord
	activities []*models.Activity
	quotes     map[string][]string
}

// NewWorkoutService loads workout history, records and reference data.
func NewWorkoutService(store *storage.DB, goals goalEngine, streak streakKeeper) (*WorkoutService, error) {
	s := &WorkoutService{store: store, goals: goals, streak: streak}

	workouts, err := store.ListWorkouts()
	if err != nil {
		return nil, fmt.Errorf("loading workouts: %w", err)
	}
	s.workouts = workouts

	records, err := store.ListRecords()
	if err != nil {
		return nil, fmt.Errorf("loading records: %w", err)
	}
	s.records = records

	activities, err := store.ListActivities()
	if err != nil {
		return nil, fmt.Errorf("loading activity catalog: %w", err)
	}
	s.activities = activities

	quotes, err := store.ListQuotes()
	if err != nil {
		return nil, fmt.Errorf("loading quotes: %w", err)
	}
	s.quotes = make(map[string][]string)
	for _, q := range quotes {
		s.quotes[q.Level] = append(s.quotes[q.Level], q.Text)
	}

	return s, nil
}

// LogWorkout inserts a workout and settles every derived table with it in
// one transaction: PR check, goal refresh, then post-commit the caches and
// the streak.
func (s *WorkoutService) LogWorkout(w *models.Workout) error {
	if err := s.store.Begin(); err != nil {
		return err
	}

	if err := s.store.InsertWorkout(w); err != nil {
		s.rollback(err)
		return fmt.Errorf("saving workout: %w", err)
	}

	key := w.PRKey()
	current, err := s.store.GetRecord(key)
	if err != nil {
		s.rollback(err)
		return fmt.Errorf("checking record %q: %w", key, err)
	}
	newPR := IsNewPR(w, current)
	if newPR {
		if err := s.store.UpsertRecord(models.RecordFromWorkout(w)); err != nil {
			s.rollback(err)
			return fmt.Errorf("saving record %q: %w", key, err)
		}
	}

	out, err := s.refreshGoals(w)
	if err != nil {
		s.rollback(err)
		return err
	}

	if err := s.store.Commit(); err != nil {
		return fmt.Errorf("committing workout: %w", err)
	}

	s.workouts = append(s.workouts, w)
	s.sortWorkouts()
	if newPR {
		s.records[key] = models.RecordFromWorkout(w)
		color.Green("New personal record for %s!", key)
	}
	s.goals.Apply(out)
	return s.streak.RefreshStreak(s.workoutDates())
}

// UpdateWorkout replaces a workout and reconciles both PR lineages it may
// have touched: the one it is leaving and the one it now belongs to.
func (s *WorkoutService) UpdateWorkout(original, updated *models.Workout) error {
	if original.ID != updated.ID {
		return fmt.Errorf("workout id mismatch: %d vs %d", original.ID, updated.ID)
	}

	if err := s.store.Begin(); err != nil {
		return err
	}

	if err := s.store.UpdateWorkout(updated); err != nil {
		s.rollback(err)
		return fmt.Errorf("updating workout %d: %w", updated.ID, err)
	}

	prChanged, err := s.reconcileRecords(original, updated)
	if err != nil {
		s.rollback(err)
		return err
	}

	out, err := s.refreshGoals(updated)
	if err != nil {
		s.rollback(err)
		return err
	}

	if err := s.store.Commit(); err != nil {
		return fmt.Errorf("committing workout update: %w", err)
	}

	for i, w := range s.workouts {
		if w.ID == updated.ID {
			s.workouts[i] = updated
			break
		}
	}
	s.sortWorkouts()
	if prChanged {
		if err := s.reloadRecords(); err != nil {
			return err
		}
	}
	s.goals.Apply(out)
	return s.streak.RefreshStreak(s.workoutDates())
}

// DeleteWorkout removes a workout. When it was the record holder, the
// lineage is rebuilt from the survivors before the transaction commits.
func (s *WorkoutService) DeleteWorkout(w *models.Workout) error {
	if err := s.store.Begin(); err != nil {
		return err
	}

	if err := s.store.DeleteWorkout(w.ID); err != nil {
		s.rollback(err)
		return fmt.Errorf("deleting workout %d: %w", w.ID, err)
	}

	key := w.PRKey()
	current, err := s.store.GetRecord(key)
	if err != nil {
		s.rollback(err)
		return fmt.Errorf("checking record %q: %w", key, err)
	}
	prChanged := false
	if MatchesCurrentPR(w, current) {
		if _, err := RecalculatePR(s.store, w.Exercise, key, w.Kind); err != nil {
			s.rollback(err)
			return err
		}
		prChanged = true
	}

	out, err := s.refreshGoals(w)
	if err != nil {
		s.rollback(err)
		return err
	}

	if err := s.store.Commit(); err != nil {
		return fmt.Errorf("committing workout delete: %w", err)
	}

	remaining := s.workouts[:0:0]
	for _, cached := range s.workouts {
		if cached.ID != w.ID {
			remaining = append(remaining, cached)
		}
	}
	s.workouts = remaining
	if prChanged {
		if err := s.reloadRecords(); err != nil {
			return err
		}
	}
	s.goals.Apply(out)
	return s.streak.RefreshStreak(s.workoutDates())
}

// reconcileRecords settles the PR table after an edit. If the edit moved
// the workout between lineages, the old lineage is rebuilt when the
// workout held its record; either way the new values are tried against
// the lineage the workout now belongs to.
func (s *WorkoutService) reconcileRecords(original, updated *models.Workout) (bool, error) {
	oldKey := original.PRKey()
	newKey := updated.PRKey()
	changed := false

	oldRec, err := s.store.GetRecord(oldKey)
	if err != nil {
		return false, fmt.Errorf("checking record %q: %w", oldKey, err)
	}

	if oldKey == newKey {
		// Same lineage. If the workout held the record, its values just
		// changed underneath it, so rebuild. Otherwise see if the new
		// values take the record.
		if MatchesCurrentPR(original, oldRec) {
			if _, err := RecalculatePR(s.store, updated.Exercise, newKey, updated.Kind); err != nil {
				return false, err
			}
			return true, nil
		}
		if IsNewPR(updated, oldRec) {
			if err := s.store.UpsertRecord(models.RecordFromWorkout(updated)); err != nil {
				return false, fmt.Errorf("saving record %q: %w", newKey, err)
			}
			return true, nil
		}
		return false, nil
	}

	if MatchesCurrentPR(original, oldRec) {
		if _, err := RecalculatePR(s.store, original.Exercise, oldKey, original.Kind); err != nil {
			return false, err
		}
		changed = true
	}

	newRec, err := s.store.GetRecord(newKey)
	if err != nil {
		return false, fmt.Errorf("checking record %q: %w", newKey, err)
	}
	if IsNewPR(updated, newRec) {
		if err := s.store.UpsertRecord(models.RecordFromWorkout(updated)); err != nil {
			return false, fmt.Errorf("saving record %q: %w", newKey, err)
		}
		changed = true
	}

	return changed, nil
}

// refreshGoals runs the goal engine inside the open transaction and
// persists the COMPLETED batch alongside it.
func (s *WorkoutService) refreshGoals(w *models.Workout) (*Outcome, error) {
	out, err := s.goals.RefreshForWorkout(w)
	if err != nil {
		return nil, err
	}
	if len(out.Completed) > 0 {
		if err := s.store.UpdateGoalStatusBatch(out.CompletedIDs(), models.GoalCompleted); err != nil {
			return nil, fmt.Errorf("completing goals: %w", err)
		}
	}
	return out, nil
}

// Workouts returns the cached history, newest first.
func (s *WorkoutService) Workouts() []*models.Workout { return s.workouts }

// WeeklyWorkouts returns workouts from the last seven days.
func (s *WorkoutService) WeeklyWorkouts() []*models.Workout {
	cutoff := time.Now().AddDate(0, 0, -7)
	var week []*models.Workout
	for _, w := range s.workouts {
		if w.Date.After(cutoff) {
			week = append(week, w)
		}
	}
	return week
}

// TotalCalories sums calories over a workout list.
func TotalCalories(workouts []*models.Workout) float64 {
	var total float64
	for _, w := range workouts {
		total += w.CaloriesBurned
	}
	return total
}

// TotalTrainingVolume sums strength training volume over a workout list.
func TotalTrainingVolume(workouts []*models.Workout) float64 {
	var total float64
	for _, w := range workouts {
		if w.Strength != nil {
			total += w.Strength.TrainingVolumeKg
		}
	}
	return total
}

// Records returns the PR table sorted by key.
func (s *WorkoutService) Records() []*models.PersonalRecord {
	out := make([]*models.PersonalRecord, 0, len(s.records))
	for _, pr := range s.records {
		out = append(out, pr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// DeleteRecord removes one PR entry directly. History is untouched, so
// the record comes back if a better workout for the lineage is logged.
func (s *WorkoutService) DeleteRecord(key string) error {
	if err := s.store.DeleteRecord(key); err != nil {
		return fmt.Errorf("deleting record %q: %w", key, err)
	}
	delete(s.records, key)
	return nil
}

// Activities returns the seeded catalog.
func (s *WorkoutService) Activities() []*models.Activity { return s.activities }

// ActivityNames lists catalog names for one kind, sorted.
func (s *WorkoutService) ActivityNames(kind models.Kind) []string {
	var names []string
	for _, a := range s.activities {
		if a.Kind == kind {
			names = append(names, a.Name)
		}
	}
	sort.Strings(names)
	return names
}

// LookupActivity finds a catalog entry by name, case-insensitively.
func (s *WorkoutService) LookupActivity(name string) *models.Activity {
	for _, a := range s.activities {
		if strings.EqualFold(a.Name, name) {
			return a
		}
	}
	return nil
}

// Quote picks a random quote at the tone the streak has earned, falling
// back through the milder buckets when one is empty.
func (s *WorkoutService) Quote(streak int) string {
	level := models.MotivationLevel(streak)
	for _, l := range []string{level, models.QuoteStandard, models.QuoteFirm, models.QuoteHarsh} {
		if qs := s.quotes[l]; len(qs) > 0 {
			return qs[rand.Intn(len(qs))]
		}
	}
	return "Stay consistent."
}

func (s *WorkoutService) workoutDates() []time.Time {
	dates := make([]time.Time, 0, len(s.workouts))
	for _, w := range s.workouts {
		dates = append(dates, w.Date)
	}
	return dates
}

func (s *WorkoutService) reloadRecords() error {
	records, err := s.store.ListRecords()
	if err != nil {
		return fmt.Errorf("reloading records: %w", err)
	}
	s.records = records
	return nil
}

func (s *WorkoutService) sortWorkouts() {
	sort.SliceStable(s.workouts, func(i, j int) bool {
		if !s.workouts[i].Date.Equal(s.workouts[j].Date) {
			return s.workouts[i].Date.After(s.workouts[j].Date)
		}
		return s.workouts[i].ID > s.workouts[j].ID
	})
}

func (s *WorkoutService) rollback(cause error) {
	if err := s.store.Rollback(); err != nil {
		fmt.Printf("rollback after %v also failed: %v\n", cause, err)
	}
}
