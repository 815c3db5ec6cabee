// ABOUTME: Profile and body-metric coordinator, including the streak counter.
// ABOUTME: Weight changes fan out to weight goals inside the same transaction.
package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/fatih/color"

	"github.com/harperreed/heat/internal/models"
	"github.com/harperreed/heat/internal/storage"
)

// GoalRefresher is the slice of the goal engine the profile side needs:
// weight-goal re-evaluation when the body weight changes.
type GoalRefresher interface {
	EvaluateWeightGoals(weightKg float64) (*Outcome, error)
	Apply(out *Outcome)
}

// UserService owns the profile singleton, the body-metric history and the
// streak counter.
type UserService struct {
	store *storage.DB
	goals GoalRefresher

	profile *models.Profile
	history []*models.BodyMetric
}

// NewUserService loads the profile and metric history, and zeroes a streak
// that lapsed while the app was closed.
func NewUserService(store *storage.DB) (*UserService, error) {
	s := &UserService{store: store}

	profile, err := store.LoadProfile()
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	s.profile = profile

	history, err := store.ListBodyMetrics()
	if err != nil {
		return nil, fmt.Errorf("loading body metrics: %w", err)
	}
	s.history = history

	if err := s.decayStreak(); err != nil {
		return nil, err
	}
	return s, nil
}

// SetGoalRefresher wires in the goal engine. The two services reference
// each other, so the link is closed after both exist.
func (s *UserService) SetGoalRefresher(g GoalRefresher) { s.goals = g }

// Profile returns the current profile, nil before registration.
func (s *UserService) Profile() *models.Profile { return s.profile }

// History returns body metrics newest first.
func (s *UserService) History() []*models.BodyMetric { return s.history }

// IsRegistered reports whether a profile exists.
func (s *UserService) IsRegistered() bool { return s.profile != nil }

// WeightKg returns the current body weight, 0 before registration.
func (s *UserService) WeightKg() float64 {
	if s.profile == nil {
		return 0
	}
	return s.profile.WeightKg
}

// Streak returns the current consecutive-day streak.
func (s *UserService) Streak() int {
	if s.profile == nil {
		return 0
	}
	return s.profile.CurrentStreak
}

// SaveProfile registers or re-registers the user. An existing streak
// survives re-registration. The new weight is pushed through the weight
// goals in the same transaction.
func (s *UserService) SaveProfile(name string, age int, heightCm, weightKg float64, sex string) error {
	p := models.NewProfile(name, age, heightCm, weightKg, sex)
	if s.profile != nil {
		p.CurrentStreak = s.profile.CurrentStreak
		p.LastWorkoutDate = s.profile.LastWorkoutDate
	}

	if err := s.store.Begin(); err != nil {
		return err
	}
	if err := s.store.SaveProfile(p); err != nil {
		s.rollback(err)
		return fmt.Errorf("saving profile: %w", err)
	}
	out, err := s.evaluateWeight(p.WeightKg)
	if err != nil {
		s.rollback(err)
		return err
	}
	if err := s.store.Commit(); err != nil {
		return fmt.Errorf("committing profile: %w", err)
	}

	s.profile = p
	s.applyWeightOutcome(out)
	return nil
}

// UpdateProfile replaces the profile's editable fields, recomputes the
// derived stats and keeps the latest body metric in sync with them.
func (s *UserService) UpdateProfile(updated *models.Profile) error {
	if s.profile == nil {
		return fmt.Errorf("no profile to update")
	}
	updated.Recalculate()
	updated.CurrentStreak = s.profile.CurrentStreak
	updated.LastWorkoutDate = s.profile.LastWorkoutDate

	latest := s.latestMetric()
	var synced *models.BodyMetric
	if latest != nil && metricDiffers(latest, updated) {
		cp := *latest
		cp.Age = updated.Age
		cp.HeightCm = updated.HeightCm
		cp.WeightKg = updated.WeightKg
		cp.BMI = updated.BMI
		synced = &cp
	}

	if err := s.store.Begin(); err != nil {
		return err
	}
	if err := s.store.UpdateProfile(updated); err != nil {
		s.rollback(err)
		return fmt.Errorf("updating profile: %w", err)
	}
	if synced != nil {
		if err := s.store.UpdateBodyMetric(synced); err != nil {
			s.rollback(err)
			return fmt.Errorf("syncing latest body metric: %w", err)
		}
	}
	var out *Outcome
	if updated.WeightKg != s.profile.WeightKg {
		var err error
		if out, err = s.evaluateWeight(updated.WeightKg); err != nil {
			s.rollback(err)
			return err
		}
	}
	if err := s.store.Commit(); err != nil {
		return fmt.Errorf("committing profile update: %w", err)
	}

	s.profile = updated
	if synced != nil {
		*latest = *synced
	}
	s.applyWeightOutcome(out)
	return nil
}

// AddBodyMetric records a new snapshot and, when it becomes the latest
// entry, carries its stats onto the profile and through the weight goals.
func (s *UserService) AddBodyMetric(bm *models.BodyMetric) error {
	if s.profile == nil {
		return fmt.Errorf("register a profile before logging body metrics")
	}

	becomesLatest := true
	if latest := s.latestMetric(); latest != nil && bm.Date.Before(latest.Date) {
		becomesLatest = false
	}

	var updated *models.Profile
	if becomesLatest {
		cp := *s.profile
		cp.Age = bm.Age
		cp.HeightCm = bm.HeightCm
		cp.WeightKg = bm.WeightKg
		cp.Recalculate()
		updated = &cp
	}

	if err := s.store.Begin(); err != nil {
		return err
	}
	if err := s.store.InsertBodyMetric(bm); err != nil {
		s.rollback(err)
		return fmt.Errorf("saving body metric: %w", err)
	}
	var out *Outcome
	if updated != nil {
		if err := s.store.UpdateProfile(updated); err != nil {
			s.rollback(err)
			return fmt.Errorf("syncing profile from body metric: %w", err)
		}
		if updated.WeightKg != s.profile.WeightKg {
			var err error
			if out, err = s.evaluateWeight(updated.WeightKg); err != nil {
				s.rollback(err)
				return err
			}
		}
	}
	if err := s.store.Commit(); err != nil {
		return fmt.Errorf("committing body metric: %w", err)
	}

	s.history = append(s.history, bm)
	s.sortHistory()
	if updated != nil {
		s.profile = updated
	}
	s.applyWeightOutcome(out)
	return nil
}

// UpdateBodyMetric edits a snapshot. Edits to the latest entry flow back
// onto the profile.
func (s *UserService) UpdateBodyMetric(updated *models.BodyMetric) error {
	existing := s.metricByID(updated.ID)
	if existing == nil {
		return fmt.Errorf("body metric %d not found", updated.ID)
	}
	updated.BMI = models.CalculateBMI(updated.WeightKg, updated.HeightCm)

	var profile *models.Profile
	if latest := s.latestMetric(); latest != nil && latest.ID == updated.ID {
		cp := *s.profile
		cp.Age = updated.Age
		cp.HeightCm = updated.HeightCm
		cp.WeightKg = updated.WeightKg
		cp.Recalculate()
		profile = &cp
	}

	if err := s.store.Begin(); err != nil {
		return err
	}
	if err := s.store.UpdateBodyMetric(updated); err != nil {
		s.rollback(err)
		return fmt.Errorf("updating body metric %d: %w", updated.ID, err)
	}
	var out *Outcome
	if profile != nil {
		if err := s.store.UpdateProfile(profile); err != nil {
			s.rollback(err)
			return fmt.Errorf("syncing profile from body metric: %w", err)
		}
		if profile.WeightKg != s.profile.WeightKg {
			var err error
			if out, err = s.evaluateWeight(profile.WeightKg); err != nil {
				s.rollback(err)
				return err
			}
		}
	}
	if err := s.store.Commit(); err != nil {
		return fmt.Errorf("committing body metric update: %w", err)
	}

	*existing = *updated
	s.sortHistory()
	if profile != nil {
		s.profile = profile
	}
	s.applyWeightOutcome(out)
	return nil
}

// DeleteBodyMetric removes a snapshot. Deleting the latest entry reverts
// the profile to the next most recent one, when there is one.
func (s *UserService) DeleteBodyMetric(id int64) error {
	existing := s.metricByID(id)
	if existing == nil {
		return fmt.Errorf("body metric %d not found", id)
	}

	var profile *models.Profile
	latest := s.latestMetric()
	if latest != nil && latest.ID == id && len(s.history) > 1 {
		prev := s.history[1]
		cp := *s.profile
		cp.Age = prev.Age
		cp.HeightCm = prev.HeightCm
		cp.WeightKg = prev.WeightKg
		cp.Recalculate()
		profile = &cp
	}

	if err := s.store.Begin(); err != nil {
		return err
	}
	if err := s.store.DeleteBodyMetric(id); err != nil {
		s.rollback(err)
		return fmt.Errorf("deleting body metric %d: %w", id, err)
	}
	var out *Outcome
	if profile != nil {
		if err := s.store.UpdateProfile(profile); err != nil {
			s.rollback(err)
			return fmt.Errorf("reverting profile after delete: %w", err)
		}
		if profile.WeightKg != s.profile.WeightKg {
			var err error
			if out, err = s.evaluateWeight(profile.WeightKg); err != nil {
				s.rollback(err)
				return err
			}
		}
	}
	if err := s.store.Commit(); err != nil {
		return fmt.Errorf("committing body metric delete: %w", err)
	}

	trimmed := s.history[:0:0]
	for _, bm := range s.history {
		if bm.ID != id {
			trimmed = append(trimmed, bm)
		}
	}
	s.history = trimmed
	if profile != nil {
		s.profile = profile
	}
	s.applyWeightOutcome(out)
	return nil
}

// RefreshStreak recomputes the streak from the full workout date set and
// persists it. Runs after workout mutations commit.
func (s *UserService) RefreshStreak(dates []time.Time) error {
	if s.profile == nil {
		return nil
	}

	streak, last := RecalculateStreak(dates)
	prev := s.profile.CurrentStreak

	cp := *s.profile
	cp.CurrentStreak = streak
	if last.IsZero() {
		cp.LastWorkoutDate = nil
	} else {
		cp.LastWorkoutDate = &last
	}

	if err := s.store.UpdateProfile(&cp); err != nil {
		return fmt.Errorf("saving streak: %w", err)
	}
	s.profile = &cp

	if streak > prev {
		color.Green("Streak: %d day(s) in a row", streak)
	}
	return nil
}

// decayStreak zeroes a streak whose last workout is more than a day old.
func (s *UserService) decayStreak() error {
	if s.profile == nil || s.profile.CurrentStreak == 0 {
		return nil
	}
	if !StreakBroken(s.profile.LastWorkoutDate, time.Now()) {
		return nil
	}

	cp := *s.profile
	cp.CurrentStreak = 0
	if err := s.store.UpdateProfile(&cp); err != nil {
		return fmt.Errorf("resetting lapsed streak: %w", err)
	}
	s.profile = &cp
	color.Yellow("Your streak lapsed. Log a workout to start a new one.")
	return nil
}

// evaluateWeight runs the weight goals when the engine is wired in.
func (s *UserService) evaluateWeight(weightKg float64) (*Outcome, error) {
	if s.goals == nil {
		return nil, nil
	}
	out, err := s.goals.EvaluateWeightGoals(weightKg)
	if err != nil {
		return nil, err
	}
	if len(out.Completed) > 0 {
		if err := s.store.UpdateGoalStatusBatch(out.CompletedIDs(), models.GoalCompleted); err != nil {
			return nil, fmt.Errorf("completing weight goals: %w", err)
		}
	}
	return out, nil
}

func (s *UserService) applyWeightOutcome(out *Outcome) {
	if s.goals != nil && out != nil {
		s.goals.Apply(out)
	}
}

func (s *UserService) latestMetric() *models.BodyMetric {
	if len(s.history) == 0 {
		return nil
	}
	return s.history[0]
}

func (s *UserService) metricByID(id int64) *models.BodyMetric {
	for _, bm := range s.history {
		if bm.ID == id {
			return bm
		}
	}
	return nil
}

func (s *UserService) sortHistory() {
	sort.SliceStable(s.history, func(i, j int) bool {
		if !s.history[i].Date.Equal(s.history[j].Date) {
			return s.history[i].Date.After(s.history[j].Date)
		}
		return s.history[i].ID > s.history[j].ID
	})
}

func metricDiffers(bm *models.BodyMetric, p *models.Profile) bool {
	return bm.Age != p.Age || bm.HeightCm != p.HeightCm || bm.WeightKg != p.WeightKg
}

func (s *UserService) rollback(cause error) {
	if err := s.store.Rollback(); err != nil {
		fmt.Printf("rollback after %v also failed: %v\n", cause, err)
	}
}
