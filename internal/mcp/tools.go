// ABOUTME: MCP tool implementations for the heat fitness tracker.
// ABOUTME: Exposes workout logging, records, goals and profile over MCP.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/heat/internal/models"
)

func (s *Server) registerTools() {
	// log_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_workout",
		Description: "Log a strength or cardio workout; updates records, goals and streak",
	}, s.handleLogWorkout)

	// list_workouts
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List recent workouts, newest first",
	}, s.handleListWorkouts)

	// delete_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_workout",
		Description: "Delete a workout by ID; records and goals are recomputed",
	}, s.handleDeleteWorkout)

	// list_records
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_records",
		Description: "List current personal records",
	}, s.handleListRecords)

	// list_goals
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_goals",
		Description: "List goals, optionally only the active ones",
	}, s.handleListGoals)

	// create_goal
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_goal",
		Description: "Create a new goal; rejected when the target is already met",
	}, s.handleCreateGoal)

	// get_profile
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_profile",
		Description: "Get the user profile with derived stats and streak",
	}, s.handleGetProfile)

	// get_quote
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_quote",
		Description: "Get a motivational quote tuned to the current streak",
	}, s.handleGetQuote)
}

// Tool input/output types

type logWorkoutInput struct {
	Kind             string  `json:"kind" jsonschema:"Workout kind: strength or cardio"`
	Exercise         string  `json:"exercise" jsonschema:"Exercise name"`
	Date             string  `json:"date,omitempty" jsonschema:"Date (YYYY-MM-DD), defaults to today"`
	DurationMinutes  int     `json:"duration_minutes" jsonschema:"Duration in minutes"`
	Sets             int     `json:"sets,omitempty" jsonschema:"Sets (strength only)"`
	Reps             int     `json:"reps,omitempty" jsonschema:"Reps per set (strength only)"`
	ExternalWeightKg float64 `json:"external_weight_kg,omitempty" jsonschema:"External load in kg (strength only)"`
}

type workoutOutput struct {
	ID       int64  `json:"id"`
	Exercise string `json:"exercise"`
	Message  string `json:"message"`
}

type listWorkoutsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type deleteWorkoutInput struct {
	ID int64 `json:"id" jsonschema:"Workout ID"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type listGoalsInput struct {
	ActiveOnly bool `json:"active_only,omitempty" jsonschema:"Only list goals still in play"`
}

type createGoalInput struct {
	Title       string  `json:"title" jsonschema:"Goal title"`
	Exercise    string  `json:"exercise,omitempty" jsonschema:"Exercise name; empty for body-weight goals"`
	Type        string  `json:"type" jsonschema:"Goal type (weight loss, weight gain, reps, duration, weight lifted, frequency)"`
	StartDate   string  `json:"start_date,omitempty" jsonschema:"Start date (YYYY-MM-DD), defaults to today"`
	EndDate     string  `json:"end_date,omitempty" jsonschema:"End date (YYYY-MM-DD); empty for open-ended"`
	TargetValue float64 `json:"target_value" jsonschema:"Target value"`
}

type goalOutput struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

type getQuoteInput struct{}

// Tool handlers

func (s *Server) handleLogWorkout(ctx context.Context, req *mcp.CallToolRequest, input logWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	kind, err := models.ParseKind(input.Kind)
	if err != nil {
		return nil, workoutOutput{}, err
	}
	if input.DurationMinutes <= 0 {
		return nil, workoutOutput{}, fmt.Errorf("duration must be positive")
	}

	date := time.Now().Truncate(24 * time.Hour)
	if input.Date != "" {
		date, err = time.Parse(models.DateLayout, input.Date)
		if err != nil {
			return nil, workoutOutput{}, fmt.Errorf("invalid date %q: %w", input.Date, err)
		}
	}

	met, factor := 5.0, 0.0
	if a := s.workouts.LookupActivity(input.Exercise); a != nil {
		met, factor = a.MetValue, a.BodyWeightFactor
	}
	calories := models.CalculateCaloriesBurned(met, s.users.WeightKg(), input.DurationMinutes)

	var w *models.Workout
	switch kind {
	case models.Strength:
		if input.Sets <= 0 || input.Reps <= 0 {
			return nil, workoutOutput{}, fmt.Errorf("strength workouts need sets and reps")
		}
		w = models.NewStrengthWorkout(input.Exercise, date, input.DurationMinutes, calories,
			input.Sets, input.Reps, s.users.WeightKg(), input.ExternalWeightKg, factor)
	case models.Cardio:
		w = models.NewCardioWorkout(input.Exercise, date, input.DurationMinutes, calories)
	}

	if err := s.workouts.LogWorkout(w); err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to log workout: %w", err)
	}

	return nil, workoutOutput{
		ID:       w.ID,
		Exercise: w.Exercise,
		Message:  fmt.Sprintf("Logged %s on %s (ID: %d)", w.Exercise, date.Format(models.DateLayout), w.ID),
	}, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	workouts := s.workouts.Workouts()
	if len(workouts) > input.Limit {
		workouts = workouts[:input.Limit]
	}
	if len(workouts) == 0 {
		return nil, map[string]interface{}{"message": "No workouts found."}, nil
	}

	return nil, workouts, nil
}

func (s *Server) handleDeleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input deleteWorkoutInput) (*mcp.CallToolResult, simpleOutput, error) {
	var target *models.Workout
	for _, w := range s.workouts.Workouts() {
		if w.ID == input.ID {
			target = w
			break
		}
	}
	if target == nil {
		return nil, simpleOutput{}, fmt.Errorf("workout not found: %d", input.ID)
	}

	if err := s.workouts.DeleteWorkout(target); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete workout: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted workout %d", input.ID),
	}, nil
}

func (s *Server) handleListRecords(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	records := s.workouts.Records()
	if len(records) == 0 {
		return nil, map[string]interface{}{"message": "No personal records yet."}, nil
	}
	return nil, records, nil
}

func (s *Server) handleListGoals(ctx context.Context, req *mcp.CallToolRequest, input listGoalsInput) (*mcp.CallToolResult, any, error) {
	goals := s.goals.Goals()
	if input.ActiveOnly {
		goals = s.goals.ActiveGoals()
	}
	if len(goals) == 0 {
		return nil, map[string]interface{}{"message": "No goals found."}, nil
	}
	return nil, goals, nil
}

func (s *Server) handleCreateGoal(ctx context.Context, req *mcp.CallToolRequest, input createGoalInput) (*mcp.CallToolResult, goalOutput, error) {
	goalType, err := models.ParseGoalType(input.Type)
	if err != nil {
		return nil, goalOutput{}, err
	}

	start := time.Now().Truncate(24 * time.Hour)
	if input.StartDate != "" {
		start, err = time.Parse(models.DateLayout, input.StartDate)
		if err != nil {
			return nil, goalOutput{}, fmt.Errorf("invalid start date %q: %w", input.StartDate, err)
		}
	}
	var end *time.Time
	if input.EndDate != "" {
		e, err := time.Parse(models.DateLayout, input.EndDate)
		if err != nil {
			return nil, goalOutput{}, fmt.Errorf("invalid end date %q: %w", input.EndDate, err)
		}
		end = &e
	}

	g := models.NewGoal(input.Title, input.Exercise, goalType, start, end, 0, input.TargetValue)
	if err := s.goals.CreateGoal(g); err != nil {
		return nil, goalOutput{}, fmt.Errorf("failed to create goal: %w", err)
	}

	return nil, goalOutput{
		ID:      g.ID,
		Title:   g.Title,
		Message: fmt.Sprintf("Created goal %q (ID: %d)", g.Title, g.ID),
	}, nil
}

func (s *Server) handleGetProfile(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	p := s.users.Profile()
	if p == nil {
		return nil, map[string]interface{}{"message": "No profile registered."}, nil
	}
	return nil, p, nil
}

func (s *Server) handleGetQuote(ctx context.Context, req *mcp.CallToolRequest, input getQuoteInput) (*mcp.CallToolResult, simpleOutput, error) {
	return nil, simpleOutput{
		Message: s.workouts.Quote(s.users.Streak()),
	}, nil
}
