// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers.
package mcp

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/heat/internal/service"
	"github.com/harperreed/heat/internal/storage"
)

// setupServer builds an MCP server over a wired service graph in a temp dir.
func setupServer(t *testing.T) *Server {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "heat.db")
	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	users, err := service.NewUserService(store)
	if err != nil {
		t.Fatalf("Failed to build user service: %v", err)
	}
	goals, err := service.NewGoalService(store, users)
	if err != nil {
		t.Fatalf("Failed to build goal service: %v", err)
	}
	users.SetGoalRefresher(goals)
	workouts, err := service.NewWorkoutService(store, goals, users)
	if err != nil {
		t.Fatalf("Failed to build workout service: %v", err)
	}

	if err := users.SaveProfile("Alex", 30, 180, 80, "M"); err != nil {
		t.Fatalf("Failed to register profile: %v", err)
	}

	server, err := NewServer(workouts, goals, users)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server
}

func TestNewServer(t *testing.T) {
	server := setupServer(t)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.workouts == nil || server.goals == nil || server.users == nil {
		t.Error("Expected services to be wired")
	}
}

func TestHandleLogWorkout(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     logWorkoutInput
		wantErr   bool
		errSubstr string
	}{
		{
			name: "valid cardio workout",
			input: logWorkoutInput{
				Kind:            "cardio",
				Exercise:        "Running",
				Date:            "2026-08-01",
				DurationMinutes: 30,
			},
			wantErr: false,
		},
		{
			name: "valid strength workout",
			input: logWorkoutInput{
				Kind:             "strength",
				Exercise:         "Bench Press",
				Date:             "2026-08-02",
				DurationMinutes:  45,
				Sets:             3,
				Reps:             8,
				ExternalWeightKg: 60,
			},
			wantErr: false,
		},
		{
			name: "unknown kind",
			input: logWorkoutInput{
				Kind:            "pilates",
				Exercise:        "Running",
				DurationMinutes: 30,
			},
			wantErr:   true,
			errSubstr: "unknown workout kind",
		},
		{
			name: "strength without sets",
			input: logWorkoutInput{
				Kind:            "strength",
				Exercise:        "Bench Press",
				DurationMinutes: 45,
			},
			wantErr:   true,
			errSubstr: "sets and reps",
		},
		{
			name: "bad date",
			input: logWorkoutInput{
				Kind:            "cardio",
				Exercise:        "Running",
				Date:            "not-a-date",
				DurationMinutes: 30,
			},
			wantErr:   true,
			errSubstr: "invalid date",
		},
		{
			name: "zero duration",
			input: logWorkoutInput{
				Kind:     "cardio",
				Exercise: "Running",
			},
			wantErr:   true,
			errSubstr: "duration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleLogWorkout(ctx, &mcp.CallToolRequest{}, tt.input)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				} else if tt.errSubstr != "" && !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("Error %q should contain %q", err.Error(), tt.errSubstr)
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}
			if output.ID == 0 {
				t.Error("Expected assigned workout ID")
			}
			if output.Message == "" {
				t.Error("Expected non-empty Message")
			}
		})
	}
}

func TestHandleListWorkouts(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	for _, in := range []logWorkoutInput{
		{Kind: "cardio", Exercise: "Running", Date: "2026-08-01", DurationMinutes: 30},
		{Kind: "cardio", Exercise: "Cycling", Date: "2026-08-02", DurationMinutes: 45},
	} {
		if _, _, err := server.handleLogWorkout(ctx, &mcp.CallToolRequest{}, in); err != nil {
			t.Fatalf("Failed to log workout: %v", err)
		}
	}

	_, output, err := server.handleListWorkouts(ctx, &mcp.CallToolRequest{}, listWorkoutsInput{Limit: 1})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output == nil {
		t.Error("Expected non-nil output")
	}
}

func TestHandleListWorkoutsEmpty(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	_, output, err := server.handleListWorkouts(ctx, &mcp.CallToolRequest{}, listWorkoutsInput{})
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if output == nil {
		t.Error("Expected non-nil output")
	}
}

func TestHandleDeleteWorkout(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	_, logged, err := server.handleLogWorkout(ctx, &mcp.CallToolRequest{}, logWorkoutInput{
		Kind: "cardio", Exercise: "Running", Date: "2026-08-01", DurationMinutes: 30,
	})
	if err != nil {
		t.Fatalf("Failed to log workout: %v", err)
	}

	_, output, err := server.handleDeleteWorkout(ctx, &mcp.CallToolRequest{}, deleteWorkoutInput{ID: logged.ID})
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if output.Message == "" {
		t.Error("Expected non-empty message")
	}
	if len(server.workouts.Workouts()) != 0 {
		t.Error("Expected workout to be deleted")
	}
}

func TestHandleDeleteWorkoutNotFound(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	_, _, err := server.handleDeleteWorkout(ctx, &mcp.CallToolRequest{}, deleteWorkoutInput{ID: 999})
	if err == nil {
		t.Error("Expected error for nonexistent workout")
	}
}

func TestHandleListRecords(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	_, output, err := server.handleListRecords(ctx, &mcp.CallToolRequest{}, struct{}{})
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if output == nil {
		t.Error("Expected non-nil output for empty records")
	}

	if _, _, err := server.handleLogWorkout(ctx, &mcp.CallToolRequest{}, logWorkoutInput{
		Kind: "cardio", Exercise: "Running", Date: "2026-08-01", DurationMinutes: 30,
	}); err != nil {
		t.Fatalf("Failed to log workout: %v", err)
	}

	_, output, err = server.handleListRecords(ctx, &mcp.CallToolRequest{}, struct{}{})
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if output == nil {
		t.Error("Expected records after logging a workout")
	}
}

func TestHandleCreateGoal(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	_, output, err := server.handleCreateGoal(ctx, &mcp.CallToolRequest{}, createGoalInput{
		Title:       "Run an hour a week",
		Exercise:    "Running",
		Type:        "duration",
		StartDate:   "2026-08-01",
		TargetValue: 60,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output.ID == 0 {
		t.Error("Expected assigned goal ID")
	}

	_, goals, err := server.handleListGoals(ctx, &mcp.CallToolRequest{}, listGoalsInput{ActiveOnly: true})
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if goals == nil {
		t.Error("Expected active goals in output")
	}
}

func TestHandleCreateGoalInvalidType(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	_, _, err := server.handleCreateGoal(ctx, &mcp.CallToolRequest{}, createGoalInput{
		Title:       "Nope",
		Type:        "levitation",
		TargetValue: 1,
	})
	if err == nil {
		t.Error("Expected error for unknown goal type")
	}
}

func TestHandleGetProfile(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	_, output, err := server.handleGetProfile(ctx, &mcp.CallToolRequest{}, struct{}{})
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if output == nil {
		t.Error("Expected profile output")
	}
}

func TestHandleGetQuote(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	_, output, err := server.handleGetQuote(ctx, &mcp.CallToolRequest{}, getQuoteInput{})
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if output.Message == "" {
		t.Error("Expected a quote")
	}
}

func TestHandleRecentResource(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	if _, _, err := server.handleLogWorkout(ctx, &mcp.CallToolRequest{}, logWorkoutInput{
		Kind: "cardio", Exercise: "Running", Date: "2026-08-01", DurationMinutes: 30,
	}); err != nil {
		t.Fatalf("Failed to log workout: %v", err)
	}

	result, err := server.handleRecentResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.Contents) == 0 {
		t.Fatal("Expected non-empty contents")
	}
	if result.Contents[0].URI != "heat://recent" {
		t.Errorf("URI = %s, want heat://recent", result.Contents[0].URI)
	}
	if result.Contents[0].MIMEType != "application/json" {
		t.Errorf("MIMEType = %s, want application/json", result.Contents[0].MIMEType)
	}
	if !strings.Contains(result.Contents[0].Text, "Running") {
		t.Error("Expected logged workout in result")
	}
}

func TestHandleRecordsResource(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	result, err := server.handleRecordsResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Contents[0].URI != "heat://records" {
		t.Errorf("URI = %s, want heat://records", result.Contents[0].URI)
	}
}

func TestHandleSummaryResource(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	today := time.Now().Truncate(24 * time.Hour).Format("2006-01-02")
	if _, _, err := server.handleLogWorkout(ctx, &mcp.CallToolRequest{}, logWorkoutInput{
		Kind: "cardio", Exercise: "Running", Date: today, DurationMinutes: 30,
	}); err != nil {
		t.Fatalf("Failed to log workout: %v", err)
	}

	result, err := server.handleSummaryResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Contents[0].URI != "heat://summary" {
		t.Errorf("URI = %s, want heat://summary", result.Contents[0].URI)
	}

	text := result.Contents[0].Text
	if !strings.Contains(text, "streak_days") {
		t.Error("Expected streak in summary")
	}
	if !strings.Contains(text, "active_goals") {
		t.Error("Expected goals section in summary")
	}
}
