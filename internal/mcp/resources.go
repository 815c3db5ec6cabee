// ABOUTME: MCP resource implementations for the heat fitness tracker.
// ABOUTME: Provides heat://recent, heat://records, and heat://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/heat/internal/service"
)

func (s *Server) registerResources() {
	// heat://recent - Last 10 workouts
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "heat://recent",
		Name:        "Recent Workouts",
		Description: "Last 10 logged workouts",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// heat://records - Current personal records
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "heat://records",
		Name:        "Personal Records",
		Description: "Best performance per exercise lineage",
		MIMEType:    "application/json",
	}, s.handleRecordsResource)

	// heat://summary - Dashboard with profile, weekly totals and active goals
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "heat://summary",
		Name:        "Training Summary Dashboard",
		Description: "Profile, streak, weekly totals and active goals",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	workouts := s.workouts.Workouts()
	if len(workouts) > 10 {
		workouts = workouts[:10]
	}

	data, err := json.MarshalIndent(map[string]interface{}{
		"workouts": workouts,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "heat://recent",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleRecordsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(map[string]interface{}{
		"records": s.workouts.Records(),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "heat://records",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	week := s.workouts.WeeklyWorkouts()

	result := map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"profile":      s.users.Profile(),
		"streak_days":  s.users.Streak(),
		"week": map[string]interface{}{
			"workouts":           len(week),
			"calories_burned":    service.TotalCalories(week),
			"training_volume_kg": service.TotalTrainingVolume(week),
		},
		"active_goals": s.goals.ActiveGoals(),
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "heat://summary",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
