// ABOUTME: MCP server setup for the heat fitness tracker.
// ABOUTME: Wraps the MCP server with the workout, goal and user services.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/heat/internal/service"
)

// Server wraps the MCP server with service access.
type Server struct {
	mcpServer *mcp.Server
	workouts  *service.WorkoutService
	goals     *service.GoalService
	users     *service.UserService
}

// NewServer creates a new MCP server over the wired service graph.
func NewServer(workouts *service.WorkoutService, goals *service.GoalService, users *service.UserService) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "heat",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		workouts:  workouts,
		goals:     goals,
		users:     users,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
