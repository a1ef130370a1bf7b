package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/pluqqy/promptcat/internal/cli"
	"github.com/pluqqy/promptcat/internal/mockserver"
	"github.com/pluqqy/promptcat/pkg/api"
)

var (
	mockAddr     string
	mockAllowAll bool
)

// NewMockServerCommand creates the mock-server command
func NewMockServerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Serve the demo catalog over HTTP",
		Long: `Serve the built-in demo catalog with the same HTTP API as the remote
service. Point promptcat (or a browser frontend) at it for offline work.

Examples:
  promptcat mock-server --addr :8000
  promptcat --api-url http://localhost:8000 search email`,
		Args: cobra.NoArgs,
		RunE: runMockServer,
	}

	cmd.Flags().StringVar(&mockAddr, "addr", ":8000", "Address to listen on")
	cmd.Flags().BoolVar(&mockAllowAll, "allow-all", true, "Allow cross-origin requests from any origin")

	return cmd
}

func runMockServer(cmd *cobra.Command, args []string) error {
	svc := api.NewSeededCatalog(api.WithMemoryLogger(rt.Log))
	srv := mockserver.New(mockserver.Config{Addr: mockAddr, AllowAll: mockAllowAll}, svc, rt.Log)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	cli.PrintInfo("Serving the demo catalog on %s (Ctrl+C to stop)", mockAddr)

	select {
	case err := <-errCh:
		return err
	case <-cmd.Context().Done():
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	return <-errCh
}
