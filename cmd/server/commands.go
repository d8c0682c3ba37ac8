package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/cloneai/internal/coordinator"
	"github.com/rpggio/cloneai/internal/generation"
	"github.com/spf13/cobra"
)

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web UI, JSON API and MCP endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			addr := fmt.Sprintf("%s:%d", c.cfg.Server.Host, c.cfg.Server.Port)
			httpServer := &http.Server{
				Addr:              addr,
				Handler:           a.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				c.logger.Info("server listening", "addr", addr, "auth", c.cfg.Auth.Token != "")
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			return waitForShutdown(c, httpServer, errCh)
		},
	}
}

func waitForShutdown(c *cli, server *http.Server, errCh <-chan error) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c.logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		c.logger.Error("shutdown error", "error", err)
	}
	return nil
}

func newMCPCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := c.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			c.logger.Info("starting stdio transport")
			// Run blocks until stdin closes or the context is canceled.
			if err := a.MCPServer("stdio").Run(ctx, &sdkmcp.StdioTransport{}); err != nil && ctx.Err() == nil {
				return fmt.Errorf("stdio server: %w", err)
			}
			return nil
		},
	}
}

func newCloneCmd(c *cli) *cobra.Command {
	var (
		url       string
		imagePath string
		codeOnly  bool
	)

	cmd := &cobra.Command{
		Use:   "clone [description]",
		Short: "Generate a component once and store it",
		Example: strings.TrimSpace(`
  cloneai clone --url https://apple.com
  cloneai clone "A pricing page with three tiers"
  cloneai clone --image shot.png "Match this layout"
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := coordinator.CloneRequest{URL: strings.TrimSpace(url)}
			if len(args) == 1 {
				req.Description = args[0]
			}
			if imagePath != "" {
				uri, err := readImageDataURI(imagePath)
				if err != nil {
					return err
				}
				req.ImageURL = uri
			}

			a, err := c.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			proj, err := a.Coordinator.RequestClone(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if codeOnly {
				_, err = fmt.Fprintln(out, proj.Code)
				return err
			}
			fmt.Fprintln(out, titleStyle.Render(proj.Name)+" "+mutedStyle.Render(proj.ID))
			fmt.Fprintln(out)
			fmt.Fprintln(out, proj.Code)
			fmt.Fprintln(out)
			fmt.Fprint(out, renderAnalysis(proj.Analysis, 80))
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Website URL to clone")
	cmd.Flags().StringVar(&imagePath, "image", "", "Screenshot file to clone")
	cmd.Flags().BoolVar(&codeOnly, "code-only", false, "Print only the generated code")
	return cmd
}

func readImageDataURI(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("%s is not an image (%s)", path, mimeType)
	}
	return generation.EncodeDataURI(mimeType, data), nil
}

func newListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored projects, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			_, err = fmt.Fprint(cmd.OutOrStdout(), renderProjectList(a.Coordinator.Projects()))
			return err
		},
	}
}

func newDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Coordinator.DeleteProject(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "deleted", args[0])
			return err
		},
	}
}
