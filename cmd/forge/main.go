package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/davidbz/forge/internal/config"
	"github.com/davidbz/forge/internal/domain"
	"github.com/davidbz/forge/internal/generator"
	forgehttp "github.com/davidbz/forge/internal/http"
	"github.com/davidbz/forge/internal/observability"
	"github.com/davidbz/forge/internal/planner"
	"github.com/davidbz/forge/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "forge",
		Short: "AI-assisted project scaffolding",
		Long:  "Forge plans and generates complete starter projects from a plain-text description.",
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newProvidersCmd())

	return rootCmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(_ *cobra.Command, _ []string) error {
			container := buildContainer()

			return container.Invoke(func(server *forgehttp.Server) error {
				stop := make(chan os.Signal, 1)
				signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

				go func() {
					<-stop
					ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
					defer cancel()
					_ = server.Shutdown(ctx)
				}()

				return server.Start()
			})
		},
	}
}

func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate <description>",
		Short: "Generate a project into the projects directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container := buildContainer()
			description := strings.Join(args, " ")

			return container.Invoke(func(p *planner.Planner, g *generator.Generator, core *config.CoreConfig) error {
				ctx := observability.WithRequestID(cmd.Context(), observability.GenerateRequestID())

				result, err := p.CreatePlan(ctx, description, nil)
				if err != nil {
					return err
				}

				if result.Type == domain.ResultChat {
					fmt.Fprintln(cmd.OutOrStdout(), result.Message)
					return nil
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Generating %s\n", result.Plan.ProjectName)

				adapter := storage.NewDisk(core.ProjectsDir)
				files, err := g.Generate(ctx, result.Plan, adapter, nil, func(e generator.Event) {
					switch e.Kind {
					case generator.EventDirectory:
						fmt.Fprintf(cmd.OutOrStdout(), "  dir  %s/\n", e.Path)
					default:
						marker := " "
						if e.Fallback {
							marker = "!"
						}
						fmt.Fprintf(cmd.OutOrStdout(), "  %s    %s\n", marker, e.Path)
					}
				})
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Done: %d files in %s/%s\n",
					len(files), core.ProjectsDir, result.Plan.ProjectName)
				return nil
			})
		},
	}
}

func newProvidersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List configured providers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			container := buildContainer()

			return container.Invoke(func(reg domain.ProviderRegistry) error {
				names, err := reg.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(names) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no providers configured, set at least one API key")
					return nil
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			})
		},
	}
}
