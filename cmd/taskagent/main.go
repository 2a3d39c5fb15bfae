package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"task-agent/internal/agent"
	"task-agent/internal/auth"
	"task-agent/internal/cli"
	"task-agent/internal/config"
	"task-agent/internal/llm"
	"task-agent/internal/logging"
	"task-agent/internal/repository/sqlite"
	"task-agent/internal/server"
)

// flagOverrides collects command line flags that take precedence over
// environment variables and defaults.
type flagOverrides struct {
	dbDir   string
	model   string
	baseURL string
	port    string
	verbose bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	flags := &flagOverrides{}

	root := &cobra.Command{
		Use:   "taskagent",
		Short: "A natural-language task manager",
		Long: `taskagent manages a personal task list through plain-English commands.
An LLM translates each command into task operations against a local
SQLite database.

EXAMPLES:
  taskagent repl                           # Interactive session in the terminal
  taskagent serve                          # Start the web API on port 5000
  taskagent serve --port 8080              # Start the web API on a custom port

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

  ANTHROPIC_API_KEY                        API key for the language model (required to run commands)
  TASKAGENT_DB_DIR                         Database directory (default: ~/.taskagent)
  TASKAGENT_DB_FILENAME                    Database filename (default: tasks.db)
  TASKAGENT_MODEL                          Model name
  TASKAGENT_API_BASE_URL                   API base URL
  PORT                                     Web server port (default: 5000)
  SECRET_KEY                               Session signing secret (server mode)
  TASKAGENT_VERBOSE                        Enable verbose logging (default: false)`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.dbDir, "db-dir", "", "database directory")
	root.PersistentFlags().StringVar(&flags.model, "model", "", "language model name")
	root.PersistentFlags().StringVar(&flags.baseURL, "base-url", "", "language model API base URL")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose logging")

	serveCmd := newServeCommand(flags)
	serveCmd.Flags().StringVar(&flags.port, "port", "", "port to listen on")

	root.AddCommand(newReplCommand(flags))
	root.AddCommand(serveCmd)
	return root
}

// newReplCommand builds the interactive mode.
func newReplCommand(flags *flagOverrides) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Run an interactive session in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			logger := logging.New(cfg.Application.Verbose)

			repo, err := sqlite.NewWithConfig(cfg.GetDatabasePath(), cfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			agentInstance := agent.New(cfg, llm.NewClient(cfg), repo, logger)
			repl := cli.NewREPL(agentInstance, cfg, logger, os.Stdin, os.Stdout)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return repl.Run(ctx)
		},
	}
}

// newServeCommand builds the web API mode.
func newServeCommand(flags *flagOverrides) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			logger := logging.New(cfg.Application.Verbose)

			if !cfg.HasAPIKey() {
				logger.Warn("ANTHROPIC_API_KEY is not set; command requests will fail until it is configured")
			}

			repo, err := sqlite.NewWithConfig(cfg.GetDatabasePath(), cfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			agentInstance := agent.New(cfg, llm.NewClient(cfg), repo, logger)
			authService := auth.NewService(repo, cfg)
			srv := server.New(cfg, repo, agentInstance, authService, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}
}

// loadConfig resolves configuration from flags, environment and defaults.
func loadConfig(cmd *cobra.Command, flags *flagOverrides) (*config.Config, error) {
	overrides := &config.ConfigOverrides{}
	if cmd.Flags().Changed("db-dir") || cmd.InheritedFlags().Changed("db-dir") {
		overrides.DBDir = &flags.dbDir
	}
	if cmd.Flags().Changed("model") || cmd.InheritedFlags().Changed("model") {
		overrides.Model = &flags.model
	}
	if cmd.Flags().Changed("base-url") || cmd.InheritedFlags().Changed("base-url") {
		overrides.BaseURL = &flags.baseURL
	}
	if cmd.Flags().Changed("port") {
		overrides.Port = &flags.port
	}
	if cmd.Flags().Changed("verbose") || cmd.InheritedFlags().Changed("verbose") {
		overrides.Verbose = &flags.verbose
	}
	return config.NewLoader().LoadWithOverrides(overrides)
}
