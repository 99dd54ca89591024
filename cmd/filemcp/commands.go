package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"filemcp/internal/config"
	"filemcp/internal/logging"
	"filemcp/internal/mcp"
	"filemcp/internal/search"
	"filemcp/internal/ui"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type rootOptions struct {
	configPath  string
	envFile     string
	maxFileSize int64
	readTimeout time.Duration
}

func newRootCmd(logger *logging.AppLogger) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "filemcp",
		Short:         "MCP server that searches text files for a literal keyword",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts, logger)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config file (default $XDG_CONFIG_HOME/filemcp/config.yaml)")
	flags.StringVar(&opts.envFile, "env-file", "", "dotenv file with FILEMCP_* overrides")
	flags.Int64Var(&opts.maxFileSize, "max-file-size", 0, "maximum bytes a search may load (0 = unlimited)")
	flags.DurationVar(&opts.readTimeout, "read-timeout", 0, "deadline for a single search (0 = none)")

	rootCmd.AddCommand(
		serveCmd(opts, logger),
		searchCmd(opts, logger),
		toolsCmd(logger),
		initConfigCmd(opts, logger),
	)

	return rootCmd
}

func serveCmd(opts *rootOptions, logger *logging.AppLogger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the search_in_file tool over MCP on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts, logger)
		},
	}
}

func runServe(cmd *cobra.Command, opts *rootOptions, logger *logging.AppLogger) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger.DebugObject("config", *cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The caller reports the returned error on stderr
	return mcp.NewServer(cfg, logger).Start(ctx)
}

func searchCmd(opts *rootOptions, logger *logging.AppLogger) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <file> <keyword>",
		Short: "Run one search locally and print the matching lines",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if cfg.ReadTimeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, cfg.ReadTimeout)
				defer cancel()
			}

			req := search.Request{FilePath: args[0], Keyword: args[1]}
			start := time.Now()
			result, err := search.NewExecutor(cfg.MaxFileSize).Run(ctx, req)
			logger.LogPerformance("search", start)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				payload, err := json.Marshal(result)
				if err != nil {
					return fmt.Errorf("failed to encode search result: %w", err)
				}
				fmt.Fprintln(out, string(payload))
				return nil
			}

			fmt.Fprint(out, ui.RenderMatches(req.FilePath, req.Keyword, result))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the tool's JSON payload instead of styled lines")
	return cmd
}

func toolsCmd(logger *logging.AppLogger) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the advertised tool definitions as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := mcp.NewToolRegistry(logger, search.NewExecutor(0), 0)

			payload, err := json.MarshalIndent(registry.ListOperations(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode tools: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			return nil
		},
	}
}

func initConfigCmd(opts *rootOptions, logger *logging.AppLogger) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write defaults, with environment and flag overrides, to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			exists := false
			if path == "" {
				path, exists = config.FindConfigFile()
			} else if _, err := os.Stat(path); err == nil {
				exists = true
			}
			if exists && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			}

			if err := loadEnvFile(opts); err != nil {
				return err
			}
			def := config.DefaultConfig()
			cfg, err := applyOverrides(cmd, opts, &def)
			if err != nil {
				return err
			}

			if err := cfg.SaveTo(path); err != nil {
				return err
			}
			logger.Debug("Wrote config file", "path", path)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

// loadConfig resolves configuration in order: defaults, config file,
// environment (optionally seeded from --env-file), then explicit flags.
// An explicit --config path must exist.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	if err := loadEnvFile(opts); err != nil {
		return nil, err
	}

	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.LoadFrom(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	return applyOverrides(cmd, opts, cfg)
}

func loadEnvFile(opts *rootOptions) error {
	if opts.envFile == "" {
		return nil
	}
	return config.LoadEnvFile(opts.envFile)
}

// applyOverrides layers environment and changed flags over cfg and validates
// the result.
func applyOverrides(cmd *cobra.Command, opts *rootOptions, cfg *config.Config) (*config.Config, error) {
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("max-file-size") {
		cfg.MaxFileSize = opts.maxFileSize
	}
	if flags.Changed("read-timeout") {
		cfg.ReadTimeout = opts.readTimeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
