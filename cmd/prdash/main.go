package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/npratt/prdash/internal/build"
	"github.com/npratt/prdash/internal/config"
	"github.com/npratt/prdash/internal/dashboard"
	"github.com/npratt/prdash/internal/github"
	"github.com/npratt/prdash/internal/jenkins"
	"github.com/npratt/prdash/internal/state"
	"github.com/npratt/prdash/internal/tui"
)

var version = "dev"

func main() {
	logLevel := &slog.LevelVar{}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// Credentials are commonly kept in a local .env file; missing is fine
	_ = godotenv.Load()

	viper.SetEnvPrefix("PRDASH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "prdash",
		Short: "Terminal dashboard for PR build status",
		Long: `prdash is a terminal dashboard that tracks the Jenkins CI status of
GitHub pull requests.

Each tracked PR is shown as a tile with its latest build status, current
pipeline stage, and duration. Tiles refresh on their own schedule, and the
tracked set persists across restarts.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, logLevel)
		},
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().Bool(FlagVerbose, false, "Enable verbose (debug) logging")
	rootCmd.PersistentFlags().String(FlagConfig, "", "Config file path (default: .prdash/config.yaml)")
	rootCmd.PersistentFlags().String(FlagLogFile, "", "Log file path")
	rootCmd.PersistentFlags().String(FlagStateFile, "", "State file path")
	rootCmd.PersistentFlags().String(FlagJenkinsURL, "", "Jenkins base URL")
	rootCmd.PersistentFlags().String(FlagGitHubURL, "", "GitHub Enterprise base URL")
	rootCmd.PersistentFlags().String(FlagOwner, "", "GitHub organization")
	rootCmd.PersistentFlags().String(FlagRepo, "", "GitHub repository")
	rootCmd.PersistentFlags().String(FlagJobPath, "", "Jenkins multibranch job path (default: inferred from owner/repo)")
	rootCmd.PersistentFlags().Duration(FlagInterval, 0, "Per-tile refresh interval")

	// Bind all flags to viper
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		_ = viper.BindPFlag(f.Name, f)
	})

	// Version command
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("prdash %s\n", version)
		},
	}

	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// runDashboard wires the store, scheduler, and clients together and runs
// the TUI until the user quits.
func runDashboard(cmd *cobra.Command, logLevel *slog.LevelVar) error {
	if viper.GetBool(FlagVerbose) {
		logLevel.Set(slog.LevelDebug)
	}

	// Load config from files with defaults
	cfg, err := config.LoadConfig(viper.GetViper())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Apply CLI flag overrides (only if explicitly set)
	if cmd.Flags().Changed(FlagLogFile) {
		cfg.Paths.Log = viper.GetString(FlagLogFile)
	}
	if cmd.Flags().Changed(FlagStateFile) {
		cfg.Paths.State = viper.GetString(FlagStateFile)
	}
	if cmd.Flags().Changed(FlagJenkinsURL) {
		cfg.Jenkins.BaseURL = viper.GetString(FlagJenkinsURL)
	}
	if cmd.Flags().Changed(FlagGitHubURL) {
		cfg.GitHub.BaseURL = viper.GetString(FlagGitHubURL)
	}
	if cmd.Flags().Changed(FlagOwner) {
		cfg.GitHub.Owner = viper.GetString(FlagOwner)
	}
	if cmd.Flags().Changed(FlagRepo) {
		cfg.GitHub.Repo = viper.GetString(FlagRepo)
	}
	if cmd.Flags().Changed(FlagJobPath) {
		cfg.Jenkins.JobPath = viper.GetString(FlagJobPath)
	}
	if cmd.Flags().Changed(FlagInterval) {
		cfg.Refresh.Interval = viper.GetDuration(FlagInterval)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("prdash requires an interactive terminal")
	}

	// Redirect logging to a rotating file so it doesn't corrupt the display
	loggerResult, err := SetupTUILogger(cfg.Paths.Log, logLevel, cfg.LogRotation)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = loggerResult.Close() }()
	slog.SetDefault(loggerResult.Logger)

	jobPath := cfg.Jenkins.JobPath
	if jobPath == "" {
		jobPath = jenkins.InferJobPath(cfg.GitHub.Owner, cfg.GitHub.Repo)
	}

	client := jenkins.NewClient(jenkins.ClientConfig{
		JenkinsBase: cfg.Jenkins.BaseURL,
		Username:    cfg.Jenkins.Username,
		Token:       cfg.Jenkins.Token,
		GitHubBase:  cfg.GitHub.BaseURL,
		Owner:       cfg.GitHub.Owner,
		Repo:        cfg.GitHub.Repo,
		Timeout:     cfg.Jenkins.Timeout,
	})

	resolver := github.NewClient(github.ClientConfig{
		BaseURL: cfg.GitHub.BaseURL,
		Owner:   cfg.GitHub.Owner,
		Repo:    cfg.GitHub.Repo,
		Token:   cfg.GitHub.Token,
	})

	store := dashboard.NewStore()

	// Restore the tracked PRs from the previous run
	if records, err := state.Load(cfg.Paths.State); err != nil {
		slog.Warn("failed to load state", "path", cfg.Paths.State, "error", err)
	} else if len(records) > 0 {
		store.SetAll(records)
	}

	sched := dashboard.NewScheduler(store, client,
		dashboard.WithInterval(cfg.Refresh.Interval),
		dashboard.WithBranchResolver(resolver),
	)
	sched.Rebuild()

	ui := tui.New(store,
		tui.WithRefresher(sched),
		tui.WithStatePath(cfg.Paths.State),
		tui.WithNewRecord(func(prNumber string) build.Record {
			return client.NewPlaceholder(prNumber, jobPath)
		}),
	)

	runErr := ui.Run()

	sched.DetachAll()

	// Persist the final tracked set on the way out
	records, _ := store.Snapshot()
	if err := state.Save(cfg.Paths.State, records); err != nil {
		slog.Warn("failed to save state", "path", cfg.Paths.State, "error", err)
	}
	store.Close()

	return runErr
}
