// Command nietzschian is a debugging mentor that refuses to hand out
// answers: it interrogates the developer until they find the root
// cause themselves.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nietzschian/nietzschian/internal/config"
	"github.com/nietzschian/nietzschian/internal/core"
	"github.com/nietzschian/nietzschian/internal/llm"
	"github.com/nietzschian/nietzschian/internal/quotes"
	"github.com/nietzschian/nietzschian/internal/scoring"
	"github.com/nietzschian/nietzschian/internal/session"
	"github.com/nietzschian/nietzschian/internal/storage"
	"github.com/nietzschian/nietzschian/internal/ui"
)

var version = "0.1.0"

// errUsage marks invalid invocations (empty problem, bad intensity).
var errUsage = errors.New("usage error")

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	var (
		verbose       bool
		intensityFlag string
		logger        = zap.NewNop()
	)

	renderer := ui.NewRenderer(os.Stdout)

	rootCmd := &cobra.Command{
		Use:     "nietzschian",
		Short:   "A debugging mentor that only asks questions",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = buildLogger(verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	debugCmd := &cobra.Command{
		Use:   "debug \"problem description\"",
		Short: "Start an interactive debugging session",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDebug(cmd, args, intensityFlag, renderer, logger)
		},
	}
	debugCmd.Flags().StringVarP(&intensityFlag, "intensity", "i", string(session.IntensityNietzsche),
		"questioning intensity: socrates, nietzsche, or zarathustra")

	growthCmd := &cobra.Command{
		Use:   "growth",
		Short: "Show your cross-session debugging growth profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrowth(renderer)
		},
	}

	rootCmd.AddCommand(debugCmd, growthCmd)

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errUsage) {
			renderer.Error(llm.Describe(err))
		}
		return exitCodeFor(err)
	}
	return llm.ExitOK
}

func buildLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func exitCodeFor(err error) int {
	if err == nil {
		return llm.ExitOK
	}
	if errors.Is(err, errUsage) {
		return llm.ExitUsage
	}
	return llm.ExitCode(err)
}

func runDebug(cmd *cobra.Command, args []string, intensityFlag string, renderer *ui.Renderer, logger *zap.Logger) error {
	problem := strings.TrimSpace(strings.Join(args, " "))
	if problem == "" {
		renderer.Error("Please provide a problem description.")
		renderer.Message("\nUsage: nietzschian debug \"Your problem description here\"")
		return errUsage
	}

	intensityName := intensityFlag
	if mgr, err := config.NewManager(); err == nil {
		if cfg, err := mgr.Load(); err == nil {
			cfg.Apply()
			if cfg.DefaultIntensity != "" && !cmd.Flags().Changed("intensity") {
				intensityName = cfg.DefaultIntensity
			}
		} else {
			logger.Warn("ignoring unreadable config", zap.Error(err))
		}
	}

	intensity, err := session.ParseIntensity(intensityName)
	if err != nil {
		renderer.Error(err.Error())
		return errUsage
	}

	client, err := llm.NewAnthropicClientFromEnv()
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			renderer.APIKeyHelp()
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	models := llm.NewModelSelector()
	sess := session.New(problem, intensity)
	loop := core.NewLoop(client, models, renderer, logger, os.Stdin)

	outcome, err := loop.Run(ctx, sess)
	if err != nil {
		return fmt.Errorf("could not start session: %w", err)
	}

	// Post-processing runs on a fresh context: an interrupt that ended
	// the loop should not also kill scoring and persistence.
	postCtx := context.Background()

	tags, err := scoring.TagBehaviors(postCtx, client, models.Conversation(), sess.Transcript)
	if err != nil {
		logger.Warn("behavior tagging skipped", zap.Error(err))
		sess.Finalize(outcome, nil, nil)
	} else {
		scores := scoring.ComputeSkillScores(tags)
		sess.Finalize(outcome, &scores, tags)
	}

	store := storage.NewStore(mustWorkDir())
	if _, err := store.Save(sess); err != nil {
		logger.Warn("session not persisted", zap.Error(err))
	}

	var profile *scoring.GrowthProfile
	if sessions, err := store.List(); err != nil {
		logger.Warn("growth profile unavailable", zap.Error(err))
	} else {
		profile = scoring.ComputeGrowthProfile(sessions)
	}

	closing := quotes.SelectClosing(string(outcome))
	renderer.GrowthScore(sess, profile, &closing)
	return nil
}

func runGrowth(renderer *ui.Renderer) error {
	store := storage.NewStore(mustWorkDir())
	sessions, err := store.List()
	if err != nil {
		return fmt.Errorf("could not list sessions: %w", err)
	}
	renderer.GrowthProfile(scoring.ComputeGrowthProfile(sessions))
	return nil
}

func mustWorkDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}
