package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/chris-regnier/wellnessctl/internal/config"
	"github.com/chris-regnier/wellnessctl/internal/logging"
	"github.com/chris-regnier/wellnessctl/internal/sentiment"
	"github.com/chris-regnier/wellnessctl/internal/session"
	"github.com/chris-regnier/wellnessctl/internal/storage"
	"github.com/chris-regnier/wellnessctl/internal/storage/markdown"
	"github.com/chris-regnier/wellnessctl/internal/storage/sqlite"
	"github.com/chris-regnier/wellnessctl/internal/ui"
	"github.com/chris-regnier/wellnessctl/internal/validation"
	"github.com/chris-regnier/wellnessctl/internal/wellness"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile        string
	jsonOutput     bool
	storageBackend string
	appConfig      *config.Config
	store          storage.Storage
	svc            *wellness.Service
	sess           session.Provider
	logger         *zap.Logger
	unsubscribe    func()
)

var rootCmd = &cobra.Command{
	Use:   "wellnessctl",
	Short: "A mood and journal wellness tracker",
	Long: `wellnessctl records daily mood check-ins and journal entries, scores
journal sentiment, charts mood trends and suggests small wellness actions.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Shell completion scripts need no storage.
		if cmd.Name() == "__complete" || cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appConfig = cfg

		if storageBackend != "" {
			appConfig.Storage = storageBackend
		}

		logger, err = logging.New(appConfig.Log.Level, appConfig.Log.Format)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}

		store, err = openStore(appConfig)
		if err != nil {
			return err
		}

		sess = session.NewLocal(session.SessionFile(appConfig.DataDir), session.User{
			ID:    appConfig.User.ID,
			Name:  appConfig.User.Name,
			Email: appConfig.User.Email,
		})
		svc = newService(store)

		// Whoever is signed in decides what the prompt shows.
		unsubscribe = sess.Subscribe(func(u *session.User) {
			invalidateCache()
		})

		logger.Debug("initialized",
			zap.String("storage", appConfig.Storage),
			zap.String("data_dir", appConfig.DataDir),
		)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if unsubscribe != nil {
			unsubscribe()
		}
		if logger != nil {
			_ = logger.Sync()
		}
		if store != nil {
			return store.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardRun(cmd.Context(), os.Stdout)
	},
}

func openStore(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage {
	case "markdown":
		s, err := markdown.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initializing markdown storage: %w", err)
		}
		return s, nil
	case "sqlite":
		s, err := sqlite.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initializing sqlite storage: %w", err)
		}
		return s, nil
	default:
		return nil, validation.Field("storage", fmt.Sprintf("unknown storage backend: %s", cfg.Storage))
	}
}

func newService(s storage.Storage) *wellness.Service {
	return wellness.New(s, sentiment.NewAnalyzer(appConfig.Sentiment.Latency), wellness.Options{
		Window: appConfig.Trend.Window,
		Policy: appConfig.Checkin.Policy,
		Logger: logger,
	})
}

func theme() ui.Theme {
	return ui.ResolveTheme(appConfig.Theme)
}

// currentUser returns the signed-in user, or the configured user.
func currentUser(ctx context.Context) (session.User, error) {
	u, err := sess.Current(ctx)
	if errors.Is(err, session.ErrNoSession) {
		return session.User{}, fmt.Errorf("%w: run 'wellnessctl login <id>' or set user.id in the config", err)
	}
	return u, err
}

// Execute runs the root command and returns the process exit code. Errors
// are printed to stderr.
func Execute() int {
	err := rootCmd.ExecuteContext(context.Background())
	if err == nil {
		return 0
	}
	printError(os.Stderr, err)
	return ExitCode(err)
}

func printError(w io.Writer, err error) {
	var ve *validation.Error
	if errors.As(err, &ve) && len(ve.Fields) > 0 {
		fmt.Fprintln(w, "Error: invalid input")
		fields := make([]string, 0, len(ve.Fields))
		for field := range ve.Fields {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Fprintf(w, "  %s: %s\n", field, ve.Fields[field])
		}
		return
	}
	fmt.Fprintln(w, "Error:", err)
}

// ExitCode maps an error to the process exit code: 2 for storage failures,
// 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, storage.ErrStorage):
		return 2
	default:
		return 1
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&storageBackend, "storage", "", "storage backend (markdown|sqlite)")

	// Silence Cobra's built-in error and usage printing so we control stderr output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}
