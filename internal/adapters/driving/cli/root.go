package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	configfile "github.com/histograph/importer/internal/adapters/driven/config/file"
	"github.com/histograph/importer/internal/adapters/driven/registry"
	"github.com/histograph/importer/internal/core/domain"
	"github.com/histograph/importer/internal/core/ports/driving"
	"github.com/histograph/importer/internal/core/services"
	"github.com/histograph/importer/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	cfgPath   string
	verbose   bool
	force     bool
	clearMode bool
	watchMode bool
)

// importer is the driving port used by the commands. Tests swap it for
// a mock; when nil it is built from configuration on first use.
var importer driving.Importer

var rootCmd = &cobra.Command{
	Use:   "histograph-import [dataset-id...]",
	Short: "Import datasets into a Histograph registry",
	Long: `Walks the configured import directories, interprets each subdirectory
as a dataset (a <id>.dataset.json descriptor plus the optional
<id>.pits.ndjson and <id>.relations.ndjson data files) and synchronises
it to the registry API: create the dataset, then upload its data files.

With dataset IDs as arguments, only those datasets are processed.
With --clear, datasets are deleted instead.`,
	SilenceUsage: true,
	RunE:         runImport,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "",
		"path to the config file (default ~/.histograph/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable verbose output")
	rootCmd.Flags().BoolVar(&force, "force", false,
		"ask the registry to overwrite existing data")
	rootCmd.Flags().BoolVar(&clearMode, "clear", false,
		"delete datasets instead of importing them")
	rootCmd.Flags().BoolVar(&watchMode, "watch", false,
		"keep running and re-import datasets when their files change")
}

// Execute runs the root command. Interrupts cancel the context so watch
// mode shuts down cleanly.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func runImport(cmd *cobra.Command, args []string) error {
	logger.SetVerbose(verbose)

	if clearMode && watchMode {
		return errors.New("--watch cannot be combined with --clear")
	}

	imp, dirs, err := buildImporter(cmd)
	if err != nil {
		return err
	}

	opts := driving.RunOptions{Force: force, Clear: clearMode}

	report, err := imp.Run(cmd.Context(), args, opts)
	if err != nil {
		return err
	}
	printReport(cmd, report, clearMode)

	if watchMode {
		watcher := services.NewWatcher(imp, dirs, 0)
		watcher.OnReport = func(r *driving.Report) {
			printReport(cmd, r, false)
		}
		if err := watcher.Watch(cmd.Context(), args, opts); err != nil &&
			!errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}

	if report.Failed() {
		return errors.New("one or more datasets failed")
	}
	return nil
}

// buildImporter wires the configured import orchestrator, unless a test
// injected one. Returns the orchestrator and the import roots.
func buildImporter(cmd *cobra.Command) (driving.Importer, []string, error) {
	if importer != nil {
		return importer, nil, nil
	}

	cfg, err := configfile.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}

	if cfg.API.Admin != "" && cfg.API.Password == "" {
		cmd.Printf("Password for %s: ", cfg.API.Admin)
		cfg.API.Password = readPassword()
		cmd.Println()
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	client, err := registry.NewClient(registry.Config{
		BaseURL:   cfg.API.BaseURL,
		Admin:     cfg.API.Admin,
		Password:  cfg.API.Password,
		Timeout:   time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		RateLimit: cfg.API.RateLimit,
	})
	if err != nil {
		return nil, nil, err
	}

	scanner := services.NewScanner(cfg.Import.Dirs)
	return services.NewImportOrchestrator(scanner, client), cfg.Import.Dirs, nil
}

// printReport writes the per-dataset and per-file outcomes plus the
// not-found reconciliation.
func printReport(cmd *cobra.Command, report *driving.Report, cleared bool) {
	for _, ds := range report.Datasets {
		switch {
		case ds.Err != nil:
			cmd.Printf("%s: failed: %v\n", ds.ID, ds.Err)
			printDetails(cmd, ds.Err)
		case cleared:
			cmd.Printf("%s: deleted\n", ds.ID)
		case ds.Created:
			cmd.Printf("%s: created\n", ds.ID)
		default:
			cmd.Printf("%s: already exists\n", ds.ID)
		}

		for _, f := range ds.Files {
			switch {
			case f.Err != nil:
				cmd.Printf("%s: %s: failed: %v\n", ds.ID, f.Kind, f.Err)
				printDetails(cmd, f.Err)
			case f.Skipped:
				cmd.Printf("%s: %s: file not found, skipped\n", ds.ID, f.Kind)
			default:
				cmd.Printf("%s: %s: uploaded\n", ds.ID, f.Kind)
			}
		}
	}

	for _, id := range report.NotFound {
		cmd.Printf("%s: not found in any configured import directory\n", id)
	}
}

// printDetails prints the registry's nested validation details when an
// API error carries them.
func printDetails(cmd *cobra.Command, err error) {
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) || apiErr.Details == nil {
		return
	}
	out, err := json.MarshalIndent(apiErr.Details, "  ", "  ")
	if err != nil {
		return
	}
	cmd.Printf("  %s\n", out)
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read the password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
