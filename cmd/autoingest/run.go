package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/foligraf/autoingest/internal/config"
	"github.com/foligraf/autoingest/internal/history"
	"github.com/foligraf/autoingest/internal/importer"
	"github.com/foligraf/autoingest/internal/ingest"
	"github.com/foligraf/autoingest/internal/manifest"
	"github.com/foligraf/autoingest/internal/scene"
)

var (
	runAxis     string
	runReplace  bool
	runEmissive bool
	runScaleRef string
	runManifest string
)

var runCmd = &cobra.Command{
	Use:   "run [folder]",
	Short: "Import every OBJ file from a folder",
	Long: `Import every OBJ file found under a folder into a fresh scene
document. Each file becomes its own collection with a centered pivot;
only the last imported collection is left visible.

The folder comes from the argument or from ingest.folder in the config.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runAxis, "axis", "", "Source up axis (X, Y, Z, -X, -Y, -Z)")
	runCmd.Flags().BoolVar(&runReplace, "replace", false, "Replace collections with matching names")
	runCmd.Flags().BoolVar(&runEmissive, "emissive", false, "Rewire diffuse textures as emissive")
	runCmd.Flags().StringVar(&runScaleRef, "scale-ref", "", "OBJ file to scale-match against")
	runCmd.Flags().StringVar(&runManifest, "manifest", "", "Write a JSON manifest of the result")
	rootCmd.AddCommand(runCmd)
}

// parseLogLevel maps the config value onto slog levels.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// runConfig resolves the effective config from file, argument and flags.
// Without a discoverable config file, a folder argument alone is enough.
func runConfig(args []string) (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		if len(args) == 0 {
			return nil, err
		}
		cfg = config.Default()
	}

	if len(args) > 0 {
		cfg.Ingest.Folder = args[0]
	}
	if runAxis != "" {
		cfg.Ingest.UpAxis = runAxis
	}
	if runReplace {
		cfg.Ingest.ReplaceExisting = true
	}
	if runEmissive {
		cfg.Ingest.DiffuseAsEmissive = true
	}
	if runScaleRef != "" {
		cfg.Scale.Enabled = true
		cfg.Scale.Reference = runScaleRef
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &config.ConfigError{Errors: errs}
	}
	return cfg, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := runConfig(args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	axis, err := importer.ParseUpAxis(cfg.Ingest.UpAxis)
	if err != nil {
		return err
	}

	doc := scene.NewDocument()
	obj := importer.NewOBJ(logger)

	settings := ingest.Settings{
		UpAxis:            axis,
		CenterPivots:      cfg.Ingest.CenterPivots,
		ApplyScale:        cfg.Scale.Apply,
		ReplaceExisting:   cfg.Ingest.ReplaceExisting,
		DiffuseAsEmissive: cfg.Ingest.DiffuseAsEmissive,
	}

	if cfg.Scale.Enabled {
		ref, err := loadReference(doc, obj, cfg.Scale.Reference, axis)
		if err != nil {
			return err
		}
		settings.UseScaleRef = true
		settings.Reference = ref
	}

	runner := ingest.NewRunner(ingest.Config{
		Doc:      doc,
		Importer: obj,
		Folder:   cfg.Ingest.Folder,
		Settings: settings,
		Interval: time.Duration(cfg.Ingest.IntervalMS) * time.Millisecond,
		Log:      logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	started := time.Now()
	var summary ingest.Summary

	g, ctx := errgroup.WithContext(ctx)
	done := make(chan struct{})
	g.Go(func() error {
		defer close(done)
		s, err := runner.Run(ctx)
		summary = s
		return err
	})
	g.Go(func() error {
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		last := -1
		for {
			select {
			case <-done:
				fmt.Fprint(os.Stderr, "\r\033[K")
				return nil
			case <-ticker.C:
				if p := runner.Progress(); p != last {
					fmt.Fprintf(os.Stderr, "\rimporting... %3d%%", p)
					last = p
				}
			}
		}
	})
	if err := g.Wait(); err != nil {
		return err
	}

	finished := time.Now()

	if err := recordJob(cfg, summary, started, finished); err != nil {
		logger.Warn("history not recorded", "error", err)
	}

	if runManifest != "" {
		if err := manifest.Write(runManifest, doc, summary.Collections); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
	}

	if jsonOutput {
		return printJSON(summary)
	}

	p := message.NewPrinter(language.English)
	for _, fe := range summary.Errors {
		fmt.Fprintf(os.Stderr, "error: %v\n", fe)
	}
	p.Println(summary.String())
	if summary.State == ingest.StateFinished {
		p.Printf("%d collection(s) in %s\n", len(summary.Collections), finished.Sub(started).Round(time.Millisecond))
	}
	return nil
}

// loadReference imports the reference OBJ and returns its first mesh object.
func loadReference(doc *scene.Document, obj *importer.OBJ, path string, axis importer.UpAxis) (*scene.Object, error) {
	created, err := obj.Import(context.Background(), doc, path, axis)
	if err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}
	for _, o := range created {
		if o.IsMesh() {
			return o, nil
		}
	}
	return nil, errors.New("reference: no mesh found")
}

// recordJob persists the finished batch in the history catalog.
func recordJob(cfg *config.Config, summary ingest.Summary, started, finished time.Time) error {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
		return err
	}
	db, err := history.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	j := &history.Job{
		Folder:     cfg.Ingest.Folder,
		State:      summary.State.String(),
		Total:      summary.Total,
		Imported:   summary.Imported,
		StartedAt:  started,
		FinishedAt: finished,
	}
	for _, f := range summary.Files {
		j.Files = append(j.Files, history.JobFile{
			File:       f.File,
			Collection: f.Collection,
			Error:      f.Err,
		})
	}
	return history.NewStore(db).AddJob(j)
}
