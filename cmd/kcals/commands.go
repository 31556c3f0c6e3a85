package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/jengzang/kcals-backend-go/internal/config"
	"github.com/jengzang/kcals-backend-go/internal/database"
	"github.com/jengzang/kcals-backend-go/internal/dem"
	"github.com/jengzang/kcals-backend-go/internal/models"
	"github.com/jengzang/kcals-backend-go/internal/pipeline"
	"github.com/jengzang/kcals-backend-go/internal/repository"
	"github.com/jengzang/kcals-backend-go/internal/report"
	"github.com/jengzang/kcals-backend-go/internal/service"
	"github.com/jengzang/kcals-backend-go/internal/trackio"
)

type rootOptions struct {
	prefs   string
	input   string
	json    bool
	profile string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "kcals [key=value ...]",
		Short: "Estimate distance, gain and energy cost of a route",
		Long: `Reads a track from standard input (or --input) and prints its horizontal and slope
distance, climbing gain and energy cost. Parameters are read from the prefs file and may be
overridden by key=value arguments: metric, running, weight, filtering, xy_filter, resolution,
format (text, kml, gpx, csv) and dem (path to an ESRI ASCII grid).`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKcals(cmd, opts, args)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.prefs, "prefs", config.DefaultPrefsPath(), "prefs file of key=value lines")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log pipeline progress to stderr")
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "read the track from this file instead of stdin")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "write the filtered h,v profile to this CSV file")

	cmd.AddCommand(newImportCmd(opts))
	return cmd
}

func setupLogging(cmd *cobra.Command, verbose bool) {
	if verbose {
		log.SetOutput(cmd.ErrOrStderr())
	} else {
		log.SetOutput(io.Discard)
	}
}

func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}

func runKcals(cmd *cobra.Command, opts *rootOptions, args []string) error {
	setupLogging(cmd, opts.verbose)

	cfg, err := config.Load(opts.prefs, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !opts.json {
		if err := report.WriteParams(out, cfg.Params, cfg.Format); err != nil {
			return err
		}
	}

	in, err := openInput(opts.input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer in.Close()

	path, err := trackio.Parse(cfg.Format, in)
	if err != nil {
		return err
	}
	if len(path) == 0 {
		return fmt.Errorf("%w; usually this means you specified the wrong format", pipeline.ErrNoPoints)
	}

	var elevation pipeline.ElevationSource
	if cfg.DEMPath != "" {
		grid, err := dem.LoadAAIGrid(cfg.DEMPath)
		if err != nil {
			return err
		}
		elevation = grid
	}

	res, err := pipeline.Run(path, cfg.Params, elevation)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "kcals: warning: %s\n", w)
	}

	if opts.profile != "" {
		if err := writeProfile(opts.profile, res); err != nil {
			return err
		}
	}

	if opts.json {
		return report.WriteJSON(out, models.KcalsResult{Stats: res.Stats, Warnings: res.Warnings, Params: cfg.Params})
	}
	return report.WriteText(out, res.Stats, cfg.Params.Metric)
}

func writeProfile(path string, res *pipeline.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := report.WriteProfileCSV(f, res.Samples); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type importOptions struct {
	db     string
	id     string
	format string
}

func newImportCmd(root *rootOptions) *cobra.Command {
	opts := &importOptions{}
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Store a track in the database served by the API",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd, root.verbose)

			cfg, err := config.Load(root.prefs, nil)
			if err != nil {
				return err
			}
			if opts.db == "" {
				opts.db = cfg.DBPath
			}
			if opts.format == "" {
				opts.format = cfg.Format
			}

			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			in, err := openInput(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer in.Close()

			path, err := trackio.Parse(opts.format, in)
			if err != nil {
				return err
			}

			db, err := database.Open(database.Config{Path: opts.db})
			if err != nil {
				return err
			}
			defer db.Close()

			svc := service.NewKcalsService(repository.NewTrackRepository(db), cfg.Params, nil)
			id, err := svc.ImportTrack(context.Background(), opts.id, path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d points as track %s\n", len(path), id)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.db, "db", "", "database path (default db_path setting)")
	cmd.Flags().StringVar(&opts.id, "id", "", "track ID (default a random UUID)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "input format (default format setting)")
	return cmd
}
