package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/entrykit"
	"github.com/eringen/entrykit/internal/logging"
	"github.com/eringen/entrykit/preview"
	"github.com/eringen/entrykit/scaffold"
)

const shutdownTimeout = 10 * time.Second

func newApp(opts *options, renderOpts ...entrykit.Option) *preview.App {
	return preview.New(opts.cfg.Preview, opts.cfg.Render,
		preview.WithLogger(logging.Component("preview")),
		preview.WithRenderOptions(renderOpts...),
	)
}

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the preview server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := newApp(opts)
			defer app.Close()
			if err := app.Init(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- app.Serve() }()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}
			app.Logger.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return app.Echo.Shutdown(shutdownCtx)
		},
	}
}

func newSeedCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <fixtures.yaml>",
		Short: "Load entries from a YAML fixtures file into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			records, err := preview.LoadFixtures(f)
			if err != nil {
				return err
			}

			store, err := preview.NewStore(opts.cfg.Preview.DatabasePath)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := preview.Seed(store, records); err != nil {
				return err
			}
			n, err := store.CountEntries()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d entries, %d in store\n", len(records), n)
			return nil
		},
	}
}

func newRenderCmd(opts *options) *cobra.Command {
	var (
		singular bool
		lenient  bool
		page     int
	)
	cmd := &cobra.Command{
		Use:   "render <slug>",
		Short: "Print the composed HTML of one stored entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var renderOpts []entrykit.Option
			if lenient {
				renderOpts = append(renderOpts, entrykit.WithLenientLabels())
			}
			app := newApp(opts, renderOpts...)
			if err := app.Open(); err != nil {
				return err
			}
			defer app.Close()

			mode := entrykit.Listing
			if singular {
				mode = entrykit.Singular
			}
			out, err := app.RenderEntry(cmd.Context(), args[0], mode, page)
			if errors.Is(err, preview.ErrNotFound) {
				return fmt.Errorf("no entry %q in %s", args[0], opts.cfg.Preview.DatabasePath)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&singular, "singular", "s", false, "Render as the entry's own page instead of a listing item")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "Substitute label keys for missing translations")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page of a split body")
	return cmd
}

func newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <dir>",
		Short: "Create a starter config, fixtures file and uploads directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := scaffold.NewData(args[0])
			if err != nil {
				return err
			}
			created, err := scaffold.Write(args[0], data)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range created {
				fmt.Fprintf(out, "  created %s\n", p)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Done! Next steps:")
			fmt.Fprintf(out, "  cd %s\n", args[0])
			fmt.Fprintln(out, "  entrykit seed fixtures.yaml -c entrykit.toml")
			fmt.Fprintln(out, "  entrykit serve -c entrykit.toml")
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "entrykit %s\n", version)
		},
	}
}
