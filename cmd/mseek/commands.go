package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/TimelordUK/mseek/internal/config"
	"github.com/TimelordUK/mseek/internal/generate"
	"github.com/TimelordUK/mseek/internal/logging"
	"github.com/TimelordUK/mseek/internal/search"
	"github.com/TimelordUK/mseek/internal/store"
	"github.com/TimelordUK/mseek/internal/ui"
)

func newCoordinator(cfg *config.Config, st *store.Store, logger *slog.Logger) (*search.Coordinator, error) {
	return search.New(st,
		search.WithMaxConcurrency(cfg.Search.MaxConcurrency),
		search.WithMaxResults(cfg.Search.MaxResults),
		search.WithEventBuffer(cfg.Search.EventBuffer),
		search.WithLogger(logger),
	)
}

func newGenerator(cfg *config.Config, st *store.Store, logger *slog.Logger) *generate.Generator {
	return generate.New(st,
		generate.WithFillerWords(cfg.Generator.FillerWords),
		generate.WithParallelism(cfg.Generator.Parallelism),
		generate.WithLogger(logger),
	)
}

func tuiCommand(c *cli.Context) error {
	cfg := configFrom(c)

	// the terminal belongs to the UI; logs go to a file or nowhere
	logger, closer, err := logging.OpenFile(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer closer.Close()
	slog.SetDefault(logger)

	st := store.New(cfg.Search.LogDir)
	if err := st.EnsureDir(); err != nil {
		return err
	}

	coord, err := newCoordinator(cfg, st, logger)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()
	coord.Start(ctx)
	defer coord.Close()

	model := ui.NewModel(ctx, ui.ModelOptions{
		Config:    cfg,
		Engine:    coord,
		Reader:    st,
		Generator: newGenerator(cfg, st, logger),
		Logger:    logger,
	})
	defer model.Close()

	logger.Info("starting", "dir", st.Dir())
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

func searchCommand(c *cli.Context) error {
	cfg := configFrom(c)
	logger, err := stderrLogger(cfg)
	if err != nil {
		return err
	}

	terms := c.Args().Slice()
	if len(search.NormalizeTerms(terms)) == 0 {
		return fmt.Errorf("at least one search term is required")
	}

	st := store.New(cfg.Search.LogDir)
	coord, err := newCoordinator(cfg, st, logger)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()
	coord.Start(ctx)
	defer coord.Close()

	if err := coord.Submit(ctx, terms); err != nil {
		return err
	}
	return printSearch(ctx, c.App.Writer, coord.Events())
}

// printSearch follows one search to completion and prints the result list
// and the speed sample.
func printSearch(ctx context.Context, w io.Writer, events <-chan search.Event) error {
	var (
		files   = -1
		last    search.ResultsChanged
		sample  *search.SpeedSample
		settled bool
	)

	for !settled {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case search.QueryStarted:
				files = ev.Files
			case search.ResultsChanged:
				last = ev
				// an empty directory never produces a speed sample
				if files == 0 && ev.Phase == search.PhaseIdle {
					settled = true
				}
			case search.SpeedMeasured:
				sample = &ev.Sample
				settled = true
			}
		}
	}

	for _, e := range last.Entries {
		fmt.Fprintln(w, e.Name)
	}
	if last.Truncated {
		fmt.Fprintf(w, "(showing first %d)\n", len(last.Entries))
	}
	if sample != nil {
		fmt.Fprintln(w, sample.String())
	} else {
		fmt.Fprintln(w, "no log files to search")
	}
	return nil
}

func generateCommand(c *cli.Context) error {
	cfg := configFrom(c)
	logger, err := stderrLogger(cfg)
	if err != nil {
		return err
	}

	count := c.Int("count")
	if count <= 0 {
		count = cfg.Generator.BatchSize
	}

	st := store.New(cfg.Search.LogDir)
	if err := st.EnsureDir(); err != nil {
		return err
	}

	created, err := newGenerator(cfg, st, logger).Batch(c.Context, count)
	if err != nil {
		return fmt.Errorf("created %d of %d files: %w", created, count, err)
	}

	usage, err := st.Usage()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "created %d files in %s (%d files, %s total)\n",
		created, st.Dir(), usage.Files, humanize.Bytes(uint64(usage.Bytes)))
	return nil
}

func configInitCommand(c *cli.Context) error {
	path := c.String("config")
	if path == "" {
		return errors.New("no config path; pass --config")
	}

	if !c.Bool("force") {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	if err := config.SaveFile(path, config.DefaultConfig()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "wrote default config to %s\n", path)
	return nil
}
