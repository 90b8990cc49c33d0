package main

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/amaumene/movieshelf/internal/config"
	"github.com/amaumene/movieshelf/internal/loader"
	"github.com/amaumene/movieshelf/internal/repository"
	"github.com/amaumene/movieshelf/internal/services/catalog"
	"github.com/amaumene/movieshelf/internal/utils"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

type inspectOptions struct {
	year  int
	rank  int
	genre string
}

func newInspectCmd() *cobra.Command {
	opts := &inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Load the catalog and print movies as JSON",
		Long: `Load the catalog and print the movies selected by one flag.
Without flags the catalog statistics are printed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)
			logger.SetOutput(cmd.ErrOrStderr())

			repo := repository.New(logger)
			if err := loader.New(repo, logger).Populate(cfg.DataPath, false); err != nil {
				return fmt.Errorf("failed to populate repository: %w", err)
			}
			return opts.run(catalog.NewService(repo, &sync.RWMutex{}, logger), cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVar(&opts.year, "year", 0, "print the movies released in this year")
	cmd.Flags().IntVar(&opts.rank, "rank", 0, "print the movie with this rank")
	cmd.Flags().StringVar(&opts.genre, "genre", "", "print the movies tagged with this genre")
	cmd.MarkFlagsMutuallyExclusive("year", "rank", "genre")
	return cmd
}

func (o *inspectOptions) run(svc *catalog.Service, out io.Writer) error {
	var result any
	switch {
	case o.rank != 0:
		movie, err := svc.GetMovie(o.rank)
		if err != nil {
			if errors.Is(err, catalog.ErrNonExistentMovie) {
				return fmt.Errorf("no movie with rank %d", o.rank)
			}
			return err
		}
		result = movie
	case o.year != 0:
		result = svc.MoviesByYear(o.year)
	case o.genre != "":
		result = svc.MoviesByRank(svc.MovieRanksForGenre(o.genre))
	default:
		result = svc.Stats()
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
