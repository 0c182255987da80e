package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/dsaranker/internal/config"
	"github.com/kailas-cloud/dsaranker/internal/domain/document"
	"github.com/kailas-cloud/dsaranker/internal/domain/search/request"
	"github.com/kailas-cloud/dsaranker/internal/domain/search/strategy"
	logpkg "github.com/kailas-cloud/dsaranker/internal/logger"
	"github.com/kailas-cloud/dsaranker/internal/version"
)

// configLoader loads the configuration for an environment name.
type configLoader func(env string) (config.Config, error)

type rootOptions struct {
	env  string
	load configLoader
}

func newRootCmd(load configLoader) *cobra.Command {
	opts := &rootOptions{load: load}

	root := &cobra.Command{
		Use:   "dsaranker",
		Short: "Rank programming problems by BM25, TF-IDF or embedding similarity",
		Long: `dsaranker ranks a precomputed corpus of programming problems against a
free-text query using BM25, TF-IDF cosine or dense embedding cosine similarity.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.env, "env", config.GetEnv(), "environment; selects config/<env>.yaml")

	root.AddCommand(
		newServeCmd(opts),
		newSearchCmd(opts),
		newPrecomputeCmd(opts),
		newVersionCmd(),
	)
	return root
}

// setup loads config and builds the logger.
func (o *rootOptions) setup() (config.Config, *zap.Logger, error) {
	cfg, err := o.load(o.env)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logpkg.NewLogger(o.env, cfg.Logging.Level)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, logger, nil
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP search API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			logger.Info("Starting dsaranker API server",
				zap.String("version", version.Version),
				zap.String("commit", version.Commit),
				zap.String("env", opts.env),
				zap.Int("http_port", cfg.HTTP.Port),
				zap.String("store_driver", cfg.Store.Driver),
				zap.Bool("embedding", cfg.Embedding.Enabled),
			)

			a, err := newApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.serve(cmd.Context())
		},
	}
}

type searchOptions struct {
	strategy    string
	filter      string
	page        int
	limit       int
	autocorrect bool
	json        bool
	keywords    bool
}

// searchOutput mirrors the HTTP search response.
type searchOutput struct {
	Data     []document.Record `json:"data"`
	Time     float64           `json:"time"`
	Count    int               `json:"count"`
	Keywords []string          `json:"keywords,omitempty"`
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	so := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Rank the corpus for a query",
		Long: `Ranks the corpus for a query and prints one page of results.
The embedding strategy embeds the whole corpus first; configure a persistent
store to make repeated runs cheap.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strat, ok := strategy.Parse(so.strategy)
			if !ok {
				return fmt.Errorf("unknown strategy %q (want bm25, tfidf or embedding)", so.strategy)
			}
			req, err := request.New(strat, strings.Join(args, " "), so.autocorrect, so.filter, so.page, so.limit)
			if err != nil {
				return err //nolint:wrapcheck // message is user-facing
			}

			cfg, logger, err := opts.setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx := cmd.Context()
			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			if strat == strategy.Embedding {
				if err := a.precompute(ctx); err != nil {
					return err
				}
			}

			page, err := a.engine.Search.Search(ctx, req)
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}

			out := searchOutput{Data: page.Data(), Time: page.TimeMillis(), Count: page.Count()}
			if so.keywords {
				out.Keywords = a.engine.Search.Keywords(req.Query(), req.Autocorrect())
			}
			if so.json {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out) //nolint:wrapcheck // stdout
			}
			printResults(cmd.OutOrStdout(), out, req)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&so.strategy, "strategy", "s", string(strategy.BM25), "ranking strategy: bm25, tfidf, embedding")
	f.StringVarP(&so.filter, "filter", "f", document.AllPlatforms, "platform filter")
	f.IntVarP(&so.page, "page", "p", request.DefaultPage, "1-based page number")
	f.IntVarP(&so.limit, "limit", "n", request.DefaultLimit, "results per page")
	f.BoolVar(&so.autocorrect, "autocorrect", false, "spell-correct query words")
	f.BoolVar(&so.json, "json", false, "output results as JSON")
	f.BoolVar(&so.keywords, "keywords", false, "show the normalized query keywords")
	return cmd
}

func printResults(w io.Writer, out searchOutput, req request.Request) {
	if out.Keywords != nil {
		fmt.Fprintf(w, "Keywords: %s\n", strings.Join(out.Keywords, " "))
	}
	if len(out.Data) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	offset := (req.Page() - 1) * req.Limit()
	for i := range out.Data {
		rec := &out.Data[i]
		fmt.Fprintf(w, "  [%d] %s (%s)\n", offset+i+1, rec.Title(), rec.Platform())
		if raw, ok := rec.Extra("url"); ok {
			var url string
			if json.Unmarshal(raw, &url) == nil && url != "" {
				fmt.Fprintf(w, "      %s\n", url)
			}
		}
	}
	fmt.Fprintf(w, "\n%d candidates, %.2f ms\n", out.Count, out.Time)
}

func newPrecomputeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "precompute",
		Short: "Embed the whole corpus and warm the persistent store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if !cfg.Embedding.Enabled {
				return errors.New("embedding is disabled (embedding.enabled: false)")
			}
			if cfg.Store.Driver == config.StoreNone {
				logger.Warn("No persistent store configured; vectors will not outlive this process")
			}

			a, err := newApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			start := time.Now()
			if err := a.precompute(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Embedded %d documents in %s\n", a.engine.Cache.Len(), time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
