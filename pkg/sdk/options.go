package dsaranker

import (
	"io/fs"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	corpus fs.FS
	files  CorpusFiles

	embedder            Embedder
	queryInstruction    string
	documentInstruction string
	concurrency         int

	maxCandidates   int
	maxEditDistance int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// CorpusFiles names the artifacts inside the corpus directory.
// Empty names keep the defaults (idToData.json, IDF.json, TF_IDF.json, BM25.json).
type CorpusFiles struct {
	Documents string
	IDF       string
	TFIDF     string
	BM25      string
}

// WithCorpusDir reads the corpus from a directory on disk.
func WithCorpusDir(dir string) Option {
	return optionFunc(func(c *clientConfig) {
		c.corpus = os.DirFS(dir)
	})
}

// WithCorpusFS reads the corpus from any file system, e.g. an embed.FS.
func WithCorpusFS(fsys fs.FS) Option {
	return optionFunc(func(c *clientConfig) {
		c.corpus = fsys
	})
}

// WithCorpusFiles overrides artifact file names.
func WithCorpusFiles(files CorpusFiles) Option {
	return optionFunc(func(c *clientConfig) {
		c.files = files
	})
}

// WithEmbedder enables the embedding strategy.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithInstructions sets the texts prepended to queries and documents before
// embedding, for models trained with "query: " / "passage: " style prefixes.
func WithInstructions(query, document string) Option {
	return optionFunc(func(c *clientConfig) {
		c.queryInstruction = query
		c.documentInstruction = document
	})
}

// WithConcurrency bounds parallel embedding calls during Precompute. Default: 4.
func WithConcurrency(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.concurrency = n
	})
}

// WithMaxCandidates caps the ranked list before pagination. Default: 50.
func WithMaxCandidates(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxCandidates = n
	})
}

// WithMaxEditDistance sets the autocorrect edit distance. Default: 2.
func WithMaxEditDistance(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxEditDistance = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
