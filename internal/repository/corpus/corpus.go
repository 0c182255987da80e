// Package corpus loads the precomputed corpus artifacts: the document
// registry and the IDF, TF-IDF and BM25 tables.
package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dsaranker/internal/domain"
	domdoc "github.com/kailas-cloud/dsaranker/internal/domain/document"
	"github.com/kailas-cloud/dsaranker/internal/domain/index"
)

// Files names the artifacts inside the corpus directory.
type Files struct {
	Documents string
	IDF       string
	TFIDF     string
	BM25      string
}

// DefaultFiles returns the artifact names written by the index builder.
func DefaultFiles() Files {
	return Files{
		Documents: "idToData.json",
		IDF:       "IDF.json",
		TFIDF:     "TF_IDF.json",
		BM25:      "BM25.json",
	}
}

// Corpus is the read-only artifact set. Safe for concurrent reads.
type Corpus struct {
	Registry *domdoc.Registry
	Lexical  *index.Lexical
}

// Load reads every artifact from fsys. Any missing or malformed file fails
// the load with domain.ErrCorpusLoad.
func Load(fsys fs.FS, files Files, logger *zap.Logger) (*Corpus, error) {
	start := time.Now()

	registry, err := loadRegistry(fsys, files.Documents)
	if err != nil {
		return nil, err
	}
	idf, err := loadIDF(fsys, files.IDF)
	if err != nil {
		return nil, err
	}
	tfidf, err := loadTable(fsys, files.TFIDF)
	if err != nil {
		return nil, err
	}
	bm25, err := loadTable(fsys, files.BM25)
	if err != nil {
		return nil, err
	}

	logger.Info("Corpus loaded",
		zap.Int("documents", registry.Len()),
		zap.Int("terms", len(idf)),
		zap.Int("tfidf_rows", tfidf.Len()),
		zap.Int("bm25_rows", bm25.Len()),
		zap.Duration("duration", time.Since(start)),
	)

	return &Corpus{
		Registry: registry,
		Lexical:  &index.Lexical{IDF: idf, TFIDF: tfidf, BM25: bm25},
	}, nil
}

func loadRegistry(fsys fs.FS, name string) (*domdoc.Registry, error) {
	records := make(map[string]domdoc.Record)
	keys, err := decodeFile(fsys, name, func(id string, raw map[string]json.RawMessage) {
		records[id] = recordFromRaw(id, raw)
	})
	if err != nil {
		return nil, err
	}
	return domdoc.NewRegistry(iterationOrder(keys), records), nil
}

func loadIDF(fsys fs.FS, name string) (index.IDF, error) {
	idf := make(index.IDF)
	_, err := decodeFile(fsys, name, func(term string, w float64) {
		idf[term] = w
	})
	if err != nil {
		return nil, err
	}
	return idf, nil
}

func loadTable(fsys fs.FS, name string) (*index.Table, error) {
	rows := make(map[string]map[string]float64)
	keys, err := decodeFile(fsys, name, func(id string, row map[string]float64) {
		rows[id] = row
	})
	if err != nil {
		return nil, err
	}
	return index.NewTable(iterationOrder(keys), rows), nil
}

func decodeFile[T any](fsys fs.FS, name string, fn func(key string, v T)) ([]string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrCorpusLoad, name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrCorpusLoad, name, err)
	}
	defer func() { _ = f.Close() }()

	keys, err := decodeObject(f, fn)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrCorpusLoad, name, err)
	}
	return keys, nil
}
