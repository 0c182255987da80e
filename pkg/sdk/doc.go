// Package dsaranker embeds the dsaranker ranking engine in a Go program.
//
// The engine ranks a precomputed corpus of programming problems with one of
// three strategies: BM25, TF-IDF cosine similarity or dense embedding cosine
// similarity.
//
//	client, _ := dsaranker.New(dsaranker.WithCorpusDir("data"))
//	res, _ := client.Search(dsaranker.StrategyBM25).
//	    Query("two sum array").
//	    Platform("leetcode").
//	    Limit(5).
//	    Do(ctx)
//
// The embedding strategy needs an Embedder and a precompute pass:
//
//	client, _ := dsaranker.New(
//	    dsaranker.WithCorpusDir("data"),
//	    dsaranker.WithEmbedder(myEmbedder),
//	)
//	_ = client.Precompute(ctx)
//	res, _ := client.Search(dsaranker.StrategyEmbedding).Query("shortest path").Do(ctx)
package dsaranker
