// Package vectorstore holds the word and place embedding tables used to rank
// places against keyword preferences.
//
// # Data files
//
// Two plain-text tables are read at startup:
//
//	word2vec.txt       word v1 v2 ... vN            (whitespace separated)
//	place_vectors.csv  id,name,category,lat,lng,v1..vN
//
// Place rows are L2-normalized once after loading so that Similarity is a
// plain dot product. When the tables are missing or malformed, Load falls
// back to a small built-in dataset and the service keeps running with
// degraded recommendations.
//
// # Thread Safety
//
// A Store is never written after construction and may be shared freely.
package vectorstore
