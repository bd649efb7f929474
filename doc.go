// Package tokcompress implements lossless compression of integer token
// sequences intended as inputs to large language models.
//
// Given a sequence of non-negative integer tokens, Compress identifies
// repeated multi-token subsequences, replaces each chosen occurrence with a
// single reserved meta-token, and prefixes the output with a
// self-describing dictionary section mapping each meta-token back to its
// original subsequence. Decompress is the exact inverse: decompressing a
// compressed stream yields the original token sequence, token for token.
//
// The package is a pure function over its inputs: a single Compress or
// Decompress call holds no shared mutable state, performs no I/O, and may
// run on any goroutine. Discovery across candidate pattern lengths may
// optionally run in parallel (see Config.ParallelDiscovery); the final
// output is always byte-identical regardless of how many goroutines
// discovery used.
package tokcompress
