// Command tokstat compresses a token sequence read from a file and prints
// a breakdown of the result.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/corrolabs/tokcompress"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: tokstat <tokens-file>\n")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tokens, err := parseTokens(string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := tokcompress.DefaultConfig()
	res, err := tokcompress.Compress(tokens, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compress failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Input:      %d tokens\n", res.OriginalLength)
	fmt.Printf("Compressed: %d tokens (%d dictionary entries, %d body)\n",
		res.CompressedLength, len(res.Dictionary), len(res.Body))
	fmt.Printf("Ratio:      %.3fx\n", res.Ratio)
	fmt.Printf("Passes run: %d\n", res.Metrics.PassesRun)
	fmt.Printf("Candidates examined: %d, occurrences selected: %d\n",
		res.Metrics.CandidatesFound, res.Metrics.OccurrencesSelected)

	if res.CompressedLength < res.OriginalLength {
		fmt.Printf("\nSUCCESS: compressed to %.1f%% of original size\n",
			100.0*float64(res.CompressedLength)/float64(res.OriginalLength))
	} else {
		fmt.Printf("\nNo net savings on this input.\n")
	}
}

func parseTokens(content string) (tokcompress.Sequence, error) {
	fields := strings.FieldsFunc(content, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r' || r == '\t' || r == ' '
	})
	out := make(tokcompress.Sequence, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		v, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid token %q: %w", f, err)
		}
		out = append(out, uint32(v))
	}
	return out, nil
}
