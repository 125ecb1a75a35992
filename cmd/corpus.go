// cmd/corpus.go
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ldavb/ldavb/lda"
)

// loadVocabulary reads a newline-delimited list of terms, where line i
// (0-indexed) is the display string for term id i.
func loadVocabulary(path string) (lda.SliceVocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var vocab lda.SliceVocabulary
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		vocab = append(vocab, strings.TrimSpace(scanner.Text()))
	}
	return vocab, scanner.Err()
}

// loadCorpus reads one document per line, each a whitespace-separated list
// of "termID:count" pairs — the same sparse bag-of-words shape as
// Document, just line-delimited on disk.
func loadCorpus(path string) (lda.SliceCorpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var corpus lda.SliceCorpus
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		doc, err := parseDocumentLine(line)
		if err != nil {
			return nil, fmt.Errorf("corpus line %d: %w", lineNo, err)
		}
		corpus = append(corpus, doc)
	}
	return corpus, scanner.Err()
}

func parseDocumentLine(line string) (lda.Document, error) {
	fields := strings.Fields(line)
	doc := lda.Document{
		IDs:    make([]int32, 0, len(fields)),
		Counts: make([]float64, 0, len(fields)),
	}
	for _, field := range fields {
		idStr, countStr, ok := strings.Cut(field, ":")
		if !ok {
			return lda.Document{}, fmt.Errorf("malformed term %q, expected termID:count", field)
		}
		id, err := strconv.ParseInt(idStr, 10, 32)
		if err != nil {
			return lda.Document{}, fmt.Errorf("invalid term id %q: %w", idStr, err)
		}
		count, err := strconv.ParseFloat(countStr, 64)
		if err != nil {
			return lda.Document{}, fmt.Errorf("invalid count %q: %w", countStr, err)
		}
		doc.IDs = append(doc.IDs, int32(id))
		doc.Counts = append(doc.Counts, count)
	}
	return doc, nil
}
