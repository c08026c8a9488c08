// Package chunker splits raw dataset content into training chunks.
package chunker

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

const (
	DefaultChunkLen = 512
	MaxChunkLen     = 8192
)

// defaultSeparators are tried in order; the first one that keeps pieces
// under the chunk length wins for each split point.
var defaultSeparators = []string{"\n\n", "\n", ". ", "。", " "}

// Options controls how content is split.
type Options struct {
	ChunkLen   int
	Overlap    int
	Separators []string
}

// Chunk is a single unit of ingested content. In QA mode A carries the
// answer; otherwise only Text is set.
type Chunk struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	A     string `json:"a,omitempty"`
}

func (o *Options) normalize() {
	if o.ChunkLen <= 0 {
		o.ChunkLen = DefaultChunkLen
	}

	if o.ChunkLen > MaxChunkLen {
		o.ChunkLen = MaxChunkLen
	}

	if o.Overlap < 0 || o.Overlap >= o.ChunkLen {
		o.Overlap = 0
	}

	if len(o.Separators) == 0 {
		o.Separators = defaultSeparators
	}
}

// Split cuts text into chunks of at most ChunkLen runes, preferring to cut
// at the configured separators. Consecutive chunks share Overlap runes.
func Split(text string, opts Options) []Chunk {
	opts.normalize()

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	pieces := splitRecursive(text, opts.ChunkLen, opts.Separators)

	chunks := make([]Chunk, 0, len(pieces))
	carry := ""

	for _, piece := range pieces {
		merged := strings.TrimSpace(carry + piece)
		if merged == "" {
			continue
		}

		chunks = append(chunks, Chunk{Index: len(chunks), Text: merged})

		if opts.Overlap > 0 {
			carry = tail(merged, opts.Overlap)
		}
	}

	return chunks
}

// splitRecursive breaks text along the first separator, then recurses into
// pieces that are still too long with the remaining separators. Pieces that
// fit are greedily merged back together up to the limit.
func splitRecursive(text string, limit int, separators []string) []string {
	if len([]rune(text)) <= limit {
		return []string{text}
	}

	if len(separators) == 0 {
		return hardSplit(text, limit)
	}

	sep := separators[0]
	parts := strings.Split(text, sep)

	pieces := make([]string, 0, len(parts))
	current := ""

	for i, part := range parts {
		if i < len(parts)-1 {
			part += sep
		}

		if len([]rune(current+part)) <= limit {
			current += part

			continue
		}

		if current != "" {
			pieces = append(pieces, current)
		}

		if len([]rune(part)) > limit {
			pieces = append(pieces, splitRecursive(part, limit, separators[1:])...)
			current = ""

			continue
		}

		current = part
	}

	if current != "" {
		pieces = append(pieces, current)
	}

	return pieces
}

func hardSplit(text string, limit int) []string {
	runes := []rune(text)

	pieces := make([]string, 0, len(runes)/limit+1)
	for start := 0; start < len(runes); start += limit {
		end := min(start+limit, len(runes))
		pieces = append(pieces, string(runes[start:end]))
	}

	return pieces
}

func tail(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[len(runes)-n:])
}

// SplitQA parses CSV content where each record is a question and answer
// pair. A header row starting with "q" is skipped.
func SplitQA(data []byte) ([]Chunk, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse QA csv: %w", err)
	}

	chunks := make([]Chunk, 0, len(records))

	for i, record := range records {
		if len(record) < 2 {
			continue
		}

		question := strings.TrimSpace(record[0])
		answer := strings.TrimSpace(record[1])

		if i == 0 && strings.EqualFold(question, "q") {
			continue
		}

		if question == "" {
			continue
		}

		chunks = append(chunks, Chunk{Index: len(chunks), Text: question, A: answer})
	}

	return chunks, nil
}
