package chunker_test

import (
	"strings"
	"testing"

	"github.com/flowdeck/flowdeck/pkg/chunker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	chunks := chunker.Split("hello world", chunker.Options{})

	require.Len(t, chunks, 1)
	assert.Equal(t, "hello world", chunks[0].Text)
	assert.Equal(t, 0, chunks[0].Index)
}

func TestSplit_EmptyText(t *testing.T) {
	assert.Nil(t, chunker.Split("", chunker.Options{}))
	assert.Nil(t, chunker.Split("   \n  ", chunker.Options{}))
}

func TestSplit_PrefersParagraphBoundaries(t *testing.T) {
	text := strings.Repeat("a", 40) + "\n\n" + strings.Repeat("b", 40)

	chunks := chunker.Split(text, chunker.Options{ChunkLen: 50})

	require.Len(t, chunks, 2)
	assert.True(t, strings.HasPrefix(chunks[0].Text, "aaa"))
	assert.True(t, strings.HasPrefix(chunks[1].Text, "bbb"))
}

func TestSplit_RespectsChunkLen(t *testing.T) {
	text := strings.Repeat("word ", 400)

	chunks := chunker.Split(text, chunker.Options{ChunkLen: 100})
	require.NotEmpty(t, chunks)

	for _, chunk := range chunks {
		assert.LessOrEqual(t, len([]rune(chunk.Text)), 100)
	}
}

func TestSplit_HardSplitWithoutSeparators(t *testing.T) {
	text := strings.Repeat("x", 250)

	chunks := chunker.Split(text, chunker.Options{ChunkLen: 100})

	require.Len(t, chunks, 3)
	assert.Equal(t, 100, len(chunks[0].Text))
	assert.Equal(t, 50, len(chunks[2].Text))
}

func TestSplit_OverlapCarriesTail(t *testing.T) {
	text := strings.Repeat("a", 90) + "\n\n" + strings.Repeat("b", 90)

	chunks := chunker.Split(text, chunker.Options{ChunkLen: 100, Overlap: 10})

	require.Len(t, chunks, 2)
	assert.True(t, strings.HasPrefix(chunks[1].Text, "aaaaaaaaaa"))
	assert.True(t, strings.HasSuffix(chunks[1].Text, "b"))
}

func TestSplit_CustomSeparators(t *testing.T) {
	text := "alpha|beta|gamma"

	chunks := chunker.Split(text, chunker.Options{ChunkLen: 8, Separators: []string{"|"}})

	require.Len(t, chunks, 3)
	assert.Equal(t, "alpha|", chunks[0].Text)
}

func TestSplit_ChunkIndexesAreSequential(t *testing.T) {
	chunks := chunker.Split(strings.Repeat("para\n\n", 50), chunker.Options{ChunkLen: 30})

	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.Index)
	}
}

func TestSplitQA(t *testing.T) {
	csv := "q,a\nWhat is Flowdeck?,A workflow editor\nHow do I publish?,Use the publish button\n"

	chunks, err := chunker.SplitQA([]byte(csv))
	require.NoError(t, err)

	require.Len(t, chunks, 2)
	assert.Equal(t, "What is Flowdeck?", chunks[0].Text)
	assert.Equal(t, "A workflow editor", chunks[0].A)
	assert.Equal(t, 1, chunks[1].Index)
}

func TestSplitQA_SkipsShortAndEmptyRows(t *testing.T) {
	csv := "only-question\n,answer without question\nreal question,real answer\n"

	chunks, err := chunker.SplitQA([]byte(csv))
	require.NoError(t, err)

	require.Len(t, chunks, 1)
	assert.Equal(t, "real question", chunks[0].Text)
}

func TestSplitQA_InvalidCSV(t *testing.T) {
	_, err := chunker.SplitQA([]byte("\"unterminated"))
	assert.Error(t, err)
}
