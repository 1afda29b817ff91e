// ABOUTME: ChunkEngine splits document text into overlapping fixed-size chunks
// ABOUTME: Prefers natural boundaries (paragraph, line, sentence, word) near each cut
package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harper/studygen/internal/models"
)

// ChunkConfig controls how documents are split
type ChunkConfig struct {
	// TargetSize is the desired chunk length in runes
	TargetSize int
	// Overlap is how many runes consecutive chunks share
	Overlap int
	// Boundaries are cut separators in priority order; the splitter prefers
	// to end a chunk just after the highest-priority separator it can find
	// near the target size
	Boundaries []string
	// LookbackWindow is how far before the target size a boundary may be
	LookbackWindow int
}

// DefaultChunkConfig returns the standard splitting configuration
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		TargetSize:     1000,
		Overlap:        200,
		Boundaries:     []string{"\n\n", "\n", ". ", " "},
		LookbackWindow: 200,
	}
}

// ChunkEngine splits documents deterministically: the same document always
// yields the same chunks with the same IDs
type ChunkEngine struct {
	config ChunkConfig
}

// NewChunkEngine creates a ChunkEngine with the given configuration.
// Degenerate values fall back to defaults so the engine always makes progress.
func NewChunkEngine(config ChunkConfig) *ChunkEngine {
	def := DefaultChunkConfig()
	if config.TargetSize <= 0 {
		config.TargetSize = def.TargetSize
	}
	if config.Overlap < 0 || config.Overlap >= config.TargetSize {
		config.Overlap = config.TargetSize / 5
	}
	if len(config.Boundaries) == 0 {
		config.Boundaries = def.Boundaries
	}
	if config.LookbackWindow <= 0 {
		config.LookbackWindow = def.LookbackWindow
	}
	return &ChunkEngine{config: config}
}

// ChunkDocument splits a document into ordered, overlapping chunks. Offsets
// are rune offsets into the document text, and chunk IDs are derived from the
// document ID and sequence index so re-chunking is stable.
func (ce *ChunkEngine) ChunkDocument(doc *models.Document) ([]models.Chunk, error) {
	if strings.TrimSpace(doc.RawText) == "" {
		return nil, errors.New("cannot chunk empty document")
	}

	runes := []rune(doc.RawText)
	var chunks []models.Chunk
	seq := 0
	start := 0

	for start < len(runes) {
		end := start + ce.config.TargetSize
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = ce.cutPoint(runes, start, end)
		}

		text := string(runes[start:end])
		if strings.TrimSpace(text) != "" {
			chunks = append(chunks, models.Chunk{
				ID:              fmt.Sprintf("%s_%d", doc.ID, seq),
				DocumentID:      doc.ID,
				DocumentName:    doc.DisplayName,
				SequenceIndex:   seq,
				Text:            text,
				CharOffsetStart: start,
				CharOffsetEnd:   end,
			})
			seq++
		}

		if end == len(runes) {
			break
		}

		next := end - ce.config.Overlap
		if next <= start {
			// Overlap would stall the scan; skip it for this step
			next = end
		}
		start = next
	}

	return chunks, nil
}

// cutPoint finds where to end a chunk that would otherwise be cut at end.
// It scans backwards within the lookback window for the highest-priority
// boundary and cuts just after it; with no boundary in range it cuts hard
// at the target size.
func (ce *ChunkEngine) cutPoint(runes []rune, start, end int) int {
	lowest := end - ce.config.LookbackWindow
	if lowest <= start {
		lowest = start + 1
	}

	for _, sep := range ce.config.Boundaries {
		sepRunes := []rune(sep)
		for p := end - len(sepRunes); p >= start; p-- {
			cut := p + len(sepRunes)
			if cut < lowest {
				break
			}
			if runesEqual(runes[p:cut], sepRunes) {
				return cut
			}
		}
	}

	return end
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
