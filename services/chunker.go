package services

// DefaultChunkSize is the maximum number of characters sent to the model per chunk
const DefaultChunkSize = 2000

// ChunkText splits text into consecutive, non-overlapping pieces of at most
// size characters (runes). The last piece may be shorter. Empty text yields no chunks.
func ChunkText(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if text == "" {
		return nil
	}

	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks
}
