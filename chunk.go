package ssz

// chunkify packs data into 32-byte chunks, right-padding the final chunk
// with zero bytes (§4.3 Chunking).
func chunkify(data []byte) [][]byte {
	if len(data) == 0 {
		return nil
	}
	n := (len(data) + bytesPerChunk - 1) / bytesPerChunk
	chunks := make([][]byte, n)
	for i := 0; i < n; i++ {
		chunk := make([]byte, bytesPerChunk)
		start := i * bytesPerChunk
		end := start + bytesPerChunk
		if end > len(data) {
			end = len(data)
		}
		copy(chunk, data[start:end])
		chunks[i] = chunk
	}
	return chunks
}
