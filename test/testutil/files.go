package testutil

// GenerateMP4 returns size bytes that look enough like an MP4 file for
// upload tests: a minimal ftyp box followed by deterministic filler, so
// two calls with the same size produce identical content.
func GenerateMP4(size int64) []byte {
	header := []byte{
		0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p',
		'i', 's', 'o', 'm', 0x00, 0x00, 0x02, 0x00,
		'i', 's', 'o', 'm', 'm', 'p', '4', '1',
	}
	if size <= int64(len(header)) {
		return header[:size]
	}

	buf := make([]byte, size)
	copy(buf, header)
	// xorshift filler, cheap and repeatable
	state := uint32(0x9e3779b9)
	for i := int64(len(header)); i < size; i++ {
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		buf[i] = byte(state)
	}
	return buf
}
