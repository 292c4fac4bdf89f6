package varint

// PrependLength prepends the varint encoded length of the byte slice to itself.
func PrependLength(data []byte) []byte {
	return append(Pack64(uint64(len(data))), data...)
}

// GetNextBlock extracts a varint-length-prefixed block from the beginning of the given byte slice. It returns the block, the total number of bytes consumed (prefix included) and an error.
func GetNextBlock(data []byte) ([]byte, int, error) {
	l, n, err := Unpack64(data)
	if err != nil {
		return nil, 0, err
	}
	if l > uint64(len(data)) {
		return nil, 0, errTooSmall
	}
	totalLength := int(l) + n
	if totalLength > len(data) {
		return nil, 0, errTooSmall
	}
	return data[n:totalLength], totalLength, nil
}
