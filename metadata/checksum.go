package metadata

const (
	checksumSeed  uint64 = 0xcbf81ce484333325
	checksumPrime uint64 = 0x100000001b3
)

// Checksum folds an FNV-style 64-bit hash of data into 16 bits by XORing
// its four 16-bit quarters.
func Checksum(data []byte) uint16 {
	return fold(data)
}

func fold[T string | []byte](data T) uint16 {
	hash := checksumSeed
	for i := 0; i < len(data); i++ {
		hash ^= uint64(data[i])
		hash *= checksumPrime
	}
	return uint16(hash ^ (hash >> 16) ^ (hash >> 32) ^ (hash >> 48))
}
