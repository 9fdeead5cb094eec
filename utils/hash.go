package utils

import "hash/fnv"

// U64 returns the fnv-1a hash of a string, used to fingerprint template text
// and fragment contents for render-cache keys.
func U64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// Mix64 folds two 64-bit hashes into one.
func Mix64(a, b uint64) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(u64ToBytes(a))
	_, _ = h.Write(u64ToBytes(b))
	return h.Sum64()
}

func u64ToBytes(u uint64) []byte {
	return []byte{
		byte(u >> 56), byte(u >> 48), byte(u >> 40), byte(u >> 32),
		byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u),
	}
}
