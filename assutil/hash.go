package assutil

import "hash/maphash"

// contentHashSeed is shared process-wide so that two hashes of the same
// bytes within one run compare equal, while remaining randomized per
// process to avoid the DoS a fixed seed would invite on adversarial input
// (the same motivation as the original's randomized-seed hasher).
var contentHashSeed = maphash.MakeSeed()

// ContentHash hashes a byte span for use as a cache key, e.g. to decide
// whether a section's derived data can be reused without re-walking the
// AST. No package in this repository calls it.
func ContentHash(b []byte) uint64 {
	var h maphash.Hash
	h.SetSeed(contentHashSeed)
	h.Write(b)
	return h.Sum64()
}

// ContentHashString is ContentHash for a string, avoiding a []byte copy
// where the caller already holds a string view.
func ContentHashString(s string) uint64 {
	var h maphash.Hash
	h.SetSeed(contentHashSeed)
	h.WriteString(s)
	return h.Sum64()
}
