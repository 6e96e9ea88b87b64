package names

// FNVOffset64 and FNVPrime64 are 64-bit FNV-1a constants.
const (
	FNVOffset64 = 14695981039346656037
	FNVPrime64  = 1099511628211
)

// HashBytes returns the stable 64-bit hash used to bucket names.
// The result is never zero.
func HashBytes(b []byte) uint64 {
	h := uint64(FNVOffset64)
	for _, c := range b {
		h ^= uint64(c)
		h *= FNVPrime64
	}
	if h == 0 {
		return 1
	}
	return h
}
