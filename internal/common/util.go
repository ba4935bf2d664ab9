package common

import "crypto/rand"

// GenerateRandByteArray returns size bytes from the system CSPRNG. The
// only caller is salt generation, where a degraded random source must
// stop the process rather than weaken stored credentials.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}
