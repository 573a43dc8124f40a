package test

import "math/rand"

// termAlphabet mixes plain characters with LIKE metacharacters and their escape.
const termAlphabet = `abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 .-@%_\`

// RandomSearchTerm returns a pseudo-random search term of minLen to maxLen bytes.
func RandomSearchTerm(minLen, maxLen int) string {
	minLen = max(minLen, 1)
	maxLen = max(maxLen, minLen)

	buf := make([]byte, minLen+rand.Intn(maxLen-minLen+1))
	for i := range buf {
		buf[i] = termAlphabet[rand.Intn(len(termAlphabet))]
	}
	return string(buf)
}
