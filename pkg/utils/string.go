package utils

import (
	"math/rand"
	"time"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// JoinCodeLength is the length of gathering join codes.
const JoinCodeLength = 7

var randSource = rand.NewSource(time.Now().UnixNano())
var randGenerator = rand.New(randSource)

// GenerateJoinCode returns a short uppercase alphanumeric join code.
// Uniqueness against existing gatherings is the caller's responsibility.
func GenerateJoinCode() string {
	b := make([]byte, JoinCodeLength)
	for i := range b {
		b[i] = codeCharset[randGenerator.Intn(len(codeCharset))]
	}
	return string(b)
}
