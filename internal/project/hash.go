package project

import (
	"crypto/sha256"
)

// Digest is a fixed 256-bit hash, compatible with source.File.Hash.
type Digest [32]byte

// Combine hashes content together with its inputs:
// H( content || in1 || in2 ... ). Callers must pass inputs in a
// deterministic order.
func Combine(content Digest, inputs ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range inputs {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
