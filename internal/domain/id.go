package domain

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewEntityID generates a public identifier of the form
// <prefix>_<unix_ms>_<9 random base36 chars>, e.g. report_1714650000000_k3j9x0a2q.
func NewEntityID(prefix string) string {
	var sb strings.Builder
	for i := 0; i < 9; i++ {
		sb.WriteByte(base36Alphabet[rand.Intn(len(base36Alphabet))])
	}
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), sb.String())
}

// NewStoredFileName builds the on-disk name for an uploaded file:
// <unix_ms>-<random int>-<original name>, with path separators stripped
// from the original name.
func NewStoredFileName(originalName string) string {
	base := originalName
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	return fmt.Sprintf("%d-%d-%s", time.Now().UnixMilli(), rand.Intn(1_000_000_000), base)
}
