package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"
)

// GenerateUniqueHash returns a random hex identifier for components and reports.
func GenerateUniqueHash() string {
	randomBytes := make([]byte, 16)
	if _, err := rand.Read(randomBytes); err != nil {
		panic("random number generator failed")
	}
	hashInput := append([]byte(fmt.Sprintf("%d", time.Now().UnixNano())), randomBytes...)
	hash := sha256.Sum256(hashInput)
	return hex.EncodeToString(hash[:])
}

// TimeTokens returns the {yyyy}/{MM}/{dd}/{HH}/{mm}/{ts} replacements for now.
func TimeTokens(now time.Time) map[string]string {
	ts := now.UTC()
	return map[string]string{
		"{yyyy}": ts.Format("2006"),
		"{MM}":   ts.Format("01"),
		"{dd}":   ts.Format("02"),
		"{HH}":   ts.Format("15"),
		"{mm}":   ts.Format("04"),
		"{ts}":   fmt.Sprintf("%d", ts.UnixMilli()),
	}
}

// RenderTemplate substitutes every {token} in tpl. Longer tokens are applied
// first so overlapping names cannot clobber each other.
func RenderTemplate(tpl string, repl map[string]string) string {
	keys := make([]string, 0, len(repl))
	for k := range repl {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		tpl = strings.ReplaceAll(tpl, k, repl[k])
	}
	return tpl
}
