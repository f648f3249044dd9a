package contrast

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// fingerprintDomain versions the fingerprint algorithm.
const fingerprintDomain = "docrecon/contrast-finding/v1"

// Finding is one dark background without light text.
type Finding struct {
	Path       string `json:"path"` // slash-separated, relative to the scan root
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	ClassName  string `json:"class_name"` // whitespace collapsed
	Background string `json:"background"` // offending token as written
	Variant    string `json:"variant,omitempty"`
}

// Fingerprint identifies the finding independently of its line and column,
// so baselines survive unrelated edits elsewhere in the file.
//
// Format: hex(SHA256(domain 0x00 path 0x00 NFC(class) 0x00 background))
func (f Finding) Fingerprint() string {
	h := sha256.New()
	for i, part := range []string{
		fingerprintDomain,
		f.Path,
		norm.NFC.String(f.ClassName),
		f.Background,
	} {
		if i > 0 {
			h.Write([]byte{0x00})
		}
		h.Write([]byte(part))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// FileCount returns the number of distinct paths among findings.
func FileCount(findings []Finding) int {
	files := make(map[string]struct{}, len(findings))
	for _, f := range findings {
		files[f.Path] = struct{}{}
	}
	return len(files)
}

// normalizeClass collapses runs of whitespace (including newlines inside
// template literals) to single spaces.
func normalizeClass(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
