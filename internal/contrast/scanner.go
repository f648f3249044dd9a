package contrast

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scanner walks a source tree looking for unreadable class combinations.
type Scanner struct {
	rules   *Rules
	exts    map[string]bool
	exclude map[string]bool
	logger  *slog.Logger
}

// Result is the outcome of a scan.
type Result struct {
	Root         string
	Findings     []Finding
	FilesScanned int
}

// NewScanner builds a scanner from cfg. logger may be nil.
func NewScanner(cfg Config, logger *slog.Logger) (*Scanner, error) {
	rules, err := CompileRules(cfg.DarkBackgrounds, cfg.LightTexts)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Scanner{
		rules:   rules,
		exts:    make(map[string]bool, len(cfg.Extensions)),
		exclude: make(map[string]bool, len(cfg.ExcludeDirs)),
		logger:  logger,
	}
	for _, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.exts[strings.ToLower(ext)] = true
	}
	for _, dir := range cfg.ExcludeDirs {
		s.exclude[dir] = true
	}
	return s, nil
}

// Scan inspects every matching file under root (or root itself when it is a
// file). Findings are sorted by path, line, then column.
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan root: %w", err)
	}

	result := &Result{Root: root, Findings: []Finding{}}

	if !info.IsDir() {
		src, err := os.ReadFile(root)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", root, err)
		}
		result.Findings = append(result.Findings, s.ScanSource(filepath.Base(root), src)...)
		result.FilesScanned = 1
		sortFindings(result.Findings)
		return result, nil
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && s.exclude[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !s.exts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		findings := s.ScanSource(filepath.ToSlash(rel), src)
		if len(findings) > 0 {
			s.logger.Debug("contrast findings", "file", rel, "count", len(findings))
		}
		result.Findings = append(result.Findings, findings...)
		result.FilesScanned++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	sortFindings(result.Findings)
	s.logger.Debug("contrast scan complete",
		"root", root,
		"files", result.FilesScanned,
		"findings", len(result.Findings),
	)
	return result, nil
}

// ScanSource checks a single file's contents. path is recorded verbatim on
// each finding.
func (s *Scanner) ScanSource(path string, src []byte) []Finding {
	var findings []Finding
	for _, cs := range ExtractClassNames(src) {
		for _, v := range s.rules.Check(cs.Value) {
			findings = append(findings, Finding{
				Path:       path,
				Line:       cs.Line,
				Column:     cs.Column,
				ClassName:  normalizeClass(cs.Value),
				Background: v.Token,
				Variant:    v.Variant,
			})
		}
	}
	return findings
}

func sortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}

// Filter drops findings whose fingerprint is in accepted.
func Filter(findings []Finding, accepted map[string]bool) []Finding {
	if len(accepted) == 0 {
		return findings
	}
	out := make([]Finding, 0, len(findings))
	for _, f := range findings {
		if !accepted[f.Fingerprint()] {
			out = append(out, f)
		}
	}
	return out
}
