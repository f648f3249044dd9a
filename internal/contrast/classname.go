package contrast

import (
	"bytes"
	"regexp"
)

// classAttrRe matches className= or class= with a literal value, either bare
// ("..." or '...') or wrapped in braces ({"..."}, {'...'}, {`...`}).
var classAttrRe = regexp.MustCompile(
	`\b(?:className|class)\s*=\s*(?:"([^"]*)"|'([^']*)'|\{\s*(?:"([^"]*)"|'([^']*)'|` + "`([^`]*)`" + `)\s*\})`,
)

// ClassString is one literal class attribute value and where it starts.
type ClassString struct {
	Value  string
	Line   int // 1-based
	Column int // 1-based byte column of the first value character
}

// ExtractClassNames returns every literal class attribute value in src, in
// source order.
func ExtractClassNames(src []byte) []ClassString {
	var out []ClassString
	for _, m := range classAttrRe.FindAllSubmatchIndex(src, -1) {
		// m[0:2] is the whole match; groups 1..5 are the alternatives.
		for g := 1; g <= 5; g++ {
			start, end := m[2*g], m[2*g+1]
			if start < 0 {
				continue
			}
			line, col := position(src, start)
			out = append(out, ClassString{
				Value:  string(src[start:end]),
				Line:   line,
				Column: col,
			})
			break
		}
	}
	return out
}

// position converts a byte offset into a 1-based line and column.
func position(src []byte, offset int) (line, col int) {
	before := src[:offset]
	line = bytes.Count(before, []byte{'\n'}) + 1
	col = offset - bytes.LastIndexByte(before, '\n')
	return line, col
}
