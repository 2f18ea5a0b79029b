// Package strings holds small string helpers shared by configuration parsing.
package strings

import "strings"

// SplitList splits v on sep, trims each element, and drops empty and repeated
// elements. The first occurrence wins, so order is preserved.
//
//	SplitList(" a:9092, b:9092,,a:9092", ",") // []string{"a:9092", "b:9092"}
func SplitList(v, sep string) []string {
	var out []string
	seen := make(map[string]struct{})
	for part := range strings.SplitSeq(v, sep) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, dup := seen[part]; dup {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	return out
}
