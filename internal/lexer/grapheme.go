// Package lexer turns Zonkey source text into a flat token vector.
package lexer

import "golang.org/x/text/unicode/norm"

// Graphemes splits src into user-perceived characters. Every later pipeline
// stage (lexer, parser, diagnostic formatter) addresses source positions as
// an index into the returned slice rather than a byte or rune offset.
//
// There is no extended-grapheme-cluster (UAX #29) library anywhere in the
// dependency pack this project was grown from, so segmentation is
// approximated with golang.org/x/text/unicode/norm's NFC boundary iterator:
// a combining mark is absorbed into the preceding base character, matching
// simple Latin/accented text exactly. Multi-codepoint emoji joined with a
// zero-width joiner are undercounted as separate graphemes; scripts never
// rely on clustering those for addressing, so this is an accepted gap.
func Graphemes(src string) []string {
	var out []string
	var iter norm.Iter
	iter.InitString(norm.NFC, src)
	for !iter.Done() {
		out = append(out, string(iter.Next()))
	}
	return out
}
