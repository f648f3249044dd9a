// Package contrast flags class strings that put a dark background utility on
// an element without a light text utility.
//
// It is a static heuristic over front-end sources (TSX, JSX, HTML, Vue). For
// every className/class attribute with a literal value, tokens are split into
// a variant prefix and a utility:
//
//	dark:hover:bg-gray-900  ->  variant "dark:hover", utility "bg-gray-900"
//
// A dark background with variant V is satisfied by a light text utility with
// variant V or with no variant at all. Each unsatisfied dark background is a
// Finding.
//
// Dynamic class expressions (cn(...), conditionals) are not evaluated; only
// literal strings and template literals are inspected.
package contrast
