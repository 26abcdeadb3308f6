package zis

import "unicode/utf8"

// Character-class predicates used by the lexer and the string packer,
// per spec.md §2.1 "Strutil" (stateless UTF-8 primitives and
// character-class tables). Built on unicode/utf8: no ecosystem library
// in the corpus offers a narrower primitive than the standard library
// already does for rune decode/encode, so this file stays stdlib-only
// (see DESIGN.md).

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHexDigit(r rune) bool {
	return isASCIIDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isOctalDigit(r rune) bool { return r >= '0' && r <= '7' }

func isBinaryDigit(r rune) bool { return r == '0' || r == '1' }

func isASCIIAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isIdentStart reports whether r can begin an identifier: ASCII letter,
// underscore, or any non-ASCII UTF-8 character (spec.md §4.8).
func isIdentStart(r rune) bool {
	return isASCIIAlpha(r) || r == '_' || r >= utf8.RuneSelf
}

// isIdentCont reports whether r can continue an identifier.
func isIdentCont(r rune) bool {
	return isIdentStart(r) || isASCIIDigit(r)
}

func digitValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10
	default:
		return -1
	}
}
