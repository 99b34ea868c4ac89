// Package token validates the syntactic form of session tokens.
//
// A token is an opaque 32-character credential drawn from the uppercase
// hexadecimal alphabet 0-9A-F. Letters beyond F are not part of the
// alphabet, lowercase is not accepted.
package token

// Length is the exact number of characters of a well-formed token.
const Length = 32

// Valid reports whether tok is a well-formed token. It is a pure format
// check; no external service is consulted.
func Valid(tok string) bool {
	if len(tok) != Length {
		return false
	}

	for i := range Length {
		c := tok[i]
		if (c < '0' || c > '9') && (c < 'A' || c > 'F') {
			return false
		}
	}

	return true
}
