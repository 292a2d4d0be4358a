// Package intern provides tiny-string interning for the tokenizer.
// Short-cluster expansion peels one option character per token; handing
// out a precomputed one-byte string per character keeps that loop free
// of per-token allocations.
package intern

var oneByte [256]string

func init() {
	for i := range oneByte {
		oneByte[i] = string([]byte{byte(i)})
	}
}

// Byte returns the interned one-character string for b.
func Byte(b byte) string {
	return oneByte[b]
}
