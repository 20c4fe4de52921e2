package multiform

import "strings"

// splitKey resolves the bracket suffix of a field key. A key of the form
// "base[sub]" yields base and sub with bracketed set. Only one bracket pair
// is decomposed: "a[b][c]" yields base "a" and sub "b][c".
func splitKey(key string) (base, sub string, bracketed bool) {
	if !strings.HasSuffix(key, "]") {
		return key, "", false
	}

	i := strings.IndexByte(key, '[')
	if i == -1 {
		return key, "", false
	}
	return key[:i], key[i+1 : len(key)-1], true
}
