package multiform

import "strings"

// Disposition holds the parameters of a Content-Disposition header value,
// keyed by lower-cased parameter name. The leading disposition type (such as
// "form-data") is kept under the empty key.
type Disposition map[string]string

// Type returns the disposition type, such as "form-data".
func (d Disposition) Type() string {
	return d[""]
}

// Name returns the "name" parameter.
func (d Disposition) Name() (string, bool) {
	v, ok := d["name"]
	return v, ok
}

// Filename returns the "filename" parameter.
func (d Disposition) Filename() (string, bool) {
	v, ok := d["filename"]
	return v, ok
}

// ParseDisposition parses a header value such as
//
//	form-data; name="upload"; filename="a.txt"
//
// Parameters are separated by semicolons outside quoted strings. Quoted
// values are unquoted. A token without "=" is taken as the disposition type
// if none has been seen yet and ignored otherwise. When a parameter repeats,
// the last value wins.
func ParseDisposition(s string) Disposition {
	d := make(Disposition)
	for _, tok := range splitParams(s) {
		key, value, found := strings.Cut(tok, "=")
		key = strings.ToLower(strings.Trim(key, " \t\r\n"))
		if !found {
			if _, seen := d[""]; !seen && key != "" {
				d[""] = key
			}
			continue
		}
		if key == "" {
			continue
		}
		d[key] = unquote(strings.Trim(value, " \t\r\n"))
	}
	return d
}

// splitParams splits s on semicolons that are not inside a quoted string.
func splitParams(s string) []string {
	var (
		toks    []string
		start   int
		quoted  bool
		escaped bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case quoted && c == '\\':
			escaped = true
		case c == '"':
			quoted = !quoted
		case c == ';' && !quoted:
			toks = append(toks, s[start:i])
			start = i + 1
		}
	}
	return append(toks, s[start:])
}

// unquote strips the quotes from a quoted string and resolves \" and \\
// inside it. Other backslashes are kept so Windows paths survive. Unbalanced
// quotes are trimmed.
func unquote(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return strings.Trim(s, `"'`)
	}

	s = s[1 : len(s)-1]
	if strings.IndexByte(s, '\\') == -1 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
