package multiform_test

import (
	"strings"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/tomasbasham/multiform"
)

// Comparer for MyDate type.
var MyDateComparer = cmp.Comparer(func(x, y MyDate) bool {
	return time.Time(x).Equal(time.Time(y))
})

type MyDate time.Time

func (d *MyDate) UnmarshalForm(b string) error {
	t, err := time.Parse("2006.01.02", b)
	if err != nil {
		return err
	}
	*d = MyDate(t)
	return nil
}

type Person struct {
	Name     string   `form:"name"`
	Age      int      `form:"age"`
	Pronouns []string `form:"pronouns"`
}

type Address struct {
	Street string `form:"street"`
	City   string `form:"city"`
	Zip    string `form:"zip"`
}

type Profile struct {
	Name      string            `form:"name"`
	Address   Address           `form:"address"`
	Tags      []string          `form:"tags"`
	Labels    map[string]string `form:"labels"`
	Subscribe bool              `form:"subscribe"`
	Born      MyDate            `form:"born"`
	Nickname  *string           `form:"nickname"`
	Extra     interface{}       `form:"extra"`
	Private   string            `form:"-"`
	Skipped   string            `form:",ignore"`
	Avatar    *multiform.File   `form:"avatar"`
	Photos    []*multiform.File `form:"photos"`
}

const boundary = "XyZ0123abc"

// body joins parts into a multipart body delimited by boundary.
func body(parts ...string) []byte {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString("--" + boundary + "\r\n")
		b.WriteString(p)
		b.WriteString("\r\n")
	}
	b.WriteString("--" + boundary + "--\r\n")
	return []byte(b.String())
}

func field(name, value string) string {
	return `Content-Disposition: form-data; name="` + name + "\"\r\n\r\n" + value
}

func file(name, filename, contentType, content string) string {
	h := `Content-Disposition: form-data; name="` + name + `"; filename="` + filename + "\"\r\n"
	if contentType != "" {
		h += "Content-Type: " + contentType + "\r\n"
	}
	return h + "\r\n" + content
}

func scalar[T any](v T) multiform.Entry[T] {
	return multiform.Entry[T]{Kind: multiform.Scalar, Value: v}
}

func list[T any](vs ...T) multiform.Entry[T] {
	return multiform.Entry[T]{Kind: multiform.List, List: vs}
}

func mapOf[T any](m map[string]T) multiform.Entry[T] {
	return multiform.Entry[T]{Kind: multiform.Map, Map: m}
}
