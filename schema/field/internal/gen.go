// gen is a codegen cmd for generating the numeric field builders from template.
package main

import (
	"bytes"
	"go/format"
	"log"
	"os"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// builder describes one generated factory function.
type builder struct {
	Func string // Factory name, e.g. "BigInt".
	Type string // field.Type constant, e.g. "TypeInt64".
	Doc  string // Short type description used in doc comments.
}

func main() {
	buf, err := os.ReadFile("internal/numeric.tmpl")
	if err != nil {
		log.Fatal("reading template file:", err)
	}
	titleCaser := cases.Title(language.English)
	tmpl := template.Must(template.New("numeric").
		Funcs(template.FuncMap{"title": titleCaser.String, "hasPrefix": strings.HasPrefix}).
		Parse(string(buf)))
	b := &bytes.Buffer{}
	if err = tmpl.Execute(b, struct {
		Ints   []builder
		Floats []builder
	}{
		Ints: []builder{
			{Func: "SmallInt", Type: "TypeInt16", Doc: "small integer"},
			{Func: "Int", Type: "TypeInt", Doc: "integer"},
			{Func: "BigInt", Type: "TypeInt64", Doc: "big integer"},
		},
		Floats: []builder{
			{Func: "Float", Type: "TypeFloat64", Doc: "float"},
		},
	}); err != nil {
		log.Fatal("executing template:", err)
	}
	if buf, err = format.Source(b.Bytes()); err != nil {
		log.Fatal("formatting output:", err)
	}
	if err = os.WriteFile("numeric.go", buf, 0o644); err != nil {
		log.Fatal("writing go file:", err)
	}
}
