package icinga

import (
	"fmt"
	"strings"
)

// Serialize renders the document in canonical form: imports before
// attributes, two-space indent, one blank line between objects, values
// emitted exactly as stored. The output parses back into an equivalent
// Document, and repeated parse/serialize cycles are stable.
func Serialize(d *Document) []byte {
	var b strings.Builder
	for i, o := range d.Objects {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeObject(&b, o)
	}
	return []byte(b.String())
}

func writeObject(b *strings.Builder, o *Object) {
	if o.Name != "" {
		fmt.Fprintf(b, "object %s \"%s\" {\n", o.Kind, o.Name)
	} else {
		fmt.Fprintf(b, "object %s {\n", o.Kind)
	}
	for _, imp := range o.Imports {
		fmt.Fprintf(b, "  import \"%s\"\n", imp)
	}
	for _, a := range o.Attributes {
		fmt.Fprintf(b, "  %s = %s\n", a.Key, a.Value)
	}
	b.WriteString("}\n")
}
