package icinga

// Attribute is a single key/value pair inside an object body. The value is
// opaque text, stored exactly as written.
type Attribute struct {
	Key   string
	Value string
}

// Object is a single Icinga configuration entity of a given kind.
// The name may be empty for anonymous objects.
type Object struct {
	Kind       string
	Name       string
	Imports    []string
	Attributes []Attribute
}

// SetAttr sets or overwrites an attribute, preserving insertion order.
// The pseudo-key "import" routes to AddImport, matching the way import
// statements masquerade as attributes on the CLI.
func (o *Object) SetAttr(key, value string) {
	if key == "import" {
		o.AddImport(value)
		return
	}
	for i := range o.Attributes {
		if o.Attributes[i].Key == key {
			o.Attributes[i].Value = value
			return
		}
	}
	o.Attributes = append(o.Attributes, Attribute{Key: key, Value: value})
}

// Attr returns the value of an attribute and whether it is present.
func (o *Object) Attr(key string) (string, bool) {
	for _, a := range o.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// RemoveAttr deletes an attribute if present. Removing the pseudo-key
// "import" clears the import list. Reports whether anything changed.
func (o *Object) RemoveAttr(key string) bool {
	if key == "import" {
		had := len(o.Imports) > 0
		o.Imports = nil
		return had
	}
	for i := range o.Attributes {
		if o.Attributes[i].Key == key {
			o.Attributes = append(o.Attributes[:i], o.Attributes[i+1:]...)
			return true
		}
	}
	return false
}

// AddImport appends a template import unless it is already present.
// Reports whether the import was added.
func (o *Object) AddImport(template string) bool {
	for _, imp := range o.Imports {
		if imp == template {
			return false
		}
	}
	o.Imports = append(o.Imports, template)
	return true
}

// Document is an ordered collection of objects parsed from one file.
type Document struct {
	Objects []*Object
}

// OfKind returns all objects with the given kind, in document order.
// Kind matching is case-sensitive and exact.
func (d *Document) OfKind(kind string) []*Object {
	var out []*Object
	for _, o := range d.Objects {
		if o.Kind == kind {
			out = append(out, o)
		}
	}
	return out
}

// SetAttr sets key to value on every object of the given kind.
// Returns the number of objects touched; zero matches is not an error.
func (d *Document) SetAttr(kind, key, value string) int {
	n := 0
	for _, o := range d.Objects {
		if o.Kind == kind {
			o.SetAttr(key, value)
			n++
		}
	}
	return n
}

// RemoveAttr deletes key from every object of the given kind.
// Returns the number of objects the key was actually removed from.
func (d *Document) RemoveAttr(kind, key string) int {
	n := 0
	for _, o := range d.Objects {
		if o.Kind == kind && o.RemoveAttr(key) {
			n++
		}
	}
	return n
}

// RemoveKind deletes every object of the given kind, preserving the order
// of the remaining objects. Returns the number of objects removed.
func (d *Document) RemoveKind(kind string) int {
	kept := d.Objects[:0]
	removed := 0
	for _, o := range d.Objects {
		if o.Kind == kind {
			removed++
			continue
		}
		kept = append(kept, o)
	}
	d.Objects = kept
	return removed
}

// AddImport appends a template import to every object of the given kind,
// skipping duplicates. Returns the number of objects that gained the import.
func (d *Document) AddImport(kind, template string) int {
	n := 0
	for _, o := range d.Objects {
		if o.Kind == kind && o.AddImport(template) {
			n++
		}
	}
	return n
}

// Append adds a new object at the end of the document.
func (d *Document) Append(o *Object) {
	d.Objects = append(d.Objects, o)
}
