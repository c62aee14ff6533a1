// Package icinga implements a parser, mutator, and serializer for the
// Icinga2 object-definition syntax.
//
// The supported grammar is the flat object subset:
//
//	object <Kind> "<name>" {
//	  import "<template>"
//	  <key> = <value>
//	}
//
// Attribute values are opaque text: they are captured exactly as written
// (including quotes, dictionaries, and arrays) and emitted unchanged.
// Functions, variables, includes, and apply rules are out of scope; text
// outside object blocks is dropped on rewrite.
package icinga
