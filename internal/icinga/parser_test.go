package icinga

import (
	"errors"
	"strings"
	"testing"
)

func mustParse(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := Parse([]byte(src), "test.conf")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}

func TestParseBasicObject(t *testing.T) {
	doc := mustParse(t, `
object Host "web1" {
  import "generic-host"
  address = "10.0.0.1"
  check_interval = 90s
}
`)

	if len(doc.Objects) != 1 {
		t.Fatalf("expected 1 object, got %d", len(doc.Objects))
	}
	o := doc.Objects[0]
	if o.Kind != "Host" || o.Name != "web1" {
		t.Errorf("unexpected header: kind=%q name=%q", o.Kind, o.Name)
	}
	if len(o.Imports) != 1 || o.Imports[0] != "generic-host" {
		t.Errorf("unexpected imports: %v", o.Imports)
	}
	if v, ok := o.Attr("address"); !ok || v != `"10.0.0.1"` {
		t.Errorf("address = %q, ok=%v", v, ok)
	}
	if v, _ := o.Attr("check_interval"); v != "90s" {
		t.Errorf("check_interval = %q", v)
	}
}

func TestParseSingleLineObject(t *testing.T) {
	doc := mustParse(t, `object Host "web1" { address = "10.0.0.1" }`)

	if len(doc.Objects) != 1 {
		t.Fatalf("expected 1 object, got %d", len(doc.Objects))
	}
	if v, ok := doc.Objects[0].Attr("address"); !ok || v != `"10.0.0.1"` {
		t.Errorf("address = %q, ok=%v", v, ok)
	}
}

func TestParseEmptyBodies(t *testing.T) {
	for _, src := range []string{
		`object Host "a" {}`,
		`object Host "a" { }`,
		"object Host \"a\" {\n}",
	} {
		doc := mustParse(t, src)
		if len(doc.Objects) != 1 || len(doc.Objects[0].Attributes) != 0 {
			t.Errorf("%q: expected one empty object, got %+v", src, doc.Objects)
		}
	}
}

func TestParseAnonymousObject(t *testing.T) {
	doc := mustParse(t, `
object IcingaApplication {
  enable_notifications = true
}
`)
	o := doc.Objects[0]
	if o.Kind != "IcingaApplication" || o.Name != "" {
		t.Errorf("unexpected header: kind=%q name=%q", o.Kind, o.Name)
	}
}

func TestParseMultipleObjectsInOrder(t *testing.T) {
	doc := mustParse(t, `
object Host "web1" { address = "10.0.0.1" }

object Service "ping" {
  host_name = "web1"
}

object Host "web2" { address = "10.0.0.2" }
`)
	var got []string
	for _, o := range doc.Objects {
		got = append(got, o.Kind+"/"+o.Name)
	}
	want := "Host/web1 Service/ping Host/web2"
	if strings.Join(got, " ") != want {
		t.Errorf("object order = %v, want %s", got, want)
	}
}

func TestParseNestedDictionaryValue(t *testing.T) {
	doc := mustParse(t, `
object Host "web1" {
  vars.os = "Linux"
  vars = {
    disks = {
      "disk /" = {}
    }
  }
  address = "10.0.0.1"
}
`)
	o := doc.Objects[0]
	v, ok := o.Attr("vars")
	if !ok {
		t.Fatal("vars attribute missing")
	}
	if !strings.HasPrefix(v, "{") || !strings.HasSuffix(v, "}") {
		t.Errorf("vars not captured whole: %q", v)
	}
	if !strings.Contains(v, `"disk /" = {}`) {
		t.Errorf("nested dictionary lost: %q", v)
	}
	// the attribute after the dictionary must still be seen
	if _, ok := o.Attr("address"); !ok {
		t.Error("attribute after multi-line value was dropped")
	}
}

func TestParseBracesInsideQuotedValue(t *testing.T) {
	doc := mustParse(t, `
object Host "web1" {
  notes = "contains { and } braces"
}
`)
	if v, _ := doc.Objects[0].Attr("notes"); v != `"contains { and } braces"` {
		t.Errorf("notes = %q", v)
	}
}

func TestParseMultiLineArrayValue(t *testing.T) {
	doc := mustParse(t, `
object HostGroup "linux" {
  groups = [
    "linux-servers",
    "web-servers"
  ]
}
`)
	v, ok := doc.Objects[0].Attr("groups")
	if !ok || !strings.Contains(v, "web-servers") {
		t.Errorf("groups = %q, ok=%v", v, ok)
	}
}

func TestParseSkipsCommentsAndTopLevelNoise(t *testing.T) {
	doc := mustParse(t, `
# generated by puppet
// do not edit

include "constants.conf"

object Host "web1" {
  # internal address
  address = "10.0.0.1"
}
`)
	if len(doc.Objects) != 1 {
		t.Fatalf("expected 1 object, got %d", len(doc.Objects))
	}
	if len(doc.Objects[0].Attributes) != 1 {
		t.Errorf("comment leaked into attributes: %+v", doc.Objects[0].Attributes)
	}
}

func TestParseDuplicateImportsDeduplicated(t *testing.T) {
	doc := mustParse(t, `
object Host "web1" {
  import "generic-host"
  import "generic-host"
}
`)
	if len(doc.Objects[0].Imports) != 1 {
		t.Errorf("imports = %v", doc.Objects[0].Imports)
	}
}

func TestParseUnclosedObject(t *testing.T) {
	_, err := Parse([]byte("object Host \"web1\" {\n  address = \"10.0.0.1\"\n"), "bad.conf")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.File != "bad.conf" || perr.Line != 1 {
		t.Errorf("error context = %s:%d, want bad.conf:1", perr.File, perr.Line)
	}
}

func TestParseUnbalancedValueBraces(t *testing.T) {
	_, err := Parse([]byte("object Host \"a\" {\n  vars = {\n}\n"), "bad.conf")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestParseMalformedHeader(t *testing.T) {
	_, err := Parse([]byte("object Host web1 {\n}\n"), "bad.conf")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError for unquoted name, got %v", err)
	}
	if perr.Line != 1 {
		t.Errorf("error line = %d, want 1", perr.Line)
	}
}

func TestParseEmptyInput(t *testing.T) {
	doc := mustParse(t, "")
	if len(doc.Objects) != 0 {
		t.Errorf("expected empty document, got %d objects", len(doc.Objects))
	}
}

func TestBraceDelta(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{``, 0},
		{`{`, 1},
		{`{}`, 0},
		{`{ a = { b = 1 }`, 1},
		{`"{"`, 0},
		{`"\"{"`, 0},
		{`[1, 2, [3]`, 1},
		{`}`, -1},
	}
	for _, tt := range tests {
		if got := braceDelta(tt.in); got != tt.want {
			t.Errorf("braceDelta(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
