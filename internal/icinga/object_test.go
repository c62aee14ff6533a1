package icinga

import (
	"reflect"
	"testing"
)

func twoHostsOneService() *Document {
	return &Document{Objects: []*Object{
		{Kind: "Host", Name: "web1", Attributes: []Attribute{{Key: "address", Value: `"10.0.0.1"`}}},
		{Kind: "Service", Name: "ping", Attributes: []Attribute{{Key: "host_name", Value: `"web1"`}}},
		{Kind: "Host", Name: "web2", Attributes: []Attribute{{Key: "address", Value: `"10.0.0.2"`}}},
	}}
}

func TestSetAttrInsertsAndOverwrites(t *testing.T) {
	doc := twoHostsOneService()

	if n := doc.SetAttr("Host", "check_interval", "90s"); n != 2 {
		t.Errorf("SetAttr touched %d objects, want 2", n)
	}
	for _, o := range doc.OfKind("Host") {
		if v, ok := o.Attr("check_interval"); !ok || v != "90s" {
			t.Errorf("%s: check_interval = %q, ok=%v", o.Name, v, ok)
		}
	}
	if _, ok := doc.Objects[1].Attr("check_interval"); ok {
		t.Error("Service gained an attribute meant for Host")
	}

	doc.SetAttr("Host", "check_interval", "60s")
	if v, _ := doc.Objects[0].Attr("check_interval"); v != "60s" {
		t.Errorf("overwrite failed: %q", v)
	}
	// overwriting must not duplicate the key
	if got := len(doc.Objects[0].Attributes); got != 2 {
		t.Errorf("attribute count = %d, want 2", got)
	}
}

func TestSetAttrPreservesInsertionOrder(t *testing.T) {
	o := &Object{Kind: "Host", Name: "a"}
	o.SetAttr("first", "1")
	o.SetAttr("second", "2")
	o.SetAttr("third", "3")
	o.SetAttr("first", "updated")

	var keys []string
	for _, a := range o.Attributes {
		keys = append(keys, a.Key)
	}
	if !reflect.DeepEqual(keys, []string{"first", "second", "third"}) {
		t.Errorf("key order = %v", keys)
	}
}

func TestSetAttrIsIdempotent(t *testing.T) {
	a := twoHostsOneService()
	b := twoHostsOneService()

	a.SetAttr("Host", "check_interval", "90s")
	b.SetAttr("Host", "check_interval", "90s")
	b.SetAttr("Host", "check_interval", "90s")

	if !reflect.DeepEqual(a, b) {
		t.Errorf("applying set twice diverged:\nonce:  %+v\ntwice: %+v", a, b)
	}
}

func TestSetAttrMissingKindIsNoop(t *testing.T) {
	doc := twoHostsOneService()
	if n := doc.SetAttr("Endpoint", "port", "5665"); n != 0 {
		t.Errorf("SetAttr on missing kind touched %d objects", n)
	}
}

func TestSetAttrImportKeyRoutesToImports(t *testing.T) {
	o := &Object{Kind: "Host", Name: "a"}
	o.SetAttr("import", "generic-host")
	o.SetAttr("import", "generic-host")

	if len(o.Attributes) != 0 {
		t.Errorf("import leaked into attributes: %+v", o.Attributes)
	}
	if !reflect.DeepEqual(o.Imports, []string{"generic-host"}) {
		t.Errorf("imports = %v", o.Imports)
	}
}

func TestRemoveAttr(t *testing.T) {
	doc := twoHostsOneService()

	if n := doc.RemoveAttr("Host", "address"); n != 2 {
		t.Errorf("RemoveAttr removed from %d objects, want 2", n)
	}
	// objects stay, just empty-bodied
	if len(doc.OfKind("Host")) != 2 {
		t.Error("RemoveAttr deleted objects")
	}
	for _, o := range doc.OfKind("Host") {
		if len(o.Attributes) != 0 {
			t.Errorf("%s still has attributes: %+v", o.Name, o.Attributes)
		}
	}

	// absent key is a no-op, not an error
	if n := doc.RemoveAttr("Host", "nonexistent"); n != 0 {
		t.Errorf("removing absent key reported %d changes", n)
	}
}

func TestRemoveAttrImportClearsImports(t *testing.T) {
	o := &Object{Kind: "Host", Name: "a", Imports: []string{"t1", "t2"}}
	if !o.RemoveAttr("import") {
		t.Error("clearing imports reported no change")
	}
	if len(o.Imports) != 0 {
		t.Errorf("imports = %v", o.Imports)
	}
}

func TestRemoveKind(t *testing.T) {
	doc := twoHostsOneService()

	if n := doc.RemoveKind("Host"); n != 2 {
		t.Errorf("RemoveKind removed %d, want 2", n)
	}
	if len(doc.Objects) != 1 || doc.Objects[0].Kind != "Service" {
		t.Errorf("remaining objects: %+v", doc.Objects)
	}

	if n := doc.RemoveKind("Host"); n != 0 {
		t.Errorf("second RemoveKind removed %d", n)
	}
}

func TestRemoveKindPreservesOrderOfRest(t *testing.T) {
	doc := &Document{Objects: []*Object{
		{Kind: "Host", Name: "a"},
		{Kind: "Endpoint", Name: "b"},
		{Kind: "Host", Name: "c"},
		{Kind: "Zone", Name: "d"},
		{Kind: "Host", Name: "e"},
	}}
	doc.RemoveKind("Host")

	var names []string
	for _, o := range doc.Objects {
		names = append(names, o.Name)
	}
	if !reflect.DeepEqual(names, []string{"b", "d"}) {
		t.Errorf("remaining order = %v", names)
	}
}

func TestAddImportDeduplicates(t *testing.T) {
	doc := twoHostsOneService()

	if n := doc.AddImport("Host", "generic-host"); n != 2 {
		t.Errorf("AddImport added to %d objects, want 2", n)
	}
	if n := doc.AddImport("Host", "generic-host"); n != 0 {
		t.Errorf("duplicate AddImport added to %d objects", n)
	}
	if imps := doc.Objects[0].Imports; len(imps) != 1 {
		t.Errorf("imports = %v", imps)
	}
}

func TestAppend(t *testing.T) {
	doc := &Document{}
	doc.Append(&Object{Kind: "Host", Name: "new-host"})
	if len(doc.Objects) != 1 || doc.Objects[0].Name != "new-host" {
		t.Errorf("objects = %+v", doc.Objects)
	}
}
