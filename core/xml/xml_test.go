package xml

import "testing"

const sample = `<?xml version="1.0"?>
<root>
  <meta>
    <title>Example</title>
    <empty></empty>
  </meta>
  <body>
    <item n="1">first <b>bold</b> tail</item>
    <item n="2">
      <item n="2.1">nested</item>
    </item>
  </body>
</root>`

func TestParseAndFindText(t *testing.T) {
	d, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	if got := d.FindText("//meta/title"); got != "Example" {
		t.Errorf("FindText(title) = %q", got)
	}
	if got := d.FindText("//meta/empty"); got != "" {
		t.Errorf("FindText(empty) = %q", got)
	}
	if got := d.FindText("//meta/absent"); got != "" {
		t.Errorf("FindText(absent) = %q, want empty", got)
	}
}

func TestFindText_InvalidExpression(t *testing.T) {
	d, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	if got := d.FindText("//meta["); got != "" {
		t.Errorf("invalid xpath should yield empty text, got %q", got)
	}
	if n := d.First("//meta["); n != nil {
		t.Error("invalid xpath should yield nil node")
	}
}

func TestDirectChildren_ScopedToImmediateChildren(t *testing.T) {
	d, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	body := d.First("//body")
	if body == nil {
		t.Fatal("body not found")
	}

	items := body.DirectChildren("item")
	if len(items) != 2 {
		t.Fatalf("got %d direct items, want 2 (nested item must not be hoisted)", len(items))
	}
	if items[0].Attr("n") != "1" || items[1].Attr("n") != "2" {
		t.Errorf("item order: %q, %q", items[0].Attr("n"), items[1].Attr("n"))
	}
}

func TestNodeAccessors(t *testing.T) {
	d, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	item := d.First("//body/item")
	if item.Name() != "item" {
		t.Errorf("Name = %q", item.Name())
	}
	if got := item.Text(); got != "first bold tail" {
		t.Errorf("Text = %q", got)
	}
	if got := item.OwnText(); got != "first  tail" && got != "first tail" {
		// OwnText excludes the <b> child's text; exact inner whitespace is
		// preserved apart from outer trimming.
		t.Errorf("OwnText = %q", got)
	}
	if got := item.Attr("missing"); got != "" {
		t.Errorf("Attr(missing) = %q", got)
	}
}

func TestNilSafety(t *testing.T) {
	var n *Node
	if n.Name() != "" || n.Text() != "" || n.Attr("x") != "" || n.DirectChildren("") != nil {
		t.Error("nil node accessors must return zero values")
	}
	var d *Document
	if d.First("//x") != nil || d.FindText("//x") != "" {
		t.Error("nil document accessors must return zero values")
	}
}
