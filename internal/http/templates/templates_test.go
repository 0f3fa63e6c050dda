package templates

import (
	"bytes"
	"strings"
	"testing"
)

func TestGuideTemplateEscapes(t *testing.T) {
	tmpl, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	type place struct{ Name, Description string }
	data := struct {
		Route  struct{ Name string }
		Places []place
	}{
		Route:  struct{ Name string }{Name: "Coast <walk>"},
		Places: []place{{Name: "Lighthouse", Description: "Old"}, {Name: "Pier"}},
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "guide.html", data); err != nil {
		t.Fatalf("execute: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Coast &lt;walk&gt;", "<h2>Lighthouse</h2>", "<p>Old</p>", "<h2>Pier</h2>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("guide output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Lighthouse") > strings.Index(out, "Pier") {
		t.Fatalf("places must render in order")
	}
}
