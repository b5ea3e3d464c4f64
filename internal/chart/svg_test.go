package chart

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func TestWriteSVG(t *testing.T) {
	s := rampSeries(t, 32)
	c := New(s, Options{Width: 800, Height: 300, Margins: DefaultMargins(), Padding: DefaultPadding})
	c.PointerMove(c.Scales().Band.Center(20))
	f, ok := c.Frame()
	if !ok {
		t.Fatal("frame not ready")
	}

	var buf bytes.Buffer
	if err := WriteSVG(&buf, f, DefaultStyle()); err != nil {
		t.Fatalf("WriteSVG() error: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "<?xml") || !strings.Contains(out, `<svg xmlns="http://www.w3.org/2000/svg"`) ||
		!strings.HasSuffix(out, "</svg>\n") {
		t.Fatalf("not an svg document: %q", out[:80])
	}
	if !strings.Contains(out, `width="800" height="300" viewBox="0 0 800 300"`) {
		t.Fatalf("missing document size:\n%.200s", out)
	}
	if got := strings.Count(out, `fill="#fa9ba4"`); got != 31 {
		t.Fatalf("plain bars = %d, want 31", got)
	}
	if got := strings.Count(out, `fill="#ff5e6f"`); got != 1 {
		t.Fatalf("active bars = %d, want 1", got)
	}
	if !strings.Contains(out, `<path d="M `) || !strings.Contains(out, `class="moving-average"`) {
		t.Fatal("missing moving-average path")
	}
	if !strings.Contains(out, `stroke="#cf1111" stroke-width="2"`) {
		t.Fatal("moving-average path is not stroked with the line colour")
	}
	if !strings.Contains(out, `class="axis"`) || !strings.Contains(out, `transform="translate(`) {
		t.Fatal("missing translated axis group")
	}
	if !strings.Contains(out, ">Dec</text>") || !strings.Contains(out, ">Jan</text>") {
		t.Fatal("missing month tick labels")
	}
	if !strings.Contains(out, `class="tooltip"`) || !strings.Contains(out, ">04 Jan</text>") {
		t.Fatalf("missing tooltip for 04 Jan:\n%s", out)
	}
}

func TestWriteSVG_Empty(t *testing.T) {
	c := New(testSeries(t), Options{Width: 400, Height: 200, Margins: DefaultMargins()})
	f, ok := c.Frame()
	if !ok {
		t.Fatal("frame not ready")
	}
	out := SVGString(f, DefaultStyle())
	if !strings.Contains(out, "No data") {
		t.Fatalf("empty chart should render a placeholder, got %q", out)
	}
	if strings.Contains(out, "<path") {
		t.Fatal("empty chart should not draw a line")
	}
}

func TestSVGPath(t *testing.T) {
	p := svgPath(BasisPath([]Point{{0, 0}, {6, 6}, {12, 0}}))
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	p.Render(w)
	w.Flush()
	want := `d="M 0 0 L 1 1 C 2 2, 4 4, 6 4 C 8 4, 10 2, 11 1 L 12 0"`
	if !strings.Contains(buf.String(), want) {
		t.Fatalf("path = %s, want %s", buf.String(), want)
	}
}
