// Copyright 2025 Satori Komeiji
// SPDX-License-Identifier: MIT

package iconinverter_test

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	iconinverter "github.com/satori5555/IconInverter"

	qt "github.com/frankban/quicktest"
)

func collectAttrs(c *qt.C, doc []byte, name string) []string {
	c.Helper()
	dec := xml.NewDecoder(bytes.NewReader(doc))
	var vals []string
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		c.Assert(err, qt.IsNil)
		if start, ok := tok.(xml.StartElement); ok {
			for _, a := range start.Attr {
				if a.Name.Local == name {
					vals = append(vals, a.Value)
				}
			}
		}
	}
	return vals
}

func TestInvertSVGRewritesPaintAttributes(t *testing.T) {
	c := qt.New(t)

	in := []byte(`<svg xmlns="http://www.w3.org/2000/svg">` +
		`<rect fill="#000000" stroke="#FFFFFF" width="4" height="4"/>` +
		`<circle fill="none" stroke="url(#edge)" r="2"/>` +
		`<path fill="#888" stroke="currentColor"/>` +
		`</svg>`)

	out, err := iconinverter.InvertSVG(in)
	c.Assert(err, qt.IsNil)

	c.Assert(collectAttrs(c, out, "fill"), qt.DeepEquals, []string{"#FFFFFF", "none", "#777777"})
	c.Assert(collectAttrs(c, out, "stroke"), qt.DeepEquals, []string{"#000000", "url(#edge)", "currentColor"})
	// Geometry attributes are untouched.
	c.Assert(collectAttrs(c, out, "width"), qt.DeepEquals, []string{"4"})
}

func TestInvertSVGRewritesGradientStops(t *testing.T) {
	c := qt.New(t)

	in := []byte(`<svg xmlns="http://www.w3.org/2000/svg"><linearGradient id="g">` +
		`<stop offset="0" stop-color="#000000"/>` +
		`<stop offset="1" stop-color="#FFFFFF"/>` +
		`</linearGradient></svg>`)

	out, err := iconinverter.InvertSVG(in)
	c.Assert(err, qt.IsNil)
	c.Assert(collectAttrs(c, out, "stop-color"), qt.DeepEquals, []string{"#FFFFFF", "#000000"})
}

func TestInvertSVGInvolution(t *testing.T) {
	c := qt.New(t)

	in := []byte(`<svg xmlns="http://www.w3.org/2000/svg">` +
		`<rect fill="#1A2B3C"/><rect fill="#C83264"/></svg>`)

	once, err := iconinverter.InvertSVG(in)
	c.Assert(err, qt.IsNil)
	twice, err := iconinverter.InvertSVG(once)
	c.Assert(err, qt.IsNil)

	orig := collectAttrs(c, in, "fill")
	got := collectAttrs(c, twice, "fill")
	c.Assert(got, qt.HasLen, len(orig))
	for i := range orig {
		wantc, ok := iconinverter.ParseHexColor(orig[i])
		c.Assert(ok, qt.IsTrue)
		gotc, ok := iconinverter.ParseHexColor(got[i])
		c.Assert(ok, qt.IsTrue)
		c.Assert(gotc, eq, wantc, qt.Commentf("attr %d", i))
	}
}

func TestInvertSVGPreservesContent(t *testing.T) {
	c := qt.New(t)

	in := []byte(`<svg xmlns="http://www.w3.org/2000/svg">` +
		`<!-- palette note -->` +
		`<text fill="#FFFFFF">Hello #FFFFFF</text></svg>`)

	out, err := iconinverter.InvertSVG(in)
	c.Assert(err, qt.IsNil)

	// Only the attribute is rewritten; character data and comments survive.
	c.Assert(strings.Contains(string(out), "Hello #FFFFFF"), qt.IsTrue)
	c.Assert(strings.Contains(string(out), "palette note"), qt.IsTrue)
	c.Assert(collectAttrs(c, out, "fill"), qt.DeepEquals, []string{"#000000"})
}

func TestInvertSVGTranscodesDeclaredCharset(t *testing.T) {
	c := qt.New(t)

	// 0xE9 is "é" in ISO-8859-1.
	in := []byte(`<?xml version="1.0" encoding="ISO-8859-1"?>` +
		`<svg xmlns="http://www.w3.org/2000/svg">` +
		`<text fill="#000000">caf` + "\xe9" + `</text></svg>`)

	out, err := iconinverter.InvertSVG(in)
	c.Assert(err, qt.IsNil)

	// The body is transcoded to UTF-8, so the declaration must not keep
	// claiming the old charset.
	c.Assert(strings.Contains(string(out), "ISO-8859-1"), qt.IsFalse)
	c.Assert(strings.Contains(string(out), `<?xml version="1.0"?>`), qt.IsTrue)
	c.Assert(strings.Contains(string(out), "café"), qt.IsTrue)
	c.Assert(collectAttrs(c, out, "fill"), qt.DeepEquals, []string{"#FFFFFF"})
}

func TestInvertSVGKeepsNamespaceDeclarations(t *testing.T) {
	c := qt.New(t)

	in := []byte(`<svg xmlns="http://www.w3.org/2000/svg" ` +
		`xmlns:xlink="http://www.w3.org/1999/xlink">` +
		`<use xlink:href="#a" fill="#000000"/>` +
		`<g><rect fill="#FFFFFF"/></g></svg>`)

	out, err := iconinverter.InvertSVG(in)
	c.Assert(err, qt.IsNil)

	// Each declaration appears exactly once, as written; child elements
	// gain no namespace attributes of their own.
	s := string(out)
	c.Assert(strings.Count(s, `xmlns="http://www.w3.org/2000/svg"`), qt.Equals, 1)
	c.Assert(strings.Count(s, `xmlns:xlink="http://www.w3.org/1999/xlink"`), qt.Equals, 1)
	c.Assert(strings.Contains(s, `xlink:href="#a"`), qt.IsTrue)

	// The output must survive a strict re-parse.
	c.Assert(collectAttrs(c, out, "fill"), qt.DeepEquals, []string{"#FFFFFF", "#000000"})
}
