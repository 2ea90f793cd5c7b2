// Copyright 2025 Satori Komeiji
// SPDX-License-Identifier: MIT

package iconinverter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"

	"golang.org/x/text/encoding/htmlindex"
)

// Presentation attributes rewritten in SVG documents. Colors anywhere else
// (style attributes, CSS blocks) are out of scope.
var svgColorAttrs = map[string]bool{
	"fill":       true,
	"stroke":     true,
	"stop-color": true,
}

// encodingDecl matches the encoding pseudo-attribute of an XML declaration.
var encodingDecl = regexp.MustCompile(`[ \t]*encoding=("[^"]*"|'[^']*')`)

// InvertSVG rewrites the hex color attributes of an SVG document with their
// lightness-inverted forms. Tokens that carry no invertible color ("none",
// "transparent", "currentColor", url(...) references, named colors) are
// left untouched, as is everything else in the document.
//
// Documents declaring a non-UTF-8 encoding are transcoded on the way in;
// output is always UTF-8 and the XML declaration's encoding pseudo-attribute
// is dropped accordingly.
//
// Tokens are read raw, without namespace resolution: prefixes and xmlns
// declarations pass through exactly as written, so re-encoding never
// synthesizes namespace attributes of its own.
func InvertSVG(b []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(b))
	dec.Strict = false
	dec.CharsetReader = charsetReader

	var out bytes.Buffer
	enc := xml.NewEncoder(&out)

	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iconinverter: decoding SVG: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			t.Name = foldPrefix(t.Name)
			for i, attr := range t.Attr {
				t.Attr[i].Name = foldPrefix(attr.Name)
				if attr.Name.Space != "" || !svgColorAttrs[attr.Name.Local] {
					continue
				}
				if inverted, ok := InvertColorToken(attr.Value); ok {
					t.Attr[i].Value = inverted
				}
			}
			tok = t
		case xml.EndElement:
			t.Name = foldPrefix(t.Name)
			tok = t
		case xml.ProcInst:
			if t.Target == "xml" {
				t.Inst = encodingDecl.ReplaceAll(t.Inst, nil)
				tok = t
			}
		}

		if err := enc.EncodeToken(tok); err != nil {
			return nil, fmt.Errorf("iconinverter: encoding SVG: %w", err)
		}
	}

	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// foldPrefix rejoins the prefix a raw token carries in Name.Space, so the
// encoder writes the name verbatim instead of inventing an xmlns binding.
func foldPrefix(n xml.Name) xml.Name {
	if n.Space == "" {
		return n
	}
	return xml.Name{Local: n.Space + ":" + n.Local}
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	e, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("iconinverter: unsupported charset %q: %w", charset, err)
	}
	return e.NewDecoder().Reader(input), nil
}
