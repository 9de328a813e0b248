// Package xhtml converts attributed text to and from XHTML ruby markup.
//
// Ruby runs become <ruby> elements with one <rt> per gloss. Default content
// writes a single plain <rt>; custom content writes one <rt> per populated
// position carrying data-position. Optional ruby fields travel as
// data-size-factor, data-alignment and data-overhang on the <ruby> element.
// Runs with a vertical-glyph flag are wrapped in
// <span data-vertical-glyph="...">.
package xhtml

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/rubykit/core/attrtext"
	"github.com/FocuswithJustin/rubykit/core/encoding"
	"github.com/FocuswithJustin/rubykit/core/errors"
	"github.com/FocuswithJustin/rubykit/core/ruby"
	"github.com/FocuswithJustin/rubykit/internal/logging"
)

// Attribute names used on exported elements.
const (
	AttrPosition      = "data-position"
	AttrSizeFactor    = "data-size-factor"
	AttrAlignment     = "data-alignment"
	AttrOverhang      = "data-overhang"
	AttrVerticalGlyph = "data-vertical-glyph"
)

var (
	bodyExpr       = xpath.MustCompile("//body")
	rubyExpr       = xpath.MustCompile("//ruby")
	nestedRubyExpr = xpath.MustCompile("//ruby//ruby")
)

// Export writes s as an XHTML fragment wrapped in a <p> element.
func Export(s *attrtext.String) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("<p>")
	runs := s.Runs()
	for _, r := range runs {
		vertical, hasVertical := r.Attributes.VerticalGlyph()
		if hasVertical {
			fmt.Fprintf(&buf, `<span %s="%t">`, AttrVerticalGlyph, vertical)
		}
		if v, ok := r.Attributes.Ruby(); ok {
			if err := writeRuby(&buf, r.Text, v); err != nil {
				return "", err
			}
		} else {
			buf.WriteString(encoding.EscapeXMLText(r.Text))
		}
		if hasVertical {
			buf.WriteString("</span>")
		}
	}
	buf.WriteString("</p>")
	logging.Conversion("attributed", "xhtml", len(runs))
	return buf.String(), nil
}

func writeRuby(buf *bytes.Buffer, base string, v ruby.Value) error {
	buf.WriteString("<ruby")
	if f, ok := v.SizeFactor(); ok {
		writeAttr(buf, AttrSizeFactor, strconv.FormatFloat(f, 'g', -1, 64))
	}
	if a, ok := v.Alignment(); ok {
		writeAttr(buf, AttrAlignment, a.String())
	}
	if o, ok := v.Overhang(); ok {
		writeAttr(buf, AttrOverhang, o.String())
	}
	buf.WriteString(">")
	buf.WriteString(encoding.EscapeXMLText(base))

	content := v.Content()
	if text, ok := content.Text(); ok {
		buf.WriteString("<rt>")
		buf.WriteString(encoding.EscapeXMLText(text))
		buf.WriteString("</rt>")
	} else {
		texts, _ := content.Texts()
		if len(texts) == 0 {
			return errors.NewValidation("ruby", "custom content has no positions")
		}
		for _, p := range ruby.Positions() {
			text, ok := texts[p]
			if !ok {
				continue
			}
			buf.WriteString("<rt")
			writeAttr(buf, AttrPosition, p.String())
			buf.WriteString(">")
			buf.WriteString(encoding.EscapeXMLText(text))
			buf.WriteString("</rt>")
		}
	}
	buf.WriteString("</ruby>")
	return nil
}

func writeAttr(buf *bytes.Buffer, name, value string) {
	fmt.Fprintf(buf, ` %s="%s"`, name, encoding.EscapeXMLAttr(value))
}

// Import reads an XHTML document or fragment into attributed text. Text
// under <body> is used when present, otherwise the whole document. <rp>
// fallback text is skipped. A <ruby> element may pair several bases with
// their own <rt> elements; each pair becomes one run.
func Import(data []byte) (*attrtext.String, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &errors.ParseError{Format: "xhtml", Message: err.Error(), Err: err}
	}
	if xmlquery.QuerySelector(doc, nestedRubyExpr) != nil {
		return nil, errors.NewParse("xhtml", "ruby", "nested ruby elements")
	}

	root := doc
	if body := xmlquery.QuerySelector(doc, bodyExpr); body != nil {
		root = body
	}

	out := &attrtext.String{}
	if err := walk(out, root, attrtext.Attributes{}); err != nil {
		return nil, err
	}
	logging.Conversion("xhtml", "attributed", len(out.Runs()),
		"ruby_elements", len(xmlquery.QuerySelectorAll(root, rubyExpr)))
	return out, nil
}

func walk(out *attrtext.String, n *xmlquery.Node, attrs attrtext.Attributes) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if n.Type == xmlquery.DocumentNode && strings.TrimSpace(c.Data) == "" {
				continue
			}
			out.AppendWithAttributes(c.Data, attrs)
		case xmlquery.ElementNode:
			if err := walkElement(out, c, attrs); err != nil {
				return err
			}
		}
	}
	return nil
}

func walkElement(out *attrtext.String, n *xmlquery.Node, attrs attrtext.Attributes) error {
	if raw, ok := attr(n, AttrVerticalGlyph); ok {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return errors.NewParse("xhtml", AttrVerticalGlyph, fmt.Sprintf("invalid flag %q", raw))
		}
		attrs = attrs.WithVerticalGlyph(&b)
	}

	switch n.Data {
	case "ruby":
		return readRuby(out, n, attrs)
	case "rt", "rp":
		return errors.NewParse("xhtml", n.Data, "<"+n.Data+"> outside <ruby>")
	default:
		return walk(out, n, attrs)
	}
}

func readRuby(out *attrtext.String, n *xmlquery.Node, attrs attrtext.Attributes) error {
	opts, err := rubyOptions(n)
	if err != nil {
		return err
	}

	var base strings.Builder
	var plainText string
	var hasPlain bool
	custom := map[ruby.Position]string{}

	flush := func() error {
		if !hasPlain && len(custom) == 0 {
			if base.Len() > 0 {
				out.AppendWithAttributes(base.String(), attrs)
				base.Reset()
			}
			return nil
		}
		if base.Len() == 0 {
			return errors.NewParse("xhtml", "ruby", "<rt> without base text")
		}
		var v ruby.Value
		switch {
		case hasPlain && len(custom) > 0:
			return errors.NewParse("xhtml", "rt", "mixes positioned and plain <rt> for one base")
		case hasPlain:
			v = ruby.New(plainText, opts...)
		default:
			v = ruby.NewWithContent(ruby.CustomContent(custom), opts...)
		}
		out.AppendWithAttributes(base.String(), attrs.WithRuby(&v))
		base.Reset()
		plainText, hasPlain = "", false
		custom = map[ruby.Position]string{}
		return nil
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == xmlquery.TextNode || c.Type == xmlquery.CharDataNode:
			if hasPlain || len(custom) > 0 {
				if strings.TrimSpace(c.Data) == "" {
					continue
				}
				if err := flush(); err != nil {
					return err
				}
			}
			base.WriteString(c.Data)
		case c.Type != xmlquery.ElementNode:
			// comments and processing instructions
		case c.Data == "rp":
			// fallback parentheses for renderers without ruby support
		case c.Data == "rt":
			raw, positioned := attr(c, AttrPosition)
			if !positioned {
				if hasPlain || len(custom) > 0 {
					if err := flush(); err != nil {
						return err
					}
				}
				if base.Len() == 0 {
					return errors.NewParse("xhtml", "ruby", "<rt> without base text")
				}
				plainText, hasPlain = c.InnerText(), true
				continue
			}
			var p ruby.Position
			if err := p.UnmarshalText([]byte(raw)); err != nil {
				return errors.NewParse("xhtml", AttrPosition, err.Error())
			}
			custom[p] = c.InnerText()
		default:
			if hasPlain || len(custom) > 0 {
				if err := flush(); err != nil {
					return err
				}
			}
			base.WriteString(c.InnerText())
		}
	}
	return flush()
}

func rubyOptions(n *xmlquery.Node) ([]ruby.Option, error) {
	var opts []ruby.Option
	if raw, ok := attr(n, AttrSizeFactor); ok {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.NewParse("xhtml", AttrSizeFactor, fmt.Sprintf("invalid number %q", raw))
		}
		opts = append(opts, ruby.WithSizeFactor(f))
	}
	if raw, ok := attr(n, AttrAlignment); ok {
		var a ruby.Alignment
		if err := a.UnmarshalText([]byte(raw)); err != nil {
			return nil, errors.NewParse("xhtml", AttrAlignment, err.Error())
		}
		opts = append(opts, ruby.WithAlignment(a))
	}
	if raw, ok := attr(n, AttrOverhang); ok {
		var o ruby.Overhang
		if err := o.UnmarshalText([]byte(raw)); err != nil {
			return nil, errors.NewParse("xhtml", AttrOverhang, err.Error())
		}
		opts = append(opts, ruby.WithOverhang(o))
	}
	return opts, nil
}

func attr(n *xmlquery.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}
