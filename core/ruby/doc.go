// Package ruby provides the ruby annotation model: phonetic or explanatory
// glosses set alongside Japanese base text.
//
// # Value
//
// A Value holds the gloss Content plus three optional layout hints:
//
//   - SizeFactor: ruby size as a fraction of the base font size
//   - Alignment: how the gloss is distributed over its base
//   - Overhang: how far the gloss may extend past its base
//
// Content is either DefaultContent, a single text placed at the Before
// position, or CustomContent, an explicit Position to text mapping.
//
// # Conversions
//
// EncodeNative and DecodeNative convert to and from the four-slot native
// annotation in package ctruby. The conversion is not symmetric: default
// content comes back as custom content keyed by Before, and absent optional
// fields come back set to what the native object reports (0.5, auto, auto).
//
// DecodeMarkup reads the payload of a `ruby: '...'` inline attribute, and
// Value implements json.Marshaler for structured serialization.
//
// # Example
//
//	v := ruby.New("かん", ruby.WithAlignment(ruby.AlignCenter))
//	a := ruby.EncodeNative(v)
//	defer a.Release()
//	back := ruby.DecodeNative(a) // custom[before: "かん"] sizeFactor=0.5 alignment=center overhang=auto
package ruby
