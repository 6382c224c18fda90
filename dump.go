package astmatch

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/schuko/tracing"
)

// dumpValue creates a representation of v in the style of
//
//     BinOp(left=Name(id="a"), op=Add(), right=Constant(value=1))
//
// If indent is negative, everything is put on a single line. Otherwise every
// field and sequence element gets a line of its own, indented by indent spaces
// per nesting level.
func dumpValue(v Value, indent int, level int) string {
	var b strings.Builder
	dump(&b, v, indent, level)
	return b.String()
}

func dump(b *strings.Builder, v Value, indent int, level int) {
	switch x := v.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Node:
		if x == nil {
			b.WriteString("<nil>")
			return
		}
		b.WriteString(x.Tag)
		b.WriteByte('(')
		for i, f := range x.Fields {
			separate(b, i, indent, level+1)
			b.WriteString(f.Name)
			b.WriteByte('=')
			dump(b, f.Value, indent, level+1)
		}
		b.WriteByte(')')
	case Sequence:
		b.WriteByte('[')
		for i, el := range x {
			separate(b, i, indent, level+1)
			dump(b, el, indent, level+1)
		}
		b.WriteByte(']')
	default:
		b.WriteString(v.String())
	}
}

func separate(b *strings.Builder, i int, indent int, level int) {
	if indent < 0 {
		if i > 0 {
			b.WriteString(", ")
		}
		return
	}
	if i > 0 {
		b.WriteByte(',')
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", indent*level))
}

// Dump traces a value at a given trace level, one line per field.
func Dump(v Value, level tracing.TraceLevel) {
	s := dumpValue(v, 2, 0)
	for _, line := range strings.Split(s, "\n") {
		switch level {
		case tracing.LevelError:
			tracer().Errorf("%s", line)
		case tracing.LevelInfo:
			tracer().Infof("%s", line)
		default:
			tracer().Debugf("%s", line)
		}
	}
}

// --- Fingerprints ----------------------------------------------------------

// digest is a reflection friendly stand-in for a value, consisting of exported
// fields of plain types only.
type digest struct {
	Kind  int
	Label string
	Names []string
	Sub   []digest
}

func digestOf(v Value) digest {
	d := digest{Kind: -1}
	if v == nil {
		return d
	}
	d.Kind = int(v.Kind())
	switch x := v.(type) {
	case Leaf:
		d.Label = fmt.Sprintf("%T:%v", x.V, x.V)
	case *Node:
		if x == nil {
			break
		}
		d.Label = x.Tag
		for _, f := range x.Fields {
			d.Names = append(d.Names, f.Name)
			d.Sub = append(d.Sub, digestOf(f.Value))
		}
	case Sequence:
		for _, el := range x {
			d.Sub = append(d.Sub, digestOf(el))
		}
	case Blank:
		d.Label = x.Name
	case BlankNullSequence:
		d.Label = x.Name
	}
	return d
}

// Fingerprint returns a structural hash of a value. Structurally equal values
// have identical fingerprints.
func Fingerprint(v Value) string {
	return fmt.Sprintf("%x", structhash.Md5(digestOf(v), 1))
}
