package pattern

import (
	"errors"
	"testing"

	"github.com/npillmayer/astmatch"
	"github.com/npillmayer/astmatch/exprlang"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func compileExpr(t *testing.T, source string) *Pattern {
	p, err := Compile(exprlang.MustExpr(source))
	if err != nil {
		t.Fatalf("cannot compile %q: %v", source, err)
	}
	return p
}

// expectPanic calls f and checks that it panics with an error wrapping target.
func expectPanic(t *testing.T, target error, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Errorf("expected panic with %v, did not panic", target)
			return
		}
		if err, ok := r.(error); !ok || !errors.Is(err, target) {
			t.Errorf("expected panic with %v, have %v", target, r)
		}
	}()
	f()
}

func TestClassify(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "astmatch.pattern")
	defer teardown()
	//
	for i, test := range []struct {
		ident string
		class Class
		name  string
	}{
		{"x", Plain, "x"},
		{"a_b", Plain, "a_b"},
		{"_a", BlankClass, "a"},
		{"__as", SequenceClass, "as"},
		{"___a", SequenceClass, "_a"},
		{"$_a", Verbatim, "_a"},
		{"$$_a", Verbatim, "$_a"},
		{"$x", Verbatim, "x"},
		{"_", BlankClass, ""},
		{"__", SequenceClass, ""},
	} {
		class, name := Classify(test.ident)
		if class != test.class || name != test.name {
			t.Errorf("test #%d: expected %q to be %s %q, is %s %q", i, test.ident,
				test.class, test.name, class, name)
		}
	}
}

func TestClassifyCustomConvention(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "astmatch.pattern")
	defer teardown()
	//
	c := DefaultConvention()
	c.Marker, c.Escape = "X", "Q"
	if class, name := c.Classify("Xa"); class != BlankClass || name != "a" {
		t.Errorf("expected Xa to be a Blank, is %s %q", class, name)
	}
	if class, name := c.Classify("XXa"); class != SequenceClass || name != "a" {
		t.Errorf("expected XXa to be a BlankNullSequence, is %s %q", class, name)
	}
	if class, name := c.Classify("QXa"); class != Verbatim || name != "Xa" {
		t.Errorf("expected QXa to be verbatim, is %s %q", class, name)
	}
	if class, _ := c.Classify("_a"); class != Plain {
		t.Errorf("expected _a to be plain under custom convention, is %s", class)
	}
	p, err := Compile(exprlang.MustExpr("f(Xa)"), WithConvention(c))
	if err != nil {
		t.Fatal(err)
	}
	m := p.Fullmatch(exprlang.MustExpr("f(1)"))
	if m == nil || exprlang.Render(m.Group("a")) != "1" {
		t.Errorf("expected custom marker to create a placeholder, have %v", m)
	}
}

func TestCompile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "astmatch.pattern")
	defer teardown()
	//
	for i, test := range []struct {
		source   string
		rendered string
	}{
		{"f(_a) * g(_b)", "f(_a) * g(_b)"},
		{"f(__xs)", "f(__xs)"},
		{"_x.attr", "_x.attr"},
		{"[__elts]", "[__elts]"},
		{"$_a + 1", "_a + 1"},
		{"g(_a, [_b, 1])", "g(_a, [_b, 1])"},
	} {
		p := compileExpr(t, test.source)
		if r := exprlang.Render(p.Root()); r != test.rendered {
			t.Errorf("test #%d: expected %q, have %q", i, test.rendered, r)
		}
	}
	p := compileExpr(t, "f(_a)")
	root := p.Root().(*astmatch.Node)
	args, _ := root.Get("args")
	if _, ok := args.(astmatch.Sequence)[0].(astmatch.Blank); !ok {
		t.Errorf("expected argument to be compiled into a Blank, is %s", args)
	}
	p = compileExpr(t, "f(__xs)")
	root = p.Root().(*astmatch.Node)
	if args, _ = root.Get("args"); args.Kind() != astmatch.BlankSequenceKind {
		t.Errorf("expected argument list to collapse to a BlankNullSequence, is %s", args)
	}
}

func TestCompileDoesNotAlterExample(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "astmatch.pattern")
	defer teardown()
	//
	for _, source := range []string{"f(_a, $_b) + g(__c)", "f(_a, $_b, __c)"} {
		example := exprlang.MustExpr(source)
		before := example.String()
		Compile(example)
		if example.String() != before {
			t.Errorf("example has been altered by compilation: %s", example)
		}
	}
}

func TestMixingRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "astmatch.pattern")
	defer teardown()
	//
	for _, source := range []string{"f(__xs, 1)", "f(1, __xs)", "[__a, __b]"} {
		_, err := Compile(exprlang.MustExpr(source))
		if !errors.Is(err, ErrUnsupportedPattern) {
			t.Errorf("expected %q to be rejected, have error %v", source, err)
		}
	}
	_, err := Compile(exprlang.MustStmt("for i in x: __body; y = 1"))
	if !errors.Is(err, ErrUnsupportedPattern) {
		t.Errorf("expected mixed loop body to be rejected, have error %v", err)
	}
}

func TestRootPlaceholder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "astmatch.pattern")
	defer teardown()
	//
	p := compileExpr(t, "_any")
	for _, source := range []string{"x", "f(1, 2)", "a * b + c"} {
		target := exprlang.MustExpr(source)
		m := p.Fullmatch(target)
		if m == nil || !astmatch.Equal(m.Group("any"), target) {
			t.Errorf("expected root Blank to match %q, have %v", source, m)
		}
	}
	_, err := Compile(exprlang.MustExpr("__all"))
	if !errors.Is(err, ErrUnsupportedPattern) {
		t.Errorf("expected root sequence placeholder to be rejected, have error %v", err)
	}
}

func TestFullmatchRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "astmatch.pattern")
	defer teardown()
	//
	for _, source := range []string{
		"x = f(1, 2) * -y",
		"for i in range(10): total = total + i; print(total)",
		"return xs[0].attr",
		"return",
		`print("hello", None, True, 2.5)`,
	} {
		tree := exprlang.MustStmt(source)
		p, err := Compile(tree)
		if err != nil {
			t.Fatal(err)
		}
		m := p.Fullmatch(tree)
		if m == nil || m.Len() != 0 {
			t.Errorf("expected %q to match itself without bindings, have %v", source, m)
		}
	}
}

func TestSingleCapture(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "astmatch.pattern")
	defer teardown()
	//
	p := compileExpr(t, "f(_a) * g(_b)")
	m := p.Fullmatch(exprlang.MustExpr("f(1) * g(2)"))
	if m == nil {
		t.Fatalf("expected pattern %s to match", p)
	}
	t.Logf("matching = %s", m)
	if m.Len() != 2 || exprlang.Render(m.Group("a")) != "1" || exprlang.Render(m.Group("b")) != "2" {
		t.Errorf("expected a=1, b=2, have %s", m)
	}
	if names := m.Names(); names[0] != "a" || names[1] != "b" {
		t.Errorf("expected names in order of binding, have %v", names)
	}
	swapped, err := m.Expand(compileExpr(t, "_b * _a"))
	if err != nil {
		t.Fatal(err)
	}
	if r := exprlang.Render(swapped); r != "2 * 1" {
		t.Errorf("expected expansion 2 * 1, have %s", r)
	}
	if p.Matches(exprlang.MustExpr("f(1) * h(2)")) {
		t.Errorf("expected pattern not to match a different function name")
	}
	if p.Matches(exprlang.MustExpr("f(1) + g(2)")) {
		t.Errorf("expected pattern not to match a different operator")
	}
	if p.Matches(exprlang.MustExpr("f(1, 2) * g(2)")) {
		t.Errorf("expected pattern not to match a different number of arguments")
	}
}

func TestSingleCaptureOfSubtree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "astmatch.pattern")
	defer teardown()
	//
	p := compileExpr(t, "x + _rest")
	target := exprlang.MustExpr("x + f(y * 2)")
	m := p.Fullmatch(target)
	if m == nil || m.Len() != 1 {
		t.Fatalf("expected exactly one binding, have %v", m)
	}
	b, _ := m.Get("rest")
	n, ok := b.Node()
	if !ok || b.IsSequence() || !n.Equal(target.Child("right")) {
		t.Errorf("expected rest to be bound to the right operand, is %s", b)
	}
}

func TestSequenceCapture(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "astmatch.pattern")
	defer teardown()
	//
	p := compileExpr(t, "f(__xs)")
	m := p.Fullmatch(exprlang.MustExpr("f()"))
	if m == nil {
		t.Fatalf("expected f(__xs) to match f()")
	}
	b, _ := m.Get("xs")
	if nodes, ok := b.Nodes(); !ok || nodes == nil || len(nodes) != 0 {
		t.Errorf("expected xs to be bound to an empty list, is %s", b)
	}
	m = p.Fullmatch(exprlang.MustExpr("f(1, 2, 3)"))
	if m == nil {
		t.Fatalf("expected f(__xs) to match f(1, 2, 3)")
	}
	if r := exprlang.Render(m.Group("xs")); r != "1, 2, 3" {
		t.Errorf("expected xs to be bound to [1, 2, 3], is %s", r)
	}
	if p.Matches(exprlang.MustExpr("g(1)")) {
		t.Errorf("expected f(__xs) not to match g(1)")
	}
}

func TestStatementPattern(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "astmatch.pattern")
	defer teardown()
	//
	p, err := Compile(exprlang.MustStmt("for _i in range(_n): __body"))
	if err != nil {
		t.Fatal(err)
	}
	m := p.Fullmatch(exprlang.MustStmt("for k in range(10): x = x + k; print(x)"))
	if m == nil {
		t.Fatalf("expected loop to match")
	}
	b, _ := m.Get("body")
	if nodes, ok := b.Nodes(); !ok || len(nodes) != 2 {
		t.Errorf("expected body to capture two statements, is %s", b)
	}
	if exprlang.Render(m.Group("i")) != "k" || exprlang.Render(m.Group("n")) != "10" {
		t.Errorf("unexpected bindings %s", m)
	}
}

func TestNonLinear(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "astmatch.pattern")
	defer teardown()
	//
	p := compileExpr(t, "_a + _a")
	for _, test := range []struct {
		source  string
		matches bool
	}{
		{"x + x", true},
		{"f(1) + f(1)", true},
		{"x + y", false},
		{"f(1) + f(2)", false},
		{"x - x", false},
	} {
		if p.Matches(exprlang.MustExpr(test.source)) != test.matches {
			t.Errorf("expected match of %q to be %v", test.source, test.matches)
		}
	}
	p = compileExpr(t, "f(__xs) + g(__xs)")
	if !p.Matches(exprlang.MustExpr("f(1, 2) + g(1, 2)")) {
		t.Errorf("expected equal sequences to match")
	}
	if p.Matches(exprlang.MustExpr("f(1, 2) + g(1)")) {
		t.Errorf("expected different sequences not to match")
	}
}

func TestVerbatim(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "astmatch.pattern")
	defer teardown()
	//
	p := compileExpr(t, "$_a + 1")
	if m := p.Fullmatch(exprlang.MustExpr("_a + 1")); m == nil || m.Len() != 0 {
		t.Errorf("expected escaped identifier to match literally, have %v", m)
	}
	if p.Matches(exprlang.MustExpr("b + 1")) {
		t.Errorf("expected escaped identifier never to act as a placeholder")
	}
	p = compileExpr(t, "$$_a")
	if !p.Matches(exprlang.MustExpr("$_a")) {
		t.Errorf("expected exactly one level of escaping to be removed")
	}
}

func TestContractViolations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "astmatch.pattern")
	defer teardown()
	//
	// a Blank in a sequence field
	example := astmatch.NewNode(exprlang.CallTag,
		astmatch.F("func", exprlang.Name("f")),
		astmatch.F("args", exprlang.Name("_a")))
	p := MustCompile(example)
	expectPanic(t, ErrBindingContract, func() {
		p.Fullmatch(exprlang.MustExpr("f(1)"))
	})
	// a BlankNullSequence in a child field
	p = compileExpr(t, "__a + 1")
	expectPanic(t, ErrBindingContract, func() {
		p.Fullmatch(exprlang.MustExpr("x + 1"))
	})
	// a Blank facing a leaf is a plain mismatch
	example = astmatch.NewNode(exprlang.ReturnTag, astmatch.F("value", exprlang.Name("_v")))
	p = MustCompile(example)
	if p.Matches(exprlang.MustStmt("return")) {
		t.Errorf("expected Blank not to match a nil leaf")
	}
}

func TestConstructionMisuse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "astmatch.pattern")
	defer teardown()
	//
	var p Pattern
	expectPanic(t, ErrConstruction, func() {
		p.Fullmatch(exprlang.MustExpr("x"))
	})
	if _, err := Compile(nil); !errors.Is(err, ErrUnsupportedPattern) {
		t.Errorf("expected compilation of nil to fail, have %v", err)
	}
	if MustCompile(exprlang.MustExpr("x")).Fullmatch(nil) != nil {
		t.Errorf("expected nil target not to match")
	}
}
