package pattern

import (
	"errors"
	"testing"

	"github.com/npillmayer/astmatch"
	"github.com/npillmayer/astmatch/exprlang"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func constants(vals ...interface{}) []*astmatch.Node {
	nodes := make([]*astmatch.Node, len(vals))
	for i, v := range vals {
		nodes[i] = exprlang.Constant(v)
	}
	return nodes
}

func TestExpandIsRepeatable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "astmatch.pattern")
	defer teardown()
	//
	p := compileExpr(t, "g(_a, _a)")
	before := p.String()
	m1 := MatchingOf(Bindings{"a": Single(exprlang.Constant(1))})
	m2 := MatchingOf(Bindings{"a": Single(exprlang.Name("x"))})
	r1, err := p.Expand(m1)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := p.Expand(m2)
	if err != nil {
		t.Fatal(err)
	}
	if exprlang.Render(r1) != "g(1, 1)" || exprlang.Render(r2) != "g(x, x)" {
		t.Errorf("unexpected expansions %s and %s", exprlang.Render(r1), exprlang.Render(r2))
	}
	r1.Child("func").Set("id", astmatch.L("h"))
	again, _ := p.Expand(m1)
	if exprlang.Render(again) != "g(1, 1)" {
		t.Errorf("expected expansion to be independent of earlier results, is %s", exprlang.Render(again))
	}
	if p.String() != before {
		t.Errorf("pattern has been altered by expansion: %s", p)
	}
}

func TestExpandCopiesBindings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "astmatch.pattern")
	defer teardown()
	//
	bound := exprlang.MustExpr("f(y)")
	m := MatchingOf(Bindings{"a": Single(bound)})
	r, err := compileExpr(t, "[_a, _a]").Expand(m)
	if err != nil {
		t.Fatal(err)
	}
	elts, _ := r.Get("elts")
	first := elts.(astmatch.Sequence)[0].(*astmatch.Node)
	if first == bound {
		t.Fatalf("expected expansion to copy bound nodes")
	}
	first.Set("func", exprlang.Name("g"))
	if exprlang.Render(bound) != "f(y)" || exprlang.Render(r) != "[g(y), f(y)]" {
		t.Errorf("expected copies to be independent, have %s and %s",
			exprlang.Render(bound), exprlang.Render(r))
	}
}

func TestExpandSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "astmatch.pattern")
	defer teardown()
	//
	p := compileExpr(t, "f(__args)")
	m := p.Fullmatch(exprlang.MustExpr("f(1, x, [2])"))
	r, err := compileExpr(t, "g(__args)").Expand(m)
	if err != nil {
		t.Fatal(err)
	}
	if exprlang.Render(r) != "g(1, x, [2])" {
		t.Errorf("expected g(1, x, [2]), have %s", exprlang.Render(r))
	}
	m = MatchingOf(Bindings{"args": Many()})
	r, _ = compileExpr(t, "g(__args)").Expand(m)
	if exprlang.Render(r) != "g()" {
		t.Errorf("expected g(), have %s", exprlang.Render(r))
	}
}

func TestTemplateSplice(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "astmatch.pattern")
	defer teardown()
	//
	example := exprlang.MustExpr("h(__a, 0, __b)")
	if _, err := Compile(example); !errors.Is(err, ErrUnsupportedPattern) {
		t.Errorf("expected mixed sequence to be rejected as a pattern, have %v", err)
	}
	tmpl, err := CompileTemplate(example)
	if err != nil {
		t.Fatal(err)
	}
	m := MatchingOf(Bindings{
		"a": Many(constants(1, 2)...),
		"b": Many(constants(3, 4)...),
	})
	r, err := tmpl.Expand(m)
	if err != nil {
		t.Fatal(err)
	}
	if exprlang.Render(r) != "h(1, 2, 0, 3, 4)" {
		t.Errorf("expected h(1, 2, 0, 3, 4), have %s", exprlang.Render(r))
	}
	tmpl = MustCompileTemplate(exprlang.MustStmt("for _i in xs: __pre; log(_i); __post"))
	m = MatchingOf(Bindings{
		"i":    Single(exprlang.Name("x")),
		"pre":  Many(exprlang.MustStmt("y = x")),
		"post": Many(),
	})
	r, err = Expand(tmpl, m)
	if err != nil {
		t.Fatal(err)
	}
	if exprlang.Render(r) != "for x in xs: y = x; log(x)" {
		t.Errorf("unexpected loop expansion: %s", exprlang.Render(r))
	}
}

func TestExpandErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "astmatch.pattern")
	defer teardown()
	//
	single := compileExpr(t, "f(_a)")
	many := compileExpr(t, "f(__a)")
	for i, test := range []struct {
		x Expander
		m *Matching
	}{
		{single, MatchingOf(Bindings{"b": Single(exprlang.Name("x"))})},
		{single, MatchingOf(Bindings{"a": Many(exprlang.Name("x"))})},
		{many, MatchingOf(Bindings{"a": Single(exprlang.Name("x"))})},
		{many, nil},
	} {
		if _, err := test.x.Expand(test.m); !errors.Is(err, ErrBindingContract) {
			t.Errorf("test #%d: expected binding contract violation, have %v", i, err)
		}
	}
	// a BlankNullSequence in a child field of a template
	tmpl := MustCompileTemplate(exprlang.MustExpr("__a + 1"))
	if _, err := tmpl.Expand(MatchingOf(Bindings{"a": Many(exprlang.Name("x"))})); !errors.Is(err, ErrBindingContract) {
		t.Errorf("expected sequence in child field to violate the binding contract, have %v", err)
	}
	tmpl = MustCompileTemplate(exprlang.MustExpr("f(__a)"))
	if r, err := tmpl.Expand(MatchingOf(Bindings{"a": Many(constants(1, 2)...)})); err != nil || exprlang.Render(r) != "f(1, 2)" {
		t.Errorf("expected f(1, 2), have %v (error %v)", r, err)
	}
	var zero Template
	if _, err := zero.Expand(nil); !errors.Is(err, ErrConstruction) {
		t.Errorf("expected zero template to be rejected, have %v", err)
	}
	if _, err := Expand(nil, nil); !errors.Is(err, ErrConstruction) {
		t.Errorf("expected nil expander to be rejected, have %v", err)
	}
}

func TestExpandPanicsIfConfigured(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "astmatch.pattern")
	defer teardown()
	gconf.Initialize(testconfig.Conf{ConfPanicOnViolation: true})
	defer gconf.Initialize(testconfig.Conf{})
	//
	p := compileExpr(t, "f(_a)")
	expectPanic(t, ErrBindingContract, func() {
		p.Expand(MatchingOf(Bindings{}))
	})
}

func TestMatchingOf(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "astmatch.pattern")
	defer teardown()
	//
	m := MatchingOf(Bindings{
		"z": Single(exprlang.Name("x")),
		"a": Many(constants(1, 2)...),
	})
	if m.Len() != 2 || m.Names()[0] != "a" || m.Names()[1] != "z" {
		t.Errorf("expected names in alphabetical order, have %v", m.Names())
	}
	if m.Group("missing") != nil {
		t.Errorf("expected unbound name to have no group")
	}
	s := m.String()
	if s != `Match{"a": [Constant(value=1), Constant(value=2)], "z": Name(id="x")}` {
		t.Errorf("unexpected string representation %s", s)
	}
	b, _ := m.Get("a")
	nodes, _ := b.Nodes()
	nodes[0] = exprlang.Name("y")
	if g := m.Group("a"); !astmatch.Equal(g, astmatch.Seq(constants(1, 2)...)) {
		t.Errorf("expected binding to be unaffected by changes to its node list, is %s", g)
	}
	var empty *Matching
	if empty.Len() != 0 || empty.Names() != nil {
		t.Errorf("expected nil matching to be empty")
	}
}
