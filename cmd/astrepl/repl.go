package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/astmatch"
	"github.com/npillmayer/astmatch/exprlang"
	"github.com/npillmayer/astmatch/pattern"
	"github.com/npillmayer/astmatch/rewrite"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// main() starts an interactive CLI, where users may enter patterns, templates
// and trees in exprlang syntax, and experiment with matching and rewriting.
func main() {
	// set up logging
	initDisplay()
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	initf := flag.String("init", "", "Initial load")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelInfo) // will set the correct level later
	pterm.Info.Println("Welcome to ASTREPL")  // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	gtrace.SyntaxTracer.SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	input := strings.TrimSpace(strings.Join(flag.Args(), " "))
	//
	// set up REPL
	repl, err := readline.New("astrepl> ")
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	if input != "" {
		if err = intp.setText(input); err != nil {
			tracer().Errorf("%v", err)
			os.Exit(2)
		}
	}
	//
	// load an init file and start receiving commands
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.loadInitFile(*initf)           // init file name provided by flag
	intp.REPL()                         // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl     *readline.Instance
	text     *astmatch.Node // the tree to search in
	pattern  *pattern.Pattern
	template *pattern.Template
	rules    []rewrite.Rule // rule set for normalize
}

var errUsage = errors.New("usage")

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, err := intp.Eval(line); err != nil {
			tracer().Errorf("Error line %d: %v", lineno, err)
		}
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading init file: %v", err)
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Eval executes a command, given on a line by itself.
func (intp *Intp) Eval(line string) (bool, error) {
	cmd, arg := line, ""
	if i := strings.IndexAny(line, " \t"); i > 0 {
		cmd, arg = line[:i], strings.TrimSpace(line[i+1:])
	}
	tracer().Debugf("command %q, argument %q", cmd, arg)
	switch cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		pterm.Info.Println("commands: text, pattern, template, match, find, sub, rule, normalize, tree, quit")
		return false, nil
	case "text":
		return false, intp.setText(arg)
	case "pattern":
		return false, intp.setPattern(arg)
	case "template":
		return false, intp.setTemplate(arg)
	case "match":
		return false, intp.match(arg)
	case "find":
		return false, intp.find()
	case "sub":
		return false, intp.sub()
	case "rule":
		return false, intp.addRule(arg)
	case "normalize":
		return false, intp.normalize()
	case "tree":
		return false, intp.tree(arg)
	}
	return false, fmt.Errorf("unknown command %q: %w", cmd, errUsage)
}

func (intp *Intp) setText(source string) error {
	m, err := exprlang.Parse(source)
	if err != nil {
		gtrace.SyntaxTracer.Errorf("%v", err)
		return err
	}
	intp.text = m
	pterm.Info.Println(exprlang.Render(m))
	return nil
}

func (intp *Intp) setPattern(source string) error {
	example, err := parseExample(source)
	if err != nil {
		return err
	}
	if intp.pattern, err = pattern.Compile(example); err != nil {
		return err
	}
	pterm.Info.Println(exprlang.Render(intp.pattern.Root()))
	return nil
}

func (intp *Intp) setTemplate(source string) error {
	example, err := parseExample(source)
	if err != nil {
		return err
	}
	if intp.template, err = pattern.CompileTemplate(example); err != nil {
		return err
	}
	pterm.Info.Println(exprlang.Render(intp.template.Root()))
	return nil
}

// parseExample parses a single statement. Expression statements are unwrapped,
// as patterns usually target expressions.
func parseExample(source string) (*astmatch.Node, error) {
	s, err := exprlang.Stmt(source)
	if err != nil {
		gtrace.SyntaxTracer.Errorf("%v", err)
		return nil, err
	}
	if s.Tag == exprlang.ExprTag {
		return s.Child("value"), nil
	}
	return s, nil
}

func (intp *Intp) match(source string) (err error) {
	if intp.pattern == nil {
		return fmt.Errorf("no pattern set: %w", errUsage)
	}
	target, err := parseExample(source)
	if err != nil {
		return err
	}
	defer recoverContract(&err)
	m := intp.pattern.Fullmatch(target)
	if m == nil {
		pterm.Info.Println("no match")
		return nil
	}
	intp.printMatching(m)
	return nil
}

func (intp *Intp) find() (err error) {
	if intp.pattern == nil || intp.text == nil {
		return fmt.Errorf("need a pattern and a text: %w", errUsage)
	}
	defer recoverContract(&err)
	found := rewrite.FindAll(intp.pattern, intp.text)
	for _, f := range found {
		pterm.Info.Println(exprlang.Render(f.Node))
		intp.printMatching(f.Matching)
	}
	pterm.Info.Printf("%d match(es)\n", len(found))
	return nil
}

func (intp *Intp) sub() (err error) {
	if intp.pattern == nil || intp.text == nil || intp.template == nil {
		return fmt.Errorf("need a pattern, a template and a text: %w", errUsage)
	}
	defer recoverContract(&err)
	result, err := rewrite.Sub(intp.pattern, rewrite.Expand(intp.template), intp.text)
	if err != nil {
		return err
	}
	tracer().Debugf("fingerprint of result is %s", astmatch.Fingerprint(result))
	intp.text = result
	pterm.Info.Println(exprlang.Render(result))
	return nil
}

// addRule adds the current pattern and template to the rule set.
func (intp *Intp) addRule(name string) error {
	if intp.pattern == nil || intp.template == nil {
		return fmt.Errorf("need a pattern and a template: %w", errUsage)
	}
	if name == "" {
		name = fmt.Sprintf("rule-%d", len(intp.rules)+1)
	}
	intp.rules = append(intp.rules, rewrite.Rule{
		Name:    name,
		Pattern: intp.pattern,
		Replace: rewrite.Expand(intp.template),
	})
	pterm.Info.Printf("%d rule(s)\n", len(intp.rules))
	return nil
}

func (intp *Intp) normalize() (err error) {
	if len(intp.rules) == 0 || intp.text == nil {
		return fmt.Errorf("need rules and a text: %w", errUsage)
	}
	defer recoverContract(&err)
	result, err := rewrite.Normalize(intp.rules, intp.text)
	if result != nil {
		intp.text = result
		pterm.Info.Println(exprlang.Render(result))
	}
	return err
}

func (intp *Intp) printMatching(m *pattern.Matching) {
	for _, name := range m.Names() {
		pterm.Info.Printf("%s = %s\n", name, exprlang.Render(m.Group(name)))
	}
}

// recoverContract turns panics from contract violations into errors.
func recoverContract(err *error) {
	if r := recover(); r != nil {
		e, ok := r.(error)
		if !ok || !errors.Is(e, pattern.ErrBindingContract) {
			panic(r)
		}
		*err = e
	}
}

// tree is a helper command to display a tree on a terminal.
func (intp *Intp) tree(which string) error {
	var v astmatch.Value
	label := "text"
	switch which {
	case "", "text":
		if intp.text != nil {
			v = intp.text
		}
	case "pattern":
		if intp.pattern != nil {
			v, label = intp.pattern.Root(), which
		}
	case "template":
		if intp.template != nil {
			v, label = intp.template.Root(), which
		}
	default:
		return fmt.Errorf("cannot display %q: %w", which, errUsage)
	}
	if v == nil {
		return fmt.Errorf("no %s set: %w", which, errUsage)
	}
	astmatch.Dump(v, tracing.LevelDebug) // only visible in debug mode
	pterm.Println(label)
	root := pterm.NewTreeFromLeveledList(leveledValue(v, "", pterm.LeveledList{}, 0))
	pterm.DefaultTree.WithRoot(root).Render()
	return nil
}

func leveledValue(v astmatch.Value, field string, ll pterm.LeveledList, level int) pterm.LeveledList {
	prefix := ""
	if field != "" {
		prefix = field + ": "
	}
	switch x := v.(type) {
	case *astmatch.Node:
		if x == nil {
			return append(ll, pterm.LeveledListItem{Level: level, Text: prefix + "nil"})
		}
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: prefix + x.Tag})
		for _, f := range x.Fields {
			ll = leveledValue(f.Value, f.Name, ll, level+1)
		}
	case astmatch.Sequence:
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: fmt.Sprintf("%s[%d]", prefix, len(x))})
		for _, el := range x {
			ll = leveledValue(el, "", ll, level+1)
		}
	default:
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: prefix + v.String()})
	}
	return ll
}
