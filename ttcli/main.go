package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/truetype"
	"github.com/npillmayer/truetype/tt"
	"github.com/pterm/pterm"
	"golang.org/x/image/math/fixed"
)

// tracer traces with key 'truetype.cli'
func tracer() tracing.Trace {
	return tracing.Select("truetype.cli")
}

func main() {
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "TrueType font file to inspect")
	strict := flag.Bool("strict", false, "Reject duplicate cmap subtables")
	flag.Parse()
	level, ok := traceLevels[*tlevel]
	if !ok {
		fmt.Fprintf(os.Stderr, "invalid trace level: %s\n", *tlevel)
		os.Exit(2)
	}
	if err := setupTracing(); err != nil {
		fmt.Fprintf(os.Stderr, "cannot configure tracing: %v\n", err)
		os.Exit(1)
	}
	initDisplay()
	pterm.Info.Println("TrueType font inspector")
	//
	opts := []tt.ParseOption{tt.SkipUnsupportedCMapFormats}
	if *strict {
		opts = append(opts, tt.RejectDuplicateSubtables)
	}
	intp := &Intp{ppem: fixed.I(12)}
	if err := intp.loadFont(*fontname, opts...); err != nil {
		pterm.Error.Println(err)
		os.Exit(4)
	}
	repl, err := readline.New("tt > ")
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(3)
	}
	defer repl.Close()
	intp.repl = repl
	// parsing is done, from now on trace at the requested level
	tracer().SetTraceLevel(level)
	tracing.Select("truetype").SetTraceLevel(level)
	tracing.Select("font.truetype").SetTraceLevel(level)
	pterm.Info.Println("Type 'help' for a list of commands, quit with <ctrl>D")
	intp.REPL()
}

// setupTracing routes all tracers to the Go logger. Tracing stays quiet until
// a font has been loaded.
func setupTracing() error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":     "go",
		"trace.truetype.cli":  "Error",
		"trace.truetype":      "Error",
		"trace.font.truetype": "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

var traceLevels = map[string]tracing.TraceLevel{
	"Debug": tracing.LevelDebug,
	"Info":  tracing.LevelInfo,
	"Error": tracing.LevelError,
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " tt ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp holds the state of an interactive session: the font under inspection,
// the current glyph and the pixel size used for scaled output.
type Intp struct {
	font  *truetype.ScalableFont
	repl  *readline.Instance
	glyph tt.GlyphIndex
	ppem  fixed.Int26_6
}

func (intp *Intp) String() string {
	if intp == nil || intp.font == nil {
		return "()"
	}
	return fmt.Sprintf("( glyph=%d size=%s )", intp.glyph, intp.ppem)
}

// REPL reads and executes commands until the user quits or input ends.
func (intp *Intp) REPL() {
	for quit := false; !quit; {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		cmd, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		err, quit = intp.execute(cmd)
		if err != nil {
			tracer().Infof("command %q failed: %v", line, err)
		}
	}
	pterm.Info.Println("Good bye!")
}

// --- Commands ---------------------------------------------------------

type opcode int

// Op is a single step of a command line.
type Op struct {
	code opcode
	arg  string
}

// Command is a sequence of steps, executed left to right.
type Command []Op

// maxSteps limits the length of a command line.
const maxSteps = 32

const (
	QUIT opcode = iota
	HELP
	TABLES
	HEAD
	HHEA
	MAXP
	CMAP
	CHAR
	GLYPH
	OUTLINE
	SIZE
	WARNINGS
	VERIFY
)

type opFunc func(*Intp, *Op) (error, bool)

// ops is indexed by opcode.
var ops = []struct {
	name string
	fn   opFunc
}{
	QUIT:     {"quit", quitOp},
	HELP:     {"help", helpOp},
	TABLES:   {"tables", tablesOp},
	HEAD:     {"head", headOp},
	HHEA:     {"hhea", hheaOp},
	MAXP:     {"maxp", maxpOp},
	CMAP:     {"cmap", cmapOp},
	CHAR:     {"char", charOp},
	GLYPH:    {"glyph", glyphOp},
	OUTLINE:  {"outline", outlineOp},
	SIZE:     {"size", sizeOp},
	WARNINGS: {"warnings", warningsOp},
	VERIFY:   {"verify", verifyOp},
}

func (code opcode) String() string {
	return ops[code].name
}

// opcodeOf returns the opcode for a command name. Unknown names map to HELP.
func opcodeOf(name string) opcode {
	name = strings.ToLower(name)
	for code, op := range ops {
		if op.name == name {
			return opcode(code)
		}
	}
	return HELP
}

// parseCommand splits a line into steps of the form "op" or "op:arg", e.g.
// "char:A glyph outline" or "glyph:3". Steps after "quit" are dropped.
func parseCommand(line string) (Command, error) {
	steps := strings.Fields(line)
	if len(steps) > maxSteps {
		return nil, fmt.Errorf("too many steps in command: %d", len(steps))
	}
	cmd := make(Command, 0, len(steps))
	for _, step := range steps {
		name, arg, _ := strings.Cut(step, ":")
		op := Op{code: opcodeOf(name), arg: arg}
		tracer().Debugf("step %s %q", op.code, op.arg)
		if cmd = append(cmd, op); op.code == QUIT {
			break
		}
	}
	return cmd, nil
}

// execute runs the steps of cmd and stops at the first failing one.
func (intp *Intp) execute(cmd Command) (err error, quit bool) {
	for i := range cmd {
		if err, quit = ops[cmd[i].code].fn(intp, &cmd[i]); err != nil {
			pterm.Error.Println(err)
			return err, false
		}
		if quit {
			break
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	return nil, true
}

// --- Font Loading -----------------------------------------------------

var errNoFont = errors.New("no font given, use flag -font")

func (intp *Intp) loadFont(fontfile string, opts ...tt.ParseOption) (err error) {
	if fontfile == "" {
		return errNoFont
	}
	if intp.font, err = truetype.LoadFont(fontfile, opts...); err != nil {
		return
	}
	pterm.Printf("%s: tables %v\n", fontfile, intp.font.Font.Directory.Tags())
	return
}

// ----------------------------------------------------------------------

// parseCodePoint reads a character argument: either a single character, or a
// code-point in notation U+XXXX.
func parseCodePoint(arg string) (rune, error) {
	if hex, ok := cutPrefixFold(arg, "U+"); ok {
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid code-point %q", arg)
		}
		return rune(n), nil
	}
	runes := []rune(arg)
	if len(runes) != 1 {
		return 0, fmt.Errorf("expected a single character or U+XXXX, have %q", arg)
	}
	return runes[0], nil
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}

func (op *Op) hasArg() (string, bool) {
	return op.arg, op.arg != ""
}
