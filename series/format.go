package series

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libpoisson/coefficient"
	"github.com/sgostarter/libpoisson/symbol"
	"github.com/sgostarter/libpoisson/trig"
	"github.com/spf13/cast"
)

type PrintMode int

const (
	PrintPlain PrintMode = iota
	PrintLaTeX
)

const (
	sectionCfArg   = "[cf_arg]"
	sectionTrigArg = "[trig_arg]"
	sectionLinArgs = "[lin_args]"
	sectionData    = "[data]"

	maxLineSize = 16 * 1024 * 1024
)

// Load reads a series in the plain text format.
func Load(r io.Reader, table symbol.Table, kind coefficient.Kind, opts ...Option) (*Series, error) {
	s := New(table, kind, opts...)

	if err := s.Read(r); err != nil {
		return nil, err
	}

	return s, nil
}

// Read merges the arguments and records read from r into s. Malformed records and
// unknown sections are logged and skipped; a symbol conflicting with the table fails.
func (s *Series) Read(r io.Reader) error {
	var lines []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	ld := &loader{
		s:      s,
		lines:  lines,
		logger: s.logger.WithFields(l.StringField("op", "load")),
	}

	return ld.run()
}

type numberedLine struct {
	no   int
	text string
}

type loader struct {
	s      *Series
	lines  []string
	pos    int
	logger l.Wrapper
}

// next returns the next line that is neither blank nor a comment.
func (ld *loader) next() (numberedLine, bool) {
	for ld.pos < len(ld.lines) {
		text := strings.TrimSpace(ld.lines[ld.pos])
		ld.pos++

		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		return numberedLine{no: ld.pos, text: text}, true
	}

	return numberedLine{}, false
}

// block collects the lines up to the next section header, which is left unread.
func (ld *loader) block() []numberedLine {
	var lines []numberedLine

	for {
		mark := ld.pos

		line, ok := ld.next()
		if !ok {
			return lines
		}

		if strings.HasPrefix(line.text, "[") {
			ld.pos = mark

			return lines
		}

		lines = append(lines, line)
	}
}

func (ld *loader) run() error {
	for {
		line, ok := ld.next()
		if !ok {
			return nil
		}

		switch line.text {
		case sectionCfArg:
			if err := ld.readArg(argCf); err != nil {
				return err
			}
		case sectionTrigArg:
			if err := ld.readArg(argTrig); err != nil {
				return err
			}
		case sectionLinArgs:
			ld.readLinArgs()
		case sectionData:
			ld.readData()
		default:
			if strings.HasPrefix(line.text, "[") {
				ld.logger.WithFields(l.IntField("line", line.no), l.StringField("section", line.text)).
					Error("unknown section ignored")
				ld.block()
			} else {
				ld.logger.WithFields(l.IntField("line", line.no)).Error("line outside of any section ignored")
			}
		}
	}
}

func (ld *loader) readArg(kind argKind) error {
	var (
		sym symbol.Symbol
		err error
	)

	for _, line := range ld.block() {
		key, value, found := strings.Cut(line.text, "=")
		if !found {
			ld.logger.WithFields(l.IntField("line", line.no)).Error("argument line without '=' ignored")

			continue
		}

		switch strings.TrimSpace(key) {
		case "name":
			sym.Name = strings.TrimSpace(value)
		case "poly_eval":
			if sym.PolyEval, err = symbol.ParsePolyEval(value); err != nil {
				ld.logger.WithFields(l.IntField("line", line.no), l.ErrorField(err)).Error("argument skipped")

				return nil
			}
		default:
			ld.logger.WithFields(l.IntField("line", line.no), l.StringField("key", key)).Error("unknown argument key ignored")
		}
	}

	if kind == argCf && ld.s.kind != coefficient.KindPolynomial {
		ld.logger.WithFields(l.StringField("name", sym.Name)).Debug("coefficient argument kept for scalar series")
	}

	_, err = ld.s.addArg(kind, sym, false)

	return err
}

func (ld *loader) readLinArgs() {
	lines := ld.block()
	if len(lines) == 0 {
		return
	}

	if len(lines) > 1 {
		ld.logger.WithFields(l.IntField("line", lines[1].no)).Error("extra linear argument lines ignored")
	}

	tokens := strings.Split(lines[0].text, "&")
	ns := make([]int, len(tokens))

	for idx, token := range tokens {
		n, err := trig.ParseMultiplier(token)
		if err != nil {
			ld.logger.WithFields(l.IntField("line", lines[0].no), l.ErrorField(err)).Error("linear arguments skipped")

			return
		}

		ns[idx] = int(n)
	}

	ld.s.ensureArgs(argTrig, len(ns))

	for idx, n := range ns {
		ld.s.linArgs[idx] = n
	}

	ld.s.touch()
}

func (ld *loader) readData() {
	for _, line := range ld.block() {
		t, err := ld.s.parseRecord(line.text)
		if err != nil {
			ld.logger.WithFields(l.IntField("line", line.no), l.ErrorField(err)).Error("record skipped")

			continue
		}

		ld.s.ensureArgs(argCf, t.Cf.Width())
		ld.s.ensureArgs(argTrig, t.Trig.Width())
		ld.s.insert(t, true, ld.s.ctx())
	}
}

// ensureArgs registers placeholder arguments until s has at least n of the kind.
func (s *Series) ensureArgs(kind argKind, n int) {
	for len(*s.args(kind)) < n {
		if _, err := s.addArg(kind, symbol.New(""), false); err != nil {
			panic(fmt.Sprintf("series: placeholder registration: %v", err))
		}
	}
}

// parseRecord reads "<coefficient>&<multiplier>&...&(c|s)". A polynomial coefficient
// spans the leading tokens in monomial form.
func (s *Series) parseRecord(text string) (*Term, error) {
	tokens := strings.Split(text, "&")
	if len(tokens) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrBadRecord, text)
	}

	var flavour bool

	switch strings.TrimSpace(tokens[len(tokens)-1]) {
	case "c":
		flavour = Cos
	case "s":
		flavour = Sin
	default:
		return nil, fmt.Errorf("%w: flavour %q", ErrBadRecord, tokens[len(tokens)-1])
	}

	tokens = tokens[:len(tokens)-1]

	n := 1

	if s.kind == coefficient.KindPolynomial {
		n = 0
		for n < len(tokens) && coefficient.IsMonomialToken(tokens[n]) {
			n++
		}

		if n == 0 {
			n = 1
		}
	}

	cf, err := coefficient.Parse(s.kind, strings.Join(tokens[:n], "&"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRecord, err)
	}

	v, err := trig.ParseTokens(tokens[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRecord, err)
	}

	return NewTerm(cf, v, flavour), nil
}

func (s *Series) Print(w io.Writer, mode PrintMode) error {
	if mode == PrintLaTeX {
		return s.printLaTeX(w)
	}

	return s.printPlain(w)
}

func (s *Series) printPlain(w io.Writer) error {
	bw := bufio.NewWriter(w)

	for _, kind := range []argKind{argCf, argTrig} {
		header := sectionCfArg
		if kind == argTrig {
			header = sectionTrigArg
		}

		for _, sym := range s.symbols(kind) {
			fmt.Fprintf(bw, "%s\nname=%s\npoly_eval=%s\n", header, sym.Name, sym.PolyEvalString())
		}
	}

	if len(s.linArgs) > 0 {
		parts := make([]string, len(s.linArgs))
		for idx, n := range s.linArgs {
			parts[idx] = cast.ToString(n)
		}

		fmt.Fprintf(bw, "%s\n%s\n", sectionLinArgs, strings.Join(parts, "&"))
	}

	fmt.Fprintln(bw, sectionData)

	for _, t := range s.SortedTerms(OrderNorm) {
		fmt.Fprintln(bw, t.PlainString())
	}

	return bw.Flush()
}

func (s *Series) names(kind argKind) []string {
	syms := s.symbols(kind)
	names := make([]string, len(syms))

	for idx, sym := range syms {
		switch {
		case !sym.IsPlaceholder():
			names[idx] = sym.Name
		case kind == argTrig:
			names[idx] = fmt.Sprintf("\\theta_{%d}", idx)
		}
	}

	return names
}

func (s *Series) printLaTeX(w io.Writer) error {
	bw := bufio.NewWriter(w)
	cfNames, trigNames := s.names(argCf), s.names(argTrig)

	fmt.Fprintln(bw, "\\begin{tabular}{rl}")

	for _, t := range s.SortedTerms(OrderNorm) {
		fmt.Fprintln(bw, t.LaTeX(cfNames, trigNames))
	}

	if s.hasLinArgs() {
		fmt.Fprintf(bw, "$%s$&\\\\\n", s.linArgsVector().LaTeX(trigNames))
	}

	fmt.Fprintln(bw, "\\end{tabular}")

	return bw.Flush()
}

func (s *Series) linArgsVector() trig.Vector {
	v := trig.NewVector(len(s.linArgs))
	for idx, n := range s.linArgs {
		v.Set(idx, n)
	}

	return v
}

func (s *Series) String() string {
	var b bytes.Buffer

	_ = s.printPlain(&b)

	return b.String()
}
