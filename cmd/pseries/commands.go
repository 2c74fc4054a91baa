package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/sgostarter/i/l"
	"github.com/sgostarter/i/stg"
	"github.com/sgostarter/libeasygo/stg/fs/rawfs"
	"github.com/sgostarter/libpoisson/coefficient"
	"github.com/sgostarter/libpoisson/series"
	"github.com/sgostarter/libpoisson/symbol"
	"github.com/sgostarter/libpoisson/symbol/impls/fmtable"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var (
	configFile  string
	symbolsFile string
	kindName    string
	outFile     string
	latex       bool
	verbose     bool

	rootCmd = &cobra.Command{
		Use:           "pseries",
		Short:         "Poisson series algebra on plain text series files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	printCmd = &cobra.Command{
		Use:   "print [file]",
		Short: "Load a series and print it",
		Args:  cobra.ExactArgs(1),
		RunE:  runPrint,
	}

	mulCmd = &cobra.Command{
		Use:   "mul [file] [file...]",
		Short: "Multiply series together",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runMul,
	}

	addCmd = &cobra.Command{
		Use:   "add [file] [file...]",
		Short: "Add series together",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runAdd,
	}

	powCmd = &cobra.Command{
		Use:   "pow [file] [exponent]",
		Short: "Raise a series to a real power",
		Args:  cobra.ExactArgs(2),
		RunE:  runPow,
	}

	evalCmd = &cobra.Command{
		Use:   "eval [file] [time...]",
		Short: "Evaluate a series at the given times",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runEval,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "yaml config file")
	rootCmd.PersistentFlags().StringVar(&symbolsFile, "symbols", "", "persisted symbol table file")
	rootCmd.PersistentFlags().StringVarP(&kindName, "kind", "k", "polynomial", "coefficient kind: scalar or polynomial")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to console")

	for _, cmd := range []*cobra.Command{printCmd, mulCmd, addCmd, powCmd} {
		cmd.Flags().StringVarP(&outFile, "out", "o", "", "write the result to this file instead of stdout")
		cmd.Flags().BoolVar(&latex, "latex", false, "print as a LaTeX table")
	}

	rootCmd.AddCommand(printCmd, mulCmd, addCmd, powCmd, evalCmd)
}

// fileStorage roots a file storage at the directory of file.
func fileStorage(file string) (stg.FileStorage, string) {
	return rawfs.NewFSStorage(filepath.Dir(file)), filepath.Base(file)
}

type env struct {
	logger l.Wrapper
	table  symbol.Table
	kind   coefficient.Kind
	opts   []series.Option
}

func newEnv() (*env, error) {
	e := &env{
		logger: l.NewNopLoggerWrapper(),
	}

	if verbose {
		e.logger = l.NewConsoleLoggerWrapper()
	}

	switch strings.ToLower(kindName) {
	case "scalar":
		e.kind = coefficient.KindScalar
	case "polynomial", "poly":
		e.kind = coefficient.KindPolynomial
	default:
		return nil, fmt.Errorf("unknown coefficient kind %q", kindName)
	}

	if symbolsFile != "" {
		storage, name := fileStorage(symbolsFile)
		e.table = fmtable.NewFMTable(name, storage, e.logger)
	} else {
		e.table = symbol.NewTable(e.logger)
	}

	e.opts = append(e.opts, series.LoggerOption(e.logger))

	if configFile != "" {
		storage, name := fileStorage(configFile)

		cfg, err := series.LoadConfig(name, storage)
		if err != nil {
			return nil, err
		}

		e.opts = append(e.opts, series.ConfigOption(cfg))
	}

	return e, nil
}

func (e *env) load(file string) (*series.Series, error) {
	storage, name := fileStorage(file)

	s, err := series.LoadFile(name, storage, e.table, e.kind, e.opts...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", file, err)
	}

	return s, nil
}

func (e *env) emit(w io.Writer, s *series.Series) error {
	mode := series.PrintPlain
	if latex {
		mode = series.PrintLaTeX
	}

	if outFile != "" {
		storage, name := fileStorage(outFile)

		return s.SaveFile(name, storage, mode)
	}

	return s.Print(w, mode)
}

func runPrint(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}

	s, err := e.load(args[0])
	if err != nil {
		return err
	}

	return e.emit(cmd.OutOrStdout(), s)
}

func fold(cmd *cobra.Command, files []string, op func(acc, s *series.Series) error) error {
	e, err := newEnv()
	if err != nil {
		return err
	}

	acc, err := e.load(files[0])
	if err != nil {
		return err
	}

	for _, file := range files[1:] {
		s, err := e.load(file)
		if err != nil {
			return err
		}

		if err = op(acc, s); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
	}

	return e.emit(cmd.OutOrStdout(), acc)
}

func runMul(cmd *cobra.Command, args []string) error {
	return fold(cmd, args, func(acc, s *series.Series) error {
		return acc.Mul(s)
	})
}

func runAdd(cmd *cobra.Command, args []string) error {
	return fold(cmd, args, func(acc, s *series.Series) error {
		return acc.Add(s)
	})
}

func runPow(cmd *cobra.Command, args []string) error {
	p, err := cast.ToFloat64E(args[1])
	if err != nil {
		return fmt.Errorf("bad exponent %q: %w", args[1], err)
	}

	e, err := newEnv()
	if err != nil {
		return err
	}

	s, err := e.load(args[0])
	if err != nil {
		return err
	}

	r, err := s.RealPower(p)
	if err != nil {
		return err
	}

	return e.emit(cmd.OutOrStdout(), r)
}

func runEval(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}

	s, err := e.load(args[0])
	if err != nil {
		return err
	}

	for _, arg := range args[1:] {
		t, err := cast.ToFloat64E(arg)
		if err != nil {
			return fmt.Errorf("bad time %q: %w", arg, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.17g\n", arg, s.Evaluate(t))
	}

	return nil
}
