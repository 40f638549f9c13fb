// Command simplec links the lexer, parser, and code generator into a
// single-pass compiler from the simplec source language to MIPS assembly.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/saicheems/simplec/ast"
	"github.com/saicheems/simplec/codegen"
	"github.com/saicheems/simplec/lexer"
	"github.com/saicheems/simplec/parser"
)

// Exit codes: 0 success, 1 front-end failure, 2 back-end failure.
const (
	exitOK       = 0
	exitFrontEnd = 1
	exitBackEnd  = 2
)

var (
	dumpAST  bool
	warnArgs bool
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitBackEnd)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simplec <source-file> <output-file>",
		Short: "Compile a simplec source file to MIPS assembly",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], args[1])
		},
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "write a JSON dump of the parsed tree to <source-file>.ast.json")
	cmd.Flags().BoolVar(&warnArgs, "warn-args", true, "warn when a function declares more than 4 parameters")
	return cmd
}

func run(srcPath, outPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "simplec: %v\n", err)
		os.Exit(exitFrontEnd)
	}
	defer src.Close()

	l := lexer.New(src)
	p := parser.New(l)
	tree, err := p.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "simplec: syntax error: %v\n", err)
		os.Exit(exitFrontEnd)
	}

	if dumpAST {
		if err := writeASTDump(tree, srcPath+".ast.json"); err != nil {
			fmt.Fprintf(os.Stderr, "simplec: warning: could not write AST dump: %v\n", err)
		}
	}

	gen := codegen.New(os.Stderr)
	gen.WarnArgs = warnArgs
	asm, err := gen.Generate(tree)
	if err != nil {
		fmt.Fprintf(os.Stderr, "simplec: %v\n", err)
		os.Exit(exitBackEnd)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrap(err, "simplec: opening output file")
	}
	defer out.Close()
	if _, err := out.WriteString(asm); err != nil {
		return errors.Wrap(err, "simplec: writing output file")
	}
	return nil
}

// writeASTDump serializes tree as indented JSON, written alongside the
// source file when --dump-ast is set.
func writeASTDump(tree *ast.Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(tree)
}
