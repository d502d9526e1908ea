package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zonkey-lang/zonkey/internal/address"
	"github.com/zonkey-lang/zonkey/internal/ast"
	"github.com/zonkey-lang/zonkey/internal/errdiag"
	"github.com/zonkey-lang/zonkey/internal/interp"
	"github.com/zonkey-lang/zonkey/internal/lexer"
	"github.com/zonkey-lang/zonkey/internal/parser"
)

// exitDataErr is 66 (sysexits.h EX_NOINPUT): the address could not be
// loaded, or its source could not be lexed or parsed. Kept separate from
// a runtime failure (1) so a caller can tell "the script never started"
// from "the script ran and then failed" without parsing stderr.
const exitDataErr = 66

var (
	dumpAST bool
	trace   bool
)

func init() {
	rootCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed AST and exit without running")
	rootCmd.Flags().BoolVar(&trace, "trace", false, "print every host-protocol event the script emits")
}

// runScript is the root command's RunE: it loads the address named by
// args[0] (or stdin, bare, if none is given), parses it, and evaluates
// the start block headlessly — draining every HostEvent the script emits
// rather than driving a real UI, since the CLI has no host to hand the
// channel protocol to, and printing a one-line description of each one
// when --trace or --verbose is set.
func runScript(cmd *cobra.Command, args []string) error {
	raw := "-"
	if len(args) == 1 {
		raw = args[0]
	}

	addr, src, err := loadSource(raw)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitDataErr)
	}

	graphemes := lexer.Graphemes(src)
	prog, errs, lexErr := parser.Parse(src)
	if lexErr != nil {
		fmt.Fprint(os.Stderr, errdiag.FormatLexError(lexErr, graphemes))
		os.Exit(exitDataErr)
	}
	if len(errs) > 0 {
		fmt.Fprint(os.Stderr, errdiag.FormatParseErrors(errs, graphemes))
		os.Exit(exitDataErr)
	}

	if dumpAST {
		ast.Dump(cmd.OutOrStdout(), prog)
		return nil
	}

	toHost := make(chan interp.HostEvent, 64)
	fromHost := make(chan interp.InputEvent)
	close(fromHost) // no interactive host in this headless invocation

	ip := interp.New(prog, addr.Permission, args, toHost, fromHost)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range toHost {
			if verbose || trace {
				describeEvent(cmd, ev)
			}
		}
	}()

	runErr := ip.Run(cmd.Context())
	<-done

	if runErr != nil {
		if re, ok := runErr.(*interp.RuntimeError); ok {
			fmt.Fprint(os.Stderr, errdiag.FormatRuntimeError(re, graphemes))
		} else {
			fmt.Fprintln(os.Stderr, runErr)
		}
		os.Exit(1)
	}
	return nil
}

// loadSource resolves raw to an address.Address and loads its script
// source: stdin for "-", otherwise address.Parse/address.Load.
func loadSource(raw string) (address.Address, string, error) {
	if raw == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return address.Address{}, "", fmt.Errorf("reading stdin: %w", err)
		}
		return address.Address{Scheme: address.SchemeFile, Permission: address.All, Raw: "-"}, string(data), nil
	}

	addr := address.Parse(raw)
	src, err := address.Load(addr)
	if err != nil {
		return address.Address{}, "", err
	}
	return addr, src, nil
}

func describeEvent(cmd *cobra.Command, ev interp.HostEvent) {
	switch e := ev.(type) {
	case interp.SetPageEvent:
		fmt.Fprintf(cmd.ErrOrStderr(), "[host] set_page: root=%s children=%d\n", e.Root.Class, len(e.Root.Children))
	case interp.UpdateEvent:
		fmt.Fprintf(cmd.ErrOrStderr(), "[host] update: %s#%d\n", e.Root.Class, e.Root.ID)
	case interp.ScriptErrorEvent:
		fmt.Fprintf(cmd.ErrOrStderr(), "[host] script_error: %v\n", e.Err)
	case interp.LoadAddressErrorEvent:
		fmt.Fprintf(cmd.ErrOrStderr(), "[host] load_address_error: %v\n", e.Err)
	case interp.CloseTabEvent:
		fmt.Fprintln(cmd.ErrOrStderr(), "[host] close_tab")
	case interp.OpenLinkEvent:
		fmt.Fprintf(cmd.ErrOrStderr(), "[host] open_link: %s\n", e.URL)
	}
}
