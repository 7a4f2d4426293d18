/*
Fsmql runs programs written in the fsmql graph-query language.

It reads a program from a file (or, with --repl, starts an interactive
session) and evaluates it statement by statement against a fresh
environment, printing the output of every print statement to stdout. Named
datasets referenced with `loadFrom name "..."` are resolved from an optional
TOML registry file.

Usage:

	fsmql [flags] [program-file]

The flags are:

	-v, --version
		Give the current version of fsmql and then exit.

	-r, --repl
		Start an interactive session instead of (or after) running a program
		file. If a program file is also given, it runs first and the session
		continues in the resulting environment.

	-g, --registry FILE
		Use the provided TOML file as the named-dataset registry consulted by
		`loadFrom name "..."`. If omitted, `loadFrom name` fails for any
		program that uses it.

Once a program file finishes (or immediately, if only --repl was given and
no file), the interpreter exits with status 0 on success. A syntax error or
an interpretation error is reported to stderr and the interpreter exits with
a non-zero status.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/dekarrin/fsmql"
	"github.com/dekarrin/fsmql/internal/repl"
	"github.com/dekarrin/fsmql/internal/version"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitInterpError indicates an unsuccessful program execution due to a
	// syntax or interpretation error in the given program.
	ExitInterpError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue initializing the engine itself (a bad registry file, etc).
	ExitInitError
)

var (
	returnCode   = ExitSuccess
	flagVersion  = pflag.BoolP("version", "v", false, "Gives the version info")
	flagRepl     = pflag.BoolP("repl", "r", false, "Start an interactive session")
	registryFile = pflag.StringP("registry", "g", "", "TOML file listing named datasets for loadFrom name")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	eng, err := fsmql.New(*registryFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	if pflag.NArg() > 0 {
		log, runErr := eng.RunFile(pflag.Arg(0))
		if werr := fsmql.WriteLog(os.Stdout, log); werr != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", werr.Error())
			returnCode = ExitInitError
			return
		}
		if runErr != nil {
			fmt.Fprintln(os.Stderr, fsmql.FormatError(runErr))
			returnCode = ExitInterpError
			if !*flagRepl {
				return
			}
		}
	}

	if *flagRepl {
		session, err := repl.New(eng.Interpreter(), "fsmql> ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
		defer session.Close()

		if err := session.Run(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInterpError
			return
		}
	}
}
