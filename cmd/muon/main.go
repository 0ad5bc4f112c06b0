// Command muon runs an exported function from a WebAssembly binary
// module against integer arguments supplied on the command line.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ralphmorton/muon"
	"github.com/ralphmorton/muon/api"
)

func main() {
	os.Exit(doMain(os.Stdout, os.Stderr))
}

// doMain is separated out for the purpose of unit testing.
func doMain(stdOut, stdErr io.Writer) int {
	flag.CommandLine.SetOutput(stdErr)

	var help bool
	flag.BoolVar(&help, "h", false, "Prints usage.")
	flag.Parse()

	if help || flag.NArg() == 0 {
		printUsage(stdErr)
		return 0
	}

	switch flag.Arg(0) {
	case "run":
		return doRun(flag.Args()[1:], stdOut, stdErr)
	default:
		fmt.Fprintln(stdErr, "invalid command")
		printUsage(stdErr)
		return 1
	}
}

func doRun(args []string, stdOut, stdErr io.Writer) int {
	flags := flag.NewFlagSet("run", flag.ContinueOnError)
	flags.SetOutput(stdErr)

	var callStackCeiling int
	flags.IntVar(&callStackCeiling, "call-stack-ceiling", 0,
		"Overrides the maximum call-stack depth. 0 keeps the default.")

	if err := flags.Parse(args); err != nil {
		return 1
	}

	if flags.NArg() < 2 {
		fmt.Fprintln(stdErr, "usage: muon run <file.wasm> <exported-func> [i32-args...]")
		return 1
	}

	wasmPath := flags.Arg(0)
	funcName := flags.Arg(1)

	f, err := os.Open(wasmPath)
	if err != nil {
		fmt.Fprintf(stdErr, "error opening %s: %v\n", wasmPath, err)
		return 1
	}
	defer f.Close()

	var opts []muon.RuntimeOption
	if callStackCeiling > 0 {
		opts = append(opts, muon.WithCallStackCeiling(callStackCeiling))
	}

	rt, err := muon.New(f, api.Externs{}, opts...)
	if err != nil {
		fmt.Fprintf(stdErr, "error instantiating module: %v\n", err)
		return 1
	}

	callArgs := make([]api.Value, 0, flags.NArg()-2)
	for _, raw := range flags.Args()[2:] {
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			fmt.Fprintf(stdErr, "invalid i32 argument %q: %v\n", raw, err)
			return 1
		}
		callArgs = append(callArgs, api.I32(int32(v)))
	}

	result, err := rt.Call(funcName, callArgs...)
	if err != nil {
		fmt.Fprintf(stdErr, "error calling %s: %v\n", funcName, err)
		return 1
	}

	if result == nil {
		return 0
	}
	fmt.Fprintln(stdOut, result.String())
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "muon: a minimal WebAssembly runtime")
	fmt.Fprintln(w, "usage: muon run <file.wasm> <exported-func> [i32-args...]")
	flag.CommandLine.SetOutput(w)
	flag.PrintDefaults()
}
