// funcinfo prints the signature of built-in spreadsheet functions: BIFF
// function index, argument count range, default operand class and the
// declared class of each parameter.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/yamitzky/xlwt-go/xlwt"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("funcinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	listAll := fs.Bool("list", false, "list all known functions")
	showVersion := fs.Bool("version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: funcinfo [-list] NAME|INDEX ...\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		fmt.Fprintln(stdout, version)
		return 0
	}

	if *listAll {
		names := xlwt.FuncNames()
		sort.Strings(names)
		for _, name := range names {
			idx, def, _ := xlwt.FuncSigByName(name)
			printSig(stdout, idx, def)
		}
		return 0
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	status := 0
	for _, arg := range fs.Args() {
		idx, def, err := lookup(arg)
		if err != nil {
			fmt.Fprintf(stderr, "funcinfo: %v\n", err)
			status = 1
			continue
		}
		printSig(stdout, idx, def)
	}
	return status
}

func lookup(arg string) (uint16, xlwt.FuncSig, error) {
	if n, err := strconv.ParseUint(arg, 10, 16); err == nil {
		def, err := xlwt.FuncSigByIndex(uint16(n))
		return uint16(n), def, err
	}
	return xlwt.FuncSigByName(arg)
}

func printSig(w io.Writer, idx uint16, def xlwt.FuncSig) {
	args := ""
	for _, c := range def.Params {
		args += c.String()
	}
	if args == "" {
		args = "-"
	}
	volatile := ""
	if def.Volatile {
		volatile = " volatile"
	}
	fmt.Fprintf(w, "%4d  %-16s args %d..%d  returns %s  params %s%s\n",
		idx, def.Name, def.MinArgs, def.MaxArgs, def.Default, args, volatile)
}
