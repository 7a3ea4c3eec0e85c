package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/mod/modfile"

	"github.com/AlinaChi/julia/backtrace"
)

// dumpCommand implements 'btdump dump': parse hex addresses from the
// argument list (or stdin when no addresses are given) and print their
// symbolication, one line per logical frame.
func dumpCommand(args []string) {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	bin := fs.String("bin", "", "Go binary whose symbol tables to resolve against")
	skipRuntime := fs.Bool("skip-runtime", false, "drop frames belonging to the Go runtime")
	trim := fs.Bool("trim", false, "shorten source paths relative to the current module")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *bin != "" {
		svc, err := backtrace.NewTableService(*bin)
		if err != nil {
			log.WithError(err).WithField("binary", *bin).Fatal("cannot load symbol tables")
		}
		backtrace.SetService(svc)
	}

	var trimmer func(string) string
	if *trim {
		trimmer = moduleTrimmer()
	}

	addrs := fs.Args()
	if len(addrs) == 0 {
		addrs = readAddrs(os.Stdin)
	}
	if len(addrs) == 0 {
		log.Fatal("no addresses to symbolicate")
	}

	for _, a := range addrs {
		pc, err := parseAddr(a)
		if err != nil {
			log.WithError(err).WithField("addr", a).Error("skipping unparseable address")
			continue
		}
		for _, f := range backtrace.Symbolicate(pc, *skipRuntime) {
			printFrame(f, trimmer)
		}
	}
}

// selfCommand implements 'btdump self': record the tool's own stack and
// print it, mostly useful as a smoke test of the capture pipeline.
func selfCommand(args []string) {
	if len(args) != 0 {
		log.Fatal("self takes no arguments")
	}
	backtrace.Print(backtrace.Record())
}

func printFrame(f backtrace.Frame, trimmer func(string) string) {
	file := f.File
	if trimmer != nil {
		file = trimmer(file)
	}
	if f.Func == "???" {
		// Placeholder frame: the line position carries the raw address.
		fmt.Printf("??? at ??? (ip: 0x%x)\n", f.Line)
		return
	}
	if f.Line > 0 {
		fmt.Printf("%s at %s:%d\n", f.Func, file, f.Line)
	} else {
		fmt.Printf("%s at %s (unknown line)\n", f.Func, file)
	}
}

// parseAddr parses one hex address, with or without a 0x prefix.
func parseAddr(s string) (uintptr, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, err
	}
	return uintptr(v), nil
}

// readAddrs collects whitespace-separated address tokens from r,
// ignoring blank lines and #-comments.
func readAddrs(r *os.File) []string {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, strings.Fields(line)...)
	}
	return out
}

// moduleTrimmer builds a path shortener from the go.mod in the current
// directory: a source path containing the module's final path element is
// cut down to start there. Without a readable go.mod paths pass through
// unchanged.
func moduleTrimmer() func(string) string {
	data, err := os.ReadFile("go.mod")
	if err != nil {
		log.WithError(err).Warn("no go.mod here, -trim has no effect")
		return func(s string) string { return s }
	}
	f, err := modfile.Parse("go.mod", data, nil)
	if err != nil || f.Module == nil {
		log.Warn("unparseable go.mod, -trim has no effect")
		return func(s string) string { return s }
	}
	return trimmerFor(f.Module.Mod.Path)
}

// trimmerFor returns a shortener cutting paths down to the module's
// final path element.
func trimmerFor(modPath string) func(string) string {
	marker := "/" + modPath[strings.LastIndex(modPath, "/")+1:] + "/"
	return func(s string) string {
		if i := strings.Index(s, marker); i >= 0 {
			return s[i+1:]
		}
		return s
	}
}
