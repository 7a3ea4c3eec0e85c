// Package main implements the btdump CLI tool.
//
// btdump symbolicates raw instruction-pointer dumps. Crash reports from
// stripped-down environments often carry nothing but hex addresses; this
// tool maps them back to function/file/line against either the running
// btdump binary itself or, with -bin, the symbol tables of the Go binary
// that produced the dump.
//
// Usage:
//
//	btdump dump 0x4521a0 0x45219b      # symbolicate addresses
//	btdump dump -bin ./server < addrs  # against another binary, from stdin
//	btdump self                        # print btdump's own stack
//
// This is the CLI entry point for the standalone dump tool.
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "dump":
		dumpCommand(os.Args[2:])
	case "self":
		selfCommand(os.Args[2:])
	case "version", "--version", "-v":
		fmt.Printf("btdump version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`btdump - backtrace address dump symbolicator

USAGE:
    btdump <command> [arguments]

COMMANDS:
    dump       Symbolicate hex addresses (arguments or stdin, one per line)
    self       Capture and print btdump's own stack
    version    Show version information
    help       Show this help message

DUMP OPTIONS:
    -bin <path>     Resolve against the symbol tables of another Go binary
    -skip-runtime   Drop frames belonging to the Go runtime
    -trim           Shorten source paths relative to the current module

EXAMPLES:
    # Symbolicate two addresses against btdump itself
    btdump dump 0x4521a0 0x45219b

    # Symbolicate a dump file against the binary that produced it
    btdump dump -bin ./server < crash-addrs.txt

    # Hide runtime internals, shorten paths
    btdump dump -bin ./server -skip-runtime -trim 0x4521a0

ABOUT:
    Addresses with no debug info print as "???" with the raw address in
    the line position. Addresses that expand to inlined calls print one
    line per logical frame, innermost first.

`)
}
