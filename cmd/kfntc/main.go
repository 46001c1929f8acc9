// Command kfntc compiles TrueType/OpenType fonts into the compact
// runtime format described by the compile package. The CLI shell itself
// — argument parsing, help text, command dispatch — is intentionally
// thin: it only turns os.Args into a compile.Args and a verbosity flag.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"

	"github.com/kfntc/kfntc/compile"
	"github.com/kfntc/kfntc/core/klog"
)

func main() {
	initDisplay()
	gtrace.CoreTracer = gologadapter.New()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	verbose := cmd == "vp"
	if !verbose && cmd != "parse" && cmd != "p" {
		pterm.Error.Printfln("unknown command %q", cmd)
		usage()
		os.Exit(1)
	}

	rest := os.Args[2:]
	if len(rest) != 5 {
		pterm.Error.Println("expected: <flavor> <glyphHeight> <superSample> <input> <output>")
		os.Exit(1)
	}

	glyphHeight, err := strconv.Atoi(rest[1])
	if err != nil {
		pterm.Error.Printfln("glyphHeight must be an integer: %v", err)
		os.Exit(1)
	}
	superSample, err := strconv.Atoi(rest[2])
	if err != nil {
		pterm.Error.Printfln("superSample must be an integer: %v", err)
		os.Exit(1)
	}

	args := compile.Args{
		Flavor:      rest[0],
		GlyphHeight: glyphHeight,
		SuperSample: superSample,
		Input:       rest[3],
		Output:      rest[4],
	}

	klog.Init(verbose)
	pterm.Info.Printfln("compiling %s -> %s (%s flavor)", args.Input, args.Output, args.Flavor)

	logger := klog.Std{}
	err = compile.Run(args, compile.OSFileSystem{}, logger, compile.DefaultRasterizer{})
	if err != nil {
		os.Exit(2)
	}
	pterm.Success.Println("done")
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{Text: " !  ", Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack)}
	pterm.Error.Prefix = pterm.Prefix{Text: " Error", Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack)}
}

func usage() {
	fmt.Println("usage: kfntc (parse|p|vp) <flavor> <glyphHeight> <superSample> <input> <output>")
}
