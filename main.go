package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/chazu/joinery/pkg/design"
	"github.com/chazu/joinery/pkg/engine"
	"github.com/chazu/joinery/pkg/path"
)

// faceOutput is the JSON shape emitted per face with -json.
type faceOutput struct {
	Name     string         `json:"name"`
	Commands []path.Command `json:"commands"`
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("joinery: ")

	jsonOut := flag.Bool("json", false, "emit face outlines as JSON")
	validate := flag.Bool("validate", false, "run design validation and report findings")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: joinery [flags] script.lisp\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	source, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("read script: %v", err)
	}

	eng := engine.NewEngine()
	d, evalErrs, err := eng.Evaluate(string(source))
	if err != nil {
		log.Fatalf("evaluate: %v", err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			log.Printf("%s: %s", flag.Arg(0), e.Error())
		}
		os.Exit(1)
	}

	if *validate {
		findings := d.Validate()
		for _, f := range findings {
			log.Print(f)
		}
		for _, f := range findings {
			if f.Severity == design.SeverityError {
				os.Exit(1)
			}
		}
	}

	if *jsonOut {
		if err := writeJSON(os.Stdout, d); err != nil {
			log.Fatalf("encode: %v", err)
		}
		return
	}
	writeText(d)
}

func writeJSON(w *os.File, d *design.Design) error {
	out := make([]faceOutput, 0, d.Len())
	for _, name := range d.Names() {
		f, _ := d.Face(name)
		out = append(out, faceOutput{Name: name, Commands: f.Path().Commands()})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeText(d *design.Design) {
	for _, name := range d.Names() {
		f, _ := d.Face(name)
		p := f.Path()
		fmt.Printf("face %q (%d commands)\n", name, p.Len())
		if bb, ok := p.BoundingBox(); ok {
			fmt.Printf("  bounds %g x %g\n", bb.Width(), bb.Height())
		}
		fmt.Printf("  %s\n", p)
	}
}
