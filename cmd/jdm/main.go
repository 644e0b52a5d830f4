// jdm is a command-line tool for compiling and evaluating JDM documents.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/smilemakc/mbflow/pkg/engine"
	"github.com/smilemakc/mbflow/pkg/models"
	"github.com/smilemakc/mbflow/pkg/visualization"
)

const usage = `jdm - JSON Decision Model evaluator

USAGE:
    jdm <command> [options]

COMMANDS:
    compile <doc.json>              Validate a document and report plan shape
    eval <doc.json> <input.json>    Compile a document and evaluate it against input
    help                            Show this help message

COMPILE OPTIONS:
    -diagram    Render the compiled plan as a Mermaid flowchart instead of a summary

EXIT CODES:
    0    success (eval's output may legitimately be empty)
    1    usage error
    2    compile failure
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "compile":
		runCompile(os.Args[2:])
	case "eval":
		runEval(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n", os.Args[1])
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func runCompile(args []string) {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	diagram := fs.Bool("diagram", false, "render the compiled plan as a Mermaid flowchart")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: compile requires a document path")
		os.Exit(1)
	}

	doc, err := loadDocument(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	plan, err := engine.Compile(doc)
	if err != nil {
		reportCompileError(err)
		os.Exit(2)
	}

	if *diagram {
		out, err := visualization.NewMermaidRenderer().Render(doc, plan, visualization.DefaultRenderOptions())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to render diagram: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(out)
		return
	}

	fmt.Printf("plan %s compiled: %d scheduled node(s)\n", plan.PlanID, len(plan.Order()))
	for _, id := range plan.Order() {
		line := "    " + id
		if guard := plan.Guard(id); len(guard) > 0 {
			line += fmt.Sprintf(" (guarded by %v)", guard)
		}
		if plan.IsOutputSource(id) {
			line += " -> output"
		}
		fmt.Println(line)
	}
}

func runEval(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Error: eval requires a document path and an input path")
		os.Exit(1)
	}

	doc, err := loadDocument(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	input, err := loadInput(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	plan, err := engine.Compile(doc)
	if err != nil {
		reportCompileError(err)
		os.Exit(2)
	}

	output, err := engine.Evaluate(plan, input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	encoded, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to encode output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(encoded))
}

func loadDocument(path string) (*models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document %q: %w", path, err)
	}
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document %q: %w", path, err)
	}
	return &doc, nil
}

func loadInput(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input %q: %w", path, err)
	}
	var input map[string]any
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("parse input %q: %w", path, err)
	}
	return input, nil
}

func reportCompileError(err error) {
	var compileErr *models.CompileError
	if errors.As(err, &compileErr) {
		fmt.Fprintf(os.Stderr, "compile failed: %s\n", compileErr.Error())
		return
	}
	fmt.Fprintf(os.Stderr, "compile failed: %v\n", err)
}
