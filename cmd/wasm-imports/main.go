package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/wasm-imports/imports"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func main() {
	var (
		wasmFile = flag.String("wasm", "", "Path to wasm module file")
		jsonOut  = flag.Bool("json", false, "Emit the import list as JSON")
	)
	flag.Parse()

	if *wasmFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: wasm-imports -wasm <file.wasm> [-json]")
		os.Exit(1)
	}

	if err := run(*wasmFile, *jsonOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(wasmFile string, jsonOut bool) error {
	data, err := os.ReadFile(wasmFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	entries, err := imports.Parse(data)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	if jsonOut {
		if entries == nil {
			entries = []imports.Import{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("%s — %d import(s)", wasmFile, len(entries))))
	if len(entries) == 0 {
		fmt.Println(dimStyle.Render("  (module declares no imports)"))
		return nil
	}

	for _, imp := range entries {
		fmt.Printf("  %s  %s  %s\n",
			kindStyle.Render(fmt.Sprintf("%-8s", imp.Kind)),
			nameStyle.Render(imp.Module+"."+imp.Name),
			dimStyle.Render(describe(imp)))
	}
	return nil
}

// describe renders the kind-specific type record on one line.
func describe(imp imports.Import) string {
	switch imp.Kind {
	case imports.KindFunc:
		return signature(imp.Func)
	case imports.KindTable:
		s := fmt.Sprintf("%s min=%d", imp.Table.Elem, imp.Table.Min)
		if imp.Table.Max != nil {
			s += fmt.Sprintf(" max=%d", *imp.Table.Max)
		}
		return s
	case imports.KindMemory:
		s := fmt.Sprintf("%s min=%d", imp.Memory.Index(), imp.Memory.Min)
		if imp.Memory.Max != nil {
			s += fmt.Sprintf(" max=%d", *imp.Memory.Max)
		}
		if imp.Memory.Shared {
			s += " shared"
		}
		return s
	case imports.KindGlobal:
		if imp.Global.Mutable {
			return fmt.Sprintf("mut %s", imp.Global.Val)
		}
		return fmt.Sprintf("const %s", imp.Global.Val)
	default:
		return ""
	}
}

func signature(ft *imports.FuncType) string {
	params := make([]string, len(ft.Params))
	for i, p := range ft.Params {
		params[i] = p.String()
	}
	results := make([]string, len(ft.Results))
	for i, r := range ft.Results {
		results[i] = r.String()
	}
	s := "(" + strings.Join(params, ", ") + ")"
	if len(results) > 0 {
		s += " -> " + strings.Join(results, ", ")
	}
	return s
}
