package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/dupscan/internal/freq"
	"github.com/agbru/dupscan/internal/ui"
)

// newTestREPL builds a REPL over the real scanner registry with output
// captured in a buffer.
func newTestREPL() (*REPL, *bytes.Buffer) {
	factory := freq.GlobalFactory()
	registry := make(map[string]freq.Scanner)
	for _, name := range factory.List() {
		registry[name] = factory.MustGet(name)
	}

	r := NewREPL(registry, REPLConfig{
		DefaultStrategy: "sequential",
		Timeout:         10 * time.Second,
		Threshold:       2,
		SlabSize:        65536,
	})

	var buf bytes.Buffer
	r.SetOutput(&buf)
	return r, &buf
}

func TestNewREPLStrategyFallback(t *testing.T) {
	t.Parallel()
	registry := map[string]freq.Scanner{
		"sequential": freq.GlobalFactory().MustGet("sequential"),
	}

	// "auto" is resolved before the REPL starts; an unresolved name must
	// fall back to a registry entry instead of leaving scans broken.
	r := NewREPL(registry, REPLConfig{DefaultStrategy: "auto"})
	if r.currentStrategy != "sequential" {
		t.Errorf("Expected fallback to 'sequential', got %q", r.currentStrategy)
	}
}

func TestREPLProcessCommand(t *testing.T) {
	ui.InitTheme(false)

	tests := []struct {
		name     string
		command  string
		contains []string
	}{
		{
			name:     "Help command",
			command:  "help",
			contains: []string{"Available commands", "scan <text>", "bench <n>"},
		},
		{
			name:     "List command",
			command:  "list",
			contains: []string{"Available strategies", "sequential"},
		},
		{
			name:     "Status command",
			command:  "status",
			contains: []string{"Current configuration", "Strategy", "Threshold"},
		},
		{
			name:     "Strategy change",
			command:  "strategy chunked",
			contains: []string{"Strategy changed to"},
		},
		{
			name:     "Unknown strategy",
			command:  "strategy warp",
			contains: []string{"Unknown strategy: warp"},
		},
		{
			name:     "Workers change",
			command:  "workers 4",
			contains: []string{"Workers set to"},
		},
		{
			name:     "Workers auto",
			command:  "workers 0",
			contains: []string{"auto"},
		},
		{
			name:     "Threshold change",
			command:  "threshold 3",
			contains: []string{"Duplicate threshold set to"},
		},
		{
			name:     "Threshold rejects zero",
			command:  "threshold 0",
			contains: []string{"Invalid value"},
		},
		{
			name:     "Details toggle",
			command:  "details",
			contains: []string{"Detailed analysis"},
		},
		{
			name:     "Unknown command",
			command:  "nonsense",
			contains: []string{"Unknown command", "help"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, buf := newTestREPL()
			if !r.processCommand(tt.command) {
				t.Fatalf("processCommand(%q) requested exit", tt.command)
			}
			output := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(output, s) {
					t.Errorf("Expected output to contain %q, but got:\n%s", s, output)
				}
			}
		})
	}
}

func TestREPLExitCommands(t *testing.T) {
	ui.InitTheme(false)

	for _, cmd := range []string{"exit", "quit", "q"} {
		t.Run(cmd, func(t *testing.T) {
			r, buf := newTestREPL()
			if r.processCommand(cmd) {
				t.Errorf("processCommand(%q) should request exit", cmd)
			}
			if !strings.Contains(buf.String(), "Goodbye!") {
				t.Error("Exit should print a farewell message")
			}
		})
	}
}

func TestREPLScanCommand(t *testing.T) {
	ui.InitTheme(false)

	// Silence the spinner during scans
	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()
	newSpinner = func(options ...spinner.Option) Spinner {
		return &MockSpinner{}
	}

	tests := []struct {
		name     string
		command  string
		contains []string
	}{
		{
			name:     "Scan finds duplicates",
			command:  "scan caiopa",
			contains: []string{"Result", "{'a'}", "Duplicates"},
		},
		{
			name:    "Scan joins arguments",
			command: "scan hello world test",
			// "helloworldtest" has e, l, o and t repeated
			contains: []string{"{'e', 'l', 'o', 't'}"},
		},
		{
			name:     "Scan without duplicates",
			command:  "scan abc",
			contains: []string{"{}"},
		},
		{
			name:     "Bench command",
			command:  "bench 1000",
			contains: []string{"1,000", "Result"},
		},
		{
			name:     "Bare number runs a bench scan",
			command:  "100",
			contains: []string{"Result"},
		},
		{
			name:     "Scan without text",
			command:  "scan",
			contains: []string{"Usage: scan <text>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, buf := newTestREPL()
			r.processCommand(tt.command)
			output := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(output, s) {
					t.Errorf("Expected output to contain %q, but got:\n%s", s, output)
				}
			}
		})
	}
}

func TestREPLCompareCommand(t *testing.T) {
	ui.InitTheme(false)

	r, buf := newTestREPL()
	r.processCommand("compare caiopa")
	output := buf.String()

	if !strings.Contains(output, "Comparison for 6 symbols") {
		t.Errorf("Expected comparison header, got:\n%s", output)
	}
	// Every registered strategy reports the same set
	for _, name := range freq.GlobalFactory().List() {
		if !strings.Contains(output, name) {
			t.Errorf("Comparison should include strategy %q", name)
		}
	}
	if strings.Contains(output, "INCONSISTENT") {
		t.Errorf("Strategies disagreed on the duplicate set:\n%s", output)
	}
}

func TestREPLStartEOF(t *testing.T) {
	ui.InitTheme(false)

	r, buf := newTestREPL()
	r.SetInput(strings.NewReader(""))
	r.Start()

	output := buf.String()
	if !strings.Contains(output, "Duplicate Scanner - Interactive Mode") {
		t.Error("Start should print the banner")
	}
	if !strings.Contains(output, "Goodbye!") {
		t.Error("EOF should end the session with a farewell")
	}
}
