package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/dupscan/internal/errors"
	"github.com/agbru/dupscan/internal/freq"
	"github.com/agbru/dupscan/internal/orchestration"
	"github.com/agbru/dupscan/internal/ui"
)

func TestDisplayScanResults(t *testing.T) {
	ui.InitTheme(false)

	tests := []struct {
		name     string
		results  []orchestration.ScanResult
		contains []string
	}{
		{
			name: "All strategies succeed",
			results: []orchestration.ScanResult{
				{Name: "sequential", Set: freq.NewSet('a'), Duration: 5 * time.Millisecond},
				{Name: "chunked", Set: freq.NewSet('a'), Duration: 2 * time.Millisecond},
				{Name: "sharded", Set: freq.NewSet('a'), Duration: 3 * time.Millisecond},
			},
			contains: []string{"Comparison Summary", "Strategy", "Duration", "Status", "sequential", "chunked", "sharded", "Success"},
		},
		{
			name: "One strategy fails",
			results: []orchestration.ScanResult{
				{Name: "sequential", Set: freq.NewSet('a'), Duration: 5 * time.Millisecond},
				{Name: "chunked", Err: context.DeadlineExceeded, Duration: time.Second},
			},
			contains: []string{"Success", "Failure", "deadline exceeded"},
		},
		{
			name: "Sub-microsecond duration",
			results: []orchestration.ScanResult{
				{Name: "sequential", Set: freq.NewSet(), Duration: 0},
			},
			contains: []string{"< 1µs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			DisplayScanResults(tt.results, &buf)
			output := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(output, s) {
					t.Errorf("Expected output to contain %q, but got:\n%s", s, output)
				}
			}
		})
	}
}

func TestCLIResultPresenterHandleError(t *testing.T) {
	ui.InitTheme(false)
	presenter := CLIResultPresenter{}

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"No error", nil, apperrors.ExitSuccess},
		{"Timeout", context.DeadlineExceeded, apperrors.ExitErrorTimeout},
		{"Canceled", context.Canceled, apperrors.ExitErrorCanceled},
		{"Config error", apperrors.NewConfigError("bad flag"), apperrors.ExitErrorConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			code := presenter.HandleError(tt.err, time.Second, &buf)
			if code != tt.wantCode {
				t.Errorf("HandleError(%v) = %d, want %d", tt.err, code, tt.wantCode)
			}
		})
	}
}
