package calibration

import (
	"bytes"
	"context"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/agbru/dupscan/internal/cli"
	"github.com/agbru/dupscan/internal/config"
	apperrors "github.com/agbru/dupscan/internal/errors"
	"github.com/agbru/dupscan/internal/freq"
)

func TestPickPair(t *testing.T) {
	t.Parallel()

	t.Run("Full registry", func(t *testing.T) {
		t.Parallel()
		sequential, chunked, err := pickPair(freq.GlobalFactory().GetAll())
		if err != nil {
			t.Fatalf("pickPair failed: %v", err)
		}
		if sequential.Name() != "sequential" {
			t.Errorf("sequential scanner name = %q", sequential.Name())
		}
		if chunked.Name() != "chunked" {
			t.Errorf("chunked scanner name = %q", chunked.Name())
		}
	})

	t.Run("Missing chunked", func(t *testing.T) {
		t.Parallel()
		_, _, err := pickPair([]freq.Scanner{freq.SequentialScanner{}})
		if err == nil {
			t.Error("Expected error for incomplete scanner set")
		}
	})

	t.Run("Empty set", func(t *testing.T) {
		t.Parallel()
		_, _, err := pickPair(nil)
		if err == nil {
			t.Error("Expected error for empty scanner set")
		}
	})
}

func TestCrossoverFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		results []crossoverResult
		want    int
	}{
		{
			name: "Chunked wins from the middle",
			results: []crossoverResult{
				{Size: 1000, Sequential: 10, Chunked: 20},
				{Size: 2000, Sequential: 20, Chunked: 15},
				{Size: 4000, Sequential: 40, Chunked: 25},
			},
			want: 2000,
		},
		{
			name: "Chunked never wins",
			results: []crossoverResult{
				{Size: 1000, Sequential: 10, Chunked: 20},
				{Size: 2000, Sequential: 20, Chunked: 30},
			},
			want: 0,
		},
		{
			name: "Chunked always wins",
			results: []crossoverResult{
				{Size: 1000, Sequential: 20, Chunked: 10},
				{Size: 2000, Sequential: 40, Chunked: 20},
			},
			want: 1000,
		},
		{
			name: "Early win does not count without a winning suffix",
			results: []crossoverResult{
				{Size: 1000, Sequential: 20, Chunked: 10},
				{Size: 2000, Sequential: 20, Chunked: 30},
				{Size: 4000, Sequential: 40, Chunked: 25},
			},
			want: 4000,
		},
		{
			name: "Trailing error blocks the suffix",
			results: []crossoverResult{
				{Size: 1000, Sequential: 20, Chunked: 10},
				{Size: 2000, Sequential: 20, Chunked: 10, Err: context.Canceled},
			},
			want: 0,
		},
		{
			name:    "Empty results",
			results: nil,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := crossoverFrom(tt.results); got != tt.want {
				t.Errorf("crossoverFrom() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeasure(t *testing.T) {
	t.Parallel()

	t.Run("Returns a timing", func(t *testing.T) {
		t.Parallel()
		seq := freq.RandomRunes(1024, freq.GeneratorAlphabetSize, calibrationSeed)
		d, err := measure(context.Background(), freq.SequentialScanner{}, seq, freq.Options{}, 2)
		if err != nil {
			t.Fatalf("measure failed: %v", err)
		}
		if d < 0 {
			t.Errorf("duration = %v, want >= 0", d)
		}
	})

	t.Run("Canceled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		seq := freq.RandomRunes(1024, freq.GeneratorAlphabetSize, calibrationSeed)
		_, err := measure(ctx, freq.SequentialScanner{}, seq, freq.Options{}, 1)
		if err == nil {
			t.Error("Expected error for canceled context")
		}
	})
}

func TestFindCrossover_SmallSizes(t *testing.T) {
	t.Parallel()

	sizes := []int{512, 1024}
	results, crossover := findCrossover(context.Background(), freq.SequentialScanner{}, freq.ChunkedScanner{}, sizes, 1, func() {})

	if len(results) != len(sizes) {
		t.Fatalf("got %d results, want %d", len(results), len(sizes))
	}
	for i, res := range results {
		if res.Size != sizes[i] {
			t.Errorf("result %d size = %d, want %d", i, res.Size, sizes[i])
		}
		if res.Err != nil {
			t.Errorf("result %d unexpected error: %v", i, res.Err)
		}
	}
	// The crossover must be one of the probed sizes or zero
	if crossover != 0 && crossover != 512 && crossover != 1024 {
		t.Errorf("crossover = %d, want one of the probed sizes or 0", crossover)
	}
}

func TestProbeWorkers(t *testing.T) {
	t.Parallel()

	counts := []int{1, 2}
	ticks := 0
	results, best := probeWorkers(context.Background(), freq.ChunkedScanner{}, counts, 2048, 1, func() { ticks++ })

	if len(results) != len(counts) {
		t.Fatalf("got %d results, want %d", len(results), len(counts))
	}
	if ticks != len(counts) {
		t.Errorf("ticks = %d, want %d", ticks, len(counts))
	}
	if best != 1 && best != 2 {
		t.Errorf("best workers = %d, want 1 or 2", best)
	}
}

func TestRunCalibration_MissingStrategies(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	code := RunCalibration(context.Background(), &buf, nil, cli.DisplayProgress, cli.CLIColorProvider{})
	if code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if !strings.Contains(buf.String(), "Calibration error") {
		t.Errorf("output %q should name the calibration error", buf.String())
	}
}

func TestRunCalibration_Canceled(t *testing.T) {
	t.Parallel()
	if runtime.NumCPU() == 1 {
		t.Skip("single-core machines skip calibration entirely")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	code := RunCalibration(ctx, &buf, freq.GlobalFactory().GetAll(), cli.DisplayProgress, cli.CLIColorProvider{})
	if code != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
}

func TestAutoCalibrate(t *testing.T) {
	t.Parallel()

	t.Run("Explicit settings are preserved", func(t *testing.T) {
		t.Parallel()
		cfg := config.AppConfig{ParallelThreshold: 12345, Workers: 7}
		updated, ok := AutoCalibrate(context.Background(), cfg, &bytes.Buffer{}, freq.GlobalFactory().GetAll())
		if ok {
			t.Error("Expected no calibration when both values are explicit")
		}
		if updated.ParallelThreshold != 12345 || updated.Workers != 7 {
			t.Errorf("config changed: %+v", updated)
		}
	})

	t.Run("Missing strategies", func(t *testing.T) {
		t.Parallel()
		_, ok := AutoCalibrate(context.Background(), config.AppConfig{}, &bytes.Buffer{}, nil)
		if ok {
			t.Error("Expected no calibration without the strategy pair")
		}
	})

	t.Run("Canceled context applies nothing", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		cfg := config.AppConfig{}
		updated, ok := AutoCalibrate(ctx, cfg, &bytes.Buffer{}, freq.GlobalFactory().GetAll())
		if ok {
			t.Error("Expected no calibration under a canceled context")
		}
		if updated.ParallelThreshold != 0 {
			t.Errorf("ParallelThreshold = %d, want 0", updated.ParallelThreshold)
		}
	})
}

func TestProbeDuration(t *testing.T) {
	t.Parallel()

	if got := probeDuration(0); got != "< 1µs" {
		t.Errorf("probeDuration(0) = %q, want %q", got, "< 1µs")
	}
	if got := probeDuration(1500 * time.Millisecond); got == "" || got == "< 1µs" {
		t.Errorf("probeDuration(1.5s) = %q, want a formatted duration", got)
	}
}

func TestPrintCrossoverResults(t *testing.T) {
	t.Parallel()

	results := []crossoverResult{
		{Size: 32768, Sequential: 100 * time.Microsecond, Chunked: 200 * time.Microsecond},
		{Size: 65536, Sequential: 400 * time.Microsecond, Chunked: 250 * time.Microsecond},
		{Size: 131072, Sequential: 0, Chunked: 0, Err: context.DeadlineExceeded},
	}

	var buf bytes.Buffer
	printCrossoverResults(&buf, results, 65536)
	output := buf.String()

	if !strings.Contains(output, "Crossover Summary") {
		t.Error("Output should contain the table title")
	}
	if !strings.Contains(output, "(Crossover)") {
		t.Error("Output should highlight the crossover row")
	}
	if !strings.Contains(output, "N/A") {
		t.Error("Output should mark failed probes as N/A")
	}
	if !strings.Contains(output, "65,536") {
		t.Errorf("Output should contain the formatted size, got:\n%s", output)
	}
}

func TestPrintWorkerResults(t *testing.T) {
	t.Parallel()

	results := []workerResult{
		{Workers: 1, Duration: 4 * time.Millisecond},
		{Workers: 4, Duration: 1 * time.Millisecond},
	}

	var buf bytes.Buffer
	printWorkerResults(&buf, results, 4)
	output := buf.String()

	if !strings.Contains(output, "Worker Probe") {
		t.Error("Output should contain the table title")
	}
	if !strings.Contains(output, "(Optimal)") {
		t.Error("Output should highlight the fastest worker count")
	}
}

func TestPrintRecommendation(t *testing.T) {
	t.Parallel()

	t.Run("With crossover", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		printRecommendation(&buf, Recommendation{ParallelThreshold: 65536, Workers: 8}, time.Second)
		output := buf.String()

		if !strings.Contains(output, "65536") {
			t.Error("Output should contain the recommended threshold")
		}
		if !strings.Contains(output, "-parallel-threshold") {
			t.Error("Output should show the flag to apply the recommendation")
		}
		if !strings.Contains(output, config.EnvPrefix+"PARALLEL_THRESHOLD") {
			t.Error("Output should show the environment variable form")
		}
	})

	t.Run("Without crossover", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		printRecommendation(&buf, Recommendation{}, time.Second)
		output := buf.String()

		if !strings.Contains(output, "never beat sequential") {
			t.Errorf("Output should explain the missing crossover, got:\n%s", output)
		}
		if strings.Contains(output, "-parallel-threshold") {
			t.Error("Output should not suggest a flag without a crossover")
		}
	})
}
