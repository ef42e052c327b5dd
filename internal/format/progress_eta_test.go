package format

import (
	"testing"
	"time"
)

func TestNewProgressWithETA(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(4)

	if p.ProgressState == nil {
		t.Fatal("ProgressState should not be nil")
	}
	if p.numScanners != 4 {
		t.Errorf("numScanners = %d, want 4", p.numScanners)
	}
	if p.progressRate != 0 {
		t.Errorf("initial progressRate = %f, want 0", p.progressRate)
	}
	if p.startTime.IsZero() {
		t.Error("startTime should not be zero")
	}
}

func TestUpdateWithETA_Averaging(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(4)

	avg, eta := p.UpdateWithETA(0, 0.5)
	if avg != 0.125 {
		t.Errorf("average after first report = %f, want 0.125", avg)
	}
	if eta < 0 {
		t.Errorf("ETA = %v, must never be negative", eta)
	}

	if avg, _ = p.UpdateWithETA(1, 0.75); avg != 0.3125 {
		t.Errorf("average after second report = %f, want 0.3125", avg)
	}
	if avg, _ = p.UpdateWithETA(3, 0.25); avg != 0.375 {
		t.Errorf("average after third report = %f, want 0.375", avg)
	}
}

func TestGetETA(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(1)

	if eta := p.GetETA(); eta != 0 {
		t.Errorf("ETA before any rate exists = %v, want 0", eta)
	}

	// 75% of the work left at 5% per second gives a 15s estimate.
	p.Update(0, 0.25)
	p.progressRate = 0.05

	eta := p.GetETA()
	want := 15 * time.Second
	if eta < want-time.Second || eta > want+time.Second {
		t.Errorf("ETA = %v, want approximately %v", eta, want)
	}
}

func TestGetETA_CappedAtOneDay(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(1)
	p.Update(0, 0.001)
	p.progressRate = 1e-9

	if eta := p.GetETA(); eta != maxETA {
		t.Errorf("ETA = %v for a crawling scan, want the %v cap", eta, maxETA)
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		eta  time.Duration
		want string
	}{
		{"Zero means no estimate yet", 0, "calculating..."},
		{"Negative means no estimate yet", -5 * time.Second, "calculating..."},
		{"Sub-second", 800 * time.Millisecond, "< 1s"},
		{"Seconds only", 59 * time.Second, "59s"},
		{"Minute and seconds", 90 * time.Second, "1m30s"},
		{"Whole minutes", 10 * time.Minute, "10m"},
		{"Hour and minutes", time.Hour + 30*time.Minute, "1h30m"},
		{"Whole hours", 5 * time.Hour, "5h"},
		{"Hours drop stray seconds", 2*time.Hour + 30*time.Second, "2h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatETA(tt.eta); got != tt.want {
				t.Errorf("FormatETA(%v) = %q, want %q", tt.eta, got, tt.want)
			}
		})
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		length   int
		want     string
	}{
		{0.0, 8, "░░░░░░░░"},
		{0.25, 8, "██░░░░░░"},
		{0.75, 8, "██████░░"},
		{1.0, 8, "████████"},
		{1.5, 8, "████████"},
		{-0.25, 8, "░░░░░░░░"},
		{0.5, 0, ""},
	}

	for _, tt := range tests {
		if got := ProgressBar(tt.progress, tt.length); got != tt.want {
			t.Errorf("ProgressBar(%v, %d) = %q, want %q", tt.progress, tt.length, got, tt.want)
		}
	}
}

func TestFormatProgressBarWithETA(t *testing.T) {
	t.Parallel()

	got := FormatProgressBarWithETA(0.25, 90*time.Second, 8)
	if want := "[██░░░░░░]  25.0% ETA: 1m30s"; got != want {
		t.Errorf("FormatProgressBarWithETA = %q, want %q", got, want)
	}

	got = FormatProgressBarWithETA(0, 0, 8)
	if want := "[░░░░░░░░]   0.0% ETA: calculating..."; got != want {
		t.Errorf("FormatProgressBarWithETA at start = %q, want %q", got, want)
	}
}

func TestProgressState_ClampsAndIgnores(t *testing.T) {
	t.Parallel()

	t.Run("Values clamp to the unit interval", func(t *testing.T) {
		t.Parallel()
		ps := NewProgressState(1)
		ps.Update(0, 1.5)
		if avg := ps.CalculateAverage(); avg != 1.0 {
			t.Errorf("average = %f after overshoot, want 1.0", avg)
		}
		ps.Update(0, -0.5)
		if avg := ps.CalculateAverage(); avg != 0 {
			t.Errorf("average = %f after undershoot, want 0", avg)
		}
	})

	t.Run("Out-of-range scanner indices are ignored", func(t *testing.T) {
		t.Parallel()
		p := NewProgressWithETA(2)
		p.UpdateWithETA(7, 0.5)
		p.UpdateWithETA(-1, 0.5)
		if avg := p.CalculateAverage(); avg != 0 {
			t.Errorf("average = %f after ignored updates, want 0", avg)
		}
	})

	t.Run("Zero scanners average to zero", func(t *testing.T) {
		t.Parallel()
		ps := NewProgressState(0)
		if avg := ps.CalculateAverage(); avg != 0 {
			t.Errorf("average = %f with no scanners, want 0", avg)
		}
	})
}

func TestProgressStateUpdate(t *testing.T) {
	t.Parallel()
	ps := NewProgressState(2)
	ps.Update(0, 0.5)
	ps.Update(1, 1.0)
	if avg := ps.CalculateAverage(); avg != 0.75 {
		t.Errorf("average = %f, want 0.75", avg)
	}
}

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{900 * time.Nanosecond, "0µs"},
		{25 * time.Microsecond, "25µs"},
		{150 * time.Millisecond, "150ms"},
		{1500 * time.Millisecond, "1.5s"},
		{3 * time.Second, "3s"},
	}

	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatNumberString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"7", "7"},
		{"842", "842"},
		{"5280", "5,280"},
		{"1048576", "1,048,576"},
		{"+2500", "+2,500"},
		{"-73500", "-73,500"},
	}

	for _, tt := range tests {
		if got := FormatNumberString(tt.input); got != tt.want {
			t.Errorf("FormatNumberString(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
