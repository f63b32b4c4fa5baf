package lyrics

import (
	"testing"
	"time"
)

func TestParseSynced(t *testing.T) {
	lines := ParseSynced(sampleSynced)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}

	if lines[0].At != 12*time.Second {
		t.Errorf("lines[0].At = %v, want %v", lines[0].At, 12*time.Second)
	}
	if lines[1].At != 15*time.Second+300*time.Millisecond {
		t.Errorf("lines[1].At = %v", lines[1].At)
	}
	if lines[2].At != 62*time.Second+500*time.Millisecond {
		t.Errorf("lines[2].At = %v", lines[2].At)
	}
	if lines[2].Text != "Third line" {
		t.Errorf("lines[2].Text = %q", lines[2].Text)
	}
}

func TestParseSyncedSkipsMalformed(t *testing.T) {
	raw := "[00:05.00] good\nno timestamp here\n[bad] text\n[00:xx.00] unparseable\n[00:07.00]\n"
	lines := ParseSynced(raw)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Text != "good" {
		t.Errorf("lines[0].Text = %q, want %q", lines[0].Text, "good")
	}
}

func TestParseSyncedSortsByTime(t *testing.T) {
	raw := "[00:30.00] later\n[00:10.00] earlier"
	lines := ParseSynced(raw)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].Text != "earlier" || lines[1].Text != "later" {
		t.Errorf("lines out of order: %q, %q", lines[0].Text, lines[1].Text)
	}
}

func TestParseSyncedHourTimestamps(t *testing.T) {
	lines := ParseSynced("[01:02:03.50] deep cut")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	want := time.Hour + 2*time.Minute + 3*time.Second + 500*time.Millisecond
	if lines[0].At != want {
		t.Errorf("At = %v, want %v", lines[0].At, want)
	}
}

func TestParseSyncedEmpty(t *testing.T) {
	if lines := ParseSynced(""); lines != nil {
		t.Errorf("ParseSynced(\"\") = %v, want nil", lines)
	}
}
