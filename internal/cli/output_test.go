package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestTableAlignsAmountsRight(t *testing.T) {
	var buf bytes.Buffer
	out := &Output{writer: &buf}

	table := NewTable(out, "ROBOT", "RESULT").AlignRight(1)
	table.AddRow("ZARION", "R$ 5,00")
	table.AddRow("ATRION WIN", "-R$ 1.250,00")
	table.AddRow("GIRION")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[2] != "ZARION           R$ 5,00" {
		t.Errorf("row = %q", lines[2])
	}
	if lines[3] != "ATRION WIN  -R$ 1.250,00" {
		t.Errorf("row = %q", lines[3])
	}
	if lines[4] != "GIRION" {
		t.Errorf("short row = %q", lines[4])
	}
}

func TestSummaryAlignsLabels(t *testing.T) {
	var buf bytes.Buffer
	out := &Output{writer: &buf}

	out.Summary("Performance", []Field{
		{"Net profit", "+R$ 50,00"},
		{"SQN", "1.20"},
	})

	text := buf.String()
	for _, want := range []string{
		"│ Net profit  +R$ 50,00 │",
		"│ SQN         1.20      │",
		"│ Performance           │",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("summary missing %q:\n%s", want, text)
		}
	}
}

func TestFormatPnLColorsBySign(t *testing.T) {
	plain := &Output{}
	if got := plain.FormatPnL(12.5); got != "+R$ 12,50" {
		t.Errorf("plain FormatPnL = %q", got)
	}

	colored := &Output{colorEnabled: true}
	if got := colored.FormatPnL(-3); got != styleRed+"-R$ 3,00"+styleReset {
		t.Errorf("negative FormatPnL = %q", got)
	}
	if got := colored.FormatPnL(0); got != "R$ 0,00" {
		t.Errorf("zero FormatPnL = %q", got)
	}
	if displayWidth(colored.FormatPnL(7)) != len("+R$ 7,00") {
		t.Errorf("display width counts escape codes")
	}
}
