package cli

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netdraw/pkg/source"
)

func TestCompleteFormats(t *testing.T) {
	tests := []struct {
		toComplete string
		want       []string
	}{
		{"", []string{"drawio", "json", "dot", "svg", "png", "pdf"}},
		{"drawio,", []string{"drawio,json", "drawio,dot", "drawio,svg", "drawio,png", "drawio,pdf"}},
		{"drawio,svg,p", []string{"drawio,svg,json", "drawio,svg,dot", "drawio,svg,png", "drawio,svg,pdf"}},
	}
	for _, tt := range tests {
		got, dir := completeFormats(nil, nil, tt.toComplete)
		if !slices.Equal(got, tt.want) {
			t.Errorf("completeFormats(%q) = %v, want %v", tt.toComplete, got, tt.want)
		}
		if dir&cobra.ShellCompDirectiveNoSpace == 0 {
			t.Errorf("completeFormats(%q) should not append a space", tt.toComplete)
		}
	}
}

func TestCompleteSheets(t *testing.T) {
	path, err := writeTemplate(filepath.Join(t.TempDir(), "inventory.xlsx"), false)
	if err != nil {
		t.Fatal(err)
	}

	got, _ := completeSheets(nil, []string{path}, "")
	if !slices.Equal(got, []string{source.TemplateSheet, source.IDListSheet}) {
		t.Errorf("completeSheets = %v", got)
	}
	if _, dir := completeSheets(nil, []string{filepath.Join(t.TempDir(), "missing.xlsx")}, ""); dir != cobra.ShellCompDirectiveError {
		t.Errorf("missing workbook directive = %v, want error", dir)
	}
	if got, _ := completeSheets(nil, nil, ""); got != nil {
		t.Errorf("no input argument = %v, want nil", got)
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			var buf bytes.Buffer
			root := New(noopWriter{}, LogInfo).RootCommand()
			root.SetOut(&buf)
			root.SetArgs([]string{"completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(buf.String(), appName) {
				t.Errorf("%s script does not mention %s", shell, appName)
			}
		})
	}
}
