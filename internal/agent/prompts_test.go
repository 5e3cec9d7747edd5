package agent

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPromptManagerDefaults(t *testing.T) {
	pm := NewPromptManager("")
	if !strings.Contains(pm.PlannerPrompt(), "JSON array of steps") {
		t.Error("planner default missing")
	}
	if !strings.Contains(pm.SynthesizerPrompt(), "business analyst") {
		t.Error("synthesizer default missing")
	}
}

func TestPromptManagerOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "planner.md"), []byte("Custom planner instructions"), 0644); err != nil {
		t.Fatal(err)
	}

	pm := NewPromptManager(dir)
	if got := pm.PlannerPrompt(); got != "Custom planner instructions" {
		t.Errorf("override not applied: %q", got)
	}
	// Files that do not exist fall back to the defaults.
	if !strings.Contains(pm.SynthesizerPrompt(), "business analyst") {
		t.Error("missing override file should use the default")
	}
}

func TestSelectorPromptSplicesCatalog(t *testing.T) {
	pm := NewPromptManager("")
	prompt := pm.SelectorPrompt("1) search_products - finds things")
	if !strings.Contains(prompt, "1) search_products - finds things") {
		t.Error("catalog not spliced into selector prompt")
	}
	if strings.Contains(prompt, "%s") {
		t.Error("placeholder left in selector prompt")
	}
}

func TestPromptManagerBlankOverrideIgnored(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "synthesizer.md"), []byte("   \n"), 0644); err != nil {
		t.Fatal(err)
	}

	pm := NewPromptManager(dir)
	if !strings.Contains(pm.SynthesizerPrompt(), "business analyst") {
		t.Error("blank override file should fall back to the default")
	}
}
