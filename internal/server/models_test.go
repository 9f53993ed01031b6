package server_test

import (
	"testing"

	"github.com/example/go-subword/internal/config"
	"github.com/example/go-subword/internal/server"
	"github.com/example/go-subword/internal/testutil"
)

func TestLoadModels_SegmentsWithLoadedCodes(t *testing.T) {
	codes := testutil.WriteCodes(t, "l o", "lo w", "e r")

	registry, err := server.LoadModels([]config.ModelConfig{
		{Name: "ende", CodesFile: codes},
	})
	if err != nil {
		t.Fatalf("LoadModels: %v", err)
	}

	m, ok := registry.Lookup("ende")
	if !ok {
		t.Fatal("Lookup(ende) = false")
	}

	if got := m.Segment("lower"); got != "low@@ er" {
		t.Errorf("Segment(lower) = %q, want %q", got, "low@@ er")
	}
}

func TestLoadModels_AppliesModelOptions(t *testing.T) {
	codes := testutil.WriteCodes(t, "l o", "lo w", "e r")
	vocab := testutil.WriteVocab(t, "lo@@ 10", "er 10")

	registry, err := server.LoadModels([]config.ModelConfig{
		{
			Name:      "enfr",
			CodesFile: codes,
			VocabFile: vocab,
			Separator: "￭",
		},
	})
	if err != nil {
		t.Fatalf("LoadModels: %v", err)
	}

	m, _ := registry.Lookup("enfr")
	// "low￭" is out of vocabulary, so the lo+w merge is reverted.
	if got := m.Segment("lower"); got != "lo￭ w￭ er" {
		t.Errorf("Segment(lower) = %q, want %q", got, "lo￭ w￭ er")
	}

	infos := registry.List()
	if len(infos) != 1 || infos[0].Separator != "￭" {
		t.Errorf("unexpected model infos: %v", infos)
	}
}

func TestLoadModels_MissingCodesFile(t *testing.T) {
	_, err := server.LoadModels([]config.ModelConfig{
		{Name: "ende", CodesFile: "/nonexistent/codes.bpe"},
	})
	if err == nil {
		t.Fatal("expected error for missing codes file")
	}
}

func TestLoadModels_DuplicateName(t *testing.T) {
	codes := testutil.WriteCodes(t, "l o")

	_, err := server.LoadModels([]config.ModelConfig{
		{Name: "ende", CodesFile: codes},
		{Name: "ende", CodesFile: codes},
	})
	if err == nil {
		t.Fatal("expected error for duplicate model name")
	}
}

func TestLoadModels_UnnamedModel(t *testing.T) {
	codes := testutil.WriteCodes(t, "l o")

	_, err := server.LoadModels([]config.ModelConfig{
		{CodesFile: codes},
	})
	if err == nil {
		t.Fatal("expected error for unnamed model")
	}
}

func TestLoadModels_NFCNormalizesInput(t *testing.T) {
	codes := testutil.WriteCodes(t, "x y")

	registry, err := server.LoadModels([]config.ModelConfig{
		{Name: "ende", CodesFile: codes, NFC: true},
	})
	if err != nil {
		t.Fatalf("LoadModels: %v", err)
	}

	m, _ := registry.Lookup("ende")

	// Decomposed e + combining acute composes to é before segmentation,
	// so the output tokens carry the composed form.
	got := m.Segment("café")
	want := "c@@ a@@ f@@ é"
	if got != want {
		t.Errorf("Segment = %q, want %q", got, want)
	}
}

func TestParseLogLevel(t *testing.T) {
	for _, s := range []string{"", "debug", "info", "warn", "warning", "error", "DEBUG"} {
		if _, err := server.ParseLogLevel(s); err != nil {
			t.Errorf("ParseLogLevel(%q): %v", s, err)
		}
	}

	if _, err := server.ParseLogLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
