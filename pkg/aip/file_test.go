package aip

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleYAML = `id: did:aip:summarizer
name: Summarizer
version: 1.2.0
capabilities:
  - skill: summarization
    confidence: 0.92
pricing:
  model: per-task
  base_price: 0.05
  currency: USD
`

const sampleJSON = `{
  "id": "did:aip:summarizer",
  "name": "Summarizer",
  "version": "1.2.0",
  "capabilities": [{"skill": "summarization", "confidence": 0.92}]
}`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAgentFile_YAML(t *testing.T) {
	for _, name := range []string{"agent.yaml", "agent.yml"} {
		t.Run(name, func(t *testing.T) {
			agent, err := LoadAgentFile(writeTempFile(t, name, sampleYAML))
			if err != nil {
				t.Fatalf("LoadAgentFile error: %v", err)
			}
			if agent.ID != "did:aip:summarizer" {
				t.Errorf("ID = %q", agent.ID)
			}
			if agent.Pricing == nil || agent.Pricing.Model != PricingPerTask {
				t.Errorf("Pricing = %+v", agent.Pricing)
			}
			if agent.Pricing.BasePrice == nil || *agent.Pricing.BasePrice != 0.05 {
				t.Errorf("BasePrice = %v", agent.Pricing.BasePrice)
			}
		})
	}
}

func TestLoadAgentFile_JSON(t *testing.T) {
	agent, err := LoadAgentFile(writeTempFile(t, "agent.json", sampleJSON))
	if err != nil {
		t.Fatalf("LoadAgentFile error: %v", err)
	}
	if agent.Name != "Summarizer" || len(agent.Capabilities) != 1 {
		t.Errorf("unexpected profile %+v", agent)
	}
}

func TestLoadAgentFile_UnsupportedExtension(t *testing.T) {
	_, err := LoadAgentFile(writeTempFile(t, "agent.toml", "id = 1"))
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}
	if !strings.Contains(err.Error(), "unsupported file format") {
		t.Errorf("error = %v", err)
	}
}

func TestLoadAgentFile_InvalidProfile(t *testing.T) {
	bad := strings.Replace(sampleYAML, "1.2.0", "1.2", 1)
	_, err := LoadAgentFile(writeTempFile(t, "agent.yaml", bad))
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadAgentFile_Missing(t *testing.T) {
	if _, err := LoadAgentFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSaveAgentFile_RoundTrip(t *testing.T) {
	original := validProfile()
	original.Description = "round trip"
	original.Metrics = &Metrics{SuccessRate: floatPtr(0.88)}

	for _, tt := range []struct {
		name   string
		format string
	}{
		{"agent.yaml", FormatYAML},
		{"agent.json", FormatJSON},
	} {
		t.Run(tt.format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.name)
			if err := SaveAgentFile(original, path, tt.format); err != nil {
				t.Fatalf("SaveAgentFile error: %v", err)
			}

			loaded, err := LoadAgentFile(path)
			if err != nil {
				t.Fatalf("LoadAgentFile error: %v", err)
			}
			if !reflect.DeepEqual(original, loaded) {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, original)
			}

			// Unset fields must stay absent in the file, not become null.
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if strings.Contains(string(data), "proof_of_work") {
				t.Error("unset proof_of_work was written")
			}
		})
	}
}

func TestSaveAgentFile_UnknownFormat(t *testing.T) {
	err := SaveAgentFile(validProfile(), filepath.Join(t.TempDir(), "agent.xml"), "xml")
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a.yaml", FormatYAML},
		{"a.yml", FormatYAML},
		{"a.YAML", FormatYAML},
		{"a.json", FormatJSON},
		{"a.txt", FormatJSON},
	}
	for _, tt := range tests {
		if got := FormatForPath(tt.path); got != tt.want {
			t.Errorf("FormatForPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
