package schema

import (
	"strings"
	"testing"
)

const validYAML = `id: did:aip:test
name: Test
version: 1.0.0
capabilities:
  - skill: text-generation
    confidence: 0.9
`

func issuePaths(result *ValidationResult) []string {
	paths := make([]string, 0, len(result.Issues))
	for _, issue := range result.Issues {
		paths = append(paths, issue.Path)
	}
	return paths
}

func hasIssueAt(result *ValidationResult, path string) bool {
	for _, issue := range result.Issues {
		if issue.Path == path {
			return true
		}
	}
	return false
}

func TestValidate_ValidProfile(t *testing.T) {
	result, err := Validate([]byte(validYAML))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid, got issues: %+v", result.Issues)
	}
}

func TestValidate_ValidJSONProfile(t *testing.T) {
	data := `{"id":"did:aip:test","name":"Test","version":"2.0.0","capabilities":[{"skill":"sum","confidence":1}]}`
	result, err := Validate([]byte(data))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid, got issues: %+v", result.Issues)
	}
}

func TestValidate_MissingRequiredFields(t *testing.T) {
	result, err := Validate([]byte("name: OnlyAName\n"))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if len(result.Issues) == 0 {
		t.Fatal("expected issues")
	}
}

func TestValidate_ConfidenceOutOfRange(t *testing.T) {
	bad := strings.Replace(validYAML, "0.9", "1.5", 1)
	result, err := Validate([]byte(bad))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if !hasIssueAt(result, "/capabilities/0/confidence") {
		t.Errorf("issue paths = %v, want /capabilities/0/confidence", issuePaths(result))
	}
}

func TestValidate_ShortVersion(t *testing.T) {
	bad := strings.Replace(validYAML, "1.0.0", `"1.0"`, 1)
	result, err := Validate([]byte(bad))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if !hasIssueAt(result, "/version") {
		t.Errorf("issue paths = %v, want /version", issuePaths(result))
	}
}

func TestValidate_PrereleaseVersionAccepted(t *testing.T) {
	ok := strings.Replace(validYAML, "1.0.0", "1.0.0-beta", 1)
	result, err := Validate([]byte(ok))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid, got issues: %+v", result.Issues)
	}
}

func TestValidate_EmptyCapabilities(t *testing.T) {
	data := "id: did:aip:test\nname: Test\nversion: 1.0.0\ncapabilities: []\n"
	result, err := Validate([]byte(data))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if !hasIssueAt(result, "/capabilities") {
		t.Errorf("issue paths = %v, want /capabilities", issuePaths(result))
	}
}

func TestValidate_BadPricingModel(t *testing.T) {
	data := validYAML + "pricing:\n  model: hourly\n"
	result, err := Validate([]byte(data))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if !hasIssueAt(result, "/pricing/model") {
		t.Errorf("issue paths = %v, want /pricing/model", issuePaths(result))
	}
}

func TestValidate_UnparsableInput(t *testing.T) {
	if _, err := Validate([]byte("{unclosed")); err == nil {
		t.Fatal("expected parse error")
	}
}
