package auditlog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSanitizeArgs(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"no secrets", []string{"onprem", "show", "--section", "nodes"}, []string{"onprem", "show", "--section", "nodes"}},
		{"separate value", []string{"--token", "s3cret", "--yes"}, []string{"--token", "<redacted>", "--yes"}},
		{"inline value", []string{"--api-token=s3cret"}, []string{"--api-token=<redacted>"}},
		{"trailing flag", []string{"auth", "login", "--token"}, []string{"auth", "login", "--token"}},
		{"empty", nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, SanitizeArgs(tt.in)); diff != "" {
				t.Errorf("SanitizeArgs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJoinArgs(t *testing.T) {
	got := JoinArgs([]string{"onprem", "snapshot", "--out", "seed.json"})
	if got != "onprem snapshot --out seed.json" {
		t.Errorf("JoinArgs = %q", got)
	}
}

func TestSanitizeArgs_DoesNotMutateInput(t *testing.T) {
	in := []string{"--token", "s3cret"}
	SanitizeArgs(in)
	if in[1] != "s3cret" {
		t.Errorf("input mutated: %v", in)
	}
}
