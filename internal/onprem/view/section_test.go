package view

import (
	"net/url"
	"testing"
)

func TestSectionOf(t *testing.T) {
	tests := []struct {
		raw  string
		want Section
	}{
		{"/config/onprem", SectionSummary},
		{"/config/onprem?section=nodes", SectionNodes},
		{"/config/onprem?section=summary", SectionSummary},
		{"/config/onprem?section=NODES", SectionSummary},
		{"/config/onprem?section=bogus&tab=1", SectionSummary},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			u, err := url.Parse(tt.raw)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := SectionOf(u); got != tt.want {
				t.Errorf("SectionOf(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}

	if got := SectionOf(nil); got != SectionSummary {
		t.Errorf("SectionOf(nil) = %q, want summary", got)
	}
}

func TestManageNodesLocation_CopiesLocation(t *testing.T) {
	u, err := url.Parse("https://platform.example.com/config/onprem?tab=providers#top")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	next := ManageNodesLocation(u)

	if got := next.Query().Get("section"); got != "nodes" {
		t.Errorf("section = %q, want nodes", got)
	}
	if got := next.Query().Get("tab"); got != "providers" {
		t.Errorf("tab = %q, want providers", got)
	}
	if next.Path != u.Path || next.Host != u.Host || next.Fragment != u.Fragment {
		t.Errorf("location not preserved: %s", next)
	}
	if u.Query().Has("section") {
		t.Error("original location was modified")
	}
}

func TestWithSection_SummaryDropsParam(t *testing.T) {
	u, _ := url.Parse("/config/onprem?section=nodes&tab=providers")

	back := WithSection(u, SectionSummary)
	if back.Query().Has("section") {
		t.Errorf("expected section removed, got %s", back)
	}
	if SectionOf(back) != SectionSummary {
		t.Error("expected summary section")
	}
}
