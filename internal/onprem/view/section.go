// Package view derives what the provider screen shows from the fetched
// collections. It holds no I/O and no rendering.
package view

import "net/url"

// Section selects which part of the provider screen is shown.
type Section string

const (
	SectionSummary Section = "summary"
	SectionNodes   Section = "nodes"
)

const sectionParam = "section"

// ParseSection maps a query value to a section. Anything other than
// "nodes" is the summary.
func ParseSection(s string) Section {
	if Section(s) == SectionNodes {
		return SectionNodes
	}
	return SectionSummary
}

// SectionOf reads the section from a location's query string.
func SectionOf(u *url.URL) Section {
	if u == nil {
		return SectionSummary
	}
	return ParseSection(u.Query().Get(sectionParam))
}

// ManageNodesLocation returns a copy of u with section=nodes set. u is not
// modified.
func ManageNodesLocation(u *url.URL) *url.URL {
	return WithSection(u, SectionNodes)
}

// WithSection returns a copy of u with the section query parameter set.
// The summary section removes the parameter.
func WithSection(u *url.URL, s Section) *url.URL {
	var next url.URL
	if u != nil {
		next = *u
		if u.User != nil {
			user := *u.User
			next.User = &user
		}
	}

	q := next.Query()
	if s == SectionNodes {
		q.Set(sectionParam, string(s))
	} else {
		q.Del(sectionParam)
	}
	next.RawQuery = q.Encode()
	return &next
}
