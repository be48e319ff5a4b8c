package models

import "strings"

// SplitSkills parses the comma-delimited wire form of a skills list,
// trimming each entry and dropping empties.
func SplitSkills(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// JoinSkills renders a skills list back to its delimited wire form,
// trimming entries and dropping empties so a round trip is stable.
func JoinSkills(skills []string) string {
	var out []string
	for _, s := range skills {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, ", ")
}
