package tool

import (
	"testing"

	"github.com/flowisehq/flowise-mcp/flowise"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"Support Bot", "support_bot"},
		{"support_bot", "support_bot"},
		{"  --Weird__Name!! ", "weird_name"},
		{"FAQ (v2)", "faq_v2"},
		{"123", "123"},
		{"", "chatflow"},
		{"!!!", "chatflow"},
	}

	for i, tc := range cases {
		if got := Normalize(tc.in); got != tc.out {
			t.Fatalf("case %d: Normalize(%q) = %q, want %q", i, tc.in, got, tc.out)
		}
	}
}

func TestDerive(t *testing.T) {
	cases := []struct {
		name  string
		flows []flowise.Chatflow
		out   []string
	}{
		{
			name: "no collision",
			flows: []flowise.Chatflow{
				{ID: "a1", Name: "Support Bot"},
				{ID: "a2", Name: "Sales Bot"},
			},
			out: []string{"support_bot", "sales_bot"},
		},
		{
			name: "shared name gets id suffix",
			flows: []flowise.Chatflow{
				{ID: "a1", Name: "Support Bot"},
				{ID: "a2", Name: "Support Bot"},
			},
			out: []string{"support_bot", "support_bot_a2"},
		},
		{
			name: "three way collision",
			flows: []flowise.Chatflow{
				{ID: "a1", Name: "Support Bot"},
				{ID: "a2", Name: "Support Bot"},
				{ID: "a3", Name: "Support Bot"},
			},
			out: []string{"support_bot", "support_bot_a2", "support_bot_a3"},
		},
		{
			name: "duplicated ids fall back to numeric index",
			flows: []flowise.Chatflow{
				{ID: "a1", Name: "Support Bot"},
				{ID: "a1", Name: "Support Bot"},
				{ID: "a1", Name: "Support Bot"},
			},
			out: []string{"support_bot", "support_bot_a1", "support_bot_a1_2"},
		},
		{
			name: "long id truncated to trailing chars",
			flows: []flowise.Chatflow{
				{ID: "0123456789abcdef", Name: "Bot"},
				{ID: "fedcba9876543210", Name: "Bot"},
			},
			out: []string{"bot", "bot_76543210"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Derive(tc.flows)
			if len(got) != len(tc.out) {
				t.Fatalf("Derive returned %d names, want %d", len(got), len(tc.out))
			}
			for i := range got {
				if got[i] != tc.out[i] {
					t.Fatalf("name %d: got %q, want %q", i, got[i], tc.out[i])
				}
			}
		})
	}
}

func TestDeriveDeterministic(t *testing.T) {
	flows := []flowise.Chatflow{
		{ID: "a1", Name: "Support Bot"},
		{ID: "a2", Name: "Support Bot"},
		{ID: "b1", Name: "Sales Bot"},
	}
	first := Derive(flows)
	second := Derive(flows)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("non-deterministic name %d: %q vs %q", i, first[i], second[i])
		}
	}
	seen := map[string]bool{}
	for _, name := range first {
		if seen[name] {
			t.Fatalf("duplicate name %q", name)
		}
		seen[name] = true
	}
}
