package normalize

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRemoveSubtrees(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "subtree removed including nested tags",
			in: []string{
				"Before",
				"<Nav>",
				"  <Content>",
				"    hidden",
				"  </Content>",
				"</Nav>",
				"After",
			},
			want: []string{"Before", "After"},
		},
		{
			name: "self-closing and one-line forms removed",
			in:   []string{"<Badge />", "<Meta>draft</Meta>", "kept"},
			want: []string{"kept"},
		},
		{
			name: "closer inside a fence does not end suppression",
			in: []string{
				"<Facets>",
				"x",
				"```",
				"</Facets>",
				"```",
				"</Facets>",
				"after",
			},
			want: []string{"after"},
		},
		{
			name: "other tags untouched",
			in:   []string{"<Note>", "  keep", "</Note>"},
			want: []string{"<Note>", "  keep", "</Note>"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := RemoveSubtrees(tc.in)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("RemoveSubtrees() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
