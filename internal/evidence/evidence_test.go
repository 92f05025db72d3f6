package evidence_test

import (
	"reflect"
	"testing"

	"github.com/truthlayerai-dev/truthlayer-cli/internal/evidence"
)

func TestExtract(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "empty",
			in:   "",
			want: nil,
		},
		{
			name: "whitespaceOnly",
			in:   "  \n\t\n  ",
			want: nil,
		},
		{
			name: "dedupePreservesOrder",
			in:   "see https://a.example/x\nno link here\nhttps://a.example/x again\nhttps://b.example/y",
			want: []string{"https://a.example/x", "https://b.example/y"},
		},
		{
			name: "firstTokenPerLine",
			in:   "https://one.example/a https://two.example/b",
			want: []string{"https://one.example/a"},
		},
		{
			name: "schemeCaseInsensitive",
			in:   "HTTPS://Upper.example/path",
			want: []string{"HTTPS://Upper.example/path"},
		},
		{
			name: "leadingProse",
			in:   "source: http://plain.example/page?id=1",
			want: []string{"http://plain.example/page?id=1"},
		},
		{
			name: "noPartialExtraction",
			in:   "ftp://not.example\nwww.bare.example",
			want: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := evidence.Extract(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Extract(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
