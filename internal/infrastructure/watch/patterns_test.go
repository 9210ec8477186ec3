package watch

import "testing"

func TestPatternFilter_Matches(t *testing.T) {
	tests := []struct {
		name    string
		include []string
		exclude []string
		path    string
		want    bool
	}{
		{"no patterns passes all", nil, nil, "docs/spec.md", true},
		{"include match", []string{"*.md"}, nil, "docs/spec.md", true},
		{"include miss", []string{"*.md"}, nil, "docs/spec.pdf", false},
		{"exclude wins", []string{"*.md"}, []string{"README*"}, "docs/README.md", false},
		{"exclude without include", nil, []string{"*.tmp"}, "a.tmp", false},
	}

	for _, tt := range tests {
		f := NewPatternFilter(tt.include, tt.exclude)
		if got := f.Matches(tt.path); got != tt.want {
			t.Errorf("%s: Matches(%q) = %v, want %v", tt.name, tt.path, got, tt.want)
		}
	}
}

func TestDefaultDocumentFilter(t *testing.T) {
	f := DefaultDocumentFilter()

	for path, want := range map[string]bool{
		"release.txt":     true,
		"docs/spec.md":    true,
		"srs.pdf":         true,
		"spec.md.swp":     false,
		"archive.tar.tmp": false,
		"binary.bin":      false,
	} {
		if got := f.Matches(path); got != want {
			t.Errorf("Matches(%q) = %v, want %v", path, got, want)
		}
	}
}
