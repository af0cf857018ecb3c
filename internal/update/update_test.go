package update

import "testing"

func TestNewer(t *testing.T) {
	tests := []struct {
		name    string
		current string
		tag     string
		want    string
	}{
		{name: "newer release", current: "1.0.0", tag: "v1.1.0", want: "1.1.0"},
		{name: "same version", current: "1.1.0", tag: "v1.1.0", want: ""},
		{name: "same version without prefix", current: "v1.1.0", tag: "1.1.0", want: ""},
		{name: "empty tag", current: "1.0.0", tag: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newer(tt.current, ghRelease{TagName: tt.tag})
			if tt.want == "" {
				if got != nil {
					t.Fatalf("newer() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("newer() = nil, want version %q", tt.want)
			}
			if got.Version != tt.want {
				t.Errorf("Version = %q, want %q", got.Version, tt.want)
			}
			if got.URL == "" {
				t.Error("URL is empty")
			}
		})
	}
}
