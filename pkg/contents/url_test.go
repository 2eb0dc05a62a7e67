package contents

import "testing"

func TestBuildURLs(t *testing.T) {
	tests := []struct {
		name      string
		arch      string
		mirror    string
		suite     string
		component string
		wantGz    string
		wantXz    string
	}{
		{
			name:      "defaults",
			arch:      "amd64",
			mirror:    DefaultMirror,
			suite:     DefaultSuite,
			component: DefaultComponent,
			wantGz:    "http://ftp.uk.debian.org/debian/dists/stable/main/Contents-amd64.gz",
			wantXz:    "http://ftp.uk.debian.org/debian/dists/stable/main/Contents-amd64.xz",
		},
		{
			name:      "trailing slash on mirror trimmed",
			arch:      "arm64",
			mirror:    "http://deb.debian.org/debian/",
			suite:     "testing",
			component: "contrib",
			wantGz:    "http://deb.debian.org/debian/dists/testing/contrib/Contents-arm64.gz",
			wantXz:    "http://deb.debian.org/debian/dists/testing/contrib/Contents-arm64.xz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gz, xz := BuildURLs(tt.arch, tt.mirror, tt.suite, tt.component)
			if gz != tt.wantGz {
				t.Errorf("gz URL = %q, want %q", gz, tt.wantGz)
			}
			if xz != tt.wantXz {
				t.Errorf("xz URL = %q, want %q", xz, tt.wantXz)
			}
		})
	}
}
