package repourl

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		address   string
		wantOwner string
		wantName  string
		wantErr   bool
	}{
		{
			name:      "full https url",
			address:   "https://github.com/octocat/Hello-World",
			wantOwner: "octocat",
			wantName:  "Hello-World",
		},
		{
			name:      "trailing slash",
			address:   "https://github.com/octocat/Hello-World/",
			wantOwner: "octocat",
			wantName:  "Hello-World",
		},
		{
			name:      "extra path segments ignored",
			address:   "https://github.com/octocat/Hello-World/tree/main/src",
			wantOwner: "octocat",
			wantName:  "Hello-World",
		},
		{
			name:      "bare owner/name",
			address:   "octocat/Hello-World",
			wantOwner: "octocat",
			wantName:  "Hello-World",
		},
		{
			name:      "surrounding whitespace",
			address:   "  octocat/Hello-World\n",
			wantOwner: "octocat",
			wantName:  "Hello-World",
		},
		{
			name:    "owner only",
			address: "https://github.com/octocat",
			wantErr: true,
		},
		{
			name:    "bare owner only",
			address: "justanowner",
			wantErr: true,
		},
		{
			name:    "empty address",
			address: "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			address: "   ",
			wantErr: true,
		},
		{
			name:    "host only",
			address: "https://github.com/",
			wantErr: true,
		},
		{
			name:    "empty segments",
			address: "https://github.com//Hello-World",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := Parse(tt.address)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAddress) {
					t.Fatalf("Parse(%q) error = %v, want ErrInvalidAddress", tt.address, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.address, err)
			}
			if repo.Owner != tt.wantOwner || repo.Name != tt.wantName {
				t.Errorf("Parse(%q) = %s/%s, want %s/%s",
					tt.address, repo.Owner, repo.Name, tt.wantOwner, tt.wantName)
			}
		})
	}
}
