package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Cameras", "cameras"},
		{"spaces to dashes", "CCTV Security Cameras", "cctv-security-cameras"},
		{"punctuation stripped", "CCTV & Security Cameras!", "cctv-security-cameras"},
		{"collapse whitespace", "  Access   Control  ", "access-control"},
		{"existing dashes kept", "Wi-Fi Routers", "wi-fi-routers"},
		{"digits kept", "4K Cameras", "4k-cameras"},
		{"empty", "", ""},
		{"only punctuation", "&&&", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Make(tt.in); got != tt.want {
				t.Errorf("Make(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
