package system

import "testing"

func TestPreviewURL(t *testing.T) {
	tests := []struct {
		host, listen string
		want         string
	}{
		{"192.168.1.5", ":80", "http://192.168.1.5/"},
		{"192.168.1.5", ":8080", "http://192.168.1.5:8080/"},
		{"", ":8080", "http://localhost:8080/"},
		{"10.0.0.1", "127.0.0.1:9000", "http://127.0.0.1:9000/"},
		{"10.0.0.1", "0.0.0.0:81", "http://10.0.0.1:81/"},
		{"10.0.0.1", "8080", "http://10.0.0.1:8080/"},
		{"10.0.0.1", "", "http://10.0.0.1/"},
		{"fe80::1", "[::]:8080", "http://[fe80::1]:8080/"},
	}
	for _, tt := range tests {
		if got := PreviewURL(tt.host, tt.listen); got != tt.want {
			t.Errorf("PreviewURL(%q, %q) = %q, want %q", tt.host, tt.listen, got, tt.want)
		}
	}
}
