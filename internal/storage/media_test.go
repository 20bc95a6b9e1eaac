package storage

import "testing"

func TestIsMediaFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"clip.mp4", true},
		{"CLIP.MKV", true},
		{"song.mp3", true},
		{"voice.wav", true},
		{"notes.txt", false},
		{"archive.zip", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := IsMediaFile(tt.name); got != tt.want {
			t.Errorf("IsMediaFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsMediaContentType(t *testing.T) {
	tests := []struct {
		ct   string
		want bool
	}{
		{"video/mp4", true},
		{"audio/mpeg", true},
		{"application/octet-stream", false},
		{"text/plain", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsMediaContentType(tt.ct); got != tt.want {
			t.Errorf("IsMediaContentType(%q) = %v, want %v", tt.ct, got, tt.want)
		}
	}
}
