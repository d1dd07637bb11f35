package transfer

import (
	"testing"

	"github.com/pelicanml/pelican/internal/api"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		path  string
		video bool
	}{
		{"frame.jpg", false},
		{"frame.png", false},
		{"annotations.json", false},
		{"clip.mp4", true},
		{"clip.MOV", true},
		{"clip.webm", true},
		{"clip.mkv", true},
		{"clip.avi", true},
		{"archive.mp4.txt", false},
		{"noext", false},
	}
	for _, tc := range cases {
		_, isVideo := Classify(tc.path).(VideoSource)
		if isVideo != tc.video {
			t.Errorf("Classify(%q): video = %v, want %v", tc.path, isVideo, tc.video)
		}
	}
}

func TestImageSourceIgnoresFrameRate(t *testing.T) {
	items := ImageSource{Path: "/data/a.jpg"}.Items(30)
	if len(items) != 1 {
		t.Fatalf("expected a single item, got %d", len(items))
	}
	if items[0].Type != api.ItemImage || items[0].FrameRate != 0 {
		t.Errorf("unexpected item: %+v", items[0])
	}
	if items[0].Name != "a.jpg" {
		t.Errorf("unexpected name: %q", items[0].Name)
	}
}

func TestVideoSourceCarriesFrameRate(t *testing.T) {
	items := VideoSource{Path: "/data/clip.mp4"}.Items(2.5)
	if len(items) != 1 {
		t.Fatalf("expected a single item, got %d", len(items))
	}
	if items[0].Type != api.ItemVideo || items[0].FrameRate != 2.5 {
		t.Errorf("unexpected item: %+v", items[0])
	}
}
