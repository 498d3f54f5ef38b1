package media

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSceneConfig(t *testing.T) {
	content := `{
		"scenes": {
			"2": {"type": "video", "path": "videos/intro.mp4"},
			"5": {"type": "image", "path": "images/alt.png"}
		}
	}`
	path := filepath.Join(t.TempDir(), "scene_config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	overrides, err := LoadSceneConfig(path)
	if err != nil {
		t.Fatalf("LoadSceneConfig failed: %v", err)
	}

	if len(overrides) != 2 {
		t.Fatalf("expected 2 overrides, got %d", len(overrides))
	}
	if o := overrides[2]; o.Kind != KindVideo || o.Source != "videos/intro.mp4" {
		t.Errorf("override 2 wrong: %+v", o)
	}
	if o := overrides[5]; o.Kind != KindImage {
		t.Errorf("override 5 wrong: %+v", o)
	}
}

func TestLoadSceneConfigMissingFile(t *testing.T) {
	overrides, err := LoadSceneConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing config should not be an error: %v", err)
	}
	if overrides != nil {
		t.Errorf("expected nil overrides, got %v", overrides)
	}
}

func TestLoadSceneConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad key", `{"scenes": {"abc": {"type": "video", "path": "x.mp4"}}}`},
		{"zero key", `{"scenes": {"0": {"type": "video", "path": "x.mp4"}}}`},
		{"bad type", `{"scenes": {"1": {"type": "gif", "path": "x.gif"}}}`},
		{"not json", `scenes:`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scene_config.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			if _, err := LoadSceneConfig(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDiscoverImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"10.png", "2_castle.jpg", "1.jpeg", "notes.txt", "cover.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	images, err := DiscoverImages(dir)
	if err != nil {
		t.Fatalf("DiscoverImages failed: %v", err)
	}

	want := []string{"1.jpeg", "2_castle.jpg", "10.png"}
	if len(images) != len(want) {
		t.Fatalf("expected %d images, got %v", len(want), images)
	}
	for i, w := range want {
		if filepath.Base(images[i]) != w {
			t.Errorf("image %d: expected %s, got %s", i, w, filepath.Base(images[i]))
		}
	}
}

func TestDiscoverTransitionSounds(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0.mp3", "3.wav", "theme.mp3", "x.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	sounds, err := DiscoverTransitionSounds(dir)
	if err != nil {
		t.Fatalf("DiscoverTransitionSounds failed: %v", err)
	}

	if len(sounds) != 2 {
		t.Fatalf("expected 2 sounds, got %v", sounds)
	}
	if filepath.Base(sounds[0]) != "0.mp3" || filepath.Base(sounds[3]) != "3.wav" {
		t.Errorf("unexpected sound map: %v", sounds)
	}
}

func TestDiscoverTransitionSoundsMissingDir(t *testing.T) {
	sounds, err := DiscoverTransitionSounds(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing directory should not be an error: %v", err)
	}
	if len(sounds) != 0 {
		t.Errorf("expected no sounds, got %v", sounds)
	}
}
