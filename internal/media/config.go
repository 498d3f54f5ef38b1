package media

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// on-disk scene configuration overlay
type sceneConfigFile struct {
	Scenes map[string]sceneEntry `json:"scenes"`
}

type sceneEntry struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

// LoadSceneConfig reads the sparse override map from a scene_config.json
// file. A missing file is not an error: every scene just uses its default
// image.
func LoadSceneConfig(path string) (map[int]Override, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config: %w", err)
	}

	var file sceneConfigFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scene config: %w", err)
	}

	overrides := make(map[int]Override, len(file.Scenes))
	for key, entry := range file.Scenes {
		index, err := strconv.Atoi(key)
		if err != nil || index < 1 {
			return nil, fmt.Errorf("invalid scene key %q: expected a paragraph number", key)
		}

		var kind Kind
		switch strings.ToLower(entry.Type) {
		case "video":
			kind = KindVideo
		case "image":
			kind = KindImage
		default:
			return nil, fmt.Errorf("invalid scene type %q for scene %s", entry.Type, key)
		}

		overrides[index] = Override{Kind: kind, Source: entry.Path}
	}

	return overrides, nil
}

// DiscoverImages lists image files in a directory ordered by the numeric
// prefix of their filename (1.png, 2_castle.jpg, 10.jpeg, ...).
func DiscoverImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read images directory: %w", err)
	}

	type numbered struct {
		order int
		path  string
	}
	var images []numbered

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg", ".jpeg":
		default:
			continue
		}
		order, ok := numericPrefix(entry.Name())
		if !ok {
			continue
		}
		images = append(images, numbered{order: order, path: filepath.Join(dir, entry.Name())})
	}

	sort.Slice(images, func(i, j int) bool { return images[i].order < images[j].order })

	paths := make([]string, len(images))
	for i, img := range images {
		paths[i] = img.path
	}
	return paths, nil
}

// DiscoverTransitionSounds maps boundary positions to sound files from a
// directory of numbered audio files (0.mp3, 1.wav, ...). A missing
// directory yields an empty map.
func DiscoverTransitionSounds(dir string) (map[int]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read transition sounds directory: %w", err)
	}

	sounds := make(map[int]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".mp3", ".wav":
		default:
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		position, err := strconv.Atoi(stem)
		if err != nil || position < 0 {
			continue
		}
		sounds[position] = filepath.Join(dir, entry.Name())
	}

	return sounds, nil
}

// parses the leading number of a filename stem: "3.png" or "3_castle.png"
func numericPrefix(name string) (int, bool) {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if idx := strings.IndexAny(stem, "_-"); idx > 0 {
		stem = stem[:idx]
	}
	n, err := strconv.Atoi(stem)
	if err != nil {
		return 0, false
	}
	return n, true
}
