package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to the scene file (json type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const builtinGroup = "Built-in Scenes"

var builtinScenes = []SceneInfo{
	{
		ID:          "default",
		DisplayName: "Default Scene",
		Description: "Red sphere above a gray ground sphere, one light",
		Group:       builtinGroup,
		Type:        "builtin",
	},
	{
		ID:          "interactive",
		DisplayName: "Interactive Scene",
		Description: "User-placed sphere and light with reset defaults",
		Group:       builtinGroup,
		Type:        "builtin",
	},
}

// NewBuiltinScene creates a built-in scene by ID
func NewBuiltinScene(id string) (*Scene, bool) {
	switch id {
	case "default":
		return NewDefaultScene(), true
	case "interactive":
		return NewParamsScene(DefaultParams()), true
	}
	return nil, false
}

// CreateScene resolves a scene name: a built-in ID, a path to a JSON file,
// or the name of a JSON file in a scenes directory
func CreateScene(name string) (*Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("scene name is empty")
	}
	if s, ok := NewBuiltinScene(name); ok {
		return s, nil
	}
	if strings.HasSuffix(name, ".json") {
		return LoadScene(name)
	}
	if dir := findScenesDir(); dir != "" {
		path := filepath.Join(dir, name+".json")
		if _, err := os.Stat(path); err == nil {
			return LoadScene(path)
		}
	}
	return nil, fmt.Errorf("unknown scene: %s", name)
}

// ListJSONScenes scans dir (or the default scenes directory when dir is empty)
// and returns the discovered JSON scenes
func ListJSONScenes(dir string) ([]SceneInfo, error) {
	if dir == "" {
		dir = findScenesDir()
	}
	if dir == "" {
		// No scenes directory found, return empty list
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		d, err := Load(filePath)
		if err != nil {
			// Log warning but continue processing other files
			fmt.Printf("Warning: failed to read scene %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfoFor(filePath, d))
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ListAllScenes returns both built-in and JSON scenes, built-in group first
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	jsonScenes, err := ListJSONScenes(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list JSON scenes: %w", err)
	}

	response.Groups = append(response.Groups, SceneGroup{
		Name:   builtinGroup,
		Scenes: append([]SceneInfo(nil), builtinScenes...),
	})
	if len(jsonScenes) > 0 {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   "Scene Files",
			Scenes: jsonScenes,
		})
	}

	return response, nil
}

func sceneInfoFor(filePath string, d *Description) SceneInfo {
	nameWithoutExt := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))

	info := SceneInfo{
		ID:          nameWithoutExt,
		DisplayName: titleCase(nameWithoutExt),
		Description: d.Description,
		Group:       "Scene Files",
		Type:        "json",
		FilePath:    filePath,
	}
	if d.Name != "" {
		info.DisplayName = d.Name
	}
	return info
}

func findScenesDir() string {
	// Try different possible paths for scenes directory
	for _, path := range []string{"scenes", "../scenes"} {
		if st, err := os.Stat(path); err == nil && st.IsDir() {
			return path
		}
	}
	return ""
}

// titleCase converts a filename-style string to title case
// e.g., "two-lights" -> "Two Lights"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
