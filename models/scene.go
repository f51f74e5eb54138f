package models

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Scene is a target environment for product visualization
type Scene struct {
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
}

// SceneStudio is the local no-op scene that restores the original image
var SceneStudio = Scene{Name: "Studio", Prompt: "professional studio"}

// Scenes lists the available environments in display order
var Scenes = []Scene{
	SceneStudio,
	{Name: "Urban", Prompt: "busy New York city street"},
	{Name: "Nature", Prompt: "serene misty pine forest"},
	{Name: "Nightlife", Prompt: "modern rooftop bar at night with neon lights"},
}

// ParseScene resolves a case-insensitive scene name
func ParseScene(raw string) (Scene, error) {
	trimmed := strings.TrimSpace(raw)
	for _, s := range Scenes {
		if strings.EqualFold(s.Name, trimmed) {
			return s, nil
		}
	}
	return Scene{}, fmt.Errorf("unknown scene %q", raw)
}

// IsStudio reports whether the scene is the local no-op
func (s Scene) IsStudio() bool {
	return s.Name == SceneStudio.Name
}

// SceneResult is the decoded outcome of a visualization request:
// either an image was found or there was none.
type SceneResult struct {
	Found    bool
	Data     []byte
	MimeType string
}

// ImageFound builds a result carrying a generated image
func ImageFound(data []byte, mimeType string) SceneResult {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return SceneResult{Found: true, Data: data, MimeType: mimeType}
}

// NoImage is the fallback result
func NoImage() SceneResult {
	return SceneResult{}
}

// DataURI encodes the image for direct display, or "" when no image was found
func (r SceneResult) DataURI() string {
	if !r.Found {
		return ""
	}
	return fmt.Sprintf("data:%s;base64,%s", r.MimeType, base64.StdEncoding.EncodeToString(r.Data))
}

// SceneState is the lifecycle of one visualization request
type SceneState string

const (
	SceneStateIdle       SceneState = "idle"
	SceneStateRequesting SceneState = "requesting"
	SceneStateSucceeded  SceneState = "succeeded"
	SceneStateFellBack   SceneState = "fell_back"
)

// SceneRequest example: {"place": "Urban"}
type SceneRequest struct {
	Place string `json:"place"`
}

// SceneView is the scene switcher as rendered for one product
type SceneView struct {
	ProductID     string     `json:"productId"`
	ProductName   string     `json:"productName"`
	OriginalImage string     `json:"originalImage"`
	CurrentImage  string     `json:"currentImage"`
	ActivePlace   string     `json:"activePlace"`
	State         SceneState `json:"state"`
	Loading       bool       `json:"loading"`
	Places        []Scene    `json:"places"`
}
