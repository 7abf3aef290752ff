package sink

import (
	"encoding/json"

	"github.com/matzehuels/arcslider/pkg/slider"
)

// Document is the JSON form of a widget's render instructions.
type Document struct {
	ContainerSelector string          `json:"container_selector,omitempty"`
	Viewport          slider.Viewport `json:"viewport"`
	Rotation          float64         `json:"rotation"`
	Interaction       string          `json:"interaction"`
	ActiveSlider      string          `json:"active_slider,omitempty"`
	Sliders           []SliderDoc     `json:"sliders"`
}

// SliderDoc describes one slider in a Document.
type SliderDoc struct {
	Config         slider.Config `json:"config"`
	BackgroundPath string        `json:"background_path"`
	Frame          slider.Frame  `json:"frame"`
}

// NewDocument captures the current state of c.
func NewDocument(c *slider.Controller, selector string) Document {
	center := c.Viewport().Center()
	doc := Document{
		ContainerSelector: selector,
		Viewport:          c.Viewport(),
		Rotation:          groupRotation,
		Interaction:       "idle",
		ActiveSlider:      c.ActiveID(),
	}
	if c.Dragging() {
		doc.Interaction = "dragging"
	}
	for _, s := range c.States() {
		doc.Sliders = append(doc.Sliders, SliderDoc{
			Config:         s.Config(),
			BackgroundPath: s.Background(center),
			Frame:          s.Frame(center),
		})
	}
	return doc
}

// RenderJSON renders the current state of c as indented JSON.
func RenderJSON(c *slider.Controller, selector string) ([]byte, error) {
	return json.MarshalIndent(NewDocument(c, selector), "", "  ")
}
