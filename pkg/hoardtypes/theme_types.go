// Package hoardtypes defines theme-related data structures for hoard's rendering.
// This file contains the types a theme YAML file is decoded into.
package hoardtypes

// ThemeConfig represents a theme configuration loaded from YAML.
type ThemeConfig struct {
	// Name is the theme identifier (e.g., "default", "plain")
	Name string `yaml:"name" json:"name"`

	// Description provides a brief description of the theme
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Styles contains the color and style definitions for different semantic elements
	Styles ThemeStyles `yaml:"styles" json:"styles"`
}

// ThemeStyles defines the styling configuration for the elements hoard renders.
type ThemeStyles struct {
	// Header style for table headers
	Header StyleConfig `yaml:"header" json:"header"`
	// Name style for command names
	Name StyleConfig `yaml:"name" json:"name"`
	// Namespace style for namespaces
	Namespace StyleConfig `yaml:"namespace" json:"namespace"`
	// Command style for command bodies
	Command StyleConfig `yaml:"command" json:"command"`
	// Border style for table borders
	Border StyleConfig `yaml:"border" json:"border"`

	Success   StyleConfig `yaml:"success" json:"success"`
	Error     StyleConfig `yaml:"error" json:"error"`
	Warning   StyleConfig `yaml:"warning" json:"warning"`
	Info      StyleConfig `yaml:"info" json:"info"`
	Highlight StyleConfig `yaml:"highlight" json:"highlight"`
	Bold      StyleConfig `yaml:"bold" json:"bold"`
}

// StyleConfig defines the visual styling for a semantic element.
// It supports both simple color specifications and adaptive colors for light/dark terminals.
type StyleConfig struct {
	// Foreground color - can be hex color, named color, or adaptive color object
	Foreground interface{} `yaml:"foreground,omitempty" json:"foreground,omitempty"`

	// Background color - can be hex color, named color, or adaptive color object
	Background interface{} `yaml:"background,omitempty" json:"background,omitempty"`

	Bold      *bool `yaml:"bold,omitempty" json:"bold,omitempty"`
	Italic    *bool `yaml:"italic,omitempty" json:"italic,omitempty"`
	Underline *bool `yaml:"underline,omitempty" json:"underline,omitempty"`
}
