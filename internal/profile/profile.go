// Package profile holds the portfolio content shown next to the games.
package profile

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed profile.toml
var defaultProfile string

// Profile is the portfolio owner and their work.
type Profile struct {
	Name       string       `toml:"name" json:"name"`
	Headline   string       `toml:"headline" json:"headline"`
	Location   string       `toml:"location" json:"location"`
	Email      string       `toml:"email" json:"email"`
	GitHub     string       `toml:"github" json:"github"`
	LinkedIn   string       `toml:"linkedin" json:"linkedin"`
	Experience []Experience `toml:"experience" json:"experience"`
	Skills     []Skill      `toml:"skill" json:"skills"`
	Projects   []Project    `toml:"project" json:"projects"`
}

// Project is one gallery entry.
type Project struct {
	ID          string   `toml:"id" json:"id"`
	Title       string   `toml:"title" json:"title"`
	Description string   `toml:"description" json:"description"`
	Tags        []string `toml:"tags" json:"tags"`
	ImageURL    string   `toml:"image-url" json:"imageUrl"`
	IOSURL      string   `toml:"ios-url" json:"iosUrl,omitempty"`
	AndroidURL  string   `toml:"android-url" json:"androidUrl,omitempty"`
	WebURL      string   `toml:"web-url" json:"webUrl,omitempty"`
}

// Experience is one work-history entry.
type Experience struct {
	Company     string   `toml:"company" json:"company"`
	Role        string   `toml:"role" json:"role"`
	Period      string   `toml:"period" json:"period"`
	Description []string `toml:"description" json:"description"`
	Current     bool     `toml:"current" json:"isCurrent,omitempty"`
}

// Skill is a named proficiency from 0 to 100.
type Skill struct {
	Name  string `toml:"name" json:"name"`
	Icon  string `toml:"icon" json:"icon"`
	Level int    `toml:"level" json:"level"`
}

// Default returns the built-in profile.
func Default() (Profile, error) {
	return Parse(defaultProfile)
}

// Load reads a profile from path, or the built-in one when path is empty.
func Load(path string) (Profile, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}
	return Parse(string(data))
}

// Parse decodes and validates TOML profile content.
func Parse(data string) (Profile, error) {
	var p Profile
	if _, err := toml.Decode(data, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks required fields and skill ranges.
func (p Profile) Validate() error {
	var errs []error
	if p.Name == "" {
		errs = append(errs, errors.New("profile name is required"))
	}
	for i, proj := range p.Projects {
		if proj.Title == "" {
			errs = append(errs, fmt.Errorf("project %d has no title", i+1))
		}
	}
	for _, s := range p.Skills {
		if s.Level < 0 || s.Level > 100 {
			errs = append(errs, fmt.Errorf("skill %q level %d is outside 0-100", s.Name, s.Level))
		}
	}
	return errors.Join(errs...)
}

// Current returns the entry marked as the current role, if any.
func (p Profile) Current() (Experience, bool) {
	for _, e := range p.Experience {
		if e.Current {
			return e, true
		}
	}
	return Experience{}, false
}
