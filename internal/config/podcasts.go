package config

import (
	"fmt"
	"maps"

	"github.com/handiism/podcast-archiver/internal/model"
	"gopkg.in/yaml.v3"
)

// PodcastSettings is the configuration of one podcast.
type PodcastSettings struct {
	// Key is the podcast's name in the config file.
	Key string `yaml:"-"`

	Feed string `yaml:"feed"`
	Keep int    `yaml:"keep"`

	// Author and Genre override the feed when set.
	Author *string     `yaml:"author"`
	Genre  *StringList `yaml:"genre"`

	// Extra holds every other key, copied verbatim onto the podcast.
	Extra map[string]any `yaml:",inline"`
}

// Overrides converts the settings to model overrides.
func (p PodcastSettings) Overrides() model.Overrides {
	o := model.Overrides{
		Author:     p.Author,
		Keep:       p.Keep,
		Attributes: maps.Clone(p.Extra),
	}
	if p.Genre != nil {
		genre := []string(*p.Genre)
		o.Genre = &genre
	}
	return o
}

// PodcastList keeps podcasts in file order.
type PodcastList []PodcastSettings

// UnmarshalYAML decodes a mapping of name to settings without losing order.
func (l *PodcastList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: podcasts must be a mapping of name to settings", node.Line)
	}

	list := make(PodcastList, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		var settings PodcastSettings
		if err := valueNode.Decode(&settings); err != nil {
			return fmt.Errorf("podcast %q: %w", keyNode.Value, err)
		}
		settings.Key = keyNode.Value
		list = append(list, settings)
	}

	*l = list
	return nil
}

// StringList accepts either a YAML sequence or a single scalar.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = StringList{node.Value}
		return nil
	case yaml.SequenceNode:
		var values []string
		if err := node.Decode(&values); err != nil {
			return err
		}
		*s = StringList(values)
		return nil
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings", node.Line)
	}
}
