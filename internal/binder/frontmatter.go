package binder

import (
	"bytes"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/quire/internal/outline"
)

var frontMatterRe = regexp.MustCompile(`(?s)\A---\r?\n(?:(.*?)\r?\n)?---[ \t]*(?:\r?\n|\z)`)

// frontMatter is the metadata block of a document, or the whole of a folder's
// _folder.yaml.
type frontMatter struct {
	Title    string     `yaml:"title"`
	Synopsis string     `yaml:"synopsis"`
	Status   string     `yaml:"status"`
	Label    *labelYAML `yaml:"label"`
	Modified string     `yaml:"modified"`
	Order    []string   `yaml:"order"`
}

// labelYAML accepts both `label: Scene` and `label: {name: Scene, color: "#f00"}`.
type labelYAML struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

func (l *labelYAML) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		l.Name = strings.TrimSpace(value.Value)
		return nil
	}
	type plain labelYAML
	var raw plain
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*l = labelYAML(raw)
	return nil
}

// splitFrontMatter separates a leading --- fenced YAML block from the body.
func splitFrontMatter(src []byte) (front, body []byte, found bool) {
	loc := frontMatterRe.FindSubmatchIndex(src)
	if loc == nil {
		return nil, src, false
	}
	if loc[2] >= 0 {
		front = src[loc[2]:loc[3]]
	}
	return front, src[loc[1]:], true
}

func parseFrontMatter(front []byte) (frontMatter, error) {
	var fm frontMatter
	if len(bytes.TrimSpace(front)) == 0 {
		return fm, nil
	}
	err := yaml.Unmarshal(front, &fm)
	return fm, err
}

// mergeMetadata writes md into the YAML mapping held in front, keeping keys
// it does not manage and their order. The modified key is left to the author.
func mergeMetadata(front []byte, md outline.Metadata) ([]byte, error) {
	var doc yaml.Node
	if len(bytes.TrimSpace(front)) > 0 {
		if err := yaml.Unmarshal(front, &doc); err != nil {
			return nil, err
		}
	}

	var mapping *yaml.Node
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 && doc.Content[0].Kind == yaml.MappingNode {
		mapping = doc.Content[0]
	} else {
		mapping = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{mapping}}
	}

	setString(mapping, "synopsis", md.Synopsis)

	status := ""
	if md.Status != outline.StatusNone {
		status = md.Status.String()
	}
	setString(mapping, "status", status)

	if md.Label == nil || md.Label.Name == "" {
		deleteKey(mapping, "label")
	} else {
		label := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		setString(label, "name", md.Label.Name)
		setString(label, "color", md.Label.Color)
		setNode(mapping, "label", label)
	}

	return yaml.Marshal(&doc)
}

func setString(mapping *yaml.Node, key, value string) {
	if value == "" {
		deleteKey(mapping, key)
		return
	}
	setNode(mapping, key, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value})
}

func setNode(mapping *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = value
			return
		}
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}

func deleteKey(mapping *yaml.Node, key string) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content = append(mapping.Content[:i], mapping.Content[i+2:]...)
			return
		}
	}
}
