package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/josephgoksu/FocusFlow/internal/llm"
)

// Keys lists every settable key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(defaults)+len(llm.APIKeyEnvVars))
	for k := range defaults {
		keys = append(keys, k)
	}
	for p := range llm.APIKeyEnvVars {
		keys = append(keys, "llm.apiKeys."+string(p))
	}
	sort.Strings(keys)
	return keys
}

// canonicalKey matches key case-insensitively against Keys.
func canonicalKey(key string) (string, bool) {
	for _, k := range Keys() {
		if strings.EqualFold(k, key) {
			return k, true
		}
	}
	return "", false
}

// IsSecretKey reports whether values of key should be masked when shown.
func IsSecretKey(key string) bool {
	return strings.Contains(strings.ToLower(key), "apikey") || strings.EqualFold(key, "store.dsn")
}

// SetValue writes key=value into the YAML file at path, creating it if needed.
// Other keys and their order are preserved. The value is decoded as a YAML
// scalar or flow sequence, so "true", "8787" and "[a, b]" keep their types.
func SetValue(fs afero.Fs, path, key, value string) error {
	canonical, ok := canonicalKey(key)
	if !ok {
		return fmt.Errorf("unknown config key %q (see `focusflow config keys`)", key)
	}

	doc, err := readDocument(fs, path)
	if err != nil {
		return err
	}

	var parsed yaml.Node
	if err := yaml.Unmarshal([]byte(value), &parsed); err != nil || len(parsed.Content) == 0 {
		parsed = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.ScalarNode, Value: value}}}
	}
	valueNode := parsed.Content[0]
	if IsSecretKey(canonical) {
		// Secrets are always strings, even when they look numeric.
		valueNode = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
	}

	setPath(doc.Content[0], strings.Split(canonical, "."), valueNode)

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return afero.WriteFile(fs, path, out, 0o600)
}

func readDocument(fs afero.Fs, path string) (*yaml.Node, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var doc yaml.Node
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
	}
	if doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("config %s: top level must be a mapping", path)
	}
	return &doc, nil
}

// setPath sets a nested mapping entry, creating intermediate mappings.
func setPath(m *yaml.Node, path []string, value *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if !strings.EqualFold(m.Content[i].Value, path[0]) {
			continue
		}
		if len(path) == 1 {
			m.Content[i+1] = value
			return
		}
		child := m.Content[i+1]
		if child.Kind != yaml.MappingNode {
			child = &yaml.Node{Kind: yaml.MappingNode}
			m.Content[i+1] = child
		}
		setPath(child, path[1:], value)
		return
	}

	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: path[0]}
	if len(path) == 1 {
		m.Content = append(m.Content, keyNode, value)
		return
	}
	child := &yaml.Node{Kind: yaml.MappingNode}
	m.Content = append(m.Content, keyNode, child)
	setPath(child, path[1:], value)
}
