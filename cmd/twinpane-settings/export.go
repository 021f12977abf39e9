package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/twinpane/internal/jsonvalue"
)

// writeYAML renders doc as YAML, keeping member order.
func writeYAML(w io.Writer, doc jsonvalue.Value) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlNode(doc)); err != nil {
		return err
	}
	return enc.Close()
}

func yamlNode(v jsonvalue.Value) *yaml.Node {
	scalar := func(tag, value string) *yaml.Node {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
	}
	switch v.Kind() {
	case jsonvalue.Bool:
		b, _ := v.Bool()
		return scalar("!!bool", strconv.FormatBool(b))
	case jsonvalue.Int64, jsonvalue.UInt64:
		text, _ := jsonvalue.Serialize(v)
		return scalar("!!int", text)
	case jsonvalue.Double:
		text, _ := jsonvalue.Serialize(v)
		return scalar("!!float", text)
	case jsonvalue.String:
		s, _ := v.Str()
		return scalar("!!str", s)
	case jsonvalue.Array:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items() {
			n.Content = append(n.Content, yamlNode(item))
		}
		return n
	case jsonvalue.Object:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range v.Members() {
			n.Content = append(n.Content, scalar("!!str", m.Key), yamlNode(m.Value))
		}
		return n
	}
	return scalar("!!null", "null")
}

// writeTOML renders doc as TOML. TOML has no null, so null members and
// items are left out.
func writeTOML(w io.Writer, doc jsonvalue.Value) error {
	tree, ok := withoutNulls(doc.Interface()).(map[string]any)
	if !ok {
		return fmt.Errorf("toml output needs an object, not %s", doc.Kind())
	}
	data, err := toml.Marshal(tree)
	if err != nil {
		return fmt.Errorf("encoding toml: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func withoutNulls(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			if child != nil {
				out[k] = withoutNulls(child)
			}
		}
		return out
	case []any:
		out := make([]any, 0, len(t))
		for _, child := range t {
			if child != nil {
				out = append(out, withoutNulls(child))
			}
		}
		return out
	}
	return v
}
