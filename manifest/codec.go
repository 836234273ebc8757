package manifest

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// encodeManifest renders the visible parameters as YAML blocks, one per
// parameter in manifest order, each followed by a blank line. Properties
// still at their canonical defaults are omitted, except that a declared
// default is always emitted. Hidden parameters are dropped entirely, so
// the text form cannot recover them.
func encodeManifest(keys []string, body map[string]map[string]any) (string, error) {
	var b strings.Builder
	for _, name := range keys {
		p := body[name]
		if p[propHidden].(bool) {
			continue
		}

		props := &yaml.Node{Kind: yaml.MappingNode}

		if desc := p[propDescription].(string); desc != "" {
			appendPair(props, propDescription, strScalar(desc))
		}

		switch t := p[propType].(type) {
		case Kind:
			if t != KindString {
				appendPair(props, propType, strScalar(string(t)))
			}
		case []string:
			seq := &yaml.Node{Kind: yaml.SequenceNode}
			for _, member := range t {
				seq.Content = append(seq.Content, strScalar(member))
			}
			appendPair(props, propType, seq)
		}

		if p[propConstant].(bool) {
			appendPair(props, propConstant, boolScalar(true))
		}

		if d, ok := p[propDefault]; ok {
			var dn yaml.Node
			if err := dn.Encode(resolveDefault(d)); err != nil {
				return "", fmt.Errorf("parameter %q: cannot encode default: %v", name, err)
			}
			appendPair(props, propDefault, &dn)
		}

		if len(props.Content) == 0 {
			props.Style = yaml.FlowStyle
		}

		block := &yaml.Node{Kind: yaml.MappingNode}
		appendPair(block, name, props)

		out, err := yaml.Marshal(block)
		if err != nil {
			return "", fmt.Errorf("parameter %q: %v", name, err)
		}
		b.Write(out)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// decodeSchema parses the text form back into a raw schema description,
// preserving document order. Parameters written without properties come
// back as empty property maps.
func decodeSchema(text string) ([]string, map[string]any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, map[string]any{}, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return nil, map[string]any{}, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("top level must be a mapping of parameter names")
	}

	keys := make([]string, 0, len(root.Content)/2)
	raw := make(map[string]any, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		props := map[string]any{}
		val := root.Content[i+1]
		if val.Tag != "!!null" {
			if err := val.Decode(&props); err != nil {
				return nil, nil, fmt.Errorf("parameter %q: %v", name, err)
			}
		}
		if _, dup := raw[name]; !dup {
			keys = append(keys, name)
		}
		raw[name] = props
	}
	return keys, raw, nil
}

func appendPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, strScalar(key), value)
}

func strScalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func boolScalar(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprint(b)}
}
