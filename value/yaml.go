package value

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// FromYAML decodes YAML text into a Value. Mapping keys are validated like
// any other member name; mapping order follows the source document.
func FromYAML(data []byte) (Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return Value{}, err
	}
	if node.Kind == 0 || len(node.Content) == 0 {
		return Null(), nil
	}
	return fromYAMLNode(node.Content[0])
}

func fromYAMLNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := fromYAMLNode(item)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return Array(items...), nil
	case yaml.MappingNode:
		var m Map[Value]
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, err := ParseKey(n.Content[i].Value)
			if err != nil {
				return Value{}, err
			}
			v, err := fromYAMLNode(n.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			m.Set(key, v)
		}
		return Object(m), nil
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias)
	default:
		return Value{}, fmt.Errorf("value: unsupported yaml node kind %d", n.Kind)
	}
}

func fromYAMLScalar(n *yaml.Node) (Value, error) {
	switch n.Tag {
	case "!!null":
		return Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case "!!int", "!!float":
		return Number(json.Number(n.Value)), nil
	default:
		return String(n.Value), nil
	}
}
