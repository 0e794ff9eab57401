package value

import (
	"errors"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// maxYAMLNodes bounds the nodes a YAML document may expand to once aliases
// are resolved.
const maxYAMLNodes = 1 << 20

// ErrDocumentTooLarge is returned for YAML whose aliases expand past
// maxYAMLNodes.
var ErrDocumentTooLarge = errors.New("value: document too large")

// yamlDecoder turns a yaml.Node tree into values, counting every node it
// produces so nested aliases cannot blow up.
type yamlDecoder struct {
	c     *codecConfig
	nodes int
}

// ParseYAMLObject decodes a YAML profile document. Key order is kept.
func ParseYAMLObject(data []byte) (*Object, error) {
	return parseYAML(data, newCodecConfig(nil))
}

// ParseYAMLPatch decodes a YAML patch document, turning marker texts into
// Marker nodes.
func ParseYAMLPatch(data []byte, opts ...CodecOption) (*Object, error) {
	c := newCodecConfig(opts)
	c.markers = true
	return parseYAML(data, c)
}

func parseYAML(data []byte, c *codecConfig) (*Object, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("value: parse yaml: %w", err)
	}
	d := &yamlDecoder{c: c}
	v, err := d.fromNode(&root)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotObject, v.Kind())
	}
	return obj, nil
}

func (d *yamlDecoder) fromNode(n *yaml.Node) (Value, error) {
	d.nodes++
	if d.nodes > maxYAMLNodes {
		return nil, fmt.Errorf("%w: more than %d nodes after alias expansion", ErrDocumentTooLarge, maxYAMLNodes)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null{}, nil
		}
		return d.fromNode(n.Content[0])
	case yaml.AliasNode:
		return d.fromNode(n.Alias)
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("value: line %d: mapping key must be a scalar", k.Line)
			}
			item, err := d.fromNode(v)
			if err != nil {
				return nil, err
			}
			obj.Set(k.Value, item)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := &Array{items: make([]Value, 0, len(n.Content))}
		for _, child := range n.Content {
			item, err := d.fromNode(child)
			if err != nil {
				return nil, err
			}
			arr.Append(item)
		}
		return arr, nil
	case yaml.ScalarNode:
		return fromScalar(n, d.c)
	}
	return nil, fmt.Errorf("value: line %d: unsupported yaml node", n.Line)
}

func fromScalar(n *yaml.Node, c *codecConfig) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("value: line %d: %w", n.Line, err)
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return fromInt64(i), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("value: line %d: %w", n.Line, err)
		}
		return Double(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("value: line %d: %w", n.Line, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: line %d: %v", ErrUnsupportedValue, n.Line, f)
		}
		return Double(f), nil
	}
	// Strings, timestamps and anything else stay as their source text.
	return decodeString(n.Value, c), nil
}
