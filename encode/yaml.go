package encode

import (
	"fmt"
	"io"

	"github.com/410-dev/lks410-sdm/ir"

	"github.com/goccy/go-yaml"
)

func yamlOpts(es *EncState) []yaml.EncodeOption {
	n := es.indent
	if n <= 0 {
		n = 2
	}
	return []yaml.EncodeOption{yaml.Indent(n), yaml.IndentSequence(true)}
}

func encodeYAML(node *ir.Node, w io.Writer, es *EncState) error {
	v, err := ToYAML(node)
	if err != nil {
		return err
	}
	return writeYAML(v, w, es)
}

func encodeYAMLFields(keys []string, vals []*ir.Node, w io.Writer, es *EncState) error {
	ms := make(yaml.MapSlice, len(keys))
	for i, k := range keys {
		v, err := ToYAML(vals[i])
		if err != nil {
			return err
		}
		ms[i] = yaml.MapItem{Key: k, Value: v}
	}
	return writeYAML(ms, w, es)
}

func writeYAML(v any, w io.Writer, es *EncState) error {
	d, err := yaml.MarshalWithOptions(v, yamlOpts(es)...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	_, err = w.Write(d)
	return err
}

// ToYAML converts node to a value go-yaml encodes with object keys in node
// order.
func ToYAML(node *ir.Node) (any, error) {
	if node == nil {
		return nil, fmt.Errorf("%w: nil node", ErrEncoding)
	}
	switch node.Type {
	case ir.ObjectType:
		ms := make(yaml.MapSlice, len(node.Fields))
		for i, f := range node.Fields {
			v, err := ToYAML(node.Values[i])
			if err != nil {
				return nil, err
			}
			ms[i] = yaml.MapItem{Key: f, Value: v}
		}
		return ms, nil
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, e := range node.Values {
			v, err := ToYAML(e)
			if err != nil {
				return nil, err
			}
			res[i] = v
		}
		return res, nil
	case ir.StringType:
		return node.String, nil
	case ir.BoolType:
		return node.Bool, nil
	case ir.NullType:
		return nil, nil
	case ir.NumberType:
		if node.Int64 != nil {
			return *node.Int64, nil
		}
		if node.Float64 != nil {
			return *node.Float64, nil
		}
	}
	return nil, fmt.Errorf("%w: cannot encode %s as yaml", ErrEncoding, node.Type)
}
