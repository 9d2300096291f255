package report

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// writeJSON goes through a YAML node so that NaN and infinite statistics become null
// and fields keep the order of their yaml tags.
func writeJSON(w io.Writer, v any) error {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return errors.Wrap(err, "unable to encode value")
	}

	var compact bytes.Buffer
	if err := nodeJSON(&compact, &node); err != nil {
		return err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return errors.Wrap(err, "unable to indent json")
	}
	out.WriteByte('\n')

	_, err := out.WriteTo(w)

	return errors.Wrap(err, "unable to write json")
}

func nodeJSON(buf *bytes.Buffer, node *yaml.Node) error {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			buf.WriteString("null")

			return nil
		}

		return nodeJSON(buf, node.Content[0])
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(node.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(buf, node.Content[i].Value); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := nodeJSON(buf, node.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, child := range node.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := nodeJSON(buf, child); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case yaml.AliasNode:
		return nodeJSON(buf, node.Alias)
	case yaml.ScalarNode:
		return scalarJSON(buf, node)
	default:
		return errors.Errorf("unsupported yaml node kind %d", node.Kind)
	}

	return nil
}

func scalarJSON(buf *bytes.Buffer, node *yaml.Node) error {
	switch node.ShortTag() {
	case "!!null":
		buf.WriteString("null")
	case "!!bool":
		b, err := strconv.ParseBool(node.Value)
		if err != nil {
			return errors.Wrapf(err, "invalid bool %q", node.Value)
		}
		buf.WriteString(strconv.FormatBool(b))
	case "!!int":
		if _, err := strconv.ParseInt(node.Value, 10, 64); err != nil {
			return writeString(buf, node.Value)
		}
		buf.WriteString(node.Value)
	case "!!float":
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			buf.WriteString("null")

			return nil
		}
		raw, err := json.Marshal(f)
		if err != nil {
			return errors.Wrapf(err, "unable to encode %v", f)
		}
		buf.Write(raw)
	default:
		return writeString(buf, node.Value)
	}

	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return errors.Wrapf(err, "unable to encode %q", s)
	}
	buf.Write(raw)

	return nil
}
