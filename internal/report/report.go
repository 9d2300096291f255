// Package report renders results as aligned text, YAML or JSON.
package report

import (
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("unknown output format")

// Format is an output encoding.
type Format string

const (
	Text Format = "text"
	YAML Format = "yaml"
	JSON Format = "json"
)

// ParseFormat returns the format matching name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case Text, YAML, JSON:
		return f, nil
	}

	return "", errors.Wrapf(ErrUnknownFormat, "%q", name)
}

// Table is a value that can be printed as columns of text.
type Table interface {
	TableHeader() []string
	TableRows() [][]string
}

// Render writes v to w in the given format. In text format, values that are not a Table are written as YAML.
func Render(w io.Writer, format Format, v any) error {
	switch format {
	case Text:
		table, ok := v.(Table)
		if !ok {
			return writeYAML(w, v)
		}

		return writeTable(w, table)
	case YAML:
		return writeYAML(w, v)
	case JSON:
		return writeJSON(w, v)
	}

	return errors.Wrapf(ErrUnknownFormat, "%q", format)
}

func writeTable(w io.Writer, table Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if header := table.TableHeader(); len(header) > 0 {
		if _, err := io.WriteString(tw, strings.Join(header, "\t")+"\n"); err != nil {
			return errors.Wrap(err, "unable to write header")
		}
	}
	for _, row := range table.TableRows() {
		if _, err := io.WriteString(tw, strings.Join(row, "\t")+"\n"); err != nil {
			return errors.Wrap(err, "unable to write row")
		}
	}

	return errors.Wrap(tw.Flush(), "unable to flush table")
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "unable to encode yaml")
	}

	return errors.Wrap(enc.Close(), "unable to close yaml encoder")
}
