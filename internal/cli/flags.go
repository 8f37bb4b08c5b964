package cli

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/aidanlsb/agendalink/internal/dates"
	"github.com/aidanlsb/agendalink/internal/source"
)

// dateFormatValue is a pflag.Value that only accepts the supported date modes.
type dateFormatValue struct {
	format dates.Format
}

var _ pflag.Value = (*dateFormatValue)(nil)

func (v *dateFormatValue) String() string { return string(v.format) }

func (v *dateFormatValue) Set(s string) error {
	f, err := dates.ParseFormat(s)
	if err != nil {
		return err
	}
	v.format = f
	return nil
}

func (v *dateFormatValue) Type() string { return "format" }

// sourceFormatValue is a pflag.Value for --from.
type sourceFormatValue struct {
	format source.Format
}

var _ pflag.Value = (*sourceFormatValue)(nil)

func (v *sourceFormatValue) String() string { return string(v.format) }

func (v *sourceFormatValue) Set(s string) error {
	f, err := source.ParseFormat(s)
	if err != nil {
		return err
	}
	v.format = f
	return nil
}

func (v *sourceFormatValue) Type() string { return "format" }

// formatChoices renders a flag usage suffix like "(text|markdown|ics)".
func formatChoices[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return "(" + strings.Join(parts, "|") + ")"
}

// flagChanged reports whether name was set explicitly on fs.
func flagChanged(fs *pflag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	return f != nil && f.Changed
}
