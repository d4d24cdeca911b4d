// Package specfile builds a clasp.Parser from a declarative definition
// file, so a host program can keep its command tree next to its other
// configuration instead of in code. YAML, TOML, and JSON are supported;
// Load picks the codec from the file extension.
package specfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dzonerzy/go-clasp/clasp"
)

// File is the top-level definition: the root scope plus the parser
// display name and the auto-help switch.
type File struct {
	Name        string       `yaml:"name" toml:"name" json:"name"`
	Help        string       `yaml:"help" toml:"help" json:"help"`
	AutoHelp    bool         `yaml:"auto_help" toml:"auto_help" json:"auto_help"`
	Passthrough bool         `yaml:"passthrough" toml:"passthrough" json:"passthrough"`
	Args        []ArgDef     `yaml:"args" toml:"args" json:"args"`
	Commands    []CommandDef `yaml:"commands" toml:"commands" json:"commands"`
}

// CommandDef describes one command node.
type CommandDef struct {
	Aliases     []string     `yaml:"aliases" toml:"aliases" json:"aliases"`
	Help        string       `yaml:"help" toml:"help" json:"help"`
	Passthrough bool         `yaml:"passthrough" toml:"passthrough" json:"passthrough"`
	Args        []ArgDef     `yaml:"args" toml:"args" json:"args"`
	Commands    []CommandDef `yaml:"commands" toml:"commands" json:"commands"`
}

// ArgDef describes one argument. Pointer fields distinguish "absent"
// from a zero value, mirroring the builder's tri-state knobs.
type ArgDef struct {
	Aliases   []string `yaml:"aliases" toml:"aliases" json:"aliases"`
	Help      string   `yaml:"help" toml:"help" json:"help"`
	Required  *bool    `yaml:"required" toml:"required" json:"required"`
	Repeat    bool     `yaml:"repeat" toml:"repeat" json:"repeat"`
	RepeatMin *int     `yaml:"repeat_min" toml:"repeat_min" json:"repeat_min"`
	RepeatMax *int     `yaml:"repeat_max" toml:"repeat_max" json:"repeat_max"`
	Defaults  []string `yaml:"defaults" toml:"defaults" json:"defaults"`
	Flag      bool     `yaml:"flag" toml:"flag" json:"flag"`
	FlagValue string   `yaml:"flag_value" toml:"flag_value" json:"flag_value"`
	Stop      bool     `yaml:"stop" toml:"stop" json:"stop"`
	Choices   []string `yaml:"choices" toml:"choices" json:"choices"`
	Match     string   `yaml:"match" toml:"match" json:"match"`
}

// Load reads path and builds the parser; .yaml/.yml, .toml, and .json
// extensions are recognized.
func Load(path string) (*clasp.Parser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".toml":
		return FromTOML(data)
	case ".json":
		return FromJSON(data)
	default:
		return nil, fmt.Errorf("specfile: unsupported extension %q", filepath.Ext(path))
	}
}

// FromYAML builds a parser from a YAML definition.
func FromYAML(data []byte) (*clasp.Parser, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("specfile: %w", err)
	}
	return build(&f)
}

// FromTOML builds a parser from a TOML definition.
func FromTOML(data []byte) (*clasp.Parser, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("specfile: %w", err)
	}
	return build(&f)
}

// FromJSON builds a parser from a JSON definition.
func FromJSON(data []byte) (*clasp.Parser, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("specfile: %w", err)
	}
	return build(&f)
}

func build(f *File) (*clasp.Parser, error) {
	b := clasp.New(f.Name)
	if f.Help != "" {
		b.Help(f.Help)
	}
	if f.AutoHelp {
		b.AutoHelp()
	}
	if f.Passthrough {
		b.Passthrough()
	}
	for i := range f.Args {
		b.Arg(argBuilder(&f.Args[i]))
	}
	for i := range f.Commands {
		b.Command(commandBuilder(&f.Commands[i]))
	}
	return b.Build()
}

func commandBuilder(cd *CommandDef) *clasp.CommandBuilder {
	cb := clasp.NewCommand(cd.Aliases...)
	if cd.Help != "" {
		cb.Help(cd.Help)
	}
	if cd.Passthrough {
		cb.Passthrough()
	}
	for i := range cd.Args {
		cb.Arg(argBuilder(&cd.Args[i]))
	}
	for i := range cd.Commands {
		cb.Command(commandBuilder(&cd.Commands[i]))
	}
	return cb
}

func argBuilder(ad *ArgDef) *clasp.ArgBuilder {
	ab := clasp.NewArg(ad.Aliases...)
	if ad.Help != "" {
		ab.Help(ad.Help)
	}
	if ad.Required != nil {
		if *ad.Required {
			ab.Required()
		} else {
			ab.Optional()
		}
	}
	if ad.Repeat {
		ab.Repeat()
	}
	if ad.RepeatMin != nil {
		ab.MinRepeat(*ad.RepeatMin)
	}
	if ad.RepeatMax != nil {
		ab.MaxRepeat(*ad.RepeatMax)
	}
	if len(ad.Defaults) > 0 {
		ab.Default(ad.Defaults...)
	}
	if ad.Flag {
		ab.Flag()
	}
	if ad.FlagValue != "" {
		ab.FlagValue(ad.FlagValue)
	}
	if ad.Stop {
		ab.Stop()
	}
	if len(ad.Choices) > 0 {
		ab.Choices(ad.Choices...)
	}
	if ad.Match != "" {
		ab.Match(ad.Match)
	}
	return ab
}
