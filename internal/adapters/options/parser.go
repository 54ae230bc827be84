// Package options implements option parsing with spf13/pflag.
package options

import (
	"errors"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"go.trai.ch/prism/internal/core/domain"
	"go.trai.ch/prism/internal/core/ports"
	"go.trai.ch/zerr"
)

// Factory creates pflag-backed parsers.
type Factory struct{}

// NewFactory returns a parser factory.
func NewFactory() *Factory {
	return &Factory{}
}

// New implements ports.OptionsParserFactory.
func (f *Factory) New(groups []domain.OptionGroup) (ports.OptionsParser, error) {
	return NewParser(groups)
}

// Parser parses --name=value style arguments against a fixed schema.
type Parser struct {
	fs      *pflag.FlagSet
	defs    map[string]domain.OptionDefinition
	groupOf map[string]string
}

// NewParser builds a parser for the given option groups.
// Declaring the same option twice is an error.
func NewParser(groups []domain.OptionGroup) (*Parser, error) {
	fs := pflag.NewFlagSet("prism", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	p := &Parser{
		fs:      fs,
		defs:    make(map[string]domain.OptionDefinition),
		groupOf: make(map[string]string),
	}

	for _, group := range groups {
		for _, def := range group.Options {
			if _, dup := p.defs[def.Name]; dup {
				return nil, zerr.With(domain.WithMeta(domain.ErrInvalidOption, "option", def.Name), "reason", "declared twice")
			}
			if err := p.register(def); err != nil {
				return nil, err
			}
			p.defs[def.Name] = def
			p.groupOf[def.Name] = group.Name
		}
	}
	return p, nil
}

func (p *Parser) register(def domain.OptionDefinition) error {
	switch def.Type {
	case domain.OptionBool:
		value := false
		if def.Default != "" {
			parsed, err := strconv.ParseBool(def.Default)
			if err != nil {
				return invalidOption(def.Name, err)
			}
			value = parsed
		}
		p.fs.Bool(def.Name, value, def.Usage)
		neg := p.fs.VarPF(&negatedBool{fs: p.fs, name: def.Name}, "no"+def.Name, "", "")
		neg.NoOptDefVal = "true"
		neg.Hidden = true
	case domain.OptionInt:
		value := 0
		if def.Default != "" {
			parsed, err := strconv.Atoi(def.Default)
			if err != nil {
				return invalidOption(def.Name, err)
			}
			value = parsed
		}
		p.fs.Int(def.Name, value, def.Usage)
	case domain.OptionList:
		var value []string
		if def.Default != "" {
			value = strings.Split(def.Default, ",")
		}
		p.fs.StringSlice(def.Name, value, def.Usage)
	default:
		if len(def.Allowed) > 0 {
			p.fs.Var(&enumValue{value: def.Default, allowed: def.Allowed}, def.Name, def.Usage)
		} else {
			p.fs.String(def.Name, def.Default, def.Usage)
		}
	}
	return nil
}

// Parse implements ports.OptionsParser.
func (p *Parser) Parse(args ...string) error {
	if err := p.fs.Parse(args); err != nil {
		return errors.Join(domain.ErrInvalidOption, err)
	}
	if p.fs.NArg() > 0 {
		return domain.WithMeta(domain.ErrInvalidOption, "unexpected_argument", p.fs.Arg(0))
	}
	return nil
}

// Value implements ports.OptionsParser. List values are comma joined.
func (p *Parser) Value(name string) (string, bool) {
	f := p.fs.Lookup(name)
	if f == nil || f.Hidden {
		return "", false
	}
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		return strings.Join(sv.GetSlice(), ","), true
	}
	return f.Value.String(), true
}

// Set implements ports.OptionsParser. Setting a list option replaces its values.
func (p *Parser) Set(name, value string) error {
	f := p.fs.Lookup(name)
	if f == nil || f.Hidden {
		return domain.WithMeta(domain.ErrInvalidOption, "option", name)
	}
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		var items []string
		if value != "" {
			items = strings.Split(value, ",")
		}
		if err := sv.Replace(items); err != nil {
			return invalidOption(name, err)
		}
		f.Changed = true
		return nil
	}
	if err := p.fs.Set(name, value); err != nil {
		return invalidOption(name, err)
	}
	return nil
}

// Reset implements ports.OptionsParser.
func (p *Parser) Reset(name string) error {
	f := p.fs.Lookup(name)
	if f == nil || f.Hidden {
		return domain.WithMeta(domain.ErrInvalidOption, "option", name)
	}
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		var items []string
		if f.DefValue != "[]" {
			items = strings.Split(strings.Trim(f.DefValue, "[]"), ",")
		}
		if err := sv.Replace(items); err != nil {
			return invalidOption(name, err)
		}
	} else if err := f.Value.Set(f.DefValue); err != nil {
		return invalidOption(name, err)
	}
	f.Changed = false
	return nil
}

// IsExplicit implements ports.OptionsParser.
func (p *Parser) IsExplicit(name string) bool {
	f := p.fs.Lookup(name)
	return f != nil && f.Changed
}

// Definitions returns every declared option in declaration order.
func (p *Parser) Definitions() []domain.OptionDefinition {
	out := make([]domain.OptionDefinition, 0, len(p.defs))
	p.fs.VisitAll(func(f *pflag.Flag) {
		if def, ok := p.defs[f.Name]; ok {
			out = append(out, def)
		}
	})
	return out
}

// Bundle implements ports.OptionsParser.
func (p *Parser) Bundle() (*domain.OptionsBundle, error) {
	b := &domain.OptionsBundle{Fragments: make(map[string]string)}
	var err error

	for name := range p.defs {
		switch name {
		case domain.OptionVerboseFailures:
			b.Execution.VerboseFailures, err = p.fs.GetBool(name)
		case domain.OptionJobs:
			b.Execution.Jobs, err = p.fs.GetInt(name)
		case domain.OptionPackagePath:
			b.PackageCache.PackagePath, err = p.fs.GetStringSlice(name)
		case domain.OptionDefaultVisibility:
			b.PackageCache.DefaultVisibility, _ = p.Value(name)
		case domain.OptionMultiCPU:
			b.BuildRequest.MultiCPU, err = p.fs.GetStringSlice(name)
		case domain.OptionKeepGoing:
			b.View.KeepGoing, err = p.fs.GetBool(name)
		case domain.OptionLoadingPhaseThreads:
			b.View.LoadingPhaseThreads, err = p.fs.GetInt(name)
		case domain.OptionAnalysisWarnings:
			b.View.AnalysisWarningsAsErrors, err = p.fs.GetBool(name)
		default:
			b.Fragments[name], _ = p.Value(name)
		}
		if err != nil {
			return nil, invalidOption(name, err)
		}
	}

	p.fs.Visit(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			for _, item := range sv.GetSlice() {
				b.Args = append(b.Args, "--"+f.Name+"="+item)
			}
			return
		}
		b.Args = append(b.Args, "--"+f.Name+"="+f.Value.String())
	})
	return b, nil
}

func invalidOption(name string, err error) error {
	return zerr.With(errors.Join(domain.ErrInvalidOption, err), "option", name)
}

// enumValue is a string option restricted to a set of values.
type enumValue struct {
	value   string
	allowed []string
}

func (e *enumValue) String() string { return e.value }

func (e *enumValue) Set(v string) error {
	if !slices.Contains(e.allowed, v) {
		return zerr.With(domain.WithMeta(domain.ErrInvalidOption, "value", v), "allowed", strings.Join(e.allowed, ","))
	}
	e.value = v
	return nil
}

func (e *enumValue) Type() string { return "string" }

// negatedBool implements the --noname form of a boolean option.
type negatedBool struct {
	fs   *pflag.FlagSet
	name string
}

func (n *negatedBool) String() string { return "false" }

func (n *negatedBool) Set(v string) error {
	set, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	return n.fs.Set(n.name, strconv.FormatBool(!set))
}

func (n *negatedBool) Type() string { return "bool" }

func (n *negatedBool) IsBoolFlag() bool { return true }
