// Package policy enforces invocation policies on parsed build options.
package policy

import (
	"errors"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/prism/internal/core/domain"
	"go.trai.ch/prism/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.InvocationPolicy = (*Policy)(nil)

var (
	policyValidate *validator.Validate
	optionNameRe   = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
)

func init() {
	policyValidate = validator.New()
	_ = policyValidate.RegisterValidation("option_name", validateOptionName)
}

func validateOptionName(fl validator.FieldLevel) bool {
	return optionNameRe.MatchString(fl.Field().String())
}

// Rule is one entry of a policy file. Exactly one operation may be set.
type Rule struct {
	Flag       string   `yaml:"flag" validate:"required,option_name"`
	Allow      []string `yaml:"allow" validate:"omitempty,dive,required"`
	Disallow   []string `yaml:"disallow" validate:"omitempty,dive,required"`
	SetValue   *string  `yaml:"set_value"`
	UseDefault bool     `yaml:"use_default"`
}

func (r Rule) operations() int {
	n := 0
	if len(r.Allow) > 0 {
		n++
	}
	if len(r.Disallow) > 0 {
		n++
	}
	if r.SetValue != nil {
		n++
	}
	if r.UseDefault {
		n++
	}
	return n
}

// File is the on-disk policy document.
type File struct {
	Policies []Rule `yaml:"policies" validate:"dive"`
}

// Policy rewrites or rejects option values before they reach the pipeline.
// Rules apply in file order.
type Policy struct {
	rules []Rule
}

// New returns a policy enforcing rules. A policy without rules accepts everything.
func New(rules ...Rule) *Policy {
	return &Policy{rules: rules}
}

// Parse decodes and validates a YAML policy document.
func Parse(data []byte) (*Policy, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Join(domain.ErrPolicyParseFailed, err)
	}
	if err := policyValidate.Struct(&f); err != nil {
		return nil, errors.Join(domain.ErrPolicyParseFailed, err)
	}
	for i, r := range f.Policies {
		if r.operations() != 1 {
			err := domain.WithMeta(domain.ErrPolicyParseFailed, "flag", r.Flag)
			return nil, zerr.With(zerr.With(err, "index", i), "reason", "policy must set exactly one operation")
		}
	}
	return New(f.Policies...), nil
}

// Load reads a policy file. A missing file yields an empty policy.
func Load(path string) (*Policy, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, zerr.With(errors.Join(domain.ErrPolicyParseFailed, err), "path", path)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return p, nil
}

// Len returns the number of rules.
func (p *Policy) Len() int {
	return len(p.rules)
}

// Enforce applies every rule to parser. Rules naming options the parser does
// not declare are skipped, since fragment options depend on the rule registry.
func (p *Policy) Enforce(parser ports.OptionsParser) error {
	for _, r := range p.rules {
		current, ok := parser.Value(r.Flag)
		if !ok {
			continue
		}

		switch {
		case r.SetValue != nil:
			if err := parser.Set(r.Flag, *r.SetValue); err != nil {
				return violation(r.Flag, *r.SetValue, err)
			}
		case r.UseDefault:
			if err := parser.Reset(r.Flag); err != nil {
				return violation(r.Flag, current, err)
			}
		case len(r.Allow) > 0:
			for _, v := range splitValues(current) {
				if !slices.Contains(r.Allow, v) {
					return violation(r.Flag, v, nil)
				}
			}
		case len(r.Disallow) > 0:
			for _, v := range splitValues(current) {
				if slices.Contains(r.Disallow, v) {
					return violation(r.Flag, v, nil)
				}
			}
		}
	}
	return nil
}

// splitValues splits list option values. Scalars yield a single element.
func splitValues(v string) []string {
	if v == "" {
		return nil
	}
	return strings.Split(v, ",")
}

func violation(flag, value string, cause error) error {
	err := zerr.With(domain.WithMeta(domain.ErrPolicyViolation, "flag", flag), "value", value)
	if cause != nil {
		return errors.Join(err, cause)
	}
	return err
}
