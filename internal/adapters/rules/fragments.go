package rules

import (
	"fmt"
	"strings"

	"go.trai.ch/prism/internal/core/domain"
)

// CoreFragment declares the options every configuration carries.
func CoreFragment() domain.OptionGroup {
	return domain.OptionGroup{
		Name: "core",
		Options: []domain.OptionDefinition{
			{
				Name:    domain.OptionCompilationMode,
				Type:    domain.OptionString,
				Default: domain.ModeFastbuild,
				Usage:   "compilation mode of target configurations",
				Allowed: []string{domain.ModeFastbuild, domain.ModeDbg, domain.ModeOpt},
			},
			{Name: domain.OptionCPU, Type: domain.OptionString, Default: "k8", Usage: "target CPU"},
			{Name: domain.OptionHostCPU, Type: domain.OptionString, Default: "k8", Usage: "host CPU"},
			{
				Name:  domain.OptionDynamicConfigs,
				Type:  domain.OptionBool,
				Usage: "create configurations per target instead of per build",
			},
		},
	}
}

// DefaultsPackageContent renders the synthetic defaults package. It holds one
// genrule per fragment option so that targets can depend on option values.
func (r *Registry) DefaultsPackageContent(bundle *domain.OptionsBundle) string {
	var sb strings.Builder
	sb.WriteString("targets:\n")
	for _, group := range r.fragments {
		for _, opt := range group.Options {
			value := opt.Default
			if bundle != nil {
				value = bundle.Fragment(opt.Name, opt.Default)
			}
			fmt.Fprintf(&sb, "  %s:\n", opt.Name)
			sb.WriteString("    rule: genrule\n")
			fmt.Fprintf(&sb, "    outs: [%s.txt]\n", opt.Name)
			fmt.Fprintf(&sb, "    cmd: %q\n", "echo "+value+" > $@")
			sb.WriteString("    visibility: [\"" + domain.VisibilityPublic + "\"]\n")
		}
	}
	return sb.String()
}
