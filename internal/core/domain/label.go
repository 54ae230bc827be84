package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Label identifies a target by package path and target name.
// Labels are comparable and may be used as map keys.
type Label struct {
	pkg  InternedString
	name InternedString
}

// NewLabel builds a label from already validated parts.
func NewLabel(pkg, name string) Label {
	return Label{pkg: NewInternedString(pkg), name: NewInternedString(name)}
}

// ParseLabel parses an absolute label of the form //pkg/path:name.
// When the name is omitted it defaults to the last package path component.
func ParseLabel(raw string) (Label, error) {
	if !strings.HasPrefix(raw, "//") {
		return Label{}, labelSyntaxError(raw, "label must start with //")
	}
	body := raw[2:]

	pkg, name, hasName := strings.Cut(body, ":")
	if err := validatePackageName(pkg); err != nil {
		return Label{}, zerr.With(err, "label", raw)
	}

	if !hasName {
		if pkg == "" {
			return Label{}, labelSyntaxError(raw, "empty package requires an explicit target name")
		}
		name = pkg[strings.LastIndex(pkg, "/")+1:]
	}
	if err := validateTargetName(name); err != nil {
		return Label{}, zerr.With(err, "label", raw)
	}

	return NewLabel(pkg, name), nil
}

// MustParseLabel is like ParseLabel but panics on malformed input.
// It is intended for constants and tests.
func MustParseLabel(raw string) Label {
	l, err := ParseLabel(raw)
	if err != nil {
		panic(err)
	}
	return l
}

// ParseRelativeLabel parses raw relative to the package pkg.
// It accepts absolute labels, ":name" and bare "name" forms.
func ParseRelativeLabel(pkg, raw string) (Label, error) {
	switch {
	case strings.HasPrefix(raw, "//"):
		return ParseLabel(raw)
	case strings.HasPrefix(raw, ":"):
		return ParseLabel("//" + pkg + raw)
	case raw == "":
		return Label{}, labelSyntaxError(raw, "empty label")
	default:
		return ParseLabel("//" + pkg + ":" + raw)
	}
}

// Package returns the package path of the label.
func (l Label) Package() string {
	return l.pkg.String()
}

// Name returns the target name of the label.
func (l Label) Name() string {
	return l.name.String()
}

// IsZero reports whether l is the zero label.
func (l Label) IsZero() bool {
	return l == Label{}
}

// String renders the label in canonical //pkg:name form.
func (l Label) String() string {
	if l.IsZero() {
		return ""
	}
	return "//" + l.Package() + ":" + l.Name()
}

// Compare orders labels by package then name.
func (l Label) Compare(other Label) int {
	if c := strings.Compare(l.Package(), other.Package()); c != 0 {
		return c
	}
	return strings.Compare(l.Name(), other.Name())
}

// MarshalText implements encoding.TextMarshaler.
func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Label) UnmarshalText(text []byte) error {
	parsed, err := ParseLabel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ValidatePackageName checks that pkg is a well-formed package path.
func ValidatePackageName(pkg string) error {
	if err := validatePackageName(pkg); err != nil {
		return zerr.With(err, "package", pkg)
	}
	return nil
}

func validatePackageName(pkg string) error {
	if pkg == "" {
		return nil
	}
	if strings.HasPrefix(pkg, "/") || strings.HasSuffix(pkg, "/") {
		return WithMeta(ErrLabelSyntax, "reason", "package name may not start or end with /")
	}
	for segment := range strings.SplitSeq(pkg, "/") {
		switch segment {
		case "":
			return WithMeta(ErrLabelSyntax, "reason", "package name contains empty segment")
		case ".", "..":
			return WithMeta(ErrLabelSyntax, "reason", "package name contains up-level reference")
		}
		for _, r := range segment {
			if !isPackageRune(r) {
				return WithMeta(ErrLabelSyntax, "reason", "invalid character in package name: "+string(r))
			}
		}
	}
	return nil
}

func validateTargetName(name string) error {
	if name == "" {
		return WithMeta(ErrLabelSyntax, "reason", "empty target name")
	}
	if strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") || strings.Contains(name, "//") {
		return WithMeta(ErrLabelSyntax, "reason", "target name may not contain empty path segments")
	}
	for segment := range strings.SplitSeq(name, "/") {
		if segment == "." || segment == ".." {
			return WithMeta(ErrLabelSyntax, "reason", "target name contains up-level reference")
		}
	}
	for _, r := range name {
		if r <= ' ' || r == ':' || r == '"' || r == '\\' || r == 0x7f {
			return WithMeta(ErrLabelSyntax, "reason", "invalid character in target name: "+string(r))
		}
	}
	return nil
}

func isPackageRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case strings.ContainsRune("-_.+@=,~", r):
		return true
	default:
		return false
	}
}

func labelSyntaxError(raw, reason string) error {
	err := WithMeta(ErrLabelSyntax, "label", raw)
	return zerr.With(err, "reason", reason)
}

// PatternKind describes which targets a TargetPattern selects.
type PatternKind uint8

const (
	// PatternSingle selects exactly one label.
	PatternSingle PatternKind = iota
	// PatternAllInPackage selects every target in a single package.
	PatternAllInPackage
	// PatternRecursive selects every target in a package and all its subpackages.
	PatternRecursive
)

// TargetPattern is a parsed command-line target pattern.
type TargetPattern struct {
	Kind    PatternKind
	Package string
	Label   Label
	Raw     string
}

// ParseTargetPattern parses labels and the //pkg:all and //pkg/... wildcard forms.
func ParseTargetPattern(raw string) (TargetPattern, error) {
	if !strings.HasPrefix(raw, "//") {
		return TargetPattern{}, labelSyntaxError(raw, "target pattern must start with //")
	}
	body := raw[2:]
	pkg, name, hasName := strings.Cut(body, ":")

	if pkg == "..." || strings.HasSuffix(pkg, "/...") {
		if hasName && !isAllTargetsName(name) {
			return TargetPattern{}, labelSyntaxError(raw, "recursive pattern must select all targets")
		}
		base := strings.TrimSuffix(strings.TrimSuffix(pkg, "..."), "/")
		if err := validatePackageName(base); err != nil {
			return TargetPattern{}, zerr.With(err, "label", raw)
		}
		return TargetPattern{Kind: PatternRecursive, Package: base, Raw: raw}, nil
	}

	if hasName && isAllTargetsName(name) {
		if err := validatePackageName(pkg); err != nil {
			return TargetPattern{}, zerr.With(err, "label", raw)
		}
		return TargetPattern{Kind: PatternAllInPackage, Package: pkg, Raw: raw}, nil
	}

	l, err := ParseLabel(raw)
	if err != nil {
		return TargetPattern{}, err
	}
	return TargetPattern{Kind: PatternSingle, Package: l.Package(), Label: l, Raw: raw}, nil
}

func isAllTargetsName(name string) bool {
	return name == "all" || name == "*" || name == "all-targets"
}
