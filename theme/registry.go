package theme

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	hexColorRE  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	tokenNameRE = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// Entry is an ordered name/value pair.
type Entry struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Registry is an immutable set of color tokens plus the strings derived
// from them. Build one with New; never mutate it afterwards.
type Registry struct {
	tokens     map[Family]map[string]string
	composites []Entry
	byName     map[string]string
	variables  []Entry
	overrides  UIOverrides
	css        string
}

// New validates the palette and derives every composite value.
func New(p Palette) (*Registry, error) {
	r := &Registry{
		tokens: make(map[Family]map[string]string, len(Families)),
		byName: make(map[string]string, len(compositeRecipes)),
	}

	var errs []error
	for _, f := range Families {
		src := p.family(f)
		dst := make(map[string]string, len(src))
		for _, name := range sortedKeys(src) {
			if !tokenNameRE.MatchString(name) {
				errs = append(errs, fmt.Errorf("%w: %s.%q", ErrInvalidName, f, name))
				continue
			}
			value := strings.TrimSpace(src[name])
			if err := validateColor(value); err != nil {
				errs = append(errs, fmt.Errorf("%s.%s: %w", f, name, err))
				continue
			}
			dst[name] = value
		}
		r.tokens[f] = dst
	}
	for _, ref := range classifierTokens {
		if _, err := r.Resolve(ref); err != nil {
			errs = append(errs, fmt.Errorf("classifier: %w", err))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	for _, recipe := range compositeRecipes {
		args := make([]any, 0, len(recipe.refs))
		for _, ref := range recipe.refs {
			v, err := r.Resolve(ref)
			if err != nil {
				errs = append(errs, fmt.Errorf("composite %s: %w", recipe.name, err))
				continue
			}
			args = append(args, v)
		}
		if len(args) != len(recipe.refs) {
			continue
		}
		value := fmt.Sprintf(recipe.format, args...)
		r.composites = append(r.composites, Entry{Name: recipe.name, Value: value})
		r.byName[recipe.name] = value
	}

	for _, pv := range preprocessorVariables {
		v, err := r.Resolve(pv.ref)
		if err != nil {
			errs = append(errs, fmt.Errorf("variable %s: %w", pv.name, err))
			continue
		}
		r.variables = append(r.variables, Entry{Name: pv.name, Value: v})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	overrides, err := r.buildOverrides()
	if err != nil {
		return nil, err
	}
	r.overrides = overrides
	r.css = renderCSS(r)

	return r, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry built from DefaultPalette. It is constructed
// once per process.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := New(DefaultPalette())
		if err != nil {
			panic("theme: default palette: " + err.Error())
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}

// Token looks up a base token.
func (r *Registry) Token(f Family, name string) (Token, bool) {
	v, ok := r.tokens[f][name]
	if !ok {
		return Token{}, false
	}
	return Token{Name: name, Family: f, Value: v}, true
}

// Resolve returns the color a reference points at, with its alpha applied.
func (r *Registry) Resolve(ref TokenRef) (string, error) {
	v, ok := r.tokens[ref.Family][ref.Name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownToken, ref)
	}
	if ref.Alpha == "" {
		return v, nil
	}
	return withAlpha(v, ref.Alpha)
}

// Tokens returns a family's tokens sorted by name.
func (r *Registry) Tokens(f Family) []Token {
	fam := r.tokens[f]
	out := make([]Token, 0, len(fam))
	for _, name := range sortedKeys(fam) {
		out = append(out, Token{Name: name, Family: f, Value: fam[name]})
	}
	return out
}

// Composite returns a prebuilt gradient/shadow string by name.
func (r *Registry) Composite(name string) (string, bool) {
	v, ok := r.byName[name]
	return v, ok
}

// Composites returns every derived value in definition order.
func (r *Registry) Composites() []Entry {
	return append([]Entry(nil), r.composites...)
}

// PreprocessorVariables returns the stylesheet variables copied from tokens.
func (r *Registry) PreprocessorVariables() []Entry {
	return append([]Entry(nil), r.variables...)
}

// UIOverrides returns the component library configuration.
func (r *Registry) UIOverrides() UIOverrides {
	return r.overrides
}

// CSS returns the custom-property stylesheet.
func (r *Registry) CSS() string {
	return r.css
}

// Snapshot is the JSON shape of a registry.
type Snapshot struct {
	Families   map[Family]map[string]string `json:"families"`
	Composites map[string]string            `json:"composites"`
}

// Snapshot copies the registry into a serializable value.
func (r *Registry) Snapshot() Snapshot {
	s := Snapshot{
		Families:   make(map[Family]map[string]string, len(r.tokens)),
		Composites: make(map[string]string, len(r.byName)),
	}
	for f, fam := range r.tokens {
		s.Families[f] = cloneMap(fam)
	}
	for k, v := range r.byName {
		s.Composites[k] = v
	}
	return s
}

func (r *Registry) buildOverrides() (UIOverrides, error) {
	get := func(f Family, name string) (string, error) {
		return r.Resolve(ref(f, name))
	}
	var errs []error
	pick := func(f Family, name string) string {
		v, err := get(f, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("ui overrides: %w", err))
		}
		return v
	}

	c := CommonOverrides{
		PrimaryColor:        pick(FamilyBrand, "primary"),
		PrimaryColorHover:   pick(FamilyBrand, "primary-hover"),
		PrimaryColorPressed: pick(FamilyBrand, "primary-pressed"),
		InfoColor:           pick(FamilyStatus, "info"),
		SuccessColor:        pick(FamilyStatus, "success"),
		WarningColor:        pick(FamilyStatus, "warning"),
		ErrorColor:          pick(FamilyStatus, "error"),
		BodyColor:           pick(FamilyBrand, "background"),
		CardColor:           pick(FamilyBrand, "surface"),
		ModalColor:          pick(FamilyBrand, "surface-raised"),
		BorderColor:         pick(FamilyBrand, "border"),
		TextColorBase:       pick(FamilyBrand, "text"),
		TextColor2:          pick(FamilyBrand, "text-muted"),
		BoxShadow:           r.byName["shadow-card"],
	}
	if len(errs) > 0 {
		return UIOverrides{}, errors.Join(errs...)
	}
	return UIOverrides{Common: c}, nil
}

func validateColor(v string) error {
	if !hexColorRE.MatchString(v) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, v)
	}
	if _, err := colorful.Hex(rgbPart(v)); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidColor, v, err)
	}
	return nil
}

// rgbPart drops the alpha digits of an 8-digit color.
func rgbPart(v string) string {
	if len(v) == 9 {
		return v[:7]
	}
	return v
}

func withAlpha(v, alpha string) (string, error) {
	if len(alpha) != 2 || !hexColorRE.MatchString("#"+alpha+"0000") {
		return "", fmt.Errorf("%w: alpha %q", ErrInvalidColor, alpha)
	}
	rgb := rgbPart(v)
	if len(rgb) == 4 {
		rgb = "#" + strings.Repeat(rgb[1:2], 2) + strings.Repeat(rgb[2:3], 2) + strings.Repeat(rgb[3:4], 2)
	}
	return rgb + alpha, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
