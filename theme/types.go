package theme

import "errors"

// Family groups tokens that share a semantic role.
type Family string

const (
	FamilyBrand    Family = "brand"
	FamilyStatus   Family = "status"
	FamilySeverity Family = "severity"
	FamilyAttack   Family = "attack"
	FamilyProtocol Family = "protocol"
)

// Families lists every token family in rendering order.
var Families = []Family{FamilyBrand, FamilyStatus, FamilySeverity, FamilyAttack, FamilyProtocol}

// Token is a named color value within a family.
type Token struct {
	Name   string `json:"name"`
	Family Family `json:"family"`
	Value  string `json:"value"`
}

// TokenRef points at a base token. Alpha, when set, is a two hex digit
// suffix appended to the resolved color.
type TokenRef struct {
	Family Family
	Name   string
	Alpha  string
}

func (r TokenRef) String() string {
	if r.Alpha != "" {
		return string(r.Family) + "." + r.Name + "/" + r.Alpha
	}
	return string(r.Family) + "." + r.Name
}

// Palette is the raw input to New: one name->color map per family.
type Palette struct {
	Brand    map[string]string `yaml:"brand,omitempty" json:"brand,omitempty"`
	Status   map[string]string `yaml:"status,omitempty" json:"status,omitempty"`
	Severity map[string]string `yaml:"severity,omitempty" json:"severity,omitempty"`
	Attack   map[string]string `yaml:"attack,omitempty" json:"attack,omitempty"`
	Protocol map[string]string `yaml:"protocol,omitempty" json:"protocol,omitempty"`
}

func (p Palette) family(f Family) map[string]string {
	switch f {
	case FamilyBrand:
		return p.Brand
	case FamilyStatus:
		return p.Status
	case FamilySeverity:
		return p.Severity
	case FamilyAttack:
		return p.Attack
	case FamilyProtocol:
		return p.Protocol
	}
	return nil
}

// Clone returns a deep copy of the palette.
func (p Palette) Clone() Palette {
	return Palette{
		Brand:    cloneMap(p.Brand),
		Status:   cloneMap(p.Status),
		Severity: cloneMap(p.Severity),
		Attack:   cloneMap(p.Attack),
		Protocol: cloneMap(p.Protocol),
	}
}

// Merge returns a copy of p with every entry of over applied on top.
func (p Palette) Merge(over Palette) Palette {
	out := p.Clone()
	for _, f := range Families {
		src := over.family(f)
		if len(src) == 0 {
			continue
		}
		dst := out.family(f)
		if dst == nil {
			dst = make(map[string]string, len(src))
			out.setFamily(f, dst)
		}
		for k, v := range src {
			dst[k] = v
		}
	}
	return out
}

func (p *Palette) setFamily(f Family, m map[string]string) {
	switch f {
	case FamilyBrand:
		p.Brand = m
	case FamilyStatus:
		p.Status = m
	case FamilySeverity:
		p.Severity = m
	case FamilyAttack:
		p.Attack = m
	case FamilyProtocol:
		p.Protocol = m
	}
}

func cloneMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// UIOverrides is the configuration surface handed to the dashboard's
// component library.
type UIOverrides struct {
	Common CommonOverrides `json:"common"`
}

// CommonOverrides holds the library's global color inputs.
type CommonOverrides struct {
	PrimaryColor        string `json:"primaryColor"`
	PrimaryColorHover   string `json:"primaryColorHover"`
	PrimaryColorPressed string `json:"primaryColorPressed"`
	InfoColor           string `json:"infoColor"`
	SuccessColor        string `json:"successColor"`
	WarningColor        string `json:"warningColor"`
	ErrorColor          string `json:"errorColor"`
	BodyColor           string `json:"bodyColor"`
	CardColor           string `json:"cardColor"`
	ModalColor          string `json:"modalColor"`
	BorderColor         string `json:"borderColor"`
	TextColorBase       string `json:"textColorBase"`
	TextColor2          string `json:"textColor2"`
	BoxShadow           string `json:"boxShadow"`
}

var (
	// ErrUnknownToken is returned when a reference names a token that is not defined.
	ErrUnknownToken = errors.New("unknown theme token")
	// ErrInvalidColor is returned for base token values that are not hex colors.
	ErrInvalidColor = errors.New("invalid color value")
	// ErrInvalidName is returned for token names outside [a-z0-9-]; names end
	// up in CSS property names and selectors.
	ErrInvalidName = errors.New("invalid token name")
)
