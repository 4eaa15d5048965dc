package theme

// DefaultPalette returns the dashboard's built-in colors. Each call returns
// a fresh copy.
func DefaultPalette() Palette {
	return Palette{
		Brand: map[string]string{
			"primary":         "#00d4ff",
			"primary-hover":   "#33ddff",
			"primary-pressed": "#00a8cc",
			"secondary":       "#7c3aed",
			"accent":          "#f59e0b",
			"background":      "#0a0e1a",
			"surface":         "#111827",
			"surface-raised":  "#1f2937",
			"border":          "#374151",
			"text":            "#f9fafb",
			"text-muted":      "#9ca3af",
		},
		Status: map[string]string{
			"success": "#10b981",
			"warning": "#f59e0b",
			"error":   "#ef4444",
			"info":    "#3b82f6",
		},
		Severity: map[string]string{
			"critical": "#dc2626",
			"high":     "#ea580c",
			"medium":   "#f59e0b",
			"low":      "#10b981",
			"info":     "#3b82f6",
		},
		Attack: map[string]string{
			"volumetric":    "#ef4444",
			"protocol":      "#f97316",
			"application":   "#a855f7",
			"amplification": "#ec4899",
			"reflection":    "#06b6d4",
			"botnet":        "#84cc16",
			"syn-flood":     "#f43f5e",
			"http-flood":    "#8b5cf6",
		},
		Protocol: map[string]string{
			"tcp":   "#3b82f6",
			"udp":   "#8b5cf6",
			"icmp":  "#f59e0b",
			"http":  "#10b981",
			"https": "#059669",
			"dns":   "#06b6d4",
			"ntp":   "#ec4899",
			"ssdp":  "#f97316",
			"other": "#6b7280",
		},
	}
}

type compositeRecipe struct {
	name   string
	format string
	refs   []TokenRef
}

func ref(f Family, name string) TokenRef { return TokenRef{Family: f, Name: name} }

func refAlpha(f Family, name, alpha string) TokenRef {
	return TokenRef{Family: f, Name: name, Alpha: alpha}
}

// Composites are evaluated in order; each format takes its refs as %s args.
var compositeRecipes = []compositeRecipe{
	{
		name:   "gradient-primary",
		format: "linear-gradient(135deg, %s 0%%, %s 100%%)",
		refs:   []TokenRef{ref(FamilyBrand, "primary"), ref(FamilyBrand, "secondary")},
	},
	{
		name:   "gradient-danger",
		format: "linear-gradient(135deg, %s 0%%, %s 100%%)",
		refs:   []TokenRef{ref(FamilySeverity, "critical"), ref(FamilySeverity, "high")},
	},
	{
		name:   "gradient-surface",
		format: "linear-gradient(180deg, %s 0%%, %s 100%%)",
		refs:   []TokenRef{ref(FamilyBrand, "surface"), ref(FamilyBrand, "background")},
	},
	{
		name:   "gradient-threat-scale",
		format: "linear-gradient(90deg, %s 0%%, %s 40%%, %s 70%%, %s 100%%)",
		refs: []TokenRef{
			ref(FamilySeverity, "low"),
			ref(FamilySeverity, "medium"),
			ref(FamilySeverity, "high"),
			ref(FamilySeverity, "critical"),
		},
	},
	{
		name:   "shadow-card",
		format: "0 4px 6px -1px %s, 0 2px 4px -1px %s",
		refs:   []TokenRef{refAlpha(FamilyBrand, "background", "80"), refAlpha(FamilyBrand, "background", "4d")},
	},
	{
		name:   "shadow-glow",
		format: "0 0 20px %s",
		refs:   []TokenRef{refAlpha(FamilyBrand, "primary", "33")},
	},
	{
		name:   "shadow-glow-critical",
		format: "0 0 24px %s",
		refs:   []TokenRef{refAlpha(FamilySeverity, "critical", "66")},
	},
	{
		name:   "border-focus",
		format: "1px solid %s",
		refs:   []TokenRef{ref(FamilyBrand, "primary")},
	},
}

// preprocessorVariables maps stylesheet variable names to the tokens they copy.
var preprocessorVariables = []struct {
	name string
	ref  TokenRef
}{
	{"primary-color", ref(FamilyBrand, "primary")},
	{"secondary-color", ref(FamilyBrand, "secondary")},
	{"accent-color", ref(FamilyBrand, "accent")},
	{"success-color", ref(FamilyStatus, "success")},
	{"warning-color", ref(FamilyStatus, "warning")},
	{"error-color", ref(FamilyStatus, "error")},
	{"info-color", ref(FamilyStatus, "info")},
	{"bg-color", ref(FamilyBrand, "background")},
	{"surface-color", ref(FamilyBrand, "surface")},
	{"border-color", ref(FamilyBrand, "border")},
	{"text-color", ref(FamilyBrand, "text")},
	{"text-muted-color", ref(FamilyBrand, "text-muted")},
	{"critical-color", ref(FamilySeverity, "critical")},
	{"high-color", ref(FamilySeverity, "high")},
	{"medium-color", ref(FamilySeverity, "medium")},
	{"low-color", ref(FamilySeverity, "low")},
}
