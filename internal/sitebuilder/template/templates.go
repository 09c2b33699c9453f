package template

import "github.com/siteforge/draftsvc/internal/sitebuilder/domain"

// builtinIndustryMap is the industry→template table of spec §4.C step 2.
// Codes absent from this table (including "other" and any unrecognized
// code, which domain.NewIndustryInfo already maps to "other") fall through
// to the default template in Registry.LookupByIndustry.
var builtinIndustryMap = map[domain.IndustryCode]string{
	domain.IndustryTech:       "tech",
	domain.IndustryFinance:    "finance",
	domain.IndustryHealthcare: "healthcare",
	domain.IndustryRetail:     "retail",
	domain.IndustryEducation:  "education",
	domain.IndustryRealEstate: "real-estate",
	domain.IndustryConsulting: "consulting",
	domain.IndustryRestaurant: "restaurant",
}

func heroSection(id string) SectionTemplate {
	return SectionTemplate{
		ID:   id,
		Type: "hero",
		Props: map[string]any{
			"heading":    "{{brandName}}",
			"subheading": "{{industryLabel}}",
			"logoUrl":    "{{logoUrl}}",
			"logoAssetId": "{{logoAssetId}}",
			"ctaLabel":   "Get in touch",
		},
	}
}

func aboutSection(id, body string) SectionTemplate {
	return SectionTemplate{
		ID:   id,
		Type: "about",
		Props: map[string]any{
			"heading": "About {{brandName}}",
			"body":    body,
		},
	}
}

func servicesSection(id string, items []string) SectionTemplate {
	anyItems := make([]any, len(items))
	for i, it := range items {
		anyItems[i] = it
	}
	return SectionTemplate{
		ID:   id,
		Type: "services",
		Props: map[string]any{
			"heading": "What we do",
			"items":   anyItems,
		},
	}
}

func contactSection(id string) SectionTemplate {
	return SectionTemplate{
		ID:   id,
		Type: "contact",
		Props: map[string]any{
			"heading": "Contact {{brandName}}",
			"cta":     "Talk to {{brandName}}",
		},
	}
}

func footerSection(id string) SectionTemplate {
	return SectionTemplate{
		ID:   id,
		Type: "footer",
		Props: map[string]any{
			"text": "© {{brandName}}",
		},
	}
}

func defaultHomePage(extra ...SectionTemplate) PageTemplate {
	sections := []SectionTemplate{heroSection("sec-hero")}
	sections = append(sections, extra...)
	sections = append(sections, contactSection("sec-contact"), footerSection("sec-footer"))
	return PageTemplate{ID: "page-home", Path: "/", Title: "{{brandName}}", Sections: sections}
}

var defaultPalette = domain.Palette{
	Primary:    "#2563eb",
	Accent:     "#7c3aed",
	Background: "#ffffff",
	Surface:    "#f8fafc",
	Text:       "#0f172a",
	MutedText:  "#64748b",
}

var defaultTypography = domain.Typography{
	FontFamily: "Inter, sans-serif",
	Scale:      "medium",
}

var defaultPublishing = domain.Publishing{
	Target: "static",
	Output: domain.PublishingOutput{
		Format:      "html",
		EntryPageID: "page-home",
	},
	Constraints: domain.PublishingConstraints{
		MaxPages:           20,
		MaxSectionsPerPage: 12,
	},
}

// builtinTemplates is the compiled, read-only template set (spec "Design
// notes": "package templates and the industry table as read-only compiled
// data structures loaded once at startup").
var builtinTemplates = []TemplateDefinition{
	{
		TemplateID:      "default",
		TemplateVersion: 1,
		Theme: ThemeDefaults{
			ThemeID:    "default",
			Palette:    defaultPalette,
			Typography: defaultTypography,
			Radius:     "md",
			Spacing:    "md",
		},
		TitleSuffix: "Online",
		Description: "{{brandName}} — built with {{slug}}.",
		Pages: []PageTemplate{
			defaultHomePage(aboutSection("sec-about", "{{brandName}} serves the {{industryLabel}} industry.")),
		},
		Publishing: defaultPublishing,
	},
	{
		TemplateID:      "tech",
		TemplateVersion: 1,
		Theme: ThemeDefaults{
			ThemeID: "tech",
			Palette: domain.Palette{
				Primary:    "#4f46e5",
				Accent:     "#06b6d4",
				Background: "#0b1021",
				Surface:    "#141a35",
				Text:       "#f8fafc",
				MutedText:  "#94a3b8",
			},
			Typography: domain.Typography{FontFamily: "Inter, sans-serif", Scale: "large"},
			Radius:     "lg",
			Spacing:    "lg",
		},
		// Hard-coded to the literal Russian-language suffix spec §8 scenario
		// 1 requires: "Кодовая — IT-услуги для роста бизнеса".
		TitleSuffix: "IT-услуги для роста бизнеса",
		Description: "{{brandName}} предоставляет IT-услуги для роста бизнеса.",
		Pages: []PageTemplate{
			defaultHomePage(
				servicesSection("sec-services", []string{"Custom software", "Cloud migration", "Technical consulting"}),
			),
		},
		Publishing: defaultPublishing,
	},
	{
		TemplateID:      "finance",
		TemplateVersion: 1,
		Theme: ThemeDefaults{
			ThemeID: "finance",
			Palette: domain.Palette{
				Primary:    "#0f766e",
				Accent:     "#ca8a04",
				Background: "#ffffff",
				Surface:    "#f1f5f9",
				Text:       "#0f172a",
				MutedText:  "#475569",
			},
			Typography: domain.Typography{FontFamily: "Georgia, serif", Scale: "medium"},
			Radius:     "sm",
			Spacing:    "md",
		},
		TitleSuffix: "Trusted Financial Services",
		Description: "{{brandName}} delivers trusted financial services.",
		Pages: []PageTemplate{
			defaultHomePage(
				servicesSection("sec-services", []string{"Wealth management", "Advisory", "Risk assessment"}),
			),
		},
		Publishing: defaultPublishing,
	},
	{
		TemplateID:      "healthcare",
		TemplateVersion: 1,
		Theme: ThemeDefaults{
			ThemeID: "healthcare",
			Palette: domain.Palette{
				Primary:    "#0891b2",
				Accent:     "#16a34a",
				Background: "#ffffff",
				Surface:    "#f0fdfa",
				Text:       "#0f172a",
				MutedText:  "#52606d",
			},
			Typography: domain.Typography{FontFamily: "Arial, sans-serif", Scale: "medium"},
			Radius:     "lg",
			Spacing:    "md",
		},
		TitleSuffix: "Care You Can Trust",
		Description: "{{brandName}} provides care you can trust.",
		Pages: []PageTemplate{
			defaultHomePage(
				servicesSection("sec-services", []string{"Primary care", "Diagnostics", "Telehealth"}),
			),
		},
		Publishing: defaultPublishing,
	},
	{
		TemplateID:      "retail",
		TemplateVersion: 1,
		Theme: ThemeDefaults{
			ThemeID: "retail",
			Palette: domain.Palette{
				Primary:    "#db2777",
				Accent:     "#f59e0b",
				Background: "#ffffff",
				Surface:    "#fff7ed",
				Text:       "#1c1917",
				MutedText:  "#78716c",
			},
			Typography: domain.Typography{FontFamily: "Poppins, sans-serif", Scale: "medium"},
			Radius:     "full",
			Spacing:    "sm",
		},
		TitleSuffix: "Shop the Collection",
		Description: "{{brandName}} — shop the collection.",
		Pages: []PageTemplate{
			defaultHomePage(
				servicesSection("sec-services", []string{"New arrivals", "Best sellers", "Gift cards"}),
			),
		},
		Publishing: defaultPublishing,
	},
	{
		TemplateID:      "education",
		TemplateVersion: 1,
		Theme: ThemeDefaults{
			ThemeID: "education",
			Palette: domain.Palette{
				Primary:    "#1d4ed8",
				Accent:     "#f97316",
				Background: "#ffffff",
				Surface:    "#eff6ff",
				Text:       "#0f172a",
				MutedText:  "#64748b",
			},
			Typography: domain.Typography{FontFamily: "Merriweather, serif", Scale: "medium"},
			Radius:     "md",
			Spacing:    "md",
		},
		TitleSuffix: "Learn With Us",
		Description: "{{brandName}} — learn with us.",
		Pages: []PageTemplate{
			defaultHomePage(
				servicesSection("sec-services", []string{"Courses", "Workshops", "Tutoring"}),
			),
		},
		Publishing: defaultPublishing,
	},
	{
		TemplateID:      "real-estate",
		TemplateVersion: 1,
		Theme: ThemeDefaults{
			ThemeID: "real-estate",
			Palette: domain.Palette{
				Primary:    "#166534",
				Accent:     "#b45309",
				Background: "#ffffff",
				Surface:    "#f7f8f3",
				Text:       "#1c1917",
				MutedText:  "#57534e",
			},
			Typography: domain.Typography{FontFamily: "Lora, serif", Scale: "medium"},
			Radius:     "sm",
			Spacing:    "lg",
		},
		TitleSuffix: "Find Your Next Place",
		Description: "{{brandName}} — find your next place.",
		Pages: []PageTemplate{
			defaultHomePage(
				servicesSection("sec-services", []string{"Listings", "Appraisals", "Property management"}),
			),
		},
		Publishing: defaultPublishing,
	},
	{
		TemplateID:      "consulting",
		TemplateVersion: 1,
		Theme: ThemeDefaults{
			ThemeID: "consulting",
			Palette: domain.Palette{
				Primary:    "#334155",
				Accent:     "#0ea5e9",
				Background: "#ffffff",
				Surface:    "#f8fafc",
				Text:       "#0f172a",
				MutedText:  "#64748b",
			},
			Typography: domain.Typography{FontFamily: "Helvetica, sans-serif", Scale: "medium"},
			Radius:     "sm",
			Spacing:    "md",
		},
		TitleSuffix: "Strategy That Delivers",
		Description: "{{brandName}} — strategy that delivers.",
		Pages: []PageTemplate{
			defaultHomePage(
				servicesSection("sec-services", []string{"Strategy", "Operations", "Change management"}),
			),
		},
		Publishing: defaultPublishing,
	},
	{
		TemplateID:      "restaurant",
		TemplateVersion: 1,
		Theme: ThemeDefaults{
			ThemeID: "restaurant",
			Palette: domain.Palette{
				Primary:    "#b91c1c",
				Accent:     "#a16207",
				Background: "#fffaf0",
				Surface:    "#fff1e6",
				Text:       "#1c1917",
				MutedText:  "#78716c",
			},
			Typography: domain.Typography{FontFamily: "Playfair Display, serif", Scale: "large"},
			Radius:     "md",
			Spacing:    "md",
		},
		TitleSuffix: "Taste the Difference",
		Description: "{{brandName}} — taste the difference.",
		Pages: []PageTemplate{
			defaultHomePage(
				servicesSection("sec-services", []string{"Menu", "Reservations", "Catering"}),
			),
		},
		Publishing: defaultPublishing,
	},
}
