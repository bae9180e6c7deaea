package export

import (
	"fmt"
	"strings"
)

// ReadmeMarkdown produces the top-level archive readme.
func ReadmeMarkdown(m Model, opts Options) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s - Brand Kit\n\n", m.Name)
	if m.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", m.Description)
	}

	b.WriteString("## Contents\n\n")
	b.WriteString("- `styles/colors.css` - the brand color palette as CSS custom properties\n")
	b.WriteString("- `styles/typography.css` - font imports, base styles, and the heading scale\n")
	b.WriteString("- `guidelines.md` - brand usage guidelines\n")
	if opts.IncludeLogos {
		b.WriteString("- `logos/` - the main logo and alternative concepts\n")
	}
	if opts.IncludeGallery {
		b.WriteString("- `gallery/` - generated marketing images\n")
	}

	return b.String()
}

// GuidelinesMarkdown produces the brand guidelines document: overview,
// palette usage, typography weights, and logo usage rules.
func GuidelinesMarkdown(m Model) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Brand Guidelines\n\n", m.Name)

	b.WriteString("## Overview\n\n")
	if m.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", m.Description)
	} else {
		fmt.Fprintf(&b, "Visual identity guidelines for %s.\n\n", m.Name)
	}

	b.WriteString("## Color Palette\n\n")
	for _, slot := range paletteSlots(m.Palette) {
		fmt.Fprintf(&b, "- **%s** `%s` - %s\n", capitalize(slot.name), slot.hex, slot.usage)
	}
	b.WriteString("\n")

	b.WriteString("## Typography\n\n")
	fmt.Fprintf(&b, "- **Headings:** %s (weights 400–700)\n", m.Typography.HeadingFont)
	fmt.Fprintf(&b, "- **Body:** %s (weights 300–500)\n\n", m.Typography.BodyFont)

	b.WriteString("## Logo Usage\n\n")
	b.WriteString("- Keep clear space around the logo of at least the height of its tallest letterform.\n")
	b.WriteString("- Never render the logo smaller than 24px tall on screen or 10mm in print.\n")
	b.WriteString("- Use the full-color logo on light backgrounds.\n")
	b.WriteString("- Use the white logo on dark backgrounds.\n")
	b.WriteString("- Use the black logo when color printing is unavailable.\n")

	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
