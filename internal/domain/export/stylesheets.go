package export

import (
	"fmt"
	"net/url"
	"strings"
)

type paletteSlot struct {
	name  string
	hex   string
	usage string
}

func paletteSlots(p Palette) []paletteSlot {
	return []paletteSlot{
		{"primary", p.Primary, "Primary brand color for key actions and highlights"},
		{"secondary", p.Secondary, "Secondary color for supporting elements"},
		{"accent", p.Accent, "Accent color for emphasis and calls to action"},
		{"background", p.Background, "Default surface and page background"},
		{"text", p.Text, "Body text and high-contrast foreground"},
	}
}

// ColorsCSS renders the palette as CSS custom properties plus derived
// utility classes.
func ColorsCSS(p Palette) string {
	var b strings.Builder

	b.WriteString("/* Brand color palette */\n\n:root {\n")
	for _, slot := range paletteSlots(p) {
		fmt.Fprintf(&b, "  --color-%s: %s;\n", slot.name, slot.hex)
	}
	b.WriteString("}\n\n")

	for _, slot := range paletteSlots(p) {
		fmt.Fprintf(&b, ".bg-%s { background-color: var(--color-%s); }\n", slot.name, slot.name)
		fmt.Fprintf(&b, ".text-%s { color: var(--color-%s); }\n", slot.name, slot.name)
		fmt.Fprintf(&b, ".hover-%s:hover { background-color: var(--color-%s); }\n\n", slot.name, slot.name)
	}

	return b.String()
}

// TypographyCSS renders the font-face import, base element styles, the
// heading size scale, and utility classes for the configured font pair.
func TypographyCSS(t Typography) string {
	heading := t.HeadingFont
	body := t.BodyFont

	var b strings.Builder
	b.WriteString("/* Brand typography */\n\n")
	fmt.Fprintf(&b,
		"@import url('https://fonts.googleapis.com/css2?family=%s:wght@400;500;600;700&family=%s:wght@300;400;500&display=swap');\n\n",
		url.QueryEscape(heading), url.QueryEscape(body),
	)

	fmt.Fprintf(&b, "body {\n  font-family: '%s', sans-serif;\n  font-weight: 400;\n  line-height: 1.6;\n}\n\n", body)
	fmt.Fprintf(&b, "h1, h2, h3, h4, h5, h6 {\n  font-family: '%s', sans-serif;\n  font-weight: 700;\n  line-height: 1.2;\n}\n\n", heading)

	sizes := []string{"3rem", "2.25rem", "1.75rem", "1.5rem", "1.25rem", "1rem"}
	for i, size := range sizes {
		fmt.Fprintf(&b, "h%d { font-size: %s; }\n", i+1, size)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, ".font-heading { font-family: '%s', sans-serif; }\n", heading)
	fmt.Fprintf(&b, ".font-body { font-family: '%s', sans-serif; }\n", body)

	return b.String()
}
