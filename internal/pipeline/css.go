package pipeline

import "strings"

// SanitizeCSS escapes "</" so embedded CSS cannot close the <style> element.
func SanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// JoinCSS concatenates stylesheets in order, skipping blank ones.
func JoinCSS(sheets ...string) string {
	var b strings.Builder
	for _, s := range sheets {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(s)
	}
	if b.Len() > 0 {
		b.WriteByte('\n')
	}
	return b.String()
}
