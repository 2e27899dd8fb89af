package openai

import "strings"

// clean strips Markdown code-fence markers from model output and extracts
// the outermost JSON object. It never fails: input without braces comes back
// trimmed unchanged so downstream JSON validation reports the real problem.
func clean(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		s = s[3:]
		// drop an optional language tag like ```json or ```JSON
		if newline := strings.IndexByte(s, '\n'); newline >= 0 && isLanguageTag(s[:newline]) {
			s = s[newline+1:]
		}
	}
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(s[:len(s)-3])
	}

	first := strings.IndexByte(s, '{')
	last := strings.LastIndexByte(s, '}')
	if first >= 0 && last > first {
		s = s[first : last+1]
	}

	return strings.TrimSpace(s)
}

func isLanguageTag(s string) bool {
	s = strings.TrimSpace(s)
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
