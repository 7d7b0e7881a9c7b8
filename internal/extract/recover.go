package extract

import (
	"encoding/json"
	"log/slog"
	"strings"
	"unicode"

	"github.com/joseph-ayodele/invoice-pipeline/internal/invoice"
)

// RecoverFragments pulls invoice fragments out of a free-text engine reply.
// Recovery is layered, stopping at the first strategy that yields anything:
//
//  1. strip non-printable characters and code-fence wrappers, parse the
//     remainder directly as a JSON array or object;
//  2. scan for every balanced {...} substring and parse each independently,
//     keeping the ones that succeed;
//  3. parse the substring from the first '{' to the last '}' as one object.
//
// A reply that defeats all three yields nil; that is not an error here, the
// page simply contributes nothing.
func RecoverFragments(reply string, logger *slog.Logger) []invoice.Fragment {
	if logger == nil {
		logger = slog.Default()
	}

	text := stripCodeFences(stripNonPrintable(reply))
	if text == "" {
		return nil
	}

	if frags, ok := parseDirect(text); ok {
		return frags
	}

	if frags := scanBalancedObjects(text, logger); len(frags) > 0 {
		logger.Info("extract.recover.brace_scan", "fragments", len(frags))
		return frags
	}

	if frag, ok := parseFirstToLastBrace(text); ok {
		logger.Info("extract.recover.first_last_brace")
		return []invoice.Fragment{frag}
	}

	logger.Warn("extract.recover.unrecoverable", "reply_len", len(reply))
	return nil
}

// stripNonPrintable removes control and other non-printable characters while
// keeping whitespace intact.
func stripNonPrintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}

// stripCodeFences removes a surrounding markdown code fence, including a
// leading language tag like "json".
func stripCodeFences(s string) string {
	text := strings.TrimSpace(s)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}
	if len(text) >= 4 && strings.EqualFold(text[:4], "json") {
		text = strings.TrimSpace(text[4:])
	}
	return text
}

func parseDirect(text string) ([]invoice.Fragment, bool) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, false
	}
	return fragmentsFromValue(v), true
}

// scanBalancedObjects walks the text character by character, tracking brace
// nesting depth, and tries to parse every balanced {...} span it finds.
// Malformed candidates are logged and skipped, never fatal.
func scanBalancedObjects(text string, logger *slog.Logger) []invoice.Fragment {
	var frags []invoice.Fragment
	start := 0
	for {
		open := strings.IndexByte(text[start:], '{')
		if open < 0 {
			break
		}
		open += start

		depth := 1
		pos := open + 1
		for depth > 0 && pos < len(text) {
			switch text[pos] {
			case '{':
				depth++
			case '}':
				depth--
			}
			pos++
		}
		if depth != 0 {
			break
		}

		candidate := text[open:pos]
		var m map[string]any
		if err := json.Unmarshal([]byte(candidate), &m); err != nil {
			logger.Warn("extract.recover.candidate_skipped",
				"error", err,
				"prefix", truncate(candidate, 100),
			)
		} else {
			frags = append(frags, invoice.Fragment(m))
		}
		start = pos
	}
	return frags
}

func parseFirstToLastBrace(text string) (invoice.Fragment, bool) {
	first := strings.IndexByte(text, '{')
	last := strings.LastIndexByte(text, '}')
	if first < 0 || last <= first {
		return nil, false
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(text[first:last+1]), &m); err != nil {
		return nil, false
	}
	return invoice.Fragment(m), true
}

func fragmentsFromValue(v any) []invoice.Fragment {
	switch t := v.(type) {
	case map[string]any:
		return []invoice.Fragment{invoice.Fragment(t)}
	case []any:
		var frags []invoice.Fragment
		for _, el := range t {
			if m, ok := el.(map[string]any); ok {
				frags = append(frags, invoice.Fragment(m))
			}
		}
		return frags
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
