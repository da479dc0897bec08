package recommendation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var codeFenceRe = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")

type destinationsEnvelope struct {
	Destinations []Destination `json:"destinations"`
}

// parseDestinations extracts the destination list from raw model output.
// Models occasionally wrap JSON in a markdown code fence or surround it
// with prose, so parsing is attempted in three passes: the raw text, the
// first fenced block, and the outermost brace span.
func parseDestinations(raw string) ([]Destination, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty response")
	}

	candidates := []string{raw}
	if m := codeFenceRe.FindStringSubmatch(raw); m != nil {
		candidates = append(candidates, m[1])
	}
	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start != -1 && end > start {
		candidates = append(candidates, raw[start:end+1])
	}

	var lastErr error
	for _, c := range candidates {
		var env destinationsEnvelope
		if err := json.Unmarshal([]byte(c), &env); err != nil {
			lastErr = err
			continue
		}
		if len(env.Destinations) == 0 {
			lastErr = fmt.Errorf("response contains no destinations")
			continue
		}
		return env.Destinations, nil
	}
	return nil, fmt.Errorf("could not extract destinations from response: %w", lastErr)
}
