package usecase

import (
	"strings"

	"github.com/jhoicas/SellerOps-api/internal/application/dto"
)

// ParseRecommendations extrae los bloques "Product:", "Action:" y "Reasoning:" del texto del LLM.
// Es best-effort: tolera viñetas, numeración y negritas markdown; un nuevo "Product:" abre un
// elemento nuevo y las líneas sin prefijo continúan el razonamiento en curso.
func ParseRecommendations(text string) []dto.AIRecommendationItem {
	var (
		items []dto.AIRecommendationItem
		cur   *dto.AIRecommendationItem
	)
	flush := func() {
		if cur != nil && (cur.Product != "" || cur.Action != "" || cur.Reasoning != "") {
			items = append(items, *cur)
		}
		cur = nil
	}

	for _, raw := range strings.Split(text, "\n") {
		line := cleanLine(raw)
		if line == "" {
			continue
		}
		key, value, ok := splitPrefix(line)
		switch {
		case ok && key == "product":
			flush()
			cur = &dto.AIRecommendationItem{Product: value}
		case ok && key == "action":
			if cur == nil || cur.Action != "" {
				flush()
				cur = &dto.AIRecommendationItem{}
			}
			cur.Action = value
		case ok && key == "reasoning":
			if cur == nil || cur.Reasoning != "" {
				flush()
				cur = &dto.AIRecommendationItem{}
			}
			cur.Reasoning = value
		case cur != nil && cur.Reasoning != "":
			cur.Reasoning += " " + line
		}
	}
	flush()
	return items
}

var recommendationKeys = map[string]string{
	"product":   "product",
	"producto":  "product",
	"action":    "action",
	"acción":    "action",
	"accion":    "action",
	"reasoning": "reasoning",
	"razón":     "reasoning",
	"razon":     "reasoning",
}

func splitPrefix(line string) (key, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}
	label := strings.ToLower(strings.Trim(line[:idx], "*_ "))
	k, known := recommendationKeys[label]
	if !known {
		return "", "", false
	}
	return k, strings.TrimSpace(strings.Trim(line[idx+1:], "*_ ")), true
}

// cleanLine quita viñetas ("-", "*", "•") y numeración ("1.", "2)") al inicio.
func cleanLine(raw string) string {
	line := strings.TrimSpace(raw)
	line = strings.TrimLeft(line, "-•# ")
	if strings.HasPrefix(line, "* ") {
		line = line[2:]
	}
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		line = line[i+1:]
	}
	return strings.TrimSpace(line)
}
