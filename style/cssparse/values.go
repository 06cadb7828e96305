package cssparse

import (
	"regexp"
	"strconv"
	"strings"

	"typeset/lerr"
	"typeset/style"
	"typeset/unit"
)

var distancePattern = regexp.MustCompile(`^(-?[0-9]*\.?[0-9]+)(mm|cm|dm|m|in|pt)$`)

// parseDistance parses a `<number><unit>` token with
// unit in {mm, cm, dm, m, in, pt}.
func parseDistance(raw string) (unit.Distance, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	m := distancePattern.FindStringSubmatch(raw)
	if m == nil {
		return unit.Distance{}, lerr.StyleValueError("malformed distance (missing or unknown unit): " + raw)
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return unit.Distance{}, lerr.StyleValueError("malformed distance number: " + raw)
	}
	var u unit.Unit
	switch m[2] {
	case "mm":
		u = unit.MM
	case "cm":
		u = unit.CM
	case "dm":
		u = unit.DM
	case "m":
		u = unit.M
	case "in":
		u = unit.In
	case "pt":
		u = unit.Pt
	}
	return unit.New(value, u)
}

var familyTypes = map[string]style.FamilyType{
	"serif":      style.Serif,
	"sans-serif": style.SansSerif,
	"monospace":  style.Monospace,
	"cursive":    style.Cursive,
	"fantasy":    style.Fantasy,
}

// parseFamily parses `default`, one of the five generic family
// keywords, `url(path)`, or a bare/quoted name.
func parseFamily(raw string) (style.FamilySource, error) {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)
	if lower == "default" {
		return style.DefaultFamily(), nil
	}
	if t, ok := familyTypes[lower]; ok {
		return style.FamilyFromType(t), nil
	}
	if strings.HasPrefix(lower, "url(") && strings.HasSuffix(raw, ")") {
		path := raw[4 : len(raw)-1]
		path = unquote(path)
		return style.FamilyFromPath(path), nil
	}
	return style.FamilyFromName(unquote(raw)), nil
}

var weightKeywords = map[string]float64{
	"normal":  400,
	"bold":    700,
	"bolder":  900,
	"light":   300,
	"lighter": 100,
}

func parseWeight(raw string) (float64, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if w, ok := weightKeywords[raw]; ok {
		return w, nil
	}
	w, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, lerr.StyleValueError("invalid font weight: " + raw)
	}
	if w <= 0 {
		return 0, lerr.StyleValueError("font weight out of range: " + raw)
	}
	return w, nil
}

func parseFontStyle(raw string) (style.FontStyleKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "normal":
		return style.FontStyleNormal, nil
	case "italic":
		return style.FontStyleItalic, nil
	case "oblique":
		return style.FontStyleOblique, nil
	default:
		return 0, lerr.StyleValueError("invalid font style: " + raw)
	}
}

func parseAlignment(raw string) (style.TextAlignment, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "left":
		return style.AlignLeft, nil
	case "center":
		return style.AlignCenter, nil
	case "right":
		return style.AlignRight, nil
	case "justify":
		return style.AlignJustify, nil
	default:
		return 0, lerr.StyleValueError("invalid text alignment: " + raw)
	}
}

// variationPairPattern matches one `"tag" value` entry of a
// variation-settings list. The space between tag and value is optional,
// since the parser's token stream has its whitespace removed.
var variationPairPattern = regexp.MustCompile(`^"([A-Za-z0-9]{4})"\s*(-?[0-9]+)$`)

func parseVariationSettings(raw string) ([]style.VariationSetting, error) {
	var settings []style.VariationSetting
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		m := variationPairPattern.FindStringSubmatch(part)
		if m == nil {
			return nil, lerr.StyleValueError("malformed variation-settings entry: " + part)
		}
		v, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, lerr.StyleValueError("malformed variation-settings value: " + part)
		}
		settings = append(settings, style.VariationSetting{Tag: m[1], Value: int32(v)})
	}
	return settings, nil
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
