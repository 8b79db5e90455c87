package unitdef

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/astrenok/unum/exprparse"
)

const aliasMarker = "@alias"

// Parse reads the definition language and returns its records in file
// order. It stops at the first malformed line and returns a
// *DefinitionError for it; callers therefore never act on a partially
// valid file.
func Parse(text string) ([]Definition, error) {
	var defs []Definition
	for i, raw := range strings.Split(text, "\n") {
		line := raw
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		def, err := parseLine(line, i+1)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}

	return defs, nil
}

// parseLine dispatches one non-blank line to the record parser for its
// form: @alias, prefix, base, affine, or derived.
func parseLine(line string, lineNo int) (Definition, error) {
	fail := func(reason string, cause error) (Definition, error) {
		return Definition{}, &DefinitionError{Line: lineNo, Text: line, Reason: reason, Cause: cause}
	}

	if strings.HasPrefix(line, "@") {
		if !strings.HasPrefix(line, aliasMarker+" ") && !strings.HasPrefix(line, aliasMarker+"\t") {
			return fail("unknown directive", nil)
		}

		return parseAlias(line, lineNo)
	}

	segments := splitChain(line)
	head := strings.Fields(segments[0])
	switch {
	case len(head) == 1 && strings.HasSuffix(head[0], "-") && len(head[0]) > 1:
		return parsePrefix(head[0], segments[1:], line, lineNo)
	case len(head) == 2 && head[1] == "-":
		return parseBase(head[0], segments[1:], line, lineNo)
	case len(head) == 1 && len(segments) >= 2:
		return parseUnit(head[0], segments[1:], line, lineNo)
	default:
		return fail("unrecognized definition form", nil)
	}
}

// parseAlias handles "@alias <unit> = alt1 = alt2 ...".
func parseAlias(line string, lineNo int) (Definition, error) {
	body := strings.TrimSpace(line[len(aliasMarker):])
	segments := splitChain(body)
	if len(segments) < 2 {
		return Definition{}, &DefinitionError{Line: lineNo, Text: line, Reason: "@alias needs a unit and at least one alternate name"}
	}
	target := segments[0]
	if !isName(target) {
		return Definition{}, &DefinitionError{Line: lineNo, Text: line, Reason: "invalid unit name " + strconv.Quote(target)}
	}
	aliases := make([]string, 0, len(segments)-1)
	for _, alt := range segments[1:] {
		if !isName(alt) {
			return Definition{}, &DefinitionError{Line: lineNo, Text: line, Reason: "invalid alias " + strconv.Quote(alt)}
		}
		aliases = append(aliases, alt)
	}

	return Definition{Kind: KindAlias, Name: target, Aliases: aliases, Line: lineNo}, nil
}

// parsePrefix handles "kilo- = 1e3 = k-". Chain items keep a trailing
// dash; the first is the prefix symbol, the rest extra prefix aliases.
func parsePrefix(name string, chain []string, line string, lineNo int) (Definition, error) {
	fail := func(reason string) (Definition, error) {
		return Definition{}, &DefinitionError{Line: lineNo, Text: line, Reason: reason}
	}

	trimmed := strings.TrimSuffix(name, "-")
	if !isName(trimmed) {
		return fail("invalid prefix name " + strconv.Quote(name))
	}
	if len(chain) == 0 {
		return fail("prefix needs a multiplier")
	}
	mult, err := strconv.ParseFloat(chain[0], 64)
	if err != nil || mult <= 0 {
		return fail("prefix multiplier must be a positive number, got " + strconv.Quote(chain[0]))
	}

	def := Definition{Kind: KindPrefix, Name: trimmed, Multiplier: mult, Line: lineNo}
	for i, item := range chain[1:] {
		if !strings.HasSuffix(item, "-") || !isName(strings.TrimSuffix(item, "-")) {
			return fail("prefix alternate " + strconv.Quote(item) + " must end with '-'")
		}
		short := strings.TrimSuffix(item, "-")
		if i == 0 {
			def.Symbol = short
		} else {
			def.Aliases = append(def.Aliases, short)
		}
	}

	return def, nil
}

// parseBase handles "meter - = m = metre".
func parseBase(name string, chain []string, line string, lineNo int) (Definition, error) {
	if !isName(name) {
		return Definition{}, &DefinitionError{Line: lineNo, Text: line, Reason: "invalid unit name " + strconv.Quote(name)}
	}
	def := Definition{Kind: KindBase, Name: name, Line: lineNo}
	if err := applyChain(&def, chain, line, lineNo); err != nil {
		return Definition{}, err
	}

	return def, nil
}

// parseUnit handles derived ("newton = kg * m / s ** 2 = N") and affine
// ("degC = 1 kelvin ; 273.15 = celsius") lines; the affine form is
// recognized by the ";" in the expression segment.
func parseUnit(name string, segments []string, line string, lineNo int) (Definition, error) {
	fail := func(reason string, cause error) (Definition, error) {
		return Definition{}, &DefinitionError{Line: lineNo, Text: line, Reason: reason, Cause: cause}
	}

	if !isName(name) {
		return fail("invalid unit name "+strconv.Quote(name), nil)
	}

	def := Definition{Kind: KindDerived, Name: name, Line: lineNo}
	exprText := segments[0]
	if before, after, found := strings.Cut(exprText, ";"); found {
		offset, err := strconv.ParseFloat(strings.TrimSpace(after), 64)
		if err != nil {
			return fail("affine offset must be a number, got "+strconv.Quote(strings.TrimSpace(after)), nil)
		}
		def.Kind = KindAffine
		def.Offset = offset
		exprText = strings.TrimSpace(before)
	}
	if exprText == "" {
		return fail("missing definition expression", nil)
	}

	node, err := exprparse.Parse(exprText)
	if err != nil {
		return fail("bad expression", err)
	}
	def.Expr = node
	def.ExprText = exprText
	if err := applyChain(&def, segments[1:], line, lineNo); err != nil {
		return Definition{}, err
	}

	return def, nil
}

// applyChain assigns "= symbol = alias..." tail segments.
func applyChain(def *Definition, chain []string, line string, lineNo int) error {
	for i, item := range chain {
		if !isName(item) {
			return &DefinitionError{Line: lineNo, Text: line, Reason: "invalid name " + strconv.Quote(item)}
		}
		if i == 0 {
			def.Symbol = item
		} else {
			def.Aliases = append(def.Aliases, item)
		}
	}

	return nil
}

// splitChain splits a line on "=" and trims each segment.
func splitChain(line string) []string {
	parts := strings.Split(line, "=")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts
}

// isName reports whether s is a legal unit/prefix identifier: a letter
// or underscore followed by letters, digits, or underscores.
func isName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}

	return true
}
