package registry

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/minio/highwayhash"

	"github.com/astrenok/unum/dim"
	"github.com/astrenok/unum/exprparse"
	"github.com/astrenok/unum/unit"
	"github.com/astrenok/unum/unitdef"
)

// nextRegistryID stamps each Registry (and every Expression it creates)
// with a process-unique identity, so cross-registry algebra can fail
// instead of mixing vocabularies.
var nextRegistryID atomic.Uint64

// fingerprintKey is the fixed HighwayHash key for Fingerprint; it only
// needs to be stable, not secret.
var fingerprintKey = []byte("unum.registry.fingerprint.key.01")

// Registry owns a unit definition table and provides name resolution,
// dimensional reduction, expression parsing, and conversion.
//
// A Registry is safe for concurrent readers once loaded; Load and
// LoadSystems are writes and must be externally serialized.
type Registry struct {
	id          uint64
	allowPlural bool

	// mu guards tabs, memo maps, parse cache, systems, and fp.
	mu      sync.RWMutex
	tabs    tables
	dims    map[string]dim.Vector
	bases   map[string]baseForm
	parsed  map[string]unit.Expression
	systems map[string][]string
	fp      uint64
}

// tables holds the committed definition indexes. Values are never
// mutated after commit; Load builds a fresh copy and swaps it in.
type tables struct {
	// units maps canonical name → definition (base/derived/affine).
	units map[string]*unitdef.Definition

	// names maps symbol or alias → canonical name.
	names map[string]string

	// prefixes maps prefix long name → multiplier;
	// prefixNames maps prefix symbol/alias → long name.
	prefixes    map[string]float64
	prefixNames map[string]string

	// prefixTokens caches every prefix token (long names, symbols,
	// aliases) sorted by descending length, for longest-match-first
	// decomposition.
	prefixTokens []string
}

// New creates an empty Registry. Load definitions (or use Default for
// the built-in table) before parsing or converting anything.
func New(opts ...Option) *Registry {
	r := &Registry{
		id:          nextRegistryID.Add(1),
		allowPlural: true,
		tabs:        newTables(),
		dims:        make(map[string]dim.Vector),
		bases:       make(map[string]baseForm),
		parsed:      make(map[string]unit.Expression),
		systems:     make(map[string][]string),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

func newTables() tables {
	return tables{
		units:       make(map[string]*unitdef.Definition),
		names:       make(map[string]string),
		prefixes:    make(map[string]float64),
		prefixNames: make(map[string]string),
	}
}

// ID returns the process-unique registry stamp carried by every
// Expression this registry creates.
func (r *Registry) ID() uint64 { return r.id }

// ------------------------------------------------------------------------
// Loading
// ------------------------------------------------------------------------

// Load parses definition text and merges it into the registry.
//
// Loading is all-or-nothing: the new definitions are staged and fully
// validated (syntax, duplicates, unknown references, affine references,
// cycles) before anything is committed, so a failed Load leaves the
// registry exactly as it was. A successful Load invalidates the
// dimensionality, base-form, and parsed-expression caches.
func (r *Registry) Load(text string) error {
	// 1) Syntax: one bad line rejects the file.
	defs, err := unitdef.Parse(text)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// 2) Stage: copy the committed tables and apply each record.
	st := r.tabs.clone()
	for i := range defs {
		if err = st.apply(&defs[i]); err != nil {
			return err
		}
	}
	st.rebuildPrefixTokens()

	// 3) Validate references and offset discipline per new record.
	for i := range defs {
		def := &defs[i]
		if def.Expr == nil {
			continue
		}
		if err = st.checkReferences(def.Expr, def, r.allowPlural); err != nil {
			return err
		}
	}

	// 4) Validate the whole staged table is acyclic.
	if err = st.checkCycles(r.allowPlural); err != nil {
		return err
	}

	// 5) Commit and drop memoized state derived from the old table.
	r.tabs = st
	r.dims = make(map[string]dim.Vector)
	r.bases = make(map[string]baseForm)
	r.parsed = make(map[string]unit.Expression)
	r.fp = st.fingerprint()

	return nil
}

// Lookup resolves a raw token (name, symbol, alias, prefixed or plural
// form) to its unit record and the multiplier contributed by any
// prefix: Lookup("km") yields the meter record and 1000.
func (r *Registry) Lookup(token string) (Record, float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	canonical, mult, err := r.tabs.resolve(token, r.allowPlural)
	if err != nil {
		return Record{}, 0, err
	}
	def := r.tabs.units[canonical]

	return Record{
		Name:      def.Name,
		Symbol:    def.Symbol,
		Aliases:   append([]string(nil), def.Aliases...),
		Kind:      def.Kind,
		Reference: def.ExprText,
		Offset:    def.Offset,
	}, mult, nil
}

// Fingerprint returns a 64-bit HighwayHash of the committed definition
// table in canonical order. Two registries loaded from identical
// definitions report equal fingerprints; the empty registry reports 0.
func (r *Registry) Fingerprint() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.fp
}

// ------------------------------------------------------------------------
// Staging: duplicate checks and record application
// ------------------------------------------------------------------------

func (t tables) clone() tables {
	out := newTables()
	for k, v := range t.units {
		out.units[k] = v
	}
	for k, v := range t.names {
		out.names[k] = v
	}
	for k, v := range t.prefixes {
		out.prefixes[k] = v
	}
	for k, v := range t.prefixNames {
		out.prefixNames[k] = v
	}

	return out
}

// apply merges one record into the staged tables, enforcing namespace
// uniqueness: unit names, symbols, and aliases share one namespace,
// prefixes another.
func (t *tables) apply(def *unitdef.Definition) error {
	dup := func(token string) error {
		return &unitdef.DefinitionError{
			Line:   def.Line,
			Text:   def.Name,
			Reason: "name " + strconv.Quote(token) + " already defined",
			Cause:  ErrDuplicateDefinition,
		}
	}

	switch def.Kind {
	case unitdef.KindPrefix:
		for _, token := range append([]string{def.Name, def.Symbol}, def.Aliases...) {
			if token == "" {
				continue
			}
			if _, ok := t.prefixes[token]; ok {
				return dup(token + "-")
			}
			if _, ok := t.prefixNames[token]; ok {
				return dup(token + "-")
			}
		}
		t.prefixes[def.Name] = def.Multiplier
		if def.Symbol != "" {
			t.prefixNames[def.Symbol] = def.Name
		}
		for _, alias := range def.Aliases {
			t.prefixNames[alias] = def.Name
		}
	case unitdef.KindAlias:
		if _, ok := t.units[def.Name]; !ok {
			return &unitdef.DefinitionError{
				Line:   def.Line,
				Text:   def.Name,
				Reason: "@alias target is not defined",
				Cause:  ErrUnknownReference,
			}
		}
		for _, alias := range def.Aliases {
			if t.hasUnitToken(alias) {
				return dup(alias)
			}
			t.names[alias] = def.Name
		}
	default: // base, derived, affine
		for _, token := range append([]string{def.Name, def.Symbol}, def.Aliases...) {
			if token != "" && t.hasUnitToken(token) {
				return dup(token)
			}
		}
		t.units[def.Name] = def
		if def.Symbol != "" {
			t.names[def.Symbol] = def.Name
		}
		for _, alias := range def.Aliases {
			t.names[alias] = def.Name
		}
	}

	return nil
}

func (t *tables) hasUnitToken(token string) bool {
	if _, ok := t.units[token]; ok {
		return true
	}
	_, ok := t.names[token]

	return ok
}

func (t *tables) rebuildPrefixTokens() {
	t.prefixTokens = t.prefixTokens[:0]
	for name := range t.prefixes {
		t.prefixTokens = append(t.prefixTokens, name)
	}
	for name := range t.prefixNames {
		t.prefixTokens = append(t.prefixTokens, name)
	}
	// Longest first so "deca" wins over "d" on "decameter"; equal-length
	// ties cannot exist, duplicates are rejected at apply time.
	sort.Slice(t.prefixTokens, func(i, j int) bool {
		if len(t.prefixTokens[i]) != len(t.prefixTokens[j]) {
			return len(t.prefixTokens[i]) > len(t.prefixTokens[j])
		}

		return t.prefixTokens[i] < t.prefixTokens[j]
	})
}

// ------------------------------------------------------------------------
// Validation: references, offset discipline, cycles
// ------------------------------------------------------------------------

// checkReferences walks a definition expression: every identifier must
// resolve, must not be an offset unit, and exponent subtrees must be
// purely numeric.
func (t *tables) checkReferences(node *exprparse.Node, def *unitdef.Definition, allowPlural bool) error {
	fail := func(reason string, cause error) error {
		return &unitdef.DefinitionError{Line: def.Line, Text: def.Name + " = " + def.ExprText, Reason: reason, Cause: cause}
	}

	switch node.Kind {
	case exprparse.NodeNumber:
		return nil
	case exprparse.NodeName:
		canonical, _, err := t.resolve(node.Name, allowPlural)
		if err != nil {
			return fail("unknown unit "+strconv.Quote(node.Name), ErrUnknownReference)
		}
		if t.units[canonical].Kind == unitdef.KindAffine {
			return fail("offset unit "+strconv.Quote(node.Name)+" cannot define other units", ErrAffineReference)
		}

		return nil
	case exprparse.NodePow:
		if !numericOnly(node.Right) {
			return fail("exponent must be numeric", ErrNonNumericExponent)
		}

		return t.checkReferences(node.Left, def, allowPlural)
	default: // Mul, Div
		if err := t.checkReferences(node.Left, def, allowPlural); err != nil {
			return err
		}

		return t.checkReferences(node.Right, def, allowPlural)
	}
}

func numericOnly(node *exprparse.Node) bool {
	if node == nil {
		return false
	}
	switch node.Kind {
	case exprparse.NodeNumber:
		return true
	case exprparse.NodeName:
		return false
	default:
		return numericOnly(node.Left) && numericOnly(node.Right)
	}
}

// checkCycles runs a three-color DFS over the reference graph of the
// staged table and rejects any cycle.
func (t *tables) checkCycles(allowPlural bool) error {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(t.units))

	var visit func(name string) error
	visit = func(name string) error {
		switch color[name] {
		case gray:
			def := t.units[name]

			return &unitdef.DefinitionError{
				Line:   def.Line,
				Text:   def.Name + " = " + def.ExprText,
				Reason: "definition chain loops back to " + strconv.Quote(name),
				Cause:  ErrCyclicDefinition,
			}
		case black:
			return nil
		}
		color[name] = gray
		def := t.units[name]
		if def.Expr != nil {
			for _, ref := range referencedUnits(def.Expr, t, allowPlural) {
				if err := visit(ref); err != nil {
					return err
				}
			}
		}
		color[name] = black

		return nil
	}

	names := make([]string, 0, len(t.units))
	for name := range t.units {
		names = append(names, name)
	}
	sort.Strings(names) // deterministic error attribution
	for _, name := range names {
		if err := visit(name); err != nil {
			return err
		}
	}

	return nil
}

// referencedUnits lists the canonical units an expression mentions,
// skipping exponent subtrees (numeric by validation).
func referencedUnits(node *exprparse.Node, t *tables, allowPlural bool) []string {
	var out []string
	var walk func(n *exprparse.Node)
	walk = func(n *exprparse.Node) {
		if n == nil {
			return
		}
		switch n.Kind {
		case exprparse.NodeName:
			if canonical, _, err := t.resolve(n.Name, allowPlural); err == nil {
				out = append(out, canonical)
			}
		case exprparse.NodePow:
			walk(n.Left)
		case exprparse.NodeMul, exprparse.NodeDiv:
			walk(n.Left)
			walk(n.Right)
		}
	}
	walk(node)

	return out
}

// ------------------------------------------------------------------------
// Name resolution
// ------------------------------------------------------------------------

// resolve implements the resolution pipeline: exact canonical name →
// exact symbol → exact alias → longest-prefix decomposition (remainder
// resolved recursively) → plural stripping as last resort.
//
// The returned multiplier aggregates all matched prefixes; offset units
// never take prefixes.
func (t *tables) resolve(token string, allowPlural bool) (string, float64, error) {
	// 1) Exact canonical name.
	if _, ok := t.units[token]; ok {
		return token, 1, nil
	}

	// 2-3) Exact symbol or alias.
	if canonical, ok := t.names[token]; ok {
		return canonical, 1, nil
	}

	// 4) Prefix decomposition, longest prefix first.
	for _, prefix := range t.prefixTokens {
		if len(prefix) >= len(token) || !strings.HasPrefix(token, prefix) {
			continue
		}
		canonical, mult, err := t.resolve(token[len(prefix):], allowPlural)
		if err != nil {
			continue
		}
		if t.units[canonical].Kind == unitdef.KindAffine {
			// "kilodegC" is physically meaningless.
			continue
		}

		return canonical, t.prefixMultiplier(prefix) * mult, nil
	}

	// 5) Plural stripping, never recursive into itself.
	if allowPlural && len(token) > 2 && strings.HasSuffix(token, "s") {
		if canonical, mult, err := t.resolve(token[:len(token)-1], false); err == nil {
			return canonical, mult, nil
		}
	}

	return "", 0, &NotFoundError{Token: token}
}

func (t *tables) prefixMultiplier(token string) float64 {
	if mult, ok := t.prefixes[token]; ok {
		return mult
	}

	return t.prefixes[t.prefixNames[token]]
}

// ------------------------------------------------------------------------
// Fingerprint
// ------------------------------------------------------------------------

// fingerprint hashes the canonical serialization of the table.
func (t *tables) fingerprint() uint64 {
	if len(t.units) == 0 && len(t.prefixes) == 0 {
		return 0
	}

	var lines []string
	for name, def := range t.units {
		lines = append(lines, fmt.Sprintf("unit|%s|%s|%s|%s|%g|%s",
			name, def.Kind, def.Symbol, def.ExprText, def.Offset, strings.Join(sortedCopy(def.Aliases), ",")))
	}
	for name, mult := range t.prefixes {
		lines = append(lines, fmt.Sprintf("prefix|%s|%g", name, mult))
	}
	for name, canonical := range t.prefixNames {
		lines = append(lines, fmt.Sprintf("prefixname|%s|%s", name, canonical))
	}
	for name, canonical := range t.names {
		lines = append(lines, fmt.Sprintf("name|%s|%s", name, canonical))
	}
	sort.Strings(lines)

	h, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return 0
	}
	for _, line := range lines {
		_, _ = h.Write([]byte(line))
		_, _ = h.Write([]byte{'\n'})
	}

	return h.Sum64()
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)

	return out
}
