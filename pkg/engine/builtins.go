package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/joinery/pkg/design"
	"github.com/chazu/joinery/pkg/face"
	"github.com/chazu/joinery/pkg/interlock"
	"github.com/chazu/joinery/pkg/pattern"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms script source before passing it to zygomys.
// It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: tabs-pattern -> tabs_pattern
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator).
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus
		// operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpTabs wraps a pattern.TabsPattern so it can be passed between builtins.
type sexpTabs struct {
	pat pattern.TabsPattern
}

func (p *sexpTabs) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(tabs-pattern %s)", p.pat)
}
func (p *sexpTabs) Type() *zygo.RegisteredType { return nil }

// sexpTabDef wraps a recorded tab definition, as returned by fit.
type sexpTabDef struct {
	name string
	def  face.TabDef
}

func (d *sexpTabDef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(tab-def %q)", d.name)
}
func (d *sexpTabDef) Type() *zygo.RegisteredType { return nil }

// sexpFace wraps a face under construction.
type sexpFace struct {
	f face.TabbedFace
}

func (f *sexpFace) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(face :tab-width %g)", f.f.Options().TabWidth)
}
func (f *sexpFace) Type() *zygo.RegisteredType { return nil }

// sexpClosed wraps a materialized face outline.
type sexpClosed struct {
	name string
	c    face.ClosedFace
}

func (c *sexpClosed) SexpString(ps *zygo.PrintState) string {
	if c.name != "" {
		return fmt.Sprintf("(closed-face %q)", c.name)
	}
	return fmt.Sprintf("(closed-face %d commands)", c.c.Path().Len())
}
func (c *sexpClosed) Type() *zygo.RegisteredType { return nil }

// sexpOp wraps one face-building step. Op builtins (fw, rt, tabs, ...)
// return these; the face builtin threads them through the builder in order.
type sexpOp struct {
	name  string
	apply func(face.TabbedFace) (face.TabbedFace, error)
}

func (o *sexpOp) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(op %s)", o.name)
}
func (o *sexpOp) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value, treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a bool from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_left) and plain strings ("left").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toDir converts a keyword or string to an interlock.Dir.
func toDir(s zygo.Sexp) (interlock.Dir, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected direction keyword (:left, :right): %w", err)
	}
	switch name {
	case "left":
		return interlock.Left, nil
	case "right":
		return interlock.Right, nil
	}
	return 0, fmt.Errorf("invalid direction %q, expected left or right", name)
}

// toTurnLevel converts a keyword or string to a face.TurnLevel.
func toTurnLevel(s zygo.Sexp) (face.TurnLevel, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected level keyword (:auto, :base, :tab): %w", err)
	}
	switch name {
	case "auto":
		return face.TurnAuto, nil
	case "base":
		return face.TurnBase, nil
	case "tab":
		return face.TurnTab, nil
	}
	return 0, fmt.Errorf("invalid level %q, expected auto, base, or tab", name)
}

// toLevelPref converts a keyword or string to a required face.LevelPref,
// for the start-level and end-level edge overrides.
func toLevelPref(s zygo.Sexp) (face.LevelPref, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return face.NoPref, fmt.Errorf("expected level keyword (:base, :tab): %w", err)
	}
	switch name {
	case "base":
		return face.Required(face.Base), nil
	case "tab":
		return face.Required(face.Tab), nil
	}
	return face.NoPref, fmt.Errorf("invalid level %q, expected base or tab", name)
}

// toTabsArg accepts either a pattern value or a recorded tab definition and
// returns the pattern plus edge overrides carrying the definition's resolved
// drawing options, if any.
func toTabsArg(s zygo.Sexp) (pattern.TabsPattern, face.EdgeOptions, error) {
	switch v := s.(type) {
	case *sexpTabs:
		return v.pat, face.EdgeOptions{}, nil
	case *sexpTabDef:
		o := v.def.Options
		return v.def.Pattern, face.EdgeOptions{
			Kerf:               &o.Kerf,
			Dir:                &o.Dir,
			OuterCornersRadius: &o.OuterCornersRadius,
			InnerCornersRadius: &o.InnerCornersRadius,
		}, nil
	}
	return pattern.TabsPattern{}, face.EdgeOptions{},
		fmt.Errorf("expected tabs pattern or tab definition, got %T (%s)", s, s.SexpString(nil))
}

// edgeOptionsFromKW applies per-edge keyword overrides on top of base.
// Script kerf values are one-side widths.
func edgeOptionsFromKW(pa kwArgs, base face.EdgeOptions, op string) (face.EdgeOptions, error) {
	out := base
	if v, ok := pa.kw["kerf"]; ok {
		f, err := toFloat64(v)
		if err != nil {
			return out, fmt.Errorf("%s: kerf: %w", op, err)
		}
		k := interlock.OneSide(f)
		out.Kerf = &k
	}
	if v, ok := pa.kw["dir"]; ok {
		d, err := toDir(v)
		if err != nil {
			return out, fmt.Errorf("%s: dir: %w", op, err)
		}
		out.Dir = &d
	}
	if v, ok := pa.kw["outer-radius"]; ok {
		f, err := toFloat64(v)
		if err != nil {
			return out, fmt.Errorf("%s: outer-radius: %w", op, err)
		}
		out.OuterCornersRadius = &f
	}
	if v, ok := pa.kw["inner-radius"]; ok {
		f, err := toFloat64(v)
		if err != nil {
			return out, fmt.Errorf("%s: inner-radius: %w", op, err)
		}
		out.InnerCornersRadius = &f
	}
	if v, ok := pa.kw["start-level"]; ok {
		p, err := toLevelPref(v)
		if err != nil {
			return out, fmt.Errorf("%s: start-level: %w", op, err)
		}
		out.Start = p
	}
	if v, ok := pa.kw["end-level"]; ok {
		p, err := toLevelPref(v)
		if err != nil {
			return out, fmt.Errorf("%s: end-level: %w", op, err)
		}
		out.End = p
	}
	return out, nil
}

// turnOptsFromKW extracts the optional :level keyword of turn ops.
func turnOptsFromKW(pa kwArgs, op string) ([]face.TurnOpts, error) {
	v, ok := pa.kw["level"]
	if !ok {
		return nil, nil
	}
	lvl, err := toTurnLevel(v)
	if err != nil {
		return nil, fmt.Errorf("%s: level: %w", op, err)
	}
	return []face.TurnOpts{{Level: lvl}}, nil
}

func needFloats(pa kwArgs, op string, n int) ([]float64, error) {
	if len(pa.positional) != n {
		return nil, fmt.Errorf("%s requires %d positional arguments, got %d", op, n, len(pa.positional))
	}
	out := make([]float64, n)
	for i, s := range pa.positional {
		f, err := toFloat64(s)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", op, i+1, err)
		}
		out[i] = f
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// evalState is the per-evaluation mutable state shared by the builtins: the
// design being populated and the tab definitions recorded so far, visible
// across faces so a later face can fit against an earlier one.
type evalState struct {
	design *design.Design
	defs   map[string]face.TabDef
}

// registerBuiltins installs the design DSL into a zygomys environment.
//
// Source code must be preprocessed with preprocessSource() before evaluation
// so that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, st *evalState) {
	if st.defs == nil {
		st.defs = make(map[string]face.TabDef)
	}

	// simple turn ops share one registration shape: N floats, optional
	// :level keyword.
	turnOp := func(opName string, n int,
		build func(f face.TabbedFace, v []float64, to []face.TurnOpts) face.TabbedFace) {
		env.AddFunction(opName, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			v, err := needFloats(pa, opName, n)
			if err != nil {
				return zygo.SexpNull, err
			}
			to, err := turnOptsFromKW(pa, opName)
			if err != nil {
				return zygo.SexpNull, err
			}
			return &sexpOp{name: opName, apply: func(f face.TabbedFace) (face.TabbedFace, error) {
				return build(f, v, to), nil
			}}, nil
		})
	}

	// -----------------------------------------------------------------------
	// (tabs-pattern 10 5 10)  ; alternating tab/base lengths, tab first
	// -----------------------------------------------------------------------
	env.AddFunction("tabs_pattern", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		p := pattern.NewTabs()
		for i, a := range args {
			l, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("tabs-pattern: argument %d: %w", i+1, err)
			}
			if i%2 == 0 {
				p, err = p.Tab(l)
			} else {
				p, err = p.Base(l)
			}
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("tabs-pattern: argument %d: %w", i+1, err)
			}
		}
		return &sexpTabs{pat: p}, nil
	})

	// -----------------------------------------------------------------------
	// (distributed-tabs :length 120 :tab-every 25 :ratio 1.5
	//                   :start-tab false :end-tab false)
	// -----------------------------------------------------------------------
	env.AddFunction("distributed_tabs", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		o := pattern.DistributedOpts{StartWithTab: true, EndWithTab: true}

		if v, ok := pa.kw["length"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("distributed-tabs: length: %w", err)
			}
			o.Length = f
		}
		if v, ok := pa.kw["tab-every"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("distributed-tabs: tab-every: %w", err)
			}
			o.TabEveryLen = f
		}
		if v, ok := pa.kw["num-tabs"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("distributed-tabs: num-tabs: %w", err)
			}
			o.NumTabs = int(f)
		}
		if v, ok := pa.kw["min-tabs"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("distributed-tabs: min-tabs: %w", err)
			}
			o.MinNumTabs = int(f)
		}
		if v, ok := pa.kw["ratio"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("distributed-tabs: ratio: %w", err)
			}
			o.TabToSkipRatio = f
		}
		if v, ok := pa.kw["tab-length"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("distributed-tabs: tab-length: %w", err)
			}
			o.TabLength = f
		}
		if v, ok := pa.kw["start-tab"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("distributed-tabs: start-tab: %w", err)
			}
			o.StartWithTab = b
		}
		if v, ok := pa.kw["end-tab"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("distributed-tabs: end-tab: %w", err)
			}
			o.EndWithTab = b
		}

		p, err := pattern.Distributed(o)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("distributed-tabs: %w", err)
		}
		return &sexpTabs{pat: p}, nil
	})

	// -----------------------------------------------------------------------
	// (matching-tabs p)  ; the complementary pattern
	// (reverse-pattern p)
	// -----------------------------------------------------------------------
	env.AddFunction("matching_tabs", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("matching-tabs requires exactly 1 argument, got %d", len(args))
		}
		p, ok := args[0].(*sexpTabs)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("matching-tabs: expected tabs pattern, got %T", args[0])
		}
		return &sexpTabs{pat: p.pat.MatchingTabs()}, nil
	})

	env.AddFunction("reverse_pattern", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("reverse-pattern requires exactly 1 argument, got %d", len(args))
		}
		p, ok := args[0].(*sexpTabs)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("reverse-pattern: expected tabs pattern, got %T", args[0])
		}
		return &sexpTabs{pat: p.pat.Reverse()}, nil
	})

	// -----------------------------------------------------------------------
	// Straight moves: (fw 10), (bk 10), (no-tabs 10)
	// -----------------------------------------------------------------------
	env.AddFunction("fw", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := needFloats(parseArgs(args), "fw", 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpOp{name: "fw", apply: func(f face.TabbedFace) (face.TabbedFace, error) {
			return f.Forward(v[0]), nil
		}}, nil
	})

	env.AddFunction("bk", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := needFloats(parseArgs(args), "bk", 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpOp{name: "bk", apply: func(f face.TabbedFace) (face.TabbedFace, error) {
			return f.Back(v[0]), nil
		}}, nil
	})

	env.AddFunction("no_tabs", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := needFloats(parseArgs(args), "no-tabs", 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpOp{name: "no-tabs", apply: func(f face.TabbedFace) (face.TabbedFace, error) {
			return f.NoTabs(v[0]), nil
		}}, nil
	})

	// -----------------------------------------------------------------------
	// Turns: (rt 90), (lt 45 :level :tab), (arc-rt 90 20),
	// (bevel-rt 90 5), (smooth-lt 60 8), (round-rt 10 10),
	// (half-ellipse-lt 15 10)
	// -----------------------------------------------------------------------
	turnOp("rt", 1, func(f face.TabbedFace, v []float64, to []face.TurnOpts) face.TabbedFace {
		return f.Right(v[0], to...)
	})
	turnOp("lt", 1, func(f face.TabbedFace, v []float64, to []face.TurnOpts) face.TabbedFace {
		return f.Left(v[0], to...)
	})
	turnOp("arc_rt", 2, func(f face.TabbedFace, v []float64, to []face.TurnOpts) face.TabbedFace {
		return f.ArcRight(v[0], v[1], to...)
	})
	turnOp("arc_lt", 2, func(f face.TabbedFace, v []float64, to []face.TurnOpts) face.TabbedFace {
		return f.ArcLeft(v[0], v[1], to...)
	})
	turnOp("bevel_rt", 2, func(f face.TabbedFace, v []float64, to []face.TurnOpts) face.TabbedFace {
		return f.BevelRight(v[0], v[1], to...)
	})
	turnOp("bevel_lt", 2, func(f face.TabbedFace, v []float64, to []face.TurnOpts) face.TabbedFace {
		return f.BevelLeft(v[0], v[1], to...)
	})
	turnOp("smooth_rt", 2, func(f face.TabbedFace, v []float64, to []face.TurnOpts) face.TabbedFace {
		return f.SmoothRight(v[0], v[1], to...)
	})
	turnOp("smooth_lt", 2, func(f face.TabbedFace, v []float64, to []face.TurnOpts) face.TabbedFace {
		return f.SmoothLeft(v[0], v[1], to...)
	})
	turnOp("round_rt", 2, func(f face.TabbedFace, v []float64, to []face.TurnOpts) face.TabbedFace {
		return f.RoundCornerRight(v[0], v[1], to...)
	})
	turnOp("round_lt", 2, func(f face.TabbedFace, v []float64, to []face.TurnOpts) face.TabbedFace {
		return f.RoundCornerLeft(v[0], v[1], to...)
	})
	turnOp("half_ellipse_rt", 2, func(f face.TabbedFace, v []float64, to []face.TurnOpts) face.TabbedFace {
		return f.HalfEllipseRight(v[0], v[1], to...)
	})
	turnOp("half_ellipse_lt", 2, func(f face.TabbedFace, v []float64, to []face.TurnOpts) face.TabbedFace {
		return f.HalfEllipseLeft(v[0], v[1], to...)
	})

	// -----------------------------------------------------------------------
	// (tabs p :kerf 0.05 :outer-radius 1)
	// -----------------------------------------------------------------------
	env.AddFunction("tabs", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("tabs requires a pattern argument")
		}
		pat, base, err := toTabsArg(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("tabs: %w", err)
		}
		eo, err := edgeOptionsFromKW(pa, base, "tabs")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpOp{name: "tabs", apply: func(f face.TabbedFace) (face.TabbedFace, error) {
			return f.Tabs(pat, eo), nil
		}}, nil
	})

	// -----------------------------------------------------------------------
	// (tabs-def "bottom" p :kerf 0.05)
	//
	// Draws like tabs and records the resolved definition under the name,
	// visible to fit in this face and every later one.
	// -----------------------------------------------------------------------
	env.AddFunction("tabs_def", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("tabs-def requires a name and a pattern argument")
		}
		defName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("tabs-def: name: %w", err)
		}
		pat, base, err := toTabsArg(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("tabs-def: %w", err)
		}
		eo, err := edgeOptionsFromKW(pa, base, "tabs-def")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpOp{name: "tabs-def", apply: func(f face.TabbedFace) (face.TabbedFace, error) {
			f = f.TabsDef(defName, pat, eo)
			if d, ok := f.Tab(defName); ok {
				st.defs[defName] = d
			}
			return f, nil
		}}, nil
	})

	// -----------------------------------------------------------------------
	// (fit "bottom")  ; the mating edge of a recorded definition
	// -----------------------------------------------------------------------
	env.AddFunction("fit", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("fit requires exactly 1 argument, got %d", len(args))
		}
		defName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("fit: name: %w", err)
		}
		d, ok := st.defs[defName]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("fit: no tab definition named %q", defName)
		}
		return &sexpTabDef{name: defName, def: d.Fit()}, nil
	})

	// -----------------------------------------------------------------------
	// (face :tab-width 3 :tabs-dir :left :kerf 0.05 :box-mode true
	//       (tabs-def "bottom" p) (rt 90) (fw 10) ...)
	// -----------------------------------------------------------------------
	env.AddFunction("face", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		o := face.Options{}

		if v, ok := pa.kw["tab-width"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("face: tab-width: %w", err)
			}
			o.TabWidth = f
		}
		if v, ok := pa.kw["tabs-dir"]; ok {
			d, err := toDir(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("face: tabs-dir: %w", err)
			}
			o.TabsDir = d
		}
		if v, ok := pa.kw["kerf"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("face: kerf: %w", err)
			}
			o.Kerf = interlock.OneSide(f)
		}
		if v, ok := pa.kw["outer-radius"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("face: outer-radius: %w", err)
			}
			o.OuterCornersRadius = f
		}
		if v, ok := pa.kw["inner-radius"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("face: inner-radius: %w", err)
			}
			o.InnerCornersRadius = f
		}
		if v, ok := pa.kw["box-mode"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("face: box-mode: %w", err)
			}
			o.BoxMode = b
		}

		f := face.New(o)
		for i, a := range pa.positional {
			op, ok := a.(*sexpOp)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("face: step %d: expected face operation, got %T (%s)",
					i+1, a, a.SexpString(nil))
			}
			var err error
			f, err = op.apply(f)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("face: step %d (%s): %w", i+1, op.name, err)
			}
		}
		return &sexpFace{f: f}, nil
	})

	// -----------------------------------------------------------------------
	// (close-face f)
	// -----------------------------------------------------------------------
	env.AddFunction("close_face", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("close-face requires exactly 1 argument, got %d", len(args))
		}
		fc, ok := args[0].(*sexpFace)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("close-face: expected face, got %T (%s)", args[0], args[0].SexpString(nil))
		}
		c, err := fc.f.Close()
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("close-face: %w", err)
		}
		return &sexpClosed{c: c}, nil
	})

	// -----------------------------------------------------------------------
	// (defface "front" (face ...))
	//
	// Closes the face if it is not closed yet and registers it in the design.
	// -----------------------------------------------------------------------
	env.AddFunction("defface", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("defface requires a name and a face argument")
		}
		faceName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defface: name: %w", err)
		}

		var c face.ClosedFace
		switch v := args[1].(type) {
		case *sexpFace:
			c, err = v.f.Close()
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("defface %q: %w", faceName, err)
			}
		case *sexpClosed:
			c = v.c
		default:
			return zygo.SexpNull, fmt.Errorf("defface: expected face, got %T (%s)", args[1], args[1].SexpString(nil))
		}

		if err := st.design.AddFace(faceName, c); err != nil {
			return zygo.SexpNull, fmt.Errorf("defface: %w", err)
		}
		return &sexpClosed{name: faceName, c: c}, nil
	})
}
