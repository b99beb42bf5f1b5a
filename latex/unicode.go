package latex

import (
	"strings"
	"unicode"
)

var symbols = map[string]string{
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ", "epsilon": "ε",
	"varepsilon": "ε", "zeta": "ζ", "eta": "η", "theta": "θ", "vartheta": "ϑ",
	"iota": "ι", "kappa": "κ", "lambda": "λ", "mu": "μ", "nu": "ν", "xi": "ξ",
	"pi": "π", "varpi": "ϖ", "rho": "ρ", "sigma": "σ", "tau": "τ",
	"upsilon": "υ", "phi": "φ", "varphi": "φ", "chi": "χ", "psi": "ψ",
	"omega": "ω",
	"Gamma": "Γ", "Delta": "Δ", "Theta": "Θ", "Lambda": "Λ", "Xi": "Ξ",
	"Pi": "Π", "Sigma": "Σ", "Upsilon": "Υ", "Phi": "Φ", "Psi": "Ψ",
	"Omega": "Ω",

	"infty": "∞", "partial": "∂", "nabla": "∇", "forall": "∀", "exists": "∃",
	"emptyset": "∅", "varnothing": "∅", "hbar": "ℏ", "ell": "ℓ", "angle": "∠",
	"degree": "°", "prime": "′",

	"sum": "∑", "prod": "∏", "int": "∫", "iint": "∬", "oint": "∮",
	"bigcup": "⋃", "bigcap": "⋂",

	"pm": "±", "mp": "∓", "times": "×", "div": "÷", "cdot": "·", "ast": "∗",
	"star": "⋆", "circ": "∘", "bullet": "•", "oplus": "⊕", "otimes": "⊗",
	"cup": "∪", "cap": "∩", "setminus": "∖", "wedge": "∧", "land": "∧",
	"vee": "∨", "lor": "∨", "neg": "¬", "lnot": "¬",

	"leq": "≤", "le": "≤", "geq": "≥", "ge": "≥", "neq": "≠", "ne": "≠",
	"approx": "≈", "equiv": "≡", "sim": "∼", "simeq": "≃", "cong": "≅",
	"propto": "∝", "ll": "≪", "gg": "≫", "in": "∈", "notin": "∉", "ni": "∋",
	"subset": "⊂", "supset": "⊃", "subseteq": "⊆", "supseteq": "⊇",
	"perp": "⊥", "parallel": "∥", "mid": "∣",

	"to": "→", "rightarrow": "→", "leftarrow": "←", "gets": "←",
	"leftrightarrow": "↔", "Rightarrow": "⇒", "implies": "⇒",
	"Leftarrow": "⇐", "Leftrightarrow": "⇔", "iff": "⇔", "mapsto": "↦",
	"uparrow": "↑", "downarrow": "↓",

	"ldots": "…", "cdots": "⋯", "vdots": "⋮", "ddots": "⋱",
	"langle": "⟨", "rangle": "⟩", "lfloor": "⌊", "rfloor": "⌋",
	"lceil": "⌈", "rceil": "⌉", "lvert": "|", "rvert": "|", "vert": "|",
	"Vert": "‖",

	"quad": "  ", "qquad": "    ",
}

var operators = map[string]bool{
	"sin": true, "cos": true, "tan": true, "cot": true, "sec": true, "csc": true,
	"arcsin": true, "arccos": true, "arctan": true, "sinh": true, "cosh": true,
	"tanh": true, "log": true, "ln": true, "lg": true, "exp": true, "lim": true,
	"max": true, "min": true, "sup": true, "inf": true, "det": true, "dim": true,
	"gcd": true, "deg": true, "arg": true, "ker": true, "Pr": true,
}

// textual commands keep their argument and drop the formatting.
var textual = map[string]bool{
	"text": true, "mathrm": true, "mathbf": true, "mathit": true,
	"mathsf": true, "mathtt": true, "textbf": true, "textit": true,
	"operatorname": true, "boldsymbol": true, "mathcal": true,
}

var blackboard = map[rune]string{
	'N': "ℕ", 'Z': "ℤ", 'Q': "ℚ", 'R': "ℝ", 'C': "ℂ", 'P': "ℙ", 'H': "ℍ",
}

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴', '5': '⁵', '6': '⁶',
	'7': '⁷', '8': '⁸', '9': '⁹', '+': '⁺', '-': '⁻', '=': '⁼', '(': '⁽',
	')': '⁾', 'a': 'ᵃ', 'b': 'ᵇ', 'c': 'ᶜ', 'd': 'ᵈ', 'e': 'ᵉ', 'f': 'ᶠ',
	'g': 'ᵍ', 'h': 'ʰ', 'i': 'ⁱ', 'j': 'ʲ', 'k': 'ᵏ', 'l': 'ˡ', 'm': 'ᵐ',
	'n': 'ⁿ', 'o': 'ᵒ', 'p': 'ᵖ', 'r': 'ʳ', 's': 'ˢ', 't': 'ᵗ', 'u': 'ᵘ',
	'v': 'ᵛ', 'w': 'ʷ', 'x': 'ˣ', 'y': 'ʸ', 'z': 'ᶻ', 'T': 'ᵀ', '′': '′',
}

var subscripts = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄', '5': '₅', '6': '₆',
	'7': '₇', '8': '₈', '9': '₉', '+': '₊', '-': '₋', '=': '₌', '(': '₍',
	')': '₎', 'a': 'ₐ', 'e': 'ₑ', 'h': 'ₕ', 'i': 'ᵢ', 'j': 'ⱼ', 'k': 'ₖ',
	'l': 'ₗ', 'm': 'ₘ', 'n': 'ₙ', 'o': 'ₒ', 'p': 'ₚ', 'r': 'ᵣ', 's': 'ₛ',
	't': 'ₜ', 'u': 'ᵤ', 'v': 'ᵥ', 'x': 'ₓ',
}

// ToUnicode converts TeX math source to Unicode notation. Greek letters,
// operators, relations and arrows become their symbols, scripts become
// super- and subscript characters where Unicode has them, \frac{a}{b}
// becomes a/b and \sqrt{x} becomes √x. Unknown commands are kept verbatim.
func ToUnicode(tex string) string {
	c := &converter{src: []rune(tex)}
	return strings.TrimSpace(c.sequence(0))
}

type converter struct {
	src []rune
	pos int
}

// sequence converts atoms until the closing rune (0 for end of input).
func (c *converter) sequence(closing rune) string {
	var b strings.Builder
	for c.pos < len(c.src) {
		r := c.src[c.pos]
		if closing != 0 && r == closing {
			c.pos++
			return b.String()
		}
		switch r {
		case '^':
			c.pos++
			b.WriteString(script(c.atom(), superscripts, "^"))
		case '_':
			c.pos++
			b.WriteString(script(c.atom(), subscripts, "_"))
		case ' ':
			c.skipSpaces()
			b.WriteString(" ")
		case '&', '~':
			c.pos++
			b.WriteString(" ")
		default:
			b.WriteString(c.atom())
		}
	}
	return b.String()
}

// atom converts one group, command or rune.
func (c *converter) atom() string {
	c.skipSpaces()
	if c.pos >= len(c.src) {
		return ""
	}
	r := c.src[c.pos]
	switch r {
	case '{':
		c.pos++
		return c.sequence('}')
	case '\\':
		c.pos++
		return c.command()
	}
	c.pos++
	return string(r)
}

func (c *converter) command() string {
	start := c.pos
	for c.pos < len(c.src) && unicode.IsLetter(c.src[c.pos]) {
		c.pos++
	}
	name := string(c.src[start:c.pos])
	if name == "" {
		if c.pos >= len(c.src) {
			return "\\"
		}
		r := c.src[c.pos]
		c.pos++
		switch r {
		case ',', ';', ':', ' ':
			return " "
		case '!':
			return ""
		case '\\':
			return " "
		case '|':
			return "‖"
		}
		return string(r)
	}

	switch {
	case name == "frac" || name == "dfrac" || name == "tfrac":
		num, den := c.atom(), c.atom()
		return wrap(num) + "/" + wrap(den)
	case name == "sqrt":
		index := c.optional()
		arg := c.atom()
		root := "√"
		switch index {
		case "":
		case "3":
			root = "∛"
		case "4":
			root = "∜"
		default:
			root = script(index, superscripts, "^") + "√"
		}
		return root + wrap(arg)
	case name == "mathbb":
		arg := c.atom()
		var b strings.Builder
		for _, r := range arg {
			if s, ok := blackboard[r]; ok {
				b.WriteString(s)
			} else {
				b.WriteRune(r)
			}
		}
		return b.String()
	case name == "left" || name == "right" || name == "big" || name == "Big" ||
		name == "bigl" || name == "bigr" || name == "Bigl" || name == "Bigr":
		if c.pos < len(c.src) && c.src[c.pos] == '.' {
			c.pos++
		}
		return ""
	case name == "displaystyle" || name == "limits" || name == "nolimits":
		return ""
	case textual[name]:
		return c.atom()
	case operators[name]:
		return name
	}
	if s, ok := symbols[name]; ok {
		return s
	}
	return "\\" + name
}

// optional reads a bracketed optional argument such as the n in \sqrt[n]{x}.
func (c *converter) optional() string {
	c.skipSpaces()
	if c.pos >= len(c.src) || c.src[c.pos] != '[' {
		return ""
	}
	c.pos++
	return c.sequence(']')
}

func (c *converter) skipSpaces() {
	for c.pos < len(c.src) && c.src[c.pos] == ' ' {
		c.pos++
	}
}

// script maps s to script characters when every rune has one, otherwise it
// falls back to the caret or underscore notation.
func script(s string, table map[rune]rune, marker string) string {
	if s == "" {
		return marker
	}
	var b strings.Builder
	for _, r := range s {
		m, ok := table[r]
		if !ok {
			return marker + wrap(s)
		}
		b.WriteRune(m)
	}
	return b.String()
}

// wrap parenthesizes s unless it is a single rune.
func wrap(s string) string {
	if len([]rune(s)) <= 1 {
		return s
	}
	return "(" + s + ")"
}
