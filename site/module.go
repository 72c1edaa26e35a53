package site

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"

	"github.com/oddtoolkit/docsite/siteconfig"
)

const defineConfigFunc = "defineConfig"

// decodeModule extracts the site configuration from a config module of the
// form `export default defineConfig({...})`. Only string, array and object
// literals are accepted as values.
func decodeModule(src []byte) (siteconfig.Site, error) {
	tree, err := js.Parse(parse.NewInputBytes(src), js.Options{})
	if err != nil {
		return siteconfig.Site{}, errors.Join(ErrInvalidModule, err)
	}

	var exported js.IExpr
	for _, stmt := range tree.BlockStmt.List {
		export, ok := stmt.(*js.ExportStmt)
		if !ok || !export.Default {
			continue
		}
		exported = export.Decl
	}
	if exported == nil {
		return siteconfig.Site{}, errors.Join(ErrInvalidModule, errors.New("no default export"))
	}

	object, err := configObject(exported)
	if err != nil {
		return siteconfig.Site{}, errors.Join(ErrInvalidModule, err)
	}
	value, err := literalValue(object)
	if err != nil {
		return siteconfig.Site{}, errors.Join(ErrInvalidModule, err)
	}

	// The literal tree is re-encoded so field checks match the JSON decoder.
	raw, err := json.Marshal(value)
	if err != nil {
		return siteconfig.Site{}, fmt.Errorf("encode module value: %w", err)
	}
	return siteconfig.DecodeJSON(raw)
}

func configObject(expr js.IExpr) (*js.ObjectExpr, error) {
	switch e := expr.(type) {
	case *js.GroupExpr:
		return configObject(e.X)
	case *js.ObjectExpr:
		return e, nil
	case *js.CallExpr:
		callee, ok := e.X.(*js.Var)
		if !ok || string(callee.Data) != defineConfigFunc {
			return nil, fmt.Errorf("default export calls %s, want %s", e.X.String(), defineConfigFunc)
		}
		if len(e.Args.List) != 1 || e.Args.List[0].Rest {
			return nil, fmt.Errorf("%s takes exactly one argument", defineConfigFunc)
		}
		return configObject(e.Args.List[0].Value)
	default:
		return nil, fmt.Errorf("default export is %s, want an object literal", expr.String())
	}
}

func literalValue(expr js.IExpr) (any, error) {
	switch e := expr.(type) {
	case *js.GroupExpr:
		return literalValue(e.X)
	case *js.LiteralExpr:
		if e.TokenType != js.StringToken {
			return nil, fmt.Errorf("unsupported literal %s", e.Data)
		}
		return unquoteJS(e.Data)
	case *js.ArrayExpr:
		out := make([]any, 0, len(e.List))
		for _, element := range e.List {
			if element.Spread || element.Value == nil {
				return nil, fmt.Errorf("array holes and spreads are not supported")
			}
			v, err := literalValue(element.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case *js.ObjectExpr:
		out := make(map[string]any, len(e.List))
		for _, prop := range e.List {
			if prop.Spread || prop.Name == nil || prop.Name.Computed != nil {
				return nil, fmt.Errorf("only plain object properties are supported")
			}
			key := string(prop.Name.Literal.Data)
			if prop.Name.Literal.TokenType == js.StringToken {
				unquoted, err := unquoteJS(prop.Name.Literal.Data)
				if err != nil {
					return nil, err
				}
				key = unquoted
			}
			v, err := literalValue(prop.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			out[key] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported expression %s", expr.String())
	}
}

// unquoteJS decodes a single or double quoted JavaScript string literal.
func unquoteJS(lit []byte) (string, error) {
	if len(lit) < 2 || (lit[0] != '\'' && lit[0] != '"') || lit[len(lit)-1] != lit[0] {
		return "", fmt.Errorf("malformed string literal %s", lit)
	}
	body := string(lit[1 : len(lit)-1])

	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", fmt.Errorf("dangling escape in %s", lit)
		}
		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case '0':
			sb.WriteByte(0)
		case '\n':
			// line continuation
		case '\r':
			if i+1 < len(body) && body[i+1] == '\n' {
				i++
			}
		case 'x':
			if i+2 >= len(body) {
				return "", fmt.Errorf("short \\x escape in %s", lit)
			}
			n, err := strconv.ParseUint(body[i+1:i+3], 16, 8)
			if err != nil {
				return "", fmt.Errorf("bad \\x escape in %s: %w", lit, err)
			}
			sb.WriteRune(rune(n))
			i += 2
		case 'u':
			r, width, err := unicodeEscape(body[i+1:])
			if err != nil {
				return "", fmt.Errorf("bad \\u escape in %s: %w", lit, err)
			}
			i += width
			if utf16.IsSurrogate(r) && strings.HasPrefix(body[i+1:], `\u`) {
				low, lowWidth, err := unicodeEscape(body[i+3:])
				if err == nil {
					if combined := utf16.DecodeRune(r, low); combined != utf8.RuneError {
						r = combined
						i += 2 + lowWidth
					}
				}
			}
			sb.WriteRune(r)
		default:
			sb.WriteByte(body[i])
		}
	}
	return sb.String(), nil
}

// unicodeEscape parses the part after `\u`, either XXXX or {X...}, and
// returns the rune and the number of bytes consumed.
func unicodeEscape(s string) (rune, int, error) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 2 {
			return 0, 0, fmt.Errorf("unterminated code point")
		}
		n, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil || n > utf8.MaxRune {
			return 0, 0, fmt.Errorf("invalid code point %q", s[1:end])
		}
		return rune(n), end + 1, nil
	}
	if len(s) < 4 {
		return 0, 0, fmt.Errorf("need four hex digits")
	}
	n, err := strconv.ParseUint(s[:4], 16, 16)
	if err != nil {
		return 0, 0, err
	}
	return rune(n), 4, nil
}
