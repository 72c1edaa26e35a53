package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// NoHighlight disables terminal colouring.
const NoHighlight = "none"

// Highlight writes src to w with ANSI colours for the given language. An
// empty style or NoHighlight copies the source verbatim.
func Highlight(w io.Writer, src []byte, language, style string) error {
	style = strings.TrimSpace(style)
	if style == "" || strings.EqualFold(style, NoHighlight) {
		_, err := w.Write(src)
		return err
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, string(src))
	if err != nil {
		return fmt.Errorf("tokenise %s: %w", language, err)
	}
	if err := formatters.TTY256.Format(w, styles.Get(style), iterator); err != nil {
		return fmt.Errorf("highlight %s: %w", language, err)
	}
	return nil
}
