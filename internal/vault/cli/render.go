package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aussiebroadwan/passman/internal/vault/domain"
)

const dateLayout = "January 02, 2006"

func formatDate(t time.Time) string {
	return t.Local().Format(dateLayout)
}

// renderRecord writes one credential as a labelled block.
func renderRecord(w io.Writer, st styles, c domain.Credential) {
	field := func(name, value string) {
		fmt.Fprintf(w, "%s %s\n", st.label.Render(fmt.Sprintf("%-12s", name+":")), value)
	}

	fmt.Fprintln(w, st.title.Render(c.Application))
	field("Login", c.Login)
	field("Password", c.Secret)
	if c.Notes != "" {
		field("Notes", strings.ReplaceAll(c.Notes, "\n", "\n             "))
	}
	field("Modified", formatDate(c.ModifiedAt))
	field("Created", formatDate(c.CreatedAt))
}

// renderReasons prints every validation reason on its own line.
func renderReasons(w io.Writer, st styles, ve *domain.ValidationError) {
	for _, reason := range ve.Reasons {
		fmt.Fprintln(w, st.err.Render("  - "+reason))
	}
}
