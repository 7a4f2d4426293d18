package interp

import (
	"github.com/dekarrin/rosed"

	"github.com/dekarrin/fsmql/internal/value"
)

// printWidth is the column width print output is wrapped to, matching the
// teacher's console output width for diagnostic text.
const printWidth = 80

// Render formats v for the print log: its String form, wrapped to
// printWidth columns.
func Render(v value.Value) string {
	return rosed.Edit(v.String()).Wrap(printWidth).String()
}
