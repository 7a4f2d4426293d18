package graph

import (
	"os"
	"regexp"
	"strings"

	"github.com/dekarrin/fsmql/internal/fsmerrors"
)

// identOrQuoted matches a bare DOT identifier or a double-quoted string,
// capturing the unquoted text in either case.
const identOrQuoted = `(?:"([^"]*)"|([A-Za-z0-9_]+))`

var (
	edgeLineRe  = regexp.MustCompile(identOrQuoted + `\s*->\s*` + identOrQuoted + `(\s*\[([^\]]*)\])?`)
	nodeLineRe  = regexp.MustCompile(`^\s*` + identOrQuoted + `\s*(\[([^\]]*)\])?\s*;?\s*$`)
	labelAttrRe = regexp.MustCompile(`label\s*=\s*(?:"([^"]*)"|([A-Za-z0-9_]+))`)
)

func ident(m []string, quoted, bare int) string {
	if m[quoted] != "" {
		return m[quoted]
	}
	return m[bare]
}

// ParseDOT parses a minimal subset of the DOT graph language sufficient for
// §4.9's `loadFrom path "..."`: directed edges of the form
// `A -> B [label="x"];`, optionally with other attributes (ignored), and
// standalone node declarations `A;`. Digraph/graph header, braces, and
// comments are recognized but not otherwise interpreted.
func ParseDOT(source string) (*Multigraph, error) {
	g := &Multigraph{}
	seen := map[string]bool{}
	addVertex := func(v string) {
		if !seen[v] {
			seen[v] = true
			g.Vertices = append(g.Vertices, v)
		}
	}

	for _, rawLine := range strings.Split(source, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#") {
			continue
		}
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "digraph") || strings.HasPrefix(lower, "graph") ||
			line == "{" || line == "}" || strings.HasPrefix(lower, "strict") {
			continue
		}

		if m := edgeLineRe.FindStringSubmatch(line); m != nil {
			from := ident(m, 1, 2)
			to := ident(m, 3, 4)
			label := ""
			if attrs := m[6]; attrs != "" {
				if am := labelAttrRe.FindStringSubmatch(attrs); am != nil {
					if am[1] != "" {
						label = am[1]
					} else {
						label = am[2]
					}
				}
			}
			addVertex(from)
			addVertex(to)
			g.Edges = append(g.Edges, Edge{From: from, Label: label, To: to})
			continue
		}

		if m := nodeLineRe.FindStringSubmatch(line); m != nil {
			name := ident(m, 1, 2)
			if name != "" {
				addVertex(name)
			}
			continue
		}
	}

	return g, nil
}

// LoadDOTFile reads and parses the DOT file at path.
func LoadDOTFile(path string) (*Multigraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fsmerrors.LoadFailure(path, err)
	}
	g, err := ParseDOT(string(data))
	if err != nil {
		return nil, fsmerrors.LoadFailure(path, err)
	}
	return g, nil
}
