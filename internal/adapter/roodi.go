package adapter

import (
	"regexp"
	"strings"

	"github.com/ludo-technologies/rbscan/domain"
)

var (
	// path:line - message
	roodiLine = regexp.MustCompile(`^(\S+?):(\d+) - (.+)$`)

	roodiTerminator = regexp.MustCompile(`^(Found \d+ errors?\.|No errors found\.)$`)
)

// roodiChecks maps message wording to the roodi check that emits it
var roodiChecks = []struct {
	phrase string
	check  string
}{
	{"cyclomatic complexity", "CyclomaticComplexity"},
	{"lines. It should have", "MethodLineCount"},
	{"parameters. It should have", "ParameterNumber"},
	{"should match pattern", "NamingConvention"},
	{"Found = in conditional", "AssignmentInConditional"},
	{"Case statement is missing an else", "CaseMissingElse"},
	{"Rescue block should not be empty", "EmptyRescueBody"},
	{"for loop", "ForLoop"},
	{"has a nested", "NestedBlocks"},
}

// RoodiParser parses roodi's line oriented design report
type RoodiParser struct{}

// NewRoodiParser creates a roodi parser
func NewRoodiParser() *RoodiParser {
	return &RoodiParser{}
}

// Metric returns "roodi"
func (p *RoodiParser) Metric() string {
	return domain.MetricRoodi
}

// Parse groups problems by file in first-seen order. Roodi reports no
// method context, so its findings become file level rows.
func (p *RoodiParser) Parse(raw string) ([]domain.FileFindings, error) {
	var out []domain.FileFindings
	index := make(map[string]int)

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || roodiTerminator.MatchString(line) {
			continue
		}
		m := roodiLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		message := strings.TrimSpace(m[3])
		f := domain.Finding{
			Lines:   []string{m[2]},
			Message: message,
			Type:    roodiCheck(message),
		}

		path := m[1]
		i, ok := index[path]
		if !ok {
			i = len(out)
			index[path] = i
			out = append(out, domain.FileFindings{FilePath: path})
		}
		out[i].CodeSmells = append(out[i].CodeSmells, f)
	}
	return out, nil
}

// roodiCheck matches message against the known check phrases. Runs of
// whitespace are collapsed since roodi puts two spaces after a full stop.
func roodiCheck(message string) string {
	lower := strings.ToLower(strings.Join(strings.Fields(message), " "))
	for _, c := range roodiChecks {
		if strings.Contains(lower, strings.ToLower(c.phrase)) {
			return c.check
		}
	}
	return "design"
}
