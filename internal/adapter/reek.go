package adapter

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ludo-technologies/rbscan/domain"
)

// Format is the shape of reek's text report
type Format int

const (
	// FormatQuoted is the report shape of reek 1.3 and later: section
	// headers start with the quoted file path.
	FormatQuoted Format = iota
	// FormatLegacy is the reek 1.2 shape: unquoted headers, indented
	// records and masked-warning counts in the header.
	FormatLegacy
)

func (f Format) String() string {
	if f == FormatLegacy {
		return "legacy"
	}
	return "quoted"
}

var (
	// [lines]:method message (SmellType)
	reekRecord = regexp.MustCompile(`^\s*\[([^:]+)\]:(\S+)\s+(.*)\s+\((.*)\)$`)

	// records start on a line whose first non-space character is [
	reekRecordStart = regexp.MustCompile(`\n[ \t]*\[`)

	reekSectionBreak = regexp.MustCompile(`\n[ \t]*\n`)

	reekTotals = regexp.MustCompile(`^\s*\d+ total warnings?\s*$`)

	reekMasked = regexp.MustCompile(` \(.*\):`)
)

// ReekParser parses the text output of reek
type ReekParser struct{}

// NewReekParser creates a reek parser
func NewReekParser() *ReekParser {
	return &ReekParser{}
}

// Metric returns "reek"
func (p *ReekParser) Metric() string {
	return domain.MetricReek
}

// DetectFormat decides the report shape from its first non-space character.
// Empty output is treated as quoted since there is nothing to rewrite.
func DetectFormat(raw string) Format {
	trimmed := strings.TrimLeft(raw, " \t\r\n")
	if trimmed == "" || strings.HasPrefix(trimmed, `"`) {
		return FormatQuoted
	}
	return FormatLegacy
}

// Canonicalize rewrites raw into the quoted report shape
func Canonicalize(format Format, raw string) string {
	if format != FormatLegacy {
		return raw
	}
	return canonicalizeLegacy(raw)
}

// legacyFold is the accumulator of the legacy rewrite; sectionBreak is
// emitted before every header after the first.
type legacyFold struct {
	out          strings.Builder
	sectionBreak string
}

func canonicalizeLegacy(raw string) string {
	acc := &legacyFold{}
	for _, line := range strings.Split(raw, "\n") {
		acc = foldLegacyLine(acc, line)
	}
	return acc.out.String()
}

func foldLegacyLine(acc *legacyFold, line string) *legacyFold {
	if strings.HasPrefix(line, "  ") {
		acc.out.WriteString(strings.TrimPrefix(line, "  "))
		acc.out.WriteString("\n")
		return acc
	}

	path, warnings, ok := strings.Cut(line, " -- ")
	if !ok {
		acc.out.WriteString(line)
		acc.out.WriteString("\n")
		return acc
	}

	acc.out.WriteString(acc.sectionBreak)
	acc.out.WriteString(`"` + path + `" -- ` + reekMasked.ReplaceAllString(warnings, ":"))
	acc.out.WriteString("\n")
	acc.sectionBreak = "\n"
	return acc
}

// Parse extracts one FileFindings per report section. A file with zero
// warnings yields an entry with no findings.
func (p *ReekParser) Parse(raw string) ([]domain.FileFindings, error) {
	text := Canonicalize(DetectFormat(raw), raw)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.Trim(text, " \t\n")
	if text == "" {
		return nil, nil
	}

	var out []domain.FileFindings
	for _, section := range reekSectionBreak.Split(text, -1) {
		if strings.TrimSpace(section) == "" {
			continue
		}
		records := splitRecords(section)
		header := records[0]
		if reekTotals.MatchString(header) {
			continue
		}

		smells := make([]domain.Finding, 0, len(records)-1)
		for _, record := range records[1:] {
			if f, ok := parseReekRecord(record); ok {
				smells = append(smells, f)
			}
		}
		out = append(out, domain.FileFindings{
			FilePath:   reekFilePath(header),
			CodeSmells: smells,
		})
	}
	return out, nil
}

func splitRecords(section string) []string {
	starts := reekRecordStart.FindAllStringIndex(section, -1)
	records := make([]string, 0, len(starts)+1)
	prev := 0
	for _, loc := range starts {
		records = append(records, section[prev:loc[0]])
		prev = loc[0] + 1
	}
	return append(records, section[prev:])
}

func reekFilePath(header string) string {
	firstLine, _, _ := strings.Cut(strings.TrimLeft(header, " \t\r\n"), "\n")
	path, _, _ := strings.Cut(firstLine, " -- ")
	return strings.TrimSpace(strings.ReplaceAll(path, `"`, " "))
}

// parseReekRecord matches the first line of record that fits the grammar
func parseReekRecord(record string) (domain.Finding, bool) {
	for _, line := range strings.Split(record, "\n") {
		m := reekRecord.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		lines := strings.Split(strings.TrimSpace(m[1]), ", ")
		for i := range lines {
			lines[i] = strings.TrimSpace(lines[i])
		}
		return domain.Finding{
			Lines:   lines,
			Method:  strings.TrimSpace(m[2]),
			Message: strings.TrimSpace(m[3]),
			Type:    strings.TrimSpace(m[4]),
		}, true
	}
	return domain.Finding{}, false
}

// minNoColorVersion is the first reek release that accepts --no-color
var minNoColorVersion = []int{1, 3, 7}

// ReekArgs builds reek's command line. version is the output of
// `reek --version`; an unknown version omits --no-color.
func ReekArgs(version, configPattern string, files []string) []string {
	var args []string
	if versionAtLeast(version, minNoColorVersion) {
		args = append(args, "--no-color")
	}
	if configPattern != "" {
		args = append(args, "--config", configPattern)
	}
	return append(args, files...)
}

// ReekVersion extracts the version number from `reek --version` output
func ReekVersion(output string) string {
	v := strings.TrimSpace(output)
	v = strings.TrimSpace(strings.TrimPrefix(v, "reek"))
	if fields := strings.Fields(v); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

func versionAtLeast(version string, min []int) bool {
	version = ReekVersion(version)
	if version == "" {
		return false
	}
	parts := strings.Split(version, ".")
	for i, want := range min {
		got := 0
		if i < len(parts) {
			n, err := strconv.Atoi(leadingDigits(parts[i]))
			if err != nil {
				return false
			}
			got = n
		}
		if got != want {
			return got > want
		}
	}
	return true
}

func leadingDigits(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}
