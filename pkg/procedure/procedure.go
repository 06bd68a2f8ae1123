// Package procedure parses the sectioned plain text a document generator
// produces for a step by step procedure, and renders it back out.
package procedure

import (
	"bufio"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tauraamui/xerror"
)

var ErrNoSections = errors.New("no procedure sections found")

type Step struct {
	Main     string   `json:"main"`
	Sub      []string `json:"sub"`
	Warnings []string `json:"warnings"`
	Tips     []string `json:"tips"`
	Frames   []string `json:"frames"`
}

type Procedure struct {
	Title           string   `json:"title"`
	Overview        string   `json:"overview"`
	Prerequisites   []string `json:"prerequisites"`
	Steps           []Step   `json:"steps"`
	Verification    string   `json:"verification"`
	Troubleshooting []string `json:"troubleshooting"`
}

type section int

const (
	sectionNone section = iota
	sectionTitle
	sectionOverview
	sectionPrerequisites
	sectionSteps
	sectionVerification
	sectionTroubleshooting
)

var markers = map[string]section{
	"TITLE":           sectionTitle,
	"OVERVIEW":        sectionOverview,
	"PREREQUISITES":   sectionPrerequisites,
	"STEPS":           sectionSteps,
	"PROCEDURE":       sectionSteps,
	"VERIFICATION":    sectionVerification,
	"TROUBLESHOOTING": sectionTroubleshooting,
}

var (
	markerLine   = regexp.MustCompile(`^([A-Za-z]+)\s*:\s*(.*)$`)
	numberedLine = regexp.MustCompile(`^\d+\s*[.)]\s*(.*)$`)
)

const (
	warningGlyph      = "\u26a0\ufe0f"
	tipGlyph          = "\U0001f4a1"
	variationSelector = "\ufe0f"
)

// Parse reads procedure text made of marker lines such as "OVERVIEW:" or
// "STEPS:" followed by their content. Markdown emphasis and heading marks
// are ignored. Without a TITLE marker the first line before any marker is
// taken as the title.
func Parse(text string) (Procedure, error) {
	p := Procedure{
		Prerequisites:   []string{},
		Steps:           []Step{},
		Troubleshooting: []string{},
	}

	var (
		current      = sectionNone
		seenMarker   bool
		title        []string
		overview     []string
		verification []string
	)

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := normalise(scanner.Text())
		if len(line) == 0 {
			continue
		}

		if s, rest, ok := marker(line); ok {
			current, seenMarker = s, true
			if len(rest) == 0 {
				continue
			}
			line = rest
		}

		switch current {
		case sectionNone:
			if len(title) == 0 {
				title = append(title, line)
			}
		case sectionTitle:
			title = append(title, line)
		case sectionOverview:
			overview = append(overview, line)
		case sectionPrerequisites:
			p.Prerequisites = append(p.Prerequisites, stripListPrefix(line))
		case sectionSteps:
			p.Steps = classify(p.Steps, line)
		case sectionVerification:
			verification = append(verification, line)
		case sectionTroubleshooting:
			p.Troubleshooting = append(p.Troubleshooting, stripListPrefix(line))
		}
	}
	if err := scanner.Err(); err != nil {
		return Procedure{}, xerror.Errorf("unable to read procedure text: %w", err)
	}

	if !seenMarker {
		return Procedure{}, ErrNoSections
	}

	p.Title = strings.Join(title, " ")
	p.Overview = strings.Join(overview, " ")
	p.Verification = strings.Join(verification, " ")
	return p, nil
}

func normalise(line string) string {
	line = strings.ReplaceAll(line, "**", "")
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "#")
	return strings.TrimSpace(line)
}

func marker(line string) (section, string, bool) {
	m := markerLine.FindStringSubmatch(line)
	if m == nil {
		return sectionNone, "", false
	}
	s, ok := markers[strings.ToUpper(m[1])]
	if !ok {
		return sectionNone, "", false
	}
	return s, strings.TrimSpace(m[2]), true
}

func classify(steps []Step, line string) []Step {
	if m := numberedLine.FindStringSubmatch(line); m != nil {
		return append(steps, newStep(strings.TrimSpace(m[1])))
	}

	body, bulleted := trimBullet(line)
	if text, ok := trimTagged(body, warningGlyph, "WARNING:"); ok {
		steps = ensureStep(steps)
		last := &steps[len(steps)-1]
		last.Warnings = append(last.Warnings, text)
		return steps
	}
	if text, ok := trimTagged(body, tipGlyph, "TIP:"); ok {
		steps = ensureStep(steps)
		last := &steps[len(steps)-1]
		last.Tips = append(last.Tips, text)
		return steps
	}

	if len(steps) == 0 && !bulleted {
		return append(steps, newStep(body))
	}
	steps = ensureStep(steps)
	last := &steps[len(steps)-1]
	last.Sub = append(last.Sub, body)
	return steps
}

func newStep(main string) Step {
	return Step{Main: main, Sub: []string{}, Warnings: []string{}, Tips: []string{}, Frames: []string{}}
}

// ensureStep opens an untitled step for notes that precede any numbered step.
func ensureStep(steps []Step) []Step {
	if len(steps) == 0 {
		return append(steps, newStep(""))
	}
	return steps
}

func trimBullet(line string) (string, bool) {
	for _, bullet := range []string{"-", "*", "•"} {
		if strings.HasPrefix(line, bullet) {
			return strings.TrimSpace(strings.TrimPrefix(line, bullet)), true
		}
	}
	return line, false
}

func trimTagged(line, glyph, label string) (string, bool) {
	if strings.HasPrefix(line, glyph) {
		return strings.TrimSpace(strings.TrimPrefix(line, glyph)), true
	}
	// bare warning sign without the variation selector
	if r := strings.TrimSuffix(glyph, variationSelector); r != glyph && strings.HasPrefix(line, r) {
		return strings.TrimSpace(strings.TrimPrefix(line, r)), true
	}
	if len(line) >= len(label) && strings.EqualFold(line[:len(label)], label) {
		return strings.TrimSpace(line[len(label):]), true
	}
	return "", false
}

func stripListPrefix(line string) string {
	if m := numberedLine.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1])
	}
	body, _ := trimBullet(line)
	return body
}

// Format renders p in the same sectioned layout Parse accepts.
func Format(p Procedure) string {
	b := strings.Builder{}
	b.WriteString(p.Title + "\n\n")
	b.WriteString("OVERVIEW:\n" + p.Overview + "\n\n")
	b.WriteString("PREREQUISITES:\n")
	for _, prereq := range p.Prerequisites {
		b.WriteString("- " + prereq + "\n")
	}
	b.WriteString("\nPROCEDURE:\n")
	for i, step := range p.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step.Main)
		for _, sub := range step.Sub {
			b.WriteString("   - " + sub + "\n")
		}
		for _, warning := range step.Warnings {
			b.WriteString("   " + warningGlyph + " " + warning + "\n")
		}
		for _, tip := range step.Tips {
			b.WriteString("   " + tipGlyph + " " + tip + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("VERIFICATION:\n" + p.Verification + "\n\n")
	b.WriteString("TROUBLESHOOTING:\n")
	for i, issue := range p.Troubleshooting {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + issue)
	}
	return b.String()
}
