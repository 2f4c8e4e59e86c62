package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"

	"github.com/beevik/etree"
	docxlib "github.com/nguyenthenguyen/docx"

	"gpcaffidavit/internal/domain"
)

// Strategy names, matching the template.strategy setting.
const (
	StrategyContentControl = "contentcontrol"
	StrategyPlaceholder    = "placeholder"
)

// Filler writes Fields into a .docx template and returns the new document.
type Filler interface {
	Fill(template []byte, f Fields) ([]byte, error)
}

// NewFiller returns the filler for strategy.
func NewFiller(strategy string) (Filler, error) {
	switch strategy {
	case StrategyContentControl:
		return &ContentControlFiller{}, nil
	case StrategyPlaceholder:
		return &PlaceholderFiller{}, nil
	default:
		return nil, fmt.Errorf("unknown fill strategy: %s", strategy)
	}
}

// ContentControlFiller addresses fields by the tag of their Word content control.
type ContentControlFiller struct{}

func (ContentControlFiller) Fill(template []byte, f Fields) ([]byte, error) {
	return fill(template, func(d *docxlib.Docx) error {
		out, err := fillControls(d.GetContent(), &f)
		if err != nil {
			return err
		}
		d.SetContent(out)
		return nil
	})
}

// PlaceholderFiller replaces bracketed placeholder text such as "[Case number]".
type PlaceholderFiller struct{}

func (PlaceholderFiller) Fill(template []byte, f Fields) ([]byte, error) {
	return fill(template, func(d *docxlib.Docx) error {
		for _, kv := range f.placeholderValues() {
			if strings.Contains(kv[1], "\n") {
				d.SetContent(strings.ReplaceAll(d.GetContent(), escapeText(kv[0]), runBreaks(kv[1])))
				continue
			}
			if err := d.Replace(kv[0], kv[1], -1); err != nil {
				return fmt.Errorf("%w: replacing %s: %v", domain.ErrTemplateRender, kv[0], err)
			}
		}
		return nil
	})
}

// fill opens the template, applies edit, verifies no placeholder survived and
// serialises the result.
func fill(template []byte, edit func(d *docxlib.Docx) error) ([]byte, error) {
	r, err := docxlib.ReadDocxFromMemory(bytes.NewReader(template), int64(len(template)))
	if err != nil {
		return nil, fmt.Errorf("%w: opening template: %v", domain.ErrTemplateRender, err)
	}
	defer r.Close()

	d := r.Editable()
	before, err := textOf(d.GetContent())
	if err != nil {
		return nil, err
	}
	placeholders := Placeholders(before)

	if err := edit(d); err != nil {
		return nil, err
	}

	after, err := textOf(d.GetContent())
	if err != nil {
		return nil, err
	}
	if left := remaining(after, placeholders); len(left) > 0 {
		log.Printf("docx.fill: unfilled placeholders %v", left)
		return nil, fmt.Errorf("%w: unfilled placeholders: %s", domain.ErrTemplateRender, strings.Join(left, ", "))
	}

	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		return nil, fmt.Errorf("%w: writing document: %v", domain.ErrTemplateRender, err)
	}
	return buf.Bytes(), nil
}

var placeholderRe = regexp.MustCompile(`\[[^\[\]\n]{1,60}\]`)

// Placeholders returns the distinct bracketed tokens in text, sorted.
func Placeholders(text string) []string {
	seen := map[string]bool{}
	for _, m := range placeholderRe.FindAllString(text, -1) {
		seen[m] = true
	}
	out := make([]string, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

func remaining(text string, placeholders []string) []string {
	var left []string
	for _, p := range placeholders {
		if strings.Contains(text, p) {
			left = append(left, p)
		}
	}
	return left
}

// VisibleText returns the text a reader sees in a .docx body, one paragraph
// per line.
func VisibleText(document []byte) (string, error) {
	r, err := docxlib.ReadDocxFromMemory(bytes.NewReader(document), int64(len(document)))
	if err != nil {
		return "", fmt.Errorf("%w: opening document: %v", domain.ErrTemplateRender, err)
	}
	defer r.Close()
	return textOf(r.Editable().GetContent())
}

func textOf(content string) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(content); err != nil {
		return "", fmt.Errorf("%w: parsing document.xml: %v", domain.ErrTemplateRender, err)
	}
	root := doc.Root()
	if root == nil {
		return "", nil
	}
	var b strings.Builder
	writeText(&b, root)
	return strings.TrimRight(b.String(), "\n"), nil
}

func writeText(b *strings.Builder, e *etree.Element) {
	switch e.Space + ":" + e.Tag {
	case "w:t":
		b.WriteString(e.Text())
		return
	case "w:br":
		b.WriteByte('\n')
		return
	case "w:tab":
		b.WriteByte('\t')
		return
	}
	for _, c := range e.ChildElements() {
		writeText(b, c)
	}
	if e.Space == "w" && e.Tag == "p" {
		b.WriteByte('\n')
	}
}

func escapeText(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// runBreaks encodes a multi-line value for use inside an existing w:t.
func runBreaks(value string) string {
	lines := strings.Split(value, "\n")
	for i, l := range lines {
		lines[i] = escapeText(l)
	}
	return strings.Join(lines, `</w:t><w:br/><w:t xml:space="preserve">`)
}
