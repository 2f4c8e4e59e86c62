package docx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"gpcaffidavit/internal/domain"
)

const (
	defendantBlockTag = "defendant"
	defendantLabelTag = "defendantLabel"
	defendantNameTag  = "defendantName"

	uncheckedBox = "☐"
)

// fillControls rewrites word/document.xml, addressing fields by content-control tag.
func fillControls(content string, f *Fields) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(content); err != nil {
		return "", fmt.Errorf("%w: parsing document.xml: %v", domain.ErrTemplateRender, err)
	}
	root := doc.Root()
	if root == nil {
		return "", fmt.Errorf("%w: document.xml has no root element", domain.ErrTemplateRender)
	}

	if err := expandDefendantBlocks(root, f); err != nil {
		return "", err
	}

	values := f.controlValues()
	for _, sdt := range root.FindElements("//w:sdt") {
		if isCheckbox(sdt) {
			resetCheckbox(sdt)
			continue
		}
		value, ok := values[controlTag(sdt)]
		if !ok {
			continue
		}
		setControlText(sdt, value)
	}

	renumberControls(root)

	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("%w: serialising document.xml: %v", domain.ErrTemplateRender, err)
	}
	return out, nil
}

// expandDefendantBlocks clones the first block tagged "defendant" once per
// defendant and drops every other slot the template shipped with.
func expandDefendantBlocks(root *etree.Element, f *Fields) error {
	var blocks []*etree.Element
	for _, sdt := range root.FindElements("//w:sdt") {
		if controlTag(sdt) == defendantBlockTag {
			blocks = append(blocks, sdt)
		}
	}
	if len(blocks) == 0 {
		return nil
	}

	proto := blocks[0]
	parent := proto.Parent()
	if parent == nil {
		return fmt.Errorf("%w: defendant block has no parent", domain.ErrTemplateRender)
	}
	at := proto.Index()

	for i, name := range f.Defendants {
		block := proto.Copy()
		for _, inner := range block.FindElements(".//w:sdt") {
			switch controlTag(inner) {
			case defendantLabelTag:
				setControlText(inner, domain.OrdinalLabel(i))
			case defendantNameTag:
				setControlText(inner, name)
			}
		}
		parent.InsertChildAt(at+i, block)
	}

	for _, b := range blocks {
		if p := b.Parent(); p != nil {
			p.RemoveChild(b)
		}
	}
	return nil
}

func controlTag(sdt *etree.Element) string {
	tag := sdt.FindElement("./w:sdtPr/w:tag")
	if tag == nil {
		return ""
	}
	return tag.SelectAttrValue("w:val", "")
}

func isCheckbox(sdt *etree.Element) bool {
	return sdt.FindElement("./w:sdtPr/w14:checkbox") != nil
}

// resetCheckbox leaves the box unticked for the process server.
func resetCheckbox(sdt *etree.Element) {
	if checked := sdt.FindElement("./w:sdtPr/w14:checkbox/w14:checked"); checked != nil {
		checked.CreateAttr("w14:val", "0")
	}
	setControlText(sdt, uncheckedBox)
}

// setControlText replaces the visible text of a control with value. The first
// run keeps its formatting; lines after the first become line breaks.
func setControlText(sdt *etree.Element, value string) {
	if pr := sdt.SelectElement("w:sdtPr"); pr != nil {
		if ph := pr.SelectElement("w:showingPlcHdr"); ph != nil {
			pr.RemoveChild(ph)
		}
	}
	content := sdt.SelectElement("w:sdtContent")
	if content == nil {
		content = sdt.CreateElement("w:sdtContent")
	}

	texts := content.FindElements(".//w:t")
	var run *etree.Element
	if len(texts) > 0 {
		run = texts[0].Parent()
		for _, t := range texts {
			if p := t.Parent(); p != nil {
				p.RemoveChild(t)
			}
		}
	} else {
		run = content.FindElement(".//w:r")
	}
	if run == nil {
		host := content
		if p := content.FindElement(".//w:p"); p != nil {
			host = p
		}
		run = host.CreateElement("w:r")
	}
	for _, br := range run.SelectElements("w:br") {
		run.RemoveChild(br)
	}

	for i, line := range strings.Split(value, "\n") {
		if i > 0 {
			run.CreateElement("w:br")
		}
		t := run.CreateElement("w:t")
		t.CreateAttr("xml:space", "preserve")
		t.SetText(line)
	}
}

// renumberControls gives every control a unique sequential w:id so cloned
// blocks never collide and output stays deterministic.
func renumberControls(root *etree.Element) {
	n := 1
	for _, id := range root.FindElements("//w:sdt/w:sdtPr/w:id") {
		id.CreateAttr("w:val", strconv.Itoa(n))
		n++
	}
}
