package sections

import (
	"archive/zip"
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/worshipdesk/core/errors"
)

// documentPart is the main body part of a WordprocessingML package.
const documentPart = "word/document.xml"

// maxDocumentSize bounds how much of document.xml is read.
const maxDocumentSize = 64 << 20

// bodyParagraphs selects top-level body paragraphs; table cell paragraphs are not included.
var bodyParagraphs = xpath.MustCompile("/w:document/w:body/w:p")

// ReadParagraphs returns the trimmed, non-empty paragraphs of a .docx file,
// or the trimmed, non-empty lines of any other file. A missing file yields
// no paragraphs and no error.
func ReadParagraphs(path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewIO("stat", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".docx") {
		return readDocx(path)
	}
	return readLines(path)
}

func readDocx(path string) ([]string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.NewIO("open docx", path, err)
	}
	defer r.Close()

	var part *zip.File
	for _, f := range r.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return nil, errors.NewParse("docx", path, "missing "+documentPart)
	}

	rc, err := part.Open()
	if err != nil {
		return nil, errors.NewIO("open "+documentPart, path, err)
	}
	defer rc.Close()

	return parseDocument(io.LimitReader(rc, maxDocumentSize))
}

// parseDocument extracts paragraph text from a WordprocessingML document part.
func parseDocument(r io.Reader) ([]string, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.NewParse("docx", documentPart, err.Error())
	}

	var out []string
	for _, p := range xmlquery.QuerySelectorAll(doc, bodyParagraphs) {
		var sb strings.Builder
		collectRunText(&sb, p)
		if text := strings.TrimSpace(sb.String()); text != "" {
			out = append(out, text)
		}
	}
	return out, nil
}

// collectRunText appends the visible text of a paragraph in document order.
// Tabs and breaks become "\t" and "\n"; deleted text is skipped.
func collectRunText(sb *strings.Builder, n *xmlquery.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		switch c.Data {
		case "t":
			sb.WriteString(c.InnerText())
		case "tab":
			sb.WriteByte('\t')
		case "br", "cr":
			sb.WriteByte('\n')
		case "del", "delText", "pPr", "rPr", "instrText":
		default:
			collectRunText(sb, c)
		}
	}
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var out []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out = append(out, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return out, nil
}
