package meaning

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Row is the text of the first two cells of a table row.
type Row [2]string

var errNoDocument = errors.New("word/document.xml not found")

// readFirstTable returns the rows of the first top-level table in a .docx.
// Rows with fewer than two cells are dropped.
func readFirstTable(path string) ([]Row, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return parseFirstTable(rc)
	}
	return nil, errNoDocument
}

func parseFirstTable(r io.Reader) ([]Row, error) {
	dec := xml.NewDecoder(r)
	var (
		rows   []Row
		row    []string
		cell   strings.Builder
		paras  int
		depth  int
		inCell bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parsing document.xml: %w", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "tbl":
				depth++
			case "tr":
				if depth == 1 {
					row = row[:0]
				}
			case "tc":
				if depth == 1 {
					cell.Reset()
					paras = 0
					inCell = true
				}
			case "p":
				if depth == 1 && inCell {
					if paras > 0 {
						cell.WriteByte('\n')
					}
					paras++
				}
			case "tab":
				if depth == 1 && inCell {
					cell.WriteByte('\t')
				}
			case "t":
				var s string
				if err := dec.DecodeElement(&s, &el); err != nil {
					return nil, fmt.Errorf("parsing document.xml: %w", err)
				}
				if depth == 1 && inCell {
					cell.WriteString(s)
				}
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "tc":
				if depth == 1 {
					row = append(row, strings.TrimSpace(cell.String()))
					inCell = false
				}
			case "tr":
				if depth == 1 && len(row) >= 2 {
					rows = append(rows, Row{row[0], row[1]})
				}
			case "tbl":
				depth--
				if depth == 0 {
					return rows, nil
				}
			}
		}
	}
}
