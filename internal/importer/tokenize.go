package importer

import "strings"

// Tokenize splits delimited text into rows of trimmed fields.
//
// Quoted fields may contain commas, line breaks and doubled quotes ("" is a
// literal quote). Both \n and \r\n end a row; a lone \r does too. Rows whose
// fields are all blank are dropped.
func Tokenize(text string) [][]string {
	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
	)

	endField := func() {
		row = append(row, strings.TrimSpace(field.String()))
		field.Reset()
	}
	endRow := func() {
		endField()
		if !isBlank(row) {
			rows = append(rows, row)
		}
		row = nil
	}

	// Every delimiter is ASCII, so scanning bytes leaves multi-byte runes intact.
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(text) && text[i+1] == '"' {
				field.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			endField()
		case (c == '\n' || c == '\r') && !inQuotes:
			if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				continue
			}
			endRow()
		default:
			field.WriteByte(c)
		}
	}
	endRow()

	return rows
}

func isBlank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
