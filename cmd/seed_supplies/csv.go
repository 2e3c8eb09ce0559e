package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/MedStock-api/internal/application/dto"
)

// SupplyRow fila del CSV ya convertida en solicitud de creación.
type SupplyRow struct {
	Line    int
	Request dto.CreateSupplyRequest
}

// ParseSupplies lee name,category,stock,upc,unit_cost. Omite el encabezado si la primera
// celda es "name". Un stock o costo no numérico es un error con la línea indicada.
func ParseSupplies(r io.Reader, charset string) ([]SupplyRow, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
	case "windows-1252", "cp1252":
		r = transform.NewReader(r, charmap.Windows1252.NewDecoder())
	case "iso-8859-1", "iso8859-1", "latin1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		return nil, fmt.Errorf("charset no soportado: %s", charset)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []SupplyRow
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if line == 1 && len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "name") {
			continue
		}
		if len(rec) < 3 {
			return nil, fmt.Errorf("línea %d: se esperan al menos 3 columnas", line)
		}
		qty, err := strconv.Atoi(strings.TrimSpace(rec[2]))
		if err != nil {
			return nil, fmt.Errorf("línea %d: stock inválido %q", line, rec[2])
		}
		req := dto.CreateSupplyRequest{
			Name:     strings.TrimSpace(rec[0]),
			Category: strings.TrimSpace(rec[1]),
			Stock:    &qty,
		}
		if len(rec) > 3 {
			req.UPC = strings.TrimSpace(rec[3])
		}
		if len(rec) > 4 && strings.TrimSpace(rec[4]) != "" {
			cost, err := decimal.NewFromString(strings.TrimSpace(rec[4]))
			if err != nil {
				return nil, fmt.Errorf("línea %d: unit_cost inválido %q", line, rec[4])
			}
			req.UnitCost = &cost
		}
		rows = append(rows, SupplyRow{Line: line, Request: req})
	}
	return rows, nil
}
