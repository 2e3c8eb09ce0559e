package export

import "github.com/jhoicas/MedStock-api/internal/application/dto"

// DefaultLinesPerPage presupuesto de líneas por página cuando no se configura otro.
const DefaultLinesPerPage = 35

// Paginate divide las líneas en páginas de como máximo budget líneas, en orden.
// Una lista vacía produce una sola página vacía (el documento siempre tiene encabezado).
func Paginate(lines []dto.OrderLineResponse, budget int) [][]dto.OrderLineResponse {
	if budget < 1 {
		budget = DefaultLinesPerPage
	}
	if len(lines) == 0 {
		return [][]dto.OrderLineResponse{{}}
	}
	pages := make([][]dto.OrderLineResponse, 0, (len(lines)+budget-1)/budget)
	for start := 0; start < len(lines); start += budget {
		end := start + budget
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, lines[start:end])
	}
	return pages
}
