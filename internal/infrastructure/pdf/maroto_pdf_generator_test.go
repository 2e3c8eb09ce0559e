package pdf_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/MedStock-api/internal/application/dto"
	"github.com/jhoicas/MedStock-api/internal/application/export"
	"github.com/jhoicas/MedStock-api/internal/infrastructure/pdf"
)

func TestGenerateOrderListPDF_VariasPaginas(t *testing.T) {
	cost := decimal.RequireFromString("3.75")
	list := &dto.OrderListResponse{
		SiteID:      "north",
		SiteName:    "North Clinic",
		Threshold:   4,
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC),
	}
	for i := 0; i < 40; i++ {
		l := dto.OrderLineResponse{Name: fmt.Sprintf("Supply %02d", i), Category: "PPE", Stock: i % 5, SuggestedQty: 9 - i%5}
		if i%2 == 0 {
			l.UPC = fmt.Sprintf("%012d", i)
			l.EstimatedCost = &cost
		}
		list.Lines = append(list.Lines, l)
	}
	list.TotalEstimatedCost = cost.Mul(decimal.NewFromInt(20))

	doc, err := pdf.NewMarotoPDFGenerator().GenerateOrderListPDF(context.Background(), list, export.Paginate(list.Lines, 35))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestGenerateOrderListPDF_ListaVacia(t *testing.T) {
	doc, err := pdf.NewMarotoPDFGenerator().GenerateOrderListPDF(context.Background(), &dto.OrderListResponse{SiteName: "South"}, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}
