// Package operational implements the sales analysis agent. Statistics are
// computed deterministically from the uploaded CSV; the model only narrates
// them, it never sees the raw rows.
package operational

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/umkm-go/umkm-ai-backend/internal/domain"
	"github.com/umkm-go/umkm-ai-backend/internal/usecase/prompt"
)

// Required CSV columns of an uploaded sales dataset.
const (
	colProduct  = "product_name"
	colQuantity = "quantity"
	colPrice    = "price"
)

// Service handles sales dataset analysis.
type Service struct {
	gen Generator
}

// New creates an operational agent service.
func New(gen Generator) *Service {
	return &Service{gen: gen}
}

// Analyze parses the CSV dataset, computes the sales statistics, and asks the
// model to narrate insights from the statistics JSON. Input validation always
// happens before any generative call.
func (s *Service) Analyze(ctx context.Context, dataset io.Reader) (Response, error) {
	stats, err := computeStatistics(dataset)
	if err != nil {
		return Response{}, err
	}
	if s.gen == nil {
		return Response{}, domain.ErrGenerationUnavailable
	}

	statsJSON, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return Response{}, fmt.Errorf("encode statistics: %w", err)
	}

	insights, err := s.gen.Generate(ctx, domain.GenerationRequest{
		Prompt: prompt.Operational(string(statsJSON)),
	})
	if err != nil {
		return Response{}, fmt.Errorf("generate sales insights: %w", err)
	}

	return Response{Insights: insights, Statistics: stats}, nil
}

type productTotals struct {
	quantity int64
	revenue  float64
}

// computeStatistics aggregates the four sales scalars from the CSV rows.
// Ties on the argmax statistics resolve to the product seen first.
func computeStatistics(dataset io.Reader) (domain.SalesStatistics, error) {
	r := csv.NewReader(dataset)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return domain.SalesStatistics{}, fmt.Errorf("%w: dataset is empty", domain.ErrValidation)
	}
	if err != nil {
		return domain.SalesStatistics{}, fmt.Errorf("%w: read header: %v", domain.ErrValidation, err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{colProduct, colQuantity, colPrice} {
		if _, ok := cols[required]; !ok {
			return domain.SalesStatistics{}, fmt.Errorf("%w: missing required column %q", domain.ErrValidation, required)
		}
	}

	var (
		stats  domain.SalesStatistics
		totals = map[string]*productTotals{}
		order  []string
		row    = 1
	)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return domain.SalesStatistics{}, fmt.Errorf("%w: row %d: %v", domain.ErrValidation, row, err)
		}

		name := strings.TrimSpace(record[cols[colProduct]])
		quantity, err := strconv.ParseInt(strings.TrimSpace(record[cols[colQuantity]]), 10, 64)
		if err != nil {
			return domain.SalesStatistics{}, fmt.Errorf("%w: row %d: quantity is not an integer", domain.ErrValidation, row)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(record[cols[colPrice]]), 64)
		if err != nil {
			return domain.SalesStatistics{}, fmt.Errorf("%w: row %d: price is not a number", domain.ErrValidation, row)
		}

		revenue := float64(quantity) * price
		stats.TotalRevenue += revenue
		stats.TotalItemsSold += quantity

		t, ok := totals[name]
		if !ok {
			t = &productTotals{}
			totals[name] = t
			order = append(order, name)
		}
		t.quantity += quantity
		t.revenue += revenue
	}

	if len(order) == 0 {
		return domain.SalesStatistics{}, fmt.Errorf("%w: dataset has no data rows", domain.ErrValidation)
	}

	for _, name := range order {
		t := totals[name]
		if t.quantity > stats.BestSellingByQuantity.Quantity {
			stats.BestSellingByQuantity = domain.ProductByQuantity{Name: name, Quantity: t.quantity}
		}
		if t.revenue > stats.HighestRevenueProduct.Revenue {
			stats.HighestRevenueProduct = domain.ProductByRevenue{Name: name, Revenue: t.revenue}
		}
	}

	return stats, nil
}
