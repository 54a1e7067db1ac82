package client

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"kakeibo/internal/ledger"
	"kakeibo/internal/models"
)

// FormatYen renders an amount as whole yen with thousands separators,
// rounding half up.
func FormatYen(d decimal.Decimal) string {
	yen := ledger.DivRoundHalfUp(d, decimal.NewFromInt(1), ledger.YenPlaces)
	return "¥" + humanize.Comma(yen.IntPart())
}

// RenderResult writes the purchase table followed by the summary.
func RenderResult(w io.Writer, res ledger.Result) error {
	if len(res.Purchases) == 0 {
		fmt.Fprintln(w, "No purchases.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "DATE\tCATEGORY\tAMOUNT\tNAME\tID")
		for _, p := range res.Purchases {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.Date, p.Category, FormatYen(p.Amount), p.Name, p.ID)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	fmt.Fprintln(w)
	return RenderSummary(w, res.Summary)
}

// RenderSummary writes the totals, the average and the per-category
// breakdown, largest category first.
func RenderSummary(w io.Writer, s ledger.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total\t%s\n", FormatYen(s.TotalAmount))
	fmt.Fprintf(tw, "Items\t%d\n", s.ItemCount)
	fmt.Fprintf(tw, "Average\t%s\n", FormatYen(s.Average(ledger.YenPlaces)))

	for _, category := range breakdownOrder(s.CategoryBreakdown) {
		fmt.Fprintf(tw, "  %s\t%s\n", category, FormatYen(s.CategoryBreakdown[category]))
	}
	return tw.Flush()
}

// RenderPurchase writes one purchase as a field list.
func RenderPurchase(w io.Writer, p models.Purchase) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\n", p.ID)
	fmt.Fprintf(tw, "Name\t%s\n", p.Name)
	fmt.Fprintf(tw, "Amount\t%s\n", FormatYen(p.Amount))
	fmt.Fprintf(tw, "Category\t%s\n", p.Category)
	fmt.Fprintf(tw, "Date\t%s\n", p.Date)
	if p.Description != nil {
		fmt.Fprintf(tw, "Description\t%s\n", *p.Description)
	}
	return tw.Flush()
}

// RenderFieldErrors writes one line per failing field, sorted by field name.
func RenderFieldErrors(w io.Writer, fields map[string][]string) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s %s\n", name, strings.Join(fields[name], ", "))
	}
}

func breakdownOrder(breakdown map[string]decimal.Decimal) []string {
	categories := make([]string, 0, len(breakdown))
	for c := range breakdown {
		categories = append(categories, c)
	}
	slices.SortFunc(categories, func(a, b string) int {
		if c := breakdown[b].Cmp(breakdown[a]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return categories
}
