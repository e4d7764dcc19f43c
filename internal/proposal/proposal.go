// Package proposal renders an estimate summary into the documents handed to
// the client: plain text, XLSX and PDF.
package proposal

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/Simplici0/estimator/internal/estimate"
	"github.com/Simplici0/estimator/internal/pricing"
	"github.com/Simplici0/estimator/internal/store"
)

// Terms are printed at the bottom of every proposal.
var Terms = []string{
	"50% deposit required to begin work",
	"Final payment due upon completion",
	"All materials and labor guaranteed for 2 years",
	"Estimate valid for 30 days",
	"Additional work requires written approval",
}

var exclusions = []string{
	"Repair of damaged or rotted substrates",
	"Moving of furniture or belongings",
	"Color matching of existing finishes",
}

type Document struct {
	CompanyName string
	Date        time.Time
	Client      store.Client
	Summary     estimate.Summary
	PrepTexts   []string
}

func (d Document) Reference() string {
	return d.Summary.Estimate.Reference
}

// CategoryTotal is one section of the roll-up printed above the item list.
type CategoryTotal struct {
	Category  pricing.Section
	Total     float64
	ItemTypes int
}

// Categories rolls item summaries up by catalog category, skipping empty ones.
func (d Document) Categories() []CategoryTotal {
	out := make([]CategoryTotal, 0, len(pricing.Sections))
	for _, section := range pricing.Sections {
		ct := CategoryTotal{Category: section}
		for _, it := range d.Summary.Items {
			if it.Category == section {
				ct.Total += it.Total
				ct.ItemTypes++
			}
		}
		if ct.ItemTypes == 0 {
			continue
		}
		ct.Total = pricing.Round2(ct.Total)
		out = append(out, ct)
	}
	return out
}

// Load gathers everything a proposal prints for one estimate.
func Load(ctx context.Context, st *store.Store, svc *estimate.Service, companyName string, estimateID int64) (Document, error) {
	sum, err := svc.Summary(ctx, estimateID)
	if err != nil {
		return Document{}, fmt.Errorf("load summary: %w", err)
	}
	client, err := st.GetClient(ctx, sum.Estimate.ClientID)
	if err != nil {
		return Document{}, fmt.Errorf("load client: %w", err)
	}
	items, err := st.ListPriceItems(ctx, false)
	if err != nil {
		return Document{}, fmt.Errorf("load price items: %w", err)
	}

	prep := make(map[int64]string, len(items))
	for _, it := range items {
		prep[it.ID] = it.PrepFinishText
	}
	seen := make(map[string]bool)
	var texts []string
	for _, l := range sum.Lines {
		t := strings.TrimSpace(prep[l.PriceItemID])
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		texts = append(texts, t)
	}

	return Document{
		CompanyName: companyName,
		Date:        time.Now(),
		Client:      client,
		Summary:     sum,
		PrepTexts:   texts,
	}, nil
}

// ScopeOfWork lists the client, the property and the distinct prep and finish
// descriptions of the items on the estimate.
func ScopeOfWork(client store.Client, prepTexts []string) string {
	var b strings.Builder
	b.WriteString("SCOPE OF WORK - PAINTING ESTIMATE\n\n")
	fmt.Fprintf(&b, "Client: %s\n", client.FullName())
	if client.Address1 != "" {
		b.WriteString("Property: " + client.Address1)
		if client.Address2 != "" {
			b.WriteString(", " + client.Address2)
		}
		if client.City != "" || client.State != "" {
			fmt.Fprintf(&b, "\n%s, %s %s", client.City, client.State, client.Postal)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(prepTexts) > 0 {
		b.WriteString("WORK TO BE PERFORMED:\n\n")
		for _, t := range prepTexts {
			fmt.Fprintf(&b, "• %s\n", t)
		}
		b.WriteString("\n")
	}

	b.WriteString("All work will be performed in a professional manner using quality materials and proven techniques. ")
	b.WriteString("Work area will be protected and cleaned upon completion.\n\n")
	b.WriteString("EXCLUSIONS:\n")
	for _, e := range exclusions {
		fmt.Fprintf(&b, "• %s\n", e)
	}
	return b.String()
}

// Text renders the full proposal as plain text.
func Text(d Document) string {
	var b strings.Builder
	if d.CompanyName != "" {
		b.WriteString(d.CompanyName + "\n")
	}
	fmt.Fprintf(&b, "PROPOSAL %s\n", d.Reference())
	fmt.Fprintf(&b, "Date: %s\n\n", d.Date.Format("2006-01-02"))

	b.WriteString(ScopeOfWork(d.Client, d.PrepTexts))
	b.WriteString("\n")

	if cats := d.Categories(); len(cats) > 0 {
		b.WriteString("SUMMARY BY CATEGORY\n")
		for _, c := range cats {
			fmt.Fprintf(&b, "%-10s %12s  (%d item types)\n", titleCase(string(c.Category)), money(c.Total), c.ItemTypes)
		}
		b.WriteString("\n")
	}

	b.WriteString("ITEMS\n")
	for _, it := range d.Summary.Items {
		fmt.Fprintf(&b, "%-40s %10s %-6s %12s\n", itemLabel(it), quantity(it.Quantity), it.Unit, money(it.Total))
	}
	b.WriteString("\n")

	t := d.Summary.Totals
	fmt.Fprintf(&b, "%-20s %12s\n", "Subtotal", money(t.Subtotal))
	fmt.Fprintf(&b, "%-20s %12s\n", "Overhead", money(t.Overhead))
	fmt.Fprintf(&b, "%-20s %12s\n", "Profit", money(t.Profit))
	fmt.Fprintf(&b, "%-20s %12s\n", "Tax", money(t.Tax))
	fmt.Fprintf(&b, "%-20s %12s\n\n", "TOTAL", money(t.GrandTotal))

	b.WriteString("TERMS & CONDITIONS\n")
	for _, term := range Terms {
		fmt.Fprintf(&b, "• %s\n", term)
	}
	return b.String()
}

// NotesHTML renders estimator notes written in markdown. Raw HTML in the
// notes is dropped.
func NotesHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render notes: %w", err)
	}
	return buf.String(), nil
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func quantity(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func itemLabel(it estimate.ItemSummary) string {
	if it.Substrate == "" {
		return it.Name
	}
	return fmt.Sprintf("%s (%s)", it.Name, strings.ReplaceAll(it.Substrate, "_", " "))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
