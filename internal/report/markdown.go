// Package report renders pipeline runs as markdown, HTML and XLSX.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/montanaflynn/stats"

	"namecheck/domain/run"
	"namecheck/domain/score"
	"namecheck/domain/verdict"
)

// Markdown renders a pipeline run as a markdown report.
func Markdown(r run.Run) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Brand name report\n\n")
	fmt.Fprintf(&b, "**Business:** %s\n\n", r.Description)
	fmt.Fprintf(&b, "**Run:** %s — %d generated, %d ranked, %d dropped\n\n",
		r.ID, r.Generated, len(r.Ranked), len(r.Dropped))

	if len(r.Ranked) == 0 {
		b.WriteString("No candidates survived checking.\n")
		return b.String()
	}

	writeDistribution(&b, r)

	b.WriteString("## Ranked candidates\n\n")
	b.WriteString("| # | Name | Score | Tier | .com | Trademark | Style |\n")
	b.WriteString("|---|------|-------|------|------|-----------|-------|\n")
	for i, rc := range r.Ranked {
		b.WriteString(fmt.Sprintf("| %d | %s | %d | %s | %s | %s | %s |\n",
			i+1, rc.Candidate.Name, rc.Score.Total, tier(rc.Score),
			comSummary(rc.Result), rc.Result.TrademarkStatus, rc.Candidate.Style))
	}
	b.WriteString("\n")

	for i, rc := range r.Ranked {
		fmt.Fprintf(&b, "## %d. %s — %s\n\n", i+1, rc.Candidate.Name, rc.Score)
		if rc.Candidate.Rationale != "" {
			fmt.Fprintf(&b, "%s\n\n", rc.Candidate.Rationale)
		}
		writeSubscores(&b, rc.Score)
		writeChannels(&b, rc.Result)
		if rc.FitRationale != "" {
			fmt.Fprintf(&b, "Fit: %s\n\n", rc.FitRationale)
		}
	}

	if len(r.Dropped) > 0 {
		b.WriteString("## Dropped\n\n")
		for _, d := range r.Dropped {
			fmt.Fprintf(&b, "- %s: %s\n", d.Name, d.Reason)
		}
	}

	return b.String()
}

// writeDistribution summarizes the score spread across the ranking.
func writeDistribution(b *strings.Builder, r run.Run) {
	totals := make([]float64, 0, len(r.Ranked))
	for _, rc := range r.Ranked {
		totals = append(totals, float64(rc.Score.Total))
	}
	mean, _ := stats.Mean(totals)
	median, _ := stats.Median(totals)
	p90, _ := stats.Percentile(totals, 90)
	fmt.Fprintf(b, "Score distribution: mean %.1f, median %.1f, p90 %.1f\n\n", mean, median, p90)
}

func writeSubscores(b *strings.Builder, s score.BrandFitScore) {
	dims := []score.Dimension{score.DimAvailability, score.DimSocial, score.DimSEO, score.DimTrademark, score.DimFit}
	parts := make([]string, 0, len(dims))
	for _, d := range dims {
		parts = append(parts, fmt.Sprintf("%s %.0f", d, s.Subscores[d]))
	}
	fmt.Fprintf(b, "Subscores: %s\n\n", strings.Join(parts, " · "))
}

func writeChannels(b *strings.Builder, result verdict.NameCheckResult) {
	for _, tld := range sortedKeys(result.DomainVerdicts) {
		v := result.DomainVerdicts[tld]
		fmt.Fprintf(b, "- .%s: %s (%s, %s)\n", tld, v.State, v.Confidence, v.SourceMethod)
	}
	for _, platform := range sortedKeys(result.SocialVerdicts) {
		v := result.SocialVerdicts[platform]
		fmt.Fprintf(b, "- %s: %s (%s)\n", platform, v.State, v.Confidence)
	}
	if result.TrademarkSerial != "" {
		fmt.Fprintf(b, "- trademark: %s (serial %s)\n", result.TrademarkStatus, result.TrademarkSerial)
	} else {
		fmt.Fprintf(b, "- trademark: %s\n", result.TrademarkStatus)
	}
	for _, s := range result.SEOSignals {
		if s.Placeholder {
			continue
		}
		fmt.Fprintf(b, "- seo: %s (%s authority)\n", s.RootDomain, s.AuthorityTier)
	}
	b.WriteString("\n")
}

func sortedKeys(m map[string]verdict.AvailabilityVerdict) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func comSummary(result verdict.NameCheckResult) string {
	if v, ok := result.DomainVerdicts["com"]; ok {
		return v.State.String()
	}
	return "unchecked"
}

func tier(s score.BrandFitScore) string {
	switch {
	case s.Total >= 80:
		return "excellent"
	case s.Total >= 60:
		return "good"
	case s.Total >= 40:
		return "mixed"
	default:
		return "limited"
	}
}

// HTML renders the markdown report as a standalone HTML fragment.
func HTML(r run.Run) []byte {
	md := []byte(Markdown(r))
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML(md, p, renderer)
}
