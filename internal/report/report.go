// Package report renders the research report from an analysis run.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cirf-research/cirf-cli/internal/stats"
	"github.com/cirf-research/cirf-cli/internal/store"
)

var titleCaser = cases.Title(language.English)

// Format renders a markdown research report from the analysis results and
// dataset statistics. Sections with no underlying data are omitted.
func Format(analysis *stats.Analysis, dbStats *store.Stats, now time.Time) string {
	var b strings.Builder

	b.WriteString("# Cultural Innovation Resilience Framework (CIRF) Analysis Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", now.UTC().Format("2006-01-02 15:04:05"))

	b.WriteString("## Dataset Overview\n")
	if dbStats != nil {
		fmt.Fprintf(&b, "- Total failure cases analyzed: %d\n", dbStats.TotalCases)
		fmt.Fprintf(&b, "- Countries represented: %d\n", len(dbStats.ByCountry))
		fmt.Fprintf(&b, "- Sectors analyzed: %d\n", len(dbStats.BySector))
	} else {
		fmt.Fprintf(&b, "- Total failure cases analyzed: %d\n", analysis.TotalCases)
	}
	b.WriteString("\n")

	writeComponentSection(&b, analysis.ComponentFrequency)

	if geo := analysis.Geographic; geo != nil && len(geo.MostCommon) > 0 {
		b.WriteString("## Geographic Distribution\n")
		b.WriteString("### Countries with Most Documented Failures\n")
		for _, nc := range top(geo.MostCommon, 5) {
			fmt.Fprintf(&b, "- %s: %d cases\n", nc.Name, nc.Count)
		}
		b.WriteString("\n")
	}

	if sec := analysis.Sector; sec != nil && len(sec.MostCommon) > 0 {
		b.WriteString("## Sector Analysis\n")
		b.WriteString("### Most Vulnerable Sectors\n")
		for _, nc := range top(sec.MostCommon, 5) {
			fmt.Fprintf(&b, "- %s: %d cases\n", titleCaser.String(nc.Name), nc.Count)
		}
		if sec.AverageEvidenceQuality > 0 {
			fmt.Fprintf(&b, "\nAverage evidence quality: %.2f / 3\n", sec.AverageEvidenceQuality)
		}
		b.WriteString("\n")
	}

	if corr := analysis.Correlation; corr != nil && len(corr.Strongest) > 0 {
		b.WriteString("## Component Correlations\n")
		b.WriteString("### Strongest Component Correlations\n")
		for i, c := range corr.Strongest {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "- %s / %s: %.3f\n",
				c.First.Display(), c.Second.Display(), c.Correlation)
		}
		b.WriteString("\n")
	}

	if tmp := analysis.Temporal; tmp != nil && tmp.Timeline != nil {
		b.WriteString("## Collection Timeline\n")
		fmt.Fprintf(&b, "- Window: %s to %s (%d days)\n",
			tmp.Timeline.Start.Format("2006-01-02"),
			tmp.Timeline.End.Format("2006-01-02"),
			tmp.Timeline.TotalDays)
		b.WriteString("\n")
	}

	if cl := analysis.Cluster; cl != nil && len(cl.Clusters) > 0 {
		b.WriteString("## Failure Pattern Clusters\n")
		fmt.Fprintf(&b, "Identified %d distinct failure patterns.\n\n", cl.NumClusters)
		for _, c := range cl.Clusters {
			fmt.Fprintf(&b, "- Cluster %d: %d cases, average total score %.2f\n",
				c.ID, c.Size, c.AverageTotalScore)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// writeComponentSection lists the five most violated components by rate.
func writeComponentSection(b *strings.Builder, freq map[string]stats.ComponentStats) {
	if len(freq) == 0 {
		return
	}
	type entry struct {
		name string
		cs   stats.ComponentStats
	}
	entries := make([]entry, 0, len(freq))
	for name, cs := range freq {
		entries = append(entries, entry{name, cs})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].cs.ViolationRate != entries[j].cs.ViolationRate {
			return entries[i].cs.ViolationRate > entries[j].cs.ViolationRate
		}
		return entries[i].name < entries[j].name
	})

	b.WriteString("## CIRF Component Violation Analysis\n")
	b.WriteString("### Most Frequently Violated Components\n")
	for i, e := range entries {
		if i >= 5 {
			break
		}
		fmt.Fprintf(b, "- %s: %.1f%% violation rate\n", e.name, e.cs.ViolationRate*100)
	}
	b.WriteString("\n")
}

func top(list []stats.NameCount, n int) []stats.NameCount {
	if len(list) > n {
		return list[:n]
	}
	return list
}
