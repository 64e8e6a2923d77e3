package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/slices"
)

// WriteText prints a human readable report. The detailed group adds
// per-type load, per-route load, revenue breakdowns and station counters.
func WriteText(w io.Writer, report Report, groups []string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Simulation time: %s (%d ticks, seed %d)\n", report.Time, report.Ticks, report.Seed)
	fmt.Fprintf(&b, "Tickets sold: %d\n", report.Sales)
	fmt.Fprintf(&b, "Passengers denied: %d\n", report.Denied)
	fmt.Fprintf(&b, "Total revenue: %.2f\n", report.TotalRevenue)
	fmt.Fprintf(&b, "Passengers generated: %d, disembarked: %d, on board: %d\n", report.Generated, report.Disembarked, report.Onboard)

	if hasGroup(groups, GroupDetailed) {
		b.WriteString("\nWagon load:\n")
		writeLoads(&b, report.WagonLoad)

		b.WriteString("\nRoute load:\n")
		writeLoads(&b, report.RouteLoad)

		b.WriteString("\nRevenue by train:\n")
		for _, amount := range report.RevenueByTrain {
			fmt.Fprintf(&b, "  %-24s %10.2f\n", amount.Key, amount.Amount)
		}

		b.WriteString("\nRevenue by departure station:\n")
		for _, amount := range report.RevenueByStation {
			fmt.Fprintf(&b, "  %-24s %10.2f\n", amount.Key, amount.Amount)
		}

		b.WriteString("\nRevenue by wagon type:\n")
		for _, key := range sortedKeys(report.RevenueByWagonType) {
			fmt.Fprintf(&b, "  %-24s %10.2f\n", key, report.RevenueByWagonType[key])
		}

		b.WriteString("\nStations:\n")
		for _, station := range report.Stations {
			fmt.Fprintf(&b, "  %-24s waiting %4d  departed %4d\n", station.Name, station.Waiting, station.Departed)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeLoads(b *strings.Builder, loads map[string]Load) {
	for _, key := range sortedKeys(loads) {
		load := loads[key]
		fmt.Fprintf(b, "  %-40s %4d/%-4d %6.1f%%\n", key, load.Occupied, load.Seats, load.Ratio*100)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
