// Package report writes solved pathways as tabular output for downstream
// analysis tooling.
package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/industrial-decarb/pathway-optimizer/pkg/core"
)

// WriteDeployment writes the per-technology, per-year deployment grid as CSV.
// Rows with no activity at all are kept: a zero row is information, not noise,
// when comparing scenarios.
func WriteDeployment(w io.Writer, p *core.Pathway) error {
	cw := csv.NewWriter(w)
	header := []string{"tech", "year", "installed", "in_service", "production", "abatement", "annualized_cost"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing deployment header: %w", err)
	}
	for _, r := range p.Records {
		row := []string{
			r.TechID,
			fmt.Sprintf("%d", r.Year),
			formatValue(r.Installed),
			formatValue(r.InService),
			formatValue(r.Production),
			formatValue(r.Abatement),
			formatValue(r.AnnualizedCost),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing deployment row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummary writes the per-year aggregate table as CSV.
func WriteSummary(w io.Writer, p *core.Pathway) error {
	cw := csv.NewWriter(w)
	header := []string{"year", "required", "achieved", "shortfall", "remaining", "cost", "target_met"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing summary header: %w", err)
	}
	for _, s := range p.Summary {
		row := []string{
			fmt.Sprintf("%d", s.Year),
			formatValue(s.Required),
			formatValue(s.Achieved),
			formatValue(s.Shortfall),
			formatValue(s.Remaining),
			formatValue(s.Cost),
			fmt.Sprintf("%t", s.TargetMet),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing summary row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMACC writes a marginal abatement cost curve as CSV in cost order.
func WriteMACC(w io.Writer, points []core.MACCPoint) error {
	cw := csv.NewWriter(w)
	header := []string{"tech", "cost_per_unit_abated", "potential", "cumulative"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing macc header: %w", err)
	}
	for _, pt := range points {
		row := []string{
			pt.TechID,
			formatValue(pt.Cost),
			formatValue(pt.Potential),
			formatValue(pt.Cumulative),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing macc row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatValue(v float64) string {
	return fmt.Sprintf("%g", v)
}
