package remediate

import (
	"github.com/hashicorp/go-hclog"

	"github.com/tinybird-labs/tb-migrate/internal/backup"
	"github.com/tinybird-labs/tb-migrate/internal/checks"
	"github.com/tinybird-labs/tb-migrate/internal/interaction"
	"github.com/tinybird-labs/tb-migrate/internal/inventory"
)

// FixMarker prefixes every line commented out by a remediation routine. The
// original statement text is kept verbatim after the marker for audit.
const FixMarker = "# COMMENTED OUT FOR FORWARD MIGRATION: "

// fixer mutates the files behind one auto-fixable finding. It returns the
// list of applied fixes; per-file failures are collected and do not stop the
// remaining files of the batch.
type fixer func(inv *inventory.Inventory) (fixed []string, errs []error)

// Engine pairs auto-fixable findings with their remediation routines. Every
// mutation goes through the backup service first, and every batch through the
// injected confirmer.
type Engine struct {
	backups   *backup.Service
	confirmer interaction.Confirmer
	logger    hclog.Logger
}

func NewEngine(backups *backup.Service, confirmer interaction.Confirmer, logger hclog.Logger) *Engine {
	return &Engine{
		backups:   backups,
		confirmer: confirmer,
		logger:    logger,
	}
}

// Backups exposes the backup service used by the engine.
func (e *Engine) Backups() *backup.Service {
	return e.backups
}

// Apply offers remediation for every auto-fixable finding with issues and
// runs the confirmed ones. Findings are updated in place: applied fixes are
// recorded and the status is upgraded to FIXED. Files are mutated strictly
// sequentially, so a file touched by more than one rule never loses an edit.
func (e *Engine) Apply(inv *inventory.Inventory, findings []checks.Finding) {
	for i := range findings {
		finding := &findings[i]
		if !finding.AutoFixable || len(finding.Issues) == 0 {
			continue
		}

		routine, prompt := e.routineFor(finding.Name)
		if routine == nil {
			continue
		}

		if !e.confirmer.Confirm(prompt) {
			e.logger.Info("auto-fix declined", "check", finding.Name)
			continue
		}

		fixed, errs := routine(inv)
		for _, err := range errs {
			e.logger.Error("auto-fix failed for a file, continuing", "check", finding.Name, "error", err)
		}

		finding.MarkFixed(fixed)
		if len(fixed) > 0 {
			e.logger.Info("auto-fix applied", "check", finding.Name, "fixes", len(fixed))
		}
	}
}

// routineFor maps a finding name onto its remediation routine and the
// confirmation prompt shown before the batch runs.
func (e *Engine) routineFor(name string) (fixer, string) {
	switch name {
	case checks.CheckSinks:
		return e.fixSinks, "Would you like to automatically comment out sink declarations?"
	case checks.CheckSharedDatasources:
		return e.fixSharedDatasources, "Would you like to automatically remove shared datasource declarations?"
	case checks.CheckEndpointTypes:
		return e.fixEndpointTypes, "Would you like to automatically add missing NODE declarations?"
	case checks.CheckIncludeFiles:
		return e.fixIncludeFiles, "Would you like to automatically handle include files?"
	}
	return nil, ""
}
