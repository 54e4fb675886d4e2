package healthcheck

// WorkspaceStatus describes what happened to a single workspace during a run.
type WorkspaceStatus string

// Workspace statuses. Every workspace starts as WorkspaceStatusNotChecked and ends in exactly one of the others.
const (
	WorkspaceStatusNotChecked   WorkspaceStatus = WorkspaceStatus("not_checked")
	WorkspaceStatusSkipped      WorkspaceStatus = WorkspaceStatus("skipped")
	WorkspaceStatusResolved     WorkspaceStatus = WorkspaceStatus("resolved")
	WorkspaceStatusRepairedOK   WorkspaceStatus = WorkspaceStatus("repaired")
	WorkspaceStatusRepairFailed WorkspaceStatus = WorkspaceStatus("repair_failed")
)

// AuditStatus describes the outcome of the security audit.
type AuditStatus string

// Audit statuses.
const (
	AuditStatusNotRun               AuditStatus = AuditStatus("not_run")
	AuditStatusPassed               AuditStatus = AuditStatus("passed")
	AuditStatusVulnerabilitiesFound AuditStatus = AuditStatus("vulnerabilities_found")
)

// WorkspaceReport records the final status of one workspace.
type WorkspaceReport struct {
	Workspace string
	Path      string
	Status    WorkspaceStatus
}

// Report summarizes a health check run. Workspaces lists the project root first, followed by the
// configured workspaces in the order they were checked.
type Report struct {
	Workspaces []WorkspaceReport
	Audit      AuditStatus
}

// CountByStatus returns how many workspaces finished with the given status.
func (report Report) CountByStatus(status WorkspaceStatus) int {
	count := 0
	for _, workspaceReport := range report.Workspaces {
		if workspaceReport.Status == status {
			count++
		}
	}
	return count
}
