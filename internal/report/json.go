package report

// JSONCheck is the JSON projection of a single check result. The full
// message is always used regardless of verbosity.
type JSONCheck struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Passed   bool   `json:"passed"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// JSONReport is the JSON projection of a finalized report.
type JSONReport struct {
	Repository   string      `json:"repository"`
	RepoType     string      `json:"repo_type"`
	TotalChecks  int         `json:"total_checks"`
	PassedChecks int         `json:"passed_checks"`
	FailedChecks int         `json:"failed_checks"`
	Score        float64     `json:"score"`
	Summary      string      `json:"summary"`
	Checks       []JSONCheck `json:"checks"`
}

// JSONDocument projects the report into its JSON representation.
func (instance *Report) JSONDocument(symbols SymbolSet) JSONReport {
	checks := make([]JSONCheck, 0, len(instance.Checks))
	for _, check := range instance.Checks {
		checks = append(checks, JSONCheck{
			Name:     check.Name,
			Category: check.Category,
			Passed:   check.Passed,
			Message:  check.Message,
			Severity: string(check.Severity),
		})
	}

	return JSONReport{
		Repository:   instance.RepositoryIdentifier,
		RepoType:     string(instance.Kind),
		TotalChecks:  instance.TotalChecks(),
		PassedChecks: instance.PassedChecks(),
		FailedChecks: instance.FailedChecks(),
		Score:        instance.CalculateScore(),
		Summary:      instance.Summary(symbols),
		Checks:       checks,
	}
}
