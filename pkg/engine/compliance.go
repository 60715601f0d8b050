package engine

// ComplianceMap cross-references findings against external classification
// schemes, keyed by reference text.
type ComplianceMap struct {
	OWASP map[string][]string `json:"owasp"`
	CWE   map[string][]string `json:"cwe"`
}

// BuildComplianceMap groups finding ids by OWASP and CWE reference.
// Findings without a reference are left out of that table.
func BuildComplianceMap(findings []Finding) ComplianceMap {
	return ComplianceMap{
		OWASP: GroupByField(findings, "owasp"),
		CWE:   GroupByField(findings, "cwe"),
	}
}

// complianceTable describes how one mapping is rendered
type complianceTable struct {
	Heading string
	Column  string
	Groups  map[string][]string
}

func (c ComplianceMap) tables() []complianceTable {
	return []complianceTable{
		{Heading: "OWASP Top 10", Column: "OWASP Category", Groups: c.OWASP},
		{Heading: "CWE References", Column: "CWE", Groups: c.CWE},
	}
}
