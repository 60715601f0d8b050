package engine

import "sort"

// CountBySeverity maps each severity present to its number of findings.
func CountBySeverity(findings []Finding) map[Severity]int {
	counts := make(map[Severity]int)
	for _, f := range findings {
		counts[f.Severity]++
	}
	return counts
}

// CountByPhase maps each display phase label to its number of findings.
func CountByPhase(findings []Finding) map[string]int {
	counts := make(map[string]int)
	for _, f := range findings {
		counts[f.DisplayPhase()]++
	}
	return counts
}

// CountByStatus maps each raw status to its number of findings
func CountByStatus(findings []Finding) map[Status]int {
	counts := make(map[Status]int)
	for _, f := range findings {
		counts[f.Status]++
	}
	return counts
}

// GroupByField maps each non-empty value of the named field to the ids of
// the findings carrying it, in input order.
func GroupByField(findings []Finding, field string) map[string][]string {
	groups := make(map[string][]string)
	for _, f := range findings {
		value := f.Field(field)
		if value == "" {
			continue
		}
		groups[value] = append(groups[value], f.ID)
	}
	return groups
}

// SortedKeys returns the keys of a grouping in lexical order.
func SortedKeys(groups map[string][]string) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// StatusBuckets are the statistics-table counts. Hyphenated and spaced
// spellings land in the same bucket.
type StatusBuckets struct {
	Total        int `json:"total"`
	Open         int `json:"open"`
	InProgress   int `json:"in_progress"`
	Resolved     int `json:"resolved"`
	AcceptedRisk int `json:"accepted_risk"`
}

// CountStatusBuckets folds status counts into the statistics buckets.
func CountStatusBuckets(findings []Finding) StatusBuckets {
	b := StatusBuckets{Total: len(findings)}
	for _, f := range findings {
		switch f.Status.Normalized() {
		case StatusOpen:
			b.Open++
		case StatusInProgress:
			b.InProgress++
		case StatusResolved, StatusFixed:
			b.Resolved++
		case StatusAcceptedRisk:
			b.AcceptedRisk++
		}
	}
	return b
}

// RiskLevel is the overall rating shown in the executive summary.
type RiskLevel string

const (
	RiskCritical RiskLevel = "Critical"
	RiskHigh     RiskLevel = "High"
	RiskMedium   RiskLevel = "Medium"
	RiskLow      RiskLevel = "Low"
)

// AssessRisk rates a finding set: any critical is Critical, more than two
// highs is High, any high is Medium, otherwise Low.
func AssessRisk(findings []Finding) RiskLevel {
	counts := CountBySeverity(findings)
	switch {
	case counts[SeverityCritical] > 0:
		return RiskCritical
	case counts[SeverityHigh] > 2:
		return RiskHigh
	case counts[SeverityHigh] > 0:
		return RiskMedium
	default:
		return RiskLow
	}
}

// phaseGroup is one display-phase bucket in loaded order.
type phaseGroup struct {
	Label    string
	Findings []Finding
}

// groupByPhase buckets findings by display label, ordered by the label's
// number ascending with non-numeric labels last.
func groupByPhase(findings []Finding) []phaseGroup {
	index := make(map[string]int)
	var groups []phaseGroup
	for _, f := range findings {
		label := f.DisplayPhase()
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, phaseGroup{Label: label})
		}
		groups[i].Findings = append(groups[i].Findings, f)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		di := groups[i].Findings[0].phaseDigits()
		dj := groups[j].Findings[0].phaseDigits()
		iok, jok := di != "", dj != ""
		switch {
		case iok && jok && comparePhaseDigits(di, dj) != 0:
			return comparePhaseDigits(di, dj) < 0
		case iok != jok:
			return iok
		default:
			return groups[i].Label < groups[j].Label
		}
	})
	return groups
}
