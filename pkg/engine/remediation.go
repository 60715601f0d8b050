package engine

// RemediationItem is one roadmap checklist entry
type RemediationItem struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Severity       Severity `json:"severity"`
	Recommendation string   `json:"recommendation"`
}

// Roadmap holds the open findings bucketed by urgency.
type Roadmap struct {
	Immediate  []RemediationItem `json:"immediate"`
	ShortTerm  []RemediationItem `json:"short_term"`
	MediumTerm []RemediationItem `json:"medium_term"`
	Backlog    []RemediationItem `json:"backlog"`
}

// roadmapBucket describes how one roadmap bucket is rendered.
type roadmapBucket struct {
	Heading            string
	Items              []RemediationItem
	ShowRecommendation bool
}

// BuildRoadmap buckets findings with status open by severity: critical is
// Immediate, high Short-term, medium Medium-term, low and info Backlog.
// Anything not open is left out.
func BuildRoadmap(findings []Finding) Roadmap {
	r := Roadmap{
		Immediate:  []RemediationItem{},
		ShortTerm:  []RemediationItem{},
		MediumTerm: []RemediationItem{},
		Backlog:    []RemediationItem{},
	}
	for _, f := range findings {
		if f.Status != StatusOpen {
			continue
		}
		item := RemediationItem{
			ID:             f.ID,
			Title:          f.Title,
			Severity:       f.Severity,
			Recommendation: f.Recommendation,
		}
		switch f.Severity {
		case SeverityCritical:
			r.Immediate = append(r.Immediate, item)
		case SeverityHigh:
			r.ShortTerm = append(r.ShortTerm, item)
		case SeverityMedium:
			r.MediumTerm = append(r.MediumTerm, item)
		case SeverityLow, SeverityInfo:
			r.Backlog = append(r.Backlog, item)
		}
	}
	return r
}

// Len returns the number of items across all buckets.
func (r Roadmap) Len() int {
	return len(r.Immediate) + len(r.ShortTerm) + len(r.MediumTerm) + len(r.Backlog)
}

func (r Roadmap) buckets() []roadmapBucket {
	return []roadmapBucket{
		{Heading: "🚨 Immediate (Fix Now)", Items: r.Immediate, ShowRecommendation: true},
		{Heading: "⚠️ Short-term (1-4 weeks)", Items: r.ShortTerm},
		{Heading: "📋 Medium-term (1-3 months)", Items: r.MediumTerm},
		{Heading: "📝 Backlog", Items: r.Backlog},
	}
}
