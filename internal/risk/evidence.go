package risk

import (
	"encoding/json"
	"errors"
	"strings"
)

// Risk levels the research prompt is allowed to emit. Anything else is kept
// as-is and scored with the unknown-level weight.
const (
	LevelHigh     = "High"
	LevelModerate = "Moderate"
	LevelLow      = "Low"
)

var ErrExtraction = errors.New("risk: could not extract evidence JSON from response")

// TaskFact is one task-level automation finding. Hours is filled in later by
// joining the user's submitted task-hours map; the provider never returns it.
type TaskFact struct {
	Task         string  `json:"task"`
	RiskLevel    string  `json:"riskLevel"`
	Evidence     string  `json:"evidence"`
	Impact       string  `json:"impact"`
	Timeline     string  `json:"timeline"`
	SourceURL    string  `json:"sourceUrl"`
	ToolsExample string  `json:"toolsExample"`
	Hours        float64 `json:"hours,omitempty"`

	// Some model responses use riskRating for the same field. Folded into
	// RiskLevel by Normalize and never serialized back out.
	RiskRating string `json:"riskRating,omitempty"`
}

type MacroStat struct {
	Stat      string `json:"stat"`
	Source    string `json:"source"`
	SourceURL string `json:"sourceUrl"`
	Year      string `json:"year"`
	Relevance string `json:"relevance"`
}

type IndustryContext struct {
	Overview    string   `json:"overview"`
	Trends      []string `json:"trends"`
	TimeHorizon string   `json:"timeHorizon"`
}

// LinkedInData is the fixed shape the LinkedIn inference call is asked to
// return about a public profile.
type LinkedInData struct {
	CurrentTitle      string               `json:"currentTitle"`
	Company           string               `json:"company"`
	YearsExperience   float64              `json:"yearsExperience"`
	Skills            []string             `json:"skills"`
	DailyTasks        []string             `json:"dailyTasks"`
	Industry          string               `json:"industry"`
	Education         string               `json:"education"`
	CareerProgression string               `json:"careerProgression"`
	Experience        []LinkedInExperience `json:"experience"`
}

type LinkedInExperience struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Duration string `json:"duration"`
}

// Evidence is the structured research output consumed by both the scorer and
// the analysis prompt. It is stored verbatim on the report for auditability.
type Evidence struct {
	TaskFacts       []TaskFact      `json:"taskFacts"`
	MacroStats      []MacroStat     `json:"macroStats"`
	IndustryContext IndustryContext `json:"industryContext"`
	LinkedIn        *LinkedInData   `json:"linkedinData,omitempty"`
}

// Normalize canonicalizes field drift at the extraction boundary: riskRating
// is folded into riskLevel, and the three known levels are matched
// case-insensitively so "high" scores like "High".
func (ev *Evidence) Normalize() {
	for i := range ev.TaskFacts {
		f := &ev.TaskFacts[i]
		if f.RiskLevel == "" && f.RiskRating != "" {
			f.RiskLevel = f.RiskRating
		}
		f.RiskRating = ""
		switch strings.ToLower(strings.TrimSpace(f.RiskLevel)) {
		case "high":
			f.RiskLevel = LevelHigh
		case "moderate":
			f.RiskLevel = LevelModerate
		case "low":
			f.RiskLevel = LevelLow
		}
	}
}

// DecodeEvidence parses a JSON document into a normalized Evidence.
func DecodeEvidence(data []byte) (*Evidence, error) {
	var ev Evidence
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	ev.Normalize()
	return &ev, nil
}

// ParseEvidence recovers an Evidence object from raw model output, which may
// be plain JSON, JSON wrapped in prose or code fences, or mildly malformed.
func ParseEvidence(text string) (*Evidence, error) {
	raw, ok := ExtractJSON(text)
	if !ok {
		return nil, ErrExtraction
	}
	ev, err := DecodeEvidence([]byte(raw))
	if err != nil {
		return nil, ErrExtraction
	}
	return ev, nil
}

// ParseLinkedInData applies the same defensive extraction to the LinkedIn
// inference response.
func ParseLinkedInData(text string) (*LinkedInData, error) {
	raw, ok := ExtractJSON(text)
	if !ok {
		return nil, ErrExtraction
	}
	var data LinkedInData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, ErrExtraction
	}
	return &data, nil
}
