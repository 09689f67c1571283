package risk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildResearchPrompt_SchemaAndInputs(t *testing.T) {
	prompt := BuildResearchPrompt(ResearchInput{
		Role:      "Marketing Manager",
		TaskHours: map[string]float64{"Writing copy": 10, "Analytics": 5},
		Resume:    "Ten years running campaigns.",
		LinkedIn: &LinkedInData{
			CurrentTitle: "Head of Marketing",
			Company:      "Acme",
			Skills:       []string{"SEO", "Copywriting"},
		},
		BenchmarkContext: "Marketing Manager: heavy content automation exposure.",
	})

	assert.Contains(t, prompt, "Role: Marketing Manager")
	assert.Contains(t, prompt, "- Analytics: 5")
	assert.Contains(t, prompt, "- Writing copy: 10")
	assert.Contains(t, prompt, "Ten years running campaigns.")
	assert.Contains(t, prompt, "Head of Marketing")
	assert.Contains(t, prompt, "heavy content automation exposure")

	// The schema the extractor expects back.
	assert.Contains(t, prompt, `"taskFacts"`)
	assert.Contains(t, prompt, `"macroStats"`)
	assert.Contains(t, prompt, `"industryContext"`)
	assert.Contains(t, prompt, `"riskLevel"`)

	// Source discipline must be spelled out.
	assert.Contains(t, prompt, "Never fabricate statistics or URLs")
}

func TestBuildResearchPrompt_TasksSortedDeterministically(t *testing.T) {
	in := ResearchInput{
		Role:      "Analyst",
		TaskHours: map[string]float64{"b": 1, "a": 2, "c": 3},
	}
	first := BuildResearchPrompt(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, BuildResearchPrompt(in))
	}
	assert.Less(t, strings.Index(first, "- a: 2"), strings.Index(first, "- b: 1"))
	assert.Less(t, strings.Index(first, "- b: 1"), strings.Index(first, "- c: 3"))
}

func TestBuildAnalysisPrompt_DelimiterAndHeadings(t *testing.T) {
	prompt := BuildAnalysisPrompt(`{"taskFacts":[]}`, EnhancedProfile{
		Role:            "Software Engineer",
		YearsExperience: 7,
		CompanySize:     "200-500",
		KeySkills:       []string{"Go", "SQL"},
	})

	assert.Contains(t, prompt, ReportDelimiter)
	assert.Contains(t, prompt, "at most 120 words")
	assert.Contains(t, prompt, "# Your AI Risk Report")
	assert.Contains(t, prompt, "## Task-by-Task Breakdown")
	assert.Contains(t, prompt, "## What the Numbers Say")
	assert.Contains(t, prompt, "## Industry Outlook")
	assert.Contains(t, prompt, "## How to Stay Ahead")
	assert.Contains(t, prompt, `{"taskFacts":[]}`)
	assert.Contains(t, prompt, "Years of experience: 7")
}

func TestSplitReport(t *testing.T) {
	preview, full := SplitReport("PREVIEW TEXT\n---FULL_REPORT---\nFULL TEXT")
	assert.Equal(t, "PREVIEW TEXT", preview)
	assert.Equal(t, "FULL TEXT", full)
}

func TestSplitReport_MissingDelimiter(t *testing.T) {
	preview, full := SplitReport("Just one blob of text.")
	assert.Equal(t, "Just one blob of text.", preview)
	assert.Equal(t, "Report generation incomplete. Please try again.", full)
}

func TestSplitReport_EmptySections(t *testing.T) {
	preview, full := SplitReport("")
	assert.NotEmpty(t, preview)
	assert.NotEmpty(t, full)

	preview, full = SplitReport("---FULL_REPORT---\nonly the report")
	assert.Equal(t, "Report generation incomplete. Please try again.", preview)
	assert.Equal(t, "only the report", full)
}
