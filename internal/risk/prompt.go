package risk

import (
	"fmt"
	"sort"
	"strings"
)

// ReportDelimiter separates the preview from the full report in the analysis
// response. The analysis prompt instructs the model to emit it literally.
const ReportDelimiter = "---FULL_REPORT---"

// ResearchInput is everything the research prompt can draw on.
type ResearchInput struct {
	Role             string
	TaskHours        map[string]float64
	Resume           string
	ProfileData      string // raw JSON sidecar, may be empty
	LinkedIn         *LinkedInData
	BenchmarkContext string // nearest occupation benchmarks, may be empty
}

// EnhancedProfile is the merged profile view the analysis prompt receives:
// top-level intake fields flattened together with the profile_data and
// linkedin_data sidecars.
type EnhancedProfile struct {
	Role              string
	Resume            string
	TaskHours         map[string]float64
	YearsExperience   float64
	CompanySize       string
	KeySkills         []string
	CareerCategory    string
	Industry          string
	Education         string
	CareerProgression string
}

// BuildResearchPrompt renders the research prompt: investigate AI-automation
// risk for the profile and return structured evidence as strict JSON.
func BuildResearchPrompt(in ResearchInput) string {
	var sb strings.Builder

	sb.WriteString("You are an AI labor-market researcher. Research the current, real-world automation risk for the professional profile below.\n")
	sb.WriteString("Use only verifiable, named sources (published studies, reports, reputable press). Never fabricate statistics or URLs; if you cannot find a source, omit the claim.\n\n")

	sb.WriteString(fmt.Sprintf("Role: %s\n", in.Role))
	if len(in.TaskHours) > 0 {
		sb.WriteString("Weekly task breakdown (task: hours/week):\n")
		for _, task := range sortedTasks(in.TaskHours) {
			sb.WriteString(fmt.Sprintf("- %s: %.0f\n", task, in.TaskHours[task]))
		}
	}
	if in.Resume != "" {
		sb.WriteString(fmt.Sprintf("\nProfessional background:\n%s\n", in.Resume))
	}
	if in.ProfileData != "" {
		sb.WriteString(fmt.Sprintf("\nAdditional profile data (JSON):\n%s\n", in.ProfileData))
	}
	if in.LinkedIn != nil {
		sb.WriteString(fmt.Sprintf("\nLinkedIn summary: %s at %s, %.0f years experience, industry: %s\n",
			in.LinkedIn.CurrentTitle, in.LinkedIn.Company, in.LinkedIn.YearsExperience, in.LinkedIn.Industry))
		if len(in.LinkedIn.Skills) > 0 {
			sb.WriteString(fmt.Sprintf("Skills: %s\n", strings.Join(in.LinkedIn.Skills, ", ")))
		}
	}
	if in.BenchmarkContext != "" {
		sb.WriteString(fmt.Sprintf("\nOccupation benchmarks for context (use as background, still cite real sources):\n%s\n", in.BenchmarkContext))
	}

	sb.WriteString(`
Return your answer STRICTLY in JSON format with this schema:
{
  "taskFacts": [
    {
      "task": "<task name, matching the submitted task names where possible>",
      "riskLevel": "<High | Moderate | Low>",
      "evidence": "<what the sources say about automating this task>",
      "impact": "<estimated share of the task that is automatable>",
      "timeline": "<estimated timeline, e.g. '1-3 years'>",
      "sourceUrl": "<real URL of the source>",
      "toolsExample": "<named tools already doing this>"
    }
  ],
  "macroStats": [
    {
      "stat": "<the statistic>",
      "source": "<source name>",
      "sourceUrl": "<real URL>",
      "year": "<publication year>",
      "relevance": "<why it matters for this profile>"
    }
  ],
  "industryContext": {
    "overview": "<overview of AI adoption in this industry>",
    "trends": ["<trend>"],
    "timeHorizon": "<overall time horizon for this role>"
  }
}

Return only the JSON object. No markdown, no commentary before or after it.
`)
	return sb.String()
}

// BuildAnalysisPrompt renders the report-writing prompt from the evidence
// JSON and the merged profile. The response must contain two sections
// separated by the literal delimiter.
func BuildAnalysisPrompt(evidenceJSON string, profile EnhancedProfile) string {
	var sb strings.Builder

	sb.WriteString("You are a career strategist writing an AI-automation risk report for the professional below.\n\n")
	sb.WriteString(fmt.Sprintf("Role: %s\n", profile.Role))
	if profile.YearsExperience > 0 {
		sb.WriteString(fmt.Sprintf("Years of experience: %.0f\n", profile.YearsExperience))
	}
	if profile.CompanySize != "" {
		sb.WriteString(fmt.Sprintf("Company size: %s\n", profile.CompanySize))
	}
	if profile.Industry != "" {
		sb.WriteString(fmt.Sprintf("Industry: %s\n", profile.Industry))
	}
	if profile.CareerCategory != "" {
		sb.WriteString(fmt.Sprintf("Career category: %s\n", profile.CareerCategory))
	}
	if len(profile.KeySkills) > 0 {
		sb.WriteString(fmt.Sprintf("Key skills: %s\n", strings.Join(profile.KeySkills, ", ")))
	}
	if profile.CareerProgression != "" {
		sb.WriteString(fmt.Sprintf("Career progression: %s\n", profile.CareerProgression))
	}
	if profile.Resume != "" {
		sb.WriteString(fmt.Sprintf("\nBackground:\n%s\n", profile.Resume))
	}

	sb.WriteString(fmt.Sprintf("\nResearch evidence (JSON):\n%s\n", evidenceJSON))

	sb.WriteString(fmt.Sprintf(`
Write exactly two sections separated by the literal delimiter %s on its own line.

Section 1 (before the delimiter): a preview of at most 120 words summarizing the overall risk picture for this person. Plain text, no headings.

Section 2 (after the delimiter): the full report in markdown with exactly these sections:
# Your AI Risk Report
## Task-by-Task Breakdown
## What the Numbers Say
## Industry Outlook
## How to Stay Ahead

Ground every claim in the evidence above and cite its sources inline. Do not invent sources.
`, ReportDelimiter))
	return sb.String()
}

// BuildLinkedInPrompt asks the provider to use web search to summarize a
// public LinkedIn profile into a fixed JSON shape.
func BuildLinkedInPrompt(url string) string {
	return fmt.Sprintf(`Use web search to retrieve the public LinkedIn profile at %s and summarize it.

Return your answer STRICTLY in JSON format with this schema:
{
  "currentTitle": "<current job title>",
  "company": "<current company>",
  "yearsExperience": <total years of professional experience, number>,
  "skills": ["<skill>"],
  "dailyTasks": ["<inferred daily task>"],
  "industry": "<industry>",
  "education": "<highest education>",
  "careerProgression": "<2-3 sentence narrative of the career path>",
  "experience": [
    {"title": "<title>", "company": "<company>", "duration": "<duration>"}
  ]
}

Return only the JSON object. If the profile cannot be retrieved, return {"currentTitle": ""}.
`, url)
}

// BuildDocumentPrompt asks the provider to infer resume-style text from an
// uploaded document it cannot be parsed from directly. Inherently lossy.
func BuildDocumentPrompt(name, mediaType, content string) string {
	return fmt.Sprintf(`The user uploaded a document named %q (media type %s) as their resume. The raw content below may be partially binary or garbled.

%s

Extract whatever professional narrative you can (roles, employers, skills, accomplishments) and return it as plain text. Return only the extracted text; if nothing is recoverable, return an empty response.
`, name, mediaType, content)
}

// SplitReport splits an analysis response into preview and full report. A
// missing delimiter yields the whole response as preview and a placeholder
// full report; it never fails.
func SplitReport(text string) (preview, full string) {
	const placeholder = "Report generation incomplete. Please try again."
	parts := strings.SplitN(text, ReportDelimiter, 2)
	preview = strings.TrimSpace(parts[0])
	if preview == "" {
		preview = placeholder
	}
	if len(parts) == 2 {
		full = strings.TrimSpace(parts[1])
	}
	if full == "" {
		full = placeholder
	}
	return preview, full
}

func sortedTasks(hours map[string]float64) []string {
	tasks := make([]string, 0, len(hours))
	for task := range hours {
		tasks = append(tasks, task)
	}
	sort.Strings(tasks)
	return tasks
}
