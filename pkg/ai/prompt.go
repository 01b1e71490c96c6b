package ai

import (
	"fmt"
	"strings"

	"github.com/AmrMohamed17/smart-cv-builder/pkg/config"
)

// Placeholders sent in place of optional inputs.
const (
	NoLinkedIn = "No LinkedIn profile provided."
	NoGitHub   = "No GitHub username provided."
)

// PromptInput carries everything the generator needs for one resume.
type PromptInput struct {
	ResumeText      string
	GitHubDigest    string
	LinkedInText    string
	JobTitle        string
	ExperienceLevel string
	SkillsTopN      int
}

// Tone returns the phrasing guidance for an experience level. Unknown
// levels get the mid-level tone.
func Tone(level string) string {
	l := strings.ToLower(level)
	switch {
	case strings.Contains(l, "intern"), strings.Contains(l, "junior"), strings.Contains(l, "entry"):
		return `use phrases like "knowledgeable in", "comfortable with", "familiar with"`
	case strings.Contains(l, "senior"), strings.Contains(l, "lead"), strings.Contains(l, "principal"), strings.Contains(l, "staff"):
		return `use phrases like "expert in", "specialized in", "extensive experience with"`
	default:
		return `use phrases like "experienced in", "proficient with"`
	}
}

// BuildPrompt assembles the single instruction sent to the model.
func BuildPrompt(in PromptInput) string {
	topN := config.ClampSkillsTopN(in.SkillsTopN)
	github := strings.TrimSpace(in.GitHubDigest)
	if github == "" {
		github = NoGitHub
	}
	linkedin := strings.TrimSpace(in.LinkedInText)
	if linkedin == "" {
		linkedin = NoLinkedIn
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are an expert resume parser and editor. Extract, merge and structure the resume information below into one JSON object, tailored to the target job title and experience level.

Inputs:
1. Raw resume text.
2. GitHub repository digest (context only).
3. LinkedIn profile text (context only).
4. Target job_title: %q
5. Target experience_level: %q

Merging policy:
- The resume text is the primary source of truth. GitHub and LinkedIn only add context.
- Do not duplicate information that appears in more than one source.
- If the resume has no strong professional summary, write a concise one for the target job title.

Tone for this experience level: %s.
- Rewrite summary, experience, projects and certificates to highlight what matters for the job title.
- Follow the pattern "Accomplished X, measured by Y, by doing Z" for bullet points.
- Entry-level candidates focus on learning and contribution; senior candidates on leadership and impact.

Skills:
- Select the top %d most relevant technical skills for the job title.
- Group them into 3 to 6 thematic categories with a short subheader each (for example "Programming Languages", "Web & APIs", "Cloud & DevOps").
- Each category holds 4 to 6 skills.

Certificates:
- Move certifications found under education or experience into "certificates".
- Give each certificate a short description of its core topics; write one if none exists.

Bullet formatting:
- In "responsibilities", "description" and "achievements", put the \n newline character only at the end of each complete bullet point.

Output: a single valid JSON object with exactly these fields:
- "name", "email", "phone", "location", "linkedin", "github", "website": string
- "summary": string
- "skills": list of {"category": string, "technologies": string (comma-separated)}
- "experience": list of {"title": string, "company": string, "duration": string, "responsibilities": string (bullets ending in \n)}
- "education": list of {"degree": string, "school": string, "year": string, "achievements": string (bullets ending in \n, no certifications)}
- "projects": list of at most 5 {"name": string, "description": string (bullets ending in \n), "technologies": string (comma-separated), "duration": string}, sorted by relevance
- "certificates": list of {"name": string, "issuer": string, "year": string, "description": string}
`, in.JobTitle, in.ExperienceLevel, Tone(in.ExperienceLevel), topN)

	section := func(title, body string) {
		fmt.Fprintf(&b, "\n%s:\n\"\"\"\n%s\n\"\"\"\n", title, body)
	}
	section("Resume Text", in.ResumeText)
	section("GitHub Repositories", github)
	section("LinkedIn Profile Text", linkedin)

	b.WriteString("\nRespond ONLY with the JSON object, no prose and no code fences. If a field is not found, use null or an empty list/string.\n")
	return b.String()
}
