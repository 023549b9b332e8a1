// Package prompt holds the text sent to language models
package prompt

import "fmt"

const searchQuery = `Given this job description, generate a GitHub user search query string.
Use GitHub search syntax: language:LANG, followers:>N, repos:>N, location:LOCATION.
Keep it concise and focused on technical requirements.

Job Description:
%s

Return only the search query string, nothing else.`

const structuredSpec = `Extract a structured hiring spec from the job description below.
Reply with a single JSON object and nothing else, using exactly these keys:

{
  "role_title": string or null,
  "languages": [programming languages, most important first, at most 3],
  "core_domains": [GitHub topic style domains such as "backend" or "machine-learning"],
  "core_keywords": [must have frameworks, tools and technologies, lower case, at most 8],
  "nice_keywords": [nice to have technologies, lower case, at most 5],
  "recency_days": integer, default 365,
  "min_repo_stars": integer, default 20,
  "exclude_forks": boolean, default true,
  "exclude_archived": boolean, default true,
  "min_followers": integer, default 0,
  "location_hint": string or null
}

Job Description:
%s`

const rewrite = `Rewrite the following job description as a short, plain list of technical
requirements: role, programming languages, domains, frameworks and tools, seniority and location.
Drop benefits, company boilerplate and anything not technical.

Job Description:
%s`

const analysis = `You are helping a technical recruiter read a GitHub profile.
Using only the data below, describe the developer's skills.
Reply with a single JSON object and nothing else, using exactly these keys:

{
  "profile_summary": "two or three sentences on background, strengths and focus",
  "domain_expertise": [
    {"name": string, "level": "Expert|Advanced|Intermediate|Beginner", "evidence": string, "repositories": [repo names]}
  ],
  "technical_expertise": [
    {"name": language, framework or tool, "level": "Expert|Advanced|Intermediate|Beginner", "years_active": integer or null, "evidence": string or null, "repositories": [repo names]}
  ],
  "behavioral_patterns": [
    {"name": string, "description": string, "evidence": string}
  ]
}

Levels: Expert means the main technology of three or more repositories or maintainer work;
Advanced means regular use in two or more repositories; Intermediate means one or two
repositories with moderate activity; Beginner means minor or learning use.
List 2 to 4 domains, 4 to 6 technologies and 2 to 4 patterns. Name repositories as evidence.

%s`

// SearchQuery asks for a GitHub user search string
func SearchQuery(jobText string) string { return fmt.Sprintf(searchQuery, jobText) }

// StructuredSpec asks for the JSON requirement spec
func StructuredSpec(jobText string) string { return fmt.Sprintf(structuredSpec, jobText) }

// Rewrite asks for a cleaned up job description
func Rewrite(jobText string) string { return fmt.Sprintf(rewrite, jobText) }

// Analysis asks for the JSON skills breakdown of one candidate
func Analysis(input string) string { return fmt.Sprintf(analysis, input) }
