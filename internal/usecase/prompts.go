package usecase

import (
	"fmt"

	"github.com/fadilmartias/jobtracker-ai/internal/dto"
)

const suggestionSections = `Provide detailed suggestions for:
1. Keywords to include
2. Skills to highlight
3. Experience formatting
4. ATS optimization
5. Industry-specific recommendations
6. Action verbs to use
7. Quantifiable achievements examples
8. Section organization

Format as a comprehensive guide with clear sections and bullet points.`

func resumeWithJobPrompt(resume string, form dto.GenerationForm) string {
	return fmt.Sprintf(`You are a resume optimization assistant. Analyze the following resume against the job description and provide comprehensive suggestions for improvement.

Resume Content:
%s

Job Title: %s
Company: %s
Job Description:
%s

%s`, resume, form.JobTitle, form.CompanyName, form.JobDescription, suggestionSections)
}

func jobOnlyPrompt(form dto.GenerationForm) string {
	return fmt.Sprintf(`You are a resume optimization assistant. Analyze the following job description and provide comprehensive suggestions for creating an optimized resume.

Job Title: %s
Company: %s
Job Description:
%s

%s`, form.JobTitle, form.CompanyName, form.JobDescription, suggestionSections)
}

func coverLetterPrompt(resume string, form dto.GenerationForm) string {
	manager := form.HiringManager
	if manager == "" {
		manager = "Hiring Manager"
	}
	prompt := fmt.Sprintf(`You are a professional career writer. Write a personalized cover letter in a %s tone.

Job Title: %s
Company: %s
Addressed to: %s
Job Description:
%s
`, form.Tone, form.JobTitle, form.CompanyName, manager, form.JobDescription)
	if form.PersonalExperience != "" {
		prompt += fmt.Sprintf("\nRelevant experience to highlight:\n%s\n", form.PersonalExperience)
	}
	if form.WhyCompany != "" {
		prompt += fmt.Sprintf("\nWhy the candidate wants to join %s:\n%s\n", form.CompanyName, form.WhyCompany)
	}
	if resume != "" {
		prompt += fmt.Sprintf("\nCandidate resume:\n%s\n", resume)
	}
	prompt += `
Keep it under 400 words with an opening, two or three body paragraphs and a closing. Return only the letter text.`
	return prompt
}

func openRouterEnvelopePrompt(requestID string, sel *SelectedJob) string {
	jobID := ""
	if sel != nil {
		jobID = sel.ID
	}
	return fmt.Sprintf(`You are a resume optimization assistant.
Respond ONLY in this exact JSON format and **ensure it is a single flat object**:

{
  "selected_job_id": "%s",
  "request_id": "%s",
  "type": "resume",
  "status": "success",
  "content": "<<< FULL resume improvement suggestions as a formatted string >>>",
  "processing_time": 30,
  "metadata": {
    "keywords_found": [...],
    "ats_score": 90,
    "suggestions_count": 10
  }
}

Important:
- The value of 'content' must be a full string (not an object).
- Use bullet points and headings inside the string.
- Never return content as a nested object.`, jobID, requestID)
}

func openRouterResumeUserPrompt(resume string, form dto.GenerationForm) string {
	return fmt.Sprintf(`I want resume suggestions for this job:

Job Title: %s
Company: %s
Job Description:
%s

Current Resume Content:
%s

Instructions:
- Return the response in the JSON format provided above.
- Place all optimization suggestions inside the 'content' field as a nicely formatted **string**.
- Use bullet points, subheadings, and clearly separate each section: keywords, summary, skills, experience, ATS tips, company insights, checklist.`,
		form.JobTitle, form.CompanyName, form.JobDescription, resume)
}

const (
	openRouterJobOnlySystem     = `You are a resume optimization assistant. Analyze the job description and provide comprehensive resume optimization suggestions. Respond with detailed, actionable advice formatted as a comprehensive guide.`
	openRouterCoverLetterSystem = `You are a professional career writer who writes concise, specific cover letters.`
)
