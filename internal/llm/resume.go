package llm

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const (
	DefaultFullName  = "Unknown"
	DefaultTitle     = "Professional"
	DefaultLocation  = "Location TBD"
	DefaultEducation = "Education information not provided"
	DefaultBio       = "Experienced professional with proven expertise in their field."
)

// ParsedResume is the structured form of a resume. Missing fields carry the
// defaults above, never empty strings.
type ParsedResume struct {
	FullName        string   `json:"fullName"`
	Title           string   `json:"title"`
	Location        string   `json:"location"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experienceYears"`
	Education       string   `json:"education"`
	Bio             string   `json:"bio"`
	Certifications  []string `json:"certifications"`
}

const systemPrompt = `You are a resume parser that extracts structured information from resumes.
Parse the resume text and return a JSON object with the following structure:
{
  "fullName": "string",
  "title": "string - job title or professional title",
  "location": "string - city, state format",
  "email": "string",
  "phone": "string",
  "skills": ["array of technical skills"],
  "experienceYears": "number - total years of experience",
  "education": "string - highest degree and institution",
  "bio": "string - 2-3 sentence professional summary",
  "certifications": ["array of certifications"]
}

If any field is not found, use reasonable defaults or empty values.
For experienceYears, calculate based on work history dates.
For skills, extract technical skills, tools, and technologies mentioned.
For bio, create a concise professional summary based on the resume content.
Return ONLY valid JSON (no markdown, no explanation).`

func userPrompt(resumeText string) string {
	return fmt.Sprintf("Parse this resume:\n\n%s", resumeText)
}

// decodeParsedResume reads the model output leniently: wrong types fall back
// to defaults instead of failing the whole parse.
func decodeParsedResume(content string) (*ParsedResume, error) {
	cleaned := stripMarkdownCodeFences(strings.TrimSpace(content))
	if !gjson.Valid(cleaned) {
		return nil, errors.Errorf("response is not valid JSON: %.200s", content)
	}
	root := gjson.Parse(cleaned)
	if !root.IsObject() {
		return nil, errors.New("response is not a JSON object")
	}

	p := &ParsedResume{
		FullName:        stringOr(root.Get("fullName"), DefaultFullName),
		Title:           stringOr(root.Get("title"), DefaultTitle),
		Location:        stringOr(root.Get("location"), DefaultLocation),
		Email:           stringOr(root.Get("email"), ""),
		Phone:           stringOr(root.Get("phone"), ""),
		Skills:          stringList(root.Get("skills")),
		ExperienceYears: years(root.Get("experienceYears")),
		Education:       stringOr(root.Get("education"), DefaultEducation),
		Bio:             stringOr(root.Get("bio"), DefaultBio),
		Certifications:  stringList(root.Get("certifications")),
	}
	return p, nil
}

func stringOr(r gjson.Result, fallback string) string {
	if r.Type != gjson.String {
		return fallback
	}
	if s := strings.TrimSpace(r.String()); s != "" {
		return s
	}
	return fallback
}

func stringList(r gjson.Result) []string {
	out := []string{}
	if !r.IsArray() {
		return out
	}
	for _, item := range r.Array() {
		if item.Type != gjson.String {
			continue
		}
		if s := strings.TrimSpace(item.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// years accepts a number or a numeric string and clamps to >= 0.
func years(r gjson.Result) int {
	var f float64
	switch r.Type {
	case gjson.Number:
		f = r.Float()
	case gjson.String:
		v, err := strconv.ParseFloat(strings.TrimSpace(r.String()), 64)
		if err != nil {
			return 0
		}
		f = v
	default:
		return 0
	}
	if f < 0 || math.IsNaN(f) {
		return 0
	}
	return int(math.Round(f))
}

// stripMarkdownCodeFences removes markdown code fences from JSON responses.
func stripMarkdownCodeFences(text string) string {
	cleaned := text
	for _, fence := range []string{"```json", "```"} {
		if strings.HasPrefix(cleaned, fence) {
			cleaned = strings.TrimPrefix(cleaned, fence)
			cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
			return strings.TrimSpace(cleaned)
		}
	}
	return cleaned
}
