package service

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/octobees/outreach-campaigns/api/internal/config"
)

// Profile is the LinkedIn data a personalised message is written for.
type Profile struct {
	Name     string
	JobTitle string
	Company  string
	Location string
	Summary  string
}

// FirstName returns the first word of the name.
func (p Profile) FirstName() string {
	fields := strings.Fields(p.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

const systemPrompt = "You write short, personalised LinkedIn outreach messages. " +
	"Reply with the message text only, without a subject line, quotes or sign-off placeholders."

var outreachTemplate = template.Must(template.New("outreach").Option("missingkey=error").Parse(
	`Write a LinkedIn connection message to {{.Profile.Name}}.

About the recipient:
- Role: {{.Profile.JobTitle}} at {{.Profile.Company}}
- Based in: {{.Profile.Location}}
- Profile summary: {{.Profile.Summary}}

About us: {{.ProductName}} {{.ProductPitch}}.

Guidelines:
- Open by greeting {{.Profile.FirstName}} by first name.
- Refer to something specific from their role or summary.
- Explain in one sentence how {{.ProductName}} could help them.
- End with a low-pressure invitation to connect.
- Keep the tone {{.Tone}}.
- Use between {{.MinWords}} and {{.MaxWords}} words.
`))

type promptData struct {
	Profile      Profile
	ProductName  string
	ProductPitch string
	Tone         string
	MinWords     int
	MaxWords     int
}

// renderPrompt produces the user prompt for a profile. The output only depends on
// its inputs.
func renderPrompt(cfg config.PromptConfig, profile Profile) (string, error) {
	var buf bytes.Buffer
	err := outreachTemplate.Execute(&buf, promptData{
		Profile:      profile,
		ProductName:  cfg.ProductName,
		ProductPitch: strings.TrimSuffix(strings.TrimSpace(cfg.ProductPitch), "."),
		Tone:         cfg.Tone,
		MinWords:     cfg.MinWords,
		MaxWords:     cfg.MaxWords,
	})
	if err != nil {
		return "", fmt.Errorf("render outreach prompt: %w", err)
	}
	return buf.String(), nil
}
