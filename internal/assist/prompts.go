package assist

import (
	"bytes"
	"fmt"
	"text/template"
)

// plannerPromptTemplate asks for a one-day timetable for a theme.
const plannerPromptTemplate = `You are a world-class time management expert.
Write the most effective one-day timetable for the theme and goal below.
Start at 09:00 and leave sensible breaks between focused work blocks.

Theme: "{{.Theme}}"

The output must be a JSON array of objects with exactly these fields:
[{"time": "09:00 - 10:00", "task": "what to do"}, ...]`

// breakdownPromptTemplate asks for a handful of concrete steps toward a goal.
const breakdownPromptTemplate = `Break the goal below into {{.Min}} to {{.Max}} short, concrete, actionable tasks.
Each task is a single line that starts with a verb. Do not number them.

Goal: "{{.Goal}}"

Return a JSON object: {"tasks": ["first task", "second task", ...]}`

// SystemPromptCoach steers the coaching advice style.
const SystemPromptCoach = `You are an elite productivity partner and an expert in the psychology of strategy.
The user already manages themselves at a high level. Do not question their willpower or lecture them.
Focus on strategic advice that lifts an already disciplined professional by one more percent.

[Output rules]
1. Keep symbols such as #, * and - to a minimum.
2. Use only paragraph breaks and clear subheadings. Stay minimal.
3. No presumptuous guesses and no negative predictions.
4. Use courteous, precise professional language.

[Structure]
Strategic analysis: how the task list is structurally arranged.
Deep insight: the psychological basis, such as context switching cost or energy efficiency between tasks.
Master execution suggestion: the single point to strike first.`

// coachPromptTemplate carries the active titles for the coaching style.
const coachPromptTemplate = `This is my current task list. Please give strategic advice from a professional point of view: {{.Tasks}}`

// tipPromptTemplate asks for a single-sentence prioritization tip.
const tipPromptTemplate = `Here are my unfinished tasks: {{.Tasks}}
In one short sentence, tell me which task to do first and why. Plain text only.`

var (
	plannerPrompt   = template.Must(template.New("planner").Parse(plannerPromptTemplate))
	breakdownPrompt = template.Must(template.New("breakdown").Parse(breakdownPromptTemplate))
	coachPrompt     = template.Must(template.New("coach").Parse(coachPromptTemplate))
	tipPrompt       = template.Must(template.New("tip").Parse(tipPromptTemplate))
)

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute %s template: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
