package agent

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"log"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/wumpus-world/internal/models"
	"google.golang.org/api/option"
	"gopkg.in/yaml.v3"
)

//go:embed prompts/next_action.txt
var nextActionPrompt string

var nextActionTmpl = template.Must(template.New("next_action").Parse(nextActionPrompt))

const historyLimit = 8

type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Gemini asks a Gemini model for each move. Whenever the model fails or
// proposes an action that is not available, the built-in Explorer decides
// instead, so a game never stalls on a bad reply.
type Gemini struct {
	client   *genai.Client
	model    generator
	fallback *Explorer
	history  []string
	logger   *log.Logger
}

// NewGemini connects to the Gemini API with the given key and model name.
func NewGemini(ctx context.Context, apiKey, modelName string, logger *log.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	g := newGemini(client.GenerativeModel(modelName), logger)
	g.client = client
	return g, nil
}

func newGemini(model generator, logger *log.Logger) *Gemini {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Gemini{model: model, fallback: NewExplorer(), logger: logger}
}

func (g *Gemini) Close() {
	if g.client != nil {
		g.client.Close()
	}
}

func (g *Gemini) Name() string { return "gemini" }

// Reset forgets everything learned in the previous game.
func (g *Gemini) Reset() {
	g.fallback = NewExplorer()
	g.history = nil
}

// Next asks the model for an action.
func (g *Gemini) Next(ctx context.Context, v models.View) (models.Action, error) {
	g.fallback.Observe(v)

	action, reason, err := g.ask(ctx, v)
	if err == nil && !v.Controls.Enabled(action) {
		err = fmt.Errorf("model chose disabled action %s", action)
	}
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		g.logger.Printf("Warning: gemini move failed, falling back to explorer: %v", err)
		action, err = g.fallback.Decide(v)
		if err != nil {
			return 0, err
		}
		reason = "fallback"
	}

	g.remember(fmt.Sprintf("At %s facing %s (%s): %s - %s", v.Position, v.Facing, v.Percepts, action, reason))
	return action, nil
}

func (g *Gemini) remember(line string) {
	g.history = append(g.history, line)
	if len(g.history) > historyLimit {
		g.history = g.history[len(g.history)-historyLimit:]
	}
}

func (g *Gemini) ask(ctx context.Context, v models.View) (models.Action, string, error) {
	var available []string
	for _, a := range models.Actions {
		if v.Controls.Enabled(a) {
			available = append(available, a.String())
		}
	}

	history := "(none)"
	if len(g.history) > 0 {
		history = strings.Join(g.history, "\n")
	}

	var buf bytes.Buffer
	data := struct {
		Size      int
		Position  models.Position
		Facing    models.Direction
		Percepts  models.PerceptSet
		Arrows    int
		HasGold   bool
		Score     int
		Visited   []models.Position
		Available []string
		History   string
	}{
		Size:      v.Size,
		Position:  v.Position,
		Facing:    v.Facing,
		Percepts:  v.Percepts,
		Arrows:    v.Arrows,
		HasGold:   v.HasGold,
		Score:     v.Score,
		Visited:   v.Visited,
		Available: available,
		History:   history,
	}
	if err := nextActionTmpl.Execute(&buf, data); err != nil {
		return 0, "", err
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(buf.String()))
	if err != nil {
		return 0, "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return 0, "", fmt.Errorf("no content returned from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return 0, "", fmt.Errorf("unexpected response type from Gemini")
	}
	return parseReply(string(text))
}

// parseReply reads the YAML reply, tolerating a markdown code fence.
func parseReply(text string) (models.Action, string, error) {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```yaml")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")

	var reply struct {
		Action string `yaml:"action"`
		Reason string `yaml:"reason"`
	}
	if err := yaml.Unmarshal([]byte(clean), &reply); err != nil {
		return 0, "", fmt.Errorf("failed to parse reply YAML: %v\nOutput was: %s", err, clean)
	}

	action, err := models.ParseAction(reply.Action)
	if err != nil {
		return 0, "", err
	}
	return action, reply.Reason, nil
}
