package quizgen

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	systemPrompt = "You are a helpful assistant that generates multiple choice quiz questions."

	msgQuotaExceeded     = "OpenAI API quota exceeded. Please add billing credits to your OpenAI account at https://platform.openai.com/account/billing or contact support."
	msgInvalidCredential = "Invalid OpenAI API key. Please check your API key configuration."
	msgRateLimited       = "OpenAI API rate limit exceeded. Please try again in a moment."
)

const userPromptTemplate = `Based on the following text, generate exactly %d multiple choice questions.
The questions should test comprehension and key concepts from the text.

Text:
%s

Return your response as a JSON array with exactly %d objects, each containing:
- "question": the question text
- "options": an array of exactly %d answer options (mix of correct and incorrect)
- "correct_answer": the correct answer (must match one of the options exactly)

Make sure the incorrect options are plausible but clearly wrong.

Format:
[
  {
    "question": "...",
    "options": ["option1", "option2", "option3", "option4"],
    "correct_answer": "option1"
  },
  ...
]`

// ChatModel is the part of llms.Model the generator needs.
type ChatModel interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// LLMOptions configures an LLMGenerator.
type LLMOptions struct {
	// Provider names the backend in client-facing messages, e.g. "OpenAI".
	Provider     string
	Temperature  float64
	MaxTextChars int
}

// generatedQuestion is one record of the provider's JSON answer.
type generatedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// LLMGenerator asks a chat model for questions and normalizes its answer.
// Concurrent calls for identical text share one provider request.
type LLMGenerator struct {
	model   ChatModel
	opts    LLMOptions
	group   singleflight.Group
	shuffle Shuffler
}

// NewLLMGenerator creates a generator over any chat model.
func NewLLMGenerator(model ChatModel, opts LLMOptions) *LLMGenerator {
	if opts.Provider == "" {
		opts.Provider = "LLM"
	}
	if opts.MaxTextChars <= 0 {
		opts.MaxTextChars = 4000
	}
	return &LLMGenerator{
		model:   model,
		opts:    opts,
		shuffle: RandomShuffle,
	}
}

// NewOpenAIGenerator builds a generator backed by the OpenAI chat API.
func NewOpenAIGenerator(apiKey, model string, opts LLMOptions) (*LLMGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key cannot be empty")
	}
	llm, err := openai.New(openai.WithToken(apiKey), openai.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	opts.Provider = "OpenAI"
	return NewLLMGenerator(llm, opts), nil
}

// NewOllamaGenerator builds a generator backed by an Ollama server.
func NewOllamaGenerator(serverURL, model string, opts LLMOptions) (*LLMGenerator, error) {
	llm, err := ollama.New(ollama.WithServerURL(serverURL), ollama.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}
	opts.Provider = "Ollama"
	return NewLLMGenerator(llm, opts), nil
}

func (g *LLMGenerator) GenerateQuestions(ctx context.Context, text string) ([]domain.Question, error) {
	excerpt := truncateRunes(text, g.opts.MaxTextChars)

	sum := sha256.Sum256([]byte(excerpt))
	key := hex.EncodeToString(sum[:])

	// The shared call outlives any single caller; each caller still honours its own ctx.
	shared := context.WithoutCancel(ctx)
	ch := g.group.DoChan(key, func() (interface{}, error) {
		return g.requestQuestions(shared, excerpt)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		logger.Get().Debug("Reused in-flight generation for identical text", zap.String("text_hash", key[:12]))
	}

	records := res.Val.([]generatedQuestion)
	questions := make([]domain.Question, 0, len(records))
	for _, r := range records {
		questions = append(questions, newQuestion(r.Question, r.Options, r.CorrectAnswer, g.shuffle))
	}
	return questions, nil
}

// requestQuestions calls the model once and returns exactly QuestionsPerQuiz usable records.
func (g *LLMGenerator) requestQuestions(ctx context.Context, excerpt string) ([]generatedQuestion, error) {
	l := logger.Get()

	prompt := fmt.Sprintf(userPromptTemplate,
		domain.QuestionsPerQuiz, excerpt, domain.QuestionsPerQuiz, domain.OptionsPerQuestion)
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	resp, err := g.model.GenerateContent(ctx, messages, llms.WithTemperature(g.opts.Temperature))
	if err != nil {
		l.Error("Failed to get response from LLM", zap.String("provider", g.opts.Provider), zap.Error(err))
		return nil, classifyProviderError(err)
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return nil, domain.NewGenerationError(domain.GenerationMalformedResponse,
			fmt.Sprintf("Error generating questions: %s returned invalid response structure.", g.opts.Provider), nil)
	}

	content := stripCodeFence(resp.Choices[0].Content)
	if content == "" {
		return nil, domain.NewGenerationError(domain.GenerationMalformedResponse,
			fmt.Sprintf("Error generating questions: %s returned empty response. Please try again.", g.opts.Provider), nil)
	}

	var records []generatedQuestion
	if err := json.Unmarshal([]byte(content), &records); err != nil {
		l.Warn("LLM response is not a JSON question array",
			zap.String("provider", g.opts.Provider),
			zap.String("response", truncateRunes(content, 200)))
		return nil, domain.NewGenerationError(domain.GenerationMalformedResponse,
			fmt.Sprintf("Error generating questions: Failed to parse %s response as JSON: %v. Response: %s",
				g.opts.Provider, err, truncateRunes(content, 200)), err)
	}

	usable := normalize(records)
	if len(usable) < domain.QuestionsPerQuiz {
		l.Warn("LLM returned too few usable questions",
			zap.Int("received", len(records)),
			zap.Int("usable", len(usable)))
		return nil, domain.NewGenerationError(domain.GenerationMalformedResponse,
			fmt.Sprintf("Error generating questions: %s returned %d usable questions, expected %d",
				g.opts.Provider, len(usable), domain.QuestionsPerQuiz), nil)
	}

	l.Info("Generated questions with LLM", zap.String("provider", g.opts.Provider), zap.Int("count", len(usable)))
	return usable, nil
}

// normalize keeps the first QuestionsPerQuiz records that form a valid question once their
// options are cut to OptionsPerQuestion.
func normalize(records []generatedQuestion) []generatedQuestion {
	usable := make([]generatedQuestion, 0, domain.QuestionsPerQuiz)
	for _, r := range records {
		if len(usable) == domain.QuestionsPerQuiz {
			break
		}
		r.Question = strings.TrimSpace(r.Question)
		if r.Question == "" || len(r.Options) < domain.OptionsPerQuestion {
			continue
		}
		r.Options = append([]string(nil), r.Options[:domain.OptionsPerQuestion]...)
		q := domain.Question{Options: r.Options}
		if !q.HasOption(r.CorrectAnswer) {
			continue
		}
		usable = append(usable, r)
	}
	return usable
}

// classifyProviderError turns a provider failure into a typed GenerationError.
func classifyProviderError(err error) *domain.GenerationError {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "insufficient_quota"), strings.Contains(msg, "exceeded your current quota"):
		return domain.NewGenerationError(domain.GenerationQuotaExceeded, msgQuotaExceeded, err)
	case strings.Contains(msg, "invalid_api_key"), strings.Contains(msg, "Incorrect API key"):
		return domain.NewGenerationError(domain.GenerationInvalidCredential, msgInvalidCredential, err)
	case strings.Contains(msg, "rate_limit"):
		return domain.NewGenerationError(domain.GenerationRateLimited, msgRateLimited, err)
	default:
		return domain.NewGenerationError(domain.GenerationFailed, "Error generating questions: "+msg, err)
	}
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

var _ domain.QuestionGenerator = (*LLMGenerator)(nil)
