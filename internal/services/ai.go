package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/yashika222/ReliefNet/internal/constants"
)

// AIService drafts relief tasks from free-text situation reports.
type AIService struct {
	client *openai.Client
}

// DraftTask is one AI-suggested relief task for admin review.
type DraftTask struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Deadline    *time.Time `json:"deadline"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// DraftTasksFromReport extracts actionable relief tasks from a situation
// report using OpenAI GPT. Drafts are suggestions only; nothing is stored
// until an admin assigns them.
func (s *AIService) DraftTasksFromReport(ctx context.Context, report string) ([]DraftTask, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	currentTime := time.Now().Format("2006-01-02 15:04:05")
	prompt := fmt.Sprintf(`You are a disaster-relief coordination assistant. Extract concrete volunteer tasks from the situation report below.

Current time: %s

Situation report:
%s

Return a JSON array of tasks in this exact shape:
[
  {
    "title": "short task title",
    "description": "what the volunteer needs to do",
    "priority": "low | medium | high | critical",
    "deadline": "ISO8601 timestamp, e.g. 2025-10-28T23:59:59Z, or null when the report gives no time constraint"
  }
]

Rules:
- Return an empty array [] when the report contains no actionable tasks
- Convert relative time expressions ("by tomorrow", "within 48 hours") into concrete timestamps
- deadline must be an ISO8601 string or null
- Return only the JSON, no prose`, currentTime, report)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var tasks []DraftTask
	if err := json.Unmarshal([]byte(content), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	if len(tasks) > constants.MaxAIGeneratedTasks {
		tasks = tasks[:constants.MaxAIGeneratedTasks]
	}

	return tasks, nil
}
