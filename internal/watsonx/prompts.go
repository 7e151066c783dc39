package watsonx

import (
	"context"
	"fmt"

	"github.com/hyperjump/yomitori/internal/models"
)

// Prompt templates and their token budgets / temperatures are fixed design
// constants; callers tune the inputs, not the sampling parameters.

const summarizePrompt = `Please provide a concise summary of the following text in approximately %d characters:

%s

Summary:`

const answerPrompt = `Based on the following context, please answer the question:

Context:
%s

Question: %s

Answer:`

const keyPointsPrompt = `Please extract the key points from the following text:

%s

Key Points:
1.`

// Summarize requests a summary of roughly maxLength characters. The
// maxLength/4 token budget is a crude characters-per-token estimate
// carried over from the reference configuration; keep it as-is.
func (c *Client) Summarize(ctx context.Context, text string, maxLength int) (string, error) {
	req := &models.GenerationRequest{
		Prompt:      fmt.Sprintf(summarizePrompt, maxLength, text),
		MaxTokens:   maxLength / 4,
		Temperature: 0.3,
	}
	resp, err := c.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// AnswerQuestion answers a question grounded in the given context.
func (c *Client) AnswerQuestion(ctx context.Context, docContext, question string) (string, error) {
	req := &models.GenerationRequest{
		Prompt:      fmt.Sprintf(answerPrompt, docContext, question),
		MaxTokens:   1000,
		Temperature: 0.5,
	}
	resp, err := c.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// ExtractKeyPoints pulls an enumerated list of key points out of text.
// The prompt ends with "1." to cue the model into list form.
func (c *Client) ExtractKeyPoints(ctx context.Context, text string) (string, error) {
	req := &models.GenerationRequest{
		Prompt:      fmt.Sprintf(keyPointsPrompt, text),
		MaxTokens:   800,
		Temperature: 0.4,
	}
	resp, err := c.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
