package summarize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

const summaryPrompt = `You are a world-class video analyst. Your goal is to create a powerful, concise summary of the provided YouTube video.
The summary must be in %[1]s.

Generate a response with the following strict structure, using plain text only:
1. Start with a single line: "Title: [An engaging and descriptive title for the summary]".
2. Follow with a single line: "InsightsHeader: [The phrase 'Key Insights' translated into %[1]s]".
3. Follow with a bulleted list of the most important points. Each bullet point MUST begin with '* '.

Do not use any markdown formatting (bold, italics, etc.).
Focus on clarity, accuracy, and capturing the video's core message.
`

// OpenAI implements Streamer on top of the chat completion streaming API.
type OpenAI struct {
	client *openai.Client
	model  string
}

func NewOpenAI(apiKey, model string) *OpenAI {
	if model == "" {
		model = openai.GPT4o
	}
	return &OpenAI{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (o *OpenAI) Start(ctx context.Context, videoURL, language string) (Stream, error) {
	stream, err := o.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:  o.model,
		Stream: true,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(summaryPrompt, language),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: videoURL,
			},
		},
	})
	if err != nil {
		return nil, classifyErr(err)
	}

	return &openAIStream{stream: stream}, nil
}

type openAIStream struct {
	stream *openai.ChatCompletionStream
}

func (s *openAIStream) Recv() (string, error) {
	for {
		response, err := s.stream.Recv()
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		if err != nil {
			return "", classifyErr(err)
		}
		if len(response.Choices) == 0 {
			continue
		}
		chunk := response.Choices[0].Delta.Content
		if chunk == "" {
			continue
		}
		return chunk, nil
	}
}

func (s *openAIStream) Close() error {
	return s.stream.Close()
}

// classifyErr maps authentication rejections onto the distinguished
// credentials error so they can be reported separately from ordinary
// generation failures.
func classifyErr(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusUnauthorized || apiErr.HTTPStatusCode == http.StatusForbidden {
			return fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode == http.StatusUnauthorized || reqErr.HTTPStatusCode == http.StatusForbidden {
			return fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
		}
	}

	return err
}
