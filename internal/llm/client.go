package llm

import "context"

type Message struct {
	Role    string
	Content string
}

type Response struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Client is a chat-completion provider. Single attempt per call, no
// retries; the caller decides what a failure means.
type Client interface {
	Generate(ctx context.Context, messages []Message) (Response, error)
}

// Transcriber converts a recorded voice message into plain text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
