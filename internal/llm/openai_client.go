// ABOUTME: OpenAI client for batch embeddings and grounded completions
// ABOUTME: Classifies transport failures as retriable or not and retries with backoff
package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/harper/studygen/internal/models"
	"github.com/harper/studygen/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultChatModel is the default model for chat completions
	DefaultChatModel = "gpt-4o-mini"
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = openai.SmallEmbedding3
)

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey         string
	ChatModel      string
	EmbeddingModel openai.EmbeddingModel
	Temperature    float32
	MaxTokens      int
	MaxBatchSize   int
	MaxRetries     int
	RetryDelay     time.Duration
	Timeout        time.Duration
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:         apiKey,
		ChatModel:      DefaultChatModel,
		EmbeddingModel: DefaultEmbeddingModel,
		Temperature:    0.3,
		MaxTokens:      2048,
		MaxBatchSize:   64,
		MaxRetries:     3,
		RetryDelay:     time.Second * 2,
		Timeout:        30 * time.Second,
	}
}

// ServiceError wraps a failed call to the embedding or completion service.
// Retriable is true for transport-level failures (timeouts, rate limits,
// 5xx) and false for request problems (auth, malformed input).
type ServiceError struct {
	Retriable bool
	Err       error
}

func (e *ServiceError) Error() string {
	kind := "non-retriable"
	if e.Retriable {
		kind = "retriable"
	}
	return fmt.Sprintf("llm service error (%s): %v", kind, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// classify wraps err in a ServiceError with the retriable flag set from the
// failure class: rate limits, 5xx, and timeouts retry; 4xx does not.
func classify(err error) *ServiceError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &ServiceError{Retriable: retriableStatus(apiErr.HTTPStatusCode), Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &ServiceError{Retriable: retriableStatus(reqErr.HTTPStatusCode), Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &ServiceError{Retriable: true, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &ServiceError{Retriable: true, Err: err}
	}
	// Unknown transport failure: assume retriable rather than giving up early
	return &ServiceError{Retriable: true, Err: err}
}

func retriableStatus(status int) bool {
	return status == 429 || status == 408 || status >= 500
}

// OpenAIClient wraps the OpenAI API client with retry logic
type OpenAIClient struct {
	client         *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	temperature    float32
	maxTokens      int
	maxBatchSize   int
	maxRetries     int
	retryDelay     time.Duration
	timeout        time.Duration
}

// NewOpenAIClient creates a new OpenAI client with the given configuration
func NewOpenAIClient(config *ClientConfig) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	return &OpenAIClient{
		client:         openai.NewClient(config.APIKey),
		chatModel:      config.ChatModel,
		embeddingModel: config.EmbeddingModel,
		temperature:    config.Temperature,
		maxTokens:      config.MaxTokens,
		maxBatchSize:   config.MaxBatchSize,
		maxRetries:     config.MaxRetries,
		retryDelay:     config.RetryDelay,
		timeout:        config.Timeout,
	}, nil
}

// Model returns the embedding model identifier vectors will be tagged with
func (c *OpenAIClient) Model() string {
	return string(c.embeddingModel)
}

// EmbedBatch embeds a sequence of texts, order-preserving: output[i]
// corresponds to texts[i]. Large inputs are split into bounded sub-batches.
// Empty input returns empty output without a network call. Every returned
// vector is tagged with the model identifier and dimension.
func (c *OpenAIClient) EmbedBatch(ctx context.Context, texts []string) ([]models.EmbeddingVector, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([]models.EmbeddingVector, 0, len(texts))
	for start := 0; start < len(texts); start += c.maxBatchSize {
		end := start + c.maxBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := c.embedOnce(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}

// embedOnce embeds one bounded batch with retry on retriable failures
func (c *OpenAIClient) embedOnce(ctx context.Context, batch []string) ([]models.EmbeddingVector, error) {
	var lastErr *ServiceError

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.client.CreateEmbeddings(callCtx, openai.EmbeddingRequestStrings{
			Input: batch,
			Model: c.embeddingModel,
		})
		cancel()

		if err != nil {
			lastErr = classify(err)
			if !lastErr.Retriable {
				return nil, lastErr
			}
			continue
		}

		if len(resp.Data) != len(batch) {
			lastErr = &ServiceError{
				Retriable: true,
				Err:       fmt.Errorf("embedding count mismatch: sent %d texts, got %d vectors", len(batch), len(resp.Data)),
			}
			continue
		}

		vectors := make([]models.EmbeddingVector, len(batch))
		for i, item := range resp.Data {
			pos := i
			if item.Index >= 0 && item.Index < len(batch) {
				pos = item.Index
			}
			values := make([]float64, len(item.Embedding))
			for j, v := range item.Embedding {
				values[j] = float64(v)
			}
			vectors[pos] = models.EmbeddingVector{
				Values:    values,
				Dimension: len(values),
				Model:     string(c.embeddingModel),
			}
		}
		return vectors, nil
	}

	return nil, fmt.Errorf("embedding failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// Complete sends one grounded prompt to the chat model and returns the raw
// response text. The call is made once per generation request; only
// transport-level retriable failures are retried.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	systemPrompt := "You are an AI that generates educational content."

	var lastErr *ServiceError

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: c.temperature,
			MaxTokens:   c.maxTokens,
		})
		cancel()

		if err != nil {
			lastErr = classify(err)
			if !lastErr.Retriable {
				return "", lastErr
			}
			continue
		}

		if len(resp.Choices) == 0 {
			lastErr = &ServiceError{Retriable: true, Err: errors.New("no completion choices returned")}
			continue
		}

		return resp.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("completion failed after %d attempts: %w", c.maxRetries+1, lastErr)
}
