package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"talent-search/internal/apperr"
	"talent-search/internal/telemetry"
	httpclient "talent-search/pkg/http"
)

var tracer = telemetry.GetTracer("talent-search/llm")

type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderGroq      Provider = "groq"
	ProviderAnthropic Provider = "anthropic"
	ProviderNone      Provider = "none"
)

const (
	openAIEndpoint = "https://api.openai.com/v1/chat/completions"
	groqEndpoint   = "https://api.groq.com/openai/v1/chat/completions"

	requestTimeout = 120 * time.Second
	maxTokens      = 2048
	temperature    = 0.1
)

// ResumeParser turns resume text into structured fields.
type ResumeParser interface {
	ParseResume(ctx context.Context, resumeText string) (*ParsedResume, error)
}

type Options struct {
	Provider string
	APIKey   string
	Model    string
	// BaseURL overrides the provider endpoint. Used by tests and proxies.
	BaseURL string
}

type Service struct {
	provider Provider
	apiKey   string
	model    string
	endpoint string
	client   *httpclient.Client
	claude   *anthropic.Client
	logger   *zap.Logger
}

func NewService(opts Options, logger *zap.Logger) *Service {
	s := &Service{
		provider: Provider(strings.ToLower(opts.Provider)),
		apiKey:   opts.APIKey,
		model:    opts.Model,
		client:   httpclient.NewClient(requestTimeout),
		logger:   logger,
	}
	if s.provider == "" {
		s.provider = ProviderNone
	}

	switch s.provider {
	case ProviderOpenAI:
		s.endpoint = openAIEndpoint
	case ProviderGroq:
		s.endpoint = groqEndpoint
	case ProviderAnthropic:
		clientOpts := []option.RequestOption{
			option.WithAPIKey(opts.APIKey),
			option.WithHTTPClient(s.client.Standard()),
		}
		if opts.BaseURL != "" {
			clientOpts = append(clientOpts, option.WithBaseURL(opts.BaseURL))
		}
		c := anthropic.NewClient(clientOpts...)
		s.claude = &c
	}
	if opts.BaseURL != "" && s.provider != ProviderAnthropic {
		s.endpoint = opts.BaseURL
	}
	return s
}

// Enabled reports whether a provider is configured.
func (s *Service) Enabled() bool {
	return s.provider != ProviderNone
}

func (s *Service) ParseResume(ctx context.Context, resumeText string) (*ParsedResume, error) {
	ctx, span := tracer.Start(ctx, "ParseResume")
	defer span.End()
	span.SetAttributes(
		telemetry.String("llm.provider", string(s.provider)),
		telemetry.String("llm.model", s.model),
		telemetry.Int("resume.length", len(resumeText)),
	)

	if !s.Enabled() {
		return nil, apperr.Unavailable("Resume parsing is not configured", nil)
	}

	start := time.Now()
	var content string
	var err error
	switch s.provider {
	case ProviderOpenAI, ProviderGroq:
		content, err = s.callChatCompletions(ctx, resumeText)
	case ProviderAnthropic:
		content, err = s.callAnthropic(ctx, resumeText)
	default:
		err = errors.Errorf("unknown provider: %s", s.provider)
	}
	if err != nil {
		span.RecordError(err)
		s.logger.Error("Resume parsing request failed",
			zap.String("provider", string(s.provider)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, apperr.Internal("Failed to parse resume", err)
	}

	parsed, err := decodeParsedResume(content)
	if err != nil {
		span.RecordError(err)
		s.logger.Error("Resume parsing returned invalid JSON", zap.Error(err))
		return nil, apperr.Internal("Failed to parse resume", err)
	}

	s.logger.Debug("Resume parsed",
		zap.String("provider", string(s.provider)),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("skills", len(parsed.Skills)))
	return parsed, nil
}

// callChatCompletions talks to an OpenAI-compatible endpoint.
func (s *Service) callChatCompletions(ctx context.Context, resumeText string) (string, error) {
	reqBody := map[string]interface{}{
		"model": s.model,
		"messages": []map[string]string{
			{
				"role":    "system",
				"content": systemPrompt,
			},
			{
				"role":    "user",
				"content": userPrompt(resumeText),
			},
		},
		"temperature": temperature,
		"response_format": map[string]string{
			"type": "json_object",
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal request")
	}

	resp, err := s.client.PostJSON(ctx, s.endpoint, map[string]string{
		"Authorization": "Bearer " + s.apiKey,
	}, jsonData)
	if err != nil {
		return "", errors.Wrapf(err, "%s request failed", s.provider)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read response body")
	}

	if msg := gjson.GetBytes(body, "error.message"); msg.Exists() && msg.String() != "" {
		return "", errors.Errorf("%s error: %s", s.provider, msg.String())
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("%s API error: %d", s.provider, resp.StatusCode)
	}

	content := gjson.GetBytes(body, "choices.0.message.content")
	if !content.Exists() {
		return "", errors.Errorf("no response from %s", s.provider)
	}
	return content.String(), nil
}

func (s *Service) callAnthropic(ctx context.Context, resumeText string) (string, error) {
	msg, err := s.claude.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(s.model),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(temperature),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt(resumeText))),
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "anthropic request failed")
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("no content in anthropic response")
	}
	return sb.String(), nil
}
