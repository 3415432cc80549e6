package openai

import (
	"context"
	"encoding/json"
	"fmt"

	sdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

func newOpenAIImpl(cfg Config) *openaiImpl {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	cli := sdk.NewClient(opts...)
	return &openaiImpl{
		client:  &cli,
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}
}

// GenerateContent runs one chat completion.
func (o *openaiImpl) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	reqCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	completion, err := o.client.Chat.Completions.New(reqCtx, o.buildParams(req))
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("openai: no choices returned")
	}

	msg := completion.Choices[0].Message
	out := &Response{
		Message: Message{Role: RoleAssistant, Content: msg.Content},
		Usage: Usage{
			InputTokens:  int(completion.Usage.PromptTokens),
			OutputTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:  int(completion.Usage.TotalTokens),
		},
	}
	for _, tc := range msg.ToolCalls {
		out.Message.ToolCalls = append(out.Message.ToolCalls, ToolCall{
			ID:   tc.ID,
			Name: tc.Function.Name,
			Args: decodeArgs(tc.Function.Arguments),
		})
	}
	return out, nil
}

// StreamContent streams a chat completion, reporting each content delta.
func (o *openaiImpl) StreamContent(ctx context.Context, req *Request, onChunk func(string)) (*Response, error) {
	reqCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	params := o.buildParams(req)
	params.StreamOptions = sdk.ChatCompletionStreamOptionsParam{IncludeUsage: sdk.Bool(true)}

	stream := o.client.Chat.Completions.NewStreaming(reqCtx, params)
	defer stream.Close()

	acc := sdk.ChatCompletionAccumulator{}
	for stream.Next() {
		chunk := stream.Current()
		acc.AddChunk(chunk)

		if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" && onChunk != nil {
			onChunk(chunk.Choices[0].Delta.Content)
		}
	}
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("openai: stream failed: %w", err)
	}

	out := &Response{
		Message: Message{Role: RoleAssistant},
		Usage: Usage{
			InputTokens:  int(acc.Usage.PromptTokens),
			OutputTokens: int(acc.Usage.CompletionTokens),
			TotalTokens:  int(acc.Usage.TotalTokens),
		},
	}
	if len(acc.Choices) > 0 {
		msg := acc.Choices[0].Message
		out.Message.Content = msg.Content
		for _, tc := range msg.ToolCalls {
			out.Message.ToolCalls = append(out.Message.ToolCalls, ToolCall{
				ID:   tc.ID,
				Name: tc.Function.Name,
				Args: decodeArgs(tc.Function.Arguments),
			})
		}
	}
	return out, nil
}

// Model returns the model being used
func (o *openaiImpl) Model() string {
	return o.model
}

func (o *openaiImpl) buildParams(req *Request) sdk.ChatCompletionNewParams {
	params := sdk.ChatCompletionNewParams{
		Model:       sdk.ChatModel(o.model),
		Messages:    buildMessages(req),
		Temperature: sdk.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = sdk.Int(int64(req.MaxTokens))
	}
	for _, t := range req.Tools {
		params.Tools = append(params.Tools, sdk.ChatCompletionFunctionTool(sdk.FunctionDefinitionParam{
			Name:        t.Name,
			Description: sdk.String(t.Description),
			Parameters:  sdk.FunctionParameters(t.Parameters),
		}))
	}
	return params
}

func buildMessages(req *Request) []sdk.ChatCompletionMessageParamUnion {
	msgs := make([]sdk.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, sdk.SystemMessage(req.System))
	}

	for _, m := range req.Messages {
		switch m.Role {
		case RoleTool:
			msgs = append(msgs, sdk.ToolMessage(m.Content, m.ToolCallID))
		case RoleAssistant:
			if len(m.ToolCalls) == 0 {
				msgs = append(msgs, sdk.AssistantMessage(m.Content))
				continue
			}
			assistant := sdk.ChatCompletionAssistantMessageParam{}
			if m.Content != "" {
				assistant.Content = sdk.ChatCompletionAssistantMessageParamContentUnion{OfString: sdk.String(m.Content)}
			}
			for _, tc := range m.ToolCalls {
				assistant.ToolCalls = append(assistant.ToolCalls, sdk.ChatCompletionMessageToolCallUnionParam{
					OfFunction: &sdk.ChatCompletionMessageFunctionToolCallParam{
						ID: tc.ID,
						Function: sdk.ChatCompletionMessageFunctionToolCallFunctionParam{
							Name:      tc.Name,
							Arguments: encodeArgs(tc.Args),
						},
					},
				})
			}
			msgs = append(msgs, sdk.ChatCompletionMessageParamUnion{OfAssistant: &assistant})
		default:
			msgs = append(msgs, sdk.UserMessage(m.Content))
		}
	}
	return msgs
}

func decodeArgs(raw string) map[string]interface{} {
	args := map[string]interface{}{}
	if raw == "" {
		return args
	}
	_ = json.Unmarshal([]byte(raw), &args)
	return args
}

func encodeArgs(args map[string]interface{}) string {
	if args == nil {
		return "{}"
	}
	b, err := json.Marshal(args)
	if err != nil {
		return "{}"
	}
	return string(b)
}
