package llmprovider

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"exam-prep-assistant/pkg/gemini"
	"exam-prep-assistant/pkg/openai"
)

// GenerationDefaults apply to requests that leave MaxTokens unset.
type GenerationDefaults struct {
	Temperature float64
	MaxTokens   int
}

func (d GenerationDefaults) apply(req *Request) *Request {
	if req.MaxTokens > 0 || d.MaxTokens == 0 {
		return req
	}
	out := *req
	out.Temperature = d.Temperature
	out.MaxTokens = d.MaxTokens
	return &out
}

// GeminiAdapter adapts pkg/gemini to llmprovider.Provider interface
type GeminiAdapter struct {
	client   gemini.IGemini
	defaults GenerationDefaults
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.IGemini, defaults GenerationDefaults) *GeminiAdapter {
	return &GeminiAdapter{client: client, defaults: defaults}
}

// GenerateContent implements Provider interface
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	resp, err := a.client.GenerateContent(ctx, toGeminiRequest(a.defaults.apply(req)))
	if err != nil {
		return nil, err
	}
	return a.fromGeminiResponse(resp), nil
}

// StreamContent implements Provider interface
func (a *GeminiAdapter) StreamContent(ctx context.Context, req *Request, onChunk func(string)) (*Response, error) {
	resp, err := a.client.StreamContent(ctx, toGeminiRequest(a.defaults.apply(req)), onChunk)
	if err != nil {
		return nil, err
	}
	return a.fromGeminiResponse(resp), nil
}

// Name returns provider name
func (a *GeminiAdapter) Name() string {
	return ProviderGemini
}

// Model returns model name
func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}

func (a *GeminiAdapter) fromGeminiResponse(resp *gemini.Response) *Response {
	out := &Response{
		Content:      convertFromGeminiContent(resp.Content),
		ProviderName: ProviderGemini,
		ModelName:    a.client.Model(),
		Usage:        &Usage{},
	}
	if resp.Usage != nil {
		out.Usage = &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		}
	}
	return out
}

func toGeminiRequest(req *Request) *gemini.Request {
	return &gemini.Request{
		SystemInstruction: convertToGeminiContent(req.SystemInstruction),
		Messages:          convertToGeminiContents(req.Messages),
		Tools:             convertToGeminiTools(req.Tools),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
	}
}

// Conversion helpers for Gemini
func convertToGeminiContent(msg *Message) *gemini.Content {
	if msg == nil {
		return nil
	}
	parts := make([]gemini.Part, len(msg.Parts))
	for i, p := range msg.Parts {
		parts[i] = gemini.Part{Text: p.Text}
		if p.FunctionCall != nil {
			parts[i].FunctionCall = &gemini.FunctionCall{
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			}
		}
		if p.FunctionResponse != nil {
			parts[i].FunctionResponse = &gemini.FunctionResponse{
				Name:     p.FunctionResponse.Name,
				Response: p.FunctionResponse.Response,
			}
		}
	}
	return &gemini.Content{Role: msg.Role, Parts: parts}
}

func convertToGeminiContents(msgs []Message) []gemini.Content {
	contents := make([]gemini.Content, len(msgs))
	for i := range msgs {
		contents[i] = *convertToGeminiContent(&msgs[i])
	}
	return contents
}

func convertToGeminiTools(tools []Tool) []gemini.Tool {
	geminiTools := make([]gemini.Tool, len(tools))
	for i, t := range tools {
		geminiTools[i] = gemini.Tool{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		}
	}
	return geminiTools
}

// Gemini does not return call IDs; one is minted so later tool results can refer to it.
func convertFromGeminiContent(content gemini.Content) Message {
	parts := make([]Part, len(content.Parts))
	for i, p := range content.Parts {
		parts[i] = Part{Text: p.Text}
		if p.FunctionCall != nil {
			parts[i].FunctionCall = &FunctionCall{
				ID:   "call_" + uuid.NewString(),
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			}
		}
		if p.FunctionResponse != nil {
			parts[i].FunctionResponse = &FunctionResponse{
				Name:     p.FunctionResponse.Name,
				Response: p.FunctionResponse.Response,
			}
		}
	}
	return Message{Role: RoleModel, Parts: parts}
}

// OpenAIAdapter adapts pkg/openai to llmprovider.Provider interface.
// Any OpenAI-compatible endpoint (DeepSeek, Qwen) goes through it.
type OpenAIAdapter struct {
	name     string
	client   openai.IOpenAI
	defaults GenerationDefaults
}

// NewOpenAIAdapter creates a new OpenAI adapter reported under name
func NewOpenAIAdapter(name string, client openai.IOpenAI, defaults GenerationDefaults) *OpenAIAdapter {
	if name == "" {
		name = ProviderOpenAI
	}
	return &OpenAIAdapter{name: name, client: client, defaults: defaults}
}

// GenerateContent implements Provider interface
func (a *OpenAIAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	resp, err := a.client.GenerateContent(ctx, toOpenAIRequest(a.defaults.apply(req)))
	if err != nil {
		return nil, err
	}
	return a.fromOpenAIResponse(resp), nil
}

// StreamContent implements Provider interface
func (a *OpenAIAdapter) StreamContent(ctx context.Context, req *Request, onChunk func(string)) (*Response, error) {
	resp, err := a.client.StreamContent(ctx, toOpenAIRequest(a.defaults.apply(req)), onChunk)
	if err != nil {
		return nil, err
	}
	return a.fromOpenAIResponse(resp), nil
}

// Name returns the provider name
func (a *OpenAIAdapter) Name() string {
	return a.name
}

// Model returns the model name
func (a *OpenAIAdapter) Model() string {
	return a.client.Model()
}

func (a *OpenAIAdapter) fromOpenAIResponse(resp *openai.Response) *Response {
	parts := []Part{}
	if resp.Message.Content != "" {
		parts = append(parts, Part{Text: resp.Message.Content})
	}
	for _, tc := range resp.Message.ToolCalls {
		parts = append(parts, Part{FunctionCall: &FunctionCall{ID: tc.ID, Name: tc.Name, Args: tc.Args}})
	}
	return &Response{
		Content:      Message{Role: RoleModel, Parts: parts},
		ProviderName: a.name,
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}
}

func toOpenAIRequest(req *Request) *openai.Request {
	out := &openai.Request{
		Messages:    convertToOpenAIMessages(req.Messages),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.SystemInstruction != nil && len(req.SystemInstruction.Parts) > 0 {
		out.System = req.SystemInstruction.Parts[0].Text
	}
	for _, t := range req.Tools {
		out.Tools = append(out.Tools, openai.Tool{Name: t.Name, Description: t.Description, Parameters: t.Parameters})
	}
	return out
}

// Conversion helpers for OpenAI: one function response part becomes one tool message.
func convertToOpenAIMessages(msgs []Message) []openai.Message {
	messages := make([]openai.Message, 0, len(msgs))
	for _, msg := range msgs {
		switch msg.Role {
		case RoleFunction:
			for _, p := range msg.Parts {
				if p.FunctionResponse == nil {
					continue
				}
				content, _ := json.Marshal(p.FunctionResponse.Response)
				messages = append(messages, openai.Message{
					Role:       openai.RoleTool,
					Content:    string(content),
					ToolCallID: p.FunctionResponse.ID,
				})
			}
		case RoleModel, openai.RoleAssistant:
			m := openai.Message{Role: openai.RoleAssistant}
			for _, p := range msg.Parts {
				m.Content += p.Text
				if p.FunctionCall != nil {
					m.ToolCalls = append(m.ToolCalls, openai.ToolCall{
						ID:   p.FunctionCall.ID,
						Name: p.FunctionCall.Name,
						Args: p.FunctionCall.Args,
					})
				}
			}
			messages = append(messages, m)
		default:
			m := openai.Message{Role: openai.RoleUser}
			for _, p := range msg.Parts {
				m.Content += p.Text
			}
			messages = append(messages, m)
		}
	}
	return messages
}
