package gemini

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// newGeminiImpl creates a new Gemini implementation
func newGeminiImpl(cfg Config) *geminiImpl {
	return &geminiImpl{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		apiURL:     strings.TrimRight(cfg.APIURL, "/"),
		httpClient: cfg.HTTPClient,
	}
}

// GenerateContent sends a generation request to Gemini API
func (g *geminiImpl) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.apiURL, g.model, g.apiKey)

	resp, err := g.post(ctx, url, g.transformRequest(req))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("gemini: failed to decode response: %w", err)
	}

	return g.transformResponse(&result), nil
}

// StreamContent calls streamGenerateContent with alt=sse and merges the chunks.
func (g *geminiImpl) StreamContent(ctx context.Context, req *Request, onChunk func(string)) (*Response, error) {
	url := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse&key=%s", g.apiURL, g.model, g.apiKey)

	resp, err := g.post(ctx, url, g.transformRequest(req))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	acc := &accumulator{}
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxSSELineBytes)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, sseDataPrefix) {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, sseDataPrefix))
		if payload == "" {
			continue
		}

		var chunk geminiResponse
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			return nil, fmt.Errorf("gemini: failed to decode stream chunk: %w", err)
		}

		for _, text := range acc.add(&chunk) {
			if onChunk != nil {
				onChunk(text)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("gemini: failed to read stream: %w", err)
	}

	return acc.response(), nil
}

// Model returns the model being used
func (g *geminiImpl) Model() string {
	return g.model
}

func (g *geminiImpl) post(ctx context.Context, url string, req geminiRequest) (*http.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to call API: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gemini: API error %d: %s", resp.StatusCode, string(raw))
	}

	return resp, nil
}

// transformRequest converts request to Gemini API format
func (g *geminiImpl) transformRequest(req *Request) geminiRequest {
	geminiReq := geminiRequest{
		Contents: make([]geminiContent, len(req.Messages)),
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		},
	}

	if req.SystemInstruction != nil {
		geminiReq.SystemInstruction = &geminiContent{
			Parts: transformParts(req.SystemInstruction.Parts),
		}
	}

	for i, msg := range req.Messages {
		geminiReq.Contents[i] = geminiContent{
			Role:  msg.Role,
			Parts: transformParts(msg.Parts),
		}
	}

	if len(req.Tools) > 0 {
		functionDecls := make([]geminiFunctionDeclaration, len(req.Tools))
		for i, tool := range req.Tools {
			functionDecls[i] = geminiFunctionDeclaration{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			}
		}
		geminiReq.Tools = []geminiTool{{FunctionDeclarations: functionDecls}}
	}

	return geminiReq
}

func transformParts(parts []Part) []geminiPart {
	geminiParts := make([]geminiPart, len(parts))
	for i, part := range parts {
		geminiParts[i] = geminiPart{Text: part.Text}
		if part.FunctionCall != nil {
			geminiParts[i].FunctionCall = &geminiFunctionCall{
				Name: part.FunctionCall.Name,
				Args: part.FunctionCall.Args,
			}
		}
		if part.FunctionResponse != nil {
			geminiParts[i].FunctionResponse = &geminiFunctionResponse{
				Name:     part.FunctionResponse.Name,
				Response: part.FunctionResponse.Response,
			}
		}
	}
	return geminiParts
}

// transformResponse converts Gemini API response to standard format
func (g *geminiImpl) transformResponse(resp *geminiResponse) *Response {
	out := &Response{
		Content: Content{Role: RoleModel},
		Usage:   transformUsage(resp.UsageMetadata),
	}
	if len(resp.Candidates) == 0 {
		return out
	}

	content := resp.Candidates[0].Content
	out.Content.Parts = fromGeminiParts(content.Parts)
	if content.Role != "" {
		out.Content.Role = content.Role
	}
	return out
}

func fromGeminiParts(in []geminiPart) []Part {
	parts := make([]Part, len(in))
	for i, part := range in {
		parts[i] = Part{Text: part.Text}
		if part.FunctionCall != nil {
			parts[i].FunctionCall = &FunctionCall{
				Name: part.FunctionCall.Name,
				Args: part.FunctionCall.Args,
			}
		}
		if part.FunctionResponse != nil {
			parts[i].FunctionResponse = &FunctionResponse{
				Name:     part.FunctionResponse.Name,
				Response: part.FunctionResponse.Response,
			}
		}
	}
	return parts
}

func transformUsage(u *geminiUsageMetadata) *Usage {
	if u == nil {
		return &Usage{}
	}
	return &Usage{
		InputTokens:  u.PromptTokenCount,
		OutputTokens: u.CandidatesTokenCount,
		TotalTokens:  u.TotalTokenCount,
	}
}

// accumulator merges streamed chunks into one message. Consecutive text is
// joined into a single part; function calls are kept as separate parts.
type accumulator struct {
	text  strings.Builder
	calls []Part
	usage *geminiUsageMetadata
}

func (a *accumulator) add(chunk *geminiResponse) []string {
	if chunk.UsageMetadata != nil {
		a.usage = chunk.UsageMetadata
	}
	if len(chunk.Candidates) == 0 {
		return nil
	}

	var texts []string
	for _, p := range fromGeminiParts(chunk.Candidates[0].Content.Parts) {
		if p.FunctionCall != nil {
			a.calls = append(a.calls, p)
			continue
		}
		if p.Text != "" {
			a.text.WriteString(p.Text)
			texts = append(texts, p.Text)
		}
	}
	return texts
}

func (a *accumulator) response() *Response {
	parts := make([]Part, 0, len(a.calls)+1)
	if a.text.Len() > 0 {
		parts = append(parts, Part{Text: a.text.String()})
	}
	parts = append(parts, a.calls...)
	return &Response{
		Content: Content{Role: RoleModel, Parts: parts},
		Usage:   transformUsage(a.usage),
	}
}
