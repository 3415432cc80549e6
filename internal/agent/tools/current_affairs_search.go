package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"exam-prep-assistant/internal/agent"
	"exam-prep-assistant/pkg/tavily"
)

// CurrentAffairsSearchName is the function name exposed to the model.
const CurrentAffairsSearchName = "current_affairs_search"

type currentAffairsArgs struct {
	Query string `mapstructure:"query"`
}

// CurrentAffairsSearchTool searches the web for recent news.
type CurrentAffairsSearchTool struct {
	client tavily.ITavily
}

// NewCurrentAffairsSearchTool creates a new current affairs search tool.
func NewCurrentAffairsSearchTool(client tavily.ITavily) agent.Tool {
	return &CurrentAffairsSearchTool{client: client}
}

func (t *CurrentAffairsSearchTool) Name() string {
	return CurrentAffairsSearchName
}

func (t *CurrentAffairsSearchTool) Description() string {
	return "Searches the web for recent news, events, and current affairs. Use this for any questions about recent topics."
}

func (t *CurrentAffairsSearchTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "Search query describing the news or event to look up",
			},
		},
		"required": []string{"query"},
	}
}

func (t *CurrentAffairsSearchTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	var args currentAffairsArgs
	if err := mapstructure.Decode(params, &args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if strings.TrimSpace(args.Query) == "" {
		return nil, fmt.Errorf("query parameter is required")
	}

	results, err := t.client.Search(ctx, args.Query)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	// Format results for LLM
	formatted := make([]map[string]interface{}, 0, len(results))
	for _, r := range results {
		formatted = append(formatted, map[string]interface{}{
			"title":   r.Title,
			"url":     r.URL,
			"content": r.Content,
		})
	}

	return map[string]interface{}{
		"query":   args.Query,
		"count":   len(formatted),
		"results": formatted,
	}, nil
}
