// Package tools dispatches the function calls the responder may
// request during a turn.
package tools

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"voxassist/call-api/internal/domain/call"
	"voxassist/call-api/internal/domain/faq"
	"voxassist/call-api/internal/utils/idgen"
)

type handler func(ctx context.Context, args map[string]any) (map[string]any, error)

type registeredTool struct {
	definition call.ToolDefinition
	run        handler
}

// Registry holds the named tools offered to the responder.
type Registry struct {
	order []string
	tools map[string]registeredTool
	log   zerolog.Logger
}

var _ call.ToolExecutor = (*Registry)(nil)

// NewRegistry builds the default tool set.
func NewRegistry(faqs faq.Service, log zerolog.Logger) *Registry {
	r := &Registry{
		tools: make(map[string]registeredTool),
		log:   log.With().Str("component", "tool-registry").Logger(),
	}

	r.register(call.ToolDefinition{
		Name:        "get_business_hours",
		Description: "Get the business operating hours",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
			"required":   []string{},
		},
	}, func(_ context.Context, _ map[string]any) (map[string]any, error) {
		return map[string]any{
			"hours":    "Monday to Friday: 9 AM - 5 PM EST",
			"timezone": "EST",
		}, nil
	})

	r.register(call.ToolDefinition{
		Name:        "get_job_openings",
		Description: "Fetch current job openings and positions available",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"department": map[string]any{
					"type":        "string",
					"description": "Filter by department (optional)",
				},
			},
			"required": []string{},
		},
	}, func(_ context.Context, args map[string]any) (map[string]any, error) {
		department, _ := args["department"].(string)
		openings := []map[string]any{
			{"title": "Software Engineer", "department": "Engineering", "location": "Remote"},
			{"title": "Support Specialist", "department": "Customer Success", "location": "New York"},
		}
		if department != "" {
			filtered := openings[:0]
			for _, o := range openings {
				if o["department"] == department {
					filtered = append(filtered, o)
				}
			}
			openings = filtered
		}
		return map[string]any{"openings": openings, "department": department}, nil
	})

	r.register(call.ToolDefinition{
		Name:        "book_appointment",
		Description: "Schedule an appointment for the caller",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"date": map[string]any{
					"type":        "string",
					"description": "Preferred date (YYYY-MM-DD)",
				},
				"time": map[string]any{
					"type":        "string",
					"description": "Preferred time (HH:MM)",
				},
				"service": map[string]any{
					"type":        "string",
					"description": "Type of service needed",
				},
			},
			"required": []string{"date", "time"},
		},
	}, func(_ context.Context, args map[string]any) (map[string]any, error) {
		date, _ := args["date"].(string)
		at, _ := args["time"].(string)
		if date == "" || at == "" {
			return nil, fmt.Errorf("book_appointment requires date and time")
		}
		id, err := idgen.GenerateSecureID("apt", 8)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"status":         "success",
			"appointment_id": id,
			"date":           date,
			"time":           at,
			"message":        "Appointment scheduled successfully",
		}, nil
	})

	r.register(call.ToolDefinition{
		Name:        "search_faqs",
		Description: "Search frequently asked questions",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Search query",
				},
			},
			"required": []string{"query"},
		},
	}, func(ctx context.Context, args map[string]any) (map[string]any, error) {
		query, _ := args["query"].(string)
		if query == "" {
			return nil, fmt.Errorf("search_faqs requires a query")
		}
		results, err := faqs.Search(ctx, query, 3)
		if err != nil {
			return nil, err
		}
		entries := make([]map[string]any, 0, len(results))
		for _, f := range results {
			entries = append(entries, map[string]any{
				"question": f.Question,
				"answer":   f.Answer,
			})
		}
		return map[string]any{"results": entries}, nil
	})

	r.register(call.ToolDefinition{
		Name:        "transfer_to_human",
		Description: "Transfer the call to a human agent",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"reason": map[string]any{
					"type":        "string",
					"description": "Reason for transfer",
				},
				"priority": map[string]any{
					"type":        "string",
					"enum":        []string{"low", "normal", "high", "urgent"},
					"description": "Transfer priority",
				},
			},
			"required": []string{},
		},
	}, func(_ context.Context, args map[string]any) (map[string]any, error) {
		reason, _ := args["reason"].(string)
		if reason == "" {
			reason = "User request"
		}
		return map[string]any{
			"status":         "transferring",
			"reason":         reason,
			"estimated_wait": 30,
		}, nil
	})

	return r
}

func (r *Registry) register(def call.ToolDefinition, run handler) {
	r.order = append(r.order, def.Name)
	r.tools[def.Name] = registeredTool{definition: def, run: run}
}

// Definitions lists tools in registration order.
func (r *Registry) Definitions() []call.ToolDefinition {
	defs := make([]call.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].definition)
	}
	return defs
}

// Execute runs a named tool. Unknown names are an error, not a silent
// no-op, so the caller can fall back.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (map[string]any, error) {
	tool, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}

	result, err := tool.run(ctx, args)
	if err != nil {
		r.log.Warn().Err(err).Str("tool", name).Msg("tool execution failed")
		return nil, err
	}
	r.log.Debug().Str("tool", name).Msg("tool executed")
	return result, nil
}
