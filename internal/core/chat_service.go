package core

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"invoice-dashboard/internal/logger"
)

// ChatService answers free-text questions about the invoice dataset by
// classifying them onto the fixed set of canned aggregations.
type ChatService interface {
	// AnswerChat runs the aggregation selected for the question and
	// returns the executed query text together with its rows. Execution
	// failures are reported through the result's Error field; the
	// method never propagates a store error past its boundary.
	AnswerChat(ctx context.Context, question string) *ChatResult
}

type chatService struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewChatService constructs a ChatService backed by the given pool.
func NewChatService(pool *pgxpool.Pool) ChatService {
	return &chatService{pool: pool, log: logger.WithComponent("chat")}
}

const chatExecutionFailed = "query execution failed"

func (s *chatService) AnswerChat(ctx context.Context, question string) *ChatResult {
	intent := ClassifyIntent(question)
	tmpl := BuildQuery(intent)
	result := &ChatResult{Query: tmpl.SQL, Results: []map[string]any{}}

	rows, err := s.pool.Query(ctx, tmpl.SQL)
	if err != nil {
		s.log.Warn().Err(err).Str("intent", string(intent)).Msg("chat query failed")
		result.Error = chatExecutionFailed
		return result
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			s.log.Warn().Err(err).Str("intent", string(intent)).Msg("chat row decode failed")
			result.Results = []map[string]any{}
			result.Error = chatExecutionFailed
			return result
		}
		row := make(map[string]any, len(fields))
		for i, fd := range fields {
			row[fd.Name] = values[i]
		}
		result.Results = append(result.Results, row)
	}
	if err := rows.Err(); err != nil {
		s.log.Warn().Err(err).Str("intent", string(intent)).Msg("chat row iteration failed")
		result.Results = []map[string]any{}
		result.Error = chatExecutionFailed
	}
	return result
}
