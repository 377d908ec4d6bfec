package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-portal-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5/pgconn"
)

// foreign_key_violation
const pgForeignKeyViolation = "23503"

type replyRepositoryImpl struct {
	db *database.DB
}

func NewReplyRepository(db *database.DB) leave.ReplyRepository {
	return &replyRepositoryImpl{db: db}
}

// Create implements leave.ReplyRepository.
func (r *replyRepositoryImpl) Create(ctx context.Context, reply leave.Reply) (leave.Reply, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_replies (leave_request_id, message, author_name)
		VALUES ($1, $2, $3)
		RETURNING id, leave_request_id, message, author_name, created_at
	`

	var created leave.Reply
	err := q.QueryRow(ctx, query, reply.LeaveRequestID, reply.Message, reply.AuthorName).Scan(
		&created.ID, &created.LeaveRequestID, &created.Message, &created.AuthorName, &created.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return leave.Reply{}, leave.ErrLeaveRequestNotFound
		}
		return leave.Reply{}, fmt.Errorf("insert reply: %w", err)
	}
	return created, nil
}

// ListByRequestIDs implements leave.ReplyRepository.
func (r *replyRepositoryImpl) ListByRequestIDs(ctx context.Context, requestIDs []string) (map[string][]leave.Reply, error) {
	result := make(map[string][]leave.Reply, len(requestIDs))
	if len(requestIDs) == 0 {
		return result, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, leave_request_id, message, author_name, created_at
		FROM leave_replies
		WHERE leave_request_id = ANY($1::uuid[])
		ORDER BY leave_request_id, seq
	`

	rows, err := q.Query(ctx, query, requestIDs)
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var reply leave.Reply
		if err := rows.Scan(&reply.ID, &reply.LeaveRequestID, &reply.Message, &reply.AuthorName, &reply.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reply: %w", err)
		}
		result[reply.LeaveRequestID] = append(result[reply.LeaveRequestID], reply)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate replies: %w", err)
	}

	return result, nil
}
