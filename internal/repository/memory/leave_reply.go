package memory

import (
	"context"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/leave"
)

type replyRepositoryImpl struct {
	store *Store
}

func NewReplyRepository(store *Store) leave.ReplyRepository {
	return &replyRepositoryImpl{store: store}
}

func (r *replyRepositoryImpl) Create(ctx context.Context, reply leave.Reply) (leave.Reply, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.requests[reply.LeaveRequestID]; !ok {
		return leave.Reply{}, leave.ErrLeaveRequestNotFound
	}

	reply.ID = newID()
	reply.CreatedAt = s.now()
	requestID := reply.LeaveRequestID
	previous := s.replies[requestID]
	s.replies[requestID] = append(previous[:len(previous):len(previous)], reply)

	s.recordUndo(ctx, func() { s.replies[requestID] = previous })

	return reply, nil
}

func (r *replyRepositoryImpl) ListByRequestIDs(ctx context.Context, requestIDs []string) (map[string][]leave.Reply, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string][]leave.Reply, len(requestIDs))
	for _, id := range requestIDs {
		thread := s.replies[id]
		if len(thread) == 0 {
			continue
		}
		result[id] = append([]leave.Reply(nil), thread...)
	}
	return result, nil
}
