package leave

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/leave"
)

// ReplyService appends to the reply thread of a request. Replies are never
// edited or removed.
type ReplyService struct {
	leave.ReplyRepository
	requests leave.LeaveRequestRepository
}

func NewReplyService(replyRepository leave.ReplyRepository, leaveRequestRepository leave.LeaveRequestRepository) *ReplyService {
	return &ReplyService{
		ReplyRepository: replyRepository,
		requests:        leaveRequestRepository,
	}
}

// AddReply works on requests of any status.
func (s *ReplyService) AddReply(ctx context.Context, requestID string, req leave.AddReplyRequest, authorName string) (leave.Reply, error) {
	if err := req.Validate(); err != nil {
		return leave.Reply{}, err
	}

	if _, err := s.requests.GetByID(ctx, requestID); err != nil {
		return leave.Reply{}, err
	}

	reply, err := s.ReplyRepository.Create(ctx, leave.Reply{
		LeaveRequestID: requestID,
		Message:        req.Message,
		AuthorName:     authorName,
	})
	if err != nil {
		return leave.Reply{}, fmt.Errorf("failed to create reply: %w", err)
	}
	return reply, nil
}

// Attach loads the thread of every request in place.
func (s *ReplyService) Attach(ctx context.Context, requests []leave.LeaveRequest) error {
	if len(requests) == 0 {
		return nil
	}

	ids := make([]string, 0, len(requests))
	for _, request := range requests {
		ids = append(ids, request.ID)
	}

	threads, err := s.ReplyRepository.ListByRequestIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to list replies: %w", err)
	}

	for i := range requests {
		requests[i].Replies = threads[requests[i].ID]
	}
	return nil
}
