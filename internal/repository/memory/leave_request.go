package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend-go/internal/domain/leave"
)

type leaveRequestRepositoryImpl struct {
	store *Store
}

func NewLeaveRequestRepository(store *Store) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{store: store}
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	request.ID = newID()
	request.SubmittedAt = s.now()
	request.Replies = nil
	s.requests[request.ID] = request

	id := request.ID
	s.recordUndo(ctx, func() { delete(s.requests, id) })

	return request, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	request, ok := s.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return request, nil
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, status *leave.LeaveRequestStatus) ([]leave.LeaveRequest, error) {
	s := r.store
	s.mu.RLock()
	requests := make([]leave.LeaveRequest, 0, len(s.requests))
	for _, request := range s.requests {
		if status != nil && request.Status != *status {
			continue
		}
		requests = append(requests, request)
	}
	s.mu.RUnlock()

	sort.Slice(requests, func(i, j int) bool {
		if !requests[i].SubmittedAt.Equal(requests[j].SubmittedAt) {
			return requests[i].SubmittedAt.After(requests[j].SubmittedAt)
		}
		return requests[i].ID > requests[j].ID
	})

	return requests, nil
}

func (r *leaveRequestRepositoryImpl) Decide(ctx context.Context, id string, status leave.LeaveRequestStatus, decidedBy string, decidedAt time.Time) (leave.LeaveRequest, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	request, ok := s.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if !request.IsPending() {
		return leave.LeaveRequest{}, leave.ErrInvalidStateTransition
	}

	previous := request
	request.Status = status
	request.DecidedBy = &decidedBy
	request.DecidedAt = &decidedAt
	s.requests[id] = request

	s.recordUndo(ctx, func() { s.requests[id] = previous })

	return request, nil
}
