package leave

import "context"

type LeaveService interface {
	// Request
	CreateLeaveRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	ApproveLeaveRequest(ctx context.Context, req ApproveRequestRequest, approverID string) (LeaveRequestResponse, error)
	RejectLeaveRequest(ctx context.Context, req RejectRequestRequest, approverID string) (LeaveRequestResponse, error)
	ListLeaveRequests(ctx context.Context, organizationID string) ([]LeaveRequestResponse, error)
	ListMyLeaveRequests(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	GetAuditLog(ctx context.Context, leaveRequestID string) ([]AuditLogResponse, error)

	// Balance
	ListMyBalances(ctx context.Context, employeeID string, year int) ([]LeaveBalanceResponse, error)
}
