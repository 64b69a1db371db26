package handler

import (
	"strconv"

	"rosca-payflow-bridge/internal/adapter/http/dto"
	"rosca-payflow-bridge/internal/core/domain"
	"rosca-payflow-bridge/internal/core/ports"
	"rosca-payflow-bridge/pkg/apperror"
	"rosca-payflow-bridge/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultHistoryLimit = 50

// ReportHandler handles read-only transaction history and statistics
// endpoints. All data comes from the PayFlow transaction log; nothing is
// read from the local registry beyond wallet ids.
type ReportHandler struct {
	groups  ports.GroupRepository
	members ports.MemberRepository
	rosca   ports.RoscaService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(groups ports.GroupRepository, members ports.MemberRepository, rosca ports.RoscaService) *ReportHandler {
	return &ReportHandler{groups: groups, members: members, rosca: rosca}
}

// GroupTransactions handles GET /api/v1/groups/:groupId/transactions.
func (h *ReportHandler) GroupTransactions(c *gin.Context) {
	group, ok := h.loadGroup(c)
	if !ok {
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.Error(c, apperror.Validation("invalid limit"))
			return
		}
		limit = n
	}

	txns, err := h.rosca.GetGroupTransactionHistory(c.Request.Context(), *group.WalletID, limit)
	if err != nil {
		response.Error(c, upstreamError(err))
		return
	}

	response.OK(c, toTransactionList(txns))
}

// MemberTransactions handles GET /api/v1/groups/:groupId/members/:memberId/transactions.
func (h *ReportHandler) MemberTransactions(c *gin.Context) {
	group, member, ok := h.loadGroupAndMember(c)
	if !ok {
		return
	}

	txns, err := h.rosca.GetMemberGroupTransactions(c.Request.Context(), *member.WalletID, group.ID.String(), defaultHistoryLimit)
	if err != nil {
		response.Error(c, upstreamError(err))
		return
	}

	response.OK(c, toTransactionList(txns))
}

// MemberStats handles GET /api/v1/groups/:groupId/members/:memberId/stats.
func (h *ReportHandler) MemberStats(c *gin.Context) {
	group, member, ok := h.loadGroupAndMember(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	groupID := group.ID.String()

	contributions, err := h.rosca.CalculateMemberContributions(ctx, *member.WalletID, groupID)
	if err != nil {
		response.Error(c, upstreamError(err))
		return
	}

	payouts, err := h.rosca.CalculateMemberPayouts(ctx, *member.WalletID, groupID)
	if err != nil {
		response.Error(c, upstreamError(err))
		return
	}

	response.OK(c, dto.MemberStatsResponse{
		ContributionsTotal: contributions.Total,
		ContributionsCount: contributions.Count,
		PayoutsTotal:       payouts.Total,
		PayoutsCount:       payouts.Count,
		NetPosition:        payouts.Total - contributions.Total,
	})
}

func (h *ReportHandler) loadGroup(c *gin.Context) (*domain.Group, bool) {
	id, err := uuid.Parse(c.Param("groupId"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid group id"))
		return nil, false
	}

	group, err := h.groups.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return nil, false
	}
	if group == nil {
		response.Error(c, apperror.ErrGroupNotFound())
		return nil, false
	}
	if group.WalletID == nil {
		response.Error(c, apperror.ErrGroupWalletMissing())
		return nil, false
	}
	return group, true
}

func (h *ReportHandler) loadGroupAndMember(c *gin.Context) (*domain.Group, *domain.Member, bool) {
	group, ok := h.loadGroup(c)
	if !ok {
		return nil, nil, false
	}

	memberID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid member id"))
		return nil, nil, false
	}

	member, err := h.members.GetByID(c.Request.Context(), memberID)
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return nil, nil, false
	}
	if member == nil || member.GroupID != group.ID {
		response.Error(c, apperror.ErrMemberNotFound())
		return nil, nil, false
	}
	if member.WalletID == nil {
		response.Error(c, apperror.ErrMemberWalletMissing())
		return nil, nil, false
	}
	return group, member, true
}

func toTransactionList(txns []domain.Transaction) dto.TransactionListResponse {
	items := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, dto.FromTransaction(&txns[i]))
	}
	return dto.TransactionListResponse{Items: items, Count: len(items)}
}
