package handler

import (
	"time"

	"rosca-payflow-bridge/internal/adapter/http/dto"
	"rosca-payflow-bridge/internal/core/domain"
	"rosca-payflow-bridge/internal/core/ports"
	"rosca-payflow-bridge/pkg/apperror"
	"rosca-payflow-bridge/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// GroupHandler handles group and member registry endpoints. Creating a
// group or member writes the local record first, then provisions the
// backing wallet at the PayFlow service and links it to the record.
type GroupHandler struct {
	groups  ports.GroupRepository
	members ports.MemberRepository
	rosca   ports.RoscaService
	log     zerolog.Logger
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groups ports.GroupRepository, members ports.MemberRepository, rosca ports.RoscaService, log zerolog.Logger) *GroupHandler {
	return &GroupHandler{groups: groups, members: members, rosca: rosca, log: log}
}

// CreateGroup handles POST /api/v1/groups.
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	now := time.Now().UTC()
	group := &domain.Group{
		ID:                 uuid.New(),
		Name:               req.Name,
		Currency:           req.Currency,
		ContributionAmount: req.ContributionAmount,
		CreatorUserID:      req.CreatorUserID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := h.groups.Create(c.Request.Context(), group); err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}

	wallet, err := h.rosca.CreateGroupWallet(c.Request.Context(), group.ID.String(), group.Name, group.Currency, group.CreatorUserID)
	if err != nil {
		// The local record stays; the wallet can be provisioned on retry.
		h.log.Error().Err(err).Str("group_id", group.ID.String()).Msg("group wallet provisioning failed")
		response.Error(c, upstreamError(err))
		return
	}

	if err := h.groups.SetWalletID(c.Request.Context(), group.ID, wallet.ID); err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}
	group.WalletID = &wallet.ID

	response.Created(c, dto.FromGroup(group))
}

// GetGroup handles GET /api/v1/groups/:groupId.
func (h *GroupHandler) GetGroup(c *gin.Context) {
	group, ok := h.loadGroup(c)
	if !ok {
		return
	}
	response.OK(c, dto.FromGroup(group))
}

// ListMembers handles GET /api/v1/groups/:groupId/members.
func (h *GroupHandler) ListMembers(c *gin.Context) {
	group, ok := h.loadGroup(c)
	if !ok {
		return
	}

	members, err := h.members.ListByGroup(c.Request.Context(), group.ID)
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}

	out := make([]dto.MemberResponse, 0, len(members))
	for i := range members {
		out = append(out, dto.FromMember(&members[i]))
	}
	response.OK(c, out)
}

// AddMember handles POST /api/v1/groups/:groupId/members.
func (h *GroupHandler) AddMember(c *gin.Context) {
	group, ok := h.loadGroup(c)
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	now := time.Now().UTC()
	member := &domain.Member{
		ID:        uuid.New(),
		GroupID:   group.ID,
		UserID:    req.UserID,
		Name:      req.Name,
		Position:  req.Position,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.members.Create(c.Request.Context(), member); err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}

	wallet, err := h.rosca.CreateMemberWallet(c.Request.Context(), member.UserID, member.Name, group.Currency)
	if err != nil {
		h.log.Error().Err(err).Str("member_id", member.ID.String()).Msg("member wallet provisioning failed")
		response.Error(c, upstreamError(err))
		return
	}

	if err := h.members.SetWalletID(c.Request.Context(), member.ID, wallet.ID); err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}
	member.WalletID = &wallet.ID

	response.Created(c, dto.FromMember(member))
}

// loadGroup parses the :groupId param and fetches the group, writing the
// error response itself when either step fails.
func (h *GroupHandler) loadGroup(c *gin.Context) (*domain.Group, bool) {
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
	return group, true
}
