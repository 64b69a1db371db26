package handler

import (
	"encoding/json"
	"strconv"
	"time"

	"rosca-payflow-bridge/internal/adapter/http/dto"
	"rosca-payflow-bridge/internal/adapter/http/middleware"
	"rosca-payflow-bridge/internal/core/domain"
	"rosca-payflow-bridge/internal/core/ports"
	"rosca-payflow-bridge/pkg/apperror"
	"rosca-payflow-bridge/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// idempotencyTTL is how long a contribution response stays replayable.
const idempotencyTTL = 24 * time.Hour

// RoundHandler handles the money-moving round endpoints: single
// contributions, full round collection, and payout distribution.
type RoundHandler struct {
	groups  ports.GroupRepository
	members ports.MemberRepository
	rosca   ports.RoscaService
	idem    ports.IdempotencyCache // nil = idempotency replay disabled
	log     zerolog.Logger
}

// NewRoundHandler creates a new RoundHandler.
func NewRoundHandler(groups ports.GroupRepository, members ports.MemberRepository, rosca ports.RoscaService, idem ports.IdempotencyCache, log zerolog.Logger) *RoundHandler {
	return &RoundHandler{groups: groups, members: members, rosca: rosca, idem: idem, log: log}
}

// Contribute handles POST /api/v1/groups/:groupId/rounds/:round/contributions.
// A client-supplied Idempotency-Key header makes the request replayable: a
// repeated key returns the originally recorded transaction without moving
// money again.
func (h *RoundHandler) Contribute(c *gin.Context) {
	group, round, ok := h.loadGroupAndRound(c)
	if !ok {
		return
	}

	var req dto.ContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	// The client key is scoped to this group, round, and member so a reused
	// header value never replays another contribution.
	var idemKey string
	if key := c.GetHeader(middleware.HeaderIdempotencyKey); key != "" && h.idem != nil {
		idemKey = domain.BuildIdempotencyKey(group.ID.String(), round, req.MemberID, key)
		cached, err := h.idem.Get(c.Request.Context(), idemKey)
		if err != nil {
			h.log.Warn().Err(err).Msg("idempotency cache read failed, processing request")
		} else if cached != nil {
			var tx dto.TransactionResponse
			if err := json.Unmarshal(cached, &tx); err == nil {
				response.OK(c, tx)
				return
			}
		}
	}

	member, ok := h.loadMember(c, group, req.MemberID)
	if !ok {
		return
	}

	amount := group.ContributionAmount
	if req.Amount != nil {
		amount = *req.Amount
	}

	tx, err := h.rosca.ProcessContribution(c.Request.Context(), ports.ContributionInput{
		MemberWalletID: *member.WalletID,
		GroupWalletID:  *group.WalletID,
		Amount:         amount,
		GroupID:        group.ID.String(),
		Round:          round,
	})
	if err != nil {
		response.Error(c, upstreamError(err))
		return
	}

	resp := dto.FromTransaction(tx)
	if idemKey != "" {
		if body, err := json.Marshal(resp); err == nil {
			if err := h.idem.Set(c.Request.Context(), idemKey, body, idempotencyTTL); err != nil {
				h.log.Warn().Err(err).Msg("idempotency cache write failed")
			}
		}
	}

	response.Created(c, resp)
}

// Collect handles POST /api/v1/groups/:groupId/rounds/:round/collect.
// It fans a contribution out to every member of the group and reports the
// per-member outcome. Failed members do not roll back succeeded ones.
func (h *RoundHandler) Collect(c *gin.Context) {
	group, round, ok := h.loadGroupAndRound(c)
	if !ok {
		return
	}
	if group.WalletID == nil {
		response.Error(c, apperror.ErrGroupWalletMissing())
		return
	}

	roster, err := h.members.ListByGroup(c.Request.Context(), group.ID)
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}
	if len(roster) == 0 {
		response.Error(c, apperror.ErrEmptyRound())
		return
	}

	plan := ports.RoundPlan{
		GroupID:       group.ID.String(),
		GroupWalletID: *group.WalletID,
		Round:         round,
		Amount:        group.ContributionAmount,
		Members:       make([]ports.RoundMember, 0, len(roster)),
	}
	for i := range roster {
		m := &roster[i]
		if m.WalletID == nil {
			response.Error(c, apperror.ErrMemberWalletMissing())
			return
		}
		plan.Members = append(plan.Members, ports.RoundMember{
			MemberWalletID: *m.WalletID,
			UserID:         m.UserID,
			Name:           m.Name,
		})
	}

	results := h.rosca.CollectRoundContributions(c.Request.Context(), plan)

	out := dto.CollectionResponse{
		GroupID: group.ID.String(),
		Round:   round,
		Results: make([]dto.CollectionMemberResult, 0, len(results)),
	}
	for _, r := range results {
		entry := dto.CollectionMemberResult{MemberWalletID: r.MemberWalletID}
		if r.Err != nil {
			entry.Error = r.Err.Error()
			out.Failed++
		} else {
			tx := dto.FromTransaction(r.Transaction)
			entry.Transaction = &tx
			out.Succeeded++
		}
		out.Results = append(out.Results, entry)
	}

	response.OK(c, out)
}

// Payout handles POST /api/v1/groups/:groupId/rounds/:round/payout.
// The default amount is the full pot: contribution amount times member count.
func (h *RoundHandler) Payout(c *gin.Context) {
	group, round, ok := h.loadGroupAndRound(c)
	if !ok {
		return
	}

	var req dto.PayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	member, ok := h.loadMember(c, group, req.MemberID)
	if !ok {
		return
	}

	var amount float64
	if req.Amount != nil {
		amount = *req.Amount
	} else {
		roster, err := h.members.ListByGroup(c.Request.Context(), group.ID)
		if err != nil {
			response.Error(c, apperror.ErrDatabaseError(err))
			return
		}
		amount = group.ContributionAmount * float64(len(roster))
	}

	tx, err := h.rosca.DistributePayout(c.Request.Context(), ports.PayoutDistributionInput{
		GroupWalletID:  *group.WalletID,
		MemberWalletID: *member.WalletID,
		Amount:         amount,
		GroupID:        group.ID.String(),
		Round:          round,
		MemberName:     member.Name,
	})
	if err != nil {
		response.Error(c, upstreamError(err))
		return
	}

	response.Created(c, dto.FromTransaction(tx))
}

// loadGroupAndRound parses :groupId and :round and fetches the group,
// writing the error response itself when any step fails. The group must
// have a provisioned wallet.
func (h *RoundHandler) loadGroupAndRound(c *gin.Context) (*domain.Group, int, bool) {
	id, err := uuid.Parse(c.Param("groupId"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid group id"))
		return nil, 0, false
	}

	round, err := strconv.Atoi(c.Param("round"))
	if err != nil || round < 1 {
		response.Error(c, apperror.ErrInvalidRound())
		return nil, 0, false
	}

	group, err := h.groups.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return nil, 0, false
	}
	if group == nil {
		response.Error(c, apperror.ErrGroupNotFound())
		return nil, 0, false
	}
	if group.WalletID == nil {
		response.Error(c, apperror.ErrGroupWalletMissing())
		return nil, 0, false
	}
	return group, round, true
}

// loadMember fetches a member by id and verifies it belongs to the group
// and has a provisioned wallet.
func (h *RoundHandler) loadMember(c *gin.Context, group *domain.Group, memberID string) (*domain.Member, bool) {
	id, err := uuid.Parse(memberID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid member id"))
		return nil, false
	}

	member, err := h.members.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return nil, false
	}
	if member == nil || member.GroupID != group.ID {
		response.Error(c, apperror.ErrMemberNotFound())
		return nil, false
	}
	if member.WalletID == nil {
		response.Error(c, apperror.ErrMemberWalletMissing())
		return nil, false
	}
	return member, true
}
