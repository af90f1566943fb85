package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/labstack/echo/v4"
)

// CommandRequest is the body of an agent command.
type CommandRequest struct {
	Command string `json:"command"`
}

// AgentRegisterRequest is the request to register an agent.
type AgentRegisterRequest struct {
	AgentID      string   `json:"agent_id"`
	Version      string   `json:"version,omitempty"`
	Description  string   `json:"description,omitempty"`
	Capabilities []string `json:"capabilities,omitempty"`
}

// ListAgents returns every agent keyed by id with its derived status.
// GET /agents
func (h *Handler) ListAgents(c echo.Context) error {
	now := time.Now()

	records, err := h.service.AgentStatuses(c.Request().Context(), now)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, map[string]interface{}{
		"agents":    records,
		"timestamp": now.Format(time.RFC3339),
	})
}

// SendCommand acknowledges a command for an agent. An empty body is treated
// as an empty command; a malformed body is not handled specially and
// surfaces as the generic failure.
// POST /agents/:agent_id/command
func (h *Handler) SendCommand(c echo.Context) error {
	agentID := c.Param("agent_id")

	var req CommandRequest
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return fail(c, err)
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			return fail(c, err)
		}
	}

	h.service.SendCommand(c.Request().Context(), agentID, req.Command)

	return ok(c, map[string]interface{}{
		"agentId": agentID,
		"command": req.Command,
		"message": fmt.Sprintf("Command '%s' sent to agent %s", req.Command, agentID),
	})
}

// RegisterAgent inserts or replaces an agent document.
// POST /agents/register
func (h *Handler) RegisterAgent(c echo.Context) error {
	var req AgentRegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.AgentID == "" {
		return badRequest(c, "agent_id is required")
	}

	agent, err := h.service.RegisterAgent(c.Request().Context(),
		req.AgentID, req.Version, req.Description, req.Capabilities)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, map[string]interface{}{
		"agentId":      agent.AgentID,
		"registeredAt": agent.CreatedAt.Format(time.RFC3339),
	})
}

// Heartbeat stamps the agent's last heartbeat.
// POST /agents/:agent_id/heartbeat
func (h *Handler) Heartbeat(c echo.Context) error {
	agentID := c.Param("agent_id")

	if err := h.service.Heartbeat(c.Request().Context(), agentID); err != nil {
		return fail(c, err)
	}

	return ok(c, map[string]interface{}{
		"agentId": agentID,
	})
}
