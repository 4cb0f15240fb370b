package handlers

import (
	"net/http"

	"pizza-delivery-api/statemachine"

	"github.com/gin-gonic/gin"
)

// StateMachineInfo returns the order lifecycle for documentation purposes
func (h *Handler) StateMachineInfo(c *gin.Context) {
	transitions := statemachine.GetAllTransitions()
	info := make([]gin.H, 0, len(transitions))
	for _, t := range transitions {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []string{"delivered", "cancelled"},
		"description":     "Pizza Delivery Order Lifecycle State Machine",
	})
}
