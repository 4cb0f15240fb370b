package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"pizza-delivery-api/apperr"
	"pizza-delivery-api/config"
	"pizza-delivery-api/inventory"
	"pizza-delivery-api/middleware"
	"pizza-delivery-api/notify"
	"pizza-delivery-api/settlement"
)

// Handler carries every dependency the HTTP layer needs. All of it is
// injected at startup; there are no package-level singletons.
type Handler struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Auth     *middleware.Auth
	Ledger   *inventory.Ledger
	Workflow *settlement.Workflow
	Notifier notify.Notifier

	validate *validator.Validate
}

func New(db *gorm.DB, cfg *config.Config, auth *middleware.Auth, ledger *inventory.Ledger,
	workflow *settlement.Workflow, notifier notify.Notifier) *Handler {
	return &Handler{
		DB:       db,
		Cfg:      cfg,
		Auth:     auth,
		Ledger:   ledger,
		Workflow: workflow,
		Notifier: notifier,
		validate: validator.New(),
	}
}

// respondErr converts a taxonomy error into its status code plus a stable
// machine-readable kind and a human-readable message.
func respondErr(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{
		"kind":  apperr.KindOf(err),
		"error": apperr.PublicMessage(err),
	})
}
