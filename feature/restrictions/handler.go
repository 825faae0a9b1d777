package restrictions

import (
	"errors"
	"strconv"

	"loot-restrictions/core/logger"
	"loot-restrictions/feature/restrictions/engine"
	"loot-restrictions/feature/restrictions/models"
	"loot-restrictions/feature/restrictions/reconcile"
	"loot-restrictions/feature/restrictions/specs"
	"loot-restrictions/feature/restrictions/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for item restrictions.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the restriction routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/restrictions")
	group.Get("/items/:id", h.HandleGetDeterminations)
	group.Get("/items/:id/specs", h.HandleGetAllowedSpecs)
	group.Get("/items/:id/reasons", h.HandleGetDisallowedReasons)
	group.Get("/items/:id/persisted", h.HandleGetPersisted)
	group.Post("/items/:id/manual", h.HandleAddManual)
	group.Post("/records/:rid/promote", h.HandlePromote)
	group.Post("/reconcile", h.HandleReconcile)
}

// ManualRestrictionRequest is the body of a manual restriction.
type ManualRestrictionRequest struct {
	Specializations specs.Set    `json:"specializations" swaggertype:"string" example:"BalanceDruid,FireMage"`
	Level           models.Level `json:"level" swaggertype:"string" example:"Disallowed"`
	Reason          string       `json:"reason" example:"Reserved for the raid leader"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrItemNotFound), errors.Is(err, store.ErrRestrictionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrRunInProgress):
		return fiber.StatusConflict
	case errors.Is(err, ErrInvalidRestriction):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func itemID(c *fiber.Ctx) (uint32, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, errors.New("item id must be a positive integer")
	}
	return uint32(id), nil
}

// HandleGetDeterminations returns every verdict for one item.
// @Summary Get Item Determinations
// @Description Evaluate every rule against the item and list the resulting determinations.
// @Tags restrictions
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} ItemReport "Item verdicts"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Item Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /restrictions/items/{id} [get]
func (h *Handler) HandleGetDeterminations(c *fiber.Ctx) error {
	id, err := itemID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Determinations(c.Context(), id)
	if err != nil {
		l.Error("Determination lookup failed", zap.Uint32("item_id", id), zap.Error(err))
		return fail(c, statusFor(err), err)
	}

	return c.JSON(report)
}

// HandleGetAllowedSpecs returns the specializations that may receive an item.
// @Summary Get Allowed Specializations
// @Description List the specializations without a blocking determination for the item.
// @Tags restrictions
// @Produce json
// @Param id path int true "Item ID"
// @Param include_review query bool false "Treat manual review as allowed"
// @Success 200 {object} map[string]interface{} "Allowed specializations"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Item Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /restrictions/items/{id}/specs [get]
func (h *Handler) HandleGetAllowedSpecs(c *fiber.Ctx) error {
	id, err := itemID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	includeReview := c.QueryBool("include_review", false)
	l := logger.WithRayID(h.service.logger, c)

	allowed, err := h.service.AllowedSpecs(c.Context(), id, includeReview)
	if err != nil {
		l.Error("Allowed specializations lookup failed", zap.Uint32("item_id", id), zap.Error(err))
		return fail(c, statusFor(err), err)
	}

	return c.JSON(fiber.Map{
		"item_id":        id,
		"include_review": includeReview,
		"specs":          allowed.Keys(),
	})
}

// HandleGetDisallowedReasons returns why a specialization may not receive an item.
// @Summary Get Disallowed Reasons
// @Description List the distinct reasons the specialization is refused the item.
// @Tags restrictions
// @Produce json
// @Param id path int true "Item ID"
// @Param spec query string true "Specialization (e.g. 'FireMage')"
// @Param exclude_review query bool false "Skip manual review reasons"
// @Success 200 {object} map[string]interface{} "Reasons"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Item Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /restrictions/items/{id}/reasons [get]
func (h *Handler) HandleGetDisallowedReasons(c *fiber.Ctx) error {
	id, err := itemID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	spec, err := specs.ParseSpecialization(c.Query("spec"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	excludeReview := c.QueryBool("exclude_review", false)
	l := logger.WithRayID(h.service.logger, c)

	reasons, err := h.service.DisallowedReasons(c.Context(), id, spec, excludeReview)
	if err != nil {
		l.Error("Disallowed reasons lookup failed", zap.Uint32("item_id", id), zap.Stringer("spec", spec), zap.Error(err))
		return fail(c, statusFor(err), err)
	}

	return c.JSON(fiber.Map{
		"item_id": id,
		"spec":    spec,
		"reasons": reasons,
	})
}

// HandleGetPersisted returns the stored restrictions of an item.
// @Summary Get Persisted Restrictions
// @Description List the automated and manual restriction records stored for the item.
// @Tags restrictions
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {array} models.Restriction "Restrictions"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /restrictions/items/{id}/persisted [get]
func (h *Handler) HandleGetPersisted(c *fiber.Ctx) error {
	id, err := itemID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	l := logger.WithRayID(h.service.logger, c)

	list, err := h.service.Restrictions(c.Context(), id)
	if err != nil {
		l.Error("Restriction listing failed", zap.Uint32("item_id", id), zap.Error(err))
		return fail(c, statusFor(err), err)
	}

	return c.JSON(list)
}

// HandleAddManual stores a hand-curated restriction.
// @Summary Add Manual Restriction
// @Description Store a restriction that reconciliation never modifies.
// @Tags restrictions
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param body body ManualRestrictionRequest true "Restriction"
// @Success 201 {object} models.Restriction "Created"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Item Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /restrictions/items/{id}/manual [post]
func (h *Handler) HandleAddManual(c *fiber.Ctx) error {
	id, err := itemID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	var req ManualRestrictionRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	l := logger.WithRayID(h.service.logger, c)

	created, err := h.service.AddManual(c.Context(), models.Restriction{
		ItemID:          id,
		Specializations: req.Specializations,
		Level:           req.Level,
		Reason:          req.Reason,
	})
	if err != nil {
		l.Error("Manual restriction failed", zap.Uint32("item_id", id), zap.Error(err))
		return fail(c, statusFor(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandlePromote hands an automated restriction over to manual curation.
// @Summary Promote Restriction
// @Description Mark a stored restriction as manual so reconciliation keeps it as is.
// @Tags restrictions
// @Produce json
// @Param rid path int true "Restriction ID"
// @Success 200 {object} models.Restriction "Promoted"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Restriction Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /restrictions/records/{rid}/promote [post]
func (h *Handler) HandlePromote(c *fiber.Ctx) error {
	rid, err := strconv.ParseUint(c.Params("rid"), 10, 64)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, errors.New("restriction id must be a positive integer"))
	}
	l := logger.WithRayID(h.service.logger, c)

	r, err := h.service.Promote(c.Context(), uint(rid))
	if err != nil {
		l.Error("Promotion failed", zap.Uint64("id", rid), zap.Error(err))
		return fail(c, statusFor(err), err)
	}

	return c.JSON(r)
}

// HandleReconcile runs a reconciliation pass.
// @Summary Reconcile Restrictions
// @Description Evaluate the catalog and synchronize automated restrictions. Use dry_run to only plan.
// @Tags restrictions
// @Produce json
// @Param dry_run query bool false "Plan without committing"
// @Param match query string false "Match mode (reason, exact)"
// @Success 200 {object} RunReport "Run report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} map[string]string "Reconciliation In Progress"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /restrictions/reconcile [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	opts := RunOptions{DryRun: c.QueryBool("dry_run", false)}
	if raw := c.Query("match"); raw != "" {
		match, err := reconcile.ParseMatchMode(raw)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, err)
		}
		opts.Match = match
	}
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.RunReconciliation(c.Context(), opts)
	if err != nil {
		l.Error("Reconciliation request failed", zap.Error(err))
		return fail(c, statusFor(err), err)
	}

	return c.JSON(report)
}
