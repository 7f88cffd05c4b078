package controller

import (
	"errors"

	"babyname-be/internal/dto"
	"babyname-be/internal/entity"
	"babyname-be/internal/pkg/serverutils"
	"babyname-be/internal/service"
	"babyname-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SessionHeader carries the browser session id; absent means the shared guest
// session.
const SessionHeader = "X-Session-Id"

type IFavoriteController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Describe(ctx *fiber.Ctx) error
	UpdateDescription(ctx *fiber.Ctx) error
	Enrich(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	View(ctx *fiber.Ctx) error
}

type favoriteController struct {
	favoriteService    service.IFavoriteService
	descriptionService service.IDescriptionService
	viewService        service.IViewService
}

func NewFavoriteController(
	favoriteService service.IFavoriteService,
	descriptionService service.IDescriptionService,
	viewService service.IViewService,
) IFavoriteController {
	return &favoriteController{
		favoriteService:    favoriteService,
		descriptionService: descriptionService,
		viewService:        viewService,
	}
}

func (c *favoriteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/favorite/v1")
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Get("view", c.View)
	h.Get(":id/description", c.Describe)
	h.Patch(":id/description", c.UpdateDescription)
	h.Post(":id/enrich", c.Enrich)
	h.Delete(":id", c.Delete)
}

func sessionId(ctx *fiber.Ctx) string {
	if sid := ctx.Get(SessionHeader); sid != "" {
		return sid
	}
	return "guest"
}

func pathId(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.ErrBadRequest
	}
	return id, nil
}

// List returns the favorites as the session sees them: the authoritative list
// refreshed from the active backend, with any pending or failed optimistic
// entries still on top.
func (c *favoriteController) List(ctx *fiber.Ctx) error {
	view, err := c.viewService.Refresh(ctx.Context(), sessionId(ctx))
	if err != nil {
		return err
	}

	res := &dto.ListFavoritesResponse{
		Favorites:    make([]*dto.FavoriteResponse, 0, len(view.Entries)),
		UsingLocal:   c.favoriteService.UsingLocal(),
		ViewRevision: view.Revision,
	}
	for _, entry := range view.Entries {
		res.Favorites = append(res.Favorites, toFavoriteResponse(entry))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list favorites", res))
}

func (c *favoriteController) Create(ctx *fiber.Ctx) error {
	sid := sessionId(ctx)

	var req dto.CreateFavoriteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	favorite, err := c.favoriteService.BuildFavorite(&req)
	if err != nil {
		return err
	}

	// Show the entry immediately, settle it after the store answers.
	c.viewService.AddOptimistic(sid, favorite)
	err = c.favoriteService.Create(ctx.Context(), sid, favorite)
	c.viewService.ReconcileCreate(sid, favorite.Id, favorite, err)
	if err != nil {
		return err
	}

	res := toFavoriteResponse(&store.ViewEntry{Favorite: favorite, Status: store.EntryConfirmed})
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create favorite", res))
}

// Describe resolves the long-form description for a favorite, generating and
// persisting it on first request. Concurrent calls share one generation.
func (c *favoriteController) Describe(ctx *fiber.Ctx) error {
	sid := sessionId(ctx)
	id, err := pathId(ctx)
	if err != nil {
		return err
	}

	result, err := c.descriptionService.EnsureDescription(ctx.Context(), id)
	if err != nil {
		return mapNotFound(err)
	}
	c.viewService.ApplyEnrichment(sid, id, result.Text, result.Status == service.StatusSaved)

	return ctx.JSON(serverutils.SuccessResponse("Success describe favorite", &dto.NameDescriptionResponse{
		Description: result.Text,
		UsedWiki:    result.UsedWiki,
	}))
}

func (c *favoriteController) UpdateDescription(ctx *fiber.Ctx) error {
	sid := sessionId(ctx)
	id, err := pathId(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateDescriptionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	updated, err := c.favoriteService.UpdateDescription(ctx.Context(), id, req.Description, false)
	if err != nil {
		return err
	}
	if updated == nil {
		return fiber.ErrNotFound
	}
	c.viewService.ApplyEnrichment(sid, id, req.Description, true)

	res := toFavoriteResponse(&store.ViewEntry{Favorite: updated, Status: store.EntryConfirmed})
	return ctx.JSON(serverutils.SuccessResponse("Success update description", res))
}

// Enrich queues the async description fetch for an already saved favorite.
func (c *favoriteController) Enrich(ctx *fiber.Ctx) error {
	sid := sessionId(ctx)
	id, err := pathId(ctx)
	if err != nil {
		return err
	}

	favorite, err := c.favoriteService.FindOne(ctx.Context(), id)
	if err != nil {
		return err
	}
	if favorite == nil {
		return fiber.ErrNotFound
	}

	if err := c.favoriteService.RequestEnrichment(ctx.Context(), sid, id); err != nil {
		return err
	}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse[any]("Enrichment queued", nil))
}

func (c *favoriteController) Delete(ctx *fiber.Ctx) error {
	sid := sessionId(ctx)
	id, err := pathId(ctx)
	if err != nil {
		return err
	}

	// Remove from the view first; a failed delete refetches the truth.
	c.viewService.RemoveOptimistic(sid, id)
	err = c.favoriteService.Delete(ctx.Context(), id)
	c.viewService.ReconcileDelete(ctx.Context(), sid, id, err)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete favorite", nil))
}

// View exposes the raw optimistic view state, including entry statuses, so
// clients can reconcile after reconnecting.
func (c *favoriteController) View(ctx *fiber.Ctx) error {
	view, _, err := c.viewService.Snapshot(ctx.Context(), sessionId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show view", view))
}

func toFavoriteResponse(entry *store.ViewEntry) *dto.FavoriteResponse {
	f := entry.Favorite
	return &dto.FavoriteResponse{
		Id:          f.Id,
		Name:        f.Name,
		Gender:      f.Gender,
		Theme:       f.Theme,
		CreatedAt:   f.CreatedAt,
		Owner:       ownerOrGuest(f),
		Meaning:     f.Meaning,
		Origin:      f.Origin,
		Description: f.DisplayDescription(),
		UsedWiki:    f.UsedWiki,
		Saved:       entry.Status == store.EntryConfirmed && entry.Error == "",
	}
}

func ownerOrGuest(f *entity.Favorite) string {
	if f.Owner == "" {
		return entity.GuestOwner
	}
	return f.Owner
}

// mapNotFound converts the service sentinel into an HTTP 404 for handlers that
// surface enrichment results synchronously.
func mapNotFound(err error) error {
	if errors.Is(err, service.ErrFavoriteNotFound) {
		return fiber.ErrNotFound
	}
	return err
}
