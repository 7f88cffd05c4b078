package controller

import (
	"babyname-be/internal/dto"
	"babyname-be/internal/pkg/serverutils"
	"babyname-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IGeneratorController interface {
	RegisterRoutes(r fiber.Router)
	GenerateNames(ctx *fiber.Ctx) error
	GenerateDescription(ctx *fiber.Ctx) error
}

type generatorController struct {
	generatorService service.IGeneratorService
}

func NewGeneratorController(generatorService service.IGeneratorService) IGeneratorController {
	return &generatorController{
		generatorService: generatorService,
	}
}

func (c *generatorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/generator/v1")
	h.Post("names", c.GenerateNames)
	h.Post("description", c.GenerateDescription)
}

func (c *generatorController) GenerateNames(ctx *fiber.Ctx) error {
	var req dto.GenerateNamesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.generatorService.GenerateNames(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate names", res))
}

// GenerateDescription produces prose for an arbitrary name, saved or not.
func (c *generatorController) GenerateDescription(ctx *fiber.Ctx) error {
	var req dto.NameDescriptionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	text, usedWiki, err := c.generatorService.GenerateDescription(ctx.Context(), req.Name)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate description", &dto.NameDescriptionResponse{
		Description: text,
		UsedWiki:    usedWiki,
	}))
}
