package movies

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// HTTPController exposes the movie catalog endpoints. All routes are meant
// to be mounted behind the authentication guard.
type HTTPController struct {
	Service Service
}

func NewHTTPController(service Service) *HTTPController {
	return &HTTPController{Service: service}
}

// RegisterRoutes mounts the catalog endpoints on the given router group.
func RegisterRoutes(app fiber.Router, controller *HTTPController) {
	app.Post("/", controller.Create)
	app.Get("/", controller.List)
	app.Get("/filter/genre/:genre", controller.FilterByGenre)
	app.Get("/filter/year/:year", controller.FilterByYear)
	app.Get("/:id", controller.GetByID)
	app.Put("/:id", controller.Update)
	app.Delete("/:id", controller.Delete)
}

func (c *HTTPController) Create(ctx *fiber.Ctx) error {
	payload := MoviePayload{}
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unable to parse request body",
		})
	}

	record, err := c.Service.Save(ctx.UserContext(), payload)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(record)
}

func (c *HTTPController) List(ctx *fiber.Ctx) error {
	records, err := c.Service.GetAll(ctx.UserContext())
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(records)
}

func (c *HTTPController) GetByID(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid movie id",
		})
	}

	record, err := c.Service.GetByID(ctx.UserContext(), id)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(record)
}

func (c *HTTPController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid movie id",
		})
	}

	payload := MoviePayload{}
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unable to parse request body",
		})
	}

	record, err := c.Service.Update(ctx.UserContext(), id, payload)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(record)
}

func (c *HTTPController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid movie id",
		})
	}

	if err := c.Service.Delete(ctx.UserContext(), id); err != nil {
		return writeError(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *HTTPController) FilterByGenre(ctx *fiber.Ctx) error {
	genre := ctx.Params("genre")
	if genre == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "genre cannot be empty",
		})
	}

	records, err := c.Service.FilterMovies(ctx.UserContext(), GenreFilter{Genre: genre})
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(records)
}

func (c *HTTPController) FilterByYear(ctx *fiber.Ctx) error {
	year, err := strconv.Atoi(ctx.Params("year"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrInvalidYear.Message,
		})
	}

	records, err := c.Service.FilterMovies(ctx.UserContext(), YearFilter{Year: year})
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(records)
}

func writeError(ctx *fiber.Ctx, err error) error {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		status := fiber.StatusInternalServerError
		switch richErr.Category {
		case goerrors.CategoryNotFound:
			status = fiber.StatusNotFound
		case goerrors.CategoryValidation, goerrors.CategoryBadInput:
			status = fiber.StatusBadRequest
		}
		return ctx.Status(status).JSON(fiber.Map{
			"error": richErr.Message,
		})
	}

	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal error",
	})
}
