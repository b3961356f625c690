package auth

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// LoginRequest is the /authenticate payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// RegisterRequest is the /register payload. Username must carry at least one
// non-whitespace character.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.By(notBlank)),
		validation.Field(&r.Password, validation.Required),
	)
}

func notBlank(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cannot consist solely of whitespace characters")
	}
	return nil
}

// TokenResponse carries the issued token back to the client.
type TokenResponse struct {
	Token string `json:"token"`
}

type HTTPControllerRoutes struct {
	Authenticate string
	Register     string
}

// HTTPController exposes the authentication endpoints.
type HTTPController struct {
	Debug  bool
	Logger Logger
	Auther Authenticator
	Store  UserStore
	Routes *HTTPControllerRoutes
}

type HTTPControllerOption func(*HTTPController) *HTTPController

func NewHTTPController(auther Authenticator, store UserStore, opts ...HTTPControllerOption) *HTTPController {
	c := &HTTPController{
		Logger: defLogger{},
		Auther: auther,
		Store:  store,
		Routes: &HTTPControllerRoutes{
			Authenticate: "/authenticate",
			Register:     "/register",
		},
	}

	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	return c
}

func WithControllerLogger(logger Logger) HTTPControllerOption {
	return func(c *HTTPController) *HTTPController {
		c.Logger = logger
		return c
	}
}

func WithControllerDebug(debug bool) HTTPControllerOption {
	return func(c *HTTPController) *HTTPController {
		c.Debug = debug
		return c
	}
}

// RegisterRoutes mounts the public authentication endpoints.
func RegisterRoutes(app fiber.Router, controller *HTTPController) {
	app.Post(controller.Routes.Authenticate, controller.AuthenticatePost)
	app.Post(controller.Routes.Register, controller.RegisterPost)
}

// AuthenticatePost handles POST /authenticate. Authenticator failures come
// back as 401 with a plain-text reason; validation failures as 400.
func (c *HTTPController) AuthenticatePost(ctx *fiber.Ctx) error {
	payload := LoginRequest{}
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unable to parse request body",
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	token, err := c.Auther.Login(ctx.UserContext(), payload.Username, payload.Password)
	if err != nil {
		c.Logger.Info("Authenticate rejected", "username", payload.Username)
		return c.unauthorized(ctx, err)
	}

	res := TokenResponse{Token: token}
	if c.Debug {
		fmt.Println(print.MaybePrettyJSON(res))
	}

	return ctx.JSON(res)
}

// RegisterPost handles POST /register. The created principal serializes
// without its password hash.
func (c *HTTPController) RegisterPost(ctx *fiber.Ctx) error {
	payload := RegisterRequest{}
	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unable to parse request body",
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	user, err := c.Store.Register(ctx.UserContext(), payload.Username, payload.Password)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			status := fiber.StatusBadRequest
			if richErr.Category == goerrors.CategoryConflict {
				status = fiber.StatusConflict
			}
			return ctx.Status(status).JSON(fiber.Map{
				"error": richErr.Message,
			})
		}
		c.Logger.Error("Register error", "error", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "unable to register user",
		})
	}

	if c.Debug {
		fmt.Println(print.MaybePrettyJSON(user))
	}

	return ctx.JSON(user)
}

// unauthorized writes the 401-with-reason contract shared with the filter.
func (c *HTTPController) unauthorized(ctx *fiber.Ctx, err error) error {
	reason := ErrInvalidCredentials.Message
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.Category == goerrors.CategoryAuth {
		reason = richErr.Message
	}
	return ctx.Status(fiber.StatusUnauthorized).SendString(reason)
}
