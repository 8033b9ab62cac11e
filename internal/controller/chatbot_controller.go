package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"support-assistant-be/internal/dto"
	"support-assistant-be/internal/pkg/serverutils"
	"support-assistant-be/internal/service"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	EnhancedChat(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
	ClearContext(ctx *fiber.Ctx) error
}

type chatbotController struct {
	chatbotService service.IChatbotService
}

func NewChatbotController(chatbotService service.IChatbotService) IChatbotController {
	return &chatbotController{
		chatbotService: chatbotService,
	}
}

// RegisterRoutes mounts the public conversational endpoints. These are
// unauthenticated; the rate limiter inside the service throttles abuse.
func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chatbot/v1")
	h.Post("enhanced", c.EnhancedChat)
	h.Get("enhanced", c.Health)
	h.Delete("context/:sessionId", c.ClearContext)
}

// EnhancedChat returns the raw chat body, not the APIResponse envelope.
// The response shape is an external contract shared with the web widget.
func (c *chatbotController) EnhancedChat(ctx *fiber.Ctx) error {
	var req dto.EnhancedChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return &dto.ValidationError{Reason: "Invalid request body"}
	}

	// Validation happens inside the service, after the rate limiter: a
	// throttled caller gets 429 even for a malformed message.
	res, err := c.chatbotService.EnhancedChat(ctx.Context(), clientIP(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *chatbotController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(c.chatbotService.Health())
}

func (c *chatbotController) ClearContext(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("sessionId")
	existed := c.chatbotService.ClearContext(sessionID)
	return ctx.JSON(serverutils.SuccessResponse("Context cleared", fiber.Map{
		"sessionId": sessionID,
		"existed":   existed,
	}))
}

// clientIP prefers proxy headers over the socket address so rate limiting
// keys on the real caller behind a load balancer.
func clientIP(ctx *fiber.Ctx) string {
	if fwd := ctx.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	if real := ctx.Get("X-Real-IP"); real != "" {
		return real
	}
	return ctx.IP()
}
