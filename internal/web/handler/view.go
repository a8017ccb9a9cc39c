package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pzillo/landing/internal/web/navigation"
	"github.com/pzillo/landing/internal/web/session"
)

// AdminView adds what every admin template needs to data: navigation,
// the signed-in user and the pending notices.
func AdminView(c *fiber.Ctx, nav *navigation.Context, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}

	data["Navigation"] = nav
	data["Title"] = nav.PageTitle
	data["Notices"] = session.PopNotices(c)

	if u, ok := c.Locals(LocalsCurrentUser).(session.User); ok {
		data["CurrentUser"] = u
	}

	return data
}
