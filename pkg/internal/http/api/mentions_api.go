package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mosaicnet/interlink/pkg/internal/models"
	"github.com/mosaicnet/interlink/pkg/internal/services"
	"github.com/samber/lo"
)

func listMyMentions(c *fiber.Ctx) error {
	userID, err := requireAccountID(c)
	if err != nil {
		return err
	}

	var typeFilter *models.MentionTargetType
	switch c.Query("target") {
	case "post":
		typeFilter = lo.ToPtr(models.MentionTargetPost)
	case "comment":
		typeFilter = lo.ToPtr(models.MentionTargetComment)
	}

	mentions, count, err := services.ListMentionsOf(userID, typeFilter, c.QueryInt("page", 0), c.QueryInt("pageSize", 0))
	if err != nil {
		return remapServiceError(err)
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  mentions,
	})
}

func countMyMentions(c *fiber.Ctx) error {
	userID, err := requireAccountID(c)
	if err != nil {
		return err
	}

	count, err := services.CountMentionsOf(userID)
	if err != nil {
		return remapServiceError(err)
	}

	return c.JSON(fiber.Map{
		"count": count,
	})
}
