package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mosaicnet/interlink/pkg/internal/services"
)

func listPostsByAuthor(c *fiber.Ctx) error {
	accountID, err := c.ParamsInt("accountId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "account id must be a number")
	}

	posts, count, err := services.ListPostsByAuthor(
		uint(accountID),
		c.QueryInt("page", 0),
		c.QueryInt("pageSize", 0),
	)
	if err != nil {
		return remapServiceError(err)
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  posts,
	})
}

func followAccount(c *fiber.Ctx) error {
	followerID, err := requireAccountID(c)
	if err != nil {
		return err
	}
	followeeID, err := c.ParamsInt("accountId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "account id must be a number")
	}

	if !services.Users.Exists(uint(followeeID)) {
		return remapServiceError(services.ErrAccountNotFound)
	}
	if err := services.NewFollow(followerID, uint(followeeID)); err != nil {
		return remapServiceError(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func unfollowAccount(c *fiber.Ctx) error {
	followerID, err := requireAccountID(c)
	if err != nil {
		return err
	}
	followeeID, err := c.ParamsInt("accountId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "account id must be a number")
	}

	if err := services.RemoveFollow(followerID, uint(followeeID)); err != nil {
		return remapServiceError(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
