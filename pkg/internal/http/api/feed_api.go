package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mosaicnet/interlink/pkg/internal/services"
)

func getHomeFeed(c *fiber.Ctx) error {
	viewerID, err := requireAccountID(c)
	if err != nil {
		return err
	}

	feed, err := services.HomeFeed(
		viewerID,
		c.QueryBool("includeSelf", false),
		c.QueryInt("page", 0),
		c.QueryInt("pageSize", 0),
	)
	if err != nil {
		return remapServiceError(err)
	}

	return c.JSON(feed)
}

func getExploreFeed(c *fiber.Ctx) error {
	feed, err := services.ExploreFeed(c.QueryInt("page", 0), c.QueryInt("pageSize", 0))
	if err != nil {
		return remapServiceError(err)
	}

	return c.JSON(feed)
}

func getPopularFeed(c *fiber.Ctx) error {
	feed, err := services.PopularFeed(c.QueryInt("page", 0), c.QueryInt("pageSize", 0))
	if err != nil {
		return remapServiceError(err)
	}

	return c.JSON(feed)
}

func getViewsFeed(c *fiber.Ctx) error {
	feed, err := services.ViewsFeed(c.QueryInt("page", 0), c.QueryInt("pageSize", 0))
	if err != nil {
		return remapServiceError(err)
	}

	return c.JSON(feed)
}

func getRecommendedFeed(c *fiber.Ctx) error {
	viewerID, err := requireAccountID(c)
	if err != nil {
		return err
	}

	feed, err := services.RecommendedFeed(viewerID, c.QueryInt("page", 0), c.QueryInt("pageSize", 0))
	if err != nil {
		return remapServiceError(err)
	}

	return c.JSON(feed)
}
