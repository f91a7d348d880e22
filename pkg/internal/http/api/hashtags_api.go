package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mosaicnet/interlink/pkg/internal/services"
)

func listTrendingHashtags(c *fiber.Ctx) error {
	if limit := c.QueryInt("limit", 0); limit > 0 {
		hashtags, err := services.TopTrendingHashtags(limit)
		if err != nil {
			return remapServiceError(err)
		}
		return c.JSON(hashtags)
	}

	hashtags, count, err := services.TrendingHashtags(c.QueryInt("page", 0), c.QueryInt("pageSize", 0))
	if err != nil {
		return remapServiceError(err)
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  hashtags,
	})
}

func searchHashtags(c *fiber.Ctx) error {
	probe := c.Query("probe")
	if len(probe) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "probe is required")
	}

	hashtags, count, err := services.SearchHashtags(probe, c.QueryInt("page", 0), c.QueryInt("pageSize", 0))
	if err != nil {
		return remapServiceError(err)
	}

	return c.JSON(fiber.Map{
		"count": count,
		"data":  hashtags,
	})
}

func getHashtag(c *fiber.Ctx) error {
	hashtag, err := services.GetHashtag(c.Params("name"))
	if err != nil {
		return remapServiceError(err)
	}

	return c.JSON(hashtag)
}

func listPostsByHashtag(c *fiber.Ctx) error {
	posts, count, err := services.ListPostsByHashtag(
		c.Params("name"),
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
