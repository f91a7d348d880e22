package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mosaicnet/interlink/pkg/internal/services"
)

func MapAPIs(app *fiber.App) {
	api := app.Group("/api").Name("API")
	{
		posts := api.Group("/posts").Name("Posts API")
		{
			posts.Post("/", createPost)
			posts.Get("/:postId", getPost)
			posts.Put("/:postId", editPost)
			posts.Delete("/:postId", deletePost)
			posts.Post("/:postId/counters/:counter", adjustPostCounter)
		}

		hashtags := api.Group("/hashtags").Name("Hashtags API")
		{
			hashtags.Get("/trending", listTrendingHashtags)
			hashtags.Get("/search", searchHashtags)
			hashtags.Get("/:name", getHashtag)
			hashtags.Get("/:name/posts", listPostsByHashtag)
		}

		mentions := api.Group("/mentions").Name("Mentions API")
		{
			mentions.Get("/me", listMyMentions)
			mentions.Get("/me/count", countMyMentions)
		}

		feed := api.Group("/feed").Name("Feed API")
		{
			feed.Get("/home", getHomeFeed)
			feed.Get("/explore", getExploreFeed)
			feed.Get("/popular", getPopularFeed)
			feed.Get("/views", getViewsFeed)
			feed.Get("/recommended", getRecommendedFeed)
		}

		accounts := api.Group("/accounts").Name("Accounts API")
		{
			accounts.Get("/:accountId/posts", listPostsByAuthor)
			accounts.Post("/:accountId/follow", followAccount)
			accounts.Delete("/:accountId/follow", unfollowAccount)
		}
	}
}

func currentAccountID(c *fiber.Ctx) *uint {
	if id, ok := c.Locals("accountId").(uint); ok {
		return &id
	}
	return nil
}

func requireAccountID(c *fiber.Ctx) (uint, error) {
	if id := currentAccountID(c); id != nil {
		return *id, nil
	}
	return 0, fiber.NewError(fiber.StatusUnauthorized, "account identity is required")
}

// Every service failure maps onto one stable status; the message text is
// informational only.
func remapServiceError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, services.ErrPostNotFound),
		errors.Is(err, services.ErrHashtagNotFound),
		errors.Is(err, services.ErrAccountNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrHashtagConflict):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrContentTooLong),
		errors.Is(err, services.ErrInvalidVisibility),
		errors.Is(err, services.ErrInvalidCounter):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
