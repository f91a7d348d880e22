package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mosaicnet/interlink/pkg/internal/http/exts"
	"github.com/mosaicnet/interlink/pkg/internal/models"
	"github.com/mosaicnet/interlink/pkg/internal/services"
)

func createPost(c *fiber.Ctx) error {
	authorID, err := requireAccountID(c)
	if err != nil {
		return err
	}

	var data struct {
		Content    string                     `json:"content" validate:"required"`
		Visibility models.PostVisibilityLevel `json:"visibility"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.NewPost(authorID, data.Content, data.Visibility)
	if err != nil {
		return remapServiceError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func getPost(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("postId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "post id must be a number")
	}

	item, err := services.GetPost(currentAccountID(c), uint(postID))
	if err != nil {
		return remapServiceError(err)
	}

	return c.JSON(item)
}

func editPost(c *fiber.Ctx) error {
	editorID, err := requireAccountID(c)
	if err != nil {
		return err
	}
	postID, err := c.ParamsInt("postId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "post id must be a number")
	}

	var data struct {
		Content    *string                     `json:"content"`
		Visibility *models.PostVisibilityLevel `json:"visibility"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.EditPost(editorID, uint(postID), data.Content, data.Visibility)
	if err != nil {
		return remapServiceError(err)
	}

	return c.JSON(item)
}

func deletePost(c *fiber.Ctx) error {
	requesterID, err := requireAccountID(c)
	if err != nil {
		return err
	}
	postID, err := c.ParamsInt("postId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "post id must be a number")
	}

	if err := services.DeletePost(requesterID, uint(postID)); err != nil {
		return remapServiceError(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// adjustPostCounter is the hook the like and comment subsystems call to move
// a post's derived counters.
func adjustPostCounter(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("postId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "post id must be a number")
	}

	var data struct {
		Delta int64 `json:"delta" validate:"required"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if err := services.AdjustPostCounter(uint(postID), c.Params("counter"), data.Delta); err != nil {
		return remapServiceError(err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
