package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/naijavibes/NaijaVibes/app/models"
	"github.com/naijavibes/NaijaVibes/app/repository"
)

type createCommentRequest struct {
	Content     string `json:"content" validate:"required,min=1,max=5000"`
	AuthorName  string `json:"author_name" validate:"required,min=1,max=150"`
	AuthorEmail string `json:"author_email" validate:"omitempty,email"`
	ParentID    *uint  `json:"parent_id"`
}

// HandleListPostComments returns approved comments for a post.
func HandleListPostComments(c *fiber.Ctx) error {
	post, err := repository.GetGlobalFactory().GetPostRepository().GetByUUID(c.Params("uuid"))
	if err != nil || post == nil {
		return jsonError(c, fiber.StatusNotFound, "post not found")
	}

	comments, err := repository.GetGlobalFactory().GetCommentRepository().GetApprovedForPost(post.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not load comments")
	}

	return c.JSON(fiber.Map{
		"comments": comments,
	})
}

// HandleCreatePostComment creates a pending comment on a post.
func HandleCreatePostComment(c *fiber.Ctx) error {
	post, err := repository.GetGlobalFactory().GetPostRepository().GetByUUID(c.Params("uuid"))
	if err != nil || post == nil {
		return jsonError(c, fiber.StatusNotFound, "post not found")
	}

	var req createCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	comment := &models.Comment{
		Content:     req.Content,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		PostID:      &post.ID,
		ParentID:    req.ParentID,
	}

	if err := repository.GetGlobalFactory().GetCommentRepository().Create(comment); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not save comment")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "comment submitted and awaiting approval",
		"comment": comment,
	})
}

// HandleListBlogComments returns approved comments for a blog post.
func HandleListBlogComments(c *fiber.Ctx) error {
	post, err := repository.GetGlobalFactory().GetBlogPostRepository().GetByUUID(c.Params("uuid"))
	if err != nil || post == nil {
		return jsonError(c, fiber.StatusNotFound, "blog post not found")
	}

	comments, err := repository.GetGlobalFactory().GetCommentRepository().GetApprovedForBlogPost(post.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not load comments")
	}

	return c.JSON(fiber.Map{
		"comments": comments,
	})
}

// HandleCreateBlogComment creates a pending comment on a blog post.
func HandleCreateBlogComment(c *fiber.Ctx) error {
	post, err := repository.GetGlobalFactory().GetBlogPostRepository().GetByUUID(c.Params("uuid"))
	if err != nil || post == nil {
		return jsonError(c, fiber.StatusNotFound, "blog post not found")
	}

	var req createCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	comment := &models.Comment{
		Content:     req.Content,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		BlogPostID:  &post.ID,
		ParentID:    req.ParentID,
	}

	if err := repository.GetGlobalFactory().GetCommentRepository().Create(comment); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not save comment")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "comment submitted and awaiting approval",
		"comment": comment,
	})
}

// HandleApproveComment approves a pending comment (admin only).
func HandleApproveComment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return jsonError(c, fiber.StatusBadRequest, "invalid comment id")
	}

	if err := repository.GetGlobalFactory().GetCommentRepository().Approve(uint(id)); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not approve comment")
	}

	return c.JSON(fiber.Map{"message": "comment approved"})
}

// HandleDeleteComment deletes a comment (admin only).
func HandleDeleteComment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return jsonError(c, fiber.StatusBadRequest, "invalid comment id")
	}

	if err := repository.GetGlobalFactory().GetCommentRepository().Delete(uint(id)); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not delete comment")
	}

	return c.JSON(fiber.Map{"message": "comment deleted"})
}
