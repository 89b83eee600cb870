package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/naijavibes/NaijaVibes/app/models"
	"github.com/naijavibes/NaijaVibes/app/repository"
)

const defaultPageSize = 20
const maxPageSize = 100

type createPostRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=255"`
	Excerpt     string `json:"excerpt" validate:"max=1000"`
	Content     string `json:"content" validate:"required"`
	ImageURL    string `json:"image_url" validate:"max=255"`
	ContentType string `json:"content_type" validate:"required,oneof=news celebrity"`
	Published   bool   `json:"published"`
}

func pagination(c *fiber.Ctx) (offset, limit int) {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.Query("limit", strconv.Itoa(defaultPageSize)))
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}
	return (page - 1) * limit, limit
}

// HandleListPosts returns published news or celebrity posts.
func HandleListPosts(c *fiber.Ctx) error {
	contentType := c.Query("type", "")
	if contentType != "" && contentType != models.ContentTypeNews && contentType != models.ContentTypeCelebrity {
		return jsonError(c, fiber.StatusBadRequest, "type must be news or celebrity")
	}

	offset, limit := pagination(c)
	posts, err := repository.GetGlobalFactory().GetPostRepository().GetPublished(contentType, offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not load posts")
	}

	return c.JSON(fiber.Map{
		"posts": posts,
	})
}

// HandleGetPost returns a single post and counts the view.
func HandleGetPost(c *fiber.Ctx) error {
	postRepo := repository.GetGlobalFactory().GetPostRepository()

	post, err := postRepo.GetByUUID(c.Params("uuid"))
	if err != nil || post == nil {
		return jsonError(c, fiber.StatusNotFound, "post not found")
	}
	if !post.Published {
		return jsonError(c, fiber.StatusNotFound, "post not found")
	}

	// View counting is best effort
	_ = postRepo.IncrementViews(post.ID)
	post.Views++

	return c.JSON(post)
}

// HandleCreatePost creates a news or celebrity post (admin only).
func HandleCreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	post := &models.Post{
		Title:       req.Title,
		Excerpt:     req.Excerpt,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		ContentType: req.ContentType,
		AuthorID:    CurrentUserID(c),
		Published:   req.Published,
	}

	if err := repository.GetGlobalFactory().GetPostRepository().Create(post); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not create post")
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// HandleUpdatePost updates an existing post (admin only).
func HandleUpdatePost(c *fiber.Ctx) error {
	postRepo := repository.GetGlobalFactory().GetPostRepository()

	post, err := postRepo.GetByUUID(c.Params("uuid"))
	if err != nil || post == nil {
		return jsonError(c, fiber.StatusNotFound, "post not found")
	}

	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	post.Title = req.Title
	post.Excerpt = req.Excerpt
	post.Content = req.Content
	post.ImageURL = req.ImageURL
	post.ContentType = req.ContentType
	post.Published = req.Published

	if err := postRepo.Update(post); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not update post")
	}

	return c.JSON(post)
}

// HandleDeletePost removes a post (admin only).
func HandleDeletePost(c *fiber.Ctx) error {
	postRepo := repository.GetGlobalFactory().GetPostRepository()

	post, err := postRepo.GetByUUID(c.Params("uuid"))
	if err != nil || post == nil {
		return jsonError(c, fiber.StatusNotFound, "post not found")
	}

	if err := postRepo.Delete(post.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not delete post")
	}

	return c.JSON(fiber.Map{"message": "post deleted"})
}

// HandleReactToPost records a like or dislike.
func HandleReactToPost(c *fiber.Ctx) error {
	var req struct {
		Reaction string `json:"reaction" validate:"required,oneof=like dislike"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	postRepo := repository.GetGlobalFactory().GetPostRepository()
	post, err := postRepo.GetByUUID(c.Params("uuid"))
	if err != nil || post == nil {
		return jsonError(c, fiber.StatusNotFound, "post not found")
	}

	likes, dislikes := post.Likes, post.Dislikes
	if req.Reaction == "like" {
		likes++
	} else {
		dislikes++
	}
	if err := postRepo.UpdateLikes(post.ID, likes, dislikes); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not save reaction")
	}

	return c.JSON(fiber.Map{
		"likes":    likes,
		"dislikes": dislikes,
	})
}
