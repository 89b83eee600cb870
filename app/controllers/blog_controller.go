package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/naijavibes/NaijaVibes/app/models"
	"github.com/naijavibes/NaijaVibes/app/repository"
)

type createBlogPostRequest struct {
	Title      string `json:"title" validate:"required,min=3,max=255"`
	Excerpt    string `json:"excerpt" validate:"max=1000"`
	Content    string `json:"content" validate:"required"`
	ImageURL   string `json:"image_url" validate:"max=255"`
	AuthorName string `json:"author_name" validate:"max=150"`
	Category   string `json:"category" validate:"omitempty,oneof=history culture tradition lifestyle"`
	Published  bool   `json:"published"`
}

// estimateReadingTime assumes roughly 200 words per minute.
func estimateReadingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := words / 200
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// HandleListBlogPosts returns published blog articles.
func HandleListBlogPosts(c *fiber.Ctx) error {
	offset, limit := pagination(c)
	posts, err := repository.GetGlobalFactory().GetBlogPostRepository().GetPublished(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not load blog posts")
	}
	return c.JSON(fiber.Map{
		"posts": posts,
	})
}

// HandleGetBlogPost returns a single blog article and counts the view.
func HandleGetBlogPost(c *fiber.Ctx) error {
	blogRepo := repository.GetGlobalFactory().GetBlogPostRepository()

	post, err := blogRepo.GetByUUID(c.Params("uuid"))
	if err != nil || post == nil || !post.Published {
		return jsonError(c, fiber.StatusNotFound, "blog post not found")
	}

	_ = blogRepo.IncrementViews(post.ID)
	post.Views++

	return c.JSON(post)
}

// HandleCreateBlogPost creates a blog article (admin only).
func HandleCreateBlogPost(c *fiber.Ctx) error {
	var req createBlogPostRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	category := req.Category
	if category == "" {
		category = "history"
	}

	post := &models.BlogPost{
		Title:       req.Title,
		Excerpt:     req.Excerpt,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		AuthorID:    CurrentUserID(c),
		AuthorName:  req.AuthorName,
		Category:    category,
		ReadingTime: estimateReadingTime(req.Content),
		Published:   req.Published,
	}

	if err := repository.GetGlobalFactory().GetBlogPostRepository().Create(post); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not create blog post")
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// HandleUpdateBlogPost updates a blog article (admin only).
func HandleUpdateBlogPost(c *fiber.Ctx) error {
	blogRepo := repository.GetGlobalFactory().GetBlogPostRepository()

	post, err := blogRepo.GetByUUID(c.Params("uuid"))
	if err != nil || post == nil {
		return jsonError(c, fiber.StatusNotFound, "blog post not found")
	}

	var req createBlogPostRequest
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
	post.AuthorName = req.AuthorName
	if req.Category != "" {
		post.Category = req.Category
	}
	post.ReadingTime = estimateReadingTime(req.Content)
	post.Published = req.Published

	if err := blogRepo.Update(post); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not update blog post")
	}

	return c.JSON(post)
}

// HandleDeleteBlogPost removes a blog article (admin only).
func HandleDeleteBlogPost(c *fiber.Ctx) error {
	blogRepo := repository.GetGlobalFactory().GetBlogPostRepository()

	post, err := blogRepo.GetByUUID(c.Params("uuid"))
	if err != nil || post == nil {
		return jsonError(c, fiber.StatusNotFound, "blog post not found")
	}

	if err := blogRepo.Delete(post.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not delete blog post")
	}

	return c.JSON(fiber.Map{"message": "blog post deleted"})
}

// HandleReactToBlogPost records a like or dislike.
func HandleReactToBlogPost(c *fiber.Ctx) error {
	var req struct {
		Reaction string `json:"reaction" validate:"required,oneof=like dislike"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	blogRepo := repository.GetGlobalFactory().GetBlogPostRepository()
	post, err := blogRepo.GetByUUID(c.Params("uuid"))
	if err != nil || post == nil {
		return jsonError(c, fiber.StatusNotFound, "blog post not found")
	}

	likes, dislikes := post.Likes, post.Dislikes
	if req.Reaction == "like" {
		likes++
	} else {
		dislikes++
	}
	if err := blogRepo.UpdateLikes(post.ID, likes, dislikes); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not save reaction")
	}

	return c.JSON(fiber.Map{
		"likes":    likes,
		"dislikes": dislikes,
	})
}
