package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CategoryNames is the fixed filter list offered to the front-end.
var CategoryNames = []string{
	"Fiction", "Non-Fiction", "Science Fiction", "Mystery", "Romance",
	"Biography", "History", "Science", "Technology", "Health & Fitness",
	"Self-Help", "Business", "Education", "Children's Books", "Poetry",
	"Drama", "Comics & Graphic Novels", "Travel", "Cooking", "Art",
}

func (h *Handler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"data":      CategoryNames,
		"backend":   h.backend,
		"timestamp": h.timestamp(),
	})
}
