package controllers

import (
	"net/http"

	"github.com/elyashium/sylvan-web/utils"

	"github.com/gin-gonic/gin"
)

// ListTweets filters the plant tweet feed by ?search= and ?emotion=.
func (h *Handler) ListTweets(c *gin.Context) {
	tweets, err := h.Data.Tweets(c.Request.Context())
	if err != nil {
		h.fail(c, "Tweet", err)
		return
	}
	filtered := utils.FilterTweets(tweets, c.Query("search"), c.Query("emotion"))
	c.JSON(http.StatusOK, gin.H{"tweets": filtered, "count": len(filtered)})
}
