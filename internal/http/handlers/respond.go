package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The response shapes below are the contract the existing browser client
// consumes, status quirks included: 411 doubles as both "validation failed"
// and the single-post fetch error.

// RespondIssues reports validation failures with the field issue list.
func RespondIssues(ctx *gin.Context, issues []FieldError) {
	ctx.JSON(http.StatusLengthRequired, gin.H{
		"message": "Inputs not correct",
		"errors":  issues,
	})
}

// RespondAuthError covers the signup/signin failure bodies, which use an
// "error" key rather than "message".
func RespondAuthError(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusForbidden, gin.H{
		"error": message,
	})
}

func RespondForbidden(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusForbidden, gin.H{
		"message": message,
	})
}

func RespondFetchError(ctx *gin.Context) {
	ctx.JSON(http.StatusLengthRequired, gin.H{
		"message": "Error while fetching blog post",
	})
}

func RespondInternal(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusInternalServerError, gin.H{
		"message": message,
	})
}
