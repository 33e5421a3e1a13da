package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/limaJavier/schedulease/pkg/export"
	"github.com/limaJavier/schedulease/pkg/model"
	"github.com/limaJavier/schedulease/pkg/registration"
	"github.com/samber/lo"
)

type courseSuggester interface {
	Suggest(ctx context.Context, searchTerm, term string) ([]registration.Suggestion, error)
}

type server struct {
	enumerator model.Enumerator
	suggester  courseSuggester // nil when serving fixtures
	term       string
	weeks      int
	location   *time.Location
	now        func() time.Time

	// The registration session is shared, so requests reaching it run one at a time
	mutex sync.Mutex
}

type generateRequest struct {
	Courses []string `json:"courses"`
	Term    string   `json:"term"`
}

type calendarRequest struct {
	Schedule model.Schedule `json:"schedule"`
	Weeks    int            `json:"weeks"`
	// Optional RFC 3339 date; the calendar starts on the following Monday
	Reference string `json:"reference"`
}

func (server *server) handleGenerate(ctx *gin.Context) {
	var request generateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	courseCodes := lo.Filter(lo.Map(request.Courses, func(course string, _ int) string {
		return model.NormalizeCourseCode(course)
	}), func(course string, _ int) bool { return course != "" })
	if len(courseCodes) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "no courses provided"})
		return
	}
	term := lo.Ternary(strings.TrimSpace(request.Term) == "", server.term, strings.TrimSpace(request.Term))

	server.mutex.Lock()
	result := server.enumerator.Enumerate(ctx.Request.Context(), courseCodes, term)
	server.mutex.Unlock()

	if !result.Success {
		log.Printf("request %v: %v", ctx.GetString("requestId"), result.Error)
		ctx.JSON(http.StatusBadRequest, result)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func (server *server) handleSuggestions(ctx *gin.Context) {
	query := strings.TrimSpace(ctx.Query("q"))
	if len(query) < 2 {
		ctx.JSON(http.StatusOK, gin.H{"suggestions": []registration.Suggestion{}})
		return
	}
	if server.suggester == nil {
		ctx.JSON(http.StatusNotImplemented, gin.H{"error": "suggestions need the registration server"})
		return
	}
	term := ctx.DefaultQuery("term", server.term)

	server.mutex.Lock()
	suggestions, err := server.suggester.Suggest(ctx.Request.Context(), query, term)
	server.mutex.Unlock()

	if err != nil {
		var statusErr registration.StatusError
		status := lo.Ternary(errors.As(err, &statusErr), http.StatusBadGateway, http.StatusInternalServerError)
		ctx.JSON(status, gin.H{"error": fmt.Sprintf("cannot fetch suggestions: %v", err)})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (server *server) handleCalendar(ctx *gin.Context) {
	var request calendarRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	if len(request.Schedule.Courses) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "schedule has no courses"})
		return
	}

	reference := server.now()
	if request.Reference != "" {
		parsed, err := time.Parse(time.RFC3339, request.Reference)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid reference date: %v", err)})
			return
		}
		reference = parsed
	}

	document, report, err := export.Calendar(request.Schedule, export.CalendarOptions{
		Reference: reference,
		Weeks:     lo.Ternary(request.Weeks > 0, request.Weeks, server.weeks),
		Location:  server.location,
	})
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="schedule-%d.ics"`, request.Schedule.ID))
	ctx.Header("X-Skipped-Sections", strings.Join(report.Skipped, ","))
	ctx.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(document))
}
