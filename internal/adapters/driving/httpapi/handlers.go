package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/libris-app/libris/internal/core/domain"
	"github.com/libris-app/libris/internal/core/ports/driving"
	"github.com/libris-app/libris/internal/i18n"
)

type loginRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func (s *Server) login(c *gin.Context) {
	locale := requestFrom(c).Locale

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": i18n.T("please_enter_name", locale)})
		return
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	if req.FirstName == "" || req.LastName == "" || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": i18n.T("please_enter_name", locale)})
		return
	}

	session, err := s.sessions.Create(c.Request.Context(), domain.Session{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Locale:    locale,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.SetCookie(SessionCookie, session.Token, 0, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"first_name": session.FirstName,
		"last_name":  session.LastName,
		"email":      session.Email,
		"language":   session.Locale,
	})
}

func (s *Server) logout(c *gin.Context) {
	if session := sessionFrom(c); session != nil {
		if err := s.sessions.Delete(c.Request.Context(), session.Token); err != nil {
			s.log.Error("session delete failed", "error", err)
		}
	}
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

type languageRequest struct {
	Language string `json:"language"`
}

func (s *Server) setLanguage(c *gin.Context) {
	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "language is required"})
		return
	}
	locale := domain.ParseLocale(req.Language)

	if session := sessionFrom(c); session != nil {
		if err := s.sessions.SetLocale(c.Request.Context(), session.Token, locale); err != nil &&
			!errors.Is(err, domain.ErrNotFound) {
			s.renderError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"language": locale})
}

// listBooks serves both the full listing and substring search: an
// empty q means list-all, by contract with the core.
func (s *Server) listBooks(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	var (
		books []domain.Book
		err   error
	)
	if query == "" {
		books, err = s.library.ListAll(c.Request.Context())
	} else {
		books, err = s.library.Search(c.Request.Context(), query)
	}
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query": query,
		"count": len(books),
		"books": booksJSON(books),
	})
}

func (s *Server) recentBooks(c *gin.Context) {
	n := parseInt(c.Query("limit"), defaultRecentCount)
	books, err := s.library.ListRecent(c.Request.Context(), n)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": booksJSON(books)})
}

func (s *Server) getBook(c *gin.Context) {
	id, ok := s.bookID(c)
	if !ok {
		return
	}
	book, err := s.library.Get(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookJSON(book))
}

func (s *Server) createBook(c *gin.Context) {
	locale := requestFrom(c).Locale

	docHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": i18n.T("no_file_selected", locale)})
		return
	}
	doc, err := docHeader.Open()
	if err != nil {
		s.renderError(c, err)
		return
	}
	defer doc.Close()

	in := driving.IngestInput{
		Title:       c.PostForm("title"),
		Author:      c.PostForm("author"),
		Description: c.PostForm("description"),
		Document: driving.Upload{
			Name:    docHeader.Filename,
			Size:    docHeader.Size,
			Content: doc,
		},
	}

	if coverHeader, err := c.FormFile("image"); err == nil {
		cover, err := coverHeader.Open()
		if err != nil {
			s.renderError(c, err)
			return
		}
		defer cover.Close()
		in.Cover = &driving.Upload{
			Name:    coverHeader.Filename,
			Size:    coverHeader.Size,
			Content: cover,
		}
	}

	book, err := s.library.Ingest(c.Request.Context(), requestFrom(c), in)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": i18n.T("book_added_successfully", locale),
		"book":    bookJSON(book),
	})
}

func (s *Server) deleteBook(c *gin.Context) {
	id, ok := s.bookID(c)
	if !ok {
		return
	}
	if err := s.library.Delete(c.Request.Context(), requestFrom(c), id); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": i18n.T("book_deleted_successfully", requestFrom(c).Locale),
	})
}

func (s *Server) downloadBook(c *gin.Context) {
	id, ok := s.bookID(c)
	if !ok {
		return
	}
	book, rc, err := s.library.OpenDocument(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", book.Title+".pdf"))
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		s.log.Error("document download interrupted", "id", id, "error", err)
	}
}

// serveUpload streams a stored artifact, used for cover images.
func (s *Server) serveUpload(c *gin.Context) {
	key := c.Param("key")
	rc, err := s.artifacts.Open(c.Request.Context(), key)
	if err != nil {
		s.renderError(c, err)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		s.log.Error("artifact download interrupted", "key", key, "error", err)
	}
}

type askRequest struct {
	Query string `json:"query"`
}

func (s *Server) ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": i18n.T("please_enter_search_query", requestFrom(c).Locale),
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.askTimeout)
	defer cancel()

	answer, err := s.assistant.Ask(ctx, requestFrom(c), req.Query)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"query":    req.Query,
		"response": answer,
	})
}

func (s *Server) generateAbstract(c *gin.Context) {
	s.generateForBook(c, "abstract", s.assistant.GenerateAbstract)
}

func (s *Server) generateAnnotation(c *gin.Context) {
	s.generateForBook(c, "annotation", s.assistant.GenerateAnnotation)
}

func (s *Server) generateForBook(
	c *gin.Context,
	field string,
	generate func(context.Context, domain.RequestInfo, int64) (string, error),
) {
	id, ok := s.bookID(c)
	if !ok {
		return
	}

	// Fetch first so a missing book is a clean 404 before any
	// language-model call.
	book, err := s.library.Get(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.askTimeout)
	defer cancel()

	text, err := generate(ctx, requestFrom(c), id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		field:         text,
		"book_title":  book.Title,
		"book_author": book.Author,
	})
}

func (s *Server) bookID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": i18n.T("book_not_found", requestFrom(c).Locale),
		})
		return 0, false
	}
	return id, true
}

// renderError maps domain failures to HTTP responses. Validation
// failures carry a specific localised reason; storage and provider
// failures stay generic with detail in the server log only.
func (s *Server) renderError(c *gin.Context, err error) {
	locale := requestFrom(c).Locale

	var vErr *domain.ValidationError
	var pErr *domain.ProviderError
	var sErr *domain.StorageError

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": i18n.T(validationKey(vErr), locale)})
	case errors.Is(err, domain.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": i18n.T("please_enter_search_query", locale)})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": i18n.T("book_not_found", locale)})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": i18n.T("please_log_in", locale)})
	case errors.Is(err, domain.ErrLLMUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": i18n.T("error_getting_ai_response", locale)})
	case errors.As(err, &pErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": i18n.T("error_getting_ai_response", locale)})
	case errors.As(err, &sErr):
		s.log.Error("storage failure", "op", sErr.Op, "error", sErr.Err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": i18n.T("internal_error", locale)})
	default:
		s.log.Error("unhandled error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": i18n.T("internal_error", locale)})
	}
}

// validationKey maps a validation failure to its message key.
func validationKey(err *domain.ValidationError) string {
	switch err.Field {
	case "document":
		switch err.Reason {
		case "required":
			return "no_file_selected"
		case "too_large":
			return "max_file_size"
		default:
			return "invalid_file_type"
		}
	case "cover":
		switch err.Reason {
		case "too_large":
			return "image_too_large"
		case string(domain.RejectDisallowedType):
			return "invalid_image_type"
		default:
			return "invalid_image_file"
		}
	case "query":
		return "please_enter_search_query"
	default:
		return "invalid_input"
	}
}

func bookJSON(book *domain.Book) gin.H {
	h := gin.H{
		"id":          book.ID,
		"title":       book.Title,
		"author":      book.Author,
		"description": book.Description,
		"created_at":  book.CreatedAt,
	}
	if book.HasCover() {
		h["cover_url"] = "/api/uploads/" + book.CoverKey
	}
	return h
}

func booksJSON(books []domain.Book) []gin.H {
	out := make([]gin.H, 0, len(books))
	for i := range books {
		out = append(out, bookJSON(&books[i]))
	}
	return out
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
