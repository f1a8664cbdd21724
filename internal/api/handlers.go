package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/youruser/tarotapp/internal/cards"
	"github.com/youruser/tarotapp/internal/deck"
	imagepkg "github.com/youruser/tarotapp/internal/image"
	"github.com/youruser/tarotapp/internal/journal"
	"github.com/youruser/tarotapp/internal/session"
)

const (
	serviceName    = "SBTATROT Backend"
	serviceVersion = "1.0.0"

	// DefaultContext is used when a draw request names no context.
	DefaultContext = "Soul"

	emptyDeckMessage = "Deck is empty. Please shuffle to reset."

	maxDrawBody = 4 << 10
)

var errDeckEmpty = errors.New(emptyDeckMessage)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("printable", validatePrintable)
}

// validatePrintable rejects control characters and other non-printing runes.
func validatePrintable(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

type DrawRequest struct {
	Context string `json:"context" validate:"max=64,printable"`
}

type DrawResponse struct {
	Card           cards.Card        `json:"card"`
	Meaning        string            `json:"meaning"`
	Context        string            `json:"context"`
	CardsRemaining int               `json:"cards_remaining"`
	Metadata       map[string]string `json:"metadata"`
	ReadingID      string            `json:"reading_id,omitempty"`
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// sessionError maps a session manager failure onto an HTTP reply.
func sessionError(c *gin.Context, err error) {
	if errors.Is(err, session.ErrInvalidID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	slog.Error("Session store failure", "session_id", sessionID(c), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "deck storage unavailable"})
}

func (s *Server) countOp(op, result string) {
	if s.Metrics != nil {
		s.Metrics.DeckOperations.WithLabelValues(op, result).Inc()
	}
}

func (s *Server) shuffle(c *gin.Context) {
	var remaining int
	err := s.Sessions.With(c.Request.Context(), sessionID(c), func(d *deck.Deck) error {
		remaining = d.Shuffle()
		return nil
	})
	if err != nil {
		s.countOp("shuffle", "error")
		sessionError(c, err)
		return
	}
	s.countOp("shuffle", "ok")
	c.JSON(http.StatusOK, gin.H{"status": "shuffled", "cards_remaining": remaining})
}

func (s *Server) reset(c *gin.Context) {
	var remaining int
	err := s.Sessions.With(c.Request.Context(), sessionID(c), func(d *deck.Deck) error {
		remaining = d.Reset()
		return nil
	})
	if err != nil {
		s.countOp("reset", "error")
		sessionError(c, err)
		return
	}
	s.countOp("reset", "ok")
	c.JSON(http.StatusOK, gin.H{"status": "reset", "cards_remaining": remaining})
}

func (s *Server) status(c *gin.Context) {
	var remaining, total int
	err := s.Sessions.View(c.Request.Context(), sessionID(c), func(d *deck.Deck) error {
		remaining, total = d.Remaining(), d.Total()
		return nil
	})
	if err != nil {
		sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"cards_remaining": remaining,
		"total_cards":     total,
		"status":          "operational",
	})
}

// bindDraw reads the optional JSON body of a draw. An empty body or an empty
// context selects DefaultContext.
func bindDraw(c *gin.Context) (DrawRequest, error) {
	var req DrawRequest
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxDrawBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return req, err
	}
	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			return req, fmt.Errorf("invalid JSON body: %w", err)
		}
	}
	if err := validate.Struct(&req); err != nil {
		return req, fmt.Errorf("invalid context: must be at most 64 printable characters")
	}
	if strings.TrimSpace(req.Context) == "" {
		req.Context = DefaultContext
	}
	return req, nil
}

func (s *Server) draw(c *gin.Context) {
	req, err := bindDraw(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := sessionID(c)
	var (
		card      cards.Card
		remaining int
	)
	err = s.Sessions.With(c.Request.Context(), id, func(d *deck.Deck) error {
		var ok bool
		card, ok = d.Draw()
		if !ok {
			return errDeckEmpty
		}
		remaining = d.Remaining()
		return nil
	})
	if errors.Is(err, errDeckEmpty) {
		s.countOp("draw", "empty")
		if s.Metrics != nil {
			s.Metrics.DeckEmpty.Inc()
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": emptyDeckMessage})
		return
	}
	if err != nil {
		s.countOp("draw", "error")
		sessionError(c, err)
		return
	}
	s.countOp("draw", "ok")
	if s.Metrics != nil {
		s.Metrics.CardsDrawn.WithLabelValues(card.Type).Inc()
	}

	resp := DrawResponse{
		Card:           card,
		Meaning:        s.Meanings.Meaning(card, req.Context),
		Context:        req.Context,
		CardsRemaining: remaining,
		Metadata:       s.Meanings.Metadata(card),
	}

	if s.Journal != nil {
		r := journal.NewReading(id, card.Name, card.DisplayName, req.Context, resp.Meaning, remaining)
		if err := s.Journal.Record(c.Request.Context(), r); err != nil {
			slog.Warn("Failed to record reading", "session_id", id, "card", card.Name, "error", err)
		} else {
			resp.ReadingID = r.ID
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) export(c *gin.Context) {
	id := sessionID(c)
	var text string
	err := s.Sessions.View(c.Request.Context(), id, func(d *deck.Deck) error {
		text = deck.ExportText(id, d)
		return nil
	})
	if err != nil {
		sessionError(c, err)
		return
	}
	c.String(http.StatusOK, text+"\n")
}

func splitQuery(v string) []string {
	out := []string{}
	for _, p := range strings.Split(v, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func listCards(c *gin.Context) {
	arcana := strings.ToLower(c.Query("arcana"))
	if arcana != "" && arcana != cards.Major && arcana != cards.Minor {
		c.JSON(http.StatusBadRequest, gin.H{"error": "arcana must be major or minor"})
		return
	}
	opt := cards.FilterOptions{
		Arcana:    arcana,
		Suits:     splitQuery(c.Query("suit")),
		FreeWords: c.Query("q"),
	}
	out := cards.Filter(cards.Catalog(), opt)
	c.JSON(http.StatusOK, gin.H{"count": len(out), "cards": out})
}

func (s *Server) thumbnail(c *gin.Context) {
	card, ok := cards.Lookup(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown card " + c.Param("name")})
		return
	}
	width := 0
	if w := c.Query("width"); w != "" {
		v, err := strconv.Atoi(w)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "width must be a positive integer"})
			return
		}
		width = v
	}
	path := filepath.Join(s.AssetsDir, filepath.FromSlash(strings.TrimPrefix(card.ImagePath, "assets/")))
	b, placeholder, err := imagepkg.Thumbnail(path, width)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if placeholder {
		c.Header("X-Placeholder", "true")
	}
	c.Data(http.StatusOK, "image/png", b)
}

func (s *Server) journalOrUnavailable(c *gin.Context) bool {
	if s.Journal == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "reading journal is disabled"})
		return false
	}
	return true
}

func (s *Server) listReadings(c *gin.Context) {
	if !s.journalOrUnavailable(c) {
		return
	}
	limit := 0
	if l := c.Query("limit"); l != "" {
		v, err := strconv.Atoi(l)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = v
	}
	out, err := s.Journal.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "readings": out})
}

func (s *Server) lookupReading(c *gin.Context) (journal.Reading, bool) {
	if !s.journalOrUnavailable(c) {
		return journal.Reading{}, false
	}
	r, err := s.Journal.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, journal.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return r, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return r, false
	}
	return r, true
}

func (s *Server) getReading(c *gin.Context) {
	if r, ok := s.lookupReading(c); ok {
		c.JSON(http.StatusOK, r)
	}
}

// readingQR returns a QR code pointing at the reading's public URL.
func (s *Server) readingQR(c *gin.Context) {
	r, ok := s.lookupReading(c)
	if !ok {
		return
	}
	size := 0
	if v, err := strconv.Atoi(c.Query("size")); err == nil {
		size = v
	}
	b, err := imagepkg.GenerateQRPNG(s.PublicURL+"/api/readings/"+r.ID, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}
