package handlers

import (
	"database/sql"

	"github.com/sellquiccom/sellquicks-sub000/internal/ai"
	"github.com/sellquiccom/sellquicks-sub000/internal/events"
	"github.com/sellquiccom/sellquicks-sub000/internal/storage"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	DB      *sql.DB
	Storage *storage.Service // Cloudinary-backed image storage
	AI      *ai.CopyService  // product copy generation
	Hub     *events.Hub      // live order feed fan-out
}
